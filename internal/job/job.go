// Package job tracks spawned process groups across their lifecycle and owns
// the table the jobs/fg/bg/wait builtins operate on.
package job

import (
	"fmt"
	"os"
	"strings"
	"syscall"
)

// State is the lifecycle position of a tracked job.
type State int

const (
	Running State = iota
	Stopped
	Exited
	Signaled
)

func (s State) String() string {
	switch s {
	case Running:
		return "Running"
	case Stopped:
		return "Stopped"
	case Exited:
		return "Exited"
	case Signaled:
		return "Signaled"
	}
	return "Unknown"
}

// Terminal reports whether s is a final state. A job may only leave the
// table from a terminal state, and only after it has been reported.
func (s State) Terminal() bool { return s == Exited || s == Signaled }

// Status pairs a lifecycle state with its exit detail.
type Status struct {
	State State
	Code  int            // exit code, valid when State is Exited
	Sig   syscall.Signal // valid when State is Signaled
}

// ExitedWith returns the status of a normal exit.
func ExitedWith(code int) Status { return Status{State: Exited, Code: code} }

// SignaledWith returns the status of a termination by uncaught signal.
func SignaledWith(sig syscall.Signal) Status { return Status{State: Signaled, Sig: sig} }

// ExitCode maps the status onto the value surfaced as $?. Normal exits keep
// their code; signal deaths follow the shell convention of 128+signal, so
// SIGKILL reads as 137. Stopped maps to 128+SIGTSTP the way sh reports it.
func (s Status) ExitCode() int {
	switch s.State {
	case Exited:
		return s.Code
	case Signaled:
		return 128 + int(s.Sig)
	case Stopped:
		return 128 + int(syscall.SIGTSTP)
	}
	return 0
}

// Label renders the status column shown by jobs listings and notices:
// Running, Stopped, Done for a clean exit, Exit <n> otherwise, or the
// capitalized signal name ("Killed", "Interrupt") for signal deaths.
func (s Status) Label() string {
	switch s.State {
	case Exited:
		if s.Code == 0 {
			return "Done"
		}
		return fmt.Sprintf("Exit %d", s.Code)
	case Signaled:
		name := s.Sig.String()
		if name == "" {
			return fmt.Sprintf("Signal %d", int(s.Sig))
		}
		return strings.ToUpper(name[:1]) + name[1:]
	}
	return s.State.String()
}

// Process is the owned OS handle a Job tracks. Exactly one structure holds
// a given Process at a time: the table for background jobs, the foreground
// controller while a job runs in the foreground. Implemented by *proc.Handle.
type Process interface {
	Pid() int
	Pgid() int
	// Wait blocks until the process exits or stops, retrying on
	// interrupted waits.
	Wait() (Status, error)
	// Probe asks the OS for a state change without blocking. The bool is
	// false when nothing changed.
	Probe() (Status, bool, error)
	// SignalGroup delivers sig to the whole process group.
	SignalGroup(sig os.Signal) error
	// Continue resumes a stopped process group.
	Continue() error
}

// Job is one tracked child process group.
type Job struct {
	ID      int
	Display string
	Status  Status
	Process Process
}

// Notice reports a job state change for the shell to print.
type Notice struct {
	ID      int
	Display string
	Status  Status
}

func (n Notice) String() string {
	return fmt.Sprintf("[%d]  %s  %s", n.ID, n.Status.Label(), n.Display)
}
