// Package proc creates child process groups and arbitrates which one owns
// the controlling terminal.
package proc

import (
	"os"
	"os/exec"
	"syscall"

	"gosh/internal/job"
)

// Command is the resolved tuple handed down by the command layer: program,
// arguments, and the descriptor plan. A nil descriptor means detached
// (/dev/null); foreground commands pass the shell's own stdio explicitly.
type Command struct {
	Path   string
	Args   []string
	Dir    string
	Env    []string
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File
}

// Handle owns one spawned process. It must be waited on exactly once via
// Wait or a terminal Probe result; it is never shared between the table and
// the foreground controller at the same time.
type Handle struct {
	pid  int
	pgid int
	cmd  *exec.Cmd
}

func (h *Handle) Pid() int  { return h.pid }
func (h *Handle) Pgid() int { return h.pgid }

// Spawn starts the command in a fresh process group whose id equals the
// child's pid. Signal dispositions the shell customized arrive at the child
// already reset to the defaults, because the shell installs handlers rather
// than SIG_IGN and handlers do not survive exec.
//
// Spawn does not register the handle anywhere; the caller decides whether
// the job enters the table, so foreground one-shots never pollute it.
func Spawn(c Command) (*Handle, error) {
	cmd := exec.Command(c.Path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = c.Env
	// Assign descriptors only when present; a typed-nil *os.File stored in
	// the interface field would defeat exec's own nil check.
	if c.Stdin != nil {
		cmd.Stdin = c.Stdin
	}
	if c.Stdout != nil {
		cmd.Stdout = c.Stdout
	}
	if c.Stderr != nil {
		cmd.Stderr = c.Stderr
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return nil, &SpawnError{Program: c.Path, Err: err}
	}
	pid := cmd.Process.Pid
	return &Handle{pid: pid, pgid: pid, cmd: cmd}, nil
}

var _ job.Process = (*Handle)(nil)
