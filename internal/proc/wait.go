package proc

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"

	"gosh/internal/job"
)

// Wait blocks until the process exits, is killed, or stops, and decodes the
// raw wait status. Interrupted waits are retried, never surfaced.
func (h *Handle) Wait() (job.Status, error) {
	var ws unix.WaitStatus
	for {
		wpid, err := unix.Wait4(h.pid, &ws, unix.WUNTRACED, nil)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return job.Status{}, &WaitError{Err: err}
		}
		if wpid == h.pid {
			return decodeStatus(ws), nil
		}
	}
}

// Probe performs a non-blocking status query. The bool is false when the
// OS reports no change since the last query. Stops and resumes are visible
// as well as exits, so the reaper can track externally continued jobs.
func (h *Handle) Probe() (job.Status, bool, error) {
	var ws unix.WaitStatus
	for {
		wpid, err := unix.Wait4(h.pid, &ws, unix.WNOHANG|unix.WUNTRACED|unix.WCONTINUED, nil)
		switch {
		case err == unix.EINTR:
			continue
		case err != nil:
			return job.Status{}, false, &WaitError{Err: err}
		case wpid == 0:
			return job.Status{}, false, nil
		default:
			return decodeStatus(ws), true, nil
		}
	}
}

// SignalGroup delivers sig to the whole process group, so children the job
// itself spawned receive it too.
func (h *Handle) SignalGroup(sig os.Signal) error {
	s, ok := sig.(syscall.Signal)
	if !ok {
		return fmt.Errorf("unsupported signal %v", sig)
	}
	return unix.Kill(-h.pgid, s)
}

// Continue resumes a stopped process group.
func (h *Handle) Continue() error {
	return unix.Kill(-h.pgid, unix.SIGCONT)
}

// decodeStatus distinguishes the four wait outcomes via the dedicated
// predicates on the raw status.
func decodeStatus(ws unix.WaitStatus) job.Status {
	switch {
	case ws.Exited():
		return job.ExitedWith(ws.ExitStatus())
	case ws.Signaled():
		return job.SignaledWith(ws.Signal())
	case ws.Stopped():
		return job.Status{State: job.Stopped}
	case ws.Continued():
		return job.Status{State: job.Running}
	}
	return job.Status{State: job.Running}
}
