package proc

import (
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"gosh/internal/job"
)

// Terminal arbitrates the controlling terminal's foreground process group,
// a single global resource. Only RunForeground reassigns it, and it always
// puts the shell's own group back before returning, on every path.
//
// When the shell has no controlling terminal (stdin is a pipe), the
// Terminal runs in degraded mode: CanControl reports false and foreground
// runs become plain blocking waits. That is a recognized mode, not an
// error.
type Terminal struct {
	fd        int
	shellPgid int
	control   bool
}

// OpenTerminal wires the controller to the shell's stdin.
func OpenTerminal() *Terminal {
	return NewTerminal(os.Stdin)
}

// NewTerminal wires the controller to an arbitrary descriptor.
func NewTerminal(f *os.File) *Terminal {
	fd := int(f.Fd())
	return &Terminal{
		fd:        fd,
		shellPgid: unix.Getpgrp(),
		control:   term.IsTerminal(fd),
	}
}

// CanControl reports whether the foreground group can actually be
// reassigned. Callers resuming stopped jobs into the foreground should
// check it first rather than fail halfway.
func (t *Terminal) CanControl() bool { return t.control }

// RunForeground makes p's process group the terminal's foreground group,
// blocks until the group stops or terminates, and hands the terminal back
// to the shell. The restore runs on the stopped path too; skipping it there
// would misroute all subsequent input.
//
// On a stopped outcome the handle is not consumed: ownership passes to the
// caller, who inserts the job into the table.
func (t *Terminal) RunForeground(p job.Process) (job.Status, error) {
	if err := t.setForeground(p.Pgid()); err != nil {
		// No controlling terminal after all; degrade to a plain wait.
		t.control = false
	}
	defer t.restore()
	return p.Wait()
}

// setForeground and restore both call tcsetpgrp while the shell's group
// may no longer be the terminal's foreground group. That is only safe
// because sigevent.Install ignores SIGTTOU; with the default disposition
// the kernel would stop the shell, and with a handler it would restart
// the ioctl forever.
func (t *Terminal) setForeground(pgid int) error {
	if !t.control {
		return nil
	}
	return unix.IoctlSetPointerInt(t.fd, unix.TIOCSPGRP, pgid)
}

func (t *Terminal) restore() {
	if !t.control {
		return
	}
	if err := unix.IoctlSetPointerInt(t.fd, unix.TIOCSPGRP, t.shellPgid); err != nil {
		// Orphaned process group or a dead descriptor; stop touching the
		// terminal and degrade to plain waits.
		t.control = false
	}
}
