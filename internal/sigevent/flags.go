// Package sigevent holds the pending-event flags that asynchronous signal
// delivery is allowed to touch. Everything else the shell does in response
// to a signal happens on the main loop, after a Take call observes the flag.
package sigevent

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// Flags is the process-wide signal state. Each flag collapses any number of
// deliveries since the last Take into a single pending bit; it is a "go
// check" signal, not a queue.
type Flags struct {
	interrupt atomic.Bool
	child     atomic.Bool
	hangup    atomic.Bool
}

func (f *Flags) SetInterrupt() { f.interrupt.Store(true) }
func (f *Flags) SetChild()     { f.child.Store(true) }
func (f *Flags) SetHangup()    { f.hangup.Store(true) }

// TakeInterrupt reports and clears the pending-interrupt flag. A burst of
// interrupts between checks yields exactly one true.
func (f *Flags) TakeInterrupt() bool { return f.interrupt.Swap(false) }

// TakeChild reports and clears the child-state-changed flag. The flag
// carries no payload: callers must sweep every tracked job, not guess which
// one changed.
func (f *Flags) TakeChild() bool { return f.child.Swap(false) }

// TakeHangup reports and clears the pending-hangup flag.
func (f *Flags) TakeHangup() bool { return f.hangup.Swap(false) }

// Install registers the shell's signal policy and starts the goroutine that
// drains deliveries into f. Must be called exactly once, at startup.
//
// SIGINT, SIGCHLD, SIGHUP and SIGTERM set their flag and do nothing else.
// SIGTSTP and SIGQUIT are caught and dropped so the shell itself is never
// suspended or killed from the keyboard; those go through Go handlers, so
// the kernel resets them to the default disposition across exec and
// children stay stoppable.
//
// SIGTTOU and SIGTTIN are ignored outright, not handled: tcsetpgrp from a
// background process group raises SIGTTOU unless the caller ignores or
// blocks it, and a handler (installed with SA_RESTART) would restart the
// ioctl forever, livelocking the terminal handoff. Children inherit the
// ignore across exec; see DESIGN.md for the tradeoff.
func Install(f *Flags) (stop func()) {
	signal.Ignore(syscall.SIGTTOU, syscall.SIGTTIN)

	ch := make(chan os.Signal, 16)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGCHLD,
		syscall.SIGHUP,
		syscall.SIGTERM,
		syscall.SIGTSTP,
		syscall.SIGQUIT,
	)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-ch:
				switch sig {
				case syscall.SIGINT:
					f.SetInterrupt()
				case syscall.SIGCHLD:
					f.SetChild()
				case syscall.SIGHUP, syscall.SIGTERM:
					f.SetHangup()
				}
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(ch)
		signal.Reset(syscall.SIGTTOU, syscall.SIGTTIN)
		close(done)
	}
}
