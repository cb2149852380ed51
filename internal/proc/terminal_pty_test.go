package proc

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"gosh/internal/job"
	"gosh/internal/sigevent"
)

const ptyHelperEnv = "GOSH_TEST_PTY_HELPER"

func TestMain(m *testing.M) {
	if os.Getenv(ptyHelperEnv) == "1" {
		os.Exit(ptyHelper())
	}
	os.Exit(m.Run())
}

// ptyHelper is the re-executed test binary, running as a session leader
// whose controlling terminal is a pty slave. Only there is the foreground
// handoff real rather than degraded, so this is where the transfer and the
// give-back are checked against the terminal itself.
func ptyHelper() int {
	fail := func(format string, a ...any) int {
		fmt.Printf("HELPER FAIL: "+format+"\n", a...)
		return 1
	}

	flags := &sigevent.Flags{}
	stop := sigevent.Install(flags)
	defer stop()

	tty := NewTerminal(os.Stdin)
	if !tty.CanControl() {
		return fail("stdin is not a controlling terminal")
	}

	fgPgrp := func() (int, error) {
		return unix.IoctlGetInt(int(os.Stdin.Fd()), unix.TIOCGPGRP)
	}

	h, err := Spawn(Command{
		Path:   "sh",
		Args:   []string{"-c", "kill -STOP $$; exit 0"},
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	if err != nil {
		return fail("spawn: %v", err)
	}

	st, err := tty.RunForeground(h)
	if err != nil {
		return fail("foreground run: %v", err)
	}
	if st.State != job.Stopped {
		return fail("want a stop, got %v", st.State)
	}
	// The stopped job's group must not keep the terminal. Without the
	// SIGTTOU ignore in sigevent.Install this give-back never completes
	// and the deadline in the parent test fires.
	if fg, err := fgPgrp(); err != nil || fg != unix.Getpgrp() {
		return fail("terminal not returned after stop: fg=%d err=%v", fg, err)
	}

	// Resume it into the foreground again, the way fg does.
	if err := h.Continue(); err != nil {
		return fail("continue: %v", err)
	}
	st, err = tty.RunForeground(h)
	if err != nil {
		return fail("second foreground run: %v", err)
	}
	if st != job.ExitedWith(0) {
		return fail("want a clean exit, got %+v", st)
	}
	if fg, err := fgPgrp(); err != nil || fg != unix.Getpgrp() {
		return fail("terminal not returned after exit: fg=%d err=%v", fg, err)
	}

	fmt.Println("HELPER OK")
	return 0
}

func TestTerminal_ForegroundTransferOnPTY(t *testing.T) {
	cmd := exec.Command(os.Args[0], "-test.run=TestTerminal_ForegroundTransferOnPTY")
	cmd.Env = append(os.Environ(), ptyHelperEnv+"=1")

	master, err := pty.Start(cmd)
	if err != nil {
		t.Skipf("no pty available: %v", err)
	}
	defer master.Close()

	deadline := time.AfterFunc(10*time.Second, func() { _ = cmd.Process.Kill() })
	defer deadline.Stop()

	// Read to EOF; the master returns EIO once the helper exits.
	out := new(strings.Builder)
	_, _ = io.Copy(out, master)

	err = cmd.Wait()
	require.True(t, deadline.Stop(), "helper hung holding the terminal:\n%s", out.String())
	assert.NoError(t, err, "helper output:\n%s", out.String())
	assert.Contains(t, out.String(), "HELPER OK")
}
