package sigevent

import (
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlags_TakeClearsExactlyOnce(t *testing.T) {
	var f Flags

	assert.False(t, f.TakeInterrupt())
	f.SetInterrupt()
	assert.True(t, f.TakeInterrupt())
	assert.False(t, f.TakeInterrupt())
}

func TestFlags_BurstsCollapse(t *testing.T) {
	var f Flags

	f.SetChild()
	f.SetChild()
	f.SetChild()
	assert.True(t, f.TakeChild())
	assert.False(t, f.TakeChild())
}

func TestFlags_Independent(t *testing.T) {
	var f Flags

	f.SetHangup()
	assert.False(t, f.TakeInterrupt())
	assert.False(t, f.TakeChild())
	assert.True(t, f.TakeHangup())
}

func TestInstall_DeliversChildFlag(t *testing.T) {
	var f Flags
	stop := Install(&f)
	defer stop()

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGCHLD))
	require.Eventually(t, func() bool {
		return f.TakeChild()
	}, 2*time.Second, 10*time.Millisecond)
}

func TestInstall_StopDetaches(t *testing.T) {
	var f Flags
	stop := Install(&f)
	stop()

	_ = syscall.Kill(syscall.Getpid(), syscall.SIGCHLD)
	time.Sleep(50 * time.Millisecond)
	assert.False(t, f.TakeChild())
}
