package proc

import "fmt"

// SpawnError reports a failed process creation. The command aborts and the
// shell continues.
type SpawnError struct {
	Program string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn: %s: %v", e.Program, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// WaitError reports a failed status query, as opposed to "no change yet".
// The job stays in its last known state.
type WaitError struct {
	Err error
}

func (e *WaitError) Error() string {
	return fmt.Sprintf("wait: %v", e.Err)
}

func (e *WaitError) Unwrap() error { return e.Err }
