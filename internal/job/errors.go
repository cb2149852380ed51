package job

import "fmt"

// NoSuchJobError reports a builtin argument that named an untracked job.
type NoSuchJobError struct {
	ID int
}

func (e *NoSuchJobError) Error() string {
	return fmt.Sprintf("%%%d: no such job", e.ID)
}

// NotStoppedError reports a bg target that was not stopped.
type NotStoppedError struct {
	ID int
}

func (e *NotStoppedError) Error() string {
	return fmt.Sprintf("job %d is not stopped", e.ID)
}
