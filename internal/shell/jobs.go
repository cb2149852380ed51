package shell

import (
	"fmt"
	"syscall"

	"gosh/internal/job"
)

var hangupSignal = syscall.SIGHUP

// reap performs a non-blocking sweep over every tracked job. The child
// flag never says which job changed, so all of them are probed. Jobs that
// reached a terminal state are removed only after their notice has been
// produced; calling reap again with no intervening change yields nothing.
func (s *Shell) reap() []job.Notice {
	var notices []job.Notice
	for _, j := range s.table.Jobs() {
		st, changed, err := j.Process.Probe()
		if err != nil {
			// Query failure is not "no change yet"; report it and leave
			// the job in its last known state.
			s.errorf("jobs: [%d] %v", j.ID, err)
			continue
		}
		if !changed {
			continue
		}
		switch st.State {
		case job.Stopped:
			if j.Status.State != job.Stopped {
				j.Status = st
				notices = append(notices, job.Notice{ID: j.ID, Display: j.Display, Status: st})
			}
		case job.Running:
			// Resumed behind our back (external SIGCONT).
			j.Status = st
		default:
			j.Status = st
			notices = append(notices, job.Notice{ID: j.ID, Display: j.Display, Status: st})
			s.table.Remove(j.ID)
		}
	}
	return notices
}

func (s *Shell) announce(notices []job.Notice) {
	for _, n := range notices {
		s.println(s.styles.notice(n))
	}
}

// jobsBuiltin reaps, then lists the remaining jobs ascending by id.
func (s *Shell) jobsBuiltin() (int, error) {
	s.announce(s.reap())
	for _, j := range s.table.Jobs() {
		s.println(s.styles.notice(job.Notice{ID: j.ID, Display: j.Display, Status: j.Status}))
	}
	return 0, nil
}

// fgBuiltin moves a job to the foreground: it leaves the table, gets
// resumed if stopped, and re-enters the foreground controller. A job that
// stops again goes back into the table under its original id.
func (s *Shell) fgBuiltin(args []string) (int, error) {
	if len(args) > 1 {
		return 2, fmt.Errorf("fg: too many arguments")
	}

	var j *job.Job
	if len(args) == 1 {
		id, err := parseJobID("fg", args[0])
		if err != nil {
			return 2, err
		}
		var ok bool
		j, ok = s.table.Get(id)
		if !ok {
			return 1, fmt.Errorf("fg: %w", &job.NoSuchJobError{ID: id})
		}
	} else {
		j = s.table.Latest()
		if j == nil {
			return 1, fmt.Errorf("fg: no current job")
		}
	}

	if j.Status.State == job.Stopped && !s.term.CanControl() {
		return 1, fmt.Errorf("fg: no job control")
	}

	s.table.Remove(j.ID)
	if j.Status.State == job.Stopped {
		if err := j.Process.Continue(); err != nil {
			s.table.Restore(j)
			return 1, fmt.Errorf("fg: %w", err)
		}
		j.Status = job.Status{State: job.Running}
	}
	s.println(j.Display)

	st, err := s.term.RunForeground(j.Process)
	if err != nil {
		s.table.Restore(j)
		return 1, fmt.Errorf("fg: %w", err)
	}
	if st.State == job.Stopped {
		j.Status = st
		s.table.Restore(j)
		s.println(s.styles.notice(job.Notice{ID: j.ID, Display: j.Display, Status: st}))
	}
	return st.ExitCode(), nil
}

// bgBuiltin resumes a stopped job in the background. The job stays in the
// table, transitioned to Running in place.
func (s *Shell) bgBuiltin(args []string) (int, error) {
	if len(args) > 1 {
		return 2, fmt.Errorf("bg: too many arguments")
	}

	var j *job.Job
	if len(args) == 1 {
		id, err := parseJobID("bg", args[0])
		if err != nil {
			return 2, err
		}
		var ok bool
		j, ok = s.table.Get(id)
		if !ok {
			return 1, fmt.Errorf("bg: %w", &job.NoSuchJobError{ID: id})
		}
	} else {
		j = s.table.LatestStopped()
		if j == nil {
			return 1, fmt.Errorf("bg: no stopped jobs")
		}
	}

	if j.Status.State != job.Stopped {
		return 1, fmt.Errorf("bg: %w", &job.NotStoppedError{ID: j.ID})
	}
	if err := j.Process.Continue(); err != nil {
		return 1, fmt.Errorf("bg: %w", err)
	}
	j.Status = job.Status{State: job.Running}
	s.println(s.styles.notice(job.Notice{ID: j.ID, Display: j.Display, Status: j.Status}))
	return 0, nil
}

// waitBuiltin blocks until the named jobs (or every running job) reach a
// terminal state, reports each, and removes it. Stopped jobs are never
// waited on: they are reported as still stopped and left in the table.
func (s *Shell) waitBuiltin(args []string) (int, error) {
	var targets []*job.Job
	if len(args) == 0 {
		for _, j := range s.table.Jobs() {
			if j.Status.State == job.Running {
				targets = append(targets, j)
			}
		}
	} else {
		for _, arg := range args {
			id, err := parseJobID("wait", arg)
			if err != nil {
				return 2, err
			}
			j, ok := s.table.Get(id)
			if !ok {
				return 127, fmt.Errorf("wait: %w", &job.NoSuchJobError{ID: id})
			}
			targets = append(targets, j)
		}
	}

	status := 0
	for _, j := range targets {
		if j.Status.State == job.Stopped {
			s.errorf("wait: job %d is stopped", j.ID)
			status = j.Status.ExitCode()
			continue
		}

		st, err := j.Process.Wait()
		if err != nil {
			s.errorf("wait: [%d] %v", j.ID, err)
			status = 1
			continue
		}
		j.Status = st
		if st.State == job.Stopped {
			// The job stopped while we waited; it stays tracked.
			s.errorf("wait: job %d is stopped", j.ID)
			status = st.ExitCode()
			continue
		}
		s.println(s.styles.notice(job.Notice{ID: j.ID, Display: j.Display, Status: st}))
		s.table.Remove(j.ID)
		status = st.ExitCode()
	}
	return status, nil
}
