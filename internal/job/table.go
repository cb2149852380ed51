package job

import "sort"

// Table is the authoritative record of tracked jobs. It is single-writer:
// only the shell's main loop mutates it, so it carries no lock.
type Table struct {
	jobs   map[int]*Job
	nextID int
}

func NewTable() *Table {
	return &Table{
		jobs:   make(map[int]*Job),
		nextID: 1,
	}
}

// Add inserts a new job and assigns it the next id. Ids are strictly
// increasing and never handed out twice; Remove does not return them.
func (t *Table) Add(p Process, display string, status Status) *Job {
	j := &Job{
		ID:      t.nextID,
		Display: display,
		Status:  status,
		Process: p,
	}
	t.jobs[j.ID] = j
	t.nextID++
	return j
}

// Restore re-inserts a job that was removed for foregrounding and stopped
// again. It keeps its original id.
func (t *Table) Restore(j *Job) {
	t.jobs[j.ID] = j
}

func (t *Table) Get(id int) (*Job, bool) {
	j, ok := t.jobs[id]
	return j, ok
}

func (t *Table) Remove(id int) {
	delete(t.jobs, id)
}

func (t *Table) Len() int { return len(t.jobs) }

// Jobs returns every tracked job in ascending id order.
func (t *Table) Jobs() []*Job {
	out := make([]*Job, 0, len(t.jobs))
	for _, j := range t.jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out
}

// Latest returns the job with the highest id, or nil.
func (t *Table) Latest() *Job {
	var latest *Job
	for _, j := range t.jobs {
		if latest == nil || j.ID > latest.ID {
			latest = j
		}
	}
	return latest
}

// LatestStopped returns the most recently added stopped job, or nil.
func (t *Table) LatestStopped() *Job {
	var latest *Job
	for _, j := range t.jobs {
		if j.Status.State != Stopped {
			continue
		}
		if latest == nil || j.ID > latest.ID {
			latest = j
		}
	}
	return latest
}
