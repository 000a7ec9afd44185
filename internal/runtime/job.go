package runtime

// Job is a deterministic unit of work executed by the Scheduler. Jobs run in
// a stable order based on ID (lexicographic byte order), never on
// registration order.
type Job struct {
	ID  string
	Run func(frame Frame, bus *EventBus)
}

// NewJob constructs a Job.
func NewJob(id string, run func(frame Frame, bus *EventBus)) Job {
	return Job{ID: id, Run: run}
}
