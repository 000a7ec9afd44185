package runtime

import (
	"sort"

	"go.uber.org/zap"
)

// Scheduler owns the list of jobs that run every frame. RunFrame sorts jobs
// by ID (lexicographic byte order) and invokes each sequentially: this
// stable ordering, combined with the EventBus's append-only ordering, is
// what makes a frame's observable effects a deterministic function of prior
// state.
//
// Scheduler never recovers job panics — they propagate to the caller of
// RunFrame. The logger is used only for a debug trace written before each
// frame's jobs run, never to swallow an error.
type Scheduler struct {
	jobs   []Job
	logger *zap.Logger
}

// NewScheduler constructs an empty scheduler. A nil logger is replaced with
// a no-op logger.
func NewScheduler(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{logger: logger}
}

// AddJob registers a job. Registration order does not affect execution
// order.
func (s *Scheduler) AddJob(job Job) {
	s.jobs = append(s.jobs, job)
}

// JobCount returns the number of registered jobs.
func (s *Scheduler) JobCount() int { return len(s.jobs) }

// RunFrame sorts jobs by ID and runs each to completion, in order, against
// the given frame and event bus.
func (s *Scheduler) RunFrame(frame Frame, bus *EventBus) {
	sort.Slice(s.jobs, func(i, j int) bool { return s.jobs[i].ID < s.jobs[j].ID })

	s.logger.Debug("running frame", zap.Uint64("frame_index", frame.Index), zap.Int("job_count", len(s.jobs)))
	for _, job := range s.jobs {
		job.Run(frame, bus)
	}
}
