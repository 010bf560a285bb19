package solver

import "time"

// Recorder receives instrumentation events from solvers. Implementations must be safe for concurrent use
type Recorder interface {
	SolveFinished(solver string, duration time.Duration, states int, cancelled bool)

	// Called by the greedy solver every time it commits a seat; remaining is the course's capacity left afterwards
	SeatTaken(solver string, course, remaining int)
}

type nopRecorder struct{}

func (nopRecorder) SolveFinished(string, time.Duration, int, bool) {}
func (nopRecorder) SeatTaken(string, int, int)                    {}

type Option func(*options)

type options struct {
	recorder Recorder
}

func WithRecorder(recorder Recorder) Option {
	return func(opts *options) {
		if recorder != nil {
			opts.recorder = recorder
		}
	}
}

func newOptions(opts []Option) options {
	result := options{recorder: nopRecorder{}}
	for _, opt := range opts {
		opt(&result)
	}
	return result
}
