package solver

import (
	"context"
	"fmt"

	"github.com/limaJavier/allocation/pkg/model"
)

type Solver interface {
	// Returns the strategy's name ("exhaustive", "dynamic" or "greedy")
	Name() string

	// Assigns requested courses to students without exceeding capacities. Cancelling ctx stops a long search
	// at the next checkpoint; the result is then flagged as cancelled but remains a feasible assignment.
	// Students are processed in slice order, which is the stable ordering ties are resolved against
	Solve(ctx context.Context, capacities []int, students []model.Student) Result
}

type Result struct {
	Assignment      model.Assignment // Every student is present, possibly with no courses
	Dissatisfaction float64          // Average dissatisfaction of Assignment
	Cancelled       bool
	States          int // Search nodes (exhaustive), memoized states (dynamic) or processed requests (greedy)
}

// InvalidStateError signals that a solver drove a remaining capacity below zero, which is a defect in the solver itself
type InvalidStateError struct {
	Course    int
	Remaining int
}

func (err InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state: remaining capacity of course %d is %d", err.Course, err.Remaining)
}

func newResult(assignment model.Assignment, students []model.Student, cancelled bool, states int) Result {
	return Result{
		Assignment:      assignment,
		Dissatisfaction: model.AverageDissatisfaction(assignment, students),
		Cancelled:       cancelled,
		States:          states,
	}
}
