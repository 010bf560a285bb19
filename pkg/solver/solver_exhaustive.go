package solver

import (
	"context"
	"slices"
	"time"

	"github.com/limaJavier/allocation/pkg/model"
	"github.com/samber/lo"
)

// Slack used when comparing a lower bound against the incumbent, so rounding can never prune an improving branch
const boundTolerance = 1e-12

type exhaustiveSolver struct {
	recorder Recorder
}

// NewExhaustiveSolver returns a solver that enumerates every subset of every student's requests (backtracking)
// and keeps the best feasible complete assignment. It is globally optimal and exponential in the number of students
func NewExhaustiveSolver(opts ...Option) Solver {
	return &exhaustiveSolver{
		recorder: newOptions(opts).recorder,
	}
}

func (solver *exhaustiveSolver) Name() string {
	return "exhaustive"
}

func (solver *exhaustiveSolver) Solve(ctx context.Context, capacities []int, students []model.Student) Result {
	start := time.Now()

	//** Initialize search
	search := &exhaustiveSearch{
		ctx:        ctx,
		capacities: capacities,
		students:   students,
		selections: lo.Map(students, func(student model.Student, _ int) []selection { return selections(student) }),
		remaining:  slices.Clone(capacities),
		partial:    make(model.Assignment, len(students)),
	}

	// Seed the incumbent with the assignment that gives nothing to anyone, which is always feasible
	search.best = emptyAssignment(students)
	search.bestDissatisfaction = model.AverageDissatisfaction(search.best, students)

	//** Search
	search.expand(0, 0)

	result := newResult(search.best, students, search.cancelled, search.states)
	solver.recorder.SolveFinished(solver.Name(), time.Since(start), result.States, result.Cancelled)
	return result
}

// exhaustiveSearch is the accumulator owned by one Solve call
type exhaustiveSearch struct {
	ctx        context.Context
	capacities []int
	students   []model.Student
	selections [][]selection

	remaining []int            // Seats left after the decisions in partial
	partial   model.Assignment // Decisions for students 0..index-1

	best                model.Assignment
	bestDissatisfaction float64

	cancelled bool
	states    int
}

func (search *exhaustiveSearch) stop() bool {
	if !search.cancelled && cancelled(search.ctx) {
		search.cancelled = true
	}
	return search.cancelled
}

// Decides students index..n-1; partialCost is the dissatisfaction sum of students 0..index-1
func (search *exhaustiveSearch) expand(index int, partialCost float64) {
	if search.stop() {
		return
	}
	search.states++

	// Complete assignment
	if index == len(search.students) {
		if !model.ValidateCapacity(search.partial, search.capacities) {
			return
		}
		dissatisfaction := model.AverageDissatisfaction(search.partial, search.students)
		if dissatisfaction < search.bestDissatisfaction { // Ties keep the first solution found
			search.best = cloneAssignment(search.partial)
			search.bestDissatisfaction = dissatisfaction
		}
		return
	}

	if search.lowerBound(index, partialCost) > search.bestDissatisfaction+boundTolerance {
		return
	}

	student := search.students[index]
	for _, selection := range search.selections[index] {
		if search.stop() {
			return
		}
		// A prefix that already exceeds a capacity can never complete into a feasible assignment
		if !take(search.remaining, selection.courses) {
			continue
		}
		search.partial[student.Code] = selection.courses
		search.expand(index+1, partialCost+selection.cost)
		release(search.remaining, selection.courses)
	}
	delete(search.partial, student.Code)
}

// Lower bound of the average dissatisfaction of any completion of the current prefix: every remaining student
// is optimistically given all of their requested courses that still have a free seat
func (search *exhaustiveSearch) lowerBound(index int, partialCost float64) float64 {
	bound := partialCost
	for _, student := range search.students[index:] {
		open := lo.FilterMap(student.Requests, func(request model.Request, _ int) (int, bool) {
			return request.Course, search.remaining[request.Course] > 0
		})
		bound += model.IndividualDissatisfaction(open, student.Requests)
	}
	return bound / float64(len(search.students))
}
