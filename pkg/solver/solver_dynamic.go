package solver

import (
	"context"
	"math"
	"slices"
	"time"

	"github.com/limaJavier/allocation/pkg/model"
	"github.com/samber/lo"
)

// Root choice standing for the assignment that gives nothing to anyone
const baselineChoice = -1

type dynamicSolver struct {
	recorder Recorder
}

// NewDynamicSolver returns a solver computing the optimum through memoized recursion over
// (student index, remaining capacities) states. The state space is bounded by the product of (capacity + 1)
// over all courses, which is usually far smaller than the exhaustive enumeration
func NewDynamicSolver(opts ...Option) Solver {
	return &dynamicSolver{
		recorder: newOptions(opts).recorder,
	}
}

func (solver *dynamicSolver) Name() string {
	return "dynamic"
}

func (solver *dynamicSolver) Solve(ctx context.Context, capacities []int, students []model.Student) Result {
	start := time.Now()

	//** Search
	search := newDynamicSearch(ctx, students)
	_, complete := search.dp(0, capacities)

	//** Reconstruct assignment
	var assignment model.Assignment
	if complete {
		assignment = search.reconstruct(0, capacities, emptyAssignment(students))
	} else {
		assignment = search.reconstructRoot(capacities)
	}

	result := newResult(assignment, students, !complete, search.memo.Len())
	solver.recorder.SolveFinished(solver.Name(), time.Since(start), result.States, result.Cancelled)
	return result
}

// dynamicSearch is the arena of one Solve call: the memo table and the root side channel are discarded with it
type dynamicSearch struct {
	ctx        context.Context
	students   []model.Student
	selections [][]selection
	memo       *memoTable

	// Best completely evaluated decision for the first student and the dissatisfaction sum it leads to
	rootBest   float64
	rootChoice int

	cancelled bool
}

func newDynamicSearch(ctx context.Context, students []model.Student) *dynamicSearch {
	search := &dynamicSearch{
		ctx:        ctx,
		students:   students,
		selections: lo.Map(students, func(student model.Student, _ int) []selection { return selections(student) }),
		memo:       newMemoTable(),
		rootChoice: baselineChoice,
	}
	// The baseline is the fallback answer until some root decision is completely evaluated
	search.rootBest = lo.SumBy(search.selections, func(studentSelections []selection) float64 {
		return studentSelections[0].cost
	})
	return search
}

func (search *dynamicSearch) stop() bool {
	if !search.cancelled && cancelled(search.ctx) {
		search.cancelled = true
	}
	return search.cancelled
}

// Returns the minimal dissatisfaction sum of students index..n-1 given the remaining capacities caps.
// complete is false when the search was cancelled before the state was solved; nothing is memoized in that case
func (search *dynamicSearch) dp(index int, caps []int) (value float64, complete bool) {
	if search.stop() {
		return 0, false
	}
	if index == len(search.students) {
		return 0.0, true
	}
	if entry, ok := search.memo.get(index, caps); ok {
		return entry.value, true
	}

	best, bestChoice := math.Inf(1), 0
	for choice, selection := range search.selections[index] {
		if search.stop() {
			return 0, false
		}

		next := slices.Clone(caps)
		if !take(next, selection.courses) { // Infeasible subsets are skipped entirely
			continue
		}
		rest, complete := search.dp(index+1, next)
		if !complete {
			return 0, false
		}

		total := selection.cost + rest
		if total < best {
			best, bestChoice = total, choice
		}
		if index == 0 && total < search.rootBest {
			search.rootBest, search.rootChoice = total, choice
		}
	}

	search.memo.put(index, caps, best, bestChoice)
	return best, true
}

// Walks forward from state (index, caps) following the recorded choices. A state missing from the memo
// (only possible after cancellation) leaves the remaining students without courses
func (search *dynamicSearch) reconstruct(index int, caps []int, assignment model.Assignment) model.Assignment {
	caps = slices.Clone(caps)
	for ; index < len(search.students); index++ {
		entry, ok := search.memo.get(index, caps)
		if !ok {
			break
		}
		courses := search.selections[index][entry.choice].courses
		commit(caps, courses)
		assignment[search.students[index].Code] = slices.Clone(courses)
	}
	return assignment
}

// Rebuilds the assignment behind the best root decision seen before cancellation
func (search *dynamicSearch) reconstructRoot(capacities []int) model.Assignment {
	assignment := emptyAssignment(search.students)
	if search.rootChoice == baselineChoice {
		return assignment
	}

	caps := slices.Clone(capacities)
	courses := search.selections[0][search.rootChoice].courses
	commit(caps, courses)
	assignment[search.students[0].Code] = slices.Clone(courses)
	return search.reconstruct(1, caps, assignment)
}
