package solver

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/limaJavier/allocation/pkg/model"
	"github.com/samber/lo"
)

type greedySolver struct {
	recorder Recorder
}

// NewGreedySolver returns a single-pass heuristic: all requests are sorted by descending priority and granted
// while seats remain. It runs in O(R log R) for R requests and is feasible but not necessarily optimal.
// Equal priorities keep the input order (student order, then request order within a student)
func NewGreedySolver(opts ...Option) Solver {
	return &greedySolver{
		recorder: newOptions(opts).recorder,
	}
}

func (solver *greedySolver) Name() string {
	return "greedy"
}

type greedyRequest struct {
	priority int
	student  int
	course   int
}

// Solve never polls ctx: the pass is polynomial and always runs to completion
func (solver *greedySolver) Solve(_ context.Context, capacities []int, students []model.Student) Result {
	start := time.Now()

	//** Flatten requests
	requests := lo.FlatMap(students, func(student model.Student, studentIndex int) []greedyRequest {
		return lo.Map(student.Requests, func(request model.Request, _ int) greedyRequest {
			return greedyRequest{priority: request.Priority, student: studentIndex, course: request.Course}
		})
	})
	slices.SortStableFunc(requests, func(a, b greedyRequest) int {
		return cmp.Compare(b.priority, a.priority)
	})

	//** Assign seats
	remaining := slices.Clone(capacities)
	assigned := make([][]int, len(students))
	for _, request := range requests {
		if remaining[request.course] <= 0 || slices.Contains(assigned[request.student], request.course) {
			continue // Skipped requests are never reconsidered
		}
		assigned[request.student] = append(assigned[request.student], request.course)
		commit(remaining, []int{request.course})
		solver.recorder.SeatTaken(solver.Name(), request.course, remaining[request.course])
	}

	assignment := emptyAssignment(students)
	for studentIndex, student := range students {
		if len(assigned[studentIndex]) > 0 {
			assignment[student.Code] = assigned[studentIndex]
		}
	}

	result := newResult(assignment, students, false, len(requests))
	solver.recorder.SolveFinished(solver.Name(), time.Since(start), result.States, result.Cancelled)
	return result
}
