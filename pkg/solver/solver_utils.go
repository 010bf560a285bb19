package solver

import (
	"context"
	"maps"
	"slices"

	"github.com/limaJavier/allocation/pkg/model"
	"github.com/samber/lo"
)

// selection is one candidate subset of a student's requests together with its individual dissatisfaction
type selection struct {
	courses []int
	cost    float64
}

// Enumerates every subset of the student's requests (empty subset included) by size, then in combination order
func selections(student model.Student) []selection {
	return lo.Map(subsets(student.Requests), func(subset []model.Request, _ int) selection {
		courses := lo.Map(subset, func(request model.Request, _ int) int { return request.Course })
		return selection{
			courses: courses,
			cost:    model.IndividualDissatisfaction(courses, student.Requests),
		}
	})
}

func subsets(requests []model.Request) [][]model.Request {
	result := make([][]model.Request, 0, 1<<len(requests))
	for size := 0; size <= len(requests); size++ {
		result = appendCombinations(result, requests, size, 0, make([]model.Request, 0, size))
	}
	return result
}

func appendCombinations(result [][]model.Request, requests []model.Request, size, start int, prefix []model.Request) [][]model.Request {
	if len(prefix) == size {
		return append(result, slices.Clone(prefix))
	}
	for i := start; i <= len(requests)-(size-len(prefix)); i++ {
		result = appendCombinations(result, requests, size, i+1, append(prefix, requests[i]))
	}
	return result
}

// Polls the cancellation signal without blocking
func cancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// Reserves one seat in every given course, or in none of them if any course is exhausted
func take(remaining []int, courses []int) bool {
	if lo.SomeBy(courses, func(course int) bool { return remaining[course] <= 0 }) {
		return false
	}
	for _, course := range courses {
		remaining[course]--
		if remaining[course] < 0 {
			panic(InvalidStateError{Course: course, Remaining: remaining[course]})
		}
	}
	return true
}

// Decrements the seats of courses already known to be feasible; running out of seats here is a solver defect
func commit(remaining []int, courses []int) {
	for _, course := range courses {
		if remaining[course]--; remaining[course] < 0 {
			panic(InvalidStateError{Course: course, Remaining: remaining[course]})
		}
	}
}

func release(remaining []int, courses []int) {
	for _, course := range courses {
		remaining[course]++
	}
}

func emptyAssignment(students []model.Student) model.Assignment {
	assignment := make(model.Assignment, len(students))
	for _, student := range students {
		assignment[student.Code] = []int{}
	}
	return assignment
}

func cloneAssignment(assignment model.Assignment) model.Assignment {
	clone := maps.Clone(assignment)
	for student, courses := range clone {
		clone[student] = slices.Clone(courses)
	}
	return clone
}
