package model

import (
	"slices"

	"github.com/samber/lo"
)

// Gamma is the normalization constant γ(x) = 3x - 1. It bounds the priority sum of a student with x requests
func Gamma(x int) int {
	return 3*x - 1
}

// IndividualDissatisfaction computes (1 - k'/k) * (U / γ(k)), where k is the number of requested courses,
// k' the number of requested courses present in assigned and U the priority sum of the requested courses
// missing from assigned. It is 0 when every requested course is assigned and at most 1 otherwise
func IndividualDissatisfaction(assigned []int, requested []Request) float64 {
	k := len(requested)
	if k == 0 {
		return 0.0
	}

	assignedCount, unassignedPriority := 0, 0
	for _, request := range requested {
		if slices.Contains(assigned, request.Course) {
			assignedCount++
		} else {
			unassignedPriority += request.Priority
		}
	}

	return (1 - float64(assignedCount)/float64(k)) * (float64(unassignedPriority) / float64(Gamma(k)))
}

// AverageDissatisfaction is the mean of IndividualDissatisfaction over all students (0 when there are none)
func AverageDissatisfaction(assignment Assignment, students []Student) float64 {
	if len(students) == 0 {
		return 0.0
	}

	total := lo.SumBy(students, func(student Student) float64 {
		return IndividualDissatisfaction(assignment[student.Code], student.Requests)
	})
	return total / float64(len(students))
}
