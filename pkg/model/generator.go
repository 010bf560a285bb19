package model

import (
	"fmt"
	"math/rand/v2"

	"github.com/samber/lo"
)

// GenerateInput builds a random valid input from a seed. Every student requests between 1 and maxRequests
// distinct courses and capacities are drawn from [0, maxCapacity]. maxRequests is clamped to [1, min(courses, 7)]
// and a negative maxCapacity to 0. It panics if courses is smaller than 1, since no request could be drawn
func GenerateInput(courses, students, maxRequests, maxCapacity int, seed uint64) ModelInput {
	if courses < 1 {
		panic(fmt.Sprintf("cannot generate an input with %d courses", courses))
	}

	random := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	maxRequests = max(1, min(maxRequests, courses, MaxRequests))
	maxCapacity = max(0, maxCapacity)

	rawInput := RawModelInput{
		Courses:  make([]RawCourse, 0, courses),
		Students: make([]RawStudent, 0, students),
	}
	courseCode := func(course int) string { return fmt.Sprintf("C%03d", course) }

	for course := range courses {
		rawInput.Courses = append(rawInput.Courses, RawCourse{
			Code:     courseCode(course),
			Capacity: random.IntN(maxCapacity + 1),
		})
	}

	for student := range students {
		requests := 1 + random.IntN(maxRequests)

		// Lower the largest priority until the budget holds; the minimal sum (all ones) always fits
		priorities := lo.Times(requests, func(_ int) int { return 1 + random.IntN(5) })
		for lo.Sum(priorities) > Gamma(requests) {
			priorities[lo.IndexOf(priorities, lo.Max(priorities))]--
		}

		rawStudent := RawStudent{
			Code:     fmt.Sprintf("S%03d", student),
			Requests: make([]RawRequest, 0, requests),
		}
		for i, course := range random.Perm(courses)[:requests] {
			rawStudent.Requests = append(rawStudent.Requests, RawRequest{
				Course:   courseCode(course),
				Priority: priorities[i],
			})
		}
		rawInput.Students = append(rawInput.Students, rawStudent)
	}

	return lo.Must(ProcessRawInput(rawInput))
}
