package model

import (
	"strconv"

	"github.com/samber/lo"
)

// AssignmentCodes translates an assignment of course indices into course codes.
// An index without a known code is rendered as its decimal value
func (input ModelInput) AssignmentCodes(assignment Assignment) map[string][]string {
	courseCodeByIndex := lo.Invert(input.CourseIndexByCode)

	return lo.MapValues(assignment, func(courses []int, _ string) []string {
		return lo.Map(courses, func(course int, _ int) string {
			if code, ok := courseCodeByIndex[course]; ok {
				return code
			}
			return strconv.Itoa(course)
		})
	})
}
