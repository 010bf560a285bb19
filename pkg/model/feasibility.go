package model

// ValidateCapacity reports whether the assignment is feasible, i.e. no course is assigned to more students than its capacity.
// Referencing a course index outside the capacity vector makes the assignment infeasible
func ValidateCapacity(assignment Assignment, capacities []int) bool {
	counts := make([]int, len(capacities))

	for _, courses := range assignment {
		for _, course := range courses {
			if course < 0 || course >= len(capacities) {
				return false
			}
			counts[course]++
		}
	}

	for course, count := range counts {
		if count > capacities[course] {
			return false
		}
	}
	return true
}
