package model

type Course struct {
	Code     string
	Index    int
	Capacity int
}

// Request is one entry of a student's wish list: a course index and the priority (1..5) given to it
type Request struct {
	Course   int
	Priority int
}

type Student struct {
	Code     string
	Requests []Request // Ordered as submitted; no course index repeats
}

// Assignment maps a student code to the indices of the courses the student was given (order is irrelevant)
type Assignment map[string][]int

type ModelInput struct {
	Courses           []Course
	CourseIndexByCode map[string]int
	Capacities        []int     // Capacities[i] is the capacity of the course with index i
	Students          []Student // Input order, which is the stable student ordering used by every solver
}
