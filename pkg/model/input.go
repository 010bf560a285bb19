package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

type RawCourse struct {
	Code     string `mapstructure:"code" validate:"required"`
	Capacity int    `mapstructure:"capacity" validate:"gte=0"`
}

type RawRequest struct {
	Course   string `mapstructure:"course" validate:"required"`
	Priority int    `mapstructure:"priority" validate:"gte=1,lte=5"`
}

type RawStudent struct {
	Code     string       `mapstructure:"code" validate:"required"`
	Requests []RawRequest `mapstructure:"requests" validate:"min=1,max=7,dive"`
}

// RawModelInput holds the input as written by the user, courses and requests still referenced by code
type RawModelInput struct {
	Courses  []RawCourse  `mapstructure:"courses"`
	Students []RawStudent `mapstructure:"students"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func InputFromJson(file string) (ModelInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return ModelInput{}, fmt.Errorf("cannot read input file: %w", err)
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return ModelInput{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	var rawInput RawModelInput
	if err := mapstructure.Decode(inputJson, &rawInput); err != nil {
		return ModelInput{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return ProcessRawInput(rawInput)
}

// ProcessRawInput resolves course codes into indices and enforces every input rule:
// non-negative capacities, unique codes, 1..7 requests per student, no repeated course per student,
// priorities in 1..5 and a priority sum not exceeding Gamma of the number of requests
func ProcessRawInput(rawInput RawModelInput) (ModelInput, error) {
	input := ModelInput{
		Courses:           make([]Course, 0, len(rawInput.Courses)),
		CourseIndexByCode: make(map[string]int, len(rawInput.Courses)),
		Capacities:        make([]int, 0, len(rawInput.Courses)),
		Students:          make([]Student, 0, len(rawInput.Students)),
	}

	//** Manage courses
	for index, rawCourse := range rawInput.Courses {
		if err := validate.Struct(rawCourse); err != nil {
			return ModelInput{}, fmt.Errorf("course %q: %w", rawCourse.Code, validationError(err))
		}
		if _, ok := input.CourseIndexByCode[rawCourse.Code]; ok {
			return ModelInput{}, fmt.Errorf("course %q: %w", rawCourse.Code, ErrDuplicateCode)
		}

		input.CourseIndexByCode[rawCourse.Code] = index
		input.Courses = append(input.Courses, Course{
			Code:     rawCourse.Code,
			Index:    index,
			Capacity: rawCourse.Capacity,
		})
		input.Capacities = append(input.Capacities, rawCourse.Capacity)
	}

	//** Manage students
	studentCodes := make(map[string]bool, len(rawInput.Students))
	for _, rawStudent := range rawInput.Students {
		if err := validate.Struct(rawStudent); err != nil {
			return ModelInput{}, fmt.Errorf("student %q: %w", rawStudent.Code, validationError(err))
		}
		if studentCodes[rawStudent.Code] {
			return ModelInput{}, fmt.Errorf("student %q: %w", rawStudent.Code, ErrDuplicateCode)
		}
		studentCodes[rawStudent.Code] = true

		student := Student{
			Code:     rawStudent.Code,
			Requests: make([]Request, 0, len(rawStudent.Requests)),
		}
		for _, rawRequest := range rawStudent.Requests {
			course, ok := input.CourseIndexByCode[rawRequest.Course]
			if !ok {
				return ModelInput{}, fmt.Errorf("student %q: %w %q", rawStudent.Code, ErrUnknownCourse, rawRequest.Course)
			}
			if lo.ContainsBy(student.Requests, func(request Request) bool { return request.Course == course }) {
				return ModelInput{}, fmt.Errorf("student %q: %w: %q", rawStudent.Code, ErrDuplicateRequest, rawRequest.Course)
			}
			student.Requests = append(student.Requests, Request{Course: course, Priority: rawRequest.Priority})
		}

		prioritySum := lo.SumBy(student.Requests, func(request Request) int { return request.Priority })
		if budget := Gamma(len(student.Requests)); prioritySum > budget {
			return ModelInput{}, fmt.Errorf("student %q: %w: %d > %d", rawStudent.Code, ErrPriorityBudget, prioritySum, budget)
		}

		input.Students = append(input.Students, student)
	}

	return input, nil
}

// Translates the first failed validation rule into one of the package's sentinel errors
func validationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	fieldError := fieldErrors[0]
	switch fieldError.StructField() {
	case "Capacity":
		return fmt.Errorf("%w: %v", ErrNegativeCapacity, fieldError.Value())
	case "Requests":
		return ErrInvalidRequestCount
	case "Priority":
		return fmt.Errorf("%w: got %v", ErrPriorityOutOfRange, fieldError.Value())
	default:
		return fmt.Errorf("%w: field %v failed on %q", ErrMalformedInput, fieldError.Namespace(), fieldError.Tag())
	}
}
