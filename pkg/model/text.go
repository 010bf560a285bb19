package model

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const MaxRequests = 7

func InputFromText(file string) (ModelInput, error) {
	reader, err := os.Open(file)
	if err != nil {
		return ModelInput{}, fmt.Errorf("cannot read input file: %w", err)
	}
	defer reader.Close()
	return ParseText(reader)
}

// ParseText reads the plain-text input format. Blank lines are ignored:
//
//	<number of courses>
//	<course code>,<capacity>         one line per course
//	<number of students>
//	<student code>,<s>               followed by s lines of
//	<course code>,<priority>
func ParseText(reader io.Reader) (ModelInput, error) {
	lines, err := readLines(reader)
	if err != nil {
		return ModelInput{}, err
	}

	//** Courses
	courses, err := lines.nextInt()
	if err != nil {
		return ModelInput{}, err
	} else if courses < 0 {
		return ModelInput{}, fmt.Errorf("%w: negative number of courses: %d", ErrMalformedInput, courses)
	}
	rawInput := RawModelInput{
		Courses: make([]RawCourse, 0, courses),
	}
	for range courses {
		code, capacity, err := lines.nextPair()
		if err != nil {
			return ModelInput{}, err
		}
		rawInput.Courses = append(rawInput.Courses, RawCourse{Code: code, Capacity: capacity})
	}

	//** Students
	// The declared number of students is kept for format parity, blocks are read until the input ends
	if _, err := lines.nextInt(); err != nil {
		return ModelInput{}, err
	}
	for !lines.done() {
		code, requests, err := lines.nextPair()
		if err != nil {
			return ModelInput{}, err
		}
		if requests < 1 || requests > MaxRequests {
			return ModelInput{}, fmt.Errorf("student %q: %w: got %d", code, ErrInvalidRequestCount, requests)
		}

		student := RawStudent{
			Code:     code,
			Requests: make([]RawRequest, 0, requests),
		}
		for range requests {
			course, priority, err := lines.nextPair()
			if err != nil {
				return ModelInput{}, err
			}
			student.Requests = append(student.Requests, RawRequest{Course: course, Priority: priority})
		}
		rawInput.Students = append(rawInput.Students, student)
	}

	return ProcessRawInput(rawInput)
}

type textLines struct {
	lines   []string
	numbers []int // Original (1-based) line number of every non-blank line
	current int
}

func readLines(reader io.Reader) (*textLines, error) {
	lines := &textLines{}
	scanner := bufio.NewScanner(reader)
	for number := 1; scanner.Scan(); number++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines.lines = append(lines.lines, line)
		lines.numbers = append(lines.numbers, number)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}
	return lines, nil
}

func (lines *textLines) done() bool {
	return lines.current >= len(lines.lines)
}

func (lines *textLines) next() (line string, number int, err error) {
	if lines.done() {
		return "", 0, fmt.Errorf("%w: unexpected end of input", ErrMalformedInput)
	}
	line, number = lines.lines[lines.current], lines.numbers[lines.current]
	lines.current++
	return line, number, nil
}

func (lines *textLines) nextInt() (int, error) {
	line, number, err := lines.next()
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: expected an integer, got %q", ErrMalformedInput, number, line)
	}
	return value, nil
}

// Reads a "<code>,<integer>" line
func (lines *textLines) nextPair() (string, int, error) {
	line, number, err := lines.next()
	if err != nil {
		return "", 0, err
	}
	code, valueStr, ok := strings.Cut(line, ",")
	if !ok {
		return "", 0, fmt.Errorf("%w: line %d: expected \"<code>,<integer>\", got %q", ErrMalformedInput, number, line)
	}
	value, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		return "", 0, fmt.Errorf("%w: line %d: expected an integer, got %q", ErrMalformedInput, number, valueStr)
	}
	return strings.TrimSpace(code), value, nil
}
