package csvio

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/limaJavier/allocation/pkg/model"
)

type AssignmentRow struct {
	Student         string  `csv:"student"`
	Courses         string  `csv:"courses"`
	Assigned        int     `csv:"assigned"`
	Requested       int     `csv:"requested"`
	Dissatisfaction float64 `csv:"dissatisfaction"`
}

// AssignmentRows flattens an assignment into one row per student (input order), courses rendered by code
// and separated by semicolons
func AssignmentRows(input model.ModelInput, assignment model.Assignment) []*AssignmentRow {
	codes := input.AssignmentCodes(assignment)

	rows := make([]*AssignmentRow, 0, len(input.Students))
	for _, student := range input.Students {
		rows = append(rows, &AssignmentRow{
			Student:         student.Code,
			Courses:         strings.Join(codes[student.Code], ";"),
			Assigned:        len(assignment[student.Code]),
			Requested:       len(student.Requests),
			Dissatisfaction: model.IndividualDissatisfaction(assignment[student.Code], student.Requests),
		})
	}
	return rows
}

// Export writes any slice of csv-tagged struct pointers (header included)
func Export[T any](rows []*T, out io.Writer) error {
	if err := gocsv.Marshal(&rows, out); err != nil {
		return fmt.Errorf("cannot write CSV: %w", err)
	}
	return nil
}

// ExportFile replaces the file at path with the CSV rendering of rows
func ExportFile[T any](rows []*T, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create CSV file: %w", err)
	}
	return exportAndClose(rows, out)
}

// Writes rows into out and closes it; a failed close is reported when the write itself succeeded
func exportAndClose[T any](rows []*T, out io.WriteCloser) (err error) {
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("cannot close CSV file: %w", closeErr)
		}
	}()

	if err := gocsv.Marshal(&rows, out); err != nil {
		return fmt.Errorf("cannot write CSV file: %w", err)
	}
	return nil
}
