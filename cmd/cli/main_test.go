package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/limaJavier/allocation/pkg/model"
	"github.com/limaJavier/allocation/pkg/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolve(t *testing.T) {
	input := model.GenerateInput(3, 6, 3, 3, 1)

	t.Run("Completed", func(t *testing.T) {
		result := solve(context.Background(), solver.NewDynamicSolver(), input)

		assert.False(t, result.Cancelled)
		assert.True(t, model.ValidateCapacity(result.Assignment, input.Capacities))
	})

	t.Run("Cancelled", func(t *testing.T) {
		//** Arrange
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		//** Act
		result := solve(ctx, solver.NewExhaustiveSolver(), input)

		//** Assert
		assert.True(t, result.Cancelled)
		assert.Len(t, result.Assignment, len(input.Students))
		assert.True(t, model.ValidateCapacity(result.Assignment, input.Capacities))
	})

	t.Run("Deadline", func(t *testing.T) {
		large := model.GenerateInput(5, 40, 5, 6, 2)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		result := solve(ctx, solver.NewExhaustiveSolver(), large)

		assert.True(t, model.ValidateCapacity(result.Assignment, large.Capacities))
	})
}

func TestWriteOutput(t *testing.T) {
	input, err := model.ParseText(strings.NewReader("2\nM1,1\nM2,1\n2\nE1,1\nM1,2\nE2,2\nM1,3\nM2,2\n"))
	require.NoError(t, err)
	result := solver.NewGreedySolver().Solve(context.Background(), input.Capacities, input.Students)

	t.Run("Text", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, writeOutput(&out, "text", "greedy", input, result, time.Millisecond))

		assert.Contains(t, out.String(), "E1: \n")
		assert.Contains(t, out.String(), "E2: M1, M2\n")
		assert.Contains(t, out.String(), "Solver: greedy\n")
	})

	t.Run("JSON", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, writeOutput(&out, "json", "greedy", input, result, time.Millisecond))

		var parsed output
		require.NoError(t, json.Unmarshal(out.Bytes(), &parsed))
		assert.Equal(t, map[string][]string{"E1": {}, "E2": {"M1", "M2"}}, parsed.Assignment)
		assert.False(t, parsed.Cancelled)
	})

	t.Run("CSV", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, writeOutput(&out, "csv", "greedy", input, result, time.Millisecond))

		assert.True(t, strings.HasPrefix(out.String(), "student,courses,assigned,requested,dissatisfaction\n"))
	})
}
