package main

import (
	"testing"
	"time"

	"github.com/limaJavier/allocation/pkg/model"
	"github.com/limaJavier/allocation/pkg/solver"
	"github.com/stretchr/testify/assert"
)

func TestFillGaps(t *testing.T) {
	rows := []*BenchmarkResult{
		{Instance: 0, Solver: "exhaustive", Dissatisfaction: 0.25},
		{Instance: 0, Solver: "dynamic", Dissatisfaction: 0.25},
		{Instance: 0, Solver: "greedy", Dissatisfaction: 0.5},
		{Instance: 1, Solver: "exhaustive", Dissatisfaction: 0.1, Cancelled: true},
		{Instance: 1, Solver: "greedy", Dissatisfaction: 0.3},
		{Instance: 2, Solver: "exhaustive", Dissatisfaction: 0.4, Cancelled: true},
	}

	fillGaps(rows)

	assert.InDelta(t, 0.0, rows[0].Gap, 1e-12)
	assert.InDelta(t, 0.0, rows[1].Gap, 1e-12)
	assert.InDelta(t, 0.25, rows[2].Gap, 1e-12)
	assert.InDelta(t, -0.2, rows[3].Gap, 1e-12) // Cancelled rows are measured but never taken as reference
	assert.InDelta(t, 0.0, rows[4].Gap, 1e-12)
	assert.Zero(t, rows[5].Gap)
}

func TestMeasure(t *testing.T) {
	input := model.GenerateInput(3, 5, 3, 3, 7)

	result := measure(solver.NewGreedySolver(), input, 4, time.Second)

	assert.Equal(t, 4, result.Instance)
	assert.Equal(t, "greedy", result.Solver)
	assert.Equal(t, 5, result.Students)
	assert.Equal(t, 3, result.Courses)
	assert.True(t, result.Feasible)
	assert.False(t, result.Cancelled)
}
