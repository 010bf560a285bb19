package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/limaJavier/allocation/internal/csvio"
	"github.com/limaJavier/allocation/internal/metrics"
	"github.com/limaJavier/allocation/pkg/model"
	"github.com/limaJavier/allocation/pkg/solver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/puzpuzpuz/xsync/v4"
	"github.com/samber/lo"
)

type BenchmarkResult struct {
	Instance        int     `csv:"instance"`
	Students        int     `csv:"students"`
	Courses         int     `csv:"courses"`
	Solver          string  `csv:"solver"`
	Duration        float64 `csv:"duration_ms"`
	States          int     `csv:"states"`
	Dissatisfaction float64 `csv:"dissatisfaction"`
	Gap             float64 `csv:"gap"` // Distance to the best completed result of the same instance
	Cancelled       bool    `csv:"cancelled"`
	Feasible        bool    `csv:"feasible"`
}

type resultKey struct {
	instance int
	solver   string
}

func main() {
	instancesPtr := flag.Int("instances", 5, "Number of generated instances")
	studentsPtr := flag.Int("students", 8, "Students per instance")
	coursesPtr := flag.Int("courses", 3, "Courses per instance")
	requestsPtr := flag.Int("requests", 3, "Maximum requests per student (at most 7)")
	capacityPtr := flag.Int("capacity", 4, "Maximum capacity per course")
	timeoutPtr := flag.Duration("timeout", 10*time.Second, "Per-solver time budget; exceeded searches are cancelled")
	outFilePtr := flag.String("out", "benchmark_results.csv", "Path of the CSV results file")
	metricsFilePtr := flag.String("metrics", "", "Path of a Prometheus textfile with solver metrics; if empty, no metrics are written")
	flag.Parse()

	if *coursesPtr < 1 || *studentsPtr < 0 || *requestsPtr < 1 || *capacityPtr < 0 {
		log.Fatal("courses and requests must be positive, students and capacity must not be negative")
	}

	registry := prometheus.NewRegistry()
	recorder := metrics.NewPrometheus(registry, "")
	allocators := []solver.Solver{
		solver.NewExhaustiveSolver(solver.WithRecorder(recorder)),
		solver.NewDynamicSolver(solver.WithRecorder(recorder)),
		solver.NewGreedySolver(solver.WithRecorder(recorder)),
	}

	results := xsync.NewMap[resultKey, *BenchmarkResult]()
	for instance := range *instancesPtr {
		input := model.GenerateInput(*coursesPtr, *studentsPtr, *requestsPtr, *capacityPtr, uint64(instance))
		fmt.Printf("Benchmarking instance %v with %v students and %v courses\n", instance, len(input.Students), len(input.Courses))

		// Solvers share no state, so each one runs on its own goroutine
		var wg sync.WaitGroup
		for _, allocator := range allocators {
			wg.Add(1)
			go func() {
				defer wg.Done()
				result := measure(allocator, input, instance, *timeoutPtr)
				results.Store(resultKey{instance: instance, solver: allocator.Name()}, result)
			}()
		}
		wg.Wait()
	}

	rows := make([]*BenchmarkResult, 0, results.Size())
	for instance := range *instancesPtr {
		for _, allocator := range allocators {
			if result, ok := results.Load(resultKey{instance: instance, solver: allocator.Name()}); ok {
				rows = append(rows, result)
			}
		}
	}
	fillGaps(rows)

	if err := csvio.ExportFile(rows, *outFilePtr); err != nil {
		log.Fatalf("cannot write benchmark results: %v", err)
	}
	if *metricsFilePtr != "" {
		if err := prometheus.WriteToTextfile(*metricsFilePtr, registry); err != nil {
			log.Fatalf("cannot write metrics file: %v", err)
		}
	}
}

func measure(allocator solver.Solver, input model.ModelInput, instance int, timeout time.Duration) *BenchmarkResult {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	result := allocator.Solve(ctx, input.Capacities, input.Students)
	duration := time.Since(start)

	return &BenchmarkResult{
		Instance:        instance,
		Students:        len(input.Students),
		Courses:         len(input.Courses),
		Solver:          allocator.Name(),
		Duration:        float64(duration.Microseconds()) / 1000,
		States:          result.States,
		Dissatisfaction: result.Dissatisfaction,
		Cancelled:       result.Cancelled,
		Feasible:        model.ValidateCapacity(result.Assignment, input.Capacities),
	}
}

// Sets every row's gap to its distance from the lowest dissatisfaction among the completed rows of its instance.
// Instances without completed rows keep a zero gap
func fillGaps(rows []*BenchmarkResult) {
	for _, instanceRows := range lo.GroupBy(rows, func(row *BenchmarkResult) int { return row.Instance }) {
		completed := lo.Filter(instanceRows, func(row *BenchmarkResult, _ int) bool { return !row.Cancelled })
		if len(completed) == 0 {
			continue
		}
		best := lo.MinBy(completed, func(a, b *BenchmarkResult) bool { return a.Dissatisfaction < b.Dissatisfaction })
		for _, row := range instanceRows {
			row.Gap = row.Dissatisfaction - best.Dissatisfaction
		}
	}
}
