package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/limaJavier/allocation/internal/csvio"
	"github.com/limaJavier/allocation/pkg/model"
	"github.com/limaJavier/allocation/pkg/solver"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

type config struct {
	Solver  string        `mapstructure:"solver"`
	Timeout time.Duration `mapstructure:"timeout"`
	Format  string        `mapstructure:"format"`
}

type output struct {
	Solver          string              `json:"solver"`
	Assignment      map[string][]string `json:"assignment"`
	Dissatisfaction float64             `json:"dissatisfaction"`
	Cancelled       bool                `json:"cancelled"`
	States          int                 `json:"states"`
	ElapsedMs       int64               `json:"elapsedMs"`
}

var (
	validFormats = []string{"text", "csv", "json"}
	solvers      = map[string]func(...solver.Option) solver.Solver{
		"exhaustive": solver.NewExhaustiveSolver,
		"dynamic":    solver.NewDynamicSolver,
		"greedy":     solver.NewGreedySolver,
	}
)

func main() {
	cfg := loadConfig()

	// Define arguments
	solverPtr := flag.String("solver", cfg.Solver, `Solver to use. Allowed values are:
- "exhaustive" (enumerates every assignment, optimal but exponential),
- "dynamic" (memoized recursion over remaining capacities, optimal) and
- "greedy" (single pass by descending priority, fast but not necessarily optimal)`)
	filePathPtr := flag.String("file", "", "Path to the input file (.json files are read as JSON, anything else as the text format)")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	formatPtr := flag.String("format", cfg.Format, "Output format. Allowed values are: \"text\", \"csv\", \"json\"")
	timeoutPtr := flag.Duration("timeout", cfg.Timeout, "Cancel the search after this long and report the best assignment found so far; 0 disables the timeout")
	flag.Parse()
	solverStr := strings.ToLower(*solverPtr)
	format := strings.ToLower(*formatPtr)
	filePath := *filePathPtr
	outFile := *outFilePathPtr
	timeout := *timeoutPtr

	// Validate arguments
	if _, ok := solvers[solverStr]; !ok {
		log.Fatalf("%v is not a valid solver", solverStr)
	} else if !slices.Contains(validFormats, format) {
		log.Fatalf("%v is not a valid format", format)
	} else if filePath == "" {
		log.Fatal("an input file must be specified")
	} else if timeout < 0 {
		log.Fatalf("timeout must not be negative: %v", timeout)
	}

	// Extract input
	input, err := readInput(filePath)
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}

	// Cancel on interrupt or timeout
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	allocator := solvers[solverStr]()
	start := time.Now()
	result := solve(ctx, allocator, input)
	elapsed := time.Since(start)
	if result.Cancelled {
		log.Printf("search cancelled after %v, reporting the best assignment found", elapsed)
	}

	// Verify assignment feasibility
	if !model.ValidateCapacity(result.Assignment, input.Capacities) {
		log.Printf("solver %v produced an assignment exceeding course capacities", allocator.Name())
		os.Exit(15)
	}

	// Write output
	var writer io.Writer = os.Stdout
	if outFile != "" {
		file, err := os.Create(outFile)
		if err != nil {
			log.Fatalf("an error occurred while creating the output file: %v", err)
		}
		defer file.Close()
		writer = file
	}

	if err := writeOutput(writer, format, allocator.Name(), input, result, elapsed); err != nil {
		log.Fatalf("an error occurred while writing the output: %v", err)
	}
}

// Runs the solver on a background worker. When ctx ends first, the cancellation is logged right away and
// the solver's best assignment is still awaited
func solve(ctx context.Context, allocator solver.Solver, input model.ModelInput) solver.Result {
	done := make(chan solver.Result, 1)
	go func() {
		done <- allocator.Solve(ctx, input.Capacities, input.Students)
	}()

	select {
	case result := <-done:
		return result
	case <-ctx.Done():
		log.Printf("cancellation requested (%v), waiting for %v to return its best assignment", context.Cause(ctx), allocator.Name())
		return <-done
	}
}

func readInput(filePath string) (model.ModelInput, error) {
	if strings.EqualFold(filepath.Ext(filePath), ".json") {
		return model.InputFromJson(filePath)
	}
	return model.InputFromText(filePath)
}

func writeOutput(writer io.Writer, format, solverName string, input model.ModelInput, result solver.Result, elapsed time.Duration) error {
	switch format {
	case "csv":
		return csvio.Export(csvio.AssignmentRows(input, result.Assignment), writer)
	case "json":
		bytes, err := json.Marshal(output{
			Solver:          solverName,
			Assignment:      input.AssignmentCodes(result.Assignment),
			Dissatisfaction: result.Dissatisfaction,
			Cancelled:       result.Cancelled,
			States:          result.States,
			ElapsedMs:       elapsed.Milliseconds(),
		})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(writer, string(bytes))
		return err
	default:
		codes := input.AssignmentCodes(result.Assignment)
		for _, student := range input.Students {
			fmt.Fprintf(writer, "%v: %v\n", student.Code, strings.Join(codes[student.Code], ", "))
		}
		fmt.Fprintf(writer, "Solver: %v\n", solverName)
		fmt.Fprintf(writer, "Dissatisfaction: %.5f\n", result.Dissatisfaction)
		fmt.Fprintf(writer, "States: %v\n", result.States)
		fmt.Fprintf(writer, "Elapsed: %v\n", elapsed)
		_, err := fmt.Fprintf(writer, "Cancelled: %v\n", result.Cancelled)
		return err
	}
}

// Reads config.json from the executable's directory when present; flags override every value
func loadConfig() config {
	cfg := config{Solver: "dynamic", Format: "text"}

	execPath, err := os.Executable()
	if err != nil {
		log.Fatalf("cannot determine executable path: %v", err)
	}
	execPath = path.Dir(execPath)

	files, err := os.ReadDir(execPath)
	if err != nil {
		log.Fatalf("cannot read executable's directory: %v", err)
	}
	fileNames := lo.Map(files, func(file os.DirEntry, _ int) string { return file.Name() })
	if !slices.Contains(fileNames, "config.json") {
		return cfg
	}

	bytes, err := os.ReadFile(execPath + "/config.json")
	if err != nil {
		log.Fatalf("cannot read config.json file: %v", err)
	}
	var configJson map[string]any
	if err := json.Unmarshal(bytes, &configJson); err != nil {
		log.Fatalf("cannot parse config.json file: %v", err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
		Result:     &cfg,
	})
	if err != nil {
		log.Fatalf("cannot build config decoder: %v", err)
	}
	if err := decoder.Decode(configJson); err != nil {
		log.Fatalf("invalid config.json file: %v", err)
	}
	return cfg
}
