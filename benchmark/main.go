// Package main provides a performance benchmarking tool for the readiness CLI.
// It measures scoring times across population sizes and commands, running each
// test multiple times with run tracking disabled and with a SQLite run store,
// and writes a CSV for performance analysis and documentation.
//
// Prerequisites:
// - readiness binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for generated populations and the SQLite run store
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the average time without a store, and the first and
// remaining average times with a SQLite store.
type BenchmarkResult struct {
	Population string
	Command    string
	NoStoreAvg string
	FirstTime  string
	StoredAvg  string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	Workers     int
	NoStoreRuns int
	StoreRuns   int
	Sizes       []int
	Seed        uint64
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:     os.Args[1],
		Timeout:     5 * time.Minute,
		Workers:     8,
		NoStoreRuns: 3,
		StoreRuns:   4,
		Sizes:       []int{100, 1000, 10000, 50000},
		Seed:        42,
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies the binary exists and prepares the work directory.
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("readiness"); err != nil {
		return fmt.Errorf("readiness binary not found in PATH")
	}
	return os.MkdirAll(config.WorkDir, 0o755)
}

// populationFile generates a population once per size and returns its path.
// A base and target snapshot are produced so compare can be measured too.
func populationFile(config BenchmarkConfig, size int, seedOffset uint64) (string, error) {
	path := filepath.Join(config.WorkDir, fmt.Sprintf("population_%d_%d.json", size, seedOffset))
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	seed := strconv.FormatUint(config.Seed+seedOffset, 10)
	cmd := exec.Command("readiness", "generate", strconv.Itoa(size), "--seed", seed, "--output-file", path)
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("generate %d: %w\n%s", size, err, output)
	}
	return path, nil
}

// runBenchmarks executes all benchmark tests across configured population sizes.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d sizes, %v timeout, %d workers, no-store: %d runs, store: %d runs\n",
		len(config.Sizes), config.Timeout, config.Workers, config.NoStoreRuns, config.StoreRuns)

	for _, size := range config.Sizes {
		label := strconv.Itoa(size)
		fmt.Printf("Benchmarking population of %d\n", size)

		base, err := populationFile(config, size, 0)
		if err != nil {
			fmt.Printf("Skipping %d: %v\n", size, err)
			continue
		}
		target, err := populationFile(config, size, 1)
		if err != nil {
			fmt.Printf("Skipping %d: %v\n", size, err)
			continue
		}

		results = append(results,
			runBenchmarkSuite(config, label, "people", []string{base}),
			runBenchmarkSuite(config, label, "departments", []string{base}),
			runBenchmarkSuite(config, label, "compare", []string{"--base", base, "--target", target}),
		)
	}

	return results
}

// runBenchmarkSuite runs a command without a store and then with a SQLite store.
func runBenchmarkSuite(config BenchmarkConfig, population, command string, extraArgs []string) BenchmarkResult {
	fmt.Printf("Running %s on %s people\n", command, population)

	runPhase := func(backend string, numRuns int, phaseName string) (first float64, avg string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		first, rest := runBenchmark(config, command, extraArgs, backend, numRuns)
		if len(rest) == 0 {
			return first, "TIMEOUT"
		}
		var sum float64
		for _, t := range rest {
			sum += t
		}
		return first, fmt.Sprintf("%.3fs", sum/float64(len(rest)))
	}

	_, noStoreAvg := runPhase("none", config.NoStoreRuns, "No-store")
	first, storedAvg := runPhase("sqlite", config.StoreRuns, "SQLite store")

	firstStr := "TIMEOUT"
	if first > 0 {
		firstStr = fmt.Sprintf("%.3fs", first)
	}

	fmt.Printf("  No-store average: %s, First stored run: %s, Stored average: %s\n", noStoreAvg, firstStr, storedAvg)

	return BenchmarkResult{
		Population: population,
		Command:    command,
		NoStoreAvg: noStoreAvg,
		FirstTime:  firstStr,
		StoredAvg:  storedAvg,
	}
}

// runBenchmark executes a readiness command numRuns times and returns the first and remaining times.
func runBenchmark(config BenchmarkConfig, command string, extraArgs []string, backend string, numRuns int) (first float64, rest []float64) {
	args := []string{
		command,
		"--workers", strconv.Itoa(config.Workers),
		"--store-backend", backend,
		"--store-db-connect", filepath.Join(config.WorkDir, "runs.db"),
	}
	args = append(args, extraArgs...)

	var times []float64
	for range numRuns {
		start := time.Now()

		cmd := exec.Command("readiness", args...)
		cmd.Dir = config.WorkDir

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		first = times[0]
		rest = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion.
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)

	completionPhrase := "Scored "
	if command == "compare" {
		completionPhrase = "Comparison completed in"
	}

	return strings.Contains(outputStr, completionPhrase) && strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("readiness_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"population", "cmd", "no_store_avg", "first_stored", "stored_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Population, result.Command, result.NoStoreAvg, result.FirstTime, result.StoredAvg}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	for _, command := range []string{"people", "departments", "compare"} {
		fmt.Printf("%s:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %-8s: No-store: %s, First stored: %s, Stored: %s\n", result.Population, result.NoStoreAvg, result.FirstTime, result.StoredAvg)
			}
		}
	}
}
