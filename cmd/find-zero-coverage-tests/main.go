package main

import (
	"bufio"
	"bytes"
	"fmt"
	"log"
	"os"
	"os/exec"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gopatchy/hilite"
)

type fixtureResult struct {
	Name        string
	UniqueLines int
}

type coverageRunner struct {
	baseline map[string]bool
	counter  int64
}

func main() {
	runner := &coverageRunner{}

	fmt.Println("Running baseline coverage with all fixtures...")
	baseline, err := runner.coveredLines("")
	if err != nil {
		log.Fatalf("Failed to get baseline coverage: %v", err)
	}
	runner.baseline = baseline
	fmt.Printf("Baseline: %d blocks covered\n", len(baseline))

	tests, err := hilite.GetTests()
	if err != nil {
		log.Fatalf("Failed to parse tests.toml: %v", err)
	}

	names := []string{}
	for name, tc := range tests {
		if !tc.Benchmark {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	fmt.Printf("Analyzing %d fixtures...\n", len(names))
	printResults(runner.analyze(names))
}

// coveredLines runs the fixture test with one fixture excluded and returns
// the covered profile blocks.
func (r *coverageRunner) coveredLines(exclude string) (map[string]bool, error) {
	id := atomic.AddInt64(&r.counter, 1)
	coverFile := fmt.Sprintf("cover_%d.out", id)
	defer os.Remove(coverFile)

	args := []string{"test", "-run", "TestFixtures", "-coverpkg=./...", "-coverprofile=" + coverFile}
	if exclude != "" {
		args = append(args, "-test.exclude="+exclude)
	}

	cmd := exec.Command("go", args...)
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	err := cmd.Run()
	if err != nil {
		return nil, fmt.Errorf("go test failed: %v\nstderr: %s", err, stderr.String())
	}

	return parseProfile(coverFile)
}

func parseProfile(filename string) (map[string]bool, error) {
	fh, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	covered := map[string]bool{}
	scanner := bufio.NewScanner(fh)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "mode:") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}

		if fields[len(fields)-1] != "0" {
			covered[fields[0]] = true
		}
	}

	return covered, scanner.Err()
}

func (r *coverageRunner) analyze(names []string) []fixtureResult {
	results := make([]fixtureResult, len(names))

	wg := sync.WaitGroup{}
	sem := make(chan struct{}, 8)

	for i, name := range names {
		wg.Add(1)

		go func() {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			without, err := r.coveredLines(name)
			if err != nil {
				log.Printf("Error analyzing %s: %v", name, err)
				results[i] = fixtureResult{Name: name}
				return
			}

			unique := 0
			for block := range r.baseline {
				if !without[block] {
					unique++
				}
			}

			results[i] = fixtureResult{Name: name, UniqueLines: unique}
		}()
	}

	wg.Wait()

	return results
}

func printResults(results []fixtureResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].UniqueLines == results[j].UniqueLines {
			return results[i].Name < results[j].Name
		}
		return results[i].UniqueLines < results[j].UniqueLines
	})

	zero := []string{}
	for _, r := range results {
		if r.UniqueLines == 0 {
			zero = append(zero, r.Name)
		}
	}

	fmt.Printf("\nFixtures analyzed: %d\n", len(results))
	fmt.Printf("Fixtures contributing zero coverage: %d\n", len(zero))

	for _, name := range zero {
		fmt.Printf("  %s\n", name)
	}

	fmt.Println("\nCoverage by fixture:")
	for i := len(results) - 1; i >= 0; i-- {
		if results[i].UniqueLines > 0 {
			fmt.Printf("  %-30s %4d blocks\n", results[i].Name, results[i].UniqueLines)
		}
	}
}
