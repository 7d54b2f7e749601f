package hilite_test

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gopatchy/hilite"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)

	err := os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		t.Fatalf("Failed to write test file %s: %v", name, err)
	}

	return path
}

func executeCLICommand(t *testing.T, cmdPath string, args []string, expectedError string) []byte {
	t.Helper()

	cmdArgs := append([]string{"run", cmdPath}, args...)
	cmd := exec.Command("go", cmdArgs...)
	cmd.Dir = "."

	output, err := cmd.CombinedOutput()

	if expectedError != "" {
		if err == nil {
			t.Fatalf("Expected error containing %q, but got no error", expectedError)
		}

		if !strings.Contains(string(output), expectedError) {
			t.Fatalf("Expected error containing %q, but got: %v\nOutput: %s", expectedError, err, output)
		}

		return nil
	}

	if err != nil {
		t.Fatalf("Unexpected error: %v\nOutput: %s", err, output)
	}

	return output
}

func cliArgs(t *testing.T, testCase *hilite.TestCase) []string {
	tmpDir := t.TempDir()

	args := []string{}

	if testCase.Grammar != "" {
		grammarFormat := testCase.GrammarFormat
		if grammarFormat == "" {
			grammarFormat = "yaml"
		}

		path := writeTestFile(t, tmpDir, fmt.Sprintf("%s.%s", testCase.Language, grammarFormat), testCase.Grammar)
		args = append(args, "--grammar", path)
	}

	if testCase.Auto {
		if len(testCase.Candidates) > 0 {
			args = append(args, "--subset", strings.Join(testCase.Candidates, ","))
		}
	} else {
		args = append(args, "--language", testCase.Language)

		if testCase.IgnoreIllegals == nil || *testCase.IgnoreIllegals {
			args = append(args, "--ignore-illegals")
		}
	}

	return append(args, writeTestFile(t, tmpDir, "input.txt", testCase.Code))
}

func TestCLI(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the command")
	}

	t.Parallel()

	for testName, testCase := range selectTests(t) {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			output := executeCLICommand(t, "./cmd/hilite", cliArgs(t, testCase), testCase.Error)
			if output == nil {
				return
			}

			if string(output) != testCase.Expected {
				t.Errorf("Output mismatch\nExpected:\n%s\nGot:\n%s", testCase.Expected, output)
			}
		})
	}
}

func TestCLITree(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the command")
	}

	t.Parallel()

	input := writeTestFile(t, t.TempDir(), "x.c", "int x;")

	output := executeCLICommand(t, "./cmd/hilite", []string{"-l", "c", "-t", "json", input}, "")

	for _, want := range []string{`"scope":"type"`, `"int"`, `" x;"`} {
		if !strings.Contains(string(output), want) {
			t.Errorf("Expected %s in tree output:\n%s", want, output)
		}
	}
}

func TestCLIList(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the command")
	}

	t.Parallel()

	output := executeCLICommand(t, "./cmd/hilite", []string{"--list"}, "")

	for _, want := range []string{"c\tC\n", "cpp\tC++\n", "json\tJSON\n"} {
		if !strings.Contains(string(output), want) {
			t.Errorf("Expected %q in language list:\n%s", want, output)
		}
	}
}

func TestCLICompare(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the command")
	}

	t.Parallel()

	tmpDir := t.TempDir()
	file1 := writeTestFile(t, tmpDir, "a.c", "int x;\n")
	file2 := writeTestFile(t, tmpDir, "b.c", "long x;\n")

	output := executeCLICommand(t, "./cmd/hilitec", []string{"-l", "c", file1, file2}, "")

	if !strings.Contains(string(output), `+<span class="hljs-type">long</span> x;`) {
		t.Errorf("Unexpected compare output:\n%s", output)
	}
}
