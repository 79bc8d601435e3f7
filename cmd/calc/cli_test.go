package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestEval_Default(t *testing.T) {
	code, out, errOut := runCLI(t)
	assert.Equal(t, 0, code, errOut)
	assert.Equal(t, "Expression evaluated to 3.\n", out)
}

func TestEval(t *testing.T) {
	code, out, _ := runCLI(t, "eval", "8-3-2")
	assert.Equal(t, 0, code)
	assert.Equal(t, "Expression evaluated to 3.\n", out)

	code, out, _ = runCLI(t, "12*3")
	assert.Equal(t, 0, code)
	assert.Equal(t, "Expression evaluated to 36.\n", out)
}

func TestEval_Grouped(t *testing.T) {
	code, out, _ := runCLI(t, "eval", "--group", "1000*1000")
	assert.Equal(t, 0, code)
	assert.Equal(t, "Expression evaluated to 1,000,000.\n", out)
}

func TestEval_Errors(t *testing.T) {
	tests := []struct {
		expr    string
		message string
	}{
		{expr: "3+", message: "Expression ended on an infix symbol.\n"},
		{expr: "3&4", message: "Encountered an invalid token: &\n"},
		{expr: "5/0", message: "Illegal operation: divided by zero\n"},
		{expr: "-5", message: "Expression was malformed, a symbol-value mismatch occurred.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			code, out, errOut := runCLI(t, "eval", "--", tt.expr)
			assert.Equal(t, 1, code)
			assert.Empty(t, out)
			assert.Equal(t, tt.message, errOut)
		})
	}
}

func TestTokens(t *testing.T) {
	code, out, _ := runCLI(t, "tokens", "12+3")
	assert.Equal(t, 0, code)
	assert.Equal(t, "Value(12) Symbol(+) Value(3)\n", out)

	code, out, _ = runCLI(t, "tokens", "--json", "4/2")
	assert.Equal(t, 0, code)
	assert.JSONEq(t, `[{"value":4},{"symbol":"/"},{"value":2}]`, out)

	code, _, errOut := runCLI(t, "tokens", "1+")
	assert.Equal(t, 1, code)
	assert.Equal(t, "Expression ended on an infix symbol.\n", errOut)
}

func writeSuite(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestSuite(t *testing.T) {
	path := writeSuite(t, `
name: cli
runs: 2
cases:
  - id: precedence
    expression: "1+2*3"
    expect: 7
  - id: zero
    expression: "5/0"
    expect_error: divide_by_zero
`)
	reportPath := filepath.Join(t.TempDir(), "report.json")

	code, out, errOut := runCLI(t, "suite", path, "--output", reportPath)
	assert.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "=== Suite: cli ===")
	assert.Contains(t, out, "Passed 2/2, failed 0")

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "summary")
}

func TestSuite_FailingCase(t *testing.T) {
	path := writeSuite(t, `
name: cli
cases:
  - id: wrong
    expression: "2+2"
    expect: 5
`)

	code, out, errOut := runCLI(t, "suite", path, "--runs", "3")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "Cases (3 runs each)")
	assert.Equal(t, "1 of 1 cases failed\n", errOut)
}

func TestSuite_InvalidFile(t *testing.T) {
	path := writeSuite(t, "name: empty\ncases: []\n")

	code, _, errOut := runCLI(t, "suite", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "no cases")
}

func TestHistory_JSONFile(t *testing.T) {
	t.Setenv("ENV_PATH", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("APP_ENV", "test")
	t.Setenv("HISTORY_STORAGE", "json_file")
	historyFile := filepath.Join(t.TempDir(), "history.jsonl")
	t.Setenv("HISTORY_FILE", historyFile)

	code, out, errOut := runCLI(t, "--history", "eval", "6/3")
	assert.Equal(t, 0, code, errOut)
	assert.Equal(t, "Expression evaluated to 2.\n", out)

	data, err := os.ReadFile(historyFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"expression":"6/3"`)
}

func TestHistory_DefaultExpression(t *testing.T) {
	t.Setenv("ENV_PATH", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("APP_ENV", "test")
	t.Setenv("HISTORY_STORAGE", "json_file")
	historyFile := filepath.Join(t.TempDir(), "history.jsonl")
	t.Setenv("HISTORY_FILE", historyFile)

	code, _, errOut := runCLI(t, "--history", "eval")
	require.Equal(t, 0, code, errOut)

	data, err := os.ReadFile(historyFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"expression":"`+defaultExpression+`"`)
}

func TestHistory_BadConfig(t *testing.T) {
	t.Setenv("ENV_PATH", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("APP_ENV", "test")
	t.Setenv("HISTORY_STORAGE", "redis")

	code, _, errOut := runCLI(t, "--history", "eval", "1+1")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid HISTORY_STORAGE")
}

func TestParseError(t *testing.T) {
	code, _, errOut := runCLI(t, "tokens")
	assert.Equal(t, 2, code)
	assert.NotEmpty(t, errOut)
}
