package main

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/vjp/internal/config"
	"github.com/mcncl/vjp/internal/errors"
	"github.com/mcncl/vjp/internal/logging"
)

type testEnv struct {
	ctx    *Context
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	logs   *bytes.Buffer
}

// newTestEnv resets the CLI flags and returns a context reading stdin from
// input
func newTestEnv(t *testing.T, input string) *testEnv {
	t.Helper()
	originalCLI := CLI
	t.Cleanup(func() { CLI = originalCLI })
	CLI.Input, CLI.Output, CLI.Check, CLI.Interactive = "", "", false, false

	env := &testEnv{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}, logs: &bytes.Buffer{}}
	env.ctx = &Context{
		Config: config.NewConfig(),
		Logger: logging.New(logging.Options{Debug: true, Out: env.logs}),
		Stdin:  strings.NewReader(input),
		Stdout: env.stdout,
		Stderr: env.stderr,
	}
	return env
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_SimpleJSON(t *testing.T) {
	env := newTestEnv(t, `{"name": "John", "age": 30, "active": true}`)

	require.NoError(t, run(env.ctx))
	assert.Equal(t, "{\"name\":\"John\",\"age\":30,\"active\":true}\n", env.stdout.String())
	assert.Empty(t, env.stderr.String())
}

func TestRun_Pretty(t *testing.T) {
	env := newTestEnv(t, `{"a":[1,2],"b":{}}`)
	env.ctx.Config.Output.Pretty = true

	require.NoError(t, run(env.ctx))
	expected := "{\n    \"a\": [\n        1,\n        2\n    ],\n    \"b\": {}\n}\n"
	assert.Equal(t, expected, env.stdout.String())
}

func TestRun_FromFileToFile(t *testing.T) {
	env := newTestEnv(t, "")
	CLI.Input = writeTemp(t, "input.json", `[1, "two", null]`)
	CLI.Output = filepath.Join(t.TempDir(), "output.json")

	require.NoError(t, run(env.ctx))
	assert.Empty(t, env.stdout.String())

	content, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Equal(t, "[1,\"two\",null]\n", string(content))
	assert.Contains(t, env.logs.String(), "wrote output")
}

func TestRun_SyntaxErrorReport(t *testing.T) {
	env := newTestEnv(t, "{\n  \"a\": 1\n  \"b\": 2\n}\n")

	err := run(env.ctx)
	require.Error(t, err)

	var synErr *errors.SyntaxError
	require.True(t, stderrors.As(err, &synErr))
	assert.Equal(t, errors.ExpComma, synErr.Kind)

	report(env.ctx, err)
	assert.Equal(t, "ExpComma: 3:3\n", env.stderr.String())
	assert.Empty(t, env.stdout.String())
}

func TestRun_MaxDepth(t *testing.T) {
	env := newTestEnv(t, `[[[]]]`)
	env.ctx.Config.MaxDepth = 2

	err := run(env.ctx)
	report(env.ctx, err)
	assert.Equal(t, "MaxDepth: 1:3\n", env.stderr.String())
}

func TestRun_StrictNumbers(t *testing.T) {
	env := newTestEnv(t, `[007]`)
	require.NoError(t, run(env.ctx))
	assert.Equal(t, "[007]\n", env.stdout.String())

	env = newTestEnv(t, `[007]`)
	env.ctx.Config.Parsing.StrictNumbers = true
	err := run(env.ctx)
	report(env.ctx, err)
	assert.Equal(t, "IncorrectNum: 1:2\n", env.stderr.String())
}

func TestRun_EmptyInput(t *testing.T) {
	env := newTestEnv(t, " \n ")

	err := run(env.ctx)
	assert.ErrorIs(t, err, errors.ErrEmptyInput)

	report(env.ctx, err)
	assert.Contains(t, env.stderr.String(), "For help, run: vjp --help")
}

func TestRun_NonExistentFile(t *testing.T) {
	env := newTestEnv(t, "")
	CLI.Input = filepath.Join(t.TempDir(), "missing.json")

	err := run(env.ctx)
	assert.ErrorIs(t, err, errors.ErrFileNotFound)
}

func TestRun_CheckFormatted(t *testing.T) {
	env := newTestEnv(t, "{\"a\":1}\n")
	CLI.Check = true

	require.NoError(t, run(env.ctx))
	assert.Empty(t, env.stdout.String())
}

func TestRun_CheckNotFormatted(t *testing.T) {
	env := newTestEnv(t, `{ "a": 1 }`)
	CLI.Check = true

	err := run(env.ctx)
	assert.ErrorIs(t, err, errors.ErrNotFormatted)
	assert.Equal(t, "-{ \"a\": 1 }\n+{\"a\":1}\n", env.stdout.String())

	report(env.ctx, err)
	assert.NotContains(t, env.stderr.String(), "--help")
}

func TestRun_Color(t *testing.T) {
	env := newTestEnv(t, `{"a":true}`)
	env.ctx.Config.Output.Color = config.ColorAlways

	require.NoError(t, run(env.ctx))
	assert.Contains(t, env.stdout.String(), "\x1b[")

	env = newTestEnv(t, `{"a":true}`)
	env.ctx.Terminal = true
	require.NoError(t, run(env.ctx))
	assert.Contains(t, env.stdout.String(), "\x1b[", "auto colours a terminal")

	env = newTestEnv(t, `{"a":true}`)
	env.ctx.Terminal = true
	env.ctx.Config.Output.Color = config.ColorNever
	require.NoError(t, run(env.ctx))
	assert.Equal(t, "{\"a\":true}\n", env.stdout.String())
}

func TestUseColor_FileOutput(t *testing.T) {
	env := newTestEnv(t, "")
	env.ctx.Terminal = true
	CLI.Output = "out.json"
	assert.False(t, useColor(env.ctx))

	env.ctx.Config.Output.Color = config.ColorAlways
	assert.True(t, useColor(env.ctx))
}

func TestRun_DebugLogging(t *testing.T) {
	env := newTestEnv(t, `{"a":[1,{"b":null,"c":2.5}],"at":"2024-01-02"}`)

	require.NoError(t, run(env.ctx))
	logs := env.logs.String()
	assert.Contains(t, logs, "read input")
	assert.Contains(t, logs, "parsed document")
	assert.Contains(t, logs, "depth=3")
	assert.Contains(t, logs, "integers=1")
	assert.Contains(t, logs, "floats=1")
	assert.Contains(t, logs, "timestamps=1")
	assert.Contains(t, logs, "source=stdin")
}

func TestReadInput_PipedStdinFile(t *testing.T) {
	env := newTestEnv(t, "")
	f, err := os.Open(writeTemp(t, "piped.json", `true`))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	env.ctx.Stdin = f

	text, err := readInput(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, "true", text)
}
