// Package jsbldtest provides helpers for testing task registration without
// touching the real filesystem or launching processes.
package jsbldtest

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/fredrikaverpil/jsbld"
	"github.com/goyek/goyek/v3"
	"github.com/spf13/afero"
)

// Root is the project root used by NewConfig.
const Root = "/proj"

// Call is one command recorded by a Recorder.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// String returns the command line of the call.
func (c Call) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Result is the canned response for a command.
type Result struct {
	Stdout string
	Stderr string
	Err    error
}

// Recorder is a jsbld.Executor that records calls and replies with canned results.
// Results are keyed by command line ("git --version") or by command name ("git").
// Unknown commands succeed with no output.
type Recorder struct {
	mu      sync.Mutex
	calls   []Call
	Results map[string]Result
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{Results: make(map[string]Result)}
}

// Set registers the result for a command line or command name.
func (r *Recorder) Set(key string, res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Results[key] = res
}

// Exec implements jsbld.Executor.
func (r *Recorder) Exec(_ context.Context, dir, name string, args ...string) ([]byte, []byte, error) {
	call := Call{Dir: dir, Name: name, Args: args}
	r.mu.Lock()
	r.calls = append(r.calls, call)
	res, ok := r.Results[call.String()]
	if !ok {
		res = r.Results[name]
	}
	r.mu.Unlock()
	return []byte(res.Stdout), []byte(res.Stderr), res.Err
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Lines returns the recorded command lines.
func (r *Recorder) Lines() []string {
	var lines []string
	for _, c := range r.Calls() {
		lines = append(lines, c.String())
	}
	return lines
}

// Exit records exit codes instead of terminating the process.
type Exit struct {
	Codes []int
}

// Exit implements Config.Exit.
func (e *Exit) Exit(code int) {
	e.Codes = append(e.Codes, code)
}

// NewConfig returns a Config rooted at Root with an in-memory filesystem,
// a Recorder executor and a recording exit hook.
func NewConfig(t testing.TB) (*jsbld.Config, *Recorder, *Exit) {
	t.Helper()
	rec := NewRecorder()
	exit := &Exit{}
	cfg := &jsbld.Config{
		RootPath: Root,
		Fs:       afero.NewMemMapFs(),
		Exec:     rec.Exec,
		Exit:     exit.Exit,
		Stdout:   &bytes.Buffer{},
		Stderr:   &bytes.Buffer{},
	}
	return cfg, rec, exit
}

// WriteFile writes content to path on fsys, failing the test on error.
func WriteFile(t testing.TB, fsys afero.Fs, path, content string) {
	t.Helper()
	if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// Names returns the names of ops in order.
func Names(ops []jsbld.Operation) []string {
	names := make([]string, 0, len(ops))
	for _, op := range ops {
		names = append(names, op.Name)
	}
	return names
}

// Find returns the operation named name, failing the test when it is absent.
func Find(t testing.TB, ops []jsbld.Operation, name string) jsbld.Operation {
	t.Helper()
	for _, op := range ops {
		if op.Name == name {
			return op
		}
	}
	t.Fatalf("operation %q not found in %v", name, Names(ops))
	return jsbld.Operation{}
}

// Execute runs the action of op on a fresh flow, ignoring its dependencies,
// and returns the task output together with the flow error.
func Execute(t testing.TB, op jsbld.Operation) (string, error) {
	t.Helper()
	var out bytes.Buffer
	flow := &goyek.Flow{}
	flow.SetOutput(&out)
	flow.Define(goyek.Task{Name: op.Name, Usage: op.Usage, Action: op.Action})
	err := flow.Execute(context.Background(), []string{op.Name})
	return out.String(), err
}
