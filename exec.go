package jsbld

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// WaitDelay is how long an interrupted child process may take to exit before
// it is killed.
const WaitDelay = 5 * time.Second

// Executor runs name with args in dir and returns the captured stdout and stderr.
// A non-zero exit status is reported as a non-nil error alongside the output.
type Executor func(ctx context.Context, dir, name string, args ...string) (stdout, stderr []byte, err error)

// forceColorEnv makes node CLIs (chalk, eslint, jspm) emit ANSI colours even
// though their output is captured before it is echoed.
var forceColorEnv = []string{"FORCE_COLOR=1", "CLICOLOR_FORCE=1", "COLORTERM=truecolor"}

// colorEnv is computed on the first Command call.
var colorEnv = sync.OnceValue(func() []string {
	_, noColor := os.LookupEnv("NO_COLOR")
	return colorEnvFor(term.IsTerminal(int(os.Stdout.Fd())), noColor)
})

// colorEnvFor returns the variables appended to a child environment. Colours
// are forced only when the echo target is a terminal and NO_COLOR is unset.
func colorEnvFor(tty, noColor bool) []string {
	if !tty || noColor {
		return nil
	}
	return forceColorEnv
}

// Command creates an exec.Cmd that runs in dir with dir/node_modules/.bin
// prepended to PATH, so locally installed CLIs win over global ones.
//
// Cancelling ctx interrupts the process; see WaitDelay.
func Command(ctx context.Context, dir, name string, args ...string) *exec.Cmd {
	binDir := filepath.Join(dir, NodeModulesDirName, ".bin")
	env := append(PrependPath(os.Environ(), binDir), colorEnv()...)

	// exec.Command resolves the binary using os.Getenv("PATH") at creation
	// time, before cmd.Env takes effect.
	if !strings.ContainsAny(name, `/\`) {
		if binPath := filepath.Join(binDir, name); fileExists(binPath) {
			name = binPath
		}
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = env
	interruptOnCancel(cmd)
	return cmd
}

// ExecCommand is the default Executor. It runs the command to completion and
// captures both output streams.
func ExecCommand(ctx context.Context, dir, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := Command(ctx, dir, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		err = fmt.Errorf("%s: %w", commandLine(name, args), err)
	}
	return stdout.Bytes(), stderr.Bytes(), err
}

// Run executes name in the project root through c.Exec, echoes stdout and then
// stderr to w once the process has finished, and returns the process error.
func (c *Config) Run(ctx context.Context, w io.Writer, name string, args ...string) error {
	stdout, stderr, err := c.Exec(ctx, c.RootPath, name, args...)
	Echo(w, stdout, stderr)
	return err
}

// Echo writes captured command output to w, stdout first, in a single Write
// so output of concurrent commands sharing a SyncWriter stays together.
func Echo(w io.Writer, stdout, stderr []byte) {
	if len(stdout)+len(stderr) == 0 {
		return
	}
	buf := make([]byte, 0, len(stdout)+len(stderr))
	buf = append(append(buf, stdout...), stderr...)
	_, _ = w.Write(buf)
}

func commandLine(name string, args []string) string {
	return strings.Join(append([]string{filepath.Base(name)}, args...), " ")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// interruptOnCancel sends SIGINT on context cancellation; exec kills the
// process WaitDelay later if it is still running.
func interruptOnCancel(cmd *exec.Cmd) {
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = WaitDelay
}

// PrependPath returns a copy of env whose PATH starts with dir. A PATH entry
// is added when env has none.
func PrependPath(env []string, dir string) []string {
	out := slices.Clone(env)
	i := slices.IndexFunc(out, func(e string) bool { return strings.HasPrefix(e, "PATH=") })
	if i < 0 {
		return append(out, "PATH="+dir)
	}
	out[i] = "PATH=" + dir + string(os.PathListSeparator) + strings.TrimPrefix(out[i], "PATH=")
	return out
}
