package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/opmodel/patchctl/internal/patch"
)

// Environment variables set for every step.
const (
	EnvComponent = "PATCH_COMPONENT"
	EnvVersion   = "PATCH_VERSION"
	EnvRunID     = "PATCH_RUN_ID"
)

// Runner executes manifest steps through a shell.
type Runner struct {
	// Shell is the interpreter invoked as `<Shell> -c <run>`. If empty, "sh" is used.
	Shell string

	// Env is the base environment. If nil, os.Environ() is used.
	Env []string

	// Logger receives step output line by line. If nil, output goes to Stdout and Stderr.
	Logger *log.Logger

	// Stdout and Stderr receive step output when Logger is nil. If nil, os.Stdout and os.Stderr are used.
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner creates a Runner that logs step output to logger.
func NewRunner(logger *log.Logger) *Runner {
	return &Runner{Shell: "sh", Logger: logger}
}

// Action returns a patch action running steps in order; the first failing
// step fails the action. It returns nil when there is nothing to run.
func (r *Runner) Action(component string, version patch.Version, steps []Step) patch.Action {
	if r == nil || len(steps) == 0 {
		return nil
	}
	return func(ectx *patch.ExecutionContext) error {
		for i, s := range steps {
			if err := r.run(ectx, component, version, s); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		return nil
	}
}

func (r *Runner) run(ectx *patch.ExecutionContext, component string, version patch.Version, s Step) error {
	cmd := exec.CommandContext(ectx.Context(), r.shell(), "-c", s.Run)
	cmd.Dir = s.Dir
	cmd.Env = r.environment(component, version, ectx.RunID, s.Env)

	stdout, stderr := r.writers(component)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	stdout.Flush()
	stderr.Flush()

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%q failed with exit code %d", s.Run, exitErr.ExitCode())
		}
		return fmt.Errorf("%q: %w", s.Run, err)
	}
	return nil
}

func (r *Runner) shell() string {
	if r.Shell != "" {
		return r.Shell
	}
	return "sh"
}

func (r *Runner) environment(component string, version patch.Version, runID string, extra map[string]string) []string {
	env := r.Env
	if env == nil {
		env = os.Environ()
	}
	out := make([]string, 0, len(env)+3+len(extra))
	out = append(out, env...)
	out = append(out,
		EnvComponent+"="+component,
		EnvVersion+"="+version.String(),
		EnvRunID+"="+runID,
	)

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, k+"="+extra[k])
	}
	return out
}

func (r *Runner) writers(component string) (*lineWriter, *lineWriter) {
	if r.Logger != nil {
		l := r.Logger.With("component", component)
		return &lineWriter{emit: func(line string) { l.Info(line) }},
			&lineWriter{emit: func(line string) { l.Warn(line) }}
	}

	stdout, stderr := r.Stdout, r.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &lineWriter{emit: func(line string) { fmt.Fprintln(stdout, line) }},
		&lineWriter{emit: func(line string) { fmt.Fprintln(stderr, line) }}
}

// lineWriter splits written bytes into lines and hands each one to emit.
type lineWriter struct {
	mu   sync.Mutex
	buf  bytes.Buffer
	emit func(string)
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// incomplete line, keep it for the next write
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		w.emit(line[:len(line)-1])
	}
	return len(p), nil
}

// Flush emits a trailing line without newline.
func (w *lineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() == 0 {
		return
	}
	w.emit(w.buf.String())
	w.buf.Reset()
}
