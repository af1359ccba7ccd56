// Package shell provides the executor that runs a unit's build command.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/reuse/internal/core/domain"
	"go.trai.ch/reuse/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Execute runs the unit's command and waits for it to complete.
// Output is copied to stdout and stderr and logged line by line.
// An empty command succeeds without starting a process.
func (e *Executor) Execute(
	ctx context.Context,
	unit domain.Unit,
	stdout, stderr io.Writer,
) (domain.CommandResult, error) {
	if len(unit.Command) == 0 {
		return domain.CommandResult{}, nil
	}

	name := unit.Command[0]
	cmdEnv := resolveEnvironment(os.Environ(), unit.Env)

	executable := name
	if !filepath.IsAbs(name) && !strings.ContainsRune(name, filepath.Separator) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, unit.Command[1:]...) //nolint:gosec // user provided command
	cmd.Args[0] = name
	cmd.Dir = unit.WorkingDir
	cmd.Env = cmdEnv

	stdoutLog := &logWriter{logger: e.logger, unit: unit.Name, stream: "stdout"}
	stderrLog := &logWriter{logger: e.logger, unit: unit.Name, stream: "stderr"}
	cmd.Stdout = io.MultiWriter(stdoutLog, orDiscard(stdout))
	cmd.Stderr = io.MultiWriter(stderrLog, orDiscard(stderr))

	start := time.Now()
	err := cmd.Run()
	result := domain.CommandResult{Duration: time.Since(start)}

	_ = stdoutLog.Close()
	_ = stderrLog.Close()

	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		err = zerr.With(zerr.Wrap(err, domain.ErrCommandFailed.Error()), "exit_code", result.ExitCode)
		return result, zerr.With(err, "unit", unit.Name)
	}

	e.logger.Debug("command finished", "unit", unit.Name, "duration", result.Duration)
	return result, nil
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

// logWriter forwards complete lines to the logger. Close flushes a trailing partial line.
type logWriter struct {
	logger ports.Logger
	unit   string
	stream string
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	if w.stream == "stderr" {
		w.logger.Warn(msg, "unit", w.unit)
		return
	}
	w.logger.Info(msg, "unit", w.unit)
}

// resolveEnvironment layers the unit environment over the system environment.
// Unit values may reference system variables, as in PATH: ./bin:$PATH.
func resolveEnvironment(sysEnv []string, unitEnv map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(unitEnv))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}

	base := make(map[string]string, len(envMap))
	for k, v := range envMap {
		base[k] = v
	}
	for k, v := range unitEnv {
		envMap[k] = os.Expand(v, func(key string) string { return base[key] })
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			path = v
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
