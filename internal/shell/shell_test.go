// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	goruntime "runtime"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// fakeRunner records each invocation and returns a scripted outcome.
// It reads the materialized file while it still exists so tests can
// assert on both the script content and the cleanup behavior.
type fakeRunner struct {
	exitCode ExitCode
	err      error
	output   string

	paths  []string
	bodies []string
}

func (f *fakeRunner) Run(_ context.Context, path string, stdout, _ io.Writer) (ExitCode, error) {
	f.paths = append(f.paths, path)
	body, err := os.ReadFile(path)
	if err != nil {
		return 1, err
	}
	f.bodies = append(f.bodies, string(body))
	if f.output != "" {
		if _, err := io.WriteString(stdout, f.output); err != nil {
			return 1, err
		}
	}
	return f.exitCode, f.err
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestScript_Compose(t *testing.T) {
	t.Run("default interpreter shebang", func(t *testing.T) {
		s := Script{Argv: []string{"echo", "hi"}}
		got := s.Compose()
		if !strings.HasPrefix(got, "#!"+DefaultInterpreter+"\n") {
			t.Errorf("Compose() = %q, want default shebang", got)
		}
	})

	t.Run("custom interpreter", func(t *testing.T) {
		s := Script{Interpreter: "/bin/sh", Argv: []string{"true"}}
		if got := s.Compose(); !strings.HasPrefix(got, "#!/bin/sh\n") {
			t.Errorf("Compose() = %q, want /bin/sh shebang", got)
		}
	})

	t.Run("source line precedes command", func(t *testing.T) {
		s := Script{SourcePath: "/opt/proj/bin/env.sh", Argv: []string{"pip", "install"}}
		want := "#!/bin/bash\nsource /opt/proj/bin/env.sh\npip install \n"
		if got := s.Compose(); got != want {
			t.Errorf("Compose() = %q, want %q", got, want)
		}
	})

	t.Run("tokens joined with trailing spaces", func(t *testing.T) {
		s := Script{Argv: []string{"virtualenv", "--never-download", "/tmp/.venv"}}
		want := "#!/bin/bash\nvirtualenv --never-download /tmp/.venv \n"
		if got := s.Compose(); got != want {
			t.Errorf("Compose() = %q, want %q", got, want)
		}
	})
}

func TestScript_Validate(t *testing.T) {
	t.Run("empty argv rejected", func(t *testing.T) {
		err := Script{}.Validate()
		if !errors.Is(err, ErrEmptyScript) {
			t.Errorf("Validate() = %v, want ErrEmptyScript", err)
		}
	})

	t.Run("blank token rejected", func(t *testing.T) {
		err := Script{Argv: []string{"echo", "  "}}.Validate()
		if !errors.Is(err, ErrBlankToken) {
			t.Errorf("Validate() = %v, want ErrBlankToken", err)
		}
		var bte *BlankTokenError
		if !errors.As(err, &bte) || bte.Index != 1 {
			t.Errorf("Validate() = %v, want BlankTokenError at index 1", err)
		}
	})

	t.Run("shell syntax error rejected", func(t *testing.T) {
		err := Script{Argv: []string{`"unterminated`}}.Validate()
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("Validate() = %v, want SyntaxError", err)
		}
	})

	t.Run("well-formed script passes", func(t *testing.T) {
		s := Script{
			SourcePath: "/opt/env.sh",
			Argv:       []string{"pip", "install", "--timeout=120", "--requirement=req.txt"},
		}
		if err := s.Validate(); err != nil {
			t.Errorf("Validate() unexpected error: %v", err)
		}
	})
}

func TestExecutor_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("captured output is split into lines", func(t *testing.T) {
		runner := &fakeRunner{output: "one\ntwo\n"}
		e := NewExecutor(WithRunner(runner), WithLogger(discardLogger()))

		lines, err := e.Run(ctx, Script{Argv: []string{"echo"}}, true)
		if err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}
		if len(lines) != 2 || lines[0] != "one" || lines[1] != "two" {
			t.Errorf("Run() lines = %v, want [one two]", lines)
		}
	})

	t.Run("no capture returns nil lines", func(t *testing.T) {
		var stdout bytes.Buffer
		runner := &fakeRunner{output: "streamed"}
		e := NewExecutor(WithRunner(runner), WithLogger(discardLogger()), WithStdout(&stdout))

		lines, err := e.Run(ctx, Script{Argv: []string{"echo"}}, false)
		if err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}
		if lines != nil {
			t.Errorf("Run() lines = %v, want nil", lines)
		}
		if stdout.String() != "streamed" {
			t.Errorf("stdout = %q, want streamed output", stdout.String())
		}
	})

	t.Run("temp script is removed after success", func(t *testing.T) {
		runner := &fakeRunner{}
		e := NewExecutor(WithRunner(runner), WithLogger(discardLogger()))

		if _, err := e.Run(ctx, Script{Argv: []string{"true"}}, false); err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}
		if len(runner.paths) != 1 {
			t.Fatalf("runner invoked %d times, want 1", len(runner.paths))
		}
		if _, err := os.Stat(runner.paths[0]); !os.IsNotExist(err) {
			t.Errorf("temp script %s still exists after Run()", runner.paths[0])
		}
	})

	t.Run("runner sees the materialized script", func(t *testing.T) {
		runner := &fakeRunner{}
		e := NewExecutor(WithRunner(runner), WithLogger(discardLogger()))

		script := Script{SourcePath: "/opt/env.sh", Argv: []string{"pip", "install"}}
		if _, err := e.Run(ctx, script, false); err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}
		if runner.bodies[0] != script.Compose() {
			t.Errorf("materialized body = %q, want %q", runner.bodies[0], script.Compose())
		}
	})

	t.Run("non-zero exit yields CommandFailedError", func(t *testing.T) {
		var stderr bytes.Buffer
		runner := &fakeRunner{exitCode: 2, output: "pip blew up\n"}
		e := NewExecutor(WithRunner(runner), WithLogger(discardLogger()), WithStderr(&stderr))

		script := Script{Argv: []string{"pip", "install"}}
		_, err := e.Run(ctx, script, true)
		if !errors.Is(err, ErrCommandFailed) {
			t.Fatalf("Run() = %v, want ErrCommandFailed", err)
		}

		var cfe *CommandFailedError
		if !errors.As(err, &cfe) {
			t.Fatalf("Run() error type = %T, want *CommandFailedError", err)
		}
		if cfe.Code != 2 {
			t.Errorf("Code = %d, want 2", cfe.Code)
		}
		if cfe.Script != script.Compose() {
			t.Errorf("Script = %q, want composed script text", cfe.Script)
		}
		// Captured output is surfaced to the diagnostic stream first.
		if !strings.Contains(stderr.String(), "pip blew up") {
			t.Errorf("stderr = %q, want captured output surfaced", stderr.String())
		}
	})

	t.Run("temp script is removed after failure", func(t *testing.T) {
		runner := &fakeRunner{exitCode: 1}
		e := NewExecutor(WithRunner(runner), WithLogger(discardLogger()))

		if _, err := e.Run(ctx, Script{Argv: []string{"false"}}, false); err == nil {
			t.Fatal("Run() expected error")
		}
		if _, err := os.Stat(runner.paths[0]); !os.IsNotExist(err) {
			t.Errorf("temp script %s still exists after failed Run()", runner.paths[0])
		}
	})

	t.Run("runner infrastructure error propagates", func(t *testing.T) {
		wantErr := errors.New("spawn failed")
		runner := &fakeRunner{err: wantErr}
		e := NewExecutor(WithRunner(runner), WithLogger(discardLogger()))

		_, err := e.Run(ctx, Script{Argv: []string{"true"}}, false)
		if !errors.Is(err, wantErr) {
			t.Errorf("Run() = %v, want wrapped %v", err, wantErr)
		}
	})

	t.Run("invalid script never reaches the runner", func(t *testing.T) {
		runner := &fakeRunner{}
		e := NewExecutor(WithRunner(runner), WithLogger(discardLogger()))

		if _, err := e.Run(ctx, Script{}, false); !errors.Is(err, ErrEmptyScript) {
			t.Fatalf("Run() = %v, want ErrEmptyScript", err)
		}
		if len(runner.paths) != 0 {
			t.Errorf("runner invoked %d times, want 0", len(runner.paths))
		}
	})
}

// TestExecRunner_RealProcess exercises the production runner against a
// real shell.
func TestExecRunner_RealProcess(t *testing.T) {
	if goruntime.GOOS == "windows" {
		t.Skip("skipping: POSIX shell execution only")
	}

	ctx := context.Background()

	t.Run("captures echo output", func(t *testing.T) {
		e := NewExecutor(WithLogger(discardLogger()))
		lines, err := e.Run(ctx, Script{Argv: []string{"echo", "hello"}}, true)
		if err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}
		if len(lines) != 1 || lines[0] != "hello" {
			t.Errorf("Run() lines = %v, want [hello]", lines)
		}
	})

	t.Run("reports real exit codes", func(t *testing.T) {
		e := NewExecutor(WithLogger(discardLogger()))
		_, err := e.Run(ctx, Script{Argv: []string{"exit", "3"}}, false)
		var cfe *CommandFailedError
		if !errors.As(err, &cfe) {
			t.Fatalf("Run() = %v, want *CommandFailedError", err)
		}
		if cfe.Code != 3 {
			t.Errorf("Code = %d, want 3", cfe.Code)
		}
	})
}
