// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full
// stack: command parsing -> workbench -> controller -> SQLite engine.
//
// The controller, splitter, naming, and engine packages carry their own
// unit tests; the tests here prove the wiring between them: flags resolve
// to the right catalog and data directory, state persists across process
// invocations through the active marker, and output formats behave.

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the wkctx binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "wkctx-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "wkctx"
		if os.PathSeparator == '\\' {
			binaryName = "wkctx.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state. Each env gets its own HOME and
// data directory so config, audit log, and databases never touch the
// developer's real home.
type testEnv struct {
	t       *testing.T
	home    string
	dataDir string
	binary  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	binary := buildBinary(t)
	root := t.TempDir()
	home := filepath.Join(root, "home")
	dataDir := filepath.Join(root, "data")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatal(err)
	}

	return &testEnv{t: t, home: home, dataDir: dataDir, binary: binary}
}

// run executes wkctx with the given args and returns combined output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("wkctx %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes wkctx and returns combined output and any error.
// Every invocation is a fresh process, which is exactly how the CLI
// is used: state must survive through the data directory alone.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.home
	cmd.Env = append(os.Environ(),
		"HOME="+e.home,
		"WKCTX_DIR="+e.dataDir,
	)
	out, err := cmd.CombinedOutput()
	return string(out), err
}
