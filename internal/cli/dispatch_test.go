package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todo/internal/backend/sqlite"
	"todo/internal/cli"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/task"
	"todo/internal/testutil"
)

// isolate points the XDG directories at temporary ones.
func isolate(t *testing.T) (configDir, dataDir string) {
	t.Helper()
	configHome, dataHome := t.TempDir(), t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_DATA_HOME", dataHome)
	return filepath.Join(configHome, config.AppName), filepath.Join(dataHome, config.AppName)
}

// testFactory creates a factory that always returns p.
func testFactory(p task.Persistence) cli.PersistenceFactory {
	return func(ctx context.Context, cfg *config.Config) (task.Persistence, error) {
		return p, nil
	}
}

func run(t *testing.T, d *cli.Dispatcher, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	code = d.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakePersistence()))

	_, stderr, code := run(t, dispatcher, "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakePersistence()))

	_, stderr, code := run(t, dispatcher, "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpAndVersionNeedNoStore(t *testing.T) {
	isolate(t)
	failing := func(ctx context.Context, cfg *config.Config) (task.Persistence, error) {
		t.Fatal("factory called for a command without a store")
		return nil, nil
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, failing)

	stdout, stderr, code := run(t, dispatcher, "help")
	if code != exitcode.Success || stderr != "" || !strings.Contains(stdout, "Usage:") {
		t.Errorf("help: code=%d stderr=%q", code, stderr)
	}

	stdout, _, code = run(t, dispatcher, "version")
	if code != exitcode.Success || stdout != "todo 0.1.0\n" {
		t.Errorf("version: code=%d stdout=%q", code, stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakePersistence()))

	_, stderr, code := run(t, dispatcher, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: --unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_UnknownBackend(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakePersistence()))

	_, stderr, code := run(t, dispatcher, "list", "--backend", "redis")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unknown backend: redis\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	isolate(t)
	p := testutil.NewFakePersistence()
	p.Set(task.List{{ID: "a", Text: "Walk dog"}})
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(p))

	stdout, _, code := run(t, dispatcher)

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if stdout != "   1  [ ] Walk dog\n------------\n1 tasks\n" {
		t.Errorf("unexpected list %q", stdout)
	}
}

func TestDispatcher_Scenario(t *testing.T) {
	isolate(t)
	p := testutil.NewFakePersistence()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(p))

	steps := [][]string{
		{"add", "Buy", "milk"},
		{"done", "1"},
		{"add", "--quiet", "Walk dog"},
		{"clear"},
	}
	for _, args := range steps {
		if _, stderr, code := run(t, dispatcher, args...); code != exitcode.Success {
			t.Fatalf("%v: exit %d: %s", args, code, stderr)
		}
	}

	stdout, _, _ := run(t, dispatcher, "list")
	if stdout != "   1  [ ] Walk dog\n------------\n1 tasks\n" {
		t.Errorf("unexpected list %q", stdout)
	}
}

func TestDispatcher_LoadError(t *testing.T) {
	isolate(t)
	p := testutil.NewFakePersistence()
	p.LoadErr = errors.New("permission denied")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(p))

	_, stderr, code := run(t, dispatcher, "list")

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if !strings.Contains(stderr, "permission denied") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_FileBackend(t *testing.T) {
	_, dataDir := isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	if _, stderr, code := run(t, dispatcher, "add", "Buy milk"); code != exitcode.Success {
		t.Fatalf("add: exit %d: %s", code, stderr)
	}

	data, err := os.ReadFile(filepath.Join(dataDir, config.DefaultKey+".json"))
	if err != nil {
		t.Fatalf("expected snapshot file: %v", err)
	}
	if !strings.Contains(string(data), `"text":"Buy milk"`) {
		t.Errorf("unexpected snapshot %s", data)
	}

	stdout, _, _ := run(t, dispatcher, "list")
	if !strings.Contains(stdout, "Buy milk") {
		t.Errorf("expected task to survive a restart, got %q", stdout)
	}
}

func TestDispatcher_SQLiteBackendFromConfigFile(t *testing.T) {
	configDir, dataDir := isolate(t)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, config.ConfigFile), []byte("backend: sqlite\nkey: work\n"), 0600); err != nil {
		t.Fatal(err)
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	if _, stderr, code := run(t, dispatcher, "add", "Ship release"); code != exitcode.Success {
		t.Fatalf("add: exit %d: %s", code, stderr)
	}
	if _, err := os.Stat(filepath.Join(dataDir, sqlite.FileName)); err != nil {
		t.Fatalf("expected database file: %v", err)
	}

	stdout, _, _ := run(t, dispatcher, "list")
	if !strings.Contains(stdout, "Ship release") {
		t.Errorf("unexpected list %q", stdout)
	}

	// A different key is a different list.
	stdout, _, _ = run(t, dispatcher, "list", "--key", "home")
	if !strings.Contains(stdout, "0 tasks") {
		t.Errorf("expected empty list for another key, got %q", stdout)
	}
}

func TestDispatcher_GoogleTasksRequiresLogin(t *testing.T) {
	configDir, _ := isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	_, stderr, code := run(t, dispatcher, "list", "--backend", "googletasks")
	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(stderr, "oauth_client.json not found") {
		t.Errorf("unexpected stderr %q", stderr)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		t.Fatal(err)
	}
	client := `{"installed":{"client_id":"test","client_secret":"test","redirect_uris":["http://localhost"]}}`
	if err := os.WriteFile(filepath.Join(configDir, config.OAuthClientFile), []byte(client), 0600); err != nil {
		t.Fatal(err)
	}

	_, stderr, code = run(t, dispatcher, "list", "--backend", "googletasks")
	if code != exitcode.AuthError || !strings.Contains(stderr, "todo login") {
		t.Errorf("expected login hint, got code=%d stderr=%q", code, stderr)
	}
}
