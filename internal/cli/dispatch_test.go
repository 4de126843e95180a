package cli_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"go.uber.org/zap"

	"taskboard/internal/cli"
	"taskboard/internal/commands"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
	"taskboard/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService
// and records the config it was called with.
func testFactory(svc *testutil.FakeService, seen **config.Config) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		if seen != nil {
			*seen = cfg
		}
		return svc, nil
	}
}

func newDispatcher(t *testing.T, factory cli.ServiceFactory) *cli.Dispatcher {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
	d := cli.NewDispatcher(commands.DefaultRegistry, factory)
	d.SetLoggerFactory(func(bool) (*zap.Logger, error) { return zap.NewNop(), nil })
	return d
}

func run(t *testing.T, d *cli.Dispatcher, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	code = d.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	d := newDispatcher(t, testFactory(testutil.NewFakeService(), nil))

	_, stderr, code := run(t, d, "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	d := newDispatcher(t, testFactory(testutil.NewFakeService(), nil))

	_, stderr, code := run(t, d, "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	d := newDispatcher(t, testFactory(testutil.NewFakeService(), nil))

	stdout, stderr, code := run(t, d, "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") || !strings.Contains(stdout, "Commands:") {
		t.Errorf("expected usage and command table, got %q", stdout)
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	d := newDispatcher(t, testFactory(testutil.NewFakeService(), nil))

	stdout, stderr, code := run(t, d, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskboard 0.1.0\n" {
		t.Errorf("expected 'taskboard 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	d := newDispatcher(t, testFactory(testutil.NewFakeService(), nil))

	_, stderr, code := run(t, d, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_MissingFlagValue(t *testing.T) {
	d := newDispatcher(t, testFactory(testutil.NewFakeService(), nil))

	_, stderr, code := run(t, d, "add", "--priority")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -priority\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_CommandHelpFlag(t *testing.T) {
	d := newDispatcher(t, testFactory(testutil.NewFakeService(), nil))

	stdout, _, code := run(t, d, "add", "-h")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.HasPrefix(stdout, "Usage: taskboard add") {
		t.Errorf("unexpected usage output %q", stdout)
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("buy milk", service.PriorityLow)
	svc.AddTask("ship release", service.PriorityHigh)
	d := newDispatcher(t, testFactory(svc, nil))

	stdout, stderr, code := run(t, d)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	expected := "   1  [ ] ship release  (high)\n   2  [ ] buy milk  (low)\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestDispatcher_AddWithPriorityFlag(t *testing.T) {
	svc := testutil.NewFakeService()
	d := newDispatcher(t, testFactory(svc, nil))

	stdout, _, code := run(t, d, "add", "-p", "low", "water", "plants")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	tasks := svc.Snapshot()
	if len(tasks) != 1 || tasks[0].Description != "water plants" || tasks[0].Priority != service.PriorityLow {
		t.Errorf("unexpected tasks %+v", tasks)
	}
}

func TestDispatcher_FlagsOverrideSettings(t *testing.T) {
	var seen *config.Config
	d := newDispatcher(t, testFactory(testutil.NewFakeService(), &seen))
	t.Setenv(config.EnvURL, "http://from-env:8000")

	_, _, code := run(t, d, "status", "--quiet", "--url", "http://from-flag:9000", "--backend", "googletasks")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if seen == nil {
		t.Fatal("factory was not called")
	}
	if seen.URL != "http://from-flag:9000" {
		t.Errorf("expected flag url, got %q", seen.URL)
	}
	if seen.Backend != config.BackendGoogleTasks {
		t.Errorf("expected googletasks backend, got %q", seen.Backend)
	}
	if !seen.Quiet {
		t.Error("expected quiet")
	}
}

func TestDispatcher_InvalidBackend(t *testing.T) {
	d := newDispatcher(t, testFactory(testutil.NewFakeService(), nil))

	_, stderr, code := run(t, d, "list", "--backend", "sqlite")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unknown backend: sqlite\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_FactoryErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"auth", errors.Join(errors.New("token revoked"), service.ErrUnauthorized), "error: auth error: "},
		{"config", errors.New("invalid base url"), "error: config error: invalid base url\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDispatcher(t, func(ctx context.Context, cfg *config.Config) (service.Service, error) {
				return nil, tt.err
			})

			_, stderr, code := run(t, d, "list")

			if code != exitcode.AuthError {
				t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
			}
			if !strings.HasPrefix(stderr, tt.want) {
				t.Errorf("expected stderr starting with %q, got %q", tt.want, stderr)
			}
		})
	}
}

func TestDispatcher_ServiceNotBuiltForLocalCommands(t *testing.T) {
	called := false
	d := newDispatcher(t, func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		called = true
		return nil, errors.New("should not be called")
	})

	_, _, code := run(t, d, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if called {
		t.Error("factory should not run for version")
	}
}

func TestDefaultFactory_GoogleTasksNeedsLogin(t *testing.T) {
	d := newDispatcher(t, nil)

	_, stderr, code := run(t, d, "list", "--backend", "googletasks", "--config", t.TempDir())

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(stderr, "oauth_client.json not found") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDefaultFactory_RESTEndToEnd(t *testing.T) {
	srv := testutil.NewFakeServer(t)
	srv.Seed("file taxes", "low", false)
	srv.Seed("ship release", "high", false)
	d := newDispatcher(t, nil)

	_, _, code := run(t, d, "done", "--quiet", "--url", srv.URL, "1")
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}

	stdout, stderr, code := run(t, d, "list", "--url", srv.URL)
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	expected := "   1  [x] ship release  (high)\n   2  [ ] file taxes  (low)\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}

	var puts int
	for _, req := range srv.Requests() {
		if req.Method == http.MethodPut {
			puts++
			if req.Path != "/tasks/2" {
				t.Errorf("expected PUT /tasks/2, got %s", req.Path)
			}
		}
	}
	if puts != 1 {
		t.Errorf("expected 1 PUT, got %d", puts)
	}
}
