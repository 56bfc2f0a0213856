package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"VizChat/internal/dataset"
)

type testEnv struct {
	dir    string
	stdin  *strings.Reader
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func (e *testEnv) run(t *testing.T, args ...string) error {
	t.Helper()
	app := New().WithIO(e.stdin, &e.stdout, &e.stderr)
	base := []string{
		"--db", filepath.Join(e.dir, "vizchat.db"),
		"--log-dir", filepath.Join(e.dir, "logs"),
		"--output-dir", filepath.Join(e.dir, "charts"),
		"--telemetry=false",
	}
	return app.ExecuteWithArgs(context.Background(), append(args, base...))
}

func newEnv(t *testing.T, input string) *testEnv {
	return &testEnv{dir: t.TempDir(), stdin: strings.NewReader(input)}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestApp_Version(t *testing.T) {
	env := newEnv(t, "")
	if err := env.run(t, "version"); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "vizchat version") {
		t.Errorf("version output: %s", env.stdout.String())
	}
}

func TestApp_Help(t *testing.T) {
	env := newEnv(t, "")
	if err := env.run(t, "--help"); err != nil {
		t.Fatalf("help failed: %v", err)
	}
	out := env.stdout.String()
	for _, want := range []string{"chat", "serve", "render", "inspect"} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q", want)
		}
	}
}

func TestApp_RenderSample(t *testing.T) {
	env := newEnv(t, "")
	if err := env.run(t, "render", "scatter"); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	path := strings.TrimSpace(env.stdout.String())
	if filepath.Dir(path) != filepath.Join(env.dir, "charts") || !strings.HasPrefix(filepath.Base(path), "scatter-") {
		t.Fatalf("path = %q", path)
	}
	page, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(page), "Scatter Chart") {
		t.Error("page is missing the default title")
	}
}

func TestApp_RenderData(t *testing.T) {
	env := newEnv(t, "")
	data := writeFile(t, env.dir, "sales.csv", "Region,Revenue\nNorth,10\nSouth,7\n")

	if err := env.run(t, "render", "bar", "--data", data, "--scheme", "pastel"); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	page, err := os.ReadFile(strings.TrimSpace(env.stdout.String()))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(page), "Revenue by Region") {
		t.Error("page is missing the descriptive title")
	}
}

func TestApp_RenderErrors(t *testing.T) {
	env := newEnv(t, "")
	if err := env.run(t, "render", "radar"); err == nil {
		t.Error("expected an error for an unknown chart type")
	}

	data := writeFile(t, env.dir, "one.csv", "Region,Revenue\nNorth,10\n")
	if err := env.run(t, "render", "scatter", "--data", data); err == nil {
		t.Error("expected an error for scatter with one numeric column")
	}

	if err := env.run(t, "render", "bar", "--data", filepath.Join(env.dir, "x.json")); !errors.Is(err, dataset.ErrUnsupportedFormat) {
		t.Errorf("err = %v", err)
	}
}

func TestApp_InspectJSON(t *testing.T) {
	env := newEnv(t, "")
	data := writeFile(t, env.dir, "sales.csv", "Region,Revenue,Units\nNorth,10,1\nSouth,7,2\n")

	if err := env.run(t, "inspect", data, "--json"); err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	var report inspectReport
	if err := json.Unmarshal(env.stdout.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v\n%s", err, env.stdout.String())
	}
	if report.Name != "sales.csv" || report.Summary.Rows != 2 {
		t.Errorf("report = %s/%d", report.Name, report.Summary.Rows)
	}
	enabled := 0
	for _, q := range report.QuickCharts {
		if q.Enabled {
			enabled++
		}
	}
	if enabled != len(report.QuickCharts) {
		t.Errorf("two numeric and one categorical column should enable every quick chart: %+v", report.QuickCharts)
	}
}

func TestApp_InspectText(t *testing.T) {
	env := newEnv(t, "")
	data := writeFile(t, env.dir, "one.csv", "Region,Revenue\nNorth,10\n")

	if err := env.run(t, "inspect", data); err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	out := env.stdout.String()
	if !strings.Contains(out, "one.csv: 1 rows x 2 columns") {
		t.Errorf("output: %s", out)
	}
	if !strings.Contains(out, "needs 2 numeric") {
		t.Errorf("scatter should be reported unavailable: %s", out)
	}
}

func TestApp_Chat(t *testing.T) {
	env := newEnv(t, "Show me a pie chart\n/history\n/quit\n")
	if err := env.run(t, "chat"); err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	out := env.stdout.String()
	for _, want := range []string{"=== VizChat ===", "sample pie chart", "1. Pie:", "Goodbye!"} {
		if !strings.Contains(out, want) {
			t.Errorf("chat output missing %q:\n%s", want, out)
		}
	}
}
