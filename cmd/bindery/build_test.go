package main

// Notes:
// - runBuild: end-to-end through the placeholder provider into a temp
//   output root, small trims and DPI to stay fast
// - selectProvider: explicit choice only, no fallback
// - printResults: per-line output and summary via captured buffers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bindery/bindery"
	"github.com/bindery/bindery/internal/config"
)

// writeBatchFile drops a YAML batch config into a temp dir.
func writeBatchFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing batch file: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestRunBuild - End to End
// ---------------------------------------------------------------------------

func TestRunBuild(t *testing.T) {
	t.Parallel()

	t.Run("produces all publications", func(t *testing.T) {
		t.Parallel()

		output := t.TempDir()
		cfgPath := writeBatchFile(t, `publications:
  - kind: coloring-book
    theme: dinosaurs
    style: cute
    trimSize: 5x8
    bleed: 0
    dpi: 12
    units: 2
  - kind: clipart-bundle
    theme: woodland
    style: watercolor
    trimSize: 5x8
    bleed: 0
    dpi: 12
    units: 2
`)

		env, stdout, stderr := testEnv()
		err := runBuild(context.Background(), []string{
			"--config", cfgPath,
			"--output", output,
			"--workers", "2",
			"--provider", "placeholder",
		}, env)
		if err != nil {
			t.Fatalf("runBuild() error: %v\nstderr: %s", err, stderr.String())
		}

		for _, artifact := range []string{
			filepath.Join("dinosaurs", "interior.pdf"),
			filepath.Join("dinosaurs", "catalog.json"),
			filepath.Join("woodland", "preview.jpg"),
		} {
			if _, err := os.Stat(filepath.Join(output, artifact)); err != nil {
				t.Errorf("expected artifact %s: %v", artifact, err)
			}
		}

		out := stdout.String()
		if !strings.Contains(out, "Created") {
			t.Errorf("stdout %q missing per-publication lines", out)
		}
		if !strings.Contains(out, "2 succeeded, 0 failed") {
			t.Errorf("stdout %q missing summary", out)
		}
	})

	t.Run("failed publication sets the error and keeps siblings", func(t *testing.T) {
		t.Parallel()

		output := t.TempDir()
		cfgPath := writeBatchFile(t, `publications:
  - kind: coloring-book
    theme: dinosaurs
    trimSize: 5x8
    bleed: 0
    dpi: 12
    units: 2
  - kind: coloring-book
    theme: unicorns
    trimSize: 11x17
    units: 2
`)

		env, _, stderr := testEnv()
		err := runBuild(context.Background(), []string{"--config", cfgPath, "--output", output}, env)
		if !errors.Is(err, ErrPublicationsFailed) {
			t.Fatalf("runBuild() error = %v, want ErrPublicationsFailed", err)
		}
		if !strings.Contains(stderr.String(), "FAILED unicorns") {
			t.Errorf("stderr %q missing failure line", stderr.String())
		}
		if _, err := os.Stat(filepath.Join(output, "dinosaurs", "cover.pdf")); err != nil {
			t.Errorf("sibling artifacts missing: %v", err)
		}
	})

	t.Run("missing config flag", func(t *testing.T) {
		t.Parallel()

		env, _, _ := testEnv()
		err := runBuild(context.Background(), nil, env)
		if !errors.Is(err, ErrNoConfig) {
			t.Fatalf("runBuild() error = %v, want ErrNoConfig", err)
		}
	})

	t.Run("missing config file", func(t *testing.T) {
		t.Parallel()

		env, _, _ := testEnv()
		err := runBuild(context.Background(), []string{"--config", filepath.Join(t.TempDir(), "absent.yaml")}, env)
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Fatalf("runBuild() error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown provider name", func(t *testing.T) {
		t.Parallel()

		cfgPath := writeBatchFile(t, "publications:\n  - theme: dinosaurs\n    units: 1\n")
		env, _, _ := testEnv()
		err := runBuild(context.Background(), []string{"--config", cfgPath, "--provider", "dalle"}, env)
		if !errors.Is(err, ErrUnknownProviderName) {
			t.Fatalf("runBuild() error = %v, want ErrUnknownProviderName", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestSelectProvider
// ---------------------------------------------------------------------------

func TestSelectProvider(t *testing.T) {
	t.Parallel()

	t.Run("placeholder", func(t *testing.T) {
		t.Parallel()

		p, err := selectProvider(providerPlaceholder, "")
		if err != nil {
			t.Fatalf("selectProvider() error: %v", err)
		}
		if p.Name() != bindery.PlaceholderName {
			t.Errorf("provider name = %q", p.Name())
		}
	})

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()

		_, err := selectProvider("dalle", "")
		if !errors.Is(err, ErrUnknownProviderName) {
			t.Fatalf("selectProvider() error = %v, want ErrUnknownProviderName", err)
		}
	})

	t.Run("empty is not a silent default", func(t *testing.T) {
		t.Parallel()

		_, err := selectProvider("", "")
		if !errors.Is(err, ErrUnknownProviderName) {
			t.Fatalf("selectProvider() error = %v, want ErrUnknownProviderName", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestPrintResults
// ---------------------------------------------------------------------------

func TestPrintResults(t *testing.T) {
	t.Parallel()

	results := []bindery.Result{
		{
			Config:   bindery.PublicationConfig{Theme: "dinosaurs"},
			Catalog:  bindery.Catalog{Title: "Cute Dinosaurs Coloring Book", UnitCount: 30, Price: 5.99},
			Duration: 1500 * time.Millisecond,
		},
		{
			Config: bindery.PublicationConfig{Theme: "unicorns"},
			Err:    bindery.ErrUnknownTrimSize,
		},
	}

	t.Run("default output", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv()
		failed := printResults(results, "out", false, false, env)
		if failed != 1 {
			t.Errorf("failed = %d, want 1", failed)
		}
		if !strings.Contains(stdout.String(), `Created "Cute Dinosaurs Coloring Book" (30 units)`) {
			t.Errorf("stdout = %q", stdout.String())
		}
		if !strings.Contains(stdout.String(), "1 succeeded, 1 failed") {
			t.Errorf("stdout %q missing summary", stdout.String())
		}
		if !strings.Contains(stderr.String(), "FAILED unicorns") {
			t.Errorf("stderr = %q", stderr.String())
		}
	})

	t.Run("quiet keeps failures only", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv()
		printResults(results, "out", true, false, env)
		if stdout.Len() != 0 {
			t.Errorf("quiet stdout = %q, want empty", stdout.String())
		}
		if !strings.Contains(stderr.String(), "FAILED unicorns") {
			t.Errorf("quiet stderr = %q, failures must still print", stderr.String())
		}
	})

	t.Run("verbose shows duration and price", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv()
		printResults(results, "out", false, true, env)
		out := stdout.String()
		if !strings.Contains(out, "$5.99") || !strings.Contains(out, "1.5s") {
			t.Errorf("verbose stdout = %q", out)
		}
	})

	t.Run("single result has no summary line", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv()
		printResults(results[:1], "out", false, false, env)
		if strings.Contains(stdout.String(), "succeeded") {
			t.Errorf("stdout %q has a summary for a single result", stdout.String())
		}
	})
}
