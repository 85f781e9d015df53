package state

import (
	"archive/zip"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"cssnest/common"
)

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	name := filepath.Join(dir, "conf.yaml")
	data := "version: 1\n" +
		"logging:\n  console:\n    level: none\n  file:\n    level: none\n    destination: " + filepath.Join(dir, "cssnest.log") + "\n" +
		"reporting:\n  destination: " + filepath.Join(dir, "report.zip") + "\n"
	if err := os.WriteFile(name, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return name
}

func TestLocalEnv_OpenClose(t *testing.T) {
	dir := t.TempDir()
	env := newLocalEnv()

	if err := env.Open(writeConfig(t, dir), true); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if env.Cfg == nil || env.Log == nil || env.Rpt == nil {
		t.Fatal("expected configuration, logger and report to be prepared")
	}
	if err := env.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	r, err := zip.OpenReader(filepath.Join(dir, "report.zip"))
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer r.Close()

	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	for _, want := range []string{"config/conf.yaml", "config/effective.yaml"} {
		if !slices.Contains(names, want) {
			t.Errorf("report has no %s: %v", want, names)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "cssnest-panic.log")); !os.IsNotExist(err) {
		t.Errorf("empty panic log must be removed, stat error = %v", err)
	}
}

func TestLocalEnv_OpenErrors(t *testing.T) {
	env := newLocalEnv()
	if err := env.Open(filepath.Join(t.TempDir(), "missing.yaml"), false); err == nil {
		t.Error("expected error for missing configuration file")
	}
	if err := env.Close(); err != nil {
		t.Errorf("Close() after failed Open error = %v", err)
	}
}

func TestLocalEnv_SelectReport(t *testing.T) {
	dir := t.TempDir()
	env := newLocalEnv()

	if err := env.SelectReport("xml", ""); err == nil {
		t.Error("expected error for unknown format")
	}

	if err := env.SelectReport("json", ""); err != nil {
		t.Fatalf("SelectReport() error = %v", err)
	}
	if env.Format != common.OutputFmtJson || env.Out != os.Stdout {
		t.Errorf("unexpected format %s or destination", env.Format)
	}

	out := filepath.Join(dir, "report.txt")
	if err := env.SelectReport("text", out); err != nil {
		t.Fatalf("SelectReport() error = %v", err)
	}
	if _, err := env.Out.Write([]byte("line\n")); err != nil {
		t.Fatalf("write report: %v", err)
	}
	if err := env.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if env.Out != os.Stdout {
		t.Error("expected stdout to be restored")
	}
	data, err := os.ReadFile(out)
	if err != nil || string(data) != "line\n" {
		t.Errorf("unexpected report content %q, error %v", data, err)
	}

	if err := env.SelectReport("text", filepath.Join(dir, "missing", "report.txt")); err == nil {
		t.Error("expected error for inaccessible destination")
	}
}
