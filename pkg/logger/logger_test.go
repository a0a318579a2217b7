package logger

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func captureStdOut(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(data)
}

func TestInit_DevStd_TextOutput(t *testing.T) {
	out := captureStdOut(t, func() {
		Init(Config{
			Service: "demo",
			Env:     EnvDev,
			Backend: BackendStd,
		})
		slog.Info("booted", slog.String("k", "v"))
	})

	if !strings.Contains(out, "msg=booted") || !strings.Contains(out, "k=v") {
		t.Fatalf("unexpected text output: %s", out)
	}
	if !strings.Contains(out, "service=demo") {
		t.Fatalf("common attrs missing: %s", out)
	}
}

func TestInit_ProdZap_JSONOutput(t *testing.T) {
	out := captureStdOut(t, func() {
		Init(Config{
			Service:          "demo",
			Version:          "1.2.3",
			Env:              EnvProd,
			Backend:          BackendZap,
			Level:            slog.LevelInfo,
			SampleInitial:    100000,
			SampleThereafter: 100000,
		})
		slog.Info("booted", slog.String("k", "v"))
	})

	var m map[string]any
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatalf("expected JSON line, got %s, err=%v", out, err)
	}
	if m["msg"] != "booted" {
		t.Fatalf("msg mismatch: %v", m["msg"])
	}
	if m["service"] != "demo" || m["env"] != "prod" || m["version"] != "1.2.3" {
		t.Fatalf("attrs missing: service=%v env=%v version=%v", m["service"], m["env"], m["version"])
	}
	if m["k"] != "v" {
		t.Fatalf("custom field missing: %v", m["k"])
	}
}
