package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestPrinter_Success_Human(t *testing.T) {
	var stdout bytes.Buffer
	p := NewPrinter(&stdout, &bytes.Buffer{}, ModeHuman, true)

	if err := p.Success("all done"); err != nil {
		t.Fatalf("Success: %v", err)
	}
	if stdout.String() != "all done\n" {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestPrinter_Success_JSONEnvelope(t *testing.T) {
	var stdout bytes.Buffer
	p := NewPrinter(&stdout, &bytes.Buffer{}, ModeJSON, true)

	if err := p.Success("created"); err != nil {
		t.Fatalf("Success: %v", err)
	}

	var env struct {
		Success bool   `json:"success"`
		Data    string `json:"data"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &env); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !env.Success || env.Data != "created" {
		t.Errorf("envelope = %+v", env)
	}
}

func TestPrinter_SuccessJSON_Structured(t *testing.T) {
	var stdout bytes.Buffer
	p := NewPrinter(&stdout, &bytes.Buffer{}, ModeJSON, true)

	if err := p.SuccessJSON(map[string]int{"count": 3}); err != nil {
		t.Fatalf("SuccessJSON: %v", err)
	}

	var env struct {
		Success bool           `json:"success"`
		Data    map[string]int `json:"data"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &env); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !env.Success || env.Data["count"] != 3 {
		t.Errorf("envelope = %+v", env)
	}
}

func TestPrinter_Failure_JSONEnvelopeOnStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	p := NewPrinter(&stdout, &stderr, ModeJSON, true)

	p.Failure(errAny("program id missing"))

	if stderr.Len() != 0 {
		t.Errorf("stderr should be empty in JSON mode, got %q", stderr.String())
	}
	var env struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &env); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if env.Success || env.Error != "program id missing" {
		t.Errorf("envelope = %+v", env)
	}
}

func TestPrinter_Failure_HumanOnStderr(t *testing.T) {
	var stdout, stderr bytes.Buffer
	p := NewPrinter(&stdout, &stderr, ModeHuman, true)

	p.Failure(errAny("boom"))

	if stdout.Len() != 0 {
		t.Errorf("stdout should be empty, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "boom") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestPrinter_CSV(t *testing.T) {
	var stdout bytes.Buffer
	p := NewPrinter(&stdout, &bytes.Buffer{}, ModeCSV, true)

	err := p.CSV([]string{"name", "rpc_url"}, [][]string{
		{"devnet", "https://api.devnet.solana.com"},
		{"with,comma", "x"},
	})
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if lines[0] != "name,rpc_url" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[2] != `"with,comma",x` {
		t.Errorf("quoted row = %q", lines[2])
	}
}

func TestModeFromFormat(t *testing.T) {
	tests := []struct {
		format string
		want   Mode
	}{
		{"human", ModeHuman},
		{"json", ModeJSON},
		{"csv", ModeCSV},
		{"", ModeHuman},
	}
	for _, tt := range tests {
		if got := ModeFromFormat(tt.format); got != tt.want {
			t.Errorf("ModeFromFormat(%q) = %v, want %v", tt.format, got, tt.want)
		}
	}
}

type errAny string

func (e errAny) Error() string { return string(e) }
