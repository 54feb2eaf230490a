package buildinfo

import (
	"runtime"
	"strings"
	"testing"
)

func TestGetLdflagsWin(t *testing.T) {
	old := Version
	Version = "v9.9.9"
	defer func() { Version = old }()

	if got := Get().Version; got != "v9.9.9" {
		t.Errorf("Version = %q, want v9.9.9", got)
	}
}

func TestTemplate(t *testing.T) {
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} version ") {
		t.Errorf("Template() = %q", tmpl)
	}
	if !strings.Contains(tmpl, runtime.Version()) {
		t.Errorf("Template() should include the Go version: %q", tmpl)
	}
}
