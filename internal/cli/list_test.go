package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/codeshot/pkg/config"
)

func TestThemesCommand(t *testing.T) {
	cmd := New(&bytes.Buffer{}, LogInfo).themesCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	for _, th := range config.Themes() {
		if !strings.Contains(out.String(), th.DisplayName()) {
			t.Errorf("output missing %q", th.DisplayName())
		}
	}
}

func TestPrintLanguages(t *testing.T) {
	var out bytes.Buffer
	if err := printLanguages(&out); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Javascript", "typescript", ".tsx", "Sql"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestPrintExports(t *testing.T) {
	var out bytes.Buffer
	printExports(&out, nil)
	if out.Len() != 0 {
		t.Errorf("no exports should print nothing, got %q", out.String())
	}

	printExports(&out, []string{"/out/a.png", "/out/a (1).png"})
	for _, want := range []string{"Exported 2 images", "/out/a.png", "/out/a (1).png"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q: %q", want, out.String())
		}
	}
}
