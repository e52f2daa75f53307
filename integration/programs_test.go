package integration

import (
	"os"
	"strings"
	"testing"

	"makina/interp"
)

type captureDisplay struct {
	interp.NullDisplay
	out strings.Builder
}

func (d *captureDisplay) Log(text, end string) {
	d.out.WriteString(text)
	d.out.WriteString(end)
}

func runFile(t *testing.T, path string) string {
	t.Helper()
	src, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	d := &captureDisplay{}
	w := interp.FromText(string(src), d, strings.NewReader(""))
	if err := w.Run(); err != nil {
		t.Fatalf("running %s: %v", path, err)
	}
	return d.out.String()
}

func TestHelloWorldProgram(t *testing.T) {
	if got, want := runFile(t, "../testdata/programs/hello.mkn"), "Hello, world!\n"; got != want {
		t.Fatalf("got=%q, want=%q", got, want)
	}
}

func TestAddProgram(t *testing.T) {
	if got, want := runFile(t, "../testdata/programs/add.mkn"), "5\n"; got != want {
		t.Fatalf("got=%q, want=%q", got, want)
	}
}

func TestBranchProgram(t *testing.T) {
	if got, want := runFile(t, "../testdata/programs/branch.mkn"), "9\n"; got != want {
		t.Fatalf("got=%q, want=%q", got, want)
	}
}
