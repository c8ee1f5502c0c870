package navigate

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gorewood/driftwood/internal/output"
)

func newTestPrinter() (*output.Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	p := output.NewPrinter(&out, false, false).WithStderr(&errOut)
	return p, &out, &errOut
}

func reader(input string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(input))
}

func TestPromptForRange(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   int
		wantOK bool
	}{
		{name: "first in range", input: "1\n", want: 1, wantOK: true},
		{name: "last in range", input: "3\n", want: 3, wantOK: true},
		{name: "whitespace trimmed", input: "  2  \n", want: 2, wantOK: true},
		{name: "no trailing newline", input: "2", want: 2, wantOK: true},
		{name: "below range", input: "0\n", wantOK: false},
		{name: "above range", input: "4\n", wantOK: false},
		{name: "not a number", input: "abc\n", wantOK: false},
		{name: "negative", input: "-1\n", wantOK: false},
		{name: "empty line", input: "\n", wantOK: false},
		{name: "no input at all", input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, out, errOut := newTestPrinter()

			got, ok, err := PromptForRange(p, reader(tt.input), 1, 3)
			if err != nil {
				t.Fatalf("PromptForRange() error = %v", err)
			}
			if ok != tt.wantOK {
				t.Fatalf("PromptForRange() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("PromptForRange() = %d, want %d", got, tt.want)
			}

			if !strings.Contains(out.String(), "Select the commit to advance to [1-3]: ") {
				t.Errorf("prompt text missing from output: %q", out.String())
			}
			if !tt.wantOK && !strings.Contains(errOut.String(), "Invalid selection. Must be in range [1-3]") {
				t.Errorf("diagnostic missing from stderr: %q", errOut.String())
			}
			if tt.wantOK && errOut.Len() != 0 {
				t.Errorf("unexpected stderr output: %q", errOut.String())
			}
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("terminal went away")
}

func TestPromptForRange_ReadError(t *testing.T) {
	p, _, _ := newTestPrinter()

	_, ok, err := PromptForRange(p, bufio.NewReader(failingReader{}), 1, 2)
	if ok {
		t.Error("PromptForRange() ok = true, want false")
	}
	if err == nil {
		t.Fatal("PromptForRange() expected an error")
	}
	if output.GetExitCode(err) != output.ExitSystemError {
		t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitSystemError)
	}
}

func TestPromptForRange_SharedReaderKeepsRemainingInput(t *testing.T) {
	p, _, _ := newTestPrinter()
	in := reader("2\n1\n")

	got, ok, err := PromptForRange(p, in, 1, 3)
	if err != nil || !ok || got != 2 {
		t.Fatalf("first PromptForRange() = %d, %v, %v; want 2, true, nil", got, ok, err)
	}

	got, ok, err = PromptForRange(p, in, 1, 3)
	if err != nil || !ok || got != 1 {
		t.Fatalf("second PromptForRange() = %d, %v, %v; want 1, true, nil", got, ok, err)
	}
}
