package navigate

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gorewood/driftwood/internal/output"
)

// PromptForRange asks the user to choose a number within [min, max],
// inclusive and 1-indexed to match the listing on screen. It reads a single
// line and does not retry: unparsable or out-of-range input yields ok=false
// with a diagnostic on the error stream, and the caller decides whether that
// cancels the whole operation.
//
// The reader is buffered so a walk that prompts more than once can hand the
// same one to every prompt without losing input between them.
func PromptForRange(p *output.Printer, in *bufio.Reader, min, max int) (int, bool, error) {
	p.Print("Select the commit to advance to [%d-%d]: ", min, max)

	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, false, output.NewSystemErrorWithCause("failed to read selection", err)
	}

	selected, convErr := strconv.Atoi(strings.TrimSpace(line))
	if convErr != nil {
		selected = 0
	}
	if selected < min || selected > max {
		p.Stderr("Invalid selection. Must be in range [%d-%d]\n", min, max)
		return 0, false, nil
	}
	return selected, true, nil
}
