package execute

import (
	"fmt"
	"io"
	"strings"
)

const (
	// maxLineLength caps a stderr tail line before truncation.
	maxLineLength = 4096

	// maxStdoutLine is the scanner budget for a single child stdout
	// line.
	maxStdoutLine = 1024 * 1024

	// stderrTailLines is how many recent stderr lines are kept for error
	// reports.
	stderrTailLines = 20
)

// lineSink consumes one line of child stdout. Echoing and capturing are
// independent concerns composed over a single scanner pass.
type lineSink interface {
	line(s string)
}

// echoSink forwards each line to the parent's stdout as it arrives.
type echoSink struct {
	w io.Writer
}

func (e echoSink) line(s string) {
	fmt.Fprintln(e.w, s)
}

// captureSink accumulates lines for the caller, newline-terminated.
type captureSink struct {
	b *strings.Builder
}

func (c captureSink) line(s string) {
	c.b.WriteString(s)
	c.b.WriteByte('\n')
}

// lineTail keeps the last n complete lines written to it. It implements
// io.Writer so it can sit directly behind the child's stderr and is not
// safe for use from multiple goroutines.
type lineTail struct {
	n     int
	lines []string
	part  strings.Builder
}

func newLineTail(n int) *lineTail {
	return &lineTail{n: n}
}

func (t *lineTail) Write(p []byte) (int, error) {
	for _, b := range p {
		if b == '\n' {
			t.push(t.part.String())
			t.part.Reset()
			continue
		}
		t.part.WriteByte(b)
	}
	return len(p), nil
}

func (t *lineTail) push(line string) {
	if len(line) > maxLineLength {
		line = line[:maxLineLength] + "...(truncated)"
	}
	t.lines = append(t.lines, line)
	if len(t.lines) > t.n {
		t.lines = t.lines[1:]
	}
}

// Lines returns the buffered tail, including any unterminated final line.
func (t *lineTail) Lines() []string {
	out := make([]string, 0, len(t.lines)+1)
	out = append(out, t.lines...)
	if t.part.Len() > 0 {
		out = append(out, t.part.String())
	}
	return out
}
