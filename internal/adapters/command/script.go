package command

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const maxScriptLine = 4 << 20

// Result pairs a command name with its response in script output.
type Result struct {
	Command string `json:"command"`
	Response
}

// RunScript executes one command per line of r and writes one JSON result
// per line to w. A line is a command name optionally followed by its JSON
// arguments; blank lines and lines starting with # are skipped. It returns
// the number of failed commands.
func (d *Dispatcher) RunScript(ctx context.Context, r io.Reader, w io.Writer) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxScriptLine)
	enc := json.NewEncoder(w)

	failed := 0
	for line := 1; sc.Scan(); line++ {
		if err := ctx.Err(); err != nil {
			return failed, err
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		name, args := ParseLine(text)
		resp := d.Execute(ctx, name, args)
		if !resp.Success {
			failed++
		}
		if err := enc.Encode(Result{Command: name, Response: resp}); err != nil {
			return failed, fmt.Errorf("write result of line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return failed, fmt.Errorf("read script: %w", err)
	}
	return failed, nil
}

// ParseLine splits "name {json}" into the command name and its arguments.
func ParseLine(text string) (string, json.RawMessage) {
	name, rest, _ := strings.Cut(strings.TrimSpace(text), " ")
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return name, nil
	}
	return name, json.RawMessage(rest)
}
