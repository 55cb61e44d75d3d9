// Package stream decodes the framework's JSONL event stream into the inputs
// the display presenter consumes. One JSON object per line; only tool_use
// and tool_result lines matter here, everything else is passed over.
package stream

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/stellarlinkco/taskview/internal/display"
)

const maxLineBytes = 1024 * 1024

type EventType string

const (
	EventInvocation EventType = "invocation"
	EventResult     EventType = "result"
)

// Event is one decoded tool event. Invocation is set for EventInvocation;
// Result is set for EventResult, with Origin pointing at the invocation the
// result answers when that invocation appeared earlier in the stream.
type Event struct {
	Type       EventType
	Invocation *display.ToolInvocation
	Result     *display.ToolResult
	Origin     *display.ToolInvocation
}

// Reader walks a JSONL event stream. Not safe for concurrent use.
type Reader struct {
	scanner *bufio.Scanner
	seen    map[string]display.ToolInvocation
	skipped int
}

func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &Reader{
		scanner: scanner,
		seen:    make(map[string]display.ToolInvocation),
	}
}

// Next returns the next tool event, or io.EOF when the stream ends.
// Malformed lines and lines of other event types are skipped, not errors;
// Skipped reports how many lines failed to decode.
func (r *Reader) Next() (Event, error) {
	for r.scanner.Scan() {
		line := r.scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var data map[string]any
		if err := json.Unmarshal(line, &data); err != nil {
			r.skipped++
			continue
		}

		msgType, _ := data["type"].(string)
		switch msgType {
		case "tool_use":
			inv := decodeInvocation(data)
			if inv.ID != "" {
				r.seen[inv.ID] = inv
			}
			return Event{Type: EventInvocation, Invocation: &inv}, nil
		case "tool_result":
			res := display.ToolResult{Content: data["content"]}
			ev := Event{Type: EventResult, Result: &res}
			if id, _ := data["tool_use_id"].(string); id != "" {
				if origin, ok := r.seen[id]; ok {
					ev.Origin = &origin
				}
			}
			return ev, nil
		}
	}
	if err := r.scanner.Err(); err != nil {
		return Event{}, err
	}
	return Event{}, io.EOF
}

// Skipped reports how many lines were dropped as malformed JSON.
func (r *Reader) Skipped() int {
	return r.skipped
}

func decodeInvocation(data map[string]any) display.ToolInvocation {
	id, _ := data["id"].(string)
	name, _ := data["name"].(string)
	input, _ := data["input"].(map[string]any)
	return display.ToolInvocation{ID: id, Name: name, Input: input}
}
