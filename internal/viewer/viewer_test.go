package viewer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stellarlinkco/taskview/internal/config"
	"github.com/stellarlinkco/taskview/internal/stream"
)

func consoleViewer(t *testing.T, buf *bytes.Buffer) *Viewer {
	t.Helper()
	cfg := config.DefaultConfig()
	v, err := NewWithOptions(cfg, Options{ConsoleOut: buf})
	if err != nil {
		t.Fatalf("NewWithOptions error: %v", err)
	}
	return v
}

func TestConsume_EndToEnd(t *testing.T) {
	input := strings.Join([]string{
		`{"type":"tool_use","id":"toolu_01","name":"Task","input":{"description":"Security audit","prompt":"Perform a security audit"}}`,
		`{"type":"tool_result","tool_use_id":"toolu_01","content":[{"type":"text","text":"Audit complete."}]}`,
	}, "\n")

	var buf bytes.Buffer
	v := consoleViewer(t, &buf)
	if err := v.Consume(stream.NewReader(strings.NewReader(input))); err != nil {
		t.Fatalf("Consume error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "[think] Security audit") {
		t.Errorf("output = %q, want invocation header", out)
	}
	if !strings.Contains(out, "Perform a security audit") {
		t.Errorf("output = %q, want the prompt preview", out)
	}
	if !strings.Contains(out, "Audit complete.") {
		t.Errorf("output = %q, want the result text", out)
	}
}

func TestConsume_UnsupportedToolIsDropped(t *testing.T) {
	input := strings.Join([]string{
		`{"type":"tool_use","id":"toolu_01","name":"UnsupportedExecutionTool","input":{}}`,
		`{"type":"tool_use","id":"toolu_02","name":"Task","input":{"description":"after"}}`,
	}, "\n")

	var buf bytes.Buffer
	v := consoleViewer(t, &buf)
	if err := v.Consume(stream.NewReader(strings.NewReader(input))); err != nil {
		t.Fatalf("Consume error: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "UnsupportedExecutionTool") {
		t.Errorf("output = %q, unsupported invocation should not be rendered", out)
	}
	if !strings.Contains(out, "[think] after") {
		t.Errorf("output = %q, later events should still be rendered", out)
	}
}

func TestConsume_EmptyResultRendersNothing(t *testing.T) {
	input := `{"type":"tool_result","tool_use_id":"toolu_01","content":""}`

	var buf bytes.Buffer
	v := consoleViewer(t, &buf)
	if err := v.Consume(stream.NewReader(strings.NewReader(input))); err != nil {
		t.Fatalf("Consume error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("output = %q, want nothing for empty content", buf.String())
	}
}

func TestConsume_TitleFallback(t *testing.T) {
	input := `{"type":"tool_use","id":"toolu_01","name":"Task","input":{"prompt":"do it"}}`

	var buf bytes.Buffer
	v := consoleViewer(t, &buf)
	if err := v.Consume(stream.NewReader(strings.NewReader(input))); err != nil {
		t.Fatalf("Consume error: %v", err)
	}
	if !strings.Contains(buf.String(), "[think] task") {
		t.Errorf("output = %q, want fallback title", buf.String())
	}
}
