// Package display translates tool invocation requests and results into
// structures a transcript renderer can show to a user. It does not run
// tools; execution happens elsewhere and only the shapes arrive here.
package display

import "fmt"

// Tool names recognized by the presenter.
const ToolNameTask = "Task"

// Display kinds attached to ToolInfo.
const KindThink = "think"

// taskFallbackTitle is used when a Task invocation carries no description.
const taskFallbackTitle = "task"

// ToolInvocation is a request to run a named tool with structured input.
// Produced by the upstream dispatcher; read-only here.
type ToolInvocation struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Input map[string]any `json:"input"`
}

// ToolResult is the payload produced after an invocation completes.
// Content holds the decoded wire value and may be a string, a []ContentItem,
// a []any of item maps, or nil when the tool produced no output.
type ToolResult struct {
	Content any `json:"content"`
}

// ContentItem is one raw unit of tool output.
type ContentItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ContentBlock is the normalized display wrapper around a ContentItem.
type ContentBlock struct {
	Type    string      `json:"type"`
	Content ContentItem `json:"content"`
}

// ToolInfo describes an invocation for display.
type ToolInfo struct {
	Title   string         `json:"title"`
	Kind    string         `json:"kind"`
	Content []ContentBlock `json:"content"`
}

// ToolUpdate carries normalized result content. A zero ToolUpdate means
// there is nothing to display; callers must not treat that as an error.
type ToolUpdate struct {
	Content []ContentBlock `json:"content,omitempty"`
}

// UnsupportedToolError reports an invocation whose tool name the presenter
// does not recognize.
type UnsupportedToolError struct {
	Name string
}

func (e *UnsupportedToolError) Error() string {
	return fmt.Sprintf("unsupported tool: %s", e.Name)
}

// ExecutionPresenter maps execution tool invocations and results to display
// structures. It holds no state; both methods are pure and safe for
// concurrent use.
type ExecutionPresenter struct{}

func NewExecutionPresenter() *ExecutionPresenter {
	return &ExecutionPresenter{}
}

// DescribeInvocation produces the display description for an invocation.
// Unrecognized tool names return an *UnsupportedToolError and no ToolInfo.
func (p *ExecutionPresenter) DescribeInvocation(inv ToolInvocation) (ToolInfo, error) {
	switch inv.Name {
	case ToolNameTask:
		return describeTask(inv.Input), nil
	default:
		return ToolInfo{}, &UnsupportedToolError{Name: inv.Name}
	}
}

func describeTask(input map[string]any) ToolInfo {
	info := ToolInfo{
		Title:   taskFallbackTitle,
		Kind:    KindThink,
		Content: []ContentBlock{},
	}
	if desc := stringField(input, "description"); desc != "" {
		info.Title = desc
	}
	if prompt := stringField(input, "prompt"); prompt != "" {
		info.Content = append(info.Content, wrapText(prompt))
	}
	return info
}

// DescribeResult normalizes a result into a ToolUpdate. The originating
// invocation is accepted for per-tool formatting later; every recognized
// tool currently normalizes results the same way, so it is unused. Every
// content shape degrades to an empty update rather than failing.
func (p *ExecutionPresenter) DescribeResult(res ToolResult, inv *ToolInvocation) ToolUpdate {
	_ = inv

	switch rc := resolveContent(res.Content); rc.kind {
	case contentText:
		return ToolUpdate{Content: []ContentBlock{wrapText(rc.text)}}
	case contentList:
		blocks := make([]ContentBlock, 0, len(rc.items))
		for _, item := range rc.items {
			blocks = append(blocks, ContentBlock{Type: "content", Content: item})
		}
		if len(blocks) == 0 {
			return ToolUpdate{}
		}
		return ToolUpdate{Content: blocks}
	default:
		return ToolUpdate{}
	}
}

func wrapText(text string) ContentBlock {
	return ContentBlock{
		Type:    "content",
		Content: ContentItem{Type: "text", Text: text},
	}
}

// stringField reads input[key] as a string. Missing keys, nil values and
// non-string values all read as "", so absence and explicit null are
// indistinguishable to callers.
func stringField(input map[string]any, key string) string {
	if input == nil {
		return ""
	}
	s, _ := input[key].(string)
	return s
}
