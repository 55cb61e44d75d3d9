// Package transcript turns presenter output into messages channels can
// deliver. Tool activity becomes transcript lines plus structured content
// blocks so channels can render without re-parsing text.
package transcript

import (
	"fmt"
	"strings"

	"github.com/cexll/agentsdk-go/pkg/model"
	"github.com/stellarlinkco/taskview/internal/display"
)

// Outbound is one deliverable transcript message.
type Outbound struct {
	Text          string
	ContentBlocks []model.ContentBlock
	Metadata      map[string]any
}

// Renderer formats display structures into Outbound messages.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderInvocation renders a described invocation: a header line with the
// display kind and title, followed by any preview content.
func (r *Renderer) RenderInvocation(info display.ToolInfo) Outbound {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s", info.Kind, info.Title)

	blocks := make([]model.ContentBlock, 0, len(info.Content))
	for _, block := range info.Content {
		sb.WriteString("\n")
		sb.WriteString(block.Content.Text)
		blocks = append(blocks, textBlock(block.Content.Text))
	}

	return Outbound{
		Text:          sb.String(),
		ContentBlocks: blocks,
		Metadata:      map[string]any{"kind": info.Kind, "title": info.Title},
	}
}

// RenderUpdate renders normalized result content. The second return is
// false when the update carries nothing to display; callers drop those.
func (r *Renderer) RenderUpdate(update display.ToolUpdate) (Outbound, bool) {
	if len(update.Content) == 0 {
		return Outbound{}, false
	}

	lines := make([]string, 0, len(update.Content))
	blocks := make([]model.ContentBlock, 0, len(update.Content))
	for _, block := range update.Content {
		lines = append(lines, block.Content.Text)
		blocks = append(blocks, textBlock(block.Content.Text))
	}

	return Outbound{
		Text:          strings.Join(lines, "\n"),
		ContentBlocks: blocks,
	}, true
}

func textBlock(text string) model.ContentBlock {
	return model.ContentBlock{
		Type: model.ContentBlockText,
		Text: text,
	}
}
