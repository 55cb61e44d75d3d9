package display

// contentKind discriminates the shapes a result content field can take once
// resolved. The wire value is loosely typed (string, list, null or absent);
// resolving it once here keeps DescribeResult's branching exhaustive.
type contentKind int

const (
	contentEmpty contentKind = iota
	contentText
	contentList
)

type resolvedContent struct {
	kind  contentKind
	text  string
	items []ContentItem
}

// resolveContent classifies a raw content value. Empty strings and empty
// lists resolve to contentEmpty, matching the rule that empty content never
// produces a display block. Shapes outside the known union also resolve to
// contentEmpty; result handling has no error path.
func resolveContent(v any) resolvedContent {
	switch c := v.(type) {
	case nil:
		return resolvedContent{kind: contentEmpty}
	case string:
		if c == "" {
			return resolvedContent{kind: contentEmpty}
		}
		return resolvedContent{kind: contentText, text: c}
	case []ContentItem:
		if len(c) == 0 {
			return resolvedContent{kind: contentEmpty}
		}
		return resolvedContent{kind: contentList, items: c}
	case []any:
		items := itemsFromList(c)
		if len(items) == 0 {
			return resolvedContent{kind: contentEmpty}
		}
		return resolvedContent{kind: contentList, items: items}
	default:
		return resolvedContent{kind: contentEmpty}
	}
}

// itemsFromList converts decoded JSON list elements, preserving order.
// Item objects keep their type and text verbatim; bare strings become text
// items; anything else is skipped.
func itemsFromList(list []any) []ContentItem {
	items := make([]ContentItem, 0, len(list))
	for _, raw := range list {
		switch el := raw.(type) {
		case map[string]any:
			typ, _ := el["type"].(string)
			text, _ := el["text"].(string)
			items = append(items, ContentItem{Type: typ, Text: text})
		case string:
			items = append(items, ContentItem{Type: "text", Text: el})
		case ContentItem:
			items = append(items, el)
		}
	}
	return items
}
