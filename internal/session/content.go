package session

import (
	"strings"

	"github.com/tidwall/gjson"
)

// ExtractText flattens a message's content into plain text.
//
// Content is either a plain string (returned verbatim) or an array of
// parts. Parts that are objects contribute their "text" or "thinking"
// payload depending on kind; parts that are bare strings contribute
// themselves; everything else (tool_use, tool_result, images) is
// ignored. Fragments are joined with single spaces. Any other content
// shape yields an empty string.
func ExtractText(m *Message) string {
	if len(m.Body.Content) == 0 {
		return ""
	}

	content := gjson.ParseBytes(m.Body.Content)
	switch {
	case content.Type == gjson.String:
		return content.String()
	case content.IsArray():
		var parts []string
		content.ForEach(func(_, part gjson.Result) bool {
			switch {
			case part.IsObject():
				switch part.Get("type").String() {
				case "text":
					parts = append(parts, part.Get("text").String())
				case "thinking":
					parts = append(parts, part.Get("thinking").String())
				}
			case part.Type == gjson.String:
				parts = append(parts, part.String())
			}
			return true
		})
		return strings.Join(parts, " ")
	default:
		return ""
	}
}
