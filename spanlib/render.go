package spanlib

import (
	"fmt"
	"strings"
)

// ContentString projects a node to its plain text content with all
// markup dropped. Line children join with a single space, Paragraph
// children with a newline. Link and Image contribute both fields in
// stored order.
func ContentString(n Node) string {
	switch t := n.(type) {
	case nil:
		return ""
	case *OrdinaryText:
		return t.Text
	case *ItalicText:
		return t.Text
	case *BoldText:
		return t.Text
	case *Code:
		return t.Text
	case *InlineMath:
		return t.Text
	case *StrikeThroughText:
		return t.Text
	case *BracketedText:
		return t.Text
	case *HtmlEntity:
		return t.Text
	case *HtmlEntities:
		parts := make([]string, 0, len(t.Entities))
		for _, e := range t.Entities {
			parts = append(parts, e.Text)
		}
		return strings.Join(parts, " ")
	case *Link:
		return t.URL + " " + t.Label
	case *Image:
		return t.Alt + " " + t.URL
	case *ExtensionInline:
		return strings.Join(t.Args, " ")
	case *Line:
		parts := make([]string, 0, len(t.Spans))
		for _, sp := range t.Spans {
			parts = append(parts, ContentString(sp))
		}
		return strings.Join(parts, " ")
	case *Paragraph:
		parts := make([]string, 0, len(t.Lines))
		for _, ln := range t.Lines {
			parts = append(parts, ContentString(ln))
		}
		return strings.Join(parts, "\n")
	case *Stanza:
		return t.Text
	case *ErrorNode:
		parts := make([]string, 0, len(t.Nodes))
		for _, sub := range t.Nodes {
			parts = append(parts, ContentString(sub))
		}
		return strings.Join(parts, " ")
	}
	return ""
}

// RenderString projects a node onto the reference rendering backend.
// Most variants wrap their content in an HTML-like tag; Link and Image
// render as their debug form, and Line children concatenate without a
// separator.
func RenderString(n Node) string {
	switch t := n.(type) {
	case nil:
		return ""
	case *OrdinaryText:
		return t.Text
	case *ItalicText:
		return "<i>" + t.Text + "</i>"
	case *BoldText:
		return "<b>" + t.Text + "</b>"
	case *Code:
		return "<code>" + t.Text + "</code>"
	case *InlineMath:
		return "$" + t.Text + "$"
	case *StrikeThroughText:
		return "<strikethrough>" + t.Text + "</strikethrough>"
	case *BracketedText:
		return "[" + t.Text + "]"
	case *HtmlEntity:
		return "<span>" + t.Text + "</span>"
	case *HtmlEntities:
		var b strings.Builder
		for _, e := range t.Entities {
			b.WriteString(RenderString(e))
		}
		return b.String()
	case *Link:
		return fmt.Sprintf("Link [%s](%s)", t.URL, t.Label)
	case *Image:
		return fmt.Sprintf("Image [%s](%s)", t.Alt, t.URL)
	case *ExtensionInline:
		if t.Command == "class" && len(t.Args) > 0 {
			return fmt.Sprintf("<span class=%s>%s</span>", t.Args[0], strings.Join(t.Args[1:], " "))
		}
		payload := "Op " + t.Command
		if len(t.Args) > 0 {
			payload += " " + strings.Join(t.Args, " ")
		}
		return "<span>" + payload + "</span>"
	case *Line:
		var b strings.Builder
		for _, sp := range t.Spans {
			b.WriteString(RenderString(sp))
		}
		return b.String()
	case *Paragraph:
		var b strings.Builder
		b.WriteString("<p>\n")
		for _, ln := range t.Lines {
			b.WriteString("  ")
			b.WriteString(RenderString(ln))
			b.WriteString("\n")
		}
		b.WriteString("</p>")
		return b.String()
	case *Stanza:
		return t.Text
	case *ErrorNode:
		var b strings.Builder
		for _, sub := range t.Nodes {
			b.WriteString(RenderString(sub))
		}
		return b.String()
	}
	return ""
}
