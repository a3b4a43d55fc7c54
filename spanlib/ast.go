// Package spanlib parses the inline span syntax of a markdown-style
// document language. Block structure is handled upstream; spanlib
// receives raw per-block text and produces a tree of typed span nodes.
package spanlib

import (
	"fmt"
	"strings"
)

// Node is one variant of the span tree. The variant set is closed:
// the unexported marker keeps outside packages from adding to it, so
// consumers may switch over the concrete types exhaustively.
type Node interface {
	node()
}

// OrdinaryText is a run of characters with no inline markup.
type OrdinaryText struct {
	Text string
}

type ItalicText struct {
	Text string
}

type BoldText struct {
	Text string
}

type Code struct {
	Text string
}

type InlineMath struct {
	Text string
}

type StrikeThroughText struct {
	Text string
}

// BracketedText is a [label] whose bracket was not followed by a
// parenthesized url.
type BracketedText struct {
	Text string
}

// HtmlEntity holds an entity name with the '&', ';' and any spaces
// stripped.
type HtmlEntity struct {
	Text string
}

// HtmlEntities groups a run of adjacent entities.
type HtmlEntities struct {
	Entities []*HtmlEntity
}

// Link stores the url before the label. Serializers emit the fields in
// this order.
type Link struct {
	URL   string
	Label string
}

// Image stores the alt text before the url.
type Image struct {
	Alt string
	URL string
}

// ExtensionInline is an @command[args] construct. Args never contains
// empty strings.
type ExtensionInline struct {
	Command string
	Args    []string
}

// Line is one logical line; Spans keeps left-to-right source order.
type Line struct {
	Spans []Node
}

// Paragraph is a fully parsed block of logical lines.
type Paragraph struct {
	Lines []*Line
}

// Stanza is a text block that passes through without inline parsing.
type Stanza struct {
	Text string
}

// ErrorNode carries diagnostic payload nodes for a failed parse.
type ErrorNode struct {
	Nodes []Node
}

func (*OrdinaryText) node()      {}
func (*ItalicText) node()        {}
func (*BoldText) node()          {}
func (*Code) node()              {}
func (*InlineMath) node()        {}
func (*StrikeThroughText) node() {}
func (*BracketedText) node()     {}
func (*HtmlEntity) node()        {}
func (*HtmlEntities) node()      {}
func (*Link) node()              {}
func (*Image) node()             {}
func (*ExtensionInline) node()   {}
func (*Line) node()              {}
func (*Paragraph) node()         {}
func (*Stanza) node()            {}
func (*ErrorNode) node()         {}

// DebugString renders a node as "Tag [payload]" for inspection.
// Paragraph children go one per line, indented by two spaces; all
// other nodes render in place.
func DebugString(n Node) string {
	switch t := n.(type) {
	case nil:
		return "None"
	case *OrdinaryText:
		return "OrdinaryText [" + t.Text + "]"
	case *ItalicText:
		return "ItalicText [" + t.Text + "]"
	case *BoldText:
		return "BoldText [" + t.Text + "]"
	case *Code:
		return "Code [" + t.Text + "]"
	case *InlineMath:
		return "InlineMath [" + t.Text + "]"
	case *StrikeThroughText:
		return "StrikeThroughText [" + t.Text + "]"
	case *BracketedText:
		return "BracketedText [" + t.Text + "]"
	case *HtmlEntity:
		return "HtmlEntity [" + t.Text + "]"
	case *HtmlEntities:
		parts := make([]string, 0, len(t.Entities))
		for _, e := range t.Entities {
			parts = append(parts, DebugString(e))
		}
		return "HtmlEntities [" + strings.Join(parts, " ") + "]"
	case *Link:
		return fmt.Sprintf("Link [%s](%s)", t.URL, t.Label)
	case *Image:
		return fmt.Sprintf("Image [%s](%s)", t.Alt, t.URL)
	case *ExtensionInline:
		payload := t.Command
		if len(t.Args) > 0 {
			payload += " " + strings.Join(t.Args, " ")
		}
		return "ExtensionInline [" + payload + "]"
	case *Line:
		parts := make([]string, 0, len(t.Spans))
		for _, sp := range t.Spans {
			parts = append(parts, DebugString(sp))
		}
		return "Line [" + strings.Join(parts, " ") + "]"
	case *Paragraph:
		var b strings.Builder
		b.WriteString("Paragraph [\n")
		for _, ln := range t.Lines {
			b.WriteString("  ")
			b.WriteString(DebugString(ln))
			b.WriteString("\n")
		}
		b.WriteString("]")
		return b.String()
	case *Stanza:
		return "Stanza [" + t.Text + "]"
	case *ErrorNode:
		parts := make([]string, 0, len(t.Nodes))
		for _, sub := range t.Nodes {
			parts = append(parts, DebugString(sub))
		}
		return "Error [" + strings.Join(parts, " ") + "]"
	}
	return "Unknown"
}
