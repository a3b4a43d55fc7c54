package spanlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// everyVariant builds a tree touching all node variants, including the
// ones Parse never emits (Stanza, ErrorNode, HtmlEntities).
func everyVariant() *Paragraph {
	return &Paragraph{Lines: []*Line{
		{Spans: []Node{
			&OrdinaryText{Text: "plain"},
			&ItalicText{Text: "it"},
			&BoldText{Text: "bd"},
			&Code{Text: "x := 1"},
			&InlineMath{Text: "a^5=1"},
			&StrikeThroughText{Text: "gone"},
			&BracketedText{Text: "note"},
			&HtmlEntity{Text: "amp"},
			&HtmlEntities{Entities: []*HtmlEntity{{Text: "lt"}, {Text: "gt"}}},
		}},
		{Spans: []Node{
			&Link{URL: "http://x", Label: "abc"},
			&Image{Alt: "alt", URL: "http://img"},
			&ExtensionInline{Command: "class", Args: []string{"red", "stuff"}},
			&ExtensionInline{Command: "op", Args: []string{"a"}},
			&Stanza{Text: "raw"},
			&ErrorNode{Nodes: []Node{&OrdinaryText{Text: "oops"}}},
		}},
	}}
}

func TestDebugStringForms(t *testing.T) {
	assert.Equal(t, "OrdinaryText [hi]", DebugString(&OrdinaryText{Text: "hi"}))
	assert.Equal(t, "Code [x]", DebugString(&Code{Text: "x"}))
	// Link prints its stored order: URL first
	assert.Equal(t, "Link [http://x](abc)", DebugString(&Link{URL: "http://x", Label: "abc"}))
	assert.Equal(t, "Image [alt](http://img)", DebugString(&Image{Alt: "alt", URL: "http://img"}))
	assert.Equal(t, "ExtensionInline [class red stuff]",
		DebugString(&ExtensionInline{Command: "class", Args: []string{"red", "stuff"}}))
	assert.Equal(t, "HtmlEntities [HtmlEntity [lt] HtmlEntity [gt]]",
		DebugString(&HtmlEntities{Entities: []*HtmlEntity{{Text: "lt"}, {Text: "gt"}}}))
	assert.Equal(t, "Line [ItalicText [a] OrdinaryText [b]]",
		DebugString(&Line{Spans: []Node{&ItalicText{Text: "a"}, &OrdinaryText{Text: "b"}}}))
	assert.Equal(t, "None", DebugString(nil))
}

func TestDebugStringParagraphIndent(t *testing.T) {
	ast := Parse(Standard, "one.\ntwo")
	want := "Paragraph [\n" +
		"  Line [OrdinaryText [one.]]\n" +
		"  Line [OrdinaryText [two]]\n" +
		"]"
	assert.Equal(t, want, DebugString(ast))
}

func TestContentString(t *testing.T) {
	// Link content joins stored order url-then-label; Image alt-then-url
	assert.Equal(t, "http://x abc", ContentString(&Link{URL: "http://x", Label: "abc"}))
	assert.Equal(t, "alt http://img", ContentString(&Image{Alt: "alt", URL: "http://img"}))
	// the command is markup, not content
	assert.Equal(t, "red stuff",
		ContentString(&ExtensionInline{Command: "class", Args: []string{"red", "stuff"}}))
	assert.Equal(t, "lt gt",
		ContentString(&HtmlEntities{Entities: []*HtmlEntity{{Text: "lt"}, {Text: "gt"}}}))

	ast := Parse(Extended, "see **bold** stuff.\nand `code`")
	assert.Equal(t, "see  bold  stuff.\nand  code", ContentString(ast))
}

func TestRenderStringForms(t *testing.T) {
	assert.Equal(t, "<i>it</i>", RenderString(&ItalicText{Text: "it"}))
	assert.Equal(t, "<b>bd</b>", RenderString(&BoldText{Text: "bd"}))
	assert.Equal(t, "<code>x</code>", RenderString(&Code{Text: "x"}))
	assert.Equal(t, "$a^5=1$", RenderString(&InlineMath{Text: "a^5=1"}))
	assert.Equal(t, "<strikethrough>gone</strikethrough>",
		RenderString(&StrikeThroughText{Text: "gone"}))
	assert.Equal(t, "<span>amp</span>", RenderString(&HtmlEntity{Text: "amp"}))
	assert.Equal(t, "[note]", RenderString(&BracketedText{Text: "note"}))
	assert.Equal(t, "Link [http://x](abc)", RenderString(&Link{URL: "http://x", Label: "abc"}))
	assert.Equal(t, "Image [alt](http://img)", RenderString(&Image{Alt: "alt", URL: "http://img"}))
	assert.Equal(t, "<span class=red>stuff</span>",
		RenderString(&ExtensionInline{Command: "class", Args: []string{"red", "stuff"}}))
	assert.Equal(t, "<span>Op color a b</span>",
		RenderString(&ExtensionInline{Command: "color", Args: []string{"a", "b"}}))
	assert.Equal(t, "<span>Op class</span>",
		RenderString(&ExtensionInline{Command: "class"}))
}

func TestRenderStringParagraph(t *testing.T) {
	ast := Parse(Extended, "see **bold** stuff.\nand `code`")
	want := "<p>\n" +
		"  see <b>bold</b> stuff.\n" +
		"  and <code>code</code>\n" +
		"</p>"
	assert.Equal(t, want, RenderString(ast))
}

func TestProjectionsTotalAndIdempotent(t *testing.T) {
	ast := everyVariant()
	require.NotPanics(t, func() {
		DebugString(ast)
		ContentString(ast)
		RenderString(ast)
	})
	assert.Equal(t, RenderString(ast), RenderString(ast))
	assert.Equal(t, DebugString(ast), DebugString(ast))
	assert.Equal(t, ContentString(ast), ContentString(ast))
	// per-variant totality, including nil
	for _, ln := range ast.Lines {
		for _, sp := range ln.Spans {
			require.NotPanics(t, func() {
				DebugString(sp)
				ContentString(sp)
				RenderString(sp)
			})
		}
	}
	assert.Equal(t, "", ContentString(nil))
	assert.Equal(t, "", RenderString(nil))
}
