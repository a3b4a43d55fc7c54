// Package spanwire projects span trees onto a protobuf wire form for
// out-of-process consumers. The schema lives in span.proto; the codec
// is written against encoding/protowire directly, so no generated code
// is checked in.
package spanwire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/spanmk/spanmk/spanlib"
)

// Node kinds on the wire. The numbering is part of the format; never
// renumber.
const (
	kindOrdinaryText = iota
	kindItalicText
	kindBoldText
	kindCode
	kindInlineMath
	kindStrikeThroughText
	kindBracketedText
	kindHtmlEntity
	kindHtmlEntities
	kindLink
	kindImage
	kindExtensionInline
	kindLine
	kindParagraph
	kindStanza
	kindError
)

// Field numbers of NodeProto, matching span.proto.
const (
	fieldKind     = 1
	fieldText     = 2
	fieldExtra    = 3
	fieldArgs     = 4
	fieldChildren = 5

	fieldNodes = 1 // SpanProto
)

// nodeProto mirrors one NodeProto message of the flattened node table.
type nodeProto struct {
	kind     uint32
	text     string
	extra    string
	args     []string
	children []uint32
}

// Encode flattens a span tree into its wire form. The root lands at
// table index 0, children follow their parent. A nil node encodes to
// an empty table.
func Encode(n spanlib.Node) []byte {
	var table []nodeProto
	if n != nil {
		flatten(n, &table)
	}
	var buf []byte
	for i := range table {
		buf = protowire.AppendTag(buf, fieldNodes, protowire.BytesType)
		buf = protowire.AppendBytes(buf, encodeNode(table[i]))
	}
	return buf
}

// flatten appends n's nodeProto to the table and returns its index.
// The entry is appended before its children so the root keeps index 0.
func flatten(n spanlib.Node, table *[]nodeProto) uint32 {
	id := uint32(len(*table))
	*table = append(*table, nodeProto{})
	np := nodeProto{}
	switch t := n.(type) {
	case *spanlib.OrdinaryText:
		np.kind, np.text = kindOrdinaryText, t.Text
	case *spanlib.ItalicText:
		np.kind, np.text = kindItalicText, t.Text
	case *spanlib.BoldText:
		np.kind, np.text = kindBoldText, t.Text
	case *spanlib.Code:
		np.kind, np.text = kindCode, t.Text
	case *spanlib.InlineMath:
		np.kind, np.text = kindInlineMath, t.Text
	case *spanlib.StrikeThroughText:
		np.kind, np.text = kindStrikeThroughText, t.Text
	case *spanlib.BracketedText:
		np.kind, np.text = kindBracketedText, t.Text
	case *spanlib.HtmlEntity:
		np.kind, np.text = kindHtmlEntity, t.Text
	case *spanlib.HtmlEntities:
		np.kind = kindHtmlEntities
		for _, e := range t.Entities {
			np.children = append(np.children, flatten(e, table))
		}
	case *spanlib.Link:
		np.kind, np.text, np.extra = kindLink, t.URL, t.Label
	case *spanlib.Image:
		np.kind, np.text, np.extra = kindImage, t.Alt, t.URL
	case *spanlib.ExtensionInline:
		np.kind, np.text, np.args = kindExtensionInline, t.Command, t.Args
	case *spanlib.Line:
		np.kind = kindLine
		for _, sp := range t.Spans {
			np.children = append(np.children, flatten(sp, table))
		}
	case *spanlib.Paragraph:
		np.kind = kindParagraph
		for _, ln := range t.Lines {
			np.children = append(np.children, flatten(ln, table))
		}
	case *spanlib.Stanza:
		np.kind, np.text = kindStanza, t.Text
	case *spanlib.ErrorNode:
		np.kind = kindError
		for _, sub := range t.Nodes {
			np.children = append(np.children, flatten(sub, table))
		}
	default:
		panic(fmt.Sprintf("Bug: unknown span node %T", n))
	}
	(*table)[id] = np
	return id
}

// encodeNode serializes one nodeProto message body. Zero-valued
// singular fields are omitted per proto3 convention; children go out
// packed.
func encodeNode(np nodeProto) []byte {
	var buf []byte
	if np.kind != 0 {
		buf = protowire.AppendTag(buf, fieldKind, protowire.VarintType)
		buf = protowire.AppendVarint(buf, uint64(np.kind))
	}
	if np.text != "" {
		buf = protowire.AppendTag(buf, fieldText, protowire.BytesType)
		buf = protowire.AppendString(buf, np.text)
	}
	if np.extra != "" {
		buf = protowire.AppendTag(buf, fieldExtra, protowire.BytesType)
		buf = protowire.AppendString(buf, np.extra)
	}
	for _, a := range np.args {
		buf = protowire.AppendTag(buf, fieldArgs, protowire.BytesType)
		buf = protowire.AppendString(buf, a)
	}
	if len(np.children) > 0 {
		var packed []byte
		for _, ch := range np.children {
			packed = protowire.AppendVarint(packed, uint64(ch))
		}
		buf = protowire.AppendTag(buf, fieldChildren, protowire.BytesType)
		buf = protowire.AppendBytes(buf, packed)
	}
	return buf
}

// Decode rebuilds a span tree from its wire form. It rejects malformed
// wire data, unknown kinds, out-of-range child indices and child
// cycles. An empty table decodes to a nil node.
func Decode(b []byte) (spanlib.Node, error) {
	table, err := decodeTable(b)
	if err != nil {
		return nil, err
	}
	if len(table) == 0 {
		return nil, nil
	}
	visiting := make([]bool, len(table))
	return build(table, 0, visiting)
}

func decodeTable(b []byte) ([]nodeProto, error) {
	var table []nodeProto
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("spanwire: bad tag: %w", protowire.ParseError(n))
		}
		b = b[n:]
		if num == fieldNodes && typ == protowire.BytesType {
			body, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("spanwire: truncated node: %w", protowire.ParseError(n))
			}
			b = b[n:]
			np, err := decodeNode(body)
			if err != nil {
				return nil, err
			}
			table = append(table, np)
			continue
		}
		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return nil, fmt.Errorf("spanwire: bad field %d: %w", num, protowire.ParseError(n))
		}
		b = b[n:]
	}
	return table, nil
}

// decodeNode parses one NodeProto body. Field 5 is accepted both
// packed and unpacked.
func decodeNode(b []byte) (nodeProto, error) {
	var np nodeProto
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return np, fmt.Errorf("spanwire: bad tag: %w", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == fieldKind && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return np, fmt.Errorf("spanwire: bad kind: %w", protowire.ParseError(n))
			}
			b = b[n:]
			np.kind = uint32(v)
		case num == fieldText && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(b)
			if n < 0 {
				return np, fmt.Errorf("spanwire: bad text: %w", protowire.ParseError(n))
			}
			b = b[n:]
			np.text = s
		case num == fieldExtra && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(b)
			if n < 0 {
				return np, fmt.Errorf("spanwire: bad extra: %w", protowire.ParseError(n))
			}
			b = b[n:]
			np.extra = s
		case num == fieldArgs && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(b)
			if n < 0 {
				return np, fmt.Errorf("spanwire: bad arg: %w", protowire.ParseError(n))
			}
			b = b[n:]
			np.args = append(np.args, s)
		case num == fieldChildren && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return np, fmt.Errorf("spanwire: bad child id: %w", protowire.ParseError(n))
			}
			b = b[n:]
			np.children = append(np.children, uint32(v))
		case num == fieldChildren && typ == protowire.BytesType:
			packed, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return np, fmt.Errorf("spanwire: bad child ids: %w", protowire.ParseError(n))
			}
			b = b[n:]
			for len(packed) > 0 {
				v, n := protowire.ConsumeVarint(packed)
				if n < 0 {
					return np, fmt.Errorf("spanwire: bad packed child id: %w", protowire.ParseError(n))
				}
				packed = packed[n:]
				np.children = append(np.children, uint32(v))
			}
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return np, fmt.Errorf("spanwire: bad field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return np, nil
}

// build rebuilds the node at table index id. visiting marks ids on the
// current descent path so a cycle in the children references fails
// instead of recursing forever.
func build(table []nodeProto, id uint32, visiting []bool) (spanlib.Node, error) {
	if int(id) >= len(table) {
		return nil, fmt.Errorf("spanwire: child index %d out of range (table has %d nodes)", id, len(table))
	}
	if visiting[id] {
		return nil, fmt.Errorf("spanwire: node %d is part of a child cycle", id)
	}
	visiting[id] = true
	defer func() { visiting[id] = false }()

	np := table[id]
	switch np.kind {
	case kindOrdinaryText:
		return &spanlib.OrdinaryText{Text: np.text}, nil
	case kindItalicText:
		return &spanlib.ItalicText{Text: np.text}, nil
	case kindBoldText:
		return &spanlib.BoldText{Text: np.text}, nil
	case kindCode:
		return &spanlib.Code{Text: np.text}, nil
	case kindInlineMath:
		return &spanlib.InlineMath{Text: np.text}, nil
	case kindStrikeThroughText:
		return &spanlib.StrikeThroughText{Text: np.text}, nil
	case kindBracketedText:
		return &spanlib.BracketedText{Text: np.text}, nil
	case kindHtmlEntity:
		return &spanlib.HtmlEntity{Text: np.text}, nil
	case kindHtmlEntities:
		node := &spanlib.HtmlEntities{}
		for _, ch := range np.children {
			sub, err := build(table, ch, visiting)
			if err != nil {
				return nil, err
			}
			ent, ok := sub.(*spanlib.HtmlEntity)
			if !ok {
				return nil, fmt.Errorf("spanwire: node %d: HtmlEntities child %d is not an HtmlEntity", id, ch)
			}
			node.Entities = append(node.Entities, ent)
		}
		return node, nil
	case kindLink:
		return &spanlib.Link{URL: np.text, Label: np.extra}, nil
	case kindImage:
		return &spanlib.Image{Alt: np.text, URL: np.extra}, nil
	case kindExtensionInline:
		return &spanlib.ExtensionInline{Command: np.text, Args: np.args}, nil
	case kindLine:
		node := &spanlib.Line{}
		for _, ch := range np.children {
			sub, err := build(table, ch, visiting)
			if err != nil {
				return nil, err
			}
			node.Spans = append(node.Spans, sub)
		}
		return node, nil
	case kindParagraph:
		node := &spanlib.Paragraph{}
		for _, ch := range np.children {
			sub, err := build(table, ch, visiting)
			if err != nil {
				return nil, err
			}
			ln, ok := sub.(*spanlib.Line)
			if !ok {
				return nil, fmt.Errorf("spanwire: node %d: Paragraph child %d is not a Line", id, ch)
			}
			node.Lines = append(node.Lines, ln)
		}
		return node, nil
	case kindStanza:
		return &spanlib.Stanza{Text: np.text}, nil
	case kindError:
		node := &spanlib.ErrorNode{}
		for _, ch := range np.children {
			sub, err := build(table, ch, visiting)
			if err != nil {
				return nil, err
			}
			node.Nodes = append(node.Nodes, sub)
		}
		return node, nil
	}
	return nil, fmt.Errorf("spanwire: node %d has unknown kind %d", id, np.kind)
}
