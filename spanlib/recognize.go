package spanlib

import (
	"fmt"
	"strings"
)

// Flavor selects which inline constructs a grammar recognizes.
type Flavor int

const (
	// Standard recognizes code, image, link, bold and italic.
	Standard Flavor = iota
	// Extended adds extension commands, strike-through and entities.
	Extended
	// ExtendedMath further adds inline math.
	ExtendedMath
)

func (f Flavor) String() string {
	switch f {
	case Standard:
		return "standard"
	case Extended:
		return "extended"
	case ExtendedMath:
		return "extended-math"
	}
	return fmt.Sprintf("flavor(%d)", int(f))
}

// ParseFlavor maps a configuration name to a Flavor.
func ParseFlavor(s string) (Flavor, error) {
	switch s {
	case "standard":
		return Standard, nil
	case "extended":
		return Extended, nil
	case "extended-math", "extendedmath":
		return ExtendedMath, nil
	}
	return Standard, fmt.Errorf("unknown flavor %q", s)
}

// Per-flavor special characters. A special terminates an ordinary-text
// run even when the flavor has no recognizer for it: '&' and '@' stay
// special under Standard. ']' terminates in every flavor and is not
// listed here.
const (
	specialsStandard     = "`[*&@\n"
	specialsExtended     = specialsStandard + "~"
	specialsExtendedMath = specialsExtended + "$"
)

// A scanFunc matches one construct at the start of s. It returns the
// node and the number of bytes consumed; ok is false when the
// construct is absent, in which case nothing was consumed.
type scanFunc func(s string) (Node, int, bool)

type recognizer struct {
	name   string
	expect string
	scan   scanFunc
}

var (
	recExtension     = recognizer{name: "Extension", expect: "expected '@'", scan: scanExtension}
	recCode          = recognizer{name: "Code", expect: "expected '`'", scan: scanCode}
	recImage         = recognizer{name: "Image", expect: `expected "!["`, scan: scanImage}
	recLink          = recognizer{name: "Link", expect: "expected '['", scan: scanLink}
	recBold          = recognizer{name: "Bold", expect: `expected "**"`, scan: scanBold}
	recItalic        = recognizer{name: "Italic", expect: "expected '*'", scan: scanItalic}
	recStrikeThrough = recognizer{name: "StrikeThrough", expect: `expected "~~"`, scan: scanStrikeThrough}
	recHtmlEntity    = recognizer{name: "HtmlEntity", expect: "expected '&'", scan: scanHtmlEntity}
	recInlineMath    = recognizer{name: "InlineMath", expect: "expected '$'", scan: scanInlineMath}
)

// grammar returns the flavor's recognizers in priority order. The
// catch-all ordinary-text recognizer always comes last; unknown
// flavors fall back to Standard.
func grammar(f Flavor) []recognizer {
	switch f {
	case Extended:
		return []recognizer{
			recExtension, recCode, recImage, recLink, recBold, recItalic,
			recStrikeThrough, recHtmlEntity, _ordinary(specialsExtended),
		}
	case ExtendedMath:
		return []recognizer{
			recExtension, recCode, recImage, recLink, recBold, recItalic,
			recStrikeThrough, recHtmlEntity, recInlineMath, _ordinary(specialsExtendedMath),
		}
	default:
		return []recognizer{
			recCode, recImage, recLink, recBold, recItalic, _ordinary(specialsStandard),
		}
	}
}

// _ordinary builds the catch-all recognizer for a flavor's special
// set. It chomps bytes until a special or ']' and fails on an empty
// run. Specials are all ASCII, so chomping bytes is safe in UTF-8
// input.
func _ordinary(specials string) recognizer {
	return recognizer{
		name:   "OrdinaryText",
		expect: "expected ordinary text",
		scan: func(s string) (Node, int, bool) {
			n := 0
			for n < len(s) {
				c := s[n]
				if c == ']' || strings.IndexByte(specials, c) >= 0 {
					break
				}
				n++
			}
			if n == 0 {
				return nil, 0, false
			}
			return &OrdinaryText{Text: s[:n]}, n, true
		},
	}
}

// scanCode matches `code`. After the closing backtick it keeps
// chomping until the next space, so text glued to the closer is
// consumed but dropped from the node.
func scanCode(s string) (Node, int, bool) {
	if len(s) < 2 || s[0] != '`' {
		return nil, 0, false
	}
	body := strings.IndexByte(s[1:], '`')
	if body < 0 {
		return nil, 0, false
	}
	consumed := 1 + body + 1
	for consumed < len(s) && s[consumed] != ' ' {
		consumed++
	}
	text := strings.TrimSpace(s[1 : 1+body])
	text = strings.ReplaceAll(text, "`", "")
	return &Code{Text: text}, consumed, true
}

// scanImage matches ![alt](url) plus any newlines directly after the
// closing parenthesis.
func scanImage(s string) (Node, int, bool) {
	if !strings.HasPrefix(s, "![") {
		return nil, 0, false
	}
	alt := strings.IndexByte(s[2:], ']')
	if alt < 0 {
		return nil, 0, false
	}
	p := 2 + alt + 1
	if p >= len(s) || s[p] != '(' {
		return nil, 0, false
	}
	url := strings.IndexByte(s[p+1:], ')')
	if url < 0 {
		return nil, 0, false
	}
	consumed := p + 1 + url + 1
	for consumed < len(s) && s[consumed] == '\n' {
		consumed++
	}
	return &Image{Alt: s[2 : 2+alt], URL: s[p+1 : p+1+url]}, consumed, true
}

// scanLink matches [label](url). A [label] without a parenthesized
// url directly after it degrades to BracketedText instead of failing.
func scanLink(s string) (Node, int, bool) {
	if len(s) == 0 || s[0] != '[' {
		return nil, 0, false
	}
	label := strings.IndexByte(s[1:], ']')
	if label < 0 {
		return nil, 0, false
	}
	consumed := 1 + label + 1
	text := s[1 : 1+label]
	if consumed < len(s) && s[consumed] == '(' {
		url := strings.IndexByte(s[consumed+1:], ')')
		if url >= 0 {
			node := &Link{URL: s[consumed+1 : consumed+1+url], Label: text}
			return node, consumed + 1 + url + 1, true
		}
	}
	return &BracketedText{Text: text}, consumed, true
}

// scanBold matches **text**. The inner chomp stops at the first '*',
// so the closer must follow immediately: **a*b** fails here and falls
// through to the italic recognizer.
func scanBold(s string) (Node, int, bool) {
	if !strings.HasPrefix(s, "**") {
		return nil, 0, false
	}
	body := strings.IndexByte(s[2:], '*')
	if body < 0 {
		return nil, 0, false
	}
	if !strings.HasPrefix(s[2+body:], "**") {
		return nil, 0, false
	}
	text := strings.ReplaceAll(s[2:2+body], "*", "")
	return &BoldText{Text: text}, 2 + body + 2, true
}

// scanItalic matches *text*. An empty body is legal: ** parses as an
// empty italic when bold has already failed.
func scanItalic(s string) (Node, int, bool) {
	if len(s) == 0 || s[0] != '*' {
		return nil, 0, false
	}
	body := strings.IndexByte(s[1:], '*')
	if body < 0 {
		return nil, 0, false
	}
	text := strings.ReplaceAll(s[1:1+body], "*", "")
	return &ItalicText{Text: text}, 1 + body + 1, true
}

// scanStrikeThrough matches ~~text~~. The capture runs from the opener
// through the body; the leading two bytes are dropped and any ~~
// remnants removed.
func scanStrikeThrough(s string) (Node, int, bool) {
	if !strings.HasPrefix(s, "~~") {
		return nil, 0, false
	}
	body := strings.IndexByte(s[2:], '~')
	if body < 0 {
		return nil, 0, false
	}
	if !strings.HasPrefix(s[2+body:], "~~") {
		return nil, 0, false
	}
	captured := s[:2+body]
	text := strings.ReplaceAll(captured[2:], "~~", "")
	return &StrikeThroughText{Text: text}, 2 + body + 2, true
}

var _entityStrip = strings.NewReplacer("&", "", ";", "", " ", "")

// scanHtmlEntity matches &name;. The node keeps the name with '&',
// ';' and spaces stripped.
func scanHtmlEntity(s string) (Node, int, bool) {
	if len(s) == 0 || s[0] != '&' {
		return nil, 0, false
	}
	body := strings.IndexByte(s[1:], ';')
	if body < 0 {
		return nil, 0, false
	}
	consumed := 1 + body + 1
	return &HtmlEntity{Text: _entityStrip.Replace(s[:consumed])}, consumed, true
}

// scanInlineMath matches $math$ plus any spaces directly after the
// closing dollar. The captured token keeps its delimiters; it is
// trimmed, then one character dropped from each end.
func scanInlineMath(s string) (Node, int, bool) {
	if len(s) == 0 || s[0] != '$' {
		return nil, 0, false
	}
	body := strings.IndexByte(s[1:], '$')
	if body < 0 {
		return nil, 0, false
	}
	consumed := 1 + body + 1
	captured := strings.TrimSpace(s[:consumed])
	text := captured[1 : len(captured)-1]
	for consumed < len(s) && s[consumed] == ' ' {
		consumed++
	}
	return &InlineMath{Text: text}, consumed, true
}

// scanExtension matches @command[args] plus any spaces directly after
// the closing bracket. The command runs to the first '['; args are
// limited to ASCII letters, digits and spaces, and split on spaces
// with empty tokens discarded.
func scanExtension(s string) (Node, int, bool) {
	if len(s) == 0 || s[0] != '@' {
		return nil, 0, false
	}
	open := strings.IndexByte(s[1:], '[')
	if open < 0 {
		return nil, 0, false
	}
	command := s[1 : 1+open]
	p := 1 + open + 1
	arg := p
	for arg < len(s) && _isArgByte(s[arg]) {
		arg++
	}
	if arg >= len(s) || s[arg] != ']' {
		return nil, 0, false
	}
	var args []string
	for _, tok := range strings.Split(s[p:arg], " ") {
		if tok != "" {
			args = append(args, tok)
		}
	}
	consumed := arg + 1
	for consumed < len(s) && s[consumed] == ' ' {
		consumed++
	}
	return &ExtensionInline{Command: command, Args: args}, consumed, true
}

func _isArgByte(c byte) bool {
	return c == ' ' || ('0' <= c && c <= '9') ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
