package spanlib

import "strings"

// parseLine runs the alternation/repetition loop over one logical
// line. At each position the grammar's recognizers are tried in order
// and the first success commits its node and consumed bytes. When none
// matches, the loop stops: a tail after at least one committed node is
// dropped, while failure at the very start degrades the whole line to
// a diagnostic node.
func parseLine(g []recognizer, line string) *Line {
	var spans []Node
	rest := line
	for len(rest) > 0 {
		var committed Node
		consumed := 0
		for _, r := range g {
			if node, n, ok := r.scan(rest); ok {
				if n <= 0 {
					panic("Bug: recognizer " + r.name + " matched without consuming input")
				}
				committed, consumed = node, n
				break
			}
		}
		if committed == nil {
			if len(spans) == 0 {
				tracer().Infof("no recognizer matched %q, degrading to diagnostic text", line)
				spans = append(spans, recoverNode(g))
			} else {
				tracer().Debugf("dropping unparseable tail %q", rest)
			}
			break
		}
		spans = append(spans, committed)
		rest = rest[consumed:]
	}
	return &Line{Spans: spans}
}

// Parse splits text into physical lines, wraps them into logical lines
// and parses each logical line with the flavor's grammar. It never
// fails: malformed inline syntax degrades to plain or diagnostic text
// inside the returned paragraph.
func Parse(flavor Flavor, text string) *Paragraph {
	g := grammar(flavor)
	logical := Wrap(strings.Split(text, "\n"))
	tracer().Debugf("parse (%s): %d logical line(s)", flavor, len(logical))
	lines := make([]*Line, 0, len(logical))
	for _, l := range logical {
		lines = append(lines, parseLine(g, l))
	}
	return &Paragraph{Lines: lines}
}
