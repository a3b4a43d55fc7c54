package spanlib

import "strings"

// expectSep joins expectation messages inside a diagnostic node. 0x1E
// is the ASCII record separator, which cannot appear in the messages
// themselves.
const expectSep = "\x1e"

// recoverNode collects the expectation message of every recognizer
// tried at a position where none matched, so a fatally malformed line
// degrades to visible diagnostic text instead of aborting the
// document.
func recoverNode(g []recognizer) *OrdinaryText {
	expects := make([]string, 0, len(g))
	for _, r := range g {
		expects = append(expects, r.expect)
	}
	return &OrdinaryText{Text: strings.Join(expects, expectSep)}
}
