package spanlib

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'spanmk.parse'.
func tracer() tracing.Trace {
	return tracing.Select("spanmk.parse")
}
