package main

/*
#include <stdlib.h>

typedef struct ByteSlice {
	int len;
	void *p;
} ByteSlice;
*/
import "C"
import (
	"github.com/spanmk/spanmk/spanlib"
	"github.com/spanmk/spanmk/spanwire"
)

// Build with -buildmode=c-shared. Flavor names follow
// spanlib.ParseFlavor: standard, extended, extended-math.

//export ParseToDebugString
func ParseToDebugString(text, flavor string) *C.char {
	f, err := spanlib.ParseFlavor(flavor)
	if err != nil {
		return C.CString("")
	}
	ast := spanlib.Parse(f, text)
	return C.CString(spanlib.DebugString(ast))
}

//export ParseToWire
func ParseToWire(text, flavor string) C.struct_ByteSlice {
	var slice C.struct_ByteSlice
	f, err := spanlib.ParseFlavor(flavor)
	if err != nil {
		slice.len = 0
		slice.p = nil
		return slice
	}
	ast := spanlib.Parse(f, text)
	buf := spanwire.Encode(ast)
	slice.len = C.int(len(buf))
	slice.p = C.CBytes(buf)
	return slice
}

func main() {

}
