/*
Package strtab decodes the string table at the head of an operation batch.

The table is transported as a run of integers: a total length, followed by
length-prefixed sequences of Unicode code points. Entry 0 of a decoded table
is reserved for the absent (null) string; the first transported string has
index 1.

Code points are appended one by one to a buffer. Strings with very many code
points are legal and must not require proportional stack space.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package strtab

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'elemtree.strtab'.
func tracer() tracing.Trace {
	return tracing.Select("elemtree.strtab")
}
