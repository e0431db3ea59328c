/*
Package protocol holds the vocabulary of the element tree operation log.

An instrumented process serializes changes of its render tree into flat
arrays of integers. This package defines the opcodes of that log, the
element types it transports, the capability bits of roots and the bridge
protocol record which gates version dependent payload shapes.

Bridge Protocol

Frontend and backend negotiate a bridge protocol out of band. The record
carries an integer version and a range of frontend versions compatible with
it. Only the payload of root additions depends on the version: from version 2
on, roots carry two trailing fields (strict mode support and owner metadata).
If no protocol has been established, decoders assume the newest shape.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package protocol

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'elemtree.protocol'.
func tracer() tracing.Trace {
	return tracing.Select("elemtree.protocol")
}
