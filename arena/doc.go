/*
Package arena holds the flat, immutable representation of an HTML parse tree.

Overview

The parser collaborator (package parser) fills an Arena once; from then on
it is read-only. Nodes and attributes live in two slices and refer to each
other by index, never by independently owned pointers. This makes it cheap
to hand out many pointers into the same block of memory and to tear the
whole block down in one step.

Arenas are recycled through a sync.Pool. A recycled arena is wiped before it
is handed out again, so pointers into a released arena must never be used.
Package htree guarantees this by reference counting.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package arena

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'htree.arena'.
func tracer() tracing.Trace {
	return tracing.Select("htree.arena")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("htree.arena: "+msg, msgargs...)
		panic(msg)
	}
}
