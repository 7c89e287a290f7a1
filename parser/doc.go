/*
Package parser is the boundary to the external HTML parser.

Overview

Tree construction is delegated to golang.org/x/net/html, which implements
the HTML5 parsing algorithm including its error recovery. Malformed markup
therefore never makes Parse fail; it always yields a best-effort tree.

The tree produced by golang.org/x/net/html carries no source locations.
Parse runs a second pass over the input with an html.Tokenizer, records
the byte ranges of tags, attributes, text runs and comments, and attaches
them to the nodes of the tree while copying it into an arena.Arena. Nodes
implied by the parser (an omitted <body>, a cloned formatting element)
have no source counterpart and get zero positions.

Every Output must be handed to Destroy exactly once, with the same Options
it was built with.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parser

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'htree.parser'.
func tracer() tracing.Trace {
	return tracing.Select("htree.parser")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("htree.parser: "+msg, msgargs...)
		panic(msg)
	}
}
