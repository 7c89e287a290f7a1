/*
Package htree provides reference-counted handles into an HTML parse tree.

Overview

A call to ParseDocument copies the input, runs the HTML parser over the copy
and places the resulting tree into an arena owned by a Container. The caller
receives an *Output handle. Every further value referring to the tree, be it
the document, a node, an element, a text run or an attribute, is a handle
derived from an existing one:

    out, err := htree.ParseDocument([]byte(`<ul><li>a</li><li>b</li></ul>`))
    if err != nil { … }
    ul, _ := out.Document().QuerySelectorAll("ul")
    for _, li := range ul[0].Children() {
        fmt.Println(li.AsElement().TextContent())
    }

Handles are small heap objects pairing the Container with a pointer into its
arena. Creating a handle retains the Container, and the garbage collector
releases it again once the handle is unreachable (runtime.AddCleanup). When
the last handle is gone, the Container tears down the arena and drops the
source buffer. Holding any single handle, say a text node deep down the
tree, keeps the whole tree alive and fully navigable.

Hosts managing memory by hand may call Drop on a handle instead of waiting
for the collector. A handle must not be used after Drop.

Handles compare by identity: two handles are Equal if they point to the
same arena record, which is never the case for handles from different
parses, even of identical input. Hash and Key allow handles to be used
for memoization.

Misuse

Releasing a Container more often than it has been retained, using a dropped
handle, or asking a node for a view of the wrong kind (e.g. AsElement on a
text node) are programming errors. They panic with a *MisuseError.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package htree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'htree'.
func tracer() tracing.Trace {
	return tracing.Select("htree")
}
