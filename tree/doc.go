/*
Package tree implements a generic tree of mutable nodes, together with a
concurrent top-down traversal.

Nodes link to their parent and hold a mutex-protected list of children.
Each node carries a payload of type T; a common pattern is to embed a
tree.Node into a domain type and let the payload point back to the
embedding value.

Status

Early draft: API may change frequently. Please stay patient.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fo.tree'.
func tracer() tracing.Trace {
	return tracing.Select("fo.tree")
}
