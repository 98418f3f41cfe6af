/*
Package fotree is a formatting-object tree for property resolution.

Overview

A formatting-object tree is read from an XSL-FO document with Parse. Every
element of the fo: namespace becomes a Node, carrying its explicit
attributes. Nodes implement property.Node, which enables a
property.Registry to resolve properties on them. Resolved values are
cached per node; ResolveAll resolves a set of properties for a whole tree
concurrently, parents before children.

The extent of reference areas is mostly unknown before layout. The root
area spans the page, as configured or given by the first
simple-page-master. Nodes with absolute width or height attributes define
an area of their own; all other nodes refer percentages to their nearest
ancestor with a known extent. Layout collaborators may set extents with
SetExtent.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fotree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fo.fotree'.
func tracer() tracing.Trace {
	return tracing.Select("fo.fotree")
}
