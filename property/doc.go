/*
Package property resolves formatting properties for nodes of a formatting
tree.

Every property is handled by a Maker. A maker knows whether its property is
inherited, how to compute the property's initial value, which shorthand
properties may set it, and whether it corresponds to a property in another
coordinate system (writing-mode relative versus absolute directions).
Makers are collected in a Registry, which is frozen after construction.

Resolving a property P for a node N follows these steps:

    1. If N specifies P explicitly, evaluate the expression and convert it.
       If N sets a shorthand covering P, extract P from the shorthand.
    2. If P is a corresponding property and its counterpart is specified
       on N, derive P from the counterpart (writing-mode dependent).
    3. If P is inherited, take the value of the nearest ancestor specifying it.
    4. Otherwise use the initial value of P.

The registry never stores resolved values. Nodes may cache them, and report
cached values through Node.ResolvedProperty.

Status

Early draft: API may change frequently. Please stay patient.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package property

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fo.property'.
func tracer() tracing.Trace {
	return tracing.Select("fo.property")
}
