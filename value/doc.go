/*
Package value implements the value algebra of formatting properties.

Property expressions evaluate to values of a small set of kinds: numbers,
lengths, numerics (the arithmetic closure over numbers and lengths), strings,
names, colors and lists. Values are immutable; every operation creates a new
value.

Lengths carry a unit tag until they are converted to an absolute design unit
(package tyse/core/dimen). A length may additionally contain a percentage term,
anchored to a PercentBase, and a term of proportional table units, which is
resolved only when table columns are distributed.

Clients inspect values by pattern matching:

    var l value.Length
    switch m := v.Match(); m {
    case m.Length(&l):
        …
    }

Status

Early draft: API may change frequently. Please stay patient.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package value

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fo.value'.
func tracer() tracing.Trace {
	return tracing.Select("fo.value")
}
