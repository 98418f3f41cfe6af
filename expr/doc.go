/*
Package expr implements the expression language of formatting property
values.

Property values are written in a small expression language: numbers, lengths
with units, percentages, names, string literals, colors, the arithmetic
operators + - * div mod, and function calls like

    margin-left="max(1cm, 5% + 2pt)"
    column-width="proportional-column-width(2)"

Expressions are tokenized lazily and evaluated by a recursive-descent parser
directly into values of package value. Evaluation happens within a Context,
which supplies the percent base of the property, the current font size and
access to the formatting tree for functions like inherited-property-value.

Functions are looked up in a Registry. The default registry holds the core
function library of XSL 1.1 and is frozen after construction.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package expr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fo.expr'.
func tracer() tracing.Trace {
	return tracing.Select("fo.expr")
}
