package property

import (
	"fmt"
	"strings"
)

// AbsDir is an absolute direction: Top, Right, Bottom or Left.
type AbsDir uint8

// Absolute directions.
const (
	Top AbsDir = iota
	Right
	Bottom
	Left
)

var absNames = [4]string{"top", "right", "bottom", "left"}

func (d AbsDir) String() string {
	if d <= Left {
		return absNames[d]
	}
	return "<dir?>"
}

// RelDir is a direction relative to the writing mode.
type RelDir uint8

// Relative directions.
const (
	Before RelDir = iota
	End
	After
	Start
)

var relNames = [4]string{"before", "end", "after", "start"}

func (d RelDir) String() string {
	if d <= Start {
		return relNames[d]
	}
	return "<dir?>"
}

// WritingMode determines the mapping of relative to absolute directions.
type WritingMode uint8

// Writing modes of XSL.
const (
	LrTb WritingMode = iota // left-to-right, top-to-bottom
	RlTb                    // right-to-left, top-to-bottom
	TbRl                    // top-to-bottom, right-to-left
	TbLr                    // top-to-bottom, left-to-right
)

var writingModeNames = [4]string{"lr-tb", "rl-tb", "tb-rl", "tb-lr"}

func (wm WritingMode) String() string {
	if wm <= TbLr {
		return writingModeNames[wm]
	}
	return "<writing-mode?>"
}

// ParseWritingMode reads a writing mode keyword. The abbreviations
// lr, rl and tb are accepted.
func ParseWritingMode(s string) (WritingMode, error) {
	switch strings.TrimSpace(s) {
	case "lr-tb", "lr":
		return LrTb, nil
	case "rl-tb", "rl":
		return RlTb, nil
	case "tb-rl", "tb":
		return TbRl, nil
	case "tb-lr":
		return TbLr, nil
	}
	return LrTb, fmt.Errorf("%w: writing-mode %q", ErrInvalidValue, s)
}

// relToAbs is indexed by writing mode, then by relative direction
// (before, end, after, start).
var relToAbs = [4][4]AbsDir{
	LrTb: {Top, Right, Bottom, Left},
	RlTb: {Top, Left, Bottom, Right},
	TbRl: {Right, Bottom, Left, Top},
	TbLr: {Left, Bottom, Right, Top},
}

// RelToAbs maps a relative direction to an absolute one.
func (wm WritingMode) RelToAbs(d RelDir) AbsDir {
	return relToAbs[wm%4][d%4]
}

// AbsToRel maps an absolute direction to a relative one.
func (wm WritingMode) AbsToRel(a AbsDir) RelDir {
	for d, abs := range relToAbs[wm%4] {
		if abs == a {
			return RelDir(d)
		}
	}
	return Start // not reached
}

// compose builds a property name from a prefix, a direction and an
// optional suffix, e.g. ("border", "left", "width") → border-left-width.
func compose(prefix, dir, suffix string) string {
	if suffix == "" {
		return prefix + "-" + dir
	}
	return prefix + "-" + dir + "-" + suffix
}
