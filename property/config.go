package property

import (
	"fmt"

	"github.com/npillmayer/fo/expr"
	"github.com/npillmayer/fo/value"
	"github.com/npillmayer/schuko"
)

// Config holds the settings of property resolution.
type Config struct {
	MaxDepth   int    // bound on nested resolution frames
	FontSize   string // initial value of font-size
	PageWidth  string // extent of the root reference area
	PageHeight string
	Workers    int // concurrency of bulk resolution
}

// Configuration keys.
const (
	KeyMaxDepth   = "fo.maxdepth"
	KeyFontSize   = "fo.fontsize"
	KeyPageWidth  = "fo.pagewidth"
	KeyPageHeight = "fo.pageheight"
	KeyWorkers    = "fo.workers"
)

// DefaultConfig returns the built-in settings: 12pt fonts on A4 pages.
func DefaultConfig() Config {
	return Config{
		MaxDepth:   256,
		FontSize:   "12pt",
		PageWidth:  "210mm",
		PageHeight: "297mm",
		Workers:    4,
	}
}

// ConfigFrom reads settings from an application configuration. Keys not
// set keep their default value.
func ConfigFrom(conf schuko.Configuration) Config {
	c := DefaultConfig()
	if conf == nil {
		return c
	}
	if conf.IsSet(KeyMaxDepth) {
		if n := conf.GetInt(KeyMaxDepth); n > 0 {
			c.MaxDepth = n
		}
	}
	if conf.IsSet(KeyFontSize) {
		c.FontSize = conf.GetString(KeyFontSize)
	}
	if conf.IsSet(KeyPageWidth) {
		c.PageWidth = conf.GetString(KeyPageWidth)
	}
	if conf.IsSet(KeyPageHeight) {
		c.PageHeight = conf.GetString(KeyPageHeight)
	}
	if conf.IsSet(KeyWorkers) {
		if n := conf.GetInt(KeyWorkers); n > 0 {
			c.Workers = n
		}
	}
	tracer().Infof("property config: max depth %d, font size %s, page %s x %s, %d workers",
		c.MaxDepth, c.FontSize, c.PageWidth, c.PageHeight, c.Workers)
	return c
}

// EvalLength evaluates a context-free length expression, as used for
// configured sizes.
func EvalLength(text string) (value.Length, error) {
	v, err := expr.Parse(text, &expr.Context{})
	if err != nil {
		return value.ZeroLength, err
	}
	l, err := asLength(v)
	if err != nil {
		return value.ZeroLength, fmt.Errorf("%q: %w", text, err)
	}
	return l, nil
}

func (c Config) fontSize() (value.Length, error) {
	return EvalLength(c.FontSize)
}
