package property

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// DefaultsFromCSS reads overrides of initial values from CSS text, to be
// used with WithDefaultOverrides. The text is either a list of
// declarations
//
//     font-size: 11pt; color: #333
//
// or a stylesheet, from which the declarations of rules for selector `*`
// or `:root` are used. Later declarations win.
func DefaultsFromCSS(text string) (map[string]string, error) {
	var decls []*css.Declaration
	if strings.Contains(text, "{") {
		sheet, err := parser.Parse(text)
		if err != nil {
			return nil, err
		}
		for _, rule := range sheet.Rules {
			if rule.Kind != css.QualifiedRule {
				continue
			}
			for _, sel := range rule.Selectors {
				if sel = strings.TrimSpace(sel); sel == "*" || sel == ":root" {
					decls = append(decls, rule.Declarations...)
					break
				}
			}
		}
	} else {
		var err error
		// the last declaration needs a terminating semicolon
		if t := strings.TrimSpace(text); t != "" && !strings.HasSuffix(t, ";") {
			text = t + ";"
		}
		if decls, err = parser.ParseDeclarations(text); err != nil {
			return nil, err
		}
	}
	overrides := make(map[string]string, len(decls))
	for _, d := range decls {
		if strings.TrimSpace(d.Value) == "" {
			return nil, fmt.Errorf("%w: empty CSS value for %s", ErrInvalidValue, d.Property)
		}
		overrides[d.Property] = d.Value
	}
	tracer().Debugf("%d initial values from CSS", len(overrides))
	return overrides, nil
}
