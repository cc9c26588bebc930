// Package templating does literal placeholder substitution into report
// template bodies. It is deliberately not a control-flow template engine:
// older template bodies still carry conditional/loop markup, and that markup
// is stripped like any other unbound token rather than evaluated.
package templating

import (
	"regexp"
	"strings"
)

// tokenRe matches every {{...}} occurrence, including whitespace-padded
// names and leftover control markup such as {{#if x}} or {{/each}}.
var tokenRe = regexp.MustCompile(`\{\{[^{}]*\}\}`)

// Render replaces every {{name}} token in tpl with values[name]. Tokens with
// no matching key are replaced with the empty string; no token is ever left
// in the output.
func Render(tpl string, values map[string]string) string {
	return tokenRe.ReplaceAllStringFunc(tpl, func(token string) string {
		name := strings.TrimSpace(token[2 : len(token)-2])
		if v, ok := values[name]; ok {
			return v
		}
		return ""
	})
}

// Placeholders lists the distinct token names in a template body, in first
// occurrence order. Used by template admin tooling to validate bindings.
func Placeholders(tpl string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, token := range tokenRe.FindAllString(tpl, -1) {
		name := strings.TrimSpace(token[2 : len(token)-2])
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
