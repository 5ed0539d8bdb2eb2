package htmldoc

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// declaration is one property of an inline style attribute.
type declaration struct {
	Property  string
	Value     string
	Important bool
}

// parseInlineStyle splits a style attribute into declarations, keeping order.
// Parsing stops at the first malformed declaration.
func parseInlineStyle(style string) []declaration {
	if strings.TrimSpace(style) == "" {
		return nil
	}

	p := css.NewParser(parse.NewInputString(style), true)
	var decls []declaration
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			return decls
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			value, important := joinValues(p.Values())
			decls = append(decls, declaration{
				Property:  strings.ToLower(string(data)),
				Value:     value,
				Important: important,
			})
		}
	}
}

// joinValues renders declaration tokens back to text and strips a trailing
// !important.
func joinValues(tokens []css.Token) (string, bool) {
	var parts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			parts = append(parts, string(t.Data))
		} else if len(parts) > 0 {
			parts = append(parts, " ")
		}
	}
	raw := strings.TrimSpace(strings.Join(parts, ""))

	important := false
	lower := strings.ToLower(raw)
	if idx := strings.LastIndex(lower, "!"); idx >= 0 && strings.TrimSpace(lower[idx+1:]) == "important" {
		important = true
		raw = strings.TrimSpace(raw[:idx])
	}
	return raw, important
}

func renderInlineStyle(decls []declaration) string {
	var b strings.Builder
	for i, d := range decls {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(d.Property)
		b.WriteString(": ")
		b.WriteString(d.Value)
		if d.Important {
			b.WriteString(" !important")
		}
		b.WriteString(";")
	}
	return b.String()
}

// lookup returns the declaration of prop that wins the cascade: the last
// !important one if any, otherwise the last one.
func lookup(decls []declaration, prop string) (declaration, bool) {
	var (
		found  declaration
		exists bool
	)
	for _, d := range decls {
		if d.Property != prop {
			continue
		}
		if exists && found.Important && !d.Important {
			continue
		}
		found, exists = d, true
	}
	return found, exists
}

// withProperty replaces every declaration of prop by a single one at the end.
// An empty value only removes.
func withProperty(decls []declaration, prop, value string) []declaration {
	out := make([]declaration, 0, len(decls)+1)
	for _, d := range decls {
		if d.Property != prop {
			out = append(out, d)
		}
	}
	if value != "" {
		out = append(out, declaration{Property: prop, Value: value})
	}
	return out
}
