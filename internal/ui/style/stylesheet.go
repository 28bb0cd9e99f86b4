// Package style parses the viewer's small CSS dialect and resolves it to drawable values. It has no
// raylib dependency; colors are color.RGBA, which raylib uses directly.
package style

import (
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Rule is one selector and its declarations (raw strings).
type Rule struct {
	Selector string            // ".panel", "#close" or a node type such as "label"
	Props    map[string]string // "background" -> "#333"
}

// Stylesheet is an ordered rule list; later rules override earlier ones.
type Stylesheet struct {
	Rules []Rule
}

// Parse reads a stylesheet. Selector lists ("a, b") become one rule per selector. At-rules and
// their blocks are skipped, as are selectors with combinators.
func Parse(r io.Reader) (*Stylesheet, error) {
	p := css.NewParser(parse.NewInput(r), false)
	sheet := &Stylesheet{}
	var pending []string
	var open []int // indices of rules receiving declarations
	atDepth := 0
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if p.Err() == io.EOF {
				return sheet, nil
			}
			return nil, fmt.Errorf("style: %w", p.Err())
		case css.BeginAtRuleGrammar:
			atDepth++
		case css.EndAtRuleGrammar:
			if atDepth > 0 {
				atDepth--
			}
		case css.QualifiedRuleGrammar:
			if atDepth == 0 {
				pending = append(pending, selectors(p.Values())...)
			}
		case css.BeginRulesetGrammar:
			open = open[:0]
			if atDepth > 0 {
				pending = pending[:0]
				continue
			}
			pending = append(pending, selectors(p.Values())...)
			for _, sel := range pending {
				if !simpleSelector(sel) {
					continue
				}
				open = append(open, len(sheet.Rules))
				sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Props: map[string]string{}})
			}
			pending = pending[:0]
		case css.DeclarationGrammar:
			name := strings.ToLower(string(data))
			value := joinTokens(p.Values())
			for _, i := range open {
				sheet.Rules[i].Props[name] = value
			}
		case css.EndRulesetGrammar:
			open = open[:0]
		}
	}
}

// ParseCSS parses stylesheet text.
func ParseCSS(content string) (*Stylesheet, error) {
	return Parse(strings.NewReader(content))
}

// Match merges the declarations of every rule matching a node, in sheet order.
func (s *Stylesheet) Match(typ, class, id string) map[string]string {
	merged := make(map[string]string)
	if s == nil {
		return merged
	}
	for _, rule := range s.Rules {
		if matches(rule.Selector, typ, class, id) {
			for k, v := range rule.Props {
				merged[k] = v
			}
		}
	}
	return merged
}

// Merge returns a sheet with other's rules after s's, so other wins on conflicts.
func (s *Stylesheet) Merge(other *Stylesheet) *Stylesheet {
	out := &Stylesheet{}
	if s != nil {
		out.Rules = append(out.Rules, s.Rules...)
	}
	if other != nil {
		out.Rules = append(out.Rules, other.Rules...)
	}
	return out
}

func matches(sel, typ, class, id string) bool {
	switch {
	case strings.HasPrefix(sel, "."):
		for _, c := range strings.Fields(class) {
			if c == sel[1:] {
				return true
			}
		}
		return false
	case strings.HasPrefix(sel, "#"):
		return id != "" && id == sel[1:]
	default:
		return typ != "" && typ == sel
	}
}

func simpleSelector(sel string) bool {
	if sel == "" || strings.ContainsAny(sel, " >+~:[*") {
		return false
	}
	if sel[0] == '.' || sel[0] == '#' {
		return len(sel) > 1
	}
	return true
}

func selectors(tokens []css.Token) []string {
	var out []string
	for _, part := range strings.Split(joinTokens(tokens), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// joinTokens concatenates token data and collapses whitespace runs to one space.
func joinTokens(tokens []css.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.Write(t.Data)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
