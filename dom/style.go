package dom

import (
	"errors"
	"fmt"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/htree"
	"github.com/npillmayer/htree/dom/w3cdom"
)

// Declarations is an adapter for interface w3cdom.StyleDeclaration, holding
// the declarations of a style attribute in source order.
type Declarations struct {
	decls []*css.Declaration
}

var _ w3cdom.StyleDeclaration = &Declarations{}

// ParseInlineStyle parses the content of a style attribute, e.g.
// "margin: 0; color: red !important".
func ParseInlineStyle(s string) (*Declarations, error) {
	decls, err := parser.ParseDeclarations(s)
	if err != nil {
		return nil, err
	}
	return &Declarations{decls: decls}, nil
}

// Length returns the number of declarations.
func (d *Declarations) Length() int {
	return len(d.decls)
}

// Item returns the property name of the declaration at index i, or "".
func (d *Declarations) Item(i int) string {
	if i < 0 || i >= len(d.decls) {
		return ""
	}
	return d.decls[i].Property
}

// GetPropertyValue returns the value for a property key. If a property is
// declared more than once, the last declaration wins.
func (d *Declarations) GetPropertyValue(key string) string {
	if decl := d.find(key); decl != nil {
		return decl.Value
	}
	return ""
}

// GetPropertyPriority returns "important" if the property is marked with
// !important.
func (d *Declarations) GetPropertyPriority(key string) string {
	if decl := d.find(key); decl != nil && decl.Important {
		return "important"
	}
	return ""
}

func (d *Declarations) find(key string) *css.Declaration {
	for i := len(d.decls) - 1; i >= 0; i-- {
		if d.decls[i].Property == key {
			return d.decls[i]
		}
	}
	return nil
}

// --- Style sheets ----------------------------------------------------------

// StyleSheet wraps a douceur stylesheet parsed from a <style> element.
type StyleSheet struct {
	css   *css.Stylesheet
	owner *htree.Element
}

// Owner returns the <style> element the sheet was read from.
func (sheet *StyleSheet) Owner() *htree.Element {
	return sheet.owner
}

// Empty checks if this stylesheet contains any rules.
func (sheet *StyleSheet) Empty() bool {
	return len(sheet.css.Rules) == 0
}

// Rules returns all the rules of a stylesheet.
func (sheet *StyleSheet) Rules() []Rule {
	rules := make([]Rule, len(sheet.css.Rules))
	for i, r := range sheet.css.Rules {
		rules[i] = Rule{r}
	}
	return rules
}

// StyleSheets visits the <style> elements of a document, in document order,
// and parses their content. Style elements which fail to parse are skipped;
// the returned error joins the reasons.
func StyleSheets(doc *htree.Document) ([]*StyleSheet, error) {
	styles, err := doc.QuerySelectorAll("style")
	if err != nil {
		return nil, err
	}
	var sheets []*StyleSheet
	var errs []error
	for _, s := range styles {
		c, err := parser.Parse(s.TextContent())
		if err != nil {
			errs = append(errs, fmt.Errorf("<style> at %v: %w", s.StartPos(), err))
			continue
		}
		sheets = append(sheets, &StyleSheet{css: c, owner: s})
	}
	tracer().Debugf("found %d style sheets", len(sheets))
	return sheets, errors.Join(errs...)
}

// Rule is an adapter for douceur rules.
type Rule struct {
	rule *css.Rule
}

// Selector returns the prelude / selectors of the rule.
func (r Rule) Selector() string {
	return r.rule.Prelude
}

// IsAtRule is true for @-rules, e.g. @media.
func (r Rule) IsAtRule() bool {
	return r.rule.Kind == css.AtRule
}

// Properties returns the property keys of a rule, e.g. "margin-top".
func (r Rule) Properties() []string {
	props := make([]string, 0, len(r.rule.Declarations))
	for _, d := range r.rule.Declarations {
		props = append(props, d.Property)
	}
	return props
}

// Value returns the property value for given key with this rule, e.g. "15px".
func (r Rule) Value(key string) string {
	for _, d := range r.rule.Declarations {
		if d.Property == key {
			return d.Value
		}
	}
	return ""
}

// IsImportant returns true if a style key is marked as important ("!").
func (r Rule) IsImportant(key string) bool {
	for _, d := range r.rule.Declarations {
		if d.Property == key {
			return d.Important
		}
	}
	return false
}

// MatchingRules returns the qualified rules of sheets whose selector matches
// e, in sheet and source order. At-rules are not descended into. Rules with
// selectors the matcher does not understand are skipped.
func MatchingRules(sheets []*StyleSheet, e *htree.Element) []Rule {
	var rules []Rule
	for _, sheet := range sheets {
		for _, r := range sheet.Rules() {
			if r.IsAtRule() {
				continue
			}
			ok, err := e.Matches(r.Selector())
			if err != nil {
				tracer().Debugf("skipping rule %q: %v", r.Selector(), err)
				continue
			}
			if ok {
				rules = append(rules, r)
			}
		}
	}
	return rules
}
