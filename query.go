package htree

import (
	"fmt"
	"runtime"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/htree/arena"
)

// QuerySelectorAll returns the descendant elements matching a CSS selector,
// in document order.
func (d *Document) QuerySelectorAll(selector string) ([]*Element, error) {
	defer runtime.KeepAlive(d)
	return querySelectorAll(d.live("query"), d.target, selector)
}

// QuerySelectorAll returns the descendant elements matching a CSS selector,
// in document order. The element itself is not included.
func (e *Element) QuerySelectorAll(selector string) ([]*Element, error) {
	defer runtime.KeepAlive(e)
	return querySelectorAll(e.live("query"), e.target, selector)
}

// Matches tests the element against a CSS selector.
func (e *Element) Matches(selector string) (bool, error) {
	defer runtime.KeepAlive(e)
	e.live("matches")
	sel, err := compile(selector)
	if err != nil {
		return false, err
	}
	return sel.Match(e.target.HTMLNode()), nil
}

func compile(selector string) (cascadia.Selector, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("htree: invalid selector %q: %w", selector, err)
	}
	return sel, nil
}

func querySelectorAll(c *Container, from *arena.Node, selector string) ([]*Element, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	a := c.arena()
	matches := sel.MatchAll(from.HTMLNode())
	elements := make([]*Element, 0, len(matches))
	for _, m := range matches {
		n, ok := a.Lookup(m)
		if !ok || n == from || !n.Kind.IsElement() {
			continue
		}
		elements = append(elements, newElement(c, n))
	}
	tracer().Debugf("query %q: %d matches", selector, len(elements))
	return elements, nil
}
