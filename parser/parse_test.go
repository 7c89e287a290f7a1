package parser

import (
	"errors"
	"testing"

	"github.com/npillmayer/htree/arena"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html/atom"
)

func mustParse(t *testing.T, src string, opts *Options) *Output {
	t.Helper()
	out, err := Parse([]byte(src), opts)
	require.NoError(t, err)
	require.NotNil(t, out.Arena)
	t.Cleanup(func() {
		if out.Arena != nil {
			Destroy(out, opts)
		}
	})
	return out
}

func findElement(a *arena.Arena, tag atom.Atom, nth int) *arena.Node {
	for i := range a.Nodes {
		if a.Nodes[i].Kind.IsElement() && a.Nodes[i].Tag == tag {
			if nth == 0 {
				return &a.Nodes[i]
			}
			nth--
		}
	}
	return nil
}

func TestParseDocumentStructure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htree.parser")
	defer teardown()
	//
	out := mustParse(t, "<ul><li>a</li><li>b</li></ul>", nil)
	a := out.Arena
	doc := a.Document()
	assert.Equal(t, arena.DocumentKind, doc.Kind)
	assert.Equal(t, arena.NoParent, doc.Parent)
	require.NotEqual(t, arena.NoParent, a.Root)
	assert.Equal(t, atom.Html, a.Node(a.Root).Tag)
	ul := findElement(a, atom.Ul, 0)
	require.NotNil(t, ul)
	require.Len(t, ul.Children, 2)
	for i, want := range []string{"a", "b"} {
		li := a.Node(ul.Children[i])
		assert.Equal(t, atom.Li, li.Tag)
		assert.Equal(t, i, li.Index)
		require.Len(t, li.Children, 1)
		txt := a.Node(li.Children[0])
		assert.Equal(t, arena.TextKind, txt.Kind)
		assert.Equal(t, want, txt.Text)
		assert.Equal(t, want, txt.Original.Slice(a.Source))
	}
}

func TestParseIDsFollowDocumentOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htree.parser")
	defer teardown()
	//
	out := mustParse(t, "<div><p>x</p><!--c--><span>y</span></div>", nil)
	for i := range out.Arena.Nodes {
		n := &out.Arena.Nodes[i]
		assert.Equal(t, int32(i), n.ID)
		for _, ch := range n.Children {
			assert.Greater(t, ch, n.ID, "child %d of %v", ch, n)
			assert.Equal(t, n.ID, out.Arena.Node(ch).Parent)
		}
	}
}

func TestParseElementPositions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htree.parser")
	defer teardown()
	//
	src := "<html><body>\n  <p class=x>hello</p>\n</body></html>"
	out := mustParse(t, src, nil)
	p := findElement(out.Arena, atom.P, 0)
	require.NotNil(t, p)
	assert.Equal(t, "<p class=x>", p.Original.Slice(out.Arena.Source))
	assert.Equal(t, "</p>", p.OriginalEnd.Slice(out.Arena.Source))
	assert.Equal(t, arena.Position{Line: 2, Column: 3, Offset: 15}, p.Start)
	assert.Equal(t, 2, p.End.Line)
	assert.Equal(t, 31, p.End.Offset)
}

func TestParseImpliedElementsHaveNoPosition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htree.parser")
	defer teardown()
	//
	out := mustParse(t, "<p>text", nil)
	body := findElement(out.Arena, atom.Body, 0)
	require.NotNil(t, body)
	assert.False(t, body.Start.IsValid())
	assert.True(t, body.Original.IsEmpty())
	p := findElement(out.Arena, atom.P, 0)
	require.NotNil(t, p)
	assert.True(t, p.Start.IsValid())
	assert.True(t, p.OriginalEnd.IsEmpty(), "<p> has no end tag in source")
}

func TestParseAttributes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htree.parser")
	defer teardown()
	//
	out := mustParse(t, `<a href="x" class='y' hidden>`, nil)
	a := findElement(out.Arena, atom.A, 0)
	require.NotNil(t, a)
	require.Len(t, a.Attrs, 3)
	src := out.Arena.Source
	want := []struct{ name, value, original, origValue string }{
		{"href", "x", `href="x"`, `"x"`},
		{"class", "y", `class='y'`, `'y'`},
		{"hidden", "", `hidden`, ``},
	}
	for i, w := range want {
		attr := out.Arena.Attribute(a.Attrs[i])
		assert.Equal(t, a.ID, attr.Owner)
		assert.Equal(t, w.name, attr.Name)
		assert.Equal(t, w.value, attr.Value)
		assert.Equal(t, w.original, attr.Original.Slice(src))
		assert.Equal(t, w.name, attr.OriginalName.Slice(src))
		assert.Equal(t, w.origValue, attr.OriginalValue.Slice(src))
	}
	href := out.Arena.Attribute(a.Attrs[0])
	assert.Equal(t, arena.Position{Line: 1, Column: 4, Offset: 3}, href.NameStart)
	assert.Equal(t, arena.Position{Line: 1, Column: 8, Offset: 7}, href.NameEnd)
	assert.Equal(t, 8, href.ValueStart.Offset)
	assert.Equal(t, 11, href.ValueEnd.Offset)
}

func TestParseDoctype(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htree.parser")
	defer teardown()
	//
	out := mustParse(t, `<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01//EN" "http://www.w3.org/TR/html4/strict.dtd"><p>`, nil)
	dt := out.Arena.Doctype
	assert.True(t, dt.Present)
	assert.Equal(t, "html", dt.Name)
	assert.Equal(t, "-//W3C//DTD HTML 4.01//EN", dt.PublicIdentifier)
	assert.Equal(t, "http://www.w3.org/TR/html4/strict.dtd", dt.SystemIdentifier)
	for _, ch := range out.Arena.Document().Children {
		assert.True(t, out.Arena.Node(ch).Kind.IsElement(), "doctype must not show up as a child")
	}
}

func TestParseNodeKinds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htree.parser")
	defer teardown()
	//
	src := "<body><!-- note -->\n<template><b>t</b></template><svg><![CDATA[raw]]></svg></body>"
	out := mustParse(t, src, nil)
	kinds := map[arena.Kind]int{}
	for i := range out.Arena.Nodes {
		kinds[out.Arena.Nodes[i].Kind]++
	}
	assert.Equal(t, 1, kinds[arena.DocumentKind])
	assert.Equal(t, 1, kinds[arena.CommentKind])
	assert.Equal(t, 1, kinds[arena.TemplateKind])
	assert.Equal(t, 1, kinds[arena.WhitespaceKind])
	assert.Equal(t, 1, kinds[arena.CDATAKind])
	svg := findElement(out.Arena, atom.Svg, 0)
	require.NotNil(t, svg)
	assert.Equal(t, arena.SVGNamespace, svg.Namespace)
}

func TestParseInformationalErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htree.parser")
	defer teardown()
	//
	src := `<div id=a id=b></span></div>`
	out := mustParse(t, src, nil)
	require.Len(t, out.Errors, 2)
	assert.Equal(t, DuplicateAttribute, out.Errors[0].Kind)
	assert.Equal(t, "id=b", out.Errors[0].Original)
	assert.Equal(t, StrayEndTag, out.Errors[1].Kind)
	assert.Equal(t, "</span>", out.Errors[1].Original)
	assert.Equal(t, 15, out.Errors[1].Pos.Offset)
	//
	opts := DefaultOptions()
	opts.MaxErrors = 1
	capped := mustParse(t, src, &opts)
	assert.Len(t, capped.Errors, 1)
}

func TestParseTabStops(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htree.parser")
	defer teardown()
	//
	opts := DefaultOptions()
	opts.TabStop = 4
	out := mustParse(t, "\t<p>x", &opts)
	p := findElement(out.Arena, atom.P, 0)
	require.NotNil(t, p)
	assert.Equal(t, 5, p.Start.Column)
	assert.Equal(t, 1, p.Start.Offset)
}

func TestParseFragment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htree.parser")
	defer teardown()
	//
	opts := DefaultOptions()
	opts.FragmentContext = atom.Tbody
	out := mustParse(t, "<tr><td>1</td></tr>", &opts)
	root := out.Arena.Node(out.Arena.Root)
	assert.Equal(t, atom.Html, root.Tag)
	require.Len(t, root.Children, 1)
	tr := out.Arena.Node(root.Children[0])
	assert.Equal(t, atom.Tr, tr.Tag)
	assert.Equal(t, "<tr>", tr.Original.Slice(out.Arena.Source))
}

func TestParseSourceTooLarge(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxSourceSize = 4
	out, err := Parse([]byte("<p>hello</p>"), &opts)
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, ErrSourceTooLarge))
}

func TestDestroyTwiceIsMisuse(t *testing.T) {
	out, err := Parse([]byte("<p>"), nil)
	require.NoError(t, err)
	Destroy(out, nil)
	assert.Nil(t, out.Arena)
	assert.Panics(t, func() { Destroy(out, nil) })
}

func TestDestroyWithoutReuse(t *testing.T) {
	opts := DefaultOptions()
	opts.ReuseArenas = false
	out, err := Parse([]byte("<p>x</p>"), &opts)
	require.NoError(t, err)
	a := out.Arena
	Destroy(out, &opts)
	assert.Nil(t, a.Nodes)
	assert.Nil(t, a.Source)
}

func findText(a *arena.Arena, data string) *arena.Node {
	for i := range a.Nodes {
		if a.Nodes[i].Kind.IsText() && a.Nodes[i].Text == data {
			return &a.Nodes[i]
		}
	}
	return nil
}

func TestParseMisnestedFormatting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htree.parser")
	defer teardown()
	//
	src := "<b>1<p>2</b>3</p><b>4</b>"
	out := mustParse(t, src, nil)
	a := out.Arena
	first, clone, last := findElement(a, atom.B, 0), findElement(a, atom.B, 1), findElement(a, atom.B, 2)
	require.NotNil(t, last)
	assert.Equal(t, "<b>", first.Original.Slice(a.Source))
	assert.Equal(t, 0, first.Start.Offset)
	assert.Equal(t, "</b>", first.OriginalEnd.Slice(a.Source))
	// the adoption agency's copy of <b> inside <p> has no source
	assert.Equal(t, atom.P, a.Node(clone.Parent).Tag)
	assert.Equal(t, "", clone.Original.Slice(a.Source))
	assert.False(t, clone.Start.IsValid())
	require.Len(t, clone.Children, 1)
	assert.Equal(t, 7, a.Node(clone.Children[0]).Start.Offset)
	assert.Equal(t, "<b>", last.Original.Slice(a.Source))
	assert.Equal(t, 18, last.Start.Column)
	p := findElement(a, atom.P, 0)
	assert.Equal(t, "</p>", p.OriginalEnd.Slice(a.Source))
	assert.Empty(t, out.Errors, "</p> closes the <p> left open by </b>")
	//
	out = mustParse(t, "<b><p></b></p><b>x</b>", nil)
	a = out.Arena
	clone, last = findElement(a, atom.B, 1), findElement(a, atom.B, 2)
	require.NotNil(t, last)
	assert.Equal(t, "", clone.Original.Slice(a.Source))
	assert.Equal(t, 14, last.Start.Offset)
}

func TestParseFosterParentedText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htree.parser")
	defer teardown()
	//
	src := "<table><tr><td>a</td></tr>b</table>"
	out := mustParse(t, src, nil)
	a := out.Arena
	inCell, fostered := findText(a, "a"), findText(a, "b")
	require.NotNil(t, inCell)
	require.NotNil(t, fostered)
	assert.Equal(t, atom.Td, a.Node(inCell.Parent).Tag)
	assert.Equal(t, 15, inCell.Start.Offset)
	assert.Equal(t, "a", inCell.Original.Slice(a.Source))
	assert.Equal(t, atom.Body, a.Node(fostered.Parent).Tag)
	assert.Equal(t, 26, fostered.Start.Offset)
	td := findElement(a, atom.Td, 0)
	assert.Equal(t, 11, td.Start.Offset)
}
