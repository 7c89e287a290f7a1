package dom

import (
	"testing"

	"github.com/npillmayer/htree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

var myhtml = `<!DOCTYPE html>
<html><head>
<style>
  p { margin: 0 }
  p.x, div > p { color: red !important; }
  @media print { p { color: black } }
</style>
</head><body>
<p class="x" style="padding: 2px; padding: 4px; border: none !important">Hello <b>World</b>!</p>
<!-- a comment -->
<div><p>second</p></div>
</body></html>`

func parseDoc(t *testing.T, src string) *W3CNode {
	t.Helper()
	out, err := htree.ParseDocument([]byte(src))
	require.NoError(t, err)
	return FromDocument(out.Document())
}

func findFirst(t *testing.T, root *W3CNode, tag string) *W3CNode {
	t.Helper()
	found := Collect(root, NodeIsElement(tag))
	require.NotEmpty(t, found, "no <%s> found", tag)
	return found[0]
}

func TestW3CNodeNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htree.dom")
	defer teardown()
	//
	doc := parseDoc(t, myhtml)
	assert.Equal(t, "#document", doc.NodeName())
	assert.Equal(t, html.DocumentNode, doc.NodeType())
	assert.Nil(t, doc.ParentNode())
	_, err := doc.TextContent()
	assert.Error(t, err)
	//
	p := findFirst(t, doc, "p")
	assert.Equal(t, html.ElementNode, p.NodeType())
	assert.Equal(t, "", p.NodeValue())
	txt, err := p.TextContent()
	require.NoError(t, err)
	assert.Equal(t, "Hello World!", txt)
	hello := p.FirstChild()
	require.NotNil(t, hello)
	assert.Equal(t, "#text", hello.NodeName())
	assert.Equal(t, html.TextNode, hello.NodeType())
	assert.Equal(t, "Hello ", hello.NodeValue())
	assert.Equal(t, "b", hello.NextSibling().NodeName())
	//
	comments := Collect(doc, func(n *W3CNode) bool { return n.NodeType() == html.CommentNode })
	require.Len(t, comments, 1)
	assert.Equal(t, "#comment", comments[0].NodeName())
	assert.Equal(t, " a comment ", comments[0].NodeValue())
}

func TestW3CNodeChildren(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htree.dom")
	defer teardown()
	//
	doc := parseDoc(t, myhtml)
	body := findFirst(t, doc, "body")
	all := body.ChildNodes()
	elems := body.Children()
	assert.Greater(t, all.Length(), elems.Length())
	assert.Equal(t, 2, elems.Length())
	assert.Equal(t, "p", elems.Item(0).NodeName())
	assert.Equal(t, "div", elems.Item(1).NodeName())
	assert.Nil(t, elems.Item(2))
	assert.Nil(t, elems.Item(-1))
	assert.Equal(t, "[<p> <div>]", elems.String())
	assert.True(t, body.HasChildNodes())
	parent := elems.Item(1).ParentNode()
	require.NotNil(t, parent)
	assert.Equal(t, "body", parent.NodeName())
	//
	leaf := findFirst(t, doc, "b").FirstChild()
	require.NotNil(t, leaf)
	assert.False(t, leaf.HasChildNodes())
	assert.Nil(t, leaf.FirstChild())
	assert.Nil(t, leaf.NextSibling())
}

func TestW3CNodeAttributes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htree.dom")
	defer teardown()
	//
	doc := parseDoc(t, myhtml)
	p := findFirst(t, doc, "p")
	assert.True(t, p.HasAttributes())
	attrs := p.Attributes()
	require.Equal(t, 2, attrs.Length())
	assert.Equal(t, "class", attrs.Item(0).Key())
	assert.Equal(t, "x", attrs.Item(0).Value())
	assert.Equal(t, "", attrs.Item(0).Namespace())
	assert.Nil(t, attrs.Item(5))
	style := attrs.GetNamedItem("STYLE")
	require.NotNil(t, style)
	assert.Contains(t, style.Value(), "padding")
	assert.Nil(t, attrs.GetNamedItem("id"))
	assert.False(t, doc.HasAttributes())
	assert.Equal(t, 0, p.FirstChild().Attributes().Length())
}

func TestInlineStyle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htree.dom")
	defer teardown()
	//
	doc := parseDoc(t, myhtml)
	p := findFirst(t, doc, "p")
	style := p.Style()
	assert.Equal(t, 3, style.Length())
	assert.Equal(t, "padding", style.Item(0))
	assert.Equal(t, "", style.Item(3))
	assert.Equal(t, "4px", style.GetPropertyValue("padding"), "last declaration wins")
	assert.Equal(t, "important", style.GetPropertyPriority("border"))
	assert.Equal(t, "", style.GetPropertyPriority("padding"))
	assert.Equal(t, "", style.GetPropertyValue("color"))
	assert.Equal(t, 0, findFirst(t, doc, "div").Style().Length())
	assert.Equal(t, 0, doc.Style().Length())
}

func TestStyleSheets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htree.dom")
	defer teardown()
	//
	out, err := htree.ParseDocument([]byte(myhtml))
	require.NoError(t, err)
	sheets, err := StyleSheets(out.Document())
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	assert.False(t, sheets[0].Empty())
	assert.Equal(t, "style", sheets[0].Owner().TagName())
	rules := sheets[0].Rules()
	require.Len(t, rules, 3)
	assert.Equal(t, []string{"margin"}, rules[0].Properties())
	assert.Equal(t, "0", rules[0].Value("margin"))
	assert.True(t, rules[1].IsImportant("color"))
	assert.False(t, rules[0].IsImportant("margin"))
	assert.True(t, rules[2].IsAtRule())
	//
	ps, err := out.Document().QuerySelectorAll("p")
	require.NoError(t, err)
	require.Len(t, ps, 2)
	first := MatchingRules(sheets, ps[0])
	require.Len(t, first, 2)
	assert.Equal(t, "red", first[1].Value("color"))
	second := MatchingRules(sheets, ps[1])
	assert.Len(t, second, 2, "div > p matches the second paragraph")
	//
	bare, err := htree.ParseDocument([]byte("<p>no styles</p>"))
	require.NoError(t, err)
	none, err := StyleSheets(bare.Document())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCollectText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htree.dom")
	defer teardown()
	//
	doc := parseDoc(t, "<p>a<b>b</b><!--x-->c</p>")
	p := findFirst(t, doc, "p")
	var texts []string
	for _, n := range Collect(p, NodeIsText) {
		texts = append(texts, n.NodeValue())
	}
	assert.Equal(t, []string{"a", "b", "c"}, texts)
	assert.Len(t, Collect(doc, NodeIsElement("")), 5) // html head body p b
}
