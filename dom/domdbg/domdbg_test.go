package domdbg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/htree"
	"github.com/npillmayer/htree/dom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var myhtml = `<html><head></head><body>
<p style="margin: 0; color: red">Hello <b>World</b>!</p>
</body></html>`

func buildDOM(t *testing.T) *dom.W3CNode {
	out, err := htree.ParseDocument([]byte(myhtml))
	require.NoError(t, err)
	return dom.FromDocument(out.Document())
}

func TestGraphViz(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htree.dom")
	defer teardown()
	//
	doc := buildDOM(t)
	var buf bytes.Buffer
	require.NoError(t, ToGraphViz(doc, &buf, true))
	dot := buf.String()
	assert.True(t, strings.HasPrefix(dot, "digraph g {"))
	assert.True(t, strings.HasSuffix(dot, "}\n"))
	assert.Contains(t, dot, `label="p"`)
	assert.Contains(t, dot, "node00001 -> node00002")
	assert.Contains(t, dot, "_style")
	assert.Contains(t, dot, "<td>red</td>")
	//
	buf.Reset()
	require.NoError(t, ToGraphViz(doc, &buf, false))
	assert.NotContains(t, buf.String(), "_style")
}

func TestPrint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htree.dom")
	defer teardown()
	//
	doc := buildDOM(t)
	var buf bytes.Buffer
	require.NoError(t, Print(doc, &buf))
	s := buf.String()
	t.Logf("\n%s", s)
	assert.True(t, strings.HasPrefix(s, "#document"))
	assert.Contains(t, s, `<p style="margin: 0; color: red"> @2:1`)
	assert.Contains(t, s, `#text "World"`)
	assert.Contains(t, s, "<head> @1:7")
}
