package htree

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuerySelectorAll(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htree")
	defer teardown()
	//
	out := mustParse(t, `<div id="top"><p class="x">1</p><div><p>2</p><p class="x">3</p></div></div>`)
	doc := out.Document()
	ps, err := doc.QuerySelectorAll("p.x")
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "1", ps[0].TextContent())
	assert.Equal(t, "3", ps[1].TextContent())
	assert.Equal(t, -1, ps[0].Compare(ps[1]), "matches are in document order")
	//
	divs, err := doc.QuerySelectorAll("div")
	require.NoError(t, err)
	require.Len(t, divs, 2)
	inner, err := divs[0].QuerySelectorAll("div")
	require.NoError(t, err)
	require.Len(t, inner, 1, "element itself is not part of the result")
	assert.True(t, inner[0].Equal(divs[1]))
	//
	ok, err := divs[0].Matches("#top")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = divs[1].Matches("#top")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestQueryInvalidSelector(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htree")
	defer teardown()
	//
	out := mustParse(t, "<p>")
	_, err := out.Document().QuerySelectorAll("p[")
	assert.Error(t, err)
	_, err = out.Root().Matches(":::")
	assert.Error(t, err)
}

func TestQueryAfterDrop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htree")
	defer teardown()
	//
	out := mustParse(t, "<p>")
	doc := out.Document()
	doc.Drop()
	requireMisuse(t, func() { _, _ = doc.QuerySelectorAll("p") })
}
