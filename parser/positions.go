package parser

import (
	"sort"
	"unicode/utf8"

	"github.com/npillmayer/htree/arena"
)

// lineIndex converts byte offsets into line/column positions.
type lineIndex struct {
	src    []byte
	starts []int // byte offset of the first byte of every line
	tab    int
}

func newLineIndex(src []byte, tab int) *lineIndex {
	starts := make([]int, 1, 64)
	for i, c := range src {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{src: src, starts: starts, tab: tab}
}

// position returns the position of the byte at offset. Columns count
// characters, not bytes, and tabs advance to the next tab stop.
func (li *lineIndex) position(offset int) arena.Position {
	if offset < 0 || offset > len(li.src) {
		return arena.Position{}
	}
	line := sort.Search(len(li.starts), func(i int) bool {
		return li.starts[i] > offset
	}) // first line starting after offset
	start := li.starts[line-1]
	col := 1
	for i := start; i < offset; {
		c := li.src[i]
		if c == '\t' {
			col = ((col-1)/li.tab+1)*li.tab + 1
			i++
			continue
		}
		_, size := utf8.DecodeRune(li.src[i:offset])
		i += size
		col++
	}
	return arena.Position{Line: line, Column: col, Offset: offset}
}

func (li *lineIndex) span(s arena.Span) (arena.Position, arena.Position) {
	return li.position(s.Start), li.position(s.End)
}
