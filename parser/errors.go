package parser

import (
	"errors"
	"fmt"

	"github.com/npillmayer/htree/arena"
)

// ErrNoTree is returned if the parser could not produce any tree.
var ErrNoTree = errors.New("parser produced no tree")

// ErrSourceTooLarge is returned if the input exceeds Options.MaxSourceSize.
var ErrSourceTooLarge = errors.New("source exceeds size limit")

// ErrorKind classifies informational parse errors.
type ErrorKind uint8

// Kinds of informational parse errors.
const (
	TokenizerError ErrorKind = iota
	StrayEndTag
	DuplicateAttribute
)

func (k ErrorKind) String() string {
	switch k {
	case StrayEndTag:
		return "stray end tag"
	case DuplicateAttribute:
		return "duplicate attribute"
	}
	return "tokenizer error"
}

// Error is a markup error the parser recovered from. It never makes a
// parse fail.
type Error struct {
	Kind     ErrorKind
	Pos      arena.Position
	Original string // source text of the offending token
	Msg      string
}

func (e Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: %s at %s", e.Kind, e.Original, e.Pos)
	}
	return fmt.Sprintf("%s: %s at %s", e.Kind, e.Msg, e.Pos)
}
