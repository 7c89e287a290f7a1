/*
Package maybe provides an optional value, used for tree navigation which may
run off the tree: the parent of the document, the sibling of the last child.

Values are inspected by matching:

	var p *htree.Node
	switch m := node.Parent().Match(); m {
	case m.Just(&p):
	    …
	case m.Nothing():
	    …
	}

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package maybe

// Maybe holds either a single value or nothing.
type Maybe[T any] interface {
	Match() Matcher[T]
	Get() (T, bool)
	IsNothing() bool
	WithDefault(T) T
	Map(func(T) T) Maybe[T]
}

type maybe[T any] struct {
	value T
	some  bool
}

// Just wraps x.
func Just[T any](x T) Maybe[T] {
	return maybe[T]{value: x, some: true}
}

// Nothing returns the empty Maybe.
func Nothing[T any]() Maybe[T] {
	return maybe[T]{}
}

// Ptr is Just(p) for non-nil p and Nothing otherwise.
func Ptr[T any](p *T) Maybe[*T] {
	if p == nil {
		return Nothing[*T]()
	}
	return Just(p)
}

func (m maybe[T]) Match() Matcher[T] {
	return matcher[T]{m: m}
}

func (m maybe[T]) Get() (T, bool) {
	return m.value, m.some
}

func (m maybe[T]) IsNothing() bool {
	return !m.some
}

func (m maybe[T]) WithDefault(def T) T {
	if m.some {
		return m.value
	}
	return def
}

func (m maybe[T]) Map(f func(T) T) Maybe[T] {
	if m.some {
		return Just(f(m.value))
	}
	return m
}

// AndThen chains a computation which may itself produce nothing, e.g. a
// step from a node to its parent.
func AndThen[T, S any](f func(T) Maybe[S], x Maybe[T]) Maybe[S] {
	if v, ok := x.Get(); ok {
		return f(v)
	}
	return Nothing[S]()
}

// --- Matching --------------------------------------------------------------

// Matcher matches a Maybe against its two variants. A method returns nil if
// its variant does not match.
type Matcher[T any] interface {
	Just(*T) Matcher[T]
	Nothing() Matcher[T]
}

type matcher[T any] struct {
	m maybe[T]
}

func (mm matcher[T]) Just(v *T) Matcher[T] {
	if mm.m.some {
		*v = mm.m.value
		return mm
	}
	return nil
}

func (mm matcher[T]) Nothing() Matcher[T] {
	if !mm.m.some {
		return mm
	}
	return nil
}
