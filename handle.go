package htree

import (
	"cmp"
	"hash/maphash"
	"runtime"
	"sync/atomic"
)

// ref is the part every handle type shares: the owning container and a
// pointer into its arena. Exactly one retain of the owner is paired with
// exactly one release, either by Drop or by the cleanup registered in bind.
type ref[T any] struct {
	owner   *Container
	target  *T // nil only for *Output
	cleanup runtime.Cleanup
	dropped atomic.Bool
}

// bind is the only way to initialize a handle. h must be the freshly
// allocated handle embedding r.
func bind[H any, T any](h *H, r *ref[T], c *Container, target *T) *H {
	c.retain()
	r.owner = c
	r.target = target
	r.cleanup = runtime.AddCleanup(h, (*Container).release, c)
	return h
}

// Drop releases the handle's reference to its container. The handle must not
// be used afterwards. Hosts relying on the garbage collector never need to
// call Drop.
func (r *ref[T]) Drop() {
	if !r.dropped.CompareAndSwap(false, true) {
		misuse("drop", "handle dropped twice")
	}
	r.cleanup.Stop()
	r.owner.release()
}

// Container returns the container the handle keeps alive.
func (r *ref[T]) Container() *Container {
	return r.owner
}

// Hash is derived from the identity of the arena record, or of the container
// for an *Output. It is stable for the lifetime of the handle.
func (r *ref[T]) Hash() uint64 {
	r.live("hash")
	if r.target == nil {
		return maphash.Comparable(hashSeed, r.owner)
	}
	return maphash.Comparable(hashSeed, r.target)
}

// live asserts that the handle may be dereferenced and returns its container.
// Callers reading the arena afterwards keep the handle reachable with
// runtime.KeepAlive until they return, or its cleanup may tear the arena down.
func (r *ref[T]) live(op string) *Container {
	if r.dropped.Load() {
		misuse(op, "use of dropped handle")
	}
	r.owner.check(op)
	return r.owner
}

var hashSeed = maphash.MakeSeed()

// Key is a comparable identity of an arena record, usable as a map key.
// A node and its element view share the same key.
type Key struct {
	owner *Container
	id    int32
	attr  bool
}

func compareRecords(c1, c2 *Container, id1, id2 int32) int {
	if c1 != c2 {
		return cmp.Compare(c1.serial, c2.serial)
	}
	return cmp.Compare(id1, id2)
}
