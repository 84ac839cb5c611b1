package store

import (
	"sort"
	"sync"
)

// Entity is a record addressable by identifier.
type Entity interface {
	Key() string
}

// Op names the kind of change a Collection went through.
type Op int

const (
	OpLoad Op = iota
	OpPut
	OpDelete
	OpReset
)

func (o Op) String() string {
	switch o {
	case OpLoad:
		return "load"
	case OpPut:
		return "put"
	case OpDelete:
		return "delete"
	case OpReset:
		return "reset"
	}
	return "unknown"
}

// Change is delivered to subscribers after a Collection was modified.
// Key is empty for OpLoad and OpReset.
type Change struct {
	Collection string
	Op         Op
	Key        string
	Version    uint64
}

// Collection holds the current mapping of identifier to record for one
// entity type.
//
// A Collection distinguishes "not loaded yet" from "loaded and empty";
// consumers use Loaded to decide between a loading state and an empty view.
//
// Subscribers are called in version order, outside the data lock.
// A subscriber must not mutate the Collection it is subscribed to.
type Collection[T Entity] struct {
	name string

	mu         sync.RWMutex
	items      map[string]T
	loaded     bool
	version    uint64
	generation uint64

	// serialises mutation + delivery so subscribers observe versions in order.
	notifyMu sync.Mutex

	subMu  sync.Mutex
	subs   map[int]func(Change)
	nextID int
}

func NewCollection[T Entity](name string) *Collection[T] {
	return &Collection[T]{
		name:  name,
		items: map[string]T{},
		subs:  map[int]func(Change){},
	}
}

func (c *Collection[T]) Name() string { return c.name }

func (c *Collection[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

func (c *Collection[T]) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Collection[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[key]
	return item, ok
}

// Snapshot returns a copy of the mapping and whether the collection is loaded.
func (c *Collection[T]) Snapshot() (map[string]T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]T, len(c.items))
	for k, v := range c.items {
		out[k] = v
	}
	return out, c.loaded
}

// List returns every record ordered by key.
func (c *Collection[T]) List() []T {
	return c.Filter(nil)
}

// Filter returns the records accepted by keep, ordered by key.
// A nil keep accepts everything.
func (c *Collection[T]) Filter(keep func(T) bool) []T {
	c.mu.RLock()
	keys := make([]string, 0, len(c.items))
	for k, v := range c.items {
		if keep == nil || keep(v) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, c.items[k])
	}
	c.mu.RUnlock()
	return out
}

// Subscribe registers fn for every subsequent change. The returned function
// removes the subscription.
func (c *Collection[T]) Subscribe(fn func(Change)) func() {
	c.subMu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.subMu.Lock()
			delete(c.subs, id)
			c.subMu.Unlock()
		})
	}
}

// BeginLoad starts a remote load and returns its generation token.
func (c *Collection[T]) BeginLoad() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	return c.generation
}

// FinishLoad replaces the mapping with items if nothing happened to the
// collection since BeginLoad returned gen. Stale results are dropped and
// FinishLoad reports false.
func (c *Collection[T]) FinishLoad(gen uint64, items []T) bool {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return false
	}
	c.items = make(map[string]T, len(items))
	for _, item := range items {
		c.items[item.Key()] = item
	}
	c.loaded = true
	ch := c.bump(OpLoad, "")
	c.mu.Unlock()

	c.deliver(ch)
	return true
}

// Load replaces the mapping unconditionally.
func (c *Collection[T]) Load(items []T) {
	c.FinishLoad(c.BeginLoad(), items)
}

// Put inserts or replaces one record. It invalidates any load in flight.
func (c *Collection[T]) Put(item T) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	c.items[item.Key()] = item
	c.generation++
	ch := c.bump(OpPut, item.Key())
	c.mu.Unlock()

	c.deliver(ch)
}

// Delete removes one record and reports whether it was present.
func (c *Collection[T]) Delete(key string) bool {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	if _, ok := c.items[key]; !ok {
		c.mu.Unlock()
		return false
	}
	delete(c.items, key)
	c.generation++
	ch := c.bump(OpDelete, key)
	c.mu.Unlock()

	c.deliver(ch)
	return true
}

// Reset empties the collection and marks it as not loaded.
func (c *Collection[T]) Reset() {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	c.items = map[string]T{}
	c.loaded = false
	c.generation++
	ch := c.bump(OpReset, "")
	c.mu.Unlock()

	c.deliver(ch)
}

// bump must be called with mu held.
func (c *Collection[T]) bump(op Op, key string) Change {
	c.version++
	return Change{Collection: c.name, Op: op, Key: key, Version: c.version}
}

func (c *Collection[T]) deliver(ch Change) {
	c.subMu.Lock()
	ids := make([]int, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(Change), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, c.subs[id])
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn(ch)
	}
}
