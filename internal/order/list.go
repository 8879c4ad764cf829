package order

import "cmp"

// Elem is a node of a [List]. Unlike a [Tree] node, an Elem's identity is
// never reassigned by another operation — it is either linked into exactly
// one List or not linked at all. This is required because the frequency
// variant stores Elem handles as long-lived level-dictionary metadata.
type Elem[Key cmp.Ordered, Value any] struct {
	prev, next *Elem[Key, Value]
	Key        Key
	Value      Value
}

// Next returns the next-largest element, or nil if e is the last.
func (e *Elem[Key, Value]) Next() *Elem[Key, Value] { return e.next }

// Prev returns the next-smallest element, or nil if e is the first.
func (e *Elem[Key, Value]) Prev() *Elem[Key, Value] { return e.prev }

// List is a sorted doubly-linked multimap: duplicate Keys are permitted,
// stored in insertion order among themselves. It backs the per-level
// frequency index of the self-counting frequency forest, where Key is an
// access count and Value is the domain key it belongs to.
type List[Key cmp.Ordered, Value any] struct {
	head, tail *Elem[Key, Value]
	size       int
}

// Len returns the number of elements in l.
func (l *List[Key, Value]) Len() int { return l.size }

// Min returns the element with the smallest key, or nil if l is empty.
func (l *List[Key, Value]) Min() *Elem[Key, Value] { return l.head }

// Max returns the element with the largest key, or nil if l is empty.
func (l *List[Key, Value]) Max() *Elem[Key, Value] { return l.tail }

// Insert creates a new element and links it into sorted position.
func (l *List[Key, Value]) Insert(key Key, value Value) *Elem[Key, Value] {
	e := &Elem[Key, Value]{Key: key, Value: value}
	after := l.tail
	for after != nil && after.Key > key {
		after = after.prev
	}
	if after == nil {
		e.next = l.head
		if l.head != nil {
			l.head.prev = e
		} else {
			l.tail = e
		}
		l.head = e
	} else {
		e.prev = after
		e.next = after.next
		if after.next != nil {
			after.next.prev = e
		} else {
			l.tail = e
		}
		after.next = e
	}
	l.size++
	return e
}

// Delete unlinks e from l. e must belong to l.
func (l *List[Key, Value]) Delete(e *Elem[Key, Value]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		l.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		l.tail = e.prev
	}
	e.prev, e.next = nil, nil
	l.size--
}
