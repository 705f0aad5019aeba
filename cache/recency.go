package cache

import "container/list"

// RecencySet is a bounded set ordered from least to most recently used.
// Members are unique and the set never holds more than its capacity.
type RecencySet[T comparable] struct {
	capacity int
	items    map[T]*list.Element
	order    *list.List
}

// NewRecencySet creates an empty set that holds up to capacity members.
func NewRecencySet[T comparable](capacity int) *RecencySet[T] {
	return &RecencySet[T]{
		capacity: capacity,
		items:    make(map[T]*list.Element, capacity),
		order:    list.New(),
	}
}

// Touch marks item as most recently used. If item was absent and the set
// was full, the least recently used member is removed and returned as the
// victim.
func (s *RecencySet[T]) Touch(item T) (hit bool, victim T, evicted bool) {
	if elem, ok := s.items[item]; ok {
		s.order.MoveToBack(elem)
		return true, victim, false
	}

	if s.order.Len() >= s.capacity {
		if front := s.order.Front(); front != nil {
			victim = s.order.Remove(front).(T)
			delete(s.items, victim)
			evicted = true
		}
	}

	if s.capacity > 0 {
		s.items[item] = s.order.PushBack(item)
	}

	return false, victim, evicted
}

// Contains reports whether item is resident without changing its recency.
func (s *RecencySet[T]) Contains(item T) bool {
	_, ok := s.items[item]
	return ok
}

// Len returns the number of members.
func (s *RecencySet[T]) Len() int {
	return s.order.Len()
}

// Cap returns the capacity.
func (s *RecencySet[T]) Cap() int {
	return s.capacity
}

// Items returns the members from least to most recently used.
func (s *RecencySet[T]) Items() []T {
	out := make([]T, 0, s.order.Len())
	for e := s.order.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(T))
	}
	return out
}

// Clear removes every member.
func (s *RecencySet[T]) Clear() {
	s.items = make(map[T]*list.Element, s.capacity)
	s.order.Init()
}
