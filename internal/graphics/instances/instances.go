// Package instances keeps the per-instance vertex data of the block
// renderer: a dense float slice that can be uploaded as one buffer.
package instances

import "fmt"

// Stride is the number of floats per instance: position xyz, colour rgb.
const Stride = 6

// Handle identifies an instance for its lifetime. Zero is never issued.
type Handle uint64

// Set stores instances densely. Removing an instance moves the last one into
// its slot, so order is not stable.
type Set struct {
	data   []float32
	owners []Handle
	slots  map[Handle]int
	next   Handle
	dirty  bool
}

func New() *Set {
	return &Set{slots: make(map[Handle]int)}
}

// Add appends an instance and returns its handle.
func (s *Set) Add(pos, rgb [3]float32) Handle {
	s.next++
	h := s.next
	s.slots[h] = len(s.owners)
	s.owners = append(s.owners, h)
	s.data = append(s.data, pos[0], pos[1], pos[2], rgb[0], rgb[1], rgb[2])
	s.dirty = true
	return h
}

// Remove deletes the instance h. Unknown handles panic.
func (s *Set) Remove(h Handle) {
	slot, ok := s.slots[h]
	if !ok {
		panic(fmt.Sprintf("instances: unknown handle %d", h))
	}
	last := len(s.owners) - 1
	if slot != last {
		moved := s.owners[last]
		copy(s.data[slot*Stride:(slot+1)*Stride], s.data[last*Stride:(last+1)*Stride])
		s.owners[slot] = moved
		s.slots[moved] = slot
	}
	s.owners = s.owners[:last]
	s.data = s.data[:last*Stride]
	delete(s.slots, h)
	s.dirty = true
}

// Has reports whether h is live.
func (s *Set) Has(h Handle) bool {
	_, ok := s.slots[h]
	return ok
}

// Position returns the position of instance h.
func (s *Set) Position(h Handle) ([3]float32, bool) {
	slot, ok := s.slots[h]
	if !ok {
		return [3]float32{}, false
	}
	d := s.data[slot*Stride:]
	return [3]float32{d[0], d[1], d[2]}, true
}

func (s *Set) Len() int { return len(s.owners) }

// Data returns the packed instance data. It is only valid until the next
// Add or Remove.
func (s *Set) Data() []float32 { return s.data }

// TakeDirty reports whether the data changed since the last call.
func (s *Set) TakeDirty() bool {
	d := s.dirty
	s.dirty = false
	return d
}
