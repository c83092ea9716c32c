// Package window keeps the most recent bits of a stream in a fixed ring.
package window

import "github.com/fernandosanchezjr/goscrambler/utils"

const DefaultCapacity = 256

// Window holds at most Cap() bits; pushing into a full window evicts the
// oldest bit.
type Window struct {
	buffer []byte
	head   int
	length int
}

func NewWindow(capacity int) *Window {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Window{buffer: make([]byte, capacity)}
}

func (w *Window) Cap() int {
	return len(w.buffer)
}

func (w *Window) Len() int {
	return w.length
}

func (w *Window) IsFull() bool {
	return w.length == len(w.buffer)
}

// Push appends a bit and reports the evicted bit, if any.
func (w *Window) Push(bit byte) (evicted byte, ok bool) {
	c := len(w.buffer)
	if w.length < c {
		w.buffer[(w.head+w.length)%c] = bit
		w.length++
		return 0, false
	}
	evicted = w.buffer[w.head]
	w.buffer[w.head] = bit
	w.head = (w.head + 1) % c
	return evicted, true
}

// At returns the i-th bit, oldest first.
func (w *Window) At(i int) byte {
	return w.buffer[(w.head+i)%len(w.buffer)]
}

// Bits copies the contents, oldest to newest.
func (w *Window) Bits() utils.Bits {
	ret := make(utils.Bits, w.length)
	for i := range ret {
		ret[i] = w.At(i)
	}
	return ret
}

// HasSuffix reports whether the newest len(pattern) bits equal pattern.
func (w *Window) HasSuffix(pattern utils.Bits) bool {
	if len(pattern) > w.length {
		return false
	}
	offset := w.length - len(pattern)
	for i, bit := range pattern {
		if w.At(offset+i) != bit {
			return false
		}
	}
	return true
}

func (w *Window) Reset() {
	w.head = 0
	w.length = 0
}
