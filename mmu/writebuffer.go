// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package mmu

// writeBufferDepth is the number of posted writes at which Full reports the
// buffer as full. Nothing stalls at that depth (this module has no separate
// bus-timing model to stall against); Post keeps appending.
const writeBufferDepth = 16

type postedWrite struct {
	addr uint32
	data uint32
	size uint8 // 1, 2 or 4
}

// WriteBuffer is a bounded FIFO of posted writes awaiting drain to
// memory. Entries are never merged: two posted writes to the same word
// stay as two FIFO entries and are drained in order, since this chip
// family's write buffer does not implement merge coalescing (a decision
// this module makes explicitly rather than silently approximating it).
type WriteBuffer struct {
	entries []postedWrite
}

func NewWriteBuffer() *WriteBuffer {
	return &WriteBuffer{entries: make([]postedWrite, 0, writeBufferDepth)}
}

// Post appends a write. The caller (MMU) is responsible for draining
// before the buffer grows past its capacity; Post itself never blocks or
// drops, matching this module's non-goal of modelling bus stall cycles.
func (w *WriteBuffer) Post(addr, data uint32, size uint8) {
	w.entries = append(w.entries, postedWrite{addr: addr, data: data, size: size})
}

// Full reports whether the buffer has reached its modelled depth.
func (w *WriteBuffer) Full() bool {
	return len(w.entries) >= writeBufferDepth
}

// Drain hands every posted write to sink in FIFO order and empties the
// buffer.
func (w *WriteBuffer) Drain(sink func(addr, data uint32, size uint8)) {
	for _, e := range w.entries {
		sink(e.addr, e.data, e.size)
	}
	w.entries = w.entries[:0]
}

// Pending reports how many writes are outstanding.
func (w *WriteBuffer) Pending() int {
	return len(w.entries)
}
