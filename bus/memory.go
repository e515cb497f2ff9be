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

package bus

import "encoding/binary"

// Memory is a minimal slice-backed flat address space: one contiguous region
// starting at Base. It exists for the cmd/armcore demo tool and for tests;
// a real embedder is expected to supply its own Bus with device semantics.
type Memory struct {
	Base      uint32
	data      []byte
	bigEndian bool
}

// NewMemory allocates size bytes of backing storage starting at base.
func NewMemory(base uint32, size int, bigEndian bool) *Memory {
	return &Memory{
		Base:      base,
		data:      make([]byte, size),
		bigEndian: bigEndian,
	}
}

// Load copies img into the backing storage starting at base. It returns
// false if img does not fit.
func (m *Memory) Load(base uint32, img []byte) bool {
	off := int64(base) - int64(m.Base)
	if off < 0 || off+int64(len(img)) > int64(len(m.data)) {
		return false
	}
	copy(m.data[off:], img)
	return true
}

func (m *Memory) order() binary.ByteOrder {
	if m.bigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func (m *Memory) off(paddr uint32) (int, bool) {
	o := int64(paddr) - int64(m.Base)
	if o < 0 || o >= int64(len(m.data)) {
		return 0, false
	}
	return int(o), true
}

func (m *Memory) Read8(paddr uint32) uint8 {
	o, ok := m.off(paddr)
	if !ok {
		return 0xff
	}
	return m.data[o]
}

func (m *Memory) Read16(paddr uint32) uint16 {
	o, ok := m.off(paddr)
	if !ok || o+2 > len(m.data) {
		return 0xffff
	}
	return m.order().Uint16(m.data[o:])
}

func (m *Memory) Read32(paddr uint32) uint32 {
	o, ok := m.off(paddr)
	if !ok || o+4 > len(m.data) {
		return 0xffffffff
	}
	return m.order().Uint32(m.data[o:])
}

func (m *Memory) Write8(paddr uint32, v uint8) {
	if o, ok := m.off(paddr); ok {
		m.data[o] = v
	}
}

func (m *Memory) Write16(paddr uint32, v uint16) {
	if o, ok := m.off(paddr); ok && o+2 <= len(m.data) {
		m.order().PutUint16(m.data[o:], v)
	}
}

func (m *Memory) Write32(paddr uint32, v uint32) {
	if o, ok := m.off(paddr); ok && o+4 <= len(m.data) {
		m.order().PutUint32(m.data[o:], v)
	}
}

func (m *Memory) Peek8(paddr uint32) (uint8, bool) {
	o, ok := m.off(paddr)
	if !ok {
		return 0, false
	}
	return m.data[o], true
}

func (m *Memory) Peek16(paddr uint32) (uint16, bool) {
	o, ok := m.off(paddr)
	if !ok || o+2 > len(m.data) {
		return 0, false
	}
	return m.order().Uint16(m.data[o:]), true
}

func (m *Memory) Peek32(paddr uint32) (uint32, bool) {
	o, ok := m.off(paddr)
	if !ok || o+4 > len(m.data) {
		return 0, false
	}
	return m.order().Uint32(m.data[o:]), true
}

func (m *Memory) Poke8(paddr uint32, v uint8) bool {
	o, ok := m.off(paddr)
	if !ok {
		return false
	}
	m.data[o] = v
	return true
}

func (m *Memory) Poke16(paddr uint32, v uint16) bool {
	o, ok := m.off(paddr)
	if !ok || o+2 > len(m.data) {
		return false
	}
	m.order().PutUint16(m.data[o:], v)
	return true
}

func (m *Memory) Poke32(paddr uint32, v uint32) bool {
	o, ok := m.off(paddr)
	if !ok || o+4 > len(m.data) {
		return false
	}
	m.order().PutUint32(m.data[o:], v)
	return true
}
