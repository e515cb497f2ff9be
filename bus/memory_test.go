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

package bus_test

import (
	"testing"

	"github.com/silicontrip/armcore/bus"
	"github.com/silicontrip/armcore/test"
)

func TestMemoryReadWrite(t *testing.T) {
	m := bus.NewMemory(0x1000, 0x100, false)

	m.Write32(0x1000, 0xAABBCCDD)
	test.ExpectEquality(t, m.Read32(0x1000), uint32(0xAABBCCDD))
	test.ExpectEquality(t, m.Read8(0x1000), uint8(0xDD))
	test.ExpectEquality(t, m.Read8(0x1003), uint8(0xAA))

	m.Write16(0x1010, 0x1234)
	test.ExpectEquality(t, m.Read16(0x1010), uint16(0x1234))
}

func TestMemoryLoad(t *testing.T) {
	m := bus.NewMemory(0x1000, 0x10, false)
	ok := m.Load(0x1000, []byte{0x11, 0x22, 0x33, 0x44})
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, m.Read32(0x1000), uint32(0x44332211))

	ok = m.Load(0x1000, make([]byte, 0x20))
	test.ExpectFailure(t, ok)
}

func TestMemoryOutOfRange(t *testing.T) {
	m := bus.NewMemory(0x1000, 0x10, false)
	_, ok := m.Peek32(0x2000)
	test.ExpectFailure(t, ok)
	test.ExpectFailure(t, m.Poke32(0x2000, 0))
}

func TestMemoryBigEndian(t *testing.T) {
	m := bus.NewMemory(0, 0x10, true)
	m.Write32(0, 0xAABBCCDD)
	test.ExpectEquality(t, m.Read8(0), uint8(0xAA))
	test.ExpectEquality(t, m.Read8(3), uint8(0xDD))
}
