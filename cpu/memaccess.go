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

package cpu

// every exec*.go file funnels its loads and stores through these helpers so
// that MMU translation only needs to be dealt with in one place. The
// exclusive-access monitor is not consulted here.

func (c *Core) readByte(vaddr uint32) (uint8, error) {
	paddr, err := c.translate(vaddr, 1, false, false)
	if err != nil {
		return 0, err
	}
	return c.Bus.Read8(paddr), nil
}

func (c *Core) writeByte(vaddr uint32, v uint8) error {
	paddr, err := c.translate(vaddr, 1, true, false)
	if err != nil {
		return err
	}
	c.Bus.Write8(paddr, v)
	return nil
}

// readHalf passes the raw, possibly-misaligned vaddr to translate so CP15's
// alignment-fault-enable bit can see it; only once translate has approved
// the access (or there is no MMU to check it) does the address get masked
// down to the halfword boundary for the actual bus read.
func (c *Core) readHalf(vaddr uint32) (uint16, error) {
	paddr, err := c.translate(vaddr, 2, false, false)
	if err != nil {
		return 0, err
	}
	return c.Bus.Read16(paddr &^ 1), nil
}

func (c *Core) writeHalf(vaddr uint32, v uint16) error {
	paddr, err := c.translate(vaddr, 2, true, false)
	if err != nil {
		return err
	}
	c.Bus.Write16(paddr&^1, v)
	return nil
}

// readWordRotated performs an aligned word read, and for a misaligned
// address with alignment-fault-enable clear applies the architectural LDR
// rotate: the word is still fetched from the word-aligned address, then
// rotated right by 8*(addr&3). This matches pre-v6 unaligned-access
// behaviour; a v6 core with unaligned access enabled in CP15 would instead
// read the natural bytes, which this interpreter does not model. translate
// sees the raw vaddr first, so with alignment-fault-enable set a misaligned
// address faults here instead of ever reaching the rotate.
func (c *Core) readWordRotated(vaddr uint32) (uint32, error) {
	paddr, err := c.translate(vaddr, 4, false, false)
	if err != nil {
		return 0, err
	}
	v := c.Bus.Read32(paddr &^ 3)
	rot := (vaddr & 3) * 8
	if rot != 0 {
		v = rotateRight(v, rot)
	}
	return v, nil
}

func (c *Core) writeWord(vaddr uint32, v uint32) error {
	paddr, err := c.translate(vaddr, 4, true, false)
	if err != nil {
		return err
	}
	c.Bus.Write32(paddr&^3, v)
	return nil
}

func (c *Core) fetch(vaddr uint32) (uint32, error) {
	paddr, err := c.translate(vaddr, 4, false, true)
	if err != nil {
		return 0, err
	}
	return c.Bus.Read32(paddr), nil
}

func (c *Core) fetchThumb(vaddr uint32) (uint16, error) {
	paddr, err := c.translate(vaddr, 2, false, true)
	if err != nil {
		return 0, err
	}
	return c.Bus.Read16(paddr), nil
}
