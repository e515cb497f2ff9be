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

// offset12 evaluates the offset field of a single data-transfer instruction:
// either a 12-bit immediate or a shifted register, per bit 25.
func offset12(c *Core, opcode uint32) uint32 {
	if opcode&(1<<25) == 0 {
		return opcode & 0xfff
	}
	rm := c.Regs.Get(int(opcode & 0xf))
	st := ShiftType((opcode >> 5) & 0x3)
	amount := (opcode >> 7) & 0x1f
	return shiftByImmediate(st, rm, amount, c.CPSR.C).value
}

func execLoadStoreWord(c *Core, opcode uint32) {
	pc := c.Regs.PC() - 8
	pre := opcode&(1<<24) != 0
	up := opcode&(1<<23) != 0
	byteAccess := opcode&(1<<22) != 0
	writeback := opcode&(1<<21) != 0
	load := opcode&(1<<20) != 0
	rn := (opcode >> 16) & 0xf
	rd := (opcode >> 12) & 0xf

	offs := offset12(c, opcode)
	// Rn==PC reads as the instruction's own address+8 (run.go's invariant),
	// exactly the architectural PC-relative base for LDR/STR; no further bias.
	base := c.Regs.Get(int(rn))

	var addr uint32
	if up {
		addr = base + offs
	} else {
		addr = base - offs
	}

	effective := base
	if pre {
		effective = addr
	}

	if load {
		var v uint32
		var err error
		if byteAccess {
			var b uint8
			b, err = c.readByte(effective)
			v = uint32(b)
		} else {
			v, err = c.readWordRotated(effective)
		}
		if err != nil {
			c.RaiseDataAbort(pc)
			return
		}
		if rd == rPC {
			c.setPCAndFlush(v &^ 3)
		} else {
			c.Regs.Set(int(rd), v)
		}
	} else {
		v := c.Regs.Get(int(rd))
		if rd == rPC {
			v += 4
		}
		var err error
		if byteAccess {
			err = c.writeByte(effective, uint8(v))
		} else {
			err = c.writeWord(effective, v)
		}
		if err != nil {
			c.RaiseDataAbort(pc)
			return
		}
	}

	if !pre || writeback {
		if rn != rPC {
			c.Regs.Set(int(rn), addr)
		}
	}
}

func execLoadStoreHalfwordSigned(c *Core, opcode uint32) {
	pc := c.Regs.PC() - 8
	pre := opcode&(1<<24) != 0
	up := opcode&(1<<23) != 0
	immForm := opcode&(1<<22) != 0
	writeback := opcode&(1<<21) != 0
	load := opcode&(1<<20) != 0
	rn := (opcode >> 16) & 0xf
	rd := (opcode >> 12) & 0xf
	sh := (opcode >> 5) & 0x3

	var offs uint32
	if immForm {
		offs = ((opcode >> 4) & 0xf0) | (opcode & 0xf)
	} else {
		offs = c.Regs.Get(int(opcode & 0xf))
	}

	base := c.Regs.Get(int(rn))
	var addr uint32
	if up {
		addr = base + offs
	} else {
		addr = base - offs
	}
	effective := base
	if pre {
		effective = addr
	}

	if load {
		var v uint32
		var err error
		switch sh {
		case 0x1: // unsigned halfword
			var h uint16
			h, err = c.readHalf(effective)
			v = uint32(h)
		case 0x2: // signed byte
			var b uint8
			b, err = c.readByte(effective)
			v = uint32(int32(int8(b)))
		case 0x3: // signed halfword
			var h uint16
			h, err = c.readHalf(effective)
			v = uint32(int32(int16(h)))
		}
		if err != nil {
			c.RaiseDataAbort(pc)
			return
		}
		c.Regs.Set(int(rd), v)
	} else {
		h := uint16(c.Regs.Get(int(rd)))
		if err := c.writeHalf(effective, h); err != nil {
			c.RaiseDataAbort(pc)
			return
		}
	}

	if !pre || writeback {
		if rn != rPC {
			c.Regs.Set(int(rn), addr)
		}
	}
}

func execLoadStoreMultiple(c *Core, opcode uint32) {
	pc := c.Regs.PC() - 8
	pre := opcode&(1<<24) != 0
	up := opcode&(1<<23) != 0
	sBit := opcode&(1<<22) != 0
	writeback := opcode&(1<<21) != 0
	load := opcode&(1<<20) != 0
	rn := (opcode >> 16) & 0xf
	list := opcode & 0xffff

	n := 0
	for i := uint(0); i < 16; i++ {
		if list&(1<<i) != 0 {
			n++
		}
	}

	base := c.Regs.Get(int(rn))
	var start uint32
	if up {
		start = base
	} else {
		start = base - uint32(n)*4
	}

	addr := start
	if up && pre {
		addr += 4
	} else if !up && !pre {
		addr += 4
	}

	userBank := sBit && (!load || list&(1<<rPC) == 0)

	for i := uint(0); i < 16; i++ {
		if list&(1<<i) == 0 {
			continue
		}
		if load {
			v, err := c.readWordRotated(addr)
			if err != nil {
				c.RaiseDataAbort(pc)
				return
			}
			if i == rPC {
				if sBit {
					if spsr, ok := c.Regs.SPSR(); ok {
						c.restoreCPSR(spsr)
					}
				}
				c.setPCAndFlush(v &^ 3)
			} else if userBank {
				c.Regs.SetUserRegister(int(i), v)
			} else {
				c.Regs.Set(int(i), v)
			}
		} else {
			var v uint32
			if userBank {
				v = c.Regs.UserRegister(int(i))
			} else {
				v = c.Regs.Get(int(i))
			}
			if i == rPC {
				v += 4
			}
			if err := c.writeWord(addr, v); err != nil {
				c.RaiseDataAbort(pc)
				return
			}
		}
		addr += 4
	}

	// Writeback is suppressed only when a load overwrites the base register
	// itself (rn in the list): the freshly loaded value already supersedes
	// any offset-updated base, architecturally. PC being in the list is
	// irrelevant to this unless rn==PC; a store always writes back regardless
	// of what's in the list.
	if writeback && (!load || list&(1<<rn) == 0) {
		var newBase uint32
		if up {
			newBase = base + uint32(n)*4
		} else {
			newBase = base - uint32(n)*4
		}
		c.Regs.Set(int(rn), newBase)
	}
}
