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

// every coprocessor-space instruction funnels to Core.Cop; with no
// coprocessor attached (Cop == nil) they are all UNDEFINED, matching real
// silicon with the coprocessor interface fused off.

func execCoprocessorDataOp(c *Core, opcode uint32) {
	pc := c.Regs.PC() - 8
	if c.Cop == nil {
		c.RaiseUndefined(pc)
		return
	}
	cp := uint8((opcode >> 8) & 0xf)
	opc1 := uint8((opcode >> 20) & 0xf)
	crn := uint8((opcode >> 16) & 0xf)
	crd := uint8((opcode >> 12) & 0xf)
	crm := uint8(opcode & 0xf)
	opc2 := uint8((opcode >> 5) & 0x7)

	if err := c.Cop.CDP(cp, opc1, crd, crn, crm, opc2); err != nil {
		c.RaiseUndefined(pc)
	}
}

func execCoprocessorRegTransfer(c *Core, opcode uint32) {
	pc := c.Regs.PC() - 8
	if c.Cop == nil {
		c.RaiseUndefined(pc)
		return
	}
	load := opcode&(1<<20) != 0
	cp := uint8((opcode >> 8) & 0xf)
	opc1 := uint8((opcode >> 21) & 0x7)
	crn := uint8((opcode >> 16) & 0xf)
	rd := (opcode >> 12) & 0xf
	crm := uint8(opcode & 0xf)
	opc2 := uint8((opcode >> 5) & 0x7)

	if load {
		v, err := c.Cop.MRC(cp, opc1, crn, crm, opc2)
		if err != nil {
			c.RaiseUndefined(pc)
			return
		}
		if rd == rPC {
			c.CPSR.N = v&(1<<31) != 0
			c.CPSR.Z = v&(1<<30) != 0
			c.CPSR.C = v&(1<<29) != 0
			c.CPSR.V = v&(1<<28) != 0
			return
		}
		c.Regs.Set(int(rd), v)
		return
	}

	v := c.Regs.Get(int(rd))
	if err := c.Cop.MCR(cp, opc1, crn, crm, opc2, v); err != nil {
		c.RaiseUndefined(pc)
	}
}

// execCoprocessorDoubleOrTransfer covers LDC/STC (the generic bits[27:25]
// == 110 class) and, on v6, MRRC/MCRR which alias the same top-level
// bits but with bit4 set and a register operand pair instead of a memory
// operand.
func execCoprocessorDoubleOrTransfer(c *Core, opcode uint32) {
	pc := c.Regs.PC() - 8
	if c.Cop == nil {
		c.RaiseUndefined(pc)
		return
	}

	if opcode&(1<<4) != 0 && c.Chip.Arch.V6 {
		execMRRCOrMCRR(c, opcode, pc)
		return
	}

	load := opcode&(1<<20) != 0
	cp := uint8((opcode >> 8) & 0xf)
	crd := uint8((opcode >> 12) & 0xf)
	rn := (opcode >> 16) & 0xf
	pre := opcode&(1<<24) != 0
	up := opcode&(1<<23) != 0
	writeback := opcode&(1<<21) != 0
	offs := (opcode & 0xff) << 2

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

	var accessErr error
	cursor := effective
	if load {
		accessErr = c.Cop.LDC(cp, crd, func() (uint32, error) {
			v, err := c.readWordRotated(cursor)
			cursor += 4
			return v, err
		})
	} else {
		accessErr = c.Cop.STC(cp, crd, func(v uint32) error {
			err := c.writeWord(cursor, v)
			cursor += 4
			return err
		})
	}
	if accessErr != nil {
		c.RaiseUndefined(pc)
		return
	}

	if !pre || writeback {
		if rn != rPC {
			c.Regs.Set(int(rn), addr)
		}
	}
}

func execMRRCOrMCRR(c *Core, opcode uint32, pc uint32) {
	load := opcode&(1<<20) != 0
	cp := uint8((opcode >> 8) & 0xf)
	opc1 := uint8((opcode >> 4) & 0xf)
	rd := (opcode >> 12) & 0xf
	rn := (opcode >> 16) & 0xf
	crm := uint8(opcode & 0xf)

	if load {
		lo, hi, err := c.Cop.MRRC(cp, opc1, crm)
		if err != nil {
			c.RaiseUndefined(pc)
			return
		}
		c.Regs.Set(int(rd), lo)
		c.Regs.Set(int(rn), hi)
		return
	}

	lo := c.Regs.Get(int(rd))
	hi := c.Regs.Get(int(rn))
	if err := c.Cop.MCRR(cp, opc1, crm, lo, hi); err != nil {
		c.RaiseUndefined(pc)
	}
}
