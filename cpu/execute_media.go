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

// v6 media instructions occupy the 0110/0111 op1 space that pre-v6 cores
// leave UNDEFINED. This file covers the representative subset this module
// targets: the extend family (with optional rotate), REV/REV16/REVSH, the
// saturating arithmetic pair, bitfield extract/insert/clear, and CPS/CLREX.
// decode.go's dispatch table is shared by every chip profile and routes
// these encodings here (the 0110/0111 op1 space with bit4 set, and the
// MOVW/MOVT holes at opcode[27:20] 0x30/0x34) without checking
// Chip.Arch.V6, so a v4/v5 profile executes them as well instead of taking
// UNDEFINED. CPS and CLREX are the exception: run.go only reaches them on a
// v6 profile.

func execSXTB(c *Core, opcode uint32) {
	rd := (opcode >> 12) & 0xf
	rm := c.Regs.Get(int(opcode & 0xf))
	rot := ((opcode >> 10) & 0x3) * 8
	v := rotateRight(rm, rot) & 0xff
	c.Regs.Set(int(rd), uint32(int32(int8(v))))
}

func execSXTH(c *Core, opcode uint32) {
	rd := (opcode >> 12) & 0xf
	rm := c.Regs.Get(int(opcode & 0xf))
	rot := ((opcode >> 10) & 0x3) * 8
	v := rotateRight(rm, rot) & 0xffff
	c.Regs.Set(int(rd), uint32(int32(int16(v))))
}

func execUXTB(c *Core, opcode uint32) {
	rd := (opcode >> 12) & 0xf
	rm := c.Regs.Get(int(opcode & 0xf))
	rot := ((opcode >> 10) & 0x3) * 8
	c.Regs.Set(int(rd), rotateRight(rm, rot)&0xff)
}

func execUXTH(c *Core, opcode uint32) {
	rd := (opcode >> 12) & 0xf
	rm := c.Regs.Get(int(opcode & 0xf))
	rot := ((opcode >> 10) & 0x3) * 8
	c.Regs.Set(int(rd), rotateRight(rm, rot)&0xffff)
}

func execREV(c *Core, opcode uint32) {
	rd := (opcode >> 12) & 0xf
	rm := c.Regs.Get(int(opcode & 0xf))
	v := (rm&0xff)<<24 | (rm&0xff00)<<8 | (rm&0xff0000)>>8 | (rm&0xff000000)>>24
	c.Regs.Set(int(rd), v)
}

func execREV16(c *Core, opcode uint32) {
	rd := (opcode >> 12) & 0xf
	rm := c.Regs.Get(int(opcode & 0xf))
	lo := (rm&0xff)<<8 | (rm&0xff00)>>8
	hi := (rm&0xff0000)<<8 | (rm&0xff000000)>>8
	c.Regs.Set(int(rd), (hi&0xffff0000)|(lo&0xffff))
}

func execREVSH(c *Core, opcode uint32) {
	rd := (opcode >> 12) & 0xf
	rm := c.Regs.Get(int(opcode & 0xf))
	swapped := (rm&0xff)<<8 | (rm&0xff00)>>8
	c.Regs.Set(int(rd), uint32(int32(int16(swapped))))
}

func saturateSigned(v int64, bits uint) (uint32, bool) {
	max := int64(1)<<(bits-1) - 1
	min := -(int64(1) << (bits - 1))
	if v > max {
		return uint32(max), true
	}
	if v < min {
		return uint32(int32(min)), true
	}
	return uint32(int32(v)), false
}

func execSSAT(c *Core, opcode uint32) {
	rd := (opcode >> 12) & 0xf
	sat := (opcode>>16)&0x1f + 1
	rm := c.Regs.Get(int(opcode & 0xf))
	shiftImm := (opcode >> 7) & 0x1f
	asr := opcode&(1<<6) != 0

	var v int32
	if asr {
		amt := shiftImm
		if amt == 0 {
			amt = 32
		}
		v = int32(rm) >> amt
	} else {
		v = int32(rm) << shiftImm
	}

	result, q := saturateSigned(int64(v), uint(sat))
	c.Regs.Set(int(rd), result)
	if q {
		c.CPSR.Q = true
	}
}

// execBFI covers both BFI and BFC: the dispatch table can't tell them apart
// since opcode[3:0] (Rn) isn't part of the dispatch index, so BFC's all-ones
// Rn field (no source register, clear only) is checked here instead.
func execBFI(c *Core, opcode uint32) {
	rd := (opcode >> 12) & 0xf
	rn := opcode & 0xf
	msb := (opcode >> 16) & 0x1f
	lsb := (opcode >> 7) & 0x1f
	if msb < lsb {
		return
	}
	width := msb - lsb + 1
	mask := ((uint32(1) << width) - 1) << lsb
	if rn == 0xf {
		c.Regs.Set(int(rd), c.Regs.Get(int(rd))&^mask)
		return
	}
	src := (c.Regs.Get(int(rn)) << lsb) & mask
	v := (c.Regs.Get(int(rd)) &^ mask) | src
	c.Regs.Set(int(rd), v)
}

func execSBFX(c *Core, opcode uint32) {
	rd := (opcode >> 12) & 0xf
	rn := opcode & 0xf
	lsb := (opcode >> 7) & 0x1f
	widthM1 := (opcode >> 16) & 0x1f
	width := widthM1 + 1
	v := c.Regs.Get(int(rn))
	shifted := int32(v<<(32-lsb-width)) >> (32 - width)
	c.Regs.Set(int(rd), uint32(shifted))
}

func execUBFX(c *Core, opcode uint32) {
	rd := (opcode >> 12) & 0xf
	rn := opcode & 0xf
	lsb := (opcode >> 7) & 0x1f
	widthM1 := (opcode >> 16) & 0x1f
	width := widthM1 + 1
	v := c.Regs.Get(int(rn))
	shifted := (v << (32 - lsb - width)) >> (32 - width)
	c.Regs.Set(int(rd), shifted)
}

func execMOVW(c *Core, opcode uint32) {
	rd := (opcode >> 12) & 0xf
	imm := ((opcode>>4)&0xf000) | (opcode & 0xfff)
	c.Regs.Set(int(rd), imm)
}

func execMOVT(c *Core, opcode uint32) {
	rd := (opcode >> 12) & 0xf
	imm := ((opcode>>4)&0xf000) | (opcode & 0xfff)
	v := c.Regs.Get(int(rd))
	c.Regs.Set(int(rd), (v&0xffff)|(imm<<16))
}

// execCPS changes the I/F mask bits (and optionally the mode) without going
// through SPSR; privileged-mode only, a User-mode CPS is UNPREDICTABLE and
// treated here as a no-op.
func execCPS(c *Core, opcode uint32) {
	if c.Regs.Mode() == ModeUser {
		return
	}
	imod := (opcode >> 18) & 0x3
	affectA := opcode&(1<<8) != 0
	affectI := opcode&(1<<7) != 0
	affectF := opcode&(1<<6) != 0
	changeMode := opcode&(1<<17) != 0
	newMode := Mode(opcode & 0x1f)

	if imod == 0x3 || imod == 0x2 {
		enable := imod == 0x2
		if affectA {
			c.CPSR.A = !enable
		}
		if affectI {
			c.CPSR.I = !enable
		}
		if affectF {
			c.CPSR.F = !enable
		}
	}
	if changeMode {
		c.Regs.SwitchMode(newMode)
		c.CPSR.Mode = newMode
	}
}

func execCLREX(c *Core, opcode uint32) {
	c.clearExclusiveAll()
}
