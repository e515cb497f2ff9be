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

// Thumb execution rewrites each 16-bit instruction into the equivalent
// 32-bit ARM encoding and hands it to the same decodeAndExecute path used
// for the ARM instruction set, rather than maintaining a second complete
// set of execute routines. Working backwards through the format table (the
// order this lineage's decoder already uses), narrowest match first.

// executeThumb decodes and executes one Thumb instruction. While it runs,
// Regs.PC() reads as the address the halfword was fetched from plus 4.
func executeThumb(c *Core, opcode uint16) {
	switch {
	case opcode&0xf800 == 0xf000:
		executeThumbLongBranchWithLink(c, opcode)
	case opcode&0xf800 == 0xe000:
		executeThumbUnconditionalBranch(c, opcode)
	case opcode&0xff00 == 0xdf00:
		decodeAndExecute(c, 0xef000000|uint32(opcode&0xff))
	case opcode&0xf000 == 0xd000:
		executeThumbConditionalBranch(c, opcode)
	case opcode&0xf000 == 0xc000:
		decodeAndExecute(c, rewriteMultipleLoadStore(opcode))
	case opcode&0xf600 == 0xb400:
		decodeAndExecute(c, rewritePushPop(opcode))
	case opcode&0xff00 == 0xb000:
		decodeAndExecute(c, rewriteAddOffsetToSP(opcode))
	case opcode&0xf000 == 0xa000:
		decodeAndExecute(c, rewriteLoadAddress(opcode))
	case opcode&0xf000 == 0x9000:
		decodeAndExecute(c, rewriteSPRelativeLoadStore(opcode))
	case opcode&0xf000 == 0x8000:
		decodeAndExecute(c, rewriteLoadStoreHalfword(opcode))
	case opcode&0xe000 == 0x6000:
		decodeAndExecute(c, rewriteLoadStoreImmediate(opcode))
	case opcode&0xf200 == 0x5200:
		decodeAndExecute(c, rewriteLoadStoreSignExtended(opcode))
	case opcode&0xf200 == 0x5000:
		decodeAndExecute(c, rewriteLoadStoreRegisterOffset(opcode))
	case opcode&0xf800 == 0x4800:
		decodeAndExecute(c, rewritePCRelativeLoad(opcode))
	case opcode&0xfc00 == 0x4400:
		decodeAndExecute(c, rewriteHiRegisterOps(opcode))
	case opcode&0xfc00 == 0x4000:
		decodeAndExecute(c, rewriteALUOperation(opcode))
	case opcode&0xe000 == 0x2000:
		decodeAndExecute(c, rewriteMoveCompareAddSubtractImm(opcode))
	case opcode&0xf800 == 0x1800:
		decodeAndExecute(c, rewriteAddSubtract(opcode))
	case opcode&0xe000 == 0x0000:
		decodeAndExecute(c, rewriteMoveShiftedRegister(opcode))
	default:
		c.RaiseUndefined(c.Regs.PC() - 4)
	}
}

const cAL = 0xe << 28

func rewriteMoveShiftedRegister(opcode uint16) uint32 {
	op := (opcode >> 11) & 0x3
	offs := (opcode >> 6) & 0x1f
	rs := (opcode >> 3) & 0x7
	rd := opcode & 0x7
	return cAL | 1<<24 /* S */ | uint32(opMOV)<<21 | uint32(rd)<<12 | uint32(offs)<<7 | uint32(op)<<5 | uint32(rs)
}

func rewriteAddSubtract(opcode uint16) uint32 {
	immFlag := opcode&(1<<10) != 0
	sub := opcode&(1<<9) != 0
	rnOrImm := uint32((opcode >> 6) & 0x7)
	rs := uint32((opcode >> 3) & 0x7)
	rd := uint32(opcode & 0x7)

	op := uint32(opADD)
	if sub {
		op = opSUB
	}
	word := cAL | 1<<20 /* S */ | op<<21 | rs<<16 | rd<<12
	if immFlag {
		word |= 1 << 25
		word |= rnOrImm
	} else {
		word |= rnOrImm
	}
	return word
}

func rewriteMoveCompareAddSubtractImm(opcode uint16) uint32 {
	op := (opcode >> 11) & 0x3
	rd := uint32((opcode >> 8) & 0x7)
	imm := uint32(opcode & 0xff)

	var aluOp uint32
	switch op {
	case 0:
		aluOp = opMOV
	case 1:
		aluOp = opCMP
	case 2:
		aluOp = opADD
	case 3:
		aluOp = opSUB
	}
	word := cAL | 1<<25 | 1<<20 | aluOp<<21 | rd<<16 | rd<<12 | imm
	if op == 1 {
		word = cAL | 1<<25 | 1<<20 | aluOp<<21 | rd<<16 | imm
	}
	return word
}

var thumbALUToARM = [16]uint32{
	opAND, opEOR, opMOV /*LSL via shift-reg, handled by caller*/, opMOV,
	opMOV, opADC, opSBC, opMOV,
	opTST, opRSB /*NEG*/, opCMP, opCMN,
	opORR, opMOV /*MUL handled separately*/, opBIC, opMVN,
}

func rewriteALUOperation(opcode uint16) uint32 {
	op := (opcode >> 6) & 0xf
	rs := uint32((opcode >> 3) & 0x7)
	rd := uint32(opcode & 0x7)

	switch op {
	case 0x2, 0x3, 0x4, 0x7: // LSL, LSR, ASR, ROR by register
		var st ShiftType
		switch op {
		case 0x2:
			st = ShiftLSL
		case 0x3:
			st = ShiftLSR
		case 0x4:
			st = ShiftASR
		case 0x7:
			st = ShiftROR
		}
		return cAL | 1<<20 | opMOV<<21 | rd<<12 | rs<<8 | uint32(st)<<5 | 1<<4 | rd
	case 0x9: // NEG Rd, Rs  ==  RSB Rd, Rs, #0
		return cAL | 1<<25 | 1<<20 | opRSB<<21 | rs<<16 | rd<<12
	case 0xd: // MUL Rd, Rs
		return cAL | 1<<20 | rd<<16 | rd<<8 | 0x9<<4 | rs
	default:
		aluOp := thumbALUToARM[op]
		return cAL | 1<<20 | aluOp<<21 | rd<<16 | rd<<12 | rs
	}
}

func rewriteHiRegisterOps(opcode uint16) uint32 {
	op := (opcode >> 8) & 0x3
	h1 := opcode&(1<<7) != 0
	h2 := opcode&(1<<6) != 0
	rs := uint32((opcode >> 3) & 0x7)
	if h2 {
		rs += 8
	}
	rd := uint32(opcode & 0x7)
	if h1 {
		rd += 8
	}

	switch op {
	case 0: // ADD
		return cAL | opADD<<21 | rd<<16 | rd<<12 | rs
	case 1: // CMP
		return cAL | 1<<20 | opCMP<<21 | rd<<16 | rs
	case 2: // MOV
		return cAL | opMOV<<21 | rd<<12 | rs
	default: // BX / BLX
		link := uint32(0)
		if h1 {
			link = 1 << 5
		}
		return cAL | 0x12<<20 | 0xfff<<8 | link<<0 | 1<<4 | rs
	}
}

func rewritePCRelativeLoad(opcode uint16) uint32 {
	rd := uint32((opcode >> 8) & 0x7)
	imm := uint32(opcode&0xff) << 2
	return cAL | 1<<26 | 1<<24 | 1<<23 | 1<<20 | uint32(rPC)<<16 | rd<<12 | imm
}

func rewriteLoadStoreRegisterOffset(opcode uint16) uint32 {
	load := opcode&(1<<11) != 0
	byteAccess := opcode&(1<<10) != 0
	ro := uint32((opcode >> 6) & 0x7)
	rb := uint32((opcode >> 3) & 0x7)
	rd := uint32(opcode & 0x7)

	word := cAL | 1<<26 | 1<<25 | 1<<24 | 1<<23 | rb<<16 | rd<<12 | ro
	if load {
		word |= 1 << 20
	}
	if byteAccess {
		word |= 1 << 22
	}
	return word
}

func rewriteLoadStoreSignExtended(opcode uint16) uint32 {
	hFlag := opcode&(1<<11) != 0
	sFlag := opcode&(1<<10) != 0
	ro := uint32((opcode >> 6) & 0x7)
	rb := uint32((opcode >> 3) & 0x7)
	rd := uint32(opcode & 0x7)

	var sh uint32
	load := true
	switch {
	case !sFlag && !hFlag: // STRH
		sh = 0x1
		load = false
	case !sFlag && hFlag: // LDRH
		sh = 0x1
	case sFlag && !hFlag: // LDSB
		sh = 0x2
	default: // LDSH
		sh = 0x3
	}
	word := cAL | 1<<24 | 1<<23 | rb<<16 | rd<<12 | sh<<5 | 1<<4 | ro
	if load {
		word |= 1 << 20
	}
	return word
}

func rewriteLoadStoreImmediate(opcode uint16) uint32 {
	byteAccess := opcode&(1<<12) != 0
	load := opcode&(1<<11) != 0
	offs := uint32((opcode >> 6) & 0x1f)
	rb := uint32((opcode >> 3) & 0x7)
	rd := uint32(opcode & 0x7)
	if !byteAccess {
		offs <<= 2
	}

	word := cAL | 1<<26 | 1<<24 | 1<<23 | rb<<16 | rd<<12 | offs
	if load {
		word |= 1 << 20
	}
	if byteAccess {
		word |= 1 << 22
	}
	return word
}

func rewriteLoadStoreHalfword(opcode uint16) uint32 {
	load := opcode&(1<<11) != 0
	offs := uint32((opcode>>6)&0x1f) << 1
	rb := uint32((opcode >> 3) & 0x7)
	rd := uint32(opcode & 0x7)

	imm4l := offs & 0xf
	imm4h := (offs >> 4) & 0xf
	word := cAL | 1<<24 | 1<<23 | rb<<16 | rd<<12 | imm4h<<8 | 1<<5 /*H*/ | 1<<4 | imm4l
	if load {
		word |= 1 << 20
	}
	return word
}

func rewriteSPRelativeLoadStore(opcode uint16) uint32 {
	load := opcode&(1<<11) != 0
	rd := uint32((opcode >> 8) & 0x7)
	imm := uint32(opcode&0xff) << 2

	word := cAL | 1<<26 | 1<<24 | 1<<23 | uint32(rSP)<<16 | rd<<12 | imm
	if load {
		word |= 1 << 20
	}
	return word
}

func rewriteLoadAddress(opcode uint16) uint32 {
	sp := opcode&(1<<11) != 0
	rd := uint32((opcode >> 8) & 0x7)
	imm := uint32(opcode&0xff) << 2

	rn := uint32(rPC)
	if sp {
		rn = rSP
	}
	return cAL | 1<<25 | opADD<<21 | rn<<16 | rd<<12 | imm
}

func rewriteAddOffsetToSP(opcode uint16) uint32 {
	negative := opcode&(1<<7) != 0
	imm := uint32(opcode&0x7f) << 2

	op := uint32(opADD)
	if negative {
		op = opSUB
	}
	return cAL | 1<<25 | op<<21 | uint32(rSP)<<16 | uint32(rSP)<<12 | imm
}

func rewritePushPop(opcode uint16) uint32 {
	load := opcode&(1<<11) != 0
	pclrBit := opcode&(1<<8) != 0
	list := uint32(opcode & 0xff)

	if pclrBit {
		if load {
			list |= 1 << 15 // PC
		} else {
			list |= 1 << 14 // LR
		}
	}

	word := cAL | 1<<27 | uint32(rSP)<<16 | list | 1<<21 /* writeback */
	if load {
		word |= 1<<20 | 1<<23 // LDMIA
	} else {
		word |= 1 << 24 // STMDB
	}
	return word
}

func rewriteMultipleLoadStore(opcode uint16) uint32 {
	load := opcode&(1<<11) != 0
	rb := uint32((opcode >> 8) & 0x7)
	list := uint32(opcode & 0xff)

	word := cAL | 1<<27 | 1<<23 /* IA */ | 1<<21 /* writeback */ | rb<<16 | list
	if load {
		word |= 1 << 20
	}
	return word
}

// executeThumbConditionalBranch and executeThumbLongBranchWithLink are
// applied directly rather than rewritten, since their PC-relative offset
// arithmetic uses the halfword's own address rather than the ARM B/BL
// encoding's word-aligned +8 bias.
func executeThumbConditionalBranch(c *Core, opcode uint16) {
	cond := uint8((opcode >> 8) & 0xf)
	if cond == 0xf {
		c.RaiseSWI(c.Regs.PC() - 4)
		return
	}
	if !c.CPSR.Condition(cond) {
		return
	}
	// c.Regs.PC() reads as this halfword's own address+4 (run.go's Thumb
	// invariant), the bias the Thumb branch-target formula is defined
	// against, so the target is pc+offset with no further fixup.
	offset := int32(int8(opcode&0xff)) * 2
	c.setPCAndFlush(uint32(int32(c.Regs.PC()) + offset))
}

func executeThumbUnconditionalBranch(c *Core, opcode uint16) {
	offset := (int32(opcode&0x7ff) << 21) >> 20 // sign-extend 11 bits, x2
	c.setPCAndFlush(uint32(int32(c.Regs.PC()) + offset))
}

// executeThumbLongBranchWithLink covers both halves (H=0 sets LR to the
// target's high bits, H=1 computes the final target using the LR staged by
// the first half and links back to the instruction after this one).
func executeThumbLongBranchWithLink(c *Core, opcode uint16) {
	high := opcode&(1<<11) != 0
	offset11 := uint32(opcode & 0x7ff)

	if !high {
		signExt := int32(offset11<<21) >> 9 // bits[10:0] sign-extended, <<12
		lr := uint32(int32(c.Regs.PC()) + signExt)
		c.Regs.Set(rLR, lr)
		return
	}

	target := c.Regs.Get(rLR) + (offset11 << 1)
	nextInstr := c.Regs.PC() - 2
	c.Regs.Set(rLR, nextInstr|1)
	c.setPCAndFlush(target)
}
