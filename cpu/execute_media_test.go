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

import (
	"testing"

	"github.com/silicontrip/armcore/test"
)

func TestExecSXTBSignExtendsByte(t *testing.T) {
	c := newTestCore()
	c.Regs.Set(0, 0x80)

	// SXTB r1, r0 (no rotate)
	opcode := uint32(0<<12) | 1<<12 | 0
	execSXTB(c, opcode)

	test.ExpectEquality(t, c.Regs.Get(1), uint32(0xffffff80))
}

func TestExecREVByteSwapsWord(t *testing.T) {
	c := newTestCore()
	c.Regs.Set(0, 0x12345678)

	opcode := uint32(1<<12) | 0
	execREV(c, opcode)

	test.ExpectEquality(t, c.Regs.Get(1), uint32(0x78563412))
}

func TestExecSSATClampsPositiveOverflowAndSetsQ(t *testing.T) {
	c := newTestCore()
	c.Regs.Set(0, 200) // 8-bit signed saturation: max 127

	// SSAT r1, #8 (sat field = 7, so sat+1=8), Rm=r0, no shift
	opcode := uint32(7<<16) | 1<<12 | 0
	execSSAT(c, opcode)

	test.ExpectEquality(t, c.Regs.Get(1), uint32(127))
	test.ExpectEquality(t, c.CPSR.Q, true)
}

func TestExecSSATNoSaturationLeavesQClear(t *testing.T) {
	c := newTestCore()
	c.Regs.Set(0, 10)

	opcode := uint32(7<<16) | 1<<12 | 0
	execSSAT(c, opcode)

	test.ExpectEquality(t, c.Regs.Get(1), uint32(10))
	test.ExpectEquality(t, c.CPSR.Q, false)
}

func TestExecBFIMergesSourceBitsIntoField(t *testing.T) {
	c := newTestCore()
	c.Regs.Set(0, 0xffffffff) // Rd, all ones before the merge
	c.Regs.Set(1, 0x3)        // Rn, source

	// BFI r0, r1, #4, #3  (lsb=4, width=3 -> msb=6)
	opcode := uint32(6<<16) | 0<<12 | 4<<7 | 1
	execBFI(c, opcode)

	// bits[6:4] replaced with 0b011, rest of Rd's 1s preserved
	test.ExpectEquality(t, c.Regs.Get(0), uint32(0xffffffbf))
}

func TestExecBFIAsBFCClearsFieldWithRnAllOnes(t *testing.T) {
	c := newTestCore()
	c.Regs.Set(0, 0xffffffff)

	// BFC r0, #4, #3 (Rn field = 0xf, the "no source register" marker)
	opcode := uint32(6<<16) | 0<<12 | 4<<7 | 0xf
	execBFI(c, opcode)

	test.ExpectEquality(t, c.Regs.Get(0), uint32(0xffffff8f))
}

func TestExecSBFXSignExtendsExtractedField(t *testing.T) {
	c := newTestCore()
	c.Regs.Set(0, 0xf0) // bits[7:4] = 1111, top bit of the 4-bit field is set

	// SBFX r1, r0, #4, #4 (lsb=4, widthM1=3 -> width=4)
	opcode := uint32(3<<16) | 1<<12 | 4<<7 | 0
	execSBFX(c, opcode)

	// extracted field 0b1111 sign-extends to -1, not -16
	test.ExpectEquality(t, c.Regs.Get(1), uint32(0xffffffff))
}

func TestExecUBFXZeroExtendsExtractedField(t *testing.T) {
	c := newTestCore()
	c.Regs.Set(0, 0xf0)

	// UBFX r1, r0, #4, #4
	opcode := uint32(3<<16) | 1<<12 | 4<<7 | 0
	execUBFX(c, opcode)

	test.ExpectEquality(t, c.Regs.Get(1), uint32(0xf))
}

func TestExecMOVWLoadsImmediate16(t *testing.T) {
	c := newTestCore()

	// MOVW r0, #0x1234 (imm4=0x1 at bits[19:16], imm12=0x234 at bits[11:0])
	opcode := uint32(0x1<<16) | 0x234
	execMOVW(c, opcode)

	test.ExpectEquality(t, c.Regs.Get(0), uint32(0x1234))
}

func TestExecMOVTSetsUpperHalfPreservingLower(t *testing.T) {
	c := newTestCore()
	c.Regs.Set(0, 0x0000abcd)

	// MOVT r0, #0x1234
	opcode := uint32(0x1<<16) | 0x234
	execMOVT(c, opcode)

	test.ExpectEquality(t, c.Regs.Get(0), uint32(0x1234abcd))
}

func TestExecCPSDisablesInterrupts(t *testing.T) {
	c := newTestCore()
	c.Regs.SwitchMode(ModeSVC)
	c.CPSR.Mode = ModeSVC
	c.CPSR.I = false
	c.CPSR.F = false

	// CPSID if: imod=11 (disable), affectI, affectF
	opcode := uint32(0x3<<18) | 1<<7 | 1<<6
	execCPS(c, opcode)

	test.ExpectEquality(t, c.CPSR.I, true)
	test.ExpectEquality(t, c.CPSR.F, true)
}

func TestExecCPSIsNoOpInUserMode(t *testing.T) {
	c := newTestCore()
	c.Regs.SwitchMode(ModeUser)
	c.CPSR.Mode = ModeUser
	c.CPSR.I = false

	opcode := uint32(0x3<<18) | 1<<7
	execCPS(c, opcode)

	test.ExpectEquality(t, c.CPSR.I, false)
}

func TestExecCLREXClearsExclusiveMonitor(t *testing.T) {
	c := newTestCore()
	c.markExclusive(0x100)
	test.ExpectEquality(t, c.checkExclusive(0x100), true)

	c.markExclusive(0x100)
	execCLREX(c, 0)
	test.ExpectEquality(t, c.checkExclusive(0x100), false)
}
