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

// These exercise the Thumb branch-target math directly against the
// fetchAddr+4 bias run.go's stepThumb leaves in place during execution,
// staying in Thumb state throughout (the PC write must land +4-biased, not
// the ARM-state +8).

func TestExecuteThumbUnconditionalBranchStaysThumbBiased(t *testing.T) {
	c := newTestCore()
	c.CPSR.T = true
	c.Regs.SetPC(0x2004) // fetchAddr 0x2000, +4 bias

	// B #8 forward: 11-bit signed offset field = 4 (value*2 = 8)
	executeThumbUnconditionalBranch(c, uint16(0x004))

	test.ExpectEquality(t, c.CPSR.T, true)
	test.ExpectEquality(t, c.Regs.PC(), uint32(0x200C+4))
}

func TestExecuteThumbUnconditionalBranchBackward(t *testing.T) {
	c := newTestCore()
	c.CPSR.T = true
	c.Regs.SetPC(0x3004)

	// offset field = 0x7fe represents -2 in 11-bit two's complement (value*2 = -4)
	executeThumbUnconditionalBranch(c, uint16(0x7fe))

	test.ExpectEquality(t, c.Regs.PC(), uint32(0x3000+4))
}

func TestExecuteThumbConditionalBranchTakenWhenConditionHolds(t *testing.T) {
	c := newTestCore()
	c.CPSR.T = true
	c.CPSR.Z = true
	c.Regs.SetPC(0x4004)

	// BEQ #4: cond=0x0 (EQ), offset byte = 2 (value*2=4)
	opcode := uint16(0x0<<8) | 0x02
	executeThumbConditionalBranch(c, opcode)

	test.ExpectEquality(t, c.Regs.PC(), uint32(0x4008+4))
}

func TestExecuteThumbConditionalBranchNotTakenWhenConditionFails(t *testing.T) {
	c := newTestCore()
	c.CPSR.T = true
	c.CPSR.Z = false
	c.Regs.SetPC(0x4004)

	opcode := uint16(0x0<<8) | 0x02
	executeThumbConditionalBranch(c, opcode)

	test.ExpectEquality(t, c.Regs.PC(), uint32(0x4004)) // untouched
}

func TestExecuteThumbConditionalBranchSWIRaisesAtOwnAddress(t *testing.T) {
	c := newTestCore()
	c.CPSR.T = true
	c.Regs.SetPC(0x5004) // halfword at 0x5000

	opcode := uint16(0xf<<8) | 0x00
	executeThumbConditionalBranch(c, opcode)

	test.ExpectEquality(t, c.Regs.Mode(), ModeSVC)
	test.ExpectEquality(t, c.Regs.Get(rLR), uint32(0x5004))
}

func TestExecuteThumbLongBranchWithLinkBothHalves(t *testing.T) {
	c := newTestCore()
	c.CPSR.T = true
	c.Regs.SetPC(0x6004) // first halfword at 0x6000

	// first half (H=0): offset11 encodes bits[22:12] of a forward displacement
	executeThumbLongBranchWithLink(c, uint16(0x001))

	c.Regs.SetPC(0x6006) // second halfword at 0x6002, +4 bias
	// second half (H=1): offset11 = 0, target = LR + 0
	executeThumbLongBranchWithLink(c, uint16(1<<11))

	test.ExpectEquality(t, c.CPSR.T, true)
	// LR after the second half is (nextInstr | 1), nextInstr = 0x6006-2 = 0x6004
	test.ExpectEquality(t, c.Regs.Get(rLR), uint32(0x6004|1))
	test.ExpectEquality(t, c.Regs.PC(), uint32(0x7004+4))
}

func TestRewritePCRelativeLoadTargetsRn15(t *testing.T) {
	word := rewritePCRelativeLoad(uint16(0x0801)) // LDR r0, [PC, #4]
	rn := (word >> 16) & 0xf
	test.ExpectEquality(t, rn, uint32(rPC))
	imm := word & 0xfff
	test.ExpectEquality(t, imm, uint32(4))
}

func TestRewriteHiRegisterOpsBX(t *testing.T) {
	// BX r1 (H1=0, H2=0, op=3, Rs=1)
	word := rewriteHiRegisterOps(uint16(0x3<<8 | 1<<3))
	rm := word & 0xf
	test.ExpectEquality(t, rm, uint32(1))
}
