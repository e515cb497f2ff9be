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
	"context"
	"testing"

	"github.com/silicontrip/armcore/test"
)

// These drive the real fetch/decode/execute/advance loop (step, via Run)
// rather than calling exec*.go routines directly, to exercise run.go's PC
// bookkeeping end to end.

func TestStepARMAdvancesPCByFour(t *testing.T) {
	c := newTestCore()

	// MOV r0, #5 at address 0
	opcode := uint32(cAL) | 1<<25 | opMOV<<21 | 0<<12 | 5
	c.Bus.Write32(0, opcode)

	c.step()

	test.ExpectEquality(t, c.Regs.Get(0), uint32(5))
	test.ExpectEquality(t, c.Regs.PC(), uint32(0+4+8)) // fetchAddr 0, next entry bias 4+8
}

// Regression for the PC pre-advance bug: a forward B at address 0 must land
// on pc(fetchAddr+8) + imm, not four bytes short or long.
func TestStepARMBranchLandsOnArchitecturalTarget(t *testing.T) {
	c := newTestCore()

	// B #64 (word offset 0x10) at address 0
	opcode := uint32(cAL) | 0xa<<24 | 0x10
	c.Bus.Write32(0, opcode)

	c.step()

	test.ExpectEquality(t, c.Regs.PC(), uint32(8+64+8))
}

// Regression for the PC pre-advance bug: LDR Rd,[PC,#imm] must read from
// fetchAddr+8+imm, the architectural literal-pool address.
func TestStepARMLoadPCRelativeLiteral(t *testing.T) {
	c := newTestCore()

	// LDR r0, [PC, #4] at address 0: base reads as 0+8, literal at 0+8+4=12
	opcode := uint32(cAL) | 1<<26 | 1<<24 | 1<<23 | 1<<20 | uint32(rPC)<<16 | 0<<12 | 4
	c.Bus.Write32(0, opcode)
	c.Bus.Write32(12, 0xcafebabe)

	c.step()

	test.ExpectEquality(t, c.Regs.Get(0), uint32(0xcafebabe))
}

// Regression for the setPCAndFlush Thumb-bias bug: BX into Thumb state
// followed by a Thumb instruction must keep PC biased by +4, not +8, across
// the mode switch and the following Thumb step.
func TestStepARMToThumbViaBXThenStepThumb(t *testing.T) {
	c := newTestCore()
	c.Regs.Set(1, 0x101) // odd: BX switches to Thumb, target 0x100

	// BX r1 at address 0
	bx := uint32(cAL) | 0x12<<20 | 0xfff<<8 | 1<<4 | 1
	c.Bus.Write32(0, bx)

	c.step()

	test.ExpectEquality(t, c.CPSR.T, true)
	test.ExpectEquality(t, c.Regs.PC(), uint32(0x100+4))

	// MOVS r0, #9 (Thumb move-immediate form) at 0x100
	c.Bus.Write16(0x100, 0x2009)

	c.step()

	test.ExpectEquality(t, c.Regs.Get(0), uint32(9))
	test.ExpectEquality(t, c.Regs.PC(), uint32(0x100+4+2))
}

func TestRunRetiresBudgetInstructions(t *testing.T) {
	c := newTestCore()

	// four NOOP-ish MOV r0,#1 instructions in a row
	opcode := uint32(cAL) | 1<<25 | opMOV<<21 | 0<<12 | 1
	for i := uint32(0); i < 4; i++ {
		c.Bus.Write32(i*4, opcode)
	}

	result, err := c.Run(context.Background(), 4)

	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, result, ResultBudgetExhausted)
	test.ExpectEquality(t, c.Cycles, uint64(4))
	test.ExpectEquality(t, c.Regs.Get(0), uint32(1))
}

func TestRunHandlesResetLineMidBudget(t *testing.T) {
	c := newTestCore()
	opcode := uint32(cAL) | 1<<25 | opMOV<<21 | 0<<12 | 1
	c.Bus.Write32(0, opcode)
	c.ResetLine = true

	result, err := c.Run(context.Background(), 10)

	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, result, ResultReset)
	test.ExpectEquality(t, c.ResetLine, false)
	test.ExpectEquality(t, c.Regs.Get(0), uint32(0)) // reset wiped it before anything ran
}

func TestRunNoBusIsConfigurationError(t *testing.T) {
	chip, err := Profile("arm1176jzfs")
	test.ExpectSuccess(t, err)
	c := NewCore(chip, nil, nil, nil, nil)

	_, err = c.Run(context.Background(), 1)

	test.ExpectFailure(t, err)
}
