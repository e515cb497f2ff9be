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

// A plain B #imm at fetch address 0x8000 (PC reads 0x8008 on entry, per
// run.go's invariant) with a forward offset of 0x10 words lands at
// 0x8008 + 0x40 = 0x8048.
func TestExecBranchForwardTarget(t *testing.T) {
	c := newTestCore()
	c.Regs.SetPC(0x8008)

	opcode := uint32(cAL) | 1<<25 | 0x10
	execBranch(c, opcode)

	test.ExpectEquality(t, c.Regs.PC(), uint32(0x8048+8))
}

func TestExecBranchWithLinkSetsLR(t *testing.T) {
	c := newTestCore()
	c.Regs.SetPC(0x1008)

	opcode := uint32(cAL) | 1<<25 | 1<<24 | 2
	execBranch(c, opcode)

	test.ExpectEquality(t, c.Regs.Get(rLR), uint32(0x1004))
	test.ExpectEquality(t, c.Regs.PC(), uint32(0x1010+8))
}

func TestExecBranchNegativeOffset(t *testing.T) {
	c := newTestCore()
	c.Regs.SetPC(0x2008)

	// B -#8: offset field = -2 in words, encoded as 24-bit two's complement
	opcode := uint32(cAL) | 1<<25 | uint32(0x00fffffe)
	execBranch(c, opcode)

	test.ExpectEquality(t, c.Regs.PC(), uint32(0x2000+8))
}
