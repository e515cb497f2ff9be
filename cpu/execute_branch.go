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

// execBranch covers B and BL. The cond field NV (0xf) on a v5+ core selects
// BLX(immediate) instead, which folds bit24 in as an extra half-word of
// offset and always links; run.go routes NV-conditioned words here only on
// v5+ chips, after confirming the opcode is actually in the branch class.
//
// c.Regs.PC() reads as the instruction's own address+8 here (run.go's
// invariant), exactly the bias the architecture defines the branch-target
// formula against, so the target is pc+imm with no further fixup.
func execBranch(c *Core, opcode uint32) {
	link := opcode&(1<<24) != 0
	cond := uint8((opcode >> 28) & 0xf)

	offset := int32(opcode&0x00ffffff) << 8 >> 8 // sign-extend 24 bits
	imm := uint32(offset) << 2

	blx := cond == 0xf && c.Chip.Arch.V5

	pc := c.Regs.PC()
	if link || blx {
		c.Regs.Set(rLR, pc-4)
	}

	target := pc + imm
	if blx {
		if opcode&(1<<24) != 0 {
			target += 2
		}
		c.CPSR.T = true
	}
	c.setPCAndFlush(target)
}
