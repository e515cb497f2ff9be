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

	"github.com/silicontrip/armcore/errors"
	"github.com/silicontrip/armcore/logger"
)

var errNoBus = errors.Errorf(errors.RunError, "core has no bus attached")

// Result reports why Run returned.
type Result int

const (
	ResultBudgetExhausted Result = iota
	ResultContextDone
	ResultReset
)

// Run executes instructions until budget instructions have retired, ctx is
// cancelled, or a Reset line assertion restarts the core mid-budget (in
// which case Run returns immediately after handling it, budget unconsumed,
// so the caller can decide whether to keep running).
//
// Exceptions raised during execution (undefined instruction, data/prefetch
// abort, SWI, IRQ/FIQ) never escape as a Go error: they are architectural
// control-flow, handled by redirecting PC to the relevant vector, exactly
// as real silicon would. Only a configuration-time problem (no Bus
// attached) is reported as a returned error.
func (c *Core) Run(ctx context.Context, budget uint64) (Result, error) {
	if c.Bus == nil {
		return ResultBudgetExhausted, errNoBus
	}

	var executed uint64
	for executed < budget {
		select {
		case <-ctx.Done():
			return ResultContextDone, nil
		default:
		}

		if e, pending := c.pendingException(); pending {
			if e == ExceptionReset {
				c.ResetLine = false
				c.Reset()
				return ResultReset, nil
			}
			pc := c.Regs.PC() - 8
			if e == ExceptionFIQ {
				c.FIQLine = false
				c.RaiseFIQ(pc)
			} else {
				c.IRQLine = false
				c.RaiseIRQ(pc)
			}
			continue
		}

		c.step()
		executed++

		if c.Sched.Pending() {
			c.Sched.Advance(c.Cycles)
		}
	}
	return ResultBudgetExhausted, nil
}

// step fetches, decodes and executes exactly one instruction (ARM or
// Thumb, depending on CPSR.T). PC keeps reading as this instruction's own
// address plus the architectural bias (+8 ARM, +4 Thumb) for the whole of
// decode/execute, and is only advanced to the next instruction afterward,
// and only if execution didn't already redirect PC itself.
func (c *Core) step() {
	if c.CPSR.T {
		c.stepThumb()
		return
	}
	c.stepARM()
}

// stepARM fetches and executes one ARM instruction. c.Regs.PC() already
// reads as fetchAddr+8 on entry (the invariant the previous step call left
// behind, or that Reset established); every exec_*.go routine that reads PC
// as an operand relies on that +8 bias being in place unchanged while it
// runs, so this function must not touch PC before dispatch. Advancing PC to
// the next instruction's own +8-biased value happens afterward, and only if
// the instruction didn't already redirect PC itself (branch, PC-writing
// data-processing op, LDM/POP with PC in the list).
func (c *Core) stepARM() {
	fetchAddr := c.Regs.PC() - 8
	opcode, err := c.fetch(fetchAddr)
	if err != nil {
		c.RaisePrefetchAbort(fetchAddr)
		return
	}
	c.Cycles++

	advance := func() {
		if c.Regs.PC() == fetchAddr+8 {
			c.Regs.SetPC(fetchAddr + 8 + 4)
		}
	}

	cond := uint8((opcode >> 28) & 0xf)
	if cond == 0xf {
		if c.Chip.Arch.V6 {
			bits2720 := (opcode >> 20) & 0xff
			bits74 := (opcode >> 4) & 0xf
			switch {
			case bits2720 == 0x10:
				execCPS(c, opcode)
				advance()
				return
			case bits2720 == 0x57 && bits74 == 0x1:
				execCLREX(c, opcode)
				advance()
				return
			}
		}
		if c.Chip.Arch.V5 {
			// unconditional-instruction-space encodings (BLX immediate, PLD,
			// ...); only BLX is modelled, everything else in this space is
			// treated as a no-op rather than UNDEFINED, matching the common
			// "unimplemented hint instruction" stance for PLD-class encodings.
			if opcode&0xfe000000 == 0xfa000000 {
				execBranch(c, opcode)
			}
			advance()
			return
		}
		logger.Logf(logger.Allow, "cpu", "NV-conditioned instruction on pre-v5 chip at 0x%08x", fetchAddr)
		advance()
		return
	}
	if !c.CPSR.Condition(cond) {
		advance()
		return
	}

	decodeAndExecute(c, opcode)
	advance()
}

// stepThumb mirrors stepARM's PC-bias discipline at Thumb's own +4 bias and
// 2-byte instruction size.
func (c *Core) stepThumb() {
	fetchAddr := c.Regs.PC() - 4
	opcode, err := c.fetchThumb(fetchAddr)
	if err != nil {
		c.RaisePrefetchAbort(fetchAddr)
		return
	}
	c.Cycles++

	executeThumb(c, opcode)

	if c.Regs.PC() == fetchAddr+4 {
		c.Regs.SetPC(fetchAddr + 4 + 2)
	}
}
