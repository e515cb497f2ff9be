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

// Exception identifies one of the seven architectural exception entries.
type Exception int

const (
	ExceptionReset Exception = iota
	ExceptionUndefined
	ExceptionSWI
	ExceptionPrefetchAbort
	ExceptionDataAbort
	ExceptionIRQ
	ExceptionFIQ
)

type exceptionInfo struct {
	offset      uint32
	mode        Mode
	disableIRQ  bool
	disableFIQ  bool // only Reset and FIQ entry touch F
	pcAdjust    uint32 // added to the saved return address beyond the raw PC
}

// pcAdjust is relative to the address of the instruction that caused the
// exception (or, for IRQ/FIQ, the address of the next instruction that
// would have executed); every caller in this package passes that address,
// not a pre-biased PC register read.
var exceptionTable = map[Exception]exceptionInfo{
	ExceptionReset:         {offset: 0x00, mode: ModeSVC, disableIRQ: true, disableFIQ: true},
	ExceptionUndefined:     {offset: 0x04, mode: ModeUndef, disableIRQ: true, pcAdjust: 4},
	ExceptionSWI:           {offset: 0x08, mode: ModeSVC, disableIRQ: true, pcAdjust: 4},
	ExceptionPrefetchAbort: {offset: 0x0c, mode: ModeAbort, disableIRQ: true, pcAdjust: 4},
	ExceptionDataAbort:     {offset: 0x10, mode: ModeAbort, disableIRQ: true, pcAdjust: 8},
	ExceptionIRQ:           {offset: 0x18, mode: ModeIRQ, disableIRQ: true, pcAdjust: 4},
	ExceptionFIQ:           {offset: 0x1c, mode: ModeFIQ, disableIRQ: true, disableFIQ: true, pcAdjust: 4},
}

// vectorBase is the virtual base of the exception vector table, selected by
// CP15 c1 bit 13 (high vectors) rather than by Chip.HighVectors after reset,
// since software may flip that control bit at runtime. Core tracks the live
// value itself; mmu.CP15 pushes updates to it via SetHighVectors.
func (c *Core) vectorBase() uint32 {
	if c.highVectors {
		return 0xFFFF0000
	}
	return 0x00000000
}

// SetHighVectors updates the live high-vectors state. Called by the CP15
// control-register write path when the MMU is attached.
func (c *Core) SetHighVectors(high bool) {
	c.highVectors = high
}

// raise performs exception entry: save the return address and CPSR into the
// target mode's LR/SPSR, switch mode, mask interrupts per the table above,
// clear Thumb/Jazelle state (the vector table is always ARM code), and set
// PC to the vector. pc is the address that was current when the exception
// was recognised, interpreted per the exception kind's pcAdjust.
func (c *Core) raise(e Exception, pc uint32) {
	info := exceptionTable[e]

	savedCPSR := c.CPSR.Recompose()
	returnAddr := pc + info.pcAdjust

	c.Regs.SwitchMode(info.mode)
	c.Regs.SetSPSR(savedCPSR)
	c.Regs.Set(rLR, returnAddr)

	c.CPSR.Mode = info.mode
	c.CPSR.T = false
	c.CPSR.J = false
	if info.disableIRQ {
		c.CPSR.I = true
	}
	if info.disableFIQ {
		c.CPSR.F = true
	}

	c.clearExclusiveAll()

	c.Regs.SetPC(c.vectorBase() + info.offset + 8)
}

// RaiseSWI is called by the decode/execute path on an SWI instruction, after
// offering the immediate to Sink and having it decline. currentPC is the
// address of the SWI instruction itself.
func (c *Core) RaiseSWI(currentPC uint32) {
	c.raise(ExceptionSWI, currentPC)
}

// RaiseUndefined enters the Undefined Instruction vector: illegal encodings,
// coprocessor instructions with no attached handler, and CDP/MRC/MCR/MRRC/
// MCRR/LDC/STC rejected by their handler all funnel here. currentPC is the
// address of the offending instruction.
func (c *Core) RaiseUndefined(currentPC uint32) {
	c.raise(ExceptionUndefined, currentPC)
}

// RaisePrefetchAbort enters the Prefetch Abort vector for a faulting
// instruction fetch. currentPC is the address of the aborting fetch.
func (c *Core) RaisePrefetchAbort(currentPC uint32) {
	c.raise(ExceptionPrefetchAbort, currentPC)
}

// RaiseDataAbort enters the Data Abort vector for a faulting load/store.
// currentPC is the address of the instruction that performed the access.
func (c *Core) RaiseDataAbort(currentPC uint32) {
	c.raise(ExceptionDataAbort, currentPC)
}

// RaiseIRQ and RaiseFIQ enter their respective vectors; the caller is
// responsible for having already checked CPSR.I / CPSR.F.
func (c *Core) RaiseIRQ(currentPC uint32) {
	c.raise(ExceptionIRQ, currentPC)
}

func (c *Core) RaiseFIQ(currentPC uint32) {
	c.raise(ExceptionFIQ, currentPC)
}

// pendingException checks the external signal lines in architectural
// priority order: Reset, Data Abort (handled inline by the load/store path,
// not here), FIQ, IRQ, Prefetch Abort (likewise inline), Undefined (likewise
// inline). This only covers the two asynchronous lines the scheduler/host
// can assert between instructions.
func (c *Core) pendingException() (Exception, bool) {
	if c.ResetLine {
		return ExceptionReset, true
	}
	if c.FIQLine && !c.CPSR.F {
		return ExceptionFIQ, true
	}
	if c.IRQLine && !c.CPSR.I {
		return ExceptionIRQ, true
	}
	return 0, false
}
