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

// Package cpu is the ARMv4-v6 interpreter: register file, status register,
// exception entry, barrel shifter, decode/dispatch and the ARM/Thumb
// execute routines.
package cpu

import (
	"github.com/silicontrip/armcore/bus"
	"github.com/silicontrip/armcore/sched"
	"github.com/silicontrip/armcore/syscall"
)

// Translator is the seam the core calls through for every memory access.
// mmu.MMU implements it; a core with no MMU attached talks to Bus directly
// instead (see Core.translate). size is the access width in bytes (1, 2 or
// 4) and is what lets the implementation tell a misaligned halfword access
// from a misaligned word one when CP15's alignment-fault-enable bit is set;
// exec accesses are never alignment-checked here (ARM/Thumb fetch address
// legality is enforced by the decode/dispatch path, not the MMU).
type Translator interface {
	Translate(vaddr uint32, size uint8, write, exec bool) (paddr uint32, err error)
}

// Coprocessor is the seam the core calls through for CDP/MRC/MCR/MRRC/MCRR/
// LDC/STC. coproc.Table implements it.
type Coprocessor interface {
	CDP(cp uint8, opc1 uint8, crd, crn, crm uint8, opc2 uint8) error
	MRC(cp uint8, opc1 uint8, crn, crm uint8, opc2 uint8) (uint32, error)
	MCR(cp uint8, opc1 uint8, crn, crm uint8, opc2 uint8, v uint32) error
	MRRC(cp uint8, opc1 uint8, crm uint8) (lo, hi uint32, err error)
	MCRR(cp uint8, opc1 uint8, crm uint8, lo, hi uint32) error

	// LDC/STC hand the coprocessor a word-at-a-time accessor rather than a
	// fixed-length buffer: transfer length is coprocessor- and
	// register-defined (VFP's double-precision registers move two words per
	// LDC/STC; CP15 accepts neither), so the coprocessor drives how many
	// times it is called.
	LDC(cp uint8, crd uint8, read func() (uint32, error)) error
	STC(cp uint8, crd uint8, write func(uint32) error) error
}

// exclusiveSize is the capacity of the exclusive-access monitor backing
// LDREX/STREX/SWP: a direct-mapped table keyed by (address>>2) mod
// exclusiveSize, where a new reservation replaces whatever entry occupies
// its slot.
const exclusiveSize = 128

type exclusiveEntry struct {
	valid bool
	addr  uint32
}

// Core is the complete machine state: registers, status, the attached
// translator/coprocessor/bus/sink, the event scheduler and the chip profile
// that was used to build it.
type Core struct {
	Regs Registers
	CPSR Status

	Chip ChipConfig

	Bus   bus.Bus
	MMU   Translator // nil: vaddr == paddr, Bus consulted directly
	Cop   Coprocessor // nil: every coprocessor instruction is UNDEFINED
	Sink  syscall.Sink
	Sched *sched.Scheduler

	Cycles uint64

	highVectors bool

	exclusive [exclusiveSize]exclusiveEntry

	// external signal lines, polled once per instruction in priority order
	// Reset > Data Abort > FIQ > IRQ > Prefetch Abort > Undefined, per the
	// architectural exception priority scheme.
	ResetLine   bool
	FIQLine     bool
	IRQLine     bool
}

// NewCore builds a Core for the given chip, wired to b (required) and
// optionally mmu/cop/sink (any of which may be nil). sched.New() supplies
// the scheduler.
func NewCore(chip ChipConfig, b bus.Bus, mmu Translator, cop Coprocessor, sink syscall.Sink) *Core {
	if sink == nil {
		sink = syscall.Decline{}
	}
	c := &Core{
		Chip:  chip,
		Bus:   b,
		MMU:   mmu,
		Cop:   cop,
		Sink:  sink,
		Sched: sched.New(),
	}
	c.Reset()
	return c
}

// Reset puts the core into its post-Reset architectural state: SVC32 mode,
// IRQ and FIQ masked, Thumb/Jazelle bits clear, PC at the reset vector (high
// or low depending on Chip.HighVectors), exclusive monitor cleared.
func (c *Core) Reset() {
	c.Regs.Reset()
	c.CPSR = Status{Mode: ModeSVC, I: true, F: true}
	c.highVectors = c.Chip.HighVectors
	for i := range c.exclusive {
		c.exclusive[i] = exclusiveEntry{}
	}
	c.Cycles = 0
	c.Regs.SetPC(c.vectorBase() + 8)
}

// translate resolves a virtual address for the given access kind, going
// through MMU when attached, and otherwise treating vaddr as physical. size
// is the access width in bytes, passed through unchanged so the Translator
// can apply CP15's alignment-fault-enable check itself; a core with no MMU
// attached has no CP15 to consult and never raises an alignment fault.
func (c *Core) translate(vaddr uint32, size uint8, write, exec bool) (uint32, error) {
	if c.MMU == nil {
		return vaddr, nil
	}
	return c.MMU.Translate(vaddr, size, write, exec)
}

// monitorAddr indexes the exclusive-access table for addr.
func monitorAddr(addr uint32) int {
	return int((addr >> 2) % exclusiveSize)
}

// markExclusive records addr as the subject of a load-exclusive, evicting
// whatever entry currently occupies that slot.
func (c *Core) markExclusive(addr uint32) {
	c.exclusive[monitorAddr(addr)] = exclusiveEntry{valid: true, addr: addr}
}

// checkExclusive reports whether addr still holds its exclusive tag, and
// clears it either way: STREX always consumes the tag, whether or not it
// succeeds.
func (c *Core) checkExclusive(addr uint32) bool {
	i := monitorAddr(addr)
	e := c.exclusive[i]
	c.exclusive[i] = exclusiveEntry{}
	return e.valid && e.addr == addr
}

// clearExclusiveAll drops every exclusive tag, used by CLREX and by
// exception entry (a context switch invalidates any outstanding reservation).
func (c *Core) clearExclusiveAll() {
	for i := range c.exclusive {
		c.exclusive[i] = exclusiveEntry{}
	}
}
