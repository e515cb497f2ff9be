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

// Package bus defines the flat 32-bit physical address space the core reads
// and writes through, after MMU translation. The bus itself is external to
// the interpreter: a host embeds this module by supplying an implementation
// of ExecBus (and, optionally, DebugBus for inspection tooling).
package bus

// ExecBus is the interface the execute loop uses for every instruction
// fetch and data access. Side effects (device registers, write logging,
// anything beyond "store some bytes") are the implementation's concern.
type ExecBus interface {
	Read8(paddr uint32) uint8
	Read16(paddr uint32) uint16
	Read32(paddr uint32) uint32
	Write8(paddr uint32, v uint8)
	Write16(paddr uint32, v uint16)
	Write32(paddr uint32, v uint32)
}

// DebugBus bypasses side effects entirely: no write-buffer enqueue, no cache
// fill, no device side effect. Used by inspection tooling (the mmu-dump and
// regs CLI subcommands) so that looking at memory never perturbs it.
type DebugBus interface {
	Peek8(paddr uint32) (uint8, bool)
	Peek16(paddr uint32) (uint16, bool)
	Peek32(paddr uint32) (uint32, bool)
	Poke8(paddr uint32, v uint8) bool
	Poke16(paddr uint32, v uint16) bool
	Poke32(paddr uint32, v uint32) bool
}

// Bus is the full interface a host may choose to implement; ExecBus alone is
// sufficient to run the core.
type Bus interface {
	ExecBus
	DebugBus
}
