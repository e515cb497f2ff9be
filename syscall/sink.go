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

// Package syscall is the core's one outbound seam into an emulated
// operating system: every SWI instruction is offered to a Sink before the
// core raises the architectural Supervisor exception. This is the only
// place the core interacts with anything resembling an OS; file systems,
// service stubs, and HLE applets live entirely on the other side of Sink
// and are out of this module's scope.
package syscall

// Sink decides whether a software interrupt is handled outside the core
// (HLE) or should fall through to the architectural SVC vector.
type Sink interface {
	// HandleSWI is called with the 24-bit immediate encoded in the SWI
	// instruction. A true return means the sink has fully handled the call;
	// the core resumes at the instruction after the SWI instead of entering
	// the Supervisor vector.
	HandleSWI(imm uint32) bool
}

// Decline is a Sink that never handles a SWI; every one falls through to the
// architectural vector. Useful as a default when a host has no HLE layer.
type Decline struct{}

func (Decline) HandleSWI(uint32) bool { return false }

// Func adapts a plain function to the Sink interface.
type Func func(imm uint32) bool

func (f Func) HandleSWI(imm uint32) bool { return f(imm) }
