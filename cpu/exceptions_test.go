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

func TestRaiseUndefinedEntersUndefModeAndSavesLR(t *testing.T) {
	c := newTestCore()
	c.Regs.SwitchMode(ModeSVC)
	c.CPSR.Mode = ModeSVC
	c.CPSR.T = false

	c.RaiseUndefined(0x1000)

	test.ExpectEquality(t, c.Regs.Mode(), ModeUndef)
	test.ExpectEquality(t, c.Regs.Get(rLR), uint32(0x1004))
	test.ExpectEquality(t, c.CPSR.T, false)
	test.ExpectEquality(t, c.CPSR.I, true)
	test.ExpectEquality(t, c.Regs.PC(), uint32(0x04+8))
}

func TestRaiseSWISavesCPSRIntoSPSR(t *testing.T) {
	c := newTestCore()
	c.CPSR.N = true
	c.CPSR.Mode = ModeUser
	c.Regs.SwitchMode(ModeUser)

	c.RaiseSWI(0x2000)

	test.ExpectEquality(t, c.Regs.Mode(), ModeSVC)
	spsr, ok := c.Regs.SPSR()
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, spsr&(1<<31) != 0, true)
	test.ExpectEquality(t, c.Regs.Get(rLR), uint32(0x2004))
}

func TestRaiseDataAbortUsesEightByteAdjust(t *testing.T) {
	c := newTestCore()

	c.RaiseDataAbort(0x3000)

	test.ExpectEquality(t, c.Regs.Mode(), ModeAbort)
	test.ExpectEquality(t, c.Regs.Get(rLR), uint32(0x3008))
	test.ExpectEquality(t, c.Regs.PC(), uint32(0x10+8))
}

func TestVectorBaseSwitchesOnHighVectors(t *testing.T) {
	c := newTestCore()
	test.ExpectEquality(t, c.vectorBase(), uint32(0))

	c.SetHighVectors(true)
	test.ExpectEquality(t, c.vectorBase(), uint32(0xFFFF0000))

	c.RaiseUndefined(0x5000)
	test.ExpectEquality(t, c.Regs.PC(), uint32(0xFFFF0000+0x04+8))
}

func TestPendingExceptionPriorityResetBeatsFIQAndIRQ(t *testing.T) {
	c := newTestCore()
	c.ResetLine = true
	c.FIQLine = true
	c.IRQLine = true

	e, ok := c.pendingException()
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, e, ExceptionReset)
}

func TestPendingExceptionMaskedLineNotReported(t *testing.T) {
	c := newTestCore()
	c.IRQLine = true
	c.CPSR.I = true // masked

	_, ok := c.pendingException()
	test.ExpectEquality(t, ok, false)
}

func TestPendingExceptionFIQBeatsIRQ(t *testing.T) {
	c := newTestCore()
	c.CPSR.F = false // reset leaves both lines masked
	c.CPSR.I = false
	c.FIQLine = true
	c.IRQLine = true

	e, ok := c.pendingException()
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, e, ExceptionFIQ)
}
