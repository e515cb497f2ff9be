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
	"errors"
	"testing"

	"github.com/silicontrip/armcore/test"
)

// fakeCoprocessor is a minimal Coprocessor double for exercising the
// CDP/MRC/MCR/MRRC/MCRR/LDC/STC dispatch paths without a real CP15 or VFP
// attached.
type fakeCoprocessor struct {
	cdpErr error
	mrcVal uint32
	mrcErr error
	mcrErr error

	mrrcLo, mrrcHi uint32
	mrrcErr        error
	mcrrErr        error

	ldcWords []uint32
	stcWords []uint32

	lastCP, lastOpc1, lastCrn, lastCrm, lastOpc2 uint8
}

func (f *fakeCoprocessor) CDP(cp, opc1, crd, crn, crm, opc2 uint8) error {
	f.lastCP, f.lastOpc1, f.lastCrn, f.lastCrm, f.lastOpc2 = cp, opc1, crn, crm, opc2
	return f.cdpErr
}

func (f *fakeCoprocessor) MRC(cp, opc1, crn, crm, opc2 uint8) (uint32, error) {
	return f.mrcVal, f.mrcErr
}

func (f *fakeCoprocessor) MCR(cp, opc1, crn, crm, opc2 uint8, v uint32) error {
	f.mrcVal = v
	return f.mcrErr
}

func (f *fakeCoprocessor) MRRC(cp, opc1, crm uint8) (uint32, uint32, error) {
	return f.mrrcLo, f.mrrcHi, f.mrrcErr
}

func (f *fakeCoprocessor) MCRR(cp, opc1, crm uint8, lo, hi uint32) error {
	f.mrrcLo, f.mrrcHi = lo, hi
	return f.mcrrErr
}

func (f *fakeCoprocessor) LDC(cp, crd uint8, read func() (uint32, error)) error {
	for i := range f.ldcWords {
		v, err := read()
		if err != nil {
			return err
		}
		f.ldcWords[i] = v
	}
	return nil
}

func (f *fakeCoprocessor) STC(cp, crd uint8, write func(uint32) error) error {
	for _, v := range f.stcWords {
		if err := write(v); err != nil {
			return err
		}
	}
	return nil
}

func coprocTestCore(cop Coprocessor) *Core {
	c := newTestCore()
	c.Cop = cop
	return c
}

func TestExecCoprocessorDataOpUndefinedWithNoCoprocessor(t *testing.T) {
	c := newTestCore() // Cop is nil
	c.Regs.SetPC(0x1008)

	opcode := uint32(cAL) | 0xe<<24
	execCoprocessorDataOp(c, opcode)

	test.ExpectEquality(t, c.Regs.Mode(), ModeUndef)
}

func TestExecCoprocessorDataOpDispatchesFields(t *testing.T) {
	fake := &fakeCoprocessor{}
	c := coprocTestCore(fake)

	// CDP p15, opc1=1, CRd=2, CRn=3, CRm=4, opc2=5
	opcode := uint32(cAL) | 0xe<<24 | 1<<20 | 3<<16 | 2<<12 | 15<<8 | 5<<5 | 4
	execCoprocessorDataOp(c, opcode)

	test.ExpectEquality(t, fake.lastCP, uint8(15))
	test.ExpectEquality(t, fake.lastOpc1, uint8(1))
	test.ExpectEquality(t, fake.lastCrn, uint8(3))
	test.ExpectEquality(t, fake.lastCrm, uint8(4))
	test.ExpectEquality(t, fake.lastOpc2, uint8(5))
}

func TestExecCoprocessorDataOpRaisesUndefinedOnHandlerError(t *testing.T) {
	fake := &fakeCoprocessor{cdpErr: errors.New("rejected")}
	c := coprocTestCore(fake)

	opcode := uint32(cAL) | 0xe<<24
	execCoprocessorDataOp(c, opcode)

	test.ExpectEquality(t, c.Regs.Mode(), ModeUndef)
}

func TestExecCoprocessorRegTransferMRCIntoRegister(t *testing.T) {
	fake := &fakeCoprocessor{mrcVal: 0x1234}
	c := coprocTestCore(fake)

	// MRC p15, 0, r0, c1, c0, 0
	opcode := uint32(cAL) | 0xe<<24 | 1<<20 | 1<<16 | 0<<12 | 15<<8
	execCoprocessorRegTransfer(c, opcode)

	test.ExpectEquality(t, c.Regs.Get(0), uint32(0x1234))
}

func TestExecCoprocessorRegTransferMRCIntoPCUpdatesFlagsOnly(t *testing.T) {
	fake := &fakeCoprocessor{mrcVal: 1<<31 | 1<<30}
	c := coprocTestCore(fake)
	c.Regs.SetPC(0x9000)

	opcode := uint32(cAL) | 0xe<<24 | 1<<20 | 1<<16 | uint32(rPC)<<12 | 15<<8
	execCoprocessorRegTransfer(c, opcode)

	test.ExpectEquality(t, c.CPSR.N, true)
	test.ExpectEquality(t, c.CPSR.Z, true)
	test.ExpectEquality(t, c.Regs.PC(), uint32(0x9000)) // unchanged, no branch
}

func TestExecCoprocessorRegTransferMCRSendsRegisterValue(t *testing.T) {
	fake := &fakeCoprocessor{}
	c := coprocTestCore(fake)
	c.Regs.Set(0, 0x55)

	opcode := uint32(cAL) | 0xe<<24 | 1<<16 | 0<<12 | 15<<8
	execCoprocessorRegTransfer(c, opcode)

	test.ExpectEquality(t, fake.mrcVal, uint32(0x55))
}

func TestExecMRRCOrMCRRLoadSplitsLoHi(t *testing.T) {
	fake := &fakeCoprocessor{mrrcLo: 0x1, mrrcHi: 0x2}
	c := coprocTestCore(fake)

	// MRRC p15, 0, r0, r1, c2 (bit4 set selects the MRRC/MCRR alias, v6 only)
	c.Chip.Arch.V6 = true
	opcode := uint32(cAL) | 1<<20 | 1<<16 | 0<<12 | 15<<8 | 1<<4 | 2
	execCoprocessorDoubleOrTransfer(c, opcode)

	test.ExpectEquality(t, c.Regs.Get(0), uint32(0x1))
	test.ExpectEquality(t, c.Regs.Get(1), uint32(0x2))
}
