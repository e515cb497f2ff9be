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

package coproc

import "github.com/silicontrip/armcore/errors"

// cp15 is the Handlers adapter that wires a *mmu.CP15 into slot 15. It is
// defined here rather than in mmu to keep mmu free of any dependency on the
// coprocessor dispatch vocabulary; mmu.CP15's own MRC/MCR already do the
// real work, in (crn, opc1, crm, opc2) order since that's how CP15's own
// register map reads naturally, which this adapter reorders to match the
// instruction-encoding order (opc1, crn, crm, opc2) that Handlers uses.
type cp15Core interface {
	MRC(crn, opc1, crm, opc2 uint8) (uint32, error)
	MCR(crn, opc1, crm, opc2 uint8, v uint32) error
}

type cp15Adapter struct {
	core cp15Core
}

// AttachCP15 wires a system control coprocessor implementation into slot
// 15 of t. CDP, MRRC/MCRR and LDC/STC are all rejected: this chip family's
// CP15 accepts only MRC/MCR.
func AttachCP15(t *Table, core cp15Core) {
	t.Attach(15, cp15Adapter{core: core})
}

func (a cp15Adapter) CDP(opc1 uint8, crd, crn, crm uint8, opc2 uint8) error {
	return errors.Errorf(errors.CoprocessorReject, 15)
}

func (a cp15Adapter) MRC(opc1 uint8, crn, crm uint8, opc2 uint8) (uint32, error) {
	return a.core.MRC(crn, opc1, crm, opc2)
}

func (a cp15Adapter) MCR(opc1 uint8, crn, crm uint8, opc2 uint8, v uint32) error {
	return a.core.MCR(crn, opc1, crm, opc2, v)
}

func (a cp15Adapter) MRRC(opc1 uint8, crm uint8) (uint32, uint32, error) {
	return 0, 0, errors.Errorf(errors.CoprocessorReject, 15)
}

func (a cp15Adapter) MCRR(opc1 uint8, crm uint8, lo, hi uint32) error {
	return errors.Errorf(errors.CoprocessorReject, 15)
}

func (a cp15Adapter) LDC(crd uint8, read func() (uint32, error)) error {
	return errors.Errorf(errors.CoprocessorReject, 15)
}

func (a cp15Adapter) STC(crd uint8, write func(uint32) error) error {
	return errors.Errorf(errors.CoprocessorReject, 15)
}
