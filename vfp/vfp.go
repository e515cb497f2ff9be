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

// Package vfp is a leaf collaborator on the coprocessor dispatch table: it
// identifies itself correctly (FPSID/FPEXC/FPINST) so that software can
// probe for floating point hardware and decide to avoid it, but rejects
// every actual arithmetic operation. A full VFP pipeline is out of scope.
package vfp

import "github.com/silicontrip/armcore/errors"

// register indices (CRn values) of the identification registers VFP exposes via
// MRC/MCR on its coprocessor number (conventionally 10 for single-
// precision-only implementations, 11 when double-precision is present;
// this stub answers identically on either slot).
const (
	regFPSID  = 0x0
	regFPSCR  = 0x1
	regFPEXC  = 0x8
	regFPINST = 0x9
)

// VFP is the identification-only stub: FPSID reports a fixed implementer/
// variant/subarchitecture/part/revision tuple, FPEXC reports the enable bit
// this stub never sets (so software that checks it before issuing real VFP
// instructions backs off on its own), and every other register read/write
// and every CDP is rejected outright.
type VFP struct {
	fpsid uint32
	fpexc uint32
}

// New returns a VFP stub reporting the given FPSID value (normally fixed
// per silicon revision; exposed as a parameter so a chip profile can pick
// the ID its real hardware would report).
func New(fpsid uint32) *VFP {
	return &VFP{fpsid: fpsid}
}

func (v *VFP) CDP(opc1 uint8, crd, crn, crm uint8, opc2 uint8) error {
	return errors.Errorf(errors.CoprocessorReject, 10)
}

func (v *VFP) MRC(opc1 uint8, crn, crm uint8, opc2 uint8) (uint32, error) {
	switch crn {
	case regFPSID:
		return v.fpsid, nil
	case regFPEXC:
		return v.fpexc, nil
	case regFPINST:
		return 0, nil
	}
	return 0, errors.Errorf(errors.CoprocessorReject, 10)
}

func (v *VFP) MCR(opc1 uint8, crn, crm uint8, opc2 uint8, val uint32) error {
	switch crn {
	case regFPEXC:
		// only the enable bit is honoured; this stub never actually turns on
		// a functioning unit, so EN reads back as written but nothing else
		// the register controls (exception trapping, subarchitecture
		// selection) has any effect.
		v.fpexc = val & (1 << 30)
		return nil
	}
	return errors.Errorf(errors.CoprocessorReject, 10)
}

func (v *VFP) MRRC(opc1 uint8, crm uint8) (uint32, uint32, error) {
	return 0, 0, errors.Errorf(errors.CoprocessorReject, 10)
}

func (v *VFP) MCRR(opc1 uint8, crm uint8, lo, hi uint32) error {
	return errors.Errorf(errors.CoprocessorReject, 10)
}

func (v *VFP) LDC(crd uint8, read func() (uint32, error)) error {
	return errors.Errorf(errors.CoprocessorReject, 10)
}

func (v *VFP) STC(crd uint8, write func(uint32) error) error {
	return errors.Errorf(errors.CoprocessorReject, 10)
}
