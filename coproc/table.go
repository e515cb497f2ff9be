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

// Package coproc is the 16-slot coprocessor dispatch table the core calls
// through for every CDP/MRC/MCR/MRRC/MCRR/LDC/STC instruction. CP15 (system
// control) is its canonical consumer, always attached at slot 15; VFP
// attaches at slots 10/11 as a leaf collaborator with no dependency on any
// other slot.
package coproc

import "github.com/silicontrip/armcore/errors"

const NumSlots = 16

// Handlers is what a coprocessor implementation attaches to a Table slot.
// Any method may return a rejection error (via errors.Errorf) to decline an
// instruction it recognises the encoding of but chooses not to execute
// (VFP's identification-only stub does this for every data-processing and
// transfer op it doesn't implement); Table turns that into the same
// Undefined Instruction outcome as an empty slot.
type Handlers interface {
	CDP(opc1 uint8, crd, crn, crm uint8, opc2 uint8) error
	MRC(opc1 uint8, crn, crm uint8, opc2 uint8) (uint32, error)
	MCR(opc1 uint8, crn, crm uint8, opc2 uint8, v uint32) error
	MRRC(opc1 uint8, crm uint8) (lo, hi uint32, err error)
	MCRR(opc1 uint8, crm uint8, lo, hi uint32) error
	LDC(crd uint8, read func() (uint32, error)) error
	STC(crd uint8, write func(uint32) error) error
}

// Table is the 16-slot dispatch table itself; it implements cpu.Coprocessor.
type Table struct {
	slots [NumSlots]Handlers
}

// NewTable returns an empty table; every slot is UNDEFINED until Attach.
func NewTable() *Table {
	return &Table{}
}

// Attach installs h at the given coprocessor number, replacing whatever was
// there.
func (t *Table) Attach(cp uint8, h Handlers) {
	t.slots[cp&0xf] = h
}

// Detach empties a slot.
func (t *Table) Detach(cp uint8) {
	t.slots[cp&0xf] = nil
}

func (t *Table) handler(cp uint8) (Handlers, error) {
	h := t.slots[cp&0xf]
	if h == nil {
		return nil, errors.Errorf(errors.NoSuchSlot, cp)
	}
	return h, nil
}

func (t *Table) CDP(cp uint8, opc1 uint8, crd, crn, crm uint8, opc2 uint8) error {
	h, err := t.handler(cp)
	if err != nil {
		return err
	}
	return h.CDP(opc1, crd, crn, crm, opc2)
}

func (t *Table) MRC(cp uint8, opc1 uint8, crn, crm uint8, opc2 uint8) (uint32, error) {
	h, err := t.handler(cp)
	if err != nil {
		return 0, err
	}
	return h.MRC(opc1, crn, crm, opc2)
}

func (t *Table) MCR(cp uint8, opc1 uint8, crn, crm uint8, opc2 uint8, v uint32) error {
	h, err := t.handler(cp)
	if err != nil {
		return err
	}
	return h.MCR(opc1, crn, crm, opc2, v)
}

func (t *Table) MRRC(cp uint8, opc1 uint8, crm uint8) (uint32, uint32, error) {
	h, err := t.handler(cp)
	if err != nil {
		return 0, 0, err
	}
	return h.MRRC(opc1, crm)
}

func (t *Table) MCRR(cp uint8, opc1 uint8, crm uint8, lo, hi uint32) error {
	h, err := t.handler(cp)
	if err != nil {
		return err
	}
	return h.MCRR(opc1, crm, lo, hi)
}

func (t *Table) LDC(cp uint8, crd uint8, read func() (uint32, error)) error {
	h, err := t.handler(cp)
	if err != nil {
		return err
	}
	return h.LDC(crd, read)
}

func (t *Table) STC(cp uint8, crd uint8, write func(uint32) error) error {
	h, err := t.handler(cp)
	if err != nil {
		return err
	}
	return h.STC(crd, write)
}
