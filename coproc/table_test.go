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

package coproc_test

import (
	"testing"

	"github.com/silicontrip/armcore/coproc"
	"github.com/silicontrip/armcore/test"
)

type stubHandlers struct {
	lastMCR uint32
}

func (s *stubHandlers) CDP(opc1 uint8, crd, crn, crm uint8, opc2 uint8) error { return nil }
func (s *stubHandlers) MRC(opc1 uint8, crn, crm uint8, opc2 uint8) (uint32, error) {
	return 0x42, nil
}
func (s *stubHandlers) MCR(opc1 uint8, crn, crm uint8, opc2 uint8, v uint32) error {
	s.lastMCR = v
	return nil
}
func (s *stubHandlers) MRRC(opc1 uint8, crm uint8) (uint32, uint32, error) { return 1, 2, nil }
func (s *stubHandlers) MCRR(opc1 uint8, crm uint8, lo, hi uint32) error    { return nil }
func (s *stubHandlers) LDC(crd uint8, read func() (uint32, error)) error   { return nil }
func (s *stubHandlers) STC(crd uint8, write func(uint32) error) error      { return nil }

func TestEmptySlotRejects(t *testing.T) {
	tbl := coproc.NewTable()
	_, err := tbl.MRC(0, 0, 0, 0, 0)
	test.ExpectFailure(t, err)
}

func TestAttachAndDispatch(t *testing.T) {
	tbl := coproc.NewTable()
	h := &stubHandlers{}
	tbl.Attach(10, h)

	v, err := tbl.MRC(10, 0, 0, 0, 0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0x42))

	test.ExpectSuccess(t, tbl.MCR(10, 0, 0, 0, 0, 0x99))
	test.ExpectEquality(t, h.lastMCR, uint32(0x99))
}

func TestDetachRestoresRejection(t *testing.T) {
	tbl := coproc.NewTable()
	tbl.Attach(3, &stubHandlers{})
	tbl.Detach(3)

	_, err := tbl.MRC(3, 0, 0, 0, 0)
	test.ExpectFailure(t, err)
}
