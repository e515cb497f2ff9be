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

package mmu

// tuple identifies one (CRn, opc1, CRm, opc2) addressed by a CP15 MRC/MCR,
// the granularity at which chips differ on what is implemented.
type tuple struct {
	crn, opc1, crm, opc2 uint8
}

// ChipProfile names which CP15 tuples a given chip actually implements
// (c7/c8/c10 cache, TLB and lockdown operations vary the most across this
// family) and what its ID register reads as.
type ChipProfile struct {
	Name    string
	IDCode  uint32 // c0, opc2 0: Main ID register
	CacheType uint32 // c0, opc2 1
	legal   map[tuple]bool
}

// Legal reports whether this chip implements the given CP15 tuple. An
// unlisted tuple is illegal, matching real silicon's RAZ/UNDEFINED split
// per implementation rather than a universal CP15 register set.
func (p ChipProfile) Legal(crn, opc1, crm, opc2 uint8) bool {
	return p.legal[tuple{crn, opc1, crm, opc2}]
}

// IDRegister returns one of the two c0 identification registers selected by
// opc2 (0: Main ID, 1: Cache Type); any other opc2 this profile doesn't
// list reads as zero.
func (p ChipProfile) IDRegister(opc2 uint8) uint32 {
	switch opc2 {
	case 0:
		return p.IDCode
	case 1:
		return p.CacheType
	}
	return 0
}

func buildLegalTable(tuples []tuple) map[tuple]bool {
	m := make(map[tuple]bool, len(tuples))
	for _, t := range tuples {
		m[t] = true
	}
	return m
}

// commonTuples are implemented identically across every profile in this
// family: control, TTB, DACR, FSR, FAR, the c7 full invalidate operations
// and the c8 full TLB invalidate.
var commonTuples = []tuple{
	{0, 0, 0, 0}, {0, 0, 0, 1},
	{1, 0, 0, 0},
	{2, 0, 0, 0},
	{3, 0, 0, 0},
	{5, 0, 0, 0},
	{6, 0, 0, 0},
	{7, 0, 7, 0}, // invalidate I+D cache
	{8, 0, 7, 0}, // invalidate I+D TLB
}

// ARM720T (v4): no process ID register, no fine-grained cache maintenance
// by MVA, write-through cache only.
var ARM720T = ChipProfile{
	Name:   "arm720t",
	IDCode: 0x41007200,
	legal:  buildLegalTable(commonTuples),
}

// ARM920T (v4T): adds FCSE process ID and per-MVA cache/TLB maintenance.
var ARM920T = ChipProfile{
	Name:      "arm920t",
	IDCode:    0x41129200,
	CacheType: 0x1D152152,
	legal: buildLegalTable(append(append([]tuple{}, commonTuples...),
		tuple{13, 0, 0, 0},
		tuple{7, 0, 5, 1}, tuple{7, 0, 6, 1}, // invalidate I/D by MVA
		tuple{8, 0, 5, 1}, tuple{8, 0, 6, 1}, // invalidate TLB by MVA
	)),
}

// ARM926EJ-S (v5TE): adds context ID and cache clean-by-MVA (write-back
// cache support).
var ARM926EJS = ChipProfile{
	Name:      "arm926ejs",
	IDCode:    0x41069260,
	CacheType: 0x1D152152,
	legal: buildLegalTable(append(append([]tuple{}, commonTuples...),
		tuple{13, 0, 0, 0}, tuple{13, 0, 0, 1},
		tuple{7, 0, 5, 1}, tuple{7, 0, 6, 1},
		tuple{7, 0, 10, 1}, tuple{7, 0, 14, 1}, // clean / clean+invalidate by MVA
		tuple{8, 0, 5, 1}, tuple{8, 0, 6, 1},
	)),
}

// ARM1176JZF-S (v6): adds the v6 TLB/cache-by-ASID operations and VFP
// access control via c1 (CPACR lives on coprocessor 15 too on this core,
// but is modelled by vfp directly rather than duplicated here).
var ARM1176JZFS = ChipProfile{
	Name:      "arm1176jzfs",
	IDCode:    0x410FB767,
	CacheType: 0x1D152152,
	legal: buildLegalTable(append(append([]tuple{}, commonTuples...),
		tuple{13, 0, 0, 0}, tuple{13, 0, 0, 1},
		tuple{7, 0, 5, 1}, tuple{7, 0, 6, 1},
		tuple{7, 0, 10, 1}, tuple{7, 0, 14, 1},
		tuple{8, 0, 5, 1}, tuple{8, 0, 6, 1},
		tuple{8, 0, 5, 2}, tuple{8, 0, 6, 2}, // invalidate by ASID
	)),
}

// Profile looks up a named chip's CP15 legal-tuple table.
func Profile(name string) (ChipProfile, bool) {
	switch name {
	case ARM720T.Name:
		return ARM720T, true
	case ARM920T.Name:
		return ARM920T, true
	case ARM926EJS.Name:
		return ARM926EJS, true
	case ARM1176JZFS.Name:
		return ARM1176JZFS, true
	}
	return ChipProfile{}, false
}
