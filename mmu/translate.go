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

import "github.com/silicontrip/armcore/errors"

// pageSize identifies the granularity a translation entry covers, which
// determines both its TLB hit mask and the bits of vaddr that carry through
// to the physical address unchanged.
type pageSize int

const (
	sizeSection    pageSize = iota // 1MB, first-level only
	sizeLargePage                  // 64KB
	sizeSmallPage                  // 4KB
	sizeTinyPage                   // 1KB, ARMv5 only
)

func (p pageSize) mask() uint32 {
	switch p {
	case sizeSection:
		return 0xFFF00000
	case sizeLargePage:
		return 0xFFFF0000
	case sizeSmallPage:
		return 0xFFFFF000
	default: // sizeTinyPage
		return 0xFFFFFC00
	}
}

// tlbEntry is a resolved translation: base physical address (already
// masked to the page boundary), the page size, the domain it belongs to
// (for the domain permission check) and its access-permission bits.
type tlbEntry struct {
	physBase uint32
	size     pageSize
	domain   uint8
	ap       [4]uint8 // one AP field per sub-page (sections and tiny pages only use ap[0])
	subSize  pageSize // sub-page granularity for large/small pages' 4 AP fields
}

func (e tlbEntry) translate(vaddr uint32) uint32 {
	return e.physBase | (vaddr &^ e.size.mask())
}

func (e tlbEntry) apFor(vaddr uint32) uint8 {
	if e.size == sizeSection || e.size == sizeTinyPage {
		return e.ap[0]
	}
	sub := (vaddr >> 10) & 0x3 // each of 4 APs covers a quarter of a large/small page
	if e.size == sizeLargePage {
		sub = (vaddr >> 14) & 0x3
	}
	return e.ap[sub]
}

// walk performs the two-level page-table walk: TTB -> first-level
// descriptor (section or coarse/fine page-table pointer) -> optionally a
// second-level descriptor. It does not touch the TLB; the caller inserts
// the result.
func (m *MMU) walk(pid uint32, vaddr uint32) (tlbEntry, FaultKind, uint8) {
	ttb := m.CP15.translationTableBase()
	l1Addr := (ttb & 0xFFFFC000) | ((vaddr >> 18) & 0x3FFC)
	l1 := m.Bus.Read32(l1Addr)

	switch l1 & 0x3 {
	case 0x0: // fault
		return tlbEntry{}, FaultTranslationSection, 0
	case 0x1: // coarse page table
		domain := uint8((l1 >> 5) & 0xf)
		l2Base := l1 & 0xFFFFFC00
		l2Addr := l2Base | ((vaddr >> 10) & 0x3FC)
		return m.walkLevel2(l2Addr, domain, vaddr, false)
	case 0x2: // section
		domain := uint8((l1 >> 5) & 0xf)
		ap := uint8((l1 >> 10) & 0x3)
		e := tlbEntry{physBase: l1 & 0xFFF00000, size: sizeSection, domain: domain}
		e.ap[0] = ap
		return e, FaultNone, domain
	default: // 0x3, fine page table (ARMv5)
		domain := uint8((l1 >> 5) & 0xf)
		l2Base := l1 & 0xFFFFF000
		l2Addr := l2Base | ((vaddr >> 8) & 0xFFC)
		return m.walkLevel2(l2Addr, domain, vaddr, true)
	}
}

// L1Slot describes one populated first-level descriptor: 1MB of virtual
// address space mapped directly (section) or handed off to a second-level
// table (coarse/fine). Used only by page-table inspection tooling; the
// execute-time path goes through walk/walkLevel2 and the TLB instead.
type L1Slot struct {
	VAddr  uint32
	Kind   string // "section", "coarse", or "fine"
	Target uint32 // physical base (section) or second-level table address
	Domain uint8
}

// WalkL1 decodes every non-fault first-level descriptor under the
// currently configured TTB, for the mmu-dump CLI subcommand: a 4096-entry
// scan rather than a TLB-populating translation, since the point is to see
// the table as configured, not to resolve any particular address.
func (m *MMU) WalkL1() []L1Slot {
	ttb := m.CP15.translationTableBase()
	var slots []L1Slot
	for i := 0; i < 4096; i++ {
		vaddr := uint32(i) << 20
		l1Addr := (ttb & 0xFFFFC000) | ((vaddr >> 18) & 0x3FFC)
		l1 := m.Bus.Read32(l1Addr)
		domain := uint8((l1 >> 5) & 0xf)
		switch l1 & 0x3 {
		case 0x0:
			continue
		case 0x1:
			slots = append(slots, L1Slot{VAddr: vaddr, Kind: "coarse", Target: l1 & 0xFFFFFC00, Domain: domain})
		case 0x2:
			slots = append(slots, L1Slot{VAddr: vaddr, Kind: "section", Target: l1 & 0xFFF00000, Domain: domain})
		default:
			slots = append(slots, L1Slot{VAddr: vaddr, Kind: "fine", Target: l1 & 0xFFFFF000, Domain: domain})
		}
	}
	return slots
}

func (m *MMU) walkLevel2(l2Addr uint32, domain uint8, vaddr uint32, fine bool) (tlbEntry, FaultKind, uint8) {
	l2 := m.Bus.Read32(l2Addr)

	switch l2 & 0x3 {
	case 0x0:
		return tlbEntry{}, FaultTranslationPage, domain
	case 0x1: // large page, 64KB
		e := tlbEntry{physBase: l2 & 0xFFFF0000, size: sizeLargePage, domain: domain}
		for i := 0; i < 4; i++ {
			e.ap[i] = uint8((l2 >> (4 + i*2)) & 0x3)
		}
		return e, FaultNone, domain
	case 0x2: // small page, 4KB
		e := tlbEntry{physBase: l2 & 0xFFFFF000, size: sizeSmallPage, domain: domain}
		for i := 0; i < 4; i++ {
			e.ap[i] = uint8((l2 >> (4 + i*2)) & 0x3)
		}
		return e, FaultNone, domain
	default: // 0x3, tiny page, 1KB, fine tables only
		if !fine {
			return tlbEntry{}, FaultTranslationPage, domain
		}
		e := tlbEntry{physBase: l2 & 0xFFFFFC00, size: sizeTinyPage, domain: domain}
		e.ap[0] = uint8((l2 >> 4) & 0x3)
		return e, FaultNone, domain
	}
}

// checkPermission applies the two-stage protection check: domain access
// control first (no-access/client/manager/reserved), then, for a client
// domain, the AP field against the current privilege level and the S/R
// control bits.
func (m *MMU) checkPermission(e tlbEntry, vaddr uint32, write, exec bool) error {
	dac := m.CP15.domainAccess(e.domain)
	switch dac {
	case domainNoAccess:
		m.CP15.recordFault(vaddr, FaultDomain, e.domain)
		return errors.Errorf(errors.DomainFault, vaddr, e.domain)
	case domainManager:
		return nil // manager domains bypass the AP check entirely
	case domainClient:
		// fall through to AP check
	default:
		m.CP15.recordFault(vaddr, FaultDomain, e.domain)
		return errors.Errorf(errors.DomainFault, vaddr, e.domain)
	}

	ap := e.apFor(vaddr)
	if !m.apAllows(ap, write, m.CP15.privileged()) {
		m.CP15.recordFault(vaddr, FaultPermission, e.domain)
		return errors.Errorf(errors.PermissionFault, vaddr)
	}
	return nil
}

// apAllows interprets the 2-bit AP field against the S/R system-control
// bits for the legacy no-AP encodings and the privileged/user split for the
// modern ones.
func (m *MMU) apAllows(ap uint8, write bool, privileged bool) bool {
	s, r := m.CP15.sAndRBits()
	switch ap {
	case 0x0: // AP 00: permission governed by S/R bits
		if !s && !r {
			return false
		}
		if s && !r {
			return privileged && !write
		}
		if !s && r {
			return !write
		}
		return false // reserved combination
	case 0x1: // privileged access only
		return privileged
	case 0x2: // privileged read/write, user read-only
		return privileged || !write
	default: // 0x3: full access
		return true
	}
}
