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

// Package mmu is the two-level page-table walk, TLB, domain/AP permission
// check, fault classification and the CP15 system control coprocessor that
// configures all of it.
package mmu

import (
	"github.com/silicontrip/armcore/bus"
	"github.com/silicontrip/armcore/errors"
)

// FaultKind classifies why a translation failed, feeding CP15's c5 Fault
// Status Register encoding.
type FaultKind int

const (
	FaultNone FaultKind = iota
	FaultTranslationSection
	FaultTranslationPage
	FaultDomain
	FaultPermission
	FaultAlignment
)

// fsrEncoding returns the 4-bit FS field CP15 c5 reports for each fault
// kind, following the ARMv4/v5 FSR encoding (section/page translation,
// domain, permission).
func (k FaultKind) fsrEncoding() uint32 {
	switch k {
	case FaultTranslationSection:
		return 0x5
	case FaultTranslationPage:
		return 0x7
	case FaultDomain:
		return 0x9
	case FaultPermission:
		return 0xd
	case FaultAlignment:
		return 0x1
	default:
		return 0x0
	}
}

// MMU is the complete translation unit: CP15, TLB, cache and write buffer,
// wired to a physical Bus. A chip with MMU disabled (CP15 control bit 0
// clear) still exists as a value but Translate becomes the identity
// function, matching real silicon: flat addressing until software turns the
// MMU on.
type MMU struct {
	CP15 *CP15
	TLB  *TLB
	Cache *Cache
	WB   *WriteBuffer
	Bus  bus.Bus

	onHighVectorsChange func(bool)
}

// New builds an MMU for the given chip profile's legal CP15 tuple table,
// backed by phys.
func New(profile ChipProfile, phys bus.Bus, highVectorsHook func(bool)) *MMU {
	m := &MMU{
		CP15:                NewCP15(profile),
		TLB:                 NewTLB(),
		Cache:               NewCache(),
		WB:                  NewWriteBuffer(),
		Bus:                 phys,
		onHighVectorsChange: highVectorsHook,
	}
	m.CP15.highVectorsHook = highVectorsHook
	m.CP15.cacheOpHook = m.Cache.Maintain
	m.CP15.tlbOpHook = m.TLB.Maintain
	return m
}

// Translate resolves a virtual address for an access of the given kind.
// size is the access width in bytes (1, 2 or 4); with CP15's
// alignment-fault-enable bit set, a data access (exec false) whose vaddr
// isn't size-aligned faults here before anything else is consulted, on a
// chip with the MMU enabled or not: alignment checking is a property of
// CP15 control bit 1, independent of the MMU enable bit. With it clear, a
// misaligned word access is left to the core's readWordRotated to handle
// (pre-v6 rotate-on-load semantics) and a misaligned halfword access simply
// rounds down to the containing halfword.
//
// With the MMU control bit clear, everything past the alignment check is
// the identity function (flat addressing); the TLB, cache and write buffer
// are still live underneath so that the same model serves a no-MMU boot ROM
// as well as a fully mapped OS.
func (m *MMU) Translate(vaddr uint32, size uint8, write, exec bool) (uint32, error) {
	if !exec && size > 1 && vaddr&uint32(size-1) != 0 && m.CP15.alignmentTrap() {
		m.CP15.recordFault(vaddr, FaultAlignment, 0)
		return 0, errors.Errorf(errors.AlignmentFault, vaddr)
	}

	if !m.CP15.mmuEnabled() {
		return vaddr, nil
	}

	mva := m.CP15.processIDRemap(vaddr)
	pid := m.CP15.pid

	if e, ok := m.TLB.Lookup(pid, mva); ok {
		if err := m.checkPermission(e, vaddr, write, exec); err != nil {
			return 0, err
		}
		return e.translate(mva), nil
	}

	e, fault, domain := m.walk(pid, mva)
	if fault != FaultNone {
		m.CP15.recordFault(vaddr, fault, domain)
		return 0, errors.Errorf(errors.TranslationFault, vaddr)
	}

	m.TLB.Insert(pid, mva, e)

	if err := m.checkPermission(e, vaddr, write, exec); err != nil {
		return 0, err
	}
	return e.translate(mva), nil
}
