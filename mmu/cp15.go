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

type domainAccessControl uint8

const (
	domainNoAccess domainAccessControl = 0x0
	domainClient   domainAccessControl = 0x1
	domainReserved domainAccessControl = 0x2
	domainManager  domainAccessControl = 0x3
)

// control register bit positions (c1).
const (
	ctrlM  = 1 << 0 // MMU enable
	ctrlA  = 1 << 1 // alignment fault checking enable
	ctrlC  = 1 << 2 // data cache enable
	ctrlW  = 1 << 3 // write buffer enable
	ctrlS  = 1 << 8 // system protection bit
	ctrlR  = 1 << 9 // ROM protection bit
	ctrlZ  = 1 << 11 // branch prediction enable
	ctrlI  = 1 << 12 // instruction cache enable
	ctrlV  = 1 << 13 // high vectors
)

// CP15 is the system control coprocessor: MMU/cache control, translation
// table base, domain access control, fault status/address, process ID
// remap and context ID, gated per chip by a ChipProfile's legal tuple
// table.
type CP15 struct {
	profile ChipProfile

	control      uint32
	ttb          uint32
	dacr         uint32 // 16 x 2-bit domain access control fields
	fsr          uint32
	far          uint32
	pid          uint32 // FCSE process ID
	contextID    uint32
	highVectorsHook func(bool)

	// cacheOpHook/tlbOpHook handle the crn=7/crn=8 maintenance operations
	// (clean/invalidate cache lines, invalidate TLB entries); CP15 itself
	// holds no reference to Cache/TLB, MMU wires these in at construction.
	cacheOpHook func(crm, opc2 uint8, v uint32) error
	tlbOpHook   func(crm, opc2 uint8, v uint32) error

	isPrivileged bool
}

// SetPrivileged is pushed by the core on every mode switch; CP15 has no
// register-file access of its own and needs this to resolve AP checks.
func (c *CP15) SetPrivileged(privileged bool) { c.isPrivileged = privileged }

// NewCP15 builds a CP15 for the given chip profile, reset state all zero
// (MMU and caches disabled) per the architecture.
func NewCP15(profile ChipProfile) *CP15 {
	return &CP15{profile: profile}
}

func (c *CP15) mmuEnabled() bool      { return c.control&ctrlM != 0 }
func (c *CP15) alignmentTrap() bool   { return c.control&ctrlA != 0 }
func (c *CP15) dataCacheEnabled() bool { return c.control&ctrlC != 0 }
func (c *CP15) writeBufferEnabled() bool { return c.control&ctrlW != 0 }
func (c *CP15) instrCacheEnabled() bool { return c.control&ctrlI != 0 }

func (c *CP15) translationTableBase() uint32 { return c.ttb }

func (c *CP15) domainAccess(domain uint8) domainAccessControl {
	return domainAccessControl((c.dacr >> (domain * 2)) & 0x3)
}

func (c *CP15) sAndRBits() (s, r bool) {
	return c.control&ctrlS != 0, c.control&ctrlR != 0
}

// privileged reports whether the current execution is privileged for the
// purpose of the AP check. The core pushes this through SetPrivileged on
// every mode switch; MMU has no register-file access of its own.
func (c *CP15) privileged() bool { return c.isPrivileged }

// processIDRemap applies the FCSE process ID to the top 7 bits of a
// virtual address below 32MB, the legacy process-space-multiplexing
// scheme some of this chip family still supports.
func (c *CP15) processIDRemap(vaddr uint32) uint32 {
	if vaddr >= 0x02000000 || c.pid == 0 {
		return vaddr
	}
	return (c.pid << 25) | (vaddr & 0x01FFFFFF)
}

func (c *CP15) recordFault(addr uint32, kind FaultKind, domain uint8) {
	c.far = addr
	c.fsr = kind.fsrEncoding() | (uint32(domain) << 4)
}

// MRC reads one of the registers this CP15 model implements. The chip
// profile's Legal table is checked before returning anything: an illegal
// tuple on this chip is a caller bug (wired through coproc as an error,
// which the core turns into an Undefined Instruction exception).
func (c *CP15) MRC(crn, opc1, crm, opc2 uint8) (uint32, error) {
	if !c.profile.Legal(crn, opc1, crm, opc2) {
		return 0, errors.Errorf(errors.IllegalCP15Tuple, crn, opc1, crm, opc2)
	}
	switch crn {
	case 0:
		return c.profile.IDRegister(opc2), nil
	case 1:
		return c.control, nil
	case 2:
		return c.ttb, nil
	case 3:
		return c.dacr, nil
	case 5:
		return c.fsr, nil
	case 6:
		return c.far, nil
	case 13:
		if opc2 == 1 {
			return c.contextID, nil
		}
		return c.pid, nil
	}
	return 0, nil
}

func (c *CP15) MCR(crn, opc1, crm, opc2 uint8, v uint32) error {
	if !c.profile.Legal(crn, opc1, crm, opc2) {
		return errors.Errorf(errors.IllegalCP15Tuple, crn, opc1, crm, opc2)
	}
	switch crn {
	case 1:
		prevV := c.control&ctrlV != 0
		c.control = v
		newV := c.control&ctrlV != 0
		if prevV != newV && c.highVectorsHook != nil {
			c.highVectorsHook(newV)
		}
	case 2:
		c.ttb = v
	case 3:
		c.dacr = v
	case 5:
		c.fsr = v
	case 6:
		c.far = v
	case 7:
		if c.cacheOpHook != nil {
			return c.cacheOpHook(crm, opc2, v)
		}
	case 8:
		if c.tlbOpHook != nil {
			return c.tlbOpHook(crm, opc2, v)
		}
	case 13:
		if opc2 == 1 {
			c.contextID = v
		} else {
			c.pid = v
		}
	}
	return nil
}
