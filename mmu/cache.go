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

const (
	cacheLineBytes = 32
	cacheWays      = 4
	cacheSets      = 128 // 4-way x 128 sets x 32B = 16KB, ARM926EJ-S's default
)

type cacheLine struct {
	valid bool
	dirty bool
	tag   uint32
	data  [cacheLineBytes]byte
}

// Cache is an N-way set-associative model of the data/unified cache. It
// does not sit in the hot read/write path (loads and stores go straight to
// Bus; cycle-accurate cache timing is not modelled) but it does track line
// allocation, dirty state and the clean/invalidate maintenance operations
// CP15 c7 exposes, which matters for correctness of self-modifying code and
// DMA-visible writes through the write buffer.
type Cache struct {
	sets [cacheSets][cacheWays]cacheLine
	rr   [cacheSets]int // round-robin way pointer, used for allocation
}

func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) index(addr uint32) (set int, tag uint32) {
	set = int((addr / cacheLineBytes) % cacheSets)
	tag = addr &^ (cacheLineBytes - 1)
	tag /= cacheLineBytes * cacheSets
	return
}

// Lookup reports whether addr's line is resident, and its way index if so.
func (c *Cache) Lookup(addr uint32) (way int, ok bool) {
	set, tag := c.index(addr)
	for w := 0; w < cacheWays; w++ {
		if c.sets[set][w].valid && c.sets[set][w].tag == tag {
			return w, true
		}
	}
	return 0, false
}

// Allocate brings addr's line into the cache, evicting round-robin within
// the set if every way is occupied. It returns whether the evicted line was
// dirty, so the caller can write it back before reuse.
func (c *Cache) Allocate(addr uint32) (evictedDirty bool) {
	set, tag := c.index(addr)
	for w := 0; w < cacheWays; w++ {
		if !c.sets[set][w].valid {
			c.sets[set][w] = cacheLine{valid: true, tag: tag}
			return false
		}
	}
	w := c.rr[set]
	c.rr[set] = (w + 1) % cacheWays
	evictedDirty = c.sets[set][w].dirty
	c.sets[set][w] = cacheLine{valid: true, tag: tag}
	return evictedDirty
}

// MarkDirty flags addr's resident line as holding a write not yet
// propagated to memory (write-back mode only; write-through chips never set
// this).
func (c *Cache) MarkDirty(addr uint32) {
	if w, ok := c.Lookup(addr); ok {
		set, _ := c.index(addr)
		c.sets[set][w].dirty = true
	}
}

// InvalidateAll drops every line without writing back: CP15 c7 "invalidate
// I+D cache", used on cache-disable and on some context switches.
func (c *Cache) InvalidateAll() {
	for s := range c.sets {
		for w := range c.sets[s] {
			c.sets[s][w] = cacheLine{}
		}
	}
}

// InvalidateMVA drops the single line covering addr, if resident.
func (c *Cache) InvalidateMVA(addr uint32) {
	set, tag := c.index(addr)
	for w := 0; w < cacheWays; w++ {
		if c.sets[set][w].valid && c.sets[set][w].tag == tag {
			c.sets[set][w] = cacheLine{}
			return
		}
	}
}

// CleanMVA clears the dirty bit on addr's line without discarding it,
// modelling a write-back to memory that this interpreter doesn't need to
// perform explicitly (loads/stores already go straight to Bus).
func (c *Cache) CleanMVA(addr uint32) {
	if w, ok := c.Lookup(addr); ok {
		set, _ := c.index(addr)
		c.sets[set][w].dirty = false
	}
}

// Maintain dispatches a CP15 c7 maintenance write by its (crm, opc2) tuple.
func (c *Cache) Maintain(crm, opc2 uint8, v uint32) error {
	switch {
	case crm == 7 && opc2 == 0:
		c.InvalidateAll()
	case (crm == 5 || crm == 6) && opc2 == 1:
		c.InvalidateMVA(v)
	case (crm == 10 || crm == 14) && opc2 == 1:
		c.CleanMVA(v)
	}
	return nil
}
