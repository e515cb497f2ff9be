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

// Package config is a disk-backed preferences layer: typed values registered
// under named keys and saved to or loaded from a flat `key :: value` file.
// Neither the interpreter core nor cmd/armcore imports it; cmd/armcore builds
// its cpu.ChipConfig from cpu.Profile and command-line flags.
package config

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/silicontrip/armcore/errors"
)

// WarningBoilerPlate is written as the first line of every saved preferences
// file.
const WarningBoilerPlate = "# generated file: do not edit by hand"

// Value is the dynamic type stored by a Disk entry.
type Value interface{}

// entry pairs a key with the getter/setter pair that understands its
// concrete Value type.
type entry struct {
	key string
	set func(Value) error
	get func() Value
}

// Disk is a flat `key :: value` preferences file together with the set of
// Go values it has been asked to track.
type Disk struct {
	filename string
	entries  []entry
	index    map[string]int
}

// NewDisk prepares (but does not yet read) a preferences file at filename.
func NewDisk(filename string) (*Disk, error) {
	return &Disk{
		filename: filename,
		index:    make(map[string]int),
	}, nil
}

// settable is implemented by every type in this package that can be
// registered with a Disk.
type settable interface {
	Set(Value) error
	get() Value
}

// Add registers v under key. Subsequent Load/Save calls read and write it.
func (d *Disk) Add(key string, v settable) error {
	if _, ok := d.index[key]; ok {
		return errors.Errorf(errors.Prefs, fmt.Sprintf("duplicate key %q", key))
	}
	d.index[key] = len(d.entries)
	d.entries = append(d.entries, entry{key: key, set: v.Set, get: v.get})
	return nil
}

// Save writes every registered entry to the preferences file, one per line,
// keys sorted for a stable diff. Entries already in the file under keys this
// Disk has not registered are kept.
func (d *Disk) Save() error {
	values := make(map[string]string)
	if old, err := os.ReadFile(d.filename); err == nil {
		for _, line := range strings.Split(string(old), "\n") {
			if k, v, ok := splitKeyValue(line); ok {
				values[k] = v
			}
		}
	}
	for _, e := range d.entries {
		values[e.key] = fmt.Sprintf("%v", e.get())
	}

	f, err := os.Create(d.filename)
	if err != nil {
		return errors.Errorf(errors.Prefs, err)
	}
	defer f.Close()

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, WarningBoilerPlate)
	for _, k := range keys {
		fmt.Fprintf(w, "%s :: %s\n", k, values[k])
	}
	return w.Flush()
}

// Load reads the preferences file and applies every line it recognises to a
// registered entry. Unrecognised keys are ignored.
func (d *Disk) Load() error {
	f, err := os.Open(d.filename)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Errorf(errors.PrefsNoFile, d.filename)
		}
		return errors.Errorf(errors.Prefs, err)
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	first := true
	for s.Scan() {
		line := s.Text()
		if first {
			first = false
			if strings.HasPrefix(line, "#") {
				continue
			}
		}
		k, v, ok := splitKeyValue(line)
		if !ok {
			continue
		}
		idx, ok := d.index[k]
		if !ok {
			continue
		}
		if err := d.entries[idx].set(v); err != nil {
			return errors.Errorf(errors.Prefs, err)
		}
	}
	return s.Err()
}

func splitKeyValue(line string) (key, value string, ok bool) {
	parts := strings.SplitN(line, "::", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}
