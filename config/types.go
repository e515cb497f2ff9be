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

package config

import (
	"fmt"
	"strconv"

	"github.com/silicontrip/armcore/errors"
)

// Bool is a disk-backed boolean value.
type Bool struct {
	v bool
}

func (b *Bool) Set(v Value) error {
	switch t := v.(type) {
	case bool:
		b.v = t
	case string:
		p, err := strconv.ParseBool(t)
		if err != nil {
			return errors.Errorf(errors.PrefsNotValid, t)
		}
		b.v = p
	default:
		return errors.Errorf(errors.PrefsNotValid, fmt.Sprintf("%v", v))
	}
	return nil
}

func (b *Bool) get() Value  { return b.v }
func (b *Bool) String() string { return strconv.FormatBool(b.v) }
func (b *Bool) Get() bool      { return b.v }

// String is a disk-backed string value with an optional maximum length.
type String struct {
	v      string
	maxLen int
}

func (s *String) Set(v Value) error {
	str, ok := v.(string)
	if !ok {
		return errors.Errorf(errors.PrefsNotValid, fmt.Sprintf("%v", v))
	}
	if s.maxLen > 0 && len(str) > s.maxLen {
		str = str[:s.maxLen]
	}
	s.v = str
	return nil
}

func (s *String) get() Value  { return s.v }
func (s *String) String() string { return s.v }

// SetMaxLen imposes a maximum string length, cropping the existing value.
// Zero removes the limit without restoring a previously-cropped value.
func (s *String) SetMaxLen(n int) {
	s.maxLen = n
	if n > 0 && len(s.v) > n {
		s.v = s.v[:n]
	}
}

// Float is a disk-backed floating point value.
type Float struct {
	v float64
}

func (f *Float) Set(v Value) error {
	switch t := v.(type) {
	case float64:
		f.v = t
	case float32:
		f.v = float64(t)
	case string:
		p, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return errors.Errorf(errors.PrefsNotValid, t)
		}
		f.v = p
	default:
		return errors.Errorf(errors.PrefsNotValid, fmt.Sprintf("%v", v))
	}
	return nil
}

func (f *Float) get() Value     { return f.v }
func (f *Float) String() string { return strconv.FormatFloat(f.v, 'g', -1, 64) }
func (f *Float) Get() float64   { return f.v }

// Int is a disk-backed integer value.
type Int struct {
	v int
}

func (i *Int) Set(v Value) error {
	switch t := v.(type) {
	case int:
		i.v = t
	case string:
		p, err := strconv.Atoi(t)
		if err != nil {
			return errors.Errorf(errors.PrefsNotValid, t)
		}
		i.v = p
	default:
		return errors.Errorf(errors.PrefsNotValid, fmt.Sprintf("%v", v))
	}
	return nil
}

func (i *Int) get() Value     { return i.v }
func (i *Int) String() string { return strconv.Itoa(i.v) }
func (i *Int) Get() int       { return i.v }

// Generic adapts an arbitrary load/save pair (closing over caller-owned
// state, as TestGeneric does over a width/height pair) to the settable
// interface.
type Generic struct {
	setFn func(Value) error
	getFn func() Value
}

// NewGeneric builds a Generic entry from a setter and getter closure.
func NewGeneric(set func(Value) error, get func() Value) *Generic {
	return &Generic{setFn: set, getFn: get}
}

func (g *Generic) Set(v Value) error { return g.setFn(v) }
func (g *Generic) get() Value        { return g.getFn() }
