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

package errors

import (
	"fmt"
	"strings"
)

// Values is the type used to specify arguments for FormattedErrors
type Values []interface{}

// curated errors allow code to specify a predefined error category and not
// worry too much about the message behind that error and how the message
// will be formatted on output. The category is an Errno rather than the raw
// template string, so Is/Has compare cheap integers and a rename of a
// message's wording in messages.go can never silently break a caller that
// was matching on the old text.
type curated struct {
	errno  Errno
	values Values
}

// Errorf creates a new curated error of the given category.
func Errorf(errno Errno, values ...interface{}) error {
	return curated{
		errno:  errno,
		values: values,
	}
}

// Error returns the normalised error message. Normalisation being the removal
// of duplicate adjacent error messsage parts.
//
// Implements the go language error interface.
func (er curated) Error() string {
	s := fmt.Errorf(messages[er.errno], er.values...).Error()

	// de-duplicate error message parts
	p := strings.SplitN(s, ": ", 3)
	if len(p) > 1 && p[0] == p[1] {
		return strings.Join(p[1:], ": ")
	}

	return strings.Join(p, ": ")
}

// Head returns the leading error's category.
//
// Similar to Is() but returns the Errno rather than a boolean. Useful for
// switches.
//
// If err is a plain, uncurated error, Head returns the zero Errno, which
// never names a real category.
func Head(err error) Errno {
	if er, ok := err.(curated); ok {
		return er.errno
	}
	return 0
}

// IsAny checks if error is being curated by this package
func IsAny(err error) bool {
	if err == nil {
		return false
	}

	if _, ok := err.(curated); ok {
		return true
	}
	return false
}

// Is checks if error belongs to a specific category
func Is(err error, errno Errno) bool {
	if err == nil {
		return false
	}

	if er, ok := err.(curated); ok {
		return er.errno == errno
	}
	return false
}

// Has checks if the category appears anywhere in the error's wrapped chain
func Has(err error, errno Errno) bool {
	if err == nil {
		return false
	}

	if !IsAny(err) {
		return false
	}

	if Is(err, errno) {
		return true
	}

	for i := range err.(curated).values {
		if e, ok := err.(curated).values[i].(curated); ok {
			if Has(e, errno) {
				return true
			}
		}
	}

	return false
}
