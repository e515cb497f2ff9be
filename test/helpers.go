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

// Package test collects the small assertion helpers used throughout this
// module's test files, in place of ad-hoc t.Errorf calls at every call site.
package test

import (
	"fmt"
	"math"
	"testing"
)

// ExpectSuccess fails the test unless v indicates success: a nil error, or a
// bool that is true.
func ExpectSuccess(t *testing.T, v interface{}) {
	t.Helper()
	switch e := v.(type) {
	case nil:
		return
	case error:
		t.Errorf("unexpected failure: %v", e)
	case bool:
		if !e {
			t.Errorf("unexpected failure")
		}
	default:
		t.Errorf("unexpected value passed to ExpectSuccess: %v", v)
	}
}

// ExpectFailure fails the test unless v indicates failure: a non-nil error,
// or a bool that is false.
func ExpectFailure(t *testing.T, v interface{}) {
	t.Helper()
	switch e := v.(type) {
	case nil:
		t.Errorf("expected failure but got none")
	case error:
		return
	case bool:
		if e {
			t.Errorf("expected failure but got none")
		}
	default:
		t.Errorf("unexpected value passed to ExpectFailure: %v", v)
	}
}

// ExpectEquality fails the test unless got == want.
func ExpectEquality(t *testing.T, got, want interface{}) {
	t.Helper()
	if got != want {
		t.Errorf("values are not equal: got %v, wanted %v", got, want)
	}
}

// ExpectInequality fails the test if got == want.
func ExpectInequality(t *testing.T, got, want interface{}) {
	t.Helper()
	if got == want {
		t.Errorf("values are equal but inequality was expected: %v", got)
	}
}

// ExpectApproximate fails the test unless got is within tolerance of want,
// tolerance being a fraction of want (0.1 accepts anything within 10%).
func ExpectApproximate(t *testing.T, got, want, tolerance float64) {
	t.Helper()
	if math.Abs(got-want) > math.Abs(want*tolerance) {
		t.Errorf("values are not approximately equal: got %v, wanted %v (tolerance %v)", got, want, tolerance)
	}
}

// Equate is a terser ExpectEquality, returning whether the values matched
// rather than only recording a test failure, which is convenient in table
// tests that want to report a custom message on mismatch.
func Equate(t *testing.T, got, want interface{}) bool {
	t.Helper()
	if got != want {
		t.Errorf("values are not equal: got %v, wanted %v", got, want)
		return false
	}
	return true
}

// Equatef is Equate with a caller-supplied failure message.
func Equatef(t *testing.T, got, want interface{}, format string, args ...interface{}) bool {
	t.Helper()
	if got != want {
		t.Errorf("%s: got %v, wanted %v", fmt.Sprintf(format, args...), got, want)
		return false
	}
	return true
}
