package track

import (
	"time"

	"golang.org/x/exp/constraints"
)

// TrackKey is the capability a caller's key type must provide: a total
// order, and addition by a signed distance. The zero value of K is its
// default key.
type TrackKey[K any, D any] interface {
	// Compare returns a negative number, zero, or a positive number as this
	// key is less than, equal to, or greater than other.
	Compare(other K) int
	// Distance returns the signed distance from this key to other, i.e.
	// other - this.
	Distance(other K) D
	// AddDistance returns a new key offset by d.
	AddDistance(d D) K
}

// TrackKeyDistance is the capability a caller's distance type must provide.
// FloorDiv must round toward negative infinity, not toward zero, so that
// negative dividends (which arise when a key lies before a track's
// key_start) produce correct grid-cell indices.
type TrackKeyDistance[D any] interface {
	Add(other D) D
	Sub(other D) D
	Neg() D
	// Compare returns a negative number, zero, or a positive number as this
	// distance is less than, equal to, or greater than other.
	Compare(other D) int
	Abs() D
	Scale(factor int) D
	// FloorDiv returns floor(this / other), as a non-negative count when
	// this and other share the same sign, per Track's own usage; the
	// general (possibly negative) case is still required to round toward
	// negative infinity, matching integer semantics rather than truncating
	// division.
	FloorDiv(other D) int
}

// IntegerKey is a TrackKey implementation for any signed integer
// coordinate (frame counters, tick counts, sequence numbers), with
// IntegerDistance[T] as its distance type.
type IntegerKey[T constraints.Signed] T

func (k IntegerKey[T]) Compare(other IntegerKey[T]) int {
	switch {
	case k < other:
		return -1
	case k > other:
		return 1
	default:
		return 0
	}
}

func (k IntegerKey[T]) Distance(other IntegerKey[T]) IntegerDistance[T] {
	return IntegerDistance[T](other - k)
}

func (k IntegerKey[T]) AddDistance(d IntegerDistance[T]) IntegerKey[T] {
	return k + IntegerKey[T](d)
}

// IntegerDistance is the TrackKeyDistance counterpart of IntegerKey[T].
type IntegerDistance[T constraints.Signed] T

func (d IntegerDistance[T]) Add(other IntegerDistance[T]) IntegerDistance[T] { return d + other }
func (d IntegerDistance[T]) Sub(other IntegerDistance[T]) IntegerDistance[T] { return d - other }
func (d IntegerDistance[T]) Neg() IntegerDistance[T]                        { return -d }

func (d IntegerDistance[T]) Compare(other IntegerDistance[T]) int {
	switch {
	case d < other:
		return -1
	case d > other:
		return 1
	default:
		return 0
	}
}

func (d IntegerDistance[T]) Abs() IntegerDistance[T] {
	if d < 0 {
		return -d
	}
	return d
}

func (d IntegerDistance[T]) Scale(factor int) IntegerDistance[T] {
	return d * IntegerDistance[T](factor)
}

func (d IntegerDistance[T]) FloorDiv(other IntegerDistance[T]) int {
	q := d / other
	if (d%other != 0) && ((d < 0) != (other < 0)) {
		q--
	}
	return int(q)
}

// TimeKey is a TrackKey implementation for time.Time coordinates, with
// Duration as its distance type.
type TimeKey time.Time

func (k TimeKey) Compare(other TimeKey) int {
	return time.Time(k).Compare(time.Time(other))
}

func (k TimeKey) Distance(other TimeKey) Duration {
	return Duration(time.Time(other).Sub(time.Time(k)))
}

func (k TimeKey) AddDistance(d Duration) TimeKey {
	return TimeKey(time.Time(k).Add(time.Duration(d)))
}

// Duration is the TrackKeyDistance counterpart of TimeKey.
type Duration time.Duration

func (d Duration) Add(other Duration) Duration { return d + other }
func (d Duration) Sub(other Duration) Duration { return d - other }
func (d Duration) Neg() Duration               { return -d }

func (d Duration) Compare(other Duration) int {
	switch {
	case d < other:
		return -1
	case d > other:
		return 1
	default:
		return 0
	}
}

func (d Duration) Abs() Duration {
	if d < 0 {
		return -d
	}
	return d
}

func (d Duration) Scale(factor int) Duration {
	return d * Duration(factor)
}

func (d Duration) FloorDiv(other Duration) int {
	q := d / other
	if (d%other != 0) && ((d < 0) != (other < 0)) {
		q--
	}
	return int(q)
}
