package track

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntegerKey_CompareDistanceAddDistance(t *testing.T) {
	a := IntegerKey[int](10)
	b := IntegerKey[int](25)

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))

	d := a.Distance(b)
	assert.Equal(t, IntegerDistance[int](15), d)
	assert.Equal(t, b, a.AddDistance(d))
	assert.Equal(t, a, b.AddDistance(d.Neg()))
}

func TestIntegerDistance_Arithmetic(t *testing.T) {
	d := IntegerDistance[int](7)
	e := IntegerDistance[int](3)

	assert.Equal(t, IntegerDistance[int](10), d.Add(e))
	assert.Equal(t, IntegerDistance[int](4), d.Sub(e))
	assert.Equal(t, IntegerDistance[int](-7), d.Neg())
	assert.Equal(t, IntegerDistance[int](7), d.Abs())
	assert.Equal(t, IntegerDistance[int](-7), d.Neg().Abs().Neg())
	assert.Equal(t, IntegerDistance[int](21), d.Scale(3))
}

func TestIntegerDistance_FloorDiv(t *testing.T) {
	cases := []struct {
		d, other IntegerDistance[int]
		want     int
	}{
		{d: 10, other: 3, want: 3},
		{d: -10, other: 3, want: -4},
		{d: 10, other: -3, want: -4},
		{d: -10, other: -3, want: 3},
		{d: 9, other: 3, want: 3},
		{d: 0, other: 5, want: 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.d.FloorDiv(tc.other), "%d / %d", tc.d, tc.other)
	}
}

func TestTimeKey_CompareDistanceAddDistance(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	a := TimeKey(base)
	b := TimeKey(base.Add(90 * time.Second))

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))

	d := a.Distance(b)
	assert.Equal(t, Duration(90*time.Second), d)
	assert.Equal(t, b, a.AddDistance(d))
}

func TestDuration_FloorDiv(t *testing.T) {
	cases := []struct {
		d, other Duration
		want     int
	}{
		{d: Duration(10 * time.Second), other: Duration(3 * time.Second), want: 3},
		{d: Duration(-10 * time.Second), other: Duration(3 * time.Second), want: -4},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.d.FloorDiv(tc.other))
	}
}
