package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBisect(t *testing.T) {
	data := []int{1, 20, 300, 4000, 50000}
	at := func(i int) int { return data[i] }
	cmp := func(a, b int) int { return a - b }

	cases := []struct {
		target   int
		wantIdx  int
		wantElem int
	}{
		{target: 1, wantIdx: 0, wantElem: 1},
		{target: 10, wantIdx: 0, wantElem: 1},
		{target: 20, wantIdx: 1, wantElem: 20},
		{target: 21, wantIdx: 1, wantElem: 20},
		{target: 300, wantIdx: 2, wantElem: 300},
		{target: 301, wantIdx: 2, wantElem: 300},
		{target: 4000, wantIdx: 3, wantElem: 4000},
		{target: 4001, wantIdx: 3, wantElem: 4000},
		{target: 50000, wantIdx: 4, wantElem: 50000},
		{target: 999999, wantIdx: 4, wantElem: 50000},
	}

	for _, tc := range cases {
		idx, elem := Bisect(at, 0, len(data), tc.target, cmp)
		assert.Equal(t, tc.wantIdx, idx, "target=%d", tc.target)
		assert.Equal(t, tc.wantElem, elem, "target=%d", tc.target)
	}
}

func TestBisect_SingleElement(t *testing.T) {
	data := []int{5}
	at := func(i int) int { return data[i] }
	cmp := func(a, b int) int { return a - b }

	idx, elem := Bisect(at, 0, 1, 5, cmp)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 5, elem)

	idx, elem = Bisect(at, 0, 1, 100, cmp)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 5, elem)
}
