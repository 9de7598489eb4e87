package track

import "golang.org/x/exp/slices"

// Validate checks the structural invariants a Track must always satisfy,
// returning the first violation it finds. It is intended for tests and
// debugging, not for the hot path: it walks the entire buffer.
//
// A Track built only through its exported operations should never fail
// Validate; a non-nil return indicates a bug in this package.
func (t *Track[K, D, Data, NA, O]) Validate() error {
	if t.buf.Len() == 0 {
		if t.ranges.Len() != 0 {
			return errValidate("empty track must have no ranges")
		}
		if t.keyStart.Compare(t.keyEnd) != 0 {
			return errValidate("empty track must have KeyStart() == KeyEnd()")
		}
		return nil
	}

	keys := make([]K, t.buf.Len())
	for i := 0; i < t.buf.Len(); i++ {
		node := t.buf.Get(i)
		if node.IsAligned() {
			keys[i] = t.increaseKeyByStep(t.keyStart, t.rangeContaining(i))
		} else {
			na, _ := node.NotAligned()
			keys[i] = na.Key
		}
	}

	if !slices.IsSortedFunc(keys, func(a, b K) int { return a.Compare(b) }) {
		return errValidate("node keys must be non-decreasing")
	}

	first, _ := t.buf.First()
	if !first.IsAligned() {
		return errValidate("first node must be aligned")
	}

	last, _ := t.buf.Last()
	lastKey := keys[len(keys)-1]
	if lastKey.Compare(t.keyEnd) != 0 {
		return errValidate("KeyEnd() must equal the leading node's key")
	}
	if last.IsAligned() && t.nextStep.Compare(t.alignedStep) != 0 {
		return errValidate("nextStep must equal alignedStep when the leading node is aligned")
	}

	if t.ranges.Len() > 0 {
		rg, _ := t.ranges.Last()
		if rg.end != t.buf.Len()-1 {
			return errValidate("last range must end at the buffer's leading edge")
		}
	}

	return nil
}

// rangeContaining returns the grid-cell index owning buffer position i.
func (t *Track[K, D, Data, NA, O]) rangeContaining(i int) int {
	for r := 0; r < t.ranges.Len(); r++ {
		rg := t.ranges.Get(r)
		if i >= rg.begin && i < rg.end {
			return r
		}
	}
	return t.ranges.Len()
}

type validateError string

func (e validateError) Error() string { return "track: validate: " + string(e) }

func errValidate(msg string) error { return validateError(msg) }
