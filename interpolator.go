package track

// Interpolator is the caller-supplied combiner invoked by Track.Interpolate.
// It must be a pure function of its five inputs and must not mutate any
// track state.
type Interpolator[K TrackKey[K, D], D TrackKeyDistance[D], Data any, NA NotAlignedPayload[Data], O any] interface {
	Interpolate(key K, lhsKey K, lhs Node[K, Data, NA], rhsKey K, rhs Node[K, Data, NA]) O
}

// InterpolatorFunc adapts a plain function to the Interpolator interface.
type InterpolatorFunc[K TrackKey[K, D], D TrackKeyDistance[D], Data any, NA NotAlignedPayload[Data], O any] func(key, lhsKey K, lhs Node[K, Data, NA], rhsKey K, rhs Node[K, Data, NA]) O

// Interpolate implements Interpolator.
func (f InterpolatorFunc[K, D, Data, NA, O]) Interpolate(key, lhsKey K, lhs Node[K, Data, NA], rhsKey K, rhs Node[K, Data, NA]) O {
	return f(key, lhsKey, lhs, rhsKey, rhs)
}
