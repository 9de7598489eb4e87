package track

import (
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// trackRange is the half-open index range, into Track.buf, covering one
// grid cell: begin is the aligned node at the cell's grid key, end is
// either the first aligned node of the next cell, or (if the cell's
// leading edge is still open) a not-aligned node.
type trackRange struct {
	begin int
	end   int
}

// Track orchestrates the two-level ring-buffer index (nodes plus per-cell
// ranges) and the key/grid arithmetic described in the package doc.
//
// A Track is not safe for concurrent use; callers that need to share one
// across goroutines must serialize access externally (e.g. with a
// sync.Mutex per track).
type Track[K TrackKey[K, D], D TrackKeyDistance[D], Data any, NA NotAlignedPayload[Data], O any] struct {
	interpolator Interpolator[K, D, Data, NA, O]
	ranges       *RingBuffer[trackRange]
	buf          *RingBuffer[Node[K, Data, NA]]
	alignedStep  D
	nextStep     D
	keyStart     K
	keyEnd       K

	logger *logiface.Logger[*stumpy.Event]
}

// Option configures a Track at construction time.
type Option[K TrackKey[K, D], D TrackKeyDistance[D], Data any, NA NotAlignedPayload[Data], O any] func(*Track[K, D, Data, NA, O])

// WithLogger attaches a structured logger used for diagnostic (never
// control-flow-relevant) events: Reset/TruncateBack/CancelForward drop
// counts, and a warning when the backing buffer grows past its configured
// size. A nil
// logger (the default) disables all logging.
func WithLogger[K TrackKey[K, D], D TrackKeyDistance[D], Data any, NA NotAlignedPayload[Data], O any](logger *logiface.Logger[*stumpy.Event]) Option[K, D, Data, NA, O] {
	return func(t *Track[K, D, Data, NA, O]) { t.logger = logger }
}

// New constructs an empty Track with the given fixed size and grid step.
// It panics if trackSize is not greater than 1.
func New[K TrackKey[K, D], D TrackKeyDistance[D], Data any, NA NotAlignedPayload[Data], O any](
	interpolator Interpolator[K, D, Data, NA, O],
	trackSize int,
	alignedStep D,
	opts ...Option[K, D, Data, NA, O],
) *Track[K, D, Data, NA, O] {
	if trackSize <= 1 {
		panic("track: size must be greater than 1")
	}

	t := &Track[K, D, Data, NA, O]{
		interpolator: interpolator,
		ranges:       NewRingBuffer[trackRange](trackSize - 1),
		buf:          NewRingBuffer[Node[K, Data, NA]](trackSize),
		alignedStep:  alignedStep,
		nextStep:     alignedStep,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// KeyStart returns the key of the node at buffer position 0.
func (t *Track[K, D, Data, NA, O]) KeyStart() K { return t.keyStart }

// KeyEnd returns the key of the most recently pushed node (the leading
// edge). For an empty track, it equals KeyStart().
func (t *Track[K, D, Data, NA, O]) KeyEnd() K { return t.keyEnd }

// IsEmpty reports whether the track holds no nodes.
func (t *Track[K, D, Data, NA, O]) IsEmpty() bool { return t.buf.IsEmpty() }

// NodeStart returns the trailing-most node, if any.
func (t *Track[K, D, Data, NA, O]) NodeStart() (Node[K, Data, NA], bool) { return t.buf.First() }

// NodeEnd returns the leading-most node, if any.
func (t *Track[K, D, Data, NA, O]) NodeEnd() (Node[K, Data, NA], bool) { return t.buf.Last() }

// Reset clears the track entirely and re-anchors it at newKeyStart,
// returning the nodes it held, in buffer order.
func (t *Track[K, D, Data, NA, O]) Reset(newKeyStart K) Truncated[Node[K, Data, NA]] {
	t.ranges.Clear()
	t.keyStart = newKeyStart
	t.nextStep = t.alignedStep
	t.keyEnd = newKeyStart
	cleared := t.buf.Clear()

	if t.logger != nil {
		t.logger.Debug().Int(`cleared`, cleared.Len()).Log(`track reset`)
	}

	return cleared
}

// Interpolate invokes the configured Interpolator for key, bracketed by the
// two nearest samples. It fails with ErrKeyNotInRange if key is outside
// [KeyStart(), KeyEnd()).
func (t *Track[K, D, Data, NA, O]) Interpolate(key K) (O, error) {
	var zero O
	if key.Compare(t.keyStart) < 0 || key.Compare(t.keyEnd) >= 0 {
		return zero, ErrKeyNotInRange
	}

	rangeIdx := t.rangeIndex(key)
	nodes := t.findNearbyNodes(rangeIdx, key)

	output := t.interpolator.Interpolate(
		key,
		nodes.beginKey, t.buf.Get(nodes.beginIndex),
		nodes.endKey, t.buf.Get(nodes.endIndex),
	)
	return output, nil
}

// TruncateBack removes trailing samples whose keys are strictly less than
// the grid cell containing key. It never drops the final cell: a track
// with fewer than two ranges is left untouched.
func (t *Track[K, D, Data, NA, O]) TruncateBack(key K) {
	if !t.isForwardKey(key) || t.ranges.Len() < 2 {
		return
	}

	oldBegin, _ := t.ranges.First()
	rangeIdx := t.rangeIndex(key)
	removed := t.ranges.TruncateBack(rangeIdx)

	t.keyStart = t.increaseKeyByStep(t.keyStart, removed.Len())

	newBegin, _ := t.ranges.First()
	dropped := t.wrapBufIndex(newBegin.begin, oldBegin.begin)
	t.buf.TruncateBack(dropped)

	// Range indices are buffer positions, which shift down by the number of
	// nodes just dropped.
	for i := 0; i < t.ranges.Len(); i++ {
		rg := t.ranges.GetPtr(i)
		rg.begin -= dropped
		rg.end -= dropped
	}

	if t.logger != nil {
		t.logger.Debug().
			Int(`rangesDropped`, removed.Len()).
			Log(`track truncated trailing edge`)
	}
}

// CancelForward trims the leading edge so every remaining node has a key
// no greater than key, rolling KeyEnd() back accordingly, and returns the
// removed nodes in order from the cancellation boundary toward the old
// leading edge.
func (t *Track[K, D, Data, NA, O]) CancelForward(key K) Truncated[Node[K, Data, NA]] {
	if key.Compare(t.keyStart) <= 0 {
		var zero K
		return t.Reset(zero)
	}
	if key.Compare(t.keyEnd) > 0 || t.IsEmpty() {
		return emptyTruncated[Node[K, Data, NA]]()
	}

	var index int
	rangeIdx := 0

	if key.Compare(t.keyEnd) == 0 {
		rangeIdx = t.ranges.Len() - 1
		last := t.ranges.LastPtr()
		last.end--
		index = last.end
	} else {
		rangeIdx = t.rangeIndex(key)
		nodes := t.findNearbyNodes(rangeIdx, key)
		nodeIndex := nodes.beginIndex
		if key.Compare(nodes.beginKey) == 0 {
			nodeIndex--
		}
		index = nodeIndex

		if key.Compare(t.rangeIndexToKey(rangeIdx)) == 0 {
			rangeIdx--
		}

		t.ranges.TruncateForward(rangeIdx)
		t.ranges.LastPtr().end = index
	}

	if last, ok := t.ranges.Last(); ok && last.begin == last.end {
		if t.ranges.Len() > 1 {
			t.ranges.TruncateForward(rangeIdx - 1)
		} else {
			t.ranges.Clear()
		}
	}

	node := t.buf.Get(index)
	if node.IsAligned() {
		t.nextStep = t.alignedStep
		t.keyEnd = t.increaseKeyByStep(t.keyStart, t.ranges.Len())
	} else {
		na, _ := node.NotAligned()
		nearestAlignedKey := t.increaseKeyByStep(t.keyStart, t.rangeIndex(na.Key))
		t.keyEnd = na.Key
		t.nextStep = t.alignedStep.Sub(nearestAlignedKey.Distance(t.keyEnd))
	}

	removed := t.buf.TruncateForward(index)

	if t.logger != nil {
		t.logger.Debug().
			Int(`nodesCancelled`, removed.Len()).
			Log(`track cancelled forward`)
	}

	return removed
}

// PushAligned appends an aligned node at the leading edge.
func (t *Track[K, D, Data, NA, O]) PushAligned(data Data) error {
	wasEmpty := t.IsEmpty()
	node := AlignedNode[K, Data, NA](data)

	if err := t.pushLeadingEdge(node); err != nil {
		return err
	}

	// The very first sample merely anchors key_start; it has no predecessor
	// to measure next_step from, so key_end/next_step stay untouched.
	if wasEmpty {
		return nil
	}

	t.keyEnd = t.keyEnd.AddDistance(t.nextStep)
	t.nextStep = t.alignedStep
	return nil
}

// InsertNotAligned replaces the pending aligned sample (and any samples
// past key) with a new not-aligned sample at key. It fails with
// ErrKeyIsNotInInnerRange unless KeyStart() < key < KeyEnd(). Every node
// cancelled in the process, including the anchor (the one nearest key,
// whose payload becomes the new node's CancelledNode), is delivered to
// handler, in order, before InsertNotAligned returns.
func (t *Track[K, D, Data, NA, O]) InsertNotAligned(key K, data NA, handler func(Node[K, Data, NA])) error {
	if !t.isKeyInInnerRange(key) {
		return ErrKeyIsNotInInnerRange
	}

	cancelled := t.CancelForward(key)
	anchor, ok := cancelled.PeekFirst()
	if !ok {
		panic("track: insert not aligned: cancel forward yielded no anchor")
	}
	for _, n := range cancelled.Slice() {
		handler(n)
	}

	var cancelledKey K
	if anchor.IsAligned() {
		cancelledKey = t.keyEnd.AddDistance(t.nextStep)
	} else {
		na, _ := anchor.NotAligned()
		cancelledKey = na.Key
	}

	node := NotAlignedNodeOf[K, Data, NA](NotAlignedNode[K, Data, NA]{
		Node:          data,
		Key:           key,
		CancelledNode: anchor.Payload(),
		CancelledKey:  cancelledKey,
	})

	if err := t.pushLeadingEdge(node); err != nil {
		return err
	}

	t.nextStep = t.nextStep.Sub(t.keyEnd.Distance(key))
	t.keyEnd = key
	return nil
}

// pushLeadingEdge implements the node-placement logic shared by
// PushAligned and InsertNotAligned (spec.md §4.3 steps 1-3): it does not
// touch KeyEnd/NextStep, which differ between the two callers.
func (t *Track[K, D, Data, NA, O]) pushLeadingEdge(node Node[K, Data, NA]) error {
	if t.IsEmpty() {
		if err := t.buf.TryPush(node); err != nil {
			panic("track: push: unexpected overflow on empty track")
		}
		return nil
	}

	if t.ranges.IsEmpty() {
		endNode, _ := t.buf.Last()
		if !endNode.IsAligned() {
			panic("track: invariant violated: lone node must be aligned")
		}
		if err := t.buf.TryPush(node); err != nil {
			panic("track: push: unexpected overflow while opening first range")
		}
		if err := t.ranges.TryPush(trackRange{0, 1}); err != nil {
			panic("track: push: ranges overflow opening first range")
		}
		return nil
	}

	return t.pushHelper(node)
}

func (t *Track[K, D, Data, NA, O]) pushHelper(node Node[K, Data, NA]) error {
	endNode, _ := t.buf.Last()
	if endNode.IsAligned() {
		if err := t.tryPush(node); err != nil {
			return err
		}
		last, _ := t.ranges.Last()
		if err := t.ranges.TryPush(trackRange{begin: last.end, end: last.end + 1}); err != nil {
			panic("track: push: ranges overflow")
		}
		return nil
	}

	if err := t.tryPush(node); err != nil {
		return err
	}
	t.ranges.LastPtr().end++
	return nil
}

func (t *Track[K, D, Data, NA, O]) tryPush(node Node[K, Data, NA]) error {
	if err := t.buf.TryPush(node); err != nil {
		return t.forcePush(node)
	}
	return nil
}

// forcePush recovers from a full buffer by growing it, but only when the
// whole track currently belongs to a single grid cell (a pathological
// not-aligned-only accumulation); any other overflow is surfaced to the
// caller.
func (t *Track[K, D, Data, NA, O]) forcePush(node Node[K, Data, NA]) error {
	if t.ranges.IsEmpty() {
		panic("track: push: ranges must not be empty on overflow")
	}
	if t.ranges.Len() != 1 {
		return ErrOverflow
	}

	t.buf.Grow()
	if err := t.buf.TryPush(node); err != nil {
		panic("track: push: unexpected overflow immediately after grow")
	}

	if t.logger != nil {
		t.logger.Warning().Int(`capacity`, t.buf.Capacity()).Log(`track grew backing buffer`)
	}
	return nil
}

func (t *Track[K, D, Data, NA, O]) isForwardKey(key K) bool {
	return t.keyStart.Compare(key) <= 0
}

func (t *Track[K, D, Data, NA, O]) isKeyInInnerRange(key K) bool {
	return t.keyStart.Compare(key) < 0 && key.Compare(t.keyEnd) < 0
}

func (t *Track[K, D, Data, NA, O]) rangeIndex(key K) int {
	return t.keyStart.Distance(key).FloorDiv(t.alignedStep)
}

func (t *Track[K, D, Data, NA, O]) increaseKeyByStep(key K, steps int) K {
	return key.AddDistance(t.alignedStep.Scale(steps))
}

func (t *Track[K, D, Data, NA, O]) rangeIndexToKey(rangeIdx int) K {
	return t.increaseKeyByStep(t.keyStart, rangeIdx)
}

func (t *Track[K, D, Data, NA, O]) wrapBufIndex(bufIndex, beginIndex int) int {
	return t.buf.WrapRaw(bufIndex - beginIndex)
}

type nearbyNodes[K any] struct {
	beginIndex int
	beginKey   K
	endIndex   int
	endKey     K
}

func (t *Track[K, D, Data, NA, O]) findNearbyNodes(rangeIdx int, key K) nearbyNodes[K] {
	rg := t.ranges.Get(rangeIdx)

	beginKey := t.rangeIndexToKey(rangeIdx)
	endKey := t.boundaryKey(rg.end, beginKey.AddDistance(t.alignedStep))

	at := func(i int) K {
		switch i {
		case rg.begin:
			return beginKey
		case rg.end:
			return endKey
		default:
			na, ok := t.buf.Get(i).NotAligned()
			if !ok {
				panic("track: unexpected aligned node inside an open cell")
			}
			return na.Key
		}
	}

	beginIdx, beginK := Bisect(at, rg.begin, rg.end, key, func(a, b K) int { return a.Compare(b) })
	endIdx := beginIdx + 1
	endK := t.boundaryKey(endIdx, endKey)

	return nearbyNodes[K]{beginIndex: beginIdx, beginKey: beginK, endIndex: endIdx, endKey: endK}
}

// boundaryKey returns the key of the node at buffer index i, where
// alignedKey is the grid key to use if that node turns out to be aligned.
func (t *Track[K, D, Data, NA, O]) boundaryKey(i int, alignedKey K) K {
	node := t.buf.Get(i)
	if node.IsAligned() {
		return alignedKey
	}
	na, _ := node.NotAligned()
	return na.Key
}
