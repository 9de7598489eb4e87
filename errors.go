package track

import "errors"

var (
	// ErrOverflow is returned by PushAligned/InsertNotAligned when the
	// track spans more than one grid cell and a push would exceed its
	// configured size. Callers should call TruncateBack to free space and
	// retry.
	ErrOverflow = errors.New("track: overflow")

	// ErrKeyNotInRange is returned by Interpolate when the queried key is
	// outside [KeyStart(), KeyEnd()).
	ErrKeyNotInRange = errors.New("track: key not in range")

	// ErrKeyIsNotInInnerRange is returned by InsertNotAligned when the
	// given key is not strictly inside (KeyStart(), KeyEnd()).
	ErrKeyIsNotInInnerRange = errors.New("track: key is not in inner range")
)
