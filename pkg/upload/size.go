package upload

import (
	"fmt"
	"io"
	"math"
)

// checkSize rejects sizes above limit.
func checkSize(size, limit int64) error {
	if size > limit {
		return &SizeError{Size: size, Limit: limit}
	}
	return nil
}

// readContent reads at most limit+1 bytes so that an understated size is
// caught without buffering an unbounded stream.
func readContent(r io.Reader, limit int64) ([]byte, error) {
	n := limit
	if n < math.MaxInt64 {
		n++
	}
	data, err := io.ReadAll(io.LimitReader(r, n))
	if err != nil {
		return nil, fmt.Errorf("%w: reading content: %v", ErrInvalidInput, err)
	}
	if err := checkSize(int64(len(data)), limit); err != nil {
		return nil, err
	}
	return data, nil
}
