package resolution

import (
	crand "crypto/rand"
	"encoding/binary"

	"github.com/pkg/errors"
)

// NewSeed generates a roll seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, errors.Wrap(err, "read random seed")
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
