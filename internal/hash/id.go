// Package hash provides xxHash64 based fingerprints for datasets and fits.
package hash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Columns computes a single xxHash64 digest over one or more float64 columns.
//
// Each column contributes its length followed by the IEEE 754 bit pattern of
// every element, in little-endian order, so any bit-level change to the data
// or to the column boundaries changes the digest. Used as a join identifier
// for datasets and the fits derived from them.
func Columns(cols ...[]float64) uint64 {
	d := xxhash.New()

	var buf [8]byte
	for _, col := range cols {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(col)))
		_, _ = d.Write(buf[:])
		for _, v := range col {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			_, _ = d.Write(buf[:])
		}
	}

	return d.Sum64()
}
