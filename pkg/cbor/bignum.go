package cbor

import "math/big"

// bignumBytes returns the big-endian unsigned byte representation of n used
// as the payload of a tag-2/tag-3 bignum: no leading zero byte except when n
// itself is zero, in which case the payload is a single zero byte.
func bignumBytes(n *big.Int) []byte {
	b := n.Bytes()
	if len(b) == 0 {
		return []byte{0}
	}
	return b
}

// bignumFromBytes is the inverse of bignumBytes: interpret b as a big-endian
// unsigned integer.
func bignumFromBytes(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// fitsUint64 reports whether n (assumed non-negative) fits in 64 bits.
func fitsUint64(n *big.Int) bool {
	return n.Sign() >= 0 && n.BitLen() <= 64
}
