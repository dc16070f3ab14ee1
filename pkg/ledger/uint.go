// Package ledger defines the Cardano domain types built on top of the
// generic cbor codec and the Plutus Data subcodec: bounded integers,
// branded byte types, Mint/MultiAsset, TransactionWitnessSet, and
// VotingProcedures.
package ledger

import (
	"math/big"
	"strconv"

	"github.com/cardano-cbor/ledgercodec/pkg/cbor"
	"github.com/cardano-cbor/ledgercodec/pkg/schema"
)

// cborValueAsBigInt is the cbor.Value <-> *big.Int schema every bounded
// integer type below is filtered from.
var cborValueAsBigInt = schema.Schema[cbor.Value, *big.Int]{
	Decode: func(v cbor.Value) (*big.Int, error) {
		if v.Kind() != cbor.MajorUint && v.Kind() != cbor.MajorNint {
			return nil, cbor.Newf(cbor.InvalidVariant, "expected an integer, got %v", v.Kind())
		}
		return v.AsBigInt(), nil
	},
	Encode: func(n *big.Int) (cbor.Value, error) {
		if n.Sign() >= 0 {
			return cbor.Uint(n), nil
		}
		wire := new(big.Int).Neg(n)
		wire.Sub(wire, big.NewInt(1))
		return cbor.Nint(wire), nil
	},
}

func boundedUint(bits int) schema.Schema[cbor.Value, *big.Int] {
	max := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	max.Sub(max, big.NewInt(1))
	return schema.Filter(cborValueAsBigInt, func(n *big.Int) bool {
		return n.Sign() >= 0 && n.Cmp(max) <= 0
	}, "value out of range for unsigned "+strconv.Itoa(bits)+"-bit integer")
}

// UintNSchema returns the schema for an unsigned integer bounded to bits
// bits (8, 16, or 32 in Cardano CDDL usage, though any width works here).
func UintNSchema(bits int) schema.Schema[cbor.Value, *big.Int] { return boundedUint(bits) }

// Uint64Schema is the schema for an unbounded-width non-negative integer
// that must additionally fit in 64 bits on the wire's native form (values
// above 2^64-1 still decode via the generic codec's bignum fold, but this
// schema rejects them at the domain boundary since Uint64 promises a
// 64-bit-representable value).
var Uint64Schema = boundedUint(64)

// Int64Schema is the signed 64-bit counterpart of Uint64Schema.
var Int64Schema = schema.Filter(cborValueAsBigInt, func(n *big.Int) bool {
	min := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 63))
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 63), big.NewInt(1))
	return n.Cmp(min) >= 0 && n.Cmp(max) <= 0
}, "value out of range for signed 64-bit integer")

// PositiveCoinSchema is an integer in 1..2^64-1: a lovelace amount that
// must be strictly positive.
var PositiveCoinSchema = schema.Filter(cborValueAsBigInt, func(n *big.Int) bool {
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 64), big.NewInt(1))
	return n.Sign() > 0 && n.Cmp(max) <= 0
}, "PositiveCoin must be in 1..2^64-1")

// NonZeroInt64Schema is a signed 64-bit integer excluding zero, used for
// mint/burn amounts.
var NonZeroInt64Schema = schema.Filter(Int64Schema, func(n *big.Int) bool {
	return n.Sign() != 0
}, "NonZeroInt64 must not be zero")

