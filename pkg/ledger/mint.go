package ledger

import (
	"math/big"

	"github.com/cardano-cbor/ledgercodec/pkg/cbor"
	"github.com/cardano-cbor/ledgercodec/pkg/schema"
)

// MultiAssetAmount is the set of Go types a MultiAsset may carry per asset:
// a non-zero signed amount for mint/burn entries, or a plain unsigned
// amount for value/output entries.
type MultiAssetAmount interface {
	~int64 | ~uint64
}

// AssetEntry is one asset-name/amount pair under a policy, in wire order.
type AssetEntry[T MultiAssetAmount] struct {
	AssetName []byte
	Amount    T
}

// PolicyEntry is one policy/assets pair, in wire order.
type PolicyEntry[T MultiAssetAmount] struct {
	PolicyId PolicyId
	Assets   []AssetEntry[T]
}

// MultiAsset is the generic `Map<PolicyId, Map<AssetName, T>>` shape shared
// by Mint (T = NonZeroInt64, see MintSchema) and by a plain value's
// multi-asset bundle (T = uint64). It preserves wire order rather than
// collapsing into a Go map, since the CDDL makes no ordering or
// uniqueness promise beyond "map".
type MultiAsset[T MultiAssetAmount] struct {
	Policies []PolicyEntry[T]
}

// PolicyIds returns the policy ID of every entry, in wire order; a policy
// ID that appears in more than one entry is listed once per entry.
func (m MultiAsset[T]) PolicyIds() []PolicyId {
	out := make([]PolicyId, len(m.Policies))
	for i, p := range m.Policies {
		out[i] = p.PolicyId
	}
	return out
}

// Asset looks up the amount for (policyId, assetName), returning ok=false
// if absent.
func (m MultiAsset[T]) Asset(policyId PolicyId, assetName []byte) (T, bool) {
	for _, p := range m.Policies {
		if p.PolicyId != policyId {
			continue
		}
		for _, a := range p.Assets {
			if string(a.AssetName) == string(assetName) {
				return a.Amount, true
			}
		}
	}
	var zero T
	return zero, false
}

// Equal reports semantic equality: same policy set, same asset set per
// policy, same amount per asset, independent of wire order.
func (m MultiAsset[T]) Equal(other MultiAsset[T]) bool {
	lookup := func(ma MultiAsset[T]) map[PolicyId]map[string]T {
		out := map[PolicyId]map[string]T{}
		for _, p := range ma.Policies {
			inner := map[string]T{}
			for _, a := range p.Assets {
				inner[string(a.AssetName)] = a.Amount
			}
			out[p.PolicyId] = inner
		}
		return out
	}
	a, b := lookup(m), lookup(other)
	if len(a) != len(b) {
		return false
	}
	for policy, assetsA := range a {
		assetsB, ok := b[policy]
		if !ok || len(assetsA) != len(assetsB) {
			return false
		}
		for name, amt := range assetsA {
			if assetsB[name] != amt {
				return false
			}
		}
	}
	return true
}

func amountSchema[T MultiAssetAmount](bigToT func(*big.Int) (T, error), tToBig func(T) (*big.Int, error)) schema.Schema[cbor.Value, T] {
	return schema.Schema[cbor.Value, T]{
		Decode: func(v cbor.Value) (T, error) {
			var zero T
			n, err := cborValueAsBigInt.Decode(v)
			if err != nil {
				return zero, err
			}
			return bigToT(n)
		},
		Encode: func(t T) (cbor.Value, error) {
			n, err := tToBig(t)
			if err != nil {
				return cbor.Value{}, err
			}
			return cborValueAsBigInt.Encode(n)
		},
	}
}

// multiAssetSchema builds the generic Map<PolicyId, Map<AssetName, T>>
// schema, threading amountSchema through both levels of nesting.
func multiAssetSchema[T MultiAssetAmount](amount schema.Schema[cbor.Value, T], nonEmptyInner bool) schema.Schema[cbor.Value, MultiAsset[T]] {
	assetMap := schema.Map(AssetNameSchema, amount)
	return schema.Schema[cbor.Value, MultiAsset[T]]{
		Decode: func(v cbor.Value) (MultiAsset[T], error) {
			outer, err := schema.Map(PolicyIdSchema, assetMap).Decode(v)
			if err != nil {
				return MultiAsset[T]{}, err
			}
			policies := make([]PolicyEntry[T], len(outer))
			for i, kv := range outer {
				if nonEmptyInner && len(kv.Value) == 0 {
					return MultiAsset[T]{}, cbor.Newf(cbor.InvariantViolation, "policy %s has no assets", kv.Key)
				}
				assets := make([]AssetEntry[T], len(kv.Value))
				for j, akv := range kv.Value {
					assets[j] = AssetEntry[T]{AssetName: akv.Key, Amount: akv.Value}
				}
				policies[i] = PolicyEntry[T]{PolicyId: kv.Key, Assets: assets}
			}
			return MultiAsset[T]{Policies: policies}, nil
		},
		Encode: func(m MultiAsset[T]) (cbor.Value, error) {
			outer := make([]schema.KV[PolicyId, []schema.KV[[]byte, T]], len(m.Policies))
			for i, p := range m.Policies {
				if nonEmptyInner && len(p.Assets) == 0 {
					return cbor.Value{}, cbor.Newf(cbor.InvariantViolation, "policy %s has no assets", p.PolicyId)
				}
				inner := make([]schema.KV[[]byte, T], len(p.Assets))
				for j, a := range p.Assets {
					inner[j] = schema.KV[[]byte, T]{Key: a.AssetName, Value: a.Amount}
				}
				outer[i] = schema.KV[PolicyId, []schema.KV[[]byte, T]]{Key: p.PolicyId, Value: inner}
			}
			return schema.Map(PolicyIdSchema, assetMap).Encode(outer)
		},
	}
}

// NonZeroInt64 is a signed 64-bit amount that must not be zero, the amount
// type Mint entries carry.
type NonZeroInt64 int64

func nonZeroInt64FromBig(n *big.Int) (NonZeroInt64, error) {
	if !n.IsInt64() {
		return 0, cbor.Newf(cbor.OutOfRange, "mint amount does not fit in int64")
	}
	v := n.Int64()
	if v == 0 {
		return 0, cbor.Newf(cbor.InvariantViolation, "NonZeroInt64 must not be zero")
	}
	return NonZeroInt64(v), nil
}

// nonZeroInt64ToBig is the encode-side counterpart of nonZeroInt64FromBig:
// the invariant that NonZeroInt64 must not be zero is checked symmetrically,
// on both decode and encode, the same way ledger.NonZeroInt64Schema's
// schema.Filter checks its predicate in both directions.
func nonZeroInt64ToBig(n NonZeroInt64) (*big.Int, error) {
	if n == 0 {
		return nil, cbor.Newf(cbor.InvariantViolation, "NonZeroInt64 must not be zero")
	}
	return big.NewInt(int64(n)), nil
}

// MintSchema is the Mint = Map<PolicyId, Map<AssetName, NonZeroInt64>>
// schema: each policy's asset map must be non-empty, and each amount must
// be non-zero.
var MintSchema = multiAssetSchema(
	amountSchema(nonZeroInt64FromBig, nonZeroInt64ToBig),
	true,
)

// ValueAssetsSchema is the output/value-side MultiAsset instantiation
// (T = uint64): a plain non-negative per-asset quantity, with no
// non-empty-inner-map requirement (an empty asset list for a policy is
// unusual but not itself invalid CDDL).
var ValueAssetsSchema = multiAssetSchema(
	amountSchema(func(n *big.Int) (uint64, error) {
		if !n.IsUint64() {
			return 0, cbor.Newf(cbor.OutOfRange, "asset quantity does not fit in uint64")
		}
		return n.Uint64(), nil
	}, func(n uint64) (*big.Int, error) {
		return new(big.Int).SetUint64(n), nil
	}),
	false,
)
