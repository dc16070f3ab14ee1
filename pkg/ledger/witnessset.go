package ledger

import (
	"github.com/cardano-cbor/ledgercodec/pkg/cbor"
	"github.com/cardano-cbor/ledgercodec/pkg/schema"
)

// VKeyWitness is a verification-key witness: a 32-byte vkey and a 64-byte
// Ed25519 signature.
type VKeyWitness struct {
	VKey      []byte
	Signature []byte
}

var vKeyWitnessSchema = schema.Tuple(2,
	func(items []cbor.Value) (VKeyWitness, error) {
		vkey, err := BytesKSchema(32).Decode(items[0])
		if err != nil {
			return VKeyWitness{}, cbor.Wrap(cbor.OutOfRange, err, "vkey")
		}
		sig, err := BytesKSchema(64).Decode(items[1])
		if err != nil {
			return VKeyWitness{}, cbor.Wrap(cbor.OutOfRange, err, "signature")
		}
		return VKeyWitness{VKey: vkey, Signature: sig}, nil
	},
	func(w VKeyWitness) ([]cbor.Value, error) {
		return []cbor.Value{cbor.Bytes(w.VKey), cbor.Bytes(w.Signature)}, nil
	},
)

// BootstrapWitness is a Byron-era witness: vkey, signature, 32-byte chain
// code, and opaque attributes bytes.
type BootstrapWitness struct {
	VKey      []byte
	Signature []byte
	ChainCode []byte
	Attrs     []byte
}

var bootstrapWitnessSchema = schema.Tuple(4,
	func(items []cbor.Value) (BootstrapWitness, error) {
		vkey, err := BytesKSchema(32).Decode(items[0])
		if err != nil {
			return BootstrapWitness{}, cbor.Wrap(cbor.OutOfRange, err, "vkey")
		}
		sig, err := BytesKSchema(64).Decode(items[1])
		if err != nil {
			return BootstrapWitness{}, cbor.Wrap(cbor.OutOfRange, err, "signature")
		}
		chainCode, err := BytesKSchema(32).Decode(items[2])
		if err != nil {
			return BootstrapWitness{}, cbor.Wrap(cbor.OutOfRange, err, "chainCode")
		}
		attrs, err := cborValueAsBytes.Decode(items[3])
		if err != nil {
			return BootstrapWitness{}, cbor.Wrap(cbor.OutOfRange, err, "attrs")
		}
		return BootstrapWitness{VKey: vkey, Signature: sig, ChainCode: chainCode, Attrs: attrs}, nil
	},
	func(w BootstrapWitness) ([]cbor.Value, error) {
		return []cbor.Value{
			cbor.Bytes(w.VKey), cbor.Bytes(w.Signature), cbor.Bytes(w.ChainCode), cbor.Bytes(w.Attrs),
		}, nil
	},
)

// Redeemer is a Plutus-script invocation witness: a tag/index pair
// identifying which script purpose and input it covers, the Data argument,
// and an [mem, steps] execution-unit budget.
type Redeemer struct {
	Tag      uint64
	Index    uint64
	Data     cbor.Value // a plutus.Data encoded as a generic cbor.Value leaf
	Mem      uint64
	Steps    uint64
}

var redeemerSchema = schema.Tuple(4,
	func(items []cbor.Value) (Redeemer, error) {
		if items[0].Kind() != cbor.MajorUint || items[1].Kind() != cbor.MajorUint {
			return Redeemer{}, cbor.Newf(cbor.InvalidVariant, "redeemer tag/index must be uint")
		}
		units := items[3].AsArray()
		if items[3].Kind() != cbor.MajorArray || len(units) != 2 {
			return Redeemer{}, cbor.Newf(cbor.InvalidVariant, "redeemer execution units must be a 2-element array")
		}
		return Redeemer{
			Tag:   items[0].AsBigInt().Uint64(),
			Index: items[1].AsBigInt().Uint64(),
			Data:  items[2],
			Mem:   units[0].AsBigInt().Uint64(),
			Steps: units[1].AsBigInt().Uint64(),
		}, nil
	},
	func(r Redeemer) ([]cbor.Value, error) {
		return []cbor.Value{
			cbor.UintFromU64(r.Tag),
			cbor.UintFromU64(r.Index),
			r.Data,
			cbor.Array(cbor.UintFromU64(r.Mem), cbor.UintFromU64(r.Steps)),
		}, nil
	},
)

// TransactionWitnessSet is the CBOR map with integer keys 0..7 carrying a
// transaction's witnesses: vkey witnesses, native scripts, bootstrap
// witnesses, and versioned Plutus scripts/data/redeemers.
type TransactionWitnessSet struct {
	VKeyWitnesses     []VKeyWitness
	NativeScripts     []cbor.Value // recursive sum type kept generic at this layer
	BootstrapWitnesses []BootstrapWitness
	PlutusV1Scripts   [][]byte
	PlutusData        []cbor.Value
	Redeemers         []Redeemer
	PlutusV2Scripts   [][]byte
	PlutusV3Scripts   [][]byte
}

const (
	witnessKeyVKey       = 0
	witnessKeyNativeScr  = 1
	witnessKeyBootstrap  = 2
	witnessKeyPlutusV1   = 3
	witnessKeyPlutusData = 4
	witnessKeyRedeemers  = 5
	witnessKeyPlutusV2   = 6
	witnessKeyPlutusV3   = 7
)

// setWrappedKeys are the witness-set keys whose set value is wrapped in tag
// 258 on encode, and accepted either wrapped or bare on decode.
var setWrappedKeys = map[uint64]bool{
	witnessKeyVKey: true, witnessKeyNativeScr: true, witnessKeyBootstrap: true,
	witnessKeyPlutusV1: true, witnessKeyPlutusData: true, witnessKeyPlutusV2: true, witnessKeyPlutusV3: true,
}

// decodeNonEmptySet unwraps tag 258 if present, else accepts a bare array,
// per the CDDL `nonempty_set<a0> = #6.258([+ a0]) / [+ a0]` definition.
func decodeNonEmptySet(v cbor.Value) (cbor.Value, error) {
	if v.Kind() == cbor.MajorTag {
		if v.TagNumber() != cbor.TagSet {
			return cbor.Value{}, cbor.Newf(cbor.InvalidTagPayload, "expected tag %d, got %d", cbor.TagSet, v.TagNumber())
		}
		v = v.TagInner()
	}
	if v.Kind() != cbor.MajorArray {
		return cbor.Value{}, cbor.Newf(cbor.InvalidVariant, "expected an array of set elements, got %v", v.Kind())
	}
	return v, nil
}

func encodeNonEmptySet(items []cbor.Value) cbor.Value {
	return cbor.Tag(cbor.TagSet, cbor.Array(items...))
}

// TransactionWitnessSetSchema decodes/encodes the CDDL `transaction_witness_set`
// shape: tag-258-wrapped sets, with keys 0-7 all optional. opts is not
// consulted; the wire form is chosen when the resulting cbor.Value is encoded.
func TransactionWitnessSetSchema(opts cbor.Options) schema.Schema[cbor.Value, TransactionWitnessSet] {
	return schema.Schema[cbor.Value, TransactionWitnessSet]{
		Decode: func(v cbor.Value) (TransactionWitnessSet, error) {
			m, err := schema.DecodeIntKeyedMap(v)
			if err != nil {
				return TransactionWitnessSet{}, err
			}
			var out TransactionWitnessSet
			if raw, ok := m.Get(witnessKeyVKey); ok {
				arr, err := decodeNonEmptySet(raw)
				if err != nil {
					return out, cbor.Wrap(cbor.InvalidVariant, err, "key 0 (vkey witnesses)")
				}
				for _, it := range arr.AsArray() {
					w, err := vKeyWitnessSchema.Decode(it)
					if err != nil {
						return out, err
					}
					out.VKeyWitnesses = append(out.VKeyWitnesses, w)
				}
			}
			if raw, ok := m.Get(witnessKeyNativeScr); ok {
				arr, err := decodeNonEmptySet(raw)
				if err != nil {
					return out, cbor.Wrap(cbor.InvalidVariant, err, "key 1 (native scripts)")
				}
				out.NativeScripts = arr.AsArray()
			}
			if raw, ok := m.Get(witnessKeyBootstrap); ok {
				arr, err := decodeNonEmptySet(raw)
				if err != nil {
					return out, cbor.Wrap(cbor.InvalidVariant, err, "key 2 (bootstrap witnesses)")
				}
				for _, it := range arr.AsArray() {
					w, err := bootstrapWitnessSchema.Decode(it)
					if err != nil {
						return out, err
					}
					out.BootstrapWitnesses = append(out.BootstrapWitnesses, w)
				}
			}
			if raw, ok := m.Get(witnessKeyPlutusV1); ok {
				scripts, err := decodeScriptSet(raw, "key 3 (plutus v1 scripts)")
				if err != nil {
					return out, err
				}
				out.PlutusV1Scripts = scripts
			}
			if raw, ok := m.Get(witnessKeyPlutusData); ok {
				arr, err := decodeNonEmptySet(raw)
				if err != nil {
					return out, cbor.Wrap(cbor.InvalidVariant, err, "key 4 (plutus data)")
				}
				out.PlutusData = arr.AsArray()
			}
			if raw, ok := m.Get(witnessKeyRedeemers); ok {
				if raw.Kind() != cbor.MajorArray {
					return out, cbor.Newf(cbor.InvalidVariant, "key 5 (redeemers) must be a bare array")
				}
				for _, it := range raw.AsArray() {
					r, err := redeemerSchema.Decode(it)
					if err != nil {
						return out, err
					}
					out.Redeemers = append(out.Redeemers, r)
				}
			}
			if raw, ok := m.Get(witnessKeyPlutusV2); ok {
				scripts, err := decodeScriptSet(raw, "key 6 (plutus v2 scripts)")
				if err != nil {
					return out, err
				}
				out.PlutusV2Scripts = scripts
			}
			if raw, ok := m.Get(witnessKeyPlutusV3); ok {
				scripts, err := decodeScriptSet(raw, "key 7 (plutus v3 scripts)")
				if err != nil {
					return out, err
				}
				out.PlutusV3Scripts = scripts
			}
			return out, nil
		},
		Encode: func(w TransactionWitnessSet) (cbor.Value, error) {
			b := &schema.IntKeyedMapBuilder{}
			if len(w.VKeyWitnesses) > 0 {
				items := make([]cbor.Value, len(w.VKeyWitnesses))
				for i, vw := range w.VKeyWitnesses {
					v, err := vKeyWitnessSchema.Encode(vw)
					if err != nil {
						return cbor.Value{}, err
					}
					items[i] = v
				}
				b.Put(witnessKeyVKey, encodeNonEmptySet(items))
			}
			if len(w.NativeScripts) > 0 {
				b.Put(witnessKeyNativeScr, encodeNonEmptySet(w.NativeScripts))
			}
			if len(w.BootstrapWitnesses) > 0 {
				items := make([]cbor.Value, len(w.BootstrapWitnesses))
				for i, bw := range w.BootstrapWitnesses {
					v, err := bootstrapWitnessSchema.Encode(bw)
					if err != nil {
						return cbor.Value{}, err
					}
					items[i] = v
				}
				b.Put(witnessKeyBootstrap, encodeNonEmptySet(items))
			}
			if len(w.PlutusV1Scripts) > 0 {
				b.Put(witnessKeyPlutusV1, encodeNonEmptySet(bytesSliceToValues(w.PlutusV1Scripts)))
			}
			if len(w.PlutusData) > 0 {
				b.Put(witnessKeyPlutusData, encodeNonEmptySet(w.PlutusData))
			}
			if len(w.Redeemers) > 0 {
				items := make([]cbor.Value, len(w.Redeemers))
				for i, r := range w.Redeemers {
					v, err := redeemerSchema.Encode(r)
					if err != nil {
						return cbor.Value{}, err
					}
					items[i] = v
				}
				b.Put(witnessKeyRedeemers, cbor.Array(items...))
			}
			if len(w.PlutusV2Scripts) > 0 {
				b.Put(witnessKeyPlutusV2, encodeNonEmptySet(bytesSliceToValues(w.PlutusV2Scripts)))
			}
			if len(w.PlutusV3Scripts) > 0 {
				b.Put(witnessKeyPlutusV3, encodeNonEmptySet(bytesSliceToValues(w.PlutusV3Scripts)))
			}
			return b.Build(), nil
		},
	}
}

func decodeScriptSet(raw cbor.Value, context string) ([][]byte, error) {
	arr, err := decodeNonEmptySet(raw)
	if err != nil {
		return nil, cbor.Wrap(cbor.InvalidVariant, err, context)
	}
	items := arr.AsArray()
	out := make([][]byte, len(items))
	for i, it := range items {
		b, err := cborValueAsBytes.Decode(it)
		if err != nil {
			return nil, cbor.Wrap(cbor.InvalidVariant, err, "%s element %d", context, i)
		}
		out[i] = b
	}
	return out, nil
}

func bytesSliceToValues(bs [][]byte) []cbor.Value {
	out := make([]cbor.Value, len(bs))
	for i, b := range bs {
		out[i] = cbor.Bytes(b)
	}
	return out
}

// Equal compares two witness sets by their canonical-encoded bytes: walking
// the nested optional fields structurally would need to special-case every
// key, while a byte-compare under canonical options is exact and simple.
func (w TransactionWitnessSet) Equal(other TransactionWitnessSet, opts cbor.Options) bool {
	s := TransactionWitnessSetSchema(opts)
	va, errA := s.Encode(w)
	vb, errB := s.Encode(other)
	if errA != nil || errB != nil {
		return false
	}
	canon := cbor.CanonicalOptions()
	ba, errA := cbor.Encode(va, canon)
	bb, errB := cbor.Encode(vb, canon)
	if errA != nil || errB != nil {
		return false
	}
	return string(ba) == string(bb)
}
