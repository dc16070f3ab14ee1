package plutus

import (
	"math/big"
	"sort"

	"github.com/cardano-cbor/ledgercodec/pkg/cbor"
)

// Constructor tag ranges. Index 0..6 uses the direct one-byte tag form
// (121..127); index 7..127 uses the two-byte secondary range (1280..1400);
// index >= 128 falls back to the general tag 102 wrapping [index, fields].
const (
	tagConstrDirectBase    = 121
	tagConstrDirectMax     = 127
	tagConstrSecondaryBase = 1280
	tagConstrSecondaryMax  = 1400
	tagConstrGeneral       = 102
)

// Encode serializes d as Plutus Data CBOR bytes under opts.
func Encode(d Data, opts cbor.Options) ([]byte, error) {
	v, err := ToCborValue(d, opts)
	if err != nil {
		return nil, err
	}
	return cbor.Encode(v, opts)
}

// Decode parses data as Plutus Data CBOR bytes under opts.
func Decode(data []byte, opts cbor.Options) (Data, error) {
	v, err := cbor.Decode(data, opts)
	if err != nil {
		return Data{}, err
	}
	return FromCborValue(v)
}

// ToCborValue builds the generic cbor.Value tree for d. The encoder always
// prefers the secondary tag range (1280..1400) over tag 102 for indices
// 7..127, using tag 102 only once the secondary range is exhausted
// (index >= 128).
func ToCborValue(d Data, opts cbor.Options) (cbor.Value, error) {
	switch d.kind {
	case KindConstr:
		fields := make([]cbor.Value, len(d.constrFields))
		for i, f := range d.constrFields {
			fv, err := ToCborValue(f, opts)
			if err != nil {
				return cbor.Value{}, err
			}
			fields[i] = fv
		}
		fieldsArray := cbor.Array(fields...)
		switch {
		case d.constrIndex <= tagConstrDirectMax-tagConstrDirectBase:
			return cbor.Tag(tagConstrDirectBase+d.constrIndex, fieldsArray), nil
		case d.constrIndex <= tagConstrSecondaryMax-tagConstrSecondaryBase+7:
			return cbor.Tag(tagConstrSecondaryBase+d.constrIndex-7, fieldsArray), nil
		default:
			return cbor.Tag(tagConstrGeneral, cbor.Array(cbor.UintFromU64(d.constrIndex), fieldsArray)), nil
		}
	case KindMap:
		entries := canonicalizeEntries(d.mapEntries, opts)
		pairs := make([]cbor.Pair, len(entries))
		for i, e := range entries {
			k, err := ToCborValue(e.Key, opts)
			if err != nil {
				return cbor.Value{}, err
			}
			val, err := ToCborValue(e.Value, opts)
			if err != nil {
				return cbor.Value{}, err
			}
			pairs[i] = cbor.Pair{Key: k, Value: val}
		}
		return cbor.Map(pairs...), nil
	case KindList:
		items := make([]cbor.Value, len(d.list))
		for i, it := range d.list {
			iv, err := ToCborValue(it, opts)
			if err != nil {
				return cbor.Value{}, err
			}
			items[i] = iv
		}
		return cbor.Array(items...), nil
	case KindInt:
		return intToCborValue(&d.intVal), nil
	case KindByteArray:
		return cbor.Bytes(d.bytes), nil
	default:
		return cbor.Value{}, cbor.Newf(cbor.InvalidVariant, "unknown Plutus Data kind %d", d.kind)
	}
}

// FromCborValue inverts ToCborValue, recognizing all three constructor tag
// forms (the direct 121..127 range, the secondary 1280..1400 range, and the
// general tag 102) regardless of which one the encoder would have chosen
// for a given index.
func FromCborValue(v cbor.Value) (Data, error) {
	switch v.Kind() {
	case cbor.MajorTag:
		tagNum := v.TagNumber()
		switch {
		case tagNum >= tagConstrDirectBase && tagNum <= tagConstrDirectMax:
			return constrFromFields(tagNum-tagConstrDirectBase, v.TagInner())
		case tagNum >= tagConstrSecondaryBase && tagNum <= tagConstrSecondaryMax:
			return constrFromFields(tagNum-tagConstrSecondaryBase+7, v.TagInner())
		case tagNum == tagConstrGeneral:
			inner := v.TagInner()
			if inner.Kind() != cbor.MajorArray || len(inner.AsArray()) != 2 {
				return Data{}, cbor.Newf(cbor.InvalidTagPayload, "tag 102 requires a 2-element array")
			}
			items := inner.AsArray()
			if items[0].Kind() != cbor.MajorUint {
				return Data{}, cbor.Newf(cbor.InvalidTagPayload, "tag 102 index must be a uint")
			}
			return constrFromFields(items[0].AsBigInt().Uint64(), items[1])
		default:
			return Data{}, cbor.Newf(cbor.InvalidVariant, "tag %d is not a recognized Plutus constructor tag", tagNum)
		}
	case cbor.MajorMap:
		pairs := v.AsMap()
		entries := make([]MapEntry, len(pairs))
		for i, p := range pairs {
			k, err := FromCborValue(p.Key)
			if err != nil {
				return Data{}, err
			}
			val, err := FromCborValue(p.Value)
			if err != nil {
				return Data{}, err
			}
			entries[i] = MapEntry{Key: k, Value: val}
		}
		return Map(entries...), nil
	case cbor.MajorArray:
		items := v.AsArray()
		out := make([]Data, len(items))
		for i, it := range items {
			d, err := FromCborValue(it)
			if err != nil {
				return Data{}, err
			}
			out[i] = d
		}
		return List(out...), nil
	case cbor.MajorUint, cbor.MajorNint:
		return Int(v.AsBigInt()), nil
	case cbor.MajorBytes:
		return ByteArray(v.AsBytes()), nil
	default:
		return Data{}, cbor.Newf(cbor.InvalidVariant, "value of kind %v cannot be Plutus Data", v.Kind())
	}
}

// intToCborValue converts a Plutus Int to the generic codec's Uint/Nint
// representation: non-negative values map to Uint directly; negative
// values map to Nint carrying n such that the wire value is -1-n.
func intToCborValue(n *big.Int) cbor.Value {
	if n.Sign() >= 0 {
		return cbor.Uint(n)
	}
	wire := new(big.Int).Neg(n)
	wire.Sub(wire, big.NewInt(1))
	return cbor.Nint(wire)
}

func constrFromFields(index uint64, fieldsValue cbor.Value) (Data, error) {
	if fieldsValue.Kind() != cbor.MajorArray {
		return Data{}, cbor.Newf(cbor.InvalidTagPayload, "constructor fields must be an array")
	}
	items := fieldsValue.AsArray()
	fields := make([]Data, len(items))
	for i, it := range items {
		f, err := FromCborValue(it)
		if err != nil {
			return Data{}, err
		}
		fields[i] = f
	}
	return Constr(index, fields...), nil
}

// canonicalizeEntries sorts map entries by encoded-key byte length when the
// options request sorting (canonical mode, or SortMapKeys under custom
// mode), matching the generic codec's own map-key sort rule.
func canonicalizeEntries(entries []MapEntry, opts cbor.Options) []MapEntry {
	if opts.Mode != cbor.ModeCanonical && !opts.SortMapKeys {
		return entries
	}
	type keyed struct {
		entry  MapEntry
		keyEnc []byte
		idx    int
	}
	ks := make([]keyed, len(entries))
	for i, e := range entries {
		kv, err := ToCborValue(e.Key, opts)
		if err != nil {
			return entries
		}
		enc, err := cbor.Encode(kv, opts)
		if err != nil {
			return entries
		}
		ks[i] = keyed{entry: e, keyEnc: enc, idx: i}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		return len(ks[i].keyEnc) < len(ks[j].keyEnc)
	})
	out := make([]MapEntry, len(ks))
	for i, k := range ks {
		out[i] = k.entry
	}
	return out
}
