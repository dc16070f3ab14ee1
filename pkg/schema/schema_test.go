package schema

import (
	"testing"

	"github.com/cardano-cbor/ledgercodec/pkg/cbor"
)

func uintSchema() Schema[cbor.Value, uint64] {
	return Schema[cbor.Value, uint64]{
		Decode: func(v cbor.Value) (uint64, error) {
			if v.Kind() != cbor.MajorUint {
				return 0, cbor.Newf(cbor.InvalidVariant, "expected uint")
			}
			return v.AsBigInt().Uint64(), nil
		},
		Encode: func(n uint64) (cbor.Value, error) {
			return cbor.UintFromU64(n), nil
		},
	}
}

func TestComposeRoundTrip(t *testing.T) {
	opts := cbor.CmlDefaultOptions()
	s := FromCBORBytes(uintSchema(), opts)

	b, err := s.Encode(42)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := s.Decode(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestFilterRejectsInvariant(t *testing.T) {
	nonZero := Filter(uintSchema(), func(n uint64) bool { return n != 0 }, "must be non-zero")
	if _, err := nonZero.Decode(cbor.UintFromU64(0)); !cbor.Is(err, cbor.InvariantViolation) {
		t.Fatalf("expected InvariantViolation, got %v", err)
	}
	if _, err := nonZero.Encode(0); !cbor.Is(err, cbor.InvariantViolation) {
		t.Fatalf("expected InvariantViolation, got %v", err)
	}
	v, err := nonZero.Encode(5)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if v.AsBigInt().Uint64() != 5 {
		t.Fatalf("got %v", v)
	}
}

func TestTagRoundTrip(t *testing.T) {
	tagged := Tag(258, Array(uintSchema()))
	v, err := tagged.Encode([]uint64{1, 2, 3})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if v.Kind() != cbor.MajorTag || v.TagNumber() != 258 {
		t.Fatalf("expected tag 258, got %+v", v)
	}
	got, err := tagged.Decode(v)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 3 || got[1] != 2 {
		t.Fatalf("got %v", got)
	}
}

func TestUnionTriesInOrder(t *testing.T) {
	asText := Schema[cbor.Value, string]{
		Decode: func(v cbor.Value) (string, error) {
			if v.Kind() != cbor.MajorText {
				return "", cbor.Newf(cbor.InvalidVariant, "not text")
			}
			return v.AsText(), nil
		},
		Encode: func(s string) (cbor.Value, error) { return cbor.Text(s), nil },
	}
	asUintText := Schema[cbor.Value, string]{
		Decode: func(v cbor.Value) (string, error) {
			if _, err := uintSchema().Decode(v); err != nil {
				return "", err
			}
			return "uint", nil
		},
		Encode: asText.Encode,
	}
	u := Union(asText, asUintText)
	got, err := u.Decode(cbor.Text("hello"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != "hello" {
		t.Fatalf("got %q", got)
	}
	got, err = u.Decode(cbor.UintFromU64(1))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != "uint" {
		t.Fatalf("got %q", got)
	}
}

func TestTupleRoundTrip(t *testing.T) {
	type pair struct {
		A, B uint64
	}
	s := Tuple(2,
		func(items []cbor.Value) (pair, error) {
			a, err := uintSchema().Decode(items[0])
			if err != nil {
				return pair{}, err
			}
			b, err := uintSchema().Decode(items[1])
			if err != nil {
				return pair{}, err
			}
			return pair{A: a, B: b}, nil
		},
		func(p pair) ([]cbor.Value, error) {
			a, _ := uintSchema().Encode(p.A)
			b, _ := uintSchema().Encode(p.B)
			return []cbor.Value{a, b}, nil
		},
	)
	v, err := s.Encode(pair{A: 1, B: 2})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := s.Decode(v)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.A != 1 || got.B != 2 {
		t.Fatalf("got %+v", got)
	}
	if _, err := s.Decode(cbor.Array(cbor.UintFromU64(1))); !cbor.Is(err, cbor.OutOfRange) {
		t.Fatalf("expected OutOfRange for wrong arity, got %v", err)
	}
}

func TestMapPreservesOrderAndDuplicates(t *testing.T) {
	m := Map(uintSchema(), uintSchema())
	v, err := m.Encode([]KV[uint64, uint64]{{Key: 5, Value: 50}, {Key: 1, Value: 10}, {Key: 1, Value: 99}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := m.Decode(v)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 3 || got[0].Key != 5 || got[2].Value != 99 {
		t.Fatalf("got %+v", got)
	}
}

func TestNullOrAndOptional(t *testing.T) {
	s := NullOr(uintSchema())
	opt, err := s.Decode(cbor.Null())
	if err != nil || opt.Present {
		t.Fatalf("expected absent, got %+v, err %v", opt, err)
	}
	opt, err = s.Decode(cbor.UintFromU64(7))
	if err != nil || !opt.Present || opt.Value != 7 {
		t.Fatalf("got %+v, err %v", opt, err)
	}
	v, err := s.Encode(None[uint64]())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if v.Kind() != cbor.MajorSimpleFloat || v.AsSimple() != cbor.SimpleNull {
		t.Fatalf("expected null, got %+v", v)
	}

	o := Optional(uintSchema())
	got, err := o.Decode(cbor.UintFromU64(3))
	if err != nil || !got.Present || got.Value != 3 {
		t.Fatalf("got %+v, err %v", got, err)
	}
	if _, err := o.Encode(None[uint64]()); !cbor.Is(err, cbor.EncoderRefusal) {
		t.Fatalf("expected EncoderRefusal for an absent optional, got %v", err)
	}
}

func TestLiteralMatches(t *testing.T) {
	s := Literal(uint64(42), cbor.UintFromU64(42), func(a, b uint64) bool { return a == b })
	if _, err := s.Decode(cbor.UintFromU64(1)); !cbor.Is(err, cbor.InvalidVariant) {
		t.Fatalf("expected InvalidVariant, got %v", err)
	}
	got, err := s.Decode(cbor.UintFromU64(42))
	if err != nil || got != 42 {
		t.Fatalf("got %v, err %v", got, err)
	}
}
