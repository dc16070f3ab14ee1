package cbor

import (
	"encoding/hex"
	"math/big"
	"strings"
	"testing"
)

func TestEncodeIntegerBoundaryGrid(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want string
	}{
		{"zero", UintFromU64(0), "00"},
		{"23", UintFromU64(23), "17"},
		{"24", UintFromU64(24), "1818"},
		{"255", UintFromU64(255), "18FF"},
		{"256", UintFromU64(256), "190100"},
		{"2^64-1", Uint(mustBig("18446744073709551615")), "1BFFFFFFFFFFFFFFFF"},
		{"2^64", Uint(mustBig("18446744073709551616")), "C249010000000000000000"},
		{"-1", NintFromI64(-1), "20"},
		{"-2^64", Nint(mustBig("18446744073709551615")), "3BFFFFFFFFFFFFFFFF"},
		{"-2^64-1", Nint(mustBig("18446744073709551616")), "C349010000000000000000"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Encode(c.v, CanonicalOptions())
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			gotHex := strings.ToUpper(hex.EncodeToString(got))
			if gotHex != c.want {
				t.Errorf("got %s, want %s", gotHex, c.want)
			}
		})
	}
}

func TestEncodeDecodeRoundTripScalars(t *testing.T) {
	values := []Value{
		UintFromU64(0),
		UintFromU64(1000),
		NintFromI64(-1000),
		Bytes([]byte{0xde, 0xad, 0xbe, 0xef}),
		Text("hello, cardano"),
		Bool(true),
		Bool(false),
		Null(),
		Undefined(),
		Float(3.25),
		Array(UintFromU64(1), UintFromU64(2), UintFromU64(3)),
		Map(Pair{Key: UintFromU64(0), Value: Text("a")}, Pair{Key: UintFromU64(1), Value: Text("b")}),
	}
	for _, opts := range []Options{CmlDefaultOptions(), CanonicalOptions(), PlutusDataDefaultOptions()} {
		for _, v := range values {
			enc, err := Encode(v, opts)
			if err != nil {
				t.Fatalf("encode %+v under %+v: %v", v, opts, err)
			}
			dec, err := Decode(enc, opts)
			if err != nil {
				t.Fatalf("decode %x under %+v: %v", enc, opts, err)
			}
			if !Equal(v, dec) {
				t.Errorf("round trip mismatch: %+v -> %x -> %+v", v, enc, dec)
			}
		}
	}
}

func TestIndefiniteEquivalence(t *testing.T) {
	v := Array(UintFromU64(1), UintFromU64(2), UintFromU64(3))

	defOpts := CmlDefaultOptions()
	indefOpts := CmlDefaultOptions()
	indefOpts.UseIndefiniteArrays = true

	defEnc, err := Encode(v, defOpts)
	if err != nil {
		t.Fatal(err)
	}
	indefEnc, err := Encode(v, indefOpts)
	if err != nil {
		t.Fatal(err)
	}
	if hex.EncodeToString(defEnc) == hex.EncodeToString(indefEnc) {
		t.Fatalf("expected different wire bytes for definite vs indefinite")
	}

	defDec, err := Decode(defEnc, defOpts)
	if err != nil {
		t.Fatal(err)
	}
	indefDec, err := Decode(indefEnc, indefOpts)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(defDec, indefDec) {
		t.Fatalf("decoded values differ: %+v vs %+v", defDec, indefDec)
	}
}

func TestCanonicalFloatShortest(t *testing.T) {
	cases := []struct {
		f    float64
		want string
	}{
		{1.5, "F93E00"},   // exact half
		{100000.0, "FA47C35000"}, // not representable in half, fits single
	}
	for _, c := range cases {
		got, err := Encode(Float(c.f), CanonicalOptions())
		if err != nil {
			t.Fatal(err)
		}
		if strings.ToUpper(hex.EncodeToString(got)) != c.want {
			t.Errorf("f=%v: got %s, want %s", c.f, strings.ToUpper(hex.EncodeToString(got)), c.want)
		}
	}
}

func TestCanonicalMapKeySortingByLength(t *testing.T) {
	// Keys of different encoded length: a 3-byte key (text "bb", 0x626262)
	// must sort after a 1-byte key (uint 0), even though 0 < "bb" has no
	// natural ordering otherwise.
	m := Map(
		Pair{Key: Text("bb"), Value: UintFromU64(1)},
		Pair{Key: UintFromU64(0), Value: UintFromU64(2)},
	)
	enc, err := Encode(m, CanonicalOptions())
	if err != nil {
		t.Fatal(err)
	}
	dec, err := Decode(enc, CanonicalOptions())
	if err != nil {
		t.Fatal(err)
	}
	pairs := dec.AsMap()
	if pairs[0].Key.Kind() != MajorUint {
		t.Fatalf("expected shorter-encoded key (uint 0) first, got %+v", pairs[0].Key)
	}
}

func TestBignumFold(t *testing.T) {
	n := new(big.Int).Lsh(big.NewInt(1), 64) // 2^64
	enc, err := Encode(Uint(n), CmlDefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	dec, err := Decode(enc, CmlDefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if dec.AsBigInt().Cmp(n) != 0 {
		t.Fatalf("got %s, want %s", dec.AsBigInt(), n)
	}
}

func TestEncodeRejectsNegativeUint(t *testing.T) {
	v := Value{kind: MajorUint}
	v.uintVal.SetInt64(-1)
	if _, err := Encode(v, CmlDefaultOptions()); !Is(err, EncoderRefusal) {
		t.Fatalf("expected EncoderRefusal, got %v", err)
	}
}
