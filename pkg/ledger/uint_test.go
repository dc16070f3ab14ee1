package ledger

import (
	"math/big"
	"testing"

	"github.com/cardano-cbor/ledgercodec/pkg/cbor"
)

func TestUintNSchemaAcceptsBoundary(t *testing.T) {
	s := UintNSchema(8)
	v, err := s.Decode(cbor.UintFromU64(255))
	if err != nil {
		t.Fatalf("decode 255 into uint8 range: %v", err)
	}
	if v.Cmp(big.NewInt(255)) != 0 {
		t.Fatalf("got %v, want 255", v)
	}
	if _, err := s.Decode(cbor.UintFromU64(256)); err == nil {
		t.Fatalf("expected error decoding 256 into uint8 range")
	}
}

func TestInt64SchemaRejectsOutOfRange(t *testing.T) {
	tooBig := new(big.Int).Lsh(big.NewInt(1), 63)
	_, err := Int64Schema.Encode(tooBig)
	if err == nil {
		t.Fatalf("expected error encoding 2^63 as int64")
	}
	if !cbor.Is(err, cbor.InvariantViolation) {
		t.Fatalf("expected InvariantViolation kind, got %v", err)
	}
}

func TestPositiveCoinRejectsZero(t *testing.T) {
	if _, err := PositiveCoinSchema.Decode(cbor.UintFromU64(0)); err == nil {
		t.Fatalf("expected error decoding 0 as PositiveCoin")
	}
	v, err := PositiveCoinSchema.Decode(cbor.UintFromU64(1))
	if err != nil {
		t.Fatalf("decode 1 as PositiveCoin: %v", err)
	}
	if v.Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("got %v, want 1", v)
	}
}

func TestNonZeroInt64SchemaRejectsZero(t *testing.T) {
	if _, err := NonZeroInt64Schema.Decode(cbor.UintFromU64(0)); err == nil {
		t.Fatalf("expected error decoding 0 as NonZeroInt64")
	}
	v, err := NonZeroInt64Schema.Decode(cbor.NintFromI64(-5))
	if err != nil {
		t.Fatalf("decode -5 as NonZeroInt64: %v", err)
	}
	if v.Cmp(big.NewInt(-5)) != 0 {
		t.Fatalf("got %v, want -5", v)
	}
}
