package ledger

import (
	"testing"

	"github.com/cardano-cbor/ledgercodec/pkg/cbor"
	"github.com/cardano-cbor/ledgercodec/pkg/schema"
)

func TestTransactionWitnessSetRoundTrip(t *testing.T) {
	opts := cbor.DefaultOptions(cbor.ProfileCml)
	w := TransactionWitnessSet{
		VKeyWitnesses: []VKeyWitness{
			{VKey: make([]byte, 32), Signature: make([]byte, 64)},
		},
		Redeemers: []Redeemer{
			{Tag: 0, Index: 0, Data: cbor.UintFromU64(7), Mem: 100, Steps: 200},
		},
		PlutusV2Scripts: [][]byte{{0x01, 0x02, 0x03}},
	}
	s := TransactionWitnessSetSchema(opts)
	v, err := s.Encode(w)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := s.Decode(v)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !w.Equal(back, opts) {
		t.Fatalf("round trip mismatch")
	}
}

func TestTransactionWitnessSetAcceptsBareArrayForSets(t *testing.T) {
	opts := cbor.DefaultOptions(cbor.ProfileCml)
	s := TransactionWitnessSetSchema(opts)
	vkeyWitness, err := vKeyWitnessSchema.Encode(VKeyWitness{VKey: make([]byte, 32), Signature: make([]byte, 64)})
	if err != nil {
		t.Fatalf("encode vkey witness: %v", err)
	}
	bare := cbor.Map(cbor.Pair{Key: cbor.UintFromU64(0), Value: cbor.Array(vkeyWitness)})
	out, err := s.Decode(bare)
	if err != nil {
		t.Fatalf("decode bare-array key 0: %v", err)
	}
	if len(out.VKeyWitnesses) != 1 {
		t.Fatalf("got %d vkey witnesses, want 1", len(out.VKeyWitnesses))
	}
}

func TestTransactionWitnessSetAcceptsTag258WrappedSet(t *testing.T) {
	opts := cbor.DefaultOptions(cbor.ProfileCml)
	s := TransactionWitnessSetSchema(opts)
	wrapped := cbor.Map(cbor.Pair{
		Key:   cbor.UintFromU64(3),
		Value: cbor.Tag(cbor.TagSet, cbor.Array(cbor.Bytes([]byte{0xDE, 0xAD}))),
	})
	out, err := s.Decode(wrapped)
	if err != nil {
		t.Fatalf("decode tag-258 key 3: %v", err)
	}
	if len(out.PlutusV1Scripts) != 1 {
		t.Fatalf("got %d plutus v1 scripts, want 1", len(out.PlutusV1Scripts))
	}
}

func TestTransactionWitnessSetEncodeWrapsSetsInTag258(t *testing.T) {
	opts := cbor.DefaultOptions(cbor.ProfileCml)
	s := TransactionWitnessSetSchema(opts)
	w := TransactionWitnessSet{PlutusV1Scripts: [][]byte{{0x01}}}
	v, err := s.Encode(w)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	m, err := schema.DecodeIntKeyedMap(v)
	if err != nil {
		t.Fatalf("decode map: %v", err)
	}
	raw, ok := m.Get(witnessKeyPlutusV1)
	if !ok {
		t.Fatalf("key 3 missing")
	}
	if raw.Kind() != cbor.MajorTag || raw.TagNumber() != cbor.TagSet {
		t.Fatalf("expected key 3 wrapped in tag 258, got kind %v", raw.Kind())
	}
}

func TestTransactionWitnessSetEmptyOmitsAllKeys(t *testing.T) {
	opts := cbor.DefaultOptions(cbor.ProfileCml)
	s := TransactionWitnessSetSchema(opts)
	v, err := s.Encode(TransactionWitnessSet{})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(v.AsMap()) != 0 {
		t.Fatalf("expected empty map for empty witness set, got %d entries", len(v.AsMap()))
	}
}
