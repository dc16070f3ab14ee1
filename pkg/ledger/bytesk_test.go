package ledger

import (
	"reflect"
	"testing"

	"github.com/cardano-cbor/ledgercodec/pkg/cbor"
)

func TestBytesKSchemaRejectsWrongLength(t *testing.T) {
	s := BytesKSchema(28)
	if _, err := s.Decode(cbor.Bytes(make([]byte, 27))); err == nil {
		t.Fatalf("expected error decoding 27 bytes into a 28-byte schema")
	}
	v, err := s.Decode(cbor.Bytes(make([]byte, 28)))
	if err != nil {
		t.Fatalf("decode 28 bytes: %v", err)
	}
	if len(v) != 28 {
		t.Fatalf("got length %d, want 28", len(v))
	}
}

func TestAssetNameSchemaRejectsOverlong(t *testing.T) {
	if _, err := AssetNameSchema.Decode(cbor.Bytes(make([]byte, 33))); err == nil {
		t.Fatalf("expected error decoding a 33-byte asset name")
	}
	if _, err := AssetNameSchema.Decode(cbor.Bytes(make([]byte, 32))); err != nil {
		t.Fatalf("decode 32-byte asset name: %v", err)
	}
}

func TestPolicyIdRoundTrip(t *testing.T) {
	raw := make([]byte, 28)
	for i := range raw {
		raw[i] = byte(i)
	}
	p, err := PolicyIdSchema.Decode(cbor.Bytes(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	v, err := PolicyIdSchema.Encode(p)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !cbor.Equal(v, cbor.Bytes(raw)) {
		t.Fatalf("round trip mismatch")
	}
	if len(p.String()) != 56 {
		t.Fatalf("policy id hex string length = %d, want 56", len(p.String()))
	}
}

func TestScriptHashDistinctTypeFromPolicyId(t *testing.T) {
	var p PolicyId
	var s ScriptHash
	// PolicyId and ScriptHash share a wire shape, so moving between them
	// takes an explicit conversion; the two must remain distinct named types.
	s = ScriptHash(p)
	p = PolicyId(s)
	if reflect.TypeOf(p) == reflect.TypeOf(s) {
		t.Fatalf("PolicyId and ScriptHash must be distinct types")
	}
}
