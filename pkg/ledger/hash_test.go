package ledger

import "testing"

func TestBlake2b256Length(t *testing.T) {
	h := NewBlake2b256([]byte("hello"))
	if len(h.Bytes()) != 32 {
		t.Fatalf("got %d bytes, want 32", len(h.Bytes()))
	}
	if len(h.String()) != 64 {
		t.Fatalf("got hex length %d, want 64", len(h.String()))
	}
}

func TestBlake2b224Length(t *testing.T) {
	h := NewBlake2b224([]byte("hello"))
	if len(h.Bytes()) != 28 {
		t.Fatalf("got %d bytes, want 28", len(h.Bytes()))
	}
}

func TestBlake2b160Length(t *testing.T) {
	h := NewBlake2b160([]byte("hello"))
	if len(h.Bytes()) != 20 {
		t.Fatalf("got %d bytes, want 20", len(h.Bytes()))
	}
}

func TestAssetFingerprintIsStableAndBechEncoded(t *testing.T) {
	policyId := make([]byte, 28)
	assetName := []byte("nutcoin")
	a := NewAssetFingerprint(policyId, assetName)
	b := NewAssetFingerprint(policyId, assetName)
	if a.String() != b.String() {
		t.Fatalf("fingerprint is not deterministic: %s != %s", a.String(), b.String())
	}
	want := "asset1"
	if len(a.String()) <= len(want) || a.String()[:len(want)] != want {
		t.Fatalf("fingerprint %q does not have the asset1 prefix", a.String())
	}
}

func TestAssetFingerprintDiffersByAssetName(t *testing.T) {
	policyId := make([]byte, 28)
	a := NewAssetFingerprint(policyId, []byte("nutcoin"))
	b := NewAssetFingerprint(policyId, []byte("boltcoin"))
	if a.String() == b.String() {
		t.Fatalf("expected distinct fingerprints for distinct asset names")
	}
}
