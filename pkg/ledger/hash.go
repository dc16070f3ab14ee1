package ledger

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Blake2b256 is a 32-byte blake2b digest, used for transaction body hashes
// and similar 256-bit identifiers.
type Blake2b256 [32]byte

// NewBlake2b256 hashes data with blake2b-256.
func NewBlake2b256(data []byte) Blake2b256 {
	return Blake2b256(blake2b.Sum256(data))
}

// String renders the hash as lowercase hex.
func (b Blake2b256) String() string { return hex.EncodeToString(b[:]) }

// Bytes returns the raw hash bytes.
func (b Blake2b256) Bytes() []byte { return b[:] }

// Blake2b224 is a 28-byte blake2b digest, used for policy IDs and script
// hashes.
type Blake2b224 [28]byte

// NewBlake2b224 hashes data with blake2b-224.
func NewBlake2b224(data []byte) Blake2b224 {
	h, err := blake2b.New(28, nil)
	if err != nil {
		panic(err) // only fails for an invalid output size, which 28 is not
	}
	h.Write(data)
	var b Blake2b224
	copy(b[:], h.Sum(nil))
	return b
}

// String renders the hash as lowercase hex.
func (b Blake2b224) String() string { return hex.EncodeToString(b[:]) }

// Bytes returns the raw hash bytes.
func (b Blake2b224) Bytes() []byte { return b[:] }

// Blake2b160 is a 20-byte blake2b digest, used internally for asset
// fingerprints.
type Blake2b160 [20]byte

// NewBlake2b160 hashes data with blake2b-160.
func NewBlake2b160(data []byte) Blake2b160 {
	h, err := blake2b.New(20, nil)
	if err != nil {
		panic(err)
	}
	h.Write(data)
	var b Blake2b160
	copy(b[:], h.Sum(nil))
	return b
}

// String renders the hash as lowercase hex.
func (b Blake2b160) String() string { return hex.EncodeToString(b[:]) }

// Bytes returns the raw hash bytes.
func (b Blake2b160) Bytes() []byte { return b[:] }

// AssetFingerprint is the bech32 "asset1..." identifier CIP-14 derives from
// a policy ID and asset name, via blake2b-160 of their concatenation. It is
// pure derived display data: no signing, no network lookup.
type AssetFingerprint struct {
	hash Blake2b160
}

// NewAssetFingerprint computes the fingerprint for (policyId, assetName).
func NewAssetFingerprint(policyId, assetName []byte) AssetFingerprint {
	combined := make([]byte, 0, len(policyId)+len(assetName))
	combined = append(combined, policyId...)
	combined = append(combined, assetName...)
	return AssetFingerprint{hash: NewBlake2b160(combined)}
}

// Hash returns the underlying blake2b-160 digest.
func (a AssetFingerprint) Hash() Blake2b160 { return a.hash }

// String renders the fingerprint as a bech32 string with the "asset" HRP.
func (a AssetFingerprint) String() string {
	data := convertBits(a.hash[:], 8, 5, true)
	return bech32Encode("asset", data)
}
