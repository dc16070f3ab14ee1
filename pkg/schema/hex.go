package schema

import (
	"encoding/hex"

	"github.com/cardano-cbor/ledgercodec/pkg/cbor"
)

// FromHex is the hex-string <-> Bytes schema: Decode parses a hex string
// into bytes (accepting either case), Encode renders bytes as lowercase,
// even-length hex with no "0x" prefix, matching the wire convention the
// rest of the toolkit uses for display.
var FromHex = Schema[string, []byte]{
	Decode: func(s string) ([]byte, error) {
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, cbor.Wrap(cbor.OutOfRange, err, "invalid hex string %q", s)
		}
		return b, nil
	},
	Encode: func(b []byte) (string, error) {
		return hex.EncodeToString(b), nil
	},
}
