package cbor

import (
	"bytes"
	"math"
	"math/big"
	"sort"
)

// Encode serializes v to CBOR bytes under opts. Output is a pure function of
// (v, opts). Encode(Decode(b, o), o) reproduces b bit-for-bit whenever b was
// itself produced by Encode under o; bytes from another encoder (for example
// non-minimal headers under ModeCanonical) are re-encoded in o's form.
func Encode(v Value, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, v, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, v Value, opts Options) error {
	switch v.Kind() {
	case MajorUint:
		return writeUint(buf, &v.uintVal, opts)
	case MajorNint:
		return writeNint(buf, &v.uintVal, opts)
	case MajorBytes:
		writeHeaderLen(buf, 2, len(v.bytes), opts)
		buf.Write(v.bytes)
		return nil
	case MajorText:
		writeHeaderLen(buf, 3, len(v.bytes), opts)
		buf.Write(v.bytes)
		return nil
	case MajorArray:
		return writeArray(buf, v.array, opts)
	case MajorMap:
		return writeMap(buf, v.pairs, opts)
	case MajorTag:
		return writeTag(buf, v, opts)
	case MajorSimpleFloat:
		if v.isSimple {
			return writeSimple(buf, v.simple)
		}
		return writeFloat(buf, v.floatVal, opts)
	default:
		return Newf(EncoderRefusal, "unknown value kind %v", v.Kind())
	}
}

// writeTypeAndLen emits an initial byte (major in the top 3 bits) followed
// by the length/value header for n. When minimal is false the writer always
// widens to the 8-byte (ai=27) form; when true it picks the shortest header
// that fits.
func writeTypeAndLen(buf *bytes.Buffer, major byte, n uint64, minimal bool) {
	mt := major << 5
	if !minimal {
		buf.WriteByte(mt | 27)
		writeBE(buf, n, 8)
		return
	}
	switch {
	case n < 24:
		buf.WriteByte(mt | byte(n))
	case n <= math.MaxUint8:
		buf.WriteByte(mt | 24)
		buf.WriteByte(byte(n))
	case n <= math.MaxUint16:
		buf.WriteByte(mt | 25)
		writeBE(buf, n, 2)
	case n <= math.MaxUint32:
		buf.WriteByte(mt | 26)
		writeBE(buf, n, 4)
	default:
		buf.WriteByte(mt | 27)
		writeBE(buf, n, 8)
	}
}

func writeBE(buf *bytes.Buffer, n uint64, width int) {
	b := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		b[i] = byte(n)
		n >>= 8
	}
	buf.Write(b)
}

func writeHeaderLen(buf *bytes.Buffer, major byte, n int, opts Options) {
	writeTypeAndLen(buf, major, uint64(n), opts.minimalEncoding())
}

func writeUint(buf *bytes.Buffer, n *big.Int, opts Options) error {
	if n.Sign() < 0 {
		return Newf(EncoderRefusal, "Uint value must be non-negative, got %s", n.String())
	}
	if fitsUint64(n) {
		writeTypeAndLen(buf, 0, n.Uint64(), opts.minimalEncoding())
		return nil
	}
	return writeBignum(buf, TagBignumPositive, n, opts)
}

func writeNint(buf *bytes.Buffer, n *big.Int, opts Options) error {
	// n is the wire "n" such that the represented value is -1-n; n must be >= 0.
	if n.Sign() < 0 {
		return Newf(EncoderRefusal, "Nint payload must be non-negative, got %s", n.String())
	}
	if fitsUint64(n) {
		writeTypeAndLen(buf, 1, n.Uint64(), opts.minimalEncoding())
		return nil
	}
	return writeBignum(buf, TagBignumNegative, n, opts)
}

func writeBignum(buf *bytes.Buffer, tag uint64, n *big.Int, opts Options) error {
	writeTypeAndLen(buf, 6, tag, true)
	payload := bignumBytes(n)
	writeHeaderLen(buf, 2, len(payload), opts)
	buf.Write(payload)
	return nil
}

func writeArray(buf *bytes.Buffer, items []Value, opts Options) error {
	if opts.indefiniteArrays(len(items)) {
		buf.WriteByte(0x9F)
		for _, it := range items {
			if err := writeValue(buf, it, opts); err != nil {
				return err
			}
		}
		buf.WriteByte(0xFF)
		return nil
	}
	writeHeaderLen(buf, 4, len(items), opts)
	for _, it := range items {
		if err := writeValue(buf, it, opts); err != nil {
			return err
		}
	}
	return nil
}

func writeMap(buf *bytes.Buffer, pairs []Pair, opts Options) error {
	encoded := pairs
	if opts.sortKeys() {
		var err error
		encoded, err = sortedPairs(pairs, opts)
		if err != nil {
			return err
		}
	}

	if opts.indefiniteMaps(len(encoded)) {
		buf.WriteByte(0xBF)
		if err := writePairsBody(buf, encoded, opts); err != nil {
			return err
		}
		buf.WriteByte(0xFF)
		return nil
	}
	writeHeaderLen(buf, 5, len(encoded), opts)
	return writePairsBody(buf, encoded, opts)
}

func writePairsBody(buf *bytes.Buffer, pairs []Pair, opts Options) error {
	for _, p := range pairs {
		if err := writeValue(buf, p.Key, opts); err != nil {
			return err
		}
		if err := writeValue(buf, p.Value, opts); err != nil {
			return err
		}
	}
	return nil
}

// sortedPairs encodes each key and sorts the pairs by encoded-key byte
// length. In ModeCustom the sort key is the encoded key's byte length only
// (a deliberate CML-compatibility quirk, not RFC 8949 canonical order; ties
// keep encounter order). ModeCanonical additionally breaks length ties by
// byte-wise lexicographic comparison of the encoded key, for strict RFC
// compliance.
func sortedPairs(pairs []Pair, opts Options) ([]Pair, error) {
	type keyed struct {
		pair    Pair
		keyEnc  []byte
		origIdx int
	}
	ks := make([]keyed, len(pairs))
	for i, p := range pairs {
		enc, err := Encode(p.Key, opts)
		if err != nil {
			return nil, err
		}
		ks[i] = keyed{pair: p, keyEnc: enc, origIdx: i}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		if len(ks[i].keyEnc) != len(ks[j].keyEnc) {
			return len(ks[i].keyEnc) < len(ks[j].keyEnc)
		}
		if opts.Mode == ModeCanonical {
			return bytes.Compare(ks[i].keyEnc, ks[j].keyEnc) < 0
		}
		return ks[i].origIdx < ks[j].origIdx
	})
	out := make([]Pair, len(ks))
	for i, k := range ks {
		out[i] = k.pair
	}
	return out, nil
}

func writeTag(buf *bytes.Buffer, v Value, opts Options) error {
	if v.tagNum == TagBignumPositive || v.tagNum == TagBignumNegative {
		if v.inner.Kind() != MajorBytes {
			return Newf(InvalidTagPayload, "tag %d requires a byte string inner value", v.tagNum)
		}
	}
	writeTypeAndLen(buf, 6, v.tagNum, true)
	return writeValue(buf, *v.inner, opts)
}

func writeSimple(buf *bytes.Buffer, s Simple) error {
	switch s {
	case SimpleFalse:
		buf.WriteByte(0xF4)
	case SimpleTrue:
		buf.WriteByte(0xF5)
	case SimpleNull:
		buf.WriteByte(0xF6)
	case SimpleUndefined:
		buf.WriteByte(0xF7)
	default:
		n := byte(s)
		if n < 20 {
			buf.WriteByte(0xE0 | n)
		} else {
			buf.WriteByte(0xF8)
			buf.WriteByte(n)
		}
	}
	return nil
}

func writeFloat(buf *bytes.Buffer, f float64, opts Options) error {
	width := 8
	if opts.Mode == ModeCanonical {
		width = shortestFloatWidth(f)
	}
	switch width {
	case 2:
		buf.WriteByte(0xF9)
		writeBE(buf, uint64(encodeFloat16(f)), 2)
	case 4:
		buf.WriteByte(0xFA)
		writeBE(buf, uint64(math.Float32bits(float32(f))), 4)
	default:
		buf.WriteByte(0xFB)
		writeBE(buf, math.Float64bits(f), 8)
	}
	return nil
}
