package cbor

import (
	"math/big"
	"unicode/utf8"
)

// Decode parses exactly the bytes in data as a single CBOR item and returns
// the resulting Value tree. It returns TrailingInput if any byte remains
// unconsumed after the top-level item, and InputTruncated if any declared
// length exceeds the available bytes. opts is not consulted: no option
// changes how bytes decode, and maps always decode as ordered pairs (the
// MapsAsObjects flag has no effect here).
func Decode(data []byte, opts Options) (Value, error) {
	r := &reader{buf: data}
	v, err := r.readValue()
	if err != nil {
		return Value{}, err
	}
	if r.pos != len(r.buf) {
		return Value{}, Newf(TrailingInput, "decode consumed %d of %d bytes", r.pos, len(r.buf))
	}
	return v, nil
}

type reader struct {
	buf []byte
	pos int
}

func (r *reader) remaining() int {
	return len(r.buf) - r.pos
}

func (r *reader) need(n int) error {
	if n < 0 || n > r.remaining() {
		return Newf(InputTruncated, "need %d bytes at offset %d, have %d", n, r.pos, r.remaining())
	}
	return nil
}

func (r *reader) readByte() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) readBytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// readBytesU64 is readBytes for a length taken straight off the wire (a
// header's ai==27 value, say), before it has been range-checked against the
// input. n is compared against the remaining byte count while still a
// uint64, so a declared length of 2^63 or more is caught here rather than
// wrapping negative when narrowed to int.
func (r *reader) readBytesU64(n uint64) ([]byte, error) {
	if n > uint64(r.remaining()) {
		return nil, Newf(InputTruncated, "need %d bytes at offset %d, have %d", n, r.pos, r.remaining())
	}
	return r.readBytes(int(n))
}

// header reads an initial byte and decodes its additional-info length/value
// field. isBreak is true only for the major-7 break marker (0xFF).
type header struct {
	major      byte // top 3 bits
	ai         byte // bottom 5 bits
	value      uint64
	indefinite bool
	isBreak    bool
}

func (r *reader) readHeader() (header, error) {
	ib, err := r.readByte()
	if err != nil {
		return header{}, err
	}
	major := ib >> 5
	ai := ib & 0x1F

	if major == 7 && ai == 31 {
		return header{major: major, ai: ai, isBreak: true}, nil
	}

	switch {
	case ai < 24:
		return header{major: major, ai: ai, value: uint64(ai)}, nil
	case ai == 24:
		b, err := r.readByte()
		if err != nil {
			return header{}, err
		}
		return header{major: major, ai: ai, value: uint64(b)}, nil
	case ai == 25:
		b, err := r.readBytes(2)
		if err != nil {
			return header{}, err
		}
		return header{major: major, ai: ai, value: uint64(b[0])<<8 | uint64(b[1])}, nil
	case ai == 26:
		b, err := r.readBytes(4)
		if err != nil {
			return header{}, err
		}
		var v uint64
		for _, c := range b {
			v = v<<8 | uint64(c)
		}
		return header{major: major, ai: ai, value: v}, nil
	case ai == 27:
		b, err := r.readBytes(8)
		if err != nil {
			return header{}, err
		}
		var v uint64
		for _, c := range b {
			v = v<<8 | uint64(c)
		}
		return header{major: major, ai: ai, value: v}, nil
	case ai == 31:
		return header{major: major, ai: ai, indefinite: true}, nil
	default: // 28, 29, 30
		return header{}, Newf(MalformedHeader, "reserved additional-info value %d", ai)
	}
}

func (r *reader) readValue() (Value, error) {
	h, err := r.readHeader()
	if err != nil {
		return Value{}, err
	}
	if h.isBreak {
		return Value{}, Newf(MalformedHeader, "unexpected break byte")
	}
	return r.readValueFromHeader(h)
}

func (r *reader) readValueFromHeader(h header) (Value, error) {
	switch h.major {
	case 0:
		return Uint(new(big.Int).SetUint64(h.value)), nil
	case 1:
		return Nint(new(big.Int).SetUint64(h.value)), nil
	case 2:
		return r.readStringLike(h, false)
	case 3:
		return r.readStringLike(h, true)
	case 4:
		return r.readArray(h)
	case 5:
		return r.readMap(h)
	case 6:
		return r.readTag(h)
	case 7:
		return r.readSimpleOrFloat(h)
	default:
		return Value{}, Newf(MalformedHeader, "impossible major type %d", h.major)
	}
}

// readStringLike handles major types 2 (bytes) and 3 (text), including the
// indefinite chunked form: a stream of definite-length chunks of the same
// major type, terminated by a break byte. A nested indefinite chunk, or a
// chunk of the wrong major type, is MalformedHeader.
func (r *reader) readStringLike(h header, text bool) (Value, error) {
	if !h.indefinite {
		b, err := r.readBytesU64(h.value)
		if err != nil {
			return Value{}, err
		}
		if text {
			if !utf8.Valid(b) {
				return Value{}, Newf(InvalidUtf8, "text string is not valid UTF-8")
			}
			return Text(string(b)), nil
		}
		return Bytes(b), nil
	}

	var acc []byte
	for {
		ib, err := r.readHeader()
		if err != nil {
			return Value{}, err
		}
		if ib.isBreak {
			break
		}
		wantMajor := byte(2)
		if text {
			wantMajor = 3
		}
		if ib.major != wantMajor || ib.indefinite {
			return Value{}, Newf(MalformedHeader, "indefinite string chunk must be definite-length major %d", wantMajor)
		}
		chunk, err := r.readBytesU64(ib.value)
		if err != nil {
			return Value{}, err
		}
		acc = append(acc, chunk...)
	}
	if text {
		if !utf8.Valid(acc) {
			return Value{}, Newf(InvalidUtf8, "text string is not valid UTF-8")
		}
		return TextIndefinite(string(acc)), nil
	}
	return BytesIndefinite(acc), nil
}

func (r *reader) readArray(h header) (Value, error) {
	if !h.indefinite {
		if h.value > uint64(r.remaining()) {
			return Value{}, Newf(InputTruncated, "array declares %d items but only %d bytes remain", h.value, r.remaining())
		}
		items := make([]Value, 0, h.value)
		for i := uint64(0); i < h.value; i++ {
			v, err := r.readValue()
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		v := Array(items...)
		return v, nil
	}
	var items []Value
	for {
		ih, err := r.readHeader()
		if err != nil {
			return Value{}, err
		}
		if ih.isBreak {
			break
		}
		item, err := r.readValueFromHeader(ih)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
	v := Array(items...)
	v.chunked = true
	return v, nil
}

func (r *reader) readMap(h header) (Value, error) {
	if !h.indefinite {
		if h.value > uint64(r.remaining())/2 {
			return Value{}, Newf(InputTruncated, "map declares %d entries but only %d bytes remain", h.value, r.remaining())
		}
		pairs := make([]Pair, 0, h.value)
		for i := uint64(0); i < h.value; i++ {
			k, err := r.readValue()
			if err != nil {
				return Value{}, err
			}
			val, err := r.readValue()
			if err != nil {
				return Value{}, err
			}
			pairs = append(pairs, Pair{Key: k, Value: val})
		}
		return Map(pairs...), nil
	}
	var pairs []Pair
	for {
		ih, err := r.readHeader()
		if err != nil {
			return Value{}, err
		}
		if ih.isBreak {
			break
		}
		k, err := r.readValueFromHeader(ih)
		if err != nil {
			return Value{}, err
		}
		val, err := r.readValue()
		if err != nil {
			return Value{}, err
		}
		pairs = append(pairs, Pair{Key: k, Value: val})
	}
	v := Map(pairs...)
	v.chunked = true
	return v, nil
}

func (r *reader) readTag(h header) (Value, error) {
	if h.indefinite {
		return Value{}, Newf(MalformedHeader, "tag header cannot be indefinite")
	}
	inner, err := r.readValue()
	if err != nil {
		return Value{}, err
	}
	switch h.value {
	case TagBignumPositive:
		if inner.Kind() != MajorBytes {
			return Value{}, Newf(InvalidTagPayload, "tag 2 requires a byte string inner value, got %v", inner.Kind())
		}
		return Uint(bignumFromBytes(inner.AsBytes())), nil
	case TagBignumNegative:
		if inner.Kind() != MajorBytes {
			return Value{}, Newf(InvalidTagPayload, "tag 3 requires a byte string inner value, got %v", inner.Kind())
		}
		n := bignumFromBytes(inner.AsBytes())
		return Nint(n), nil
	default:
		return Tag(h.value, inner), nil
	}
}

func (r *reader) readSimpleOrFloat(h header) (Value, error) {
	switch h.ai {
	case 20:
		return SimpleValue(SimpleFalse), nil
	case 21:
		return SimpleValue(SimpleTrue), nil
	case 22:
		return SimpleValue(SimpleNull), nil
	case 23:
		return SimpleValue(SimpleUndefined), nil
	case 24:
		return SimpleValue(Simple(h.value)), nil
	case 25:
		return Float(decodeFloat16(uint16(h.value))), nil
	case 26:
		return Float(decodeFloat32(uint32(h.value))), nil
	case 27:
		return Float(decodeFloat64(h.value)), nil
	default:
		// ai < 20: unassigned simple values 0..19, returned as the raw code.
		return SimpleValue(Simple(h.ai)), nil
	}
}
