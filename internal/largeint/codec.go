package largeint

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

const binaryVersion byte = 1

// MarshalBinary implements encoding.BinaryMarshaler. The first byte holds the
// format version shifted left by one with the sign in bit 0; the magnitude
// follows as big-endian bytes.
func (x *Int) MarshalBinary() ([]byte, error) {
	n := (x.sig + 8) / 8
	buf := make([]byte, 1+n)
	buf[0] = binaryVersion << 1
	if x.neg {
		buf[0] |= 1
	}
	for i := 0; i <= x.sig; i++ {
		if x.bit(i) == 1 {
			buf[n-i/8] |= 1 << (i % 8)
		}
	}
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (z *Int) UnmarshalBinary(buf []byte) error {
	if len(buf) == 0 {
		z.Truncate(0)
		return nil
	}
	if v := buf[0] >> 1; v != binaryVersion {
		return fmt.Errorf("largeint: binary encoding version %d not supported", v)
	}
	mag := buf[1:]
	z.sig = 0
	z.expand(maxInt(len(mag)*8-1, 0))
	for i := range z.bits[:z.sig+1] {
		z.bits[i] = 0
	}
	for i := 0; i < len(mag)*8; i++ {
		z.bits[i] = (mag[len(mag)-1-i/8] >> (i % 8)) & 1
	}
	z.contract()
	z.neg = buf[0]&1 == 1
	z.clearNegativeZero()
	return nil
}

var (
	_ msgpack.CustomEncoder = (*Int)(nil)
	_ msgpack.CustomDecoder = (*Int)(nil)
)

// EncodeMsgpack implements msgpack.CustomEncoder using the binary form.
func (x *Int) EncodeMsgpack(enc *msgpack.Encoder) error {
	b, err := x.MarshalBinary()
	if err != nil {
		return err
	}
	return enc.EncodeBytes(b)
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (z *Int) DecodeMsgpack(dec *msgpack.Decoder) error {
	b, err := dec.DecodeBytes()
	if err != nil {
		return err
	}
	return z.UnmarshalBinary(b)
}
