package largeint

import (
	"bytes"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestMarshalBinary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		x    *Int
		want []byte
	}{
		{New(0), []byte{0x02, 0x00}},
		{New(5), []byte{0x02, 0x05}},
		{New(-5), []byte{0x03, 0x05}},
		{New(256), []byte{0x02, 0x01, 0x00}},
		{New(-0x1234), []byte{0x03, 0x12, 0x34}},
	}
	for _, tt := range tests {
		got, err := tt.x.MarshalBinary()
		if err != nil {
			t.Fatalf("MarshalBinary(%s): %v", tt.x, err)
		}
		if !bytes.Equal(got, tt.want) {
			t.Errorf("MarshalBinary(%s) = %x, want %x", tt.x, got, tt.want)
		}
		var back Int
		if err := back.UnmarshalBinary(got); err != nil {
			t.Fatalf("UnmarshalBinary(%x): %v", got, err)
		}
		checkInvariants(t, &back)
		if !back.Equal(tt.x) {
			t.Errorf("round trip of %s gave %s", tt.x, &back)
		}
	}
}

func TestUnmarshalBinaryErrors(t *testing.T) {
	t.Parallel()

	z := New(7)
	if err := z.UnmarshalBinary(nil); err != nil || !z.IsZero() {
		t.Errorf("empty input: %s, %v", z, err)
	}
	if err := z.UnmarshalBinary([]byte{0x09, 0x01}); err == nil {
		t.Error("unknown version should be rejected")
	}
	// A negative zero on the wire decodes to plain zero.
	if err := z.UnmarshalBinary([]byte{0x03, 0x00, 0x00}); err != nil || z.Negative() || !z.IsZero() {
		t.Errorf("negative zero decoded as %s, %v", z, err)
	}
}

func TestMsgpack(t *testing.T) {
	t.Parallel()

	type session struct {
		Vars map[string]*Int `msgpack:"vars"`
		Last *Int            `msgpack:"last"`
	}
	in := session{
		Vars: map[string]*Int{
			"a": New(-42),
			"b": ShiftLeft(New(1), 130),
		},
		Last: New(0),
	}
	data, err := msgpack.Marshal(&in)
	if err != nil {
		t.Fatalf("msgpack.Marshal: %v", err)
	}
	var out session
	if err := msgpack.Unmarshal(data, &out); err != nil {
		t.Fatalf("msgpack.Unmarshal: %v", err)
	}
	if len(out.Vars) != 2 || !out.Vars["a"].Equal(in.Vars["a"]) || !out.Vars["b"].Equal(in.Vars["b"]) {
		t.Errorf("vars round trip = %v", out.Vars)
	}
	if out.Last == nil || !out.Last.IsZero() {
		t.Errorf("last = %v", out.Last)
	}
}
