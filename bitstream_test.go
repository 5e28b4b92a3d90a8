package xpress

import (
	"bytes"
	"testing"
)

func TestBitstream_FinishOnly(t *testing.T) {
	out := bytes.Repeat([]byte{0xEE}, 8)
	bs := newOutputBitstream(out)
	bs.finish()

	if !bytes.Equal(out[:4], []byte{0, 0, 0, 0}) {
		t.Fatalf("reserved slots: got=% x", out[:4])
	}
	if !bytes.Equal(out[4:], bytes.Repeat([]byte{0xEE}, 4)) {
		t.Fatalf("bytes past the cursor touched: got=% x", out[4:])
	}
}

func TestBitstream_PartialWordLandsInFirstSlot(t *testing.T) {
	out := make([]byte, 8)
	bs := newOutputBitstream(out)
	bs.writeBits(0xF, 4)
	bs.finish()

	want := []byte{0x00, 0xF0, 0x00, 0x00}
	if !bytes.Equal(out[:4], want) {
		t.Fatalf("got=% x want=% x", out[:4], want)
	}
}

func TestBitstream_FlushPromotesSlots(t *testing.T) {
	out := make([]byte, 8)
	bs := newOutputBitstream(out)
	bs.writeBits(0xAB, 8)
	bs.writeBits(0xCD, 8)
	bs.writeBits(0xEF, 8) // crosses 16 bits: 0xABCD flushes to the first slot
	bs.finish()

	want := []byte{0xCD, 0xAB, 0x00, 0xEF, 0x00, 0x00}
	if !bytes.Equal(out[:6], want) {
		t.Fatalf("got=% x want=% x", out[:6], want)
	}
}

func TestBitstream_RawBytesBypassPendingSlots(t *testing.T) {
	out := make([]byte, 8)
	bs := newOutputBitstream(out)
	bs.writeBits(0x01, 8)
	// The raw byte lands at the cursor, past both reserved slots; the next
	// flush fills the first slot and reserves a new one past the raw byte.
	bs.writeRawByte(0xAA)
	bs.writeBits(0xFFFF, 16)
	bs.finish()

	want := []byte{0xFF, 0x01, 0x00, 0xFF, 0xAA, 0x00, 0x00}
	if !bytes.Equal(out[:7], want) {
		t.Fatalf("got=% x want=% x", out[:7], want)
	}
}

func TestBitstream_RawWordWriters(t *testing.T) {
	out := make([]byte, 16)
	bs := newOutputBitstream(out)
	bs.writeRawByte(0x11)
	bs.writeRawUint16(0x2233)
	bs.writeRawUint32(0x44556677)
	bs.finish()

	want := []byte{
		0x00, 0x00, 0x00, 0x00, // empty bit slots, zeroed by finish
		0x11, 0x33, 0x22, 0x77, 0x66, 0x55, 0x44,
	}
	if !bytes.Equal(out[:11], want) {
		t.Fatalf("got=% x want=% x", out[:11], want)
	}
}
