package schema

import (
	"testing"

	"github.com/dbfdrive/godbf/buffer"
)

func TestHeaderRoundTrip(t *testing.T) {
	h := &Header{
		Version:             3,
		Year:                124,
		Month:               7,
		Day:                 31,
		RecordNumber:        10,
		HeaderBytes:         97,
		RecordBytes:         21,
		IncompleteOps:       0,
		PasswordMark:        0,
		MultiUserProcessing: "",
		MdxTag:              0,
		DriverID:            0,
	}
	b := buffer.New()
	if err := h.SerializeTo(b); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if b.ReadableBytes() != HeaderSize {
		t.Fatalf("want %d bytes written, got %d", HeaderSize, b.ReadableBytes())
	}
	got := &Header{}
	if err := got.ParseFrom(b); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if *got != *h {
		t.Errorf("round trip mismatch: got %+v want %+v", got, h)
	}
}

func TestHeaderModified(t *testing.T) {
	h := &Header{Year: 124, Month: 7, Day: 31}
	m := h.Modified()
	if m.Year() != 2024 || int(m.Month()) != 7 || m.Day() != 31 {
		t.Errorf("unexpected Modified(): %v", m)
	}
}

func TestFieldDescriptorRoundTrip(t *testing.T) {
	f := &FieldDescriptor{
		Name:         "AMOUNT",
		FieldType:    "N",
		TotalLen:     10,
		PrecisionLen: 2,
		WorkspaceID:  0,
		MdxTag:       0,
	}
	b := buffer.New()
	if err := f.SerializeTo(b); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if b.ReadableBytes() != FieldSize {
		t.Fatalf("want %d bytes written, got %d", FieldSize, b.ReadableBytes())
	}
	got := &FieldDescriptor{}
	if err := got.ParseFrom(b); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if *got != *f {
		t.Errorf("round trip mismatch: got %+v want %+v", got, f)
	}
}

func TestFieldDescriptorDateWidthCorrection(t *testing.T) {
	f := &FieldDescriptor{Name: "DOB", FieldType: "D", TotalLen: 0}
	b := buffer.New()
	if err := f.SerializeTo(b); err != nil {
		t.Fatal(err)
	}
	got := &FieldDescriptor{}
	if err := got.ParseFrom(b); err != nil {
		t.Fatal(err)
	}
	if got.TotalLen != 8 {
		t.Errorf("want TotalLen corrected to 8, got %d", got.TotalLen)
	}
}

func TestFieldDescriptorMatches(t *testing.T) {
	a := &FieldDescriptor{Name: "ID", FieldType: "N", TotalLen: 6, PrecisionLen: 0}
	b := &FieldDescriptor{Name: "ID", FieldType: "N", TotalLen: 6, PrecisionLen: 0}
	c := &FieldDescriptor{Name: "ID", FieldType: "N", TotalLen: 8, PrecisionLen: 0}
	if !a.Matches(b) {
		t.Error("expected identical descriptors to match")
	}
	if a.Matches(c) {
		t.Error("expected differing TotalLen to not match")
	}
}

func TestDeleteFlagRoundTrip(t *testing.T) {
	var d DeleteFlag
	d.SetDeleted(true)
	b := buffer.New()
	if err := d.SerializeFlagTo(b); err != nil {
		t.Fatal(err)
	}
	var got DeleteFlag
	if err := got.ParseFlagFrom(b); err != nil {
		t.Fatal(err)
	}
	if !got.Deleted() {
		t.Error("want deleted flag to round trip as true")
	}
}

func TestDeleteFlagLiveByte(t *testing.T) {
	var d DeleteFlag
	b := buffer.New()
	d.SerializeFlagTo(b)
	raw := append([]byte(nil), b.Peek()...)
	if raw[0] != 0x20 {
		t.Errorf("want live byte 0x20, got %#x", raw[0])
	}
}
