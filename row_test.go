package dbf

import (
	"errors"
	"testing"
	"time"

	"github.com/dbfdrive/godbf/buffer"
	"github.com/dbfdrive/godbf/schema"
)

func roundTripRow(t *testing.T, fields []*schema.FieldDescriptor, set func(*Row)) *Row {
	t.Helper()
	in := NewRow(fields)
	set(in)

	b := buffer.New()
	if err := in.SerializeTo(b); err != nil {
		t.Fatalf("SerializeTo: %v", err)
	}

	out := NewRow(fields)
	if err := out.ParseFrom(b); err != nil {
		t.Fatalf("ParseFrom: %v", err)
	}
	return out
}

func TestRowStringField(t *testing.T) {
	fields := []*schema.FieldDescriptor{{Name: "NAME", FieldType: "C", TotalLen: 10}}
	out := roundTripRow(t, fields, func(r *Row) { r.SetValue(0, "ALICE") })
	if v := RowTrimmedString(out, "NAME"); v != "ALICE" {
		t.Errorf("NAME = %q, want ALICE", v)
	}
}

func TestRowIntField(t *testing.T) {
	fields := []*schema.FieldDescriptor{{Name: "QTY", FieldType: "N", TotalLen: 6}}
	out := roundTripRow(t, fields, func(r *Row) { r.SetValue(0, int64(42)) })
	if v := RowInt64(out, "QTY"); v != 42 {
		t.Errorf("QTY = %d, want 42", v)
	}
}

func TestRowScaledNumericField(t *testing.T) {
	fields := []*schema.FieldDescriptor{{Name: "AMOUNT", FieldType: "N", TotalLen: 10, PrecisionLen: 2}}
	out := roundTripRow(t, fields, func(r *Row) { r.SetValue(0, int64(12345)) })
	if v := RowInt64(out, "AMOUNT"); v != 12345 {
		t.Errorf("AMOUNT = %d, want 12345", v)
	}
}

func TestRowFloatField(t *testing.T) {
	fields := []*schema.FieldDescriptor{{Name: "PRICE", FieldType: "F", TotalLen: 10, PrecisionLen: 2}}
	out := roundTripRow(t, fields, func(r *Row) { r.SetValue(0, 19.99) })
	v, _ := out.ValueByName("PRICE")
	got := ToFloat64(v)
	if got < 19.98 || got > 20.00 {
		t.Errorf("PRICE = %v, want ~19.99", got)
	}
}

func TestRowBoolField(t *testing.T) {
	fields := []*schema.FieldDescriptor{{Name: "ACTIVE", FieldType: "L", TotalLen: 1}}
	out := roundTripRow(t, fields, func(r *Row) { r.SetValue(0, true) })
	v, _ := out.ValueByName("ACTIVE")
	if !ToBool(v) {
		t.Error("ACTIVE = false, want true")
	}
}

func TestRowDateField(t *testing.T) {
	fields := []*schema.FieldDescriptor{{Name: "CREATED", FieldType: "D", TotalLen: 8}}
	want := time.Date(2024, 7, 31, 0, 0, 0, 0, time.UTC)
	out := roundTripRow(t, fields, func(r *Row) { r.SetValue(0, want) })
	v, _ := out.ValueByName("CREATED")
	got := ToTime(v)
	if !got.Equal(want) {
		t.Errorf("CREATED = %v, want %v", got, want)
	}
}

func TestRowDateFieldEmpty(t *testing.T) {
	fields := []*schema.FieldDescriptor{{Name: "CREATED", FieldType: "D", TotalLen: 8}}
	out := roundTripRow(t, fields, func(r *Row) { r.SetValue(0, time.Time{}) })
	v, _ := out.ValueByName("CREATED")
	if !ToTime(v).IsZero() {
		t.Errorf("CREATED = %v, want zero time", v)
	}
}

func TestRowDeleteFlagRoundTrip(t *testing.T) {
	fields := []*schema.FieldDescriptor{{Name: "NAME", FieldType: "C", TotalLen: 4}}
	in := NewRow(fields)
	in.SetDeleted(true)
	in.SetValue(0, "AB")

	b := buffer.New()
	if err := in.SerializeTo(b); err != nil {
		t.Fatalf("SerializeTo: %v", err)
	}
	out := NewRow(fields)
	if err := out.ParseFrom(b); err != nil {
		t.Fatalf("ParseFrom: %v", err)
	}
	if !out.Deleted() {
		t.Error("want Deleted() true after round trip")
	}
}

func TestRowUnsupportedFieldType(t *testing.T) {
	fields := []*schema.FieldDescriptor{{Name: "BLOB", FieldType: "M", TotalLen: 10}}
	in := NewRow(fields)
	in.SetValue(0, "anything")

	b := buffer.New()
	err := in.SerializeTo(b)
	if err == nil {
		t.Fatal("want error for unsupported field type M")
	}
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("want ErrUnsupportedType, got %v", err)
	}
}
