package dbf

import (
	"testing"
	"time"

	"github.com/dbfdrive/godbf/schema"
)

func TestToFloat64(t *testing.T) {
	if ToFloat64(123.456) != float64(123.456) {
		t.Errorf("Want %f, have %f", float64(123.456), ToFloat64(123.456))
	}
	if ToFloat64("123.456") != float64(0) {
		t.Errorf("Want %f, have %f", 0.0, ToFloat64("123.456"))
	}
}

func TestToInt64(t *testing.T) {
	if ToInt64(int64(123456)) != int64(123456) {
		t.Errorf("Want %d, have %d", int64(123456), ToInt64(int64(123456)))
	}
	if ToInt64("123.456") != int64(0) {
		t.Errorf("Want %d, have %d", 0, ToInt64("123.456"))
	}
}

func TestToString(t *testing.T) {
	if ToString("Hêllo!") != "Hêllo!" {
		t.Errorf("Want %q, have %q", "Hêllo!", ToString("Hêllo!"))
	}
	if ToString(123.456) != "" {
		t.Errorf("Want %q, have %q", "", ToString(123.456))
	}
}

func TestToTrimmedString(t *testing.T) {
	if ToTrimmedString("Hêllo!      ") != "Hêllo!" {
		t.Errorf("Want %q, have %q", "Hêllo!", ToTrimmedString("Hêllo!    "))
	}
	if ToTrimmedString(123.456) != "" {
		t.Errorf("Want %q, have %q", "", ToTrimmedString(123.456))
	}
}

func TestToTime(t *testing.T) {
	now := time.Now()
	if ToTime(now).Equal(now) == false {
		t.Errorf("Want %v, have %v", now, ToTime(now))
	}
	if ToTime("123.456").IsZero() == false {
		t.Errorf("Want %v, have %v", time.Time{}, ToTime("123.456"))
	}
}

func TestToBool(t *testing.T) {
	if ToBool(true) == false {
		t.Error("Want true")
	}
	if ToBool(33) != false {
		t.Error("Want false")
	}
}

func TestRowAccessors(t *testing.T) {
	fields := []*schema.FieldDescriptor{
		{Name: "NAME", FieldType: "C", TotalLen: 20},
		{Name: "QTY", FieldType: "N", TotalLen: 6},
	}
	r := NewRow(fields)
	r.SetValue(0, "Hêllo!    ")
	r.SetValue(1, int64(42))

	if RowString(r, "NAME") != "Hêllo!    " {
		t.Errorf("Want %q, have %q", "Hêllo!    ", RowString(r, "NAME"))
	}
	if RowTrimmedString(r, "NAME") != "Hêllo!" {
		t.Errorf("Want %q, have %q", "Hêllo!", RowTrimmedString(r, "NAME"))
	}
	if RowInt64(r, "QTY") != 42 {
		t.Errorf("Want %d, have %d", 42, RowInt64(r, "QTY"))
	}
	if RowString(r, "MISSING") != "" {
		t.Errorf("Want empty string for missing field, have %q", RowString(r, "MISSING"))
	}
}
