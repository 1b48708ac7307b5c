package dbfjson

import (
	"strings"
	"testing"

	dbf "github.com/dbfdrive/godbf"
	"github.com/dbfdrive/godbf/schema"
)

func TestHeaderJSONRoundTrip(t *testing.T) {
	h := &schema.Header{
		Version:             3,
		Year:                124,
		Month:               7,
		Day:                 31,
		RecordNumber:        3,
		HeaderBytes:         97,
		RecordBytes:         21,
		MultiUserProcessing: "",
	}
	data, err := HeaderToJSON(h)
	if err != nil {
		t.Fatalf("HeaderToJSON: %v", err)
	}
	got := &schema.Header{}
	if err := JSONToHeader(data, got); err != nil {
		t.Fatalf("JSONToHeader: %v", err)
	}
	if *got != *h {
		t.Errorf("round trip mismatch: got %+v want %+v", got, h)
	}
}

func TestHeaderJSONMissingField(t *testing.T) {
	err := JSONToHeader([]byte(`{"Year":1,"Month":1,"Day":1,"RecordNumber":0,"HeaderBytes":0,"RecordBytes":0,"ReservedBytes1":0,"IncompleteOperations":0,"DbaseIvPasswordMarking":0,"MultiUserProcessing":"","MdxTag":0,"DriverID":0,"ReservedBytes2":0}`), &schema.Header{})
	if err == nil {
		t.Fatal("want error for missing Version key")
	}
	var dbfErr *dbf.Error
	if !isDBFError(err, &dbfErr) {
		t.Fatalf("want *dbf.Error, got %T: %v", err, err)
	}
	if dbfErr.Kind != dbf.KindInvalidArgument {
		t.Errorf("want KindInvalidArgument, got %v", dbfErr.Kind)
	}
	if !strings.Contains(dbfErr.Error(), "Version") {
		t.Errorf("want error naming missing field Version, got %v", err)
	}
}

func isDBFError(err error, target **dbf.Error) bool {
	e, ok := err.(*dbf.Error)
	if ok {
		*target = e
	}
	return ok
}

func TestFieldJSONRoundTrip(t *testing.T) {
	f := &schema.FieldDescriptor{
		Name:         "AMOUNT",
		FieldType:    "N",
		TotalLen:     10,
		PrecisionLen: 2,
	}
	data, err := FieldToJSON(f)
	if err != nil {
		t.Fatalf("FieldToJSON: %v", err)
	}
	if !strings.Contains(string(data), `"FiledType":"N"`) {
		t.Errorf("want FiledType key preserved in JSON, got %s", data)
	}
	got := &schema.FieldDescriptor{}
	if err := JSONToField(data, got); err != nil {
		t.Fatalf("JSONToField: %v", err)
	}
	if *got != *f {
		t.Errorf("round trip mismatch: got %+v want %+v", got, f)
	}
}

func TestFieldJSONMissingFiledType(t *testing.T) {
	err := JSONToField([]byte(`{"Name":"X","ReservedBytes1":0,"TotalLen":1,"PrecisionLen":0,"ReservedBytes2":0,"WorkspaceID":0,"ReservedBytes3":"","MdxTag":0}`), &schema.FieldDescriptor{})
	if err == nil {
		t.Fatal("want error for missing FiledType key")
	}
	if !strings.Contains(err.Error(), "FiledType") {
		t.Errorf("want error naming FiledType, got %v", err)
	}
}
