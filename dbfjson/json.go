//Package dbfjson mirrors Header and FieldDescriptor through JSON, for
//tooling that wants to inspect or edit a DBF schema without a binary
//editor. JSON keys follow the original C++ implementation's names, several
//of which differ from the schema struct field names ("FiledType" for
//FieldType, "ReservedBytes1" for Reserved1, "IncompleteOperations" for
//IncompleteOps, "DbaseIvPasswordMarking" for PasswordMark), kept for wire
//compatibility with tools built against that implementation.
package dbfjson

import (
	"encoding/json"
	"fmt"

	dbf "github.com/dbfdrive/godbf"
	"github.com/dbfdrive/godbf/schema"
)

func missingField(op, name string) error {
	return &dbf.Error{Op: op, Kind: dbf.KindInvalidArgument, Err: fmt.Errorf("missing field %q", name)}
}

//HeaderToJSON renders a Header as a JSON object.
func HeaderToJSON(h *schema.Header) ([]byte, error) {
	m := map[string]interface{}{
		"Version":                h.Version,
		"Year":                   h.Year,
		"Month":                  h.Month,
		"Day":                    h.Day,
		"RecordNumber":           h.RecordNumber,
		"HeaderBytes":            h.HeaderBytes,
		"RecordBytes":            h.RecordBytes,
		"ReservedBytes1":         h.Reserved1,
		"IncompleteOperations":   h.IncompleteOps,
		"DbaseIvPasswordMarking": h.PasswordMark,
		"MultiUserProcessing":    h.MultiUserProcessing,
		"MdxTag":                 h.MdxTag,
		"DriverID":               h.DriverID,
		"ReservedBytes2":         h.Reserved2,
	}
	return json.Marshal(m)
}

//JSONToHeader parses a JSON object produced by HeaderToJSON back into h.
//Every key is required; a missing one fails with an InvalidArgument-kind
//*dbf.Error naming the field.
func JSONToHeader(data []byte, h *schema.Header) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return &dbf.Error{Op: "JSONToHeader", Kind: dbf.KindInvalidArgument, Err: err}
	}

	get := func(key string, dst interface{}) error {
		v, ok := raw[key]
		if !ok {
			return missingField("JSONToHeader", key)
		}
		return json.Unmarshal(v, dst)
	}

	if err := get("Version", &h.Version); err != nil {
		return err
	}
	if err := get("Year", &h.Year); err != nil {
		return err
	}
	if err := get("Month", &h.Month); err != nil {
		return err
	}
	if err := get("Day", &h.Day); err != nil {
		return err
	}
	if err := get("RecordNumber", &h.RecordNumber); err != nil {
		return err
	}
	if err := get("HeaderBytes", &h.HeaderBytes); err != nil {
		return err
	}
	if err := get("RecordBytes", &h.RecordBytes); err != nil {
		return err
	}
	if err := get("ReservedBytes1", &h.Reserved1); err != nil {
		return err
	}
	if err := get("IncompleteOperations", &h.IncompleteOps); err != nil {
		return err
	}
	if err := get("DbaseIvPasswordMarking", &h.PasswordMark); err != nil {
		return err
	}
	if err := get("MultiUserProcessing", &h.MultiUserProcessing); err != nil {
		return err
	}
	if err := get("MdxTag", &h.MdxTag); err != nil {
		return err
	}
	if err := get("DriverID", &h.DriverID); err != nil {
		return err
	}
	if err := get("ReservedBytes2", &h.Reserved2); err != nil {
		return err
	}
	return nil
}

//FieldToJSON renders a FieldDescriptor as a JSON object. The type key is
//spelled "FiledType", the source's own spelling, preserved so tooling built
//against the original implementation keeps working.
func FieldToJSON(f *schema.FieldDescriptor) ([]byte, error) {
	m := map[string]interface{}{
		"Name":           f.Name,
		"FiledType":      f.FieldType,
		"ReservedBytes1": f.Reserved1,
		"TotalLen":       f.TotalLen,
		"PrecisionLen":   f.PrecisionLen,
		"ReservedBytes2": f.Reserved2,
		"WorkspaceID":    f.WorkspaceID,
		"ReservedBytes3": f.Reserved3,
		"MdxTag":         f.MdxTag,
	}
	return json.Marshal(m)
}

//JSONToField parses a JSON object produced by FieldToJSON back into f.
func JSONToField(data []byte, f *schema.FieldDescriptor) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return &dbf.Error{Op: "JSONToField", Kind: dbf.KindInvalidArgument, Err: err}
	}

	get := func(key string, dst interface{}) error {
		v, ok := raw[key]
		if !ok {
			return missingField("JSONToField", key)
		}
		return json.Unmarshal(v, dst)
	}

	if err := get("Name", &f.Name); err != nil {
		return err
	}
	if err := get("FiledType", &f.FieldType); err != nil {
		return err
	}
	if err := get("ReservedBytes1", &f.Reserved1); err != nil {
		return err
	}
	if err := get("TotalLen", &f.TotalLen); err != nil {
		return err
	}
	if err := get("PrecisionLen", &f.PrecisionLen); err != nil {
		return err
	}
	if err := get("ReservedBytes2", &f.Reserved2); err != nil {
		return err
	}
	if err := get("WorkspaceID", &f.WorkspaceID); err != nil {
		return err
	}
	if err := get("ReservedBytes3", &f.Reserved3); err != nil {
		return err
	}
	if err := get("MdxTag", &f.MdxTag); err != nil {
		return err
	}
	return nil
}
