package dbf

import (
	"errors"
	"fmt"
	"time"

	"github.com/dbfdrive/godbf/buffer"
	"github.com/dbfdrive/godbf/schema"
)

//ErrUnsupportedType is returned when a Row is driven by a field descriptor
//whose FieldType is not one of the dBase III core types C, N, F, L, D.
var ErrUnsupportedType = errors.New("dbf: unsupported field type")

//Row is a generic user record driven entirely by a schema: it has no
//compile-time struct per table, just one decoded Go value per declared
//field. Supported field types are C (string), N (int64 or scaled decimal as
//int64), F (float64), L (bool) and D (time.Time).
type Row struct {
	schema.DeleteFlag
	fields []*schema.FieldDescriptor
	values []interface{}
}

//NewRow returns a Row bound to the given field descriptors, typically
//File.HeadFields(). Every value starts as nil.
func NewRow(fields []*schema.FieldDescriptor) *Row {
	return &Row{fields: fields, values: make([]interface{}, len(fields))}
}

//Value returns the decoded value of the field at pos.
func (r *Row) Value(pos int) interface{} { return r.values[pos] }

//SetValue sets the value of the field at pos. The caller is responsible for
//passing a value of the type appropriate to that field (string/int64/
//float64/bool/time.Time) — ParseFrom/SerializeTo do not re-validate it.
func (r *Row) SetValue(pos int, v interface{}) { r.values[pos] = v }

//ValueByName returns the decoded value of the field with the given name,
//or nil, false if no such field is declared.
func (r *Row) ValueByName(name string) (interface{}, bool) {
	for i, f := range r.fields {
		if f.Name == name {
			return r.values[i], true
		}
	}
	return nil, false
}

//ParseFrom reads the deletion flag then each column in declaration order,
//using the text codec width/precision from the bound field descriptors.
func (r *Row) ParseFrom(b *buffer.Buffer) error {
	if err := r.ParseFlagFrom(b); err != nil {
		return err
	}
	r.values = make([]interface{}, len(r.fields))
	for i, f := range r.fields {
		v, err := readColumn(b, f)
		if err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
		r.values[i] = v
	}
	return nil
}

//SerializeTo writes the deletion flag then each column in declaration
//order.
func (r *Row) SerializeTo(b *buffer.Buffer) error {
	if err := r.SerializeFlagTo(b); err != nil {
		return err
	}
	for i, f := range r.fields {
		if err := writeColumn(b, f, r.values[i]); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
	}
	return nil
}

func readColumn(b *buffer.Buffer, f *schema.FieldDescriptor) (interface{}, error) {
	width := int(f.TotalLen)
	switch f.FieldType {
	case "C":
		return b.ReadString(width)
	case "N":
		if f.PrecisionLen == 0 {
			return b.ReadInt64(width)
		}
		return b.ReadInt64P(width, int(f.PrecisionLen))
	case "F":
		v, err := b.ReadInt64P(width, int(f.PrecisionLen))
		if err != nil {
			return nil, err
		}
		scale := 1.0
		for i := 0; i < int(f.PrecisionLen); i++ {
			scale *= 10
		}
		return float64(v) / scale, nil
	case "L":
		c, err := b.ReadChar()
		if err != nil {
			return nil, err
		}
		return c == 'T' || c == 't' || c == 'Y' || c == 'y', nil
	case "D":
		s, err := b.ReadArray(width)
		if err != nil {
			return nil, err
		}
		return parseDate(s)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, f.FieldType)
	}
}

func writeColumn(b *buffer.Buffer, f *schema.FieldDescriptor, v interface{}) error {
	width := int(f.TotalLen)
	switch f.FieldType {
	case "C":
		s, _ := v.(string)
		return b.AppendString(width, s)
	case "N":
		n, _ := toInt64(v)
		if f.PrecisionLen == 0 {
			return b.AppendInt64(width, n)
		}
		return b.AppendInt64P(width, int(f.PrecisionLen), n)
	case "F":
		fv, _ := v.(float64)
		scale := 1.0
		for i := 0; i < int(f.PrecisionLen); i++ {
			scale *= 10
		}
		return b.AppendInt64P(width, int(f.PrecisionLen), int64(fv*scale))
	case "L":
		flag, _ := v.(bool)
		if flag {
			return b.AppendChar('T')
		}
		return b.AppendChar('F')
	case "D":
		t, _ := v.(time.Time)
		if t.IsZero() {
			return b.AppendString(width, "")
		}
		return b.AppendString(width, t.Format("20060102"))
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedType, f.FieldType)
	}
}

func parseDate(raw []byte) (time.Time, error) {
	trimmed := trimSpacesASCII(raw)
	if len(trimmed) == 0 {
		return time.Time{}, nil
	}
	return time.Parse("20060102", string(trimmed))
}

func trimSpacesASCII(p []byte) []byte {
	start, end := 0, len(p)
	for start < end && p[start] == ' ' {
		start++
	}
	for end > start && p[end-1] == ' ' {
		end--
	}
	return p[start:end]
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	default:
		return 0, false
	}
}
