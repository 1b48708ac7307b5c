package schema

import (
	"fmt"

	"github.com/dbfdrive/godbf/buffer"
)

//FieldSize is the fixed on-disk size of a FieldDescriptor in bytes.
const FieldSize = 32

//FieldDescriptor describes one column: its name, dBase III type character
//and the declared width/precision used to encode every record's value for
//that column. It has no deletion flag — like Header, it is a plain Record.
type FieldDescriptor struct {
	Name         string
	FieldType    string
	Reserved1    int32
	TotalLen     uint8
	PrecisionLen uint8
	Reserved2    int16
	WorkspaceID  int8
	Reserved3    string
	MdxTag       int8
}

//ParseFrom reads the 32-byte field descriptor layout in declaration order.
//A Date field ("D") whose declared TotalLen is not 8 is corrected to 8, the
//width every dBase III reader assumes for a date column.
func (f *FieldDescriptor) ParseFrom(b *buffer.Buffer) error {
	var err error
	if f.Name, err = b.ReadBinaryString(11); err != nil {
		return err
	}
	if f.FieldType, err = b.ReadBinaryString(1); err != nil {
		return err
	}
	if f.Reserved1, err = b.ReadBinaryInt32(); err != nil {
		return err
	}
	if f.TotalLen, err = b.ReadBinaryUint8(); err != nil {
		return err
	}
	if f.PrecisionLen, err = b.ReadBinaryUint8(); err != nil {
		return err
	}
	if f.Reserved2, err = b.ReadBinaryInt16(); err != nil {
		return err
	}
	if f.WorkspaceID, err = b.ReadBinaryInt8(); err != nil {
		return err
	}
	if f.Reserved3, err = b.ReadBinaryString(10); err != nil {
		return err
	}
	if f.MdxTag, err = b.ReadBinaryInt8(); err != nil {
		return err
	}
	if f.FieldType == "D" && f.TotalLen != 8 {
		f.TotalLen = 8
	}
	return nil
}

//SerializeTo writes the 32-byte field descriptor layout in declaration order.
func (f *FieldDescriptor) SerializeTo(b *buffer.Buffer) error {
	if err := b.AppendBinaryString(11, f.Name); err != nil {
		return err
	}
	if err := b.AppendBinaryString(1, f.FieldType); err != nil {
		return err
	}
	if err := b.AppendBinaryInt32(f.Reserved1); err != nil {
		return err
	}
	if err := b.AppendBinaryUint8(f.TotalLen); err != nil {
		return err
	}
	if err := b.AppendBinaryUint8(f.PrecisionLen); err != nil {
		return err
	}
	if err := b.AppendBinaryInt16(f.Reserved2); err != nil {
		return err
	}
	if err := b.AppendBinaryInt8(f.WorkspaceID); err != nil {
		return err
	}
	if err := b.AppendBinaryString(10, f.Reserved3); err != nil {
		return err
	}
	if err := b.AppendBinaryInt8(f.MdxTag); err != nil {
		return err
	}
	return nil
}

//Matches reports whether another descriptor agrees on name, type, total
//length and precision — the cross-check readHead runs against the caller's
//declared schema.
func (f *FieldDescriptor) Matches(other *FieldDescriptor) bool {
	return f.Name == other.Name &&
		f.FieldType == other.FieldType &&
		f.TotalLen == other.TotalLen &&
		f.PrecisionLen == other.PrecisionLen
}

func (f *FieldDescriptor) String() string {
	return fmt.Sprintf("Field{Name:%s Type:%s TotalLen:%d PrecisionLen:%d}",
		f.Name, f.FieldType, f.TotalLen, f.PrecisionLen)
}
