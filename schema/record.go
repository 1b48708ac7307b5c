//Package schema defines the on-disk entities of a DBF file — the header,
//the field descriptors and the capability set a concrete record type must
//satisfy to be read or written through the file engine.
package schema

import "github.com/dbfdrive/godbf/buffer"

//Record is the minimal capability every schema entity shares: it can parse
//itself from a Buffer and serialize itself back into one. Header and
//FieldDescriptor satisfy only this interface — neither carries a deletion
//flag, since both are fixed 32-byte directory entries with no such byte in
//their wire layout.
type Record interface {
	ParseFrom(b *buffer.Buffer) error
	SerializeTo(b *buffer.Buffer) error
}

//DeletableRecord is a Record whose first on-disk byte is the deletion flag
//(0x20 live, 0x2A deleted) and which remembers the byte offset it was last
//read from or appended at. User records implement this; Header and
//FieldDescriptor do not.
type DeletableRecord interface {
	Record
	Deleted() bool
	SetDeleted(deleted bool)
	ReadPos() uint32
	SetReadPos(pos uint32)
}

const (
	deleteFlagLive    = 0x20
	deleteFlagDeleted = 0x2A
)

//DeleteFlag embeds the shared deletion-flag byte for DeletableRecord
//implementations; user record types embed it by value.
type DeleteFlag struct {
	deleted bool
	readPos uint32
}

func (d *DeleteFlag) Deleted() bool         { return d.deleted }
func (d *DeleteFlag) SetDeleted(v bool)     { d.deleted = v }
func (d *DeleteFlag) ReadPos() uint32       { return d.readPos }
func (d *DeleteFlag) SetReadPos(pos uint32) { d.readPos = pos }

//ParseFlagFrom reads the one-byte deletion flag. Any byte other than 0x20 or
//0x2A is treated as live and ignored, matching the source's lenient
//handling of a malformed flag byte.
func (d *DeleteFlag) ParseFlagFrom(b *buffer.Buffer) error {
	c, err := b.ReadChar()
	if err != nil {
		return err
	}
	d.deleted = c == deleteFlagDeleted
	return nil
}

//SerializeFlagTo writes the one-byte deletion flag.
func (d *DeleteFlag) SerializeFlagTo(b *buffer.Buffer) error {
	if d.deleted {
		return b.AppendChar(deleteFlagDeleted)
	}
	return b.AppendChar(deleteFlagLive)
}
