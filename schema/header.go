package schema

import (
	"fmt"
	"time"

	"github.com/dbfdrive/godbf/buffer"
)

//HeaderSize is the fixed on-disk size of a Header in bytes.
const HeaderSize = 32

//Header is the 32-byte DBF file header. It has no deletion flag — it is a
//plain Record, not a DeletableRecord.
type Header struct {
	Version             int8
	Year                int8
	Month               int8
	Day                 int8
	RecordNumber        int32
	HeaderBytes         int16
	RecordBytes         int16
	Reserved1           int16
	IncompleteOps       int8
	PasswordMark        int8
	MultiUserProcessing string
	MdxTag              int8
	DriverID            int8
	Reserved2           int16
}

//NewHeader returns a Header stamped with version 3 and today's date, as
//writeHead does before serializing a fresh file.
func NewHeader() *Header {
	now := time.Now()
	return &Header{
		Version: 3,
		Year:    int8(now.Year() - 1900),
		Month:   int8(now.Month()),
		Day:     int8(now.Day()),
	}
}

//ParseFrom reads the 32-byte header layout in field declaration order.
func (h *Header) ParseFrom(b *buffer.Buffer) error {
	var err error
	if h.Version, err = b.ReadBinaryInt8(); err != nil {
		return err
	}
	if h.Year, err = b.ReadBinaryInt8(); err != nil {
		return err
	}
	if h.Month, err = b.ReadBinaryInt8(); err != nil {
		return err
	}
	if h.Day, err = b.ReadBinaryInt8(); err != nil {
		return err
	}
	if h.RecordNumber, err = b.ReadBinaryInt32(); err != nil {
		return err
	}
	if h.HeaderBytes, err = b.ReadBinaryInt16(); err != nil {
		return err
	}
	if h.RecordBytes, err = b.ReadBinaryInt16(); err != nil {
		return err
	}
	if h.Reserved1, err = b.ReadBinaryInt16(); err != nil {
		return err
	}
	if h.IncompleteOps, err = b.ReadBinaryInt8(); err != nil {
		return err
	}
	if h.PasswordMark, err = b.ReadBinaryInt8(); err != nil {
		return err
	}
	if h.MultiUserProcessing, err = b.ReadBinaryString(12); err != nil {
		return err
	}
	if h.MdxTag, err = b.ReadBinaryInt8(); err != nil {
		return err
	}
	if h.DriverID, err = b.ReadBinaryInt8(); err != nil {
		return err
	}
	if h.Reserved2, err = b.ReadBinaryInt16(); err != nil {
		return err
	}
	return nil
}

//SerializeTo writes the 32-byte header layout in field declaration order.
func (h *Header) SerializeTo(b *buffer.Buffer) error {
	if err := b.AppendBinaryInt8(h.Version); err != nil {
		return err
	}
	if err := b.AppendBinaryInt8(h.Year); err != nil {
		return err
	}
	if err := b.AppendBinaryInt8(h.Month); err != nil {
		return err
	}
	if err := b.AppendBinaryInt8(h.Day); err != nil {
		return err
	}
	if err := b.AppendBinaryInt32(h.RecordNumber); err != nil {
		return err
	}
	if err := b.AppendBinaryInt16(h.HeaderBytes); err != nil {
		return err
	}
	if err := b.AppendBinaryInt16(h.RecordBytes); err != nil {
		return err
	}
	if err := b.AppendBinaryInt16(h.Reserved1); err != nil {
		return err
	}
	if err := b.AppendBinaryInt8(h.IncompleteOps); err != nil {
		return err
	}
	if err := b.AppendBinaryInt8(h.PasswordMark); err != nil {
		return err
	}
	if err := b.AppendBinaryString(12, h.MultiUserProcessing); err != nil {
		return err
	}
	if err := b.AppendBinaryInt8(h.MdxTag); err != nil {
		return err
	}
	if err := b.AppendBinaryInt8(h.DriverID); err != nil {
		return err
	}
	if err := b.AppendBinaryInt16(h.Reserved2); err != nil {
		return err
	}
	return nil
}

//Modified returns the header's stamped last-update date. The year is stored
//as years since 1900 and is carried through unmodified past 2027 — a known
//dBase III limitation, not something this library works around.
func (h *Header) Modified() time.Time {
	return time.Date(1900+int(h.Year), time.Month(h.Month), int(h.Day), 0, 0, 0, 0, time.UTC)
}

func (h *Header) String() string {
	return fmt.Sprintf("Header{Version:%d Modified:%s RecordNumber:%d HeaderBytes:%d RecordBytes:%d}",
		h.Version, h.Modified().Format("2006-01-02"), h.RecordNumber, h.HeaderBytes, h.RecordBytes)
}
