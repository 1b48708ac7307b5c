// Package buffer provides the bidirectional byte buffer used to stage DBF
// header, field descriptor and record bytes before they hit disk.
//
// It is a Go port of the muduo-style prependable buffer found in the
// original dbf C++ sources (DBFBuffer.hpp): two monotonic cursors r <= w
// split a backing array into a prependable region, a readable region and a
// writable region, with a small cheap-prepend gap kept free in front after
// every compaction.
package buffer

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// CheapPrepend is the default number of bytes kept free in front of the
// readable region after a compaction, so framing code can cheaply prepend
// a short header without a reallocation.
const CheapPrepend = 8

// DefaultSize is the initial writable capacity of a new Buffer.
const DefaultSize = 1024

var (
	// ErrShortRead is returned when a read operation asks for more bytes
	// than are currently readable.
	ErrShortRead = errors.New("buffer: short read")
	// ErrOverflow is returned when a string or number does not fit the
	// declared field width. The write still happens, truncated.
	ErrOverflow = errors.New("buffer: value does not fit field width")
)

var pow10 = [10]int64{1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000, 1000000000}

// Buffer is a growable byte store with independent read and write cursors.
type Buffer struct {
	buf          []byte
	r, w         int
	cheapPrepend int
}

// New returns a Buffer with the default initial size and cheap-prepend gap.
func New() *Buffer {
	return NewSize(DefaultSize, CheapPrepend)
}

// NewSize returns a Buffer with the given initial writable size and
// cheap-prepend gap.
func NewSize(initialSize, cheapPrepend int) *Buffer {
	b := &Buffer{
		buf:          make([]byte, cheapPrepend+initialSize),
		r:            cheapPrepend,
		w:            cheapPrepend,
		cheapPrepend: cheapPrepend,
	}
	return b
}

// ReadableBytes returns the number of bytes available to read.
func (b *Buffer) ReadableBytes() int { return b.w - b.r }

// WritableBytes returns the number of bytes available to write without
// growing or compacting the buffer.
func (b *Buffer) WritableBytes() int { return len(b.buf) - b.w }

// PrependableBytes returns the number of bytes in front of the readable
// region.
func (b *Buffer) PrependableBytes() int { return b.r }

// Peek returns the readable region. The returned slice aliases the
// buffer's backing array and is only valid until the next mutation.
func (b *Buffer) Peek() []byte { return b.buf[b.r:b.w] }

// BeginWrite returns the writable region. The caller may write directly
// into it and then call HasWritten to advance the write cursor.
func (b *Buffer) BeginWrite() []byte { return b.buf[b.w:] }

// Retrieve advances the read cursor by n, consuming n bytes. If n equals
// the full readable span, both cursors reset to the cheap-prepend offset,
// reclaiming the prepend region.
func (b *Buffer) Retrieve(n int) {
	if n < b.ReadableBytes() {
		b.r += n
	} else {
		b.RetrieveAll()
	}
}

// RetrieveAll resets both cursors to the cheap-prepend offset.
func (b *Buffer) RetrieveAll() {
	b.r = b.cheapPrepend
	b.w = b.cheapPrepend
}

// HasWritten advances the write cursor by n after the caller has filled n
// bytes directly via BeginWrite.
func (b *Buffer) HasWritten(n int) { b.w += n }

// Unwrite rewinds the write cursor by n.
func (b *Buffer) Unwrite(n int) { b.w -= n }

// EnsureWritableBytes compacts or grows the buffer so that at least n bytes
// are writable.
func (b *Buffer) EnsureWritableBytes(n int) {
	if b.WritableBytes() < n {
		b.makeSpace(n)
	}
}

func (b *Buffer) makeSpace(n int) {
	if b.WritableBytes()+b.PrependableBytes() < n+b.cheapPrepend {
		newBuf := make([]byte, b.w+n)
		copy(newBuf, b.buf[:b.w])
		b.buf = newBuf
		return
	}
	readable := b.ReadableBytes()
	copy(b.buf[b.cheapPrepend:], b.buf[b.r:b.w])
	b.r = b.cheapPrepend
	b.w = b.r + readable
}

func (b *Buffer) readFixed(width int) ([]byte, error) {
	if b.ReadableBytes() < width {
		return nil, fmt.Errorf("%w: need %d have %d", ErrShortRead, width, b.ReadableBytes())
	}
	view := b.buf[b.r : b.r+width]
	b.Retrieve(width)
	return view, nil
}

func trimSpaces(p []byte) []byte {
	start := 0
	for start < len(p) && p[start] == ' ' {
		start++
	}
	end := len(p)
	for end > start && p[end-1] == ' ' {
		end--
	}
	return p[start:end]
}

func parseSignedDecimal(trimmed []byte) int64 {
	if len(trimmed) == 0 {
		return 0
	}
	neg := false
	i := 0
	if trimmed[0] == '-' {
		neg = true
		i = 1
	}
	var v int64
	for ; i < len(trimmed); i++ {
		v = v*10 + int64(trimmed[i]-'0')
	}
	if neg {
		v = -v
	}
	return v
}

// readInt decodes a fixed-width, space-padded ASCII integer as described in
// spec §4.A. Trimmed-empty fields decode to 0.
func (b *Buffer) readInt(width int) (int64, error) {
	view, err := b.readFixed(width)
	if err != nil {
		return 0, err
	}
	trimmed := trimSpaces(view)
	return parseSignedDecimal(trimmed), nil
}

// readScaledInt decodes a fixed-width ASCII scaled decimal with precision
// digits after an implicit (or explicit) decimal point, per spec §4.A.
func (b *Buffer) readScaledInt(width, precision int) (int64, error) {
	view, err := b.readFixed(width)
	if err != nil {
		return 0, err
	}
	if precision == 0 {
		return parseSignedDecimal(trimSpaces(view)), nil
	}
	trimmed := trimSpaces(view)
	dot := -1
	for i, c := range trimmed {
		if c == '.' {
			dot = i
			break
		}
	}
	if dot < 0 {
		return parseSignedDecimal(trimmed) * pow10[precision], nil
	}
	intPart := trimmed[:dot]
	fracPart := trimmed[dot+1:]
	var scratch [32]byte
	n := copy(scratch[:], intPart)
	if len(fracPart) >= precision {
		n += copy(scratch[n:], fracPart[:precision])
	} else {
		n += copy(scratch[n:], fracPart)
		for i := 0; i < precision-len(fracPart); i++ {
			scratch[n] = '0'
			n++
		}
	}
	return parseSignedDecimal(scratch[:n]), nil
}

// formatInt renders v right-aligned, space-padded into dst. If the
// representation (with sign) does not fit, it writes as much of the
// representation as fits starting at dst[0], space-fills the rest, and
// returns ErrOverflow.
func formatInt(dst []byte, v int64) error {
	for i := range dst {
		dst[i] = ' '
	}
	var digits [20]byte
	neg := v < 0
	u := uint64(v)
	if neg {
		u = uint64(-v)
	}
	i := len(digits)
	if u == 0 {
		i--
		digits[i] = '0'
	}
	for u > 0 {
		i--
		digits[i] = byte('0' + u%10)
		u /= 10
	}
	if neg {
		i--
		digits[i] = '-'
	}
	repr := digits[i:]
	if len(repr) > len(dst) {
		copy(dst, repr[:len(dst)])
		return ErrOverflow
	}
	copy(dst[len(dst)-len(repr):], repr)
	return nil
}

// formatScaledInt renders v, a value scaled by 10^precision, right-aligned
// with an explicit decimal point, space-padded into dst.
func formatScaledInt(dst []byte, v int64, precision int) error {
	if precision == 0 {
		return formatInt(dst, v)
	}
	for i := range dst {
		dst[i] = ' '
	}
	neg := v < 0
	u := uint64(v)
	if neg {
		u = uint64(-v)
	}
	scale := uint64(pow10[precision])
	intPart := u / scale
	fracPart := u % scale

	var repr [40]byte
	n := len(repr)
	for i := 0; i < precision; i++ {
		n--
		repr[n] = byte('0' + fracPart%10)
		fracPart /= 10
	}
	n--
	repr[n] = '.'
	if intPart == 0 {
		n--
		repr[n] = '0'
	} else {
		for intPart > 0 {
			n--
			repr[n] = byte('0' + intPart%10)
			intPart /= 10
		}
	}
	if neg {
		n--
		repr[n] = '-'
	}
	view := repr[n:]
	if len(view) > len(dst) {
		copy(dst, view[:len(dst)])
		return ErrOverflow
	}
	copy(dst[len(dst)-len(view):], view)
	return nil
}

func (b *Buffer) appendInt(width int, v int64) error {
	b.EnsureWritableBytes(width)
	dst := b.BeginWrite()[:width]
	err := formatInt(dst, v)
	b.HasWritten(width)
	return err
}

func (b *Buffer) appendScaledInt(width, precision int, v int64) error {
	b.EnsureWritableBytes(width)
	dst := b.BeginWrite()[:width]
	err := formatScaledInt(dst, v, precision)
	b.HasWritten(width)
	return err
}

// ReadInt8/ReadInt16/ReadInt32/ReadInt64 and their unsigned counterparts
// read a fixed-width space-padded ASCII integer field (spec §4.B).
func (b *Buffer) ReadInt8(width int) (int8, error)   { v, err := b.readInt(width); return int8(v), err }
func (b *Buffer) ReadInt16(width int) (int16, error) { v, err := b.readInt(width); return int16(v), err }
func (b *Buffer) ReadInt32(width int) (int32, error) { v, err := b.readInt(width); return int32(v), err }
func (b *Buffer) ReadInt64(width int) (int64, error) { return b.readInt(width) }

func (b *Buffer) ReadUint8(width int) (uint8, error) {
	v, err := b.readInt(width)
	return uint8(v), err
}
func (b *Buffer) ReadUint16(width int) (uint16, error) {
	v, err := b.readInt(width)
	return uint16(v), err
}
func (b *Buffer) ReadUint32(width int) (uint32, error) {
	v, err := b.readInt(width)
	return uint32(v), err
}
func (b *Buffer) ReadUint64(width int) (uint64, error) {
	v, err := b.readInt(width)
	return uint64(v), err
}

// ReadInt8P..ReadInt64P read a fixed-width scaled-decimal ASCII field with
// the given precision (decimal places), per spec §4.A.
func (b *Buffer) ReadInt8P(width, precision int) (int8, error) {
	v, err := b.readScaledInt(width, precision)
	return int8(v), err
}
func (b *Buffer) ReadInt16P(width, precision int) (int16, error) {
	v, err := b.readScaledInt(width, precision)
	return int16(v), err
}
func (b *Buffer) ReadInt32P(width, precision int) (int32, error) {
	v, err := b.readScaledInt(width, precision)
	return int32(v), err
}
func (b *Buffer) ReadInt64P(width, precision int) (int64, error) {
	return b.readScaledInt(width, precision)
}

// AppendInt8..AppendInt64 encode v right-aligned, space-padded into a
// width-byte field.
func (b *Buffer) AppendInt8(width int, v int8) error   { return b.appendInt(width, int64(v)) }
func (b *Buffer) AppendInt16(width int, v int16) error { return b.appendInt(width, int64(v)) }
func (b *Buffer) AppendInt32(width int, v int32) error { return b.appendInt(width, int64(v)) }
func (b *Buffer) AppendInt64(width int, v int64) error { return b.appendInt(width, v) }
func (b *Buffer) AppendUint8(width int, v uint8) error { return b.appendInt(width, int64(v)) }
func (b *Buffer) AppendUint16(width int, v uint16) error {
	return b.appendInt(width, int64(v))
}
func (b *Buffer) AppendUint32(width int, v uint32) error {
	return b.appendInt(width, int64(v))
}
func (b *Buffer) AppendUint64(width int, v uint64) error {
	return b.appendInt(width, int64(v))
}

// AppendInt8P..AppendInt64P encode a scaled decimal into a width-byte field
// at the given precision.
func (b *Buffer) AppendInt8P(width, precision int, v int8) error {
	return b.appendScaledInt(width, precision, int64(v))
}
func (b *Buffer) AppendInt16P(width, precision int, v int16) error {
	return b.appendScaledInt(width, precision, int64(v))
}
func (b *Buffer) AppendInt32P(width, precision int, v int32) error {
	return b.appendScaledInt(width, precision, int64(v))
}
func (b *Buffer) AppendInt64P(width, precision int, v int64) error {
	return b.appendScaledInt(width, precision, v)
}

// ReadString returns a width-byte field with leading and trailing spaces
// trimmed.
func (b *Buffer) ReadString(width int) (string, error) {
	view, err := b.readFixed(width)
	if err != nil {
		return "", err
	}
	return string(trimSpaces(view)), nil
}

// ReadArray returns a copy of the raw width-byte field, spaces and all.
func (b *Buffer) ReadArray(width int) ([]byte, error) {
	view, err := b.readFixed(width)
	if err != nil {
		return nil, err
	}
	out := make([]byte, width)
	copy(out, view)
	return out, nil
}

// ReadChar reads a single raw byte.
func (b *Buffer) ReadChar() (byte, error) {
	view, err := b.readFixed(1)
	if err != nil {
		return 0, err
	}
	return view[0], nil
}

// AppendString emits s then space-fills the remaining width-len(s) bytes.
// Returns ErrOverflow if len(s) > width.
func (b *Buffer) AppendString(width int, s string) error {
	b.EnsureWritableBytes(width)
	dst := b.BeginWrite()[:width]
	b.HasWritten(width)
	if len(s) > width {
		copy(dst, s[:width])
		return ErrOverflow
	}
	copy(dst, s)
	for i := len(s); i < width; i++ {
		dst[i] = ' '
	}
	return nil
}

// AppendArray writes a pre-padded width-byte array verbatim.
func (b *Buffer) AppendArray(arr []byte) error {
	width := len(arr)
	b.EnsureWritableBytes(width)
	dst := b.BeginWrite()[:width]
	copy(dst, arr)
	b.HasWritten(width)
	return nil
}

// AppendChar writes a single raw byte.
func (b *Buffer) AppendChar(c byte) error {
	b.EnsureWritableBytes(1)
	dst := b.BeginWrite()[:1]
	dst[0] = c
	b.HasWritten(1)
	return nil
}

// ReadBinaryInt8..ReadBinaryInt64 and their unsigned counterparts decode a
// little-endian binary integer field (spec §4.B).
func (b *Buffer) ReadBinaryInt8() (int8, error) {
	v, err := b.readFixed(1)
	if err != nil {
		return 0, err
	}
	return int8(v[0]), nil
}
func (b *Buffer) ReadBinaryUint8() (uint8, error) {
	v, err := b.readFixed(1)
	if err != nil {
		return 0, err
	}
	return v[0], nil
}
func (b *Buffer) ReadBinaryInt16() (int16, error) {
	v, err := b.readFixed(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(v)), nil
}
func (b *Buffer) ReadBinaryUint16() (uint16, error) {
	v, err := b.readFixed(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(v), nil
}
func (b *Buffer) ReadBinaryInt32() (int32, error) {
	v, err := b.readFixed(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(v)), nil
}
func (b *Buffer) ReadBinaryUint32() (uint32, error) {
	v, err := b.readFixed(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(v), nil
}
func (b *Buffer) ReadBinaryInt64() (int64, error) {
	v, err := b.readFixed(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(v)), nil
}
func (b *Buffer) ReadBinaryUint64() (uint64, error) {
	v, err := b.readFixed(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(v), nil
}

// AppendBinaryInt8..AppendBinaryInt64 encode a little-endian binary integer.
func (b *Buffer) AppendBinaryInt8(v int8) error { return b.AppendChar(byte(v)) }
func (b *Buffer) AppendBinaryUint8(v uint8) error { return b.AppendChar(v) }
func (b *Buffer) AppendBinaryInt16(v int16) error {
	b.EnsureWritableBytes(2)
	dst := b.BeginWrite()[:2]
	binary.LittleEndian.PutUint16(dst, uint16(v))
	b.HasWritten(2)
	return nil
}
func (b *Buffer) AppendBinaryUint16(v uint16) error {
	b.EnsureWritableBytes(2)
	dst := b.BeginWrite()[:2]
	binary.LittleEndian.PutUint16(dst, v)
	b.HasWritten(2)
	return nil
}
func (b *Buffer) AppendBinaryInt32(v int32) error {
	b.EnsureWritableBytes(4)
	dst := b.BeginWrite()[:4]
	binary.LittleEndian.PutUint32(dst, uint32(v))
	b.HasWritten(4)
	return nil
}
func (b *Buffer) AppendBinaryUint32(v uint32) error {
	b.EnsureWritableBytes(4)
	dst := b.BeginWrite()[:4]
	binary.LittleEndian.PutUint32(dst, v)
	b.HasWritten(4)
	return nil
}
func (b *Buffer) AppendBinaryInt64(v int64) error {
	b.EnsureWritableBytes(8)
	dst := b.BeginWrite()[:8]
	binary.LittleEndian.PutUint64(dst, uint64(v))
	b.HasWritten(8)
	return nil
}
func (b *Buffer) AppendBinaryUint64(v uint64) error {
	b.EnsureWritableBytes(8)
	dst := b.BeginWrite()[:8]
	binary.LittleEndian.PutUint64(dst, v)
	b.HasWritten(8)
	return nil
}

// ReadBinaryString copies a width-byte field and strips trailing NUL bytes
// (not spaces).
func (b *Buffer) ReadBinaryString(width int) (string, error) {
	view, err := b.readFixed(width)
	if err != nil {
		return "", err
	}
	end := len(view)
	for end > 0 && view[end-1] == 0 {
		end--
	}
	return string(view[:end]), nil
}

// AppendBinaryString emits s then zero-fills the remaining width-len(s)
// bytes. Returns ErrOverflow if len(s) > width.
func (b *Buffer) AppendBinaryString(width int, s string) error {
	b.EnsureWritableBytes(width)
	dst := b.BeginWrite()[:width]
	b.HasWritten(width)
	if len(s) > width {
		copy(dst, s[:width])
		return ErrOverflow
	}
	copy(dst, s)
	for i := len(s); i < width; i++ {
		dst[i] = 0
	}
	return nil
}
