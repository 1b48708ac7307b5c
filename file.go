//Package dbf reads and writes dBase III-compatible DBF files: a fixed
//binary header, a run of fixed-width field descriptors, a terminator byte,
//equal-length records and an end-of-file marker.
package dbf

import (
	"fmt"
	"os"

	"github.com/dbfdrive/godbf/buffer"
	"github.com/dbfdrive/godbf/schema"
)

const (
	headerTerminator = 0x0D
	eofMarker        = 0x1A
)

//File owns a path, the parsed header and field descriptors, a shared
//scratch Buffer, and the reader/writer cursors. The OS file handle is
//opened only for the duration of each I/O verb; advisory range locks guard
//multi-process concurrency.
type File struct {
	path    string
	head    *schema.Header
	fields  []*schema.FieldDescriptor
	scratch *buffer.Buffer

	readerPos uint32
	writerPos uint32

	log               Logger
	cheapPrepend      int
	lockAttempts      int
	lockBackoffMillis int
}

func newFile(path string, opts ...Option) *File {
	f := &File{
		path:              path,
		head:              schema.NewHeader(),
		log:               noopLogger{},
		cheapPrepend:      buffer.CheapPrepend,
		lockAttempts:      0,
		lockBackoffMillis: 10,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.scratch = buffer.NewSize(buffer.DefaultSize, f.cheapPrepend)
	return f
}

//Create returns a File ready to have its schema declared with
//AppendHeadField and then written to disk with WriteHead. It performs no
//I/O by itself.
func Create(path string, opts ...Option) *File {
	return newFile(path, opts...)
}

//Open returns a File ready to have ReadHead called on it. Callers that need
//to cross-check the on-disk schema should call AppendHeadField first to
//declare the expected fields.
func Open(path string, opts ...Option) *File {
	return newFile(path, opts...)
}

//Name returns the path this File operates on.
func (f *File) Name() string { return f.path }

//Head returns the parsed header.
func (f *File) Head() *schema.Header { return f.head }

//HeadFields returns the field descriptors, in declaration order.
func (f *File) HeadFields() []*schema.FieldDescriptor { return f.fields }

//ReaderPos returns the current sequential-read cursor, a byte offset into
//the file.
func (f *File) ReaderPos() uint32 { return f.readerPos }

//WriterPos returns the current append cursor — the byte offset of the EOF
//marker where the next appended record's delete flag will land.
func (f *File) WriterPos() uint32 { return f.writerPos }

//RecordBytes returns the on-disk byte length of one record, delete flag
//included.
func (f *File) RecordBytes() int { return int(f.head.RecordBytes) }

//AppendHeadField declares one column of the schema. type == "D" forces
//totalLen to 8, with a warning if the caller supplied something else.
func (f *File) AppendHeadField(name, fieldType string, totalLen, precisionLen uint8) {
	if fieldType == "D" && totalLen != 8 {
		f.log.Warnf("dbf: field %q declared as D with totalLen %d, correcting to 8", name, totalLen)
		totalLen = 8
	}
	f.fields = append(f.fields, &schema.FieldDescriptor{
		Name:         name,
		FieldType:    fieldType,
		TotalLen:     totalLen,
		PrecisionLen: precisionLen,
	})
}

//WriteHead serializes the header and declared field descriptors to disk,
//truncating any existing file at path. It stamps version 3 and today's
//date, computes headerBytes and recordBytes from the declared fields, and
//positions readerPos/writerPos at the first record slot.
func (f *File) WriteHead() error {
	const op = "WriteHead"
	n := len(f.fields)
	headerBytes := int16(32*(n+1) + 1)
	var recordBytes int16 = 1
	for _, field := range f.fields {
		recordBytes += int16(field.TotalLen)
	}

	f.head.Version = 3
	now := schema.NewHeader()
	f.head.Year, f.head.Month, f.head.Day = now.Year, now.Month, now.Day
	f.head.HeaderBytes = headerBytes
	f.head.RecordBytes = recordBytes

	f.scratch.RetrieveAll()
	if err := f.head.SerializeTo(f.scratch); err != nil {
		return newError(op, KindIOFailure, err)
	}
	for _, field := range f.fields {
		if err := field.SerializeTo(f.scratch); err != nil {
			return newError(op, KindIOFailure, err)
		}
	}
	if err := f.scratch.AppendChar(headerTerminator); err != nil {
		return newError(op, KindIOFailure, err)
	}
	if err := f.scratch.AppendChar(eofMarker); err != nil {
		return newError(op, KindIOFailure, err)
	}

	osFile, err := os.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		f.log.Warnf("dbf: %s: open %s: %v", op, f.path, err)
		return newError(op, KindIOFailure, err)
	}
	defer osFile.Close()

	unlock, err := lockRange(osFile, true, 0, int64(headerBytes), f.lockAttempts, f.lockBackoffMillis)
	if err != nil {
		f.log.Warnf("dbf: %s: lock %s: %v", op, f.path, err)
		return newError(op, KindIOFailure, err)
	}
	defer unlock()

	if _, err := osFile.Write(f.scratch.Peek()); err != nil {
		f.log.Warnf("dbf: %s: write %s: %v", op, f.path, err)
		return newError(op, KindIOFailure, err)
	}
	f.scratch.RetrieveAll()

	f.readerPos = uint32(headerBytes)
	f.writerPos = uint32(headerBytes)
	return nil
}

//ReadHead parses the header and field descriptors from disk. If fields
//were already declared via AppendHeadField, each on-disk descriptor is
//cross-checked against the matching declared one — mismatches are logged
//as warnings, not failures, and the on-disk descriptor always wins.
func (f *File) ReadHead() error {
	const op = "ReadHead"
	osFile, err := os.Open(f.path)
	if err != nil {
		f.log.Warnf("dbf: %s: open %s: %v", op, f.path, err)
		return newError(op, KindIOFailure, err)
	}
	defer osFile.Close()

	unlock, err := lockRange(osFile, false, 0, schema.HeaderSize, f.lockAttempts, f.lockBackoffMillis)
	if err != nil {
		f.log.Warnf("dbf: %s: lock %s: %v", op, f.path, err)
		return newError(op, KindIOFailure, err)
	}

	raw := make([]byte, schema.HeaderSize)
	if _, err := osFile.Read(raw); err != nil {
		unlock()
		f.log.Warnf("dbf: %s: read header %s: %v", op, f.path, err)
		return newError(op, KindIOFailure, err)
	}
	unlock()

	f.scratch.RetrieveAll()
	if err := f.scratch.AppendArray(raw); err != nil {
		return newError(op, KindIOFailure, err)
	}
	head := &schema.Header{}
	if err := head.ParseFrom(f.scratch); err != nil {
		return newError(op, KindFormatError, err)
	}
	f.head = head

	recordLen := int(head.HeaderBytes) - schema.HeaderSize
	if recordLen < 1 {
		err := fmt.Errorf("headerBytes %d too small", head.HeaderBytes)
		f.log.Warnf("dbf: %s: %v", op, err)
		return newError(op, KindFormatError, err)
	}

	unlock, err = lockRange(osFile, false, schema.HeaderSize, int64(recordLen), f.lockAttempts, f.lockBackoffMillis)
	if err != nil {
		f.log.Warnf("dbf: %s: lock %s: %v", op, f.path, err)
		return newError(op, KindIOFailure, err)
	}
	defer unlock()

	tail := make([]byte, recordLen)
	if _, err := osFile.Read(tail); err != nil {
		f.log.Warnf("dbf: %s: read fields %s: %v", op, f.path, err)
		return newError(op, KindIOFailure, err)
	}

	f.scratch.RetrieveAll()
	if err := f.scratch.AppendArray(tail); err != nil {
		return newError(op, KindIOFailure, err)
	}

	fieldCount := (recordLen - 1) / schema.FieldSize
	declared := f.fields
	parsed := make([]*schema.FieldDescriptor, 0, fieldCount)
	var totalLen int16 = 1
	for i := 0; i < fieldCount; i++ {
		fd := &schema.FieldDescriptor{}
		if err := fd.ParseFrom(f.scratch); err != nil {
			return newError(op, KindFormatError, err)
		}
		if i < len(declared) && !fd.Matches(declared[i]) {
			f.log.Warnf("dbf: %s: field %d on-disk descriptor %s does not match declared %s", op, i, fd, declared[i])
		}
		parsed = append(parsed, fd)
		totalLen += int16(fd.TotalLen)
	}
	f.fields = parsed

	if totalLen != head.RecordBytes {
		err := fmt.Errorf("recordBytes mismatch: header says %d, fields sum to %d", head.RecordBytes, totalLen)
		f.log.Warnf("dbf: %s: %v", op, err)
		return newError(op, KindFormatError, err)
	}

	term, err := f.scratch.ReadChar()
	if err != nil {
		return newError(op, KindIOFailure, err)
	}
	if term != headerTerminator {
		err := fmt.Errorf("header terminator is %#x, want %#x", term, headerTerminator)
		f.log.Warnf("dbf: %s: %v", op, err)
		return newError(op, KindFormatError, err)
	}

	f.readerPos = uint32(head.HeaderBytes)
	f.writerPos = uint32(head.HeaderBytes) + uint32(head.RecordNumber)*uint32(head.RecordBytes)
	return nil
}

//ReadRecordNumber reads the 4-byte record count directly from offset 4,
//independent of any previously parsed header.
func (f *File) ReadRecordNumber() (int32, error) {
	const op = "ReadRecordNumber"
	osFile, err := os.Open(f.path)
	if err != nil {
		return 0, newError(op, KindIOFailure, err)
	}
	defer osFile.Close()

	unlock, err := lockRange(osFile, false, 4, 4, f.lockAttempts, f.lockBackoffMillis)
	if err != nil {
		return 0, newError(op, KindIOFailure, err)
	}
	defer unlock()

	if _, err := osFile.Seek(4, 0); err != nil {
		return 0, newError(op, KindIOFailure, err)
	}
	raw := make([]byte, 4)
	if _, err := osFile.Read(raw); err != nil {
		return 0, newError(op, KindIOFailure, err)
	}
	f.scratch.RetrieveAll()
	f.scratch.AppendArray(raw)
	n, err := f.scratch.ReadBinaryInt32()
	if err != nil {
		return 0, newError(op, KindIOFailure, err)
	}
	f.head.RecordNumber = n
	return n, nil
}

//WriteRecordNumber persists n as the 4-byte record count at offset 4.
func (f *File) WriteRecordNumber(n int32) error {
	const op = "WriteRecordNumber"
	osFile, err := os.OpenFile(f.path, os.O_RDWR, 0644)
	if err != nil {
		return newError(op, KindIOFailure, err)
	}
	defer osFile.Close()

	unlock, err := lockRange(osFile, true, 4, 4, f.lockAttempts, f.lockBackoffMillis)
	if err != nil {
		return newError(op, KindIOFailure, err)
	}
	defer unlock()

	if _, err := osFile.Seek(4, 0); err != nil {
		return newError(op, KindIOFailure, err)
	}
	f.scratch.RetrieveAll()
	f.scratch.AppendBinaryInt32(n)
	if _, err := osFile.Write(f.scratch.Peek()); err != nil {
		return newError(op, KindIOFailure, err)
	}
	f.scratch.RetrieveAll()
	f.head.RecordNumber = n
	return nil
}
