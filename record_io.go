package dbf

import (
	"os"

	"github.com/dbfdrive/godbf/schema"
)

//Read reads one record sequentially from readerPos, stamps its readPos,
//and advances readerPos by RecordBytes.
func (f *File) Read(rec schema.DeletableRecord) error {
	const op = "Read"
	raw, err := f.readAt(int64(f.readerPos), f.RecordBytes())
	if err != nil {
		return newError(op, KindIOFailure, err)
	}
	if err := f.parseInto(rec, raw, f.readerPos); err != nil {
		return newError(op, KindFormatError, err)
	}
	f.readerPos += uint32(f.RecordBytes())
	return nil
}

//ReadMany reads len(records) records in a single I/O starting at readerPos,
//stamping consecutive readPos values and advancing readerPos past all of
//them.
func (f *File) ReadMany(records []schema.DeletableRecord) error {
	const op = "ReadMany"
	if len(records) == 0 {
		return nil
	}
	n := f.RecordBytes()
	raw, err := f.readAt(int64(f.readerPos), n*len(records))
	if err != nil {
		return newError(op, KindIOFailure, err)
	}
	pos := f.readerPos
	for i, rec := range records {
		if err := f.parseInto(rec, raw[i*n:(i+1)*n], pos); err != nil {
			return newError(op, KindFormatError, err)
		}
		pos += uint32(n)
	}
	f.readerPos = pos
	return nil
}

//OverRead reads one record at its own readPos (or the current readerPos if
//unbound), stamps it, and does not move readerPos.
func (f *File) OverRead(rec schema.DeletableRecord) error {
	const op = "OverRead"
	pos := rec.ReadPos()
	if pos == 0 {
		pos = f.readerPos
	}
	raw, err := f.readAt(int64(pos), f.RecordBytes())
	if err != nil {
		return newError(op, KindIOFailure, err)
	}
	if err := f.parseInto(rec, raw, pos); err != nil {
		return newError(op, KindFormatError, err)
	}
	return nil
}

//OverReadMany reads a contiguous span of records starting at the first
//record's readPos (or readerPos if unbound), stamping ascending positions
//and advancing readerPos only if it had lagged behind the span just read.
func (f *File) OverReadMany(records []schema.DeletableRecord) error {
	const op = "OverReadMany"
	if len(records) == 0 {
		return nil
	}
	n := f.RecordBytes()
	start := records[0].ReadPos()
	if start == 0 {
		start = f.readerPos
	}
	raw, err := f.readAt(int64(start), n*len(records))
	if err != nil {
		return newError(op, KindIOFailure, err)
	}
	pos := start
	for i, rec := range records {
		if err := f.parseInto(rec, raw[i*n:(i+1)*n], pos); err != nil {
			return newError(op, KindFormatError, err)
		}
		pos += uint32(n)
	}
	if pos > f.readerPos {
		f.readerPos = pos
	}
	return nil
}

//OverWrite writes rec at its own readPos. A record whose readPos is 0 is
//treated as a conceptual append: it lands at writerPos, the EOF marker is
//rewritten past it, recordNumber is incremented and persisted (rolled back
//on failure), and writerPos advances.
func (f *File) OverWrite(rec schema.DeletableRecord) error {
	const op = "OverWrite"
	raw, err := f.serialize(rec)
	if err != nil {
		return newError(op, KindIOFailure, err)
	}
	if rec.ReadPos() == 0 {
		pos := f.writerPos
		if err := f.writeAtWithEOF(int64(pos), raw); err != nil {
			return newError(op, KindIOFailure, err)
		}
		newCount := f.head.RecordNumber + 1
		if err := f.WriteRecordNumber(newCount); err != nil {
			return newError(op, KindIOFailure, err)
		}
		rec.SetReadPos(pos)
		f.writerPos = pos + uint32(f.RecordBytes())
		return nil
	}
	if err := f.writeAt(int64(rec.ReadPos()), raw); err != nil {
		return newError(op, KindIOFailure, err)
	}
	return nil
}

//OverWriteMany writes each record at its own readPos (conceptually
//appending any whose readPos is 0), then increments recordNumber once by
//however many records landed at or past the pre-call writerPos.
func (f *File) OverWriteMany(records []schema.DeletableRecord) error {
	const op = "OverWriteMany"
	oldWriterPos := f.writerPos
	pos := f.writerPos
	appended := 0
	for _, rec := range records {
		raw, err := f.serialize(rec)
		if err != nil {
			return newError(op, KindIOFailure, err)
		}
		target := rec.ReadPos()
		if target == 0 {
			target = pos
			pos += uint32(f.RecordBytes())
		}
		if err := f.writeAt(int64(target), raw); err != nil {
			return newError(op, KindIOFailure, err)
		}
		rec.SetReadPos(target)
		if target >= oldWriterPos {
			appended++
		}
	}
	if appended > 0 {
		if err := f.writeEOFAt(int64(pos)); err != nil {
			return newError(op, KindIOFailure, err)
		}
		f.writerPos = pos
		newCount := f.head.RecordNumber + int32(appended)
		if err := f.WriteRecordNumber(newCount); err != nil {
			return newError(op, KindIOFailure, err)
		}
	}
	return nil
}

//AppendWrite serializes rec and writes it at writerPos followed by the EOF
//marker, increments and persists recordNumber (rolled back on failure), and
//advances writerPos.
func (f *File) AppendWrite(rec schema.DeletableRecord) error {
	const op = "AppendWrite"
	raw, err := f.serialize(rec)
	if err != nil {
		return newError(op, KindIOFailure, err)
	}
	pos := f.writerPos
	if err := f.writeAtWithEOF(int64(pos), raw); err != nil {
		return newError(op, KindIOFailure, err)
	}
	newCount := f.head.RecordNumber + 1
	if err := f.WriteRecordNumber(newCount); err != nil {
		return newError(op, KindIOFailure, err)
	}
	rec.SetReadPos(pos)
	f.writerPos = pos + uint32(f.RecordBytes())
	return nil
}

//AppendWriteMany appends len(records) records in declaration order,
//rewriting the EOF marker once past the last one and persisting
//recordNumber once.
func (f *File) AppendWriteMany(records []schema.DeletableRecord) error {
	const op = "AppendWriteMany"
	if len(records) == 0 {
		return nil
	}
	pos := f.writerPos
	for _, rec := range records {
		raw, err := f.serialize(rec)
		if err != nil {
			return newError(op, KindIOFailure, err)
		}
		if err := f.writeAt(int64(pos), raw); err != nil {
			return newError(op, KindIOFailure, err)
		}
		rec.SetReadPos(pos)
		pos += uint32(f.RecordBytes())
	}
	if err := f.writeEOFAt(int64(pos)); err != nil {
		return newError(op, KindIOFailure, err)
	}
	f.writerPos = pos
	newCount := f.head.RecordNumber + int32(len(records))
	if err := f.WriteRecordNumber(newCount); err != nil {
		return newError(op, KindIOFailure, err)
	}
	return nil
}

func (f *File) parseInto(rec schema.DeletableRecord, raw []byte, pos uint32) error {
	f.scratch.RetrieveAll()
	if err := f.scratch.AppendArray(raw); err != nil {
		return err
	}
	if err := rec.ParseFrom(f.scratch); err != nil {
		return err
	}
	rec.SetReadPos(pos)
	return nil
}

func (f *File) serialize(rec schema.DeletableRecord) ([]byte, error) {
	f.scratch.RetrieveAll()
	if err := rec.SerializeTo(f.scratch); err != nil {
		return nil, err
	}
	raw := append([]byte(nil), f.scratch.Peek()...)
	f.scratch.RetrieveAll()
	return raw, nil
}

func (f *File) readAt(pos int64, n int) ([]byte, error) {
	osFile, err := os.Open(f.path)
	if err != nil {
		return nil, err
	}
	defer osFile.Close()

	unlock, err := lockRange(osFile, false, pos, int64(n), f.lockAttempts, f.lockBackoffMillis)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if _, err := osFile.Seek(pos, 0); err != nil {
		return nil, err
	}
	raw := make([]byte, n)
	if _, err := osFile.Read(raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (f *File) writeAt(pos int64, raw []byte) error {
	osFile, err := os.OpenFile(f.path, os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer osFile.Close()

	unlock, err := lockRange(osFile, true, pos, int64(len(raw)), f.lockAttempts, f.lockBackoffMillis)
	if err != nil {
		return err
	}
	defer unlock()

	if _, err := osFile.Seek(pos, 0); err != nil {
		return err
	}
	_, err = osFile.Write(raw)
	return err
}

func (f *File) writeAtWithEOF(pos int64, raw []byte) error {
	osFile, err := os.OpenFile(f.path, os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer osFile.Close()

	unlock, err := lockRange(osFile, true, pos, int64(len(raw))+1, f.lockAttempts, f.lockBackoffMillis)
	if err != nil {
		return err
	}
	defer unlock()

	if _, err := osFile.Seek(pos, 0); err != nil {
		return err
	}
	if _, err := osFile.Write(raw); err != nil {
		return err
	}
	_, err = osFile.Write([]byte{eofMarker})
	return err
}

func (f *File) writeEOFAt(pos int64) error {
	osFile, err := os.OpenFile(f.path, os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer osFile.Close()

	unlock, err := lockRange(osFile, true, pos, 1, f.lockAttempts, f.lockBackoffMillis)
	if err != nil {
		return err
	}
	defer unlock()

	if _, err := osFile.Seek(pos, 0); err != nil {
		return err
	}
	_, err = osFile.Write([]byte{eofMarker})
	return err
}
