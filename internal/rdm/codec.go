package rdm

import "encoding/binary"

// MaxRDMStringLength is the fixed width of an RDM string field on the wire.
// Strings are space-unpadded, not null-terminated, and truncated on overrun.
const MaxRDMStringLength = 32

// MaxParamDataSize is the largest parameter-data payload an RDM PDU carries.
const MaxParamDataSize = 231

// bufWriter builds a packed, big-endian parameter-data payload, centralizing
// the binary.BigEndian.PutUint32-into-a-[]byte pattern into one typed writer
// so every responder handler shares one encoding path instead of hand-rolling
// offsets.
type bufWriter struct {
	buf []byte
}

func newBufWriter() *bufWriter {
	return &bufWriter{buf: make([]byte, 0, 32)}
}

func (w *bufWriter) WriteU8(v uint8) *bufWriter {
	w.buf = append(w.buf, v)
	return w
}

func (w *bufWriter) WriteBool(v bool) *bufWriter {
	if v {
		return w.WriteU8(1)
	}
	return w.WriteU8(0)
}

func (w *bufWriter) WriteU16BE(v uint16) *bufWriter {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
	return w
}

func (w *bufWriter) WriteU32BE(v uint32) *bufWriter {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
	return w
}

func (w *bufWriter) WriteI16BE(v int16) *bufWriter {
	return w.WriteU16BE(uint16(v))
}

// WriteFixedString32 writes s truncated to MaxRDMStringLength bytes, with no
// padding — the declared length of the field is implicit in the payload
// length, exactly as ANSI E1.20 string PIDs are encoded.
func (w *bufWriter) WriteFixedString32(s string) *bufWriter {
	return w.WriteString(s, MaxRDMStringLength)
}

// WriteString writes s truncated to max bytes, unpadded.
func (w *bufWriter) WriteString(s string, max int) *bufWriter {
	b := []byte(s)
	if len(b) > max {
		b = b[:max]
	}
	w.buf = append(w.buf, b...)
	return w
}

func (w *bufWriter) Bytes() []byte {
	return w.buf
}

// bufReader consumes a packed, big-endian parameter-data payload.
type bufReader struct {
	buf []byte
	pos int
	err error
}

func newBufReader(data []byte) *bufReader {
	return &bufReader{buf: data}
}

// errShortRead is returned, unwrapped, by bufReader.Err when a read ran past
// the end of the buffer — the caller maps this to NRFormatError.
var errShortRead = errShortReadSentinel{}

type errShortReadSentinel struct{}

func (errShortReadSentinel) Error() string { return "rdm: short read decoding parameter data" }

func (r *bufReader) ReadU8() uint8 {
	if r.err != nil || r.pos+1 > len(r.buf) {
		r.err = errShortRead
		return 0
	}
	v := r.buf[r.pos]
	r.pos++
	return v
}

func (r *bufReader) ReadBool() bool {
	return r.ReadU8() != 0
}

func (r *bufReader) ReadU16BE() uint16 {
	if r.err != nil || r.pos+2 > len(r.buf) {
		r.err = errShortRead
		return 0
	}
	v := binary.BigEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v
}

func (r *bufReader) ReadU32BE() uint32 {
	if r.err != nil || r.pos+4 > len(r.buf) {
		r.err = errShortRead
		return 0
	}
	v := binary.BigEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v
}

func (r *bufReader) ReadI16BE() int16 {
	return int16(r.ReadU16BE())
}

// ReadFixedString32 reads the remainder of the buffer (up to 32 bytes) as a
// string, matching the RDM convention of unpadded, non-null-terminated
// fixed-width string fields whose true length is the remaining PDL.
func (r *bufReader) ReadFixedString32() string {
	return r.ReadString(MaxRDMStringLength)
}

func (r *bufReader) ReadString(max int) string {
	if r.err != nil {
		return ""
	}
	remaining := len(r.buf) - r.pos
	if remaining > max {
		remaining = max
	}
	if remaining < 0 {
		r.err = errShortRead
		return ""
	}
	s := string(r.buf[r.pos : r.pos+remaining])
	r.pos += remaining
	return s
}

// Err reports the first decoding error encountered, if any.
func (r *bufReader) Err() error {
	return r.err
}

// Remaining reports the number of unconsumed bytes.
func (r *bufReader) Remaining() int {
	return len(r.buf) - r.pos
}

// Exact reports whether the buffer was fully consumed with no error — the
// strict-size check ExtractUint8/16/32 perform.
func (r *bufReader) Exact() bool {
	return r.err == nil && r.pos == len(r.buf)
}

// ExtractUint8 decodes data as a single uint8, succeeding only when len(data) == 1.
func ExtractUint8(data []byte) (uint8, bool) {
	if len(data) != 1 {
		return 0, false
	}
	return data[0], true
}

// ExtractUint16 decodes data as a big-endian uint16, succeeding only when len(data) == 2.
func ExtractUint16(data []byte) (uint16, bool) {
	if len(data) != 2 {
		return 0, false
	}
	return binary.BigEndian.Uint16(data), true
}

// ExtractUint32 decodes data as a big-endian uint32, succeeding only when len(data) == 4.
func ExtractUint32(data []byte) (uint32, bool) {
	if len(data) != 4 {
		return 0, false
	}
	return binary.BigEndian.Uint32(data), true
}
