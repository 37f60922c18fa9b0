package relation

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/multiattr/malh/chvec"
)

// Meta is the global relation state persisted to the .info file: the five
// counters plus the choice vector, matching the original's "Naughty: assumes
// Count and Offset are the same size" flat layout, made explicit here as a
// fixed byte encoding instead of a raw struct dump.
type Meta struct {
	NAttrs uint32
	Depth  uint32
	SP     uint32
	NPages uint32
	NTups  uint32
	CV     chvec.ChVec
}

const (
	counterFields = 5
	counterSize   = 4
	itemSize      = 8 // two uint32 fields per chvec.Item
	metaSize      = counterFields*counterSize + chvec.MaxChVec*itemSize
)

func (m Meta) encode() []byte {
	buf := make([]byte, metaSize)
	binary.LittleEndian.PutUint32(buf[0:4], m.NAttrs)
	binary.LittleEndian.PutUint32(buf[4:8], m.Depth)
	binary.LittleEndian.PutUint32(buf[8:12], m.SP)
	binary.LittleEndian.PutUint32(buf[12:16], m.NPages)
	binary.LittleEndian.PutUint32(buf[16:20], m.NTups)
	off := counterFields * counterSize
	for _, it := range m.CV {
		binary.LittleEndian.PutUint32(buf[off:off+4], it.Att)
		binary.LittleEndian.PutUint32(buf[off+4:off+8], it.Bit)
		off += itemSize
	}
	return buf
}

func decodeMeta(buf []byte) (Meta, error) {
	if len(buf) < metaSize {
		return Meta{}, fmt.Errorf("relation meta: short read (%d of %d bytes)", len(buf), metaSize)
	}
	var m Meta
	m.NAttrs = binary.LittleEndian.Uint32(buf[0:4])
	m.Depth = binary.LittleEndian.Uint32(buf[4:8])
	m.SP = binary.LittleEndian.Uint32(buf[8:12])
	m.NPages = binary.LittleEndian.Uint32(buf[12:16])
	m.NTups = binary.LittleEndian.Uint32(buf[16:20])
	off := counterFields * counterSize
	for i := range m.CV {
		m.CV[i] = chvec.Item{
			Att: binary.LittleEndian.Uint32(buf[off : off+4]),
			Bit: binary.LittleEndian.Uint32(buf[off+4 : off+8]),
		}
		off += itemSize
	}
	return m, nil
}

// metaBackend stores and retrieves the encoded Meta record for a relation,
// mirroring the (memory, file) split used by storage.backend for pages.
type metaBackend interface {
	read(buf []byte) error
	write(buf []byte) error
	close() error
}

type memoryMetaBackend struct {
	buf []byte
}

func (m *memoryMetaBackend) read(buf []byte) error {
	copy(buf, m.buf)
	return nil
}

func (m *memoryMetaBackend) write(buf []byte) error {
	m.buf = append(m.buf[:0], buf...)
	return nil
}

func (m *memoryMetaBackend) close() error { return nil }

type fileMetaBackend struct {
	f *os.File
}

func openFileMetaBackend(path string) (*fileMetaBackend, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &fileMetaBackend{f: f}, nil
}

func (m *fileMetaBackend) read(buf []byte) error {
	_, err := m.f.ReadAt(buf, 0)
	return err
}

func (m *fileMetaBackend) write(buf []byte) error {
	_, err := m.f.WriteAt(buf, 0)
	return err
}

func (m *fileMetaBackend) close() error {
	return m.f.Close()
}
