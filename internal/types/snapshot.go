package types

import (
	"bytes"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"
)

const (
	// SnapshotMagic identifies an encoded snapshot ("SM83").
	SnapshotMagic uint32 = 0x534D3833
	// SnapshotVersion is bumped whenever the layout written by
	// a Stater changes.
	SnapshotVersion uint8 = 1
)

var (
	// ErrBadSnapshot is returned when a snapshot header is not
	// recognised.
	ErrBadSnapshot = errors.New("types: not a snapshot")
	// ErrSnapshotVersion is returned when a snapshot was written by
	// a different layout version.
	ErrSnapshotVersion = errors.New("types: unsupported snapshot version")
)

// snapshotHeader precedes the compressed state payload.
type snapshotHeader struct {
	Magic    uint32
	Version  uint8
	Table    uint64 // checksum of the opcode table in use when saved
	Length   uint32 // uncompressed payload length
	Reserved uint8
}

// EncodeSnapshot packs the given state behind a fixed header and
// compresses the payload with brotli. tableChecksum records which
// opcode table the state was produced with.
func EncodeSnapshot(s *State, tableChecksum uint64) ([]byte, error) {
	var buf bytes.Buffer
	hdr := snapshotHeader{
		Magic:   SnapshotMagic,
		Version: SnapshotVersion,
		Table:   tableChecksum,
		Length:  uint32(len(s.Bytes())),
	}
	if err := struc.Pack(&buf, &hdr); err != nil {
		return nil, errors.Wrap(err, "struc.Pack() failed")
	}

	w := brotli.NewWriterLevel(&buf, brotli.BestCompression)
	if _, err := w.Write(s.Bytes()); err != nil {
		return nil, errors.Wrap(err, "brotli write failed")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "brotli close failed")
	}

	return buf.Bytes(), nil
}

// DecodeSnapshot reverses EncodeSnapshot, returning the state and the
// opcode table checksum it was saved with.
func DecodeSnapshot(b []byte) (*State, uint64, error) {
	r := bytes.NewReader(b)
	var hdr snapshotHeader
	if err := struc.Unpack(r, &hdr); err != nil {
		return nil, 0, errors.Wrap(ErrBadSnapshot, err.Error())
	}
	if hdr.Magic != SnapshotMagic {
		return nil, 0, ErrBadSnapshot
	}
	if hdr.Version != SnapshotVersion {
		return nil, 0, errors.Wrapf(ErrSnapshotVersion, "version %d", hdr.Version)
	}

	raw, err := io.ReadAll(brotli.NewReader(r))
	if err != nil {
		return nil, 0, errors.Wrap(err, "brotli read failed")
	}
	if uint32(len(raw)) != hdr.Length {
		return nil, 0, errors.Errorf("types: snapshot payload is %d bytes, header says %d", len(raw), hdr.Length)
	}

	return StateFromBytes(raw), hdr.Table, nil
}
