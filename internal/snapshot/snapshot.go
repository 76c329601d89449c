// Package snapshot exports and imports a region of chunks as a
// zstd-compressed stream.
//
// The stream holds one JSON header line followed by gob-encoded chunk
// records, one per chunk.
package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/OCharnyshevich/hexterrain/pkg/world/chunk"
	"github.com/OCharnyshevich/hexterrain/pkg/world/rle"
)

// Version is the current snapshot format version.
const Version = 1

// maxPrealloc bounds the slice reserved from the header's chunk count;
// larger snapshots grow as records arrive.
const maxPrealloc = 1024

// Header describes the world a snapshot was taken from.
type Header struct {
	Version  int    `json:"version"`
	Seed     string `json:"seed"`
	SeaLevel int    `json:"seaLevel"`
	Chunks   int    `json:"chunks"`
}

// record is the on-stream form of a chunk.
type record struct {
	CQ, CR int
	Data   []byte
}

// Write encodes hdr and chunks to w. hdr.Chunks and hdr.Version are set
// from the arguments.
func Write(w io.Writer, hdr Header, chunks []*chunk.Chunk) error {
	hdr.Version = Version
	hdr.Chunks = len(chunks)

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 256*1024)

	hb, err := json.Marshal(hdr)
	if err != nil {
		enc.Close()
		return fmt.Errorf("encode header: %w", err)
	}
	if _, err := bw.Write(append(hb, '\n')); err != nil {
		enc.Close()
		return err
	}

	ge := gob.NewEncoder(bw)
	for _, c := range chunks {
		rec := record{CQ: c.CQ, CR: c.CR, Data: rle.Encode(c.Raw())}
		if err := ge.Encode(&rec); err != nil {
			enc.Close()
			return fmt.Errorf("gob encode chunk (%d,%d): %w", c.CQ, c.CR, err)
		}
	}

	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// Read decodes a snapshot written by Write.
func Read(r io.Reader) (Header, []*chunk.Chunk, error) {
	var hdr Header

	dec, err := zstd.NewReader(r)
	if err != nil {
		return hdr, nil, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return hdr, nil, fmt.Errorf("read header: %w", err)
	}
	if err := json.Unmarshal(line, &hdr); err != nil {
		return hdr, nil, fmt.Errorf("parse header: %w", err)
	}
	if hdr.Version != Version {
		return hdr, nil, fmt.Errorf("unsupported snapshot version %d", hdr.Version)
	}

	if hdr.Chunks < 0 {
		return hdr, nil, fmt.Errorf("invalid chunk count %d", hdr.Chunks)
	}

	gd := gob.NewDecoder(br)
	chunks := make([]*chunk.Chunk, 0, min(hdr.Chunks, maxPrealloc))
	for i := 0; i < hdr.Chunks; i++ {
		var rec record
		if err := gd.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return hdr, nil, fmt.Errorf("gob decode chunk %d of %d: %w", i+1, hdr.Chunks, err)
		}
		ids, err := rle.Decode(rec.Data, chunk.Volume)
		if err != nil {
			return hdr, nil, fmt.Errorf("decode chunk (%d,%d): %w", rec.CQ, rec.CR, err)
		}
		c, err := chunk.FromRaw(rec.CQ, rec.CR, ids)
		if err != nil {
			return hdr, nil, err
		}
		chunks = append(chunks, c)
	}
	return hdr, chunks, nil
}

// WriteFile writes a snapshot to path, creating parent directories.
func WriteFile(path string, hdr Header, chunks []*chunk.Chunk) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := Write(f, hdr, chunks); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadFile reads a snapshot from path.
func ReadFile(path string) (Header, []*chunk.Chunk, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, nil, err
	}
	defer f.Close()
	return Read(f)
}
