package riot

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// LoadMatch reads a match payload from a .json, .json.gz or .json.zst file.
func LoadMatch(path string) (*MatchResponse, error) {
	var m MatchResponse
	if err := decodeFile(path, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadTimeline reads a timeline payload from a .json, .json.gz or .json.zst file.
func LoadTimeline(path string) (*TimelineResponse, error) {
	var tl TimelineResponse
	if err := decodeFile(path, &tl); err != nil {
		return nil, err
	}
	return &tl, nil
}

func decodeFile(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r, closeFn, err := decompressor(path, f)
	if err != nil {
		return fmt.Errorf("decompress %s: %w", path, err)
	}
	defer closeFn()

	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func decompressor(path string, f io.Reader) (io.Reader, func(), error) {
	switch {
	case strings.HasSuffix(path, ".zst"):
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, nil, err
		}
		return dec, dec.Close, nil
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, nil, err
		}
		return gz, func() { gz.Close() }, nil
	default:
		return f, func() {}, nil
	}
}

// SaveJSON writes v as indented JSON to path, compressing with zstd when the
// path ends in .zst.
func SaveJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if !strings.HasSuffix(path, ".zst") {
		return encodeJSON(f, v)
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}
	if err := encodeJSON(enc, v); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func encodeJSON(w io.Writer, v interface{}) error {
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	return e.Encode(v)
}
