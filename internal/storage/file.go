package storage

import (
	"fmt"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/arcade-sim/internal/replay"
)

// WriteFile exports a recording to a JSON file. Paths ending in .zst are
// zstd-compressed.
func WriteFile(path string, rec *replay.Recording) error {
	data, err := replay.Encode(rec)
	if err != nil {
		return fmt.Errorf("storage: cannot encode recording: %w", err)
	}

	if strings.HasSuffix(path, ".zst") {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return fmt.Errorf("storage: cannot create compressor: %w", err)
		}
		data = enc.EncodeAll(data, nil)
		enc.Close()
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", path, err)
	}
	return nil
}

// ReadFile imports a recording from a JSON file, decompressing .zst
// paths, and validates it against the recording schema.
func ReadFile(path string) (*replay.Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read %s: %w", path, err)
	}

	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot create decompressor: %w", err)
		}
		data, err = dec.DecodeAll(data, nil)
		dec.Close()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot decompress %s: %w", path, err)
		}
	}

	rec, err := replay.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("storage: %s: %w", path, err)
	}
	return rec, nil
}
