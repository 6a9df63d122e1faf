package adapter

import (
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
	"log/slog"
	"os"

	m "slinx.dev/pkg/slinx/internal/model"
)

// ModelStore persists a parsed system tree so that repeated tooling runs can
// skip re-parsing the source file tree.
type ModelStore interface {
	Save(path string, sys *m.System) error
	Load(path string) (*m.System, error)
}

const storeMagic = "SLINXMOD"

const storeVersion uint32 = 1

// GobModelStore is a ModelStore backed by a magic-prefixed, versioned gob
// file.
type GobModelStore struct{}

// NewGobModelStore constructs a GobModelStore.
func NewGobModelStore() *GobModelStore {
	return &GobModelStore{}
}

// Save writes the system tree to path.
func (s *GobModelStore) Save(path string, sys *m.System) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create model store %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Error("failed to close model store", "path", path, "error", cerr)
		}
	}()

	if _, err := f.Write([]byte(storeMagic)); err != nil {
		return fmt.Errorf("write model store %s: %w", path, err)
	}
	if err := binary.Write(f, binary.LittleEndian, storeVersion); err != nil {
		return fmt.Errorf("write model store %s: %w", path, err)
	}
	if err := gob.NewEncoder(f).Encode(sys); err != nil {
		return fmt.Errorf("encode model store %s: %w", path, err)
	}

	slog.Debug("saved model store", "path", path, "blocks", len(sys.Blocks))

	return nil
}

// Load reads a system tree back from path, checking magic and version.
func (s *GobModelStore) Load(path string) (*m.System, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model store %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Error("failed to close model store", "path", path, "error", cerr)
		}
	}()

	magic := make([]byte, len(storeMagic))
	if _, err := io.ReadFull(f, magic); err != nil {
		return nil, fmt.Errorf("read model store %s: %w", path, err)
	}
	if string(magic) != storeMagic {
		return nil, fmt.Errorf("model store %s: invalid magic %q", path, magic)
	}

	var version uint32
	if err := binary.Read(f, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("read model store %s: %w", path, err)
	}
	if version != storeVersion {
		return nil, fmt.Errorf("model store %s: unsupported version %d", path, version)
	}

	var sys m.System
	if err := gob.NewDecoder(f).Decode(&sys); err != nil {
		return nil, fmt.Errorf("decode model store %s: %w", path, err)
	}

	return &sys, nil
}
