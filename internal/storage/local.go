package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"agency-backend/internal/logger"
	"agency-backend/internal/models"
)

const dataFileName = "appdata.json"

// Local persists the whole AppData aggregate as one JSON document on disk.
// Durability is best-effort: a failed write is reported but the in-memory
// state stays authoritative for the session.
type Local struct {
	dir string
	log zerolog.Logger
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Local{dir: dir, log: logger.WithComponent("storage")}, nil
}

// Path returns the location of the data document (used by the backup uploader).
func (l *Local) Path() string {
	return filepath.Join(l.dir, dataFileName)
}

// Load reads the stored aggregate. A missing file yields an empty normalized
// aggregate; documents written by older versions that lack newer collections
// are normalized rather than rejected.
func (l *Local) Load() (models.AppData, error) {
	raw, err := os.ReadFile(l.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.Empty(), nil
		}
		return models.Empty(), fmt.Errorf("read data file: %w", err)
	}

	var data models.AppData
	if err := json.Unmarshal(raw, &data); err != nil {
		return models.Empty(), fmt.Errorf("parse data file: %w", err)
	}
	data.Normalize()
	return data, nil
}

// Save writes the aggregate atomically (temp file + rename) so a crash
// mid-write never leaves a truncated document behind.
func (l *Local) Save(data models.AppData) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode data: %w", err)
	}

	tmp, err := os.CreateTemp(l.dir, dataFileName+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, l.Path()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}
