package feedback

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"dotpi/internal/logger"
	"dotpi/internal/storage"
)

type Repository interface {
	Append(e Entry) error
	LoadAll() ([]Entry, error)
}

// FileRepository keeps all entries in one JSON array file.
type FileRepository struct {
	path string
	mu   sync.Mutex
	log  *logger.Logger
}

func NewFileRepository(path string, log *logger.Logger) *FileRepository {
	if log == nil {
		log = logger.Nop()
	}
	return &FileRepository{path: path, log: log}
}

func (r *FileRepository) LoadAll() ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	raws, err := r.loadUnlocked()
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(raws))
	for i, raw := range raws {
		var re rawEntry
		if err := json.Unmarshal(raw, &re); err != nil {
			r.log.Warn("skipping malformed feedback entry", "index", i, "error", err)
			continue
		}
		e, err := re.normalize()
		if err != nil {
			r.log.Warn("skipping invalid feedback entry", "index", i, "error", err)
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Append rewrites the file with e added. Existing records are kept
// byte-for-byte, including ones this version cannot parse.
func (r *FileRepository) Append(e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	raws, err := r.loadUnlocked()
	if err != nil {
		return err
	}
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}
	raws = append(raws, b)
	if err := storage.WriteJSONAtomic(r.path, raws); err != nil {
		return fmt.Errorf("save feedback: %w", err)
	}
	return nil
}

// loadUnlocked returns the raw records. A missing or empty file is an empty
// list; a single object is treated as a one-element list. Anything else that
// does not decode is an error so a corrupt file is never overwritten.
func (r *FileRepository) loadUnlocked() ([]json.RawMessage, error) {
	b, err := storage.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read feedback: %w", err)
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return []json.RawMessage{}, nil
	}
	if b[0] == '{' {
		if !json.Valid(b) {
			return nil, fmt.Errorf("decode feedback file %s: invalid JSON object", r.path)
		}
		return []json.RawMessage{json.RawMessage(b)}, nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return nil, fmt.Errorf("decode feedback file %s: %w", r.path, err)
	}
	return raws, nil
}
