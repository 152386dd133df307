package history

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"dotpi/internal/storage"
)

// Turn is one user message and the assistant's reply.
type Turn struct {
	User string `json:"user"`
	AI   string `json:"ai"`
}

// UnmarshalJSON also accepts the older ["user", "ai"] pair form.
func (t *Turn) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var pair []string
		if err := json.Unmarshal(b, &pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("turn pair has %d elements", len(pair))
		}
		t.User, t.AI = pair[0], pair[1]
		return nil
	}
	type plain Turn
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*t = Turn(p)
	return nil
}

// FileStore writes the conversation as one JSON array, replaced wholesale.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() ([]Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := storage.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return []Turn{}, nil
	}
	var turns []Turn
	if err := json.Unmarshal(b, &turns); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return turns, nil
}

func (s *FileStore) Save(turns []Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if turns == nil {
		turns = []Turn{}
	}
	return storage.WriteJSONAtomic(s.path, turns)
}
