package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"pomo/internal/modules/timer/domain"
	timerout "pomo/internal/modules/timer/port/out"
)

type FileStateStore struct {
	path string
}

func NewFileStateStore(path string) timerout.StateStore {
	return &FileStateStore{path: path}
}

func (s *FileStateStore) Load(_ context.Context) (domain.SessionClock, bool, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.SessionClock{}, false, nil
		}
		return domain.SessionClock{}, false, fmt.Errorf("read timer state: %w", err)
	}
	state := domain.SessionClock{}
	if err := json.Unmarshal(payload, &state); err != nil {
		return domain.SessionClock{}, false, fmt.Errorf("%w: decode timer state: %v", domain.ErrInvalidClock, err)
	}
	if err := state.Validate(); err != nil {
		return domain.SessionClock{}, false, err
	}
	return state, true, nil
}

// Save writes through a temp file so a concurrent reader never sees a partial document.
func (s *FileStateStore) Save(_ context.Context, state domain.SessionClock) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create timer state dir: %w", err)
	}
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal timer state: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write timer state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace timer state: %w", err)
	}
	return nil
}
