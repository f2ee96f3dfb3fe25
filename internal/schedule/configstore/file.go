package configstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lessonhub/scheduler/internal/model"
)

// FileStore keeps the config as one JSON file. Reads shallow-merge onto
// defaults (unknown or missing fields keep their default value); there is no
// versioning or migration logic.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(_ context.Context) (model.ScheduleConfig, error) {
	cfg := model.DefaultScheduleConfig()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read %s: %w", s.path, err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return model.DefaultScheduleConfig(), fmt.Errorf("decode %s: %w", s.path, err)
	}
	if cfg.Grades == nil {
		cfg.Grades = map[int64]model.GradeScheduleConfig{}
	}
	return cfg, nil
}

func (s *FileStore) Save(_ context.Context, cfg model.ScheduleConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode schedule config: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
