package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"animeseries/internal/logging"
	"animeseries/internal/services"
)

type document struct {
	Cursor    int       `json:"cursor"`
	Processed []int64   `json:"processed"`
	Failed    []int64   `json:"failed"`
	UpdatedAt time.Time `json:"updated_at"`
}

// File loads and saves a State at a fixed path.
type File struct {
	path   string
	logger *slog.Logger
	now    func() time.Time
}

// NewFile returns a File bound to path.
func NewFile(path string, logger *slog.Logger) *File {
	return &File{
		path:   strings.TrimSpace(path),
		logger: logging.NewComponentLogger(logger, "checkpoint"),
		now:    time.Now,
	}
}

// Path returns the checkpoint location.
func (f *File) Path() string { return f.path }

// Load reads the checkpoint. A missing or empty file yields a fresh state.
func (f *File) Load() (*State, error) {
	if f.path == "" {
		return nil, services.Wrap(services.ErrConfiguration, "checkpoint", "load", "path required", nil)
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewState(), nil
		}
		return nil, services.Wrap(services.ErrPersistence, "checkpoint", "load", f.path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return NewState(), nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, services.Wrap(services.ErrMalformedInput, "checkpoint", "load", f.path, err)
	}
	state := NewState()
	if doc.Cursor > 0 {
		state.Cursor = doc.Cursor
	}
	state.UpdatedAt = doc.UpdatedAt
	for _, id := range doc.Processed {
		state.MarkProcessed(id)
	}
	for _, id := range doc.Failed {
		state.MarkFailed(id)
	}

	f.logger.Debug("loaded checkpoint",
		logging.String("path", f.path),
		logging.Int("cursor", state.Cursor),
		logging.Int("processed", state.ProcessedCount()),
		logging.Int("failed", state.FailedCount()))
	return state, nil
}

// Save writes state atomically through a temp file and stamps UpdatedAt.
func (f *File) Save(state *State) error {
	if state == nil {
		return services.Wrap(services.ErrValidation, "checkpoint", "save", "state required", nil)
	}
	if f.path == "" {
		return services.Wrap(services.ErrConfiguration, "checkpoint", "save", "path required", nil)
	}
	state.UpdatedAt = f.now().UTC()
	doc := document{
		Cursor:    state.Cursor,
		Processed: state.Processed(),
		Failed:    state.Failed(),
		UpdatedAt: state.UpdatedAt,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal checkpoint: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return services.Wrap(services.ErrPersistence, "checkpoint", "save", "create directory", err)
	}
	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return services.Wrap(services.ErrPersistence, "checkpoint", "save", "write temp file", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return services.Wrap(services.ErrPersistence, "checkpoint", "save", "rename temp file", err)
	}
	return nil
}

// Remove deletes the checkpoint so the next run starts from the first page.
func (f *File) Remove() error {
	if f.path == "" {
		return nil
	}
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return services.Wrap(services.ErrPersistence, "checkpoint", "remove", f.path, err)
	}
	f.logger.Info("checkpoint removed", logging.String("path", f.path))
	return nil
}
