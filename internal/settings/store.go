package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/weather-forecast/internal/weather"
)

var validate = validator.New()

// SaveError reports that the settings file could not be written. The
// previous file, if any, is left untouched.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save settings to %s: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// FileStore keeps UserSettings in one JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by path. The file need not exist.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// fileFormat is the on-disk shape. It also accepts the keys written by
// older versions (default_location, temp_unit).
type fileFormat struct {
	DefaultCity    *string  `json:"default_city"`
	Favorites      []string `json:"favorites"`
	UnitPreference *string  `json:"unit_preference"`

	LegacyDefaultLocation *string `json:"default_location,omitempty"`
	LegacyTempUnit        *string `json:"temp_unit,omitempty"`
}

// Load reads the settings file. It never fails: a missing or malformed file
// yields Defaults().
func (s *FileStore) Load() UserSettings {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("INFO: no settings file at %s; using defaults", s.path)
		} else {
			log.Printf("WARN: reading settings %s: %v; using defaults", s.path, err)
		}
		return Defaults()
	}

	var raw fileFormat
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("WARN: malformed settings %s: %v; using defaults", s.path, err)
		return Defaults()
	}

	return fromFile(raw)
}

func fromFile(raw fileFormat) UserSettings {
	out := Defaults()

	switch {
	case raw.DefaultCity != nil:
		out.DefaultCity = raw.DefaultCity
	case raw.LegacyDefaultLocation != nil:
		out.DefaultCity = raw.LegacyDefaultLocation
	}

	if raw.Favorites != nil {
		out.Favorites = raw.Favorites
	}

	switch {
	case raw.UnitPreference != nil:
		u := weather.Units(*raw.UnitPreference)
		if u.Valid() {
			out.UnitPreference = u
		} else {
			log.Printf("WARN: unknown unit_preference %q; using %s", *raw.UnitPreference, weather.UnitsMetric)
		}
	case raw.LegacyTempUnit != nil:
		if *raw.LegacyTempUnit == "fahrenheit" {
			out.UnitPreference = weather.UnitsImperial
		}
	}

	return out.Normalize()
}

// Save validates settings and atomically replaces the settings file: the
// data goes to a temp file in the same directory which is then renamed over
// the target.
func (s *FileStore) Save(settings UserSettings) error {
	settings = settings.Normalize()
	if err := validate.Struct(settings); err != nil {
		return &SaveError{Path: s.path, Err: err}
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return &SaveError{Path: s.path, Err: err}
	}
	data = append(data, '\n')

	if err := writeAtomic(s.path, data); err != nil {
		return &SaveError{Path: s.path, Err: err}
	}
	return nil
}

func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// EnsureDir creates the directory that will hold the settings file.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings directory %s: %w", dir, err)
	}
	return nil
}
