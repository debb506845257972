package blueprint

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrExists reports a save that would replace a stored blueprint.
var ErrExists = errors.New("blueprint already exists")

// Store is the directory of named blueprint files.
type Store struct {
	Dir string
}

func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// Path is the file a name maps to inside the store.
func (s *Store) Path(name string) string {
	return filepath.Join(s.Dir, name+".yaml")
}

func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("blueprint name is empty")
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("blueprint name %q must not contain path separators", name)
	}
	return nil
}

// List returns the stored blueprint names, sorted. A store directory
// that does not exist yet lists as empty.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Load reads a stored blueprint by name.
func (s *Store) Load(name string) (*Doc, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no blueprint named %q", name)
		}
		return nil, err
	}
	return Parse(data)
}

// LoadFile reads a blueprint from an arbitrary path, the escape hatch
// for blueprints passed around as plain files.
func LoadFile(path string) (*Doc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates a blueprint payload.
func Parse(data []byte) (*Doc, error) {
	var d Doc
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, &FormatError{Reason: err.Error()}
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Encode serializes a blueprint document.
func Encode(d *Doc) ([]byte, error) {
	return yaml.Marshal(d)
}

// Save writes the blueprint under name, creating the store directory
// on first use. An existing file is only replaced when overwrite is
// set.
func (s *Store) Save(name string, d *Doc, overwrite bool) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	path := s.Path(name)
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%w at %s", ErrExists, path)
		}
	}
	if err := WriteFile(path, d); err != nil {
		return "", err
	}
	return path, nil
}

// WriteFile writes the blueprint to an arbitrary path.
func WriteFile(path string, d *Doc) error {
	data, err := Encode(d)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Remove deletes a stored blueprint and returns the path it lived at.
func (s *Store) Remove(name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	path := s.Path(name)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("no blueprint named %q", name)
		}
		return "", err
	}
	return path, nil
}
