package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// variablesFile is the on-disk layout of a FileStore.
type variablesFile struct {
	Variables map[string]string `toml:"variables"`
}

// FileStore keeps variables in a TOML file owned by the current user.
// Every call reads the file again so changes by other processes are seen.
type FileStore struct {
	Path string
}

// NewFileStore returns a store backed by the TOML file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) load() (*variablesFile, error) {
	data := &variablesFile{Variables: make(map[string]string)}
	if _, err := toml.DecodeFile(s.Path, data); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return data, nil
		}
		return nil, fmt.Errorf("failed to load variables from %s: %w", s.Path, err)
	}
	if data.Variables == nil {
		data.Variables = make(map[string]string)
	}
	return data, nil
}

func (s *FileStore) save(data *variablesFile) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0700); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", s.Path, err)
	}

	file, err := os.OpenFile(s.Path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", s.Path, err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(data); err != nil {
		return fmt.Errorf("failed to write variables to %s: %w", s.Path, err)
	}
	return nil
}

// find returns the stored spelling of name.
func (d *variablesFile) find(name string) (string, bool) {
	if _, ok := d.Variables[name]; ok {
		return name, true
	}
	key := lookupKey(name)
	for stored := range d.Variables {
		if lookupKey(stored) == key {
			return stored, true
		}
	}
	return "", false
}

func (s *FileStore) Get(_ context.Context, name string) (string, bool, error) {
	data, err := s.load()
	if err != nil {
		return "", false, err
	}
	stored, ok := data.find(name)
	if !ok {
		return "", false, nil
	}
	return data.Variables[stored], true, nil
}

func (s *FileStore) Set(_ context.Context, name, value string) error {
	data, err := s.load()
	if err != nil {
		return err
	}
	if stored, ok := data.find(name); ok {
		name = stored
	}
	data.Variables[name] = value
	return s.save(data)
}

func (s *FileStore) Delete(_ context.Context, name string) error {
	data, err := s.load()
	if err != nil {
		return err
	}
	stored, ok := data.find(name)
	if !ok {
		return nil
	}
	delete(data.Variables, stored)
	return s.save(data)
}

func (s *FileStore) Names(_ context.Context) ([]string, error) {
	data, err := s.load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(data.Variables))
	for name := range data.Variables {
		names = append(names, name)
	}
	sortNames(names)
	return names, nil
}
