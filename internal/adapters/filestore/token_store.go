// Package filestore persists console credentials in a local YAML file.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	fileMode = 0o600
	dirMode  = 0o700
)

// TokenStore keeps one bearer token per (API origin, storage key) in a YAML file:
//
//	origins:
//	  http://localhost:8080:
//	    userToken: eyJhbGciOi...
type TokenStore struct {
	path   string
	origin string
	key    string

	mu sync.Mutex
}

type document struct {
	Origins map[string]map[string]string `yaml:"origins"`
}

// NewTokenStore creates a file-backed token store scoped to origin and key.
func NewTokenStore(path, origin, key string) (*TokenStore, error) {
	if path == "" {
		return nil, errors.New("token file path is required")
	}
	if origin == "" {
		return nil, errors.New("token origin is required")
	}
	if key == "" {
		return nil, errors.New("token storage key is required")
	}
	return &TokenStore{path: path, origin: origin, key: key}, nil
}

// DefaultPath returns the per-user credentials file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "company-console", "credentials.yaml"), nil
}

// Path returns the file backing the store.
func (s *TokenStore) Path() string { return s.path }

func (s *TokenStore) Save(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if token == "" {
		return errors.New("token cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if doc.Origins == nil {
		doc.Origins = make(map[string]map[string]string)
	}
	entries := doc.Origins[s.origin]
	if entries == nil {
		entries = make(map[string]string)
		doc.Origins[s.origin] = entries
	}
	entries[s.key] = token
	return s.write(doc)
}

func (s *TokenStore) Read(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return "", false, err
	}
	token, ok := doc.Origins[s.origin][s.key]
	if !ok || token == "" {
		return "", false, nil
	}
	return token, true, nil
}

func (s *TokenStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	entries, ok := doc.Origins[s.origin]
	if !ok {
		return nil
	}
	if _, ok := entries[s.key]; !ok {
		return nil
	}
	delete(entries, s.key)
	if len(entries) == 0 {
		delete(doc.Origins, s.origin)
	}
	return s.write(doc)
}

func (s *TokenStore) load() (document, error) {
	var doc document
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return doc, nil
		}
		return doc, fmt.Errorf("read token file: %w", err)
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("decode token file %s: %w", s.path, err)
	}
	return doc, nil
}

// write replaces the file atomically so a crash never leaves a truncated document.
func (s *TokenStore) write(doc document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode token file: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".credentials-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp token file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp token file: %w", err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp token file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace token file: %w", err)
	}
	return nil
}
