package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is the durable mapping from username to Tenant record. It rewrites
// the whole document on every mutation (write-temp-then-rename) and serializes
// every read-modify-write cycle behind a single mutex, per spec §4.2 and §5 —
// grounded on the teacher's state.Store (agents/manager/internal/state/store.go),
// generalized from the teacher's ad hoc dyad/task maps to a single tenant map.
type Store struct {
	mu   sync.Mutex
	path string
	doc  Document
}

// Open loads the registry from path, creating an empty in-memory document if
// the file does not yet exist. It does not create the file until the first
// mutation.
func Open(path string) (*Store, error) {
	s := &Store{path: path, doc: Document{Tenants: map[string]Tenant{}}}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(data) == 0 {
		return nil
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("registry: parse %s: %w", s.path, err)
	}
	if doc.Tenants == nil {
		doc.Tenants = map[string]Tenant{}
	}
	s.doc = doc
	return nil
}

func (s *Store) persistLocked() error {
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(&s.doc, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Get returns a copy of the tenant record and whether it exists.
func (s *Store) Get(username string) (Tenant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.doc.Tenants[username]
	return t, ok
}

// All returns a copy of every tenant record.
func (s *Store) All() map[string]Tenant {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Tenant, len(s.doc.Tenants))
	for k, v := range s.doc.Tenants {
		out[k] = v
	}
	return out
}

// Count returns the number of tenants currently in the registry.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.doc.Tenants)
}

// Mutate runs fn against a copy of the document under the write lock and,
// if fn returns a nil error and the write succeeds, makes that copy the
// registry's state; otherwise the registry is left as it was. This is the
// only way to mutate the registry; every API that writes a tenant record goes
// through it so the read-modify-write cycle is always serialized (spec §4.2,
// §5).
func (s *Store) Mutate(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(&s.doc)
	if err != nil {
		return err
	}
	next := Document{}
	if err := json.Unmarshal(data, &next); err != nil {
		return err
	}
	if next.Tenants == nil {
		next.Tenants = map[string]Tenant{}
	}
	if err := fn(&next); err != nil {
		return err
	}
	prev := s.doc
	s.doc = next
	if err := s.persistLocked(); err != nil {
		s.doc = prev
		return err
	}
	return nil
}
