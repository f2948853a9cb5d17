package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestOpenOnMissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instances.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Count() != 0 {
		t.Fatalf("expected empty registry, got %d tenants", s.Count())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no file to be created until first mutation")
	}
}

func TestMutatePersistsAndReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instances.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Mutate(func(doc *Document) error {
		doc.Tenants["alec"] = Tenant{Username: "alec", Model: "moonshotai/kimi-k2"}
		return nil
	}); err != nil {
		t.Fatalf("Mutate: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	tenant, ok := reopened.Get("alec")
	if !ok {
		t.Fatalf("expected tenant alec to survive reopen")
	}
	if tenant.Model != "moonshotai/kimi-k2" {
		t.Fatalf("unexpected model after reopen: %q", tenant.Model)
	}
}

func TestMutateRollsBackOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instances.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Mutate(func(doc *Document) error {
		doc.Tenants["alec"] = Tenant{Username: "alec"}
		return nil
	}); err != nil {
		t.Fatalf("seed Mutate: %v", err)
	}

	wantErr := fmt.Errorf("boom")
	err = s.Mutate(func(doc *Document) error {
		doc.Tenants["bob"] = Tenant{Username: "bob"}
		return wantErr
	})
	if err != wantErr {
		t.Fatalf("expected Mutate to propagate the fn error, got %v", err)
	}

	if s.Count() != 1 {
		t.Fatalf("registry mutated in place even though Mutate returned an error, got %d tenants", s.Count())
	}
}

func TestCountAndAllReflectCurrentState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instances.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for _, name := range []string{"alec", "bob", "carol"} {
		if err := s.Mutate(func(doc *Document) error {
			doc.Tenants[name] = Tenant{Username: name}
			return nil
		}); err != nil {
			t.Fatalf("Mutate(%s): %v", name, err)
		}
	}
	if s.Count() != 3 {
		t.Fatalf("expected 3 tenants, got %d", s.Count())
	}
	all := s.All()
	if len(all) != 3 {
		t.Fatalf("expected All() to return 3 tenants, got %d", len(all))
	}
	all["alec"] = Tenant{Username: "mutated-copy"}
	if original, _ := s.Get("alec"); original.Username != "alec" {
		t.Fatalf("All() must return copies, not live references into the store")
	}
}

func TestMutateSerializesConcurrentWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instances.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			username := fmt.Sprintf("tenant-%d", i)
			if err := s.Mutate(func(doc *Document) error {
				doc.Tenants[username] = Tenant{Username: username}
				return nil
			}); err != nil {
				t.Errorf("Mutate(%s): %v", username, err)
			}
		}(i)
	}
	wg.Wait()

	if s.Count() != n {
		t.Fatalf("expected %d tenants after concurrent mutation, got %d", n, s.Count())
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Count() != n {
		t.Fatalf("expected %d tenants on disk after concurrent mutation, got %d", n, reopened.Count())
	}
}

func TestOpenOnEmptyFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instances.json")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("seed empty file: %v", err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open on empty file: %v", err)
	}
	if s.Count() != 0 {
		t.Fatalf("expected empty registry from empty file, got %d tenants", s.Count())
	}
}
