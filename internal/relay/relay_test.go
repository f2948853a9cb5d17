package relay

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/t4tarzan/seaclaw-platform/internal/domainerr"
	"github.com/t4tarzan/seaclaw-platform/internal/registry"
)

func TestSanitizeProjectName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"my-repo", "my-repo"},
		{"my-repo.git", "my-repo"},
		{"my-repo/", "my-repo"},
		{"My Repo!!", "My-Repo--"},
	}
	for _, tc := range cases {
		if got := sanitizeProjectName(tc.in); got != tc.want {
			t.Fatalf("sanitizeProjectName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeProjectNameTruncates(t *testing.T) {
	long := ""
	for i := 0; i < 100; i++ {
		long += "a"
	}
	got := sanitizeProjectName(long)
	if len(got) != maxProjectNameLen {
		t.Fatalf("expected truncation to %d chars, got %d", maxProjectNameLen, len(got))
	}
}

func TestDeriveProjectNameFromRepoURL(t *testing.T) {
	cases := []struct{ in, want string }{
		{"https://github.com/org/myrepo.git", "myrepo"},
		{"https://github.com/org/myrepo", "myrepo"},
		{"https://github.com/org/myrepo/", "myrepo"},
	}
	for _, tc := range cases {
		if got := deriveProjectName(tc.in); got != tc.want {
			t.Fatalf("deriveProjectName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func newTestRelay(t *testing.T) *Relay {
	t.Helper()
	reg, err := registry.Open(filepath.Join(t.TempDir(), "instances.json"))
	if err != nil {
		t.Fatalf("registry.Open: %v", err)
	}
	return New(reg, "seaclaw-platform")
}

func TestSendUnknownTenantNotFound(t *testing.T) {
	r := newTestRelay(t)
	_, err := r.Send(context.Background(), "ghost", "hello")
	de, ok := domainerr.As(err)
	if !ok || de.Kind != domainerr.KindNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestSendUnreachableTenantIsServiceUnavailable(t *testing.T) {
	r := newTestRelay(t)
	if err := r.reg.Mutate(func(doc *registry.Document) error {
		doc.Tenants["alec"] = registry.Tenant{Username: "alec"}
		return nil
	}); err != nil {
		t.Fatalf("seed tenant: %v", err)
	}

	_, err := r.Send(context.Background(), "alec", "hello")
	de, ok := domainerr.As(err)
	if !ok || de.Kind != domainerr.KindServiceUnavailable {
		t.Fatalf("expected service-unavailable for an unreachable cluster-local DNS name, got %v", err)
	}
}

func TestProjectUnknownTenantNotFound(t *testing.T) {
	r := newTestRelay(t)
	_, err := r.Project(context.Background(), "ghost", "https://github.com/org/repo.git", "", "")
	de, ok := domainerr.As(err)
	if !ok || de.Kind != domainerr.KindNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}
