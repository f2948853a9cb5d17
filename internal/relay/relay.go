// Package relay implements the Relay (spec §4.5): synchronous HTTP forwarding
// of chat, project, workspace, and task requests from external clients to a
// tenant's workload endpoint, translating transport outcomes into typed
// domain errors.
//
// Grounded on the original source's _proxy_chat (DNS-resolved cluster-local
// service URL, 120s timeout, ConnectError/TimeoutException/HTTPStatusError
// mapping) reimplemented with net/http + context deadlines instead of httpx,
// in the teacher's typed-sentinel-error idiom (internal/domainerr).
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/t4tarzan/seaclaw-platform/internal/domainerr"
	"github.com/t4tarzan/seaclaw-platform/internal/registry"
)

const (
	chatTimeout      = 120 * time.Second
	sidecarTimeout   = 10 * time.Second
	agentPort        = 8899
	maxProjectNameLen = 64
)

var disallowedProjectChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// Relay forwards requests to tenant workload endpoints over the cluster's
// internal service DNS.
type Relay struct {
	reg       *registry.Store
	namespace string
	client    *http.Client
}

// New builds a Relay. The namespace must match the one the Cluster Client
// Facade creates endpoint objects in, since the DNS name is constructed, not
// discovered.
func New(reg *registry.Store, namespace string) *Relay {
	return &Relay{
		reg:       reg,
		namespace: namespace,
		client:    &http.Client{},
	}
}

func (r *Relay) endpointBase(username string) string {
	return fmt.Sprintf("http://seaclaw-%s-svc.%s.svc.cluster.local:%d", username, r.namespace, agentPort)
}

// translate maps a transport-level error from an HTTP round trip into the
// typed domain errors spec §4.5 describes.
func translate(username string, err error) error {
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return domainerr.GatewayTimeout("agent %q timed out (120s)", username)
	}
	msg := err.Error()
	if strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host") || strings.Contains(msg, "dial") {
		return domainerr.ServiceUnavailable("agent %q is not reachable. Is the pod running?", username)
	}
	return domainerr.ServiceUnavailable("agent %q is not reachable: %v", username, err)
}

// Send implements spec §4.5 "send(username, message)": POST {"message":...}
// to the tenant's /api/chat, returning the parsed JSON body verbatim on 2xx.
func (r *Relay) Send(ctx context.Context, username, message string) (map[string]any, error) {
	if _, exists := r.reg.Get(username); !exists {
		return nil, domainerr.NotFound("tenant %q not found", username)
	}

	ctx, cancel := context.WithTimeout(ctx, chatTimeout)
	defer cancel()

	body, _ := json.Marshal(map[string]string{"message": message})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpointBase(username)+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("relay: build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, translate(username, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domainerr.Upstream(resp.StatusCode, "agent error: %s", strings.TrimSpace(string(respBody)))
	}

	var out map[string]any
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("relay: decode chat response from %q: %w", username, err)
	}
	return out, nil
}

// sanitizeProjectName implements spec §4.5 "Project relay" sanitation: strip
// trailing slashes/".git", map disallowed characters to "-", truncate to 64.
func sanitizeProjectName(name string) string {
	name = strings.TrimRight(name, "/")
	name = strings.TrimSuffix(name, ".git")
	name = disallowedProjectChars.ReplaceAllString(name, "-")
	if len(name) > maxProjectNameLen {
		name = name[:maxProjectNameLen]
	}
	return name
}

func deriveProjectName(repoURL string) string {
	trimmed := strings.TrimRight(repoURL, "/")
	parts := strings.Split(trimmed, "/")
	last := parts[len(parts)-1]
	last = strings.TrimSuffix(last, ".git")
	return last
}

// ProjectResult is the response shape for spec §6 "POST
// /api/v1/agents/{u}/project".
type ProjectResult struct {
	ProjectName   string
	Path          string
	AgentResponse map[string]any
}

// Project implements spec §4.5 "Project relay": formats a natural-language
// clone instruction, relays it, and — only on relay success — records the
// project regardless of the runtime's response content (spec §9 Open
// Question (b): weak success semantics preserved, but a transport failure
// still aborts before the project is recorded).
func (r *Relay) Project(ctx context.Context, username, repoURL, branch, requestedName string) (ProjectResult, error) {
	if _, exists := r.reg.Get(username); !exists {
		return ProjectResult{}, domainerr.NotFound("tenant %q not found", username)
	}
	if branch == "" {
		branch = "main"
	}

	name := requestedName
	if name == "" {
		name = deriveProjectName(repoURL)
	}
	name = sanitizeProjectName(name)
	if name == "" {
		return ProjectResult{}, domainerr.Validation("could not derive a project name from %q", repoURL)
	}
	path := fmt.Sprintf("/workspace/%s", name)

	cloneCmd := fmt.Sprintf("clone the git repository %s branch %s into %s", repoURL, branch, path)
	result, err := r.Send(ctx, username, cloneCmd)
	if err != nil {
		return ProjectResult{}, err
	}

	now := time.Now().UTC()
	if err := r.reg.Mutate(func(doc *registry.Document) error {
		tenant := doc.Tenants[username]
		if tenant.Projects == nil {
			tenant.Projects = map[string]registry.Project{}
		}
		tenant.Projects[name] = registry.Project{
			RepoURL:   repoURL,
			Branch:    branch,
			Path:      path,
			CreatedAt: now,
		}
		doc.Tenants[username] = tenant
		return nil
	}); err != nil {
		return ProjectResult{}, fmt.Errorf("relay: record project %q for %q: %w", name, username, err)
	}

	return ProjectResult{ProjectName: name, Path: path, AgentResponse: result}, nil
}

// Workspace implements spec §4.5 "Workspace listing": a thin relay that also
// returns the tenant's tracked projects.
func (r *Relay) Workspace(ctx context.Context, username string) (map[string]any, map[string]registry.Project, error) {
	tenant, exists := r.reg.Get(username)
	if !exists {
		return nil, nil, domainerr.NotFound("tenant %q not found", username)
	}
	result, err := r.Send(ctx, username, "list the contents of /workspace directory, show folder names and file counts")
	if err != nil {
		return nil, nil, err
	}
	return result, tenant.Projects, nil
}

// Tasks implements spec §4.5 "task listing": relays to the workload's
// /api/tasks, tolerating a 404 (the runtime may not expose it yet) by
// returning an empty list with a note instead of an error.
func (r *Relay) Tasks(ctx context.Context, username, status string) ([]any, string, error) {
	if _, exists := r.reg.Get(username); !exists {
		return nil, "", domainerr.NotFound("tenant %q not found", username)
	}

	ctx, cancel := context.WithTimeout(ctx, sidecarTimeout)
	defer cancel()

	url := r.endpointBase(username) + "/api/tasks"
	if status != "" {
		url += "?status=" + status
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("relay: build tasks request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return []any{}, fmt.Sprintf("agent %q not reachable", username), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return []any{}, "tasks endpoint not yet available in this build", nil
	}
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return []any{}, "", nil
	}

	var parsed struct {
		Tasks []any `json:"tasks"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return []any{}, "", nil
	}
	return parsed.Tasks, "", nil
}
