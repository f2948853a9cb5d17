// Package swarm implements the Swarm Controller (spec §4.6): spawns ephemeral
// child tenants (workers) under a coordinator, inheriting the coordinator's
// credentials with a hard-capped budget and reduced capability flags; lists
// and terminates workers; enforces the relay-to-coordinator authorization
// rule.
//
// Grounded on the original source's spawn_worker/terminate_worker/list_workers/
// relay_message handlers, reimplemented atop internal/orchestrator and
// internal/relay instead of calling the Kubernetes client and instances.json
// directly.
package swarm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/t4tarzan/seaclaw-platform/internal/cluster"
	"github.com/t4tarzan/seaclaw-platform/internal/domainerr"
	"github.com/t4tarzan/seaclaw-platform/internal/orchestrator"
	"github.com/t4tarzan/seaclaw-platform/internal/registry"
	"github.com/t4tarzan/seaclaw-platform/internal/relay"
)

func decodeBundle(data map[string]string) (cluster.ConfigBundle, error) {
	var bundle cluster.ConfigBundle
	raw, ok := data["config.json"]
	if !ok {
		return bundle, fmt.Errorf("swarm: config object missing config.json payload")
	}
	if err := json.Unmarshal([]byte(raw), &bundle); err != nil {
		return bundle, fmt.Errorf("swarm: decode config bundle: %w", err)
	}
	return bundle, nil
}

// WorkerBudget is the fixed hard-capped token budget every worker is created
// with, regardless of the coordinator's own budget (spec §4.6 step 4).
const WorkerBudget = 10000

const maxWorkerIDLen = 20

var disallowedWorkerIDChars = regexp.MustCompile(`[^a-z0-9-]`)

// Controller wires the Instance Orchestrator and Relay together to implement
// spawn/terminate/list/relay for ephemeral worker tenants.
type Controller struct {
	orch  *orchestrator.Orchestrator
	relay *relay.Relay
}

// New builds a Controller.
func New(orch *orchestrator.Orchestrator, rl *relay.Relay) *Controller {
	return &Controller{orch: orch, relay: rl}
}

// SpawnRequest is the validated input to Spawn (spec §6 WorkerRequest).
type SpawnRequest struct {
	Task       string
	WorkerName string
	Persona    string
	TTLSeconds int
}

// SpawnResult is the response shape for spec §6 "POST
// /api/v1/agents/{u}/workers".
type SpawnResult struct {
	WorkerUsername string
	WorkloadName   string
	Task           string
	TTLSeconds     int
}

func normalizeWorkerID(id string) string {
	id = strings.ToLower(id)
	id = disallowedWorkerIDChars.ReplaceAllString(id, "-")
	if len(id) > maxWorkerIDLen {
		id = id[:maxWorkerIDLen]
	}
	return id
}

// timestampWorkerID derives the default worker id from a Unix-millisecond
// timestamp: "w" followed by the milliseconds modulo 100000. The wall-clock
// read is supplied by the caller instead of made internally (keeps this
// function a pure, testable helper).
func timestampWorkerID(unixMillis int64) string {
	return fmt.Sprintf("w%d", unixMillis%100000)
}

// Spawn implements spec §4.6 "Spawn worker". now is the wall-clock time used
// to derive a default worker id when req.WorkerName is empty.
func (c *Controller) Spawn(ctx context.Context, coordinatorUsername string, req SpawnRequest, now time.Time) (SpawnResult, error) {
	coordinator, exists := c.orch.Registry().Get(coordinatorUsername)
	if !exists {
		return SpawnResult{}, domainerr.NotFound("tenant %q not found", coordinatorUsername)
	}
	if !coordinator.SwarmEnabled {
		return SpawnResult{}, domainerr.Forbidden("swarm mode is not enabled for %q", coordinatorUsername)
	}

	workerID := req.WorkerName
	if workerID == "" {
		workerID = timestampWorkerID(now.UnixMilli())
	}
	workerID = normalizeWorkerID(workerID)
	workerUsername := fmt.Sprintf("%s-%s", coordinatorUsername, workerID)

	configName := cluster.ConfigObjectName(coordinatorUsername)
	data, err := c.orch.Cluster().ReadConfigObject(ctx, configName)
	if err != nil {
		return SpawnResult{}, domainerr.ServiceUnavailable("could not read coordinator config for %q", coordinatorUsername)
	}
	bundle, err := decodeBundle(data)
	if err != nil {
		return SpawnResult{}, domainerr.ServiceUnavailable("could not read coordinator config for %q", coordinatorUsername)
	}

	correlationID := uuid.NewString()

	createReq := orchestrator.CreateAgentRequest{
		Username:                workerUsername,
		Provider:                bundle.Provider,
		Credential:              bundle.Credential,
		Model:                   bundle.Model,
		Persona:                 req.Persona,
		WebChatEnabled:          false,
		PrivilegedRuntimeEnabled: false,
		TokenBudget:             WorkerBudget,
	}
	created, err := c.orch.Create(ctx, createReq)
	if err != nil {
		return SpawnResult{}, err
	}

	spawnedAt := time.Now().UTC()
	if err := c.orch.Registry().Mutate(func(doc *registry.Document) error {
		coord := doc.Tenants[coordinatorUsername]
		if coord.Workers == nil {
			coord.Workers = map[string]registry.Worker{}
		}
		coord.Workers[workerUsername] = registry.Worker{
			Task:         req.Task,
			Persona:      req.Persona,
			WorkloadName: created.WorkloadName,
			SpawnedAt:    spawnedAt,
			TTLSeconds:   req.TTLSeconds,
			Status:       "starting",
		}
		doc.Tenants[coordinatorUsername] = coord

		worker := doc.Tenants[workerUsername]
		worker.IsWorker = true
		worker.Coordinator = coordinatorUsername
		doc.Tenants[workerUsername] = worker
		return nil
	}); err != nil {
		return SpawnResult{}, fmt.Errorf("swarm: register worker %q (correlation %s): %w", workerUsername, correlationID, err)
	}

	return SpawnResult{
		WorkerUsername: workerUsername,
		WorkloadName:   created.WorkloadName,
		Task:           req.Task,
		TTLSeconds:     req.TTLSeconds,
	}, nil
}

// Terminate implements spec §4.6 "Terminate worker": deletes the worker's
// cluster objects (idempotent), removes it from the coordinator's workers
// map, removes the standalone tenant entry.
func (c *Controller) Terminate(ctx context.Context, coordinatorUsername, workerID string) error {
	workerUsername := fmt.Sprintf("%s-%s", coordinatorUsername, workerID)

	if err := c.orch.Delete(ctx, workerUsername); err != nil {
		if de, ok := domainerr.As(err); !ok || de.Kind != domainerr.KindNotFound {
			return err
		}
	}

	return c.orch.Registry().Mutate(func(doc *registry.Document) error {
		if coord, ok := doc.Tenants[coordinatorUsername]; ok {
			delete(coord.Workers, workerUsername)
			doc.Tenants[coordinatorUsername] = coord
		}
		delete(doc.Tenants, workerUsername)
		return nil
	})
}

// WorkerStatus is one entry of spec §4.6 "List workers" (a registered worker
// merged with a live workload-status read).
type WorkerStatus struct {
	Username     string
	Task         string
	Persona      string
	WorkloadName string
	SpawnedAt    time.Time
	TTLSeconds   int
	Status       string
}

// List implements spec §4.6 "List workers".
func (c *Controller) List(ctx context.Context, coordinatorUsername string) ([]WorkerStatus, error) {
	coordinator, exists := c.orch.Registry().Get(coordinatorUsername)
	if !exists {
		return nil, domainerr.NotFound("tenant %q not found", coordinatorUsername)
	}

	out := make([]WorkerStatus, 0, len(coordinator.Workers))
	for username, w := range coordinator.Workers {
		status, err := c.orch.Cluster().ReadWorkloadStatus(ctx, w.WorkloadName)
		if err != nil {
			return nil, err
		}
		derived := "gone"
		if status != nil {
			if strings.EqualFold(status.Phase, "Running") && status.AllReady {
				derived = "running"
			} else if status.Phase != "" {
				derived = strings.ToLower(status.Phase)
			}
		}
		out = append(out, WorkerStatus{
			Username:     username,
			Task:         w.Task,
			Persona:      w.Persona,
			WorkloadName: w.WorkloadName,
			SpawnedAt:    w.SpawnedAt,
			TTLSeconds:   w.TTLSeconds,
			Status:       derived,
		})
	}
	return out, nil
}

// RelayToCoordinator implements spec §4.6 "Relay to coordinator": authorizes
// fromAgent as either the coordinator itself or a current worker, then
// performs a standard relay.
func (c *Controller) RelayToCoordinator(ctx context.Context, coordinatorUsername, fromAgent, message string) (map[string]any, error) {
	coordinator, exists := c.orch.Registry().Get(coordinatorUsername)
	if !exists {
		return nil, domainerr.NotFound("tenant %q not found", coordinatorUsername)
	}

	_, isWorker := coordinator.Workers[fromAgent]
	if fromAgent != coordinatorUsername && !isWorker {
		return nil, domainerr.Forbidden("agent %q is not authorized to relay to %q", fromAgent, coordinatorUsername)
	}

	return c.relay.Send(ctx, coordinatorUsername, message)
}
