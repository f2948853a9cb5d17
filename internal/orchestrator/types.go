// Package orchestrator implements the Instance Orchestrator (spec §4.4): given
// a validated create request it composes and submits the cluster objects that
// realize one tenant, deletes them all on teardown, and mutates the live
// configuration bundle in place on patch.
//
// Grounded on agents/codex-monitor/spawn.go's sequential compose-then-submit
// flow and agents/manager/internal/beam's status-derivation helpers, wired to
// this repo's internal/cluster facade and internal/registry store instead of
// the teacher's Docker/Deployment objects.
package orchestrator

import "time"

// CreateAgentRequest is the validated input to Create (spec §3 "Tenant
// Record", §6 CreateAgentRequest).
type CreateAgentRequest struct {
	Username               string
	Provider               string
	Credential             string
	Model                  string
	Persona                string
	SideChannelToken       string
	SideChannelAddress     string
	WebChatEnabled         bool
	PIIFilteringEnabled    bool
	ShieldEnabled          bool
	PrivilegedRuntimeEnabled bool
	SwarmEnabled           bool
	TokenBudget            int
}

// UpdateConfigRequest is the validated input to Patch (spec §6
// UpdateConfigRequest); zero-value fields mean "leave unchanged" except where
// a pointer is used to distinguish "absent" from "false"/"0".
type UpdateConfigRequest struct {
	Model                    string
	Credential               string
	Provider                 string
	TokenBudget              int
	PrivilegedRuntimeEnabled *bool
	SwarmEnabled             *bool
}

// AgentRecord is a tenant record shaped for external response (spec §6 "GET
// /api/v1/agents/{u}"): the registry record plus a derived, never-persisted
// status.
type AgentRecord struct {
	Username             string               `json:"username"`
	Provider             string               `json:"provider"`
	Model                string               `json:"model"`
	Persona              string               `json:"persona"`
	WebChatEnabled       bool                 `json:"webchat_enabled"`
	PIIFilteringEnabled  bool                 `json:"pii_filtering_enabled"`
	ShieldEnabled        bool                 `json:"shield_enabled"`
	PrivilegedRuntimeEnabled bool             `json:"privileged_runtime_enabled"`
	SwarmEnabled         bool                 `json:"swarm_enabled"`
	TokenBudget          int                  `json:"token_budget"`
	WorkloadName         string               `json:"workload_name"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
	IsWorker             bool                 `json:"is_worker,omitempty"`
	Coordinator          string               `json:"coordinator,omitempty"`
	Status               string               `json:"status"`
}
