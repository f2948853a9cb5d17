// Package registry implements the Tenant Registry (spec §3, §4.2): a durable,
// file-backed mapping from tenant username to tenant record, rewritten
// atomically on every mutation and guarded by a single in-process mutex
// across the whole read-modify-write cycle.
package registry

import "time"

// Project is one entry in a tenant's projects map (spec §3).
type Project struct {
	RepoURL   string    `json:"repo_url"`
	Branch    string    `json:"branch"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}

// Worker is one entry in a coordinator's workers map (spec §3, §4.6).
type Worker struct {
	Task         string    `json:"task"`
	Persona      string    `json:"persona"`
	WorkloadName string    `json:"workload_name"`
	SpawnedAt    time.Time `json:"spawned_at"`
	TTLSeconds   int       `json:"ttl_seconds"`
	Status       string    `json:"status"`
}

// Tenant is one tenant record (spec §3 "Tenant Record").
type Tenant struct {
	Username  string `json:"username"`
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	Persona   string `json:"persona"`

	SideChannelToken   string `json:"side_channel_token,omitempty"`
	SideChannelAddress string `json:"side_channel_address,omitempty"`

	WebChatEnabled        bool `json:"webchat_enabled"`
	PIIFilteringEnabled   bool `json:"pii_filtering_enabled"`
	ShieldEnabled         bool `json:"shield_enabled"`
	PrivilegedRuntime     bool `json:"privileged_runtime_enabled"`
	SwarmEnabled          bool `json:"swarm_enabled"`

	TokenBudget int `json:"token_budget"`

	WorkloadName string    `json:"workload_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Projects map[string]Project `json:"projects,omitempty"`
	Workers  map[string]Worker  `json:"workers,omitempty"`

	IsWorker    bool   `json:"is_worker,omitempty"`
	Coordinator string `json:"coordinator,omitempty"`

	// Status is left empty by every writer, so omitempty keeps it off disk.
	// The live status derived from the Cluster Client Facade (spec §4.4
	// "Status read") is carried on orchestrator.AgentRecord, not here.
	Status string `json:"status,omitempty"`
}

// Document is the on-disk shape of instances.json: the whole registry.
type Document struct {
	Tenants map[string]Tenant `json:"tenants"`
}
