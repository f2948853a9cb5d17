package orchestrator

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/t4tarzan/seaclaw-platform/internal/cluster"
	"github.com/t4tarzan/seaclaw-platform/internal/domainerr"
	"github.com/t4tarzan/seaclaw-platform/internal/persona"
	"github.com/t4tarzan/seaclaw-platform/internal/registry"
)

// Orchestrator wires the Cluster Client Facade and Tenant Registry together
// to implement create/delete/patch/status-read (spec §4.4).
type Orchestrator struct {
	cluster      *cluster.Client
	reg          *registry.Store
	personas     *persona.Directory
	namespace    string
	image        string
	gatewayURL   string
	maxInstances int
	logger       *log.Logger
}

// New builds an Orchestrator. namespace/image/gatewayURL/maxInstances come
// from config.Config; logger is the shared ambient *log.Logger (spec's
// AMBIENT STACK: "one *log.Logger threaded through constructors").
func New(cl *cluster.Client, reg *registry.Store, personas *persona.Directory, namespace, image, gatewayURL string, maxInstances int, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		cluster:      cl,
		reg:          reg,
		personas:     personas,
		namespace:    namespace,
		image:        image,
		gatewayURL:   gatewayURL,
		maxInstances: maxInstances,
		logger:       logger,
	}
}

func newBridgeToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("orchestrator: generate bridge token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func privilegedRuntimeURL(namespace string) string {
	return fmt.Sprintf("http://seazero-agent.%s.svc.cluster.local:8900", namespace)
}

func piiBitmask(enabled bool) int {
	if enabled {
		return cluster.PIICategoriesEnabled
	}
	return 0
}

// composeBundle builds the Configuration Bundle for a brand-new tenant (spec
// §3 "Configuration Bundle", §4.4 Create step 2).
func (o *Orchestrator) composeBundle(req CreateAgentRequest, bridgeToken string) cluster.ConfigBundle {
	b := cluster.ConfigBundle{
		Provider:                 req.Provider,
		Credential:               req.Credential,
		ProviderURL:              cluster.ProviderURL(req.Provider),
		Model:                    req.Model,
		TokenLimit:               4096,
		Temperature:              0.7,
		MaxToolRounds:            10,
		PIICategories:            piiBitmask(req.PIIFilteringEnabled),
		PrivilegedRuntimeEnabled: req.PrivilegedRuntimeEnabled,
		BridgeToken:              bridgeToken,
		PrivilegedRuntimeURL:     privilegedRuntimeURL(o.namespace),
		TokenBudget:              req.TokenBudget,
	}
	if req.SwarmEnabled {
		v := true
		b.SwarmMode = &v
	}
	return b
}

// Create realizes a brand-new tenant (spec §4.4 "Create").
func (o *Orchestrator) Create(ctx context.Context, req CreateAgentRequest) (AgentRecord, error) {
	if o.reg.Count() >= o.maxInstances {
		return AgentRecord{}, domainerr.Validation("instance cap of %d reached", o.maxInstances)
	}
	if _, exists := o.reg.Get(req.Username); exists {
		return AgentRecord{}, domainerr.Conflict("tenant %q already exists", req.Username)
	}

	bridgeToken, err := newBridgeToken()
	if err != nil {
		return AgentRecord{}, err
	}
	bundle := o.composeBundle(req, bridgeToken)

	configData, err := cluster.BuildConfigObjectData(bundle)
	if err != nil {
		return AgentRecord{}, fmt.Errorf("orchestrator: build config object: %w", err)
	}
	configName := cluster.ConfigObjectName(req.Username)
	if err := o.cluster.CreateConfigObject(ctx, configName, configData); err != nil {
		if err == cluster.ErrAlreadyExists {
			if err := o.cluster.ReplaceConfigObject(ctx, configName, configData); err != nil {
				return AgentRecord{}, err
			}
		} else {
			return AgentRecord{}, err
		}
	}

	personaText := o.personas.Resolve(req.Persona)
	personaData := cluster.BuildPersonaObjectData(personaText)
	personaName := cluster.PersonaObjectName(req.Username)
	if err := o.cluster.CreateConfigObject(ctx, personaName, personaData); err != nil {
		if err == cluster.ErrAlreadyExists {
			if err := o.cluster.ReplaceConfigObject(ctx, personaName, personaData); err != nil {
				return AgentRecord{}, err
			}
		} else {
			return AgentRecord{}, err
		}
	}

	pod := cluster.BuildWorkloadPod(cluster.WorkloadParams{
		Username:           req.Username,
		Persona:            req.Persona,
		Image:              o.image,
		Namespace:          o.namespace,
		GatewayURL:         o.gatewayURL,
		SideChannelToken:   req.SideChannelToken,
		SideChannelAddress: req.SideChannelAddress,
	})
	if err := o.cluster.CreateWorkload(ctx, pod); err != nil {
		if err == cluster.ErrAlreadyExists {
			return AgentRecord{}, domainerr.Conflict("workload for %q already exists in cluster", req.Username)
		}
		return AgentRecord{}, err
	}

	svc := cluster.BuildEndpointService(req.Username, o.namespace)
	if err := o.cluster.CreateEndpoint(ctx, svc); err != nil && err != cluster.ErrAlreadyExists {
		return AgentRecord{}, err
	}

	now := time.Now().UTC()
	tenant := registry.Tenant{
		Username:             req.Username,
		Provider:             req.Provider,
		Model:                req.Model,
		Persona:              req.Persona,
		SideChannelToken:     req.SideChannelToken,
		SideChannelAddress:   req.SideChannelAddress,
		WebChatEnabled:       req.WebChatEnabled,
		PIIFilteringEnabled:  req.PIIFilteringEnabled,
		ShieldEnabled:        req.ShieldEnabled,
		PrivilegedRuntime:    req.PrivilegedRuntimeEnabled,
		SwarmEnabled:         req.SwarmEnabled,
		TokenBudget:          req.TokenBudget,
		WorkloadName:         cluster.WorkloadName(req.Username),
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := o.reg.Mutate(func(doc *registry.Document) error {
		doc.Tenants[req.Username] = tenant
		return nil
	}); err != nil {
		return AgentRecord{}, fmt.Errorf("orchestrator: persist tenant %q: %w", req.Username, err)
	}

	o.logger.Printf("created agent for user %q (provider=%s model=%s)", req.Username, req.Provider, req.Model)
	return o.toRecord(tenant, "starting"), nil
}

// Delete tears a tenant down (spec §4.4 "Delete"). Idempotent: NotFound from
// any cluster verb is tolerated. Does not cascade into workers — the Swarm
// Controller owns that recursive cleanup (spec §4.4, §4.6).
func (o *Orchestrator) Delete(ctx context.Context, username string) error {
	if _, exists := o.reg.Get(username); !exists {
		return domainerr.NotFound("tenant %q not found", username)
	}

	if err := o.cluster.DeleteWorkload(ctx, cluster.WorkloadName(username)); err != nil && err != cluster.ErrNotFound {
		return err
	}
	if err := o.cluster.DeleteEndpoint(ctx, cluster.EndpointName(username)); err != nil && err != cluster.ErrNotFound {
		return err
	}
	if err := o.cluster.DeleteConfigObject(ctx, cluster.ConfigObjectName(username)); err != nil && err != cluster.ErrNotFound {
		return err
	}
	if err := o.cluster.DeleteConfigObject(ctx, cluster.PersonaObjectName(username)); err != nil && err != cluster.ErrNotFound {
		return err
	}

	if err := o.reg.Mutate(func(doc *registry.Document) error {
		delete(doc.Tenants, username)
		return nil
	}); err != nil {
		return fmt.Errorf("orchestrator: remove tenant %q: %w", username, err)
	}

	o.logger.Printf("deleted agent for user %q", username)
	return nil
}

// Restart deletes the workload Pod only (spec §9 Open Question (a), resolved:
// restart does not recreate; recreation is left to a future reconciler).
func (o *Orchestrator) Restart(ctx context.Context, username string) error {
	if _, exists := o.reg.Get(username); !exists {
		return domainerr.NotFound("tenant %q not found", username)
	}
	if err := o.cluster.DeleteWorkload(ctx, cluster.WorkloadName(username)); err != nil && err != cluster.ErrNotFound {
		return err
	}
	o.logger.Printf("restarting agent for user %q (workload deleted, not recreated)", username)
	return nil
}

// Patch mutates the live configuration bundle and mirrors the applicable
// subset into the registry (spec §4.4 "Patch"). Returns the map of fields
// that were actually recognized and applied.
func (o *Orchestrator) Patch(ctx context.Context, username string, req UpdateConfigRequest) (map[string]any, error) {
	tenant, exists := o.reg.Get(username)
	if !exists {
		return nil, domainerr.NotFound("tenant %q not found", username)
	}

	configName := cluster.ConfigObjectName(username)
	data, err := o.cluster.ReadConfigObject(ctx, configName)
	if err != nil {
		return nil, err
	}
	raw, ok := data["config.json"]
	if !ok {
		return nil, domainerr.Transient(nil, "orchestrator: config object %q missing payload", configName)
	}
	var bundle cluster.ConfigBundle
	if err := json.Unmarshal([]byte(raw), &bundle); err != nil {
		return nil, fmt.Errorf("orchestrator: decode config bundle for %q: %w", username, err)
	}

	changes := map[string]any{}

	if req.Model != "" {
		bundle.Model = req.Model
		tenant.Model = req.Model
		changes["model"] = req.Model
	}
	if req.Credential != "" {
		bundle.Credential = req.Credential
		changes["credential"] = "***"
	}
	if req.Provider != "" {
		bundle.Provider = req.Provider
		bundle.ProviderURL = cluster.ProviderURL(req.Provider)
		tenant.Provider = req.Provider
		changes["provider"] = req.Provider
	}
	if req.TokenBudget != 0 {
		bundle.TokenBudget = req.TokenBudget
		tenant.TokenBudget = req.TokenBudget
		changes["token_budget"] = req.TokenBudget
	}
	if req.PrivilegedRuntimeEnabled != nil {
		bundle.PrivilegedRuntimeEnabled = *req.PrivilegedRuntimeEnabled
		tenant.PrivilegedRuntime = *req.PrivilegedRuntimeEnabled
		changes["privileged_runtime_enabled"] = *req.PrivilegedRuntimeEnabled
	}
	if req.SwarmEnabled != nil {
		v := *req.SwarmEnabled
		bundle.SwarmMode = &v
		tenant.SwarmEnabled = v
		changes["swarm_enabled"] = v
	}

	if len(changes) == 0 {
		return changes, nil
	}

	newData, err := cluster.BuildConfigObjectData(bundle)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: rebuild config object: %w", err)
	}
	if err := o.cluster.ReplaceConfigObject(ctx, configName, newData); err != nil {
		return nil, err
	}

	tenant.UpdatedAt = time.Now().UTC()
	if err := o.reg.Mutate(func(doc *registry.Document) error {
		doc.Tenants[username] = tenant
		return nil
	}); err != nil {
		return nil, fmt.Errorf("orchestrator: persist patched tenant %q: %w", username, err)
	}

	o.logger.Printf("patched config for user %q: %v", username, changesKeys(changes))
	return changes, nil
}

func changesKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// Status composes the tenant record with a live workload-status read (spec
// §4.4 "Status read").
func (o *Orchestrator) Status(ctx context.Context, username string) (AgentRecord, error) {
	tenant, exists := o.reg.Get(username)
	if !exists {
		return AgentRecord{}, domainerr.NotFound("tenant %q not found", username)
	}
	status, err := o.cluster.ReadWorkloadStatus(ctx, cluster.WorkloadName(username))
	if err != nil {
		return AgentRecord{}, err
	}
	return o.toRecord(tenant, deriveStatus(status)), nil
}

// List returns every tenant, each with a live-derived status.
func (o *Orchestrator) List(ctx context.Context) ([]AgentRecord, error) {
	all := o.reg.All()
	out := make([]AgentRecord, 0, len(all))
	for _, tenant := range all {
		status, err := o.cluster.ReadWorkloadStatus(ctx, cluster.WorkloadName(tenant.Username))
		if err != nil {
			return nil, err
		}
		out = append(out, o.toRecord(tenant, deriveStatus(status)))
	}
	return out, nil
}

// deriveStatus implements spec §4.4's "running iff phase indicates running
// and all containers ready; otherwise the lowercased phase; otherwise
// unknown".
func deriveStatus(status *cluster.WorkloadStatus) string {
	if status == nil {
		return "unknown"
	}
	if strings.EqualFold(status.Phase, "Running") && status.AllReady {
		return "running"
	}
	if status.Phase != "" {
		return strings.ToLower(status.Phase)
	}
	return "unknown"
}

func (o *Orchestrator) toRecord(t registry.Tenant, status string) AgentRecord {
	return AgentRecord{
		Username:                 t.Username,
		Provider:                 t.Provider,
		Model:                    t.Model,
		Persona:                  t.Persona,
		WebChatEnabled:           t.WebChatEnabled,
		PIIFilteringEnabled:      t.PIIFilteringEnabled,
		ShieldEnabled:            t.ShieldEnabled,
		PrivilegedRuntimeEnabled: t.PrivilegedRuntime,
		SwarmEnabled:             t.SwarmEnabled,
		TokenBudget:              t.TokenBudget,
		WorkloadName:             t.WorkloadName,
		CreatedAt:                t.CreatedAt,
		UpdatedAt:                t.UpdatedAt,
		IsWorker:                 t.IsWorker,
		Coordinator:              t.Coordinator,
		Status:                   status,
	}
}

// Registry exposes the underlying Tenant Registry for components (the Swarm
// Controller, the project/workspace relays) that need direct read/mutate
// access beyond the orchestrator's own verbs.
func (o *Orchestrator) Registry() *registry.Store { return o.reg }

// Cluster exposes the underlying Cluster Client Facade; the Swarm Controller
// uses it to read the coordinator's configuration bundle and workers' live
// workload status.
func (o *Orchestrator) Cluster() *cluster.Client { return o.cluster }

// Personas exposes the persona directory the orchestrator resolves persona
// identifiers against.
func (o *Orchestrator) Personas() *persona.Directory { return o.personas }

// Namespace returns the orchestrator's configured cluster namespace.
func (o *Orchestrator) Namespace() string { return o.namespace }

// MaxInstances returns the configured instance cap.
func (o *Orchestrator) MaxInstances() int { return o.maxInstances }
