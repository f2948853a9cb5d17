package api

import (
	"net/http"

	"github.com/t4tarzan/seaclaw-platform/internal/orchestrator"
)

// createAgentBody is the wire shape of spec §6 CreateAgentRequest.
type createAgentBody struct {
	Username                string `json:"username"`
	Provider                string `json:"llm_provider"`
	APIKey                  string `json:"api_key"`
	Model                   string `json:"model"`
	Persona                 string `json:"soul"`
	TelegramToken           string `json:"telegram_token"`
	TelegramChatID          string `json:"telegram_chat_id"`
	WebChatEnabled          *bool  `json:"enable_webchat"`
	PIIFilteringEnabled     *bool  `json:"enable_pii"`
	ShieldEnabled           *bool  `json:"enable_shield"`
	PrivilegedRuntimeEnabled *bool `json:"enable_agent_zero"`
	TokenBudget             int    `json:"token_budget"`
}

func boolOrDefault(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func (s *Server) handleCreateAgent(w http.ResponseWriter, r *http.Request) {
	var body createAgentBody
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, err)
		return
	}

	if body.Provider == "" {
		body.Provider = "openrouter"
	}
	if body.Model == "" {
		body.Model = "moonshotai/kimi-k2"
	}
	if body.Persona == "" {
		body.Persona = "alex"
	}
	if body.TokenBudget == 0 {
		body.TokenBudget = 100000
	}

	if err := validateUsername(body.Username); err != nil {
		s.writeError(w, err)
		return
	}
	if err := validateAPIKey(body.APIKey); err != nil {
		s.writeError(w, err)
		return
	}
	if err := validateTokenBudget(body.TokenBudget); err != nil {
		s.writeError(w, err)
		return
	}

	req := orchestrator.CreateAgentRequest{
		Username:                 body.Username,
		Provider:                 body.Provider,
		Credential:               body.APIKey,
		Model:                    body.Model,
		Persona:                  body.Persona,
		SideChannelToken:         body.TelegramToken,
		SideChannelAddress:       body.TelegramChatID,
		WebChatEnabled:           boolOrDefault(body.WebChatEnabled, true),
		PIIFilteringEnabled:      boolOrDefault(body.PIIFilteringEnabled, true),
		ShieldEnabled:            boolOrDefault(body.ShieldEnabled, true),
		PrivilegedRuntimeEnabled: boolOrDefault(body.PrivilegedRuntimeEnabled, true),
		TokenBudget:              body.TokenBudget,
	}

	rec, err := s.orch.Create(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "created",
		"username":      rec.Username,
		"workload_name": rec.WorkloadName,
	})
}

func (s *Server) handleListAgents(w http.ResponseWriter, r *http.Request) {
	recs, err := s.orch.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"agents": recs,
		"count":  len(recs),
		"max":    s.orch.MaxInstances(),
	})
}

func (s *Server) handleGetAgent(w http.ResponseWriter, r *http.Request) {
	rec, err := s.orch.Status(r.Context(), usernameParam(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteAgent(w http.ResponseWriter, r *http.Request) {
	username := usernameParam(r)

	coordinator, exists := s.orch.Registry().Get(username)
	if exists {
		for workerUsername := range coordinator.Workers {
			workerID := workerUsername[len(username)+1:]
			if err := s.swarm.Terminate(r.Context(), username, workerID); err != nil {
				s.log.Printf("best-effort worker cleanup failed for %q: %v", workerUsername, err)
			}
		}
	}

	if err := s.orch.Delete(r.Context(), username); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleRestartAgent(w http.ResponseWriter, r *http.Request) {
	if err := s.orch.Restart(r.Context(), usernameParam(r)); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "restarting"})
}

// patchConfigBody is the wire shape of spec §6 UpdateConfigRequest.
type patchConfigBody struct {
	Model                    *string `json:"model"`
	APIKey                   *string `json:"api_key"`
	Provider                 *string `json:"llm_provider"`
	TokenBudget              *int    `json:"token_budget"`
	PrivilegedRuntimeEnabled *bool   `json:"enable_agent_zero"`
	SwarmEnabled             *bool   `json:"swarm_mode"`
}

func (s *Server) handlePatchConfig(w http.ResponseWriter, r *http.Request) {
	var body patchConfigBody
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, err)
		return
	}
	if body.TokenBudget != nil {
		if err := validateTokenBudget(*body.TokenBudget); err != nil {
			s.writeError(w, err)
			return
		}
	}

	req := orchestrator.UpdateConfigRequest{
		PrivilegedRuntimeEnabled: body.PrivilegedRuntimeEnabled,
		SwarmEnabled:             body.SwarmEnabled,
	}
	if body.Model != nil {
		req.Model = *body.Model
	}
	if body.APIKey != nil {
		req.Credential = *body.APIKey
	}
	if body.Provider != nil {
		req.Provider = *body.Provider
	}
	if body.TokenBudget != nil {
		req.TokenBudget = *body.TokenBudget
	}

	changes, err := s.orch.Patch(r.Context(), usernameParam(r), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "updated", "changes": changes})
}

type chatBody struct {
	Message string `json:"message"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var body chatBody
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, err)
		return
	}
	if err := validateMessage(body.Message); err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.relay.Send(r.Context(), usernameParam(r), body.Message)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type projectBody struct {
	RepoURL     string `json:"repo_url"`
	Branch      string `json:"branch"`
	ProjectName string `json:"project_name"`
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var body projectBody
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, err)
		return
	}
	if err := validateRepoURL(body.RepoURL); err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.relay.Project(r.Context(), usernameParam(r), body.RepoURL, body.Branch, body.ProjectName)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "cloning",
		"project_name":   result.ProjectName,
		"path":           result.Path,
		"agent_response": result.AgentResponse,
	})
}

func (s *Server) handleWorkspace(w http.ResponseWriter, r *http.Request) {
	workspace, projects, err := s.relay.Workspace(r.Context(), usernameParam(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"workspace": workspace, "projects": projects})
}

func (s *Server) handleAgentTasks(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	tasks, note, err := s.relay.Tasks(r.Context(), usernameParam(r), status)
	if err != nil {
		s.writeError(w, err)
		return
	}
	resp := map[string]any{"tasks": tasks}
	if note != "" {
		resp["note"] = note
	}
	writeJSON(w, http.StatusOK, resp)
}
