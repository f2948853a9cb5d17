package plantasks

// seedTasks is the default plan-task set inserted the first time the store
// is opened. Phase/sprint/title/effort/files columns are carried verbatim
// from the original source's _SEED_TASKS; status and notes start at their
// column defaults ("todo" and "").
var seedTasks = []Task{
	{Phase: "P1", TaskID: "P1-01", Sprint: 1, Title: "Dashboard tab: agent card with usage stats, uptime, model", Effort: "S", Status: "todo", Files: "platform/gateway/templates/index.html"},
	{Phase: "P1", TaskID: "P1-02", Sprint: 1, Title: "Projects tab: create project, link to git repo, assign to agent", Effort: "M", Status: "todo", Files: "platform/gateway/templates/index.html, platform/gateway/main.py"},
	{Phase: "P1", TaskID: "P1-03", Sprint: 1, Title: "POST /api/v1/agents/{user}/project — clone repo into /workspace", Effort: "M", Status: "todo", Files: "platform/gateway/main.py"},
	{Phase: "P1", TaskID: "P1-04", Sprint: 1, Title: "GET /api/v1/agents/{user}/workspace — list files in /workspace", Effort: "S", Status: "todo", Files: "platform/gateway/main.py"},
	{Phase: "P1", TaskID: "P1-05", Sprint: 1, Title: "Task board: list SeaZero tasks from pod DB (todo/in_progress/done)", Effort: "M", Status: "todo", Files: "platform/gateway/templates/index.html, platform/gateway/main.py"},
	{Phase: "P1", TaskID: "P1-06", Sprint: 1, Title: "GET /api/v1/agents/{user}/tasks — proxy to pod /api/tasks", Effort: "S", Status: "todo", Files: "platform/gateway/main.py"},
	{Phase: "P1", TaskID: "P1-07", Sprint: 1, Title: "Agent settings panel: change model, update API key", Effort: "M", Status: "todo", Files: "platform/gateway/templates/index.html, platform/gateway/main.py"},
	{Phase: "P1", TaskID: "P1-08", Sprint: 1, Title: "PATCH /api/v1/agents/{user}/config — update config.json in running pod", Effort: "M", Status: "todo", Files: "platform/gateway/main.py"},
	{Phase: "P1", TaskID: "P1-09", Sprint: 1, Title: "Telegram token field in signup + settings (optional)", Effort: "S", Status: "todo", Files: "platform/gateway/templates/index.html, platform/gateway/main.py"},
	{Phase: "P1", TaskID: "P1-10", Sprint: 1, Title: "Swarm toggle in settings panel (on/off)", Effort: "S", Status: "todo", Files: "platform/gateway/templates/index.html"},

	{Phase: "P2", TaskID: "P2-01", Sprint: 2, Title: "tool_git_clone — clone a repo into /workspace/{project}", Effort: "M", Status: "todo", Files: "src/hands/tool_git.c"},
	{Phase: "P2", TaskID: "P2-02", Sprint: 2, Title: "tool_git_pull — pull latest changes", Effort: "S", Status: "todo", Files: "src/hands/tool_git.c"},
	{Phase: "P2", TaskID: "P2-03", Sprint: 2, Title: "tool_git_status — show changed files", Effort: "S", Status: "todo", Files: "src/hands/tool_git.c"},
	{Phase: "P2", TaskID: "P2-04", Sprint: 2, Title: "tool_git_diff — show diff of changed files", Effort: "S", Status: "todo", Files: "src/hands/tool_git.c"},
	{Phase: "P2", TaskID: "P2-05", Sprint: 2, Title: "tool_git_log — show recent commits", Effort: "S", Status: "todo", Files: "src/hands/tool_git.c"},
	{Phase: "P2", TaskID: "P2-06", Sprint: 2, Title: "tool_git_checkout — switch branch", Effort: "S", Status: "todo", Files: "src/hands/tool_git.c"},
	{Phase: "P2", TaskID: "P2-07", Sprint: 2, Title: "Register git tools #65-70 in sea_tools.c", Effort: "S", Status: "todo", Files: "src/hands/sea_tools.c"},
	{Phase: "P2", TaskID: "P2-08", Sprint: 2, Title: "Rebuild Docker image + redeploy to K3s", Effort: "S", Status: "todo", Files: "platform/docker/Dockerfile.seaclaw"},
	{Phase: "P2", TaskID: "P2-09", Sprint: 2, Title: "Test: ask alec to clone a repo and summarize it end-to-end", Effort: "S", Status: "todo", Files: "—"},

	{Phase: "P3", TaskID: "P3-01", Sprint: 2, Title: "tool_task_create — create task in SQLite seazero_tasks", Effort: "S", Status: "todo", Files: "src/hands/tool_pm.c"},
	{Phase: "P3", TaskID: "P3-02", Sprint: 2, Title: "tool_task_list — list tasks by status/project", Effort: "S", Status: "todo", Files: "src/hands/tool_pm.c"},
	{Phase: "P3", TaskID: "P3-03", Sprint: 2, Title: "tool_task_update — update task status, add notes", Effort: "S", Status: "todo", Files: "src/hands/tool_pm.c"},
	{Phase: "P3", TaskID: "P3-04", Sprint: 2, Title: "tool_report_generate — LLM summarizes tasks into markdown report", Effort: "M", Status: "todo", Files: "src/hands/tool_pm.c"},
	{Phase: "P3", TaskID: "P3-05", Sprint: 2, Title: "tool_milestone — set milestone, track % complete", Effort: "S", Status: "todo", Files: "src/hands/tool_pm.c"},
	{Phase: "P3", TaskID: "P3-06", Sprint: 2, Title: "Register PM tools in sea_tools.c", Effort: "S", Status: "todo", Files: "src/hands/sea_tools.c"},
	{Phase: "P3", TaskID: "P3-07", Sprint: 2, Title: "Add GET /api/tasks endpoint to sea_api.c", Effort: "M", Status: "todo", Files: "src/api/sea_api.c"},
	{Phase: "P3", TaskID: "P3-08", Sprint: 2, Title: "Dashboard Kanban columns (To Do / In Progress / Done) from tasks API", Effort: "M", Status: "todo", Files: "platform/gateway/templates/index.html"},

	{Phase: "P4", TaskID: "P4-01", Sprint: 3, Title: "tool_spawn_worker — call gateway to create ephemeral worker pod", Effort: "M", Status: "todo", Files: "src/hands/tool_swarm.c"},
	{Phase: "P4", TaskID: "P4-02", Sprint: 3, Title: "Worker pod lifecycle: auto-delete after task complete", Effort: "M", Status: "todo", Files: "platform/gateway/main.py"},
	{Phase: "P4", TaskID: "P4-03", Sprint: 3, Title: "POST /api/v1/agents/{user}/workers — create named worker", Effort: "M", Status: "todo", Files: "platform/gateway/main.py"},
	{Phase: "P4", TaskID: "P4-04", Sprint: 3, Title: "Inter-pod messaging via gateway relay", Effort: "M", Status: "todo", Files: "platform/gateway/main.py, src/api/sea_api.c"},
	{Phase: "P4", TaskID: "P4-05", Sprint: 3, Title: "Coordinator prompt template: decompose — assign — collect", Effort: "M", Status: "todo", Files: "platform/souls/coordinator.md"},
	{Phase: "P4", TaskID: "P4-06", Sprint: 3, Title: "Swarm toggle in user config + dashboard UI", Effort: "S", Status: "todo", Files: "platform/gateway/main.py, platform/gateway/templates/index.html"},
	{Phase: "P4", TaskID: "P4-07", Sprint: 3, Title: "Test: analyze codebase and generate PR review via swarm", Effort: "M", Status: "todo", Files: "—"},

	{Phase: "P5", TaskID: "P5-01", Sprint: 4, Title: "Build Agent Zero Docker image for K3s (arm64 + amd64)", Effort: "M", Status: "todo", Files: "platform/docker/Dockerfile.agentzero"},
	{Phase: "P5", TaskID: "P5-02", Sprint: 4, Title: "K8s manifest: shared agent-zero pod + ClusterIP Service", Effort: "S", Status: "todo", Files: "platform/k8s/agent-zero.yaml"},
	{Phase: "P5", TaskID: "P5-03", Sprint: 4, Title: "Signup form: Enable Agent Zero toggle + separate LLM key option", Effort: "S", Status: "todo", Files: "platform/gateway/templates/index.html"},
	{Phase: "P5", TaskID: "P5-04", Sprint: 4, Title: "Per-user token budget config field (default 100K tokens/day)", Effort: "S", Status: "todo", Files: "platform/gateway/main.py"},
	{Phase: "P5", TaskID: "P5-05", Sprint: 4, Title: "Gateway injects SEAZERO_AGENT_URL + SEAZERO_TOKEN into pod env", Effort: "M", Status: "todo", Files: "platform/gateway/main.py"},
	{Phase: "P5", TaskID: "P5-06", Sprint: 4, Title: "LLM proxy multi-tenant: per-user token + budget tracking", Effort: "H", Status: "todo", Files: "src/seazero/sea_proxy.c"},
	{Phase: "P5", TaskID: "P5-07", Sprint: 4, Title: "Dashboard: AZ status indicator + task queue depth", Effort: "M", Status: "todo", Files: "platform/gateway/templates/index.html"},
	{Phase: "P5", TaskID: "P5-08", Sprint: 4, Title: "Test: ask agent to run Python script that downloads and analyzes data", Effort: "M", Status: "todo", Files: "—"},

	{Phase: "P6", TaskID: "P6-01", Sprint: 5, Title: "K3s agent join script (for RPi / second VPS)", Effort: "S", Status: "todo", Files: "platform/scripts/join-node.sh"},
	{Phase: "P6", TaskID: "P6-02", Sprint: 5, Title: "Node labels: capability-based scheduling (arm64, gpu, high-memory)", Effort: "S", Status: "todo", Files: "platform/k8s/node-labels.yaml"},
	{Phase: "P6", TaskID: "P6-03", Sprint: 5, Title: "Longhorn distributed storage OR NFS for cross-node PVCs", Effort: "H", Status: "todo", Files: "platform/k8s/storage.yaml"},
	{Phase: "P6", TaskID: "P6-04", Sprint: 5, Title: "HPA for gateway: scale 1→10 replicas at CPU >50%", Effort: "S", Status: "todo", Files: "platform/k8s/gateway-hpa.yaml"},
	{Phase: "P6", TaskID: "P6-05", Sprint: 5, Title: "PodDisruptionBudget for gateway (always 1 available)", Effort: "S", Status: "todo", Files: "platform/k8s/gateway-pdb.yaml"},
	{Phase: "P6", TaskID: "P6-06", Sprint: 5, Title: "Resource limits on SeaClaw pods (100m CPU, 64Mi RAM)", Effort: "S", Status: "todo", Files: "platform/gateway/main.py"},
	{Phase: "P6", TaskID: "P6-07", Sprint: 5, Title: "LimitRange + ResourceQuota per namespace", Effort: "S", Status: "todo", Files: "platform/k8s/quotas.yaml"},
	{Phase: "P6", TaskID: "P6-08", Sprint: 5, Title: "Test: join RPi node, create agent, verify it schedules to RPi", Effort: "M", Status: "todo", Files: "—"},

	{Phase: "P7", TaskID: "P7-01", Sprint: 6, Title: "channel_discord.c — Discord bot via HTTP Events API", Effort: "H", Status: "todo", Files: "src/channels/channel_discord.c"},
	{Phase: "P7", TaskID: "P7-02", Sprint: 6, Title: "channel_slack.c — Slack via Socket Mode", Effort: "H", Status: "todo", Files: "src/channels/channel_slack.c"},
	{Phase: "P7", TaskID: "P7-03", Sprint: 6, Title: "Discord/Slack token fields in signup form + settings", Effort: "M", Status: "todo", Files: "platform/gateway/templates/index.html"},
	{Phase: "P7", TaskID: "P7-04", Sprint: 6, Title: "Gateway injects channel tokens into pod env vars", Effort: "M", Status: "todo", Files: "platform/gateway/main.py"},
	{Phase: "P7", TaskID: "P7-05", Sprint: 6, Title: "Voice support: Whisper transcription via Groq API", Effort: "M", Status: "todo", Files: "src/channels/sea_voice.c"},
}
