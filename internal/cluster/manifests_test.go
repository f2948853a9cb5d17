package cluster

import (
	"encoding/json"
	"testing"
)

func TestBuildWorkloadPodNamesAndMounts(t *testing.T) {
	pod := BuildWorkloadPod(WorkloadParams{
		Username:   "alec",
		Persona:    "alex",
		Image:      "seaclaw-instance:latest",
		Namespace:  "seaclaw-platform",
		GatewayURL: "http://gateway.local",
	})

	if pod.Name != "seaclaw-alec" {
		t.Fatalf("unexpected pod name: %q", pod.Name)
	}
	if pod.Spec.RestartPolicy != "Always" {
		t.Fatalf("expected RestartPolicyAlways, got %q", pod.Spec.RestartPolicy)
	}
	if len(pod.Spec.Containers) != 1 || pod.Spec.Containers[0].Ports[0].ContainerPort != AgentPort {
		t.Fatalf("expected a single container exposing AgentPort, got %+v", pod.Spec.Containers)
	}
	if len(pod.Spec.InitContainers) != 1 {
		t.Fatalf("expected exactly one init container, got %d", len(pod.Spec.InitContainers))
	}

	var configVol, personaVol, userDataVol bool
	for _, v := range pod.Spec.Volumes {
		switch v.Name {
		case "config":
			configVol = v.ConfigMap != nil && v.ConfigMap.Name == "seaclaw-config-alec"
		case "persona":
			personaVol = v.ConfigMap != nil && v.ConfigMap.Name == "seaclaw-persona-alec"
		case "user-data":
			userDataVol = v.PersistentVolumeClaim != nil && v.PersistentVolumeClaim.ClaimName == defaultUserDataClaim
		}
	}
	if !configVol || !personaVol || !userDataVol {
		t.Fatalf("expected config/persona/user-data volumes wired to the per-tenant ConfigMaps, got %+v", pod.Spec.Volumes)
	}
}

func TestBuildWorkloadPodOmitsUnsetSideChannelEnv(t *testing.T) {
	pod := BuildWorkloadPod(WorkloadParams{Username: "alec", Image: "img", Namespace: "ns"})
	for _, e := range pod.Spec.Containers[0].Env {
		if e.Name == "SEA_SIDE_CHANNEL_TOKEN" || e.Name == "SEA_SIDE_CHANNEL_ADDRESS" {
			t.Fatalf("expected no side-channel env vars when unset, found %s", e.Name)
		}
	}
}

func TestBuildWorkloadPodIncludesSideChannelEnvWhenSet(t *testing.T) {
	pod := BuildWorkloadPod(WorkloadParams{
		Username:           "alec",
		Image:              "img",
		Namespace:          "ns",
		SideChannelToken:   "tok-123",
		SideChannelAddress: "-1001",
	})
	var sawToken, sawAddress bool
	for _, e := range pod.Spec.Containers[0].Env {
		if e.Name == "SEA_SIDE_CHANNEL_TOKEN" && e.Value == "tok-123" {
			sawToken = true
		}
		if e.Name == "SEA_SIDE_CHANNEL_ADDRESS" && e.Value == "-1001" {
			sawAddress = true
		}
	}
	if !sawToken || !sawAddress {
		t.Fatalf("expected both side-channel env vars set, got %+v", pod.Spec.Containers[0].Env)
	}
}

func TestBuildEndpointServiceSelectorMatchesWorkloadLabels(t *testing.T) {
	pod := BuildWorkloadPod(WorkloadParams{Username: "alec", Persona: "alex", Image: "img", Namespace: "ns"})
	svc := BuildEndpointService("alec", "ns")

	if svc.Name != "seaclaw-alec-svc" {
		t.Fatalf("unexpected service name: %q", svc.Name)
	}
	for k, v := range svc.Spec.Selector {
		if pod.Labels[k] != v {
			t.Fatalf("service selector %s=%q does not match pod label %q", k, v, pod.Labels[k])
		}
	}
	if svc.Spec.Ports[0].Port != AgentPort {
		t.Fatalf("expected service to expose AgentPort, got %d", svc.Spec.Ports[0].Port)
	}
}

func TestBuildConfigObjectDataRoundTrips(t *testing.T) {
	bundle := ConfigBundle{
		Provider:    "openrouter",
		Credential:  "sk-test",
		ProviderURL: ProviderURL("openrouter"),
		Model:       "moonshotai/kimi-k2",
		TokenLimit:  4096,
		Temperature: 0.7,
	}
	data, err := BuildConfigObjectData(bundle)
	if err != nil {
		t.Fatalf("BuildConfigObjectData: %v", err)
	}
	raw, ok := data["config.json"]
	if !ok {
		t.Fatalf("expected config.json key in ConfigMap data")
	}
	var got ConfigBundle
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("unmarshal config.json: %v", err)
	}
	if got.Model != bundle.Model || got.Credential != bundle.Credential {
		t.Fatalf("round-tripped bundle mismatch: %+v", got)
	}
}

func TestBuildPersonaObjectData(t *testing.T) {
	data := BuildPersonaObjectData("# Alex\n\nYou are Alex.")
	if data["PERSONA.md"] != "# Alex\n\nYou are Alex." {
		t.Fatalf("unexpected PERSONA.md contents: %q", data["PERSONA.md"])
	}
}

func TestProviderURLFallsBackToOpenrouter(t *testing.T) {
	if got := ProviderURL("some-unknown-provider"); got != ProviderURLs["openrouter"] {
		t.Fatalf("expected fallback to openrouter, got %q", got)
	}
	if got := ProviderURL("anthropic"); got != ProviderURLs["anthropic"] {
		t.Fatalf("expected anthropic endpoint, got %q", got)
	}
}
