package cluster

import (
	"encoding/json"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
)

// WorkloadParams is everything BuildWorkloadPod needs beyond the bundle/
// persona content itself, so the manifest builders stay pure functions of
// their inputs — no env/global lookups inside this package (spec §9 "render
// them as tagged records with explicit optional fields").
type WorkloadParams struct {
	Username           string
	Persona            string
	Image              string
	Namespace          string
	LogLevel           string
	GatewayURL         string
	SideChannelToken   string
	SideChannelAddress string
	UserDataClaim      string
	WorkspaceClaim     string
}

const (
	defaultUserDataClaim  = "seaclaw-user-data"
	defaultWorkspaceClaim = "seaclaw-shared-workspace"
)

// MarshalConfigBundle renders a ConfigBundle to its JSON wire form for the
// ConfigMap payload.
func MarshalConfigBundle(b ConfigBundle) (string, error) {
	data, err := json.MarshalIndent(&b, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// BuildConfigObjectData returns the ConfigMap data map for a tenant's
// configuration bundle (spec §3 "Configuration Bundle").
func BuildConfigObjectData(b ConfigBundle) (map[string]string, error) {
	payload, err := MarshalConfigBundle(b)
	if err != nil {
		return nil, fmt.Errorf("marshal config bundle: %w", err)
	}
	return map[string]string{"config.json": payload}, nil
}

// BuildPersonaObjectData returns the ConfigMap data map for a tenant's
// resolved persona document (spec §3 "Persona Document").
func BuildPersonaObjectData(personaText string) map[string]string {
	return map[string]string{"PERSONA.md": personaText}
}

// BuildWorkloadPod composes the Workload Specification (spec §3): one init
// step materializing the bundle+persona into the per-tenant subpath of a
// shared volume, one main container exposing the single agent port, resource
// floor/ceiling, and the declared environment. Grounded on
// agents/codex-monitor/spawn.go's buildDyadResources (tagged Deployment/PVC
// structs); this repo's workload is a bare Pod with "always restart" the way
// the original source's create_seaclaw_pod is (spec Open Question (a) keeps
// restart semantics as documented, not redesigned into a Deployment).
func BuildWorkloadPod(p WorkloadParams) *corev1.Pod {
	userDataClaim := p.UserDataClaim
	if userDataClaim == "" {
		userDataClaim = defaultUserDataClaim
	}
	workspaceClaim := p.WorkspaceClaim
	if workspaceClaim == "" {
		workspaceClaim = defaultWorkspaceClaim
	}

	name := WorkloadName(p.Username)
	configMapName := ConfigObjectName(p.Username)
	personaMapName := PersonaObjectName(p.Username)

	env := []corev1.EnvVar{
		{Name: "SEA_LOG_LEVEL", Value: envOr(p.LogLevel, "info")},
		{Name: "SEA_API_BIND_ALL", Value: "1"},
		{Name: "SEA_USERNAME", Value: p.Username},
		{Name: "SEA_GATEWAY_URL", Value: p.GatewayURL},
	}
	if p.SideChannelToken != "" {
		env = append(env, corev1.EnvVar{Name: "SEA_SIDE_CHANNEL_TOKEN", Value: p.SideChannelToken})
	}
	if p.SideChannelAddress != "" {
		env = append(env, corev1.EnvVar{Name: "SEA_SIDE_CHANNEL_ADDRESS", Value: p.SideChannelAddress})
	}

	labels := map[string]string{
		"app":     "seaclaw-instance",
		"user":    p.Username,
		"persona": p.Persona,
	}

	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: p.Namespace,
			Labels:    labels,
		},
		Spec: corev1.PodSpec{
			RestartPolicy: corev1.RestartPolicyAlways,
			InitContainers: []corev1.Container{
				{
					Name:  "init-config",
					Image: "busybox:1.36",
					Command: []string{"sh", "-c",
						"mkdir -p /userdata && cp /cfg/config.json /userdata/config.json && " +
							"cp /persona/PERSONA.md /userdata/PERSONA.md",
					},
					VolumeMounts: []corev1.VolumeMount{
						{Name: "config", MountPath: "/cfg", ReadOnly: true},
						{Name: "persona", MountPath: "/persona", ReadOnly: true},
						{Name: "user-data", MountPath: "/userdata", SubPath: p.Username},
					},
				},
			},
			Containers: []corev1.Container{
				{
					Name:            "seaclaw",
					Image:           p.Image,
					ImagePullPolicy: corev1.PullIfNotPresent,
					Env:             env,
					Ports: []corev1.ContainerPort{
						{ContainerPort: AgentPort, Name: "agent"},
					},
					Resources: corev1.ResourceRequirements{
						Requests: corev1.ResourceList{
							corev1.ResourceCPU:    resource.MustParse("50m"),
							corev1.ResourceMemory: resource.MustParse("32Mi"),
						},
						Limits: corev1.ResourceList{
							corev1.ResourceCPU:    resource.MustParse("500m"),
							corev1.ResourceMemory: resource.MustParse("128Mi"),
						},
					},
					VolumeMounts: []corev1.VolumeMount{
						{Name: "user-data", MountPath: "/userdata", SubPath: p.Username},
						{Name: "shared-workspace", MountPath: "/workspace"},
					},
				},
			},
			Volumes: []corev1.Volume{
				{
					Name: "config",
					VolumeSource: corev1.VolumeSource{
						ConfigMap: &corev1.ConfigMapVolumeSource{
							LocalObjectReference: corev1.LocalObjectReference{Name: configMapName},
						},
					},
				},
				{
					Name: "persona",
					VolumeSource: corev1.VolumeSource{
						ConfigMap: &corev1.ConfigMapVolumeSource{
							LocalObjectReference: corev1.LocalObjectReference{Name: personaMapName},
						},
					},
				},
				{
					Name: "user-data",
					VolumeSource: corev1.VolumeSource{
						PersistentVolumeClaim: &corev1.PersistentVolumeClaimVolumeSource{ClaimName: userDataClaim},
					},
				},
				{
					Name: "shared-workspace",
					VolumeSource: corev1.VolumeSource{
						PersistentVolumeClaim: &corev1.PersistentVolumeClaimVolumeSource{ClaimName: workspaceClaim},
					},
				},
			},
		},
	}
}

// BuildEndpointService composes the Endpoint Object (spec §3): name
// seaclaw-<username>-svc, selector matching the workload labels, exposing the
// agent port internally.
func BuildEndpointService(username, namespace string) *corev1.Service {
	return &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{
			Name:      EndpointName(username),
			Namespace: namespace,
			Labels: map[string]string{
				"app":  "seaclaw-instance",
				"user": username,
			},
		},
		Spec: corev1.ServiceSpec{
			Selector: map[string]string{
				"app":  "seaclaw-instance",
				"user": username,
			},
			Ports: []corev1.ServicePort{
				{Port: AgentPort, TargetPort: intstrFromInt(AgentPort), Name: "agent"},
			},
			Type: corev1.ServiceTypeClusterIP,
		},
	}
}

func envOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func intstrFromInt(v int) intstr.IntOrString {
	return intstr.FromInt(v)
}
