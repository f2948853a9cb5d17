package cluster

import (
	"context"
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	k8sfake "k8s.io/client-go/kubernetes/fake"

	"github.com/t4tarzan/seaclaw-platform/internal/domainerr"
)

func newTestClient() *Client {
	cs := k8sfake.NewSimpleClientset()
	return NewWithClientset(cs, "seaclaw-platform")
}

func TestConfigObjectCreateReadReplaceDelete(t *testing.T) {
	c := newTestClient()
	ctx := context.Background()

	if err := c.CreateConfigObject(ctx, "seaclaw-config-alec", map[string]string{"config.json": "{}"}); err != nil {
		t.Fatalf("CreateConfigObject: %v", err)
	}
	data, err := c.ReadConfigObject(ctx, "seaclaw-config-alec")
	if err != nil {
		t.Fatalf("ReadConfigObject: %v", err)
	}
	if data["config.json"] != "{}" {
		t.Fatalf("unexpected data: %v", data)
	}

	if err := c.ReplaceConfigObject(ctx, "seaclaw-config-alec", map[string]string{"config.json": `{"llm_model":"x"}`}); err != nil {
		t.Fatalf("ReplaceConfigObject: %v", err)
	}
	data, err = c.ReadConfigObject(ctx, "seaclaw-config-alec")
	if err != nil {
		t.Fatalf("ReadConfigObject after replace: %v", err)
	}
	if data["config.json"] != `{"llm_model":"x"}` {
		t.Fatalf("replace did not take effect: %v", data)
	}

	if err := c.DeleteConfigObject(ctx, "seaclaw-config-alec"); err != nil {
		t.Fatalf("DeleteConfigObject: %v", err)
	}
	if _, err := c.ReadConfigObject(ctx, "seaclaw-config-alec"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestCreateConfigObjectAlreadyExists(t *testing.T) {
	c := newTestClient()
	ctx := context.Background()
	if err := c.CreateConfigObject(ctx, "seaclaw-config-alec", nil); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := c.CreateConfigObject(ctx, "seaclaw-config-alec", nil); err != ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists on duplicate create, got %v", err)
	}
}

func TestDeleteConfigObjectNotFound(t *testing.T) {
	c := newTestClient()
	if err := c.DeleteConfigObject(context.Background(), "ghost"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWorkloadLifecycle(t *testing.T) {
	c := newTestClient()
	ctx := context.Background()
	pod := BuildWorkloadPod(WorkloadParams{Username: "alec", Persona: "alex", Image: "img", Namespace: "seaclaw-platform"})

	if err := c.CreateWorkload(ctx, pod); err != nil {
		t.Fatalf("CreateWorkload: %v", err)
	}
	if err := c.CreateWorkload(ctx, pod); err != ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists on duplicate workload create, got %v", err)
	}
	if err := c.DeleteWorkload(ctx, pod.Name); err != nil {
		t.Fatalf("DeleteWorkload: %v", err)
	}
	if err := c.DeleteWorkload(ctx, pod.Name); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestReadWorkloadStatusMissingReturnsNilNil(t *testing.T) {
	c := newTestClient()
	status, err := c.ReadWorkloadStatus(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("expected no error for missing workload, got %v", err)
	}
	if status != nil {
		t.Fatalf("expected nil status for missing workload, got %+v", status)
	}
}

func TestReadWorkloadStatusDerivesReadiness(t *testing.T) {
	c := newTestClient()
	ctx := context.Background()
	pod := BuildWorkloadPod(WorkloadParams{Username: "alec", Persona: "alex", Image: "img", Namespace: "seaclaw-platform"})
	if err := c.CreateWorkload(ctx, pod); err != nil {
		t.Fatalf("CreateWorkload: %v", err)
	}

	cs := c.cs
	stored, err := cs.CoreV1().Pods("seaclaw-platform").Get(ctx, pod.Name, metav1.GetOptions{})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	stored.Status.Phase = corev1.PodRunning
	stored.Status.ContainerStatuses = []corev1.ContainerStatus{{Name: "seaclaw", Ready: true}}
	stored.Status.PodIP = "10.0.0.5"
	if _, err := cs.CoreV1().Pods("seaclaw-platform").UpdateStatus(ctx, stored, metav1.UpdateOptions{}); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	status, err := c.ReadWorkloadStatus(ctx, pod.Name)
	if err != nil {
		t.Fatalf("ReadWorkloadStatus: %v", err)
	}
	if status == nil || status.Phase != "Running" || !status.AllReady || status.Address != "10.0.0.5" {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestEndpointLifecycle(t *testing.T) {
	c := newTestClient()
	ctx := context.Background()
	svc := BuildEndpointService("alec", "seaclaw-platform")

	if err := c.CreateEndpoint(ctx, svc); err != nil {
		t.Fatalf("CreateEndpoint: %v", err)
	}
	if err := c.CreateEndpoint(ctx, svc); err != ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if err := c.DeleteEndpoint(ctx, svc.Name); err != nil {
		t.Fatalf("DeleteEndpoint: %v", err)
	}
	if err := c.DeleteEndpoint(ctx, svc.Name); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestNormalizeWrapsUnknownErrorsAsTransient(t *testing.T) {
	wrapped := normalize(context.DeadlineExceeded)
	de, ok := domainerr.As(wrapped)
	if !ok || de.Kind != domainerr.KindTransient {
		t.Fatalf("expected a transient domainerr.Error, got %v", wrapped)
	}
}

func TestNormalizeNilIsNil(t *testing.T) {
	if err := normalize(nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
