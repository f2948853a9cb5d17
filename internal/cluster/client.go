package cluster

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/t4tarzan/seaclaw-platform/internal/domainerr"
)

// Client is the Cluster Client Facade. It is safe for concurrent use (spec §5
// "The Cluster Client Facade is thread-safe"); client-go's Clientset already
// is, so Client adds no locking of its own.
type Client struct {
	cs        kubernetes.Interface
	namespace string
}

// New bootstraps a Client the way the teacher's newKubeClient does: in-cluster
// config first, falling back to KUBECONFIG / ~/.kube/config. Returns an error
// only if neither path yields a usable config — the caller decides whether
// that is fatal (cmd/gateway treats it as fatal and exits).
func New(namespace string) (*Client, error) {
	cfg, err := rest.InClusterConfig()
	if err != nil {
		kubeconfig := strings.TrimSpace(os.Getenv("KUBECONFIG"))
		if kubeconfig == "" {
			if home, herr := os.UserHomeDir(); herr == nil && home != "" {
				kubeconfig = filepath.Join(home, ".kube", "config")
			}
		}
		cfg, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
		if err != nil {
			return nil, err
		}
	}
	cs, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{cs: cs, namespace: namespace}, nil
}

// NewWithClientset wraps an existing clientset (used by tests with a fake
// clientset from k8s.io/client-go/kubernetes/fake).
func NewWithClientset(cs kubernetes.Interface, namespace string) *Client {
	return &Client{cs: cs, namespace: namespace}
}

func normalize(err error) error {
	if err == nil {
		return nil
	}
	if apierrors.IsAlreadyExists(err) {
		return ErrAlreadyExists
	}
	if apierrors.IsNotFound(err) {
		return ErrNotFound
	}
	reason := string(apierrors.ReasonForError(err))
	if reason == "" {
		reason = err.Error()
	}
	return domainerr.Transient(err, "orchestrator: %s", reason)
}

// CreateConfigObject creates a ConfigMap holding the given data.
func (c *Client) CreateConfigObject(ctx context.Context, name string, data map[string]string) error {
	cm := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: c.namespace},
		Data:       data,
	}
	_, err := c.cs.CoreV1().ConfigMaps(c.namespace).Create(ctx, cm, metav1.CreateOptions{})
	return normalize(err)
}

// ReplaceConfigObject replaces an existing ConfigMap's data wholesale.
func (c *Client) ReplaceConfigObject(ctx context.Context, name string, data map[string]string) error {
	existing, err := c.cs.CoreV1().ConfigMaps(c.namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return normalize(err)
	}
	existing.Data = data
	_, err = c.cs.CoreV1().ConfigMaps(c.namespace).Update(ctx, existing, metav1.UpdateOptions{})
	return normalize(err)
}

// ReadConfigObject returns the ConfigMap's data.
func (c *Client) ReadConfigObject(ctx context.Context, name string) (map[string]string, error) {
	cm, err := c.cs.CoreV1().ConfigMaps(c.namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, normalize(err)
	}
	return cm.Data, nil
}

// DeleteConfigObject deletes a ConfigMap; ErrNotFound is returned (not
// swallowed) so callers can choose to tolerate it per their own idempotency
// policy (spec §4.4 "Delete").
func (c *Client) DeleteConfigObject(ctx context.Context, name string) error {
	err := c.cs.CoreV1().ConfigMaps(c.namespace).Delete(ctx, name, metav1.DeleteOptions{})
	return normalize(err)
}

// CreateWorkload submits the workload Pod.
func (c *Client) CreateWorkload(ctx context.Context, pod *corev1.Pod) error {
	_, err := c.cs.CoreV1().Pods(c.namespace).Create(ctx, pod, metav1.CreateOptions{})
	return normalize(err)
}

// ReplaceWorkload replaces the workload Pod wholesale (delete+recreate is the
// orchestrator's usual semantics for Pods; exposed for completeness per spec
// §4.1's verb list even though the Create/Patch/Delete flows in §4.4 never
// call it directly today).
func (c *Client) ReplaceWorkload(ctx context.Context, pod *corev1.Pod) error {
	if err := c.DeleteWorkload(ctx, pod.Name); err != nil && err != ErrNotFound {
		return err
	}
	return c.CreateWorkload(ctx, pod)
}

// DeleteWorkload deletes the workload Pod.
func (c *Client) DeleteWorkload(ctx context.Context, name string) error {
	err := c.cs.CoreV1().Pods(c.namespace).Delete(ctx, name, metav1.DeleteOptions{})
	return normalize(err)
}

// ReadWorkloadStatus reads the live status of the workload (spec §4.1,
// §4.4 "Status read"). Returns (nil, nil) if the workload does not exist.
func (c *Client) ReadWorkloadStatus(ctx context.Context, name string) (*WorkloadStatus, error) {
	pod, err := c.cs.CoreV1().Pods(c.namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if normalize(err) == ErrNotFound {
			return nil, nil
		}
		return nil, normalize(err)
	}
	allReady := len(pod.Status.ContainerStatuses) > 0
	for _, cs := range pod.Status.ContainerStatuses {
		if !cs.Ready {
			allReady = false
			break
		}
	}
	return &WorkloadStatus{
		Phase:    string(pod.Status.Phase),
		AllReady: allReady,
		Address:  pod.Status.PodIP,
	}, nil
}

// CreateEndpoint creates the Service fronting the workload.
func (c *Client) CreateEndpoint(ctx context.Context, svc *corev1.Service) error {
	_, err := c.cs.CoreV1().Services(c.namespace).Create(ctx, svc, metav1.CreateOptions{})
	return normalize(err)
}

// DeleteEndpoint deletes the Service.
func (c *Client) DeleteEndpoint(ctx context.Context, name string) error {
	err := c.cs.CoreV1().Services(c.namespace).Delete(ctx, name, metav1.DeleteOptions{})
	return normalize(err)
}
