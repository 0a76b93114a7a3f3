package services

import (
	"context"
	"fmt"
	"log/slog"

	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/client-go/kubernetes"

	"github.com/kubescope/memtop/internal/core"
	"github.com/kubescope/memtop/internal/core/models"
)

// controllerService implements the ControllerService interface.
type controllerService struct {
	k8sClient kubernetes.Interface
	logger    *slog.Logger
}

// NewControllerService creates a new ControllerService instance.
func NewControllerService(k8sClient kubernetes.Interface, logger *slog.Logger) core.ControllerService {
	return &controllerService{
		k8sClient: k8sClient,
		logger:    logger.With(slog.String("service", "controller")),
	}
}

// OwnerOf returns the pod's first owner reference, or nil for an unowned pod.
func (s *controllerService) OwnerOf(pod *v1.Pod) *models.ControllerRef {
	for _, owner := range pod.OwnerReferences {
		return &models.ControllerRef{
			Kind:      owner.Kind,
			Name:      owner.Name,
			Namespace: pod.Namespace,
		}
	}
	return nil
}

// PodsFor returns every pod managed by the given controller. Deployments
// are resolved through their backing ReplicaSet; a Deployment with no
// backing ReplicaSet yields an empty result rather than an error.
func (s *controllerService) PodsFor(ctx context.Context, ref models.ControllerRef) ([]v1.Pod, error) {
	switch ref.Kind {
	case "ReplicaSet", "StatefulSet", "DaemonSet":
		selector, err := s.controllerSelector(ctx, ref)
		if err != nil {
			return nil, err
		}
		return s.listPodsBySelector(ctx, ref.Namespace, selector)

	case "Deployment":
		replicaSets, err := s.k8sClient.AppsV1().ReplicaSets(ref.Namespace).List(ctx, metav1.ListOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to list replicasets in %s: %w", ref.Namespace, err)
		}

		for _, rs := range replicaSets.Items {
			for _, owner := range rs.OwnerReferences {
				if owner.Kind == "Deployment" && owner.Name == ref.Name {
					return s.PodsFor(ctx, models.ControllerRef{
						Kind:      "ReplicaSet",
						Name:      rs.Name,
						Namespace: ref.Namespace,
					})
				}
			}
		}

		// No backing ReplicaSet yet (or already gone). Empty, not an error.
		s.logger.Warn("no replicaset found for deployment",
			"deployment", ref.Name, "namespace", ref.Namespace)
		return nil, nil

	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedControllerKind, ref.Kind)
	}
}

// controllerSelector reads the controller object and joins its match
// labels into a comma-separated k=v selector (AND semantics).
func (s *controllerService) controllerSelector(ctx context.Context, ref models.ControllerRef) (string, error) {
	var matchLabels map[string]string

	switch ref.Kind {
	case "ReplicaSet":
		rs, err := s.k8sClient.AppsV1().ReplicaSets(ref.Namespace).Get(ctx, ref.Name, metav1.GetOptions{})
		if err != nil {
			return "", fmt.Errorf("failed to get replicaset %s/%s: %w", ref.Namespace, ref.Name, err)
		}
		matchLabels = rs.Spec.Selector.MatchLabels
	case "StatefulSet":
		sts, err := s.k8sClient.AppsV1().StatefulSets(ref.Namespace).Get(ctx, ref.Name, metav1.GetOptions{})
		if err != nil {
			return "", fmt.Errorf("failed to get statefulset %s/%s: %w", ref.Namespace, ref.Name, err)
		}
		matchLabels = sts.Spec.Selector.MatchLabels
	case "DaemonSet":
		ds, err := s.k8sClient.AppsV1().DaemonSets(ref.Namespace).Get(ctx, ref.Name, metav1.GetOptions{})
		if err != nil {
			return "", fmt.Errorf("failed to get daemonset %s/%s: %w", ref.Namespace, ref.Name, err)
		}
		matchLabels = ds.Spec.Selector.MatchLabels
	}

	return labels.Set(matchLabels).String(), nil
}

func (s *controllerService) listPodsBySelector(ctx context.Context, namespace, selector string) ([]v1.Pod, error) {
	pods, err := s.k8sClient.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: selector,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pods in %s: %w", namespace, err)
	}

	return pods.Items, nil
}
