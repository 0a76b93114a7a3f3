package core

import (
	"context"

	v1 "k8s.io/api/core/v1"

	"github.com/kubescope/memtop/internal/core/models"
)

type MetricsService interface {
	// NodeMemory returns the current memory usage of a node in MiB.
	NodeMemory(ctx context.Context, nodeName string) (int64, error)

	// PodMemory returns the summed memory usage of all containers of a
	// pod in MiB.
	PodMemory(ctx context.Context, namespace, name string) (int64, error)
}

type ControllerService interface {
	// OwnerOf returns the pod's first owner reference, or nil for an
	// unowned pod.
	OwnerOf(pod *v1.Pod) *models.ControllerRef

	// PodsFor returns every pod managed by the given controller,
	// resolving the Deployment -> ReplicaSet indirection.
	PodsFor(ctx context.Context, ref models.ControllerRef) ([]v1.Pod, error)
}

type Services struct {
	Metrics    MetricsService
	Controller ControllerService
}
