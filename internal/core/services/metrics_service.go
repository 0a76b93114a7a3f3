package services

import (
	"context"
	"fmt"
	"log/slog"

	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	metricsclientset "k8s.io/metrics/pkg/client/clientset/versioned"

	"github.com/kubescope/memtop/internal/core"
	"github.com/kubescope/memtop/internal/core/quantity"
)

// metricsService implements the MetricsService interface on top of the
// metrics.k8s.io/v1beta1 clientset.
type metricsService struct {
	metricsClient metricsclientset.Interface
	logger        *slog.Logger
}

// NewMetricsService creates a new MetricsService instance.
func NewMetricsService(metricsClient metricsclientset.Interface, logger *slog.Logger) core.MetricsService {
	return &metricsService{
		metricsClient: metricsClient,
		logger:        logger.With(slog.String("service", "metrics")),
	}
}

// NodeMemory returns the current memory usage of a node in MiB.
func (s *metricsService) NodeMemory(ctx context.Context, nodeName string) (int64, error) {
	if s.metricsClient == nil {
		return 0, core.ErrMetricsNotAvailable
	}

	nodeMetrics, err := s.metricsClient.MetricsV1beta1().NodeMetricses().Get(ctx, nodeName, metav1.GetOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to get metrics for node %s: %w", nodeName, err)
	}

	usage, ok := nodeMetrics.Usage[v1.ResourceMemory]
	if !ok {
		return 0, fmt.Errorf("metrics for node %s carry no memory usage", nodeName)
	}

	return quantity.Parse(usage.String())
}

// PodMemory returns the summed memory usage of all containers of a pod in MiB.
func (s *metricsService) PodMemory(ctx context.Context, namespace, name string) (int64, error) {
	if s.metricsClient == nil {
		return 0, core.ErrMetricsNotAvailable
	}

	podMetrics, err := s.metricsClient.MetricsV1beta1().PodMetricses(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to get metrics for pod %s/%s: %w", namespace, name, err)
	}

	if len(podMetrics.Containers) == 0 {
		return 0, fmt.Errorf("metrics for pod %s/%s carry no containers", namespace, name)
	}

	var total int64
	for _, container := range podMetrics.Containers {
		usage, ok := container.Usage[v1.ResourceMemory]
		if !ok {
			return 0, fmt.Errorf("metrics for pod %s/%s container %s carry no memory usage",
				namespace, name, container.Name)
		}

		mib, err := quantity.Parse(usage.String())
		if err != nil {
			return 0, err
		}
		total += mib
	}

	return total, nil
}
