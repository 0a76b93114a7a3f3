package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	v1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/metrics/pkg/apis/metrics/v1beta1"
	metricsfake "k8s.io/metrics/pkg/client/clientset/versioned/fake"

	"github.com/kubescope/memtop/internal/core"
)

func TestMetricsService_NodeMemory(t *testing.T) {
	nodeMetrics := &v1beta1.NodeMetrics{
		ObjectMeta: metav1.ObjectMeta{
			Name: "test-node",
		},
		Usage: v1.ResourceList{
			v1.ResourceCPU:    resource.MustParse("250m"),
			v1.ResourceMemory: resource.MustParse("801Mi"),
		},
	}

	fakeMetrics := metricsfake.NewSimpleClientset(nodeMetrics)

	svc := NewMetricsService(fakeMetrics, slog.Default())

	usage, err := svc.NodeMemory(context.Background(), "test-node")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if usage != 801 {
		t.Errorf("expected 801 MiB, got %d", usage)
	}

	// Missing metrics object surfaces as an error, never a zero fill.
	if _, err := svc.NodeMemory(context.Background(), "non-existent"); err == nil {
		t.Error("expected error for node without metrics")
	}
}

func TestMetricsService_NodeMemory_NilClient(t *testing.T) {
	svc := NewMetricsService(nil, slog.Default())

	_, err := svc.NodeMemory(context.Background(), "test-node")
	if !errors.Is(err, core.ErrMetricsNotAvailable) {
		t.Errorf("expected ErrMetricsNotAvailable, got %v", err)
	}
}

func TestMetricsService_NodeMemory_NoMemoryField(t *testing.T) {
	nodeMetrics := &v1beta1.NodeMetrics{
		ObjectMeta: metav1.ObjectMeta{
			Name: "test-node",
		},
		Usage: v1.ResourceList{
			v1.ResourceCPU: resource.MustParse("250m"),
		},
	}

	svc := NewMetricsService(metricsfake.NewSimpleClientset(nodeMetrics), slog.Default())

	if _, err := svc.NodeMemory(context.Background(), "test-node"); err == nil {
		t.Error("expected error for metrics without a memory field")
	}
}

func TestMetricsService_PodMemory(t *testing.T) {
	podMetrics := &v1beta1.PodMetrics{
		ObjectMeta: metav1.ObjectMeta{
			Name:      "test-pod",
			Namespace: "default",
		},
		Containers: []v1beta1.ContainerMetrics{
			{
				Name: "app",
				Usage: v1.ResourceList{
					v1.ResourceMemory: resource.MustParse("100M"),
				},
			},
			{
				Name: "sidecar",
				Usage: v1.ResourceList{
					v1.ResourceMemory: resource.MustParse("200M"),
				},
			},
		},
	}

	svc := NewMetricsService(metricsfake.NewSimpleClientset(podMetrics), slog.Default())

	usage, err := svc.PodMemory(context.Background(), "default", "test-pod")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if usage != 300 {
		t.Errorf("expected container usages to sum to 300 MiB, got %d", usage)
	}
}

func TestMetricsService_PodMemory_Malformed(t *testing.T) {
	tests := []struct {
		name       string
		podMetrics *v1beta1.PodMetrics
	}{
		{
			name: "no containers",
			podMetrics: &v1beta1.PodMetrics{
				ObjectMeta: metav1.ObjectMeta{Name: "empty-pod", Namespace: "default"},
			},
		},
		{
			name: "container without memory",
			podMetrics: &v1beta1.PodMetrics{
				ObjectMeta: metav1.ObjectMeta{Name: "empty-pod", Namespace: "default"},
				Containers: []v1beta1.ContainerMetrics{
					{
						Name: "app",
						Usage: v1.ResourceList{
							v1.ResourceCPU: resource.MustParse("100m"),
						},
					},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewMetricsService(metricsfake.NewSimpleClientset(tt.podMetrics), slog.Default())

			if _, err := svc.PodMemory(context.Background(), "default", "empty-pod"); err == nil {
				t.Error("expected error for malformed pod metrics")
			}
		})
	}
}
