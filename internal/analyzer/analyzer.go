// Package analyzer drives the three-tier memory drill-down: node
// utilization, per-node pod usage on the hot nodes, and replica usage of
// the controller owning the heaviest pod.
package analyzer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"
	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/kubescope/memtop/internal/core"
	"github.com/kubescope/memtop/internal/core/models"
	"github.com/kubescope/memtop/internal/core/quantity"
)

type Analyzer struct {
	k8sClient kubernetes.Interface
	services  *core.Services
	threshold float64
	logger    *slog.Logger

	out         io.Writer
	progressOut io.Writer
}

func New(k8sClient kubernetes.Interface, services *core.Services, threshold float64,
	logger *slog.Logger, out, progressOut io.Writer) *Analyzer {
	return &Analyzer{
		k8sClient:   k8sClient,
		services:    services,
		threshold:   threshold,
		logger:      logger,
		out:         out,
		progressOut: progressOut,
	}
}

// Run performs the full drill-down. Per-entity metric failures are logged
// and skipped; listing failures and malformed capacity strings abort the
// run.
func (a *Analyzer) Run(ctx context.Context) error {
	highUsageNodes, err := a.analyzeNodes(ctx)
	if err != nil {
		return err
	}

	for _, nodeName := range highUsageNodes {
		topPod, err := a.analyzePodsOnNode(ctx, nodeName)
		if err != nil {
			return err
		}
		if topPod == nil {
			continue
		}

		ref := a.services.Controller.OwnerOf(topPod)
		if ref == nil {
			continue
		}

		if err := a.analyzeController(ctx, *ref); err != nil {
			a.logger.Warn("controller analysis failed",
				"controller", ref.String(), "error", err)
		}
	}

	return nil
}

// analyzeNodes reports utilization for every node and returns the names of
// the high-usage ones in listing order.
func (a *Analyzer) analyzeNodes(ctx context.Context) ([]string, error) {
	nodes, err := a.k8sClient.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}

	bar := a.newProgress(len(nodes.Items), "Analyzing node memory utilization")

	var rows []models.NodeMemory
	var highUsage []string

	for _, node := range nodes.Items {
		_ = bar.Add(1)

		memCapacity := node.Status.Capacity[v1.ResourceMemory]
		capacity, err := quantity.ParseCapacity(memCapacity.String())
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", node.Name, err)
		}

		usage, err := a.services.Metrics.NodeMemory(ctx, node.Name)
		if err != nil {
			a.logger.Warn("skipping node without usable metrics",
				"node", node.Name, "error", err)
			continue
		}

		utilization := float64(usage) / capacity * 100
		high := utilization > a.threshold

		rows = append(rows, models.NodeMemory{
			NodeName:    node.Name,
			CapacityMiB: capacity,
			UsageMiB:    usage,
			Utilization: utilization,
			HighUsage:   high,
		})

		if high {
			highUsage = append(highUsage, node.Name)
		}
	}

	_ = bar.Finish()
	renderNodeTable(a.out, rows)

	return highUsage, nil
}

// analyzePodsOnNode reports usage for every pod scheduled on the node and
// returns the heaviest one. Strict greater-than keeps the first seen on
// ties, and pods without metrics are never selected.
func (a *Analyzer) analyzePodsOnNode(ctx context.Context, nodeName string) (*v1.Pod, error) {
	pods, err := a.k8sClient.CoreV1().Pods(metav1.NamespaceAll).List(ctx, metav1.ListOptions{
		FieldSelector: "spec.nodeName=" + nodeName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pods on node %s: %w", nodeName, err)
	}

	bar := a.newProgress(len(pods.Items), "Analyzing pods on "+nodeName)

	var rows []models.PodMemory
	var topPod *v1.Pod
	var topUsage int64

	for i := range pods.Items {
		_ = bar.Add(1)
		pod := &pods.Items[i]

		usage, err := a.services.Metrics.PodMemory(ctx, pod.Namespace, pod.Name)
		if err != nil {
			a.logger.Warn("skipping pod without usable metrics",
				"pod", pod.Namespace+"/"+pod.Name, "error", err)
			continue
		}

		if usage > topUsage {
			topUsage = usage
			topPod = pod
		}

		rows = append(rows, models.PodMemory{
			Name:      pod.Name,
			Namespace: pod.Namespace,
			UsageMiB:  usage,
		})
	}

	_ = bar.Finish()
	renderPodTable(a.out, nodeName, rows)

	return topPod, nil
}

// analyzeController reports usage across every replica of the controller.
func (a *Analyzer) analyzeController(ctx context.Context, ref models.ControllerRef) error {
	pods, err := a.services.Controller.PodsFor(ctx, ref)
	if err != nil {
		return err
	}

	bar := a.newProgress(len(pods), "Analyzing pods for "+ref.String())

	var rows []models.PodMemory

	for i := range pods {
		_ = bar.Add(1)
		pod := &pods[i]

		usage, err := a.services.Metrics.PodMemory(ctx, pod.Namespace, pod.Name)
		if err != nil {
			a.logger.Warn("skipping pod without usable metrics",
				"pod", pod.Namespace+"/"+pod.Name, "error", err)
			continue
		}

		rows = append(rows, models.PodMemory{
			Name:      pod.Name,
			Namespace: pod.Namespace,
			NodeName:  pod.Spec.NodeName,
			UsageMiB:  usage,
		})
	}

	_ = bar.Finish()
	renderControllerTable(a.out, ref, rows)

	return nil
}

func (a *Analyzer) newProgress(length int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(length,
		progressbar.OptionSetWriter(a.progressOut),
		progressbar.OptionSetDescription(description),
		progressbar.OptionClearOnFinish(),
	)
}
