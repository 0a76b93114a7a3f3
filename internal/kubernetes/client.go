package kubernetes

import (
	"fmt"
	"time"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	metricsclientset "k8s.io/metrics/pkg/client/clientset/versioned"
)

type Clients struct {
	Kubernetes kubernetes.Interface
	Metrics    metricsclientset.Interface
}

// NewClients builds the core and metrics clientsets against the currently
// configured cluster context. Kubeconfig resolution follows the standard
// loading rules (KUBECONFIG, ~/.kube/config) and falls back to in-cluster
// config so the tool also works when run from a pod.
func NewClients(kubeconfig string, timeout time.Duration) (*Clients, error) {
	config, err := buildConfig(kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load cluster config: %w", err)
	}

	config.Timeout = timeout

	k8sClient, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create k8s client: %w", err)
	}

	metricsClient, err := metricsclientset.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics client: %w", err)
	}

	return &Clients{
		Kubernetes: k8sClient,
		Metrics:    metricsClient,
	}, nil
}

func buildConfig(kubeconfig string) (*rest.Config, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfig != "" {
		rules.ExplicitPath = kubeconfig
	}

	loader := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, &clientcmd.ConfigOverrides{})
	if config, err := loader.ClientConfig(); err == nil {
		return config, nil
	}

	return rest.InClusterConfig()
}
