package factory

import (
	"log/slog"

	"github.com/kubescope/memtop/internal/core"
	"github.com/kubescope/memtop/internal/core/services"
	"github.com/kubescope/memtop/internal/kubernetes"
)

func NewServices(clients *kubernetes.Clients, logger *slog.Logger) *core.Services {
	return &core.Services{
		Metrics:    services.NewMetricsService(clients.Metrics, logger),
		Controller: services.NewControllerService(clients.Kubernetes, logger),
	}
}
