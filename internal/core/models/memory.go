package models

// NodeMemory is one row of the node-tier report.
type NodeMemory struct {
	NodeName    string  `json:"nodeName"`
	CapacityMiB float64 `json:"capacityMiB"`
	UsageMiB    int64   `json:"usageMiB"`
	Utilization float64 `json:"utilization"`
	HighUsage   bool    `json:"highUsage"`
}

// PodMemory is one row of the pod-tier and controller-tier reports.
type PodMemory struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	NodeName  string `json:"nodeName,omitempty"`
	UsageMiB  int64  `json:"usageMiB"`
}

// ControllerRef identifies the workload controller owning a pod.
type ControllerRef struct {
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
}

func (r ControllerRef) String() string {
	return r.Kind + " " + r.Namespace + "/" + r.Name
}
