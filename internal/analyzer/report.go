package analyzer

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/kubescope/memtop/internal/core/models"
)

func renderNodeTable(w io.Writer, rows []models.NodeMemory) {
	fmt.Fprintln(w, "\nKubernetes Node Memory Utilization")

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Node Name", "Capacity (Mi)", "Usage (Mi)", "Utilization (%)", "Status"})

	for _, row := range rows {
		status := "OK"
		if row.HighUsage {
			status = "High Usage"
		}
		table.Append([]string{
			row.NodeName,
			strconv.FormatInt(int64(math.Ceil(row.CapacityMiB)), 10),
			strconv.FormatInt(row.UsageMiB, 10),
			fmt.Sprintf("%.2f", row.Utilization),
			status,
		})
	}

	table.Render()
}

func renderPodTable(w io.Writer, nodeName string, rows []models.PodMemory) {
	fmt.Fprintf(w, "\nPods Memory Utilization on Node: %s\n", nodeName)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Pod Name", "Namespace", "Memory Usage (Mi)"})

	for _, row := range rows {
		table.Append([]string{
			row.Name,
			row.Namespace,
			strconv.FormatInt(row.UsageMiB, 10),
		})
	}

	table.Render()
}

func renderControllerTable(w io.Writer, ref models.ControllerRef, rows []models.PodMemory) {
	fmt.Fprintf(w, "\nMemory Utilization for %s %s\n", ref.Kind, ref.Name)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Pod Name", "Node Name", "Memory Usage (Mi)"})

	for _, row := range rows {
		table.Append([]string{
			row.Name,
			row.NodeName,
			strconv.FormatInt(row.UsageMiB, 10),
		})
	}

	table.Render()
}
