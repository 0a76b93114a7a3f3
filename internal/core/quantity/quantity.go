// Package quantity converts Kubernetes memory quantity strings into MiB.
//
// The metrics API reports usage as strings like "6374M" or "652512Ki";
// node capacity is reported in Ki. Everything here normalizes to MiB so
// the drill-down can compare values directly. CPU quantities are out of
// scope.
package quantity

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kubescope/memtop/internal/core"
)

var quantityRe = regexp.MustCompile(`^(\d+)([a-zA-Z]+)?$`)

// Multipliers relative to MiB. A missing unit means M.
var units = map[string]float64{
	"Ki": 1.0 / 1024,
	"M":  1,
	"Mi": 1,
	"G":  1024,
	"Gi": 1024,
}

// Parse converts a memory quantity string into whole MiB, truncating any
// fraction ("1024Ki" -> 1). Unrecognized units and malformed input return
// ErrInvalidQuantity.
func Parse(value string) (int64, error) {
	match := quantityRe.FindStringSubmatch(value)
	if match == nil {
		return 0, fmt.Errorf("%w: %q", core.ErrInvalidQuantity, value)
	}

	number, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", core.ErrInvalidQuantity, value)
	}

	unit := match[2]
	if unit == "" {
		unit = "M"
	}

	multiplier, ok := units[unit]
	if !ok {
		return 0, fmt.Errorf("%w: unsupported unit in %q", core.ErrInvalidQuantity, value)
	}

	return int64(float64(number) * multiplier), nil
}

// ParseCapacity converts a node memory capacity string into MiB. The
// kubelet always reports capacity in Ki, so anything else is malformed
// input and aborts the run rather than being skipped.
func ParseCapacity(value string) (float64, error) {
	raw, ok := strings.CutSuffix(value, "Ki")
	if !ok {
		return 0, fmt.Errorf("%w: capacity %q is not in Ki", core.ErrInvalidQuantity, value)
	}

	number, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: capacity %q", core.ErrInvalidQuantity, value)
	}

	return float64(number) / 1024, nil
}
