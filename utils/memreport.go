package utils

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// MemReport is a hierarchical memory usage report for a component.
type MemReport struct {
	Name       string      `json:"name"`
	TotalBytes int         `json:"total_bytes"`
	Children   []MemReport `json:"children,omitempty"`
}

// JSON returns a JSON string representation of the MemReport.
func (r MemReport) JSON() string {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Sprintf(`{"error": "%s"}`, err.Error())
	}
	return string(b)
}

// String returns the report as an indented tree with human-readable sizes.
func (r MemReport) String() string {
	return r.indented(0)
}

func (r MemReport) indented(indent int) string {
	var sb strings.Builder
	r.buildString(&sb, indent)
	return sb.String()
}

func (r MemReport) buildString(sb *strings.Builder, indent int) {
	prefix := strings.Repeat("  ", indent)
	fmt.Fprintf(sb, "%s- %s: %s\n", prefix, r.Name, humanize.Bytes(uint64(r.TotalBytes)))
	for _, child := range r.Children {
		child.buildString(sb, indent+1)
	}
}
