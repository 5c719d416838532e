package utils

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

var statsMu sync.Mutex

// AppendStats appends one comma-separated line "name,v1,v2,..." to the stats file at path.
func AppendStats(path, name string, values ...int64) error {
	statsMu.Lock()
	defer statsMu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open stats log: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(name)
	for _, v := range values {
		fmt.Fprintf(&sb, ",%d", v)
	}
	if _, err := fmt.Fprintln(f, sb.String()); err != nil {
		f.Close()
		return fmt.Errorf("write stats log: %w", err)
	}
	return f.Close()
}
