package definition

import (
	"fmt"
	"strings"
)

// SyncMode controls how a declared subtree is reconciled.
type SyncMode string

const (
	// SyncModeFull creates and updates declared resources and deletes
	// undeclared siblings.
	SyncModeFull SyncMode = "FULL"
	// SyncModeIgnore skips the node entirely and never deletes siblings.
	SyncModeIgnore SyncMode = "IGNORE"
)

// ParseSyncMode parses a sync mode case-insensitively. An empty string is FULL.
func ParseSyncMode(s string) (SyncMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(SyncModeFull):
		return SyncModeFull, nil
	case string(SyncModeIgnore):
		return SyncModeIgnore, nil
	default:
		return "", fmt.Errorf("unknown sync mode %q (expected FULL or IGNORE)", s)
	}
}

// IsFull reports whether undeclared siblings are deleted.
func (m SyncMode) IsFull() bool {
	return m == SyncModeFull || m == ""
}

// IsIgnore reports whether the node is skipped.
func (m SyncMode) IsIgnore() bool {
	return m == SyncModeIgnore
}

func (m SyncMode) String() string {
	if m == "" {
		return string(SyncModeFull)
	}
	return string(m)
}
