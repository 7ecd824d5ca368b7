package formation

import (
	"context"
	"strings"
)

// Formation is a course in the catalog that students are granted access to
type Formation struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Repository defines the interface for formation catalog reads
type Repository interface {
	ListFormations(ctx context.Context) ([]*Formation, error)
}

// NormalizeName is the lookup key for a formation name
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
