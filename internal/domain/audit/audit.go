// Package audit exposes the procurement slice of the platform audit trail.
// Entries are written by the security service; this module only reads them.
package audit

import (
	"context"
	"sort"
	"strings"
	"time"
)

// ModuleName is the module tag this service filters the platform trail by.
const ModuleName = "compras"

// Entry is one audit trail record.
type Entry struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Module    string    `json:"module"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Source is the boundary to the security service's audit endpoint.
type Source interface {
	// ListEntries retrieves the full platform audit trail.
	ListEntries(ctx context.Context) ([]*Entry, error)
}

// Service filters the platform audit trail down to procurement activity.
type Service struct {
	source Source
}

// NewService creates a new audit service.
func NewService(source Source) *Service {
	return &Service{source: source}
}

// List returns the procurement entries of the audit trail, newest first.
// The module match is case-insensitive because historical entries carry
// mixed-case tags.
func (s *Service) List(ctx context.Context) ([]*Entry, error) {
	all, err := s.source.ListEntries(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]*Entry, 0, len(all))
	for _, e := range all {
		if strings.EqualFold(e.Module, ModuleName) {
			entries = append(entries, e)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	return entries, nil
}
