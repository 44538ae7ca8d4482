// Package tracker persists the ingestion registry and answers duplicate
// questions for newly seen statements.
package tracker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rumor-ml/commons.systems/bankledger/internal/domain"
)

// CurrentVersion is the current registry file format version.
const CurrentVersion = 1

// Registry maps a source identifier (the input file's path) to the record of
// its ingestion. Loaded once per run, rewritten wholesale on every record.
type Registry struct {
	Version  int                               `json:"version"`
	Records  map[string]domain.IngestionRecord `json:"records"`
	Metadata RegistryMetadata                  `json:"metadata"`
}

// RegistryMetadata carries aggregate statistics about the registry.
type RegistryMetadata struct {
	LastUpdated  time.Time `json:"lastUpdated"`
	TotalRecords int       `json:"totalRecords"`
}

// Store owns the registry file location. It is the only component that
// reads or writes registry state; everything else receives a loaded
// *Registry explicitly.
type Store struct {
	path string
}

// NewStore creates a store for the given registry file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the registry file location.
func (s *Store) Path() string { return s.path }

// Load reads the registry from disk. A missing file yields an empty
// registry; a present but unreadable or version-mismatched file is an error
// so a corrupt registry is never silently replaced.
func (s *Store) Load() (*Registry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return newRegistry(), nil
		}
		return nil, fmt.Errorf("failed to read registry %s: %w", s.path, err)
	}

	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse registry %s: %w", s.path, err)
	}
	if reg.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported registry version %d (current: %d)", reg.Version, CurrentVersion)
	}
	if reg.Records == nil {
		reg.Records = make(map[string]domain.IngestionRecord)
	}
	return &reg, nil
}

// Record upserts the ingestion record for sourceID and persists the whole
// registry atomically. Only call after the output artifact was actually
// written; the registry must never reference an output that does not exist.
func (s *Store) Record(reg *Registry, sourceID string, meta *domain.StatementMetadata, outputPath string) error {
	reg.Records[sourceID] = domain.IngestionRecord{
		OutputPath:    outputPath,
		ProcessedAt:   time.Now(),
		PeriodEnd:     meta.PeriodEnd,
		AccountNumber: meta.AccountNumber,
		Currency:      meta.Currency,
		Fingerprint:   meta.Fingerprint,
	}
	return s.save(reg)
}

// save writes the registry wholesale with the atomic temp-file + rename
// pattern, so a failure mid-write leaves the previous state intact.
func (s *Store) save(reg *Registry) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create registry directory: %w", err)
	}

	reg.Metadata.LastUpdated = time.Now()
	reg.Metadata.TotalRecords = len(reg.Records)

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	tempFile := s.path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp registry: %w", err)
	}
	if err := os.Rename(tempFile, s.path); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to replace registry: %w", err)
	}
	return nil
}

func newRegistry() *Registry {
	return &Registry{
		Version: CurrentVersion,
		Records: make(map[string]domain.IngestionRecord),
	}
}

// Has reports whether sourceID itself was already ingested.
func (r *Registry) Has(sourceID string) bool {
	_, ok := r.Records[sourceID]
	return ok
}

// IsContentDuplicate reports whether any OTHER registered source carries the
// same content fingerprint: the same physical document ingested under a
// different name.
func (r *Registry) IsContentDuplicate(sourceID, fingerprint string) bool {
	for id, rec := range r.Records {
		if id != sourceID && rec.Fingerprint == fingerprint {
			return true
		}
	}
	return false
}

// IsPeriodDuplicate reports whether any registered record covers the same
// account and statement end date, independent of file identity.
func (r *Registry) IsPeriodDuplicate(periodEnd, accountNumber string) bool {
	for _, rec := range r.Records {
		if rec.PeriodEnd == periodEnd && rec.AccountNumber == accountNumber {
			return true
		}
	}
	return false
}
