package profile

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/lowkey/internal/model"
)

// Document is the YAML export layout.
type Document struct {
	ExportedAt time.Time       `yaml:"exported_at"`
	Profiles   []model.Profile `yaml:"profiles"`
}

// Export writes a single profile as YAML.
func Export(w io.Writer, p model.Profile) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	return nil
}

// ExportAll writes every profile in one YAML document stamped with at.
func ExportAll(w io.Writer, profiles []model.Profile, at time.Time) error {
	doc := Document{ExportedAt: at.UTC(), Profiles: profiles}
	if doc.Profiles == nil {
		doc.Profiles = []model.Profile{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode profiles: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode profiles: %w", err)
	}
	return nil
}

// ReadDocument decodes a document written by ExportAll.
func ReadDocument(r io.Reader) (Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("failed to decode profiles: %w", err)
	}
	return doc, nil
}
