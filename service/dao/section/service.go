// Package section loads section configuration documents. A document maps
// section names to their settings:
//
//	lint:
//	  files: "src/**/*.go"
//	  jobs: 4
//	  min_severity: WARNING
package section

import (
	"context"
	"fmt"
	"sort"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	msection "github.com/ursalint/ursa/model/section"
)

// Service loads sections from YAML documents.
type Service struct {
	fs afs.Service
}

// New creates a section DAO over the default abstract file system.
func New() *Service {
	return &Service{fs: afs.New()}
}

// Load reads and decodes the section document at URL. Sections are returned
// sorted by name.
func (s *Service) Load(ctx context.Context, URL string) ([]*msection.Section, error) {
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load sections from %s: %w", URL, err)
	}
	sections, err := s.DecodeYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sections from %s: %w", URL, err)
	}
	return sections, nil
}

// DecodeYAML decodes a section document.
func (s *Service) DecodeYAML(encoded []byte) ([]*msection.Section, error) {
	var document map[string]map[string]interface{}
	if err := yaml.Unmarshal(encoded, &document); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(document))
	for name := range document {
		names = append(names, name)
	}
	sort.Strings(names)

	sections := make([]*msection.Section, 0, len(names))
	for _, name := range names {
		sec := msection.New(name)
		for key, value := range document[name] {
			sec.Set(key, value)
		}
		sections = append(sections, sec)
	}
	return sections, nil
}
