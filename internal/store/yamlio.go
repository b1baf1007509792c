package store

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// archive is the on-disk shape of an exported plan collection.
type archive struct {
	Plans []Plan `yaml:"plans"`
}

// ExportYAML serializes every stored plan into one YAML document, suitable
// for backup or transfer to another repository.
func ExportYAML(repo Repository) ([]byte, error) {
	plans, err := repo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list plans for export: %w", err)
	}

	data, err := yaml.Marshal(archive{Plans: plans})
	if err != nil {
		return nil, fmt.Errorf("failed to encode plan archive: %w", err)
	}
	return data, nil
}

// ImportYAML loads plans from a previously exported document into the
// repository. Existing IDs are updated in place; unknown IDs are created
// with their original identifiers so re-imports stay idempotent. Returns
// the number of plans imported.
func ImportYAML(repo Repository, data []byte) (int, error) {
	var a archive
	if err := yaml.Unmarshal(data, &a); err != nil {
		return 0, fmt.Errorf("failed to decode plan archive: %w", err)
	}

	for i, p := range a.Plans {
		var err error
		if p.ID != "" {
			if _, getErr := repo.Get(p.ID); getErr == nil {
				_, err = repo.Update(p)
			} else {
				_, err = repo.Create(p)
			}
		} else {
			_, err = repo.Create(p)
		}
		if err != nil {
			return i, fmt.Errorf("failed to import plan %q: %w", p.Name, err)
		}
	}
	return len(a.Plans), nil
}
