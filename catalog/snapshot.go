// Package catalog - JSON snapshot loading
package catalog

import (
	"encoding/json"
	"os"

	"jewel-pricing/core/types"
	"jewel-pricing/internal/errors"
)

// snapshotFile is the on-disk shape of a catalog snapshot
type snapshotFile struct {
	Products []types.Product `json:"products"`
}

// LoadSnapshot reads a product snapshot from a JSON file. This is the
// file-backed stand-in for the external catalog fetch collaborator used
// by the CLI.
func LoadSnapshot(path string) ([]types.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeNotFound, err, "failed to read catalog snapshot %s", path)
	}

	var file snapshotFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Parsing("failed to parse catalog snapshot", err)
	}

	for i, p := range file.Products {
		if p.ID == "" {
			return nil, errors.Newf(errors.TypeParsing, "product at index %d has no id", i)
		}
	}
	return file.Products, nil
}
