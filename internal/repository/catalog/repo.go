// Package catalog loads code descriptor records from per-code JSON
// configuration files.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/attorney-tools/codesearch/internal/domain"
)

const defaultDescriptorVersion = "1.0.0"

// Repo enumerates code descriptor files in a configuration directory.
// One file per code, named by its two-letter abbreviation (fa.json, pr.json).
type Repo struct {
	path   string
	logger *zap.Logger
}

// New creates a catalog repository over the given descriptor directory.
func New(path string, logger *zap.Logger) *Repo {
	return &Repo{path: path, logger: logger}
}

// Descriptors loads all configured code descriptors, sorted by code.
// Searchable is left unset; the catalog service derives it per listing.
// A single unreadable or malformed file is logged and skipped rather than
// failing the whole enumeration.
func (r *Repo) Descriptors() ([]domain.CodeDescriptor, error) {
	matches, err := filepath.Glob(filepath.Join(r.path, "??.json"))
	if err != nil {
		return nil, fmt.Errorf("glob descriptors in %s: %w", r.path, err)
	}

	descriptors := make([]domain.CodeDescriptor, 0, len(matches))
	for _, file := range matches {
		d, err := readDescriptor(file)
		if err != nil {
			r.logger.Warn("skipping code descriptor", zap.String("file", file), zap.Error(err))
			continue
		}
		descriptors = append(descriptors, d)
	}

	sort.Slice(descriptors, func(i, j int) bool {
		return descriptors[i].Code < descriptors[j].Code
	})
	return descriptors, nil
}

func readDescriptor(file string) (domain.CodeDescriptor, error) {
	data, err := os.ReadFile(filepath.Clean(file))
	if err != nil {
		return domain.CodeDescriptor{}, fmt.Errorf("read: %w", err)
	}

	var dto descriptorDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return domain.CodeDescriptor{}, fmt.Errorf("parse: %w", err)
	}
	if dto.CodeName == "" {
		return domain.CodeDescriptor{}, fmt.Errorf("missing code_name")
	}

	shortName := dto.CodeShortName
	if shortName == "" {
		shortName = domain.ShortCodeName(dto.CodeFullName)
	}
	version := dto.Version
	if version == "" {
		version = defaultDescriptorVersion
	}

	return domain.CodeDescriptor{
		Code:          strings.ToUpper(dto.CodeName),
		CodeName:      dto.CodeFullName,
		CodeShortName: shortName,
		Version:       version,
	}, nil
}
