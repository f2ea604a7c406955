// Package project loads flare.toml manifests: the per-project metadata
// the driver needs to name a module and pick its export function.
package project

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ManifestFile is the conventional manifest file name.
const ManifestFile = "flare.toml"

// DefaultEntry is the export name assumed when [package].entry is absent.
const DefaultEntry = "main"

var (
	// ErrPackageSectionMissing indicates that [package] is missing in a manifest.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is missing in a manifest.
	ErrPackageNameMissing = errors.New("missing [package].name")
)

// Manifest describes a module's own flare.toml [package] section.
type Manifest struct {
	Name  string
	Entry string
}

type manifestFile struct {
	Package struct {
		Name  string `toml:"name"`
		Entry string `toml:"entry"`
	} `toml:"package"`
}

// Load parses a flare.toml manifest at path.
func Load(path string) (*Manifest, error) {
	var raw manifestFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	if raw.Package.Name == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}
	return &Manifest{Name: raw.Package.Name, Entry: raw.Package.Entry}, nil
}

// EntryName returns the configured export name, falling back to
// DefaultEntry.
func (m *Manifest) EntryName() string {
	if m.Entry == "" {
		return DefaultEntry
	}
	return m.Entry
}

// Write creates a manifest file at path. It refuses to overwrite an
// existing file.
func Write(path, name, entry string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	content := fmt.Sprintf("[package]\nname = %q\nentry = %q\n", name, entry)
	return os.WriteFile(path, []byte(content), 0o644)
}
