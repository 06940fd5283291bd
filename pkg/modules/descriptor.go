// Package modules implements dependency module binding: seeding the
// checker's registries and symbol table with a dependency module's
// exported types and procedures, plus a concrete fetch/cache path for
// dependency module archives that live in a git repository.
package modules

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// SelfKey disambiguates the module currently being compiled from any
// dependency module when both are keyed into the same binding tables.
const SelfKey = "$self"

// Descriptor is a dependency module's identity and exported-symbol list:
// project namespace, unique name, and exported symbol list. It never
// carries type bodies or
// procedure signatures inline — those arrive as already-parsed AST
// through ModuleBindings, since this repo has no parser front end to
// produce them from the descriptor's own bytes.
type Descriptor struct {
	ProjectNamespace string
	UniqueName       string
	Exports          []string
}

// LoadDescriptor parses a module's API header from disk.
func LoadDescriptor(path string) (*Descriptor, error) {
	if path == "" {
		return nil, fmt.Errorf("modules: empty descriptor path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("modules: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var raw descriptorDisk
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("modules: parse %s: %w", abs, err)
	}

	d := raw.toDescriptor()
	d.normalize()
	return d, nil
}

// WriteDescriptor serialises a module's API header back to disk.
func WriteDescriptor(d *Descriptor, path string) error {
	if d == nil {
		return fmt.Errorf("modules: nil descriptor")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("modules: resolve %s: %w", path, err)
	}
	d.normalize()

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.toDisk()); err != nil {
		return fmt.Errorf("modules: marshal %s: %w", abs, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("modules: encoder close: %w", err)
	}
	return os.WriteFile(abs, buf.Bytes(), 0o644)
}

func (d *Descriptor) normalize() {
	if d == nil {
		return
	}
	d.ProjectNamespace = strings.TrimSpace(d.ProjectNamespace)
	d.UniqueName = strings.TrimSpace(d.UniqueName)
	exports := append([]string(nil), d.Exports...)
	sort.Strings(exports)
	d.Exports = exports
}

// QualifiedName is the descriptor's namespace-qualified identity, used as
// the key into the binder's dependency-module map.
func (d *Descriptor) QualifiedName() string {
	if d.ProjectNamespace == "" {
		return d.UniqueName
	}
	return d.ProjectNamespace + "/" + d.UniqueName
}

type descriptorDisk struct {
	ProjectNamespace string   `yaml:"project_namespace"`
	UniqueName       string   `yaml:"unique_name"`
	Exports          []string `yaml:"exports"`
}

func (d *Descriptor) toDisk() descriptorDisk {
	return descriptorDisk{
		ProjectNamespace: d.ProjectNamespace,
		UniqueName:       d.UniqueName,
		Exports:          append([]string(nil), d.Exports...),
	}
}

func (raw descriptorDisk) toDescriptor() *Descriptor {
	return &Descriptor{
		ProjectNamespace: strings.TrimSpace(raw.ProjectNamespace),
		UniqueName:       strings.TrimSpace(raw.UniqueName),
		Exports:          append([]string(nil), raw.Exports...),
	}
}
