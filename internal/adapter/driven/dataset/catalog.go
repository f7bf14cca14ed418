package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cbitosc/verify25/internal/domain/model"
	"github.com/cbitosc/verify25/internal/domain/port/driven"
)

// ManifestFileName is the optional per-event manifest.
const ManifestFileName = "event.yaml"

// Compile-time interface satisfaction check.
var _ driven.EventCatalog = (*FSCatalog)(nil)

// manifest is the on-disk shape of event.yaml.
type manifest struct {
	Title             string `yaml:"title"`
	Description       string `yaml:"description"`
	Layout            string `yaml:"layout"`
	VerificationEvent string `yaml:"verification_event"`
}

// FSCatalog discovers events as directories of fsys that hold a dataset or a
// manifest, plus any explicitly configured names. Event metadata comes from
// <event>/event.yaml; events without one get a single-certificate layout.
type FSCatalog struct {
	fsys  fs.FS
	extra []string
}

// NewFSCatalog creates a catalog over fsys. extra names are served even when
// no local directory exists for them, e.g. when datasets come from GitHub.
func NewFSCatalog(fsys fs.FS, extra []string) *FSCatalog {
	return &FSCatalog{fsys: fsys, extra: extra}
}

// List returns all known events sorted by name.
func (c *FSCatalog) List(ctx context.Context) ([]model.Event, error) {
	names, err := c.names()
	if err != nil {
		return nil, err
	}

	events := make([]model.Event, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		event, err := c.load(name)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// Get resolves name case-insensitively, so /hfestp/ serves hfestP.
func (c *FSCatalog) Get(_ context.Context, name string) (model.Event, error) {
	names, err := c.names()
	if err != nil {
		return model.Event{}, err
	}

	for _, candidate := range names {
		if candidate == name {
			return c.load(candidate)
		}
	}
	for _, candidate := range names {
		if strings.EqualFold(candidate, name) {
			return c.load(candidate)
		}
	}
	return model.Event{}, fmt.Errorf("%w: %s", model.ErrEventNotFound, name)
}

func (c *FSCatalog) names() ([]string, error) {
	seen := make(map[string]struct{})
	var names []string
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	for _, name := range c.extra {
		if name = strings.TrimSpace(name); name != "" {
			add(name)
		}
	}

	entries, err := fs.ReadDir(c.fsys, ".")
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("list event directories: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if c.exists(path.Join(entry.Name(), DataFileName)) || c.exists(path.Join(entry.Name(), ManifestFileName)) {
			add(entry.Name())
		}
	}

	sort.Strings(names)
	return names, nil
}

func (c *FSCatalog) exists(name string) bool {
	_, err := fs.Stat(c.fsys, name)
	return err == nil
}

func (c *FSCatalog) load(name string) (model.Event, error) {
	event := model.Event{
		Name:   name,
		Title:  name,
		Layout: model.LayoutSingle,
	}

	data, err := fs.ReadFile(c.fsys, path.Join(name, ManifestFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return event, nil
	}
	if err != nil {
		return model.Event{}, fmt.Errorf("read manifest for %s: %w", name, err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return model.Event{}, fmt.Errorf("parse manifest for %s: %w", name, err)
	}

	if m.Title != "" {
		event.Title = m.Title
	}
	event.Description = m.Description
	event.VerificationEvent = m.VerificationEvent

	switch model.Layout(m.Layout) {
	case "", model.LayoutSingle:
	case model.LayoutPositions:
		event.Layout = model.LayoutPositions
	default:
		return model.Event{}, fmt.Errorf("manifest for %s has invalid layout %q", name, m.Layout)
	}

	return event, nil
}
