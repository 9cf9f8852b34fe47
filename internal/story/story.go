// Package story loads a playable story: a title, a starting cast and the
// scene catalog they talk through.
package story

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/datesim/internal/cast"
	"github.com/vovakirdan/datesim/internal/dialogue"
	"github.com/vovakirdan/datesim/internal/ledger"
	"github.com/vovakirdan/datesim/internal/scene"
)

// Story is a loaded, validated story. It is immutable and may be shared by
// any number of play sessions.
type Story struct {
	ID      string
	Title   string
	Cast    []cast.Entry
	Catalog *scene.Catalog
}

type document struct {
	ID     string         `json:"id" yaml:"id"`
	Title  string         `json:"title" yaml:"title"`
	Cast   []castRecord   `json:"cast,omitempty" yaml:"cast,omitempty"`
	Scenes []scene.Record `json:"scenes" yaml:"scenes"`
}

type castRecord struct {
	Character string `json:"character" yaml:"character"`
	Scene     string `json:"scene,omitempty" yaml:"scene,omitempty"`
}

// Load reads a story file. The format is picked from the extension.
func Load(path string) (*Story, error) {
	format, err := scene.FormatFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("story: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("story: read: %w", err)
	}
	return Parse(data, format, path)
}

// Parse decodes a story document. A bare list of scenes is accepted too;
// its id comes from the source name and its cast from the scene speakers.
func Parse(data []byte, format scene.Format, source string) (*Story, error) {
	var doc document
	bare, err := isSceneList(data, format)
	if err != nil {
		return nil, &scene.ParseError{Source: source, Index: -1, Msg: "malformed document", Err: err}
	}
	if bare {
		if err := scene.Decode(data, format, &doc.Scenes); err != nil {
			return nil, &scene.ParseError{Source: source, Index: -1, Msg: "malformed document", Err: err}
		}
	} else if err := scene.Decode(data, format, &doc); err != nil {
		return nil, &scene.ParseError{Source: source, Index: -1, Msg: "malformed document", Err: err}
	}

	if doc.ID == "" {
		doc.ID = idFromSource(source)
	}
	if doc.Title == "" {
		doc.Title = doc.ID
	}
	return build(doc, source)
}

// isSceneList reports whether the top-level node is a sequence.
func isSceneList(data []byte, format scene.Format) (bool, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return false, nil
	}
	if format == scene.FormatJSON {
		return trimmed[0] == '[', nil
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return false, err
	}
	return len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode, nil
}

func idFromSource(source string) string {
	base := filepath.Base(source)
	id := strings.TrimSuffix(base, filepath.Ext(base))
	if id == "" || id == "." {
		return "story"
	}
	return id
}

func build(doc document, source string) (*Story, error) {
	scenes, err := scene.FromRecords(source, doc.Scenes)
	if err != nil {
		return nil, err
	}
	catalog, err := scene.New(scenes)
	if err != nil {
		var pe *scene.ParseError
		if errors.As(err, &pe) {
			pe.Source = source
		}
		return nil, err
	}

	s := &Story{
		ID:      doc.ID,
		Title:   doc.Title,
		Catalog: catalog,
	}
	if len(doc.Cast) == 0 {
		s.Cast = deriveCast(catalog)
		return s, nil
	}

	seen := make(map[cast.Kind]bool, len(doc.Cast))
	for i, rec := range doc.Cast {
		kind, err := cast.ParseKind(rec.Character)
		if err != nil {
			return nil, fmt.Errorf("story: %s: cast[%d]: %w", source, i, err)
		}
		if seen[kind] {
			return nil, fmt.Errorf("story: %s: cast[%d]: %s listed twice", source, i, kind)
		}
		seen[kind] = true

		start := strings.TrimSpace(rec.Scene)
		if start == "" {
			first, ok := firstSceneOf(catalog, kind)
			if !ok {
				return nil, fmt.Errorf("story: %s: cast[%d]: no scene is spoken by %s", source, i, kind)
			}
			start = first
		} else if !catalog.Has(start) {
			return nil, &scene.LookupError{Scene: kind.String(), Field: "cast", Ref: start}
		}
		s.Cast = append(s.Cast, cast.Entry{Character: kind, Scene: start})
	}
	return s, nil
}

// deriveCast lists every distinct speaker in order of first appearance,
// each starting at their first scene.
func deriveCast(c *scene.Catalog) []cast.Entry {
	var entries []cast.Entry
	seen := make(map[cast.Kind]bool)
	for _, s := range c.Scenes() {
		if s.Speaker == nil || seen[*s.Speaker] {
			continue
		}
		seen[*s.Speaker] = true
		entries = append(entries, cast.Entry{Character: *s.Speaker, Scene: s.ID})
	}
	return entries
}

func firstSceneOf(c *scene.Catalog, k cast.Kind) (string, bool) {
	for _, s := range c.Scenes() {
		if s.Speaker != nil && *s.Speaker == k {
			return s.ID, true
		}
	}
	return "", false
}

// NewRegistry seeds a fresh registry from the story cast.
func (s *Story) NewRegistry() *cast.Registry {
	return cast.NewRegistry(s.Cast)
}

// NewMachine creates a fresh play session over the story.
func (s *Story) NewMachine() *dialogue.Machine {
	return dialogue.NewMachine(s.Catalog, s.NewRegistry(), ledger.New())
}

// CheckStatuses verifies that every status points at a scene in the catalog.
func (s *Story) CheckStatuses(statuses []cast.Status) error {
	for _, st := range statuses {
		if !s.Catalog.Has(st.CurrentScene) {
			return &scene.LookupError{Scene: st.Character.String(), Field: "save", Ref: st.CurrentScene}
		}
	}
	return nil
}
