package scene

import (
	"errors"
	"fmt"
	"os"
)

// Catalog is the immutable, indexed set of scenes for one story.
// It is safe to share between sessions.
type Catalog struct {
	scenes []*Scene
	index  map[string]*Scene
}

// New indexes scenes by id and checks that every choice target and every
// Next pointer resolves to a scene in the set.
func New(scenes []Scene) (*Catalog, error) {
	if len(scenes) == 0 {
		return nil, &ParseError{Index: -1, Msg: "catalog has no scenes"}
	}

	c := &Catalog{
		scenes: make([]*Scene, 0, len(scenes)),
		index:  make(map[string]*Scene, len(scenes)),
	}
	for i := range scenes {
		s := scenes[i]
		if _, dup := c.index[s.ID]; dup {
			return nil, &ParseError{Index: i, ID: s.ID, Field: "id", Msg: "duplicate scene id"}
		}
		c.scenes = append(c.scenes, &s)
		c.index[s.ID] = &s
	}

	if err := c.checkRefs(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) checkRefs() error {
	for _, s := range c.scenes {
		if s.Choice != nil {
			for i, opt := range s.Choice.Options {
				if !c.Has(opt.Target) {
					return &LookupError{Scene: s.ID, Field: fmt.Sprintf("choice[%d]", i), Ref: opt.Target}
				}
			}
		}
		if s.Next != "" && !c.Has(s.Next) {
			return &LookupError{Scene: s.ID, Field: "next", Ref: s.Next}
		}
	}
	return nil
}

// Load reads a scene file, choosing the decoder by extension.
func Load(path string) (*Catalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenes: %w", err)
	}
	scenes, err := Parse(data, format, path)
	if err != nil {
		return nil, err
	}
	c, err := New(scenes)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Source = path
		}
		return nil, err
	}
	return c, nil
}

// Get returns the scene with the given id.
func (c *Catalog) Get(id string) (*Scene, bool) {
	s, ok := c.index[id]
	return s, ok
}

// MustGet is Get for ids already checked by New. It panics on a miss.
func (c *Catalog) MustGet(id string) *Scene {
	s, ok := c.index[id]
	if !ok {
		panic(fmt.Sprintf("scene: unknown id %q", id))
	}
	return s
}

// Has reports whether id names a scene in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Scenes returns the scenes in load order. The slice is a copy; the scenes
// themselves must not be modified.
func (c *Catalog) Scenes() []*Scene {
	out := make([]*Scene, len(c.scenes))
	copy(out, c.scenes)
	return out
}

// Len returns the number of scenes.
func (c *Catalog) Len() int {
	return len(c.scenes)
}
