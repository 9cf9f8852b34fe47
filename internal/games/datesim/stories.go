package datesim

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/vovakirdan/datesim/internal/registry"
	"github.com/vovakirdan/datesim/internal/scene"
	"github.com/vovakirdan/datesim/internal/story"
)

//go:embed stories/*.yaml
var storyFS embed.FS

var bundled = map[string]*story.Story{}

func init() {
	for _, s := range mustLoadBundled() {
		bundled[s.ID] = s
		registry.Register(s.ID, func() registry.Game {
			return New(s)
		})
	}
}

// mustLoadBundled parses every embedded story. A broken bundled story is a
// programming error, so it panics.
func mustLoadBundled() []*story.Story {
	names, err := fs.Glob(storyFS, "stories/*.yaml")
	if err != nil {
		panic(err)
	}
	sort.Strings(names)

	out := make([]*story.Story, 0, len(names))
	for _, name := range names {
		data, err := storyFS.ReadFile(name)
		if err != nil {
			panic(err)
		}
		s, err := story.Parse(data, scene.FormatYAML, path.Base(name))
		if err != nil {
			panic(fmt.Sprintf("datesim: bundled story %s: %v", name, err))
		}
		out = append(out, s)
	}
	return out
}

// Bundled returns the embedded story with the given id.
func Bundled(id string) (*story.Story, bool) {
	s, ok := bundled[id]
	return s, ok
}

// BundledSource returns the raw embedded file for a story id, for exporting
// it as a starting point for custom stories.
func BundledSource(id string) ([]byte, error) {
	return storyFS.ReadFile(path.Join("stories", id+".yaml"))
}
