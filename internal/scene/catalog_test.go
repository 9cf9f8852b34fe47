package scene

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/datesim/internal/cast"
)

const bunkerYAML = `
- id: "2"
  person: janitor_joe
  text: ["Hey kid.", "I'm thirsty."]
  mission: water
  outcome:
    - {flag: trust, delta: 5}
    - {flag: trust, delta: 3}
  choice:
    - {label: "Talk with Joe", scene: "4"}
    - {label: "Leave", scene: "5"}
- id: "4"
  person: janitor_joe
  text: ["Pipes again..."]
  next: "5"
- id: "5"
  text: ["The hum of the bunker."]
`

func TestParseYAML(t *testing.T) {
	scenes, err := Parse([]byte(bunkerYAML), FormatYAML, "bunker.yaml")
	require.NoError(t, err)
	require.Len(t, scenes, 3)

	s := scenes[0]
	assert.Equal(t, "2", s.ID)
	require.NotNil(t, s.Speaker)
	assert.Equal(t, cast.JanitorJoe, *s.Speaker)
	assert.Equal(t, []string{"Hey kid.", "I'm thirsty."}, s.Lines)
	require.NotNil(t, s.Mission)
	assert.Equal(t, MissionWater, *s.Mission)
	assert.Equal(t, []Outcome{{"trust", 5}, {"trust", 3}}, s.Outcome)
	require.NotNil(t, s.Choice)
	assert.Equal(t, Option{Label: "Leave", Target: "5"}, s.Choice.Options[1])

	assert.Equal(t, "5", scenes[1].Next)
	assert.Nil(t, scenes[2].Speaker)
	assert.Equal(t, "", scenes[2].SpeakerName())
}

func TestParseJSON(t *testing.T) {
	data := `[{"id":"1","text":["Hi","Bye"],"mission":"Water"}]`

	scenes, err := Parse([]byte(data), FormatJSON, "")
	require.NoError(t, err)
	require.Len(t, scenes, 1)
	require.NotNil(t, scenes[0].Mission)
	assert.Equal(t, MissionWater, *scenes[0].Mission)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		field string
		index int
	}{
		{"missing id", `[{"text":["a"]}]`, "id", 0},
		{"empty text", `[{"id":"1","text":[]}]`, "text", 0},
		{"no text", `[{"id":"1"}]`, "text", 0},
		{"unknown mission", `[{"id":"1","text":["a"]},{"id":"2","text":["b"],"mission":"gold"}]`, "mission", 1},
		{"unknown person", `[{"id":"1","person":"dog","text":["a"]}]`, "person", 0},
		{"one option", `[{"id":"1","text":["a"],"choice":[{"label":"x","scene":"1"}]}]`, "choice", 0},
		{"option without target", `[{"id":"1","text":["a"],"choice":[{"label":"x","scene":"1"},{"label":"y"}]}]`, "choice[1].scene", 0},
		{"outcome without flag", `[{"id":"1","text":["a"],"outcome":[{"delta":1}]}]`, "outcome[0].flag", 0},
		{"unknown field", `[{"id":"1","text":["a"],"mood":"sad"}]`, "", -1},
		{"not a list", `{"id":"1"}`, "", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), FormatJSON, "test.json")
			require.Error(t, err)

			var pe *ParseError
			require.True(t, errors.As(err, &pe), "expected *ParseError, got %T", err)
			assert.Equal(t, tt.field, pe.Field)
			assert.Equal(t, tt.index, pe.Index)
			assert.Equal(t, "test.json", pe.Source)
		})
	}
}

func TestParseJSONRejectsTrailingData(t *testing.T) {
	for _, data := range []string{
		`[{"id":"1","text":["Hi"]}]garbage`,
		`[{"id":"1","text":["Hi"]}]]`,
		`[{"id":"1","text":["Hi"]}] []`,
	} {
		_, err := Parse([]byte(data), FormatJSON, "s.json")
		var pe *ParseError
		require.True(t, errors.As(err, &pe), "input %s", data)
		assert.Equal(t, "malformed document", pe.Msg)
	}

	_, err := Parse([]byte("[{\"id\":\"1\",\"text\":[\"Hi\"]}]\n"), FormatJSON, "s.json")
	assert.NoError(t, err)
}

func TestParseYAMLRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("- id: a\n  text: [x]\n  speaker: cat\n"), FormatYAML, "")

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, -1, pe.Index)
}

func TestNewIndexesScenes(t *testing.T) {
	scenes, err := Parse([]byte(bunkerYAML), FormatYAML, "")
	require.NoError(t, err)

	c, err := New(scenes)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	s, ok := c.Get("4")
	require.True(t, ok)
	assert.Equal(t, []string{"Pipes again..."}, s.Lines)
	assert.True(t, c.Has("5"))
	assert.False(t, c.Has("6"))

	ids := make([]string, 0, c.Len())
	for _, s := range c.Scenes() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"2", "4", "5"}, ids)

	assert.Same(t, s, c.MustGet("4"))
	assert.Panics(t, func() { c.MustGet("nope") })
}

func TestNewRejectsDuplicates(t *testing.T) {
	_, err := New([]Scene{
		{ID: "a", Lines: []string{"x"}},
		{ID: "a", Lines: []string{"y"}},
	})

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 1, pe.Index)
	assert.Equal(t, "a", pe.ID)
}

func TestNewRejectsEmpty(t *testing.T) {
	_, err := New(nil)

	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
}

func TestNewReferentialIntegrity(t *testing.T) {
	tests := []struct {
		name  string
		scene Scene
		field string
		ref   string
	}{
		{
			name: "choice target",
			scene: Scene{ID: "a", Lines: []string{"x"}, Choice: &Choice{Options: [2]Option{
				{Label: "ok", Target: "a"},
				{Label: "bad", Target: "missing"},
			}}},
			field: "choice[1]",
			ref:   "missing",
		},
		{
			name:  "next",
			scene: Scene{ID: "a", Lines: []string{"x"}, Next: "gone"},
			field: "next",
			ref:   "gone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New([]Scene{tt.scene})

			var le *LookupError
			require.True(t, errors.As(err, &le), "expected *LookupError, got %v", err)
			assert.Equal(t, "a", le.Scene)
			assert.Equal(t, tt.field, le.Field)
			assert.Equal(t, tt.ref, le.Ref)
			assert.Contains(t, le.Error(), `scene "a"`)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenes.yml")
	require.NoError(t, os.WriteFile(path, []byte(bunkerYAML), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load("scenes.toml")
	assert.Error(t, err)
}

func TestMissionTags(t *testing.T) {
	for _, m := range Missions() {
		parsed, err := ParseMission(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	_, err := ParseMission("gold")
	assert.Error(t, err)
	_, err = MissionKind(9).MarshalText()
	assert.Error(t, err)
}
