package scene

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/datesim/internal/cast"
)

// Format selects the decoder for a scene source.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported scene file extension %q", filepath.Ext(path))
	}
}

// Record is the wire shape of a scene.
type Record struct {
	ID      string          `json:"id" yaml:"id"`
	Person  string          `json:"person,omitempty" yaml:"person,omitempty"`
	Text    []string        `json:"text" yaml:"text"`
	Outcome []OutcomeRecord `json:"outcome,omitempty" yaml:"outcome,omitempty"`
	Choice  []OptionRecord  `json:"choice,omitempty" yaml:"choice,omitempty"`
	Mission string          `json:"mission,omitempty" yaml:"mission,omitempty"`
	Next    string          `json:"next,omitempty" yaml:"next,omitempty"`
}

// OutcomeRecord is the wire shape of a flag delta.
type OutcomeRecord struct {
	Flag  string `json:"flag" yaml:"flag"`
	Delta int    `json:"delta" yaml:"delta"`
}

// OptionRecord is the wire shape of a choice option.
type OptionRecord struct {
	Label string `json:"label" yaml:"label"`
	Scene string `json:"scene" yaml:"scene"`
}

// Parse decodes a scene list. Unknown fields are rejected.
func Parse(data []byte, format Format, source string) ([]Scene, error) {
	var records []Record
	if err := Decode(data, format, &records); err != nil {
		return nil, &ParseError{Source: source, Index: -1, Msg: "malformed document", Err: err}
	}
	return FromRecords(source, records)
}

// Decode strictly decodes data into v using the given format.
// An empty YAML document decodes to the zero value.
func Decode(data []byte, format Format, v any) error {
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return err
		}
		var extra json.RawMessage
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			return errors.New("trailing data after JSON document")
		}
		return nil
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// FromRecords converts decoded records to scenes, checking required fields
// and enumeration tags. Cross-scene references are checked by New.
func FromRecords(source string, records []Record) ([]Scene, error) {
	scenes := make([]Scene, 0, len(records))
	for i, rec := range records {
		s, err := rec.toScene()
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Source = source
				pe.Index = i
				pe.ID = rec.ID
			}
			return nil, err
		}
		scenes = append(scenes, s)
	}
	return scenes, nil
}

func (r Record) toScene() (Scene, error) {
	s := Scene{
		ID:   strings.TrimSpace(r.ID),
		Next: strings.TrimSpace(r.Next),
	}
	if s.ID == "" {
		return Scene{}, &ParseError{Field: "id", Msg: "required"}
	}

	if len(r.Text) == 0 {
		return Scene{}, &ParseError{Field: "text", Msg: "must contain at least one line"}
	}
	s.Lines = append([]string(nil), r.Text...)

	if r.Person != "" {
		k, err := cast.ParseKind(r.Person)
		if err != nil {
			return Scene{}, &ParseError{Field: "person", Msg: err.Error()}
		}
		s.Speaker = &k
	}

	for j, o := range r.Outcome {
		name := strings.TrimSpace(o.Flag)
		if name == "" {
			return Scene{}, &ParseError{Field: fmt.Sprintf("outcome[%d].flag", j), Msg: "required"}
		}
		s.Outcome = append(s.Outcome, Outcome{Flag: name, Delta: o.Delta})
	}

	if len(r.Choice) > 0 {
		if len(r.Choice) != 2 {
			return Scene{}, &ParseError{Field: "choice", Msg: fmt.Sprintf("must have exactly 2 options, got %d", len(r.Choice))}
		}
		var c Choice
		for j, o := range r.Choice {
			if strings.TrimSpace(o.Label) == "" {
				return Scene{}, &ParseError{Field: fmt.Sprintf("choice[%d].label", j), Msg: "required"}
			}
			if strings.TrimSpace(o.Scene) == "" {
				return Scene{}, &ParseError{Field: fmt.Sprintf("choice[%d].scene", j), Msg: "required"}
			}
			c.Options[j] = Option{Label: o.Label, Target: strings.TrimSpace(o.Scene)}
		}
		s.Choice = &c
	}

	if r.Mission != "" {
		m, err := ParseMission(r.Mission)
		if err != nil {
			return Scene{}, &ParseError{Field: "mission", Msg: err.Error()}
		}
		s.Mission = &m
	}

	return s, nil
}
