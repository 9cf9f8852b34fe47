package scene

import "fmt"

// ParseError reports malformed scene data: a missing required field, an
// unknown enumeration tag, or a document that cannot be decoded.
type ParseError struct {
	Source string // File name or other origin, may be empty
	Index  int    // Position of the scene in the source, -1 for the whole document
	ID     string // Scene id when known
	Field  string
	Msg    string
	Err    error // Underlying decoder error, if any
}

func (e *ParseError) Error() string {
	where := "scenes"
	if e.Source != "" {
		where = e.Source
	}
	if e.Index >= 0 {
		where = fmt.Sprintf("%s: scene #%d", where, e.Index)
		if e.ID != "" {
			where = fmt.Sprintf("%s (id %q)", where, e.ID)
		}
	}
	msg := e.Msg
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("parse %s: %s: %v", where, msg, e.Err)
	}
	return fmt.Sprintf("parse %s: %s", where, msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LookupError reports a reference to a scene id that does not exist.
type LookupError struct {
	Scene string // Scene (or other owner) holding the reference
	Field string
	Ref   string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %q: %s references unknown scene %q", ownerKind(e.Field), e.Scene, e.Field, e.Ref)
}

func ownerKind(field string) string {
	if field == "cast" || field == "save" {
		return "character"
	}
	return "scene"
}
