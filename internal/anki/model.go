package anki

import (
	"encoding/json"
	"maps"
)

// Model is an Anki note type. Keys not mapped to struct fields (templates,
// sort field, LaTeX preamble and so on) are kept and written back as read.
type Model struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Fields []Field `json:"flds"`
	CSS    string  `json:"css"`
	Type   int     `json:"type"` // 0 = standard, 1 = cloze

	raw map[string]json.RawMessage
}

// Field is one field of a note type. Unknown keys survive a save like
// Model's do.
type Field struct {
	Name   string `json:"name"`
	Ord    int    `json:"ord"`
	Sticky bool   `json:"sticky"`
	RTL    bool   `json:"rtl"`
	Font   string `json:"font"`
	Size   int    `json:"size"`

	raw map[string]json.RawMessage
}

func (m *Model) UnmarshalJSON(data []byte) error {
	type plain Model
	if err := json.Unmarshal(data, (*plain)(m)); err != nil {
		return err
	}
	return json.Unmarshal(data, &m.raw)
}

func (m Model) MarshalJSON() ([]byte, error) {
	type plain Model
	return overlay(m.raw, plain(m))
}

func (f *Field) UnmarshalJSON(data []byte) error {
	type plain Field
	if err := json.Unmarshal(data, (*plain)(f)); err != nil {
		return err
	}
	return json.Unmarshal(data, &f.raw)
}

func (f Field) MarshalJSON() ([]byte, error) {
	type plain Field
	return overlay(f.raw, plain(f))
}

// newField derives a field from an existing one so it carries the same
// editor settings and unknown keys.
func newField(from Field, name string, ord int) Field {
	f := from
	f.Name = name
	f.Ord = ord
	f.Sticky = false
	f.raw = maps.Clone(from.raw)
	return f
}

// overlay marshals known and writes its keys over a copy of raw.
func overlay(raw map[string]json.RawMessage, known any) ([]byte, error) {
	data, err := json.Marshal(known)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return data, nil
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, err
	}
	out := maps.Clone(raw)
	maps.Copy(out, keys)
	return json.Marshal(out)
}
