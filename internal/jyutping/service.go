package jyutping

// Descriptor is everything the display layer needs about one syllable.
type Descriptor struct {
	Input    string    `json:"input" yaml:"input"`
	Base     string    `json:"base" yaml:"base"`                     // Input without tone digit
	Tone     int       `json:"tone,omitempty" yaml:"tone,omitempty"` // 1-6, 0 when absent
	Initial  string    `json:"initial" yaml:"initial"`
	Final    string    `json:"final" yaml:"final"`
	Cell     *Cell     `json:"cell,omitempty" yaml:"cell,omitempty"`
	Position *Position `json:"position,omitempty" yaml:"position,omitempty"`

	ConsonantGroup   string `json:"consonant_group,omitempty" yaml:"consonant_group,omitempty"`
	ConsonantFeature string `json:"consonant_feature,omitempty" yaml:"consonant_feature,omitempty"`
	Articulation     string `json:"articulation,omitempty" yaml:"articulation,omitempty"`
	Manner           string `json:"manner,omitempty" yaml:"manner,omitempty"`

	Color string `json:"color" yaml:"color"`
}

// Found reports whether the syllable matched a table cell.
func (d Descriptor) Found() bool {
	return d.Cell != nil
}

// Service resolves raw syllables into descriptors.
type Service struct {
	matrix     *Matrix
	classifier *Classifier
	decomposer *Decomposer
	palette    map[string]string
}

// NewService composes the lookup components. palette maps initials to
// colours for syllables without a cell.
func NewService(m *Matrix, c *Classifier, palette map[string]string) *Service {
	return &Service{
		matrix:     m,
		classifier: c,
		decomposer: NewDecomposer(m),
		palette:    copyLabels(palette),
	}
}

// Resolve strips an optional tone digit from raw and resolves the rest.
// Unknown syllables are not an error; the descriptor has a nil Cell.
func (s *Service) Resolve(raw string) Descriptor {
	base, tone := SplitTone(raw)
	dec := s.decomposer.Decompose(base)

	d := Descriptor{
		Input:   raw,
		Base:    base,
		Tone:    tone,
		Initial: dec.Initial,
		Final:   dec.Final,
		Cell:    dec.Cell,
	}

	if pos, ok := s.matrix.PositionOf(dec.Final, dec.Initial); ok {
		d.Position = &pos
	}

	if dec.Initial != "" {
		if cls, ok := s.classifier.Classify(dec.Initial); ok {
			d.ConsonantGroup = cls.GroupName
			d.ConsonantFeature = cls.Feature
			d.Articulation = cls.Articulation
			d.Manner = cls.Manner
		}
	}

	switch {
	case d.Cell != nil && d.Cell.Color != "":
		d.Color = d.Cell.Color
	case s.palette[dec.Initial] != "":
		d.Color = s.palette[dec.Initial]
	default:
		d.Color = FallbackColor
	}

	return d
}

// SplitTone removes a single trailing tone digit 1-6.
// Tone is 0 when raw carries none.
func SplitTone(raw string) (base string, tone int) {
	if n := len(raw); n > 0 {
		if c := raw[n-1]; c >= '1' && c <= '6' {
			return raw[:n-1], int(c - '0')
		}
	}
	return raw, 0
}

// StripTone removes a single trailing tone digit 1-6.
func StripTone(raw string) string {
	base, _ := SplitTone(raw)
	return base
}
