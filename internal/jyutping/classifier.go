package jyutping

import "fmt"

// Group is a set of initials sharing a place of articulation.
type Group struct {
	Key          string            `yaml:"key"`                    // Stable identifier, e.g. "labial"
	Name         string            `yaml:"name,omitempty"`         // Display name; Key is shown when empty
	Members      []string          `yaml:"members"`                // Initials in this group
	Features     map[string]string `yaml:"features,omitempty"`     // Per-initial feature label
	Articulation map[string]string `yaml:"articulation,omitempty"` // Per-initial articulation type
}

// DisplayName returns Name, or Key when the group is unnamed.
func (g Group) DisplayName() string {
	if g.Name != "" {
		return g.Name
	}
	return g.Key
}

func (g Group) has(initial string) bool {
	for _, m := range g.Members {
		if m == initial {
			return true
		}
	}
	return false
}

// Manner is a manner-of-articulation class that cuts across groups.
type Manner struct {
	Key     string   `yaml:"key"` // e.g. "aspirated"
	Members []string `yaml:"members"`
}

// Classification is the group and feature metadata for one initial.
type Classification struct {
	Group        string `json:"group" yaml:"group"`
	GroupName    string `json:"group_name" yaml:"group_name"`
	Feature      string `json:"feature,omitempty" yaml:"feature,omitempty"`
	Articulation string `json:"articulation,omitempty" yaml:"articulation,omitempty"`
	Manner       string `json:"manner,omitempty" yaml:"manner,omitempty"`
}

// Classifier groups initials by articulation. It is immutable.
type Classifier struct {
	groups  []Group
	manners []Manner
}

// NewClassifier creates a classifier. Groups and manners are matched in
// the given order.
func NewClassifier(groups []Group, manners []Manner) (*Classifier, error) {
	c := &Classifier{
		groups:  make([]Group, len(groups)),
		manners: make([]Manner, len(manners)),
	}

	for i, g := range groups {
		if len(g.Members) == 0 {
			return nil, fmt.Errorf("group %q: %w", g.Key, ErrEmptyGroup)
		}
		c.groups[i] = Group{
			Key:          g.Key,
			Name:         g.Name,
			Members:      append([]string(nil), g.Members...),
			Features:     copyLabels(g.Features),
			Articulation: copyLabels(g.Articulation),
		}
	}
	for i, mn := range manners {
		c.manners[i] = Manner{Key: mn.Key, Members: append([]string(nil), mn.Members...)}
	}

	return c, nil
}

func copyLabels(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// Classify returns the first group containing initial. Reserved keys and
// the empty string are never classified.
func (c *Classifier) Classify(initial string) (Classification, bool) {
	if initial == "" || IsReserved(initial) {
		return Classification{}, false
	}

	for _, g := range c.groups {
		if !g.has(initial) {
			continue
		}
		return Classification{
			Group:        g.Key,
			GroupName:    g.DisplayName(),
			Feature:      g.Features[initial],
			Articulation: g.Articulation[initial],
			Manner:       c.mannerOf(initial),
		}, true
	}

	return Classification{}, false
}

func (c *Classifier) mannerOf(initial string) string {
	for _, mn := range c.manners {
		for _, m := range mn.Members {
			if m == initial {
				return mn.Key
			}
		}
	}
	return ""
}

// Groups returns a copy of the groups in declaration order.
func (c *Classifier) Groups() []Group {
	out := make([]Group, len(c.groups))
	for i, g := range c.groups {
		g.Members = append([]string(nil), g.Members...)
		g.Features = copyLabels(g.Features)
		g.Articulation = copyLabels(g.Articulation)
		out[i] = g
	}
	return out
}

// Manners returns a copy of the manner classes in declaration order.
func (c *Classifier) Manners() []Manner {
	out := make([]Manner, len(c.manners))
	for i, mn := range c.manners {
		out[i] = Manner{Key: mn.Key, Members: append([]string(nil), mn.Members...)}
	}
	return out
}
