// Package curriculum loads the read-only module definitions the engine
// tunes against. The engine never mutates curriculum data; files are
// re-read per session.
package curriculum

import "slices"

// Item is one vocabulary entry within a module.
type Item struct {
	ID string `json:"id"`

	// Difficulty is the author-assigned intrinsic difficulty (0.0-1.0).
	Difficulty float64 `json:"difficulty"`

	// Importance weights how strongly the item should figure in
	// exercises (default 1.0).
	Importance float64 `json:"importance"`
}

// Module is one curriculum unit: a set of items plus the list of
// activities that are optional for students who already test out.
type Module struct {
	ID                string   `json:"id"`
	Domain            string   `json:"domain"`
	Items             []Item   `json:"items"`
	OptionalExercises []string `json:"optional_exercises"`
}

// ItemIDs returns the module's item identifiers in definition order.
func (m *Module) ItemIDs() []string {
	ids := make([]string, len(m.Items))
	for i, it := range m.Items {
		ids[i] = it.ID
	}
	return ids
}

// IsOptional reports whether an activity appears in the module's
// optional-exercises list. Only optional activities are eligible for
// skip recommendations.
func (m *Module) IsOptional(activity string) bool {
	return slices.Contains(m.OptionalExercises, activity)
}

// Item returns the item with the given ID, or nil if the module does
// not define it.
func (m *Module) Item(id string) *Item {
	for i := range m.Items {
		if m.Items[i].ID == id {
			return &m.Items[i]
		}
	}
	return nil
}
