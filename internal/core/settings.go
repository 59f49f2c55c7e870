package core

import "time"

// Settings is the small persisted preferences blob. Fields are optional so
// a partial save merges onto what is already stored.
type Settings struct {
	SelectedPeriod *Period `json:"selectedPeriod,omitempty"`
}

// DefaultSettings returns the documented defaults used when nothing is
// stored or the stored blob is corrupt.
func DefaultSettings(now time.Time) Settings {
	p := ThisMonth(now)
	return Settings{SelectedPeriod: &p}
}

// Merge overlays the non-nil fields of other onto s.
func (s Settings) Merge(other Settings) Settings {
	if other.SelectedPeriod != nil {
		s.SelectedPeriod = other.SelectedPeriod
	}
	return s
}
