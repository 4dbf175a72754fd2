package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Active is the store used by the API endpoints. It is set by Open.
var Active *Store

// Preferences are the per-simulation display settings. They only
// affect how the simulation is presented, never the stored budgets,
// so they live in flat files next to the database instead of in it.
type Preferences struct {
	CategoryOrder       []string        `json:"categoryOrder"`       // Custom category order, first to last
	SubgroupOrder       []string        `json:"subgroupOrder"`       // Custom subgroup order, first to last
	ExcludedCategoryIds []string        `json:"excludedCategoryIds"` // Categories left out of the simulation entirely
	Hidden              map[string]bool `json:"hidden"`              // Rows hidden from the balance fold
	Collapsed           map[string]bool `json:"collapsed"`           // Subgroups shown as a single subtotal row
	SortState           int             `json:"sortState"`           // Active sort mode
	ProjectionMode      bool            `json:"projectionMode"`      // Dashboard shows budgets instead of actuals
}

// Default returns the preferences used when nothing has been saved yet.
func Default() Preferences {
	return Preferences{
		CategoryOrder:       []string{},
		SubgroupOrder:       []string{},
		ExcludedCategoryIds: []string{},
		Hidden:              map[string]bool{},
		Collapsed:           map[string]bool{},
	}
}

// Store reads and writes preferences as one JSON file per simulation.
type Store struct {
	dir string
}

// Open initializes the active store in the given directory.
func Open(dir string) error {
	err := os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		return fmt.Errorf("error creating preferences directory: %w", err)
	}

	Active = &Store{dir: dir}
	return nil
}

func (s *Store) path(id uuid.UUID) string {
	return filepath.Join(s.dir, id.String()+".json")
}

// Load returns the preferences for a simulation. A missing file
// returns the defaults. A file that cannot be parsed is removed and
// also returns the defaults, a stale file must not make the
// simulation unusable.
func (s *Store) Load(id uuid.UUID) Preferences {
	body, err := os.ReadFile(s.path(id))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Str("simulation", id.String()).Msgf("%T: %v", err, err.Error())
		}
		return Default()
	}

	p := Default()
	err = json.Unmarshal(body, &p)
	if err != nil {
		log.Warn().Str("simulation", id.String()).Msgf("removing unparseable preferences: %v", err.Error())
		_ = os.Remove(s.path(id))
		return Default()
	}

	if p.Hidden == nil {
		p.Hidden = map[string]bool{}
	}
	if p.Collapsed == nil {
		p.Collapsed = map[string]bool{}
	}

	return p
}

// Save writes the preferences for a simulation. The write goes to a
// temporary file first so that a crash cannot leave a half-written
// file behind.
func (s *Store) Save(id uuid.UUID, p Preferences) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}

	tmp := s.path(id) + ".tmp"
	err = os.WriteFile(tmp, body, 0o644)
	if err != nil {
		return err
	}

	return os.Rename(tmp, s.path(id))
}

// Clear removes the stored preferences for a simulation. Clearing
// preferences that were never saved is not an error.
func (s *Store) Clear(id uuid.UUID) error {
	err := os.Remove(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}
