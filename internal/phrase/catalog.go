// Package phrase maps accepted gesture labels to the phrases shown and
// spoken for them. The engine owns the decision; this package owns the
// display metadata.
package phrase

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/classifier"
	"github.com/ayusman/mudra/internal/store"
)

// Defaults returns the built-in phrase for each vocabulary label.
func Defaults() map[classifier.Label]string {
	return map[classifier.Label]string{
		classifier.LabelOpenPalm: "Hello!",
		classifier.LabelPointing: "I need that, please.",
		classifier.LabelVictory:  "Yes, thank you!",
		classifier.LabelFist:     "Stop, please.",
		classifier.LabelThumbsUp: "I'm doing great!",
	}
}

// Catalog holds the current label-to-phrase mapping. Reads come from the
// frame loop while writes come from the API, so access is guarded.
type Catalog struct {
	mu      sync.RWMutex
	phrases map[classifier.Label]string
}

// NewCatalog creates a catalog seeded with the built-in defaults.
func NewCatalog() *Catalog {
	return &Catalog{phrases: Defaults()}
}

// Lookup returns the phrase for a label and whether one is configured.
func (c *Catalog) Lookup(label classifier.Label) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	text, ok := c.phrases[label]
	return text, ok
}

// Set binds a phrase to a label. Unknown labels are ignored.
func (c *Catalog) Set(label classifier.Label, text string) {
	if !label.Known() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.phrases[label] = text
}

// Remove unbinds a label so acceptances for it are silent.
func (c *Catalog) Remove(label classifier.Label) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.phrases, label)
}

// LoadFromStore replaces the catalog contents with the enabled rows from the
// store. Labels without an enabled row keep their default.
func (c *Catalog) LoadFromStore(s *store.Store) error {
	rows, err := s.Phrases().List()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.phrases = Defaults()
	for _, row := range rows {
		label := classifier.Label(row.Label)
		if !label.Known() {
			continue
		}
		if row.Enabled {
			c.phrases[label] = row.Text
		} else {
			delete(c.phrases, label)
		}
	}

	return nil
}

// SeedStore inserts a row for every default phrase that has no row yet, so a
// fresh database exposes the full catalog through the API.
func SeedStore(s *store.Store) error {
	phrases := s.Phrases()

	for label, text := range Defaults() {
		_, err := phrases.GetByLabel(string(label))
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		row := &store.Phrase{
			ID:      uuid.NewString(),
			Label:   string(label),
			Text:    text,
			Enabled: true,
		}
		if err := phrases.Create(row); err != nil {
			return err
		}
	}

	return nil
}
