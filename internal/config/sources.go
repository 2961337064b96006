package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tOgg1/timesync/internal/timeline"
)

// ErrInvalidSource is returned for source documents that cannot be applied.
var ErrInvalidSource = errors.New("invalid source")

// maxSeriesLength bounds generated series so a typo in step cannot exhaust memory.
const maxSeriesLength = 100000

// SourceDocument lists the time sets fed into a timeline.
type SourceDocument struct {
	Sources []Source `yaml:"sources"`
}

// Source describes one time set. Times may be listed explicitly, generated
// from Start/End/Step, or both.
type Source struct {
	// ID is the set id. Empty ids are replaced with a generated one on Apply.
	ID string `yaml:"id,omitempty"`
	// Name is a display label for the player.
	Name string `yaml:"name,omitempty"`

	Times []time.Time `yaml:"times,omitempty"`
	// Enabled restricts the enabled subset. Omitted means all times are enabled.
	Enabled []time.Time `yaml:"enabled,omitempty"`

	Start *time.Time    `yaml:"start,omitempty"`
	End   *time.Time    `yaml:"end,omitempty"`
	Step  time.Duration `yaml:"step,omitempty"`
}

// Label returns Name, falling back to ID.
func (s Source) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}

// AllTimes returns the explicit times plus any generated series.
func (s Source) AllTimes() ([]time.Time, error) {
	out := append([]time.Time(nil), s.Times...)
	if s.Start == nil && s.End == nil {
		return out, nil
	}
	if s.Start == nil || s.End == nil {
		return nil, fmt.Errorf("%w: %s: start and end must be set together", ErrInvalidSource, s.Label())
	}
	if s.Step <= 0 {
		return nil, fmt.Errorf("%w: %s: step must be positive", ErrInvalidSource, s.Label())
	}
	if s.End.Before(*s.Start) {
		return nil, fmt.Errorf("%w: %s: end is before start", ErrInvalidSource, s.Label())
	}
	if n := s.End.Sub(*s.Start) / s.Step; n >= maxSeriesLength {
		return nil, fmt.Errorf("%w: %s: series longer than %d entries", ErrInvalidSource, s.Label(), maxSeriesLength)
	}
	for ts := *s.Start; !ts.After(*s.End); ts = ts.Add(s.Step) {
		out = append(out, ts)
	}
	return out, nil
}

// Validate checks ids are unique and every series is well formed.
func (d *SourceDocument) Validate() error {
	seen := make(map[string]bool, len(d.Sources))
	for i, src := range d.Sources {
		if src.ID != "" {
			if seen[src.ID] {
				return fmt.Errorf("%w: sources[%d]: duplicate id %q", ErrInvalidSource, i, src.ID)
			}
			seen[src.ID] = true
		}
		if _, err := src.AllTimes(); err != nil {
			return fmt.Errorf("sources[%d]: %w", i, err)
		}
	}
	return nil
}

// Apply registers every source with tl and returns the set ids used, in
// document order. Sources without an id get one from timeline.NewSetID and the
// document is updated in place.
func (d *SourceDocument) Apply(tl *timeline.Timeline) ([]string, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(d.Sources))
	for i := range d.Sources {
		src := &d.Sources[i]
		if src.ID == "" {
			src.ID = timeline.NewSetID("source")
		}
		times, err := src.AllTimes()
		if err != nil {
			return nil, err
		}
		if src.Enabled != nil {
			tl.SetTimesBySetID(src.ID, times, src.Enabled)
		} else {
			tl.SetTimesBySetID(src.ID, times)
		}
		ids = append(ids, src.ID)
	}
	return ids, nil
}

// ParseSources decodes a YAML source document.
func ParseSources(data []byte) (*SourceDocument, error) {
	doc := &SourceDocument{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to parse source document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadSources reads and decodes a YAML source document from path.
func LoadSources(path string) (*SourceDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source document: %w", err)
	}
	return ParseSources(data)
}

// Marshal encodes the document back to YAML.
func (d *SourceDocument) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize source document: %w", err)
	}
	return data, nil
}
