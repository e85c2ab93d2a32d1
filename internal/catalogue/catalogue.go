// Package catalogue loads the read-only court catalogue and publishes it to
// readers as immutable snapshots.
package catalogue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"regexp"
	"slices"

	"github.com/hyperjump/courtfinder/internal/models"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNotFound is returned for a slug that is not in the catalogue.
	ErrNotFound = errors.New("court not found")
	// ErrDuplicateSlug is returned when two index entries share a slug.
	ErrDuplicateSlug = errors.New("duplicate court slug")
	// ErrInvalidRecord is returned for an index entry missing required fields.
	ErrInvalidRecord = errors.New("invalid court record")
	// ErrNoIndex is returned when the source holds no index file.
	ErrNoIndex = errors.New("catalogue index not found")
)

// Extensions lists the file types a catalogue may be written in, in lookup order.
var Extensions = []string{".json", ".yaml", ".yml"}

const indexName = "index"

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Catalogue is one loaded, immutable set of courts. It is safe for concurrent use.
type Catalogue struct {
	courts  []models.Court
	details map[string]*models.CourtDetail
}

// New builds a catalogue from summaries alone, validating slugs and names.
func New(courts []models.Court) (*Catalogue, error) {
	c := &Catalogue{
		courts:  make([]models.Court, 0, len(courts)),
		details: make(map[string]*models.CourtDetail, len(courts)),
	}
	for i, court := range courts {
		if err := validate(court); err != nil {
			return nil, fmt.Errorf("index entry %d: %w", i, err)
		}
		if _, dup := c.details[court.Slug]; dup {
			return nil, fmt.Errorf("index entry %d: %w: %s", i, ErrDuplicateSlug, court.Slug)
		}
		c.courts = append(c.courts, court)
		c.details[court.Slug] = &models.CourtDetail{Court: court}
	}
	return c, nil
}

// Load reads index.{json,yaml,yml} from fsys plus an optional <slug>.{json,yaml,yml}
// detail file per court. Summary fields always come from the index.
func Load(fsys fs.FS) (*Catalogue, error) {
	var courts []models.Court
	found, err := decodeFirst(fsys, indexName, &courts)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue index: %w", err)
	}
	if !found {
		return nil, ErrNoIndex
	}
	c, err := New(courts)
	if err != nil {
		return nil, err
	}
	for _, court := range c.courts {
		var detail models.CourtDetail
		found, err := decodeFirst(fsys, court.Slug, &detail)
		if err != nil {
			return nil, fmt.Errorf("failed to read details for %s: %w", court.Slug, err)
		}
		if !found {
			continue
		}
		detail.Court = court
		c.details[court.Slug] = &detail
	}
	return c, nil
}

// Courts returns the catalogue in index order. The slice is a copy.
func (c *Catalogue) Courts() []models.Court {
	return slices.Clone(c.courts)
}

// Len returns the number of courts.
func (c *Catalogue) Len() int {
	return len(c.courts)
}

// Court returns the full record for slug, or ErrNotFound.
func (c *Catalogue) Court(slug string) (models.CourtDetail, error) {
	d, ok := c.details[slug]
	if !ok {
		return models.CourtDetail{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return *d, nil
}

func validate(court models.Court) error {
	if !slugPattern.MatchString(court.Slug) {
		return fmt.Errorf("%w: slug %q must be lower-case words joined by hyphens", ErrInvalidRecord, court.Slug)
	}
	if court.Name == "" {
		return fmt.Errorf("%w: %s has no name", ErrInvalidRecord, court.Slug)
	}
	return nil
}

// decodeFirst decodes the first of base.json, base.yaml, base.yml that exists.
// Unknown fields are rejected so typos in hand-written data surface at load time.
func decodeFirst(fsys fs.FS, base string, out any) (bool, error) {
	for _, ext := range Extensions {
		name := base + ext
		data, err := fs.ReadFile(fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return false, err
		}
		if err := decode(name, data, out); err != nil {
			return false, fmt.Errorf("%s: %w", name, err)
		}
		return true, nil
	}
	return false, nil
}

func decode(name string, data []byte, out any) error {
	if path.Ext(name) == ".json" {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(out)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
