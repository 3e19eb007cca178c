// Package catalog holds the domain skill catalog: for each supported job
// domain, an ordered list of weighted skill requirements. The catalog is
// configuration, not logic; it is built once at startup and never mutated.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fairyhunter13/resume-screener/internal/domain"
	"github.com/fairyhunter13/resume-screener/pkg/textx"
)

// Entry is one domain of the catalog with its ordered skill list. Skill names
// are stored in their raw (lower-case) matching form.
type Entry struct {
	Name   string                    `yaml:"name"`
	Skills []domain.SkillRequirement `yaml:"skills"`
}

// Catalog is an immutable lookup over domain skill requirements.
type Catalog struct {
	entries []Entry
	byName  map[string][]domain.SkillRequirement
	pool    []string
}

// file is the YAML override format: an ordered list of domain entries.
type file struct {
	Domains []Entry `yaml:"domains"`
}

// New builds a Catalog from ordered entries. Requirement labels are
// title-cased for display; the matcher pool keeps the raw names.
func New(entries []Entry) *Catalog {
	c := &Catalog{
		entries: entries,
		byName:  make(map[string][]domain.SkillRequirement, len(entries)),
	}
	for _, e := range entries {
		reqs := make([]domain.SkillRequirement, 0, len(e.Skills))
		for _, s := range e.Skills {
			c.pool = append(c.pool, s.Skill)
			reqs = append(reqs, domain.SkillRequirement{Skill: textx.TitleCase(s.Skill), Importance: s.Importance})
		}
		c.byName[e.Name] = reqs
	}
	return c
}

// LoadFile parses a YAML catalog override.
func LoadFile(path string) (*Catalog, error) {
	b, err := os.ReadFile(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("op=catalog.LoadFile: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("op=catalog.LoadFile: %w", err)
	}
	if len(f.Domains) == 0 {
		return nil, fmt.Errorf("op=catalog.LoadFile: %w: no domains defined", domain.ErrInvalidArgument)
	}
	for _, e := range f.Domains {
		seen := make(map[string]struct{}, len(e.Skills))
		for _, s := range e.Skills {
			if s.Importance < 1 || s.Importance > 5 {
				return nil, fmt.Errorf("op=catalog.LoadFile: %w: domain %q skill %q importance %d out of range 1..5", domain.ErrInvalidArgument, e.Name, s.Skill, s.Importance)
			}
			if _, dup := seen[s.Skill]; dup {
				return nil, fmt.Errorf("op=catalog.LoadFile: %w: domain %q duplicate skill %q", domain.ErrInvalidArgument, e.Name, s.Skill)
			}
			seen[s.Skill] = struct{}{}
		}
	}
	return New(f.Domains), nil
}

// RequiredSkills returns the ordered, title-cased requirements for a domain.
// Unknown domains yield an empty list, never an error.
func (c *Catalog) RequiredSkills(name string) []domain.SkillRequirement {
	reqs := c.byName[name]
	out := make([]domain.SkillRequirement, len(reqs))
	copy(out, reqs)
	return out
}

// Has reports whether the domain exists in the catalog.
func (c *Catalog) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Domains returns the domain names in catalog order.
func (c *Catalog) Domains() []string {
	out := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e.Name)
	}
	return out
}

// SkillPool returns every skill name across all domains, flattened in catalog
// order. Duplicates across domains are kept; the matcher dedupes its output.
func (c *Catalog) SkillPool() []string {
	out := make([]string, len(c.pool))
	copy(out, c.pool)
	return out
}
