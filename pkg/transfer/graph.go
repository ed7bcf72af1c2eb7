// Package transfer holds the static bank-to-airline transfer graph: which
// reward programs exist, where bank points can move, at what ratios, and how
// free-text program names from user wallets resolve onto the catalog.
package transfer

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/transfer_programs.yaml
var programData []byte

// ProgramID is a stable catalog identifier for a reward program. Free-text
// wallet program names are resolved to a ProgramID once, at the matching
// boundary, so everything downstream compares stable IDs.
type ProgramID string

type ProgramType string

const (
	ProgramTypeBank    ProgramType = "bank"
	ProgramTypeAirline ProgramType = "airline"
	ProgramTypeHotel   ProgramType = "hotel"
)

// Partner is one outgoing edge of a bank program: a program its points can be
// transferred into, at the given ratio.
type Partner struct {
	ID    ProgramID   `json:"id"`
	Name  string      `json:"name"`
	Type  ProgramType `json:"type"`
	Ratio Ratio       `json:"ratio"`
}

// TransferSource is one incoming edge of a partner program: a bank program
// whose points can be transferred into it.
type TransferSource struct {
	ID    ProgramID `json:"id"`
	Name  string    `json:"name"`
	Ratio Ratio     `json:"ratio"`
}

// Program is one catalog entry. PortalCpp is the fixed travel-portal
// redemption rate in cents per point; zero means the program has no portal.
// Aliases hold common shorthand ("Amex", "Chase UR") that the lenient name
// matcher alone cannot reach.
type Program struct {
	ID        ProgramID
	Name      string
	Type      ProgramType
	Aliases   []string
	PortalCpp float64
	Partners  []Partner
}

// matchesName reports whether a free-text name refers to this program, via
// its canonical name or any alias.
func (p *Program) matchesName(name string) bool {
	if NamesMatch(name, p.Name) {
		return true
	}
	for _, a := range p.Aliases {
		if NamesMatch(name, a) {
			return true
		}
	}
	return false
}

// Graph is the loaded catalog plus its lookup indexes. A Graph is immutable
// after construction and safe for concurrent use.
type Graph struct {
	programs []Program
	byID     map[ProgramID]*Program
	sites    []siteAlias
}

type siteAlias struct {
	match   string
	program ProgramID
}

type rawPartner struct {
	ID    string `yaml:"id"`
	Ratio []int  `yaml:"ratio"`
}

type rawProgram struct {
	ID        string       `yaml:"id"`
	Name      string       `yaml:"name"`
	Type      string       `yaml:"type"`
	Aliases   []string     `yaml:"aliases"`
	PortalCpp float64      `yaml:"portal_cpp"`
	Partners  []rawPartner `yaml:"partners"`
}

type rawCatalog struct {
	Programs     []rawProgram `yaml:"programs"`
	BookingSites []struct {
		Match   string `yaml:"match"`
		Program string `yaml:"program"`
	} `yaml:"booking_sites"`
}

var (
	defaultGraph *Graph
	defaultOnce  sync.Once
)

// Default returns the graph built from the embedded catalog. The embedded
// data is validated at build time by the package tests, so a parse failure
// here is a programming error and panics.
func Default() *Graph {
	defaultOnce.Do(func() {
		g, err := NewGraph(programData)
		if err != nil {
			panic(fmt.Sprintf("transfer: embedded catalog is invalid: %v", err))
		}
		defaultGraph = g
	})
	return defaultGraph
}

// NewGraph parses a YAML catalog into a Graph. Partner edges must reference
// declared program IDs.
func NewGraph(data []byte) (*Graph, error) {
	var raw rawCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse transfer catalog: %w", err)
	}

	g := &Graph{byID: make(map[ProgramID]*Program, len(raw.Programs))}

	// First pass: declare every program so partner edges can resolve names.
	for _, rp := range raw.Programs {
		if rp.ID == "" || rp.Name == "" {
			return nil, fmt.Errorf("transfer catalog: program missing id or name (id=%q)", rp.ID)
		}
		g.programs = append(g.programs, Program{
			ID:        ProgramID(rp.ID),
			Name:      rp.Name,
			Type:      ProgramType(rp.Type),
			Aliases:   rp.Aliases,
			PortalCpp: rp.PortalCpp,
		})
	}
	for i := range g.programs {
		id := g.programs[i].ID
		if _, dup := g.byID[id]; dup {
			return nil, fmt.Errorf("transfer catalog: duplicate program id %q", id)
		}
		g.byID[id] = &g.programs[i]
	}

	for i, rp := range raw.Programs {
		for _, e := range rp.Partners {
			target, ok := g.byID[ProgramID(e.ID)]
			if !ok {
				return nil, fmt.Errorf("transfer catalog: %s references unknown partner %q", rp.ID, e.ID)
			}
			ratio := Ratio{From: 1, To: 1}
			if len(e.Ratio) == 2 {
				ratio = Ratio{From: float64(e.Ratio[0]), To: float64(e.Ratio[1])}
			}
			if ratio.From <= 0 || ratio.To <= 0 {
				return nil, fmt.Errorf("transfer catalog: %s -> %s has non-positive ratio", rp.ID, e.ID)
			}
			g.programs[i].Partners = append(g.programs[i].Partners, Partner{
				ID:    target.ID,
				Name:  target.Name,
				Type:  target.Type,
				Ratio: ratio,
			})
		}
	}

	for _, s := range raw.BookingSites {
		if _, ok := g.byID[ProgramID(s.Program)]; !ok {
			return nil, fmt.Errorf("transfer catalog: booking site %q references unknown program %q", s.Match, s.Program)
		}
		g.sites = append(g.sites, siteAlias{match: strings.ToLower(s.Match), program: ProgramID(s.Program)})
	}

	return g, nil
}

// ProgramName returns the canonical display name for a catalog ID, or the raw
// ID string if it is unknown.
func (g *Graph) ProgramName(id ProgramID) string {
	if p, ok := g.byID[id]; ok {
		return p.Name
	}
	return string(id)
}

// PartnersOf returns every transfer partner of the named bank program.
// Unknown names yield an empty list, never an error.
func (g *Graph) PartnersOf(bankProgram string) []Partner {
	for i := range g.programs {
		p := &g.programs[i]
		if p.Type == ProgramTypeBank && p.matchesName(bankProgram) {
			out := make([]Partner, len(p.Partners))
			copy(out, p.Partners)
			return out
		}
	}
	return nil
}

// ProgramsTransferringTo returns every bank program with an edge into the
// named partner program, in catalog order. Unknown names yield an empty list.
func (g *Graph) ProgramsTransferringTo(partnerName string) []TransferSource {
	var out []TransferSource
	for i := range g.programs {
		p := &g.programs[i]
		if p.Type != ProgramTypeBank {
			continue
		}
		for _, e := range p.Partners {
			if g.byID[e.ID].matchesName(partnerName) {
				out = append(out, TransferSource{ID: p.ID, Name: p.Name, Ratio: e.Ratio})
				break
			}
		}
	}
	return out
}

// SourcesInto is ProgramsTransferringTo keyed by catalog ID instead of a
// free-text name; the optimizer hot path uses this form.
func (g *Graph) SourcesInto(partner ProgramID) []TransferSource {
	var out []TransferSource
	for i := range g.programs {
		p := &g.programs[i]
		if p.Type != ProgramTypeBank {
			continue
		}
		for _, e := range p.Partners {
			if e.ID == partner {
				out = append(out, TransferSource{ID: p.ID, Name: p.Name, Ratio: e.Ratio})
				break
			}
		}
	}
	return out
}

// PortalRate returns the fixed travel-portal redemption rate (cents per
// point) for a bank program ID.
func (g *Graph) PortalRate(id ProgramID) (float64, bool) {
	p, ok := g.byID[id]
	if !ok || p.PortalCpp <= 0 {
		return 0, false
	}
	return p.PortalCpp, true
}

// ResolveProgram maps a free-text program name onto the catalog. Exact
// (case-insensitive) matches win; otherwise the first lenient match in catalog
// order is taken. Resolution is deterministic and total: unknown names return
// ok=false, never an error.
func (g *Graph) ResolveProgram(name string) (ProgramID, bool) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", false
	}
	for i := range g.programs {
		if strings.EqualFold(n, g.programs[i].Name) {
			return g.programs[i].ID, true
		}
	}
	for i := range g.programs {
		if g.programs[i].matchesName(n) {
			return g.programs[i].ID, true
		}
	}
	return "", false
}

// ResolveBookingSite maps a booking-site string ("united.com", "Delta", a
// portal URL) onto the airline program it books into. Alias containment is
// tried first, then the lenient name matcher against program names.
func (g *Graph) ResolveBookingSite(site string) (ProgramID, bool) {
	s := strings.ToLower(strings.TrimSpace(site))
	if s == "" {
		return "", false
	}
	for _, a := range g.sites {
		if strings.Contains(s, a.match) {
			return a.program, true
		}
	}
	for i := range g.programs {
		p := &g.programs[i]
		if p.Type == ProgramTypeBank {
			continue
		}
		if p.matchesName(site) {
			return p.ID, true
		}
	}
	return "", false
}
