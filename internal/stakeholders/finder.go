// Package stakeholders synthesizes decision-maker contacts for enriched
// companies. Contact discovery against LinkedIn Sales and Hunter.io style
// APIs is stubbed with generated placeholder people; the row fan-out, email
// synthesis, and no-contact marker match what a real integration would
// produce.
package stakeholders

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/harshit/leadscout/internal/tables"
	"github.com/harshit/leadscout/internal/types"
)

// DefaultMaxStakeholders bounds generated contacts per company.
const DefaultMaxStakeholders = 5

var firstNames = []string{
	"Alex", "Taylor", "Jordan", "Dana", "Morgan",
	"Harper", "Casey", "Cameron", "Riley", "Avery",
}

var lastNames = []string{
	"Smith", "Jones", "Lee", "Brown", "Garcia",
	"Wilson", "Davis", "Green", "Clark", "Miller",
}

var titles = []string{
	"VP of Sales", "Director of Innovation", "Head of R&D", "Procurement Director",
	"Marketing Lead", "Sales Manager", "Senior Product Manager", "Chief Materials Engineer",
}

// Finder expands company rows into stakeholder rows.
type Finder struct {
	MaxStakeholders int
	rng             *rand.Rand
}

// NewFinder creates a Finder seeded by the given source. Tests inject a
// fixed seed for reproducible output.
func NewFinder(rng *rand.Rand) *Finder {
	return &Finder{
		MaxStakeholders: DefaultMaxStakeholders,
		rng:             rng,
	}
}

// Run fans each company row out into one row per discovered stakeholder.
// Companies with no contacts keep a single row marked
// "no relevant person found" so downstream scoring still sees them.
func (f *Finder) Run(companies *tables.Table) (*tables.Table, error) {
	if !companies.HasColumn(types.ColCompanyName) {
		return nil, &tables.MissingColumnError{Path: "enriched_companies", Column: types.ColCompanyName}
	}

	out := tables.New(companies.Columns...)
	out.EnsureColumns(
		types.ColDecisionMaker,
		types.ColTitle,
		types.ColEmail,
		types.ColLinkedIn,
	)

	for _, row := range companies.Rows {
		company := row.Get(types.ColCompanyName)
		leads := f.FindForCompany(company)

		if len(leads) == 0 {
			record := row.Clone()
			record[types.ColDecisionMaker] = types.NoRelevantPersonFound
			record[types.ColTitle] = ""
			record[types.ColEmail] = ""
			record[types.ColLinkedIn] = ""
			out.Append(record)
			continue
		}

		for _, lead := range leads {
			record := row.Clone()
			record[types.ColDecisionMaker] = lead.Name
			record[types.ColTitle] = lead.Title
			record[types.ColEmail] = lead.Email
			record[types.ColLinkedIn] = lead.LinkedIn
			out.Append(record)
		}
	}

	return out, nil
}

// FindForCompany returns up to MaxStakeholders synthesized contacts. Blank
// company names get none.
func (f *Finder) FindForCompany(company string) []types.Stakeholder {
	if strings.TrimSpace(company) == "" {
		return nil
	}

	count := f.rng.Intn(f.MaxStakeholders + 1)
	leads := make([]types.Stakeholder, 0, count)
	for i := 0; i < count; i++ {
		first := firstNames[f.rng.Intn(len(firstNames))]
		last := lastNames[f.rng.Intn(len(lastNames))]
		title := titles[f.rng.Intn(len(titles))]
		id := 1000 + f.rng.Intn(9000)

		leads = append(leads, types.Stakeholder{
			Name:     first + " " + last,
			Title:    title,
			Email:    SynthesizeEmail(first, last, company),
			LinkedIn: fmt.Sprintf("https://www.linkedin.com/in/%s-%s-%d", strings.ToLower(first), strings.ToLower(last), id),
		})
	}
	return leads
}

// SynthesizeEmail guesses first.last@<companydomain>.com, with the domain
// derived by dropping everything non-alphanumeric from the company name.
func SynthesizeEmail(first, last, company string) string {
	domain := DomainFromCompany(company)
	if domain == "" {
		domain = "example"
	}
	return fmt.Sprintf("%s.%s@%s.com", strings.ToLower(first), strings.ToLower(last), domain)
}

// DomainFromCompany derives a plausible email domain label, e.g.
// "Avery Dennison" -> "averydennison".
func DomainFromCompany(company string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(company) {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
