// Package status provides the canonical work-order workflow states and the
// rules for normalizing free-text status labels from legacy imports and
// manual entry. Every work order resolves to exactly one of the eight
// canonical codes; operator-defined presentation statuses are aliases that
// must map onto one of these codes and can never bypass classification.
package status

import (
	"sort"
	"strings"
	"unicode"
)

// Code is one of the eight canonical workflow states.
type Code string

const (
	Scheduled        Code = "scheduled"
	InProgress       Code = "in_progress"
	AwaitingParts    Code = "awaiting_parts"
	AwaitingApproval Code = "awaiting_approval"
	AwaitingReport   Code = "awaiting_report"
	Completed        Code = "completed"
	InspectionOnly   Code = "inspection_only"
	Cancelled        Code = "cancelled"
)

// TerminalPriority is shared by all terminal states. Their relative order
// is irrelevant once work is closed.
const TerminalPriority = 99

type entry struct {
	label    string
	priority int
	active   bool
	scoring  bool
	archived bool
}

// rule is one step of the normalization chain. When allOf is set, every
// marker must be present; otherwise any anyOf marker matches.
type rule struct {
	code  Code
	allOf []string
	anyOf []string
}

// Registry holds the canonical status metadata and the normalization chain.
// It is an immutable value constructed once at boot and injected into the
// components that need it.
type Registry struct {
	entries map[Code]entry
	aliases map[string]Code
	chain   []rule
}

// NewRegistry builds the registry with the eight canonical codes, their
// Turkish display labels, priorities, and classification flags.
func NewRegistry() *Registry {
	return &Registry{
		entries: map[Code]entry{
			InProgress:       {label: "Devam Ediyor", priority: 1, active: true},
			Scheduled:        {label: "Randevu Verildi", priority: 2, active: true},
			AwaitingParts:    {label: "Parça Bekleniyor", priority: 3, active: true},
			AwaitingApproval: {label: "Onay Bekleniyor", priority: 4, active: true},
			AwaitingReport:   {label: "Rapor Bekleniyor", priority: 5, active: true},
			Completed:        {label: "Tamamlandı", priority: TerminalPriority, scoring: true, archived: true},
			InspectionOnly:   {label: "Arıza Tespit", priority: TerminalPriority, scoring: true, archived: true},
			Cancelled:        {label: "İptal Edildi", priority: TerminalPriority, archived: true},
		},
		aliases: map[string]Code{},
		// Ordered substring predicates, first match wins. The order is a
		// load-bearing contract: a closed FT work order beats every other
		// marker that may appear in the same legacy cell.
		chain: []rule{
			{code: Completed, allOf: []string{"bitti", "ft"}},
			{code: InspectionOnly, anyOf: []string{"tespit"}},
			{code: Cancelled, anyOf: []string{"iptal"}},
			{code: InProgress, anyOf: []string{"devam"}},
			{code: AwaitingApproval, anyOf: []string{"onay"}},
			{code: AwaitingReport, anyOf: []string{"rapor"}},
			{code: AwaitingParts, anyOf: []string{"parca"}},
			{code: Scheduled, anyOf: []string{"randevu"}},
			{code: Completed, anyOf: []string{"tamamlan", "bitti"}},
		},
	}
}

// WithAlias returns a copy of the registry with an operator-defined
// presentation label mapped to a behavioral code. Unknown codes are
// ignored so a bad catalog row cannot introduce a ninth state.
func (r *Registry) WithAlias(label string, code Code) *Registry {
	if _, ok := r.entries[code]; !ok {
		return r
	}

	aliases := make(map[string]Code, len(r.aliases)+1)
	for k, v := range r.aliases {
		aliases[k] = v
	}
	aliases[fold(label)] = code

	return &Registry{entries: r.entries, aliases: aliases, chain: r.chain}
}

// Normalize resolves arbitrary status text to a canonical code.
// Empty or unrecognized input yields Scheduled: upstream data quality is
// known to be inconsistent, so normalization never fails.
func (r *Registry) Normalize(raw string) Code {
	folded := fold(raw)
	if folded == "" {
		return Scheduled
	}

	if code, ok := r.aliases[folded]; ok {
		return code
	}

	for _, step := range r.chain {
		if step.matches(folded) {
			return step.code
		}
	}

	return Scheduled
}

func (s rule) matches(folded string) bool {
	if len(s.allOf) > 0 {
		for _, marker := range s.allOf {
			if !strings.Contains(folded, marker) {
				return false
			}
		}
		return true
	}
	for _, marker := range s.anyOf {
		if strings.Contains(folded, marker) {
			return true
		}
	}
	return false
}

// Label returns the display label for a canonical code.
func (r *Registry) Label(code Code) string {
	return r.entries[code].label
}

// Priority returns the list-ordering priority; lower sorts earlier.
// Unknown codes sort with the terminals.
func (r *Registry) Priority(code Code) int {
	if e, ok := r.entries[code]; ok {
		return e.priority
	}
	return TerminalPriority
}

// IsActive reports whether the code counts as open operational work.
func (r *Registry) IsActive(code Code) bool {
	return r.entries[code].active
}

// IsCompletedForScoring reports whether closures in this state contribute
// to performance metrics. Cancelled work never does.
func (r *Registry) IsCompletedForScoring(code Code) bool {
	return r.entries[code].scoring
}

// IsArchived reports whether the code is terminal for list purposes.
func (r *Registry) IsArchived(code Code) bool {
	return r.entries[code].archived
}

// IsCanonical reports whether the given string is one of the eight codes.
func (r *Registry) IsCanonical(value string) bool {
	_, ok := r.entries[Code(value)]
	return ok
}

// Codes returns the canonical codes ordered by priority, terminals last.
func (r *Registry) Codes() []Code {
	out := make([]Code, 0, len(r.entries))
	for code := range r.entries {
		out = append(out, code)
	}
	sort.Slice(out, func(i, j int) bool {
		pi, pj := r.Priority(out[i]), r.Priority(out[j])
		if pi != pj {
			return pi < pj
		}
		return out[i] < out[j]
	})
	return out
}

// turkishFold maps Turkish-specific letters before generic lowercasing.
// 'İ' must be handled here: unicode lowercasing turns it into "i" plus a
// combining dot, which would break substring matching.
var turkishFold = map[rune]rune{
	'İ': 'i', 'I': 'i', 'ı': 'i',
	'Ş': 's', 'ş': 's',
	'Ç': 'c', 'ç': 'c',
	'Ö': 'o', 'ö': 'o',
	'Ü': 'u', 'ü': 'u',
	'Ğ': 'g', 'ğ': 'g',
	'Â': 'a', 'â': 'a',
	'Î': 'i', 'î': 'i',
	'Û': 'u', 'û': 'u',
}

func fold(raw string) string {
	mapped := strings.Map(func(r rune) rune {
		if r == '\u0307' { // combining dot above, left over from decomposed İ
			return -1
		}
		if folded, ok := turkishFold[r]; ok {
			return folded
		}
		return unicode.ToLower(r)
	}, raw)
	return strings.TrimSpace(mapped)
}
