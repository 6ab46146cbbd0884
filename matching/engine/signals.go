package engine

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Abraxas-365/sift/matching/offer"
)

// DurationPolicy selects how multiple "N ans" matches in one CV combine into a
// single years-of-experience figure. The historical behavior is Sum, which
// overstates experience when a CV mentions unrelated durations ("3 ans de
// formation, 5 ans d'expérience" counts as 8). Max and Last are the
// conservative alternatives.
type DurationPolicy string

const (
	DurationSum  DurationPolicy = "sum"
	DurationMax  DurationPolicy = "max"
	DurationLast DurationPolicy = "last"
)

// LanguageHit records a detected language and, when present in the same
// phrase, its proficiency marker
type LanguageHit struct {
	Language  string `json:"language"`
	Level     string `json:"level,omitempty"`
	WithLevel bool   `json:"with_level"`
}

// Signals is the passive bag of primitive observations extracted from a CV
// text. No scoring or thresholding happens at this stage.
type Signals struct {
	FormationKeywords []string      `json:"formation_keywords"`
	JobKeywords       []string      `json:"job_keywords"`
	PrestigeKeywords  []string      `json:"prestige_keywords"`
	Durations         []int         `json:"durations"`
	TotalYears        int           `json:"total_years"`
	RequiredSkillHits []string      `json:"required_skill_hits"`
	TechnicalHits     []string      `json:"technical_hits"`
	CertificationHits []string      `json:"certification_hits"`
	LanguageHits      []LanguageHit `json:"language_hits"`
	ExperienceHits    []string      `json:"experience_hits"`
	SeniorityHits     []string      `json:"seniority_hits"`
}

// yearsPattern matches "number + an(s)/année(s)" in lowercased text
var yearsPattern = regexp.MustCompile(`(\d+)\s*(?:ann[ée]es?|ans?)\b`)

// phraseSeparators split a CV text into phrases for proficiency co-occurrence
var phraseSeparators = regexp.MustCompile(`[.\n;•|]`)

// Extractor turns raw CV text into Signals using injected vocabulary tables.
// It is a pure function of its inputs and safe for concurrent use.
type Extractor struct {
	vocab  Vocabulary
	policy DurationPolicy
}

// NewExtractor creates an extractor over the given vocabulary
func NewExtractor(vocab Vocabulary, policy DurationPolicy) *Extractor {
	if policy == "" {
		policy = DurationSum
	}
	return &Extractor{vocab: vocab, policy: policy}
}

// Extract scans a lowercased CV text for the offer-aware signal set. It never
// fails: empty or arbitrarily long input yields an empty (or partial) bag.
func (e *Extractor) Extract(off *offer.JobOffer, text string) Signals {
	sig := Signals{}
	if text == "" {
		return sig
	}

	sig.FormationKeywords = matchTerms(text, e.vocab.FormationTerms)
	sig.PrestigeKeywords = matchTerms(text, e.vocab.PrestigiousInstitutions)
	sig.TechnicalHits = matchTerms(text, e.vocab.TechnicalTerms)
	sig.CertificationHits = matchTerms(text, e.vocab.Certifications)
	sig.ExperienceHits = matchTerms(text, e.vocab.ExperienceTerms)
	sig.SeniorityHits = matchTerms(text, e.vocab.SeniorityTerms)

	if off != nil {
		sig.JobKeywords = matchTerms(text, off.TitleKeywords())
		sig.RequiredSkillHits = matchTerms(text, off.NormalizedSkills())
	}

	sig.Durations = extractDurations(text)
	sig.TotalYears = combineDurations(sig.Durations, e.policy)
	sig.LanguageHits = e.extractLanguages(text)

	return sig
}

func extractDurations(text string) []int {
	matches := yearsPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	durations := make([]int, 0, len(matches))
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		durations = append(durations, n)
	}
	return durations
}

func combineDurations(durations []int, policy DurationPolicy) int {
	if len(durations) == 0 {
		return 0
	}
	switch policy {
	case DurationMax:
		max := durations[0]
		for _, d := range durations[1:] {
			if d > max {
				max = d
			}
		}
		return max
	case DurationLast:
		return durations[len(durations)-1]
	default:
		total := 0
		for _, d := range durations {
			total += d
		}
		return total
	}
}

// extractLanguages detects each vocabulary language once, pairing it with a
// proficiency level found in the same phrase
func (e *Extractor) extractLanguages(text string) []LanguageHit {
	phrases := phraseSeparators.Split(text, -1)
	hits := make([]LanguageHit, 0)
	seen := make(map[string]int) // language -> index into hits

	for _, phrase := range phrases {
		for _, lang := range e.vocab.Languages {
			if !strings.Contains(phrase, lang) {
				continue
			}
			level := firstMatch(phrase, e.vocab.ProficiencyLevels)

			if idx, ok := seen[lang]; ok {
				// Upgrade an earlier mention if a level shows up later
				if level != "" && !hits[idx].WithLevel {
					hits[idx].Level = level
					hits[idx].WithLevel = true
				}
				continue
			}
			seen[lang] = len(hits)
			hits = append(hits, LanguageHit{
				Language:  lang,
				Level:     level,
				WithLevel: level != "",
			})
		}
	}
	return hits
}

func matchTerms(text string, terms []string) []string {
	found := make([]string, 0)
	seen := make(map[string]struct{})
	for _, term := range terms {
		if term == "" {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		if strings.Contains(text, term) {
			seen[term] = struct{}{}
			found = append(found, term)
		}
	}
	return found
}

func firstMatch(text string, terms []string) string {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return term
		}
	}
	return ""
}
