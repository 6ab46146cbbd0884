package offer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Abraxas-365/sift/pkg/kernel"
)

// JobOffer is the immutable description of the position candidates are scored against
type JobOffer struct {
	ID                    kernel.OfferID `json:"id"`
	Title                 string         `json:"title"`
	Department            string         `json:"department"`
	Description           string         `json:"description"`
	RequiredSkills        []string       `json:"required_skills"`
	ExperienceRequirement string         `json:"experience_requirement"`
}

// ExperienceBand is the [min, max] years-of-experience range parsed from the
// free-text requirement
type ExperienceBand struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Default band when the requirement text cannot be interpreted
var defaultBand = ExperienceBand{Min: 2, Max: 5}

var (
	rangePattern  = regexp.MustCompile(`(\d+)\s*(?:-|à|a|/)\s*(\d+)`)
	singlePattern = regexp.MustCompile(`(\d+)`)
)

// ParseExperienceBand interprets a free-text experience requirement such as
// "débutant", "senior" or "3-5 ans" into a year band. Unparseable input falls
// back to [2,5].
func ParseExperienceBand(requirement string) ExperienceBand {
	text := strings.ToLower(strings.TrimSpace(requirement))
	if text == "" {
		return defaultBand
	}

	if m := rangePattern.FindStringSubmatch(text); m != nil {
		min, _ := strconv.Atoi(m[1])
		max, _ := strconv.Atoi(m[2])
		if max < min {
			min, max = max, min
		}
		return ExperienceBand{Min: min, Max: max}
	}

	if m := singlePattern.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return ExperienceBand{Min: n, Max: n + 3}
	}

	switch {
	case containsAny(text, "débutant", "debutant", "junior", "stagiaire"):
		return ExperienceBand{Min: 0, Max: 2}
	case containsAny(text, "confirmé", "confirme", "intermédiaire", "intermediaire"):
		return ExperienceBand{Min: 2, Max: 5}
	case containsAny(text, "senior", "expert", "expérimenté", "experimente"):
		return ExperienceBand{Min: 5, Max: 15}
	}

	return defaultBand
}

// ExperienceBand returns the parsed year band for this offer
func (o *JobOffer) ExperienceBand() ExperienceBand {
	return ParseExperienceBand(o.ExperienceRequirement)
}

// NormalizedSkills returns the required skills lowercased with blanks removed
func (o *JobOffer) NormalizedSkills() []string {
	skills := make([]string, 0, len(o.RequiredSkills))
	for _, s := range o.RequiredSkills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

// HasRequiredSkills checks if the offer specifies at least one skill
func (o *JobOffer) HasRequiredSkills() bool {
	return len(o.NormalizedSkills()) > 0
}

// TitleKeywords tokenizes the offer title and description into scoring keywords,
// keeping only words long enough to carry signal
func (o *JobOffer) TitleKeywords() []string {
	const minKeywordLen = 4

	seen := make(map[string]struct{})
	keywords := make([]string, 0)
	for _, source := range []string{o.Title, o.Description} {
		for _, word := range strings.FieldsFunc(strings.ToLower(source), func(r rune) bool {
			return !isWordRune(r)
		}) {
			if len([]rune(word)) < minKeywordLen {
				continue
			}
			if _, ok := seen[word]; ok {
				continue
			}
			seen[word] = struct{}{}
			keywords = append(keywords, word)
		}
	}
	return keywords
}

func isWordRune(r rune) bool {
	return r == '-' || r == '\'' ||
		(r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r > 127
}

func containsAny(text string, terms ...string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}
