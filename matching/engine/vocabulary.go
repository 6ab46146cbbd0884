package engine

// Vocabulary holds the keyword tables the signal extractor matches against.
// It is injected so deployments can tune detection without code changes
// (e.g. loading a YAML file through the config layer).
type Vocabulary struct {
	// Degree words, institution words and fields of study
	FormationTerms []string `json:"formation_terms" mapstructure:"formation_terms"`

	// Institution names that grant a flat formation bonus
	PrestigiousInstitutions []string `json:"prestigious_institutions" mapstructure:"prestigious_institutions"`

	// Generic technical terms counted toward the skills score
	TechnicalTerms []string `json:"technical_terms" mapstructure:"technical_terms"`

	// Certification and vendor names
	Certifications []string `json:"certifications" mapstructure:"certifications"`

	// Languages that can be detected in a CV
	Languages []string `json:"languages" mapstructure:"languages"`

	// Proficiency markers searched near a language mention
	ProficiencyLevels []string `json:"proficiency_levels" mapstructure:"proficiency_levels"`

	// Generic experience vocabulary (contract types, internships, missions)
	ExperienceTerms []string `json:"experience_terms" mapstructure:"experience_terms"`

	// Seniority markers granting the experience bonus
	SeniorityTerms []string `json:"seniority_terms" mapstructure:"seniority_terms"`

	// Locally-significant additional language granting a flat bonus when present
	BonusLanguage string `json:"bonus_language" mapstructure:"bonus_language"`
}

// DefaultVocabulary returns the built-in keyword tables, tuned for
// French-language CVs
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		FormationTerms: []string{
			"master", "licence", "doctorat", "thèse", "ingénieur", "ingénierie",
			"bac", "bts", "dut", "but", "mba", "diplôme", "diplômé",
			"université", "école", "faculté", "formation", "certificat",
			"informatique", "gestion", "finance", "marketing", "comptabilité",
			"droit", "économie", "mathématiques", "statistiques",
		},
		PrestigiousInstitutions: []string{
			"polytechnique", "centrale", "mines", "ponts", "supélec",
			"hec", "essec", "escp", "edhec", "sciences po",
			"normale supérieure", "dauphine", "insa", "epita", "epitech", "42",
		},
		TechnicalTerms: []string{
			"java", "python", "javascript", "typescript", "go", "c++", "c#",
			"php", "ruby", "sql", "nosql", "html", "css", "react", "angular",
			"vue", "node", "spring", "django", "docker", "kubernetes", "git",
			"linux", "cloud", "api", "rest", "microservices", "agile", "scrum",
			"devops", "ci/cd", "terraform", "ansible",
		},
		Certifications: []string{
			"aws", "azure", "google cloud", "gcp", "cisco", "ccna", "oracle",
			"microsoft", "pmp", "prince2", "itil", "scrum master", "psm",
			"safe", "cissp", "comptia", "toeic", "toefl",
		},
		Languages: []string{
			"français", "anglais", "espagnol", "allemand", "italien",
			"portugais", "arabe", "chinois", "mandarin", "japonais", "russe",
			"néerlandais",
		},
		ProficiencyLevels: []string{
			"natif", "bilingue", "courant", "professionnel", "avancé",
			"intermédiaire", "notions", "scolaire", "a2", "b1", "b2", "c1", "c2",
		},
		ExperienceTerms: []string{
			"expérience", "stage", "alternance", "apprentissage", "cdi", "cdd",
			"freelance", "mission", "projet", "consultant", "poste",
		},
		SeniorityTerms: []string{
			"senior", "lead", "principal", "chef de projet", "chef d'équipe",
			"manager", "responsable", "directeur", "architecte",
		},
		BonusLanguage: "anglais",
	}
}
