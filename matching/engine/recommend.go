package engine

// Recommendation thresholds. Tuning a threshold must not require touching the
// rule logic below.
const (
	ThresholdFormationLow    = 50.0
	ThresholdExperienceLow   = 40.0
	ThresholdSkillsLow       = 60.0
	ThresholdLanguagesLow    = 30.0
	ThresholdFormationHigh   = 80.0
	ThresholdExperienceHigh  = 70.0
	ThresholdTotalExcellent  = 85.0
	ThresholdTotalGood       = 70.0
	ThresholdTotalAcceptable = 50.0
)

// Recommendation messages
const (
	MsgFormationLow      = "Formation insuffisante par rapport au poste"
	MsgExperienceLow     = "Manque d'expérience dans le domaine"
	MsgSkillsLow         = "Compétences techniques à renforcer"
	MsgLanguagesLow      = "Compétences linguistiques limitées"
	MsgPromisingProfile  = "Profil très prometteur"
	MsgVerdictExcellent  = "Excellent candidat pour ce poste"
	MsgVerdictGood       = "Bon candidat pour ce poste"
	MsgVerdictAcceptable = "Candidat acceptable, à approfondir"
	MsgVerdictDeeper     = "Évaluation approfondie recommandée"
)

// Recommend derives guidance strings from the sub-scores and the total. Each
// rule is independent and order-preserving; exactly one terminal verdict is
// appended based on the total score band.
func Recommend(dims DimensionSet, total float64) []string {
	recs := make([]string, 0, 6)

	if dims.Formation.Score < ThresholdFormationLow {
		recs = append(recs, MsgFormationLow)
	}
	if dims.Experience.Score < ThresholdExperienceLow {
		recs = append(recs, MsgExperienceLow)
	}
	if dims.Skills.Score < ThresholdSkillsLow {
		recs = append(recs, MsgSkillsLow)
	}
	if dims.Languages.Score < ThresholdLanguagesLow {
		recs = append(recs, MsgLanguagesLow)
	}
	if dims.Formation.Score >= ThresholdFormationHigh && dims.Experience.Score >= ThresholdExperienceHigh {
		recs = append(recs, MsgPromisingProfile)
	}

	switch {
	case total >= ThresholdTotalExcellent:
		recs = append(recs, MsgVerdictExcellent)
	case total >= ThresholdTotalGood:
		recs = append(recs, MsgVerdictGood)
	case total >= ThresholdTotalAcceptable:
		recs = append(recs, MsgVerdictAcceptable)
	default:
		recs = append(recs, MsgVerdictDeeper)
	}

	return recs
}
