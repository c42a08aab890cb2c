package schema

// Share labels used for ranking entries.
const (
	PrimaryLabel   = "Primary"
	SecondaryLabel = "Secondary"
	MinorLabel     = "Minor"
)

// EnrichedRanking adds presentation data to a ReviewerRanking.
type EnrichedRanking struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	ReviewerRanking
}

// GetPlainLabel returns a plain text label for a reviewer's share of the diff.
func GetPlainLabel(percentage float64) string {
	switch {
	case percentage >= 50:
		return PrimaryLabel
	case percentage >= 20:
		return SecondaryLabel
	default:
		return MinorLabel
	}
}

// EnrichRanking adds rank and label to a ranking.
func EnrichRanking(ranking []ReviewerRanking) []EnrichedRanking {
	output := make([]EnrichedRanking, len(ranking))
	for i, r := range ranking {
		output[i] = EnrichedRanking{
			Rank:            i + 1,
			Label:           GetPlainLabel(r.Percentage),
			ReviewerRanking: r,
		}
	}
	return output
}
