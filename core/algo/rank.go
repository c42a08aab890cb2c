// Package algo ranks suggested reviewers.
package algo

import (
	"sort"

	"github.com/huangsam/reviewers/core/agg"
	"github.com/huangsam/reviewers/schema"
)

// RankReviewers orders authors by the number of changed lines they last
// touched, most first. currentUser is excluded before shares are computed,
// as are authors with no lines. Ties are broken by author name.
// An empty slice is returned when no lines are attributed.
func RankReviewers(records []*schema.ChangeRecord, currentUser string) []schema.ReviewerRanking {
	counts := agg.TallyAuthors(records)
	delete(counts, currentUser)

	total := 0
	ranking := make([]schema.ReviewerRanking, 0, len(counts))
	for author, count := range counts {
		if count <= 0 {
			continue
		}
		total += count
		ranking = append(ranking, schema.ReviewerRanking{Author: author, LineCount: count})
	}
	if total == 0 {
		return []schema.ReviewerRanking{}
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].LineCount != ranking[j].LineCount {
			return ranking[i].LineCount > ranking[j].LineCount
		}
		return ranking[i].Author < ranking[j].Author
	})
	for i := range ranking {
		ranking[i].Percentage = percentOf(ranking[i].LineCount, total)
	}
	return ranking
}

// LimitRanking returns at most limit entries of an already ranked slice.
// If limit is greater than the number of entries, all are returned.
func LimitRanking(ranking []schema.ReviewerRanking, limit int) []schema.ReviewerRanking {
	if limit >= 0 && len(ranking) > limit {
		return ranking[:limit]
	}
	return ranking
}

// percentOf returns count as a percentage of total, rounded half to even
// at two decimals. Integer arithmetic keeps exact halves such as 0.125 exact.
func percentOf(count, total int) float64 {
	const scale = 100
	num := count * 100 * scale
	q, r := num/total, num%total
	if 2*r > total || (2*r == total && q%2 == 1) {
		q++
	}
	return float64(q) / scale
}
