package engine

import (
	"sort"

	"github.com/trustners-ux/trustner-platform-sub000/internal/models"
)

// RecommendationGroup tags a batch of recommendations with the category
// that produced them.
type RecommendationGroup struct {
	Category        models.Category
	Recommendations []models.Recommendation
}

// GroupsFromScores turns category scores into recommendation groups.
func GroupsFromScores(scores []models.CategoryScore) []RecommendationGroup {
	groups := make([]RecommendationGroup, 0, len(scores))
	for _, s := range scores {
		groups = append(groups, RecommendationGroup{Category: s.Category, Recommendations: s.Recommendations})
	}
	return groups
}

// GenerateActionItems flattens the groups into action items ordered by
// priority. Items of equal priority keep their input order.
func GenerateActionItems(groups ...RecommendationGroup) []models.ActionItem {
	items := []models.ActionItem{}
	for _, g := range groups {
		for _, r := range g.Recommendations {
			p := r.Priority
			if p.Rank() > models.PriorityLow.Rank() {
				p = models.PriorityLow
			}
			items = append(items, models.ActionItem{Category: g.Category, Priority: p, Text: r.Text})
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Priority.Rank() < items[j].Priority.Rank()
	})
	return items
}

// OverallScore sums category scores and bounds the total to 0-100.
func OverallScore(scores []models.CategoryScore) int {
	var total int
	for _, s := range scores {
		total += clampInt(s.Score, 0, s.MaxScore)
	}
	return clampInt(total, 0, 100)
}
