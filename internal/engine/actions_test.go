package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustners-ux/trustner-platform-sub000/internal/models"
)

func TestGenerateActionItems_StableByPriority(t *testing.T) {
	items := GenerateActionItems(
		RecommendationGroup{Category: models.CategoryDebt, Recommendations: []models.Recommendation{
			{Text: "d-low", Priority: models.PriorityLow},
			{Text: "d-urgent", Priority: models.PriorityUrgent},
		}},
		RecommendationGroup{Category: models.CategoryTax, Recommendations: []models.Recommendation{
			{Text: "t-medium", Priority: models.PriorityMedium},
			{Text: "t-urgent", Priority: models.PriorityUrgent},
			{Text: "t-unknown", Priority: "someday"},
		}},
		RecommendationGroup{Category: models.CategoryGoals},
	)

	var texts []string
	for _, it := range items {
		texts = append(texts, it.Text)
	}
	assert.Equal(t, []string{"d-urgent", "t-urgent", "t-medium", "d-low", "t-unknown"}, texts)
	assert.Equal(t, models.PriorityLow, items[4].Priority)
	assert.Equal(t, models.CategoryTax, items[1].Category)
}

func TestGenerateActionItems_Empty(t *testing.T) {
	items := GenerateActionItems()
	require.NotNil(t, items)
	assert.Empty(t, items)
}

func TestOverallScore(t *testing.T) {
	scores := []models.CategoryScore{
		{Score: 20, MaxScore: 20},
		{Score: 25, MaxScore: 20},
		{Score: -3, MaxScore: 20},
		{Score: 10, MaxScore: 20},
	}
	assert.Equal(t, 50, OverallScore(scores))
	assert.Equal(t, 0, OverallScore(nil))
}
