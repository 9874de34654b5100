package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trustners-ux/trustner-platform-sub000/internal/models"
)

func TestHealthInsuranceGap(t *testing.T) {
	tests := []struct {
		name     string
		tier     models.CityTier
		cover    int64
		want     models.InsuranceGap
		wantRecs int
	}{
		{"metro uninsured", models.CityMetro, 0, models.InsuranceGap{Current: 0, Recommended: 1000000, Gap: 1000000}, 1},
		{"metro partly covered", models.CityMetro, 500000, models.InsuranceGap{Current: 500000, Recommended: 1000000, Gap: 500000}, 1},
		{"non metro covered", models.CityNonMetro, 500000, models.InsuranceGap{Current: 500000, Recommended: 500000, Gap: 0}, 0},
		{"non metro short", models.CityNonMetro, 300000, models.InsuranceGap{Current: 300000, Recommended: 500000, Gap: 200000}, 1},
		{"unknown tier uses non metro", "", 300000, models.InsuranceGap{Current: 300000, Recommended: 500000, Gap: 200000}, 1},
		{"over covered", models.CityMetro, 2500000, models.InsuranceGap{Current: 2500000, Recommended: 1000000, Gap: 0}, 0},
		{"negative cover", models.CityNonMetro, -100, models.InsuranceGap{Current: 0, Recommended: 500000, Gap: 500000}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, recs := HealthInsuranceGap(tt.tier, tt.cover, DefaultConfig())
			assert.Equal(t, tt.want, got)
			assert.Len(t, recs, tt.wantRecs)
			for _, r := range recs {
				assert.Equal(t, models.PriorityHigh, r.Priority)
				assert.Contains(t, r.Text, FormatLakh(tt.want.Recommended))
			}
		})
	}
}

func TestTermInsuranceGap(t *testing.T) {
	got, recs := TermInsuranceGap(1200000, 5000000, DefaultConfig())
	assert.Equal(t, models.InsuranceGap{Current: 5000000, Recommended: 12000000, Gap: 7000000}, got)
	if assert.Len(t, recs, 1) {
		assert.Contains(t, recs[0].Text, "₹70L")
		assert.Contains(t, recs[0].Text, "₹1.2Cr")
	}

	got, recs = TermInsuranceGap(1200000, 20000000, DefaultConfig())
	assert.Zero(t, got.Gap)
	assert.Empty(t, recs)

	got, _ = TermInsuranceGap(-1, 0, DefaultConfig())
	assert.Equal(t, models.InsuranceGap{}, got)
}
