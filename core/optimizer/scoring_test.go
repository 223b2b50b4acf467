package optimizer

import (
	"testing"

	"carbon-planner/core/estimator"
	"carbon-planner/core/models"
)

func candidateAt(provider, region string, window models.TimeWindow, score float64) Candidate {
	return Candidate{
		Placement: estimator.Placement{Region: models.Region{Code: region}, Provider: models.Provider{Name: provider}},
		Window:    window,
		Score:     score,
	}
}

func TestRankCandidatesPrefersImmediateOnTie(t *testing.T) {
	weekend := models.TimeWindow{Label: "Weekend low-carbon window", DelayHours: 48, CarbonFactor: 1, PriceFactor: 1}
	candidates := []Candidate{
		candidateAt("GCP", "SE", weekend, 0.25),
		candidateAt("GCP", "SE", models.ImmediateWindow, 0.25),
	}

	rankCandidates(candidates)
	if candidates[0].Window.Deferred() {
		t.Fatalf("rankCandidates() first = %q, expected the immediate window", candidates[0].Window.Label)
	}
}

func TestRankCandidatesTieOrder(t *testing.T) {
	candidates := []Candidate{
		candidateAt("GCP", "SE", models.ImmediateWindow, 0.5),
		candidateAt("AWS", "SE", models.ImmediateWindow, 0.5),
		candidateAt("AWS", "FR", models.ImmediateWindow, 0.5),
		candidateAt("OVHcloud", "FR", models.ImmediateWindow, 0.1),
	}

	rankCandidates(candidates)
	expected := []string{"OVHcloud/FR", "AWS/FR", "AWS/SE", "GCP/SE"}
	for i, c := range candidates {
		if got := c.Placement.Provider.Name + "/" + c.Placement.Region.Code; got != expected[i] {
			t.Fatalf("rankCandidates()[%d] = %s, expected %s", i, got, expected[i])
		}
	}
}

// Scores a fraction of scoreEpsilon apart chain across a wider gap; the order
// must still be a consistent total order on the tie-breakers.
func TestRankCandidatesNearEqualScoresAreTransitive(t *testing.T) {
	base := 0.3
	candidates := []Candidate{
		candidateAt("C", "SE", models.ImmediateWindow, base+0.8*scoreEpsilon),
		candidateAt("B", "SE", models.ImmediateWindow, base+0.4*scoreEpsilon),
		candidateAt("A", "SE", models.ImmediateWindow, base),
	}

	rankCandidates(candidates)
	for i := 1; i < len(candidates); i++ {
		a, b := candidates[i-1], candidates[i]
		if scoreKey(a.Score) > scoreKey(b.Score) {
			t.Fatalf("rankCandidates() put %s (%v) before %s (%v)", a.Placement.Provider.Name, a.Score, b.Placement.Provider.Name, b.Score)
		}
		if scoreKey(a.Score) == scoreKey(b.Score) && a.Placement.Provider.Name > b.Placement.Provider.Name {
			t.Fatalf("rankCandidates() tie order %s before %s", a.Placement.Provider.Name, b.Placement.Provider.Name)
		}
	}
}

func TestScoreKeyTiesFloatNoise(t *testing.T) {
	if scoreKey(0.1+0.2) != scoreKey(0.3) {
		t.Fatalf("scoreKey(0.1+0.2) = %v, expected scoreKey(0.3) = %v", scoreKey(0.1+0.2), scoreKey(0.3))
	}
	if scoreKey(0.3) == scoreKey(0.3+10*scoreEpsilon) {
		t.Fatalf("scoreKey() merged scores %v apart", 10*scoreEpsilon)
	}
}
