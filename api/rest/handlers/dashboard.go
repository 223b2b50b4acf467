package handlers

import (
	"net/http"

	"carbon-planner/core/monitoring"
)

// DashboardHandler handles dashboard API requests
type DashboardHandler struct {
	costTracker *monitoring.CostTracker
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(costTracker *monitoring.CostTracker) *DashboardHandler {
	return &DashboardHandler{
		costTracker: costTracker,
	}
}

// GetCostMetrics handles GET /v1/dashboard: latest ceilings against simulated actuals
func (h *DashboardHandler) GetCostMetrics(w http.ResponseWriter, r *http.Request) {
	projects := h.costTracker.Snapshot()

	totalCeiling := 0.0
	totalActual := 0.0
	items := make([]map[string]interface{}, 0, len(projects))
	for _, pc := range projects {
		totalCeiling += pc.Ceiling.MaxCostUSD
		totalActual += pc.LastCost

		item := map[string]interface{}{
			"project_id": pc.ProjectID,
			"runs":       pc.Runs,
			"ceiling": map[string]interface{}{
				"max_cost_usd": pc.Ceiling.MaxCostUSD,
				"max_co2_kg":   pc.Ceiling.MaxCO2Kg,
				"max_power_kw": pc.Ceiling.MaxPowerKW,
			},
			"actual": map[string]interface{}{
				"last_cost_usd":       pc.LastCost,
				"last_co2_kg":         pc.LastCO2Kg,
				"cumulative_cost_usd": pc.CostUSD,
				"cumulative_co2_kg":   pc.CO2Kg,
				"peak_power_kw":       pc.PeakPowerKW,
			},
		}
		if cost, co2, ok := h.costTracker.Headroom(pc.ProjectID); ok {
			item["headroom"] = map[string]interface{}{
				"cost_usd": cost,
				"co2_kg":   co2,
			}
		}
		items = append(items, item)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"costs": map[string]interface{}{
			"ceiling_usd": totalCeiling,
			"actual_usd":  totalActual,
		},
		"items": items,
	})
}
