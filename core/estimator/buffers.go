package estimator

import (
	"fmt"

	"carbon-planner/core/models"
)

// Buffers are the worst-case heuristics applied on top of the nominal figures
type Buffers struct {
	Overrun           float64 // Multiplier on runtime for scheduling/retry slack
	Pricing           float64 // Multiplier on provider rates for pricing uncertainty
	CO2SafetyKg       float64 // Flat kg added to every CO2 ceiling
	CostVarianceRatio float64 // Relative cost spread above which confidence is LOW
}

// DefaultBuffers returns the stock guardrail buffers
func DefaultBuffers() Buffers {
	return Buffers{
		Overrun:           1.15,
		Pricing:           1.10,
		CO2SafetyKg:       0.5,
		CostVarianceRatio: 0.35,
	}
}

// Validate rejects buffers that would shrink a ceiling below the nominal value
func (b Buffers) Validate() error {
	if b.Overrun < 1 {
		return fmt.Errorf("overrun buffer must be >= 1, got %g", b.Overrun)
	}
	if b.Pricing < 1 {
		return fmt.Errorf("pricing buffer must be >= 1, got %g", b.Pricing)
	}
	if b.CO2SafetyKg < 0 {
		return fmt.Errorf("co2 safety buffer must be >= 0, got %g", b.CO2SafetyKg)
	}
	if b.CostVarianceRatio <= 0 || b.CostVarianceRatio >= 1 {
		return fmt.Errorf("cost variance ratio must be in (0, 1), got %g", b.CostVarianceRatio)
	}
	return nil
}

// CPUBaselineKW is the draw assumed for CPU-only jobs
const CPUBaselineKW = 0.35

// PowerCeilingKW returns the node-level draw ceiling for a GPU class, before PUE
func PowerCeilingKW(class models.GPUClass) (float64, error) {
	switch class {
	case models.GPUNone:
		return CPUBaselineKW, nil
	case models.GPUT4:
		return 0.60, nil
	case models.GPUL4:
		return 0.75, nil
	case models.GPUA10:
		return 1.00, nil
	case models.GPUA100:
		return 2.20, nil
	case models.GPUH100:
		return 3.20, nil
	}
	return 0, fmt.Errorf("unknown gpu class %q", class)
}
