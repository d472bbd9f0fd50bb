// Package scoring holds the additive eligibility model. Each rule adds its
// contribution to the score and emits a factor record explaining it, in
// evaluation order.
package scoring

import (
	"math"
	"strings"
)

type Features struct {
	CreditScore    int
	Income         float64
	LoanAmount     float64
	EMI            float64
	EmploymentType string
}

// Factor is one explanation entry. Value keeps the raw feature value (number
// or string) for display.
type Factor struct {
	Feature   string  `json:"feature"`
	Impact    float64 `json:"impact"`
	Value     any     `json:"value"`
	Direction string  `json:"direction"` // "positive" | "neutral" | "negative"
}

type Prediction struct {
	EligibilityScore float64  `json:"eligibility_score"`
	Eligible         bool     `json:"eligible"`
	Factors          []Factor `json:"shap_explanation"`
}

// Score computes the eligibility prediction. Note the lowest credit band:
// it adds +0.05 to the score while reporting an impact of -0.25; the model
// has always behaved this way and downstream consumers expect it.
func Score(f Features) Prediction {
	score := 0.0
	var factors []Factor

	switch {
	case f.CreditScore >= 750:
		score += 0.35
		factors = append(factors, Factor{"Credit Score", 0.35, f.CreditScore, "positive"})
	case f.CreditScore >= 700:
		score += 0.25
		factors = append(factors, Factor{"Credit Score", 0.25, f.CreditScore, "positive"})
	case f.CreditScore >= 650:
		score += 0.15
		factors = append(factors, Factor{"Credit Score", 0.15, f.CreditScore, "neutral"})
	default:
		score += 0.05
		factors = append(factors, Factor{"Credit Score", -0.25, f.CreditScore, "negative"})
	}

	if f.Income > 0 && f.LoanAmount > 0 {
		dti := f.LoanAmount / (f.Income * 12)
		switch {
		case dti < 3:
			score += 0.25
			factors = append(factors, Factor{"Debt-to-Income Ratio", 0.25, round2(dti), "positive"})
		case dti < 4:
			score += 0.15
			factors = append(factors, Factor{"Debt-to-Income Ratio", 0.15, round2(dti), "neutral"})
		default:
			factors = append(factors, Factor{"Debt-to-Income Ratio", -0.15, round2(dti), "negative"})
		}
	}

	if f.Income > 0 && f.EMI > 0 {
		ratio := f.EMI / f.Income
		switch {
		case ratio < 0.3:
			score += 0.20
			factors = append(factors, Factor{"EMI-to-Income Ratio", 0.20, round2(ratio), "positive"})
		case ratio < 0.4:
			score += 0.10
			factors = append(factors, Factor{"EMI-to-Income Ratio", 0.10, round2(ratio), "neutral"})
		default:
			factors = append(factors, Factor{"EMI-to-Income Ratio", -0.20, round2(ratio), "negative"})
		}
	}

	switch strings.ToLower(f.EmploymentType) {
	case "salaried", "permanent":
		score += 0.15
		factors = append(factors, Factor{"Employment Type", 0.15, f.EmploymentType, "positive"})
	case "self-employed", "business":
		score += 0.10
		factors = append(factors, Factor{"Employment Type", 0.10, f.EmploymentType, "neutral"})
	default:
		score += 0.05
		factors = append(factors, Factor{"Employment Type", 0.05, f.EmploymentType, "neutral"})
	}

	switch {
	case f.Income >= 50000:
		score += 0.10
		factors = append(factors, Factor{"Monthly Income", 0.10, f.Income, "positive"})
	case f.Income >= 30000:
		score += 0.05
		factors = append(factors, Factor{"Monthly Income", 0.05, f.Income, "neutral"})
	}

	score = math.Min(score, 1.0)
	score = round2(score)

	return Prediction{
		EligibilityScore: score,
		// credit-score floor is a hard gate independent of the score
		Eligible: score >= 0.65 && f.CreditScore >= 650,
		Factors:  factors,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
