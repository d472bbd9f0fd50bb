package extract

import (
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

// Patterns are tried in order; the first one with any match wins for its
// category.
var incomePatterns = []*regexp.Regexp{
	regexp.MustCompile(`salary\s*credit\s*[:\-]?\s*₹?\s*([\d,]+)`),
	regexp.MustCompile(`credit\s*[:\-]?\s*₹?\s*([\d,]+)`),
	regexp.MustCompile(`income\s*[:\-]?\s*₹?\s*([\d,]+)`),
}

var emiPatterns = []*regexp.Regexp{
	regexp.MustCompile(`emi\s*[:\-]?\s*₹?\s*([\d,]+)`),
	regexp.MustCompile(`loan\s*debit\s*[:\-]?\s*₹?\s*([\d,]+)`),
	regexp.MustCompile(`debit\s*[:\-]?\s*₹?\s*([\d,]+)`),
}

// Fallback ranges used when no pattern matches, standing in for absent OCR.
const (
	fallbackIncomeMin = 30000
	fallbackIncomeMax = 80000
	fallbackEMIMin    = 5000
	fallbackEMIMax    = 20000
)

type BankStatementResult struct {
	IncomeExtracted float64
	EMIDetected     float64
}

// BankStatementExtractor pulls income and EMI amounts out of statement text.
// The fallback randomness is injected so tests can seed it.
type BankStatementExtractor struct {
	rng *rand.Rand
}

func NewBankStatementExtractor(rng *rand.Rand) *BankStatementExtractor {
	return &BankStatementExtractor{rng: rng}
}

// Process extracts the maximum matched income and the mean matched EMI.
// A category with no match at all gets a uniformly-random placeholder from
// its documented range.
func (e *BankStatementExtractor) Process(text string) BankStatementResult {
	lower := strings.ToLower(text)

	income := 0.0
	if amounts := firstMatch(incomePatterns, lower); len(amounts) > 0 {
		income = amounts[0]
		for _, a := range amounts[1:] {
			income = math.Max(income, a)
		}
	}

	emi := 0.0
	if amounts := firstMatch(emiPatterns, lower); len(amounts) > 0 {
		sum := 0.0
		for _, a := range amounts {
			sum += a
		}
		emi = sum / float64(len(amounts))
	}

	if income == 0 {
		income = fallbackIncomeMin + e.rng.Float64()*(fallbackIncomeMax-fallbackIncomeMin)
	}
	if emi == 0 {
		emi = fallbackEMIMin + e.rng.Float64()*(fallbackEMIMax-fallbackEMIMin)
	}

	return BankStatementResult{
		IncomeExtracted: round2(income),
		EMIDetected:     round2(emi),
	}
}

func firstMatch(patterns []*regexp.Regexp, text string) []float64 {
	for _, p := range patterns {
		groups := p.FindAllStringSubmatch(text, -1)
		if len(groups) == 0 {
			continue
		}
		amounts := make([]float64, 0, len(groups))
		for _, g := range groups {
			v, err := strconv.ParseFloat(strings.ReplaceAll(g[1], ",", ""), 64)
			if err != nil {
				continue
			}
			amounts = append(amounts, v)
		}
		if len(amounts) > 0 {
			return amounts
		}
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
