// Package extract implements the rule-based document text heuristics used in
// place of real OCR parsing.
package extract

import (
	"regexp"
	"strings"
)

var aadhaarKeywords = []string{"aadhaar", "aadhar", "government of india", "unique identification"}

var aadhaarNumberRe = regexp.MustCompile(`\d{4}\s?\d{4}\s?\d{4}`)

// MaskedAadhaarNumber is returned when only a keyword matched and no number
// could be read from the text.
const MaskedAadhaarNumber = "XXXX XXXX XXXX"

type AadhaarResult struct {
	Verified      bool
	AadhaarNumber string
}

// VerifyAadhaar accepts the document when a known keyword appears
// (case-insensitive) or a 12-digit number pattern is present.
func VerifyAadhaar(text string) AadhaarResult {
	lower := strings.ToLower(text)

	keywordHit := false
	for _, kw := range aadhaarKeywords {
		if strings.Contains(lower, kw) {
			keywordHit = true
			break
		}
	}

	number := aadhaarNumberRe.FindString(text)

	if !keywordHit && number == "" {
		return AadhaarResult{}
	}
	if number == "" {
		number = MaskedAadhaarNumber
	}
	return AadhaarResult{Verified: true, AadhaarNumber: number}
}
