// Package dosage maps patient age categories to drug doses.
// All lookups are pure table reads and safe for concurrent use.
package dosage

import (
	"fmt"
	"strings"

	"github.com/aegismedical/eresus/internal/domain"
)

// AgeCategory is a patient age band used for weight-appropriate dosing
type AgeCategory string

const (
	Adult               AgeCategory = "adult"
	ElevenYears         AgeCategory = "11y"
	TenYears            AgeCategory = "10y"
	NineYears           AgeCategory = "9y"
	EightYears          AgeCategory = "8y"
	SevenYears          AgeCategory = "7y"
	SixYears            AgeCategory = "6y"
	FiveYears           AgeCategory = "5y"
	FourYears           AgeCategory = "4y"
	ThreeYears          AgeCategory = "3y"
	TwoYears            AgeCategory = "2y"
	EighteenMonths      AgeCategory = "18m"
	TwelveMonths        AgeCategory = "12m"
	NineMonths          AgeCategory = "9m"
	SixMonths           AgeCategory = "6m"
	ThreeMonths         AgeCategory = "3m"
	OneMonth            AgeCategory = "1m"
	PostBirthToOneMonth AgeCategory = "neonate"
	AtBirth             AgeCategory = "birth"
)

// Categories lists every age category, oldest first
var Categories = []AgeCategory{
	Adult, ElevenYears, TenYears, NineYears, EightYears, SevenYears, SixYears, FiveYears,
	FourYears, ThreeYears, TwoYears, EighteenMonths, TwelveMonths, NineMonths, SixMonths,
	ThreeMonths, OneMonth, PostBirthToOneMonth, AtBirth,
}

var descriptions = map[AgeCategory]string{
	Adult:               "≥12 years / Adult",
	ElevenYears:         "11 years",
	TenYears:            "10 years",
	NineYears:           "9 years",
	EightYears:          "8 years",
	SevenYears:          "7 years",
	SixYears:            "6 years",
	FiveYears:           "5 years",
	FourYears:           "4 years",
	ThreeYears:          "3 years",
	TwoYears:            "2 years",
	EighteenMonths:      "18 months",
	TwelveMonths:        "12 months",
	NineMonths:          "9 months",
	SixMonths:           "6 months",
	ThreeMonths:         "3 months",
	OneMonth:            "1 month",
	PostBirthToOneMonth: "Post-birth to 1 month",
	AtBirth:             "At birth",
}

// Description returns the human-readable label for the category
func (a AgeCategory) Description() string {
	if d, ok := descriptions[a]; ok {
		return d
	}
	return string(a)
}

// ParseAgeCategory accepts either the short code ("adult", "18m") or the description
func ParseAgeCategory(s string) (AgeCategory, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) || strings.EqualFold(descriptions[c], s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownAgeCategory, s)
}

// Drug identifies a drug the advisor may know a table for
type Drug string

const (
	Adrenaline Drug = "adrenaline"
	Amiodarone Drug = "amiodarone"
	Lidocaine  Drug = "lidocaine"
)

// Status says whether a dose lookup produced a value
type Status int

const (
	// Unknown means no table covers the request (or prompts are disabled)
	Unknown Status = iota
	// Resolved means Text holds the dose
	Resolved
	// NotApplicable means the drug is not given at this age
	NotApplicable
)

// Dose is the result of a dose lookup
type Dose struct {
	Status Status
	Text   string
}

// Resolved reports whether the dose carries a value
func (d Dose) Resolved() bool {
	return d.Status == Resolved
}

var adrenalineDoses = map[AgeCategory]string{
	Adult:               "1mg",
	ElevenYears:         "350mcg",
	TenYears:            "320mcg",
	NineYears:           "300mcg",
	EightYears:          "260mcg",
	SevenYears:          "230mcg",
	SixYears:            "210mcg",
	FiveYears:           "190mcg",
	FourYears:           "160mcg",
	ThreeYears:          "140mcg",
	TwoYears:            "120mcg",
	EighteenMonths:      "110mcg",
	TwelveMonths:        "100mcg",
	NineMonths:          "90mcg",
	SixMonths:           "80mcg",
	ThreeMonths:         "60mcg",
	OneMonth:            "50mcg",
	PostBirthToOneMonth: "50mcg",
	AtBirth:             "70mcg",
}

// Adult amiodarone depends on the dose number and is handled separately.
// A missing entry for a known category means not applicable.
var amiodaroneDoses = map[AgeCategory]string{
	ElevenYears:    "180mg",
	TenYears:       "160mg",
	NineYears:      "150mg",
	EightYears:     "130mg",
	SevenYears:     "120mg",
	SixYears:       "100mg",
	FiveYears:      "100mg",
	FourYears:      "80mg",
	ThreeYears:     "70mg",
	TwoYears:       "60mg",
	EighteenMonths: "55mg",
	TwelveMonths:   "50mg",
	NineMonths:     "45mg",
	SixMonths:      "40mg",
	ThreeMonths:    "30mg",
	OneMonth:       "25mg",
}

// AdrenalineDose returns the adrenaline dose for the age category
func AdrenalineDose(age AgeCategory) (string, bool) {
	dose, ok := adrenalineDoses[age]
	return dose, ok
}

// AmiodaroneDose returns the amiodarone dose for the age category and dose number.
// It returns false for ages at or before one month, where amiodarone is not given.
func AmiodaroneDose(age AgeCategory, doseNumber int) (string, bool) {
	if age == Adult {
		if doseNumber == 1 {
			return "300mg", true
		}
		return "150mg", true
	}
	dose, ok := amiodaroneDoses[age]
	return dose, ok
}

// Lookup resolves a dose for any drug. Unknown categories and drugs without a table
// produce Unknown; amiodarone for neonates produces NotApplicable.
func Lookup(age AgeCategory, drug Drug, doseNumber int) Dose {
	if _, known := descriptions[age]; !known {
		return Dose{Status: Unknown}
	}

	switch drug {
	case Adrenaline:
		if text, ok := AdrenalineDose(age); ok {
			return Dose{Status: Resolved, Text: text}
		}
		return Dose{Status: Unknown}
	case Amiodarone:
		if text, ok := AmiodaroneDose(age, doseNumber); ok {
			return Dose{Status: Resolved, Text: text}
		}
		return Dose{Status: NotApplicable}
	default:
		return Dose{Status: Unknown}
	}
}
