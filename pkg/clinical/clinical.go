// Package clinical holds the derived clinical scores recorded with each
// hepatology consultation. Every function here is pure.
package clinical

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// FIB-4 interpretation thresholds.
const (
	FIB4LowRiskBelow  = 1.45
	FIB4HighRiskAbove = 3.25
)

type FIB4Risk string

const (
	FIB4RiskLow           FIB4Risk = "low"
	FIB4RiskIndeterminate FIB4Risk = "indeterminate"
	FIB4RiskHigh          FIB4Risk = "high"
)

// BMI returns weight / (height/100)^2 rounded to one decimal place.
// ok is false when either input is zero, in which case no value is computed.
func BMI(weightKg, heightCm float64) (bmi float64, ok bool) {
	if weightKg == 0 || heightCm == 0 {
		return 0, false
	}
	meters := heightCm / 100
	return round(weightKg/(meters*meters), 1), true
}

// AgeAt returns the number of whole years between dob and ref. The age is
// incremented on the birthday itself, not the day after.
func AgeAt(dob, ref time.Time) int {
	by, bm, bd := dob.Date()
	ry, rm, rd := ref.Date()

	age := ry - by
	if rm < bm || (rm == bm && rd < bd) {
		age--
	}
	return age
}

// FIB4Computable reports whether FIB4 yields a real score for the inputs.
func FIB4Computable(age int, ast, alt, platelets float64) bool {
	return age > 0 && ast != 0 && alt != 0 && platelets != 0
}

// FIB4 returns (age * AST) / (platelets * sqrt(ALT)) rounded to two decimals.
// It returns 0 when the score is not computable.
func FIB4(age int, ast, alt, platelets float64) float64 {
	if !FIB4Computable(age, ast, alt, platelets) {
		return 0
	}
	score := (float64(age) * ast) / (platelets * math.Sqrt(alt))
	return round(score, 2)
}

// FIB4At derives the age at the consultation date and computes FIB-4.
func FIB4At(dob, consultationDate time.Time, ast, alt, platelets float64) float64 {
	return FIB4(AgeAt(dob, consultationDate), ast, alt, platelets)
}

// ClassifyFIB4 maps a score onto the usual clinical bands. It is a reading
// aid only; nothing in the tracker gates on it.
func ClassifyFIB4(score float64) FIB4Risk {
	switch {
	case score < FIB4LowRiskBelow:
		return FIB4RiskLow
	case score > FIB4HighRiskAbove:
		return FIB4RiskHigh
	default:
		return FIB4RiskIndeterminate
	}
}

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
