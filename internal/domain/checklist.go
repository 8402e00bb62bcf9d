package domain

import "sort"

// ReversibleCauses are the 4 Hs and 4 Ts reviewed during an arrest
var ReversibleCauses = []string{
	"Hypoxia",
	"Hypovolemia",
	"Hypo/Hyperkalaemia",
	"Hypothermia",
	"Toxins",
	"Tamponade",
	"Tension Pneumothorax",
	"Thrombosis",
}

// PostRoscTasks are shown once spontaneous circulation returns
var PostRoscTasks = []string{
	"Optimise Ventilation & Oxygenation",
	"12-Lead ECG",
	"Treat Hypotension (SBP < 90)",
	"Check Blood Glucose",
	"Consider Temperature Control",
	"Identify & Treat Causes",
}

// otherDrugs are drugs logged without a dosage table
var otherDrugs = []string{
	"Adenosine",
	"Adrenaline 1:1000",
	"Adrenaline 1:10,000",
	"Amiodarone (Further Dose)",
	"Atropine",
	"Calcium chloride",
	"Glucose",
	"Hartmann's solution",
	"Magnesium sulphate",
	"Midazolam",
	"Naloxone",
	"Potassium chloride",
	"Sodium bicarbonate",
	"Sodium chloride",
	"Tranexamic acid",
}

// OtherDrugs returns the sorted list of drugs that can be logged by name
func OtherDrugs() []string {
	out := make([]string, len(otherDrugs))
	copy(out, otherDrugs)
	sort.Strings(out)
	return out
}

// NewCauseChecklist returns every reversible cause marked as not yet addressed
func NewCauseChecklist() map[string]bool {
	causes := make(map[string]bool, len(ReversibleCauses))
	for _, c := range ReversibleCauses {
		causes[c] = false
	}
	return causes
}

// IsReversibleCause reports whether name is one of the 4 Hs and 4 Ts
func IsReversibleCause(name string) bool {
	for _, c := range ReversibleCauses {
		if c == name {
			return true
		}
	}
	return false
}
