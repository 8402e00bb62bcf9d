package services

import (
	"fmt"
	"strings"

	"github.com/aegismedical/eresus/internal/domain"
)

// summaryCounters are the counters printed in a summary, with their labels
var summaryCounters = []struct {
	label string
	name  string
}{
	{"Shocks", domain.CounterShock},
	{"Adrenaline", domain.CounterAdrenaline},
	{"Amiodarone", domain.CounterAmiodarone},
	{"Lidocaine", domain.CounterLidocaine},
	{"Other drugs", domain.CounterOtherDrug},
	{"Advanced airway", domain.CounterAirway},
}

// FormatSummary renders a saved arrest log as plain text for handover notes
func FormatSummary(log domain.SavedLog) string {
	var b strings.Builder

	b.WriteString("eResus Event Summary\n")
	fmt.Fprintf(&b, "Arrest started: %s\n", log.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Total arrest time: %s\n", domain.FormatDuration(log.TotalDurationSeconds))
	fmt.Fprintf(&b, "Outcome: %s\n", log.Outcome)

	b.WriteString("\n--- Totals ---\n")
	for _, c := range summaryCounters {
		fmt.Fprintf(&b, "%s: %d\n", c.label, log.Counters[c.name])
	}

	b.WriteString("\n--- Event Log ---\n")
	for _, e := range log.Events {
		fmt.Fprintf(&b, "[%s] %s\n", domain.FormatDuration(e.TimestampSeconds), e.Message)
	}

	return b.String()
}
