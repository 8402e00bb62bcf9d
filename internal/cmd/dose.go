package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/aegismedical/eresus/internal/dosage"
)

// DoseCmd looks up drug doses without starting the timer
type DoseCmd struct {
	Age    string `help:"Patient age category (e.g. adult, 5y, 18m); all categories when omitted" short:"a"`
	Drug   string `help:"Drug to look up" enum:"adrenaline,amiodarone,lidocaine" default:"adrenaline"`
	Number int    `help:"Dose number (amiodarone doses differ for adults)" default:"1" short:"n"`
}

// Run executes the dose command
func (d *DoseCmd) Run(cli *CLI) error {
	if d.Number < 1 {
		return fmt.Errorf("dose number must be at least 1")
	}
	drug := dosage.Drug(d.Drug)

	if d.Age != "" {
		age, err := dosage.ParseAgeCategory(d.Age)
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s), dose %d: %s\n", d.Drug, age.Description(), d.Number, formatDose(dosage.Lookup(age, drug, d.Number)))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "AGE\tCODE\t%s (DOSE %d)\n", d.Drug, d.Number)
	for _, age := range dosage.Categories {
		fmt.Fprintf(w, "%s\t%s\t%s\n", age.Description(), age, formatDose(dosage.Lookup(age, drug, d.Number)))
	}
	return w.Flush()
}

func formatDose(dose dosage.Dose) string {
	switch dose.Status {
	case dosage.Resolved:
		return dose.Text
	case dosage.NotApplicable:
		return "not given"
	default:
		return "no table"
	}
}
