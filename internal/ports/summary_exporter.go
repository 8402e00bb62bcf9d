package ports

import "context"

// SummaryExporter receives the formatted text summary of an arrest.
// logID identifies the arrest log the summary was built from.
type SummaryExporter interface {
	Export(ctx context.Context, logID string, summary string) error
}
