package pipeline

import (
	"context"

	"github.com/couchcryptid/disaster-response-advisor/internal/domain"
)

// ReportTransformer implements Transformer by decoding a report message and
// running it through an Advisor.
type ReportTransformer struct {
	advisor *Advisor
}

// NewTransformer creates a ReportTransformer.
func NewTransformer(advisor *Advisor) *ReportTransformer {
	return &ReportTransformer{advisor: advisor}
}

func (t *ReportTransformer) Transform(ctx context.Context, raw domain.RawReport) (domain.Advisory, error) {
	report, err := domain.ParseRawReport(raw)
	if err != nil {
		return domain.Advisory{}, err
	}

	advisory := t.advisor.Advise(ctx, report.Message)
	advisory.ReportID = report.ID
	return advisory, nil
}
