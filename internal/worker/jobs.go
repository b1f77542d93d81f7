package worker

import "context"

// ReportRunner runs one stored report. The services package implements it;
// the interface keeps this package free of that import.
type ReportRunner interface {
	RunReport(ctx context.Context, reportID int64) error
}

// AnalyzeReportJob analyses the PGN stored with a pending report.
type AnalyzeReportJob struct {
	Runner   ReportRunner
	ReportID int64
}

func (j *AnalyzeReportJob) Name() string { return "analyze_report" }

func (j *AnalyzeReportJob) Run(ctx context.Context) error {
	return j.Runner.RunReport(ctx, j.ReportID)
}
