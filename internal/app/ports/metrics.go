package ports

import "github.com/universe-engine-ai/serenissima-sub006/internal/app/report"

type PassMetrics interface {
	RecordPass(pass string, summary report.Summary)
}
