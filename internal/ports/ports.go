package ports

import (
	"context"
	"time"

	"NewsReporter/internal/domain"
)

// SearchQuery carries all parameters for one discovery request.
type SearchQuery struct {
	Query       string
	Topic       string
	TimeRange   string
	SearchDepth string
	MaxResults  int
}

// ArticleSearcher pulls ranked news items from the discovery service.
type ArticleSearcher interface {
	Search(ctx context.Context, query SearchQuery) ([]domain.Article, error)
}

// Generator produces text from a system instruction and a user payload via
// a language-model completion endpoint.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// PageFetcher downloads an article page and extracts its readable text.
type PageFetcher interface {
	FetchText(ctx context.Context, pageURL string) (string, error)
}

// ReportWriter persists the final report and returns the written path.
type ReportWriter interface {
	Write(ctx context.Context, run domain.ReportRun) (string, error)
}

// RunRepository archives published runs for history and audit.
type RunRepository interface {
	SaveRun(ctx context.Context, run domain.ReportRun) error
	RecentRuns(ctx context.Context, limit int) ([]domain.ReportRun, error)
}

// Notifier pushes published reports to outbound channels (Telegram, etc.).
type Notifier interface {
	PublishReport(ctx context.Context, report string) error
}

// Scheduler controls when recurring pipeline runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
