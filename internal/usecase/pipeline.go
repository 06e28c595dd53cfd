package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"NewsReporter/internal/domain"
	"NewsReporter/internal/ports"
)

// emptyReportBody is published when discovery finds nothing. The run still
// completes and the report file is still written.
const emptyReportBody = "No relevant news was found for this topic in the covered period."

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Searcher   ports.ArticleSearcher
	Generator  ports.Generator
	Fetcher    ports.PageFetcher
	Writer     ports.ReportWriter
	Repository ports.RunRepository
	Notifier   ports.Notifier

	Query           ports.SearchQuery
	SummaryPrompt   string
	ReportPrompt    string
	FetchFullText   bool
	MinContentChars int

	Logger *slog.Logger
	Now    func() time.Time
}

// Pipeline runs the three-stage report workflow: search, summarize, publish.
// Stage order is fixed; a failing stage aborts the run and no report is
// persisted. Stages take and return typed values, so a stage can never read
// state a prior stage has not produced.
type Pipeline struct {
	searcher   ports.ArticleSearcher
	generator  ports.Generator
	fetcher    ports.PageFetcher
	writer     ports.ReportWriter
	repository ports.RunRepository
	notifier   ports.Notifier

	query           ports.SearchQuery
	summaryPrompt   string
	reportPrompt    string
	fetchFullText   bool
	minContentChars int

	logger *slog.Logger
	now    func() time.Time
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		searcher:        deps.Searcher,
		generator:       deps.Generator,
		fetcher:         deps.Fetcher,
		writer:          deps.Writer,
		repository:      deps.Repository,
		notifier:        deps.Notifier,
		query:           deps.Query,
		summaryPrompt:   deps.SummaryPrompt,
		reportPrompt:    deps.ReportPrompt,
		fetchFullText:   deps.FetchFullText,
		minContentChars: deps.MinContentChars,
		logger:          deps.Logger,
		now:             now,
	}
}

// Run executes one full pipeline pass and returns the terminal state.
// The state instance is owned by this run; each field is written exactly
// once, in stage order.
func (p *Pipeline) Run(ctx context.Context) (domain.WorkflowState, error) {
	state := domain.NewWorkflowState()

	articles, err := p.runSearch(ctx)
	if err != nil {
		return state, fmt.Errorf("search stage: %w", err)
	}
	state.Articles = articles
	state.Phase = domain.PhaseAwaitingSummary

	summaries, err := p.runSummarize(ctx, articles)
	if err != nil {
		return state, fmt.Errorf("summarize stage: %w", err)
	}
	state.Summaries = summaries
	state.Phase = domain.PhaseAwaitingPublish

	report, err := p.runPublish(ctx, summaries)
	if err != nil {
		return state, fmt.Errorf("publish stage: %w", err)
	}

	run := domain.ReportRun{
		Date:         p.now(),
		Report:       report,
		ArticleCount: len(articles),
		CreatedAt:    p.now(),
	}

	if p.writer != nil {
		path, wErr := p.writer.Write(ctx, run)
		if wErr != nil {
			return state, fmt.Errorf("publish stage: write report: %w", wErr)
		}
		run.Path = path
		p.info("report written", "path", path)
	}

	state.Report = report
	state.Phase = domain.PhaseDone

	if p.repository != nil {
		if sErr := p.repository.SaveRun(ctx, run); sErr != nil {
			return state, fmt.Errorf("archive run: %w", sErr)
		}
	}

	if p.notifier != nil {
		if nErr := p.notifier.PublishReport(ctx, report); nErr != nil {
			return state, fmt.Errorf("notify report: %w", nErr)
		}
	}

	return state, nil
}

// runSearch populates the article list from the discovery service, preserving
// result order. Zero results yield an empty, non-nil slice.
func (p *Pipeline) runSearch(ctx context.Context) ([]domain.Article, error) {
	if p.searcher == nil {
		return nil, fmt.Errorf("no article searcher configured")
	}

	results, err := p.searcher.Search(ctx, p.query)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", p.query.Query, err)
	}

	articles := make([]domain.Article, 0, len(results))
	for _, article := range results {
		if p.fetchFullText && p.fetcher != nil && len(article.Content) < p.minContentChars {
			text, fErr := p.fetcher.FetchText(ctx, article.URL)
			if fErr != nil {
				p.info("full-text fetch failed, keeping snippet", "url", article.URL, "error", fErr)
			} else if text != "" {
				article.Content = text
			}
		}
		articles = append(articles, article)
	}

	p.info("search stage done", "articles", len(articles))
	return articles, nil
}

// runSummarize maps each article, in input order, to one generated summary.
// A single generation failure aborts the stage; no partial output escapes.
func (p *Pipeline) runSummarize(ctx context.Context, articles []domain.Article) ([]domain.Summary, error) {
	if p.generator == nil {
		return nil, fmt.Errorf("no generator configured")
	}

	summaries := make([]domain.Summary, 0, len(articles))
	for _, article := range articles {
		payload := fmt.Sprintf("Title: %s\n\n%s", article.Title, article.Content)
		text, err := p.generator.Generate(ctx, p.summaryPrompt, payload)
		if err != nil {
			return nil, fmt.Errorf("summarize article %q: %w", article.Title, err)
		}

		summaries = append(summaries, domain.Summary{
			Title:   article.Title,
			URL:     article.URL,
			Summary: strings.TrimSpace(text),
		})
	}

	p.info("summarize stage done", "summaries", len(summaries))
	return summaries, nil
}

// runPublish composes all summaries into one report via a single generation
// call. With zero summaries the generation call is skipped and a fixed
// no-news body is returned.
func (p *Pipeline) runPublish(ctx context.Context, summaries []domain.Summary) (string, error) {
	if len(summaries) == 0 {
		p.info("no summaries, publishing empty report")
		return emptyReportBody, nil
	}

	text, err := p.generator.Generate(ctx, p.reportPrompt, buildSummaryBlock(summaries))
	if err != nil {
		return "", fmt.Errorf("compose report: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// buildSummaryBlock renders each summary as a title/summary/source triple,
// blank line between items, insertion order preserved.
func buildSummaryBlock(summaries []domain.Summary) string {
	var b strings.Builder
	for _, s := range summaries {
		fmt.Fprintf(&b, "%s\n%s\nSource: %s\n\n", s.Title, s.Summary, s.URL)
	}
	return b.String()
}

func (p *Pipeline) info(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}
