package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"NewsReporter/internal/config"
	"NewsReporter/internal/infrastructure/fetcher"
	"NewsReporter/internal/infrastructure/llm"
	"NewsReporter/internal/infrastructure/report"
	"NewsReporter/internal/infrastructure/scheduler"
	"NewsReporter/internal/infrastructure/storage"
	"NewsReporter/internal/infrastructure/tavily"
	"NewsReporter/internal/infrastructure/telegram"
	"NewsReporter/internal/logging"
	"NewsReporter/internal/ports"
	"NewsReporter/internal/usecase"
)

// Application wires configuration to the pipeline and owns its lifecycle.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
	db       *sql.DB
}

// New builds a runnable application instance. The run archive and the
// Telegram notifier are wired only when configured.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	var pageFetcher ports.PageFetcher
	if cfg.Search.FetchFullText {
		pageFetcher = fetcher.NewExtractor(nil)
	}

	var db *sql.DB
	var repository ports.RunRepository
	if cfg.Database.DSN != "" {
		opened, err := storage.Open(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("connect run archive: %w", err)
		}
		db = opened
		repository = storage.NewPostgresRepository(db)
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" && cfg.Notifications.Telegram.ChatID != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Searcher:   tavily.NewClient(cfg.Search),
		Generator:  llm.NewOpenAIClient(cfg.OpenAI),
		Fetcher:    pageFetcher,
		Writer:     report.NewFileWriter(cfg.Report),
		Repository: repository,
		Notifier:   notifier,
		Query: ports.SearchQuery{
			Query:       cfg.Search.Query,
			Topic:       cfg.Search.Topic,
			TimeRange:   cfg.Search.TimeRange,
			SearchDepth: cfg.Search.SearchDepth,
			MaxResults:  cfg.Search.MaxResults,
		},
		SummaryPrompt:   cfg.OpenAI.SummaryPrompt,
		ReportPrompt:    cfg.OpenAI.ReportPrompt,
		FetchFullText:   cfg.Search.FetchFullText,
		MinContentChars: cfg.Search.MinContentChars,
		Logger:          baseLogger.With("component", "pipeline"),
	})

	return &Application{cfg: cfg, logger: baseLogger, pipeline: pipeline, db: db}, nil
}

// Run executes a single pipeline pass and prints the report, or keeps
// publishing on the configured interval when the scheduler is enabled.
func (a *Application) Run(ctx context.Context) error {
	if a.pipeline == nil {
		return nil
	}

	if a.cfg.Scheduler.Enabled {
		return a.runScheduled(ctx)
	}

	state, err := a.pipeline.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println(state.Report)
	return nil
}

func (a *Application) runScheduled(ctx context.Context) error {
	driver := scheduler.NewTickerScheduler(a.cfg.Scheduler.IntervalDuration())
	runner := usecase.NewScheduler(driver, a.pipeline)

	if err := runner.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	<-ctx.Done()
	return runner.Stop(context.WithoutCancel(ctx))
}

// Close releases held resources.
func (a *Application) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
