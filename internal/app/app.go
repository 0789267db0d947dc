package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"simsanalytics/internal/analysis"
	"simsanalytics/internal/config"
	"simsanalytics/internal/infrastructure/llm"
	"simsanalytics/internal/infrastructure/nlp"
	"simsanalytics/internal/infrastructure/scheduler"
	"simsanalytics/internal/infrastructure/search"
	"simsanalytics/internal/infrastructure/storage"
	"simsanalytics/internal/infrastructure/telegram"
	"simsanalytics/internal/logging"
	"simsanalytics/internal/ports"
	"simsanalytics/internal/sources"
	"simsanalytics/internal/usecase"
	"simsanalytics/internal/verify"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	db        *sql.DB
	pipeline  *usecase.Pipeline
	scheduler *usecase.Scheduler
}

// New builds a runnable application instance with all adapters connected.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	db, err := storage.Open(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := storage.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	repository := storage.NewPostgresRepository(db)

	tables := buildTables(cfg.Sources)
	classifier := sources.NewClassifier(tables)
	extractor := verify.NewExtractor(classifier, baseLogger.With("component", "extractor"))
	parser := analysis.NewParser(extractor, baseLogger.With("component", "parser"))
	validator := verify.NewValidator(&http.Client{Timeout: cfg.Validation.Timeout()}, baseLogger.With("component", "validator"))
	sentiment := analysis.NewSentimentAnalyzer()

	searchClient := search.NewExaClient(cfg.Search, tables.AllDomains(), baseLogger.With("component", "search"))

	var analyst ports.Analyst
	if cfg.Gemini.APIKey != "" {
		analyst = llm.NewGeminiClient(cfg.Gemini)
	}

	var tagger ports.EntityTagger
	if cfg.NLP.Endpoint != "" {
		tagger = nlp.NewClient(cfg.NLP.Endpoint, cfg.NLP.APIKey)
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Search:     searchClient,
		Repository: repository,
		Analyst:    analyst,
		Tagger:     tagger,
		Notifier:   notifier,
		Classifier: classifier,
		Parser:     parser,
		Validator:  validator,
		Sentiment:  sentiment,
		Logger:     baseLogger.With("component", "pipeline"),
	})

	driver := scheduler.NewCronScheduler(cfg.Scheduler.CronExpression, cfg.Scheduler.Location())
	sched := usecase.NewScheduler(driver, pipeline, baseLogger.With("component", "scheduler"))

	return &Application{cfg: cfg, db: db, pipeline: pipeline, scheduler: sched}, nil
}

// Run starts scheduled ingestion and blocks until the context is cancelled.
func (a *Application) Run(ctx context.Context) error {
	if err := a.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	<-ctx.Done()
	return a.scheduler.Stop(context.Background())
}

// RunOnce performs a single ingestion pass without scheduling.
func (a *Application) RunOnce(ctx context.Context) error {
	_, err := a.pipeline.IngestAndAnalyze(ctx)
	return err
}

// Close releases held resources.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func buildTables(extra config.SourcesConfig) sources.Tables {
	tables := sources.DefaultTables()
	for _, e := range extra.ExtraBangladesh {
		tables.Bangladesh = append(tables.Bangladesh, sources.Entry{Domain: e.Domain, Name: e.Name})
	}
	for _, e := range extra.ExtraIndia {
		tables.India = append(tables.India, sources.Entry{Domain: e.Domain, Name: e.Name})
	}
	for _, e := range extra.ExtraInternational {
		tables.International = append(tables.International, sources.Entry{Domain: e.Domain, Name: e.Name})
	}
	return tables
}
