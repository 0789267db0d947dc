package ports

import (
	"context"
	"time"

	"simsanalytics/internal/domain"
)

// SearchProvider pulls fresh candidate articles from the upstream
// search/crawl API.
type SearchProvider interface {
	Search(ctx context.Context) ([]domain.SearchResult, error)
}

// Analyst submits an article to the LLM provider and returns the raw
// free-text response; prompt construction is the adapter's concern.
type Analyst interface {
	Analyze(ctx context.Context, title, fullText string) (string, error)
}

// ListFilter narrows article queries from the persistence collaborator.
type ListFilter struct {
	Source   string
	Category string
	Verdict  domain.Verdict
	Since    time.Time
	Limit    int
	Offset   int
}

// ArticleRepository persists enriched articles and their corroborating
// source matches. GetByURL returns (nil, nil) when the URL is unknown.
type ArticleRepository interface {
	GetByURL(ctx context.Context, url string) (*domain.Article, error)
	RecentCount(ctx context.Context, since time.Time) (int, error)
	Upsert(ctx context.Context, article *domain.Article) error
	ReplaceMatches(ctx context.Context, articleID int64, srcs []domain.Source) error
	List(ctx context.Context, filter ListFilter) ([]domain.Article, error)
	VerdictCounts(ctx context.Context) (map[domain.Verdict]int, error)
}

// Entity is one tagged span from the optional NLP service.
type Entity struct {
	Text  string
	Label string
}

// EntityTagger is the optional named-entity service; when it is absent
// the parser's regex entity path is used exclusively.
type EntityTagger interface {
	TagEntities(ctx context.Context, text string) ([]Entity, error)
}

// Notifier delivers run reports to an outbound channel.
type Notifier interface {
	PublishReport(ctx context.Context, report string) error
}

// Scheduler controls when ingestion runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
