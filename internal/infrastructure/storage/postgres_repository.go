package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"simsanalytics/internal/domain"
	"simsanalytics/internal/ports"
	"simsanalytics/internal/verify"
)

// PostgresRepository persists enriched articles and their source
// matches into Postgres.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.ArticleRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// factCheckRecord is the stored JSON form of a fact check. Legacy rows
// hold a bare status string in the same column; readFactCheck lifts
// those into this shape.
type factCheckRecord struct {
	Status  string         `json:"status"`
	Sources []sourceRecord `json:"sources"`
}

type sourceRecord struct {
	URL     string `json:"source_url"`
	Name    string `json:"source_name"`
	Country string `json:"source_country"`
	State   string `json:"verification_state,omitempty"`
}

type analysisRecord struct {
	Sentiment      string                    `json:"sentiment"`
	Category       string                    `json:"category"`
	Summary        string                    `json:"summary"`
	Entities       []string                  `json:"entities"`
	Implications   string                    `json:"geopolitical_implications,omitempty"`
	BiasAssessment string                    `json:"media_bias_assessment,omitempty"`
	Breakdown      domain.SentimentBreakdown `json:"sentiment_breakdown"`
	BDRelevance    int                       `json:"bd_relevance"`
	AnalyzedAt     time.Time                 `json:"analyzed_at"`
}

const articleColumns = `id, url, title, author, source, image, favicon, score, full_text, published_at, analysis, fact_check`

// GetByURL returns the stored article or (nil, nil) when unknown.
func (r *PostgresRepository) GetByURL(ctx context.Context, url string) (*domain.Article, error) {
	if r.db == nil {
		return nil, nil
	}

	query, args, err := r.builder.
		Select(strings.Split(articleColumns, ", ")...).
		From("articles").
		Where(sq.Eq{"url": url}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query article by url: %w", err)
	}
	return article, nil
}

// RecentCount reports how many articles were published after the cutoff.
func (r *PostgresRepository) RecentCount(ctx context.Context, since time.Time) (int, error) {
	if r.db == nil {
		return 0, nil
	}

	query, args, err := r.builder.
		Select("COUNT(*)").
		From("articles").
		Where(sq.GtOrEq{"published_at": since}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count recent articles: %w", err)
	}
	return count, nil
}

// Upsert inserts or replaces the article snapshot keyed by URL. The
// analysis is written whole; prior results for the URL are overwritten,
// never merged.
func (r *PostgresRepository) Upsert(ctx context.Context, article *domain.Article) error {
	if r.db == nil || article == nil {
		return nil
	}

	analysisJSON, factCheckJSON, err := marshalAnalysis(article.Analysis)
	if err != nil {
		return err
	}

	query := `INSERT INTO articles (url, title, author, source, image, favicon, score, full_text, published_at, analysis, fact_check)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
              ON CONFLICT (url) DO UPDATE
              SET title = EXCLUDED.title,
                  author = EXCLUDED.author,
                  source = EXCLUDED.source,
                  image = EXCLUDED.image,
                  favicon = EXCLUDED.favicon,
                  score = EXCLUDED.score,
                  full_text = EXCLUDED.full_text,
                  published_at = EXCLUDED.published_at,
                  analysis = EXCLUDED.analysis,
                  fact_check = EXCLUDED.fact_check,
                  updated_at = NOW()
              RETURNING id`

	err = r.db.QueryRowContext(ctx, query,
		article.URL,
		article.Title,
		article.Author,
		article.Source,
		article.Image,
		article.Favicon,
		article.Score,
		article.FullText,
		nullTime(article.PublishedAt),
		analysisJSON,
		factCheckJSON,
	).Scan(&article.ID)
	if err != nil {
		return fmt.Errorf("upsert article: %w", err)
	}
	return nil
}

// ReplaceMatches atomically swaps the per-article corroborating source
// rows, partitioned into the BD and International match tables.
func (r *PostgresRepository) ReplaceMatches(ctx context.Context, articleID int64, srcs []domain.Source) error {
	if r.db == nil || articleID == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"bd_matches", "int_matches"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE article_id = $1`, table), articleID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	bd, intl := verify.Partition(srcs)
	if err := insertMatches(ctx, tx, "bd_matches", articleID, bd); err != nil {
		return err
	}
	if err := insertMatches(ctx, tx, "int_matches", articleID, intl); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit matches: %w", err)
	}
	return nil
}

func insertMatches(ctx context.Context, tx *sql.Tx, table string, articleID int64, srcs []domain.Source) error {
	for _, s := range srcs {
		query := fmt.Sprintf(`INSERT INTO %s (article_id, source, url) VALUES ($1, $2, $3)`, table)
		if _, err := tx.ExecContext(ctx, query, articleID, s.Name, s.URL); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}
	return nil
}

// List returns articles matching the filter, newest first.
func (r *PostgresRepository) List(ctx context.Context, filter ports.ListFilter) ([]domain.Article, error) {
	if r.db == nil {
		return nil, nil
	}

	q := r.builder.
		Select(strings.Split(articleColumns, ", ")...).
		From("articles").
		OrderBy("published_at DESC NULLS LAST", "id DESC")

	if filter.Source != "" {
		q = q.Where(sq.Eq{"source": filter.Source})
	}
	if filter.Category != "" {
		q = q.Where(sq.Expr("analysis ->> 'category' = ?", filter.Category))
	}
	if filter.Verdict != "" {
		q = q.Where(sq.Expr("fact_check ->> 'status' = ?", string(filter.Verdict)))
	}
	if !filter.Since.IsZero() {
		q = q.Where(sq.GtOrEq{"published_at": filter.Since})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, *article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return articles, nil
}

// VerdictCounts aggregates stored articles by verification verdict.
func (r *PostgresRepository) VerdictCounts(ctx context.Context) (map[domain.Verdict]int, error) {
	counts := map[domain.Verdict]int{}
	if r.db == nil {
		return counts, nil
	}

	query, args, err := r.builder.
		Select("COALESCE(fact_check ->> 'status', 'unverified')", "COUNT(*)").
		From("articles").
		GroupBy("1").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count verdicts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan verdict count: %w", err)
		}
		counts[domain.Verdict(strings.ToLower(status))] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return counts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*domain.Article, error) {
	var (
		article      domain.Article
		author       sql.NullString
		source       sql.NullString
		image        sql.NullString
		favicon      sql.NullString
		score        sql.NullFloat64
		publishedAt  sql.NullTime
		analysisRaw  sql.NullString
		factCheckRaw sql.NullString
	)

	err := row.Scan(
		&article.ID, &article.URL, &article.Title, &author, &source,
		&image, &favicon, &score, &article.FullText, &publishedAt,
		&analysisRaw, &factCheckRaw,
	)
	if err != nil {
		return nil, err
	}

	article.Author = author.String
	article.Source = source.String
	article.Image = image.String
	article.Favicon = favicon.String
	article.Score = score.Float64
	if publishedAt.Valid {
		article.PublishedAt = publishedAt.Time
	}

	article.Analysis = unmarshalAnalysis(analysisRaw.String, factCheckRaw.String)
	return &article, nil
}

func marshalAnalysis(result *domain.AnalysisResult) (analysisJSON, factCheckJSON any, err error) {
	if result == nil {
		return nil, nil, nil
	}

	record := analysisRecord{
		Sentiment:      result.Sentiment,
		Category:       result.Category,
		Summary:        result.Summary,
		Entities:       result.Entities,
		Implications:   result.Implications,
		BiasAssessment: result.BiasAssessment,
		Breakdown:      result.Breakdown,
		BDRelevance:    result.BDRelevance,
		AnalyzedAt:     result.AnalyzedAt,
	}
	a, err := json.Marshal(record)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal analysis: %w", err)
	}

	fc := factCheckRecord{Status: string(result.FactCheck.Status)}
	for _, s := range result.FactCheck.Sources {
		fc.Sources = append(fc.Sources, sourceRecord{
			URL:     s.URL,
			Name:    s.Name,
			Country: s.Country,
			State:   string(s.State),
		})
	}
	f, err := json.Marshal(fc)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal fact check: %w", err)
	}
	return string(a), string(f), nil
}

func unmarshalAnalysis(analysisRaw, factCheckRaw string) *domain.AnalysisResult {
	if strings.TrimSpace(analysisRaw) == "" && strings.TrimSpace(factCheckRaw) == "" {
		return nil
	}

	result := &domain.AnalysisResult{Sentiment: "neutral", Category: "others"}
	if analysisRaw != "" {
		var record analysisRecord
		if err := json.Unmarshal([]byte(analysisRaw), &record); err == nil {
			result.Sentiment = record.Sentiment
			result.Category = record.Category
			result.Summary = record.Summary
			result.Entities = record.Entities
			result.Implications = record.Implications
			result.BiasAssessment = record.BiasAssessment
			result.Breakdown = record.Breakdown
			result.BDRelevance = record.BDRelevance
			result.AnalyzedAt = record.AnalyzedAt
		}
	}
	result.FactCheck = readFactCheck(factCheckRaw)
	return result
}

// readFactCheck decodes the stored fact check. Rows written before the
// structured form existed hold a bare status string; those migrate into
// the tagged representation with no sources.
func readFactCheck(raw string) domain.FactCheck {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.FactCheck{Status: domain.VerdictUnverified}
	}

	var record factCheckRecord
	if err := json.Unmarshal([]byte(raw), &record); err == nil && record.Status != "" {
		fc := domain.FactCheck{Status: normalizeVerdict(record.Status)}
		for _, s := range record.Sources {
			state := domain.VerificationState(s.State)
			if state == "" {
				state = domain.StateUnverified
			}
			fc.Sources = append(fc.Sources, domain.Source{
				URL:     s.URL,
				Name:    s.Name,
				Country: s.Country,
				Bucket:  verify.BucketFor(s.Country),
				State:   state,
			})
		}
		return fc
	}

	// Legacy bare-string form.
	return domain.FactCheck{Status: normalizeVerdict(strings.Trim(raw, `"`))}
}

func normalizeVerdict(raw string) domain.Verdict {
	if strings.EqualFold(strings.TrimSpace(raw), string(domain.VerdictVerified)) {
		return domain.VerdictVerified
	}
	return domain.VerdictUnverified
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
