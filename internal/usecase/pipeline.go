package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"simsanalytics/internal/analysis"
	"simsanalytics/internal/domain"
	"simsanalytics/internal/ports"
	"simsanalytics/internal/sources"
	"simsanalytics/internal/verify"
)

const (
	recentWindow      = 2 * time.Hour
	recentSkipCount   = 10
	maxTaggerEntities = 10
	reanalyzePageSize = 200
)

var bylineExpr = regexp.MustCompile(`By\s+([A-Za-z\s]+)`)

// bdKeywords drive the relevance score: places, rivers, institutions,
// and public figures strongly tied to Bangladesh coverage.
var bdKeywords = []string{
	"bangladesh", "dhaka", "sheikh hasina", "chittagong", "sylhet",
	"khulna", "rajshahi", "barisal", "rangpur", "mymensingh",
	"bengal", "bengali", "rohingya", "padma", "jamuna", "buriganga",
	"ganges", "sundarbans", "grameen", "brac", "biman", "ekushey",
	"shakib", "mashrafe", "mustafizur", "mirpur", "banani", "gulshan",
	"uttara", "motijheel", "narayanganj", "gazipur", "comilla",
	"noakhali", "feni", "kushtia", "pabna", "bogura", "tangail",
	"sirajganj", "jessore", "khagrachari", "bandarban", "rangamati",
	"savar", "ashulia", "cox",
}

// PipelineDeps wires all driven adapters and pipeline components.
type PipelineDeps struct {
	Search     ports.SearchProvider
	Repository ports.ArticleRepository
	Analyst    ports.Analyst
	Tagger     ports.EntityTagger
	Notifier   ports.Notifier
	Classifier *sources.Classifier
	Parser     *analysis.Parser
	Validator  *verify.Validator
	Sentiment  *analysis.SentimentAnalyzer
	Logger     *slog.Logger
}

// Pipeline implements the ingestion, enrichment, and verification
// workflow. Articles are processed one at a time; network calls are
// blocking and sequential.
type Pipeline struct {
	search     ports.SearchProvider
	repository ports.ArticleRepository
	analyst    ports.Analyst
	tagger     ports.EntityTagger
	notifier   ports.Notifier
	classifier *sources.Classifier
	parser     *analysis.Parser
	validator  *verify.Validator
	sentiment  *analysis.SentimentAnalyzer
	logger     *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		search:     deps.Search,
		repository: deps.Repository,
		analyst:    deps.Analyst,
		tagger:     deps.Tagger,
		notifier:   deps.Notifier,
		classifier: deps.Classifier,
		parser:     deps.Parser,
		validator:  deps.Validator,
		sentiment:  deps.Sentiment,
		logger:     deps.Logger,
	}
}

// IngestAndAnalyze fetches fresh search results, gates them down to
// real articles, and enriches each one. A single article's failure is
// recorded in the report and never aborts the batch.
func (p *Pipeline) IngestAndAnalyze(ctx context.Context) (domain.Report, error) {
	var report domain.Report

	if p.search == nil {
		return report, fmt.Errorf("search provider is not configured")
	}

	if p.repository != nil {
		recent, err := p.repository.RecentCount(ctx, time.Now().Add(-recentWindow))
		if err != nil {
			return report, fmt.Errorf("count recent articles: %w", err)
		}
		if recent > recentSkipCount {
			p.info("recent articles present, skipping ingestion", "count", recent)
			return report, nil
		}
	}

	results, err := p.search.Search(ctx)
	if err != nil {
		return report, fmt.Errorf("search: %w", err)
	}
	report.Found = len(results)

	filtered := FilterResults(results)
	report.Filtered = len(filtered)
	p.info("search results gated", "found", report.Found, "kept", report.Filtered)

	for _, r := range filtered {
		report.Outcomes = append(report.Outcomes, p.processResult(ctx, r))
	}

	p.info("ingestion finished", "summary", report.Summary())

	if p.notifier != nil {
		if err := p.notifier.PublishReport(ctx, "Ingestion run: "+report.Summary()); err != nil {
			p.warn("report notification failed", "error", err)
		}
	}
	return report, nil
}

// processResult enriches a single search result end to end.
func (p *Pipeline) processResult(ctx context.Context, r domain.SearchResult) domain.ArticleOutcome {
	outcome := domain.ArticleOutcome{URL: r.URL, Title: r.Title}

	var article *domain.Article
	if p.repository != nil {
		existing, err := p.repository.GetByURL(ctx, r.URL)
		if err != nil {
			outcome.Err = fmt.Errorf("lookup article %s: %w", r.URL, err)
			return outcome
		}
		if existing != nil && existing.Analysis != nil {
			p.info("skipping already analyzed article", "url", r.URL)
			outcome.Skipped = true
			return outcome
		}
		article = existing
	}

	if strings.TrimSpace(r.Text) == "" {
		p.warn("no full text for article, skipping enrichment", "url", r.URL)
		outcome.Skipped = true
		return outcome
	}

	if article == nil {
		article = &domain.Article{URL: r.URL}
	}
	fillArticle(article, r)

	result, err := p.analyze(ctx, article)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	article.Analysis = result

	if p.repository != nil {
		if err := p.repository.Upsert(ctx, article); err != nil {
			outcome.Err = fmt.Errorf("persist article %s: %w", r.URL, err)
			return outcome
		}
		if err := p.repository.ReplaceMatches(ctx, article.ID, result.FactCheck.Sources); err != nil {
			outcome.Err = fmt.Errorf("persist matches %s: %w", r.URL, err)
			return outcome
		}
	}

	outcome.Result = result
	return outcome
}

// Reanalyze re-runs the full enrichment for one stored article,
// replacing its prior result atomically.
func (p *Pipeline) Reanalyze(ctx context.Context, article *domain.Article) (*domain.AnalysisResult, error) {
	if article == nil {
		return nil, fmt.Errorf("nil article")
	}

	result, err := p.analyze(ctx, article)
	if err != nil {
		return nil, err
	}
	article.Analysis = result

	if p.repository != nil {
		if err := p.repository.Upsert(ctx, article); err != nil {
			return nil, fmt.Errorf("persist article %s: %w", article.URL, err)
		}
		if err := p.repository.ReplaceMatches(ctx, article.ID, result.FactCheck.Sources); err != nil {
			return nil, fmt.Errorf("persist matches %s: %w", article.URL, err)
		}
	}
	return result, nil
}

// ReanalyzeAll sweeps stored articles through Reanalyze with the same
// continue-on-failure semantics as ingestion.
func (p *Pipeline) ReanalyzeAll(ctx context.Context) (domain.Report, error) {
	var report domain.Report
	if p.repository == nil {
		return report, fmt.Errorf("repository is not configured")
	}

	offset := 0
	for {
		page, err := p.repository.List(ctx, ports.ListFilter{Limit: reanalyzePageSize, Offset: offset})
		if err != nil {
			return report, fmt.Errorf("list articles: %w", err)
		}
		if len(page) == 0 {
			break
		}
		report.Found += len(page)
		report.Filtered += len(page)

		for i := range page {
			art := page[i]
			outcome := domain.ArticleOutcome{URL: art.URL, Title: art.Title}
			if strings.TrimSpace(art.FullText) == "" {
				outcome.Skipped = true
			} else if result, err := p.Reanalyze(ctx, &art); err != nil {
				p.warn("reanalysis failed", "url", art.URL, "error", err)
				outcome.Err = err
			} else {
				outcome.Result = result
			}
			report.Outcomes = append(report.Outcomes, outcome)
		}
		offset += len(page)
	}

	p.info("reanalysis finished", "summary", report.Summary())
	return report, nil
}

// ReverifySources re-runs validation, filtering, and the verdict over
// an existing result's sources without calling the model again. The
// input result is not mutated.
func (p *Pipeline) ReverifySources(ctx context.Context, result *domain.AnalysisResult, articleDomain string) *domain.AnalysisResult {
	if result == nil {
		return nil
	}

	updated := *result
	validated := p.verifySources(ctx, result.FactCheck.Sources)
	filtered := verify.FilterSources(validated, articleDomain, p.logger)
	updated.FactCheck = domain.FactCheck{
		Status:  verify.Decide(filtered),
		Sources: filtered,
	}
	return &updated
}

// analyze runs the model call, parsing, and verification for one
// article. When the analyst is unavailable the enrichment degrades to
// local-only analysis instead of failing.
func (p *Pipeline) analyze(ctx context.Context, article *domain.Article) (*domain.AnalysisResult, error) {
	if p.analyst == nil {
		p.warn("model provider unavailable, producing local-only analysis", "url", article.URL)
		return p.localOnlyResult(ctx, article), nil
	}

	modelText, err := p.analyst.Analyze(ctx, article.Title, article.FullText)
	if err != nil {
		return nil, fmt.Errorf("model analysis %s: %w", article.URL, err)
	}

	parsed := p.parser.Parse(modelText, article.Title, article.FullText)
	if parsed == nil {
		return nil, fmt.Errorf("model response unparseable for %s", article.URL)
	}

	validated := p.verifySources(ctx, parsed.Sources)
	filtered := verify.FilterSources(validated, sources.Domain(article.URL), p.logger)

	result := &domain.AnalysisResult{
		Sentiment:      parsed.Sentiment,
		Category:       parsed.Category,
		Summary:        parsed.Summary,
		Entities:       p.entities(ctx, article, parsed.Entities),
		Implications:   parsed.Implications,
		BiasAssessment: parsed.BiasAssessment,
		FactCheck: domain.FactCheck{
			Status:  verify.Decide(filtered),
			Sources: filtered,
		},
		AnalyzedAt: time.Now(),
	}
	p.finishLocalFields(article, result)

	p.info("article analyzed",
		"url", article.URL,
		"verdict", result.FactCheck.Status,
		"sources", len(result.FactCheck.Sources))
	return result, nil
}

// verifySources applies the validator to each candidate sequentially.
// Model-verified candidates bypass the network check; everything else
// must survive a round trip. Buckets are re-derived from the classifier
// here, falling back to the reported country label for unknown domains.
func (p *Pipeline) verifySources(ctx context.Context, cands []domain.Source) []domain.Source {
	out := make([]domain.Source, 0, len(cands))
	for _, c := range cands {
		if c.URL == "" {
			p.warn("source has no URL, dropping", "name", c.Name)
			continue
		}

		if c.State != domain.StateModelVerified {
			if p.validator == nil || !p.validator.Validate(ctx, c.URL) {
				p.info("source failed validation", "url", c.URL)
				continue
			}
			c.State = domain.StateNetworkVerified
		}

		host := sources.Domain(c.URL)
		if info, known := p.classifier.Classify(host); known {
			c.Name = info.Name
			c.Country = info.Country
			c.Bucket = info.Bucket
		} else {
			if c.Name == "" {
				c.Name = sources.TitleHost(host)
			}
			c.Bucket = verify.BucketFor(c.Country)
		}
		out = append(out, c)
	}
	return out
}

// entities prefers the NLP tagger when one is wired; its failure or
// absence falls back to the parser's regex extraction.
func (p *Pipeline) entities(ctx context.Context, article *domain.Article, parsed []string) []string {
	if p.tagger == nil {
		return parsed
	}

	tagged, err := p.tagger.TagEntities(ctx, article.Title+" "+article.FullText)
	if err != nil {
		p.warn("entity tagging failed, using regex entities", "url", article.URL, "error", err)
		return parsed
	}

	freq := map[string]int{}
	for _, e := range tagged {
		if len(e.Text) > 2 {
			freq[e.Text]++
		}
	}
	type entityCount struct {
		text  string
		count int
	}
	ranked := make([]entityCount, 0, len(freq))
	for text, count := range freq {
		ranked = append(ranked, entityCount{text, count})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].count > ranked[j].count })

	out := make([]string, 0, maxTaggerEntities)
	for _, e := range ranked {
		out = append(out, e.text)
		if len(out) == maxTaggerEntities {
			break
		}
	}
	if len(out) == 0 {
		return parsed
	}
	return out
}

// localOnlyResult is the degraded path used when the LLM provider is
// not configured: defaults plus whatever can be computed locally.
func (p *Pipeline) localOnlyResult(ctx context.Context, article *domain.Article) *domain.AnalysisResult {
	result := &domain.AnalysisResult{
		Sentiment:  "neutral",
		Category:   "others",
		Summary:    fmt.Sprintf("Analysis of news article about %s.", article.Title),
		Entities:   p.entities(ctx, article, nil),
		FactCheck:  domain.FactCheck{Status: domain.VerdictUnverified},
		AnalyzedAt: time.Now(),
	}
	p.finishLocalFields(article, result)
	return result
}

// finishLocalFields computes the provider-independent parts of a
// result: sentiment breakdown, relevance score, byline fallback.
func (p *Pipeline) finishLocalFields(article *domain.Article, result *domain.AnalysisResult) {
	if p.sentiment != nil {
		result.Breakdown = p.sentiment.Breakdown(article.FullText)
	}
	result.BDRelevance = bdRelevance(article.Title+" "+article.FullText, result.Entities)

	if article.Author == "" {
		if m := bylineExpr.FindStringSubmatch(article.FullText); m != nil {
			article.Author = strings.TrimSpace(m[1])
		}
	}
	if article.Source == "" {
		article.Source = sources.Domain(article.URL)
	}
}

// bdRelevance scores keyword density on a 0-100 scale.
func bdRelevance(text string, entities []string) int {
	haystack := strings.ToLower(text + " " + strings.Join(entities, " "))
	hits := 0
	for _, kw := range bdKeywords {
		if strings.Contains(haystack, kw) {
			hits++
		}
	}
	if hits == 0 {
		return 0
	}
	words := len(strings.Fields(haystack))
	if words == 0 {
		words = 1
	}
	score := 100 * hits / words
	if score > 100 {
		score = 100
	}
	return score
}

func fillArticle(article *domain.Article, r domain.SearchResult) {
	article.Title = r.Title
	article.FullText = r.Text
	article.Author = r.Author
	article.Image = r.Image
	article.Favicon = r.Favicon
	article.Score = r.Score
	article.PublishedAt = r.PublishedAt
	article.Source = sources.Domain(r.URL)
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
