// Package pipeline sequences the research run: search, per-product
// detail scrape, per-product review collection, then synthesis. Phases
// are strictly ordered; the per-product work inside phases 2 and 3 fans
// out concurrently and joins before the next phase starts.
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Ruscigno/argus/analysis"
	"github.com/Ruscigno/argus/model"
	"github.com/Ruscigno/argus/normalize"
)

// MaxProducts bounds the per-run fan-out; search results beyond this
// are discarded to keep cost and latency predictable.
const MaxProducts = 5

// Scraper is the scrape-service contract the pipeline drives.
type Scraper interface {
	Search(ctx context.Context, query string) ([]model.RawProduct, error)
	ScrapeProduct(ctx context.Context, url string) (*model.RawProduct, error)
	ScrapeReviews(ctx context.Context, url string) ([]model.RawReview, error)
}

// Analyzer synthesizes the final report from the scraped batch.
type Analyzer interface {
	Analyze(ctx context.Context, products []model.ProductWithReviews, query string) (*model.AnalysisReport, error)
}

// EventFunc receives progress events. The runner serializes calls, so
// implementations do not need their own locking.
type EventFunc func(model.PipelineEvent)

// Runner drives research runs over a scraper and an analyzer.
type Runner struct {
	scraper  Scraper
	analyzer Analyzer
	maxItems int
}

// NewRunner creates a pipeline runner. maxItems <= 0 falls back to
// MaxProducts.
func NewRunner(scraper Scraper, analyzer Analyzer, maxItems int) *Runner {
	if maxItems <= 0 {
		maxItems = MaxProducts
	}
	return &Runner{scraper: scraper, analyzer: analyzer, maxItems: maxItems}
}

// Run executes one research run. Per-product failures in the scraping
// and review phases fall back to the best previously-known data; a
// search or synthesis failure aborts the run. The returned error is
// the single terminal failure; progress is reported through onEvent.
func (r *Runner) Run(ctx context.Context, query string, onEvent EventFunc) (*model.AnalysisReport, error) {
	runID := uuid.NewString()
	log := zap.L().With(zap.String("run_id", runID), zap.String("query", query))

	emitter := &eventEmitter{onEvent: onEvent}
	emit := emitter.emit

	// Phase 1: search.
	emit(model.PipelineEvent{
		Phase: model.PhaseSearching, Status: model.StatusStarted,
		Message: fmt.Sprintf("Searching Amazon for %q...", query),
	})

	rawResults, err := r.scraper.Search(ctx, query)
	if err != nil {
		emit(errorEvent(model.PhaseSearching, err))
		return nil, err
	}
	products := normalize.Products(rawResults)
	if len(products) > r.maxItems {
		products = products[:r.maxItems]
	}
	if len(products) == 0 {
		err := fmt.Errorf("no products found for this search query")
		emit(errorEvent(model.PhaseSearching, err))
		return nil, err
	}
	log.Info("search completed", zap.Int("products", len(products)))
	emit(model.PipelineEvent{
		Phase: model.PhaseSearching, Status: model.StatusCompleted,
		Message: fmt.Sprintf("Found %d products", len(products)),
		Data:    map[string]int{"count": len(products)},
	})

	// Phase 2: detail scrape, concurrent fan-out joined before phase 3.
	emit(model.PipelineEvent{
		Phase: model.PhaseScraping, Status: model.StatusStarted,
		Message: fmt.Sprintf("Fetching details for %d products...", len(products)),
	})

	detailed := make([]model.Product, len(products))
	var wg sync.WaitGroup
	for i, p := range products {
		wg.Add(1)
		go func(i int, p model.Product) {
			defer wg.Done()
			emit(model.PipelineEvent{
				Phase: model.PhaseScraping, Status: model.StatusProgress,
				Message: fmt.Sprintf("Scraping product %d/%d: %s...", i+1, len(products), truncate(p.Title, 50)),
			})
			raw, err := r.scraper.ScrapeProduct(ctx, p.URL)
			if err != nil || raw == nil {
				// Best effort: keep the search-phase record.
				log.Warn("detail scrape failed, using search data",
					zap.String("asin", p.ASIN), zap.Error(err))
				detailed[i] = p
				return
			}
			detailed[i] = normalize.Product(*raw)
		}(i, p)
	}
	wg.Wait()

	emit(model.PipelineEvent{
		Phase: model.PhaseScraping, Status: model.StatusCompleted,
		Message: fmt.Sprintf("Scraped %d product details", len(detailed)),
	})

	// Phase 3: review collection, same fan-out and fallback shape.
	emit(model.PipelineEvent{
		Phase: model.PhaseCollectingReviews, Status: model.StatusStarted,
		Message: "Collecting product reviews...",
	})

	withReviews := make([]model.ProductWithReviews, len(detailed))
	for i, p := range detailed {
		wg.Add(1)
		go func(i int, p model.Product) {
			defer wg.Done()
			emit(model.PipelineEvent{
				Phase: model.PhaseCollectingReviews, Status: model.StatusProgress,
				Message: fmt.Sprintf("Fetching reviews for product %d/%d...", i+1, len(detailed)),
			})
			rawReviews, err := r.scraper.ScrapeReviews(ctx, p.URL)
			if err != nil {
				log.Warn("review scrape failed, continuing without reviews",
					zap.String("asin", p.ASIN), zap.Error(err))
				withReviews[i] = normalize.Merge(p, nil)
				return
			}
			withReviews[i] = normalize.Merge(p, normalize.Reviews(rawReviews))
		}(i, p)
	}
	wg.Wait()

	emit(model.PipelineEvent{
		Phase: model.PhaseCollectingReviews, Status: model.StatusCompleted,
		Message: fmt.Sprintf("Collected reviews for %d products", len(withReviews)),
	})

	// Phase 4: synthesis. No fallback; without it there is no report.
	emit(model.PipelineEvent{
		Phase: model.PhaseAnalyzing, Status: model.StatusStarted,
		Message: "Analyzing products...",
	})

	report, err := r.analyzer.Analyze(ctx, withReviews, query)
	if err != nil {
		emit(errorEvent(model.PhaseAnalyzing, err))
		return nil, err
	}
	analysis.SanitizeReport(report, withReviews)

	emit(model.PipelineEvent{
		Phase: model.PhaseAnalyzing, Status: model.StatusCompleted,
		Message: "Analysis complete",
	})

	// Phase 5: done.
	emit(model.PipelineEvent{
		Phase: model.PhaseComplete, Status: model.StatusCompleted,
		Message: "Research report ready",
		Data:    report,
	})
	log.Info("run completed", zap.Int("products", len(withReviews)))
	return report, nil
}

// eventEmitter serializes event delivery; phase 2/3 goroutines emit
// progress concurrently.
type eventEmitter struct {
	mu      sync.Mutex
	onEvent EventFunc
}

func (e *eventEmitter) emit(event model.PipelineEvent) {
	if e.onEvent == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onEvent(event)
}

func errorEvent(phase model.PipelinePhase, err error) model.PipelineEvent {
	return model.PipelineEvent{Phase: phase, Status: model.StatusError, Message: err.Error()}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
