package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/text/language"

	"github.com/FItraRizky/fro/internal/domain"
	"github.com/FItraRizky/fro/pkg/logger"
	"github.com/FItraRizky/fro/pkg/pagination"
	"github.com/FItraRizky/fro/pkg/slug"
)

var (
	queryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fro_catalog_query_duration_seconds",
			Help:    "Catalog listing query duration in seconds",
			Buckets: []float64{.00005, .0001, .0005, .001, .005, .01, .05},
		},
		[]string{"sort"},
	)

	queryResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fro_catalog_query_matches",
			Help:    "Number of products matching a catalog listing query",
			Buckets: prometheus.LinearBuckets(0, 2, 8),
		},
		[]string{"sort"},
	)
)

// Result is one page of a product listing.
type Result = pagination.Result[domain.Product]

// Apply filters, sorts and paginates products. It does not modify the input
// and returns deep copies, so the same inputs always produce the same page.
func Apply(products []domain.Product, params Params, locale language.Tag) Result {
	params = params.Normalize()
	filters := Filters(params)

	matched := make([]domain.Product, 0, len(products))
	for i := range products {
		if Match(&products[i], filters) {
			matched = append(matched, products[i].Clone())
		}
	}

	sortProducts(matched, params.Sort, locale)

	return pagination.Slice(matched, pagination.New(params.Page, PageSize))
}

// Engine answers catalog reads over an immutable product set.
// It is safe for concurrent use.
type Engine struct {
	products   []domain.Product
	categories []domain.Category
	reviews    []domain.Review
	locale     language.Tag
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithCategories sets the category tree served by Categories.
func WithCategories(categories []domain.Category) Option {
	return func(e *Engine) { e.categories = categories }
}

// WithReviews sets the reviews served by Reviews.
func WithReviews(reviews []domain.Review) Option {
	return func(e *Engine) { e.reviews = reviews }
}

// WithLocale sets the collation locale of the name sort.
func WithLocale(tag language.Tag) Option {
	return func(e *Engine) { e.locale = tag }
}

// NewEngine creates an engine over products. The engine keeps its own copy
// and derives a slug from the name of every product that has none.
func NewEngine(products []domain.Product, log *slog.Logger, opts ...Option) *Engine {
	owned := make([]domain.Product, len(products))
	for i := range products {
		owned[i] = products[i].Clone()
		if owned[i].Slug == "" {
			owned[i].Slug = slug.Generate(owned[i].Name)
		}
	}
	e := &Engine{
		products: owned,
		locale:   language.Indonesian,
		logger:   log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Query runs a listing query.
func (e *Engine) Query(ctx context.Context, params Params) Result {
	params = params.Normalize()

	_, span := otel.Tracer("fro/catalog").Start(ctx, "catalog.Query")
	defer span.End()

	start := time.Now()
	res := Apply(e.products, params, e.locale)
	elapsed := time.Since(start)

	span.SetAttributes(
		attribute.String("catalog.sort", string(params.Sort)),
		attribute.Int("catalog.page", params.Page),
		attribute.Int("catalog.matches", res.TotalCount),
	)
	queryDuration.WithLabelValues(string(params.Sort)).Observe(elapsed.Seconds())
	queryResults.WithLabelValues(string(params.Sort)).Observe(float64(res.TotalCount))

	logger.WithContext(ctx, e.logger).DebugContext(ctx, "catalog query",
		slog.String("search", params.Search),
		slog.Any("categories", params.Categories),
		slog.String("sort", string(params.Sort)),
		slog.Int("page", params.Page),
		slog.Int("matches", res.TotalCount),
		slog.Duration("took", elapsed),
	)
	return res
}
