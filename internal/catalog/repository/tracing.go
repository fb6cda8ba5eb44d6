package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nurtai/product-catalog/internal/catalog/domain"
)

var tracer = otel.Tracer("catalog-repository")

// TracedStore wraps any Repository with OpenTelemetry spans per operation.
type TracedStore struct {
	inner domain.Repository
}

// NewTracedStore decorates repo with tracing.
func NewTracedStore(repo domain.Repository) *TracedStore {
	return &TracedStore{inner: repo}
}

func (s *TracedStore) Insert(ctx context.Context, draft domain.Draft) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.Insert",
		trace.WithAttributes(
			attribute.String("product.name", draft.Name),
			attribute.String("product.category", draft.Category),
			attribute.Float64("product.price", draft.Price),
		),
	)
	defer span.End()

	product, err := s.inner.Insert(ctx, draft)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("product.id", product.ID))
	return product, nil
}

func (s *TracedStore) Get(ctx context.Context, id int) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.Get",
		trace.WithAttributes(attribute.Int("product.id", id)),
	)
	defer span.End()

	product, err := s.inner.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return product, nil
}

func (s *TracedStore) Update(ctx context.Context, id int, patch domain.Patch) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.Update",
		trace.WithAttributes(attribute.Int("product.id", id)),
	)
	defer span.End()

	product, err := s.inner.Update(ctx, id, patch)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return product, nil
}

func (s *TracedStore) Delete(ctx context.Context, id int) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.Delete",
		trace.WithAttributes(attribute.Int("product.id", id)),
	)
	defer span.End()

	product, err := s.inner.Delete(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return product, nil
}

func (s *TracedStore) ListAll(ctx context.Context) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.ListAll")
	defer span.End()

	products, err := s.inner.ListAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("product.count", len(products)))
	return products, nil
}

func (s *TracedStore) Ping(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "repository.Ping")
	defer span.End()

	if err := s.inner.Ping(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
