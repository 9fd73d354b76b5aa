package service

import (
	"context"
	"errors"
	"log/slog"

	"storefront/constants"
	"storefront/model"

	"github.com/jinzhu/copier"
)

type ProductStore interface {
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, int64, error)
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)
}

type ReviewStore interface {
	List(ctx context.Context, filter model.ReviewFilter) ([]model.Review, int64, error)
	FindByID(ctx context.Context, id uint) (*model.Review, error)
	Create(ctx context.Context, review *model.Review) error
	Save(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id uint) error
}

type CatalogService struct {
	products ProductStore
	reviews  ReviewStore
	log      *slog.Logger
}

func NewCatalogService(products ProductStore, reviews ReviewStore, log *slog.Logger) *CatalogService {
	return &CatalogService{products: products, reviews: reviews, log: log}
}

func (s *CatalogService) ListProducts(ctx context.Context, filter model.ProductFilter) (*model.ResponseCustom, error) {
	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, newError(KindInternal, constants.ERROR_INTERNAL_ERROR, err)
	}
	return &model.ResponseCustom{Rows: products, Limit: filter.Limit, Page: filter.Page, TotalCount: total}, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, slug string) (*model.Product, error) {
	product, err := s.products.FindBySlug(ctx, slug)
	if err != nil {
		return nil, notFoundOr(err, constants.PRODUCT_NOT_FOUND)
	}
	return product, nil
}

// CreateReview stores a customer review; it stays hidden until an admin approves it.
func (s *CatalogService) CreateReview(ctx context.Context, input model.CreateReviewInput) (*model.Review, error) {
	var review model.Review
	if err := copier.Copy(&review, &input); err != nil {
		return nil, newError(KindInternal, constants.ERROR_INTERNAL_ERROR, err)
	}
	review.IsApproved = false

	if err := s.reviews.Create(ctx, &review); err != nil {
		return nil, newError(KindInternal, constants.ERROR_INTERNAL_ERROR, err)
	}
	s.log.Info("review submitted", slog.Uint64("id", uint64(review.ID)), slog.Int("rating", review.Rating))
	return &review, nil
}

// ListReviews returns reviews; approvedOnly hides pending ones regardless of the filter.
func (s *CatalogService) ListReviews(ctx context.Context, filter model.ReviewFilter, approvedOnly bool) (*model.ResponseCustom, error) {
	if approvedOnly {
		approved := true
		filter.IsApproved = &approved
	}
	reviews, total, err := s.reviews.List(ctx, filter)
	if err != nil {
		return nil, newError(KindInternal, constants.ERROR_INTERNAL_ERROR, err)
	}
	return &model.ResponseCustom{Rows: reviews, Limit: filter.Limit, Page: filter.Page, TotalCount: total}, nil
}

func (s *CatalogService) ApproveReview(ctx context.Context, id uint) (*model.Review, error) {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, constants.REVIEW_NOT_FOUND)
	}
	review.IsApproved = true
	if err := s.reviews.Save(ctx, review); err != nil {
		return nil, newError(KindInternal, constants.ERROR_INTERNAL_ERROR, err)
	}
	return review, nil
}

func (s *CatalogService) DeleteReview(ctx context.Context, id uint) error {
	if err := s.reviews.Delete(ctx, id); err != nil {
		return notFoundOr(err, constants.REVIEW_NOT_FOUND)
	}
	return nil
}

// notFoundOr maps a store ErrNotFound to a NotFound error with message and anything else to Upstream.
func notFoundOr(err error, message string) error {
	if errors.Is(err, model.ErrNotFound) {
		return newError(KindNotFound, message, err)
	}
	return newError(KindInternal, constants.ERROR_INTERNAL_ERROR, err)
}
