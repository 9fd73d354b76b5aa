package database

import (
	"context"

	"storefront/model"
	"storefront/utils"

	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Product{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var products []model.Product
	if err := utils.ApplyPagination(query, filter.Limit, filter.Page).Order("name ASC").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&product).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) List(ctx context.Context, filter model.ReviewFilter) ([]model.Review, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Review{})
	if filter.ProductId != nil {
		query = query.Where("product_id = ?", *filter.ProductId)
	}
	if filter.IsApproved != nil {
		query = query.Where("is_approved = ?", *filter.IsApproved)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var reviews []model.Review
	if err := utils.ApplyPagination(query, filter.Limit, filter.Page).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, translate(err)
	}
	return &review, nil
}

func (r *ReviewRepository) Create(ctx context.Context, review *model.Review) error {
	return translate(r.db.WithContext(ctx).Create(review).Error)
}

func (r *ReviewRepository) Save(ctx context.Context, review *model.Review) error {
	return translate(r.db.WithContext(ctx).Save(review).Error)
}

func (r *ReviewRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Review{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where(&model.Account{Username: username}).First(&account).Error; err != nil {
		return nil, translate(err)
	}
	return &account, nil
}
