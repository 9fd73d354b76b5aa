package database

import (
	"context"

	"storefront/model"
	"storefront/utils"

	"gorm.io/gorm"
)

type GalleryRepository struct {
	db *gorm.DB
}

func NewGalleryRepository(db *gorm.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

func (r *GalleryRepository) List(ctx context.Context, filter model.GalleryFilter) ([]model.GalleryImage, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.GalleryImage{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var images []model.GalleryImage
	if err := utils.ApplyPagination(query, filter.Limit, filter.Page).Order("sort_order ASC, id DESC").Find(&images).Error; err != nil {
		return nil, 0, err
	}
	return images, total, nil
}

func (r *GalleryRepository) FindByID(ctx context.Context, id uint) (*model.GalleryImage, error) {
	var image model.GalleryImage
	if err := r.db.WithContext(ctx).First(&image, id).Error; err != nil {
		return nil, translate(err)
	}
	return &image, nil
}

func (r *GalleryRepository) Create(ctx context.Context, image *model.GalleryImage) error {
	return translate(r.db.WithContext(ctx).Create(image).Error)
}

func (r *GalleryRepository) Save(ctx context.Context, image *model.GalleryImage) error {
	return translate(r.db.WithContext(ctx).Save(image).Error)
}

func (r *GalleryRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.GalleryImage{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) List(ctx context.Context, filter model.VideoFilter) ([]model.Video, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Video{})
	if filter.ProductId != nil {
		query = query.Where("product_id = ?", *filter.ProductId)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var videos []model.Video
	if err := utils.ApplyPagination(query, filter.Limit, filter.Page).Order("created_at DESC").Find(&videos).Error; err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

func (r *VideoRepository) FindByID(ctx context.Context, id uint) (*model.Video, error) {
	var video model.Video
	if err := r.db.WithContext(ctx).First(&video, id).Error; err != nil {
		return nil, translate(err)
	}
	return &video, nil
}

func (r *VideoRepository) FindBySlug(ctx context.Context, slug string) (*model.Video, error) {
	var video model.Video
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&video).Error; err != nil {
		return nil, translate(err)
	}
	return &video, nil
}

func (r *VideoRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Video{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	return translate(r.db.WithContext(ctx).Create(video).Error)
}

func (r *VideoRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Video{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
