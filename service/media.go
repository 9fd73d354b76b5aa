package service

import (
	"context"
	"io"
	"log/slog"
	"path"
	"strings"

	"storefront/constants"
	"storefront/helper"
	"storefront/model"

	"github.com/jinzhu/copier"
)

const (
	resourceImage = "image"
	resourceVideo = "video"
)

// AssetHost stores uploaded files and returns their public URL.
type AssetHost interface {
	Upload(ctx context.Context, file io.Reader, folder, resourceType string) (*model.UploadedAsset, error)
	Destroy(ctx context.Context, publicID, resourceType string) error
}

type GalleryStore interface {
	List(ctx context.Context, filter model.GalleryFilter) ([]model.GalleryImage, int64, error)
	FindByID(ctx context.Context, id uint) (*model.GalleryImage, error)
	Create(ctx context.Context, image *model.GalleryImage) error
	Save(ctx context.Context, image *model.GalleryImage) error
	Delete(ctx context.Context, id uint) error
}

type VideoStore interface {
	List(ctx context.Context, filter model.VideoFilter) ([]model.Video, int64, error)
	FindByID(ctx context.Context, id uint) (*model.Video, error)
	FindBySlug(ctx context.Context, slug string) (*model.Video, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, video *model.Video) error
	Delete(ctx context.Context, id uint) error
}

type MediaService struct {
	assets  AssetHost
	gallery GalleryStore
	videos  VideoStore
	log     *slog.Logger
}

// NewMediaService wires gallery, video and raw upload management. assets may be nil when
// no asset host is configured; listing still works, uploads fail with Upstream.
func NewMediaService(assets AssetHost, gallery GalleryStore, videos VideoStore, log *slog.Logger) *MediaService {
	return &MediaService{assets: assets, gallery: gallery, videos: videos, log: log}
}

func (s *MediaService) UploadImage(ctx context.Context, file io.Reader) (*model.UploadedAsset, error) {
	return s.upload(ctx, file, constants.ASSET_FOLDER_IMAGES, resourceImage)
}

func (s *MediaService) DeleteAsset(ctx context.Context, input model.DeleteAssetInput) error {
	if s.assets == nil {
		return newError(KindUpstream, constants.UPLOAD_DELETE_FAIL, nil)
	}
	publicID := input.PublicId
	if publicID == "" {
		publicID = helper.PublicIDFromURL(input.Url)
	}
	if publicID == "" {
		return newError(KindValidation, "Public id or asset url is required", nil)
	}
	resourceType := input.ResourceType
	if resourceType == "" {
		resourceType = resourceImage
	}
	if err := s.assets.Destroy(ctx, publicID, resourceType); err != nil {
		return newError(KindUpstream, constants.UPLOAD_DELETE_FAIL, err)
	}
	return nil
}

func (s *MediaService) ListGallery(ctx context.Context, filter model.GalleryFilter) (*model.ResponseCustom, error) {
	images, total, err := s.gallery.List(ctx, filter)
	if err != nil {
		return nil, newError(KindInternal, constants.ERROR_INTERNAL_ERROR, err)
	}
	return &model.ResponseCustom{Rows: images, Limit: filter.Limit, Page: filter.Page, TotalCount: total}, nil
}

func (s *MediaService) CreateGalleryImage(ctx context.Context, input model.CreateGalleryInput, file io.Reader) (*model.GalleryImage, error) {
	var image model.GalleryImage
	if err := copier.Copy(&image, &input); err != nil {
		return nil, newError(KindInternal, constants.ERROR_INTERNAL_ERROR, err)
	}

	asset, err := s.upload(ctx, file, constants.ASSET_FOLDER_GALLERY, resourceImage)
	if err != nil {
		return nil, err
	}
	image.ImageUrl = asset.Url
	image.PublicId = asset.PublicId

	if err := s.gallery.Create(ctx, &image); err != nil {
		s.discard(ctx, asset.PublicId, resourceImage)
		return nil, newError(KindInternal, constants.ERROR_INTERNAL_ERROR, err)
	}
	return &image, nil
}

func (s *MediaService) UpdateGalleryImage(ctx context.Context, id uint, input model.UpdateGalleryInput) (*model.GalleryImage, error) {
	image, err := s.gallery.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, constants.GALLERY_NOT_FOUND)
	}
	if input.Title != nil {
		image.Title = *input.Title
	}
	if input.Category != nil {
		image.Category = *input.Category
	}
	if input.SortOrder != nil {
		image.SortOrder = *input.SortOrder
	}
	if err := s.gallery.Save(ctx, image); err != nil {
		return nil, newError(KindInternal, constants.ERROR_INTERNAL_ERROR, err)
	}
	return image, nil
}

// DeleteGalleryImage removes the hosted file first so a failed destroy leaves the row in place.
func (s *MediaService) DeleteGalleryImage(ctx context.Context, id uint) error {
	image, err := s.gallery.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, constants.GALLERY_NOT_FOUND)
	}
	if err := s.destroy(ctx, image.PublicId, resourceImage); err != nil {
		return err
	}
	if err := s.gallery.Delete(ctx, id); err != nil {
		return notFoundOr(err, constants.GALLERY_NOT_FOUND)
	}
	return nil
}

func (s *MediaService) ListVideos(ctx context.Context, filter model.VideoFilter) (*model.ResponseCustom, error) {
	videos, total, err := s.videos.List(ctx, filter)
	if err != nil {
		return nil, newError(KindInternal, constants.ERROR_INTERNAL_ERROR, err)
	}
	return &model.ResponseCustom{Rows: videos, Limit: filter.Limit, Page: filter.Page, TotalCount: total}, nil
}

func (s *MediaService) GetVideo(ctx context.Context, slug string) (*model.Video, error) {
	video, err := s.videos.FindBySlug(ctx, slug)
	if err != nil {
		return nil, notFoundOr(err, constants.VIDEO_NOT_FOUND)
	}
	return video, nil
}

func (s *MediaService) CreateVideo(ctx context.Context, input model.CreateVideoInput, file io.Reader) (*model.Video, error) {
	slug, err := helper.GenerateUniqueSlug(ctx, input.Title, s.videos.SlugExists)
	if err != nil {
		return nil, newError(KindInternal, constants.ERROR_INTERNAL_ERROR, err)
	}

	asset, err := s.upload(ctx, file, constants.ASSET_FOLDER_VIDEOS, resourceVideo)
	if err != nil {
		return nil, err
	}

	video := model.Video{
		Title:        strings.TrimSpace(input.Title),
		Slug:         slug,
		Description:  input.Description,
		VideoUrl:     asset.Url,
		ThumbnailUrl: videoThumbnail(asset.Url),
		PublicId:     asset.PublicId,
		ProductId:    input.ProductId,
	}
	if err := s.videos.Create(ctx, &video); err != nil {
		s.discard(ctx, asset.PublicId, resourceVideo)
		return nil, newError(KindInternal, constants.ERROR_INTERNAL_ERROR, err)
	}
	return &video, nil
}

func (s *MediaService) DeleteVideo(ctx context.Context, id uint) error {
	video, err := s.videos.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, constants.VIDEO_NOT_FOUND)
	}
	if err := s.destroy(ctx, video.PublicId, resourceVideo); err != nil {
		return err
	}
	if err := s.videos.Delete(ctx, id); err != nil {
		return notFoundOr(err, constants.VIDEO_NOT_FOUND)
	}
	return nil
}

func (s *MediaService) upload(ctx context.Context, file io.Reader, folder, resourceType string) (*model.UploadedAsset, error) {
	if s.assets == nil {
		return nil, newError(KindUpstream, constants.UPLOAD_FAILED, nil)
	}
	asset, err := s.assets.Upload(ctx, file, folder, resourceType)
	if err != nil {
		s.log.Error("asset upload failed", slog.String("folder", folder), slog.Any("error", err))
		return nil, newError(KindUpstream, constants.UPLOAD_FAILED, err)
	}
	return asset, nil
}

func (s *MediaService) destroy(ctx context.Context, publicID, resourceType string) error {
	if publicID == "" {
		return nil
	}
	if s.assets == nil {
		return newError(KindUpstream, constants.UPLOAD_DELETE_FAIL, nil)
	}
	if err := s.assets.Destroy(ctx, publicID, resourceType); err != nil {
		return newError(KindUpstream, constants.UPLOAD_DELETE_FAIL, err)
	}
	return nil
}

// discard best-effort removes an asset whose database row could not be written.
func (s *MediaService) discard(ctx context.Context, publicID, resourceType string) {
	if err := s.assets.Destroy(ctx, publicID, resourceType); err != nil {
		s.log.Warn("orphaned asset", slog.String("publicId", publicID), slog.Any("error", err))
	}
}

// videoThumbnail points at the frame Cloudinary renders for a video URL with a .jpg extension.
func videoThumbnail(videoURL string) string {
	if videoURL == "" {
		return ""
	}
	return strings.TrimSuffix(videoURL, path.Ext(videoURL)) + ".jpg"
}
