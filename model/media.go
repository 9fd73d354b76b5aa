package model

type GalleryImage struct {
	DTO
	Title     string `gorm:"size:150;not null" json:"title"`
	Category  string `gorm:"size:50;index" json:"category"`
	ImageUrl  string `gorm:"type:varchar(255);not null" json:"imageUrl"`
	PublicId  string `gorm:"type:varchar(255);not null" json:"publicId"`
	SortOrder int    `gorm:"not null" json:"sortOrder"`
}

type CreateGalleryInput struct {
	Title     string `form:"title" validate:"required,min=2,max=150"`
	Category  string `form:"category" validate:"omitempty,max=50"`
	SortOrder int    `form:"sortOrder" validate:"gte=0"`
}

type UpdateGalleryInput struct {
	Title     *string `json:"title" validate:"omitempty,min=2,max=150"`
	Category  *string `json:"category" validate:"omitempty,max=50"`
	SortOrder *int    `json:"sortOrder" validate:"omitempty,gte=0"`
}

type GalleryFilter struct {
	Pagination
	Category string `query:"category"`
}

// Video is an entry of the assembly-video library.
type Video struct {
	DTO
	Title        string `gorm:"size:150;not null" json:"title"`
	Slug         string `gorm:"uniqueIndex;not null" json:"slug"`
	Description  string `gorm:"type:text" json:"description"`
	VideoUrl     string `gorm:"type:varchar(255);not null" json:"videoUrl"`
	ThumbnailUrl string `gorm:"type:varchar(255)" json:"thumbnailUrl"`
	PublicId     string `gorm:"type:varchar(255);not null" json:"publicId"`
	ProductId    *uint  `gorm:"index" json:"productId"`
}

type CreateVideoInput struct {
	Title       string `form:"title" validate:"required,min=2,max=150"`
	Description string `form:"description" validate:"max=2000"`
	ProductId   *uint  `form:"productId" validate:"omitempty,gt=0"`
}

type VideoFilter struct {
	Pagination
	ProductId *uint `query:"productId"`
}

// UploadedAsset is what the asset host returns for a stored file.
type UploadedAsset struct {
	Url          string `json:"url"`
	PublicId     string `json:"publicId"`
	ResourceType string `json:"resourceType"`
}

// DeleteAssetInput names the asset by PublicId or, failing that, by its hosted Url.
type DeleteAssetInput struct {
	PublicId     string `json:"publicId" validate:"required_without=Url"`
	Url          string `json:"url" validate:"omitempty,url"`
	ResourceType string `json:"resourceType" validate:"omitempty,oneof=image video"`
}
