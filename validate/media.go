package validate

import (
	"storefront/constants"
	"storefront/model"

	"github.com/gofiber/fiber/v2"
)

func ProductFilter() fiber.Handler {
	return query[model.ProductFilter]()
}

func CreateReview() fiber.Handler {
	return body[model.CreateReviewInput]("")
}

func ReviewFilter() fiber.Handler {
	return query[model.ReviewFilter]()
}

func GalleryFilter() fiber.Handler {
	return query[model.GalleryFilter]()
}

// CreateGallery expects a multipart form with an "image" file plus the gallery fields.
func CreateGallery() fiber.Handler {
	return upload[model.CreateGalleryInput]("image", constants.MAX_IMAGE_SIZE, "image/")
}

func UpdateGallery() fiber.Handler {
	return body[model.UpdateGalleryInput]("")
}

func VideoFilter() fiber.Handler {
	return query[model.VideoFilter]()
}

func CreateVideo() fiber.Handler {
	return upload[model.CreateVideoInput]("video", constants.MAX_VIDEO_SIZE, "video/")
}

func UploadImage() fiber.Handler {
	return file("image", constants.MAX_IMAGE_SIZE, "image/")
}

func DeleteAsset() fiber.Handler {
	return body[model.DeleteAssetInput]("")
}
