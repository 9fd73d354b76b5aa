// Package assets stores uploaded images and videos on Cloudinary.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"

	"storefront/config"
	"storefront/model"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const (
	ResourceImage = "image"
	ResourceVideo = "video"
)

var ErrNotConfigured = errors.New("assets: cloudinary is not configured")

type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

func New(cfg config.Cloudinary) (*Cloudinary, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, ErrNotConfigured
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	cld.Config.URL.Secure = true
	return &Cloudinary{cld: cld}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, file io.Reader, folder, resourceType string) (*model.UploadedAsset, error) {
	res, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       folder,
		PublicID:     uuid.NewString(),
		ResourceType: resourceType,
	})
	if err != nil {
		return nil, err
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return &model.UploadedAsset{
		Url:          res.SecureURL,
		PublicId:     res.PublicID,
		ResourceType: res.ResourceType,
	}, nil
}

// Destroy removes a hosted asset. A missing asset is not an error.
func (c *Cloudinary) Destroy(ctx context.Context, publicID, resourceType string) error {
	if resourceType == "" {
		resourceType = ResourceImage
	}
	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return err
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy: %s", res.Error.Message)
	}
	if res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("cloudinary destroy: unexpected result %q", res.Result)
	}
	return nil
}
