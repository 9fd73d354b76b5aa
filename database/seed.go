package database

import (
	"log/slog"

	"storefront/config"
	"storefront/constants"
	"storefront/model"

	"github.com/gosimple/slug"
	"github.com/jinzhu/copier"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedProducts = []model.SeedProduct{
	{
		Name:        "Oak Bookshelf",
		Description: "Five shelf bookcase in solid oak, flat packed with tool-free assembly.",
		Category:    "furniture",
		Price:       4999,
		InStock:     true,
	},
	{
		Name:        "Walnut Side Table",
		Description: "Compact side table with a single drawer.",
		Category:    "furniture",
		Price:       2499,
		InStock:     true,
	},
	{
		Name:        "Linen Cushion Cover",
		Description: "Washable linen cover, 45 x 45 cm.",
		Category:    "decor",
		Price:       599,
		InStock:     true,
	},
	{
		Name:        "Ceramic Planter",
		Description: "Hand glazed planter with drainage tray.",
		Category:    "decor",
		Price:       899,
		InStock:     false,
	},
}

func SeedData(db *gorm.DB, auth config.Auth, log *slog.Logger) error {
	if auth.AdminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(auth.AdminPassword), 10)
		if err != nil {
			return err
		}
		account := model.Account{
			Username: auth.AdminUsername,
			Password: string(hash),
			Active:   true,
			Role:     constants.ROLE_ADMIN,
		}
		// Create if missing; an existing password is never overwritten.
		if err := db.Where(model.Account{Username: account.Username}).FirstOrCreate(&account).Error; err != nil {
			log.Error("failed to seed account", slog.String("username", account.Username), slog.Any("error", err))
			return err
		}
	} else {
		log.Warn("ADMIN_PASSWORD not set, skipping admin account seed")
	}

	for _, p := range seedProducts {
		var product model.Product
		if err := copier.Copy(&product, &p); err != nil {
			return err
		}
		product.Slug = slug.Make(p.Name)
		if err := db.Where(model.Product{Slug: product.Slug}).FirstOrCreate(&product).Error; err != nil {
			log.Error("failed to seed product", slog.String("slug", product.Slug), slog.Any("error", err))
		}
	}
	return nil
}
