package model

type Product struct {
	DTO
	Name        string  `gorm:"size:150;not null" json:"name"`
	Slug        string  `gorm:"uniqueIndex;not null" json:"slug"`
	Description string  `gorm:"type:text" json:"description"`
	Category    string  `gorm:"size:50;index" json:"category"`
	Price       float64 `gorm:"type:decimal(12,2);not null" json:"price"`
	ImageUrl    string  `gorm:"type:varchar(255)" json:"imageUrl"`
	InStock     bool    `gorm:"not null" json:"inStock"`
}

type SeedProduct struct {
	Name        string
	Description string
	Category    string
	Price       float64
	ImageUrl    string
	InStock     bool
}

type ProductFilter struct {
	Pagination
	Category string `query:"category"`
	Search   string `query:"search"`
}
