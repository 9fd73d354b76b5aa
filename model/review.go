package model

type Review struct {
	DTO
	Name       string `gorm:"size:100;not null" json:"name"`
	Email      string `gorm:"size:150" json:"-"`
	Rating     int    `gorm:"not null" json:"rating"`
	Comment    string `gorm:"type:text;not null" json:"comment"`
	ProductId  *uint  `gorm:"index" json:"productId"`
	IsApproved bool   `gorm:"not null;index" json:"isApproved"`
}

type CreateReviewInput struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	Email     string `json:"email" validate:"omitempty,email"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"required,min=5,max=2000"`
	ProductId *uint  `json:"productId" validate:"omitempty,gt=0"`
}

type ReviewFilter struct {
	Pagination
	ProductId  *uint `query:"productId"`
	IsApproved *bool `query:"isApproved"`
}
