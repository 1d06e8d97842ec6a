package model

// Category is a named product grouping, unique by name.
type Category struct {
	BaseModel
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`

	Products []Product `json:"products,omitempty"`
}
