package model

// ItemType is a named product classification, unique by name.
type ItemType struct {
	BaseModel
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`

	Products []Product `json:"products,omitempty"`
}
