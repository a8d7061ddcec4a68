package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Price       float64   `gorm:"not null"`
	Description string    `gorm:"type:text;not null;default:''"`
	OwnerID     uuid.UUID `gorm:"type:varchar(36);not null;index"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time

	Owner *UserModel `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// BeforeCreate assigns a time-ordered ID when none is set.
func (m *ProductModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID != uuid.Nil {
		return nil
	}

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	m.ID = id

	return nil
}

// All lists every model the schema is built from, in dependency order.
func All() []any {
	return []any{&UserModel{}, &ProductModel{}}
}
