package catalog

import (
	"time"

	"github.com/komorebi/backend/internal/domain/shared"
)

// Category groups products for storefront filtering
type Category struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description string `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name, description string) (*Category, error) {
	if err := ValidateCategoryName(name); err != nil {
		return nil, err
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
	}, nil
}

// Rename changes the category name
func (c *Category) Rename(name string) error {
	if err := ValidateCategoryName(name); err != nil {
		return err
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// UpdateDescription replaces the category description
func (c *Category) UpdateDescription(description string) {
	c.Description = description
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// ValidateCategoryName enforces the category naming format: ASCII letters,
// digits, spaces and hyphens only, non-empty, at most 50 characters.
func ValidateCategoryName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot be empty")
	}
	if len(name) > 50 {
		return shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot exceed 50 characters")
	}
	for _, r := range name {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' || r == '-') {
			return shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name can only contain letters, numbers, spaces, and hyphens")
		}
	}
	return nil
}
