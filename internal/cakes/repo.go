package cakes

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bakecake/bakecake-backend/internal/repo"
	"github.com/bakecake/bakecake-backend/pkg/db/models"
)

// Repository defines persistence operations for cakes and their option sets.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, cake *models.Cake) (*models.Cake, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Cake, error)
	UpdateScalars(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ReplaceBerries(ctx context.Context, cake *models.Cake, berries []models.CatalogOption) error
	ReplaceDecor(ctx context.Context, cake *models.Cake, decor []models.CatalogOption) error
	UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) error
}

type repository struct {
	base repo.Base
}

// NewRepository builds a cakes repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{base: repo.NewBase(tx)}
}

// Create persists the cake's scalar fields only; option sets are attached
// separately so the final price can be computed against durable relations.
func (r *repository) Create(ctx context.Context, cake *models.Cake) (*models.Cake, error) {
	err := r.base.DB(ctx).
		Omit("Level", "Shape", "Topping", "Berries", "Decor").
		Create(cake).Error
	if err != nil {
		return nil, err
	}
	return cake, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Cake, error) {
	var cake models.Cake
	err := r.base.DB(ctx).
		Preload("Level").
		Preload("Shape").
		Preload("Topping").
		Preload("Berries").
		Preload("Decor").
		First(&cake, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &cake, nil
}

func (r *repository) UpdateScalars(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.base.DB(ctx).
		Model(&models.Cake{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) ReplaceBerries(ctx context.Context, cake *models.Cake, berries []models.CatalogOption) error {
	return r.base.DB(ctx).
		Model(cake).
		Association("Berries").
		Replace(optionRefs(berries))
}

func (r *repository) ReplaceDecor(ctx context.Context, cake *models.Cake, decor []models.CatalogOption) error {
	return r.base.DB(ctx).
		Model(cake).
		Association("Decor").
		Replace(optionRefs(decor))
}

func (r *repository) UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) error {
	return r.base.DB(ctx).
		Model(&models.Cake{}).
		Where("id = ?", id).
		UpdateColumn("price", price).Error
}

// optionRefs strips associations down to primary keys so replacing a cake's
// option set never writes back into catalog_options.
func optionRefs(options []models.CatalogOption) []models.CatalogOption {
	refs := make([]models.CatalogOption, 0, len(options))
	for _, option := range options {
		refs = append(refs, models.CatalogOption{ID: option.ID})
	}
	return refs
}
