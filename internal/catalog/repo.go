package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bakecake/bakecake-backend/internal/repo"
	"github.com/bakecake/bakecake-backend/pkg/db/models"
	"github.com/bakecake/bakecake-backend/pkg/enums"
)

// Repository defines persistence operations for the option catalog.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Upsert(ctx context.Context, option *models.CatalogOption) error
	FindByKindName(ctx context.Context, kind enums.OptionKind, name string) (*models.CatalogOption, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.CatalogOption, error)
	ListAll(ctx context.Context) ([]models.CatalogOption, error)
	ListByKind(ctx context.Context, kind enums.OptionKind) ([]models.CatalogOption, error)
}

type repository struct {
	base repo.Base
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{base: repo.NewBase(tx)}
}

// Upsert writes the option, refreshing price on (kind, name) conflicts so a
// renamed row always carries its table price.
func (r *repository) Upsert(ctx context.Context, option *models.CatalogOption) error {
	return r.base.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "kind"}, {Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"price", "updated_at"}),
		}).
		Create(option).Error
}

func (r *repository) FindByKindName(ctx context.Context, kind enums.OptionKind, name string) (*models.CatalogOption, error) {
	var option models.CatalogOption
	err := r.base.DB(ctx).
		Where("kind = ? AND name = ?", kind, name).
		First(&option).Error
	if err != nil {
		return nil, err
	}
	return &option, nil
}

func (r *repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.CatalogOption, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var options []models.CatalogOption
	err := r.base.DB(ctx).
		Where("id IN ?", ids).
		Find(&options).Error
	if err != nil {
		return nil, err
	}
	return options, nil
}

func (r *repository) ListAll(ctx context.Context) ([]models.CatalogOption, error) {
	var options []models.CatalogOption
	err := r.base.DB(ctx).
		Order("kind ASC, name ASC").
		Find(&options).Error
	if err != nil {
		return nil, err
	}
	return options, nil
}

func (r *repository) ListByKind(ctx context.Context, kind enums.OptionKind) ([]models.CatalogOption, error) {
	var options []models.CatalogOption
	err := r.base.DB(ctx).
		Where("kind = ?", kind).
		Order("name ASC").
		Find(&options).Error
	if err != nil {
		return nil, err
	}
	return options, nil
}
