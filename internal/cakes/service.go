package cakes

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bakecake/bakecake-backend/internal/catalog"
	"github.com/bakecake/bakecake-backend/pkg/db/models"
	"github.com/bakecake/bakecake-backend/pkg/enums"
	pkgerrors "github.com/bakecake/bakecake-backend/pkg/errors"
	"github.com/bakecake/bakecake-backend/pkg/logger"
	"github.com/bakecake/bakecake-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes cake configuration and the explicit price finalization
// step. Create and ReplaceOptions finalize internally; FinalizePrice exists
// for callers that mutate option sets through other paths.
type Service interface {
	Create(ctx context.Context, input CreateCakeInput) (*models.Cake, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Cake, error)
	ReplaceOptions(ctx context.Context, id uuid.UUID, input OptionsInput) (*models.Cake, error)
	FinalizePrice(ctx context.Context, id uuid.UUID) (*models.Cake, error)
}

type service struct {
	repo    Repository
	catalog catalog.Service
	tx      txRunner
	logg    *logger.Logger
	metrics *metrics.OrderMetrics
}

// ServiceParams collects the cake service dependencies.
type ServiceParams struct {
	Repo    Repository
	Catalog catalog.Service
	Tx      txRunner
	Logger  *logger.Logger
	Metrics *metrics.OrderMetrics
}

// NewService builds a cake service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("cakes repository required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:    params.Repo,
		catalog: params.Catalog,
		tx:      params.Tx,
		logg:    params.Logger,
		metrics: params.Metrics,
	}, nil
}

// selection holds the resolved catalog rows for one cake configuration.
type selection struct {
	level   *models.CatalogOption
	shape   *models.CatalogOption
	topping *models.CatalogOption
	berries []models.CatalogOption
	decor   []models.CatalogOption
}

func (s *service) Create(ctx context.Context, input CreateCakeInput) (*models.Cake, error) {
	if !input.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unrecognized cake kind").
			WithDetails(map[string]any{"kind": string(input.Kind)})
	}

	sel, err := s.resolveSelection(ctx, input.Level, input.Shape, input.Topping, input.Berries, input.Decor)
	if err != nil {
		return nil, err
	}

	cake := &models.Cake{
		Kind:        input.Kind,
		LevelID:     sel.level.ID,
		ShapeID:     sel.shape.ID,
		Inscription: input.Inscription,
	}
	if sel.topping != nil {
		cake.ToppingID = &sel.topping.ID
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.Create(ctx, cake); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cake")
		}
		if err := repo.ReplaceBerries(ctx, cake, sel.berries); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attach berries")
		}
		if err := repo.ReplaceDecor(ctx, cake, sel.decor); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attach decor")
		}
		return s.finalize(ctx, repo, cake.ID)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncCakeCreated(string(input.Kind))
	s.logg.Info(s.logg.WithCakeID(ctx, cake.ID.String()), "cake created")

	return s.Get(ctx, cake.ID)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Cake, error) {
	cake, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cake not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cake")
	}
	return cake, nil
}

func (s *service) ReplaceOptions(ctx context.Context, id uuid.UUID, input OptionsInput) (*models.Cake, error) {
	sel, err := s.resolveSelection(ctx, input.Level, input.Shape, input.Topping, input.Berries, input.Decor)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		cake, err := repo.FindByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "cake not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cake")
		}

		updates := map[string]any{
			"level_id":    sel.level.ID,
			"shape_id":    sel.shape.ID,
			"inscription": input.Inscription,
			"topping_id":  nil,
		}
		if sel.topping != nil {
			updates["topping_id"] = sel.topping.ID
		}
		if err := repo.UpdateScalars(ctx, id, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cake")
		}
		if err := repo.ReplaceBerries(ctx, cake, sel.berries); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace berries")
		}
		if err := repo.ReplaceDecor(ctx, cake, sel.decor); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace decor")
		}
		return s.finalize(ctx, repo, id)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// FinalizePrice recomputes the price from the relation sets as persisted
// right now and stores it. Safe to call repeatedly: unchanged relations
// always produce the same price.
func (s *service) FinalizePrice(ctx context.Context, id uuid.UUID) (*models.Cake, error) {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.finalize(ctx, s.repo.WithTx(tx), id)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// finalize is the second phase of the save protocol: it reads the cake with
// its durably associated option sets and persists the recomputed price. On
// error the previously stored price stays in place.
func (s *service) finalize(ctx context.Context, repo Repository, id uuid.UUID) error {
	cake, err := repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cake not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cake for pricing")
	}

	price, err := Quote(QuoteInput{
		Level:       &cake.Level,
		Shape:       &cake.Shape,
		Topping:     cake.Topping,
		Berries:     cake.Berries,
		Decor:       cake.Decor,
		Inscription: cake.Inscription,
	})
	if err != nil {
		return err
	}

	if err := repo.UpdatePrice(ctx, id, price); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cake price")
	}
	return nil
}

func (s *service) resolveSelection(ctx context.Context, level, shape string, topping *string, berries, decor []string) (*selection, error) {
	if level == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cake level is required")
	}
	if shape == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cake shape is required")
	}

	sel := &selection{}

	var err error
	if sel.level, err = s.catalog.Resolve(ctx, enums.OptionKindLevel, level); err != nil {
		return nil, err
	}
	if sel.shape, err = s.catalog.Resolve(ctx, enums.OptionKindShape, shape); err != nil {
		return nil, err
	}
	if topping != nil && *topping != "" {
		if sel.topping, err = s.catalog.Resolve(ctx, enums.OptionKindTopping, *topping); err != nil {
			return nil, err
		}
	}
	if sel.berries, err = s.resolveSet(ctx, enums.OptionKindBerry, berries); err != nil {
		return nil, err
	}
	if sel.decor, err = s.resolveSet(ctx, enums.OptionKindDecor, decor); err != nil {
		return nil, err
	}
	return sel, nil
}

// resolveSet resolves a list of option names as a set: duplicates collapse
// rather than double-charging.
func (s *service) resolveSet(ctx context.Context, kind enums.OptionKind, names []string) ([]models.CatalogOption, error) {
	seen := make(map[string]bool, len(names))
	options := make([]models.CatalogOption, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		option, err := s.catalog.Resolve(ctx, kind, name)
		if err != nil {
			return nil, err
		}
		options = append(options, *option)
	}
	return options, nil
}
