package catalog

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/bakecake/bakecake-backend/pkg/db/models"
	"github.com/bakecake/bakecake-backend/pkg/enums"
	pkgerrors "github.com/bakecake/bakecake-backend/pkg/errors"
	"github.com/bakecake/bakecake-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes catalog reads plus the fixture seeding path.
type Service interface {
	Seed(ctx context.Context) error
	List(ctx context.Context) ([]OptionSummary, error)
	ListKind(ctx context.Context, kind enums.OptionKind) ([]OptionSummary, error)
	Resolve(ctx context.Context, kind enums.OptionKind, name string) (*models.CatalogOption, error)
}

type service struct {
	repo Repository
	tx   txRunner
	logg *logger.Logger
}

// NewService builds a catalog service with the required dependencies.
func NewService(repo Repository, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, tx: tx, logg: logg}, nil
}

// Seed upserts every priced option from the static tables. Running it again
// is harmless; prices are refreshed from the tables on conflict.
func (s *service) Seed(ctx context.Context) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, kind := range enums.OptionKinds() {
			for _, name := range Names(kind) {
				price, err := ResolvePrice(kind, name)
				if err != nil {
					return err
				}
				option := &models.CatalogOption{Kind: kind, Name: name, Price: price}
				if err := repo.Upsert(ctx, option); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed catalog option")
				}
			}
		}
		s.logg.Info(ctx, "catalog seeded")
		return nil
	})
}

func (s *service) List(ctx context.Context) ([]OptionSummary, error) {
	options, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list catalog")
	}
	return toSummaries(options), nil
}

func (s *service) ListKind(ctx context.Context, kind enums.OptionKind) ([]OptionSummary, error) {
	if !kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unrecognized option kind").
			WithDetails(map[string]any{"kind": string(kind)})
	}
	options, err := s.repo.ListByKind(ctx, kind)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list catalog kind")
	}
	return toSummaries(options), nil
}

// Resolve loads the persisted row for a kind/name pair, validating the name
// against the static table first so unknown names fail before any query.
func (s *service) Resolve(ctx context.Context, kind enums.OptionKind, name string) (*models.CatalogOption, error) {
	if _, err := ResolvePrice(kind, name); err != nil {
		return nil, err
	}
	option, err := s.repo.FindByKindName(ctx, kind, name)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "catalog option not seeded").
				WithDetails(map[string]any{"kind": string(kind), "name": name})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog option")
	}
	return option, nil
}

func toSummaries(options []models.CatalogOption) []OptionSummary {
	summaries := make([]OptionSummary, 0, len(options))
	for _, option := range options {
		summaries = append(summaries, ToSummary(option))
	}
	return summaries
}
