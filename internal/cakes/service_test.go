package cakes

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bakecake/bakecake-backend/internal/catalog"
	"github.com/bakecake/bakecake-backend/pkg/db/models"
	"github.com/bakecake/bakecake-backend/pkg/enums"
	pkgerrors "github.com/bakecake/bakecake-backend/pkg/errors"
	"github.com/bakecake/bakecake-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})
}

// stubCatalog resolves option names against the static price tables and
// hands out stable IDs per name, so the repo stub can reconstruct relations.
type stubCatalog struct {
	byName map[string]*models.CatalogOption
	byID   map[uuid.UUID]models.CatalogOption
}

func newStubCatalog() *stubCatalog {
	return &stubCatalog{
		byName: make(map[string]*models.CatalogOption),
		byID:   make(map[uuid.UUID]models.CatalogOption),
	}
}

func (s *stubCatalog) Seed(ctx context.Context) error { return nil }

func (s *stubCatalog) List(ctx context.Context) ([]catalog.OptionSummary, error) {
	return nil, nil
}

func (s *stubCatalog) ListKind(ctx context.Context, kind enums.OptionKind) ([]catalog.OptionSummary, error) {
	return nil, nil
}

func (s *stubCatalog) Resolve(ctx context.Context, kind enums.OptionKind, name string) (*models.CatalogOption, error) {
	key := string(kind) + "/" + name
	if option, ok := s.byName[key]; ok {
		return option, nil
	}
	price, err := catalog.ResolvePrice(kind, name)
	if err != nil {
		return nil, err
	}
	option := &models.CatalogOption{ID: uuid.New(), Kind: kind, Name: name, Price: price}
	s.byName[key] = option
	s.byID[option.ID] = *option
	return option, nil
}

type stubCakeRepo struct {
	cat     *stubCatalog
	cakes   map[uuid.UUID]*models.Cake
	berries map[uuid.UUID][]models.CatalogOption
	decor   map[uuid.UUID][]models.CatalogOption
}

func newStubCakeRepo(cat *stubCatalog) *stubCakeRepo {
	return &stubCakeRepo{
		cat:     cat,
		cakes:   make(map[uuid.UUID]*models.Cake),
		berries: make(map[uuid.UUID][]models.CatalogOption),
		decor:   make(map[uuid.UUID][]models.CatalogOption),
	}
}

func (s *stubCakeRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubCakeRepo) Create(ctx context.Context, cake *models.Cake) (*models.Cake, error) {
	cake.ID = uuid.New()
	stored := *cake
	s.cakes[cake.ID] = &stored
	return cake, nil
}

func (s *stubCakeRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Cake, error) {
	stored, ok := s.cakes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cake := *stored
	cake.Level = s.cat.byID[cake.LevelID]
	cake.Shape = s.cat.byID[cake.ShapeID]
	if cake.ToppingID != nil {
		topping := s.cat.byID[*cake.ToppingID]
		cake.Topping = &topping
	}
	cake.Berries = s.berries[id]
	cake.Decor = s.decor[id]
	return &cake, nil
}

func (s *stubCakeRepo) UpdateScalars(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	stored, ok := s.cakes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["level_id"]; ok {
		stored.LevelID = v.(uuid.UUID)
	}
	if v, ok := updates["shape_id"]; ok {
		stored.ShapeID = v.(uuid.UUID)
	}
	if v, ok := updates["topping_id"]; ok {
		if v == nil {
			stored.ToppingID = nil
		} else {
			toppingID := v.(uuid.UUID)
			stored.ToppingID = &toppingID
		}
	}
	if v, ok := updates["inscription"]; ok {
		if v == nil {
			stored.Inscription = nil
		} else {
			stored.Inscription = v.(*string)
		}
	}
	return nil
}

func (s *stubCakeRepo) ReplaceBerries(ctx context.Context, cake *models.Cake, berries []models.CatalogOption) error {
	s.berries[cake.ID] = berries
	return nil
}

func (s *stubCakeRepo) ReplaceDecor(ctx context.Context, cake *models.Cake, decor []models.CatalogOption) error {
	s.decor[cake.ID] = decor
	return nil
}

func (s *stubCakeRepo) UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) error {
	stored, ok := s.cakes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Price = price
	return nil
}

func newTestService(t *testing.T) (Service, *stubCakeRepo) {
	t.Helper()
	cat := newStubCatalog()
	repo := newStubCakeRepo(cat)
	svc, err := NewService(ServiceParams{Repo: repo, Catalog: cat, Tx: passthroughTx{}, Logger: testLogger()})
	require.NoError(t, err)
	return svc, repo
}

type passthroughTx struct{}

func (passthroughTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func TestCreateComputesFinalPrice(t *testing.T) {
	svc, _ := newTestService(t)

	cake, err := svc.Create(context.Background(), CreateCakeInput{
		Kind:        enums.CakeKindCustom,
		Level:       "2",
		Shape:       "circle",
		Topping:     strPtr("milk_chocolate"),
		Berries:     []string{"strawberry"},
		Inscription: strPtr("Happy Birthday"),
	})
	require.NoError(t, err)

	assert.Equal(t, enums.CakeKindCustom, cake.Kind)
	assert.True(t, cake.Price.Equal(decimal.NewFromInt(2350)), "got %s", cake.Price)
	assert.Len(t, cake.Berries, 1)
	require.NotNil(t, cake.Topping)
	assert.Equal(t, "milk_chocolate", cake.Topping.Name)
}

func TestCreateRejectsUnknownOptionBeforePersisting(t *testing.T) {
	svc, repo := newTestService(t)

	_, err := svc.Create(context.Background(), CreateCakeInput{
		Kind:    enums.CakeKindStandard,
		Level:   "1",
		Shape:   "square",
		Berries: []string{"triangle"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrUnknownOption))
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	assert.Empty(t, repo.cakes)
}

func TestCreateRejectsUnknownKind(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateCakeInput{
		Kind:  enums.CakeKind("wedding"),
		Level: "1",
		Shape: "square",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCreateCollapsesDuplicateSetEntries(t *testing.T) {
	svc, _ := newTestService(t)

	cake, err := svc.Create(context.Background(), CreateCakeInput{
		Kind:    enums.CakeKindStandard,
		Level:   "1",
		Shape:   "square",
		Berries: []string{"strawberry", "strawberry"},
	})
	require.NoError(t, err)

	// 400 + 600 + 500, the repeated berry charged once
	assert.Len(t, cake.Berries, 1)
	assert.True(t, cake.Price.Equal(decimal.NewFromInt(1500)), "got %s", cake.Price)
}

func TestReplaceOptionsRecomputesPrice(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cake, err := svc.Create(ctx, CreateCakeInput{
		Kind:  enums.CakeKindCustom,
		Level: "1",
		Shape: "circle",
	})
	require.NoError(t, err)
	require.True(t, cake.Price.Equal(decimal.NewFromInt(800)))

	updated, err := svc.ReplaceOptions(ctx, cake.ID, OptionsInput{
		Level: "3",
		Shape: "rectangle",
		Decor: []string{"meringue"},
	})
	require.NoError(t, err)

	// 1100 + 1000 + 400
	assert.True(t, updated.Price.Equal(decimal.NewFromInt(2500)), "got %s", updated.Price)
	assert.Nil(t, updated.Topping)
	assert.Len(t, updated.Decor, 1)
}

func TestFinalizePriceIsStable(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cake, err := svc.Create(ctx, CreateCakeInput{
		Kind:  enums.CakeKindStandard,
		Level: "2",
		Shape: "square",
	})
	require.NoError(t, err)

	again, err := svc.FinalizePrice(ctx, cake.ID)
	require.NoError(t, err)
	assert.True(t, again.Price.Equal(cake.Price))
}

func TestGetMissingCake(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
