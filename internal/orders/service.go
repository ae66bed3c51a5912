package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bakecake/bakecake-backend/internal/cakes"
	"github.com/bakecake/bakecake-backend/internal/users"
	"github.com/bakecake/bakecake-backend/pkg/db/models"
	"github.com/bakecake/bakecake-backend/pkg/enums"
	pkgerrors "github.com/bakecake/bakecake-backend/pkg/errors"
	"github.com/bakecake/bakecake-backend/pkg/logger"
	"github.com/bakecake/bakecake-backend/pkg/metrics"
	"github.com/bakecake/bakecake-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes order placement and retrieval.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, params pagination.Params) ([]models.Order, string, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, string, error)
}

type service struct {
	repo    Repository
	users   users.Service
	cakes   cakes.Service
	tx      txRunner
	logg    *logger.Logger
	metrics *metrics.OrderMetrics
	now     func() time.Time
}

// ServiceParams collects the order service dependencies.
type ServiceParams struct {
	Repo    Repository
	Users   users.Service
	Cakes   cakes.Service
	Tx      txRunner
	Logger  *logger.Logger
	Metrics *metrics.OrderMetrics
	Now     func() time.Time
}

// NewService builds an order service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("users service required")
	}
	if params.Cakes == nil {
		return nil, fmt.Errorf("cakes service required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:    params.Repo,
		users:   params.Users,
		cakes:   params.Cakes,
		tx:      params.Tx,
		logg:    params.Logger,
		metrics: params.Metrics,
		now:     now,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	user, err := s.users.Get(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	standard, err := s.loadCakeSlot(ctx, input.StandardCakeID, enums.CakeKindStandard)
	if err != nil {
		return nil, err
	}
	custom, err := s.loadCakeSlot(ctx, input.CustomCakeID, enums.CakeKindCustom)
	if err != nil {
		return nil, err
	}
	if standard == nil && custom == nil {
		s.logg.Warn(s.logg.WithUserID(ctx, user.ID.String()), "order placed without cakes")
	}

	if input.DeliveryTime == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery time is required")
	}
	if input.DeliveryDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery date is required")
	}

	savedAt := s.now()
	orderDate := savedAt
	if input.OrderDate != nil {
		orderDate = *input.OrderDate
	}

	address := input.Address
	if address == "" {
		address = user.Address
	}

	price := PriceOrder(PriceInput{
		StandardCake: standard,
		CustomCake:   custom,
		DeliveryDate: input.DeliveryDate,
		SavedAt:      savedAt,
	})
	surcharged := SurchargeApplies(input.DeliveryDate, savedAt)

	// Surcharged is persisted with the price it explains. The order date is
	// caller-supplied and may differ from the save time the price was
	// computed against.
	order := &models.Order{
		UserID:         user.ID,
		StandardCakeID: input.StandardCakeID,
		CustomCakeID:   input.CustomCakeID,
		Address:        address,
		OrderDate:      orderDate,
		DeliveryDate:   input.DeliveryDate,
		DeliveryTime:   input.DeliveryTime,
		Comment:        input.Comment,
		Price:          price,
		Surcharged:     surcharged,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.repo.WithTx(tx).Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncOrderCreated(surcharged)
	s.logg.Info(s.logg.WithOrderID(ctx, order.ID.String()), "order placed")

	return s.Get(ctx, order.ID)
}

// loadCakeSlot resolves an optional cake reference and checks that the cake
// kind matches the slot it was attached to.
func (s *service) loadCakeSlot(ctx context.Context, id *uuid.UUID, kind enums.CakeKind) (*models.Cake, error) {
	if id == nil {
		return nil, nil
	}
	cake, err := s.cakes.Get(ctx, *id)
	if err != nil {
		return nil, err
	}
	if cake.Kind != kind {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cake kind does not match order slot").
			WithDetails(map[string]any{"cake_id": id.String(), "kind": string(cake.Kind), "slot": string(kind)})
	}
	return cake, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) ([]models.Order, string, error) {
	if _, err := pagination.ParseCursor(params.Cursor); err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	rows, next, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return rows, next, nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, string, error) {
	if _, err := pagination.ParseCursor(params.Cursor); err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	rows, next, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list user orders")
	}
	return rows, next, nil
}
