package app

import (
	"context"
	"strings"
	"time"

	"github.com/nvalera/supermart/internal/clock"
	"github.com/nvalera/supermart/internal/domain"
)

type AdminRepository interface {
	CreateProduct(ctx context.Context, product domain.Product) error
	UpdateProduct(ctx context.Context, product domain.Product) error
	DeleteProduct(ctx context.Context, productID string) error
	ListDiscounts(ctx context.Context) ([]domain.DiscountCode, error)
	GetDiscount(ctx context.Context, codeID string) (domain.DiscountCode, error)
	CreateDiscount(ctx context.Context, code domain.DiscountCode) error
	UpdateDiscount(ctx context.Context, code domain.DiscountCode) error
	DeleteDiscount(ctx context.Context, codeID string) error
}

// AdminService covers product and promo-code management.
type AdminService struct {
	repo  AdminRepository
	clock clock.Clock
}

func NewAdminService(repo AdminRepository, clk clock.Clock) *AdminService {
	return &AdminService{repo: repo, clock: clk}
}

type ProductInput struct {
	Name       string
	PriceCents int64
	Quantity   int
	ImageRef   string
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.ErrProductNameRequired
	}
	if in.PriceCents < 0 {
		return domain.ErrInvalidPrice
	}
	if in.Quantity < 0 {
		return domain.ErrInvalidQuantity
	}
	return nil
}

func (s *AdminService) CreateProduct(ctx context.Context, in ProductInput) (domain.Product, error) {
	if err := in.validate(); err != nil {
		return domain.Product{}, err
	}

	now := s.clock.Now()
	product := domain.Product{
		ID:         newID(),
		Name:       strings.TrimSpace(in.Name),
		PriceCents: in.PriceCents,
		Quantity:   in.Quantity,
		ImageRef:   in.ImageRef,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

func (s *AdminService) UpdateProduct(ctx context.Context, productID string, in ProductInput) (domain.Product, error) {
	if productID == "" {
		return domain.Product{}, domain.ErrInvalidID
	}
	if err := in.validate(); err != nil {
		return domain.Product{}, err
	}

	product := domain.Product{
		ID:         productID,
		Name:       strings.TrimSpace(in.Name),
		PriceCents: in.PriceCents,
		Quantity:   in.Quantity,
		ImageRef:   in.ImageRef,
		UpdatedAt:  s.clock.Now(),
	}
	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

func (s *AdminService) DeleteProduct(ctx context.Context, productID string) error {
	if productID == "" {
		return domain.ErrInvalidID
	}
	return s.repo.DeleteProduct(ctx, productID)
}

type DiscountInput struct {
	Code          string
	Description   string
	PercentOff    *int
	UsesRemaining *int
	ExpiresAt     *time.Time
	Active        bool
}

func (in DiscountInput) validate() error {
	if strings.TrimSpace(in.Code) == "" {
		return domain.ErrDiscountCodeRequired
	}
	if in.PercentOff != nil && (*in.PercentOff < 0 || *in.PercentOff > 100) {
		return domain.ErrInvalidPercentOff
	}
	if in.UsesRemaining != nil && *in.UsesRemaining < 0 {
		return domain.ErrInvalidUses
	}
	return nil
}

func (s *AdminService) ListDiscounts(ctx context.Context) ([]domain.DiscountCode, error) {
	return s.repo.ListDiscounts(ctx)
}

func (s *AdminService) GetDiscount(ctx context.Context, codeID string) (domain.DiscountCode, error) {
	if codeID == "" {
		return domain.DiscountCode{}, domain.ErrInvalidID
	}
	return s.repo.GetDiscount(ctx, codeID)
}

func (s *AdminService) CreateDiscount(ctx context.Context, in DiscountInput) (domain.DiscountCode, error) {
	if err := in.validate(); err != nil {
		return domain.DiscountCode{}, err
	}

	code := domain.DiscountCode{
		ID:            newID(),
		Code:          strings.TrimSpace(in.Code),
		Description:   in.Description,
		PercentOff:    in.PercentOff,
		UsesRemaining: in.UsesRemaining,
		ExpiresAt:     in.ExpiresAt,
		Active:        in.Active,
		CreatedAt:     s.clock.Now(),
	}
	if err := s.repo.CreateDiscount(ctx, code); err != nil {
		return domain.DiscountCode{}, err
	}
	return code, nil
}

func (s *AdminService) UpdateDiscount(ctx context.Context, codeID string, in DiscountInput) (domain.DiscountCode, error) {
	if codeID == "" {
		return domain.DiscountCode{}, domain.ErrInvalidID
	}
	if err := in.validate(); err != nil {
		return domain.DiscountCode{}, err
	}

	code := domain.DiscountCode{
		ID:            codeID,
		Code:          strings.TrimSpace(in.Code),
		Description:   in.Description,
		PercentOff:    in.PercentOff,
		UsesRemaining: in.UsesRemaining,
		ExpiresAt:     in.ExpiresAt,
		Active:        in.Active,
	}
	if err := s.repo.UpdateDiscount(ctx, code); err != nil {
		return domain.DiscountCode{}, err
	}
	return code, nil
}

func (s *AdminService) DeleteDiscount(ctx context.Context, codeID string) error {
	if codeID == "" {
		return domain.ErrInvalidID
	}
	return s.repo.DeleteDiscount(ctx, codeID)
}
