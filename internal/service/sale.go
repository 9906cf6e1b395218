package service

import (
	"context"
	"fmt"

	"suitrental-backend/internal/domain"
	"suitrental-backend/internal/logger"
	"suitrental-backend/internal/repository"
	"suitrental-backend/internal/utils"
)

type saleService struct {
	saleRepo   repository.SaleRepository
	clientRepo repository.ClientRepository
}

func NewSaleService(saleRepo repository.SaleRepository, clientRepo repository.ClientRepository) SaleService {
	return &saleService{saleRepo: saleRepo, clientRepo: clientRepo}
}

// CreateSale mirrors rental creation without dates, deposit, or article
// transitions: a sold article simply never comes back to the rental pool.
func (s *saleService) CreateSale(ctx context.Context, operatorID int32, in CreateSaleInput) (*domain.Sale, error) {
	if in.ClientDNI == "" || in.PaymentMethod == "" || in.TotalCents <= 0 {
		return nil, fmt.Errorf("%w: client, payment method and total are required", domain.ErrValidation)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one article is required", domain.ErrValidation)
	}
	for i, item := range in.Items {
		if item.ArticleID == 0 || item.ArticleTypeID == 0 {
			return nil, fmt.Errorf("%w: item %d missing article or type reference", domain.ErrValidation, i)
		}
	}
	if _, err := s.clientRepo.GetByDNI(ctx, in.ClientDNI); err != nil {
		return nil, err
	}

	sale := &domain.Sale{
		Code:          utils.SaleCode(),
		ClientDNI:     in.ClientDNI,
		OperatorID:    operatorID,
		TotalCents:    in.TotalCents,
		PaymentMethod: in.PaymentMethod,
		Notes:         in.Notes,
	}
	for _, item := range in.Items {
		sale.Items = append(sale.Items, domain.SaleItem{
			ArticleID:     item.ArticleID,
			ArticleTypeID: item.ArticleTypeID,
			Description:   item.Description,
			PriceCents:    item.PriceCents,
		})
	}

	if err := s.saleRepo.CreateWithItems(ctx, sale); err != nil {
		return nil, err
	}
	logger.Info("sale registered", "code", sale.Code, "client", sale.ClientDNI, "items", len(sale.Items))
	return sale, nil
}

func (s *saleService) ListSales(ctx context.Context) ([]domain.Sale, error) {
	return s.saleRepo.List(ctx)
}

func (s *saleService) GetSale(ctx context.Context, id int32) (*domain.Sale, error) {
	return s.saleRepo.GetByID(ctx, id)
}

// RegisterSaleReturn appends an unapproved return record; approval is an
// external administrative action.
func (s *saleService) RegisterSaleReturn(ctx context.Context, saleID, articleID int32, reason string) (*domain.SaleReturn, error) {
	if articleID == 0 {
		return nil, fmt.Errorf("%w: article is required", domain.ErrValidation)
	}
	if _, err := s.saleRepo.GetByID(ctx, saleID); err != nil {
		return nil, err
	}
	ret := &domain.SaleReturn{
		SaleID:    saleID,
		ArticleID: articleID,
		Reason:    reason,
	}
	if err := s.saleRepo.CreateReturn(ctx, ret); err != nil {
		return nil, err
	}
	return ret, nil
}
