package service

import (
	"context"
	"fmt"

	"suitrental-backend/internal/domain"
	"suitrental-backend/internal/repository"
)

type clientService struct {
	clientRepo repository.ClientRepository
}

func NewClientService(clientRepo repository.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

func (s *clientService) CreateClient(ctx context.Context, client *domain.Client) error {
	if client.DNI == "" || client.Names == "" || client.Phone == "" {
		return fmt.Errorf("%w: dni, names and phone are required", domain.ErrValidation)
	}
	return s.clientRepo.Create(ctx, client)
}

func (s *clientService) GetClient(ctx context.Context, dni string) (*domain.Client, error) {
	return s.clientRepo.GetByDNI(ctx, dni)
}

func (s *clientService) ListClients(ctx context.Context, search string, limit, offset int32) ([]domain.Client, int32, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.clientRepo.List(ctx, search, limit, offset)
}

func (s *clientService) UpdateClient(ctx context.Context, client *domain.Client) error {
	if client.DNI == "" {
		return fmt.Errorf("%w: dni is required", domain.ErrValidation)
	}
	return s.clientRepo.Update(ctx, client)
}

func (s *clientService) DeleteClient(ctx context.Context, dni string) error {
	return s.clientRepo.Delete(ctx, dni)
}

func (s *clientService) ListTrash(ctx context.Context) ([]domain.TrashedClient, error) {
	return s.clientRepo.ListTrash(ctx)
}
