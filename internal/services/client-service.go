package services

import (
	"context"
	"errors"
	"strings"

	"github.com/SundayYogurt/pim_service/internal/domain"
	"github.com/SundayYogurt/pim_service/internal/dto"
	"github.com/SundayYogurt/pim_service/internal/interfaces"
	"github.com/SundayYogurt/pim_service/internal/repository"
	"go.uber.org/zap"
)

type ClientService interface {
	Create(ctx context.Context, userID uint, input dto.ClientCreateRequest) (*domain.Client, error)
	Update(ctx context.Context, userID, id uint, input dto.ClientUpdateRequest) (*domain.Client, error)
	Delete(ctx context.Context, userID, id uint) error

	Get(id uint) (*domain.Client, error)
	List(search string, page dto.PageQuery) ([]domain.Client, int64, error)
}

type clientService struct {
	repo     repository.ClientRepository
	recorder interfaces.AuditRecorder
	log      *zap.Logger
}

func NewClientService(repo repository.ClientRepository, recorder interfaces.AuditRecorder, log *zap.Logger) ClientService {
	return &clientService{
		repo:     repo,
		recorder: recorder,
		log:      log,
	}
}

func (s *clientService) Create(ctx context.Context, userID uint, input dto.ClientCreateRequest) (*domain.Client, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, badRequest(MsgNameRequired)
	}

	client := &domain.Client{
		Name:  name,
		Email: strings.TrimSpace(input.Email),
		Phone: strings.TrimSpace(input.Phone),
	}
	if err := s.repo.Create(client); err != nil {
		return nil, repoErr(s.log, "create client", err, MsgClientNotFound, MsgDuplicateClient)
	}

	committed(ctx, s.recorder, domain.EntityClient, client.ID, domain.ActionCreate, nil, client, userID)
	return client, nil
}

func (s *clientService) Update(ctx context.Context, userID, id uint, input dto.ClientUpdateRequest) (*domain.Client, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, badRequest(MsgNameRequired)
	}

	before, after, err := s.repo.Update(id, func(c *domain.Client) error {
		if input.Name != nil {
			c.Name = strings.TrimSpace(*input.Name)
		}
		if input.Email != nil {
			c.Email = strings.TrimSpace(*input.Email)
		}
		if input.Phone != nil {
			c.Phone = strings.TrimSpace(*input.Phone)
		}
		return nil
	})
	if err != nil {
		return nil, repoErr(s.log, "update client", err, MsgClientNotFound, MsgDuplicateClient)
	}

	committed(ctx, s.recorder, domain.EntityClient, id, domain.ActionUpdate, before, after, userID)
	return after, nil
}

func (s *clientService) Delete(ctx context.Context, userID, id uint) error {
	deleted, err := s.repo.Delete(id)
	if errors.Is(err, repository.ErrClientHasProducts) {
		return badRequest(MsgClientProducts)
	}
	if err != nil {
		return repoErr(s.log, "delete client", err, MsgClientNotFound, "")
	}

	committed(ctx, s.recorder, domain.EntityClient, id, domain.ActionDelete, deleted, nil, userID)
	return nil
}

func (s *clientService) Get(id uint) (*domain.Client, error) {
	client, err := s.repo.FindByID(id)
	if err != nil {
		return nil, repoErr(s.log, "find client", err, MsgClientNotFound, "")
	}
	return client, nil
}

func (s *clientService) List(search string, page dto.PageQuery) ([]domain.Client, int64, error) {
	clients, total, err := s.repo.List(search, page)
	if err != nil {
		return nil, 0, internal(s.log, "list clients", err)
	}
	return clients, total, nil
}
