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

type AttributeService interface {
	Create(ctx context.Context, userID uint, input dto.AttributeCreateRequest) (*domain.Attribute, error)
	Update(ctx context.Context, userID, id uint, input dto.AttributeUpdateRequest) (*domain.Attribute, error)
	Delete(ctx context.Context, userID, id uint) error

	Get(id uint) (*domain.Attribute, error)
	List(page dto.PageQuery) ([]domain.Attribute, int64, error)
}

type attributeService struct {
	repo     repository.AttributeRepository
	recorder interfaces.AuditRecorder
	log      *zap.Logger
}

func NewAttributeService(repo repository.AttributeRepository, recorder interfaces.AuditRecorder, log *zap.Logger) AttributeService {
	return &attributeService{
		repo:     repo,
		recorder: recorder,
		log:      log,
	}
}

func parseAttributeType(raw string) (domain.AttributeType, error) {
	t := domain.AttributeType(strings.ToUpper(strings.TrimSpace(raw)))
	if t == "" {
		return domain.AttributeTypeText, nil
	}
	if !t.Valid() {
		return "", badRequest(MsgInvalidAttrType)
	}
	return t, nil
}

func (s *attributeService) Create(ctx context.Context, userID uint, input dto.AttributeCreateRequest) (*domain.Attribute, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, badRequest(MsgNameRequired)
	}
	attrType, err := parseAttributeType(input.Type)
	if err != nil {
		return nil, err
	}

	attribute := &domain.Attribute{Name: name, Type: attrType}
	if err := s.repo.Create(attribute); err != nil {
		return nil, repoErr(s.log, "create attribute", err, MsgAttributeNotFound, MsgDuplicateAttr)
	}

	committed(ctx, s.recorder, domain.EntityAttribute, attribute.ID, domain.ActionCreate, nil, attribute, userID)
	return attribute, nil
}

func (s *attributeService) Update(ctx context.Context, userID, id uint, input dto.AttributeUpdateRequest) (*domain.Attribute, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, badRequest(MsgNameRequired)
	}
	var attrType domain.AttributeType
	if input.Type != nil {
		t, err := parseAttributeType(*input.Type)
		if err != nil {
			return nil, err
		}
		attrType = t
	}

	before, after, err := s.repo.Update(id, func(a *domain.Attribute) error {
		if input.Name != nil {
			a.Name = strings.TrimSpace(*input.Name)
		}
		if input.Type != nil {
			a.Type = attrType
		}
		return nil
	})
	if err != nil {
		return nil, repoErr(s.log, "update attribute", err, MsgAttributeNotFound, MsgDuplicateAttr)
	}

	committed(ctx, s.recorder, domain.EntityAttribute, id, domain.ActionUpdate, before, after, userID)
	return after, nil
}

func (s *attributeService) Delete(ctx context.Context, userID, id uint) error {
	deleted, err := s.repo.Delete(id)
	if errors.Is(err, repository.ErrAttributeHasValues) {
		return badRequest(MsgAttributeValues)
	}
	if err != nil {
		return repoErr(s.log, "delete attribute", err, MsgAttributeNotFound, "")
	}

	committed(ctx, s.recorder, domain.EntityAttribute, id, domain.ActionDelete, deleted, nil, userID)
	return nil
}

func (s *attributeService) Get(id uint) (*domain.Attribute, error) {
	attribute, err := s.repo.FindByID(id)
	if err != nil {
		return nil, repoErr(s.log, "find attribute", err, MsgAttributeNotFound, "")
	}
	return attribute, nil
}

func (s *attributeService) List(page dto.PageQuery) ([]domain.Attribute, int64, error) {
	attributes, total, err := s.repo.List(page)
	if err != nil {
		return nil, 0, internal(s.log, "list attributes", err)
	}
	return attributes, total, nil
}
