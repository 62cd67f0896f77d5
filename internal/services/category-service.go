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
	"gorm.io/gorm"
)

type CategoryService interface {
	Create(ctx context.Context, userID uint, input dto.CategoryCreateRequest) (*domain.Category, error)
	Update(ctx context.Context, userID, id uint, input dto.CategoryUpdateRequest) (*domain.Category, error)
	Delete(ctx context.Context, userID, id uint) error

	Get(id uint) (*domain.Category, error)
	List(filter dto.CategoryFilter, page dto.PageQuery) ([]domain.Category, int64, error)
}

type categoryService struct {
	repo     repository.CategoryRepository
	recorder interfaces.AuditRecorder
	log      *zap.Logger
}

func NewCategoryService(repo repository.CategoryRepository, recorder interfaces.AuditRecorder, log *zap.Logger) CategoryService {
	return &categoryService{
		repo:     repo,
		recorder: recorder,
		log:      log,
	}
}

func (s *categoryService) Create(ctx context.Context, userID uint, input dto.CategoryCreateRequest) (*domain.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, badRequest(MsgNameRequired)
	}

	parentID := nonZero(input.ParentID)
	if parentID != nil {
		if _, err := s.parent(*parentID); err != nil {
			return nil, err
		}
	}

	category := &domain.Category{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		ParentID:    parentID,
	}
	if err := s.repo.Create(category); err != nil {
		return nil, internal(s.log, "create category", err)
	}

	committed(ctx, s.recorder, domain.EntityCategory, category.ID, domain.ActionCreate, nil, category, userID)
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, userID, id uint, input dto.CategoryUpdateRequest) (*domain.Category, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, badRequest(MsgNameRequired)
	}

	parentID := nonZero(input.ParentID)
	if parentID != nil {
		if *parentID == id {
			return nil, badRequest(MsgSelfParent)
		}
		if err := s.checkNotDescendant(id, *parentID); err != nil {
			return nil, err
		}
	}

	before, after, err := s.repo.Update(id, func(c *domain.Category) error {
		if input.Name != nil {
			c.Name = strings.TrimSpace(*input.Name)
		}
		if input.Description != nil {
			c.Description = strings.TrimSpace(*input.Description)
		}
		if input.ParentID != nil {
			c.ParentID = parentID
		}
		return nil
	})
	if err != nil {
		return nil, repoErr(s.log, "update category", err, MsgCategoryNotFound, "")
	}

	committed(ctx, s.recorder, domain.EntityCategory, id, domain.ActionUpdate, before, after, userID)
	return after, nil
}

func (s *categoryService) Delete(ctx context.Context, userID, id uint) error {
	deleted, err := s.repo.Delete(id)
	switch {
	case errors.Is(err, repository.ErrCategoryHasChildren):
		return badRequest(MsgCategoryChildren)
	case errors.Is(err, repository.ErrCategoryHasProducts):
		return badRequest(MsgCategoryProducts)
	case errors.Is(err, repository.ErrCategoryHasVariants):
		return badRequest(MsgCategoryVariants)
	case err != nil:
		return repoErr(s.log, "delete category", err, MsgCategoryNotFound, "")
	}

	committed(ctx, s.recorder, domain.EntityCategory, id, domain.ActionDelete, deleted, nil, userID)
	return nil
}

func (s *categoryService) Get(id uint) (*domain.Category, error) {
	category, err := s.repo.FindDetail(id)
	if err != nil {
		return nil, repoErr(s.log, "find category", err, MsgCategoryNotFound, "")
	}
	return category, nil
}

func (s *categoryService) List(filter dto.CategoryFilter, page dto.PageQuery) ([]domain.Category, int64, error) {
	categories, total, err := s.repo.List(filter, page)
	if err != nil {
		return nil, 0, internal(s.log, "list categories", err)
	}
	return categories, total, nil
}

func (s *categoryService) parent(id uint) (*domain.Category, error) {
	parent, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, badRequest(MsgParentMissing)
	}
	if err != nil {
		return nil, internal(s.log, "find parent category", err)
	}
	return parent, nil
}

// checkNotDescendant walks up from parentID and fails if it reaches id.
func (s *categoryService) checkNotDescendant(id, parentID uint) error {
	seen := map[uint]bool{}
	next := &parentID
	for next != nil {
		if *next == id {
			return badRequest(MsgParentCycle)
		}
		if seen[*next] {
			return nil
		}
		seen[*next] = true

		current, err := s.parent(*next)
		if err != nil {
			return err
		}
		next = current.ParentID
	}
	return nil
}
