package services

import (
	"context"
	"strings"

	"github.com/SundayYogurt/pim_service/internal/domain"
	"github.com/SundayYogurt/pim_service/internal/dto"
	"github.com/SundayYogurt/pim_service/internal/interfaces"
	"github.com/SundayYogurt/pim_service/internal/repository"
	"go.uber.org/zap"
)

type VariantService interface {
	Create(ctx context.Context, userID uint, input dto.VariantCreateRequest) (*domain.Variant, error)
	Update(ctx context.Context, userID, id uint, input dto.VariantUpdateRequest) (*domain.Variant, error)
	Delete(ctx context.Context, userID, id uint) error

	Get(id uint) (*domain.Variant, error)
	List(filter dto.VariantFilter, page dto.PageQuery) ([]domain.Variant, int64, error)
}

type variantService struct {
	repo          repository.VariantRepository
	productRepo   repository.ProductRepository
	categoryRepo  repository.CategoryRepository
	attributeRepo repository.AttributeRepository
	recorder      interfaces.AuditRecorder
	log           *zap.Logger
}

func NewVariantService(
	repo repository.VariantRepository,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	attributeRepo repository.AttributeRepository,
	recorder interfaces.AuditRecorder,
	log *zap.Logger,
) VariantService {
	return &variantService{
		repo:          repo,
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		attributeRepo: attributeRepo,
		recorder:      recorder,
		log:           log,
	}
}

func (s *variantService) Create(ctx context.Context, userID uint, input dto.VariantCreateRequest) (*domain.Variant, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.ProductID == 0 {
		return nil, badRequest(MsgVariantRequired)
	}
	if input.Price < 0 || input.Stock < 0 {
		return nil, badRequest(MsgInvalidPrice)
	}

	status := domain.ProductStatusDraft
	if input.Status != "" {
		status = domain.ProductStatus(strings.ToUpper(strings.TrimSpace(input.Status)))
		if !status.Valid() {
			return nil, badRequest(MsgInvalidStatus)
		}
	}

	if err := s.checkProduct(input.ProductID); err != nil {
		return nil, err
	}
	categoryID := nonZero(input.CategoryID)
	if err := s.checkCategory(categoryID); err != nil {
		return nil, err
	}
	values, err := s.attributeValues(input.AttributeValues)
	if err != nil {
		return nil, err
	}

	variant := &domain.Variant{
		ProductID:       input.ProductID,
		CategoryID:      categoryID,
		Name:            name,
		SKU:             trimmedPtr(input.SKU),
		Price:           input.Price,
		Stock:           input.Stock,
		Status:          status,
		AttributeValues: values,
	}
	if err := s.repo.Create(variant); err != nil {
		return nil, repoErr(s.log, "create variant", err, MsgVariantNotFound, MsgDuplicateSKU)
	}

	committed(ctx, s.recorder, domain.EntityVariant, variant.ID, domain.ActionCreate, nil, variant, userID)
	return variant, nil
}

func (s *variantService) Update(ctx context.Context, userID, id uint, input dto.VariantUpdateRequest) (*domain.Variant, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, badRequest(MsgVariantRequired)
	}
	if (input.Price != nil && *input.Price < 0) || (input.Stock != nil && *input.Stock < 0) {
		return nil, badRequest(MsgInvalidPrice)
	}
	var status domain.ProductStatus
	if input.Status != nil {
		status = domain.ProductStatus(strings.ToUpper(strings.TrimSpace(*input.Status)))
		if !status.Valid() {
			return nil, badRequest(MsgInvalidStatus)
		}
	}
	if input.CategoryID != nil {
		if err := s.checkCategory(nonZero(input.CategoryID)); err != nil {
			return nil, err
		}
	}

	var values *[]domain.AttributeValue
	if input.AttributeValues != nil {
		v, err := s.attributeValues(*input.AttributeValues)
		if err != nil {
			return nil, err
		}
		if v == nil {
			v = []domain.AttributeValue{}
		}
		values = &v
	}

	before, after, err := s.repo.Update(id, func(v *domain.Variant) error {
		if input.Name != nil {
			v.Name = strings.TrimSpace(*input.Name)
		}
		if input.SKU != nil {
			v.SKU = trimmedPtr(input.SKU)
		}
		if input.CategoryID != nil {
			v.CategoryID = nonZero(input.CategoryID)
		}
		if input.Price != nil {
			v.Price = *input.Price
		}
		if input.Stock != nil {
			v.Stock = *input.Stock
		}
		if input.Status != nil {
			v.Status = status
		}
		return nil
	}, values)
	if err != nil {
		return nil, repoErr(s.log, "update variant", err, MsgVariantNotFound, MsgDuplicateSKU)
	}

	committed(ctx, s.recorder, domain.EntityVariant, id, domain.ActionUpdate, before, after, userID)
	return after, nil
}

func (s *variantService) Delete(ctx context.Context, userID, id uint) error {
	deleted, err := s.repo.Delete(id)
	if err != nil {
		return repoErr(s.log, "delete variant", err, MsgVariantNotFound, "")
	}

	committed(ctx, s.recorder, domain.EntityVariant, id, domain.ActionDelete, deleted, nil, userID)
	return nil
}

func (s *variantService) Get(id uint) (*domain.Variant, error) {
	variant, err := s.repo.FindDetail(id)
	if err != nil {
		return nil, repoErr(s.log, "find variant", err, MsgVariantNotFound, "")
	}
	return variant, nil
}

func (s *variantService) List(filter dto.VariantFilter, page dto.PageQuery) ([]domain.Variant, int64, error) {
	filter.Status = strings.ToUpper(strings.TrimSpace(filter.Status))
	variants, total, err := s.repo.List(filter, page)
	if err != nil {
		return nil, 0, internal(s.log, "list variants", err)
	}
	return variants, total, nil
}

// attributeValues checks every referenced attribute exists. Repeated
// attribute ids keep the last value.
func (s *variantService) attributeValues(input []dto.AttributeValueInput) ([]domain.AttributeValue, error) {
	if len(input) == 0 {
		return nil, nil
	}

	index := make(map[uint]int, len(input))
	values := make([]domain.AttributeValue, 0, len(input))
	ids := make([]uint, 0, len(input))
	for _, in := range input {
		if in.AttributeID == 0 {
			return nil, badRequest(MsgAttributeMissing)
		}
		if i, seen := index[in.AttributeID]; seen {
			values[i].Value = in.Value
			continue
		}
		index[in.AttributeID] = len(values)
		ids = append(ids, in.AttributeID)
		values = append(values, domain.AttributeValue{AttributeID: in.AttributeID, Value: in.Value})
	}

	found, err := s.attributeRepo.CountByIDs(ids)
	if err != nil {
		return nil, internal(s.log, "check attributes", err)
	}
	if found != int64(len(ids)) {
		return nil, badRequest(MsgAttributeMissing)
	}
	return values, nil
}

func (s *variantService) checkProduct(id uint) error {
	ok, err := s.productRepo.Exists(id)
	if err != nil {
		return internal(s.log, "check product", err)
	}
	if !ok {
		return badRequest(MsgProductMissing)
	}
	return nil
}

func (s *variantService) checkCategory(id *uint) error {
	if id == nil {
		return nil
	}
	ok, err := s.categoryRepo.Exists(*id)
	if err != nil {
		return internal(s.log, "check category", err)
	}
	if !ok {
		return badRequest(MsgCategoryMissing)
	}
	return nil
}
