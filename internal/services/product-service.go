package services

import (
	"context"
	"errors"
	"strings"

	"github.com/SundayYogurt/pim_service/internal/domain"
	"github.com/SundayYogurt/pim_service/internal/dto"
	"github.com/SundayYogurt/pim_service/internal/interfaces"
	"github.com/SundayYogurt/pim_service/internal/repository"
	"github.com/SundayYogurt/pim_service/pkg/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	productImageFolder   = "products"
	productImageMaxWidth = 1600
)

type ProductService interface {
	Create(ctx context.Context, userID uint, input dto.ProductCreateRequest) (*domain.Product, error)
	Update(ctx context.Context, userID, id uint, input dto.ProductUpdateRequest) (*domain.Product, error)
	UpdateCategory(ctx context.Context, userID, id uint, input dto.ProductCategoryRequest) (*domain.Product, error)
	SetImage(ctx context.Context, userID, id uint, filename string, data []byte) (*domain.Product, error)
	Delete(ctx context.Context, userID, id uint) error

	Get(id uint) (*domain.Product, error)
	List(filter dto.ProductFilter, page dto.PageQuery) ([]domain.Product, int64, error)
}

type productService struct {
	repo         repository.ProductRepository
	clientRepo   repository.ClientRepository
	categoryRepo repository.CategoryRepository
	uploader     interfaces.Uploader
	recorder     interfaces.AuditRecorder
	log          *zap.Logger
}

func NewProductService(
	repo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	categoryRepo repository.CategoryRepository,
	uploader interfaces.Uploader,
	recorder interfaces.AuditRecorder,
	log *zap.Logger,
) ProductService {
	return &productService{
		repo:         repo,
		clientRepo:   clientRepo,
		categoryRepo: categoryRepo,
		uploader:     uploader,
		recorder:     recorder,
		log:          log,
	}
}

func (s *productService) Create(ctx context.Context, userID uint, input dto.ProductCreateRequest) (*domain.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.ClientID == 0 {
		return nil, badRequest(MsgProductRequired)
	}

	status := domain.ProductStatusDraft
	if input.Status != "" {
		status = domain.ProductStatus(strings.ToUpper(strings.TrimSpace(input.Status)))
		if !status.Valid() {
			return nil, badRequest(MsgInvalidStatus)
		}
	}

	if err := s.checkClient(input.ClientID); err != nil {
		return nil, err
	}
	categoryID := nonZero(input.CategoryID)
	if err := s.checkCategory(categoryID); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		SKU:         trimmedPtr(input.SKU),
		ClientID:    input.ClientID,
		CategoryID:  categoryID,
		Status:      status,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, repoErr(s.log, "create product", err, MsgProductNotFound, MsgDuplicateSKU)
	}

	committed(ctx, s.recorder, domain.EntityProduct, product.ID, domain.ActionCreate, nil, product, userID)
	return product, nil
}

func (s *productService) Update(ctx context.Context, userID, id uint, input dto.ProductUpdateRequest) (*domain.Product, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, badRequest(MsgProductRequired)
	}
	if input.ClientID != nil {
		if *input.ClientID == 0 {
			return nil, badRequest(MsgProductRequired)
		}
		if err := s.checkClient(*input.ClientID); err != nil {
			return nil, err
		}
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

	before, after, err := s.repo.Update(id, func(p *domain.Product) error {
		if input.Name != nil {
			p.Name = strings.TrimSpace(*input.Name)
		}
		if input.Description != nil {
			p.Description = strings.TrimSpace(*input.Description)
		}
		if input.SKU != nil {
			p.SKU = trimmedPtr(input.SKU)
		}
		if input.ClientID != nil {
			p.ClientID = *input.ClientID
		}
		if input.CategoryID != nil {
			p.CategoryID = nonZero(input.CategoryID)
		}
		if input.Status != nil {
			p.Status = status
		}
		return nil
	})
	if err != nil {
		return nil, repoErr(s.log, "update product", err, MsgProductNotFound, MsgDuplicateSKU)
	}

	committed(ctx, s.recorder, domain.EntityProduct, id, domain.ActionUpdate, before, after, userID)
	return after, nil
}

func (s *productService) UpdateCategory(ctx context.Context, userID, id uint, input dto.ProductCategoryRequest) (*domain.Product, error) {
	categoryID := nonZero(input.CategoryID)
	if err := s.checkCategory(categoryID); err != nil {
		return nil, err
	}

	before, after, err := s.repo.Update(id, func(p *domain.Product) error {
		p.CategoryID = categoryID
		return nil
	})
	if err != nil {
		return nil, repoErr(s.log, "update product category", err, MsgProductNotFound, "")
	}

	committed(ctx, s.recorder, domain.EntityProduct, id, domain.ActionUpdateCategory, before, after, userID)
	return after, nil
}

func (s *productService) SetImage(ctx context.Context, userID, id uint, filename string, data []byte) (*domain.Product, error) {
	if len(data) == 0 {
		return nil, badRequest(MsgImageRequired)
	}
	if _, err := s.repo.FindByID(id); err != nil {
		return nil, repoErr(s.log, "find product", err, MsgProductNotFound, "")
	}

	jpg, err := imaging.ToJPEG(data, productImageMaxWidth, 0)
	if err != nil {
		s.log.Info("rejected product image", zap.String("filename", filename), zap.Error(err))
		return nil, badRequest(MsgInvalidImage)
	}

	url, err := s.uploader.UploadBytes(ctx, productImageFolder, uuid.NewString()+".jpg", jpg)
	if err != nil {
		return nil, internal(s.log, "upload product image", err)
	}

	before, after, err := s.repo.Update(id, func(p *domain.Product) error {
		p.ImageURL = &url
		return nil
	})
	if err != nil {
		return nil, repoErr(s.log, "set product image", err, MsgProductNotFound, "")
	}

	committed(ctx, s.recorder, domain.EntityProduct, id, domain.ActionUpdate, before, after, userID)
	return after, nil
}

func (s *productService) Delete(ctx context.Context, userID, id uint) error {
	deleted, err := s.repo.Delete(id)
	if errors.Is(err, repository.ErrProductHasVariants) {
		return badRequest(MsgProductHasVariant)
	}
	if err != nil {
		return repoErr(s.log, "delete product", err, MsgProductNotFound, "")
	}

	committed(ctx, s.recorder, domain.EntityProduct, id, domain.ActionDelete, deleted, nil, userID)
	return nil
}

func (s *productService) Get(id uint) (*domain.Product, error) {
	product, err := s.repo.FindDetail(id)
	if err != nil {
		return nil, repoErr(s.log, "find product", err, MsgProductNotFound, "")
	}
	return product, nil
}

func (s *productService) List(filter dto.ProductFilter, page dto.PageQuery) ([]domain.Product, int64, error) {
	filter.Status = strings.ToUpper(strings.TrimSpace(filter.Status))
	products, total, err := s.repo.List(filter, page)
	if err != nil {
		return nil, 0, internal(s.log, "list products", err)
	}
	return products, total, nil
}

func (s *productService) checkClient(id uint) error {
	ok, err := s.clientRepo.Exists(id)
	if err != nil {
		return internal(s.log, "check client", err)
	}
	if !ok {
		return badRequest(MsgClientMissing)
	}
	return nil
}

func (s *productService) checkCategory(id *uint) error {
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

// nonZero treats an explicit 0 as "no reference".
func nonZero(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	v := *id
	return &v
}
