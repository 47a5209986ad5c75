package service

import (
	"strings"

	"github.com/gehna-next/internal/constants"
	"github.com/gehna-next/internal/models"
	"github.com/gehna-next/internal/repository"
)

// CatalogService 商品目录服务
type CatalogService struct {
	productRepo repository.ProductRepository
	variantRepo repository.VariantRepository
}

// NewCatalogService 创建商品目录服务实例
func NewCatalogService(productRepo repository.ProductRepository, variantRepo repository.VariantRepository) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		variantRepo: variantRepo,
	}
}

// CreateProductInput 创建商品输入
type CreateProductInput struct {
	Name        string             `json:"name" binding:"required"`
	Category    string             `json:"category"`
	Description string             `json:"description"`
	Images      models.StringArray `json:"images"`
}

// CreateProduct 创建商品
func (s *CatalogService) CreateProduct(input CreateProductInput) (*models.Product, error) {
	product := &models.Product{
		Name:        strings.TrimSpace(input.Name),
		Category:    strings.TrimSpace(input.Category),
		Description: strings.TrimSpace(input.Description),
		Images:      input.Images,
		IsActive:    true,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct 获取商品详情
func (s *CatalogService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListProducts 查询商品列表
func (s *CatalogService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// CreateVariantInput 创建变体输入
type CreateVariantInput struct {
	ProductID   uint         `json:"product_id" binding:"required"`
	Barcode     string       `json:"barcode" binding:"required"`
	Spec        models.JSON  `json:"spec"`
	PriceAmount models.Money `json:"price_amount"`
	Quantity    int          `json:"quantity"`
}

// CreateVariant 创建商品变体。
// 新变体未经质检，is_stock 为假，不可销售。
func (s *CatalogService) CreateVariant(input CreateVariantInput) (*models.ProductVariant, error) {
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	variant := &models.ProductVariant{
		ProductID:   product.ID,
		Barcode:     strings.TrimSpace(input.Barcode),
		SpecJSON:    input.Spec,
		PriceAmount: input.PriceAmount,
		Quantity:    input.Quantity,
		IsStock:     false,
		QCStatus:    constants.QCStatusPending,
	}
	if err := s.variantRepo.Create(variant); err != nil {
		return nil, err
	}
	return variant, nil
}

// GetVariant 获取变体详情
func (s *CatalogService) GetVariant(id uint) (*models.ProductVariant, error) {
	variant, err := s.variantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrVariantNotFound
	}
	return variant, nil
}

// ListVariants 查询变体列表
func (s *CatalogService) ListVariants(filter repository.VariantListFilter) ([]models.ProductVariant, int64, error) {
	return s.variantRepo.List(filter)
}

// ListInStock 查询可销售（已入库且有余量）的变体
func (s *CatalogService) ListInStock(page, pageSize int, search string) ([]models.ProductVariant, int64, error) {
	return s.variantRepo.List(repository.VariantListFilter{
		Page:      page,
		PageSize:  pageSize,
		OnlyStock: true,
		Search:    search,
	})
}
