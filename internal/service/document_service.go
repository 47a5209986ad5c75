package service

import (
	"fmt"

	"github.com/gehna-next/internal/models"
	"github.com/gehna-next/internal/repository"
)

// DocumentService 单据数据服务（发票、条码打印数据）
type DocumentService struct {
	orderRepo   repository.OrderRepository
	variantRepo repository.VariantRepository
}

// NewDocumentService 创建单据服务实例
func NewDocumentService(orderRepo repository.OrderRepository, variantRepo repository.VariantRepository) *DocumentService {
	return &DocumentService{
		orderRepo:   orderRepo,
		variantRepo: variantRepo,
	}
}

// InvoiceLine 发票行
type InvoiceLine struct {
	Title      string       `json:"title"`
	Barcode    string       `json:"barcode"`
	Quantity   int          `json:"quantity"`
	UnitPrice  models.Money `json:"unit_price"`
	TotalPrice models.Money `json:"total_price"`
}

// InvoiceData 发票数据
type InvoiceData struct {
	OrderNo         string        `json:"order_no"`
	CustomerName    string        `json:"customer_name"`
	CustomerPhone   string        `json:"customer_phone"`
	CustomerAddress string        `json:"customer_address"`
	Currency        string        `json:"currency"`
	Lines           []InvoiceLine `json:"lines"`
	TotalPrice      models.Money  `json:"total_price"`
	IsPaid          bool          `json:"is_paid"`
}

// BuildInvoice 组装订单发票数据
func (s *DocumentService) BuildInvoice(orderID uint) (*InvoiceData, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	lines := make([]InvoiceLine, 0, len(order.Items))
	for _, item := range order.Items {
		barcode := ""
		if item.Variant != nil {
			barcode = item.Variant.Barcode
		}
		lines = append(lines, InvoiceLine{
			Title:      item.TitleSnap,
			Barcode:    barcode,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		})
	}
	return &InvoiceData{
		OrderNo:         order.OrderNo,
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		CustomerAddress: order.CustomerAddress,
		Currency:        order.Currency,
		Lines:           lines,
		TotalPrice:      order.TotalPrice,
		IsPaid:          order.IsPaid,
	}, nil
}

// BarcodeData 条码打印数据
type BarcodeData struct {
	VariantID   uint         `json:"variant_id"`
	Barcode     string       `json:"barcode"`
	Payload     string       `json:"payload"`
	ProductName string       `json:"product_name"`
	PriceAmount models.Money `json:"price_amount"`
}

// BuildBarcode 组装变体条码打印数据
func (s *DocumentService) BuildBarcode(variantID uint) (*BarcodeData, error) {
	variant, err := s.variantRepo.GetByID(variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrVariantNotFound
	}
	productName := ""
	if variant.Product != nil {
		productName = variant.Product.Name
	}
	return &BarcodeData{
		VariantID:   variant.ID,
		Barcode:     variant.Barcode,
		Payload:     fmt.Sprintf("%d-%s", variant.ProductID, variant.Barcode),
		ProductName: productName,
		PriceAmount: variant.PriceAmount,
	}, nil
}
