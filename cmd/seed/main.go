package main

import (
	"github.com/gehna-next/internal/config"
	"github.com/gehna-next/internal/constants"
	"github.com/gehna-next/internal/logger"
	"github.com/gehna-next/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加员工
	employees := []models.Employee{
		{Name: "Ramesh Soni", Phone: "9820012345", Email: "ramesh@example.com", IsActive: true},
		{Name: "Priya Shah", Phone: "9820067890", Email: "priya@example.com", IsActive: true},
	}
	for _, emp := range employees {
		var existing models.Employee
		if err := models.DB.Where("name = ?", emp.Name).First(&existing).Error; err != nil {
			record := emp
			if err := models.DB.Create(&record).Error; err != nil {
				stdLog.Printf("Failed to create employee %s: %v", emp.Name, err)
			} else {
				stdLog.Printf("Created employee: %s", emp.Name)
			}
		} else {
			stdLog.Printf("Employee already exists: %s", emp.Name)
		}
	}

	// 添加商品与变体
	products := []struct {
		product  models.Product
		variants []models.ProductVariant
	}{
		{
			product: models.Product{
				Name:        "Gold Ring",
				Category:    "ring",
				Description: "22K gold ring",
				IsActive:    true,
			},
			variants: []models.ProductVariant{
				{
					Barcode: "RING-22K-001",
					SpecJSON: models.JSON(map[string]interface{}{
						"purity":    "22K",
						"weight_gm": "4.20",
						"size":      "12",
					}),
					PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(28500)),
					Quantity:    5,
					IsStock:     true,
					QCStatus:    constants.QCStatusApproved,
				},
				{
					Barcode: "RING-22K-002",
					SpecJSON: models.JSON(map[string]interface{}{
						"purity":    "22K",
						"weight_gm": "5.10",
						"size":      "14",
					}),
					PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(34200)),
					Quantity:    2,
					IsStock:     false,
					QCStatus:    constants.QCStatusPending,
				},
			},
		},
		{
			product: models.Product{
				Name:        "Diamond Pendant",
				Category:    "pendant",
				Description: "18K gold pendant with solitaire",
				IsActive:    true,
			},
			variants: []models.ProductVariant{
				{
					Barcode: "PEND-18K-001",
					SpecJSON: models.JSON(map[string]interface{}{
						"purity":  "18K",
						"diamond": "0.25ct",
					}),
					PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(56750)),
					Quantity:    3,
					IsStock:     true,
					QCStatus:    constants.QCStatusApproved,
				},
			},
		},
	}

	for _, entry := range products {
		var existing models.Product
		if err := models.DB.Where("name = ?", entry.product.Name).First(&existing).Error; err != nil {
			record := entry.product
			if err := models.DB.Create(&record).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", entry.product.Name, err)
				continue
			}
			stdLog.Printf("Created product: %s", record.Name)
			for _, variant := range entry.variants {
				v := variant
				v.ProductID = record.ID
				if err := models.DB.Create(&v).Error; err != nil {
					stdLog.Printf("Failed to create variant %s: %v", v.Barcode, err)
				} else {
					stdLog.Printf("Created variant: %s", v.Barcode)
				}
			}
		} else {
			stdLog.Printf("Product already exists: %s", entry.product.Name)
		}
	}

	stdLog.Println("Seed completed")
}
