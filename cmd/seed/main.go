package main

import (
	"github.com/aqro/aqro/internal/config"
	"github.com/aqro/aqro/internal/constants"
	"github.com/aqro/aqro/internal/logger"
	"github.com/aqro/aqro/internal/models"
	"github.com/aqro/aqro/internal/service"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
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

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	restaurants := []models.Restaurant{
		{Name: "Green Bowl Kitchen", Location: "Quezon City", Contact: "greenbowl@example.com", IsActive: true},
		{Name: "Harbor Deli", Location: "Pasig", Contact: "harbordeli@example.com", IsActive: true},
	}
	for i := range restaurants {
		var existing models.Restaurant
		if err := models.DB.Where("name = ?", restaurants[i].Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&restaurants[i]).Error; err != nil {
				stdLog.Printf("Failed to create restaurant %s: %v", restaurants[i].Name, err)
			} else {
				stdLog.Printf("Created restaurant: %s", restaurants[i].Name)
			}
		} else {
			restaurants[i] = existing
			stdLog.Printf("Restaurant already exists: %s", existing.Name)
		}
	}

	containerTypes := []models.ContainerType{
		{
			Name:        "500ml Bowl",
			Description: "Reusable 500ml rice bowl",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(120.00)),
			RebateValue: models.NewMoneyFromDecimal(decimal.NewFromFloat(5.00)),
			MaxUses:     20,
			IsActive:    true,
		},
		{
			Name:        "1L Tub",
			Description: "Reusable 1L meal tub",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(180.00)),
			RebateValue: models.NewMoneyFromDecimal(decimal.NewFromFloat(8.00)),
			MaxUses:     15,
			IsActive:    true,
		},
		{
			Name:        "Cup 350ml",
			Description: "Reusable 350ml drink cup",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(90.00)),
			RebateValue: models.NewMoneyFromDecimal(decimal.NewFromFloat(3.00)),
			MaxUses:     30,
			IsActive:    true,
		},
	}
	for i := range containerTypes {
		var existing models.ContainerType
		if err := models.DB.Where("name = ?", containerTypes[i].Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&containerTypes[i]).Error; err != nil {
				stdLog.Printf("Failed to create container type %s: %v", containerTypes[i].Name, err)
			} else {
				stdLog.Printf("Created container type: %s", containerTypes[i].Name)
			}
		} else {
			containerTypes[i] = existing
			stdLog.Printf("Container type already exists: %s", existing.Name)
		}
	}

	for _, restaurant := range restaurants {
		for _, containerType := range containerTypes {
			mapping := models.RestaurantContainerRebate{
				RestaurantID:    restaurant.ID,
				ContainerTypeID: containerType.ID,
				RebateValue:     containerType.RebateValue,
			}
			var existing models.RestaurantContainerRebate
			err := models.DB.Where("restaurant_id = ? AND container_type_id = ?", restaurant.ID, containerType.ID).
				First(&existing).Error
			if err != nil {
				if err := models.DB.Create(&mapping).Error; err != nil {
					stdLog.Printf("Failed to create rebate mapping %s/%s: %v", restaurant.Name, containerType.Name, err)
				}
			}
		}
	}
	stdLog.Printf("Seeded rebate mappings for %d restaurants", len(restaurants))

	users := []struct {
		email        string
		password     string
		firstName    string
		lastName     string
		role         string
		restaurantID *uint
	}{
		{"admin@aqro.local", "admin123", "System", "Admin", constants.RoleAdmin, nil},
		{"staff@aqro.local", "staff123", "Ana", "Reyes", constants.RoleStaff, &restaurants[0].ID},
		{"customer@aqro.local", "customer123", "Juan", "Dela Cruz", constants.RoleCustomer, nil},
	}
	for _, u := range users {
		var existing models.User
		if err := models.DB.Where("email = ?", u.email).First(&existing).Error; err == nil {
			stdLog.Printf("User already exists: %s", u.email)
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Printf("Failed to hash password for %s: %v", u.email, err)
			continue
		}
		user := models.User{
			Email:        u.email,
			PasswordHash: string(hash),
			FirstName:    u.firstName,
			LastName:     u.lastName,
			Role:         u.role,
			RestaurantID: u.restaurantID,
			IsActive:     true,
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create user %s: %v", u.email, err)
		} else {
			stdLog.Printf("Created user: %s (%s)", u.email, u.role)
		}
	}

	var containerCount int64
	models.DB.Model(&models.Container{}).Count(&containerCount)
	if containerCount == 0 {
		for _, containerType := range containerTypes {
			for i := 0; i < 5; i++ {
				code, err := service.NewQRCodeValue()
				if err != nil {
					stdLog.Printf("Failed to generate qr code: %v", err)
					continue
				}
				container := models.Container{
					QRCode:          code,
					ContainerTypeID: containerType.ID,
					RestaurantID:    &restaurants[0].ID,
					Status:          constants.ContainerStatusAvailable,
				}
				if err := models.DB.Create(&container).Error; err != nil {
					stdLog.Printf("Failed to create container: %v", err)
				}
			}
		}
		stdLog.Printf("Seeded %d containers", 5*len(containerTypes))
	} else {
		stdLog.Printf("Containers already seeded: %d", containerCount)
	}

	stdLog.Printf("Seed finished")
}
