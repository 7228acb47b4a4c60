package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/aqro/aqro/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupRebateMappingRepositoryTest(t *testing.T) (*GormRebateMappingRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:mapping_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Restaurant{},
		&models.ContainerType{},
		&models.RestaurantContainerRebate{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewRebateMappingRepository(db), db
}

func seedMappingFixtures(t *testing.T, db *gorm.DB) (models.Restaurant, models.ContainerType, models.ContainerType) {
	t.Helper()
	restaurant := models.Restaurant{Name: "Mapping Resto", IsActive: true}
	if err := db.Create(&restaurant).Error; err != nil {
		t.Fatalf("create restaurant failed: %v", err)
	}
	bowl := models.ContainerType{
		Name:        "Mapping Bowl",
		Price:       models.NewMoneyFromDecimal(decimal.RequireFromString("150.00")),
		RebateValue: models.NewMoneyFromDecimal(decimal.RequireFromString("5.00")),
		MaxUses:     10,
		IsActive:    true,
	}
	cup := models.ContainerType{
		Name:        "Mapping Cup",
		Price:       models.NewMoneyFromDecimal(decimal.RequireFromString("80.00")),
		RebateValue: models.NewMoneyFromDecimal(decimal.RequireFromString("3.00")),
		MaxUses:     15,
		IsActive:    true,
	}
	if err := db.Create(&bowl).Error; err != nil {
		t.Fatalf("create bowl type failed: %v", err)
	}
	if err := db.Create(&cup).Error; err != nil {
		t.Fatalf("create cup type failed: %v", err)
	}
	return restaurant, bowl, cup
}

func TestRebateMappingRepositoryUpsertOverwrites(t *testing.T) {
	repo, db := setupRebateMappingRepositoryTest(t)
	restaurant, bowl, _ := seedMappingFixtures(t, db)

	err := repo.Upsert([]models.RestaurantContainerRebate{{
		RestaurantID:    restaurant.ID,
		ContainerTypeID: bowl.ID,
		RebateValue:     models.NewMoneyFromDecimal(decimal.RequireFromString("5.00")),
	}})
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	err = repo.Upsert([]models.RestaurantContainerRebate{{
		RestaurantID:    restaurant.ID,
		ContainerTypeID: bowl.ID,
		RebateValue:     models.NewMoneyFromDecimal(decimal.RequireFromString("7.25")),
	}})
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	mapping, err := repo.GetByPair(restaurant.ID, bowl.ID)
	if err != nil {
		t.Fatalf("get by pair failed: %v", err)
	}
	if mapping == nil {
		t.Fatal("expected mapping, got nil")
	}
	if mapping.RebateValue.String() != "7.25" {
		t.Fatalf("expected rebate value 7.25, got %s", mapping.RebateValue.String())
	}

	var count int64
	if err := db.Model(&models.RestaurantContainerRebate{}).Count(&count).Error; err != nil {
		t.Fatalf("count mappings failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single mapping row, got %d", count)
	}
}

func TestRebateMappingRepositoryGetByPairMissing(t *testing.T) {
	repo, db := setupRebateMappingRepositoryTest(t)
	restaurant, _, _ := seedMappingFixtures(t, db)

	mapping, err := repo.GetByPair(restaurant.ID, 9999)
	if err != nil {
		t.Fatalf("get missing pair failed: %v", err)
	}
	if mapping != nil {
		t.Fatalf("expected nil for missing pair, got %+v", mapping)
	}
}

func TestRebateMappingRepositoryListByRestaurant(t *testing.T) {
	repo, db := setupRebateMappingRepositoryTest(t)
	restaurant, bowl, cup := seedMappingFixtures(t, db)

	err := repo.Upsert([]models.RestaurantContainerRebate{
		{RestaurantID: restaurant.ID, ContainerTypeID: bowl.ID,
			RebateValue: models.NewMoneyFromDecimal(decimal.RequireFromString("5.00"))},
		{RestaurantID: restaurant.ID, ContainerTypeID: cup.ID,
			RebateValue: models.NewMoneyFromDecimal(decimal.RequireFromString("3.00"))},
	})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	mappings, err := repo.ListByRestaurant(restaurant.ID)
	if err != nil {
		t.Fatalf("list by restaurant failed: %v", err)
	}
	if len(mappings) != 2 {
		t.Fatalf("expected 2 mappings, got %d", len(mappings))
	}
	for _, mapping := range mappings {
		if mapping.ContainerType == nil {
			t.Fatalf("expected container type preloaded on mapping %d", mapping.ID)
		}
	}

	if err := repo.DeleteByPair(restaurant.ID, cup.ID); err != nil {
		t.Fatalf("delete by pair failed: %v", err)
	}
	mappings, err = repo.ListByRestaurant(restaurant.ID)
	if err != nil {
		t.Fatalf("relist failed: %v", err)
	}
	if len(mappings) != 1 {
		t.Fatalf("expected 1 mapping after delete, got %d", len(mappings))
	}
}
