package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/aqro/aqro/internal/constants"
	"github.com/aqro/aqro/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupRebateRepositoryTest(t *testing.T) (*GormRebateRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:rebate_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.ContainerType{},
		&models.Container{},
		&models.Rebate{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewRebateRepository(db), db
}

func TestRebateRepositorySumAmountByCustomer(t *testing.T) {
	repo, db := setupRebateRepositoryTest(t)

	customer := models.User{
		Email:        "sum_customer@example.com",
		PasswordHash: "hash",
		FirstName:    "Sum",
		LastName:     "Customer",
		Role:         constants.RoleCustomer,
		IsActive:     true,
	}
	staff := models.User{
		Email:        "sum_staff@example.com",
		PasswordHash: "hash",
		FirstName:    "Sum",
		LastName:     "Staff",
		Role:         constants.RoleStaff,
		IsActive:     true,
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	if err := db.Create(&staff).Error; err != nil {
		t.Fatalf("create staff failed: %v", err)
	}

	containerType := models.ContainerType{
		Name:        "Sum Bowl",
		Price:       models.NewMoneyFromDecimal(decimal.RequireFromString("150.00")),
		RebateValue: models.NewMoneyFromDecimal(decimal.RequireFromString("5.00")),
		MaxUses:     10,
		IsActive:    true,
	}
	if err := db.Create(&containerType).Error; err != nil {
		t.Fatalf("create container type failed: %v", err)
	}
	container := models.Container{
		QRCode:          "AQRO-SUMTST-000001",
		ContainerTypeID: containerType.ID,
		CustomerID:      &customer.ID,
		Status:          constants.ContainerStatusActive,
	}
	if err := db.Create(&container).Error; err != nil {
		t.Fatalf("create container failed: %v", err)
	}

	amounts := []string{"5.00", "7.50", "5.00"}
	for _, amount := range amounts {
		rebate := models.Rebate{
			ContainerID: container.ID,
			CustomerID:  customer.ID,
			StaffID:     staff.ID,
			Amount:      models.NewMoneyFromDecimal(decimal.RequireFromString(amount)),
			Currency:    constants.DefaultCurrency,
		}
		if err := repo.Create(&rebate); err != nil {
			t.Fatalf("create rebate failed: %v", err)
		}
	}

	totals, err := repo.SumAmountByCustomer(customer.ID)
	if err != nil {
		t.Fatalf("sum by customer failed: %v", err)
	}
	if totals.Count != 3 {
		t.Fatalf("expected 3 rebates, got %d", totals.Count)
	}
	if totals.TotalAmount != 17.5 {
		t.Fatalf("expected total 17.5, got %v", totals.TotalAmount)
	}

	empty, err := repo.SumAmountByCustomer(staff.ID)
	if err != nil {
		t.Fatalf("sum for user without rebates failed: %v", err)
	}
	if empty.Count != 0 || empty.TotalAmount != 0 {
		t.Fatalf("expected zero totals, got %+v", empty)
	}
}

func TestRebateRepositoryTotalsByRestaurant(t *testing.T) {
	repo, db := setupRebateRepositoryTest(t)

	restaurantA := models.Restaurant{Name: "Resto A", IsActive: true}
	restaurantB := models.Restaurant{Name: "Resto B", IsActive: true}
	if err := db.Create(&restaurantA).Error; err != nil {
		t.Fatalf("create restaurant A failed: %v", err)
	}
	if err := db.Create(&restaurantB).Error; err != nil {
		t.Fatalf("create restaurant B failed: %v", err)
	}

	customer := models.User{
		Email:        "totals_customer@example.com",
		PasswordHash: "hash",
		FirstName:    "Totals",
		LastName:     "Customer",
		Role:         constants.RoleCustomer,
		IsActive:     true,
	}
	staffA := models.User{
		Email:        "totals_staff_a@example.com",
		PasswordHash: "hash",
		FirstName:    "Staff",
		LastName:     "A",
		Role:         constants.RoleStaff,
		RestaurantID: &restaurantA.ID,
		IsActive:     true,
	}
	staffB := models.User{
		Email:        "totals_staff_b@example.com",
		PasswordHash: "hash",
		FirstName:    "Staff",
		LastName:     "B",
		Role:         constants.RoleStaff,
		RestaurantID: &restaurantB.ID,
		IsActive:     true,
	}
	for _, user := range []*models.User{&customer, &staffA, &staffB} {
		if err := db.Create(user).Error; err != nil {
			t.Fatalf("create user %s failed: %v", user.Email, err)
		}
	}

	containerType := models.ContainerType{
		Name:        "Totals Bowl",
		Price:       models.NewMoneyFromDecimal(decimal.RequireFromString("150.00")),
		RebateValue: models.NewMoneyFromDecimal(decimal.RequireFromString("5.00")),
		MaxUses:     10,
		IsActive:    true,
	}
	if err := db.Create(&containerType).Error; err != nil {
		t.Fatalf("create container type failed: %v", err)
	}
	container := models.Container{
		QRCode:          "AQRO-TOTALS-000001",
		ContainerTypeID: containerType.ID,
		CustomerID:      &customer.ID,
		Status:          constants.ContainerStatusActive,
	}
	if err := db.Create(&container).Error; err != nil {
		t.Fatalf("create container failed: %v", err)
	}

	rebates := []models.Rebate{
		{ContainerID: container.ID, CustomerID: customer.ID, StaffID: staffA.ID,
			Amount: models.NewMoneyFromDecimal(decimal.RequireFromString("5.00")), Currency: constants.DefaultCurrency},
		{ContainerID: container.ID, CustomerID: customer.ID, StaffID: staffA.ID,
			Amount: models.NewMoneyFromDecimal(decimal.RequireFromString("6.00")), Currency: constants.DefaultCurrency},
		{ContainerID: container.ID, CustomerID: customer.ID, StaffID: staffB.ID,
			Amount: models.NewMoneyFromDecimal(decimal.RequireFromString("9.00")), Currency: constants.DefaultCurrency},
	}
	for i := range rebates {
		if err := repo.Create(&rebates[i]); err != nil {
			t.Fatalf("create rebate %d failed: %v", i, err)
		}
	}

	totalsA, err := repo.TotalsByRestaurant(restaurantA.ID)
	if err != nil {
		t.Fatalf("totals by restaurant A failed: %v", err)
	}
	if totalsA.Count != 2 || totalsA.TotalAmount != 11 {
		t.Fatalf("unexpected restaurant A totals: %+v", totalsA)
	}

	totalsStaffB, err := repo.TotalsByStaff(staffB.ID)
	if err != nil {
		t.Fatalf("totals by staff B failed: %v", err)
	}
	if totalsStaffB.Count != 1 || totalsStaffB.TotalAmount != 9 {
		t.Fatalf("unexpected staff B totals: %+v", totalsStaffB)
	}
}
