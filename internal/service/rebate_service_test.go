package service

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aqro/aqro/internal/constants"
	"github.com/aqro/aqro/internal/models"
	"github.com/aqro/aqro/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type rebateServiceFixture struct {
	db           *gorm.DB
	rebateSvc    *RebateService
	containerSvc *ContainerService
}

func setupRebateServiceTest(t *testing.T) *rebateServiceFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:rebate_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.ContainerType{},
		&models.RestaurantContainerRebate{},
		&models.Container{},
		&models.Rebate{},
		&models.Activity{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	containerRepo := repository.NewContainerRepository(db)
	containerTypeRepo := repository.NewContainerTypeRepository(db)
	restaurantRepo := repository.NewRestaurantRepository(db)
	userRepo := repository.NewUserRepository(db)
	mappingRepo := repository.NewRebateMappingRepository(db)
	rebateRepo := repository.NewRebateRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	rebateSvc := NewRebateService(
		containerRepo, containerTypeRepo, restaurantRepo, userRepo,
		mappingRepo, rebateRepo, activityRepo, nil,
	)
	containerSvc := NewContainerService(
		containerRepo, containerTypeRepo, restaurantRepo, activityRepo, nil, 0,
	)
	return &rebateServiceFixture{db: db, rebateSvc: rebateSvc, containerSvc: containerSvc}
}

func (f *rebateServiceFixture) createRestaurant(t *testing.T, name string) models.Restaurant {
	t.Helper()
	restaurant := models.Restaurant{Name: name, IsActive: true}
	if err := f.db.Create(&restaurant).Error; err != nil {
		t.Fatalf("create restaurant failed: %v", err)
	}
	return restaurant
}

func (f *rebateServiceFixture) createUser(t *testing.T, email, role string, restaurantID *uint) models.User {
	t.Helper()
	user := models.User{
		Email:        email,
		PasswordHash: "hash",
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
		RestaurantID: restaurantID,
		IsActive:     true,
	}
	if err := f.db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func (f *rebateServiceFixture) createContainerType(t *testing.T, name string, maxUses int, rebateValue string) models.ContainerType {
	t.Helper()
	containerType := models.ContainerType{
		Name:        name,
		Price:       models.NewMoneyFromDecimal(decimal.RequireFromString("150.00")),
		RebateValue: models.NewMoneyFromDecimal(decimal.RequireFromString(rebateValue)),
		MaxUses:     maxUses,
		IsActive:    true,
	}
	if err := f.db.Create(&containerType).Error; err != nil {
		t.Fatalf("create container type failed: %v", err)
	}
	return containerType
}

func (f *rebateServiceFixture) createMapping(t *testing.T, restaurantID, containerTypeID uint, value string) {
	t.Helper()
	mapping := models.RestaurantContainerRebate{
		RestaurantID:    restaurantID,
		ContainerTypeID: containerTypeID,
		RebateValue:     models.NewMoneyFromDecimal(decimal.RequireFromString(value)),
	}
	if err := f.db.Create(&mapping).Error; err != nil {
		t.Fatalf("create mapping failed: %v", err)
	}
}

func TestProcessRebateEndToEnd(t *testing.T) {
	f := setupRebateServiceTest(t)
	restaurant := f.createRestaurant(t, "Green Eats")
	staff := f.createUser(t, "staff_e2e@example.com", constants.RoleStaff, &restaurant.ID)
	customer := f.createUser(t, "customer_e2e@example.com", constants.RoleCustomer, nil)
	containerType := f.createContainerType(t, "E2E Bowl", 3, "5.00")
	f.createMapping(t, restaurant.ID, containerType.ID, "5.00")

	generated, err := f.containerSvc.Generate(GenerateContainerInput{
		ContainerTypeID: containerType.ID,
		RestaurantID:    &restaurant.ID,
	})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if generated.Status != constants.ContainerStatusAvailable {
		t.Fatalf("expected available, got %s", generated.Status)
	}

	result, err := f.containerSvc.Register(generated.QRCode, customer.ID)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if result.AlreadyRegistered {
		t.Fatal("first registration flagged as already registered")
	}
	if result.Container.Status != constants.ContainerStatusActive {
		t.Fatalf("expected active, got %s", result.Container.Status)
	}
	if result.Container.UsesCount != 0 {
		t.Fatalf("expected zero uses after registration, got %d", result.Container.UsesCount)
	}

	for i := 1; i <= 3; i++ {
		rebate, err := f.rebateSvc.ProcessRebate(generated.ID, staff.ID)
		if err != nil {
			t.Fatalf("rebate %d failed: %v", i, err)
		}
		if rebate.Amount.String() != "5.00" {
			t.Fatalf("rebate %d: expected amount 5.00, got %s", i, rebate.Amount.String())
		}
		container, err := f.containerSvc.GetByID(generated.ID)
		if err != nil {
			t.Fatalf("reload container failed: %v", err)
		}
		if container.UsesCount != i {
			t.Fatalf("expected uses count %d, got %d", i, container.UsesCount)
		}
	}

	if _, err := f.rebateSvc.ProcessRebate(generated.ID, staff.ID); !errors.Is(err, ErrContainerMaxUses) {
		t.Fatalf("expected max uses error on fourth rebate, got %v", err)
	}

	var rebateCount, activityCount int64
	if err := f.db.Model(&models.Rebate{}).Where("container_id = ?", generated.ID).Count(&rebateCount).Error; err != nil {
		t.Fatalf("count rebates failed: %v", err)
	}
	if rebateCount != 3 {
		t.Fatalf("expected 3 rebate records, got %d", rebateCount)
	}
	err = f.db.Model(&models.Activity{}).
		Where("container_id = ? AND type = ?", generated.ID, constants.ActivityTypeRebate).
		Count(&activityCount).Error
	if err != nil {
		t.Fatalf("count activities failed: %v", err)
	}
	if activityCount != 3 {
		t.Fatalf("expected 3 rebate activities, got %d", activityCount)
	}

	returned, err := f.rebateSvc.ProcessReturn(generated.ID, staff.ID)
	if err != nil {
		t.Fatalf("return failed: %v", err)
	}
	if returned.Status != constants.ContainerStatusReturned {
		t.Fatalf("expected returned, got %s", returned.Status)
	}
	if _, err := f.rebateSvc.ProcessReturn(generated.ID, staff.ID); !errors.Is(err, ErrContainerAlreadyReturned) {
		t.Fatalf("expected already returned error, got %v", err)
	}
}

func TestProcessRebateRequiresMapping(t *testing.T) {
	f := setupRebateServiceTest(t)
	restaurant := f.createRestaurant(t, "No Mapping Resto")
	staff := f.createUser(t, "staff_nomap@example.com", constants.RoleStaff, &restaurant.ID)
	customer := f.createUser(t, "customer_nomap@example.com", constants.RoleCustomer, nil)
	// The type carries its own rebate value but the processing path must
	// never fall back to it.
	containerType := f.createContainerType(t, "Unmapped Bowl", 5, "4.00")

	container := models.Container{
		QRCode:          "AQRO-NOMAP0-000001",
		ContainerTypeID: containerType.ID,
		CustomerID:      &customer.ID,
		RestaurantID:    &restaurant.ID,
		Status:          constants.ContainerStatusActive,
	}
	if err := f.db.Create(&container).Error; err != nil {
		t.Fatalf("create container failed: %v", err)
	}

	if _, err := f.rebateSvc.ProcessRebate(container.ID, staff.ID); !errors.Is(err, ErrRebateMappingNotFound) {
		t.Fatalf("expected mapping not found, got %v", err)
	}

	var fresh models.Container
	if err := f.db.First(&fresh, container.ID).Error; err != nil {
		t.Fatalf("reload container failed: %v", err)
	}
	if fresh.UsesCount != 0 {
		t.Fatalf("expected uses count unchanged, got %d", fresh.UsesCount)
	}
	var rebateCount int64
	if err := f.db.Model(&models.Rebate{}).Count(&rebateCount).Error; err != nil {
		t.Fatalf("count rebates failed: %v", err)
	}
	if rebateCount != 0 {
		t.Fatalf("expected no rebate records, got %d", rebateCount)
	}
}

func TestProcessRebateGuards(t *testing.T) {
	f := setupRebateServiceTest(t)
	restaurant := f.createRestaurant(t, "Guard Resto")
	staff := f.createUser(t, "staff_guard@example.com", constants.RoleStaff, &restaurant.ID)
	floating := f.createUser(t, "staff_floating@example.com", constants.RoleStaff, nil)
	containerType := f.createContainerType(t, "Guard Bowl", 5, "5.00")
	f.createMapping(t, restaurant.ID, containerType.ID, "5.00")

	unregistered := models.Container{
		QRCode:          "AQRO-GUARD0-000001",
		ContainerTypeID: containerType.ID,
		RestaurantID:    &restaurant.ID,
		Status:          constants.ContainerStatusAvailable,
	}
	if err := f.db.Create(&unregistered).Error; err != nil {
		t.Fatalf("create container failed: %v", err)
	}

	if _, err := f.rebateSvc.ProcessRebate(99999, staff.ID); !errors.Is(err, ErrContainerNotFound) {
		t.Fatalf("expected container not found, got %v", err)
	}
	if _, err := f.rebateSvc.ProcessRebate(unregistered.ID, staff.ID); !errors.Is(err, ErrContainerNotRegistered) {
		t.Fatalf("expected not registered, got %v", err)
	}
	if _, err := f.rebateSvc.ProcessRebate(unregistered.ID, floating.ID); !errors.Is(err, ErrStaffNoRestaurant) {
		t.Fatalf("expected staff without restaurant error, got %v", err)
	}
}

func TestProcessRebateAmountSnapshot(t *testing.T) {
	f := setupRebateServiceTest(t)
	restaurant := f.createRestaurant(t, "Snapshot Resto")
	staff := f.createUser(t, "staff_snap@example.com", constants.RoleStaff, &restaurant.ID)
	customer := f.createUser(t, "customer_snap@example.com", constants.RoleCustomer, nil)
	containerType := f.createContainerType(t, "Snapshot Bowl", 10, "5.00")
	f.createMapping(t, restaurant.ID, containerType.ID, "5.00")

	container := models.Container{
		QRCode:          "AQRO-SNAP00-000001",
		ContainerTypeID: containerType.ID,
		CustomerID:      &customer.ID,
		RestaurantID:    &restaurant.ID,
		Status:          constants.ContainerStatusActive,
	}
	if err := f.db.Create(&container).Error; err != nil {
		t.Fatalf("create container failed: %v", err)
	}

	first, err := f.rebateSvc.ProcessRebate(container.ID, staff.ID)
	if err != nil {
		t.Fatalf("first rebate failed: %v", err)
	}

	_, err = f.rebateSvc.UpsertMappings(restaurant.ID, []MappingInput{{
		ContainerTypeID: containerType.ID,
		RebateValue:     models.NewMoneyFromDecimal(decimal.RequireFromString("9.00")),
	}})
	if err != nil {
		t.Fatalf("mapping update failed: %v", err)
	}

	second, err := f.rebateSvc.ProcessRebate(container.ID, staff.ID)
	if err != nil {
		t.Fatalf("second rebate failed: %v", err)
	}
	if second.Amount.String() != "9.00" {
		t.Fatalf("expected new amount 9.00, got %s", second.Amount.String())
	}

	var stored models.Rebate
	if err := f.db.First(&stored, first.ID).Error; err != nil {
		t.Fatalf("reload first rebate failed: %v", err)
	}
	if stored.Amount.String() != "5.00" {
		t.Fatalf("expected first rebate to keep 5.00, got %s", stored.Amount.String())
	}
}

func TestProcessRebateConcurrentMaxUses(t *testing.T) {
	f := setupRebateServiceTest(t)
	sqlDB, err := f.db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	// One connection serializes the goroutines at the pool so sqlite never
	// sees interleaved write transactions.
	sqlDB.SetMaxOpenConns(1)

	restaurant := f.createRestaurant(t, "Concurrent Resto")
	staff := f.createUser(t, "staff_conc@example.com", constants.RoleStaff, &restaurant.ID)
	customer := f.createUser(t, "customer_conc@example.com", constants.RoleCustomer, nil)
	containerType := f.createContainerType(t, "Concurrent Bowl", 3, "5.00")
	f.createMapping(t, restaurant.ID, containerType.ID, "5.00")

	container := models.Container{
		QRCode:          "AQRO-CONC00-000001",
		ContainerTypeID: containerType.ID,
		CustomerID:      &customer.ID,
		RestaurantID:    &restaurant.ID,
		Status:          constants.ContainerStatusActive,
		UsesCount:       1,
	}
	if err := f.db.Create(&container).Error; err != nil {
		t.Fatalf("create container failed: %v", err)
	}

	const attempts = 6
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.rebateSvc.ProcessRebate(container.ID, staff.ID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, maxUsesFailures int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrContainerMaxUses):
			maxUsesFailures++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 2 {
		t.Fatalf("expected exactly 2 successes, got %d", succeeded)
	}
	if maxUsesFailures != attempts-2 {
		t.Fatalf("expected %d max-uses failures, got %d", attempts-2, maxUsesFailures)
	}

	var fresh models.Container
	if err := f.db.First(&fresh, container.ID).Error; err != nil {
		t.Fatalf("reload container failed: %v", err)
	}
	if fresh.UsesCount != containerType.MaxUses {
		t.Fatalf("uses count %d exceeds or trails max %d", fresh.UsesCount, containerType.MaxUses)
	}
}

func TestUpsertMappingsValidatesBeforeWriting(t *testing.T) {
	f := setupRebateServiceTest(t)
	restaurant := f.createRestaurant(t, "Validate Resto")
	containerType := f.createContainerType(t, "Validate Bowl", 5, "5.00")

	_, err := f.rebateSvc.UpsertMappings(restaurant.ID, []MappingInput{
		{ContainerTypeID: containerType.ID, RebateValue: models.NewMoneyFromDecimal(decimal.RequireFromString("5.00"))},
		{ContainerTypeID: 99999, RebateValue: models.NewMoneyFromDecimal(decimal.RequireFromString("2.00"))},
	})
	if !errors.Is(err, ErrContainerTypeNotFound) {
		t.Fatalf("expected container type not found, got %v", err)
	}

	var count int64
	if err := f.db.Model(&models.RestaurantContainerRebate{}).Count(&count).Error; err != nil {
		t.Fatalf("count mappings failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no mappings written, got %d", count)
	}

	mappings, err := f.rebateSvc.UpsertMappings(restaurant.ID, []MappingInput{
		{ContainerTypeID: containerType.ID, RebateValue: models.NewMoneyFromDecimal(decimal.RequireFromString("5.00"))},
	})
	if err != nil {
		t.Fatalf("valid upsert failed: %v", err)
	}
	if len(mappings) != 1 {
		t.Fatalf("expected 1 mapping, got %d", len(mappings))
	}
}

func TestTotalsByRestaurantScope(t *testing.T) {
	f := setupRebateServiceTest(t)
	restaurantA := f.createRestaurant(t, "Scope A")
	restaurantB := f.createRestaurant(t, "Scope B")
	staffA := f.createUser(t, "staff_scope_a@example.com", constants.RoleStaff, &restaurantA.ID)

	actor := Actor{ID: staffA.ID, Role: constants.RoleStaff, RestaurantID: staffA.RestaurantID}
	if _, err := f.rebateSvc.TotalsByRestaurant(actor, restaurantB.ID); !errors.Is(err, ErrRestaurantScopeDenied) {
		t.Fatalf("expected scope denied for foreign restaurant, got %v", err)
	}
	if _, err := f.rebateSvc.TotalsByRestaurant(actor, restaurantA.ID); err != nil {
		t.Fatalf("expected own restaurant to be allowed, got %v", err)
	}

	admin := Actor{ID: 1, Role: constants.RoleAdmin}
	if _, err := f.rebateSvc.TotalsByRestaurant(admin, restaurantB.ID); err != nil {
		t.Fatalf("expected admin access to any restaurant, got %v", err)
	}

	customer := Actor{ID: 2, Role: constants.RoleCustomer}
	if _, err := f.rebateSvc.TotalsByRestaurant(customer, restaurantA.ID); !errors.Is(err, ErrRestaurantScopeDenied) {
		t.Fatalf("expected customer to be denied, got %v", err)
	}
}
