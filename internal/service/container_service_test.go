package service

import (
	"errors"
	"fmt"
	"regexp"
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

func setupContainerServiceTest(t *testing.T) (*ContainerService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:container_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.ContainerType{},
		&models.Container{},
		&models.Activity{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	containerRepo := repository.NewContainerRepository(db)
	containerTypeRepo := repository.NewContainerTypeRepository(db)
	restaurantRepo := repository.NewRestaurantRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	svc := NewContainerService(containerRepo, containerTypeRepo, restaurantRepo, activityRepo, nil, 0)
	return svc, db
}

func createServiceTestType(t *testing.T, db *gorm.DB, name string) models.ContainerType {
	t.Helper()
	containerType := models.ContainerType{
		Name:        name,
		Price:       models.NewMoneyFromDecimal(decimal.RequireFromString("150.00")),
		RebateValue: models.NewMoneyFromDecimal(decimal.RequireFromString("5.00")),
		MaxUses:     10,
		IsActive:    true,
	}
	if err := db.Create(&containerType).Error; err != nil {
		t.Fatalf("create container type failed: %v", err)
	}
	return containerType
}

func createServiceTestCustomer(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{
		Email:        email,
		PasswordHash: "hash",
		FirstName:    "Svc",
		LastName:     "Customer",
		Role:         constants.RoleCustomer,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func TestGenerateContainerQRFormat(t *testing.T) {
	svc, db := setupContainerServiceTest(t)
	containerType := createServiceTestType(t, db, "Format Bowl")

	container, err := svc.Generate(GenerateContainerInput{ContainerTypeID: containerType.ID})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	pattern := regexp.MustCompile(`^AQRO-[0-9A-Z]{6}-\d{6}$`)
	if !pattern.MatchString(container.QRCode) {
		t.Fatalf("qr code %q does not match expected format", container.QRCode)
	}
	if container.Status != constants.ContainerStatusAvailable {
		t.Fatalf("expected available, got %s", container.Status)
	}

	loaded, err := svc.GetByQRCode(container.QRCode)
	if err != nil {
		t.Fatalf("round trip lookup failed: %v", err)
	}
	if loaded.ID != container.ID {
		t.Fatalf("lookup returned container %d, want %d", loaded.ID, container.ID)
	}
}

func TestGenerateContainerUnknownType(t *testing.T) {
	svc, _ := setupContainerServiceTest(t)
	if _, err := svc.Generate(GenerateContainerInput{ContainerTypeID: 12345}); !errors.Is(err, ErrContainerTypeNotFound) {
		t.Fatalf("expected container type not found, got %v", err)
	}
}

func TestGenerateContainerUnknownRestaurant(t *testing.T) {
	svc, db := setupContainerServiceTest(t)
	containerType := createServiceTestType(t, db, "Resto Check Bowl")
	missing := uint(4242)
	if _, err := svc.Generate(GenerateContainerInput{ContainerTypeID: containerType.ID, RestaurantID: &missing}); !errors.Is(err, ErrRestaurantNotFound) {
		t.Fatalf("expected restaurant not found, got %v", err)
	}
}

func TestRegisterIdempotence(t *testing.T) {
	svc, db := setupContainerServiceTest(t)
	containerType := createServiceTestType(t, db, "Idem Bowl")
	alice := createServiceTestCustomer(t, db, "alice_idem@example.com")
	bob := createServiceTestCustomer(t, db, "bob_idem@example.com")

	container, err := svc.Generate(GenerateContainerInput{ContainerTypeID: containerType.ID})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	first, err := svc.Register(container.QRCode, alice.ID)
	if err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if first.AlreadyRegistered {
		t.Fatal("first registration flagged as already registered")
	}
	firstDate := first.Container.RegistrationDate
	if firstDate == nil {
		t.Fatal("expected registration date set")
	}

	again, err := svc.Register(container.QRCode, alice.ID)
	if err != nil {
		t.Fatalf("repeat registration by owner failed: %v", err)
	}
	if !again.AlreadyRegistered || !again.OwnedByCurrentUser {
		t.Fatalf("expected owned-by-me outcome, got %+v", again)
	}
	if !again.Container.RegistrationDate.Equal(*firstDate) {
		t.Fatal("repeat registration must not move the registration date")
	}
	if again.Container.UsesCount != first.Container.UsesCount {
		t.Fatal("repeat registration must not change uses count")
	}

	other, err := svc.Register(container.QRCode, bob.ID)
	if err != nil {
		t.Fatalf("foreign registration attempt errored: %v", err)
	}
	if !other.AlreadyRegistered || other.OwnedByCurrentUser {
		t.Fatalf("expected owned-by-other outcome, got %+v", other)
	}
	if other.Container.CustomerID == nil || *other.Container.CustomerID != alice.ID {
		t.Fatal("foreign registration attempt must not change the owner")
	}
}

func TestRegisterConcurrentSingleWinner(t *testing.T) {
	svc, db := setupContainerServiceTest(t)
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	containerType := createServiceTestType(t, db, "Race Bowl")
	container, err := svc.Generate(GenerateContainerInput{ContainerTypeID: containerType.ID})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	const racers = 5
	customers := make([]models.User, racers)
	for i := range customers {
		customers[i] = createServiceTestCustomer(t, db, fmt.Sprintf("racer_%d@example.com", i))
	}

	var wg sync.WaitGroup
	results := make(chan *RegisterResult, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(customerID uint) {
			defer wg.Done()
			result, err := svc.Register(container.QRCode, customerID)
			if err != nil {
				t.Errorf("register failed: %v", err)
				return
			}
			results <- result
		}(customers[i].ID)
	}
	wg.Wait()
	close(results)

	var winners, losers int
	for result := range results {
		if result.AlreadyRegistered {
			losers++
		} else {
			winners++
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly 1 winner, got %d", winners)
	}
	if losers != racers-1 {
		t.Fatalf("expected %d losers, got %d", racers-1, losers)
	}
}

func TestMarkStatusGuards(t *testing.T) {
	svc, db := setupContainerServiceTest(t)
	containerType := createServiceTestType(t, db, "Status Bowl")
	owner := createServiceTestCustomer(t, db, "owner_status@example.com")
	stranger := createServiceTestCustomer(t, db, "stranger_status@example.com")

	container, err := svc.Generate(GenerateContainerInput{ContainerTypeID: containerType.ID})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	// Not registered yet.
	if _, err := svc.MarkStatus(container.ID, constants.ContainerStatusLost, owner.ID); !errors.Is(err, ErrContainerNotRegistered) {
		t.Fatalf("expected not registered, got %v", err)
	}

	if _, err := svc.Register(container.QRCode, owner.ID); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.MarkStatus(container.ID, constants.ContainerStatusReturned, owner.ID); !errors.Is(err, ErrContainerNotActive) {
		t.Fatalf("expected rejection of non lost/damaged target, got %v", err)
	}
	if _, err := svc.MarkStatus(container.ID, constants.ContainerStatusLost, stranger.ID); !errors.Is(err, ErrContainerNotOwned) {
		t.Fatalf("expected not owned, got %v", err)
	}

	updated, err := svc.MarkStatus(container.ID, constants.ContainerStatusLost, owner.ID)
	if err != nil {
		t.Fatalf("mark lost failed: %v", err)
	}
	if updated.Status != constants.ContainerStatusLost {
		t.Fatalf("expected lost, got %s", updated.Status)
	}

	// Lost is not active anymore, a second report must fail.
	if _, err := svc.MarkStatus(container.ID, constants.ContainerStatusDamaged, owner.ID); !errors.Is(err, ErrContainerNotActive) {
		t.Fatalf("expected not active after lost, got %v", err)
	}

	var activityCount int64
	err = db.Model(&models.Activity{}).
		Where("container_id = ? AND type = ?", container.ID, constants.ActivityTypeStatusChange).
		Count(&activityCount).Error
	if err != nil {
		t.Fatalf("count activities failed: %v", err)
	}
	if activityCount != 1 {
		t.Fatalf("expected 1 status change activity, got %d", activityCount)
	}
}

func TestRenderQRPNG(t *testing.T) {
	svc, db := setupContainerServiceTest(t)
	containerType := createServiceTestType(t, db, "PNG Bowl")

	container, err := svc.Generate(GenerateContainerInput{ContainerTypeID: containerType.ID})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	png, err := svc.RenderQRPNG(container.ID, 0)
	if err != nil {
		t.Fatalf("render png failed: %v", err)
	}
	if len(png) == 0 {
		t.Fatal("expected png bytes")
	}
	// PNG signature.
	if png[0] != 0x89 || string(png[1:4]) != "PNG" {
		t.Fatal("output is not a png")
	}
}
