package provider

import (
	"github.com/aqro/aqro/internal/authz"
	"github.com/aqro/aqro/internal/cache"
	"github.com/aqro/aqro/internal/config"
	"github.com/aqro/aqro/internal/logger"
	"github.com/aqro/aqro/internal/models"
	"github.com/aqro/aqro/internal/queue"
	"github.com/aqro/aqro/internal/repository"
	"github.com/aqro/aqro/internal/service"
)

// Container is the dependency injection container.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo          repository.UserRepository
	RestaurantRepo    repository.RestaurantRepository
	ContainerTypeRepo repository.ContainerTypeRepository
	ContainerRepo     repository.ContainerRepository
	RebateRepo        repository.RebateRepository
	ActivityRepo      repository.ActivityRepository
	RebateMappingRepo repository.RebateMappingRepository

	// Services
	AuthzService         *authz.Service
	AuthService          *service.AuthService
	ContainerService     *service.ContainerService
	ContainerTypeService *service.ContainerTypeService
	RestaurantService    *service.RestaurantService
	RebateService        *service.RebateService
	ActivityService      *service.ActivityService
	StatsService         *service.StatsService
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.RestaurantRepo = repository.NewRestaurantRepository(db)
	c.ContainerTypeRepo = repository.NewContainerTypeRepository(db)
	c.ContainerRepo = repository.NewContainerRepository(db)
	c.RebateRepo = repository.NewRebateRepository(db)
	c.ActivityRepo = repository.NewActivityRepository(db)
	c.RebateMappingRepo = repository.NewRebateMappingRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	statsNotifier := queue.NewStatsNotifier(c.QueueClient)

	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.ContainerService = service.NewContainerService(
		c.ContainerRepo,
		c.ContainerTypeRepo,
		c.RestaurantRepo,
		c.ActivityRepo,
		statsNotifier,
		c.Config.Container.QRRetryAttempts,
	)
	c.ContainerTypeService = service.NewContainerTypeService(c.ContainerTypeRepo)
	c.RestaurantService = service.NewRestaurantService(c.RestaurantRepo)
	c.RebateService = service.NewRebateService(
		c.ContainerRepo,
		c.ContainerTypeRepo,
		c.RestaurantRepo,
		c.UserRepo,
		c.RebateMappingRepo,
		c.RebateRepo,
		c.ActivityRepo,
		statsNotifier,
	)
	c.ActivityService = service.NewActivityService(c.ActivityRepo)
	c.StatsService = service.NewStatsService(c.ContainerRepo, c.RebateRepo)
}
