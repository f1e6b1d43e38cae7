package router

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/terrasapp/sales-api/internal/application"
	pginfra "github.com/terrasapp/sales-api/internal/infrastructure/postgres"
	handlers "github.com/terrasapp/sales-api/internal/interface/http"
	"github.com/terrasapp/sales-api/internal/router/modules"
	"github.com/terrasapp/sales-api/pkg/helpers"
	"github.com/terrasapp/sales-api/pkg/mailer"
)

// Deps carries everything the feature modules need, wired once at startup.
type Deps struct {
	Logger *logrus.Logger
	DB     *pgxpool.Pool
	Redis  *redis.Client
	JWT    *helpers.JWTManager
	Mailer *mailer.RecoveryMailer
}

// InitModules builds both feature modules and registers them with the
// router registry. Called once during application startup.
func InitModules(r *Registry, d Deps) {
	userSvc := application.NewUserService(d.DB, pginfra.NewUserRepository(), d.JWT, d.Mailer, d.Logger)
	saleSvc := application.NewSaleService(d.DB, pginfra.NewSaleRepository(), d.Logger)

	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, d.Logger), d.JWT, d.Redis))
	r.Add(modules.NewSaleModule(handlers.NewSaleHandler(saleSvc, d.Logger), d.JWT))
}
