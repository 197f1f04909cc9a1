package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/almondloverr/CRM/internal/database"
	"github.com/almondloverr/CRM/internal/middleware"
	"github.com/almondloverr/CRM/internal/modules/activity"
	"github.com/almondloverr/CRM/internal/modules/auth"
	"github.com/almondloverr/CRM/internal/modules/orders"
	"github.com/almondloverr/CRM/internal/modules/staff"
	jwtsvc "github.com/almondloverr/CRM/internal/pkg/jwt"
	"github.com/almondloverr/CRM/internal/repository"
	"github.com/almondloverr/CRM/internal/uploads"
)

func main() {
	_ = godotenv.Load()

	dsn := envOr("DATABASE_URL", "crm.db")
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}
	listenAddr := envOr("LISTEN_ADDR", ":8080")
	uploadsDir := envOr("UPLOADS_DIR", "uploads")
	atomicIntake := os.Getenv("LEGACY_NON_ATOMIC_INTAKE") != "true"

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	eventRepo := repository.NewEventRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)
	up := uploads.NewService(uploadsDir, "/static/uploads")

	authHandler := auth.NewHandler(auth.NewService(userRepo, j))
	ordersHandler := orders.NewHandler(orders.NewService(orderRepo, employeeRepo, up, atomicIntake))
	staffHandler := staff.NewHandler(staff.NewService(employeeRepo, userRepo, up))
	activityHandler := activity.NewHandler(activity.NewService(activityRepo, employeeRepo, eventRepo, up))

	r := gin.Default()
	r.Use(middleware.CORS(), middleware.ErrorLogger(), middleware.Metrics())

	r.Static("/static/uploads", up.BaseDir())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	root := r.Group("/")
	{
		authHandler.RegisterRoutes(root)

		authed := root.Group("/")
		authed.Use(middleware.Auth(j))
		{
			// any employee reaches the directory; the gate only
			// resolves the card
			active := authed.Group("/")
			active.Use(middleware.RequireAccessLevel(employeeRepo, 0))
			staffHandler.RegisterActiveRoutes(active)

			managers := authed.Group("/")
			managers.Use(middleware.RequireAccessLevel(employeeRepo, middleware.ManagerAccessLevel))
			{
				ordersHandler.RegisterRoutes(managers)
				staffHandler.RegisterRoutes(managers)
				activityHandler.RegisterRoutes(managers)
			}
		}
	}

	if err := r.Run(listenAddr); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
