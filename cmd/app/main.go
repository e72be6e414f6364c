package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"picking/cmd"
	pickinghttp "picking/internal/adapters/in/http"
	"picking/internal/adapters/out/postgres/orderrepo"
	"picking/internal/core/application/usecases/commands"
	"picking/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := openDatabase(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	importHandler, err := app.CreateImportOrdersCommandHandler()
	if err != nil {
		log.Fatalf("Failed to build import handler: %v", err)
	}

	runStartupImport(importHandler, logger)

	jobManager := jobs.NewJobManager(importHandler, configs.ImportSchedule, logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:       goDotEnvVariable("HTTP_PORT"),
		DBHost:         goDotEnvVariable("DB_HOST"),
		DBPort:         goDotEnvVariable("DB_PORT"),
		DBUser:         goDotEnvVariable("DB_USER"),
		DBPassword:     goDotEnvVariable("DB_PASSWORD"),
		DBName:         goDotEnvVariable("DB_NAME"),
		DBSslMode:      goDotEnvVariable("DB_SSLMODE"),
		OrdersDir:      goDotEnvVariable("ORDERS_DIR"),
		ImportSchedule: goDotEnvVariable("IMPORT_SCHEDULE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func runStartupImport(handler commands.ImportOrdersCommandHandler, logger *slog.Logger) {
	imported, err := handler.Handle(context.Background(), commands.NewImportOrdersCommand())
	if err != nil {
		log.Fatalf("Startup order import failed: %v", err)
	}
	logger.Info("startup order import finished", "imported", imported)
}

func startWebServer(app cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := pickinghttp.NewServer(
		app.CreateUpdateOrderCommandHandler(),
		app.CreateGetOpenOrdersQueryHandler(),
		app.CreateGetOrderQueryHandler(),
		logger,
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
