package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"haulage/cmd"
	httpin "haulage/internal/adapters/in/http"
	"haulage/internal/adapters/out/kafka"
	"haulage/internal/adapters/out/postgres/orderrepo"
	"haulage/internal/adapters/out/postgres/userrepo"
	"haulage/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	nethttp "net/http"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)

	dispatcher, err := kafka.NewNotificationDispatcher(
		[]string{configs.KafkaHost}, configs.KafkaOrderEventsTopic, logger)
	if err != nil {
		log.Fatalf("Error connecting to Kafka: %v", err)
	}
	defer func() {
		_ = dispatcher.Close()
	}()

	app := cmd.NewCompositionRoot(configs, gormDB, dispatcher, logger)

	jobManager := jobs.NewJobManager(
		app.CreateBroadcastPendingOrdersCommandHandler(),
		configs.BroadcastCronSchedule,
		broadcastStaleAfter(configs),
		broadcastLimit(configs),
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:               goDotEnvVariable("HTTP_PORT"),
		DBHost:                 goDotEnvVariable("DB_HOST"),
		DBPort:                 goDotEnvVariable("DB_PORT"),
		DBUser:                 goDotEnvVariable("DB_USER"),
		DBPassword:             goDotEnvVariable("DB_PASSWORD"),
		DBName:                 goDotEnvVariable("DB_NAME"),
		DBSslMode:              goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:              goDotEnvVariable("KAFKA_HOST"),
		KafkaOrderEventsTopic:  goDotEnvVariable("KAFKA_ORDER_EVENTS_TOPIC"),
		BroadcastCronSchedule:  goDotEnvVariable("BROADCAST_CRON_SCHEDULE"),
		BroadcastStaleAfterMin: goDotEnvVariable("BROADCAST_STALE_AFTER_MINUTES"),
		BroadcastLimit:         goDotEnvVariable("BROADCAST_LIMIT"),
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

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &userrepo.UserDTO{}); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return gormDB
}

func broadcastStaleAfter(configs cmd.Config) time.Duration {
	minutes, err := strconv.Atoi(configs.BroadcastStaleAfterMin)
	if err != nil || minutes <= 0 {
		log.Fatalf("Invalid BROADCAST_STALE_AFTER_MINUTES: %q", configs.BroadcastStaleAfterMin)
	}
	return time.Duration(minutes) * time.Minute
}

func broadcastLimit(configs cmd.Config) int {
	limit, err := strconv.Atoi(configs.BroadcastLimit)
	if err != nil || limit <= 0 {
		log.Fatalf("Invalid BROADCAST_LIMIT: %q", configs.BroadcastLimit)
	}
	return limit
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(nethttp.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateAcceptOrderCommandHandler(),
		app.CreateUpdateOrderStatusCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateRateOrderCommandHandler(),
		app.CreateUpdateTrackingCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateListOrdersQueryHandler(),
		app.CreateNearbyOrdersQueryHandler(),
		app.CreateOrderTrackingQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
