package main

import (
	"context"
	"log"
	"os"

	"github.com/dmorozov/vaccine_scheduler/internal/app"
	"github.com/dmorozov/vaccine_scheduler/internal/config"
	"github.com/dmorozov/vaccine_scheduler/internal/controller"
	"github.com/dmorozov/vaccine_scheduler/internal/model"
	"github.com/dmorozov/vaccine_scheduler/internal/repository"
	"github.com/dmorozov/vaccine_scheduler/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		log.Fatalf("Failed to create migrator: %v", err)
	}
	if err := migrator.Run(ctx); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}
	migrator.Close()

	patientRepo := repository.NewAccountRepository(pool, model.RolePatient)
	caregiverRepo := repository.NewAccountRepository(pool, model.RoleCaregiver)
	vaccineRepo := repository.NewVaccineRepository(pool)
	availabilityRepo := repository.NewAvailabilityRepository(pool)
	appointmentRepo := repository.NewAppointmentRepository(pool)

	accountService := service.NewAccountService(patientRepo, caregiverRepo, logger)
	vaccineService := service.NewVaccineService(vaccineRepo, logger)
	appointmentService := service.NewAppointmentService(availabilityRepo, appointmentRepo, vaccineRepo, logger)

	cli := controller.New(accountService, vaccineService, appointmentService, os.Stdout, logger)

	if err := cli.Run(ctx, os.Stdin); err != nil {
		log.Fatalf("Command loop failed: %v", err)
	}
}
