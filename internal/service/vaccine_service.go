package service

import (
	"context"
	"fmt"

	"github.com/dmorozov/vaccine_scheduler/internal/model"
	"go.uber.org/zap"
)

type VaccineService struct {
	vaccines VaccineStore
	logger   *zap.Logger
}

func NewVaccineService(vaccines VaccineStore, logger *zap.Logger) *VaccineService {
	return &VaccineService{vaccines: vaccines, logger: logger}
}

// AddDoses creates the vaccine with count doses or increments an existing
// one, and returns the new total. Non-positive counts are rejected so the
// inventory can never be driven negative.
func (s *VaccineService) AddDoses(ctx context.Context, name string, count int) (int, error) {
	if count <= 0 {
		return 0, model.ErrInvalidDoseCount
	}

	total, err := s.vaccines.AddDoses(ctx, name, count)
	if err != nil {
		return 0, fmt.Errorf("add doses: %w", err)
	}

	s.logger.Info("Doses added",
		zap.String("vaccine", name),
		zap.Int("added", count),
		zap.Int("total", total),
	)

	return total, nil
}

// List returns the full inventory sorted by vaccine name.
func (s *VaccineService) List(ctx context.Context) ([]*model.Vaccine, error) {
	return s.vaccines.List(ctx)
}
