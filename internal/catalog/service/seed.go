package service

import (
	"context"
	"fmt"
	"os"

	"marinaops_backend/internal/catalog/repository"
	"marinaops_backend/internal/catalog/transport"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// seedFile is the on-disk shape of the default job type catalog.
type seedFile struct {
	JobTypes []seedJobType `yaml:"jobTypes"`
}

type seedJobType struct {
	Key            string   `yaml:"key"`
	Label          string   `yaml:"label"`
	Multiplier     float64  `yaml:"multiplier"`
	RequiredFields []string `yaml:"requiredFields"`
}

// SeedDefaults installs the default job type catalog for a tenant that has
// none yet. Called when a tenant is provisioned; a tenant with existing
// job types is left untouched.
func (s *Service) SeedDefaults(ctx context.Context, tenantID uuid.UUID) error {
	count, err := s.repo.Count(ctx, tenantID)
	if err != nil {
		return err
	}
	if count > 0 {
		s.log.Info("job type seed skipped, tenant already configured", "tenant", tenantID, "existing", count)
		return nil
	}

	seeds, err := loadSeedFile(s.seedPath)
	if err != nil {
		return err
	}

	for i, seed := range seeds.JobTypes {
		_, err := s.Create(ctx, tenantID, transport.CreateJobTypeRequest{
			Key:            seed.Key,
			Label:          seed.Label,
			Multiplier:     seed.Multiplier,
			RequiredFields: seed.RequiredFields,
			DisplayOrder:   i,
		})
		if err != nil {
			return fmt.Errorf("seed job type %q: %w", seed.Key, err)
		}
	}

	s.log.Info("job type defaults seeded", "tenant", tenantID, "count", len(seeds.JobTypes))
	return nil
}

func loadSeedFile(path string) (seedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return seedFile{}, fmt.Errorf("read job type seed file: %w", err)
	}

	var seeds seedFile
	if err := yaml.Unmarshal(data, &seeds); err != nil {
		return seedFile{}, fmt.Errorf("parse job type seed file: %w", err)
	}

	// Validate eagerly so a broken seed file fails loudly on first use
	// instead of partially installing a catalog.
	for _, seed := range seeds.JobTypes {
		if seed.Key == "" || seed.Label == "" {
			return seedFile{}, fmt.Errorf("seed job type missing key or label: %+v", seed)
		}
		if seed.Multiplier <= 0 {
			return seedFile{}, fmt.Errorf("seed job type %q has non-positive multiplier", seed.Key)
		}
		for _, f := range seed.RequiredFields {
			if !repository.IsKnownField(f) {
				return seedFile{}, fmt.Errorf("seed job type %q references unknown field %q", seed.Key, f)
			}
		}
	}
	return seeds, nil
}
