package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"marinaops_backend/internal/catalog/repository"
	"marinaops_backend/internal/catalog/transport"
	"marinaops_backend/platform/apperr"
	"marinaops_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeRepo struct {
	byKey   map[string]repository.JobType
	created []repository.CreateParams
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byKey: make(map[string]repository.JobType)}
}

func (f *fakeRepo) GetByID(_ context.Context, _, id uuid.UUID) (repository.JobType, error) {
	for _, jt := range f.byKey {
		if jt.ID == id {
			return jt, nil
		}
	}
	return repository.JobType{}, apperr.NotFound("job type not found")
}

func (f *fakeRepo) GetByKey(_ context.Context, _ uuid.UUID, key string) (repository.JobType, error) {
	jt, ok := f.byKey[key]
	if !ok {
		return repository.JobType{}, apperr.NotFound("job type not found")
	}
	return jt, nil
}

func (f *fakeRepo) List(_ context.Context, _ uuid.UUID) ([]repository.JobType, error) {
	out := make([]repository.JobType, 0, len(f.byKey))
	for _, jt := range f.byKey {
		out = append(out, jt)
	}
	return out, nil
}

func (f *fakeRepo) ListActive(ctx context.Context, tenantID uuid.UUID) ([]repository.JobType, error) {
	return f.List(ctx, tenantID)
}

func (f *fakeRepo) Count(_ context.Context, _ uuid.UUID) (int, error) {
	return len(f.byKey), nil
}

func (f *fakeRepo) Create(_ context.Context, params repository.CreateParams) (repository.JobType, error) {
	f.created = append(f.created, params)
	jt := repository.JobType{
		ID:             uuid.New(),
		TenantID:       params.TenantID,
		Key:            params.Key,
		Label:          params.Label,
		Multiplier:     params.Multiplier,
		RequiredFields: params.RequiredFields,
		IsActive:       true,
		DisplayOrder:   params.DisplayOrder,
	}
	f.byKey[jt.Key] = jt
	return jt, nil
}

func (f *fakeRepo) Update(_ context.Context, _ repository.UpdateParams) (repository.JobType, error) {
	return repository.JobType{}, apperr.NotFound("job type not found")
}

func (f *fakeRepo) SetActive(_ context.Context, _, _ uuid.UUID, _ bool) error { return nil }
func (f *fakeRepo) Delete(_ context.Context, _, _ uuid.UUID) error            { return nil }

func TestCreateNormalizesKeyAndFields(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, "", logger.New("test"))

	resp, err := svc.Create(context.Background(), uuid.New(), transport.CreateJobTypeRequest{
		Key:        "  Motor-Revizyon ",
		Label:      "Motor Revizyonu",
		Multiplier: 1.5,
		RequiredFields: []string{
			"Photo-Evidence",
			"unit-identification",
			"photo-evidence", // duplicate after normalization
		},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if resp.Key != "motor-revizyon" {
		t.Fatalf("key = %q, want normalized %q", resp.Key, "motor-revizyon")
	}
	if len(resp.RequiredFields) != 2 {
		t.Fatalf("required fields = %v, want deduplicated pair", resp.RequiredFields)
	}
}

func TestCreateRejectsUnknownField(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, "", logger.New("test"))

	_, err := svc.Create(context.Background(), uuid.New(), transport.CreateJobTypeRequest{
		Key:            "paket",
		Label:          "Paket Servis",
		Multiplier:     1.0,
		RequiredFields: []string{"definitely-not-a-field"},
	})
	if err == nil {
		t.Fatal("expected validation error for unknown checklist field")
	}
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("kind = %v, want KindValidation", apperr.GetKind(err))
	}
	if len(repo.created) != 0 {
		t.Fatal("invalid job type must not reach the repository")
	}
}

func TestResolveForScoringUnknownKey(t *testing.T) {
	svc := New(newFakeRepo(), "", logger.New("test"))

	_, err := svc.ResolveForScoring(context.Background(), uuid.New(), "ghost-type")
	if err == nil {
		t.Fatal("expected error for unknown job type")
	}
	if apperr.GetKind(err) != apperr.KindConfiguration {
		t.Fatalf("kind = %v, want KindConfiguration", apperr.GetKind(err))
	}
}

func TestSeedDefaultsInstallsOnce(t *testing.T) {
	seedPath := filepath.Join(t.TempDir(), "job_types.yaml")
	seed := `jobTypes:
  - key: paket
    label: Paket Servis
    multiplier: 1.0
    requiredFields:
      - unit-identification
      - photo-evidence
  - key: periyodik-kontrol
    label: Periyodik Kontrol
    multiplier: 0.8
    requiredFields: []
`
	if err := os.WriteFile(seedPath, []byte(seed), 0o600); err != nil {
		t.Fatalf("write seed file: %v", err)
	}

	repo := newFakeRepo()
	svc := New(repo, seedPath, logger.New("test"))
	tenantID := uuid.New()

	if err := svc.SeedDefaults(context.Background(), tenantID); err != nil {
		t.Fatalf("SeedDefaults returned error: %v", err)
	}
	if len(repo.created) != 2 {
		t.Fatalf("seeded %d job types, want 2", len(repo.created))
	}

	// A tenant with an existing catalog is left untouched.
	if err := svc.SeedDefaults(context.Background(), tenantID); err != nil {
		t.Fatalf("second SeedDefaults returned error: %v", err)
	}
	if len(repo.created) != 2 {
		t.Fatalf("re-seed created %d extra job types, want none", len(repo.created)-2)
	}
}

func TestSeedDefaultsRejectsBrokenFile(t *testing.T) {
	seedPath := filepath.Join(t.TempDir(), "job_types.yaml")
	seed := `jobTypes:
  - key: paket
    label: Paket Servis
    multiplier: 1.0
    requiredFields:
      - no-such-checklist-field
`
	if err := os.WriteFile(seedPath, []byte(seed), 0o600); err != nil {
		t.Fatalf("write seed file: %v", err)
	}

	repo := newFakeRepo()
	svc := New(repo, seedPath, logger.New("test"))

	if err := svc.SeedDefaults(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected error for seed file with unknown field")
	}
	if len(repo.created) != 0 {
		t.Fatal("broken seed file must not partially install a catalog")
	}
}
