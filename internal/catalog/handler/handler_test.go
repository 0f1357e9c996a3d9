package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"marinaops_backend/internal/catalog/repository"
	"marinaops_backend/internal/catalog/service"
	"marinaops_backend/internal/catalog/transport"
	"marinaops_backend/internal/events"
	"marinaops_backend/platform/apperr"
	"marinaops_backend/platform/httpkit"
	"marinaops_backend/platform/logger"
	"marinaops_backend/platform/validator"

	"github.com/gin-gonic/gin"
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

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job_types.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	return path
}

// newProvisionHandler builds the handler the way the module wires it: the
// seeding subscription listens on the same bus the handler publishes to.
func newProvisionHandler(repo repository.Repository, seedPath string) *Handler {
	log := logger.New("test")
	svc := service.New(repo, seedPath, log)
	h := New(svc, validator.New())

	bus := events.NewInMemoryBus(log)
	bus.Subscribe(events.TenantProvisioned{}.EventName(), events.HandlerFunc(
		func(ctx context.Context, event events.Event) error {
			return svc.SeedDefaults(ctx, event.(events.TenantProvisioned).TenantID)
		},
	))
	h.SetEventBus(bus)
	return h
}

func provisionContext(tenantID uuid.UUID) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/admin/tenants/provision", nil)
	c.Set(httpkit.ContextUserIDKey, uuid.New())
	c.Set(httpkit.ContextRolesKey, []string{"admin"})
	c.Set(httpkit.ContextTenantIDKey, tenantID)
	return c, w
}

func TestProvisionSeedsTenantCatalog(t *testing.T) {
	seedPath := writeSeedFile(t, `jobTypes:
  - key: paket
    label: Paket Servis
    multiplier: 1.0
    requiredFields:
      - unit-identification
  - key: periyodik-kontrol
    label: Periyodik Kontrol
    multiplier: 0.8
    requiredFields: []
`)
	repo := newFakeRepo()
	h := newProvisionHandler(repo, seedPath)
	tenantID := uuid.New()

	c, w := provisionContext(tenantID)
	h.Provision(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}
	if len(repo.created) != 2 {
		t.Fatalf("seeded %d job types, want 2", len(repo.created))
	}

	var resp transport.ProvisionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TenantID != tenantID {
		t.Fatalf("response tenant = %v, want %v", resp.TenantID, tenantID)
	}
	if resp.Catalog.Total != 2 {
		t.Fatalf("catalog total = %d, want 2", resp.Catalog.Total)
	}

	// Re-provisioning an already seeded tenant installs nothing extra.
	c, w = provisionContext(tenantID)
	h.Provision(c)
	if w.Code != http.StatusOK {
		t.Fatalf("re-provision status = %d, want 200", w.Code)
	}
	if len(repo.created) != 2 {
		t.Fatalf("re-provision created %d extra job types, want none", len(repo.created)-2)
	}
}

func TestProvisionSurfacesSeedFailure(t *testing.T) {
	seedPath := writeSeedFile(t, `jobTypes:
  - key: paket
    label: Paket Servis
    multiplier: 1.0
    requiredFields:
      - no-such-checklist-field
`)
	repo := newFakeRepo()
	h := newProvisionHandler(repo, seedPath)

	c, w := provisionContext(uuid.New())
	h.Provision(c)

	if w.Code == http.StatusOK {
		t.Fatal("provisioning reported success despite a failed seed")
	}
	if len(repo.created) != 0 {
		t.Fatal("failed seed must not leave a partial catalog behind")
	}
}

func TestProvisionWithoutBus(t *testing.T) {
	h := New(service.New(newFakeRepo(), "", logger.New("test")), validator.New())

	c, w := provisionContext(uuid.New())
	h.Provision(c)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 when no bus is wired", w.Code)
	}
}
