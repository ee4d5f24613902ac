package repository

import (
	"context"
	"testing"
	"time"

	"hepatotrack/internal/domain/entity"
	domainRepo "hepatotrack/internal/domain/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *Repositories) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, NewRedisRepositories(client)
}

func TestRedisPatientRepository_RoundTrip(t *testing.T) {
	_, repos := newTestRedis(t)
	ctx := context.Background()

	empty, err := repos.Patients.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	patients := DemoPatients()
	for i := range patients {
		require.NoError(t, repos.Patients.Create(ctx, &patients[i]))
	}

	stored, err := repos.Patients.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, patients, stored)

	found, err := repos.Patients.FindByID(ctx, "p2")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, patients[1], *found)

	missing, err := repos.Patients.FindByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRedisConsultationRepository_RoundTripAndOrdering(t *testing.T) {
	_, repos := newTestRedis(t)
	ctx := context.Background()

	later := entity.Consultation{
		ID:        "c-late",
		PatientID: "p1",
		Date:      time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		Weight:    80,
		Height:    175,
		BMI:       26.1,
		AST:       40,
		ALT:       44,
		Platelets: 200,
		FIB4:      entity.Float(1.23),
		Stiffness: 7.1,
		IQR:       entity.Float(9),
		CreatedAt: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
	earlier := DemoConsultations()[0]
	other := DemoConsultations()[1]
	other.PatientID = "p2"

	for _, c := range []entity.Consultation{later, other, earlier} {
		c := c
		require.NoError(t, repos.Consultations.Create(ctx, &c))
	}

	all, err := repos.Consultations.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.Consultation{later, other, earlier}, all, "stored order is insertion order")

	forPatient, err := repos.Consultations.FindByPatientID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []entity.Consultation{earlier, later}, forPatient, "per-patient reads are date ascending")
}

func TestRedisSeeder_OnlySeedsEmptyCollections(t *testing.T) {
	_, repos := newTestRedis(t)
	ctx := context.Background()

	existing := DemoPatients()[1]
	existing.ID = "already-there"
	require.NoError(t, repos.Patients.Create(ctx, &existing))

	require.NoError(t, repos.Seeder.SeedIfEmpty(ctx, DemoPatients(), DemoConsultations()))

	patients, err := repos.Patients.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.Patient{existing}, patients)

	consultations, err := repos.Consultations.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, DemoConsultations(), consultations)

	// Second run is a no-op.
	require.NoError(t, repos.Seeder.SeedIfEmpty(ctx, DemoPatients(), nil))
	consultations, err = repos.Consultations.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, consultations, 3)
}

func TestRedisAuditLogRepository_Appends(t *testing.T) {
	mr, repos := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, repos.AuditLogs.Create(ctx, &entity.AuditLog{Action: entity.AuditActionExportCSV}))
	require.NoError(t, repos.AuditLogs.Create(ctx, &entity.AuditLog{Action: entity.AuditActionPatientCreate, EntityID: "p9"}))

	items, err := mr.List(AuditLogsKey)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Contains(t, items[1], `"entityId":"p9"`)
}

func TestRedisCollection_CorruptPayload(t *testing.T) {
	mr, repos := newTestRedis(t)
	require.NoError(t, mr.Set(PatientsKey, "not json"))

	_, err := repos.Patients.FindAll(context.Background())
	assert.Error(t, err)
}

func TestRedisRepositories_RejectDuplicateIDs(t *testing.T) {
	_, repos := newTestRedis(t)
	ctx := context.Background()

	patient := DemoPatients()[0]
	require.NoError(t, repos.Patients.Create(ctx, &patient))
	assert.ErrorIs(t, repos.Patients.Create(ctx, &patient), domainRepo.ErrDuplicateID)

	consultation := DemoConsultations()[0]
	require.NoError(t, repos.Consultations.Create(ctx, &consultation))
	assert.ErrorIs(t, repos.Consultations.Create(ctx, &consultation), domainRepo.ErrDuplicateID)

	stored, err := repos.Patients.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}
