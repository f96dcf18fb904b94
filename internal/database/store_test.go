package database

import (
	"errors"
	"sync"
	"testing"
	"time"

	"restaupilot/internal/auth"
	"restaupilot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate())
	return s
}

func newRestaurant(t *testing.T, s *Store) uint {
	t.Helper()
	r := models.Restaurant{Name: "Test Kitchen"}
	require.NoError(t, s.CreateRestaurant(&r))
	return r.ID
}

func ptr[T any](v T) *T { return &v }

func TestInventoryCreateListUpdate(t *testing.T) {
	s := newTestStore(t)
	rid := newRestaurant(t, s)

	item := models.InventoryItem{RestaurantID: rid, Name: "Basil", Quantity: 2, ReorderAt: 3, UnitCost: 1.5}
	require.NoError(t, s.CreateInventoryItem(&item))
	assert.NotZero(t, item.ID)
	assert.Equal(t, string(models.StatusLow), item.Status)

	items, err := s.ListInventory(rid)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Basil", items[0].Name)

	updated, err := s.UpdateInventoryItem(rid, item.ID, InventoryPatch{Quantity: ptr(10.0), Notes: ptr("restocked")})
	require.NoError(t, err)
	assert.Equal(t, 10.0, updated.Quantity)
	assert.Equal(t, "restocked", updated.Notes)
	assert.Equal(t, string(models.StatusInStock), updated.Status)

	_, err = s.UpdateInventoryItem(rid, 9999, InventoryPatch{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.UpdateInventoryItem(rid+1, item.ID, InventoryPatch{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInventoryValidation(t *testing.T) {
	s := newTestStore(t)
	rid := newRestaurant(t, s)

	err := s.CreateInventoryItem(&models.InventoryItem{RestaurantID: rid})
	assert.ErrorIs(t, err, ErrInvalid)

	err = s.CreateInventoryItem(&models.InventoryItem{RestaurantID: rid, Name: "Salt", UnitCost: -1})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLowStockAndMarkOrdered(t *testing.T) {
	s := newTestStore(t)
	rid := newRestaurant(t, s)

	past := time.Now().Add(-time.Hour)
	for _, it := range []models.InventoryItem{
		{Name: "Eggs", Quantity: 0},
		{Name: "Milk", Quantity: 50, ReorderAt: 5, ExpiryDate: &past},
		{Name: "Rice", Quantity: 50, ReorderAt: 5},
	} {
		it.RestaurantID = rid
		require.NoError(t, s.CreateInventoryItem(&it))
	}

	low, err := s.LowStock(rid)
	require.NoError(t, err)
	names := []string{}
	for _, it := range low {
		names = append(names, it.Name)
	}
	assert.ElementsMatch(t, []string{"Eggs", "Milk"}, names)

	ordered, err := s.MarkOrdered(rid, low[0].ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusOrdered), ordered.Status)

	low, err = s.LowStock(rid)
	require.NoError(t, err)
	assert.Len(t, low, 1)
}

func TestShiftOverlapIsConflict(t *testing.T) {
	s := newTestStore(t)
	rid := newRestaurant(t, s)

	staff := models.StaffMember{RestaurantID: rid, Name: "Dev", HourlyRate: 20}
	require.NoError(t, s.CreateStaff(&staff))

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	first := models.Shift{RestaurantID: rid, StaffID: staff.ID, StartsAt: start, EndsAt: start.Add(8 * time.Hour)}
	require.NoError(t, s.CreateShift(&first))

	clash := models.Shift{RestaurantID: rid, StaffID: staff.ID, StartsAt: start.Add(7 * time.Hour), EndsAt: start.Add(10 * time.Hour)}
	assert.ErrorIs(t, s.CreateShift(&clash), ErrConflict)

	adjacent := models.Shift{RestaurantID: rid, StaffID: staff.ID, StartsAt: start.Add(8 * time.Hour), EndsAt: start.Add(12 * time.Hour)}
	require.NoError(t, s.CreateShift(&adjacent))

	backwards := models.Shift{RestaurantID: rid, StaffID: staff.ID, StartsAt: start, EndsAt: start}
	assert.ErrorIs(t, s.CreateShift(&backwards), ErrInvalid)

	shifts, err := s.ListShifts(rid, start, start.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Len(t, shifts, 2)

	require.NoError(t, s.DeleteShift(rid, first.ID))
	assert.ErrorIs(t, s.DeleteShift(rid, first.ID), ErrNotFound)
}

func TestShiftRequiresKnownStaff(t *testing.T) {
	s := newTestStore(t)
	rid := newRestaurant(t, s)
	start := time.Now()
	err := s.CreateShift(&models.Shift{RestaurantID: rid, StaffID: 42, StartsAt: start, EndsAt: start.Add(time.Hour)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompleteMaintenanceTask(t *testing.T) {
	s := newTestStore(t)
	rid := newRestaurant(t, s)

	eq := models.Equipment{RestaurantID: rid, Name: "Fryer", Status: string(models.EquipmentStatusMaintenance)}
	require.NoError(t, s.DB().Create(&eq).Error)

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	task := models.MaintenanceTask{RestaurantID: rid, EquipmentID: eq.ID, Title: "Boil out", DueDate: now.Add(-time.Hour)}
	require.NoError(t, s.CreateMaintenanceTask(&task))

	tasks, err := s.ListMaintenanceTasks(rid, now)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Overdue)

	done, err := s.CompleteMaintenanceTask(rid, task.ID, 120, now)
	require.NoError(t, err)
	assert.Equal(t, string(models.TaskStatusCompleted), done.Status)
	assert.Equal(t, 120.0, done.Cost)

	equipment, err := s.ListEquipment(rid)
	require.NoError(t, err)
	require.NotNil(t, equipment[0].LastMaintenance)
	assert.True(t, equipment[0].LastMaintenance.Equal(now))
	assert.Equal(t, string(models.EquipmentStatusAvailable), equipment[0].Status)

	_, err = s.CompleteMaintenanceTask(rid, task.ID, 0, now)
	assert.ErrorIs(t, err, ErrConflict)

	err = s.CreateMaintenanceTask(&models.MaintenanceTask{RestaurantID: rid, EquipmentID: 999, Title: "x", DueDate: now})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestComplianceSummary(t *testing.T) {
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	reqs := []models.ComplianceRequirement{
		{Status: "compliant", DueDate: now.Add(-time.Hour)},
		{Status: "pending", DueDate: now.Add(-time.Hour)},
		{Status: "non_compliant", DueDate: now.Add(time.Hour)},
		{Status: "compliant", DueDate: now.Add(time.Hour)},
	}
	sum := SummarizeCompliance(reqs, now)
	assert.Equal(t, 4, sum.Total)
	assert.Equal(t, 2, sum.Compliant)
	assert.Equal(t, 1, sum.Overdue)
	assert.InDelta(t, 50.0, sum.Score, 1e-9)

	assert.Equal(t, 100.0, SummarizeCompliance(nil, now).Score)
}

func TestUpdateComplianceStatus(t *testing.T) {
	s := newTestStore(t)
	rid := newRestaurant(t, s)

	req := models.ComplianceRequirement{RestaurantID: rid, Title: "Permit", Status: "pending", DueDate: time.Now()}
	require.NoError(t, s.DB().Create(&req).Error)

	_, err := s.UpdateComplianceStatus(rid, req.ID, "lost", "", time.Now())
	assert.ErrorIs(t, err, ErrInvalid)

	got, err := s.UpdateComplianceStatus(rid, req.ID, "compliant", "renewed", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "compliant", got.Status)
	assert.Equal(t, "renewed", got.Notes)
	assert.NotNil(t, got.LastReviewed)
}

func TestWasteAndSustainability(t *testing.T) {
	s := newTestStore(t)
	rid := newRestaurant(t, s)

	at := time.Date(2026, 4, 1, 15, 0, 0, 0, time.UTC)
	require.NoError(t, s.LogWaste(&models.WasteLog{RestaurantID: rid, Item: "peels", Category: "produce", QuantityKg: 6, Disposal: "compost", LoggedAt: at}))
	require.NoError(t, s.LogWaste(&models.WasteLog{RestaurantID: rid, Item: "trash", Category: "mixed", QuantityKg: 4, Cost: 5, LoggedAt: at}))
	assert.ErrorIs(t, s.LogWaste(&models.WasteLog{RestaurantID: rid, Item: "x", QuantityKg: 1, Disposal: "river"}), ErrInvalid)
	assert.ErrorIs(t, s.LogWaste(&models.WasteLog{RestaurantID: rid, Item: "x"}), ErrInvalid)

	logs, err := s.ListWaste(rid, at.Add(-time.Hour), at.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, logs, 2)

	sum := SummarizeWaste(logs)
	assert.InDelta(t, 10.0, sum.TotalKg, 1e-9)
	assert.InDelta(t, 6.0, sum.DivertedKg, 1e-9)
	assert.InDelta(t, 60.0, sum.DiversionRate, 1e-9)
	assert.InDelta(t, 4.0, sum.ByDisposal["landfill"], 1e-9)
	assert.InDelta(t, 5.0, sum.TotalCost, 1e-9)
}

func TestTrainingCompletionKeepsBestScore(t *testing.T) {
	s := newTestStore(t)
	rid := newRestaurant(t, s)

	staff := models.StaffMember{RestaurantID: rid, Name: "Lee"}
	require.NoError(t, s.CreateStaff(&staff))
	req := models.TrainingModule{RestaurantID: rid, Title: "Food Safety", Required: true}
	opt := models.TrainingModule{RestaurantID: rid, Title: "Latte Art"}
	require.NoError(t, s.DB().Create(&req).Error)
	require.NoError(t, s.DB().Create(&opt).Error)

	require.NoError(t, s.RecordCompletion(&models.TrainingCompletion{RestaurantID: rid, StaffID: staff.ID, ModuleID: req.ID, Score: 70}))
	c := models.TrainingCompletion{RestaurantID: rid, StaffID: staff.ID, ModuleID: req.ID, Score: 90}
	require.NoError(t, s.RecordCompletion(&c))
	assert.Equal(t, 90.0, c.Score)

	assert.ErrorIs(t, s.RecordCompletion(&models.TrainingCompletion{RestaurantID: rid, StaffID: staff.ID, ModuleID: req.ID, Score: 120}), ErrInvalid)
	assert.ErrorIs(t, s.RecordCompletion(&models.TrainingCompletion{RestaurantID: rid, StaffID: 77, ModuleID: req.ID}), ErrNotFound)

	completions, err := s.ListCompletions(rid)
	require.NoError(t, err)
	assert.Len(t, completions, 1)

	modules, err := s.ListTrainingModules(rid)
	require.NoError(t, err)
	progress := SummarizeTraining([]models.StaffMember{staff}, modules, completions)
	require.Len(t, progress, 1)
	assert.Equal(t, 1, progress[0].RequiredTotal)
	assert.Equal(t, 1, progress[0].RequiredCompleted)
	assert.InDelta(t, 100.0, progress[0].Percent, 1e-9)
}

func TestIntegrationsInstallUninstall(t *testing.T) {
	s := newTestStore(t)
	rid := newRestaurant(t, s)
	require.NoError(t, s.seedExtensions())

	catalog, err := s.ListExtensions()
	require.NoError(t, err)
	assert.NotEmpty(t, catalog)

	in, err := s.InstallIntegration(rid, "quickbooks", models.StringMap{"realm": "123"})
	require.NoError(t, err)
	assert.Equal(t, "QuickBooks Online", in.Extension.Name)

	_, err = s.InstallIntegration(rid, "quickbooks", nil)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = s.InstallIntegration(rid, "does-not-exist", nil)
	assert.ErrorIs(t, err, ErrNotFound)

	installed, err := s.ListIntegrations(rid)
	require.NoError(t, err)
	require.Len(t, installed, 1)
	assert.Equal(t, "quickbooks", installed[0].Extension.Slug)
	assert.Equal(t, "123", installed[0].Config["realm"])

	require.NoError(t, s.UninstallIntegration(rid, in.ID))
	assert.ErrorIs(t, s.UninstallIntegration(rid, in.ID), ErrNotFound)
}

func TestIntegrationUniquePerRestaurant(t *testing.T) {
	s := newTestStore(t)
	rid := newRestaurant(t, s)
	other := newRestaurant(t, s)
	require.NoError(t, s.seedExtensions())

	first, err := s.InstallIntegration(rid, "toast-pos", nil)
	require.NoError(t, err)

	// a row written around the existence check still hits the index
	dup := models.Integration{RestaurantID: rid, ExtensionID: first.ExtensionID, Status: "active", Config: models.StringMap{}}
	err = s.DB().Set("gorm:save_associations", false).Create(&dup).Error
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))

	_, err = s.InstallIntegration(other, "toast-pos", nil)
	assert.NoError(t, err)
}

func TestConcurrentInstallsConflict(t *testing.T) {
	s := newTestStore(t)
	rid := newRestaurant(t, s)
	require.NoError(t, s.seedExtensions())

	const n = 16
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.InstallIntegration(rid, "opentable", nil)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrConflict):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflicts)

	installed, err := s.ListIntegrations(rid)
	require.NoError(t, err)
	assert.Len(t, installed, 1)
}

func TestBillsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	rid := newRestaurant(t, s)

	bill := models.SharedBill{
		RestaurantID: rid,
		Title:        "Team lunch",
		Total:        90,
		Policy:       "equal",
		PayerShare:   30,
		Participants: []models.BillParticipant{{Name: "Ana", Amount: 30}, {Name: "Ben", Amount: 30}},
	}
	require.NoError(t, s.CreateBill(&bill))
	assert.Len(t, bill.ID, 36)

	got, err := s.GetBill(rid, bill.ID)
	require.NoError(t, err)
	require.Len(t, got.Participants, 2)
	assert.Equal(t, "Ana", got.Participants[0].Name)

	paid, err := s.MarkParticipantPaid(rid, bill.ID, got.Participants[1].ID)
	require.NoError(t, err)
	assert.True(t, paid.Participants[1].Paid)

	_, err = s.GetBill(rid, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	bills, err := s.ListBills(rid)
	require.NoError(t, err)
	assert.Len(t, bills, 1)
}

func TestSeedIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	opts := SeedOptions{AdminEmail: "Admin@Example.com", AdminPassword: "pw", Now: time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)}
	require.NoError(t, s.Seed(opts))
	require.NoError(t, s.Seed(opts))

	restaurants, err := s.ListRestaurants()
	require.NoError(t, err)
	assert.Len(t, restaurants, 2)

	items, err := s.ListInventory(restaurants[0].ID)
	require.NoError(t, err)
	assert.Len(t, items, 8)

	u, err := s.GetUserByEmail("admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Role)
	assert.NotEqual(t, "pw", u.PasswordHash)
	assert.NoError(t, auth.CheckPassword(u.PasswordHash, "pw"))
}
