package database

import (
	"fmt"
	"log/slog"
	"time"

	"restaupilot/internal/auth"
	"restaupilot/internal/models"
)

// SeedOptions controls the demo data written by Seed.
type SeedOptions struct {
	AdminEmail    string
	AdminPassword string
	Now           time.Time
}

// Seed writes the demo chain the dashboard ships with. It is a no-op when
// restaurants already exist, except for the admin user which is created
// whenever a password is supplied and the account is missing.
func (s *Store) Seed(opts SeedOptions) error {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	now := opts.Now.UTC()

	if err := s.seedExtensions(); err != nil {
		return err
	}
	if err := s.seedAdmin(opts); err != nil {
		return err
	}

	var count int
	if err := s.db.Model(&models.Restaurant{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count restaurants: %w", err)
	}
	if count > 0 {
		return nil
	}

	restaurants := []models.Restaurant{
		{Name: "Harbor Bistro", Location: "Downtown", Timezone: "America/New_York"},
		{Name: "Harbor Bistro Uptown", Location: "Uptown", Timezone: "America/New_York"},
	}
	for i := range restaurants {
		if err := s.db.Create(&restaurants[i]).Error; err != nil {
			return fmt.Errorf("seed restaurant: %w", err)
		}
		if err := s.seedRestaurant(restaurants[i].ID, float64(i+1), now); err != nil {
			return err
		}
	}

	slog.Info("seeded demo data", "restaurants", len(restaurants))
	return nil
}

func (s *Store) seedAdmin(opts SeedOptions) error {
	if opts.AdminEmail == "" || opts.AdminPassword == "" {
		return nil
	}
	if _, err := s.GetUserByEmail(opts.AdminEmail); err == nil {
		return nil
	}
	hash, err := auth.HashPassword(opts.AdminPassword)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return s.CreateUser(&models.User{
		Email:        opts.AdminEmail,
		Name:         "Administrator",
		PasswordHash: hash,
		Role:         "admin",
	})
}

func (s *Store) seedExtensions() error {
	var count int
	if err := s.db.Model(&models.Extension{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count extensions: %w", err)
	}
	if count > 0 {
		return nil
	}
	catalog := []models.Extension{
		{Slug: "square-pos", Name: "Square POS", Category: "pos", Vendor: "Block", MonthlyFee: 0, Description: "Sync sales and menu items from Square.", Tags: models.StringSlice{"sales", "menu"}},
		{Slug: "toast-pos", Name: "Toast POS", Category: "pos", Vendor: "Toast", MonthlyFee: 0, Description: "Import checks and labor from Toast.", Tags: models.StringSlice{"sales", "labor"}},
		{Slug: "quickbooks", Name: "QuickBooks Online", Category: "accounting", Vendor: "Intuit", MonthlyFee: 15, Description: "Push payroll and invoices to QuickBooks.", Tags: models.StringSlice{"payroll", "invoices"}},
		{Slug: "opentable", Name: "OpenTable", Category: "reservations", Vendor: "OpenTable", MonthlyFee: 29, Description: "Pull covers forecasts from reservations.", Tags: models.StringSlice{"forecast"}},
		{Slug: "sysco-ordering", Name: "Sysco Ordering", Category: "suppliers", Vendor: "Sysco", MonthlyFee: 0, Description: "Reorder low stock items automatically.", Tags: models.StringSlice{"inventory"}},
		{Slug: "7shifts", Name: "7shifts", Category: "scheduling", Vendor: "7shifts", MonthlyFee: 20, Description: "Two-way schedule sync.", Tags: models.StringSlice{"schedule", "labor"}},
	}
	for i := range catalog {
		if err := s.db.Create(&catalog[i]).Error; err != nil {
			return fmt.Errorf("seed extension: %w", err)
		}
	}
	return nil
}

// seedRestaurant writes one location's demo records. scale varies the
// numbers between locations.
func (s *Store) seedRestaurant(rid uint, scale float64, now time.Time) error {
	day := now.Truncate(24 * time.Hour)
	expired := day.Add(-48 * time.Hour)
	soon := day.Add(5 * 24 * time.Hour)

	inventory := []models.InventoryItem{
		{Name: "Chicken Breast", Category: string(models.CategoryProtein), Quantity: 25 * scale, Unit: string(models.UnitKilogram), UnitCost: 6.5, MinLevel: 10, MaxLevel: 60, ReorderAt: 15, Location: string(models.LocationWalkIn), ExpiryDate: &soon},
		{Name: "Ribeye", Category: string(models.CategoryProtein), Quantity: 8, Unit: string(models.UnitKilogram), UnitCost: 24, MinLevel: 5, MaxLevel: 30, ReorderAt: 10, Location: string(models.LocationWalkIn)},
		{Name: "Tomatoes", Category: string(models.CategoryProduce), Quantity: 40, Unit: string(models.UnitKilogram), UnitCost: 2.2, MinLevel: 10, MaxLevel: 80, ReorderAt: 12, Location: string(models.LocationRefrigerator)},
		{Name: "Romaine", Category: string(models.CategoryProduce), Quantity: 6, Unit: string(models.UnitCase), UnitCost: 18, MinLevel: 2, MaxLevel: 12, ReorderAt: 3, Location: string(models.LocationRefrigerator), ExpiryDate: &expired},
		{Name: "Heavy Cream", Category: string(models.CategoryDairy), Quantity: 0, Unit: string(models.UnitLiter), UnitCost: 4.1, MinLevel: 4, MaxLevel: 20, ReorderAt: 6, Location: string(models.LocationRefrigerator)},
		{Name: "Flour", Category: string(models.CategoryDryGoods), Quantity: 100, Unit: string(models.UnitKilogram), UnitCost: 0.9, MinLevel: 20, MaxLevel: 150, ReorderAt: 30, Location: string(models.LocationDryStorage)},
		{Name: "Olive Oil", Category: string(models.CategoryCondiments), Quantity: 12, Unit: string(models.UnitLiter), UnitCost: 9.5, MinLevel: 4, MaxLevel: 24, ReorderAt: 6, Location: string(models.LocationDryStorage)},
		{Name: "To-go Containers", Category: string(models.CategoryDisposables), Quantity: 3, Unit: string(models.UnitBox), UnitCost: 32, MinLevel: 2, MaxLevel: 10, ReorderAt: 4, Location: string(models.LocationSupplyCloset)},
	}
	for i := range inventory {
		inventory[i].RestaurantID = rid
		if err := s.CreateInventoryItem(&inventory[i]); err != nil {
			return fmt.Errorf("seed inventory: %w", err)
		}
	}

	lastService := day.Add(-90 * 24 * time.Hour)
	equipment := []models.Equipment{
		{Name: "Combi Oven", Type: string(models.EquipmentTypeCooking), Station: "hot", LastMaintenance: &lastService},
		{Name: "Walk-in Cooler", Type: string(models.EquipmentTypeRefrigerator), Station: "storage", LastMaintenance: &lastService},
		{Name: "Dish Machine", Type: string(models.EquipmentTypeCleaning), Station: "dish"},
		{Name: "Hood System", Type: string(models.EquipmentTypeHVAC), Station: "hot"},
	}
	for i := range equipment {
		equipment[i].RestaurantID = rid
		equipment[i].Status = string(models.EquipmentStatusAvailable)
		if err := s.db.Create(&equipment[i]).Error; err != nil {
			return fmt.Errorf("seed equipment: %w", err)
		}
	}
	tasks := []models.MaintenanceTask{
		{EquipmentID: equipment[0].ID, Title: "Descale steam generator", Priority: "high", DueDate: day.Add(-3 * 24 * time.Hour), AssignedTo: "Rational Service"},
		{EquipmentID: equipment[1].ID, Title: "Clean condenser coils", Priority: "medium", DueDate: day.Add(7 * 24 * time.Hour)},
		{EquipmentID: equipment[3].ID, Title: "Hood filter exchange", Priority: "high", DueDate: day.Add(14 * 24 * time.Hour), AssignedTo: "Hoodz"},
	}
	for i := range tasks {
		tasks[i].RestaurantID = rid
		if err := s.CreateMaintenanceTask(&tasks[i]); err != nil {
			return fmt.Errorf("seed maintenance: %w", err)
		}
	}

	staff := []models.StaffMember{
		{Name: "Maria Lopez", Role: string(models.RoleManager), HourlyRate: 28, Active: true},
		{Name: "Dev Patel", Role: string(models.RoleChef), HourlyRate: 26, Active: true},
		{Name: "Sam Okafor", Role: string(models.RoleLineCook), HourlyRate: 19 + scale, Active: true},
		{Name: "Lee Chen", Role: string(models.RoleServer), HourlyRate: 12, Active: true},
		{Name: "Ava Rossi", Role: string(models.RoleDishwasher), HourlyRate: 16, Active: true},
	}
	for i := range staff {
		staff[i].RestaurantID = rid
		if err := s.CreateStaff(&staff[i]); err != nil {
			return fmt.Errorf("seed staff: %w", err)
		}
	}
	for d := 0; d < 5; d++ {
		base := day.Add(time.Duration(d) * 24 * time.Hour)
		for i, st := range staff {
			start := base.Add(time.Duration(10+i%2*6) * time.Hour)
			shift := models.Shift{
				RestaurantID: rid,
				StaffID:      st.ID,
				Station:      st.Role,
				StartsAt:     start,
				EndsAt:       start.Add(8 * time.Hour),
			}
			if err := s.CreateShift(&shift); err != nil {
				return fmt.Errorf("seed shift: %w", err)
			}
		}
	}

	compliance := []models.ComplianceRequirement{
		{Title: "Food handler permits", Authority: "County Health", Category: "food_safety", Status: string(models.ComplianceCompliant), DueDate: day.Add(120 * 24 * time.Hour)},
		{Title: "Fire suppression inspection", Authority: "Fire Marshal", Category: "fire", Status: string(models.CompliancePending), DueDate: day.Add(10 * 24 * time.Hour)},
		{Title: "Liquor license renewal", Authority: "State ABC", Category: "licensing", Status: string(models.CompliancePending), DueDate: day.Add(-2 * 24 * time.Hour)},
		{Title: "Allergen menu labeling", Authority: "FDA", Category: "food_safety", Status: string(models.ComplianceNonCompliant), DueDate: day.Add(30 * 24 * time.Hour)},
	}
	for i := range compliance {
		compliance[i].RestaurantID = rid
		if err := s.db.Create(&compliance[i]).Error; err != nil {
			return fmt.Errorf("seed compliance: %w", err)
		}
	}

	waste := []models.WasteLog{
		{Item: "Bread ends", Category: "bakery", QuantityKg: 3.5 * scale, Reason: "trim", Disposal: string(models.DisposalCompost), Cost: 4},
		{Item: "Romaine", Category: "produce", QuantityKg: 4, Reason: "expired", Disposal: string(models.DisposalLandfill), Cost: 18},
		{Item: "Unsold pastries", Category: "bakery", QuantityKg: 2, Reason: "overproduction", Disposal: string(models.DisposalDonation), Cost: 12},
		{Item: "Fryer oil", Category: "oil", QuantityKg: 10, Reason: "spent", Disposal: string(models.DisposalRecycle), Cost: 0},
	}
	for i := range waste {
		waste[i].RestaurantID = rid
		waste[i].LoggedAt = now.Add(-time.Duration(i*6) * time.Hour)
		waste[i].LoggedBy = "Maria Lopez"
		if err := s.LogWaste(&waste[i]); err != nil {
			return fmt.Errorf("seed waste: %w", err)
		}
	}

	modules := []models.TrainingModule{
		{Title: "Food Safety Basics", Category: "food_safety", DurationMinutes: 45, Required: true},
		{Title: "Allergen Awareness", Category: "food_safety", DurationMinutes: 30, Required: true},
		{Title: "Knife Skills", Category: "culinary", DurationMinutes: 60},
		{Title: "Guest Service Standards", Category: "service", DurationMinutes: 40},
	}
	for i := range modules {
		modules[i].RestaurantID = rid
		if err := s.db.Create(&modules[i]).Error; err != nil {
			return fmt.Errorf("seed training: %w", err)
		}
	}
	completions := []models.TrainingCompletion{
		{StaffID: staff[0].ID, ModuleID: modules[0].ID, Score: 96},
		{StaffID: staff[0].ID, ModuleID: modules[1].ID, Score: 92},
		{StaffID: staff[1].ID, ModuleID: modules[0].ID, Score: 88},
		{StaffID: staff[2].ID, ModuleID: modules[2].ID, Score: 81},
	}
	for i := range completions {
		completions[i].RestaurantID = rid
		completions[i].CompletedAt = now.Add(-30 * 24 * time.Hour)
		if err := s.RecordCompletion(&completions[i]); err != nil {
			return fmt.Errorf("seed completion: %w", err)
		}
	}

	if _, err := s.InstallIntegration(rid, "square-pos", models.StringMap{"location_id": fmt.Sprintf("LOC-%d", rid)}); err != nil {
		return fmt.Errorf("seed integration: %w", err)
	}
	return nil
}
