package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/repository"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

type TableInput struct {
	DiningAreaID uint                  `json:"diningAreaId" validate:"required"`
	TableNumber  string                `json:"tableNumber" validate:"required,max=20"`
	Capacity     int                   `json:"capacity" validate:"required,gte=1,lte=50"`
	Status       models.TableStatus    `json:"status" validate:"omitempty,oneof=available reserved occupied maintenance"`
	Shape        string                `json:"shape" validate:"omitempty,max=20"`
	Position     *models.Position      `json:"position"`
	Size         *models.Dimensions    `json:"size"`
	Metadata     *models.TableFeatures `json:"metadata"`
}

type TableUpdateInput struct {
	TableNumber *string             `json:"tableNumber" validate:"omitempty,max=20"`
	Capacity    *int                `json:"capacity" validate:"omitempty,gte=1,lte=50"`
	Status      *models.TableStatus `json:"status" validate:"omitempty,oneof=available reserved occupied maintenance"`
	IsActive    *bool               `json:"isActive"`
	Shape       *string             `json:"shape" validate:"omitempty,max=20"`
}

type MenuItemInput struct {
	CategoryID      uint                    `json:"categoryId" validate:"required"`
	Name            string                  `json:"name" validate:"required,max=255"`
	Description     *string                 `json:"description"`
	Price           float64                 `json:"price" validate:"gte=0"`
	Type            models.MenuItemType     `json:"type" validate:"required,oneof=starter main dessert drink special"`
	ImageURL        *string                 `json:"imageUrl" validate:"omitempty,url"`
	Ingredients     models.StringList       `json:"ingredients"`
	Allergens       models.StringList       `json:"allergens"`
	NutritionalInfo *models.NutritionalInfo `json:"nutritionalInfo"`
	IsSpicy         bool                    `json:"isSpicy"`
	IsVegetarian    bool                    `json:"isVegetarian"`
	IsVegan         bool                    `json:"isVegan"`
	IsGlutenFree    bool                    `json:"isGlutenFree"`
	IsFeatured      bool                    `json:"isFeatured"`
	PrepTime        *int                    `json:"prepTime" validate:"omitempty,gte=0"`
}

type SpecialEventInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
	StartDate   string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate     string  `json:"endDate" validate:"required,datetime=2006-01-02"`
	StartTime   *string `json:"startTime" validate:"omitempty,datetime=15:04"`
	EndTime     *string `json:"endTime" validate:"omitempty,datetime=15:04"`
	Capacity    *int    `json:"capacity" validate:"omitempty,gte=1"`
	IsPublic    *bool   `json:"isPublic"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url"`
}

type SettingInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Value       string  `json:"value"`
	Description *string `json:"description"`
}

// CatalogService serves the restaurant's reference data: floor plan administration, menu,
// special events, opening hours and settings.
type CatalogService struct {
	tables   *repository.TableRepo
	menu     *repository.MenuRepo
	events   *repository.SpecialEventRepo
	settings *repository.SettingsRepo
	now      func() time.Time
}

func NewCatalogService(tables *repository.TableRepo, menu *repository.MenuRepo, events *repository.SpecialEventRepo, settings *repository.SettingsRepo) *CatalogService {
	return &CatalogService{tables: tables, menu: menu, events: events, settings: settings, now: time.Now}
}

func (s *CatalogService) CreateTable(ctx context.Context, in TableInput) (*models.RestaurantTable, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if _, err := s.tables.DiningAreaByID(ctx, in.DiningAreaID); err != nil {
		return nil, err
	}

	table := &models.RestaurantTable{}
	if err := copier.Copy(table, &in); err != nil {
		return nil, fmt.Errorf("copy table input: %w", err)
	}
	table.TableNumber = strings.TrimSpace(in.TableNumber)
	if table.Status == "" {
		table.Status = models.TableAvailable
	}
	if table.Shape == "" {
		table.Shape = "rectangle"
	}
	table.IsActive = true

	if err := s.tables.Create(ctx, table); err != nil {
		return nil, err
	}
	utils.InfoLogger.Printf("Table %s created in dining area %d", table.TableNumber, table.DiningAreaID)
	return table, nil
}

func (s *CatalogService) UpdateTable(ctx context.Context, id uint, in TableUpdateInput) (*models.RestaurantTable, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if in.TableNumber != nil {
		fields["table_number"] = strings.TrimSpace(*in.TableNumber)
	}
	if in.Capacity != nil {
		fields["capacity"] = *in.Capacity
	}
	if in.Status != nil {
		fields["status"] = *in.Status
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}
	if in.Shape != nil {
		fields["shape"] = *in.Shape
	}
	if len(fields) == 0 {
		return nil, utils.Invalid("no fields to update")
	}

	if err := s.tables.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	utils.InfoLogger.Printf("Table %d updated", id)
	return s.tables.GetByID(ctx, id)
}

// DeactivateTable retires a table. The row stays so past reservations keep their assignment.
func (s *CatalogService) DeactivateTable(ctx context.Context, id uint) error {
	if err := s.tables.Deactivate(ctx, id); err != nil {
		return err
	}
	utils.InfoLogger.Printf("Table %d deactivated", id)
	return nil
}

func (s *CatalogService) MenuCategories(ctx context.Context) ([]models.MenuCategory, error) {
	return s.menu.ActiveCategories(ctx)
}

func (s *CatalogService) MenuItems(ctx context.Context, categoryID uint) ([]models.MenuItem, error) {
	if _, err := s.menu.CategoryByID(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.menu.ItemsByCategory(ctx, categoryID)
}

func (s *CatalogService) FeaturedItems(ctx context.Context) ([]models.MenuItem, error) {
	return s.menu.Featured(ctx)
}

func (s *CatalogService) CreateMenuItem(ctx context.Context, in MenuItemInput) (*models.MenuItem, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if _, err := s.menu.CategoryByID(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	item := &models.MenuItem{}
	if err := copier.Copy(item, &in); err != nil {
		return nil, fmt.Errorf("copy menu item input: %w", err)
	}
	item.IsAvailable = true

	if err := s.menu.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	utils.InfoLogger.Printf("Menu item %q created", item.Name)
	return item, nil
}

// SpecialEvents lists public events that have not ended yet.
func (s *CatalogService) SpecialEvents(ctx context.Context) ([]models.SpecialEvent, error) {
	return s.events.ActivePublic(ctx, s.now().Format(dateLayout))
}

func (s *CatalogService) SpecialEvent(ctx context.Context, idOrSlug string) (*models.SpecialEvent, error) {
	return s.events.Get(ctx, strings.TrimSpace(idOrSlug))
}

func (s *CatalogService) CreateSpecialEvent(ctx context.Context, in SpecialEventInput) (*models.SpecialEvent, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.EndDate < in.StartDate {
		return nil, utils.NewValidationError("endDate", "must not be before startDate")
	}

	event := &models.SpecialEvent{}
	if err := copier.Copy(event, &in); err != nil {
		return nil, fmt.Errorf("copy special event input: %w", err)
	}
	event.IsPublic = in.IsPublic == nil || *in.IsPublic

	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	utils.InfoLogger.Printf("Special event %q created (%s)", event.Name, event.Slug)
	return event, nil
}

func (s *CatalogService) OperatingHours(ctx context.Context) ([]models.OperatingHours, error) {
	return s.settings.OperatingHours(ctx)
}

func (s *CatalogService) Settings(ctx context.Context, category string) ([]models.RestaurantSetting, error) {
	return s.settings.ByCategory(ctx, strings.TrimSpace(category))
}

func (s *CatalogService) SaveSetting(ctx context.Context, category string, in SettingInput) (*models.RestaurantSetting, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, utils.NewValidationError("category", "is required")
	}

	setting := &models.RestaurantSetting{
		Category:    category,
		Name:        strings.TrimSpace(in.Name),
		Value:       in.Value,
		Description: in.Description,
	}
	if err := s.settings.Upsert(ctx, setting); err != nil {
		return nil, err
	}
	utils.InfoLogger.Printf("Setting %s.%s saved", setting.Category, setting.Name)
	return setting, nil
}
