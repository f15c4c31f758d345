package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/repository"
	"github.com/yeremiapane/restaurant-booking/utils"
)

const (
	minDishName = 2
	maxDishName = 100
)

type CatalogService struct {
	store *repository.Store
}

func NewCatalogService(store *repository.Store) *CatalogService {
	return &CatalogService{store: store}
}

type CategoryInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

type DishInput struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description *string         `json:"description"`
	Photo       *string         `json:"photo"`
	CategoryID  *uint           `json:"categoryId"`
	Available   *bool           `json:"available"`
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	c, err := s.store.FindCategory(ctx, id)
	return c, storeError(err, "category")
}

func (s *CatalogService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, newError(KindValidation, "category name is required").with("field", "name")
	}
	c := &models.Category{Name: name, Description: in.Description, Icon: in.Icon}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		return nil, storeError(err, "category")
	}
	return c, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, in CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, newError(KindValidation, "category name is required").with("field", "name")
	}
	c, err := s.store.FindCategory(ctx, id)
	if err != nil {
		return nil, storeError(err, "category")
	}
	c.Name = name
	c.Description = in.Description
	c.Icon = in.Icon
	if err := s.store.SaveCategory(ctx, c); err != nil {
		return nil, storeError(err, "category")
	}
	return c, nil
}

// DeleteCategory refuses while dishes still belong to the category.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		n, err := tx.CountDishesInCategory(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return newError(KindConflict, "category still has %d dish(es)", n).with("dishCount", n)
		}
		return storeError(tx.DeleteCategory(ctx, id), "category")
	})
}

type DishListInput struct {
	CategoryID *uint
	Available  *bool
}

func (s *CatalogService) ListDishes(ctx context.Context, in DishListInput) ([]models.Dish, error) {
	return s.store.ListDishes(ctx, repository.DishFilter{CategoryID: in.CategoryID, Available: in.Available})
}

func (s *CatalogService) GetDish(ctx context.Context, id uint) (*models.Dish, error) {
	d, err := s.store.FindDish(ctx, id)
	return d, storeError(err, "dish")
}

func (s *CatalogService) validateDish(ctx context.Context, in DishInput) error {
	n := utf8.RuneCountInString(strings.TrimSpace(in.Name))
	if n < minDishName || n > maxDishName {
		return newError(KindValidation, "dish name must be between %d and %d characters", minDishName, maxDishName).with("field", "name")
	}
	// compared at cent precision, as stored
	if !utils.RoundPrice(in.Price).IsPositive() {
		return newError(KindValidation, "price must be at least 0.01").with("field", "price")
	}
	if in.CategoryID != nil {
		if _, err := s.store.FindCategory(ctx, *in.CategoryID); err != nil {
			return storeError(err, "category")
		}
	}
	return nil
}

func (s *CatalogService) CreateDish(ctx context.Context, in DishInput) (*models.Dish, error) {
	if err := s.validateDish(ctx, in); err != nil {
		return nil, err
	}
	d := &models.Dish{
		Name:        strings.TrimSpace(in.Name),
		Price:       models.NewMoney(utils.RoundPrice(in.Price)),
		Description: in.Description,
		Photo:       in.Photo,
		CategoryID:  in.CategoryID,
		Available:   true,
	}
	if in.Available != nil {
		d.Available = *in.Available
	}
	if err := s.store.CreateDish(ctx, d); err != nil {
		return nil, storeError(err, "dish")
	}
	return s.GetDish(ctx, d.ID)
}

func (s *CatalogService) UpdateDish(ctx context.Context, id uint, in DishInput) (*models.Dish, error) {
	if err := s.validateDish(ctx, in); err != nil {
		return nil, err
	}
	d, err := s.store.FindDish(ctx, id)
	if err != nil {
		return nil, storeError(err, "dish")
	}
	d.Name = strings.TrimSpace(in.Name)
	d.Price = models.NewMoney(utils.RoundPrice(in.Price))
	d.Description = in.Description
	d.Photo = in.Photo
	d.CategoryID = in.CategoryID
	d.Category = nil
	if in.Available != nil {
		d.Available = *in.Available
	}
	if err := s.store.SaveDish(ctx, d); err != nil {
		return nil, storeError(err, "dish")
	}
	return s.GetDish(ctx, id)
}

// DeleteDish refuses while past orders reference the dish.
func (s *CatalogService) DeleteDish(ctx context.Context, id uint) error {
	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		n, err := tx.CountOrderItemsForDish(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return newError(KindConflict, "dish is referenced by %d order item(s), mark it unavailable instead", n).with("orderItems", n)
		}
		return storeError(tx.DeleteDish(ctx, id), "dish")
	})
}
