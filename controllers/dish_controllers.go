package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-booking/services"
	"github.com/yeremiapane/restaurant-booking/utils"
)

type DishController struct {
	Catalog *services.CatalogService
}

func NewDishController(catalog *services.CatalogService) *DishController {
	return &DishController{Catalog: catalog}
}

// GetAllDishes accepts ?category_id= and ?available=.
func (dc *DishController) GetAllDishes(c *gin.Context) {
	categoryID, ok := queryUint(c, "category_id")
	if !ok {
		return
	}
	available, ok := queryBool(c, "available")
	if !ok {
		return
	}

	dishes, err := dc.Catalog.ListDishes(c.Request.Context(), services.DishListInput{
		CategoryID: categoryID,
		Available:  available,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of dishes", dishes)
}

func (dc *DishController) GetDishByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	dish, err := dc.Catalog.GetDish(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish details", dish)
}

func (dc *DishController) CreateDish(c *gin.Context) {
	var req services.DishInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	dish, err := dc.Catalog.CreateDish(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.Printf("Dish %d created: %s at %s", dish.ID, dish.Name, utils.FormatEuro(dish.Price.Decimal))
	utils.RespondJSON(c, http.StatusCreated, "Dish created successfully", dish)
}

func (dc *DishController) UpdateDish(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.DishInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	dish, err := dc.Catalog.UpdateDish(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish updated", dish)
}

func (dc *DishController) DeleteDish(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := dc.Catalog.DeleteDish(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish deleted", nil)
}
