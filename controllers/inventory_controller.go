package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nabilnabti/tapeat-sub001/pkg/resp"
	"github.com/nabilnabti/tapeat-sub001/repository"
	"github.com/nabilnabti/tapeat-sub001/services"
	"github.com/nabilnabti/tapeat-sub001/utils"
)

type InventoryController struct {
	Inventory *services.InventoryService
	RestRepo  *repository.RestaurantRepository
}

func NewInventoryController(inv *services.InventoryService, restRepo *repository.RestaurantRepository) *InventoryController {
	return &InventoryController{Inventory: inv, RestRepo: restRepo}
}

// every inventory endpoint is scoped to the caller's own restaurant
func (ctl *InventoryController) restaurantID(c *gin.Context) (uint, bool) {
	restID, _ := strconv.Atoi(c.Query("restaurantId"))
	ok, err := ctl.RestRepo.IsOwnedBy(uint(restID), utils.CurrentUserID(c))
	if err != nil || !ok {
		resp.Forbidden(c, "forbidden")
		return 0, false
	}
	return uint(restID), true
}

// GET /partner/restaurant/inventory?restaurantId=
func (ctl *InventoryController) List(c *gin.Context) {
	restID, ok := ctl.restaurantID(c)
	if !ok {
		return
	}
	items, err := ctl.Inventory.List(restID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /partner/restaurant/inventory/low-stock?restaurantId=&threshold=
func (ctl *InventoryController) LowStock(c *gin.Context) {
	restID, ok := ctl.restaurantID(c)
	if !ok {
		return
	}
	threshold, err := strconv.ParseFloat(c.DefaultQuery("threshold", "20"), 64)
	if err != nil {
		resp.BadRequest(c, "invalid threshold")
		return
	}
	items, err := ctl.Inventory.LowStock(restID, threshold)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// POST /partner/restaurant/inventory?restaurantId=
func (ctl *InventoryController) Create(c *gin.Context) {
	restID, ok := ctl.restaurantID(c)
	if !ok {
		return
	}
	var in services.InventoryItemIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := ctl.Inventory.Create(restID, &in)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, item)
}

// PUT /partner/restaurant/inventory/:id?restaurantId=
func (ctl *InventoryController) Update(c *gin.Context) {
	restID, ok := ctl.restaurantID(c)
	if !ok {
		return
	}
	itemID, _ := strconv.Atoi(c.Param("id"))

	var in services.InventoryItemIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := ctl.Inventory.Update(restID, uint(itemID), &in)
	if err != nil {
		resp.NotFound(c, "inventory item not found")
		return
	}
	resp.OK(c, item)
}

type setQuantityReq struct {
	Quantity float64 `json:"quantity" binding:"min=0"`
}

// PATCH /partner/restaurant/inventory/:id/quantity?restaurantId= — manual stock count
func (ctl *InventoryController) SetQuantity(c *gin.Context) {
	restID, ok := ctl.restaurantID(c)
	if !ok {
		return
	}
	itemID, _ := strconv.Atoi(c.Param("id"))

	var req setQuantityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ctl.Inventory.SetQuantity(restID, uint(itemID), req.Quantity); err != nil {
		resp.NotFound(c, "inventory item not found")
		return
	}
	resp.OK(c, gin.H{"quantity": req.Quantity})
}

// DELETE /partner/restaurant/inventory/:id?restaurantId=
func (ctl *InventoryController) Delete(c *gin.Context) {
	restID, ok := ctl.restaurantID(c)
	if !ok {
		return
	}
	itemID, _ := strconv.Atoi(c.Param("id"))
	if err := ctl.Inventory.Delete(restID, uint(itemID)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}
