package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nabilnabti/tapeat-sub001/pkg/resp"
	"github.com/nabilnabti/tapeat-sub001/services"
	"github.com/nabilnabti/tapeat-sub001/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// POST /orders — checkout completion creates the order
func (ctl *OrderController) Create(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req services.CheckoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	out, err := ctl.Orders.Checkout(uid, &req)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.Created(c, out)
}

// GET /orders
func (ctl *OrderController) ListForMe(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, err := ctl.Orders.ListForUser(uid, limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /orders/:id
func (ctl *OrderController) Detail(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	id, _ := strconv.Atoi(c.Param("id"))

	out, err := ctl.Orders.DetailForUser(uid, uint(id))
	if err != nil {
		resp.NotFound(c, "order not found")
		return
	}
	resp.OK(c, out)
}

// ----- Owner board -----

// GET /partner/restaurant/order?restaurantId=&status=&page=&limit=
func (ctl *OrderController) ListForRestaurant(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	restID, _ := strconv.Atoi(c.Query("restaurantId"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	out, err := ctl.Orders.ListForRestaurant(uid, uint(restID), c.Query("status"), page, limit)
	if err != nil {
		if err.Error() == "forbidden" {
			resp.Forbidden(c, "forbidden")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /partner/restaurant/history?restaurantId=&page=&limit=
func (ctl *OrderController) HistoryForRestaurant(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	restID, _ := strconv.Atoi(c.Query("restaurantId"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	out, err := ctl.Orders.HistoryForRestaurant(uid, uint(restID), page, limit)
	if err != nil {
		if err.Error() == "forbidden" {
			resp.Forbidden(c, "forbidden")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /partner/restaurant/order/:id?restaurantId=
func (ctl *OrderController) DetailForRestaurant(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	restID, _ := strconv.Atoi(c.Query("restaurantId"))
	orderID, _ := strconv.Atoi(c.Param("id"))

	out, err := ctl.Orders.DetailForRestaurant(uid, uint(restID), uint(orderID))
	if err != nil {
		if err.Error() == "forbidden" {
			resp.Forbidden(c, "forbidden")
			return
		}
		resp.NotFound(c, "order not found")
		return
	}
	resp.OK(c, out)
}

type updateStatusReq struct {
	Status string `json:"status" binding:"required"`
	services.StatusExtra
}

// PATCH /partner/restaurant/order/:id/status?restaurantId=
func (ctl *OrderController) UpdateStatus(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	restID, _ := strconv.Atoi(c.Query("restaurantId"))
	orderID, _ := strconv.Atoi(c.Param("id"))

	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	err := ctl.Orders.UpdateStatusForRestaurant(uid, uint(restID), uint(orderID), req.Status, req.StatusExtra)
	if err != nil {
		switch err.Error() {
		case "forbidden":
			resp.Forbidden(c, "forbidden")
		case "invalid status", "status only valid for delivery orders":
			resp.BadRequest(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, gin.H{"status": req.Status})
}
