package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nabilnabti/tapeat-sub001/pkg/resp"
	"github.com/nabilnabti/tapeat-sub001/services"
	"github.com/nabilnabti/tapeat-sub001/utils"
)

type DriverController struct {
	Drivers *services.DriverService
}

func NewDriverController(drivers *services.DriverService) *DriverController {
	return &DriverController{Drivers: drivers}
}

// GET /partner/driver/jobs — unclaimed ready deliveries
func (ctl *DriverController) Jobs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := ctl.Drivers.AvailableJobs(limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// POST /partner/driver/jobs/:id/accept
func (ctl *DriverController) Accept(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("id"))
	err := ctl.Drivers.Accept(utils.CurrentUserID(c), uint(orderID))
	if err != nil {
		if err.Error() == "invalid_or_conflict" {
			resp.BadRequest(c, "job no longer available")
			return
		}
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, gin.H{"accepted": true})
}

// PATCH /partner/driver/jobs/:id/finish
func (ctl *DriverController) Finish(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("id"))
	err := ctl.Drivers.Finish(utils.CurrentUserID(c), uint(orderID))
	if err != nil {
		if err.Error() == "invalid_or_conflict" {
			resp.BadRequest(c, "order is not out for delivery")
			return
		}
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, gin.H{"finished": true})
}

// GET /partner/driver/active
func (ctl *DriverController) Active(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := ctl.Drivers.ActiveJobs(utils.CurrentUserID(c), limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /partner/driver/histories
func (ctl *DriverController) Histories(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := ctl.Drivers.History(utils.CurrentUserID(c), limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}
