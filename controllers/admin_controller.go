package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nabilnabti/tapeat-sub001/entity"
	"github.com/nabilnabti/tapeat-sub001/pkg/resp"
	"github.com/nabilnabti/tapeat-sub001/services"
)

type AdminController struct {
	DB   *gorm.DB
	Auth *services.AuthService
}

func NewAdminController(db *gorm.DB, auth *services.AuthService) *AdminController {
	return &AdminController{DB: db, Auth: auth}
}

// GET /admin/dashboard
func (ctl *AdminController) Dashboard(c *gin.Context) {
	var restaurants, users, orders int64
	if err := ctl.DB.Model(&entity.Restaurant{}).Count(&restaurants).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	if err := ctl.DB.Model(&entity.User{}).Count(&users).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	if err := ctl.DB.Model(&entity.Order{}).Count(&orders).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"restaurants": restaurants, "users": users, "orders": orders})
}

// GET /admin/restaurant
func (ctl *AdminController) Restaurants(c *gin.Context) {
	var items []entity.Restaurant
	if err := ctl.DB.Order("id ASC").Find(&items).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

type createRestaurantReq struct {
	services.RestaurantIn
	OwnerID uint `json:"ownerId" binding:"required"`
}

// POST /admin/restaurant — onboard a tenant and promote its owner
func (ctl *AdminController) CreateRestaurant(c *gin.Context) {
	var req createRestaurantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	rest := entity.Restaurant{
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
		Phone:       req.Phone,
		TaxRateBps:  req.TaxRateBps,
		IsOpen:      true,
		UserID:      req.OwnerID,
	}
	if err := ctl.DB.Create(&rest).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	if err := ctl.Auth.SetRole(req.OwnerID, entity.RoleOwner); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, rest)
}

type setRoleReq struct {
	Role string `json:"role" binding:"required"`
}

// PATCH /admin/users/:id/role — promote drivers and owners
func (ctl *AdminController) SetRole(c *gin.Context) {
	userID, _ := strconv.Atoi(c.Param("id"))
	var req setRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ctl.Auth.SetRole(uint(userID), req.Role); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, gin.H{"role": req.Role})
}
