package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nabilnabti/tapeat-sub001/configs"
	"github.com/nabilnabti/tapeat-sub001/pkg/resp"
	"github.com/nabilnabti/tapeat-sub001/services"
	"github.com/nabilnabti/tapeat-sub001/utils"
)

type RestaurantController struct {
	Restaurants *services.RestaurantService
	Menu        *services.MenuService
	Cfg         *configs.Config
}

func NewRestaurantController(restaurants *services.RestaurantService, menu *services.MenuService, cfg *configs.Config) *RestaurantController {
	return &RestaurantController{Restaurants: restaurants, Menu: menu, Cfg: cfg}
}

// GET /restaurants
func (ctl *RestaurantController) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := ctl.Restaurants.List(limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /restaurants/:id
func (ctl *RestaurantController) Detail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	rest, err := ctl.Restaurants.Detail(uint(id))
	if err != nil {
		resp.NotFound(c, "restaurant not found")
		return
	}
	resp.OK(c, rest)
}

// GET /restaurants/:id/menu — customer menu, served from cache when warm
func (ctl *RestaurantController) PublicMenu(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	menu, err := ctl.Menu.PublicMenu(c.Request.Context(), uint(id))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, menu)
}

// ----- Owner -----

// GET /partner/restaurant/me
func (ctl *RestaurantController) Mine(c *gin.Context) {
	rest, err := ctl.Restaurants.ForOwner(utils.CurrentUserID(c))
	if err != nil {
		resp.NotFound(c, "no restaurant for this account")
		return
	}
	resp.OK(c, rest)
}

// PATCH /partner/restaurant/me
func (ctl *RestaurantController) UpdateMine(c *gin.Context) {
	var in services.RestaurantIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rest, err := ctl.Restaurants.UpdateForOwner(utils.CurrentUserID(c), &in)
	if err != nil {
		resp.NotFound(c, "no restaurant for this account")
		return
	}
	resp.OK(c, rest)
}

// GET /partner/restaurant/dashboard?restaurantId=
func (ctl *RestaurantController) Dashboard(c *gin.Context) {
	restID, _ := strconv.Atoi(c.Query("restaurantId"))
	d, err := ctl.Restaurants.Dashboard(utils.CurrentUserID(c), uint(restID))
	if err != nil {
		if err.Error() == "forbidden" {
			resp.Forbidden(c, "forbidden")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, d)
}

// GET /partner/restaurant/qrcode?restaurantId=&table=&size= — printable
// table QR pointing at the ordering PWA
func (ctl *RestaurantController) TableQRCode(c *gin.Context) {
	restID, _ := strconv.Atoi(c.Query("restaurantId"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "256"))
	table := c.Query("table")
	if table == "" {
		resp.BadRequest(c, "table is required")
		return
	}

	png, err := services.TableQRCode(ctl.Cfg.OrderingBaseURL, uint(restID), table, size)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
