package controllers

import (
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nabilnabti/tapeat-sub001/pkg/resp"
	"github.com/nabilnabti/tapeat-sub001/repository"
	"github.com/nabilnabti/tapeat-sub001/services"
	"github.com/nabilnabti/tapeat-sub001/utils"
)

type MenuController struct {
	Menu      *services.MenuService
	RestRepo  *repository.RestaurantRepository
	UploadDir string
}

func NewMenuController(menu *services.MenuService, restRepo *repository.RestaurantRepository, uploadDir string) *MenuController {
	return &MenuController{Menu: menu, RestRepo: restRepo, UploadDir: uploadDir}
}

func (ctl *MenuController) restaurantID(c *gin.Context) (uint, bool) {
	restID, _ := strconv.Atoi(c.Query("restaurantId"))
	ok, err := ctl.RestRepo.IsOwnedBy(uint(restID), utils.CurrentUserID(c))
	if err != nil || !ok {
		resp.Forbidden(c, "forbidden")
		return 0, false
	}
	return uint(restID), true
}

// ----- Categories -----

// GET /partner/restaurant/category?restaurantId=
func (ctl *MenuController) ListCategories(c *gin.Context) {
	restID, ok := ctl.restaurantID(c)
	if !ok {
		return
	}
	cats, err := ctl.Menu.ListCategories(restID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": cats})
}

// POST /partner/restaurant/category?restaurantId=
func (ctl *MenuController) CreateCategory(c *gin.Context) {
	restID, ok := ctl.restaurantID(c)
	if !ok {
		return
	}
	var in services.CategoryIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cat, err := ctl.Menu.CreateCategory(restID, &in)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, cat)
}

// PATCH /partner/restaurant/category/:id?restaurantId=
func (ctl *MenuController) RenameCategory(c *gin.Context) {
	restID, ok := ctl.restaurantID(c)
	if !ok {
		return
	}
	catID, _ := strconv.Atoi(c.Param("id"))

	var in services.CategoryIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cat, err := ctl.Menu.RenameCategory(restID, uint(catID), &in)
	if err != nil {
		resp.NotFound(c, "category not found")
		return
	}
	resp.OK(c, cat)
}

// DELETE /partner/restaurant/category/:id?restaurantId=
func (ctl *MenuController) DeleteCategory(c *gin.Context) {
	restID, ok := ctl.restaurantID(c)
	if !ok {
		return
	}
	catID, _ := strconv.Atoi(c.Param("id"))
	if err := ctl.Menu.DeleteCategory(restID, uint(catID)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}

type reorderReq struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

// PUT /partner/restaurant/category/order?restaurantId= — drag-and-drop result
func (ctl *MenuController) ReorderCategories(c *gin.Context) {
	restID, ok := ctl.restaurantID(c)
	if !ok {
		return
	}
	var req reorderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ctl.Menu.ReorderCategories(restID, req.IDs); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ids": req.IDs})
}

// ----- Items -----

// GET /partner/restaurant/menu?restaurantId=&categoryId=
func (ctl *MenuController) ListItems(c *gin.Context) {
	restID, ok := ctl.restaurantID(c)
	if !ok {
		return
	}
	var catID *uint
	if v, err := strconv.Atoi(c.Query("categoryId")); err == nil && v > 0 {
		u := uint(v)
		catID = &u
	}
	items, err := ctl.Menu.ListItems(restID, catID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// POST /partner/restaurant/menu?restaurantId=
func (ctl *MenuController) CreateItem(c *gin.Context) {
	restID, ok := ctl.restaurantID(c)
	if !ok {
		return
	}
	var in services.MenuItemIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := ctl.Menu.CreateItem(restID, &in)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.Created(c, item)
}

// PATCH /partner/restaurant/menu/:id?restaurantId=
func (ctl *MenuController) UpdateItem(c *gin.Context) {
	restID, ok := ctl.restaurantID(c)
	if !ok {
		return
	}
	itemID, _ := strconv.Atoi(c.Param("id"))

	var in services.MenuItemIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := ctl.Menu.UpdateItem(restID, uint(itemID), &in)
	if err != nil {
		resp.NotFound(c, "menu item not found")
		return
	}
	resp.OK(c, item)
}

// DELETE /partner/restaurant/menu/:id?restaurantId=
func (ctl *MenuController) DeleteItem(c *gin.Context) {
	restID, ok := ctl.restaurantID(c)
	if !ok {
		return
	}
	itemID, _ := strconv.Atoi(c.Param("id"))
	if err := ctl.Menu.DeleteItem(restID, uint(itemID)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}

// PUT /partner/restaurant/menu/order?restaurantId=
func (ctl *MenuController) ReorderItems(c *gin.Context) {
	restID, ok := ctl.restaurantID(c)
	if !ok {
		return
	}
	var req reorderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ctl.Menu.ReorderItems(restID, req.IDs); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ids": req.IDs})
}

type uploadPictureReq struct {
	Base64 string `json:"base64" binding:"required"`
}

// POST /partner/restaurant/menu/picture?restaurantId= — stores the image
// under uploads/ and returns its public URL
func (ctl *MenuController) UploadPicture(c *gin.Context) {
	if _, ok := ctl.restaurantID(c); !ok {
		return
	}
	var req uploadPictureReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	path, err := utils.SaveBase64Image(req.Base64, filepath.Join(ctl.UploadDir, "menu"))
	if err != nil {
		resp.BadRequest(c, "invalid image data")
		return
	}
	resp.Created(c, gin.H{"url": "/" + filepath.ToSlash(path)})
}
