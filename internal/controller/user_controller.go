package controller

import (
	"hp_quiz_backend/internal/config"
	"hp_quiz_backend/internal/model"
	"hp_quiz_backend/internal/service"
	"hp_quiz_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService    *service.UserService
	StorageService *service.StorageService
	Cfg            *config.Config
}

func NewUserController(userService *service.UserService, storageService *service.StorageService, cfg *config.Config) *UserController {
	return &UserController{
		UserService:    userService,
		StorageService: storageService,
		Cfg:            cfg,
	}
}

func profileView(user *model.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"avatar":     user.Avatar,
		"bio":        user.Bio,
		"role":       user.Role,
		"created_at": user.CreatedAt,
	}
}

// GetProfile godoc
// @Summary Current user's profile
// @Tags users
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "Profile"
// @Failure 401 {object} util.Response "Unauthorized"
// @Router /api/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.UserService.GetUserByID(claims.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, profileView(user))
}

// UpdateProfile godoc
// @Summary Update username and bio
// @Tags users
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.ProfileUpdateRequest true "Profile fields"
// @Success 200 {object} util.Response{data=object} "Updated profile"
// @Failure 409 {object} util.Response "Username taken"
// @Router /api/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ProfileUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(claims.UserID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, profileView(user))
}

// UploadAvatar godoc
// @Summary Upload an avatar image
// @Description Accepts images up to the configured size limit
// @Tags users
// @Accept  mpfd
// @Produce  json
// @Security ApiKeyAuth
// @Param   file formData file true "Avatar image"
// @Success 200 {object} util.Response{data=object} "Updated profile"
// @Failure 400 {object} util.Response "Not an image or too large"
// @Router /api/profile/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	if err := util.ValidateImageSize(fileHeader.Size, c.Cfg.MaxImageSizeMB()); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	mimeType, err := util.ValidateMimeType(file, []string{util.MimeImage})
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if _, err := file.Seek(0, 0); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	stored := c.StorageService.StoredName(util.AvatarDir, fileHeader.Filename)
	url, err := c.StorageService.Upload(ctx.Request.Context(), stored, file, fileHeader.Size, mimeType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	user, err := c.UserService.UpdateAvatar(claims.UserID, url)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, profileView(user))
}

// ListUsers godoc
// @Summary List accounts (admin)
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Param   page  query int false "Page"  default(1)
// @Param   limit query int false "Limit" default(20)
// @Success 200 {object} util.Response{data=object} "Users"
// @Router /api/admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := c.UserService.ListUsers(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"users": users, "total": total, "page": page, "limit": limit})
}

type SetRoleRequest struct {
	Role model.UserRole `json:"role" binding:"required,oneof=user editor admin"`
}

// SetRole godoc
// @Summary Change a user's role (admin)
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id   path int            true "User ID"
// @Param   body body SetRoleRequest true "New role"
// @Success 200 {object} util.Response{data=model.User} "Updated user"
// @Failure 404 {object} util.Response "User not found"
// @Router /api/admin/users/{id}/role [put]
func (c *UserController) SetRole(ctx *gin.Context) {
	var req SetRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.SetRole(util.MustParseUint(ctx.Param("id")), req.Role)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

type SetDisabledRequest struct {
	Disabled *bool `json:"disabled" binding:"required"`
}

// SetDisabled godoc
// @Summary Disable or re-enable an account (admin)
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id   path int                true "User ID"
// @Param   body body SetDisabledRequest true "Disabled flag"
// @Success 200 {object} util.Response{data=model.User} "Updated user"
// @Router /api/admin/users/{id}/disabled [put]
func (c *UserController) SetDisabled(ctx *gin.Context) {
	var req SetDisabledRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.SetDisabled(util.MustParseUint(ctx.Param("id")), *req.Disabled)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, user)
}
