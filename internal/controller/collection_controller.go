package controller

import (
	"hp_quiz_backend/internal/service"
	"hp_quiz_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CollectionController struct {
	CollectionService *service.CollectionService
}

func NewCollectionController(collectionService *service.CollectionService) *CollectionController {
	return &CollectionController{CollectionService: collectionService}
}

func callerID(ctx *gin.Context) uint {
	if claims := util.GetUserFromContext(ctx); claims != nil {
		return claims.UserID
	}
	return 0
}

// ListCollections godoc
// @Summary Published collections, newest first
// @Description Logged-in callers see in_process and their latest result
// @Tags collections
// @Produce  json
// @Success 200 {object} util.Response{data=[]service.CollectionInfo} "Collections"
// @Router /api/collections [get]
func (c *CollectionController) ListCollections(ctx *gin.Context) {
	infos, err := c.CollectionService.ListPublished(ctx.Request.Context(), callerID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, infos)
}

// GetCollection godoc
// @Summary One published collection by slug
// @Tags collections
// @Produce  json
// @Param   slug path string true "Collection slug"
// @Success 200 {object} util.Response{data=service.CollectionInfo} "Collection"
// @Failure 404 {object} util.Response "Collection not found"
// @Router /api/collections/{slug} [get]
func (c *CollectionController) GetCollection(ctx *gin.Context) {
	info, err := c.CollectionService.GetPublished(ctx.Param("slug"), callerID(ctx))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, info)
}

// GetCollectionQuestions godoc
// @Summary The collection's questions in quiz order
// @Description Options of questions already answered in the caller's open attempt carry highlights
// @Tags collections
// @Produce  json
// @Param   slug path string true "Collection slug"
// @Success 200 {object} util.Response{data=[]service.QuestionView} "Questions"
// @Failure 404 {object} util.Response "Collection not found"
// @Router /api/collections/{slug}/questions [get]
func (c *CollectionController) GetCollectionQuestions(ctx *gin.Context) {
	views, err := c.CollectionService.Questions(ctx.Param("slug"), callerID(ctx))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// ListAllCollections godoc
// @Summary All collections, published or not (editor)
// @Tags editor
// @Produce  json
// @Security ApiKeyAuth
// @Param   page  query int false "Page"  default(1)
// @Param   limit query int false "Limit" default(20)
// @Success 200 {object} util.Response{data=object} "Collections"
// @Router /api/editor/collections [get]
func (c *CollectionController) ListAllCollections(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	collections, total, err := c.CollectionService.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"collections": collections, "total": total, "page": page, "limit": limit})
}

// CreateCollection godoc
// @Summary Create a collection (editor)
// @Description Collections start unpublished unless is_active is set
// @Tags editor
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CollectionRequest true "Collection"
// @Success 201 {object} util.Response{data=model.QuestionCollection} "Created"
// @Router /api/editor/collections [post]
func (c *CollectionController) CreateCollection(ctx *gin.Context) {
	var req service.CollectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	collection, err := c.CollectionService.Create(ctx.Request.Context(), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, collection)
}

// UpdateCollection godoc
// @Summary Update a collection (editor)
// @Tags editor
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id   path int                       true "Collection ID"
// @Param   body body service.CollectionRequest true "Collection"
// @Success 200 {object} util.Response{data=model.QuestionCollection} "Updated"
// @Router /api/editor/collections/{id} [put]
func (c *CollectionController) UpdateCollection(ctx *gin.Context) {
	var req service.CollectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	collection, err := c.CollectionService.Update(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, collection)
}

// DeleteCollection godoc
// @Summary Delete a collection (editor)
// @Tags editor
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Collection ID"
// @Success 200 {object} util.Response "Deleted"
// @Router /api/editor/collections/{id} [delete]
func (c *CollectionController) DeleteCollection(ctx *gin.Context) {
	if err := c.CollectionService.Delete(ctx.Request.Context(), util.MustParseUint(ctx.Param("id"))); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type SetQuestionsRequest struct {
	QuestionIDs []uint `json:"question_ids" binding:"required"`
}

// SetCollectionQuestions godoc
// @Summary Replace the collection's question list (editor)
// @Description Quiz order follows the order of question_ids
// @Tags editor
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id   path int                 true "Collection ID"
// @Param   body body SetQuestionsRequest true "Ordered question IDs"
// @Success 200 {object} util.Response "Updated"
// @Failure 404 {object} util.Response "Collection or question not found"
// @Router /api/editor/collections/{id}/questions [put]
func (c *CollectionController) SetCollectionQuestions(ctx *gin.Context) {
	var req SetQuestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.CollectionService.SetQuestions(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")), req.QuestionIDs); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
