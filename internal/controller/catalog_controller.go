package controller

import (
	"hp_quiz_backend/internal/config"
	"hp_quiz_backend/internal/model"
	"hp_quiz_backend/internal/repository"
	"hp_quiz_backend/internal/service"
	"hp_quiz_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	CatalogService *service.CatalogService
	StorageService *service.StorageService
	Cfg            *config.Config
}

func NewCatalogController(catalogService *service.CatalogService, storageService *service.StorageService, cfg *config.Config) *CatalogController {
	return &CatalogController{
		CatalogService: catalogService,
		StorageService: storageService,
		Cfg:            cfg,
	}
}

// publicAnswer hides is_correct from players browsing the catalog.
type publicAnswer struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type publicQuestion struct {
	ID              uint           `json:"id"`
	Text            string         `json:"text"`
	Image           string         `json:"image"`
	DifficultyLevel int            `json:"difficulty_level"`
	Difficulty      string         `json:"difficulty"`
	PartID          *uint          `json:"part_id"`
	Tags            []model.Tag    `json:"tags"`
	IsAnswerInBook  bool           `json:"is_answer_in_book"`
	IsAnswerInMovie bool           `json:"is_answer_in_movie"`
	Answers         []publicAnswer `json:"answers"`
}

func toPublicQuestion(q *model.Question) publicQuestion {
	view := publicQuestion{
		ID:              q.ID,
		Text:            q.Text,
		Image:           q.Image,
		DifficultyLevel: q.DifficultyLevel,
		Difficulty:      model.DifficultyLabel(q.DifficultyLevel),
		PartID:          q.PartID,
		Tags:            q.Tags,
		IsAnswerInBook:  q.IsAnswerInBook,
		IsAnswerInMovie: q.IsAnswerInMovie,
		Answers:         make([]publicAnswer, 0, len(q.Answers)),
	}
	for _, a := range q.Answers {
		view.Answers = append(view.Answers, publicAnswer{ID: a.ID, Text: a.Text})
	}
	return view
}

// ListParts godoc
// @Summary Book parts in reading order
// @Tags catalog
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Part} "Parts"
// @Router /api/parts [get]
func (c *CatalogController) ListParts(ctx *gin.Context) {
	parts, err := c.CatalogService.ListParts()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, parts)
}

// GetPart godoc
// @Summary One book part by slug
// @Tags catalog
// @Produce  json
// @Param   slug path string true "Part slug"
// @Success 200 {object} util.Response{data=model.Part} "Part"
// @Failure 404 {object} util.Response "Part not found"
// @Router /api/parts/{slug} [get]
func (c *CatalogController) GetPart(ctx *gin.Context) {
	part, err := c.CatalogService.GetPartBySlug(ctx.Param("slug"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, part)
}

// ListTags godoc
// @Summary All tags
// @Tags catalog
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Tag} "Tags"
// @Router /api/tags [get]
func (c *CatalogController) ListTags(ctx *gin.Context) {
	tags, err := c.CatalogService.ListTags()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tags)
}

// GetTag godoc
// @Summary One tag by slug
// @Tags catalog
// @Produce  json
// @Param   slug path string true "Tag slug"
// @Success 200 {object} util.Response{data=model.Tag} "Tag"
// @Failure 404 {object} util.Response "Tag not found"
// @Router /api/tags/{slug} [get]
func (c *CatalogController) GetTag(ctx *gin.Context) {
	tag, err := c.CatalogService.GetTagBySlug(ctx.Param("slug"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, tag)
}

// ListQuestions godoc
// @Summary Browse active questions
// @Description Filterable by part, tag and difficulty level
// @Tags catalog
// @Produce  json
// @Param   part_id    query int false "Part ID"
// @Param   tag_id     query int false "Tag ID"
// @Param   difficulty query int false "Difficulty level (1-4)"
// @Success 200 {object} util.Response{data=[]object} "Questions"
// @Router /api/questions [get]
func (c *CatalogController) ListQuestions(ctx *gin.Context) {
	difficulty, _ := strconv.Atoi(ctx.Query("difficulty"))
	filter := repository.QuestionFilter{
		PartID:     util.MustParseUint(ctx.DefaultQuery("part_id", ctx.Query("part"))),
		TagID:      util.MustParseUint(ctx.DefaultQuery("tag_id", ctx.Query("tag"))),
		Difficulty: difficulty,
	}

	questions, err := c.CatalogService.ListQuestions(filter)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	views := make([]publicQuestion, 0, len(questions))
	for i := range questions {
		views = append(views, toPublicQuestion(&questions[i]))
	}
	util.Success(ctx, views)
}

// GetQuestion godoc
// @Summary One active question with its options
// @Description Options never carry correctness here
// @Tags catalog
// @Produce  json
// @Param   id path int true "Question ID"
// @Success 200 {object} util.Response{data=object} "Question"
// @Failure 404 {object} util.Response "Question not found"
// @Router /api/questions/{id} [get]
func (c *CatalogController) GetQuestion(ctx *gin.Context) {
	question, err := c.CatalogService.GetQuestion(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, toPublicQuestion(question))
}

// CreatePart godoc
// @Summary Create a book part (editor)
// @Tags editor
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.PartRequest true "Part"
// @Success 201 {object} util.Response{data=model.Part} "Created"
// @Router /api/editor/parts [post]
func (c *CatalogController) CreatePart(ctx *gin.Context) {
	var req service.PartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	part, err := c.CatalogService.CreatePart(req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, part)
}

// UpdatePart godoc
// @Summary Update a book part (editor)
// @Tags editor
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id   path int                 true "Part ID"
// @Param   body body service.PartRequest true "Part"
// @Success 200 {object} util.Response{data=model.Part} "Updated"
// @Router /api/editor/parts/{id} [put]
func (c *CatalogController) UpdatePart(ctx *gin.Context) {
	var req service.PartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	part, err := c.CatalogService.UpdatePart(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, part)
}

// DeletePart godoc
// @Summary Delete a book part (editor)
// @Description Questions of the part stay, unlinked
// @Tags editor
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Part ID"
// @Success 200 {object} util.Response "Deleted"
// @Router /api/editor/parts/{id} [delete]
func (c *CatalogController) DeletePart(ctx *gin.Context) {
	if err := c.CatalogService.DeletePart(util.MustParseUint(ctx.Param("id"))); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// CreateTag godoc
// @Summary Create a tag (editor)
// @Tags editor
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.NameSlugRequest true "Tag"
// @Success 201 {object} util.Response{data=model.Tag} "Created"
// @Router /api/editor/tags [post]
func (c *CatalogController) CreateTag(ctx *gin.Context) {
	var req service.NameSlugRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	tag, err := c.CatalogService.CreateTag(req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, tag)
}

// DeleteTag godoc
// @Summary Delete a tag (editor)
// @Tags editor
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Tag ID"
// @Success 200 {object} util.Response "Deleted"
// @Router /api/editor/tags/{id} [delete]
func (c *CatalogController) DeleteTag(ctx *gin.Context) {
	if err := c.CatalogService.DeleteTag(util.MustParseUint(ctx.Param("id"))); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// CreateQuestion godoc
// @Summary Create a question with its options (editor)
// @Tags editor
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.QuestionRequest true "Question"
// @Success 201 {object} util.Response{data=model.Question} "Created"
// @Router /api/editor/questions [post]
func (c *CatalogController) CreateQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	question, err := c.CatalogService.CreateQuestion(req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// GetQuestionFull godoc
// @Summary One question with correctness included (editor)
// @Tags editor
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Question ID"
// @Success 200 {object} util.Response{data=model.Question} "Question"
// @Router /api/editor/questions/{id} [get]
func (c *CatalogController) GetQuestionFull(ctx *gin.Context) {
	question, err := c.CatalogService.GetQuestionFull(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// UpdateQuestion godoc
// @Summary Update a question, replacing options when given (editor)
// @Tags editor
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id   path int                     true "Question ID"
// @Param   body body service.QuestionRequest true "Question"
// @Success 200 {object} util.Response{data=model.Question} "Updated"
// @Router /api/editor/questions/{id} [put]
func (c *CatalogController) UpdateQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	question, err := c.CatalogService.UpdateQuestion(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// DeleteQuestion godoc
// @Summary Delete a question and its options (editor)
// @Tags editor
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Question ID"
// @Success 200 {object} util.Response "Deleted"
// @Router /api/editor/questions/{id} [delete]
func (c *CatalogController) DeleteQuestion(ctx *gin.Context) {
	if err := c.CatalogService.DeleteQuestion(util.MustParseUint(ctx.Param("id"))); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UploadQuestionImage godoc
// @Summary Attach an image to a question (editor)
// @Description Accepts images up to the configured size limit
// @Tags editor
// @Accept  mpfd
// @Produce  json
// @Security ApiKeyAuth
// @Param   id   path     int  true "Question ID"
// @Param   file formData file true "Image"
// @Success 200 {object} util.Response{data=model.Question} "Updated question"
// @Failure 400 {object} util.Response "Not an image or too large"
// @Router /api/editor/questions/{id}/image [post]
func (c *CatalogController) UploadQuestionImage(ctx *gin.Context) {
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

	stored := c.StorageService.StoredName(util.QuestionImageDir, fileHeader.Filename)
	url, err := c.StorageService.Upload(ctx.Request.Context(), stored, file, fileHeader.Size, mimeType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	question, err := c.CatalogService.AttachImage(util.MustParseUint(ctx.Param("id")), url)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, question)
}
