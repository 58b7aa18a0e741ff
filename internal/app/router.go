package app

import (
	"hp_quiz_backend/internal/config"
	"hp_quiz_backend/internal/middleware"
	"hp_quiz_backend/internal/model"
	"hp_quiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c, repos)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerPlayerRoutes(authGroup, c)
		a.registerEditorRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, repos, cfg)
}

// Public catalog and collection reads. Collections take optional auth so a
// logged-in caller sees progress annotations and highlights.
func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.Health)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		public.GET("/parts", c.catalog.ListParts)
		public.GET("/parts/:slug", c.catalog.GetPart)
		public.GET("/tags", c.catalog.ListTags)
		public.GET("/tags/:slug", c.catalog.GetTag)
		public.GET("/questions", c.catalog.ListQuestions)
		public.GET("/questions/:id", c.catalog.GetQuestion)
	}

	collections := router.Group("/api/collections")
	collections.Use(middleware.TryAuthMiddleware(a.Config), middleware.ActivityMiddleware(repos.user))
	{
		collections.GET("", c.collection.ListCollections)
		collections.GET("/:slug", c.collection.GetCollection)
		collections.GET("/:slug/questions", c.collection.GetCollectionQuestions)
	}
}

func (a *App) registerPlayerRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.user.GetProfile)
	rg.PUT("/profile", c.user.UpdateProfile)
	rg.POST("/profile/avatar", c.user.UploadAvatar)

	rg.POST("/collections/:slug/attempts", c.quiz.StartAttempt)
	rg.GET("/collections/:slug/results", c.quiz.ListResults)
	rg.GET("/attempts/:id", c.quiz.GetAttempt)
	rg.POST("/attempts/:id/answers", c.quiz.SubmitAnswer)
	rg.GET("/attempts/:id/answers", c.quiz.ListAttemptAnswers)
	rg.POST("/attempts/:id/complete", c.quiz.CompleteAttempt)
}

func (a *App) registerEditorRoutes(rg *gin.RouterGroup, c *controllers) {
	editor := rg.Group("/editor")
	editor.Use(middleware.RoleMiddleware(model.RoleEditor, model.RoleAdmin))
	{
		editor.POST("/parts", c.catalog.CreatePart)
		editor.PUT("/parts/:id", c.catalog.UpdatePart)
		editor.DELETE("/parts/:id", c.catalog.DeletePart)

		editor.POST("/tags", c.catalog.CreateTag)
		editor.DELETE("/tags/:id", c.catalog.DeleteTag)

		editor.POST("/questions", c.catalog.CreateQuestion)
		editor.GET("/questions/:id", c.catalog.GetQuestionFull)
		editor.PUT("/questions/:id", c.catalog.UpdateQuestion)
		editor.DELETE("/questions/:id", c.catalog.DeleteQuestion)
		editor.POST("/questions/:id/image", c.catalog.UploadQuestionImage)

		editor.GET("/collections", c.collection.ListAllCollections)
		editor.POST("/collections", c.collection.CreateCollection)
		editor.PUT("/collections/:id", c.collection.UpdateCollection)
		editor.DELETE("/collections/:id", c.collection.DeleteCollection)
		editor.PUT("/collections/:id/questions", c.collection.SetCollectionQuestions)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.PUT("/users/:id/role", c.user.SetRole)
		admin.PUT("/users/:id/disabled", c.user.SetDisabled)
	}
}
