package app

import (
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/middleware"
	"learnhub_backend/internal/model"
	"learnhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Health)

	api := router.Group("/api/v1")

	// 公共路由（无需登录）
	{
		api.POST("/auth/register", c.auth.Register)
		api.POST("/auth/login", c.auth.Login)

		api.GET("/courses", c.course.ListCourses)
		api.GET("/courses/:id", c.course.GetCourse)
		api.GET("/users/:id", c.user.GetUser)

		api.GET("/marketplace/listings", c.marketplace.ListListings)
		api.GET("/marketplace/listings/:id", c.marketplace.GetListing)

		// 支付网关回调
		api.POST("/payments/notification", c.payment.Webhook)
	}

	// 模块列表：游客可看课程大纲，登录用户附带解锁状态
	api.GET("/courses/:id/modules", middleware.TryAuthMiddleware(cfg), a.listModulesByCourseID(c))

	// 社区：浏览公开，发帖评论需登录
	community := api.Group("/community")
	{
		community.GET("/posts", c.community.ListPosts)
		community.GET("/posts/:id", c.community.GetPost)
		community.GET("/posts/:id/comments", a.listCommentsByPostID(c))
		community.GET("/tags", c.community.ListTags)

		authorized := community.Group("/")
		authorized.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
		{
			authorized.POST("/posts", c.community.CreatePost)
			authorized.DELETE("/posts/:id", c.community.DeletePost)
			authorized.POST("/posts/:id/comments", a.createCommentByPostID(c))
			authorized.DELETE("/comments/:id", c.community.DeleteComment)
			authorized.PUT("/posts/:id/pin", middleware.RoleMiddleware(model.Admin), c.community.PinPost)
		}
	}

	// 需要登录的路由
	auth := api.Group("/")
	auth.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		auth.GET("/auth/me", c.auth.Me)
		auth.PUT("/users/me", c.user.UpdateProfile)

		auth.GET("/modules/:id", c.module.GetModule)
		auth.GET("/contents/:id", c.module.GetContent)

		auth.GET("/quizzes/:id", c.quiz.GetQuiz)
		auth.POST("/quizzes/:id/attempts", c.quiz.SubmitQuiz)
		auth.GET("/quizzes/:id/attempts", c.quiz.ListAttempts)

		auth.POST("/enrollments", c.enrollment.Purchase)
		auth.GET("/enrollments", c.enrollment.MyEnrollments)
		auth.GET("/enrollments/:id", c.enrollment.GetEnrollment)
		auth.GET("/payments", c.payment.MyPayments)

		auth.GET("/notifications", c.notification.ListNotifications)
		auth.PUT("/notifications/read-all", c.notification.MarkAllRead)
		auth.PUT("/notifications/:id/read", c.notification.MarkRead)

		auth.POST("/uploads", c.upload.UploadFile)
		auth.GET("/transcode-jobs/:id", c.upload.GetTranscodeJob)

		auth.POST("/marketplace/orders", c.marketplace.PlaceOrder)
		auth.GET("/marketplace/orders", c.marketplace.MyOrders)
		auth.PUT("/marketplace/orders/:id", c.marketplace.UpdateOrder)
	}

	// 讲师路由
	instructor := api.Group("/")
	instructor.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Instructor))
	{
		instructor.GET("/instructor/courses", c.course.MyCourses)
		instructor.POST("/courses", c.course.CreateCourse)
		instructor.PUT("/courses/:id", c.course.UpdateCourse)
		instructor.DELETE("/courses/:id", c.course.DeleteCourse)
		instructor.POST("/courses/:id/publish", c.course.PublishCourse)

		instructor.POST("/courses/:id/modules", a.createModuleByCourseID(c))
		instructor.PUT("/modules/:id", c.module.UpdateModule)
		instructor.DELETE("/modules/:id", c.module.DeleteModule)
		instructor.POST("/modules/:id/contents", a.createContentByModuleID(c))
		instructor.POST("/contents/:id/video", a.uploadVideoByContentID(c))

		instructor.POST("/modules/:id/quizzes", a.createQuizByModuleID(c))
		instructor.PUT("/quizzes/:id/questions", c.quiz.ReplaceQuestions)
		instructor.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)

		instructor.POST("/marketplace/listings", c.marketplace.CreateListing)
		instructor.PUT("/marketplace/listings/:id", c.marketplace.UpdateListing)
		instructor.DELETE("/marketplace/listings/:id", c.marketplace.DeleteListing)
	}

	// 管理员路由
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.PUT("/users/:id/status", c.user.SetStatus)
	}
}

// gin 同一路径前缀下的参数名必须一致，统一用 :id 并在此做参数名适配

func (a *App) listModulesByCourseID(c *controllers) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Params = append(ctx.Params, gin.Param{Key: "courseId", Value: ctx.Param("id")})
		c.module.ListModules(ctx)
	}
}

func (a *App) createModuleByCourseID(c *controllers) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Params = append(ctx.Params, gin.Param{Key: "courseId", Value: ctx.Param("id")})
		c.module.CreateModule(ctx)
	}
}

func (a *App) createContentByModuleID(c *controllers) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Params = append(ctx.Params, gin.Param{Key: "moduleId", Value: ctx.Param("id")})
		c.module.CreateContent(ctx)
	}
}

func (a *App) createQuizByModuleID(c *controllers) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Params = append(ctx.Params, gin.Param{Key: "moduleId", Value: ctx.Param("id")})
		c.quiz.CreateQuiz(ctx)
	}
}

func (a *App) uploadVideoByContentID(c *controllers) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Params = append(ctx.Params, gin.Param{Key: "contentId", Value: ctx.Param("id")})
		c.upload.UploadVideo(ctx)
	}
}

func (a *App) listCommentsByPostID(c *controllers) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Params = append(ctx.Params, gin.Param{Key: "postId", Value: ctx.Param("id")})
		c.community.ListComments(ctx)
	}
}

func (a *App) createCommentByPostID(c *controllers) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Params = append(ctx.Params, gin.Param{Key: "postId", Value: ctx.Param("id")})
		c.community.CreateComment(ctx)
	}
}
