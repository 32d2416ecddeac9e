package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/project-college/backend/config"
	"github.com/project-college/backend/handlers"
	"github.com/project-college/backend/middlewares"
)

// Register wires the full HTTP surface: a public login, a small
// authenticated common area and three role-gated groups.
func Register(e *echo.Echo, cfg *config.Config) {
	auth := handlers.NewAuthHandler(cfg)
	accounts := handlers.NewAccountHandler(cfg)
	groups := handlers.NewGroupHandler()
	qualifications := handlers.NewQualificationHandler()
	specializations := handlers.NewSpecializationHandler()
	modules := handlers.NewModuleHandler()
	topics := handlers.NewTopicHandler()
	schedules := handlers.NewScheduleHandler(cfg)
	students := handlers.NewStudentHandler(cfg)
	notifications := handlers.NewNotificationHandler()
	dashboard := handlers.NewDashboardHandler()
	imports := handlers.NewImportHandler(cfg)
	downloads := handlers.NewDownloadHandler(cfg)
	teacher := handlers.NewTeacherHandler(cfg)
	portal := handlers.NewStudentPortalHandler(cfg)
	grid := handlers.NewJournalHandler(cfg)

	e.POST("/auth/login", auth.Login)

	authed := e.Group("", middlewares.RequireAuth(cfg.JWTSecret))
	authed.PUT("/auth/password", auth.ChangePassword)
	authed.GET("/profile", auth.Profile)

	admin := authed.Group("/admin", middlewares.RequireAdmin())
	admin.GET("/dashboard", dashboard.Stats)

	authed.POST("/auth/reset-password", auth.ResetPassword, middlewares.RequireAdmin())

	admin.GET("/accounts", accounts.List)
	admin.POST("/accounts", accounts.Create)
	admin.PUT("/accounts/:id", accounts.Update)
	admin.DELETE("/accounts/:id", accounts.Delete)

	admin.GET("/groups", groups.List)
	admin.POST("/groups", groups.Create)
	admin.PUT("/groups/:id", groups.Update)
	admin.DELETE("/groups/:id", groups.Delete)
	admin.GET("/groups/:id/schedule", schedules.ListForGroup)

	admin.POST("/schedules", schedules.Create)
	admin.PUT("/schedules/:id", schedules.Update)
	admin.DELETE("/schedules/:id", schedules.Delete)

	admin.GET("/qualifications", qualifications.List)
	admin.POST("/qualifications", qualifications.Create)
	admin.PUT("/qualifications/:id", qualifications.Update)
	admin.DELETE("/qualifications/:id", qualifications.Delete)

	admin.GET("/specializations", specializations.List)
	admin.POST("/specializations", specializations.Create)
	admin.PUT("/specializations/:id", specializations.Update)
	admin.DELETE("/specializations/:id", specializations.Delete)

	admin.GET("/modules", modules.List)
	admin.GET("/modules/:id", modules.Get)
	admin.POST("/modules", modules.Create)
	admin.PUT("/modules/:id", modules.Update)
	admin.DELETE("/modules/:id", modules.Delete)

	admin.GET("/topics", topics.List)
	admin.POST("/topics", topics.Create)
	admin.PUT("/topics/:id", topics.Update)
	admin.DELETE("/topics/:id", topics.Delete)

	admin.GET("/students", students.List)
	admin.GET("/students/:id", students.Get)
	admin.POST("/students", students.Create)
	admin.PUT("/students/:id", students.Update)
	admin.DELETE("/students/:id", students.Delete)
	admin.POST("/students/:id/dismiss", students.Dismiss)
	admin.GET("/dismissed-students", students.ListDismissed)
	admin.POST("/dismissed-students/:id/recover", students.Recover)

	admin.GET("/notifications", notifications.List)
	admin.POST("/notifications", notifications.Create)
	admin.PUT("/notifications/:id", notifications.Update)
	admin.DELETE("/notifications/:id", notifications.Delete)

	admin.POST("/import/topics", imports.Topics)
	admin.POST("/import/students", imports.Students)
	admin.GET("/import/topics/template", downloads.TopicTemplate)
	admin.GET("/import/students/template", downloads.StudentTemplate)

	teach := authed.Group("/teacher", middlewares.RequireTeacher())
	teach.GET("/groups", teacher.Groups)
	teach.GET("/groups/:id/modules", teacher.GroupModules)
	teach.GET("/notifications", teacher.Notifications)
	teach.GET("/journal/:scheduleID", grid.Get)
	teach.POST("/journal/:scheduleID", grid.Save)

	stud := authed.Group("/student", middlewares.RequireStudent())
	stud.GET("/schedule", portal.Schedule)
	stud.GET("/marks/:scheduleID", portal.Marks)
	stud.GET("/notifications", portal.Notifications)
	stud.GET("/profile", portal.Profile)
}
