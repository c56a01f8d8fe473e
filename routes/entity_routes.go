package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campusbridge/admissions_backend/controllers"
	"github.com/campusbridge/admissions_backend/middleware"
	"github.com/campusbridge/admissions_backend/models"
	"github.com/campusbridge/admissions_backend/services"
	"github.com/campusbridge/admissions_backend/websocket"
)

// RegisterUniversityRoutes sets up university CRUD. Writes are
// superadmin-only; reads are open to all authenticated roles.
func RegisterUniversityRoutes(e *echo.Echo, db *mongo.Database, log *logrus.Logger) {
	universityController := controllers.NewUniversityController(db, log)

	universities := e.Group("/api/universities")
	universities.Use(middleware.JWTMiddleware())

	universities.GET("", universityController.ListUniversities)
	universities.GET("/:id", universityController.GetUniversity)

	admin := universities.Group("")
	admin.Use(middleware.RequireRole(models.RoleSuperadmin))
	admin.POST("", universityController.CreateUniversity)
	admin.PUT("/:id", universityController.UpdateUniversity)
	admin.DELETE("/:id", universityController.DeleteUniversity)
}

// RegisterConsultancyRoutes sets up consultancy CRUD plus per-consultancy
// agent listings and stats.
func RegisterConsultancyRoutes(e *echo.Echo, db *mongo.Database, agents *services.AgentService, log *logrus.Logger) {
	consultancyController := controllers.NewConsultancyController(db, log)
	agentController := controllers.NewAgentController(agents, nil)

	consultancies := e.Group("/api/consultancies")
	consultancies.Use(middleware.JWTMiddleware())

	consultancies.GET("", consultancyController.ListConsultancies)
	consultancies.GET("/:id", consultancyController.GetConsultancy)
	consultancies.GET("/:id/stats", consultancyController.GetConsultancyStats)
	consultancies.GET("/:consultancyId/agents", agentController.GetByConsultancy)
	consultancies.GET("/:consultancyId/agents/stats", agentController.GetConsultancyStats)

	admin := consultancies.Group("")
	admin.Use(middleware.RequireRole(models.RoleSuperadmin))
	admin.POST("", consultancyController.CreateConsultancy)
	admin.PUT("/:id", consultancyController.UpdateConsultancy)
	admin.DELETE("/:id", consultancyController.DeleteConsultancy)
}

// RegisterStudentRoutes sets up student CRUD.
func RegisterStudentRoutes(e *echo.Echo, db *mongo.Database, log *logrus.Logger) {
	studentController := controllers.NewStudentController(db, log)

	students := e.Group("/api/students")
	students.Use(middleware.JWTMiddleware())

	students.GET("", studentController.ListStudents)
	students.GET("/:id", studentController.GetStudent)
	students.POST("", studentController.CreateStudent, middleware.RequireRole(models.RoleSuperadmin, models.RoleConsultant))
	students.PUT("/:id", studentController.UpdateStudent, middleware.RequireRole(models.RoleSuperadmin, models.RoleConsultant))
	students.DELETE("/:id", studentController.DeleteStudent, middleware.RequireRole(models.RoleSuperadmin))
}

// RegisterCourseRoutes sets up course CRUD plus stream management.
func RegisterCourseRoutes(e *echo.Echo, db *mongo.Database, log *logrus.Logger) {
	courseController := controllers.NewCourseController(db, log)
	streamController := controllers.NewStreamController(db)

	courses := e.Group("/api/courses")
	courses.Use(middleware.JWTMiddleware())

	courses.GET("", courseController.ListCourses)
	courses.GET("/:id", courseController.GetCourse)
	courses.GET("/:courseId/streams", streamController.ListByCourse)

	writers := courses.Group("")
	writers.Use(middleware.RequireRole(models.RoleSuperadmin, models.RoleUniversity))
	writers.POST("", courseController.CreateCourse)
	writers.PUT("/:id", courseController.UpdateCourse)
	writers.DELETE("/:id", courseController.DeleteCourse)

	streams := e.Group("/api/streams")
	streams.Use(middleware.JWTMiddleware())
	streams.Use(middleware.RequireRole(models.RoleSuperadmin, models.RoleUniversity))
	streams.POST("", streamController.CreateStream)
	streams.PUT("/:id", streamController.UpdateStream)
	streams.DELETE("/:id", streamController.DeleteStream)
}

// RegisterAgentRoutes sets up agent CRUD, withdrawals, and stats.
func RegisterAgentRoutes(e *echo.Echo, agents *services.AgentService, hub *websocket.Hub) {
	agentController := controllers.NewAgentController(agents, hub)

	group := e.Group("/api/agents")
	group.Use(middleware.JWTMiddleware())

	group.GET("", agentController.ListAgents)
	group.GET("/:id", agentController.GetAgent)
	group.GET("/:id/stats", agentController.GetStats)

	writers := group.Group("")
	writers.Use(middleware.RequireRole(models.RoleSuperadmin, models.RoleConsultant))
	writers.POST("", agentController.CreateAgent)
	writers.PUT("/:id", agentController.UpdateAgent)
	writers.POST("/:id/withdraw", agentController.Withdraw)
	writers.DELETE("/:id", agentController.DeleteAgent, middleware.RequireRole(models.RoleSuperadmin))
}

// RegisterAdmissionRoutes sets up admission CRUD and statistics.
func RegisterAdmissionRoutes(e *echo.Echo, admissions *services.AdmissionService) {
	admissionController := controllers.NewAdmissionController(admissions)

	group := e.Group("/api/admissions")
	group.Use(middleware.JWTMiddleware())

	// Statistics before /:id so the path segment is not captured as an id
	group.GET("/statistics", admissionController.GetStatistics)
	group.GET("", admissionController.ListAdmissions)
	group.GET("/:id", admissionController.GetAdmission)

	writers := group.Group("")
	writers.Use(middleware.RequireRole(models.RoleSuperadmin, models.RoleConsultant, models.RoleUniversity))
	writers.POST("", admissionController.CreateAdmission)
	writers.PUT("/:id", admissionController.UpdateAdmission)
	writers.DELETE("/:id", admissionController.DeleteAdmission, middleware.RequireRole(models.RoleSuperadmin))
}
