package server

import (
	"net/http"

	"royalcert/internal/config"
	"royalcert/internal/handlers"
	"royalcert/internal/middleware"
	"royalcert/internal/models"
	"royalcert/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

type Services struct {
	Auth        service.AuthService
	Users       service.UserService
	Customers   service.CustomerService
	Templates   service.TemplateService
	Inspections service.InspectionService
	Dashboard   service.DashboardService
	Audit       service.AuditService
}

const sessionName = "royalcert_session"

func NewRouter(cfg *config.Config, svc Services) *gin.Engine {
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery(), middleware.RequestLogger(), middleware.CORS(cfg.CORSOrigins))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.IsProd(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	authH := handlers.NewAuthHandler(svc.Auth, svc.Users)
	userH := handlers.NewUserHandler(svc.Users)
	customerH := handlers.NewCustomerHandler(svc.Customers)
	templateH := handlers.NewTemplateHandler(svc.Templates)
	inspectionH := handlers.NewInspectionHandler(svc.Inspections)
	dashboardH := handlers.NewDashboardHandler(svc.Dashboard)
	auditH := handlers.NewAuditHandler(svc.Audit)

	api := r.Group("/api")

	api.GET("/health", handlers.Health)
	api.POST("/auth/login", authH.Login)
	api.POST("/auth/logout", authH.Logout)

	auth := api.Group("/")
	auth.Use(middleware.RequireAuth(svc.Auth))

	admin := middleware.RequireRole(models.RoleAdmin)
	planner := middleware.RequireRole(models.RolePlanner)
	manager := middleware.RequireRole(models.RoleTechnicalMgr)

	// auth
	auth.GET("/auth/me", authH.Me)
	auth.POST("/auth/register", admin, authH.Register)

	// users
	auth.GET("/users", planner, userH.List)
	auth.PUT("/users/:id", admin, userH.Update)
	auth.PUT("/users/:id/password", admin, userH.ChangePassword)
	auth.DELETE("/users/:id", admin, userH.Delete)

	// customers
	auth.GET("/customers", customerH.List)
	auth.POST("/customers", planner, customerH.Create)
	auth.GET("/customers/bulk-import/template", planner, customerH.ImportTemplate)
	auth.GET("/customers/:id", customerH.Get)
	auth.PUT("/customers/:id", planner, customerH.Update)
	auth.DELETE("/customers/:id", planner, customerH.Delete)

	// equipment templates
	auth.GET("/equipment-templates", templateH.List)
	auth.POST("/equipment-templates", admin, templateH.Create)
	auth.POST("/equipment-templates/initialize", admin, templateH.Initialize)
	auth.GET("/equipment-templates/:id", templateH.Get)
	auth.PUT("/equipment-templates/:id", admin, templateH.Update)
	auth.DELETE("/equipment-templates/:id", admin, templateH.Delete)

	// inspections
	auth.GET("/inspections", inspectionH.List)
	auth.POST("/inspections", planner, inspectionH.Create)
	auth.GET("/inspections/pending-approval", manager, inspectionH.PendingApproval)
	auth.GET("/inspections/:id", inspectionH.Get)
	auth.PUT("/inspections/:id", inspectionH.Update)
	auth.DELETE("/inspections/:id", planner, inspectionH.Delete)
	auth.GET("/inspections/:id/history", inspectionH.History)
	auth.POST("/inspections/:id/approve", manager, inspectionH.Approve)
	auth.GET("/inspections/:id/form", inspectionH.Form)
	auth.PUT("/inspections/:id/form", inspectionH.SaveForm)

	// dashboard & audit
	auth.GET("/dashboard/stats", dashboardH.Stats)
	auth.GET("/audit-logs", admin, auditH.List)

	return r
}
