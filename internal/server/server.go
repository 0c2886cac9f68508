package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/raizsolar/backoffice/internal/auth"
	authdomain "github.com/raizsolar/backoffice/internal/auth/domain"
	"github.com/raizsolar/backoffice/internal/auth/session"
	"github.com/raizsolar/backoffice/internal/client"
	clientdomain "github.com/raizsolar/backoffice/internal/client/domain"
	"github.com/raizsolar/backoffice/internal/config"
	"github.com/raizsolar/backoffice/internal/dashboard"
	dashboarddomain "github.com/raizsolar/backoffice/internal/dashboard/domain"
	"github.com/raizsolar/backoffice/internal/distribution"
	distributiondomain "github.com/raizsolar/backoffice/internal/distribution/domain"
	"github.com/raizsolar/backoffice/internal/invoice"
	invoicedomain "github.com/raizsolar/backoffice/internal/invoice/domain"
	"github.com/raizsolar/backoffice/internal/ledger"
	ledgerdomain "github.com/raizsolar/backoffice/internal/ledger/domain"
	"github.com/raizsolar/backoffice/internal/observability"
	obslogger "github.com/raizsolar/backoffice/internal/observability/logger"
	obsmetrics "github.com/raizsolar/backoffice/internal/observability/metrics"
	obstracing "github.com/raizsolar/backoffice/internal/observability/tracing"
	"github.com/raizsolar/backoffice/internal/operator"
	operatordomain "github.com/raizsolar/backoffice/internal/operator/domain"
	"github.com/raizsolar/backoffice/internal/plant"
	plantdomain "github.com/raizsolar/backoffice/internal/plant/domain"
	"github.com/raizsolar/backoffice/internal/production"
	productiondomain "github.com/raizsolar/backoffice/internal/production/domain"
	"github.com/raizsolar/backoffice/internal/ratelimit"
	"github.com/raizsolar/backoffice/internal/statement"
	statementdomain "github.com/raizsolar/backoffice/internal/statement/domain"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	auth.Module,
	plant.Module,
	client.Module,
	distribution.Module,
	ledger.Module,
	production.Module,
	invoice.Module,
	statement.Module,
	operator.Module,
	dashboard.Module,
	ratelimit.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, log *zap.Logger) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log))
	r.Use(obstracing.GinMiddleware(obsCfg.ServiceName))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, log *zap.Logger) *gin.Engine {
	return NewEngine(obsCfg, log)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	db              *gorm.DB
	genID           *snowflake.Node
	sessions        *session.Manager
	authSvc         authdomain.Service
	plantSvc        plantdomain.Service
	clientSvc       clientdomain.Service
	distributionSvc distributiondomain.Service
	productionSvc   productiondomain.Service
	invoiceSvc      invoicedomain.Service
	statementSvc    statementdomain.Service
	operatorSvc     operatordomain.Service
	dashboardSvc    dashboarddomain.Service
	ledgerSvc       ledgerdomain.Service
	loginLimiter    *ratelimit.TokenBucket
	obsMetrics      *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	DB              *gorm.DB
	GenID           *snowflake.Node
	Sessions        *session.Manager
	AuthSvc         authdomain.Service
	PlantSvc        plantdomain.Service
	ClientSvc       clientdomain.Service
	DistributionSvc distributiondomain.Service
	ProductionSvc   productiondomain.Service
	InvoiceSvc      invoicedomain.Service
	StatementSvc    statementdomain.Service
	OperatorSvc     operatordomain.Service
	DashboardSvc    dashboarddomain.Service
	LedgerSvc       ledgerdomain.Service
	LoginLimiter    *ratelimit.TokenBucket `optional:"true"`
	ObsMetrics      *obsmetrics.Metrics    `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		db:              p.DB,
		genID:           p.GenID,
		sessions:        p.Sessions,
		authSvc:         p.AuthSvc,
		plantSvc:        p.PlantSvc,
		clientSvc:       p.ClientSvc,
		distributionSvc: p.DistributionSvc,
		productionSvc:   p.ProductionSvc,
		invoiceSvc:      p.InvoiceSvc,
		statementSvc:    p.StatementSvc,
		operatorSvc:     p.OperatorSvc,
		dashboardSvc:    p.DashboardSvc,
		ledgerSvc:       p.LedgerSvc,
		loginLimiter:    p.LoginLimiter,
		obsMetrics:      p.ObsMetrics,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()
	svc.registerPortalRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/login", s.LoginRateLimit(), s.Login)
	auth.POST("/client-login", s.LoginRateLimit(), s.ClientLogin)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")
	api.Use(s.AuthRequired())
	api.Use(s.OperatorRequired())

	api.GET("/dashboard", s.GetDashboard)

	// -------- Plants --------
	api.GET("/plants", s.ListPlants)
	api.POST("/plants", s.CreatePlant)
	api.GET("/plants/:id", s.GetPlantByID)
	api.PATCH("/plants/:id", s.UpdatePlant)
	api.DELETE("/plants/:id", s.DeletePlant)

	// -------- Distributions --------
	api.GET("/plants/:id/distributions", s.ListDistributions)
	api.PUT("/plants/:id/distributions", s.SetDistributions)

	// -------- Productions --------
	api.GET("/plants/:id/productions", s.ListPlantProductions)
	api.POST("/plants/:id/productions", s.RecordProduction)
	api.GET("/productions", s.ListProductions)
	api.PATCH("/productions/:id", s.ReviseProduction)
	api.DELETE("/productions/:id", s.RemoveProduction)

	// -------- Clients --------
	api.GET("/clients", s.ListClients)
	api.POST("/clients", s.CreateClient)
	api.GET("/clients/by-uc/:uc", s.GetClientByUCNumber)
	api.GET("/clients/:id", s.GetClientByID)
	api.PATCH("/clients/:id", s.UpdateClient)
	api.DELETE("/clients/:id", s.DeleteClient)
	api.GET("/clients/:id/statement", s.GetClientStatement)
	api.GET("/clients/:id/credit-entries", s.ListClientCreditEntries)
	api.POST("/clients/:id/adjust-credits", s.AdjustClientCredits)

	// -------- Invoices --------
	api.GET("/invoices", s.ListInvoices)
	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.PATCH("/invoices/:id", s.UpdateInvoice)
	api.DELETE("/invoices/:id", s.DeleteInvoice)
	api.GET("/invoices/:id/pdf", s.RenderInvoicePDF)

	// -------- Operators --------
	api.GET("/operators", s.ListOperators)
	api.POST("/operators", s.CreateOperator)
	api.GET("/operators/:id", s.GetOperatorByID)
	api.PATCH("/operators/:id", s.UpdateOperator)
	api.DELETE("/operators/:id", s.DeleteOperator)
}

// Portal routes serve the logged-in client's own data.
func (s *Server) registerPortalRoutes() {
	portal := s.engine.Group("/portal")
	portal.Use(s.AuthRequired())
	portal.Use(s.ClientRequired())

	portal.GET("/me", s.GetOwnProfile)
	portal.PATCH("/profile", s.UpdateOwnProfile)
	portal.GET("/statement", s.GetOwnStatement)
	portal.GET("/invoices", s.ListOwnInvoices)
}
