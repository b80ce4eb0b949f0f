package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/gatoke/agencyledger/internal/account"
	accountdomain "github.com/gatoke/agencyledger/internal/account/domain"
	"github.com/gatoke/agencyledger/internal/candidate"
	candidatedomain "github.com/gatoke/agencyledger/internal/candidate/domain"
	"github.com/gatoke/agencyledger/internal/config"
	"github.com/gatoke/agencyledger/internal/employee"
	employeedomain "github.com/gatoke/agencyledger/internal/employee/domain"
	"github.com/gatoke/agencyledger/internal/ledger"
	ledgerdomain "github.com/gatoke/agencyledger/internal/ledger/domain"
	obsmiddleware "github.com/gatoke/agencyledger/internal/observability/logger"
	obsmetrics "github.com/gatoke/agencyledger/internal/observability/metrics"
	"github.com/gatoke/agencyledger/internal/posting"
	postingdomain "github.com/gatoke/agencyledger/internal/posting/domain"
	"github.com/gatoke/agencyledger/internal/receipt"
	receiptdomain "github.com/gatoke/agencyledger/internal/receipt/domain"
	"github.com/gatoke/agencyledger/internal/reference"
	"github.com/gatoke/agencyledger/internal/supplier"
	supplierdomain "github.com/gatoke/agencyledger/internal/supplier/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	account.Module,
	ledger.Module,
	receipt.Module,
	posting.Module,
	candidate.Module,
	employee.Module,
	supplier.Module,
	reference.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, m *obsmetrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Log:             log,
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(m))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, m *obsmetrics.Metrics) *gin.Engine {
	return NewEngine(log, m)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
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
	engine       *gin.Engine
	cfg          config.Config
	db           *gorm.DB
	genID        *snowflake.Node
	accountSvc   accountdomain.Service
	ledgerSvc    ledgerdomain.Service
	receiptSvc   receiptdomain.Service
	postingSvc   postingdomain.Service
	candidateSvc candidatedomain.Service
	employeeSvc  employeedomain.Service
	supplierSvc  supplierdomain.Service
	refCache     *reference.Cache
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DB           *gorm.DB
	GenID        *snowflake.Node
	AccountSvc   accountdomain.Service
	LedgerSvc    ledgerdomain.Service
	ReceiptSvc   receiptdomain.Service
	PostingSvc   postingdomain.Service
	CandidateSvc candidatedomain.Service
	EmployeeSvc  employeedomain.Service
	SupplierSvc  supplierdomain.Service
	RefCache     *reference.Cache
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		genID:        p.GenID,
		accountSvc:   p.AccountSvc,
		ledgerSvc:    p.LedgerSvc,
		receiptSvc:   p.ReceiptSvc,
		postingSvc:   p.PostingSvc,
		candidateSvc: p.CandidateSvc,
		employeeSvc:  p.EmployeeSvc,
		supplierSvc:  p.SupplierSvc,
		refCache:     p.RefCache,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Accounts --------
	api.GET("/accounts", s.ListAccounts)
	api.POST("/accounts", s.CreateAccount)
	api.GET("/accounts/:id", s.GetAccountByID)
	api.PATCH("/accounts/:id", s.UpdateAccount)
	api.DELETE("/accounts/:id", s.DeleteAccount)

	// -------- Journal --------
	api.GET("/journal", s.ListJournal)
	api.GET("/journal/:id", s.GetJournalEntryByID)
	api.POST("/journal/:id/reverse", s.ReverseJournalEntry)

	// -------- Receipts --------
	api.GET("/receipts", s.ListReceipts)
	api.GET("/receipts/:number", s.GetReceiptByNumber)

	// -------- Transactions --------
	api.POST("/payments/candidate", s.CreateCandidatePayment)
	api.GET("/payments/candidate", s.ListCandidatePayments)
	api.POST("/payments/salary", s.CreateSalaryPayment)
	api.GET("/payments/salary", s.ListSalaryPayments)
	api.POST("/revenues/manual", s.CreateManualRevenue)
	api.GET("/revenues/manual", s.ListManualRevenues)
	api.POST("/expenses", s.CreateExpense)
	api.GET("/expenses", s.ListExpenses)

	// -------- Registries --------
	api.GET("/candidates", s.ListCandidates)
	api.POST("/candidates", s.CreateCandidate)
	api.GET("/candidates/:id", s.GetCandidateByID)
	api.GET("/employees", s.ListEmployees)
	api.POST("/employees", s.CreateEmployee)
	api.GET("/employees/:id", s.GetEmployeeByID)
	api.GET("/suppliers", s.ListSuppliers)
	api.POST("/suppliers", s.CreateSupplier)
	api.GET("/suppliers/:id", s.GetSupplierByID)

	// -------- Reference data --------
	api.GET("/reference/payment-types", s.ListPaymentTypes)
	api.GET("/reference/revenue-types", s.ListRevenueTypes)
	api.GET("/reference/expense-categories", s.ListExpenseCategories)
	api.GET("/reference/currencies", s.ListCurrencies)
	api.POST("/reference/refresh", s.RefreshReference)

	// -------- Dashboard --------
	api.GET("/dashboard/summary", s.GetDashboardSummary)
}
