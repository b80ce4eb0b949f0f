package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	postingdomain "github.com/gatoke/agencyledger/internal/posting/domain"
	receiptdomain "github.com/gatoke/agencyledger/internal/receipt/domain"
)

type createCandidatePaymentRequest struct {
	CandidateID   snowflake.ID `json:"candidate_id"`
	PaymentTypeID snowflake.ID `json:"payment_type_id"`
	AccountID     snowflake.ID `json:"account_id"`
	Amount        int64        `json:"amount"`
	Date          string       `json:"date"`
}

type createSalaryPaymentRequest struct {
	EmployeeID snowflake.ID `json:"employee_id"`
	Month      string       `json:"month"`
	AccountID  snowflake.ID `json:"account_id"`
	Amount     int64        `json:"amount"`
	Date       string       `json:"date"`
}

type createManualRevenueRequest struct {
	RevenueTypeID snowflake.ID   `json:"revenue_type_id"`
	AccountID     snowflake.ID   `json:"account_id"`
	Amount        int64          `json:"amount"`
	Date          string         `json:"date"`
	Description   string         `json:"description"`
	Metadata      map[string]any `json:"metadata"`
	IssueReceipt  bool           `json:"issue_receipt"`
}

type createExpenseRequest struct {
	CategoryID      snowflake.ID   `json:"category_id"`
	BeneficiaryType string         `json:"beneficiary_type"`
	BeneficiaryID   snowflake.ID   `json:"beneficiary_id"`
	AccountID       snowflake.ID   `json:"account_id"`
	Amount          int64          `json:"amount"`
	Date            string         `json:"date"`
	Description     string         `json:"description"`
	Metadata        map[string]any `json:"metadata"`
	IssueReceipt    bool           `json:"issue_receipt"`
}

func (s *Server) CreateCandidatePayment(c *gin.Context) {
	var req createCandidatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	date, err := parseDateField(req.Date)
	if err != nil {
		AbortWithError(c, newValidationError("date", "invalid_date", "invalid date"))
		return
	}

	result, err := s.postingSvc.CreateCandidatePayment(c.Request.Context(), postingdomain.CreateCandidatePaymentRequest{
		CandidateID:   req.CandidateID,
		PaymentTypeID: req.PaymentTypeID,
		AccountID:     req.AccountID,
		Amount:        req.Amount,
		Date:          date,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": result})
}

func (s *Server) ListCandidatePayments(c *gin.Context) {
	payments, err := s.postingSvc.ListCandidatePayments(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": payments})
}

func (s *Server) CreateSalaryPayment(c *gin.Context) {
	var req createSalaryPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	date, err := parseDateField(req.Date)
	if err != nil {
		AbortWithError(c, newValidationError("date", "invalid_date", "invalid date"))
		return
	}

	result, err := s.postingSvc.CreateSalaryPayment(c.Request.Context(), postingdomain.CreateSalaryPaymentRequest{
		EmployeeID: req.EmployeeID,
		Month:      strings.TrimSpace(req.Month),
		AccountID:  req.AccountID,
		Amount:     req.Amount,
		Date:       date,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": result})
}

func (s *Server) ListSalaryPayments(c *gin.Context) {
	payments, err := s.postingSvc.ListSalaryPayments(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": payments})
}

func (s *Server) CreateManualRevenue(c *gin.Context) {
	var req createManualRevenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	date, err := parseDateField(req.Date)
	if err != nil {
		AbortWithError(c, newValidationError("date", "invalid_date", "invalid date"))
		return
	}

	result, err := s.postingSvc.CreateManualRevenue(c.Request.Context(), postingdomain.CreateManualRevenueRequest{
		RevenueTypeID: req.RevenueTypeID,
		AccountID:     req.AccountID,
		Amount:        req.Amount,
		Date:          date,
		Description:   strings.TrimSpace(req.Description),
		Metadata:      req.Metadata,
		IssueReceipt:  req.IssueReceipt,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": result})
}

func (s *Server) ListManualRevenues(c *gin.Context) {
	revenues, err := s.postingSvc.ListManualRevenues(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": revenues})
}

func (s *Server) CreateExpense(c *gin.Context) {
	var req createExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	date, err := parseDateField(req.Date)
	if err != nil {
		AbortWithError(c, newValidationError("date", "invalid_date", "invalid date"))
		return
	}

	result, err := s.postingSvc.CreateExpense(c.Request.Context(), postingdomain.CreateExpenseRequest{
		CategoryID:      req.CategoryID,
		BeneficiaryType: receiptdomain.PayerType(strings.ToUpper(strings.TrimSpace(req.BeneficiaryType))),
		BeneficiaryID:   req.BeneficiaryID,
		AccountID:       req.AccountID,
		Amount:          req.Amount,
		Date:            date,
		Description:     strings.TrimSpace(req.Description),
		Metadata:        req.Metadata,
		IssueReceipt:    req.IssueReceipt,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": result})
}

func (s *Server) ListExpenses(c *gin.Context) {
	expenses, err := s.postingSvc.ListExpenses(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": expenses})
}

func parseDateField(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidRequest
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidRequest
}
