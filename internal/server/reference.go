package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListPaymentTypes(c *gin.Context) {
	rows, err := s.refCache.PaymentTypes(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func (s *Server) ListRevenueTypes(c *gin.Context) {
	rows, err := s.refCache.RevenueTypes(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func (s *Server) ListExpenseCategories(c *gin.Context) {
	rows, err := s.refCache.ExpenseCategories(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func (s *Server) ListCurrencies(c *gin.Context) {
	rows, err := s.refCache.Currencies(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func (s *Server) RefreshReference(c *gin.Context) {
	if err := s.refCache.Refresh(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
