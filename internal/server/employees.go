package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	employeedomain "github.com/gatoke/agencyledger/internal/employee/domain"
)

type createEmployeeRequest struct {
	FullName      string `json:"full_name"`
	Role          string `json:"role"`
	Phone         string `json:"phone"`
	MonthlySalary int64  `json:"monthly_salary"`
}

func (s *Server) ListEmployees(c *gin.Context) {
	employees, err := s.employeeSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": employees})
}

func (s *Server) CreateEmployee(c *gin.Context) {
	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	employee, err := s.employeeSvc.Create(c.Request.Context(), employeedomain.CreateEmployeeRequest{
		FullName:      req.FullName,
		Role:          req.Role,
		Phone:         req.Phone,
		MonthlySalary: req.MonthlySalary,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": employee})
}

func (s *Server) GetEmployeeByID(c *gin.Context) {
	employee, err := s.employeeSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": employee})
}
