package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	candidatedomain "github.com/gatoke/agencyledger/internal/candidate/domain"
)

type createCandidateRequest struct {
	FullName    string `json:"full_name"`
	Passport    string `json:"passport"`
	Phone       string `json:"phone"`
	Destination string `json:"destination"`
}

func (s *Server) ListCandidates(c *gin.Context) {
	candidates, err := s.candidateSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": candidates})
}

func (s *Server) CreateCandidate(c *gin.Context) {
	var req createCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	candidate, err := s.candidateSvc.Create(c.Request.Context(), candidatedomain.CreateCandidateRequest{
		FullName:    req.FullName,
		Passport:    req.Passport,
		Phone:       req.Phone,
		Destination: req.Destination,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": candidate})
}

func (s *Server) GetCandidateByID(c *gin.Context) {
	candidate, err := s.candidateSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": candidate})
}
