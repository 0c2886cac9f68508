package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	distributiondomain "github.com/raizsolar/backoffice/internal/distribution/domain"
)

func (s *Server) ListDistributions(c *gin.Context) {
	plantID, ok := parseID(c, "id")
	if !ok {
		return
	}

	resp, err := s.distributionSvc.ListByPlant(c.Request.Context(), plantID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SetDistributions(c *gin.Context) {
	plantID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req distributiondomain.SetDistributionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.distributionSvc.Set(c.Request.Context(), plantID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
