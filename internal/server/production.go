package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	productiondomain "github.com/raizsolar/backoffice/internal/production/domain"
	"github.com/raizsolar/backoffice/pkg/db/pagination"
)

func (s *Server) RecordProduction(c *gin.Context) {
	plantID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req productiondomain.RecordProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.productionSvc.Record(c.Request.Context(), plantID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListPlantProductions(c *gin.Context) {
	plantID, ok := parseID(c, "id")
	if !ok {
		return
	}

	resp, err := s.productionSvc.ListByPlant(c.Request.Context(), plantID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListProductions(c *gin.Context) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.productionSvc.List(c.Request.Context(), page)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ReviseProduction(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req productiondomain.ReviseProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.productionSvc.Revise(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RemoveProduction(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := s.productionSvc.Remove(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
