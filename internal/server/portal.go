package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	clientdomain "github.com/raizsolar/backoffice/internal/client/domain"
	invoicedomain "github.com/raizsolar/backoffice/internal/invoice/domain"
	"github.com/raizsolar/backoffice/pkg/db/pagination"
)

func (s *Server) GetOwnProfile(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.clientSvc.Get(c.Request.Context(), principal.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// UpdateOwnProfile accepts only contact fields. Billing terms stay under
// operator control.
func (s *Server) UpdateOwnProfile(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req clientdomain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.clientSvc.UpdateProfile(c.Request.Context(), principal.ID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetOwnStatement(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.statementSvc.Build(c.Request.Context(), principal.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListOwnInvoices(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	filter := invoicedomain.ListInvoiceFilter{
		ClientID: principal.ID,
		Month:    c.Query("month"),
		Status:   c.Query("status"),
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), filter, page)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
