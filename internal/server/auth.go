package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authdomain "github.com/raizsolar/backoffice/internal/auth/domain"
)

func (s *Server) Login(c *gin.Context) {
	var req authdomain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	req.UserAgent = c.Request.UserAgent()
	req.IP = c.ClientIP()

	principal, token, expiresAt, err := s.authSvc.LoginOperator(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.sessions.Set(c, token, expiresAt)
	c.JSON(http.StatusOK, gin.H{"data": principal})
}

func (s *Server) ClientLogin(c *gin.Context) {
	var req authdomain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	req.UserAgent = c.Request.UserAgent()
	req.IP = c.ClientIP()

	principal, token, expiresAt, err := s.authSvc.LoginClient(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.sessions.Set(c, token, expiresAt)
	c.JSON(http.StatusOK, gin.H{"data": principal})
}

func (s *Server) Logout(c *gin.Context) {
	if token, ok := s.sessions.ReadToken(c); ok {
		_ = s.authSvc.Logout(c.Request.Context(), token)
	}
	s.sessions.Clear(c)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) Me(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": principal})
}
