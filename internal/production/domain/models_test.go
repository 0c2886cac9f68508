package domain

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindRecordRequest(t *testing.T, body string) (RecordProductionRequest, error) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req RecordProductionRequest
	err := c.ShouldBindJSON(&req)
	return req, err
}

func TestRecordProductionRequest_ZeroKwhBinds(t *testing.T) {
	req, err := bindRecordRequest(t, `{"month":"2025-03","kwh_generated":0}`)
	require.NoError(t, err)
	assert.Equal(t, "2025-03", req.Month)
	assert.Zero(t, req.Kwh)
}

func TestRecordProductionRequest_MonthRequired(t *testing.T) {
	_, err := bindRecordRequest(t, `{"kwh_generated":100}`)
	assert.Error(t, err)
}
