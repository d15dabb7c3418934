package jwt

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"FleetOps/internal/config"
	"FleetOps/pkg/back"
	"FleetOps/pkg/util/myjwt"
	"FleetOps/pkg/xerr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	config.GetConfig().JwtConfig.Key = "test-key"
	r := gin.New()
	r.GET("/owner", Auth(), RequireRoles("owner"), func(c *gin.Context) {
		back.Success(c, gin.H{"uuid": c.GetString("uuid"), "role": c.GetString("role")})
	})
	return r
}

func call(t *testing.T, r *gin.Engine, token string) back.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/owner", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var resp back.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	resp := call(t, newEngine(), "")
	assert.Equal(t, xerr.Unauthorized, resp.Code)
}

func TestRequireRoles(t *testing.T) {
	r := newEngine()

	owner, err := myjwt.GenerateToken("u-1", "olivia", "owner")
	require.NoError(t, err)
	assert.Equal(t, xerr.OK, call(t, r, owner).Code)

	driver, err := myjwt.GenerateToken("u-2", "dan", "driver")
	require.NoError(t, err)
	assert.Equal(t, xerr.Forbidden, call(t, r, driver).Code)
}
