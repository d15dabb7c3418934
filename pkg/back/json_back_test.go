package back

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"FleetOps/pkg/xerr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, data interface{}, err error) Response {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Result(c, data, err)
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestResultUnwrapsCodeError(t *testing.T) {
	cause := errors.New("duplicate key")
	err := fmt.Errorf("update: %w", xerr.Wrap(xerr.Conflict, "already active", cause))
	resp := render(t, map[string]int{"n": 1}, err)
	assert.Equal(t, xerr.Conflict, resp.Code)
	assert.Equal(t, "already active", resp.Message)
	assert.NotNil(t, resp.Data)
	assert.ErrorIs(t, err, cause)
}

func TestResultPlainErrorKeepsData(t *testing.T) {
	resp := render(t, map[string]string{"error": "boom"}, errors.New("boom"))
	assert.Equal(t, xerr.InternalServerError, resp.Code)
	assert.Equal(t, xerr.ErrServerError.Message, resp.Message)
	assert.Equal(t, map[string]interface{}{"error": "boom"}, resp.Data)
}
