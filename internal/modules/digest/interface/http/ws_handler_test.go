package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"FleetOps/internal/config"
	userEntity "FleetOps/internal/modules/user/domain/entity"
	"FleetOps/pkg/util/myjwt"
	"FleetOps/pkg/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubProfiles struct {
	byID map[string]*userEntity.Profile
}

func (s *stubProfiles) GetByID(ctx context.Context, id string) (*userEntity.Profile, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProfiles) GetByEmail(ctx context.Context, email string) (*userEntity.Profile, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProfiles) ListByRoles(ctx context.Context, roles []string) ([]userEntity.Profile, error) {
	return nil, nil
}

func newWsServer(t *testing.T, hub *ws.Hub) string {
	t.Helper()
	config.GetConfig().JwtConfig.Key = "test-key"
	gin.SetMode(gin.TestMode)
	r := gin.New()
	profiles := &stubProfiles{byID: map[string]*userEntity.Profile{
		"p-mech": {ID: "p-mech", Role: userEntity.RoleMechanic},
	}}
	r.GET("/wss", NewWsHandler(hub, profiles).Connect)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/wss"
}

func TestWsConnectRejectsBadToken(t *testing.T) {
	url := newWsServer(t, ws.NewHub())

	_, resp, err := websocket.DefaultDialer.Dial(url+"?token=garbage", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWsConnectRejectsUnknownProfile(t *testing.T) {
	url := newWsServer(t, ws.NewHub())
	token, err := myjwt.GenerateToken("p-gone", "gone", userEntity.RoleMechanic)
	require.NoError(t, err)

	_, resp, err := websocket.DefaultDialer.Dial(url+"?token="+token, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWsConnectReceivesPush(t *testing.T) {
	hub := ws.NewHub()
	url := newWsServer(t, hub)
	token, err := myjwt.GenerateToken("p-mech", "mia", userEntity.RoleMechanic)
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(url+"?token="+token, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Register 在升级之后执行，等连接登记完成
	require.Eventually(t, func() bool { return hub.Online("p-mech") == 1 }, 2*time.Second, 10*time.Millisecond)
	require.True(t, hub.Push("p-mech", "notification", map[string]string{"title": "Trend digest"}))

	var ev ws.Event
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "notification", ev.Type)
}
