package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"links54_client/internal/api"
	"links54_client/internal/config"
	"links54_client/internal/model"
	"links54_client/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, baseURL, token string) *api.Client {
	t.Helper()
	cfg := &config.Config{}
	cfg.API.BaseURL = baseURL
	cfg.API.Timeout = 5 * time.Second
	cfg.API.RequestsPerSec = 1000
	cfg.API.Burst = 1000
	cfg.Auth.Token = token
	return api.NewClient(cfg)
}

func TestResolveActionCoversAllVariants(t *testing.T) {
	cases := []struct {
		status   string
		loggedIn bool
		want     Action
	}{
		{"connected", true, ActionConnected},
		{"accepted", true, ActionConnected},
		{"pending_outgoing", true, ActionPending},
		{"outgoing_pending", true, ActionPending}, // legacy alias renders identically
		{"pending", true, ActionPending},
		{"pending_incoming", true, ActionRespond},
		{"incoming_pending", true, ActionRespond},
		{"none", true, ActionConnect},
		{"none", false, ActionLoginPrompt},
		{"", false, ActionLoginPrompt},
		// unrecognized falls through to the none branch
		{"garbage", true, ActionConnect},
		{"garbage", false, ActionLoginPrompt},
	}

	for _, tc := range cases {
		got := ResolveAction(tc.status, tc.loggedIn)
		assert.Equal(t, tc.want, got, "status=%q loggedIn=%v", tc.status, tc.loggedIn)
	}
}

func TestResolveActionIsPure(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, ActionPending, ResolveAction("outgoing_pending", true))
	}
}

func TestSendRequestOptionalFieldsSentAsNull(t *testing.T) {
	var captured map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/connections/requests", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		w.Write([]byte(`{"code":200,"message":"success"}`))
	}))
	defer srv.Close()

	svc := NewConnectionService(testClient(t, srv.URL, "tok"))
	require.NoError(t, svc.SendRequest(context.Background(), "u2", "", ""))

	assert.Equal(t, "null", string(captured["reason"]))
	assert.Equal(t, "null", string(captured["message"]))
	assert.Equal(t, `"u2"`, string(captured["toUserId"]))
}

func TestSendRequestKeepsServerMessageOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":400,"message":"Request already pending"}`))
	}))
	defer srv.Close()

	svc := NewConnectionService(testClient(t, srv.URL, "tok"))
	err := svc.SendRequest(context.Background(), "u2", "networking", "hi")
	require.Error(t, err)
	assert.Equal(t, "Request already pending", api.ErrorMessage(err))
}

func TestSendRequestRequiresLogin(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	svc := NewConnectionService(testClient(t, srv.URL, ""))
	err := svc.SendRequest(context.Background(), "u2", "", "")
	assert.ErrorIs(t, err, util.ErrLoginRequired)
	assert.False(t, called, "anonymous send must not hit the network")
}

func TestControllerSendTransitionsNoneToPendingOutgoing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"message":"success"}`))
	}))
	defer srv.Close()

	svc := NewConnectionService(testClient(t, srv.URL, "tok"))
	ctrl := svc.NewController("u2", "none", "")
	require.Equal(t, model.StatusNone, ctrl.View().Status)

	require.NoError(t, ctrl.Send(context.Background(), "networking", ""))
	assert.Equal(t, model.StatusPendingOutgoing, ctrl.View().Status)
	assert.Equal(t, ActionPending, ctrl.Resolve(true))
}

func TestControllerSendRollsBackOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"code":403,"message":"You cannot connect with this user"}`))
	}))
	defer srv.Close()

	svc := NewConnectionService(testClient(t, srv.URL, "tok"))
	ctrl := svc.NewController("u2", "none", "")

	err := ctrl.Send(context.Background(), "", "")
	require.Error(t, err)
	assert.Equal(t, model.StatusNone, ctrl.View().Status, "failed send must revert to the pre-action status")
	assert.Equal(t, ActionConnect, ctrl.Resolve(true))
}

func TestControllerRemoveTransitionsConnectedToNone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/connections/conn-7", r.URL.Path)
		w.Write([]byte(`{"code":200,"message":"success"}`))
	}))
	defer srv.Close()

	svc := NewConnectionService(testClient(t, srv.URL, "tok"))
	// 资料接口下发的是别名 accepted，入口归一化
	ctrl := svc.NewController("u2", "accepted", "conn-7")
	require.Equal(t, model.StatusConnected, ctrl.View().Status)

	require.NoError(t, ctrl.Remove(context.Background(), "moving on"))
	assert.Equal(t, model.StatusNone, ctrl.View().Status)
	assert.Empty(t, ctrl.View().ConnectionID)
	assert.Equal(t, ActionConnect, ctrl.Resolve(true))
}

func TestControllerRemoveRollsBackOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":404,"message":"Connection not found"}`))
	}))
	defer srv.Close()

	svc := NewConnectionService(testClient(t, srv.URL, "tok"))
	ctrl := svc.NewController("u2", "connected", "conn-7")

	err := ctrl.Remove(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, ConnectionView{Status: model.StatusConnected, ConnectionID: "conn-7"}, ctrl.View())
}

func TestControllerSendRequiresLogin(t *testing.T) {
	svc := NewConnectionService(testClient(t, "http://127.0.0.1:0", ""))
	ctrl := svc.NewController("u2", "none", "")

	err := ctrl.Send(context.Background(), "", "")
	assert.ErrorIs(t, err, util.ErrLoginRequired)
	assert.Equal(t, model.StatusNone, ctrl.View().Status)
}

func TestRemoveSendsNote(t *testing.T) {
	var captured map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/connections/conn-7", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		w.Write([]byte(`{"code":200,"message":"success"}`))
	}))
	defer srv.Close()

	svc := NewConnectionService(testClient(t, srv.URL, "tok"))
	require.NoError(t, svc.Remove(context.Background(), "conn-7", "moving on"))
	assert.Equal(t, "moving on", captured["note"])
}
