package stub

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"links54_client/internal/api"
	"links54_client/internal/config"
	"links54_client/internal/model"
	"links54_client/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEnv(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv := NewServer()
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return srv, ts
}

func clientFor(t *testing.T, ts *httptest.Server, token string) *api.Client {
	t.Helper()
	cfg := &config.Config{}
	cfg.API.BaseURL = ts.URL
	cfg.API.Timeout = 5 * time.Second
	cfg.API.RequestsPerSec = 1000
	cfg.API.Burst = 1000
	cfg.Auth.Token = token
	return api.NewClient(cfg)
}

func TestConnectionLifecycle(t *testing.T) {
	srv, ts := newEnv(t)
	tokenB := srv.SeedUser("ub", "Fatou Ndiaye")

	alice := clientFor(t, ts, "demo-token") // seeded u1
	bob := clientFor(t, ts, tokenB)
	ctx := context.Background()

	// 发送前双方都是 none
	p, err := alice.GetPublicProfile(ctx, "ub")
	require.NoError(t, err)
	assert.Equal(t, "none", p.ConnectionStatus)

	reason := "networking"
	require.NoError(t, alice.SendConnectionRequest(ctx, model.ConnectionRequest{ToUserID: "ub", Reason: &reason}))

	// 我方视角 pending_outgoing，对方视角 pending_incoming
	p, err = alice.GetPublicProfile(ctx, "ub")
	require.NoError(t, err)
	assert.Equal(t, "pending_outgoing", p.ConnectionStatus)
	assert.Equal(t, service.ActionPending, service.ResolveAction(p.ConnectionStatus, true))

	pb, err := bob.GetPublicProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "pending_incoming", pb.ConnectionStatus)
	assert.Equal(t, service.ActionRespond, service.ResolveAction(pb.ConnectionStatus, true))

	// 重复发送被拒
	err = alice.SendConnectionRequest(ctx, model.ConnectionRequest{ToUserID: "ub"})
	require.Error(t, err)
	assert.Equal(t, "Request already pending", api.ErrorMessage(err))

	// 对方回发视为接受
	require.NoError(t, bob.SendConnectionRequest(ctx, model.ConnectionRequest{ToUserID: "u1"}))
	p, err = alice.GetPublicProfile(ctx, "ub")
	require.NoError(t, err)
	assert.Equal(t, "connected", p.ConnectionStatus)
	require.NotEmpty(t, p.ConnectionID)

	// 移除后回到 none
	require.NoError(t, alice.RemoveConnection(ctx, p.ConnectionID, "no longer relevant"))
	p, err = alice.GetPublicProfile(ctx, "ub")
	require.NoError(t, err)
	assert.Equal(t, "none", p.ConnectionStatus)
}

func TestConnectionGuards(t *testing.T) {
	srv, ts := newEnv(t)
	tokenB := srv.SeedUser("ub", "Fatou Ndiaye")

	alice := clientFor(t, ts, "demo-token")
	bob := clientFor(t, ts, tokenB)
	ctx := context.Background()

	err := alice.SendConnectionRequest(ctx, model.ConnectionRequest{ToUserID: "u1"})
	require.Error(t, err)
	assert.Equal(t, "You cannot connect with yourself", api.ErrorMessage(err))

	err = alice.SendConnectionRequest(ctx, model.ConnectionRequest{ToUserID: "ghost"})
	require.Error(t, err)
	assert.Equal(t, "User not found", api.ErrorMessage(err))

	// 拉黑后不可互发
	require.NoError(t, bob.BlockUser(ctx, "u1"))
	err = alice.SendConnectionRequest(ctx, model.ConnectionRequest{ToUserID: "ub"})
	require.Error(t, err)
	assert.Equal(t, "Interaction not allowed", api.ErrorMessage(err))

	require.NoError(t, bob.UnblockUser(ctx, "u1"))
	require.NoError(t, alice.SendConnectionRequest(ctx, model.ConnectionRequest{ToUserID: "ub"}))
}

func TestMeetingRequestThroughService(t *testing.T) {
	_, ts := newEnv(t)
	alice := clientFor(t, ts, "demo-token")
	svc := service.NewMeetingService(alice, nil, "u1")
	ctx := context.Background()

	form := service.MeetingForm{
		Date:     "2025-03-01",
		Time:     "14:00",
		Title:    "Sourcing sync",
		Mode:     model.ModeVideo,
		Link:     "https://meet.example/abc",
		Duration: 45,
		Timezone: "UTC",
	}
	meeting, err := svc.Submit(ctx, "u2", form)
	require.NoError(t, err)
	assert.NotEmpty(t, meeting.ID)
	assert.Equal(t, 45, meeting.Duration)
	assert.Equal(t, "pending", meeting.Status)

	meetings, fromCache, err := svc.List(ctx, "u2")
	require.NoError(t, err)
	assert.False(t, fromCache)
	require.Len(t, meetings, 1)
	assert.Equal(t, "Sourcing sync", meetings[0].Title)

	// 服务端校验 mode 相关必填
	bad := model.MeetingRequest{
		ToUserID:    "u2",
		Title:       "No link",
		ScheduledAt: "2025-03-01T14:00:00Z",
		Duration:    30,
		Mode:        model.ModeVideo,
	}
	_, err = alice.CreateMeetingRequest(ctx, bad)
	require.Error(t, err)
	assert.Equal(t, "Link is required for video meetings", api.ErrorMessage(err))
}

func TestLikeToggleAuthoritativeCounts(t *testing.T) {
	srv, ts := newEnv(t)
	tokenB := srv.SeedUser("ub", "Fatou Ndiaye")
	alice := clientFor(t, ts, "demo-token")
	bob := clientFor(t, ts, tokenB)
	ctx := context.Background()

	state, err := alice.ToggleLike(ctx, model.EntityMoment, "m1")
	require.NoError(t, err)
	assert.Equal(t, model.LikeState{Liked: true, Count: 1}, state)

	state, err = bob.ToggleLike(ctx, model.EntityMoment, "m1")
	require.NoError(t, err)
	assert.Equal(t, model.LikeState{Liked: true, Count: 2}, state)

	state, err = alice.ToggleLike(ctx, model.EntityMoment, "m1")
	require.NoError(t, err)
	assert.Equal(t, model.LikeState{Liked: false, Count: 1}, state)

	// 匿名可读不可写
	anon := clientFor(t, ts, "")
	state, err = anon.GetLikeStatus(ctx, model.EntityMoment, "m1")
	require.NoError(t, err)
	assert.Equal(t, model.LikeState{Liked: false, Count: 1}, state)

	_, err = anon.ToggleLike(ctx, model.EntityMoment, "m1")
	require.Error(t, err)
}

func TestCommentsAndCounts(t *testing.T) {
	srv, ts := newEnv(t)
	srv.AddComment("need", "n1", model.Comment{UserID: "u2", Text: "Can help with this"})
	srv.AddComment("need", "n1", model.Comment{UserID: "u3", Text: "DM sent"})

	alice := clientFor(t, ts, "demo-token")
	social := service.NewSocialService(alice)

	count, err := social.CommentCount(context.Background(), model.EntityNeed, "n1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSettingsRoundTripThroughService(t *testing.T) {
	_, ts := newEnv(t)
	alice := clientFor(t, ts, "demo-token")
	svc := service.NewSettingsService(alice)
	ctx := context.Background()

	initial, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.True(t, initial.Notifications.EmailOnConnection, "seeded defaults")

	updated := model.Settings{
		Language:   "fr",
		Visibility: "connections_only",
		Notifications: model.NotificationPrefs{
			EmailDigest: true,
		},
	}
	require.NoError(t, svc.Update(ctx, updated))

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, updated, *got)
}

func TestDetailLoadersAgainstStub(t *testing.T) {
	_, ts := newEnv(t)
	alice := clientFor(t, ts, "demo-token")
	details := service.NewDetailService(alice)
	ctx := context.Background()

	pl := details.FundingProjectLoader()
	<-pl.Open(ctx, "p1")
	require.Equal(t, service.PhaseLoaded, pl.Phase())
	assert.Equal(t, "Solar kiosks for Kumasi markets", pl.Data().Title)

	nl := details.NeedLoader()
	<-nl.Open(ctx, "missing")
	assert.Equal(t, service.PhaseError, nl.Phase())
}

func TestAccountDeletionFlow(t *testing.T) {
	srv, ts := newEnv(t)
	alice := clientFor(t, ts, "demo-token")
	ctx := context.Background()

	require.NoError(t, alice.RequestAccountDeletion(ctx))

	srv.mu.Lock()
	var token string
	for tok := range srv.deletionTokens {
		token = tok
	}
	srv.mu.Unlock()
	require.NotEmpty(t, token)

	require.NoError(t, alice.ConfirmAccountDeletion(ctx, token))

	// 删除后 token 失效、账号不可再认证
	err := alice.ConfirmAccountDeletion(ctx, token)
	require.Error(t, err)
	assert.Equal(t, "Invalid deletion link", api.ErrorMessage(err))

	_, err = alice.GetSettings(ctx)
	require.Error(t, err)
}

func TestAccountDeletionTokenExpiry(t *testing.T) {
	srv, ts := newEnv(t)
	alice := clientFor(t, ts, "demo-token")
	ctx := context.Background()

	require.NoError(t, alice.RequestAccountDeletion(ctx))

	srv.mu.Lock()
	var token string
	for tok, dt := range srv.deletionTokens {
		token = tok
		dt.IssuedAt = time.Now().Add(-25 * time.Hour)
		srv.deletionTokens[tok] = dt
	}
	srv.mu.Unlock()

	err := alice.ConfirmAccountDeletion(ctx, token)
	require.Error(t, err)
	assert.Equal(t, "Deletion link expired", api.ErrorMessage(err))
}

func TestReportRequiresTarget(t *testing.T) {
	_, ts := newEnv(t)
	alice := clientFor(t, ts, "demo-token")
	ctx := context.Background()

	err := alice.SubmitReport(ctx, model.Report{Description: "spam"})
	require.Error(t, err)

	require.NoError(t, alice.SubmitReport(ctx, model.Report{
		TargetType:  "moment",
		TargetID:    "m9",
		Description: "spam",
	}))
}
