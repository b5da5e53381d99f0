package service

import (
	"net/http/httptest"
	"testing"
	"time"

	"links54_client/internal/model"
	"links54_client/internal/stub"
	"links54_client/pkg/bus"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnreadPollerPublishesCounts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := stub.NewServer()
	srv.SetUnread("u1", model.UnreadCounts{Supports: 7, Contacts: 3})
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	b := bus.New()
	supports, cancelSupports := b.Subscribe(bus.TopicUnreadSupports)
	contacts, cancelContacts := b.Subscribe(bus.TopicUnreadContacts)
	defer cancelSupports()
	defer cancelContacts()

	unread := NewUnreadService(testClient(t, ts.URL, "demo-token"), b, 10*time.Millisecond)
	unread.Start()
	defer unread.Stop()

	select {
	case ev := <-supports:
		assert.Equal(t, 7, ev.Data)
	case <-time.After(testWait):
		t.Fatal("no supports event published")
	}
	select {
	case ev := <-contacts:
		assert.Equal(t, 3, ev.Data)
	case <-time.After(testWait):
		t.Fatal("no contacts event published")
	}
}

func TestUnreadRefreshNowWithoutStart(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := stub.NewServer()
	srv.SetUnread("u1", model.UnreadCounts{Supports: 1})
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	b := bus.New()
	supports, cancel := b.Subscribe(bus.TopicUnreadSupports)
	defer cancel()

	unread := NewUnreadService(testClient(t, ts.URL, "demo-token"), b, time.Hour)
	unread.RefreshNow()

	select {
	case ev := <-supports:
		assert.Equal(t, 1, ev.Data)
	case <-time.After(testWait):
		t.Fatal("RefreshNow did not publish")
	}
}

func TestUnreadStopIsIdempotent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := stub.NewServer()
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	unread := NewUnreadService(testClient(t, ts.URL, "demo-token"), bus.New(), time.Hour)
	unread.Start()
	unread.Stop()
	require.NotPanics(t, func() { unread.Stop() })
}
