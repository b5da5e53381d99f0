// Package stub 提供 54Links API 合约的内存实现，
// 供离线演示模式和集成测试使用，不持久化任何数据。
package stub

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"links54_client/internal/model"
	"links54_client/internal/util"

	"github.com/gin-gonic/gin"
)

const deletionTokenTTL = 24 * time.Hour

type User struct {
	ID        string
	Name      string
	Token     string
	Headline  string
	About     string
	Skills    []string
	Languages []string
}

// pairKey 连接关系按无序对存储，方向信息由 requesterID 保留
func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

type connection struct {
	ID          string
	RequesterID string
	TargetID    string
	Status      string // pending | connected
	Reason      *string
	Message     *string
}

type likeKey struct {
	EntityType string
	EntityID   string
}

type Server struct {
	mu sync.Mutex

	users          map[string]*User // by ID
	tokens         map[string]string
	connections    map[string]*connection // by pairKey
	meetings       []model.Meeting
	likeCounts     map[likeKey]int
	likedBy        map[likeKey]map[string]bool
	comments       map[likeKey][]model.Comment
	settings       map[string]settingsWire
	reports        []model.Report
	blocks         map[string]map[string]bool // blocker -> blocked
	deletionTokens map[string]deletionToken
	deleted        map[string]bool
	unread         map[string]model.UnreadCounts
	projects       map[string]model.FundingProject
	needs          map[string]model.Need

	seq int
}

type deletionToken struct {
	UserID   string
	IssuedAt time.Time
}

// settingsWire 与线上一致：notifications 以 JSON 字符串存取
type settingsWire struct {
	Language      string `json:"language,omitempty"`
	Visibility    string `json:"visibility,omitempty"`
	Notifications string `json:"notifications"`
}

func NewServer() *Server {
	s := &Server{
		users:          make(map[string]*User),
		tokens:         make(map[string]string),
		connections:    make(map[string]*connection),
		likeCounts:     make(map[likeKey]int),
		likedBy:        make(map[likeKey]map[string]bool),
		comments:       make(map[likeKey][]model.Comment),
		settings:       make(map[string]settingsWire),
		blocks:         make(map[string]map[string]bool),
		deletionTokens: make(map[string]deletionToken),
		deleted:        make(map[string]bool),
		unread:         make(map[string]model.UnreadCounts),
		projects:       make(map[string]model.FundingProject),
		needs:          make(map[string]model.Need),
	}
	s.seed()
	return s
}

// SeedUser 注册用户并返回其 token（测试用）
func (s *Server) SeedUser(id, name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := "token-" + id
	s.users[id] = &User{ID: id, Name: name, Token: token}
	s.tokens[token] = id
	return token
}

// SetUnread 预置未读计数（测试用）
func (s *Server) SetUnread(userID string, counts model.UnreadCounts) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unread[userID] = counts
}

func (s *Server) seed() {
	demo := []*User{
		{ID: "u1", Name: "Amina Diallo", Token: "demo-token", Headline: "Founder @ Dakar Textiles",
			Skills: []string{"trade", "logistics"}, Languages: []string{"fr", "en"}},
		{ID: "u2", Name: "Kwame Mensah", Headline: "Angel investor",
			Skills: []string{"fintech"}, Languages: []string{"en"}},
		{ID: "u3", Name: "Li Wei", Headline: "Import/export consultant",
			Skills: []string{"sourcing", "negotiation"}, Languages: []string{"zh", "en"}},
	}
	for _, u := range demo {
		s.users[u.ID] = u
		if u.Token != "" {
			s.tokens[u.Token] = u.ID
		}
	}

	s.projects["p1"] = model.FundingProject{
		ID: "p1", Title: "Solar kiosks for Kumasi markets", OwnerID: "u2",
		OwnerName: "Kwame Mensah", GoalAmount: 50000, Raised: 18200, Currency: "USD",
		SupportsNum: 42,
	}
	s.needs["n1"] = model.Need{
		ID: "n1", Title: "Customs broker needed in Mombasa", OwnerID: "u3",
		OwnerName: "Li Wei", Urgency: "high", Categories: []string{"logistics"},
	}
	s.unread["u1"] = model.UnreadCounts{Supports: 2, Contacts: 1}
}

func (s *Server) nextID(prefix string) string {
	s.seq++
	return prefix + "-" + strconv.Itoa(s.seq)
}

// authUser 解析 bearer token，匿名返回 nil
func (s *Server) authUser(c *gin.Context) *User {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" || token == header {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.tokens[token]
	if !ok || s.deleted[id] {
		return nil
	}
	return s.users[id]
}

func (s *Server) requireAuth(c *gin.Context) *User {
	user := s.authUser(c)
	if user == nil {
		util.Unauthorized(c)
		c.Abort()
	}
	return user
}

// Router 组装 gin 路由；gin.ReleaseMode 由调用方按需设置
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/connections/requests", s.handleSendConnectionRequest)
	router.DELETE("/connections/:id", s.handleRemoveConnection)

	router.POST("/meeting-requests", s.handleCreateMeeting)
	router.GET("/meeting-requests", s.handleListMeetings)

	router.GET("/users/:id/public", s.handlePublicProfile)
	router.POST("/users/:id/block", s.handleBlock)
	router.DELETE("/users/:id/block", s.handleUnblock)

	router.POST("/reports", s.handleReport)

	router.GET("/funding/projects/:id", s.handleFundingProject)
	router.GET("/needs/:id", s.handleNeed)

	router.GET("/social/:type/:id/like", s.handleLikeStatus)
	router.POST("/social/:type/:id/like", s.handleToggleLike)
	router.GET("/social/:type/:id/comments", s.handleComments)

	router.GET("/user/settings", s.handleGetSettings)
	router.PUT("/user/settings", s.handlePutSettings)

	router.POST("/auth/delete-account", s.handleRequestDeletion)
	router.POST("/auth/delete-account/:token", s.handleConfirmDeletion)

	router.GET("/notifications/unread-counts", s.handleUnreadCounts)

	return router
}
