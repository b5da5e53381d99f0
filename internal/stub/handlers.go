package stub

import (
	"encoding/json"
	"net/http"
	"time"

	"links54_client/internal/model"
	"links54_client/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) handleSendConnectionRequest(c *gin.Context) {
	user := s.requireAuth(c)
	if user == nil {
		return
	}

	var req model.ConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.users[req.ToUserID]
	if !ok || s.deleted[target.ID] {
		util.Error(c, http.StatusNotFound, "User not found")
		return
	}
	if target.ID == user.ID {
		util.BadRequest(c, "You cannot connect with yourself")
		return
	}
	if s.blocks[target.ID][user.ID] || s.blocks[user.ID][target.ID] {
		util.Error(c, http.StatusForbidden, "Interaction not allowed")
		return
	}

	key := pairKey(user.ID, target.ID)
	if existing, ok := s.connections[key]; ok {
		switch {
		case existing.Status == "connected":
			util.BadRequest(c, "Already connected")
			return
		case existing.RequesterID == user.ID:
			util.BadRequest(c, "Request already pending")
			return
		default:
			// 对方已先发申请，互发视为接受
			existing.Status = "connected"
			util.Success(c, existing.toDTO())
			return
		}
	}

	conn := &connection{
		ID:          s.nextID("conn"),
		RequesterID: user.ID,
		TargetID:    target.ID,
		Status:      "pending",
		Reason:      req.Reason,
		Message:     req.Message,
	}
	s.connections[key] = conn

	util.Created(c, conn.toDTO())
}

func (conn *connection) toDTO() gin.H {
	return gin.H{
		"id":     conn.ID,
		"from":   conn.RequesterID,
		"to":     conn.TargetID,
		"status": conn.Status,
	}
}

func (s *Server) handleRemoveConnection(c *gin.Context) {
	user := s.requireAuth(c)
	if user == nil {
		return
	}

	var body model.RemoveConnectionRequest
	_ = c.ShouldBindJSON(&body)

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, conn := range s.connections {
		if conn.ID != c.Param("id") {
			continue
		}
		if conn.RequesterID != user.ID && conn.TargetID != user.ID {
			util.Error(c, http.StatusForbidden, "Not your connection")
			return
		}
		delete(s.connections, key)
		util.Success(c, gin.H{"removed": true, "note": body.Note})
		return
	}

	util.NotFound(c)
}

func (s *Server) handleCreateMeeting(c *gin.Context) {
	user := s.requireAuth(c)
	if user == nil {
		return
	}

	var req model.MeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	if req.Title == "" {
		util.BadRequest(c, "Title is required")
		return
	}
	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		util.BadRequest(c, "scheduledAt must be an ISO-8601 datetime")
		return
	}
	if !model.ValidDuration(req.Duration) {
		util.BadRequest(c, "Invalid duration")
		return
	}
	switch req.Mode {
	case model.ModeVideo:
		if req.Link == nil || *req.Link == "" {
			util.BadRequest(c, "Link is required for video meetings")
			return
		}
	case model.ModeInPerson:
		if req.Location == nil || *req.Location == "" {
			util.BadRequest(c, "Location is required for in-person meetings")
			return
		}
	default:
		util.BadRequest(c, "Invalid meeting mode")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[req.ToUserID]; !ok {
		util.Error(c, http.StatusNotFound, "User not found")
		return
	}

	meeting := model.Meeting{
		ID:          uuid.New().String(),
		FromUserID:  user.ID,
		ToUserID:    req.ToUserID,
		Title:       req.Title,
		ScheduledAt: scheduledAt,
		Duration:    req.Duration,
		Timezone:    req.Timezone,
		Mode:        req.Mode,
		Status:      "pending",
		CreatedAt:   time.Now().UTC(),
	}
	if req.Agenda != nil {
		meeting.Agenda = *req.Agenda
	}
	if req.Link != nil {
		meeting.Link = *req.Link
	}
	if req.Location != nil {
		meeting.Location = *req.Location
	}
	s.meetings = append(s.meetings, meeting)

	util.Created(c, meeting)
}

func (s *Server) handleListMeetings(c *gin.Context) {
	user := s.requireAuth(c)
	if user == nil {
		return
	}
	other := c.Query("userId")

	s.mu.Lock()
	defer s.mu.Unlock()

	result := []model.Meeting{}
	for _, m := range s.meetings {
		mine := m.FromUserID == user.ID || m.ToUserID == user.ID
		if !mine {
			continue
		}
		if other != "" && m.FromUserID != other && m.ToUserID != other {
			continue
		}
		result = append(result, m)
	}
	util.Success(c, result)
}

func (s *Server) handlePublicProfile(c *gin.Context) {
	viewer := s.authUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.users[c.Param("id")]
	if !ok || s.deleted[target.ID] {
		util.NotFound(c)
		return
	}

	profile := model.Profile{
		ID:               target.ID,
		Name:             target.Name,
		Headline:         target.Headline,
		About:            target.About,
		Skills:           target.Skills,
		Languages:        target.Languages,
		ConnectionStatus: "none",
	}

	if viewer != nil && viewer.ID != target.ID {
		if conn, ok := s.connections[pairKey(viewer.ID, target.ID)]; ok {
			profile.ConnectionID = conn.ID
			switch {
			case conn.Status == "connected":
				profile.ConnectionStatus = "connected"
			case conn.RequesterID == viewer.ID:
				profile.ConnectionStatus = "pending_outgoing"
			default:
				profile.ConnectionStatus = "pending_incoming"
			}
		}
		profile.Block = model.BlockState{
			IBlockedThem:  s.blocks[viewer.ID][target.ID],
			TheyBlockedMe: s.blocks[target.ID][viewer.ID],
		}
		for _, m := range s.meetings {
			if (m.FromUserID == viewer.ID && m.ToUserID == target.ID) ||
				(m.FromUserID == target.ID && m.ToUserID == viewer.ID) {
				profile.Meetings = append(profile.Meetings, m)
			}
		}
	}

	util.Success(c, profile)
}

func (s *Server) handleBlock(c *gin.Context) {
	user := s.requireAuth(c)
	if user == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	targetID := c.Param("id")
	if _, ok := s.users[targetID]; !ok {
		util.NotFound(c)
		return
	}
	if s.blocks[user.ID] == nil {
		s.blocks[user.ID] = make(map[string]bool)
	}
	s.blocks[user.ID][targetID] = true
	util.Success(c, gin.H{"blocked": true})
}

func (s *Server) handleUnblock(c *gin.Context) {
	user := s.requireAuth(c)
	if user == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blocks[user.ID], c.Param("id"))
	util.Success(c, gin.H{"blocked": false})
}

func (s *Server) handleReport(c *gin.Context) {
	user := s.requireAuth(c)
	if user == nil {
		return
	}

	var report model.Report
	if err := c.ShouldBindJSON(&report); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	if report.TargetType == "" || report.TargetID == "" {
		util.BadRequest(c, "targetType and targetId are required")
		return
	}

	s.mu.Lock()
	s.reports = append(s.reports, report)
	s.mu.Unlock()

	util.Created(c, gin.H{"received": true})
}

func (s *Server) handleFundingProject(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, ok := s.projects[c.Param("id")]
	if !ok {
		util.NotFound(c)
		return
	}
	util.Success(c, project)
}

func (s *Server) handleNeed(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	need, ok := s.needs[c.Param("id")]
	if !ok {
		util.NotFound(c)
		return
	}
	util.Success(c, need)
}

func (s *Server) handleLikeStatus(c *gin.Context) {
	viewer := s.authUser(c)
	key := likeKey{EntityType: c.Param("type"), EntityID: c.Param("id")}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := model.LikeState{Count: s.likeCounts[key]}
	if viewer != nil {
		state.Liked = s.likedBy[key][viewer.ID]
	}
	util.Success(c, state)
}

func (s *Server) handleToggleLike(c *gin.Context) {
	user := s.requireAuth(c)
	if user == nil {
		return
	}
	key := likeKey{EntityType: c.Param("type"), EntityID: c.Param("id")}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.likedBy[key] == nil {
		s.likedBy[key] = make(map[string]bool)
	}
	if s.likedBy[key][user.ID] {
		delete(s.likedBy[key], user.ID)
		s.likeCounts[key]--
		if s.likeCounts[key] < 0 {
			s.likeCounts[key] = 0
		}
	} else {
		s.likedBy[key][user.ID] = true
		s.likeCounts[key]++
	}

	util.Success(c, model.LikeState{
		Liked: s.likedBy[key][user.ID],
		Count: s.likeCounts[key],
	})
}

func (s *Server) handleComments(c *gin.Context) {
	key := likeKey{EntityType: c.Param("type"), EntityID: c.Param("id")}

	s.mu.Lock()
	defer s.mu.Unlock()

	comments := s.comments[key]
	if comments == nil {
		comments = []model.Comment{}
	}
	util.Success(c, comments)
}

// AddComment 预置评论（测试与演示数据用）
func (s *Server) AddComment(entityType, entityID string, comment model.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := likeKey{EntityType: entityType, EntityID: entityID}
	if comment.ID == "" {
		comment.ID = s.nextID("comment")
	}
	s.comments[key] = append(s.comments[key], comment)
}

func (s *Server) handleGetSettings(c *gin.Context) {
	user := s.requireAuth(c)
	if user == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wire, ok := s.settings[user.ID]
	if !ok {
		wire = settingsWire{Notifications: `{"emailOnConnection":true,"emailOnMeeting":true,"emailDigest":false,"pushEnabled":true}`}
	}
	util.Success(c, wire)
}

func (s *Server) handlePutSettings(c *gin.Context) {
	user := s.requireAuth(c)
	if user == nil {
		return
	}

	var wire settingsWire
	if err := c.ShouldBindJSON(&wire); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	if wire.Notifications != "" && !json.Valid([]byte(wire.Notifications)) {
		util.BadRequest(c, "notifications must be a JSON string")
		return
	}

	s.mu.Lock()
	s.settings[user.ID] = wire
	s.mu.Unlock()

	util.Success(c, wire)
}

func (s *Server) handleRequestDeletion(c *gin.Context) {
	user := s.requireAuth(c)
	if user == nil {
		return
	}

	s.mu.Lock()
	token := uuid.New().String()
	s.deletionTokens[token] = deletionToken{UserID: user.ID, IssuedAt: time.Now()}
	s.mu.Unlock()

	// 线上通过邮件送达，演示实现直接回传
	util.Success(c, gin.H{"emailSent": true, "token": token})
}

func (s *Server) handleConfirmDeletion(c *gin.Context) {
	token := c.Param("token")

	s.mu.Lock()
	defer s.mu.Unlock()

	dt, ok := s.deletionTokens[token]
	if !ok {
		util.Error(c, http.StatusBadRequest, "Invalid deletion link")
		return
	}
	if time.Since(dt.IssuedAt) > deletionTokenTTL {
		delete(s.deletionTokens, token)
		util.Error(c, http.StatusBadRequest, "Deletion link expired")
		return
	}

	delete(s.deletionTokens, token)
	s.deleted[dt.UserID] = true
	util.Success(c, gin.H{"deleted": true})
}

func (s *Server) handleUnreadCounts(c *gin.Context) {
	user := s.requireAuth(c)
	if user == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	util.Success(c, s.unread[user.ID])
}
