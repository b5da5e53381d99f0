package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"links54_client/internal/model"
)

// MeetingCacheKey 维持历史键名格式 sim_meetings_<viewerId|anon>_<targetId>
func MeetingCacheKey(viewerID, targetID string) string {
	if viewerID == "" {
		viewerID = "anon"
	}
	return fmt.Sprintf("sim_meetings_%s_%s", viewerID, targetID)
}

// Local 文件型键值缓存。仅作为演示兜底数据，不是权威数据源。
type Local struct {
	dir string
	mu  sync.Mutex
}

func NewLocal(dir string) (*Local, error) {
	if dir == "" {
		dir = ".links54"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Local{dir: dir}, nil
}

func (l *Local) path(key string) string {
	// 键名里只允许安全字符，防止路径穿越
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, key)
	return filepath.Join(l.dir, safe+".json")
}

func (l *Local) LoadMeetings(key string) ([]model.Meeting, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadMeetingsLocked(key)
}

func (l *Local) loadMeetingsLocked(key string) ([]model.Meeting, error) {
	data, err := os.ReadFile(l.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var meetings []model.Meeting
	if err := json.Unmarshal(data, &meetings); err != nil {
		// 缓存损坏按空处理，下次写入覆盖
		return nil, nil
	}
	return meetings, nil
}

func (l *Local) SaveMeetings(key string, meetings []model.Meeting) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.saveMeetingsLocked(key, meetings)
}

func (l *Local) saveMeetingsLocked(key string, meetings []model.Meeting) error {
	data, err := json.Marshal(meetings)
	if err != nil {
		return err
	}
	return os.WriteFile(l.path(key), data, 0644)
}

func (l *Local) AppendMeeting(key string, meeting model.Meeting) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	meetings, err := l.loadMeetingsLocked(key)
	if err != nil {
		return err
	}
	return l.saveMeetingsLocked(key, append(meetings, meeting))
}
