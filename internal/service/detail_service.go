package service

import (
	"context"
	"sync"

	"links54_client/internal/api"
	"links54_client/internal/model"
	"links54_client/internal/util"
)

// LoaderPhase 详情弹窗的加载状态机：idle → loading → loaded|error。
// 每次打开或切换目标 id 都会重新进入 loading；关闭即清空，重开必重拉。
type LoaderPhase string

const (
	PhaseIdle    LoaderPhase = "idle"
	PhaseLoading LoaderPhase = "loading"
	PhaseLoaded  LoaderPhase = "loaded"
	PhaseError   LoaderPhase = "error"
)

// DetailLoader 带陈旧响应防护：generation 计数对应前端的 mounted 闭包标记，
// 旧请求返回时若 generation 已前进则直接丢弃，晚到的 A 不会覆盖 B。
type DetailLoader[T any] struct {
	fetch func(ctx context.Context, id string) (T, error)

	mu         sync.Mutex
	generation uint64
	phase      LoaderPhase
	id         string
	data       T
	errMsg     string
}

func NewDetailLoader[T any](fetch func(ctx context.Context, id string) (T, error)) *DetailLoader[T] {
	return &DetailLoader[T]{fetch: fetch, phase: PhaseIdle}
}

// Open 同步进入 loading 并发起拉取；返回的 done channel 在本次拉取
// 落地（或被更新的 Open/Close 作废）后关闭，测试与 CLI 用它等待结果。
func (l *DetailLoader[T]) Open(ctx context.Context, id string) <-chan struct{} {
	l.mu.Lock()
	l.generation++
	gen := l.generation
	l.phase = PhaseLoading
	l.id = id
	var zero T
	l.data = zero
	l.errMsg = ""
	l.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)

		data, err := l.fetch(ctx, id)

		l.mu.Lock()
		defer l.mu.Unlock()
		if l.generation != gen {
			// id 已切换或弹窗已关闭，丢弃旧响应
			return
		}
		if err != nil {
			l.phase = PhaseError
			l.errMsg = util.GenericRequestFailed
			return
		}
		l.phase = PhaseLoaded
		l.data = data
	}()
	return done
}

// Close 清空状态，不缓存；没有重试入口，用户需关闭后重开
func (l *DetailLoader[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.generation++
	l.phase = PhaseIdle
	l.id = ""
	var zero T
	l.data = zero
	l.errMsg = ""
}

func (l *DetailLoader[T]) Phase() LoaderPhase {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.phase
}

func (l *DetailLoader[T]) ID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.id
}

func (l *DetailLoader[T]) Data() T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.data
}

func (l *DetailLoader[T]) ErrMsg() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errMsg
}

type DetailService struct {
	Client *api.Client
}

func NewDetailService(client *api.Client) *DetailService {
	return &DetailService{Client: client}
}

func (s *DetailService) ProfileLoader() *DetailLoader[*model.Profile] {
	return NewDetailLoader(func(ctx context.Context, id string) (*model.Profile, error) {
		return s.Client.GetPublicProfile(ctx, id)
	})
}

func (s *DetailService) FundingProjectLoader() *DetailLoader[*model.FundingProject] {
	return NewDetailLoader(func(ctx context.Context, id string) (*model.FundingProject, error) {
		return s.Client.GetFundingProject(ctx, id)
	})
}

func (s *DetailService) NeedLoader() *DetailLoader[*model.Need] {
	return NewDetailLoader(func(ctx context.Context, id string) (*model.Need, error) {
		return s.Client.GetNeed(ctx, id)
	})
}
