package app

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"links54_client/internal/api"
	"links54_client/internal/config"
	"links54_client/internal/service"
	"links54_client/internal/store"
	"links54_client/internal/stub"
	"links54_client/pkg/bus"
	"links54_client/pkg/configwatcher"
	"links54_client/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type App struct {
	Config *config.Config
	Client *api.Client
	Bus    *bus.Bus

	Connection *service.ConnectionService
	Meeting    *service.MeetingService
	Social     *service.SocialService
	Detail     *service.DetailService
	Settings   *service.SettingsService
	Account    *service.AccountService
	Unread     *service.UnreadService

	demoSrv *http.Server
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	app := &App{
		Config: cfg,
		Bus:    bus.New(),
	}

	if cfg.DemoMode {
		app.startDemoServer(cfg)
	}

	app.Client = api.NewClient(cfg)

	local, err := store.NewLocal(cfg.Cache.Dir)
	if err != nil {
		logger.Log.Fatal("Failed to initialize local cache", zap.Error(err))
	}

	app.Connection = service.NewConnectionService(app.Client)
	app.Meeting = service.NewMeetingService(app.Client, local, cfg.Auth.UserID)
	app.Social = service.NewSocialService(app.Client)
	app.Detail = service.NewDetailService(app.Client)
	app.Settings = service.NewSettingsService(app.Client)
	app.Account = service.NewAccountService(app.Client)
	app.Unread = service.NewUnreadService(app.Client, app.Bus, cfg.Unread.PollInterval)

	return app
}

// startDemoServer 演示模式：本进程内起一个内存实现的 54Links API，
// 并把客户端指向它，免登录即可试完整流程
func (a *App) startDemoServer(cfg *config.Config) {
	gin.SetMode(gin.ReleaseMode)
	srv := stub.NewServer()

	// 先同步绑定端口再起服务，保证客户端的首个请求不会吃到 connection refused
	ln, err := net.Listen("tcp", "127.0.0.1:"+cfg.Demo.Port)
	if err != nil {
		logger.Log.Fatal("Failed to bind demo server", zap.Error(err))
	}

	a.demoSrv = &http.Server{
		Addr:    ln.Addr().String(),
		Handler: srv.Router(),
	}

	go func() {
		if err := a.demoSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Fatalf("demo server: %s\n", err)
		}
	}()

	cfg.API.BaseURL = "http://" + a.demoSrv.Addr
	if cfg.Auth.Token == "" {
		cfg.Auth.Token = "demo-token"
		cfg.Auth.UserID = "u1"
	}
	logger.Log.Info("Demo API server running", zap.String("addr", a.demoSrv.Addr))
}

// Run 监听未读计数轮询结果并持续输出，Ctrl-C 退出
func (a *App) Run() {
	supports, cancelSupports := a.Bus.Subscribe(bus.TopicUnreadSupports)
	contacts, cancelContacts := a.Bus.Subscribe(bus.TopicUnreadContacts)
	defer cancelSupports()
	defer cancelContacts()

	// 长驻模式下配置文件可热更 token / base_url
	if _, err := os.Stat("configs/config.yaml"); err == nil && !a.Config.DemoMode {
		go configwatcher.WatchConfig("configs/config.yaml", func(cfg *config.Config) {
			a.Client.SetToken(cfg.Auth.Token)
			logger.Log.Info("Config reloaded")
		})
	}

	a.Unread.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Printf("Watching unread counts every %s (Ctrl-C to stop)", a.Config.Unread.PollInterval)
	for {
		select {
		case ev := <-supports:
			fmt.Printf("unread supports: %v\n", ev.Data)
		case ev := <-contacts:
			fmt.Printf("unread contacts: %v\n", ev.Data)
		case <-quit:
			log.Println("Shutting down...")
			a.Shutdown()
			return
		}
	}
}

func (a *App) Shutdown() {
	a.Unread.Stop()

	if a.demoSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.demoSrv.Shutdown(ctx); err != nil {
			log.Printf("demo server shutdown: %v", err)
		}
	}
}
