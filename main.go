package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"links54_client/internal/app"
	"links54_client/internal/config"
	"links54_client/internal/model"
	"links54_client/internal/service"
	"links54_client/internal/share"
	"links54_client/pkg/logger"
)

const usage = `Usage: links54 [-demo] <command> [options]

Commands:
  connect  -to <userId> [-reason <preset>] [-message <text>]
  meet     -to <userId> -date YYYY-MM-DD -time HH:MM -title <t> -mode video|in_person [-link URL] [-location <place>] [-duration 15|30|45|60]
  like     -type <entityType> -id <entityId>
  profile  -id <userId>
  share    -url <URL> [-title <t>] [-quote <q>] [-platform <name>]
  watch    (poll unread counts until Ctrl-C)
`

func main() {
	// 命令行参数
	demo := flag.Bool("demo", false, "使用内置演示服务端，无需线上账号")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.DemoMode = *demo

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()
	defer application.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch args[0] {
	case "connect":
		runConnect(ctx, application, args[1:])
	case "meet":
		runMeet(ctx, application, args[1:])
	case "like":
		runLike(ctx, application, args[1:])
	case "profile":
		runProfile(ctx, application, args[1:])
	case "share":
		runShare(args[1:])
	case "watch":
		application.Run()
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func runConnect(ctx context.Context, a *app.App, args []string) {
	fs := flag.NewFlagSet("connect", flag.ExitOnError)
	to := fs.String("to", "", "target user id")
	reason := fs.String("reason", "", "preset reason (optional)")
	message := fs.String("message", "", "message (optional)")
	fs.Parse(args)

	if *to == "" {
		log.Fatal("connect: -to is required")
	}

	ctrl := a.Connection.NewController(*to, "none", "")
	if err := ctrl.Send(ctx, *reason, *message); err != nil {
		log.Fatalf("connect: %s", service.DisplayError(err))
	}
	fmt.Printf("Connection request sent (status: %s).\n", ctrl.View().Status)
}

func runMeet(ctx context.Context, a *app.App, args []string) {
	fs := flag.NewFlagSet("meet", flag.ExitOnError)
	to := fs.String("to", "", "target user id")
	date := fs.String("date", "", "YYYY-MM-DD")
	clock := fs.String("time", "", "HH:MM")
	title := fs.String("title", "", "meeting title")
	agenda := fs.String("agenda", "", "agenda (optional)")
	mode := fs.String("mode", "video", "video | in_person")
	link := fs.String("link", "", "meeting link (video)")
	location := fs.String("location", "", "location (in_person)")
	duration := fs.Int("duration", 30, "15 | 30 | 45 | 60")
	fs.Parse(args)

	if *to == "" {
		log.Fatal("meet: -to is required")
	}

	form := service.MeetingForm{
		Date:     *date,
		Time:     *clock,
		Title:    *title,
		Agenda:   *agenda,
		Mode:     model.MeetingMode(*mode),
		Link:     *link,
		Location: *location,
		Duration: *duration,
	}
	if errs := form.Validate(); len(errs) > 0 {
		for field, msg := range errs {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", field, msg)
		}
		os.Exit(1)
	}

	meeting, err := a.Meeting.Submit(ctx, *to, form)
	if err != nil {
		log.Fatalf("meet: %s", service.DisplayError(err))
	}
	fmt.Printf("Meeting request sent: %s at %s (%d min)\n",
		meeting.Title, meeting.ScheduledAt.Format(time.RFC3339), meeting.Duration)
}

func runLike(ctx context.Context, a *app.App, args []string) {
	fs := flag.NewFlagSet("like", flag.ExitOnError)
	entityType := fs.String("type", "", "entity type (job/need/product/moment/funding_project/event)")
	entityID := fs.String("id", "", "entity id")
	fs.Parse(args)

	if *entityType == "" || *entityID == "" {
		log.Fatal("like: -type and -id are required")
	}

	ctrl := a.Social.NewLikeController(model.EntityType(*entityType), *entityID, model.LikeState{})
	if err := ctrl.Refresh(ctx); err != nil {
		log.Fatalf("like: %s", service.DisplayError(err))
	}
	if err := ctrl.Toggle(ctx); err != nil {
		// 点赞失败静默回滚，这里只提示最终状态
		fmt.Println("Could not update like right now.")
	}
	state := ctrl.State()
	fmt.Printf("liked=%v count=%d\n", state.Liked, state.Count)
}

func runProfile(ctx context.Context, a *app.App, args []string) {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	id := fs.String("id", "", "user id")
	fs.Parse(args)

	if *id == "" {
		log.Fatal("profile: -id is required")
	}

	loader := a.Detail.ProfileLoader()
	<-loader.Open(ctx, *id)
	defer loader.Close()

	if loader.Phase() == service.PhaseError {
		log.Fatalf("profile: %s", loader.ErrMsg())
	}

	p := loader.Data()
	fmt.Printf("%s — %s\n", p.Name, p.Headline)
	if p.About != "" {
		fmt.Println(p.About)
	}
	ctrl := a.Connection.NewController(*id, p.ConnectionStatus, p.ConnectionID)
	fmt.Printf("connection: %s\n", ctrl.Resolve(a.Client.LoggedIn()))
	if len(p.Meetings) > 0 {
		fmt.Printf("meetings: %d\n", len(p.Meetings))
	}
}

func runShare(args []string) {
	fs := flag.NewFlagSet("share", flag.ExitOnError)
	platform := fs.String("platform", "", "whatsapp|linkedin|twitter|facebook|telegram|email (empty prints all)")
	rawURL := fs.String("url", "", "content url")
	title := fs.String("title", "", "content title")
	quote := fs.String("quote", "", "quote (optional)")
	fs.Parse(args)

	if *rawURL == "" {
		log.Fatal("share: -url is required")
	}

	content := share.Content{URL: *rawURL, Title: *title, Quote: *quote}
	if *platform != "" {
		link := share.LinkFor(*platform, content)
		if link == "" {
			log.Fatalf("share: unknown platform %q", *platform)
		}
		fmt.Println(link)
		return
	}
	for _, t := range share.Targets {
		fmt.Printf("%-9s %s\n", t.Platform, t.Build(content))
	}
}
