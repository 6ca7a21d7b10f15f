package router

import (
	"fmt"
	"gameforge/internal/handlers"
	"gameforge/internal/middleware"
	"gameforge/internal/services"
	"gameforge/internal/store"
	"html/template"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// Deps 路由需要的全部服务，由 cmd/server 组装
type Deps struct {
	Store           *store.Store
	Generator       *services.GameGenerator
	Scheduler       *services.Scheduler
	Votes           *services.VoteService
	Thumbnails      *services.ThumbnailService
	Events          services.Broker
	VoteSalt        string
	SessionSecret   string
	CorsOrigins     []string
	CronTokenHash   string
	GenerateTimeout time.Duration
	TemplatesDir    string
	StaticDir       string
}

// New 创建 gin 引擎并注册全部路由
func New(d Deps) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(d.CorsOrigins) == 0 || (len(d.CorsOrigins) == 1 && d.CorsOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = d.CorsOrigins
	}
	corsCfg.AllowHeaders = []string{"Authorization", "Content-Type", "X-Client-Info", "Apikey"}
	r.Use(cors.New(corsCfg))

	r.Use(sessions.Sessions("gameforge_session", cookie.NewStore([]byte(d.SessionSecret))))

	if d.TemplatesDir != "" {
		r.HTMLRender = LoadTemplates(d.TemplatesDir)
	}
	if d.StaticDir != "" {
		r.Static("/static", d.StaticDir) // 占位缩略图等静态资源
	}

	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	gameHandler := handlers.NewGameHandler(d.Store)
	generateHandler := handlers.NewGenerateHandler(d.Generator, d.Scheduler, d.GenerateTimeout)
	voteHandler := handlers.NewVoteHandler(d.Votes)
	statsHandler := handlers.NewStatsHandler(d.Store)
	thumbnailHandler := handlers.NewThumbnailHandler(d.Thumbnails)
	wsHandler := handlers.NewWSHandler(d.Store, d.Events)

	// 页面
	r.GET("/", gameHandler.Index)        // 游戏列表
	r.GET("/play/:id", gameHandler.Play) // 沙箱试玩页
	r.GET("/thumbnails/*key", thumbnailHandler.Serve)

	api := r.Group("/api")
	{
		api.GET("/games", gameHandler.List)          // 列表，sort=newest|popular|trending
		api.GET("/games/:id", gameHandler.Get)       // 单个游戏
		api.GET("/games/:id/code", gameHandler.Code) // 原始游戏文档
		api.GET("/games/:id/votes", voteHandler.Totals)
		api.GET("/stats", statsHandler.Get)

		api.POST("/generate", generateHandler.Generate)
		api.POST("/auto-generate", middleware.CronAuth(d.CronTokenHash), generateHandler.AutoGenerate)
	}

	// 投票需要访客身份
	voting := api.Group("/games/:id")
	voting.Use(middleware.VoterIdentity(d.VoteSalt))
	{
		voting.POST("/vote", voteHandler.Vote)
		voting.GET("/vote", voteHandler.Current)
	}

	r.GET("/ws/games/:id", wsHandler.Votes)
}

// LoadTemplates 每个页面 = 布局 + 视图
func LoadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+1)
		files = append(files, layouts...)
		files = append(files, view)
		return files
	}

	funcMap := template.FuncMap{
		"timeAgo": func(t time.Time) string {
			seconds := int(time.Since(t).Seconds())
			switch {
			case seconds < 60:
				return "just now"
			case seconds < 3600:
				return fmt.Sprintf("%dm ago", seconds/60)
			case seconds < 86400:
				return fmt.Sprintf("%dh ago", seconds/3600)
			}
			return fmt.Sprintf("%dd ago", seconds/86400)
		},
		"eq": func(a, b interface{}) bool {
			return a == b
		},
	}

	r.AddFromFilesFuncs("index.html", funcMap, assemble(templatesDir+"/views/index.html")...)
	r.AddFromFilesFuncs("play.html", funcMap, assemble(templatesDir+"/views/play.html")...)
	r.AddFromFilesFuncs("error.html", funcMap, assemble(templatesDir+"/views/error.html")...)
	return r
}
