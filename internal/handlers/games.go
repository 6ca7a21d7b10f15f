package handlers

import (
	"errors"
	"gameforge/internal/store"
	"gameforge/internal/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SandboxPolicy 游戏代码只能在隔离环境里执行：允许脚本与同源存储，禁止顶层跳转
const SandboxPolicy = "allow-scripts allow-same-origin"

type GameHandler struct {
	store *store.Store
}

func NewGameHandler(s *store.Store) *GameHandler {
	return &GameHandler{store: s}
}

func listParams(c *gin.Context) (string, int) {
	sortBy := c.DefaultQuery("sort", store.SortNewest)
	switch sortBy {
	case store.SortNewest, store.SortPopular, store.SortTrending:
	default:
		sortBy = store.SortNewest
	}
	return sortBy, utils.StringToInt(c.Query("limit"), 50, 1, 100)
}

// List GET /api/games?sort=newest|popular|trending&limit=
func (h *GameHandler) List(c *gin.Context) {
	sortBy, limit := listParams(c)
	games, err := h.store.ListApproved(c.Request.Context(), sortBy, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"games": games, "sort": sortBy})
}

// Get GET /api/games/:id
func (h *GameHandler) Get(c *gin.Context) {
	game, err := h.store.GetGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// Code GET /api/games/:id/code 原样返回游戏文档，由浏览器在沙箱中执行
func (h *GameHandler) Code(c *gin.Context) {
	game, err := h.store.GetGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Security-Policy", "sandbox "+SandboxPolicy)
	c.Header("X-Content-Type-Options", "nosniff")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(game.Code))
}

// Index GET / 游戏列表页
func (h *GameHandler) Index(c *gin.Context) {
	sortBy, limit := listParams(c)
	games, err := h.store.ListApproved(c.Request.Context(), sortBy, limit)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "无法加载游戏列表")
		return
	}
	Render(c, http.StatusOK, "index.html", gin.H{
		"Games": games,
		"Sort":  sortBy,
	})
}

// Play GET /play/:id 在 iframe 沙箱中嵌入游戏
func (h *GameHandler) Play(c *gin.Context) {
	game, err := h.store.GetGame(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		RenderError(c, http.StatusNotFound, "游戏不存在")
		return
	}
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "无法加载游戏")
		return
	}
	Render(c, http.StatusOK, "play.html", gin.H{
		"Game":    game,
		"Sandbox": SandboxPolicy,
	})
}
