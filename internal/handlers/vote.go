package handlers

import (
	"gameforge/internal/middleware"
	"gameforge/internal/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type voteRequest struct {
	Value int `json:"value"`
}

type VoteHandler struct {
	votes *services.VoteService
}

func NewVoteHandler(votes *services.VoteService) *VoteHandler {
	return &VoteHandler{votes: votes}
}

// Vote POST /api/games/:id/vote {value: 1|-1}
// 同值重复投票即撤销，返回最新汇总与调用者的有效投票
func (h *VoteHandler) Vote(c *gin.Context) {
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := h.votes.CastVote(c.Request.Context(), c.Param("id"), middleware.Voter(c), req.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Current GET /api/games/:id/vote 调用者当前的投票
func (h *VoteHandler) Current(c *gin.Context) {
	vote, err := h.votes.CurrentVote(c.Request.Context(), c.Param("id"), middleware.Voter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vote": vote})
}

// Totals GET /api/games/:id/votes 轮询用的汇总
func (h *VoteHandler) Totals(c *gin.Context) {
	totals, err := h.votes.Totals(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}
