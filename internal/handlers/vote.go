package handlers

import (
	"fmt"
	"net/http"

	"rootlink/internal/engine"
	"rootlink/internal/models"
	"rootlink/internal/services"
	"rootlink/internal/utils"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	engine *engine.Engine
}

func NewVoteHandler(e *engine.Engine) *VoteHandler {
	return &VoteHandler{engine: e}
}

type castVoteRequest struct {
	Type string `json:"type" binding:"required"` // "up" 或 "down"
}

// Cast 处理投票请求。同类型重复投票即取消，返回最新计数。
func (h *VoteHandler) Cast(c *gin.Context) {
	user := CurrentUser(c)

	kind := models.ContentKind(c.Param("kind"))
	if !kind.Valid() {
		JSONError(c, fmt.Errorf("%w: unknown content kind %q", engine.ErrInvalidArgument, c.Param("kind")))
		return
	}
	id := utils.StringToUint(c.Param("id"))
	if id == 0 {
		JSONError(c, fmt.Errorf("%w: bad content id", engine.ErrInvalidArgument))
		return
	}

	var req castVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, fmt.Errorf("%w: %v", engine.ErrInvalidArgument, err))
		return
	}
	voteType, ok := models.ParseVoteType(req.Type)
	if !ok {
		JSONError(c, fmt.Errorf("%w: unknown vote type %q", engine.ErrInvalidArgument, req.Type))
		return
	}

	ref := models.ContentRef{Kind: kind, ID: id}
	outcome, err := h.engine.CastVote(c.Request.Context(), user.ID, ref, voteType)
	if err != nil {
		JSONError(c, err)
		return
	}

	// 计数变了，榜单缓存作废
	utils.GetCache().DeletePrefix("feed:")

	// 异步重算帖子热度
	if kind == models.KindPost {
		services.GetScoreboard().ScheduleUpdate(id)
	}

	c.JSON(http.StatusOK, outcome)
}
