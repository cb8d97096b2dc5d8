package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/whiteboardhq/backend/api/transport"
	"github.com/whiteboardhq/backend/domain"
	"github.com/whiteboardhq/backend/pkg/httpcontext"
	boardUC "github.com/whiteboardhq/backend/usecase/board"
)

type BoardHandler struct {
	baseHandler
	uc *boardUC.UseCase
}

func NewBoardHandler(uc *boardUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *BoardHandler {
	return &BoardHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Board roster
// @Tags board
// @Router /api/v1/board-members [get]
func (h *BoardHandler) GetMembers(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	members, err := h.uc.Roster(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	roster := make([]transport.MemberResponse, 0, len(members))
	for _, m := range members {
		roster = append(roster, transport.MemberResponse{
			ActorID: m.ActorID,
			Emoji:   m.Emoji,
			Name:    m.Name,
		})
	}
	h.respondSuccess(ctx, http.StatusOK, roster)
}

// @Summary Register board member
// @Tags board
// @Router /api/v1/board-members [post]
func (h *BoardHandler) RegisterMember(ctx *fasthttp.RequestCtx) {
	var req transport.RegisterMemberRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondError(ctx, domain.ErrInvalidPayload)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	member, err := h.uc.Register(stdCtx, req.ActorID, req.Emoji, req.Name)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, transport.MemberResponse{
		ActorID: member.ActorID,
		Emoji:   member.Emoji,
		Name:    member.Name,
	})
}
