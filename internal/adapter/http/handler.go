package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"petverse/internal/app/action"
	battleapp "petverse/internal/app/battle"
	"petverse/internal/app/catchup"
	"petverse/internal/app/ports"
	"petverse/internal/app/replay"
	"petverse/internal/app/status"
	battledom "petverse/internal/domain/battle"
	"petverse/internal/domain/pet"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const ownerIDHeader = "X-Owner-ID"

var ErrMissingOwnerHeader = errors.New("missing x-owner-id header")

type Handler struct {
	StatusUC status.UseCase
	SyncUC   catchup.UseCase
	ActionUC action.UseCase
	BattleUC battleapp.UseCase
	ReplayUC replay.UseCase
	KPI      kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	group := s.Group("/api/pet")
	group.GET("/status", h.status)
	group.POST("/sync", h.sync)
	group.POST("/action", h.action)
	group.POST("/battle/start", h.battleStart)
	group.POST("/battle/act", h.battleAct)
	group.GET("/replay", h.replay)

	s.GET("/ops/kpi", h.kpi)
}

type actionRequest struct {
	IdempotencyKey string        `json:"idempotency_key"`
	Intent         action.Intent `json:"intent"`
}

type battleActRequest struct {
	Action battledom.Action `json:"action"`
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.StatusUC.Execute(c, status.Request{OwnerID: ownerID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) sync(c context.Context, ctx *app.RequestContext) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.SyncUC.Execute(c, catchup.Request{OwnerID: ownerID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) action(c context.Context, ctx *app.RequestContext) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body actionRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.ActionUC.Execute(c, action.Request{
		OwnerID:        ownerID,
		IdempotencyKey: body.IdempotencyKey,
		Intent:         body.Intent,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) battleStart(c context.Context, ctx *app.RequestContext) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.BattleUC.Start(c, battleapp.StartRequest{OwnerID: ownerID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) battleAct(c context.Context, ctx *app.RequestContext) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body battleActRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.BattleUC.Act(c, battleapp.ActRequest{OwnerID: ownerID, Action: body.Action})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	occurredFrom, _ := strconv.ParseInt(string(ctx.Query("occurred_from")), 10, 64)
	occurredTo, _ := strconv.ParseInt(string(ctx.Query("occurred_to")), 10, 64)
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		OwnerID:      ownerID,
		Limit:        limit,
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func requireOwner(ctx *app.RequestContext) (string, error) {
	ownerID := strings.TrimSpace(string(ctx.GetHeader(ownerIDHeader)))
	if ownerID == "" {
		return "", ErrMissingOwnerHeader
	}
	return ownerID, nil
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingOwnerHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_owner_id", err.Error())
	case errors.Is(err, action.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest),
		errors.Is(err, catchup.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest),
		errors.Is(err, battleapp.ErrInvalidRequest),
		errors.Is(err, battledom.ErrInvalidAction),
		errors.Is(err, pet.ErrInvalidTickDelta):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, pet.ErrUnknownItem),
		errors.Is(err, action.ErrUnknownLocation),
		errors.Is(err, action.ErrUnknownActivity),
		errors.Is(err, battleapp.ErrUnknownLocation):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_reference", err.Error())
	case errors.Is(err, pet.ErrCreatureDead):
		writeErrorBody(ctx, consts.StatusConflict, "creature_dead", err.Error())
	case errors.Is(err, pet.ErrStatAlreadyFull):
		writeErrorBody(ctx, consts.StatusConflict, "stat_already_full", err.Error())
	case errors.Is(err, pet.ErrItemNotOwned):
		writeErrorBody(ctx, consts.StatusConflict, "item_not_owned", err.Error())
	case errors.Is(err, pet.ErrNotSick):
		writeErrorBody(ctx, consts.StatusConflict, "not_sick", err.Error())
	case errors.Is(err, pet.ErrNothingToClean):
		writeErrorBody(ctx, consts.StatusConflict, "nothing_to_clean", err.Error())
	case errors.Is(err, pet.ErrInsufficientEnergy),
		errors.Is(err, battledom.ErrInsufficientEnergy):
		writeErrorBody(ctx, consts.StatusConflict, "insufficient_energy", err.Error())
	case errors.Is(err, pet.ErrNotSleeping):
		writeErrorBody(ctx, consts.StatusConflict, "not_sleeping", err.Error())
	case errors.Is(err, pet.ErrEnergyFull):
		writeErrorBody(ctx, consts.StatusConflict, "energy_full", err.Error())
	case errors.Is(err, pet.ErrBusy), errors.Is(err, pet.ErrNotIdle):
		writeErrorBody(ctx, consts.StatusConflict, "creature_busy", err.Error())
	case errors.Is(err, pet.ErrNoActiveActivity):
		writeErrorBody(ctx, consts.StatusConflict, "no_active_activity", err.Error())
	case errors.Is(err, pet.ErrActivityNotEligible):
		writeErrorBody(ctx, consts.StatusConflict, "activity_not_eligible", err.Error())
	case errors.Is(err, pet.ErrAlreadyThere):
		writeErrorBody(ctx, consts.StatusConflict, "already_there", err.Error())
	case errors.Is(err, battleapp.ErrBattleInProgress):
		writeErrorBody(ctx, consts.StatusConflict, "battle_in_progress", err.Error())
	case errors.Is(err, battleapp.ErrNoEncounter):
		writeErrorBody(ctx, consts.StatusConflict, "no_encounter", err.Error())
	case errors.Is(err, battledom.ErrBattleOver):
		writeErrorBody(ctx, consts.StatusConflict, "battle_over", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
