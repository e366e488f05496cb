package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/universe-engine-ai/serenissima-sub006/internal/app/exclusivity"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/imports"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/leases"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/markup"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/ports"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/prices"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/problems"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/report"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/wages"
	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

type Handler struct {
	WagesUC       wages.UseCase
	LeasesUC      leases.UseCase
	PricesUC      prices.UseCase
	ImportsUC     imports.UseCase
	MarkupUC      markup.UseCase
	ProblemsUC    problems.UseCase
	ExclusivityUC exclusivity.UseCase
	Stratagems    ports.StratagemRepository
	KPI           kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.POST("/ops/pass/:name", h.runPass)
	s.GET("/ops/kpi", h.kpi)

	api := s.Group("/api")
	api.POST("/stratagems", h.submitStratagem)
	api.GET("/stratagems", h.listStratagems)
	api.GET("/stratagems/:id", h.getStratagem)
}

type passRequest struct {
	DryRun     bool   `json:"dry_run"`
	Strategy   string `json:"strategy,omitempty"`
	BuildingID string `json:"building_id,omitempty"`
}

func (h Handler) runPass(c context.Context, ctx *app.RequestContext) {
	var body passRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if body.Strategy == "" {
		body.Strategy = string(economy.StrategyStandard)
	}
	strategy := economy.Strategy(body.Strategy)
	if !strategy.Valid() {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_strategy", "unknown strategy "+body.Strategy)
		return
	}

	var (
		summary report.Summary
		err     error
	)
	name := strings.TrimSpace(string(ctx.Param("name")))
	switch name {
	case "wages":
		summary, err = h.WagesUC.Execute(c, wages.Request{DryRun: body.DryRun, Strategy: strategy, BuildingID: body.BuildingID})
	case "leases":
		summary, err = h.LeasesUC.Execute(c, leases.Request{DryRun: body.DryRun, Strategy: strategy, BuildingID: body.BuildingID})
	case "prices":
		summary, err = h.PricesUC.Execute(c, prices.Request{DryRun: body.DryRun, Strategy: strategy, BuildingID: body.BuildingID})
	case "imports":
		summary, err = h.ImportsUC.Execute(c, imports.Request{DryRun: body.DryRun, Strategy: strategy, BuildingID: body.BuildingID})
	case "markup":
		summary, err = h.MarkupUC.Execute(c, markup.Request{DryRun: body.DryRun, Strategy: strategy, BuildingID: body.BuildingID})
	case "problems":
		summary, err = h.ProblemsUC.Execute(c, problems.Request{DryRun: body.DryRun})
	case "exclusivity":
		summary, err = h.ExclusivityUC.Advance(c, exclusivity.Request{DryRun: body.DryRun, Strategy: strategy})
	default:
		writeErrorBody(ctx, consts.StatusNotFound, "unknown_pass", "unknown pass "+name)
		return
	}
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, summary)
}

func (h Handler) submitStratagem(c context.Context, ctx *app.RequestContext) {
	var body exclusivity.SubmitRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	st, err := h.ExclusivityUC.Submit(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, st)
}

func (h Handler) listStratagems(c context.Context, ctx *app.RequestContext) {
	open, err := h.Stratagems.ListOpen(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"stratagems": open})
}

func (h Handler) getStratagem(c context.Context, ctx *app.RequestContext) {
	id := strings.TrimSpace(string(ctx.Param("id")))
	st, err := h.Stratagems.GetByID(c, id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, st)
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

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, exclusivity.ErrInvalidRequest),
		errors.Is(err, wages.ErrInvalidRequest),
		errors.Is(err, leases.ErrInvalidRequest),
		errors.Is(err, prices.ErrInvalidRequest),
		errors.Is(err, imports.ErrInvalidRequest),
		errors.Is(err, markup.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", err.Error())
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error":   code,
		"message": message,
	})
}
