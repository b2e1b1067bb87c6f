// 指示: miu200521358
// Package api は外部の協調コンポーネント向けのHTTP境界を提供する。
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/miu200521358/mu_bodyscan/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_bodyscan/pkg/domain/model"
	"github.com/miu200521358/mu_bodyscan/pkg/domain/region"
	"github.com/miu200521358/mu_bodyscan/pkg/infra/host"
	"github.com/miu200521358/mu_bodyscan/pkg/usecase/minteractor"
)

const (
	requestTimeout = 30 * time.Second
	maxBodyBytes   = 1 << 20
)

// Dispatcher は状態ループ上で操作を実行する契約を表す。
type Dispatcher interface {
	Do(ctx context.Context, fn host.Command) error
	LoadVariant(ctx context.Context, name string) (model.Variant, error)
}

// Handler は人体スキャナの HTTP エンドポイントを扱う。
type Handler struct {
	dispatcher Dispatcher
	catalog    *region.Catalog
	metrics    http.Handler
	logger     *zap.Logger
}

// New はハンドラを生成する。metrics が nil の場合 /metrics は登録しない。
func New(dispatcher Dispatcher, catalog *region.Catalog, metrics http.Handler, logger *zap.Logger) *Handler {
	if catalog == nil {
		catalog = region.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		dispatcher: dispatcher,
		catalog:    catalog,
		metrics:    metrics,
		logger:     logger,
	}
}

// Routes はルーティング済みのハンドラを返す。
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

// Register は chi ルーターへエンドポイントを登録する。
func (h *Handler) Register(r chi.Router) {
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/state", h.handleGetState)
	r.Get("/regions", h.handleListRegions)
	r.Get("/regions/{id}", h.handleGetRegion)
	r.Post("/selection", h.handleSelect)
	r.Post("/scan", h.handleStartScan)
	r.Get("/symptoms", h.handleListSymptoms)
	r.Post("/symptoms", h.handleAddSymptom)
	r.Delete("/symptoms", h.handleClearSymptoms)
	r.Delete("/symptoms/{index}", h.handleRemoveSymptom)
	r.Delete("/symptoms/id/{id}", h.handleRemoveSymptomByID)
	r.Put("/variant", h.handleSwitchVariant)
	r.Post("/pointer/click", h.handleClick)
	r.Post("/pointer/move", h.handleMove)
	r.Post("/pointer/leave", h.handleLeave)
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics)
	}
}

func (h *Handler) handleGetState(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.snapshot(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) handleListRegions(w http.ResponseWriter, r *http.Request) {
	category := model.Category(strings.TrimSpace(r.URL.Query().Get("category")))
	if category == "" {
		writeJSON(w, http.StatusOK, h.catalog.All())
		return
	}
	if !category.Valid() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown category: " + string(category)})
		return
	}
	writeJSON(w, http.StatusOK, h.catalog.ByCategory(category))
}

func (h *Handler) handleGetRegion(w http.ResponseWriter, r *http.Request) {
	id := model.RegionID(chi.URLParam(r, "id"))
	found, ok := h.catalog.Lookup(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "region not found: " + id.String()})
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (h *Handler) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.mutate(w, r, func(uc *minteractor.BodyScanUsecase) error {
		return uc.SelectRegion(req.RegionID)
	})
}

func (h *Handler) handleStartScan(w http.ResponseWriter, r *http.Request) {
	var started bool
	if err := h.dispatcher.Do(r.Context(), func(uc *minteractor.BodyScanUsecase) error {
		started = uc.StartScan()
		return nil
	}); err != nil {
		h.writeError(w, r, err)
		return
	}
	if !started {
		writeJSON(w, http.StatusConflict, errorResponse{Error: "scan already running"})
		return
	}
	writeJSON(w, http.StatusAccepted, struct{}{})
}

// handleListSymptoms は症状記録を返す。region 指定があればその部位に絞り込む。
func (h *Handler) handleListSymptoms(w http.ResponseWriter, r *http.Request) {
	id := model.RegionID(strings.TrimSpace(r.URL.Query().Get("region")))
	var records []model.SymptomRecord
	if err := h.dispatcher.Do(r.Context(), func(uc *minteractor.BodyScanUsecase) error {
		found, err := uc.SymptomsForRegion(id)
		records = found
		return err
	}); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handler) handleAddSymptom(w http.ResponseWriter, r *http.Request) {
	var input minteractor.SymptomInput
	if !h.decode(w, r, &input) {
		return
	}
	var record model.SymptomRecord
	if err := h.dispatcher.Do(r.Context(), func(uc *minteractor.BodyScanUsecase) error {
		added, err := uc.AddSymptom(input)
		record = added
		return err
	}); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (h *Handler) handleClearSymptoms(w http.ResponseWriter, r *http.Request) {
	if err := h.dispatcher.Do(r.Context(), func(uc *minteractor.BodyScanUsecase) error {
		uc.ClearSymptoms()
		return nil
	}); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRemoveSymptom(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "index must be an integer"})
		return
	}
	h.remove(w, r, func(uc *minteractor.BodyScanUsecase) bool {
		return uc.RemoveSymptom(index)
	})
}

func (h *Handler) handleRemoveSymptomByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "id must be a uuid"})
		return
	}
	h.remove(w, r, func(uc *minteractor.BodyScanUsecase) bool {
		return uc.RemoveSymptomByID(id)
	})
}

// remove は削除操作を実行する。範囲外や未登録は状態を変えずに 204 を返す。
func (h *Handler) remove(w http.ResponseWriter, r *http.Request, fn func(uc *minteractor.BodyScanUsecase) bool) {
	removed := false
	if err := h.dispatcher.Do(r.Context(), func(uc *minteractor.BodyScanUsecase) error {
		removed = fn(uc)
		return nil
	}); err != nil {
		h.writeError(w, r, err)
		return
	}
	if !removed {
		h.logger.Debug(messages.LogSymptomNothingRemoved, zap.String("anomaly", model.AnomalySymptomIndexOutOfRange))
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSwitchVariant(w http.ResponseWriter, r *http.Request) {
	var req variantRequest
	if !h.decode(w, r, &req) {
		return
	}
	if _, err := h.dispatcher.LoadVariant(r.Context(), req.Variant); err != nil {
		if statusFor(err) != http.StatusInternalServerError {
			h.writeError(w, r, err)
			return
		}
		// 読み込み失敗時は切替済みかつスケルトン未読込の状態を返す。
		h.logger.Warn(messages.LogSkeletonLoadFail, zap.String("variant", req.Variant), zap.Error(err))
	}
	h.handleGetState(w, r)
}

func (h *Handler) handleClick(w http.ResponseWriter, r *http.Request) {
	h.pointer(w, r, func(uc *minteractor.BodyScanUsecase, hits []minteractor.Intersection) minteractor.PointerOutcome {
		return uc.HandleClick(hits)
	})
}

func (h *Handler) handleMove(w http.ResponseWriter, r *http.Request) {
	h.pointer(w, r, func(uc *minteractor.BodyScanUsecase, hits []minteractor.Intersection) minteractor.PointerOutcome {
		return uc.HandleMove(hits)
	})
}

func (h *Handler) handleLeave(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(uc *minteractor.BodyScanUsecase) error {
		uc.HandleLeave()
		return nil
	})
}

func (h *Handler) pointer(
	w http.ResponseWriter,
	r *http.Request,
	fn func(uc *minteractor.BodyScanUsecase, hits []minteractor.Intersection) minteractor.PointerOutcome,
) {
	var req pointerRequest
	if !h.decode(w, r, &req) {
		return
	}
	var resp pointerResponse
	if err := h.dispatcher.Do(r.Context(), func(uc *minteractor.BodyScanUsecase) error {
		outcome := fn(uc, req.Intersections)
		resp = pointerResponse{
			Resolved:  outcome.Resolved,
			RegionID:  outcome.Pick.RegionID,
			JointName: outcome.Pick.JointName,
			State:     uc.Snapshot(),
		}
		return nil
	}); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// mutate は操作を実行し、実行後の状態を返す。
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, fn host.Command) {
	var snapshot minteractor.StateSnapshot
	if err := h.dispatcher.Do(r.Context(), func(uc *minteractor.BodyScanUsecase) error {
		if err := fn(uc); err != nil {
			return err
		}
		snapshot = uc.Snapshot()
		return nil
	}); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) snapshot(ctx context.Context) (minteractor.StateSnapshot, error) {
	var snapshot minteractor.StateSnapshot
	err := h.dispatcher.Do(ctx, func(uc *minteractor.BodyScanUsecase) error {
		snapshot = uc.Snapshot()
		return nil
	})
	return snapshot, err
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, target any) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		h.logger.Debug(messages.LogRequestFailed,
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(messages.LogRequestFailed,
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, minteractor.ErrUnknownRegion),
		errors.Is(err, minteractor.ErrUnknownVariant),
		errors.Is(err, minteractor.ErrInvalidSymptom):
		return http.StatusBadRequest
	case errors.Is(err, host.ErrLoopStopped):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
