// 指示: miu200521358
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/miu200521358/mu_bodyscan/pkg/adapter/io_model/skeleton"
	"github.com/miu200521358/mu_bodyscan/pkg/domain/model"
	"github.com/miu200521358/mu_bodyscan/pkg/infra/host"
	"github.com/miu200521358/mu_bodyscan/pkg/infra/metrics"
	"github.com/miu200521358/mu_bodyscan/pkg/usecase/minteractor"
)

// directDispatcher は呼び出し元ゴルーチンでそのまま操作を実行する。
type directDispatcher struct {
	uc *minteractor.BodyScanUsecase
}

func (d directDispatcher) Do(_ context.Context, fn host.Command) error {
	return fn(d.uc)
}

func (d directDispatcher) LoadVariant(_ context.Context, name string) (model.Variant, error) {
	variant, err := d.uc.SwitchVariant(name)
	if err != nil {
		return "", err
	}
	loaded, err := d.uc.LoadSkeleton(variant)
	if err != nil {
		return variant, err
	}
	d.uc.PublishSkeleton(variant, loaded)
	return variant, nil
}

type HandlerSuite struct {
	suite.Suite
	uc      *minteractor.BodyScanUsecase
	metrics *metrics.Metrics
	router  http.Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.metrics = metrics.New()
	s.uc = minteractor.NewBodyScanUsecase(minteractor.BodyScanUsecaseDeps{
		DefaultVariant: model.VariantMale,
		SkeletonSource: skeleton.NewPresetRepository(),
		Metrics:        s.metrics,
		Clock:          func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	})
	require.NoError(s.T(), s.uc.LoadVariant("male"))
	s.router = New(directDispatcher{uc: s.uc}, s.uc.Catalog(), s.metrics.Handler(), nil).Routes()
}

func (s *HandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		payload, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerSuite) decodeState(w *httptest.ResponseRecorder) minteractor.StateSnapshot {
	var snapshot minteractor.StateSnapshot
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &snapshot))
	return snapshot
}

func (s *HandlerSuite) TestGetState() {
	w := s.do(http.MethodGet, "/state", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	snapshot := s.decodeState(w)
	assert.Equal(s.T(), model.VariantMale, snapshot.ActiveVariant)
	assert.True(s.T(), snapshot.SkeletonLoaded)
	assert.Equal(s.T(), model.NoRegion, snapshot.SelectedRegion)
}

func (s *HandlerSuite) TestRegions() {
	w := s.do(http.MethodGet, "/regions", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	var all []model.Region
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(s.T(), all, len(s.uc.Catalog().All()))

	w = s.do(http.MethodGet, "/regions?category=head", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	var heads []model.Region
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &heads))
	require.NotEmpty(s.T(), heads)
	for _, r := range heads {
		assert.Equal(s.T(), model.CategoryHead, r.Category)
	}

	assert.Equal(s.T(), http.StatusBadRequest, s.do(http.MethodGet, "/regions?category=wing", nil).Code)
	assert.Equal(s.T(), http.StatusOK, s.do(http.MethodGet, "/regions/head", nil).Code)
	assert.Equal(s.T(), http.StatusNotFound, s.do(http.MethodGet, "/regions/tail", nil).Code)
}

func (s *HandlerSuite) TestSelection() {
	w := s.do(http.MethodPost, "/selection", map[string]any{"regionId": "head"})
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), model.RegionHead, s.decodeState(w).SelectedRegion)

	w = s.do(http.MethodPost, "/selection", map[string]any{"regionId": "tail"})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Equal(s.T(), model.RegionHead, s.uc.State().SelectedRegion())

	w = s.do(http.MethodPost, "/selection", map[string]any{"regionId": ""})
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), model.NoRegion, s.decodeState(w).SelectedRegion)

	w = s.do(http.MethodPost, "/selection", map[string]any{"region": "head"})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *HandlerSuite) TestScan() {
	assert.Equal(s.T(), http.StatusAccepted, s.do(http.MethodPost, "/scan", nil).Code)
	assert.Equal(s.T(), http.StatusConflict, s.do(http.MethodPost, "/scan", nil).Code)
	assert.True(s.T(), s.uc.State().IsScanning())
}

func (s *HandlerSuite) TestSymptoms() {
	w := s.do(http.MethodPost, "/symptoms", map[string]any{
		"regionId": "leftForeArm",
		"severity": 3,
		"tags":     []string{"痛み"},
		"note":     "階段で悪化",
	})
	require.Equal(s.T(), http.StatusCreated, w.Code)
	var record model.SymptomRecord
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(s.T(), model.RegionLeftForeArm, record.RegionID)
	assert.Equal(s.T(), "痛み, 階段で悪化", record.Description)

	w = s.do(http.MethodPost, "/symptoms", map[string]any{"regionId": "head", "severity": 9})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	w = s.do(http.MethodPost, "/symptoms", map[string]any{"regionId": "tail", "severity": 2})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	assert.Equal(s.T(), http.StatusNoContent, s.do(http.MethodDelete, "/symptoms/5", nil).Code)
	assert.Len(s.T(), s.uc.State().Symptoms(), 1)
	assert.Equal(s.T(), http.StatusBadRequest, s.do(http.MethodDelete, "/symptoms/first", nil).Code)

	assert.Equal(s.T(), http.StatusNoContent, s.do(http.MethodDelete, "/symptoms/id/"+uuid.NewString(), nil).Code)
	assert.Len(s.T(), s.uc.State().Symptoms(), 1)
	assert.Equal(s.T(), http.StatusNoContent, s.do(http.MethodDelete, "/symptoms/id/"+record.ID.String(), nil).Code)
	assert.Empty(s.T(), s.uc.State().Symptoms())

	s.do(http.MethodPost, "/symptoms", map[string]any{"regionId": "head", "severity": 1})
	s.do(http.MethodPost, "/symptoms", map[string]any{"regionId": "chest", "severity": 2})
	assert.Equal(s.T(), http.StatusNoContent, s.do(http.MethodDelete, "/symptoms/0", nil).Code)
	assert.Equal(s.T(), model.RegionChest, s.uc.State().Symptoms()[0].RegionID)
	assert.Equal(s.T(), http.StatusNoContent, s.do(http.MethodDelete, "/symptoms", nil).Code)
	assert.Empty(s.T(), s.uc.State().Symptoms())
}

func (s *HandlerSuite) TestListSymptoms() {
	w := s.do(http.MethodGet, "/symptoms", nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.JSONEq(s.T(), "[]", w.Body.String())

	s.do(http.MethodPost, "/symptoms", map[string]any{"regionId": "head", "severity": 1})
	s.do(http.MethodPost, "/symptoms", map[string]any{"regionId": "chest", "severity": 2})
	s.do(http.MethodPost, "/symptoms", map[string]any{"regionId": "head", "severity": 5})

	var records []model.SymptomRecord
	w = s.do(http.MethodGet, "/symptoms", nil)
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &records))
	assert.Len(s.T(), records, 3)

	w = s.do(http.MethodGet, "/symptoms?region=head", nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(s.T(), records, 2)
	assert.Equal(s.T(), model.Severity(1), records[0].Severity)
	assert.Equal(s.T(), model.Severity(5), records[1].Severity)

	assert.Equal(s.T(), http.StatusBadRequest, s.do(http.MethodGet, "/symptoms?region=tail", nil).Code)
}

func (s *HandlerSuite) TestVariant() {
	w := s.do(http.MethodPut, "/variant", map[string]any{"variant": "female"})
	assert.Equal(s.T(), http.StatusOK, w.Code)
	snapshot := s.decodeState(w)
	assert.Equal(s.T(), model.VariantFemale, snapshot.ActiveVariant)
	assert.True(s.T(), snapshot.SkeletonLoaded)

	w = s.do(http.MethodPut, "/variant", map[string]any{"variant": "child"})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Equal(s.T(), model.VariantFemale, s.uc.State().ActiveVariant())
}

func (s *HandlerSuite) TestPointer() {
	click := map[string]any{"intersections": []map[string]any{
		{"point": map[string]float64{"x": 0, "y": 0, "z": 5}, "distance": 9},
		{"point": map[string]float64{"x": 0.45, "y": 1.44, "z": 0.02}, "distance": 2},
	}}
	w := s.do(http.MethodPost, "/pointer/click", click)
	require.Equal(s.T(), http.StatusOK, w.Code)
	var resp pointerResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(s.T(), resp.Resolved)
	assert.Equal(s.T(), model.RegionLeftForeArm, resp.RegionID)
	assert.Equal(s.T(), "mixamorigLeftForeArm", resp.JointName)
	assert.Equal(s.T(), model.RegionLeftForeArm, resp.State.SelectedRegion)

	w = s.do(http.MethodPost, "/pointer/move", click)
	require.Equal(s.T(), http.StatusOK, w.Code)
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), model.RegionLeftForeArm, resp.State.HoveredRegion)

	w = s.do(http.MethodPost, "/pointer/leave", nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), model.NoRegion, s.decodeState(w).HoveredRegion)

	w = s.do(http.MethodPost, "/pointer/move", map[string]any{"intersections": []any{}})
	require.Equal(s.T(), http.StatusOK, w.Code)
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(s.T(), resp.Resolved)
}

func (s *HandlerSuite) TestMetricsEndpoint() {
	s.do(http.MethodPost, "/scan", nil)
	w := s.do(http.MethodGet, "/metrics", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Body.String(), "bodyscan_scans_started_total 1")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(minteractor.ErrUnknownRegion))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(host.ErrLoopStopped))
	assert.Equal(t, http.StatusGatewayTimeout, statusFor(context.DeadlineExceeded))
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}
