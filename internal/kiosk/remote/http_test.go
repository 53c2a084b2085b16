package remote

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clarityplus/kiosk/internal/common"
	"github.com/clarityplus/kiosk/internal/logging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, 2*time.Second, logging.NewNop())
}

func TestHealth(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/health", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("X-Request-Id"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":          "ok",
			"services":        map[string]bool{"face": true, "skin": true, "thermal": false},
			"thermal_enabled": false,
		})
	})

	h, err := c.Health(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ok", h.Status)
	require.True(t, h.Services["face"])
	require.False(t, h.ThermalEnabled)
}

func TestDetectFace_EncodesImageAsBase64(t *testing.T) {
	image := []byte{0xff, 0xd8, 0x01, 0x02}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/face/detect", r.URL.Path)
		var req struct {
			Image string `json:"image"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, base64.StdEncoding.EncodeToString(image), req.Image)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"face_detected": true,
			"bbox":          []float64{10, 20, 110, 140},
			"latency_ms":    12.5,
		})
	})

	d, err := c.DetectFace(context.Background(), image)
	require.NoError(t, err)
	require.True(t, d.FaceDetected)
	require.Len(t, d.BBox, 4)
}

func TestEnrollFace_SendsNameAndOrderedImages(t *testing.T) {
	images := [][]byte{{1}, {2}, {3}}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/face/enroll", r.URL.Path)
		var req struct {
			Name   string   `json:"name"`
			Images []string `json:"images"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "Dana", req.Name)
		require.Len(t, req.Images, 3)
		for i, img := range images {
			require.Equal(t, base64.StdEncoding.EncodeToString(img), req.Images[i])
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":         true,
			"user_id":         "u-42",
			"name":            "Dana",
			"quality_score":   0.91,
			"faces_processed": 3,
		})
	})

	e, err := c.EnrollFace(context.Background(), "Dana", images)
	require.NoError(t, err)
	require.True(t, e.Success)
	require.Equal(t, "u-42", e.UserID)
	require.InDelta(t, 0.91, e.QualityScore, 1e-9)
}

func TestTriggerAnalysis_NullMetricStaysNil(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/analyze", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"id": 7,
			"user_id": "u-42",
			"timestamp": "2025-11-02T10:00:00Z",
			"scores": {"skin": 80, "posture": 65, "eyes": 58, "thermal": null},
			"overall_score": 73.4,
			"weights_used": {"skin": 0.4, "posture": 0.35, "eyes": 0.25, "thermal": 0}
		}`))
	})

	a, err := c.TriggerAnalysis(context.Background(), "u-42")
	require.NoError(t, err)
	require.InDelta(t, 73.4, a.OverallScore, 1e-9)
	require.NotNil(t, a.Scores.Skin)
	require.InDelta(t, 80, *a.Scores.Skin, 1e-9)
	require.Nil(t, a.Scores.Thermal, "disabled metric must stay nil, not zero")
	require.InDelta(t, 0.4, a.WeightsUsed["skin"], 1e-9)
}

func TestDo_NonSuccessStatusBecomesServiceError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Name is required"}`))
	})

	_, err := c.EnrollFace(context.Background(), "", nil)
	require.Error(t, err)

	var se *ServiceError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusBadRequest, se.Status)
	require.Contains(t, se.Body, "Name is required")
}

func TestDo_TimeoutClassifiedAsServiceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL, 20*time.Millisecond, logging.NewNop())

	_, err := c.Health(context.Background())
	require.ErrorIs(t, err, common.ErrServiceUnavailable)
}

func TestDo_ConnectionRefusedClassifiedAsServiceUnavailable(t *testing.T) {
	// Port 1 is essentially guaranteed to refuse connections.
	c := NewHTTPClient("http://127.0.0.1:1", time.Second, logging.NewNop())

	_, err := c.DetectFace(context.Background(), []byte{1})
	require.ErrorIs(t, err, common.ErrServiceUnavailable)
}

func TestAnalysisHistory_Pagination(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/analysis/history/u-42", r.URL.Path)
		require.Equal(t, "5", r.URL.Query().Get("limit"))
		require.Equal(t, "10", r.URL.Query().Get("offset"))
		_, _ = w.Write([]byte(`{
			"total": 30, "limit": 5, "offset": 10,
			"analyses": [
				{"id": 11, "user_id": "u-42", "timestamp": "t", "skin_score": 70,
				 "posture_score": null, "eye_score": 60, "thermal_score": null,
				 "computed_score": 66.1}
			]
		}`))
	})

	p, err := c.AnalysisHistory(context.Background(), "u-42", 5, 10)
	require.NoError(t, err)
	require.Equal(t, 30, p.Total)
	require.Len(t, p.Analyses, 1)
	require.Nil(t, p.Analyses[0].PostureScore)
	require.NotNil(t, p.Analyses[0].SkinScore)
}
