package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/closedcode/gateway-admin/internal/models"
)

func seedLog(t *testing.T, db *gorm.DB, ts time.Time, action, status string, tokens int64) models.AuditLog {
	t.Helper()
	row := models.AuditLog{
		Timestamp:     ts,
		Action:        action,
		Status:        status,
		TokensUsed:    &tokens,
		ModelResponse: datatypes.JSON([]byte(`{"finish_reason":"stop"}`)),
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("seed log: %v", err)
	}
	return row
}

func TestListAuditLogsWithDateRange(t *testing.T) {
	db := setupHandlerDB(t)
	router := setupUserRouter(t, db)

	base := time.Date(2026, 8, 10, 8, 0, 0, 0, time.UTC)
	seedLog(t, db, base.Add(-time.Hour), "chat.completion", models.AuditStatusSuccess, 10)
	inRange := seedLog(t, db, base.Add(time.Minute), "chat.completion", models.AuditStatusSuccess, 20)
	seedLog(t, db, base.Add(3*time.Hour), "chat.completion", models.AuditStatusSuccess, 30)

	query := url.Values{}
	query.Set("from_date", base.Format(time.RFC3339))
	query.Set("to_date", base.Add(time.Hour).Format(time.RFC3339))
	req := httptest.NewRequest(http.MethodGet, "/api/audit-logs?"+query.Encode(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Logs []struct {
			ID string `json:"id"`
		} `json:"logs"`
		Total  int64 `json:"total"`
		Limit  int   `json:"limit"`
		Offset int   `json:"offset"`
	}
	if errDecode := json.Unmarshal(w.Body.Bytes(), &resp); errDecode != nil {
		t.Fatalf("decode response: %v", errDecode)
	}
	if resp.Total != 1 || len(resp.Logs) != 1 || resp.Logs[0].ID != inRange.ID {
		t.Fatalf("unexpected listing: %+v", resp)
	}
	if resp.Limit != 50 {
		t.Fatalf("expected default limit 50, got %d", resp.Limit)
	}
}

func TestListAuditLogsRejectsBadDate(t *testing.T) {
	db := setupHandlerDB(t)
	router := setupUserRouter(t, db)

	req := httptest.NewRequest(http.MethodGet, "/api/audit-logs?from_date=yesterday", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestGetAuditLogDetail(t *testing.T) {
	db := setupHandlerDB(t)
	router := setupUserRouter(t, db)

	row := seedLog(t, db, time.Now().UTC(), "chat.completion", models.AuditStatusError, 42)

	req := httptest.NewRequest(http.MethodGet, "/api/audit-logs/"+row.ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		ID            string         `json:"id"`
		Status        string         `json:"status"`
		TokensUsed    *int64         `json:"tokens_used"`
		ModelResponse map[string]any `json:"model_response"`
		Prompt        *string        `json:"prompt"`
	}
	if errDecode := json.Unmarshal(w.Body.Bytes(), &resp); errDecode != nil {
		t.Fatalf("decode response: %v", errDecode)
	}
	if resp.ID != row.ID || resp.Status != models.AuditStatusError {
		t.Fatalf("unexpected log: %+v", resp)
	}
	if resp.TokensUsed == nil || *resp.TokensUsed != 42 {
		t.Fatalf("expected tokens_used=42, got %v", resp.TokensUsed)
	}
	if resp.ModelResponse["finish_reason"] != "stop" {
		t.Fatalf("expected model_response payload, got %v", resp.ModelResponse)
	}
	if resp.Prompt != nil {
		t.Fatalf("expected null prompt, got %v", *resp.Prompt)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/audit-logs/no-such-id", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestStatsSummary(t *testing.T) {
	db := setupHandlerDB(t)
	router := setupUserRouter(t, db)

	seedUser(t, db, "stats@example.com", "sub-stats")
	now := time.Now().UTC()
	seedLog(t, db, now.Add(-time.Hour), "chat.completion", models.AuditStatusSuccess, 100)
	seedLog(t, db, now.Add(-2*time.Hour), "chat.completion", models.AuditStatusBlocked, 50)
	seedLog(t, db, now.Add(-48*time.Hour), "chat.completion", models.AuditStatusSuccess, 999)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		TotalUsers    int64 `json:"total_users"`
		ActiveUsers   int64 `json:"active_users"`
		TotalLogs     int64 `json:"total_logs"`
		TokensUsed24h int64 `json:"tokens_used_24h"`
		LogsByStatus  []struct {
			Status string `json:"status"`
			Count  int64  `json:"count"`
		} `json:"logs_by_status"`
	}
	if errDecode := json.Unmarshal(w.Body.Bytes(), &resp); errDecode != nil {
		t.Fatalf("decode response: %v", errDecode)
	}
	if resp.TotalUsers != 1 || resp.ActiveUsers != 1 {
		t.Fatalf("unexpected user counts: %+v", resp)
	}
	if resp.TotalLogs != 3 {
		t.Fatalf("expected 3 logs, got %d", resp.TotalLogs)
	}
	if resp.TokensUsed24h != 150 {
		t.Fatalf("expected 150 tokens in last 24h, got %d", resp.TokensUsed24h)
	}
	if len(resp.LogsByStatus) != 2 {
		t.Fatalf("expected 2 status buckets, got %+v", resp.LogsByStatus)
	}
}
