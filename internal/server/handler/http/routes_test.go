package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/casetrackhq/casetrack/internal/middleware"
	"github.com/casetrackhq/casetrack/internal/models"
	handler "github.com/casetrackhq/casetrack/internal/server/handler/http"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var routerSecret = []byte("router-secret")

func newTestRouter(t *testing.T, share *fakeShareService, cases *fakeCaseService, imports *fakeImportService) http.Handler {
	t.Helper()
	if share == nil {
		share = &fakeShareService{}
	}
	if cases == nil {
		cases = &fakeCaseService{}
	}
	if imports == nil {
		imports = &fakeImportService{}
	}
	return handler.NewRouter(
		&handler.CaseHandler{CaseService: cases},
		&handler.UploadHandler{ImportService: imports},
		&handler.ShareHandler{ShareService: share},
		zap.NewNop(),
		routerSecret,
	)
}

func bearerToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: "hr-admin",
	})
	signed, err := token.SignedString(routerSecret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestRouter_ViewerLinkIsPublic(t *testing.T) {
	share := &fakeShareService{resolved: &models.Case{ID: "case1", EmployeeName: "Ada Lovelace"}}
	r := newTestRouter(t, share, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/share/tok-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d; want %d (no auth required for viewer links)", w.Code, http.StatusOK)
	}
}

func TestRouter_HealthIsPublic(t *testing.T) {
	r := newTestRouter(t, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d; want %d", w.Code, http.StatusOK)
	}
}

func TestRouter_CasesRequireAuth(t *testing.T) {
	r := newTestRouter(t, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cases", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d; want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestRouter_CasesWithToken(t *testing.T) {
	cases := &fakeCaseService{cases: []models.Case{{ID: "id1"}}}
	r := newTestRouter(t, nil, cases, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cases", nil)
	req.Header.Set("Authorization", "Bearer "+bearerToken(t))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}
	var got []models.Case
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	if len(got) != 1 || got[0].ID != "id1" {
		t.Errorf("cases = %+v; want the fake case", got)
	}
}

func TestRouter_ShareCreateRejectsNonJSON(t *testing.T) {
	r := newTestRouter(t, nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/share", bytes.NewBufferString("case_id=case1"))
	req.Header.Set("Authorization", "Bearer "+bearerToken(t))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d; want %d", w.Code, http.StatusUnsupportedMediaType)
	}
}

func TestRouter_ShareCreateWithToken(t *testing.T) {
	share := &fakeShareService{token: "tok-1", viewerURL: "https://hr.example.com/view/tok-1"}
	r := newTestRouter(t, share, nil, nil)

	b, _ := json.Marshal(map[string]string{"case_id": "case1", "email": "ada@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/api/share", bytes.NewReader(b))
	req.Header.Set("Authorization", "Bearer "+bearerToken(t))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d; body = %q", w.Code, http.StatusOK, w.Body.String())
	}
	if !share.issueCalled {
		t.Error("expected ShareService.Issue to be called")
	}
}

func TestRouter_UploadCarriesUploaderIdentity(t *testing.T) {
	imports := &fakeImportService{count: 1}
	r := newTestRouter(t, nil, nil, imports)

	req := multipartUpload(t, "cases.csv", []byte("Employee Name,Visa Type,Expiry Date\n"))
	req.Header.Set("Authorization", "Bearer "+bearerToken(t))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d; body = %q", w.Code, http.StatusOK, w.Body.String())
	}
	if imports.receivedUploader != "hr-admin" {
		t.Errorf("uploader = %q; want %q from the bearer token", imports.receivedUploader, "hr-admin")
	}
}
