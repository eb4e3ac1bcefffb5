package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hrdesk-backend/domain/model"
	"hrdesk-backend/infrastructure/config"
	"hrdesk-backend/infrastructure/persistence"
)

func newTestServer(t *testing.T) (http.Handler, *persistence.Store) {
	t.Helper()
	cfg := &config.Config{
		SQLitePath: fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	}
	store, err := persistence.NewStore(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewRouter(store, zap.NewNop()).Setup(), store
}

// do runs a request with the given identity headers and decodes the envelope.
func do(t *testing.T, h http.Handler, method, path, username, role string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if username != "" {
		req.Header.Set("X-User-Name", username)
	}
	if role != "" {
		req.Header.Set("X-User-Role", role)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var envelope map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	}
	return rec, envelope
}

func dataField(t *testing.T, envelope map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := envelope["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %v", envelope)
	return data
}

func TestHealthEndpoints(t *testing.T) {
	h, _ := newTestServer(t)

	rec, body := do(t, h, http.MethodGet, "/health", "", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	stamp, ok := body["time"].(string)
	require.True(t, ok, "health response has no time field: %v", body)
	_, err := time.Parse(time.RFC3339, stamp)
	assert.NoError(t, err)

	rec, _ = do(t, h, http.MethodGet, "/ready", "", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestsWithoutIdentityAreRejected(t *testing.T) {
	h, _ := newTestServer(t)

	rec, envelope := do(t, h, http.MethodGet, "/api/v1/companies/", "", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, envelope["success"])
}

func TestRoleGateOnCompanyCreate(t *testing.T) {
	h, _ := newTestServer(t)
	body := map[string]interface{}{"name": "Acme", "spoc": "Jane", "email_id": "jane@acme.example"}

	rec, _ := do(t, h, http.MethodPost, "/api/v1/companies/", "ravi", model.RoleRecruiter, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, envelope := do(t, h, http.MethodPost, "/api/v1/companies/", "meera", model.RoleManager, body)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Acme", dataField(t, envelope)["name"])
}

func TestCompanyDuplicateNameConflicts(t *testing.T) {
	h, _ := newTestServer(t)
	body := map[string]interface{}{"name": "Acme"}

	rec, _ := do(t, h, http.MethodPost, "/api/v1/companies/", "meera", model.RoleManager, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, envelope := do(t, h, http.MethodPost, "/api/v1/companies/", "meera", model.RoleManager,
		map[string]interface{}{"name": "ACME"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, false, envelope["success"])
}

func TestCompanyGetMissingIs404(t *testing.T) {
	h, _ := newTestServer(t)

	rec, _ := do(t, h, http.MethodGet, "/api/v1/companies/999", "ravi", model.RoleRecruiter, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequirementTerminalStatusStampsClosedDate(t *testing.T) {
	h, _ := newTestServer(t)

	_, envelope := do(t, h, http.MethodPost, "/api/v1/companies/", "meera", model.RoleManager,
		map[string]interface{}{"name": "Acme"})
	companyID := int(dataField(t, envelope)["id"].(float64))

	rec, envelope := do(t, h, http.MethodPost, "/api/v1/requirements/", "meera", model.RoleManager,
		map[string]interface{}{"company_id": companyID, "key_skill": "go", "budget": 50.0})
	require.Equal(t, http.StatusCreated, rec.Code)
	reqID := int(dataField(t, envelope)["requirement_id"].(float64))
	assert.Nil(t, dataField(t, envelope)["closed_date"])

	rec, envelope = do(t, h, http.MethodPut, fmt.Sprintf("/api/v1/requirements/%d", reqID),
		"meera", model.RoleManager, map[string]interface{}{"status_id": 9})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, dataField(t, envelope)["closed_date"])
	assert.EqualValues(t, 9, dataField(t, envelope)["status_id"])
}

func TestLeaveApplyApproveFlow(t *testing.T) {
	h, _ := newTestServer(t)
	apply := map[string]interface{}{
		"leave_type": "annual",
		"start_date": "2026-09-07",
		"end_date":   "2026-09-08",
		"reason":     "family visit",
	}

	rec, envelope := do(t, h, http.MethodPost, "/api/v1/leaves/", "ravi", model.RoleRecruiter, apply)
	require.Equal(t, http.StatusCreated, rec.Code)
	leaveID := int(dataField(t, envelope)["id"].(float64))
	assert.Equal(t, "pending", dataField(t, envelope)["status"])

	// A second pending request is rejected.
	rec, _ = do(t, h, http.MethodPost, "/api/v1/leaves/", "ravi", model.RoleRecruiter, apply)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Balance is untouched until approval.
	rec, envelope = do(t, h, http.MethodGet, "/api/v1/leaves/balance", "ravi", model.RoleRecruiter, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, model.DefaultAnnualLeave, dataField(t, envelope)["annual_leave"])

	rec, envelope = do(t, h, http.MethodPut, fmt.Sprintf("/api/v1/leaves/%d/approve", leaveID),
		"meera", model.RoleManager, map[string]interface{}{"comments": "enjoy"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "approved", dataField(t, envelope)["status"])

	rec, envelope = do(t, h, http.MethodGet, "/api/v1/leaves/balance", "ravi", model.RoleRecruiter, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, model.DefaultAnnualLeave-2, dataField(t, envelope)["annual_leave"])

	// Deciding twice conflicts.
	rec, _ = do(t, h, http.MethodPut, fmt.Sprintf("/api/v1/leaves/%d/approve", leaveID),
		"meera", model.RoleManager, map[string]interface{}{})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLeaveApproveRequiresBackofficeRole(t *testing.T) {
	h, _ := newTestServer(t)

	rec, _ := do(t, h, http.MethodPut, "/api/v1/leaves/1/approve", "ravi", model.RoleRecruiter,
		map[string]interface{}{})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMandatoryHolidayCap(t *testing.T) {
	h, _ := newTestServer(t)

	rec, envelope := do(t, h, http.MethodPost, "/api/v1/financial-years/", "meera", model.RoleManager,
		map[string]interface{}{
			"year":       2026,
			"start_date": "2026-04-01",
			"end_date":   "2027-03-31",
			"is_active":  true,
		})
	require.Equal(t, http.StatusCreated, rec.Code)
	yearID := int(dataField(t, envelope)["id"].(float64))

	for i := 0; i < model.MaxMandatoryHolidays; i++ {
		rec, _ = do(t, h, http.MethodPost, "/api/v1/holidays/", "meera", model.RoleManager,
			map[string]interface{}{
				"financial_year_id": yearID,
				"name":              fmt.Sprintf("Holiday %d", i+1),
				"date":              fmt.Sprintf("2026-05-%02d", i+1),
				"is_mandatory":      true,
			})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, _ = do(t, h, http.MethodPost, "/api/v1/holidays/", "meera", model.RoleManager,
		map[string]interface{}{
			"financial_year_id": yearID,
			"name":              "One Too Many",
			"date":              "2026-06-01",
			"is_mandatory":      true,
		})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestInvoicesRequireFinanceRole(t *testing.T) {
	h, _ := newTestServer(t)

	rec, _ := do(t, h, http.MethodGet, "/api/v1/invoices/", "ravi", model.RoleRecruiter, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/api/v1/invoices/", "fatima", model.RoleFinance, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUsersMeEchoesPrincipal(t *testing.T) {
	h, _ := newTestServer(t)

	rec, envelope := do(t, h, http.MethodGet, "/api/v1/users/me", "ravi", model.RoleRecruiter, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := dataField(t, envelope)
	assert.Equal(t, "ravi", data["username"])
	assert.Equal(t, model.RoleRecruiter, data["role"])
}
