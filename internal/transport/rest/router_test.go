package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mwhitford/caseflow/internal/domain/caselookup"
	"github.com/mwhitford/caseflow/internal/domain/claim"
	"github.com/mwhitford/caseflow/internal/domain/evaluation"
	"github.com/mwhitford/caseflow/internal/domain/parentcase"
	"github.com/mwhitford/caseflow/internal/domain/report"
	"github.com/mwhitford/caseflow/internal/domain/user"
	"github.com/mwhitford/caseflow/internal/sqlite"
	"github.com/mwhitford/caseflow/internal/transport/rest"
)

type testEnv struct {
	router *gin.Engine
	users  *user.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	userRepo := sqlite.NewUserRepository(db)
	tokenRepo := sqlite.NewTokenRepository(db)
	activeRepo := sqlite.NewActiveClaimRepository(db)
	completeRepo := sqlite.NewCompleteClaimRepository(db)
	reviewedRepo := sqlite.NewReviewedClaimRepository(db)
	parentCaseRepo := sqlite.NewParentCaseRepository(db)
	evaluationRepo := sqlite.NewEvaluationRepository(db)
	reportRepo := sqlite.NewReportRepository(db)

	userSvc := user.NewService(userRepo, tokenRepo, logger)
	claimSvc := claim.NewService(activeRepo, completeRepo, reviewedRepo, userRepo, nil, logger)
	lookupSvc := caselookup.NewService(activeRepo, completeRepo, reviewedRepo, logger)
	parentCaseSvc := parentcase.NewService(parentCaseRepo, logger)
	evaluationSvc := evaluation.NewService(evaluationRepo, evaluationRepo, userRepo, logger)
	reportSvc := report.NewService(reportRepo, userRepo, logger)

	router := rest.NewRouter(rest.Services{
		Users:       userSvc,
		Claims:      claimSvc,
		Lookup:      lookupSvc,
		ParentCases: parentCaseSvc,
		Evaluations: evaluationSvc,
		Reports:     reportSvc,
	}, logger)

	return &testEnv{router: router, users: userSvc}
}

// signup creates an account with the given roles and returns its ID and a
// valid API token.
func (e *testEnv) signup(t *testing.T, username string, roles ...user.Role) (string, string) {
	t.Helper()
	ctx := context.Background()

	account, token, err := e.users.Signup(ctx, user.SignupRequest{Username: username, Password: "pw"})
	require.NoError(t, err)
	for _, role := range roles {
		require.NoError(t, e.users.Grant(ctx, account.ID, role))
	}
	return account.ID, token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/activeclaim/list/", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/activeclaim/list/", "not-a-real-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoleGates(t *testing.T) {
	env := newTestEnv(t)
	_, noRoles := env.signup(t, "newbie")
	_, techToken := env.signup(t, "alice", user.RoleTech)

	// A fresh account holds no roles at all.
	rec := env.do(t, http.MethodGet, "/activeclaim/list/", noRoles, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Tech endpoints work, lead endpoints don't.
	rec = env.do(t, http.MethodGet, "/activeclaim/list/", techToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/completeclaim/list/", techToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSignupAndLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/user/signup/", "", map[string]string{
		"username": "alice", "password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotEmpty(t, decode(t, rec)["token"])

	// Duplicate username rejected.
	rec = env.do(t, http.MethodPost, "/user/signup/", "", map[string]string{
		"username": "alice", "password": "other",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/user/login/", "", map[string]string{
		"username": "alice", "password": "hunter22",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	token, ok := decode(t, rec)["token"].(string)
	require.True(t, ok)

	rec = env.do(t, http.MethodGet, "/user/test-token/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "alice", decode(t, rec)["username"])

	rec = env.do(t, http.MethodPost, "/user/login/", "", map[string]string{
		"username": "alice", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestClaimLifecycle(t *testing.T) {
	env := newTestEnv(t)
	_, techToken := env.signup(t, "alice", user.RoleTech)
	_, leadToken := env.signup(t, "carol", user.RoleTech, user.RoleLead)

	// Claim.
	rec := env.do(t, http.MethodPost, "/activeclaim/create/70012345", techToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Second claim on the same case fails.
	rec = env.do(t, http.MethodPost, "/activeclaim/create/70012345", leadToken, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Bad case number format.
	rec = env.do(t, http.MethodPost, "/activeclaim/create/123", techToken, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Complete.
	rec = env.do(t, http.MethodDelete, "/activeclaim/complete/70012345", techToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	completeID, ok := decode(t, rec)["id"].(string)
	require.True(t, ok)

	// The active claim is gone.
	rec = env.do(t, http.MethodGet, "/activeclaim/list/", techToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "[]", rec.Body.String())

	// Begin review, then review with kudos.
	rec = env.do(t, http.MethodPost, "/completeclaim/begin-review/"+completeID, leadToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "carol", decode(t, rec)["lead"])

	rec = env.do(t, http.MethodPost, "/completeclaim/review/"+completeID, leadToken, map[string]string{
		"status": "kudos", "comment": "solid work",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	require.Equal(t, "alice", body["tech"])
	require.Equal(t, "kudos", body["status"])

	// The complete claim is gone too.
	rec = env.do(t, http.MethodGet, "/completeclaim/list/", leadToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "[]", rec.Body.String())

	// Review without a status is rejected up front.
	rec = env.do(t, http.MethodPost, "/completeclaim/review/whatever", leadToken, map[string]string{
		"comment": "no status",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnclaim(t *testing.T) {
	env := newTestEnv(t)
	_, aliceToken := env.signup(t, "alice", user.RoleTech)
	_, bobToken := env.signup(t, "bob", user.RoleTech)
	_, leadToken := env.signup(t, "carol", user.RoleTech, user.RoleLead)

	rec := env.do(t, http.MethodPost, "/activeclaim/create/70012345", aliceToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Another tech cannot release it.
	rec = env.do(t, http.MethodDelete, "/activeclaim/unclaim/70012345", bobToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// The owner can.
	rec = env.do(t, http.MethodDelete, "/activeclaim/unclaim/70012345", aliceToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// And once freed, the case can be claimed again; a lead can force it off.
	rec = env.do(t, http.MethodPost, "/activeclaim/create/70012345", bobToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodDelete, "/activeclaim/unclaim/70012345", leadToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodDelete, "/activeclaim/unclaim/70012345", leadToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPingCycle(t *testing.T) {
	env := newTestEnv(t)
	aliceID, aliceToken := env.signup(t, "alice", user.RoleTech)
	_, bobToken := env.signup(t, "bob", user.RoleTech)
	_, leadToken := env.signup(t, "carol", user.RoleTech, user.RoleLead)

	// Lead pings alice on a case outside the normal flow.
	rec := env.do(t, http.MethodPost, "/reviewedclaim/create-ping/", leadToken, map[string]any{
		"casenum": "70055555", "tech_id": aliceID, "severity": "pingedmed", "comment": "missing case notes",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	pingID, ok := decode(t, rec)["id"].(string)
	require.True(t, ok)

	// Techs cannot create pings.
	rec = env.do(t, http.MethodPost, "/reviewedclaim/create-ping/", aliceToken, map[string]any{
		"casenum": "70055556", "tech_id": aliceID, "severity": "pingedlow", "comment": "x",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Unknown severity is rejected.
	rec = env.do(t, http.MethodPost, "/reviewedclaim/create-ping/", leadToken, map[string]any{
		"casenum": "70055556", "tech_id": aliceID, "severity": "kudos", "comment": "x",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Resolve before acknowledge is rejected.
	rec = env.do(t, http.MethodPost, "/reviewedclaim/resolve/"+pingID, leadToken, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Someone else's tech cannot acknowledge.
	rec = env.do(t, http.MethodPost, "/reviewedclaim/acknowledge/"+pingID, bobToken, map[string]string{
		"acknowledge_comment": "not mine",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)

	// The pinged tech acknowledges.
	rec = env.do(t, http.MethodPost, "/reviewedclaim/acknowledge/"+pingID, aliceToken, map[string]string{
		"acknowledge_comment": "will add notes going forward",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "acknowledged", decode(t, rec)["status"])

	// Acknowledging twice fails: the claim is no longer in a pinged state.
	rec = env.do(t, http.MethodPost, "/reviewedclaim/acknowledge/"+pingID, aliceToken, map[string]string{
		"acknowledge_comment": "again",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// The lead resolves.
	rec = env.do(t, http.MethodPost, "/reviewedclaim/resolve/"+pingID, leadToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "resolved", decode(t, rec)["status"])

	// Alice sees her ping history; bob cannot read it.
	rec = env.do(t, http.MethodGet, "/reviewedclaim/getpings/"+aliceID, aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/reviewedclaim/getpings/"+aliceID, bobToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/reviewedclaim/getpings/"+aliceID, leadToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCaseLookup(t *testing.T) {
	env := newTestEnv(t)
	_, techToken := env.signup(t, "alice", user.RoleTech)
	_, leadToken := env.signup(t, "carol", user.RoleTech, user.RoleLead)

	rec := env.do(t, http.MethodPost, "/activeclaim/create/70012345", techToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Lookup wants at least lead.
	rec = env.do(t, http.MethodGet, "/caselookup/search/70012345", techToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/caselookup/search/70012345", leadToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "active", decode(t, rec)["current_status"])

	rec = env.do(t, http.MethodGet, "/caselookup/status/70012345", leadToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/caselookup/history/70012345", leadToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/caselookup/search/70099999", leadToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestParentCases(t *testing.T) {
	env := newTestEnv(t)
	_, techToken := env.signup(t, "alice", user.RoleTech)
	_, leadToken := env.signup(t, "carol", user.RoleTech, user.RoleLead)

	rec := env.do(t, http.MethodPost, "/parentcase/create/", leadToken, map[string]string{
		"case_number": "70099999", "description": "VPN cluster outage",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	pcID, ok := decode(t, rec)["id"].(string)
	require.True(t, ok)

	// Techs can browse but not create.
	rec = env.do(t, http.MethodPost, "/parentcase/create/", techToken, map[string]string{
		"case_number": "70088888", "description": "x",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/parentcase/list/", techToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Duplicate case number.
	rec = env.do(t, http.MethodPost, "/parentcase/create/", leadToken, map[string]string{
		"case_number": "70099999", "description": "dup",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Toggling hides it from the active list.
	rec = env.do(t, http.MethodPost, "/parentcase/toggle/"+pcID, leadToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/parentcase/list/", techToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "[]", rec.Body.String())
}

func TestEvaluations(t *testing.T) {
	env := newTestEnv(t)
	aliceID, aliceToken := env.signup(t, "alice", user.RoleTech)
	_, bobToken := env.signup(t, "bob", user.RoleTech)
	_, leadToken := env.signup(t, "carol", user.RoleTech, user.RoleLead)

	rec := env.do(t, http.MethodPost, "/evaluation/create/", leadToken, map[string]any{
		"tech_id":        aliceID,
		"period_start":   "2026-07-01",
		"period_end":     "2026-07-31",
		"strengths":      "thorough notes",
		"overall_rating": 4,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	evalID, ok := decode(t, rec)["id"].(string)
	require.True(t, ok)

	// Out-of-range rating.
	rec = env.do(t, http.MethodPost, "/evaluation/create/", leadToken, map[string]any{
		"tech_id": aliceID, "period_start": "2026-07-01", "period_end": "2026-07-31", "overall_rating": 6,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// A tech reads their own evaluations but not a peer's.
	rec = env.do(t, http.MethodGet, "/evaluation/tech/"+aliceID, aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/evaluation/tech/"+aliceID, bobToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/evaluation/tech/"+aliceID, leadToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/evaluation/metrics/"+aliceID+"?period_start=2026-07-01&period_end=2026-07-31", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Detail follows the same self-or-lead rule.
	rec = env.do(t, http.MethodGet, "/evaluation/detail/"+evalID, aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/evaluation/detail/"+evalID, bobToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Leads edit; techs cannot.
	rec = env.do(t, http.MethodPatch, "/evaluation/update/"+evalID, leadToken, map[string]any{
		"strengths": "consistent follow-up",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "consistent follow-up", decode(t, rec)["strengths"])

	rec = env.do(t, http.MethodPatch, "/evaluation/update/"+evalID, aliceToken, map[string]any{
		"strengths": "x",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodDelete, "/evaluation/delete/"+evalID, leadToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/evaluation/detail/"+evalID, leadToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReports(t *testing.T) {
	env := newTestEnv(t)
	aliceID, techToken := env.signup(t, "alice", user.RoleTech)
	_, leadToken := env.signup(t, "carol", user.RoleTech, user.RoleLead)

	rec := env.do(t, http.MethodGet, "/reports/summary/", techToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/reports/summary/", leadToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/reports/user/"+aliceID, leadToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/reports/leaderboard/?days=30&limit=5", leadToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/reports/leaderboard/?days=bogus", leadToken, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/reports/ping-stats/", leadToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/reports/date-range/?start_date=2026-07-01&end_date=2026-07-31", leadToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Reversed and missing ranges rejected.
	rec = env.do(t, http.MethodGet, "/reports/date-range/?start_date=2026-07-31&end_date=2026-07-01", leadToken, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/reports/date-range/", leadToken, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
