package http_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ne-taxonomy/internal/application/auth"
	"github.com/jhoicas/ne-taxonomy/internal/application/dto"
	"github.com/jhoicas/ne-taxonomy/internal/application/usecase"
	"github.com/jhoicas/ne-taxonomy/internal/domain/entity"
	"github.com/jhoicas/ne-taxonomy/internal/infrastructure/memory"
	"github.com/jhoicas/ne-taxonomy/internal/infrastructure/xmldoc"
	apphttp "github.com/jhoicas/ne-taxonomy/internal/interfaces/http"
	"github.com/jhoicas/ne-taxonomy/pkg/logger"
	"github.com/jhoicas/ne-taxonomy/pkg/netype"
)

type testServer struct {
	app      *fiber.App
	labels   *memory.LabelRepo
	accounts *memory.AccountRepo
	authUC   *auth.AuthUseCase
	logs     *bytes.Buffer
}

// newTestServer monta el router completo sobre repositorios en memoria.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	labels := memory.NewLabelRepository()
	accounts := memory.NewAccountRepository()
	authUC := auth.NewAuthUseCase(accounts, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}).
		WithBcryptCost(bcrypt.MinCost)

	logs := &bytes.Buffer{}
	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.New(logger.Config{Env: "test", Level: "info", Out: logs})))
	apphttp.Router(app, apphttp.RouterDeps{
		NETypeUC:  usecase.NewNETypeUseCase(netype.Default(), nil, xmldoc.NewXMLBuilderService()),
		LabelUC:   usecase.NewLabelUseCase(labels, memory.NewTxRunner(labels)),
		AuthUC:    authUC,
		JWTSecret: testJWTSecret,
	})
	return &testServer{app: app, labels: labels, accounts: accounts, authUC: authUC, logs: logs}
}

func (s *testServer) do(t *testing.T, method, path, role string, body io.Reader, contentType string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (s *testServer) doJSON(t *testing.T, method, path, role string, payload interface{}) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	return s.do(t, method, path, role, body, fiber.MIMEApplicationJSON)
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// ──────────────────────────────────────────────────────────────────────────────
// /api/ne-types
// ──────────────────────────────────────────────────────────────────────────────

func TestNETypes_RequiereToken(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/api/ne-types", "", nil, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestNETypes_ListYFiltro(t *testing.T) {
	s := newTestServer(t)

	var all dto.NETypeListResponse
	decode(t, s.do(t, http.MethodGet, "/api/ne-types", entity.RoleUser, nil, ""), &all)
	assert.Equal(t, 46, all.Total)
	assert.Equal(t, 46, all.TotalNotFiltered)
	require.Len(t, all.Items, 46)
	assert.Equal(t, "ah", all.Items[0].Code)

	var filtered dto.NETypeListResponse
	decode(t, s.do(t, http.MethodGet, "/api/ne-types?search=month", entity.RoleUser, nil, ""), &filtered)
	require.Len(t, filtered.Items, 1)
	assert.Equal(t, "tm", filtered.Items[0].Code)
	assert.Equal(t, 46, filtered.TotalNotFiltered)
}

func TestNETypes_GetPorCodigo(t *testing.T) {
	s := newTestServer(t)

	var out dto.NETypeResponse
	resp := s.do(t, http.MethodGet, "/api/ne-types/PF", entity.RoleUser, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &out)
	assert.Equal(t, "pf", out.Code)
	assert.Equal(t, "first names", out.Label)
	assert.Equal(t, "p", out.Supertype)
	assert.False(t, out.Underspecified)

	resp = s.do(t, http.MethodGet, "/api/ne-types/zz", entity.RoleUser, nil, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNETypes_ExportCSV(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/api/ne-types/export/csv", entity.RoleUser, nil, "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "ne-types.csv")
	records, err := csv.NewReader(resp.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 47)
	assert.Equal(t, []string{"code", "label"}, records[0])
}

func TestNETypes_ExportXMLYPDFSinGenerador(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodGet, "/api/ne-types/export/xml", entity.RoleUser, nil, "")
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `code="ty"`)
	etag := resp.Header.Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/api/ne-types/export/xml", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleUser))
	req.Header.Set("If-None-Match", etag)
	cached, err := s.app.Test(req, -1)
	require.NoError(t, err)
	cached.Body.Close()
	assert.Equal(t, http.StatusNotModified, cached.StatusCode)

	// Sin generador PDF configurado el caso de uso falla.
	resp = s.do(t, http.MethodGet, "/api/ne-types/export/pdf", entity.RoleUser, nil, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestErrorInterno_NoExponeLaCausaYLaRegistra(t *testing.T) {
	s := newTestServer(t)

	var out dto.ErrorResponse
	resp := s.do(t, http.MethodGet, "/api/ne-types/export/pdf", entity.RoleUser, nil, "")
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	decode(t, resp, &out)
	assert.Equal(t, "INTERNAL", out.Code)
	assert.Equal(t, "error interno", out.Message)

	logs := s.logs.String()
	assert.Contains(t, logs, "PDF no configurada")
	assert.Contains(t, logs, `"level":"error"`)
	assert.Contains(t, logs, "/api/ne-types/export/pdf")
}

// ──────────────────────────────────────────────────────────────────────────────
// /api/labels
// ──────────────────────────────────────────────────────────────────────────────

func TestLabels_CrearYListarSegunRol(t *testing.T) {
	s := newTestServer(t)

	resp := s.doJSON(t, http.MethodPost, "/api/labels", entity.RoleUser,
		dto.CreateLabelRequest{Label: "Brno", Replacement: "Ostrava"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	var asUser dto.LabelListResponse
	decode(t, s.do(t, http.MethodGet, "/api/labels", entity.RoleUser, nil, ""), &asUser)
	require.Len(t, asUser.Items, 1)
	assert.Equal(t, "Brno", asUser.Items[0].Label)
	assert.Nil(t, asUser.Items[0].Replacement, "el reemplazo solo se expone a administradores")

	var asAdmin dto.LabelListResponse
	decode(t, s.do(t, http.MethodGet, "/api/labels", entity.RoleAdmin, nil, ""), &asAdmin)
	require.Len(t, asAdmin.Items, 1)
	require.NotNil(t, asAdmin.Items[0].Replacement)
	assert.Equal(t, "Ostrava", *asAdmin.Items[0].Replacement)
	assert.Equal(t, 1, asAdmin.Total)
}

func TestLabels_CrearDuplicadoYVacio(t *testing.T) {
	s := newTestServer(t)

	resp := s.doJSON(t, http.MethodPost, "/api/labels", entity.RoleUser, dto.CreateLabelRequest{Label: "Praha"})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = s.doJSON(t, http.MethodPost, "/api/labels", entity.RoleUser, dto.CreateLabelRequest{Label: "Praha"})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = s.doJSON(t, http.MethodPost, "/api/labels", entity.RoleUser, dto.CreateLabelRequest{Label: ""})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLabels_RutasAdminBloqueadasParaUser(t *testing.T) {
	s := newTestServer(t)
	cases := []struct{ method, path string }{
		{http.MethodGet, "/api/labels/export"},
		{http.MethodPost, "/api/labels/import"},
		{http.MethodPut, "/api/labels/x"},
		{http.MethodDelete, "/api/labels/x"},
		{http.MethodPost, "/api/auth/register"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			resp := s.do(t, tc.method, tc.path, entity.RoleUser, nil, "")
			defer resp.Body.Close()
			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		})
	}
}

func TestLabels_UpdateYDelete(t *testing.T) {
	s := newTestServer(t)

	var created dto.LabelResponse
	decode(t, s.doJSON(t, http.MethodPost, "/api/labels", entity.RoleAdmin,
		dto.CreateLabelRequest{Label: "Jihlava", Replacement: "Tábor"}), &created)
	require.NotEmpty(t, created.ID)

	var updated dto.LabelResponse
	resp := s.doJSON(t, http.MethodPut, "/api/labels/"+created.ID, entity.RoleAdmin,
		dto.UpdateLabelRequest{Name: usecase.LabelFieldReplacement, Value: "Kolín"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &updated)
	require.NotNil(t, updated.Replacement)
	assert.Equal(t, "Kolín", *updated.Replacement)

	resp = s.doJSON(t, http.MethodPut, "/api/labels/"+created.ID, entity.RoleAdmin,
		dto.UpdateLabelRequest{Name: "color", Value: "x"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.do(t, http.MethodDelete, "/api/labels/"+created.ID, entity.RoleAdmin, nil, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.do(t, http.MethodDelete, "/api/labels/"+created.ID, entity.RoleAdmin, nil, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLabels_ImportYExport(t *testing.T) {
	s := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "labels.csv")
	require.NoError(t, err)
	_, err = io.WriteString(fw, "label,replacement\nBrno,Ostrava\nPlzeň,Zlín\n,huérfano\n")
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("charset", "utf-8"))
	require.NoError(t, mw.Close())

	var imported dto.ImportLabelsResponse
	resp := s.do(t, http.MethodPost, "/api/labels/import", entity.RoleAdmin, &buf, mw.FormDataContentType())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &imported)
	assert.Equal(t, 2, imported.Created)
	assert.Equal(t, 0, imported.Updated)
	assert.Equal(t, 1, imported.Skipped)

	n, err := s.labels.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	resp = s.do(t, http.MethodGet, "/api/labels/export", entity.RoleAdmin, nil, "")
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(string(body), "label,replacement\n"))
	assert.Contains(t, string(body), "Brno,Ostrava")
	assert.Contains(t, string(body), "Plzeň,Zlín")
}

func TestLabels_ImportSinArchivo(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/labels/import", entity.RoleAdmin, nil, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// /api/auth
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_RegistroPorAdminYLogin(t *testing.T) {
	s := newTestServer(t)

	resp := s.doJSON(t, http.MethodPost, "/api/auth/register", entity.RoleAdmin, dto.RegisterRequest{
		Email: "anotador@example.org", Password: "password123", FullName: "Anotador",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var login dto.LoginResponse
	resp = s.doJSON(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email: "anotador@example.org", Password: "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &login)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, entity.RoleUser, login.Account.Role)

	resp = s.doJSON(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email: "anotador@example.org", Password: "otra-clave",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLabels_IDMalFormadoDevuelve404(t *testing.T) {
	s := newTestServer(t)

	for _, id := range []string{"no-es-uuid", "42"} {
		resp := s.doJSON(t, http.MethodPut, "/api/labels/"+id, entity.RoleAdmin,
			dto.UpdateLabelRequest{Name: usecase.LabelFieldName, Value: "x"})
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "PUT "+id)

		resp = s.do(t, http.MethodDelete, "/api/labels/"+id, entity.RoleAdmin, nil, "")
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "DELETE "+id)
	}
}

func TestLabels_LongitudMaximaDevuelve400(t *testing.T) {
	s := newTestServer(t)

	resp := s.doJSON(t, http.MethodPost, "/api/labels", entity.RoleAdmin,
		dto.CreateLabelRequest{Label: strings.Repeat("a", usecase.MaxLabelLength+1)})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var list dto.LabelListResponse
	decode(t, s.do(t, http.MethodGet, "/api/labels", entity.RoleAdmin, nil, ""), &list)
	assert.Zero(t, list.Total)
}

func TestLabels_ListadoSinTotalDuplicado(t *testing.T) {
	s := newTestServer(t)
	resp := s.doJSON(t, http.MethodPost, "/api/labels", entity.RoleAdmin, dto.CreateLabelRequest{Label: "Brno"})
	resp.Body.Close()

	var raw map[string]json.RawMessage
	decode(t, s.do(t, http.MethodGet, "/api/labels?limit=5", entity.RoleAdmin, nil, ""), &raw)
	assert.JSONEq(t, `1`, string(raw["total"]))
	assert.JSONEq(t, `{"limit":5,"offset":0}`, string(raw["page"]))
}

// ──────────────────────────────────────────────────────────────────────────────
// Gestión de cuentas
// ──────────────────────────────────────────────────────────────────────────────

// seedCaller persiste la cuenta que corresponde al token de tokenForRole.
func (s *testServer) seedCaller(t *testing.T, role, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, s.accounts.Create(context.Background(), &entity.Account{
		ID: testAccountID, Email: "caller@example.org", PasswordHash: string(hash),
		FullName: "Caller", Role: role, Status: entity.AccountActive,
	}))
}

func (s *testServer) register(t *testing.T, email string) dto.AccountResponse {
	t.Helper()
	var out dto.AccountResponse
	resp := s.doJSON(t, http.MethodPost, "/api/auth/register", entity.RoleAdmin, dto.RegisterRequest{
		Email: email, Password: "password123", FullName: "Anotador",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &out)
	return out
}

func TestCuentas_DesactivarBloqueaLogin(t *testing.T) {
	s := newTestServer(t)
	s.seedCaller(t, entity.RoleAdmin, "admin-pass-1")
	user := s.register(t, "anotador@example.org")

	var updated dto.AccountResponse
	resp := s.doJSON(t, http.MethodPut, "/api/auth/users/"+user.ID+"/status", entity.RoleAdmin,
		dto.UpdateStatusRequest{Status: entity.AccountInactive})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &updated)
	assert.Equal(t, entity.AccountInactive, updated.Status)

	var out dto.ErrorResponse
	resp = s.doJSON(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email: "anotador@example.org", Password: "password123",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	decode(t, resp, &out)
	assert.Equal(t, "cuenta inactiva", out.Message)

	resp = s.doJSON(t, http.MethodPut, "/api/auth/users/"+testAccountID+"/status", entity.RoleAdmin,
		dto.UpdateStatusRequest{Status: entity.AccountInactive})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "un admin no se desactiva a sí mismo")
}

func TestCuentas_ListarYEliminar(t *testing.T) {
	s := newTestServer(t)
	s.seedCaller(t, entity.RoleAdmin, "admin-pass-1")
	user := s.register(t, "anotador@example.org")

	var list dto.AccountListResponse
	decode(t, s.do(t, http.MethodGet, "/api/auth/users", entity.RoleAdmin, nil, ""), &list)
	assert.Equal(t, 2, list.Total)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "anotador@example.org", list.Items[0].Email)

	resp := s.do(t, http.MethodGet, "/api/auth/users", entity.RoleUser, nil, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.do(t, http.MethodDelete, "/api/auth/users/"+user.ID, entity.RoleAdmin, nil, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	for _, id := range []string{user.ID, "no-es-uuid"} {
		resp = s.do(t, http.MethodDelete, "/api/auth/users/"+id, entity.RoleAdmin, nil, "")
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, id)
	}
}

func TestCuentas_CambiarPasswordPropia(t *testing.T) {
	s := newTestServer(t)
	s.seedCaller(t, entity.RoleUser, "vieja-clave-1")

	var out dto.ErrorResponse
	resp := s.doJSON(t, http.MethodPut, "/api/account/password", entity.RoleUser,
		dto.ChangePasswordRequest{CurrentPassword: "incorrecta", NewPassword: "nueva-clave-1"})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	decode(t, resp, &out)
	assert.Equal(t, "WRONG_PASSWORD", out.Code)

	resp = s.doJSON(t, http.MethodPut, "/api/account/password", entity.RoleUser,
		dto.ChangePasswordRequest{CurrentPassword: "vieja-clave-1", NewPassword: "corta"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.doJSON(t, http.MethodPut, "/api/account/password", entity.RoleUser,
		dto.ChangePasswordRequest{CurrentPassword: "vieja-clave-1", NewPassword: "nueva-clave-1"})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.doJSON(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email: "caller@example.org", Password: "nueva-clave-1",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
