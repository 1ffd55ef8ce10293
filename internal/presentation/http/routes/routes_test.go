package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sangkips/expedicao-api/internal/application/service"
	"github.com/sangkips/expedicao-api/internal/application/validation"
	"github.com/sangkips/expedicao-api/internal/config"
	"github.com/sangkips/expedicao-api/internal/domain/entity"
	"github.com/sangkips/expedicao-api/internal/infrastructure/maglog"
	"github.com/sangkips/expedicao-api/internal/infrastructure/repository"
	"github.com/sangkips/expedicao-api/internal/presentation/http/handler"
	"github.com/sangkips/expedicao-api/internal/presentation/http/middleware"
)

// fakeWMS answers every expedição post with the configured status and body
type fakeWMS struct {
	mu     sync.Mutex
	status int
	body   string
	bodies []entity.ExpedicaoPayload
}

func (f *fakeWMS) respond(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status, f.body = status, body
}

func (f *fakeWMS) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bodies)
}

func (f *fakeWMS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var p entity.ExpedicaoPayload
	_ = json.NewDecoder(r.Body).Decode(&p)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies = append(f.bodies, p)
	w.WriteHeader(f.status)
	_, _ = io.WriteString(w, f.body)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	router  *gin.Engine
	wms     *fakeWMS
	session string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	wms := &fakeWMS{status: http.StatusCreated, body: `{}`}
	srv := httptest.NewServer(wms)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		App:       config.AppConfig{Name: "expedicao-api-test"},
		Session:   config.SessionConfig{TTL: time.Hour, CookieName: "expedicao_session"},
		RateLimit: config.RateLimitConfig{Requests: 100, Duration: 1},
	}
	sessions := repository.NewMemorySessionRepository[*service.FormController](time.Hour, 0)
	client := maglog.NewClient(maglog.Config{URL: srv.URL}, srv.Client())
	forms := service.NewFormService(sessions, repository.NewExpedicaoRepository(client), validation.New(), nil)

	router, err := Setup(&Handlers{
		Form:      handler.NewFormHandler(),
		Expedicao: handler.NewExpedicaoHandler(),
	}, &Deps{Cfg: cfg, Forms: forms})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	return &testServer{router: router, wms: wms}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if s.session != "" {
		req.Header.Set(middleware.SessionHeader, s.session)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if s.session == "" {
		s.session = w.Header().Get(middleware.SessionHeader)
	}
	return w
}

func (s *testServer) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if s.session != "" {
		req.Header.Set(middleware.SessionHeader, s.session)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if s.session == "" {
		s.session = w.Header().Get(middleware.SessionHeader)
	}
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return env
}

func fillOrder(t *testing.T, s *testServer, documento string) {
	t.Helper()
	fields := []map[string]string{
		{"path": "Documento", "value": documento},
		{"path": "Destinatario.CNPJCPF", "value": "12345678000190"},
		{"path": "Destinatario.Nome", "value": "Loja Centro"},
		{"path": "Destinatario.Logradouro", "value": "Av. Paulista"},
		{"path": "Destinatario.Numero", "value": "1000"},
		{"path": "Destinatario.Bairro", "value": "Bela Vista"},
		{"path": "Destinatario.Cidade", "value": "São Paulo"},
		{"path": "Destinatario.UF", "value": "SP"},
		{"path": "Destinatario.CEP", "value": "99999"},
	}
	if w := s.do(t, http.MethodPatch, "/api/v1/expedicao/fields", map[string]any{"fields": fields}); w.Code != http.StatusOK {
		t.Fatalf("update fields: %d %s", w.Code, w.Body.String())
	}
	for _, f := range [][2]string{{"Codigo", "SKU-1"}, {"Unidade", "UN"}, {"Valor", "25"}} {
		w := s.do(t, http.MethodPatch, "/api/v1/expedicao/items/0", map[string]string{"field": f[0], "value": f[1]})
		if w.Code != http.StatusOK {
			t.Fatalf("update item: %d %s", w.Code, w.Body.String())
		}
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Fatalf("health: %d %s", w.Code, w.Body.String())
	}

	var health struct {
		Sessions    int            `json:"sessions"`
		RateLimiter map[string]any `json:"rate_limiter"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health.RateLimiter["burst_size"] != float64(100) {
		t.Fatalf("rate limiter stats missing from health: %v", health.RateLimiter)
	}
}

func TestAPIOpensSession(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/expedicao", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if s.session == "" {
		t.Fatal("no session id returned")
	}
	if !strings.Contains(w.Header().Get("Set-Cookie"), "expedicao_session="+s.session) {
		t.Fatalf("session cookie not set: %q", w.Header().Get("Set-Cookie"))
	}

	var state handler.FormState
	decode(t, w, &state)
	if len(state.Order.Itens) != 1 || state.Order.Itens[0].NrItem != "1" {
		t.Fatalf("unexpected default order %+v", state.Order)
	}
}

func TestAPIItems(t *testing.T) {
	s := newTestServer(t)

	for i := 0; i < 2; i++ {
		if w := s.do(t, http.MethodPost, "/api/v1/expedicao/items", nil); w.Code != http.StatusCreated {
			t.Fatalf("add item: %d", w.Code)
		}
	}
	w := s.do(t, http.MethodDelete, "/api/v1/expedicao/items/0", nil)
	var state handler.FormState
	decode(t, w, &state)
	if len(state.Order.Itens) != 2 || state.Order.Itens[1].NrItem != "2" {
		t.Fatalf("unexpected items %+v", state.Order.Itens)
	}

	if w := s.do(t, http.MethodDelete, "/api/v1/expedicao/items/9", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("out of range delete: %d", w.Code)
	}
	if w := s.do(t, http.MethodDelete, "/api/v1/expedicao/items/x", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("bad index: %d", w.Code)
	}
}

func TestAPIUnknownFieldChangesNothing(t *testing.T) {
	s := newTestServer(t)
	body := map[string]any{"fields": []map[string]string{
		{"path": "Documento", "value": "PED-9"},
		{"path": "Destinatario.Telefone", "value": "x"},
	}}

	w := s.do(t, http.MethodPatch, "/api/v1/expedicao/fields", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var state handler.FormState
	decode(t, s.do(t, http.MethodGet, "/api/v1/expedicao", nil), &state)
	if state.Order.Documento != "" {
		t.Fatalf("Documento = %q, want untouched", state.Order.Documento)
	}
}

func TestAPIPayloadPreview(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPatch, "/api/v1/expedicao/fields", map[string]any{"fields": []map[string]string{
		{"path": "Observacao", "value": "Frágil"},
	}})

	var p entity.ExpedicaoPayload
	decode(t, s.do(t, http.MethodGet, "/api/v1/expedicao/payload", nil), &p)

	if p.Observacao != entity.FixedObservation+" | Frágil" {
		t.Fatalf("Observacao = %q", p.Observacao)
	}
	if p.Transportadora.Nome != "Cliente Retira" {
		t.Fatalf("carrier = %+v, want pickup record", p.Transportadora)
	}
}

func TestAPISubmitRejectedThenAccepted(t *testing.T) {
	s := newTestServer(t)
	fillOrder(t, s, "PED-001")

	s.wms.respond(http.StatusBadRequest, `{"message":"invalid CEP"}`)
	w := s.do(t, http.MethodPost, "/api/v1/expedicao/submit", nil)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502: %s", w.Code, w.Body.String())
	}
	var failed handler.SubmitResult
	env := decode(t, w, &failed)
	if env.Success || failed.Notice.Message != "Erro ao criar pedido: invalid CEP" {
		t.Fatalf("unexpected failure result %+v", failed)
	}
	if failed.Order.Documento != "PED-001" || entity.StringValue(failed.Order.Destinatario.CEP) != "99999" {
		t.Fatalf("order not kept after failure: %+v", failed.Order)
	}

	s.wms.respond(http.StatusCreated, `{"id":1}`)
	w = s.do(t, http.MethodPost, "/api/v1/expedicao/submit", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	var ok handler.SubmitResult
	env = decode(t, w, &ok)
	want := `Pedido manual "PED-001" criado com sucesso para o cliente Um Grau e Meio!`
	if !env.Success || env.Message != want || ok.Notice.Message != want {
		t.Fatalf("unexpected success result %+v / %+v", env, ok)
	}
	if ok.Order.Documento != "" {
		t.Fatal("order not reset after success")
	}
	if s.wms.calls() != 2 {
		t.Fatalf("WMS calls = %d, want 2", s.wms.calls())
	}
}

func TestAPISubmitMalformedSuccessIsFailure(t *testing.T) {
	s := newTestServer(t)
	fillOrder(t, s, "PED-002")

	s.wms.respond(http.StatusOK, `not json`)
	w := s.do(t, http.MethodPost, "/api/v1/expedicao/submit", nil)

	var res handler.SubmitResult
	decode(t, w, &res)
	if w.Code != http.StatusBadGateway || res.Notice.Kind != service.NoticeFailure {
		t.Fatalf("status = %d notice = %+v", w.Code, res.Notice)
	}
	if res.Order.Documento != "PED-002" {
		t.Fatal("order lost after a malformed response")
	}
}

func TestFormPage(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Cadastro de Pedidos - Um Grau e Meio", `name="Itens[0].Codigo"`, entity.DefaultBranch().CNPJ} {
		if !strings.Contains(body, want) {
			t.Fatalf("form page missing %q", want)
		}
	}
}

func TestFormActions(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/", nil)

	w := s.postForm(t, "/", url.Values{"Documento": {"PED-5"}, "action": {"add_item"}})
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `name="Itens[1].Codigo"`) {
		t.Fatalf("add item: %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `value="PED-5"`) {
		t.Fatal("posted value lost on add item")
	}

	w = s.postForm(t, "/", url.Values{"action": {"remove_item:0"}})
	if strings.Contains(w.Body.String(), `name="Itens[1].Codigo"`) {
		t.Fatal("item not removed")
	}

	w = s.postForm(t, "/", url.Values{"action": {"reset"}})
	if strings.Contains(w.Body.String(), `value="PED-5"`) {
		t.Fatal("reset kept the order")
	}
}

func TestFormSubmitShowsNotice(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/", nil)
	form := url.Values{
		"Documento":               {"PED-001"},
		"Destinatario.CNPJCPF":    {"12345678000190"},
		"Destinatario.Nome":       {"Loja Centro"},
		"Destinatario.Logradouro": {"Av. Paulista"},
		"Destinatario.Numero":     {"1000"},
		"Destinatario.Bairro":     {"Bela Vista"},
		"Destinatario.Cidade":     {"São Paulo"},
		"Destinatario.UF":         {"SP"},
		"Destinatario.CEP":        {"99999"},
		"Itens[0].Codigo":         {"SKU-1"},
		"Itens[0].Unidade":        {"UN"},
		"Itens[0].Quantidade":     {"2"},
		"Itens[0].Valor":          {"25"},
	}

	s.wms.respond(http.StatusBadRequest, `{"message":"invalid CEP"}`)
	w := s.postForm(t, "/submit", form)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "window.alert") || !strings.Contains(body, "Erro ao criar pedido: invalid CEP") {
		t.Fatalf("failure alert missing from page:\n%s", body)
	}
	if !strings.Contains(body, `value="PED-001"`) {
		t.Fatal("form not kept after failure")
	}

	s.wms.respond(http.StatusCreated, `{}`)
	w = s.postForm(t, "/submit", form)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "criado com sucesso para o cliente Um Grau e Meio!") {
		t.Fatalf("success alert missing: %d", w.Code)
	}
	if strings.Contains(w.Body.String(), `value="PED-001"`) {
		t.Fatal("form not reset after success")
	}
}
