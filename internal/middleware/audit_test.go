package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/kobisoft/crm-api/internal/audit"
	"github.com/kobisoft/crm-api/internal/auth"
	"github.com/kobisoft/crm-api/internal/authz"
	"github.com/kobisoft/crm-api/internal/models"
)

// captureStore audit kayıtlarını bellekte toplayan test store'u
type captureStore struct {
	mu      sync.Mutex
	entries []*models.AuditLog
}

func (c *captureStore) Create(entry *models.AuditLog) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, entry)
	return nil
}

func (c *captureStore) List(filter *models.AuditLogFilter) ([]*models.AuditLog, int, error) {
	return nil, 0, nil
}

func (c *captureStore) DistinctActions() ([]string, error)   { return nil, nil }
func (c *captureStore) DistinctResources() ([]string, error) { return nil, nil }

func (c *captureStore) all() []*models.AuditLog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries
}

// serveAudited isteği audit middleware'i üzerinden çalıştırır ve
// writer'ı drain edip yazılan kayıtları döner
func serveAudited(t *testing.T, config *AuditConfig, handler http.Handler, req *http.Request, routeTemplate, method string) []*models.AuditLog {
	t.Helper()

	store := &captureStore{}
	writer := audit.NewWriter(store, 1, 16)
	writer.Start()

	router := mux.NewRouter()
	router.Handle(routeTemplate, Audit(writer, config)(handler)).Methods(method)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Stop queue'yu kapatır ve kalan kayıtların yazılmasını bekler
	writer.Stop()

	return store.all()
}

func decodeDetails(t *testing.T, entry *models.AuditLog) models.AuditDetails {
	t.Helper()
	var details models.AuditDetails
	assert.NoError(t, json.Unmarshal(entry.Details, &details))
	return details
}

// Başarılı istek tam olarak bir audit kaydı üretir
func TestAudit_SuccessfulRequest(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	body := `{"name":"Acme Ltd","type":"musteri"}`
	req := httptest.NewRequest("POST", "/api/v1/cariler", strings.NewReader(body))
	req = withClaims(req, &auth.Claims{UserID: 9})

	entries := serveAudited(t, &AuditConfig{Resource: "cari"}, handler, req, "/api/v1/cariler", "POST")

	assert.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, models.AuditActionCreate, entry.Action)
	assert.Equal(t, "cari", entry.Resource)
	assert.NotNil(t, entry.UserID)
	assert.Equal(t, 9, *entry.UserID)

	details := decodeDetails(t, entry)
	assert.Equal(t, http.StatusCreated, details.StatusCode)
	assert.Equal(t, "POST", details.Method)
	assert.Equal(t, "Acme Ltd", details.Body["name"])
}

// Hassas body alanları sentinel ile maskelenir, diğerleri korunur
func TestAudit_BodyRedaction(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	body := `{"email":"a@b.com","password":"s3cret","nested":{"token":"abc","safe":"ok"}}`
	req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(body))

	entries := serveAudited(t, &AuditConfig{Resource: "auth", Action: "login"}, handler, req, "/api/v1/auth/login", "POST")

	assert.Len(t, entries, 1)
	details := decodeDetails(t, entries[0])

	assert.Equal(t, "a@b.com", details.Body["email"])
	assert.Equal(t, RedactionSentinel, details.Body["password"])

	nested, ok := details.Body["nested"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, RedactionSentinel, nested["token"])
	assert.Equal(t, "ok", nested["safe"])
}

// Register isteği anonim tek kayıt üretir, şifre maskelenmiş olarak
func TestAudit_RegisterPasswordRedacted(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	body := `{"name":"Ali","email":"ali@ornek.com","password":"gizli123","confirmPassword":"gizli123"}`
	req := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(body))

	entries := serveAudited(t, &AuditConfig{Resource: "auth", Action: "register"}, handler, req, "/api/v1/auth/register", "POST")

	assert.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, "register", entry.Action)
	assert.Equal(t, "auth", entry.Resource)
	assert.Nil(t, entry.UserID) // public endpoint, claims yok

	details := decodeDetails(t, entry)
	assert.Equal(t, "ali@ornek.com", details.Body["email"])
	assert.Equal(t, RedactionSentinel, details.Body["password"])
	assert.Equal(t, RedactionSentinel, details.Body["confirmPassword"])
}

// Finalization yolu iki kez tetiklense bile tek kayıt yazılır
func TestAudit_FinishIdempotent(t *testing.T) {
	store := &captureStore{}
	writer := audit.NewWriter(store, 1, 16)
	writer.Start()

	req := httptest.NewRequest("POST", "/api/v1/cariler", nil)
	finisher := &auditFinisher{fn: func() {
		record(writer, &AuditConfig{Resource: "cari"}, req, http.StatusCreated, nil, false)
	}}

	finisher.finish()
	finisher.finish()

	writer.Stop()
	assert.Len(t, store.all(), 1)
}

// Handler body'yi audit snapshot'ından sonra hala okuyabilmeli
func TestAudit_BodyRestoredForHandler(t *testing.T) {
	var handlerBody map[string]interface{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&handlerBody))
		w.WriteHeader(http.StatusOK)
	})

	body := `{"name":"Acme","password":"gizli123"}`
	req := httptest.NewRequest("POST", "/api/v1/cariler", strings.NewReader(body))

	serveAudited(t, &AuditConfig{Resource: "cari"}, handler, req, "/api/v1/cariler", "POST")

	// Handler maskelenmemiş orijinal body'yi görür
	assert.Equal(t, "gizli123", handlerBody["password"])
}

// 403 ret kararı da audit'e girer: permission middleware audit içinde sarılı
func TestAudit_RecordsPermissionDenial(t *testing.T) {
	inner := RequirePermission(authz.CarilerSilme)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler çalışmamalı")
	}))

	req := httptest.NewRequest("DELETE", "/api/v1/cariler/5", nil)
	req = withClaims(req, &auth.Claims{UserID: 3, Permissions: []string{"cariler_goruntuleme"}})

	entries := serveAudited(t, &AuditConfig{Resource: "cari"}, inner, req, "/api/v1/cariler/{id:[0-9]+}", "DELETE")

	assert.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, models.AuditActionDelete, entry.Action)
	assert.NotNil(t, entry.ResourceID)
	assert.Equal(t, "5", *entry.ResourceID)

	details := decodeDetails(t, entry)
	assert.Equal(t, http.StatusForbidden, details.StatusCode)
}

// Filtre dışı status kodları kaydedilmez
func TestAudit_SkipsUnqualifiedStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusBadRequest, http.StatusInternalServerError} {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})

		req := httptest.NewRequest("GET", "/api/v1/cariler", nil)
		entries := serveAudited(t, &AuditConfig{Resource: "cari"}, handler, req, "/api/v1/cariler", "GET")

		assert.Empty(t, entries, "status %d kaydedilmemeli", status)
	}
}

// 401 kaydedilir (başarısız kimlik doğrulama izlenir)
func TestAudit_RecordsUnauthorized(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	req := httptest.NewRequest("GET", "/api/v1/cariler", nil)
	entries := serveAudited(t, &AuditConfig{Resource: "cari"}, handler, req, "/api/v1/cariler", "GET")

	assert.Len(t, entries, 1)
	assert.Nil(t, entries[0].UserID)
}

// Handler panic'inde kayıt yazılmaz, panic üst katmana geçer
func TestAudit_PanicNotRecorded(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("beklenmedik hata")
	})

	store := &captureStore{}
	writer := audit.NewWriter(store, 1, 16)
	writer.Start()

	wrapped := Audit(writer, &AuditConfig{Resource: "cari"})(handler)
	req := httptest.NewRequest("GET", "/api/v1/cariler", nil)
	rec := httptest.NewRecorder()

	assert.Panics(t, func() {
		wrapped.ServeHTTP(rec, req)
	})

	writer.Stop()
	assert.Empty(t, store.all())
}

// Handler hiç WriteHeader çağırmazsa 200 varsayılır
func TestAudit_ImplicitOK(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true}`))
	})

	req := httptest.NewRequest("GET", "/api/v1/cariler", nil)
	entries := serveAudited(t, &AuditConfig{Resource: "cari"}, handler, req, "/api/v1/cariler", "GET")

	assert.Len(t, entries, 1)
	details := decodeDetails(t, entries[0])
	assert.Equal(t, http.StatusOK, details.StatusCode)
}

// Resource yapılandırılmamışsa route template'inin son statik segmenti kullanılır
func TestAudit_DerivedResource(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/api/v1/etkinlikler/12", nil)
	entries := serveAudited(t, &AuditConfig{}, handler, req, "/api/v1/etkinlikler/{id:[0-9]+}", "GET")

	assert.Len(t, entries, 1)
	assert.Equal(t, "etkinlikler", entries[0].Resource)
	assert.Equal(t, models.AuditActionRead, entries[0].Action)
}

// Büyük body içerik olmadan truncated olarak işaretlenir
func TestAudit_OversizeBodyTruncated(t *testing.T) {
	var handlerBodyLen int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := new(bytes.Buffer)
		n, _ := buf.ReadFrom(r.Body)
		handlerBodyLen = int(n)
		w.WriteHeader(http.StatusOK)
	})

	big := `{"data":"` + strings.Repeat("x", maxAuditBodySize) + `"}`
	req := httptest.NewRequest("POST", "/api/v1/cariler", strings.NewReader(big))

	entries := serveAudited(t, &AuditConfig{Resource: "cari"}, handler, req, "/api/v1/cariler", "POST")

	assert.Len(t, entries, 1)
	details := decodeDetails(t, entries[0])
	assert.True(t, details.BodyTruncated)
	assert.Nil(t, details.Body)

	// Handler body'nin tamamını okuyabilmeli
	assert.Equal(t, len(big), handlerBodyLen)
}

func TestActionFromMethod(t *testing.T) {
	tests := map[string]string{
		http.MethodPost:    models.AuditActionCreate,
		http.MethodPut:     models.AuditActionUpdate,
		http.MethodPatch:   models.AuditActionUpdate,
		http.MethodDelete:  models.AuditActionDelete,
		http.MethodGet:     models.AuditActionRead,
		http.MethodOptions: models.AuditActionOther,
	}

	for method, expected := range tests {
		assert.Equal(t, expected, actionFromMethod(method), "method: %s", method)
	}
}

func TestQualifies(t *testing.T) {
	assert.True(t, qualifies(200))
	assert.True(t, qualifies(201))
	assert.True(t, qualifies(299))
	assert.True(t, qualifies(401))
	assert.True(t, qualifies(403))

	assert.False(t, qualifies(300))
	assert.False(t, qualifies(400))
	assert.False(t, qualifies(404))
	assert.False(t, qualifies(500))
}

func TestSanitizeBody(t *testing.T) {
	body := map[string]interface{}{
		"email":           "a@b.com",
		"password":        "x",
		"currentPassword": "y",
		"newPassword":     "z",
		"confirmPassword": "w",
		"token":           "t",
		"secret":          "s",
	}

	sanitized := sanitizeBody(body)

	assert.Equal(t, "a@b.com", sanitized["email"])
	for _, key := range []string{"password", "currentPassword", "newPassword", "confirmPassword", "token", "secret"} {
		assert.Equal(t, RedactionSentinel, sanitized[key], "alan: %s", key)
	}
}
