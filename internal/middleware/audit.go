package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/kobisoft/crm-api/internal/audit"
	"github.com/kobisoft/crm-api/internal/models"
	"github.com/kobisoft/crm-api/internal/utils"
)

// RedactionSentinel maskelenen body alanlarının yerine yazılan değer.
// Alan silinmez; varlığı (değeri olmadan) kendisi de bilgidir.
const RedactionSentinel = "[REDACTED]"

// maxAuditBodySize audit için kopyalanan body'nin üst sınırı
const maxAuditBodySize = 64 << 10 // 64 KiB

// redactedFields body'den maskelenen alan adları (sabit deny-list)
var redactedFields = map[string]struct{}{
	"password":        {},
	"currentPassword": {},
	"newPassword":     {},
	"confirmPassword": {},
	"token":           {},
	"secret":          {},
}

// AuditConfig audit middleware'inin route başına yapılandırması.
// Boş bırakılan alanlar istekten türetilir.
type AuditConfig struct {
	Resource        string // boşsa route template'inin son statik segmenti
	Action          string // boşsa HTTP metodundan türetilir
	ResourceIDParam string // boşsa "id" route parametresi denenir
}

// auditResponseWriter yanıt status'unu yakalar. res.end benzeri
// monkey-patch yerine handler dönüşünde tek noktadan okunur.
type auditResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (arw *auditResponseWriter) WriteHeader(code int) {
	arw.statusCode = code
	arw.ResponseWriter.WriteHeader(code)
}

// Audit yanıt tamamlandıktan sonra tam olarak bir audit kaydı üreten
// middleware'i döner. Kayıt, yanıtı geciktirmemek için writer
// queue'suna fire-and-forget gönderilir; yazım hatası isteğe yansımaz.
func Audit(writer *audit.Writer, config *AuditConfig) func(http.Handler) http.Handler {
	if config == nil {
		config = &AuditConfig{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, truncated := snapshotBody(r)

			wrapped := &auditResponseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			finisher := &auditFinisher{fn: func() {
				record(writer, config, r, wrapped.statusCode, body, truncated)
			}}

			defer func() {
				if rec := recover(); rec != nil {
					// Handler panic'i: 500 yanıtını üst katman üretecek,
					// filtreleme politikası gereği kayıt yazılmaz
					panic(rec)
				}
				finisher.finish()
			}()

			next.ServeHTTP(wrapped, r)
		})
	}
}

// auditFinisher finalization yolunu sync.Once ile korur: birden fazla
// tetiklense bile fn en fazla bir kez çalışır, yani en fazla bir kayıt
type auditFinisher struct {
	once sync.Once
	fn   func()
}

func (f *auditFinisher) finish() {
	f.once.Do(f.fn)
}

// record audit kaydını kurar ve writer'a gönderir
func record(writer *audit.Writer, config *AuditConfig, r *http.Request, statusCode int, body map[string]interface{}, truncated bool) {
	if !qualifies(statusCode) {
		return
	}

	action := config.Action
	if action == "" {
		action = actionFromMethod(r.Method)
	}

	resource := config.Resource
	if resource == "" {
		resource = deriveResource(r)
	}

	vars := mux.Vars(r)
	var resourceID *string
	if config.ResourceIDParam != "" {
		if v, ok := vars[config.ResourceIDParam]; ok {
			resourceID = &v
		}
	} else if v, ok := vars["id"]; ok {
		resourceID = &v
	}

	var userID *int
	if claims, ok := ClaimsFromRequest(r); ok {
		id := claims.UserID
		userID = &id
	}

	details := models.AuditDetails{
		Method:        r.Method,
		Path:          r.URL.Path,
		StatusCode:    statusCode,
		Body:          body,
		BodyTruncated: truncated,
		Params:        vars,
		Query:         flattenQuery(r.URL.Query()),
		UserAgent:     r.Header.Get("User-Agent"),
	}

	detailsJSON, err := json.Marshal(details)
	if err != nil {
		// Serialization hatası isteğe yansımaz
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Audit details serialize edilemedi")
		return
	}

	writer.Submit(&models.AuditLog{
		UserID:     userID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		IPAddress:  utils.GetClientIP(r),
		Details:    detailsJSON,
	})
}

// qualifies audit filtreleme politikası: 2xx, 401 ve 403 kaydedilir.
// Diğer tüm status kodları bu katmanda loglanmaz.
func qualifies(statusCode int) bool {
	if statusCode >= 200 && statusCode < 300 {
		return true
	}
	return statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden
}

// actionFromMethod HTTP metodunu action değerine çevirir
func actionFromMethod(method string) string {
	switch method {
	case http.MethodPost:
		return models.AuditActionCreate
	case http.MethodPut, http.MethodPatch:
		return models.AuditActionUpdate
	case http.MethodDelete:
		return models.AuditActionDelete
	case http.MethodGet:
		return models.AuditActionRead
	default:
		return models.AuditActionOther
	}
}

// deriveResource route template'inin son statik segmentini döner
// (örn. "/api/v1/cariler/{id}" -> "cariler")
func deriveResource(r *http.Request) string {
	path := r.URL.Path
	if route := mux.CurrentRoute(r); route != nil {
		if template, err := route.GetPathTemplate(); err == nil {
			path = template
		}
	}

	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		if seg == "" || strings.HasPrefix(seg, "{") {
			continue
		}
		return seg
	}
	return "unknown"
}

// snapshotBody request body'sinin sanitize edilmiş kopyasını alır ve
// body'yi handler için geri koyar. JSON olmayan veya boş body -> nil.
func snapshotBody(r *http.Request) (map[string]interface{}, bool) {
	if r.Body == nil || r.Method == http.MethodGet || r.Method == http.MethodHead {
		return nil, false
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxAuditBodySize+1))
	if err != nil {
		log.Warn().Err(err).Str("path", r.URL.Path).Msg("Audit body okunamadı")
		return nil, false
	}

	// Body'yi handler için geri koy
	r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(data), r.Body))

	if len(data) == 0 {
		return nil, false
	}
	if len(data) > maxAuditBodySize {
		// İçerik kaydedilmez, sadece kesildiği işaretlenir
		return nil, true
	}

	var body map[string]interface{}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, false
	}

	return sanitizeBody(body), false
}

// sanitizeBody deny-list'teki alanları sentinel ile değiştirir.
// İç içe objelere de iner; alanlar silinmez, maskelenir.
func sanitizeBody(body map[string]interface{}) map[string]interface{} {
	sanitized := make(map[string]interface{}, len(body))
	for key, value := range body {
		if _, redact := redactedFields[key]; redact {
			sanitized[key] = RedactionSentinel
			continue
		}
		if nested, ok := value.(map[string]interface{}); ok {
			sanitized[key] = sanitizeBody(nested)
			continue
		}
		sanitized[key] = value
	}
	return sanitized
}

// flattenQuery url.Values'u tek değerli map'e indirger
func flattenQuery(values map[string][]string) map[string]string {
	if len(values) == 0 {
		return nil
	}
	flat := make(map[string]string, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			flat[key] = vals[0]
		}
	}
	return flat
}
