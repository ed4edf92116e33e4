package models

import (
	"encoding/json"
	"time"
)

// Audit action değerleri (HTTP metodundan türetilir veya route'ta sabitlenir)
const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
	AuditActionRead   = "read"
	AuditActionOther  = "other"
)

// AuditLog tek bir izlenen HTTP etkileşimini temsil eder.
// Yazıldıktan sonra değişmez; uygulama tarafından asla silinmez.
type AuditLog struct {
	ID         int             `json:"id" db:"id"`
	UserID     *int            `json:"user_id" db:"user_id"` // nullable: anonim/sistem aksiyonları
	Action     string          `json:"action" db:"action"`
	Resource   string          `json:"resource" db:"resource"`
	ResourceID *string         `json:"resource_id" db:"resource_id"`
	IPAddress  string          `json:"ip_address" db:"ip_address"`
	Details    json.RawMessage `json:"details" db:"details"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

// AuditDetails audit kaydının details alanının yapısı
type AuditDetails struct {
	Method        string                 `json:"method"`
	Path          string                 `json:"path"`
	StatusCode    int                    `json:"status_code"`
	Body          map[string]interface{} `json:"body,omitempty"`
	BodyTruncated bool                   `json:"body_truncated,omitempty"`
	Params        map[string]string      `json:"params,omitempty"`
	Query         map[string]string      `json:"query,omitempty"`
	UserAgent     string                 `json:"user_agent,omitempty"`
}

// AuditLogFilter liste endpoint'inin filtre parametreleri
type AuditLogFilter struct {
	Action    string
	Resource  string
	UserID    *int
	StartDate *time.Time
	EndDate   *time.Time
	Search    string
	SortBy    string // AuditSortable'dan geçen kolon adı; boşsa created_at
	SortDir   string // "asc" | "desc"; boşsa desc
	Page      int
	Limit     int
}

// auditSortColumns sıralamaya açık kolonların beyaz listesi.
// Sorguya yalnızca buradaki değerler girer.
var auditSortColumns = map[string]struct{}{
	"created_at": {},
	"action":     {},
	"resource":   {},
	"user_id":    {},
}

// AuditSortable kolonun sıralamaya açık olup olmadığını döner
func AuditSortable(column string) bool {
	_, ok := auditSortColumns[column]
	return ok
}

// AuditLogPage sayfalanmış audit log yanıtı
type AuditLogPage struct {
	Items      []*AuditLog `json:"items"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int         `json:"total"`
	TotalPages int         `json:"totalPages"`
}
