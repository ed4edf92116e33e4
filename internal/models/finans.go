package models

import "time"

// Finans kayıt tipleri
const (
	FinansTipGelir = "gelir"
	FinansTipGider = "gider"
)

// FinansKayit kasa gelir/gider kaydını temsil eder
type FinansKayit struct {
	ID          int       `json:"id" db:"id"`
	Type        string    `json:"type" db:"type"` // gelir | gider
	Amount      float64   `json:"amount" db:"amount"`
	Description string    `json:"description" db:"description"`
	CariID      *int      `json:"cari_id" db:"cari_id"`
	RecordedBy  int       `json:"recorded_by" db:"recorded_by"`
	RecordedAt  time.Time `json:"recorded_at" db:"recorded_at"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// CreateFinansKayitRequest kayıt oluşturma isteği
type CreateFinansKayitRequest struct {
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	CariID      *int      `json:"cari_id,omitempty"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// FinansFilter liste filtresi
type FinansFilter struct {
	Type   string
	CariID *int
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}

// FinansOzet kasa özeti
type FinansOzet struct {
	ToplamGelir float64 `json:"toplam_gelir"`
	ToplamGider float64 `json:"toplam_gider"`
	Bakiye      float64 `json:"bakiye"`
}
