package models

import "time"

// Etkinlik takvim etkinliğini temsil eder
type Etkinlik struct {
	ID          int        `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	CariID      *int       `json:"cari_id" db:"cari_id"` // opsiyonel cari bağlantısı
	StartsAt    time.Time  `json:"starts_at" db:"starts_at"`
	EndsAt      *time.Time `json:"ends_at" db:"ends_at"`
	CreatedBy   int        `json:"created_by" db:"created_by"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// CreateEtkinlikRequest etkinlik oluşturma isteği
type CreateEtkinlikRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CariID      *int       `json:"cari_id,omitempty"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
}

// UpdateEtkinlikRequest etkinlik güncelleme isteği
type UpdateEtkinlikRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	CariID      *int       `json:"cari_id,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
}

// EtkinlikFilter tarih aralığı filtresi
type EtkinlikFilter struct {
	From  *time.Time
	To    *time.Time
	Page  int
	Limit int
}
