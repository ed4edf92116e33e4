// internal/migration/types.go
package migration

import (
	"path/filepath"
	"time"
)

// Migration tek bir veritabanı migration'ını temsil eder
type Migration struct {
	Version     int64      `json:"version"`               // Migration version (000001 gibi sıra numarası)
	Name        string     `json:"name"`                  // Migration adı ("create_users_table")
	UpSQL       string     `json:"-"`                     // UP SQL içeriği (JSON'da gösterilmez)
	DownSQL     string     `json:"-"`                     // DOWN SQL içeriği (JSON'da gösterilmez)
	Applied     bool       `json:"applied"`               // Uygulandı mı?
	AppliedAt   *time.Time `json:"appliedAt,omitempty"`   // Ne zaman uygulandı?
	Checksum    string     `json:"checksum"`              // UP dosyası SHA-256 checksum
	HasDownFile bool       `json:"hasDownFile"`           // DOWN dosyası mevcut mu?
	Description string     `json:"description,omitempty"` // SQL başındaki yorumdan parse edilir
}

// MigrationStatus migration sisteminin genel durumunu gösterir
type MigrationStatus struct {
	CurrentVersion int64       `json:"currentVersion"` // Uygulanmış en yüksek version
	Migrations     []Migration `json:"migrations"`     // Tüm migration'lar (version sıralı)
	AppliedCount   int         `json:"appliedCount"`   // Uygulanan migration sayısı
	PendingCount   int         `json:"pendingCount"`   // Bekleyen migration sayısı
}

// MigrationConfig migration ayarlarını tutar
type MigrationConfig struct {
	MigrationsPath    string // Migration dosyalarının yolu
	TableName         string // Takip tablosu adı
	ValidateChecksums bool   // Uygulanmış dosya değişmişse hata ver
	Verbose           bool   // Detaylı log çıktısı
}

// DefaultConfig varsayılan ayarları döner
func DefaultConfig() *MigrationConfig {
	absPath, err := filepath.Abs("./migrations")
	if err != nil {
		absPath = "./migrations" // Fallback
	}

	return &MigrationConfig{
		MigrationsPath:    absPath,
		TableName:         "schema_migrations",
		ValidateChecksums: true,
		Verbose:           false,
	}
}

// CLIConfig CLI kullanımı için detaylı çıktı açık ayarlar
func CLIConfig() *MigrationConfig {
	c := DefaultConfig()
	c.Verbose = true
	return c
}
