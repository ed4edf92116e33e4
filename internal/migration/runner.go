// internal/migration/runner.go
package migration

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Runner migration işlemlerini yöneten ana yapı
type Runner struct {
	db     *sql.DB
	config *MigrationConfig
}

// NewRunner yeni migration runner oluşturur
func NewRunner(db *sql.DB, config *MigrationConfig) *Runner {
	if config == nil {
		config = DefaultConfig()
	}
	return &Runner{db: db, config: config}
}

// Initialize migration tracking tablosunu oluşturur
func (r *Runner) Initialize() error {
	createTableSQL := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			version BIGINT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			checksum VARCHAR(64) NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`, r.config.TableName)

	if _, err := r.db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("migration tracking tablosu oluşturulamadı: %w", err)
	}

	if r.config.Verbose {
		log.Info().
			Str("table", r.config.TableName).
			Str("path", r.config.MigrationsPath).
			Msg("Migration sistemi initialize edildi")
	}

	return nil
}

// appliedVersions tracking tablosundan uygulanmış version -> checksum map'i döner
func (r *Runner) appliedVersions() (map[int64]appliedRecord, error) {
	query := fmt.Sprintf("SELECT version, checksum, applied_at FROM %s", r.config.TableName)
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("uygulanmış migration'lar okunamadı: %w", err)
	}
	defer rows.Close()

	applied := make(map[int64]appliedRecord)
	for rows.Next() {
		var rec appliedRecord
		if err := rows.Scan(&rec.Version, &rec.Checksum, &rec.AppliedAt); err != nil {
			return nil, fmt.Errorf("migration kaydı okunamadı: %w", err)
		}
		applied[rec.Version] = rec
	}
	return applied, rows.Err()
}

type appliedRecord struct {
	Version   int64
	Checksum  string
	AppliedAt time.Time
}

// Status disk ve tracking tablosunu karşılaştırıp genel durumu döner
func (r *Runner) Status() (*MigrationStatus, error) {
	migrations, err := r.LoadMigrationsFromDisk()
	if err != nil {
		return nil, err
	}

	applied, err := r.appliedVersions()
	if err != nil {
		return nil, err
	}

	status := &MigrationStatus{Migrations: migrations}
	for i := range status.Migrations {
		m := &status.Migrations[i]
		if rec, ok := applied[m.Version]; ok {
			m.Applied = true
			at := rec.AppliedAt
			m.AppliedAt = &at
			status.AppliedCount++
			if m.Version > status.CurrentVersion {
				status.CurrentVersion = m.Version
			}
		} else {
			status.PendingCount++
		}
	}
	return status, nil
}

// Up bekleyen tüm migration'ları sırayla uygular
func (r *Runner) Up() error {
	migrations, err := r.LoadMigrationsFromDisk()
	if err != nil {
		return err
	}

	applied, err := r.appliedVersions()
	if err != nil {
		return err
	}

	pending := 0
	for _, m := range migrations {
		if rec, ok := applied[m.Version]; ok {
			// Uygulanmış dosya sonradan değiştirilmişse dur
			if r.config.ValidateChecksums && rec.Checksum != m.Checksum {
				return fmt.Errorf("migration %d (%s) uygulandıktan sonra değiştirilmiş: checksum uyuşmuyor", m.Version, m.Name)
			}
			continue
		}

		if err := r.applyUp(m); err != nil {
			return err
		}
		pending++
	}

	if r.config.Verbose {
		log.Info().Int("applied", pending).Msg("Migration'lar tamamlandı")
	}
	return nil
}

// applyUp tek bir migration'ı transaction içinde uygular ve kaydeder
func (r *Runner) applyUp(m Migration) error {
	start := time.Now()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("transaction başlatılamadı: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.UpSQL); err != nil {
		return fmt.Errorf("migration %d (%s) çalıştırılamadı: %w", m.Version, m.Name, err)
	}

	insertSQL := fmt.Sprintf(
		"INSERT INTO %s (version, name, checksum) VALUES ($1, $2, $3)",
		r.config.TableName,
	)
	if _, err := tx.Exec(insertSQL, m.Version, m.Name, m.Checksum); err != nil {
		return fmt.Errorf("migration kaydı yazılamadı: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migration %d commit edilemedi: %w", m.Version, err)
	}

	log.Info().
		Int64("version", m.Version).
		Str("name", m.Name).
		Dur("duration", time.Since(start)).
		Msg("⬆️  Migration uygulandı")

	return nil
}

// Down son uygulanan migration'ı geri alır
func (r *Runner) Down() error {
	status, err := r.Status()
	if err != nil {
		return err
	}
	if status.AppliedCount == 0 {
		return fmt.Errorf("geri alınacak migration yok")
	}

	// Uygulanmış en yüksek version'u bul
	var last *Migration
	for i := range status.Migrations {
		m := &status.Migrations[i]
		if m.Applied && (last == nil || m.Version > last.Version) {
			last = m
		}
	}
	if last == nil {
		return fmt.Errorf("geri alınacak migration yok")
	}
	if !last.HasDownFile {
		return fmt.Errorf("migration %d (%s) için DOWN dosyası yok", last.Version, last.Name)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("transaction başlatılamadı: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(last.DownSQL); err != nil {
		return fmt.Errorf("migration %d geri alınamadı: %w", last.Version, err)
	}

	deleteSQL := fmt.Sprintf("DELETE FROM %s WHERE version = $1", r.config.TableName)
	if _, err := tx.Exec(deleteSQL, last.Version); err != nil {
		return fmt.Errorf("migration kaydı silinemedi: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("rollback commit edilemedi: %w", err)
	}

	log.Info().
		Int64("version", last.Version).
		Str("name", last.Name).
		Msg("⬇️  Migration geri alındı")

	return nil
}
