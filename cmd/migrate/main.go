package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/kobisoft/crm-api/internal/config"
	"github.com/kobisoft/crm-api/internal/db"
	"github.com/kobisoft/crm-api/internal/logger"
	"github.com/kobisoft/crm-api/internal/migration"
)

func main() {
	var (
		path = flag.String("path", "./migrations", "Migration dosyalarının yolu")
	)
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		command = "status"
	}

	// .env dosyasını yükle
	if err := godotenv.Load(); err != nil {
		stdlog.Println(".env dosyası bulunamadı, ortam değişkenlerinden okunacak.")
	}

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv, cfg.LogLevel)

	database, err := db.Connect(cfg.GetDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Veritabanı bağlantısı başarısız")
	}
	defer database.Close()

	migrationConfig := migration.CLIConfig()
	migrationConfig.MigrationsPath = *path

	runner := migration.NewRunner(database, migrationConfig)
	if err := runner.Initialize(); err != nil {
		log.Fatal().Err(err).Msg("❌ Migration sistemi başlatılamadı")
	}

	switch command {
	case "up":
		if err := runner.Up(); err != nil {
			log.Fatal().Err(err).Msg("❌ Migration başarısız")
		}
		log.Info().Msg("✅ Tüm migration'lar uygulandı")

	case "down":
		if err := runner.Down(); err != nil {
			log.Fatal().Err(err).Msg("❌ Rollback başarısız")
		}
		log.Info().Msg("✅ Son migration geri alındı")

	case "status":
		status, err := runner.Status()
		if err != nil {
			log.Fatal().Err(err).Msg("❌ Migration durumu alınamadı")
		}
		printStatus(status)

	default:
		fmt.Fprintf(os.Stderr, "Kullanım: migrate [-path=./migrations] <up|down|status>\n")
		os.Exit(2)
	}
}

// printStatus migration durumunu tablo halinde yazar
func printStatus(status *migration.MigrationStatus) {
	fmt.Printf("Current version: %06d\n", status.CurrentVersion)
	fmt.Printf("Applied: %d, Pending: %d\n\n", status.AppliedCount, status.PendingCount)

	for _, m := range status.Migrations {
		state := "pending"
		appliedAt := ""
		if m.Applied {
			state = "applied"
			if m.AppliedAt != nil {
				appliedAt = m.AppliedAt.Format("2006-01-02 15:04:05")
			}
		}
		fmt.Printf("  %06d  %-40s  %-8s  %s\n", m.Version, m.Name, state, appliedAt)
	}
}
