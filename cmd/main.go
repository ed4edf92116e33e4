package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/kobisoft/crm-api/internal/audit"
	"github.com/kobisoft/crm-api/internal/auth"
	"github.com/kobisoft/crm-api/internal/authz"
	"github.com/kobisoft/crm-api/internal/config"
	"github.com/kobisoft/crm-api/internal/db"
	"github.com/kobisoft/crm-api/internal/handlers"
	"github.com/kobisoft/crm-api/internal/logger"
	"github.com/kobisoft/crm-api/internal/middleware"
	"github.com/kobisoft/crm-api/internal/repository"
	"github.com/kobisoft/crm-api/internal/services"
)

func main() {
	// .env dosyasını yükle
	if err := godotenv.Load(); err != nil {
		stdlog.Println(".env dosyası bulunamadı, ortam değişkenlerinden okunacak.")
	}

	// config yükle
	cfg := config.LoadConfig()

	// logger başlat
	logger.Init(cfg.AppEnv, cfg.LogLevel)

	log.Info().
		Str("environment", cfg.AppEnv).
		Str("port", cfg.Port).
		Msg("🚀 CRM API başlatıldı")

	// JWT secret'ı ayarla
	auth.Init(cfg.JWTSecret)

	// Database bağlantısı
	database, err := db.Connect(cfg.GetDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Veritabanı bağlantısı başarısız")
	}
	defer database.Close()

	// Repository katmanı
	userRepo := repository.NewUserRepository(database)
	roleRepo := repository.NewRoleRepository(database)
	auditRepo := repository.NewAuditLogRepository(database)
	cariRepo := repository.NewCariRepository(database)
	etkinlikRepo := repository.NewEtkinlikRepository(database)
	finansRepo := repository.NewFinansRepository(database)

	// Tanımlı yetki kodlarını veritabanına işle (idempotent)
	seed := make(map[string]string, len(authz.AllCodes()))
	for _, code := range authz.AllCodes() {
		seed[string(code)] = authz.Describe(code)
	}
	if err := roleRepo.SeedPermissions(seed); err != nil {
		log.Fatal().Err(err).Msg("❌ Yetki kodları yüklenemedi")
	}

	// Service katmanı
	userService := services.NewUserService(userRepo, roleRepo)
	roleService := services.NewRoleService(roleRepo)
	auditService := services.NewAuditLogService(auditRepo)
	cariService := services.NewCariService(cariRepo)
	etkinlikService := services.NewEtkinlikService(etkinlikRepo)
	finansService := services.NewFinansService(finansRepo)

	// Audit writer oluştur (asenkron, best-effort)
	auditWriter := audit.NewWriter(auditRepo, cfg.AuditWorkers, cfg.AuditQueueSize)
	auditWriter.Start()

	// Handler katmanı
	userHandler := handlers.NewUserHandler(userService)
	roleHandler := handlers.NewRoleHandler(roleService)
	auditHandler := handlers.NewAuditLogHandler(auditService)
	cariHandler := handlers.NewCariHandler(cariService)
	etkinlikHandler := handlers.NewEtkinlikHandler(etkinlikService)
	finansHandler := handlers.NewFinansHandler(finansService)

	// Gorilla Mux Router Setup
	router := setupRouter(cfg, auditWriter, userHandler, roleHandler, auditHandler, cariHandler, etkinlikHandler, finansHandler)

	// HTTP Server configuration
	serverAddr := ":" + cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown setup
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// Server'ı goroutine'de başlat
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("addr", serverAddr).
			Msg("🌐 HTTP Server (Gorilla Mux) başlatıldı")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("❌ Server başlatma hatası")
		}
	}()

	// Shutdown signal'ını bekle
	<-shutdown
	log.Info().Msg("🛑 Shutdown signal alındı, server kapatılıyor...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// 1. HTTP Server'ı kapat (aktif bağlantıları bekle)
	log.Info().Msg("📡 HTTP Server kapatılıyor...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("❌ HTTP Server kapatma hatası")
	} else {
		log.Info().Msg("✅ HTTP Server başarıyla kapatıldı")
	}

	// 2. Audit writer'ı kapat (kuyruktaki kayıtlar yazılır)
	log.Info().Msg("🔄 Audit writer kapatılıyor...")
	auditWriter.Stop()
	log.Info().Msg("✅ Audit writer başarıyla kapatıldı")

	// 3. Database bağlantısı defer ile kapatılacak
	log.Info().Msg("👋 CRM API başarıyla kapatıldı")
}

// setupRouter Gorilla Mux router'ını ayarlar
func setupRouter(
	cfg *config.Config,
	auditWriter *audit.Writer,
	userHandler *handlers.UserHandler,
	roleHandler *handlers.RoleHandler,
	auditHandler *handlers.AuditLogHandler,
	cariHandler *handlers.CariHandler,
	etkinlikHandler *handlers.EtkinlikHandler,
	finansHandler *handlers.FinansHandler,
) *mux.Router {
	router := mux.NewRouter()

	// Global middleware zinciri (en dışta recovery)
	router.Use(middleware.RecoveryMiddleware)
	router.Use(middleware.RequestLoggingMiddleware(middleware.DefaultLoggingConfig()))
	router.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig()))

	if cfg.AppEnv == "development" {
		router.Use(middleware.SecurityHeadersMiddleware(middleware.DevelopmentSecurityConfig()))
	} else {
		router.Use(middleware.SecurityHeadersMiddleware(middleware.DefaultSecurityConfig()))
	}

	rateLimiter := middleware.NewRateLimitMiddleware(middleware.DefaultRateLimitConfig())
	router.Use(rateLimiter.Handler())

	// Health check
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// API v1 subrouter
	api := router.PathPrefix("/api/v1").Subrouter()

	// Public endpoints (Authentication). Yetki kontrolü yok ama audit var:
	// register body'leri maskelenmiş olarak, başarısız login'lerin 401'i de kayda girer
	authAudit := func(action string, h http.HandlerFunc) http.Handler {
		return middleware.Audit(auditWriter, &middleware.AuditConfig{Resource: "auth", Action: action})(h)
	}
	authRoutes := api.PathPrefix("/auth").Subrouter()
	authRoutes.Handle("/register", authAudit("register", userHandler.Register)).Methods("POST")
	authRoutes.Handle("/login", authAudit("login", userHandler.Login)).Methods("POST")
	authRoutes.Handle("/refresh", authAudit("refresh", userHandler.Refresh)).Methods("POST")

	// Protected endpoints (Authentication required)
	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware)

	// guard: audit her zaman yetki kontrolünü sarar, ret kararları da kayda girer
	guard := func(auditCfg *middleware.AuditConfig, code authz.Code, h http.HandlerFunc) http.Handler {
		return middleware.Audit(auditWriter, auditCfg)(middleware.RequirePermission(code)(h))
	}

	// User endpoints
	userAudit := &middleware.AuditConfig{Resource: "user"}
	users := protected.PathPrefix("/users").Subrouter()
	users.HandleFunc("/profile", userHandler.GetProfile).Methods("GET")
	users.Handle("", guard(userAudit, authz.KullanicilarGoruntuleme, userHandler.GetAllUsers)).Methods("GET")
	users.Handle("/{id:[0-9]+}", guard(userAudit, authz.KullanicilarGoruntuleme, userHandler.GetUserByID)).Methods("GET")
	users.Handle("/{id:[0-9]+}", guard(userAudit, authz.KullanicilarDuzenleme, userHandler.UpdateUser)).Methods("PUT")
	users.Handle("/{id:[0-9]+}", guard(userAudit, authz.KullanicilarSilme, userHandler.DeleteUser)).Methods("DELETE")

	// Rol ve yetki endpoints
	rolAudit := &middleware.AuditConfig{Resource: "rol"}
	roller := protected.PathPrefix("/roller").Subrouter()
	roller.Handle("", guard(rolAudit, authz.RollerYonetimi, roleHandler.GetAllRoles)).Methods("GET")
	roller.Handle("", guard(rolAudit, authz.RollerYonetimi, roleHandler.CreateRole)).Methods("POST")
	roller.Handle("/{id:[0-9]+}", guard(rolAudit, authz.RollerYonetimi, roleHandler.GetRole)).Methods("GET")
	roller.Handle("/{id:[0-9]+}", guard(rolAudit, authz.RollerYonetimi, roleHandler.UpdateRole)).Methods("PUT")
	roller.Handle("/{id:[0-9]+}", guard(rolAudit, authz.RollerYonetimi, roleHandler.DeleteRole)).Methods("DELETE")
	roller.Handle("/{id:[0-9]+}/yetkiler", guard(rolAudit, authz.RollerYonetimi, roleHandler.AssignPermission)).Methods("POST")
	roller.Handle("/{id:[0-9]+}/yetkiler/{code}", guard(rolAudit, authz.RollerYonetimi, roleHandler.RevokePermission)).Methods("DELETE")
	roller.Handle("/ata", guard(rolAudit, authz.RollerYonetimi, roleHandler.AssignRole)).Methods("POST")
	roller.Handle("/kaldir", guard(rolAudit, authz.RollerYonetimi, roleHandler.RevokeRole)).Methods("POST")

	yetkiler := protected.PathPrefix("/yetkiler").Subrouter()
	yetkiler.Handle("", guard(rolAudit, authz.RollerYonetimi, roleHandler.GetAllPermissions)).Methods("GET")

	// Cari endpoints
	cariAudit := &middleware.AuditConfig{Resource: "cari"}
	cariler := protected.PathPrefix("/cariler").Subrouter()
	cariler.Handle("", guard(cariAudit, authz.CarilerGoruntuleme, cariHandler.List)).Methods("GET")
	cariler.Handle("", guard(cariAudit, authz.CarilerEkleme, cariHandler.Create)).Methods("POST")
	cariler.Handle("/{id:[0-9]+}", guard(cariAudit, authz.CarilerGoruntuleme, cariHandler.GetByID)).Methods("GET")
	cariler.Handle("/{id:[0-9]+}", guard(cariAudit, authz.CarilerDuzenleme, cariHandler.Update)).Methods("PUT")
	cariler.Handle("/{id:[0-9]+}", guard(cariAudit, authz.CarilerSilme, cariHandler.Delete)).Methods("DELETE")

	// Etkinlik endpoints
	etkinlikAudit := &middleware.AuditConfig{Resource: "etkinlik"}
	etkinlikler := protected.PathPrefix("/etkinlikler").Subrouter()
	etkinlikler.Handle("", guard(etkinlikAudit, authz.EtkinliklerGoruntuleme, etkinlikHandler.List)).Methods("GET")
	etkinlikler.Handle("", guard(etkinlikAudit, authz.EtkinliklerEkleme, etkinlikHandler.Create)).Methods("POST")
	etkinlikler.Handle("/{id:[0-9]+}", guard(etkinlikAudit, authz.EtkinliklerGoruntuleme, etkinlikHandler.GetByID)).Methods("GET")
	etkinlikler.Handle("/{id:[0-9]+}", guard(etkinlikAudit, authz.EtkinliklerDuzenleme, etkinlikHandler.Update)).Methods("PUT")
	etkinlikler.Handle("/{id:[0-9]+}", guard(etkinlikAudit, authz.EtkinliklerSilme, etkinlikHandler.Delete)).Methods("DELETE")

	// Finans endpoints
	finansAudit := &middleware.AuditConfig{Resource: "finans"}
	finans := protected.PathPrefix("/finans").Subrouter()
	finans.Handle("", guard(finansAudit, authz.FinansGoruntuleme, finansHandler.List)).Methods("GET")
	finans.Handle("", guard(finansAudit, authz.FinansEkleme, finansHandler.Create)).Methods("POST")
	finans.Handle("/ozet", guard(finansAudit, authz.FinansGoruntuleme, finansHandler.Ozet)).Methods("GET")
	finans.Handle("/{id:[0-9]+}", guard(finansAudit, authz.FinansGoruntuleme, finansHandler.GetByID)).Methods("GET")
	finans.Handle("/{id:[0-9]+}", guard(finansAudit, authz.FinansSilme, finansHandler.Delete)).Methods("DELETE")

	// Audit log endpoints (salt okunur)
	logAudit := &middleware.AuditConfig{Resource: "auditlog"}
	loglar := protected.PathPrefix("/auditlogs").Subrouter()
	loglar.Handle("", guard(logAudit, authz.LoglarGoruntuleme, auditHandler.List)).Methods("GET")
	loglar.Handle("/actions", guard(logAudit, authz.LoglarGoruntuleme, auditHandler.Actions)).Methods("GET")
	loglar.Handle("/resources", guard(logAudit, authz.LoglarGoruntuleme, auditHandler.Resources)).Methods("GET")

	// Route listesini log'la (development için)
	router.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err == nil {
			methods, _ := route.GetMethods()
			log.Debug().
				Str("path", pathTemplate).
				Strs("methods", methods).
				Msg("📍 Route registered")
		}
		return nil
	})

	return router
}
