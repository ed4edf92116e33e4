package audit

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/kobisoft/crm-api/internal/interfaces"
	"github.com/kobisoft/crm-api/internal/models"
)

// Writer audit kayıtlarını arka planda yazan bounded worker queue.
// Submit hiçbir zaman bloklamaz; HTTP yanıtı audit yazımını beklemez.
// Yazım hatası operasyonel loga düşer, isteğe asla yansımaz.
type Writer struct {
	jobChan    chan *models.AuditLog
	workers    int
	bufferSize int
	wg         sync.WaitGroup
	store      interfaces.AuditLogRepositoryInterface
}

// NewWriter yeni writer oluşturur
func NewWriter(store interfaces.AuditLogRepositoryInterface, workers, bufferSize int) *Writer {
	if workers <= 0 {
		workers = 1
	}
	if bufferSize <= 0 {
		bufferSize = 64
	}
	return &Writer{
		jobChan:    make(chan *models.AuditLog, bufferSize),
		workers:    workers,
		bufferSize: bufferSize,
		store:      store,
	}
}

// Start worker'ları başlatır
func (w *Writer) Start() {
	log.Info().
		Int("workers", w.workers).
		Int("buffer_size", w.bufferSize).
		Msg("🔄 Audit writer başlatıldı")

	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go w.worker(i)
	}
}

// Stop queue'yu kapatır ve kalan kayıtların yazılmasını bekler
func (w *Writer) Stop() {
	close(w.jobChan)
	w.wg.Wait()
	log.Info().Msg("⏹️ Audit writer durduruldu")
}

// worker tek bir worker'ın kayıt yazması
func (w *Writer) worker(id int) {
	defer w.wg.Done()

	// Panic recovery
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("recover", r).
				Int("worker_id", id).
				Msg("🚨 Audit worker panikledi ama toparlandı")
		}
	}()

	for entry := range w.jobChan {
		if err := w.store.Create(entry); err != nil {
			// Best-effort: hata loglanır, retry yok
			log.Error().
				Err(err).
				Int("worker_id", id).
				Str("action", entry.Action).
				Str("resource", entry.Resource).
				Msg("❌ Audit kaydı yazılamadı")
			continue
		}

		log.Debug().
			Int("worker_id", id).
			Str("action", entry.Action).
			Str("resource", entry.Resource).
			Msg("Audit kaydı yazıldı")
	}
}

// Submit kaydı queue'ya ekler. Queue doluysa kayıt düşürülür ve
// durum loglanır; istek yolu hiçbir koşulda bloklanmaz.
func (w *Writer) Submit(entry *models.AuditLog) bool {
	select {
	case w.jobChan <- entry:
		return true
	default:
		log.Warn().
			Str("action", entry.Action).
			Str("resource", entry.Resource).
			Msg("⚠️ Audit queue dolu, kayıt düşürüldü")
		return false
	}
}
