package audit

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kobisoft/crm-api/internal/models"
)

// fakeStore audit kayıtlarını bellekte tutan test store'u
type fakeStore struct {
	mu      sync.Mutex
	entries []*models.AuditLog
	failAll bool
}

func (f *fakeStore) Create(entry *models.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return fmt.Errorf("db erişilemez")
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeStore) List(filter *models.AuditLogFilter) ([]*models.AuditLog, int, error) {
	return nil, 0, nil
}

func (f *fakeStore) DistinctActions() ([]string, error)   { return nil, nil }
func (f *fakeStore) DistinctResources() ([]string, error) { return nil, nil }

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

// Stop kuyruğu drain eder: submit edilen her kayıt yazılır
func TestWriter_SubmitAndDrain(t *testing.T) {
	store := &fakeStore{}
	writer := NewWriter(store, 2, 32)
	writer.Start()

	for i := 0; i < 10; i++ {
		ok := writer.Submit(&models.AuditLog{Action: "create", Resource: "cari"})
		assert.True(t, ok)
	}

	writer.Stop()

	assert.Equal(t, 10, store.count())
}

// Queue doluyken Submit bloklamaz, kaydı düşürür
func TestWriter_SubmitFullQueueDrops(t *testing.T) {
	store := &fakeStore{}
	// Worker'lar başlatılmaz: queue dolabilir
	writer := NewWriter(store, 1, 2)

	assert.True(t, writer.Submit(&models.AuditLog{Action: "create", Resource: "cari"}))
	assert.True(t, writer.Submit(&models.AuditLog{Action: "create", Resource: "cari"}))
	assert.False(t, writer.Submit(&models.AuditLog{Action: "create", Resource: "cari"}))
}

// Store hatası worker'ı durdurmaz
func TestWriter_StoreErrorContinues(t *testing.T) {
	store := &fakeStore{failAll: true}
	writer := NewWriter(store, 1, 8)
	writer.Start()

	writer.Submit(&models.AuditLog{Action: "create", Resource: "cari"})
	writer.Submit(&models.AuditLog{Action: "delete", Resource: "cari"})

	// Stop panic'lemeden tamamlanmalı
	writer.Stop()
	assert.Equal(t, 0, store.count())
}

// Geçersiz parametreler güvenli varsayılanlara çekilir
func TestNewWriter_Defaults(t *testing.T) {
	writer := NewWriter(&fakeStore{}, 0, -1)

	assert.Equal(t, 1, writer.workers)
	assert.Equal(t, 64, writer.bufferSize)
}
