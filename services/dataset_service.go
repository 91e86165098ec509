package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"stock_advisor_backend/models"
	"stock_advisor_backend/services/loader"
)

// DatasetService holds the in-memory indicator table the recommendation
// engine works over. The table is an immutable snapshot between reloads;
// readers always get a copy so a reload can never race a running request.
type DatasetService struct {
	mu       sync.RWMutex
	records  []models.StockRecord
	source   string
	loadedAt time.Time
}

// Global dataset service instance
var GlobalDatasetService *DatasetService

// InitDatasetService loads the dataset file and installs the global instance
func InitDatasetService(source string) error {
	service := &DatasetService{source: source}

	if err := service.Reload(); err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	GlobalDatasetService = service
	log.Printf("Dataset Service initialized with %d records from %s", service.Status().RecordCount, source)
	return nil
}

// Reload re-reads the dataset file and swaps the table in one shot.
// On failure the previous snapshot stays in place.
func (s *DatasetService) Reload() error {
	records, err := loader.LoadStockTable(s.source)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.records = records
	s.loadedAt = time.Now()
	s.mu.Unlock()

	log.Printf("Dataset reloaded: %d records from %s", len(records), s.source)

	// Notify realtime subscribers if the hub is running
	if GlobalRealtimeService != nil {
		GlobalRealtimeService.BroadcastDatasetReloaded(s.Status())
	}

	return nil
}

// Records returns a copy of the current table snapshot
func (s *DatasetService) Records() []models.StockRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]models.StockRecord, len(s.records))
	copy(snapshot, s.records)
	return snapshot
}

// Status returns metadata about the loaded snapshot
func (s *DatasetService) Status() models.DatasetStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.DatasetStatus{
		Source:      s.source,
		RecordCount: len(s.records),
		LoadedAt:    s.loadedAt,
	}
}
