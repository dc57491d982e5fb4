package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
)

// LogAuditLogger implements domain.AuditLogger on the process log. Auditing
// never fails the operation being recorded.
type LogAuditLogger struct{}

// NewLogAuditLogger creates a log-backed audit logger
func NewLogAuditLogger() domain.AuditLogger {
	return &LogAuditLogger{}
}

// Log implements domain.AuditLogger
func (l *LogAuditLogger) Log(_ context.Context, event domain.AuditEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("audit: %s (marshal failed: %v)", event.EventType, err)
		return
	}
	log.Printf("audit: %s", data)
}
