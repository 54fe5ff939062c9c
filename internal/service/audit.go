package service

import (
	"context"
	"encoding/json"

	"warungpos/internal/model"
)

// AuditSink receives activity-log entries for asynchronous persistence. The
// worker pool implements it; services never block a request on log writes.
type AuditSink interface {
	EnqueueAudit(ctx context.Context, entry model.Log) error
}

// Log types, one letter each as stored.
const (
	LogCreate = "C"
	LogUpdate = "U"
	LogDelete = "D"
)

// snapshot serializes a record for the old/new data columns. Failures degrade
// to an empty string; the audit trail is best effort.
func snapshot(v interface{}) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// audit builds and enqueues one activity-log entry.
func audit(ctx context.Context, sink AuditSink, name, description, logType string, oldData, newData interface{}, userID int64) {
	if sink == nil {
		return
	}
	_ = sink.EnqueueAudit(ctx, model.Log{
		LogName:        name,
		LogDescription: description,
		LogType:        logType,
		OldData:        snapshot(oldData),
		NewData:        snapshot(newData),
		CreatedBy:      userID,
	})
}
