package service

import (
	"context"
	"time"

	"warungpos/internal/apierror"
	"warungpos/internal/dto"
	"warungpos/internal/repository"
)

type LogService struct {
	logs repository.LogRepository
}

func NewLogService(logs repository.LogRepository) *LogService {
	return &LogService{logs: logs}
}

// List returns activity-log rows for an inclusive calendar-day range.
func (s *LogService) List(ctx context.Context, start, end time.Time, search string) ([]dto.LogResponse, error) {
	entries, err := s.logs.List(ctx, start, end.AddDate(0, 0, 1), search)
	if err != nil {
		return nil, apierror.Storage("log list failed", err)
	}
	out := make([]dto.LogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.LogResponse{
			LogID:          e.LogID,
			LogName:        e.LogName,
			LogDescription: e.LogDescription,
			LogType:        e.LogType,
			OldData:        e.OldData,
			NewData:        e.NewData,
			CreatedAt:      e.CreatedAt,
			CreatedBy:      e.CreatedBy,
		})
	}
	return out, nil
}
