package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"lendly/internal/config"
	"lendly/internal/metrics"
	"lendly/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// BookingSource снимок всех бронирований для отчета.
type BookingSource interface {
	ListAllBookings(ctx context.Context) ([]*models.Booking, error)
}

// ExportWorker фоновая выгрузка отчета по бронированиям в xlsx.
// Сигналы о новых событиях схлопываются: в очереди не бывает больше одного.
type ExportWorker struct {
	source   BookingSource
	path     string
	interval time.Duration
	retry    RetryPolicy
	queue    chan struct{}
	logger   *zerolog.Logger
}

// NewExportWorker builds a worker with sane defaults.
func NewExportWorker(source BookingSource, cfg config.ExportConfig, retry RetryPolicy, logger *zerolog.Logger) *ExportWorker {
	if retry.MaxRetries == 0 {
		retry.MaxRetries = 5
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = 2 * time.Second
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = 1 * time.Minute
	}
	if retry.BackoffFactor == 0 {
		retry.BackoffFactor = 2
	}

	interval := 30 * time.Second
	if cfg.Interval != "" {
		if d, err := time.ParseDuration(cfg.Interval); err == nil {
			interval = d
		} else {
			logger.Warn().Err(err).Str("interval", cfg.Interval).Msg("bad export interval, using 30s")
		}
	}

	return &ExportWorker{
		source:   source,
		path:     cfg.Path,
		interval: interval,
		retry:    retry,
		queue:    make(chan struct{}, 1),
		logger:   logger,
	}
}

// Enqueue помечает отчет устаревшим. Никогда не блокирует вызывающего.
func (w *ExportWorker) Enqueue() {
	select {
	case w.queue <- struct{}{}:
	default:
	}
}

// Start блокируется до отмены контекста.
func (w *ExportWorker) Start(ctx context.Context) {
	w.logger.Info().Str("path", w.path).Msg("export worker started")
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.queue:
			w.exportWithRetry(ctx)
			// Пауза между выгрузками, чтобы всплеск событий не молотил файл.
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.interval):
			}
		}
	}
}

func (w *ExportWorker) exportWithRetry(ctx context.Context) {
	for attempt := 1; attempt <= w.retry.MaxRetries; attempt++ {
		err := w.Export(ctx)
		if err == nil {
			metrics.IncExport("ok")
			return
		}

		w.logger.Error().Err(err).Int("attempt", attempt).Msg("export failed")
		metrics.IncExport("failed")

		select {
		case <-ctx.Done():
			return
		case <-time.After(w.retry.NextDelay(attempt)):
		}
	}
	w.logger.Error().Int("max_retries", w.retry.MaxRetries).Msg("export abandoned")
}

// Export пишет полный снимок бронирований в файл отчета.
func (w *ExportWorker) Export(ctx context.Context) error {
	bookings, err := w.source.ListAllBookings(ctx)
	if err != nil {
		return fmt.Errorf("list bookings: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	const sheet = "Bookings"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{"ID", "Item", "Owner ID", "Booker", "Booker email", "Start", "End", "Status"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	for row, b := range bookings {
		values := []any{
			b.ID,
			b.Item.Name,
			b.Item.OwnerID,
			b.Booker.Name,
			b.Booker.Email,
			b.Start.Format(time.RFC3339),
			b.End.Format(time.RFC3339),
			string(b.Status),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}

	w.logger.Info().Str("path", w.path).Int("bookings", len(bookings)).Msg("report exported")
	return nil
}
