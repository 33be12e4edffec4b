package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"pawcal/config"
	calendarRepo "pawcal/database/repository/calendar"
	"pawcal/services/calendar"
	"pawcal/utils"
)

// TaskTypeExpandDefaults rolls the materialized expansion horizon forward
// for every professional that carries weekly default rules.
const TaskTypeExpandDefaults = "calendar:expand"

// ExpandDefaultsPayload carries an optional single-professional scope. An
// empty ProfessionalID means expand everyone with stored rules.
type ExpandDefaultsPayload struct {
	ProfessionalID string `json:"professionalID,omitempty"`
}

// ExpansionWorker runs the background re-expansion of weekly defaults.
type ExpansionWorker struct {
	service   calendar.CalendarService
	repo      calendarRepo.CalendarRepository
	server    *asynq.Server
	scheduler *asynq.Scheduler
}

// NewExpansionWorker builds the asynq server and scheduler on the worker
// Redis DB. Nothing runs until Start is called.
func NewExpansionWorker(svc calendar.CalendarService, repo calendarRepo.CalendarRepository) *ExpansionWorker {
	redisOpt := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisWorkerDB,
	}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		Queues:      map[string]int{"calendar": 1},
	})

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Location: time.UTC,
	})

	return &ExpansionWorker{
		service:   svc,
		repo:      repo,
		server:    server,
		scheduler: scheduler,
	}
}

// Start registers the task handler and the nightly schedule, then launches
// the server and scheduler in the background.
func (w *ExpansionWorker) Start() error {
	logger := utils.GetLogger()

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypeExpandDefaults, w.handleExpandDefaults)

	task := asynq.NewTask(TaskTypeExpandDefaults, nil, asynq.Queue("calendar"))
	if _, err := w.scheduler.Register("0 2 * * *", task); err != nil {
		return fmt.Errorf("failed to register expansion schedule: %w", err)
	}

	go func() {
		if err := w.server.Run(mux); err != nil {
			logger.Error("Expansion worker stopped", zap.Error(err))
		}
	}()
	go func() {
		if err := w.scheduler.Run(); err != nil {
			logger.Error("Expansion scheduler stopped", zap.Error(err))
		}
	}()

	logger.Info("Expansion worker started", zap.String("schedule", "0 2 * * *"))
	return nil
}

// Shutdown stops the scheduler and drains the server.
func (w *ExpansionWorker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}

func (w *ExpansionWorker) handleExpandDefaults(ctx context.Context, t *asynq.Task) error {
	logger := utils.GetLogger()

	var payload ExpandDefaultsPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("invalid expansion payload: %w", err)
		}
	}

	ids := []string{payload.ProfessionalID}
	if payload.ProfessionalID == "" {
		var err error
		ids, err = w.repo.ListProfessionalsWithDefaults(ctx)
		if err != nil {
			return fmt.Errorf("failed to list professionals for expansion: %w", err)
		}
	}

	var failed int
	for _, id := range ids {
		diff, err := w.service.ExpandDefaults(ctx, id)
		if err != nil {
			// Keep going; one bad rule set must not block the rest.
			logger.Error("Expansion failed", zap.String("professionalID", id), zap.Error(err))
			failed++
			continue
		}
		if !diff.IsEmpty() {
			logger.Info("Expanded weekly defaults",
				zap.String("professionalID", id),
				zap.Int("changedDates", len(diff.Changes)))
		}
	}

	logger.Info("Expansion run complete", zap.Int("professionals", len(ids)), zap.Int("failed", failed))
	if failed == len(ids) && len(ids) > 0 {
		return fmt.Errorf("expansion failed for all %d professionals", failed)
	}
	return nil
}
