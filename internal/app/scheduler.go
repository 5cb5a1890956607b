package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task фоновая задача планировщика
type Task func(ctx context.Context) error

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewScheduler создаёт новый планировщик
func NewScheduler(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Every запускает task сразу и затем каждые interval
func (s *Scheduler) Every(ctx context.Context, name string, interval time.Duration, task Task) {
	s.logger.Info("Starting background task", zap.String("task", name), zap.Duration("interval", interval))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runTask(ctx, name, interval, task)
	}()
}

// Stop останавливает фоновые задачи и ждёт их завершения
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	s.wg.Wait()
}

func (s *Scheduler) runTask(ctx context.Context, name string, interval time.Duration, task Task) {
	// Первый запуск сразу при старте
	s.execute(ctx, name, task)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.execute(ctx, name, task)
		case <-s.stopChan:
			s.logger.Info("Background task stopped", zap.String("task", name))
			return
		case <-ctx.Done():
			s.logger.Info("Background task cancelled", zap.String("task", name))
			return
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, name string, task Task) {
	start := time.Now()
	if err := task(ctx); err != nil {
		s.logger.Error("Background task failed", zap.String("task", name), zap.Error(err))
		return
	}
	s.logger.Debug("Background task completed", zap.String("task", name), zap.Duration("duration", time.Since(start)))
}
