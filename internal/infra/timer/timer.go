package timer

import (
	"context"
	"log"
	"time"
)

// Sweeper периодически вызывает задачу до отмены контекста
type Sweeper struct {
	name     string
	interval time.Duration
	task     func() int
	logger   *log.Logger
}

// NewSweeper создает Sweeper. task возвращает число обработанных записей,
// ненулевой результат пишется в лог.
func NewSweeper(name string, interval time.Duration, task func() int, logger *log.Logger) *Sweeper {
	if logger == nil {
		logger = log.Default()
	}
	return &Sweeper{name: name, interval: interval, task: task, logger: logger}
}

// Run блокируется до отмены ctx, вызывая задачу на каждом тике
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Printf("Sweeper %s stopped", s.name)
			return
		case <-ticker.C:
			if n := s.task(); n > 0 {
				s.logger.Printf("Sweeper %s: %d entries removed", s.name, n)
			}
		}
	}
}
