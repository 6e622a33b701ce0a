package timer

import (
	"bytes"
	"context"
	"log"
	"sync/atomic"
	"testing"
	"time"
)

func TestSweeper_RunsUntilCanceled(t *testing.T) {
	var calls atomic.Int32
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	s := NewSweeper("test", 5*time.Millisecond, func() int {
		calls.Add(1)
		return 0
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run не завершился после отмены контекста")
	}
	if calls.Load() < 2 {
		t.Errorf("Ожидалось минимум 2 вызова задачи, получено %d", calls.Load())
	}
	if !bytes.Contains(buf.Bytes(), []byte("Sweeper test stopped")) {
		t.Errorf("Ожидалась запись об остановке, лог: %s", buf.String())
	}
}
