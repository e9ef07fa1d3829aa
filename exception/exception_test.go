package exception

import (
	"sync"
	"time"
	"testing"

	"github.com/mezonai/svmharness/monitoring"
	"github.com/stretchr/testify/assert"
)

func TestSafeGoRecovers(t *testing.T) {
	monitoring.InitMetrics()
	before := monitoring.PanicCount()

	var wg sync.WaitGroup
	wg.Add(1)
	SafeGo("boom", func() {
		defer wg.Done()
		panic("boom")
	})
	wg.Wait()

	assert.Eventually(t, func() bool {
		return monitoring.PanicCount() == before+1
	}, time.Second, 10*time.Millisecond)
}

func TestSafeGoRunsFn(t *testing.T) {
	done := make(chan struct{})
	SafeGo("ok", func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("fn did not run")
	}
}
