package dispatch

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"crpt-client/client/dispatch/domain"
)

func TestDefault_ConcurrentFirstUseYieldsOneInstance(t *testing.T) {
	ResetDefault()
	t.Cleanup(ResetDefault)

	const n = 32

	start := make(chan struct{})
	instances := make(chan *Dispatcher, n)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start // todo mundo parte junto para forçar a corrida de primeira criação
			d, err := Default(time.Hour, 3)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			instances <- d
		}()
	}

	close(start)
	wg.Wait()
	close(instances)

	var first *Dispatcher
	count := 0
	for d := range instances {
		count++
		if first == nil {
			first = d
			continue
		}
		if d != first {
			t.Fatalf("expected all callers to observe the same instance")
		}
	}
	if count != n {
		t.Fatalf("expected %d instances collected, got %d", n, count)
	}
}

func TestDefault_IgnoresLaterParameters(t *testing.T) {
	ResetDefault()
	t.Cleanup(ResetDefault)

	d1, err := Default(time.Hour, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// parâmetros diferentes são silenciosamente ignorados (comportamento herdado)
	d2, err := Default(5*time.Millisecond, 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d1 != d2 {
		t.Fatalf("expected the same instance regardless of parameters")
	}
	if got := d1.pool.Capacity(); got != 3 {
		t.Fatalf("expected original capacity 3 to be kept, got %d", got)
	}
}

func TestDefault_InvalidCapacityFailsWithoutTouchingInstance(t *testing.T) {
	ResetDefault()
	t.Cleanup(ResetDefault)

	d1, err := Default(time.Hour, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = Default(time.Hour, -2)
	var cfgErr *domain.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if !strings.Contains(err.Error(), `"capacity"`) || !strings.Contains(err.Error(), "[-2]") {
		t.Fatalf("expected message to name parameter and value, got %q", err.Error())
	}

	d2, err := Default(time.Hour, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d1 != d2 {
		t.Fatalf("expected existing instance to be unaffected by the failed call")
	}
}

func TestDefault_RejectsNonPositiveCapacityOnFirstUse(t *testing.T) {
	ResetDefault()
	t.Cleanup(ResetDefault)

	_, err := Default(time.Second, 0)
	var cfgErr *domain.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}

	// a falha não pode deixar instância pela metade
	if defaultInst.Load() != nil {
		t.Fatalf("expected no instance after failed construction")
	}
}
