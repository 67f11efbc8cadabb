package infra

import (
	"context"
	"time"

	"crpt-client/client/dispatch/domain"
)

// StartReplenisher inicia uma goroutine dedicada que chama pool.Replenish()
// a cada period, indefinidamente. Pare cancelando o contexto.
//
// O tick roda fora das goroutines dos chamadores: Replenish é barato (um lock
// curto), então ticks nunca ficam serializados atrás de atividade de chamada.
func StartReplenisher(ctx context.Context, pool domain.PermitPool, period time.Duration) {
	if period <= 0 {
		return
	}

	t := time.NewTicker(period)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				pool.Replenish()
			}
		}
	}()
}
