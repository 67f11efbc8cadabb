package infra

import (
	"context"
	"sync"

	"crpt-client/client/dispatch/domain"
)

// FIFOPool é a implementação de janela fixa do domain.PermitPool.
//
// Diferente de um semáforo comum, permits não são devolvidos ao final de cada
// chamada: só Replenish repõe o estoque, sempre de volta à capacidade total.
// Waiters são atendidos estritamente na ordem de chegada.
type FIFOPool struct {
	mu        sync.Mutex
	capacity  int
	available int
	waiters   []chan struct{}
}

// NewFIFOPool cria um pool com `capacity` permits, já cheio.
// capacity é validado uma única vez, aqui; Acquire nunca falha por configuração.
func NewFIFOPool(capacity int) (*FIFOPool, error) {
	if capacity <= 0 {
		return nil, &domain.ConfigError{Param: "capacity", Value: capacity}
	}
	return &FIFOPool{capacity: capacity, available: capacity}, nil
}

// Acquire bloqueia até obter um permit ou até o ctx encerrar.
//
// Com context.Background() a espera é indefinida, que é o comportamento
// padrão esperado pelos chamadores; cancelamento é opt-in via ctx.
func (p *FIFOPool) Acquire(ctx context.Context) error {
	p.mu.Lock()
	// o caminho rápido só vale com a fila vazia, senão um recém-chegado
	// furaria a ordem FIFO de quem já espera
	if len(p.waiters) == 0 && p.available > 0 {
		p.available--
		p.mu.Unlock()
		return nil
	}
	w := make(chan struct{})
	p.waiters = append(p.waiters, w)
	p.mu.Unlock()

	select {
	case <-w:
		return nil
	case <-ctx.Done():
		p.mu.Lock()
		select {
		case <-w:
			// o grant chegou junto com o cancelamento: devolve o permit
			// para o próximo da fila em vez de perdê-lo
			if p.available < p.capacity {
				p.available++
			}
			p.grantLocked()
		default:
			p.removeWaiterLocked(w)
		}
		p.mu.Unlock()
		return ctx.Err()
	}
}

// Replenish repõe available para a capacidade total, incondicionalmente.
//
// O reset é absoluto, não incremental: pode liberar mais capacidade do que o
// número de chamadas concluídas na janela, se alguma chamada durar mais que a
// própria janela. É o comportamento de janela fixa, de propósito.
func (p *FIFOPool) Replenish() {
	p.mu.Lock()
	p.available = p.capacity
	p.grantLocked()
	p.mu.Unlock()
}

// Capacity retorna a capacidade configurada.
func (p *FIFOPool) Capacity() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.capacity
}

// Available retorna o número de permits disponíveis no momento.
func (p *FIFOPool) Available() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.available
}

// grantLocked entrega permits aos waiters na ordem de chegada.
// Deve ser chamado com p.mu travado.
func (p *FIFOPool) grantLocked() {
	for p.available > 0 && len(p.waiters) > 0 {
		w := p.waiters[0]
		p.waiters = p.waiters[1:]
		p.available--
		close(w)
	}
}

func (p *FIFOPool) removeWaiterLocked(w chan struct{}) {
	for i, x := range p.waiters {
		if x == w {
			p.waiters = append(p.waiters[:i], p.waiters[i+1:]...)
			return
		}
	}
}
