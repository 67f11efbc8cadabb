package dispatch

import (
	"sync"
	"sync/atomic"
	"time"

	"crpt-client/client/dispatch/domain"
)

// instância compartilhada do processo: checagem barata sem lock no caminho
// comum (atomic.Pointer), lock + recheck só na primeira construção.
var (
	defaultMu   sync.Mutex
	defaultInst atomic.Pointer[Dispatcher]
)

// Default retorna o Dispatcher compartilhado do processo, criando-o na
// primeira chamada com os window/capacity informados. Sob corrida de
// primeira chamada, exatamente uma instância é criada e todos os chamadores
// enxergam a mesma.
//
// Depois da primeira construção bem-sucedida, chamadas posteriores devolvem
// a MESMA instância e IGNORAM novos parâmetros, mesmo diferentes. Esse
// comportamento vem do serviço original e é preservado de propósito.
//
// A validação de capacity roda antes da checagem de instância: um capacity
// inválido sempre falha, sem afetar uma instância já existente.
func Default(window time.Duration, capacity int) (*Dispatcher, error) {
	if capacity <= 0 {
		return nil, &domain.ConfigError{Param: "capacity", Value: capacity}
	}
	if d := defaultInst.Load(); d != nil {
		return d, nil
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if d := defaultInst.Load(); d != nil {
		return d, nil
	}

	d, err := New(Options{Window: window, Capacity: capacity})
	if err != nil {
		return nil, err
	}
	defaultInst.Store(d)
	return d, nil
}

// ResetDefault descarta a instância compartilhada, parando sua reposição.
// Existe para testes; código de produção não deveria chamar isso.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if d := defaultInst.Load(); d != nil {
		d.Close()
	}
	defaultInst.Store(nil)
}
