package domain

import (
	"context"
	"time"
)

// CallEvent representa o desfecho de uma chamada ao serviço externo.
//
// Ele é propositalmente agnóstico de transporte: DocID/DocType são strings
// genéricas do documento enviado.
//
// Observação: cuidado com cardinalidade (ex.: gravar DocID sem controle pode
// explodir o número de chaves em uma base como Redis).
type CallEvent struct {
	DocID   string
	DocType string

	// Admitted indica se a chamada chegou a obter um permit.
	Admitted bool
	// OK indica se o transporte respondeu sem erro.
	OK bool

	Waited time.Duration
	At     time.Time
}

// StatsStore é a estratégia de persistência para estatísticas de chamadas.
//
// Implementações podem armazenar em Redis, memória, etc.
// O dispatcher trata erro como best-effort (não derruba a chamada).
type StatsStore interface {
	Record(ctx context.Context, ev CallEvent) error
}
