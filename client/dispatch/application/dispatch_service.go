package application

import (
	"context"
	"time"

	"crpt-client/client/dispatch/domain"
)

// DispatchService concentra a regra de uma chamada à API externa:
// adquirir um permit, serializar o documento e enviar. Não sabe nada sobre
// net/http nem sobre o ciclo de vida do pool.
type DispatchService struct {
	Pool       domain.PermitPool
	Serializer domain.Serializer
	Transport  domain.Transport

	// AcquireTimeout limita a espera por permit.
	// - Se <= 0, espera indefinidamente (até ctx cancelar).
	// - Se > 0, espera até o timeout.
	AcquireTimeout time.Duration
}

// Result descreve o desfecho de um Dispatch, inclusive quando há erro.
type Result struct {
	Response domain.Response
	// Admitted indica se um permit foi obtido antes da falha (se houver).
	Admitted bool
	// Waited é quanto tempo a chamada ficou bloqueada esperando permit.
	Waited time.Duration
}

// Dispatch executa a sequência acquire → marshal → send.
//
// Qualquer falha — espera interrompida, serialização ou transporte — volta
// como *domain.APICallError com a causa original acessível via errors.Is/As.
// Um Dispatch que falha depois de admitido NÃO devolve o permit: só a próxima
// reposição periódica repõe o estoque (semântica de janela fixa).
func (s DispatchService) Dispatch(ctx context.Context, doc domain.Document, token string) (Result, error) {
	res := Result{}

	acqCtx := ctx
	if s.AcquireTimeout > 0 {
		var cancel context.CancelFunc
		acqCtx, cancel = context.WithTimeout(ctx, s.AcquireTimeout)
		defer cancel()
	}

	start := time.Now()
	if err := s.Pool.Acquire(acqCtx); err != nil {
		res.Waited = time.Since(start)
		return res, &domain.APICallError{Err: err}
	}
	res.Waited = time.Since(start)
	res.Admitted = true

	payload, err := s.Serializer.Marshal(doc)
	if err != nil {
		return res, &domain.APICallError{Err: err}
	}

	resp, err := s.Transport.Send(ctx, payload, token)
	if err != nil {
		return res, &domain.APICallError{Err: err}
	}

	res.Response = resp
	return res, nil
}
