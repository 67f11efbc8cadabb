package domain

import "context"

// PermitPool representa o recurso de admissão com capacidade finita.
//
// A semântica é de janela fixa: Acquire consome um permit (bloqueando em ordem
// FIFO até haver um disponível ou o ctx encerrar) e o permit NÃO é devolvido ao
// final da chamada — apenas Replenish repõe o estoque, sempre de volta à
// capacidade total.
type PermitPool interface {
	Acquire(ctx context.Context) error
	Replenish()
}

// Serializer converte um Document para o formato de fio (JSON).
type Serializer interface {
	Marshal(doc Document) ([]byte, error)
}

// Response é o resultado bruto da API externa.
type Response struct {
	Status int
	Body   string
}

// Transport executa a chamada síncrona ao serviço externo.
//
// O payload já chega serializado; token é usado no header Authorization.
// Erros de conexão/timeout sobem para o chamador decidir o empacotamento.
type Transport interface {
	Send(ctx context.Context, payload []byte, token string) (Response, error)
}
