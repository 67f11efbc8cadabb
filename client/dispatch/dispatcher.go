package dispatch

import (
	"context"
	"time"

	"crpt-client/client/dispatch/application"
	"crpt-client/client/dispatch/domain"
	"crpt-client/client/dispatch/infra"
)

type Options struct {
	// Window é o período entre reposições do pool de permits.
	Window time.Duration
	// Capacity é o máximo de chamadas admitidas por janela.
	Capacity int

	// Serializer e Transport são opcionais; quando nil, usam as
	// implementações padrão de infra (JSON + POST para o CRPT).
	Serializer domain.Serializer
	Transport  domain.Transport

	// Stats recebe o desfecho de cada chamada (best-effort; erro do store
	// nunca afeta a chamada).
	Stats domain.StatsStore

	// AcquireTimeout limita a espera por permit (0 = espera indefinida).
	AcquireTimeout time.Duration
}

// Dispatcher orquestra "adquirir permit → serializar → enviar" e é dono do
// pool e da sua reposição periódica.
type Dispatcher struct {
	svc   application.DispatchService
	pool  *infra.FIFOPool
	stats domain.StatsStore
	stop  context.CancelFunc
}

// New cria um Dispatcher de posse do chamador, com a reposição já rodando.
//
// Diferente de Default, cada chamada cria uma instância nova; é o caminho
// para injeção de dependência e para testes. Pare com Close.
func New(opts Options) (*Dispatcher, error) {
	if opts.Window <= 0 {
		return nil, &domain.ConfigError{Param: "window", Value: opts.Window}
	}
	pool, err := infra.NewFIFOPool(opts.Capacity)
	if err != nil {
		return nil, err
	}
	if opts.Serializer == nil {
		opts.Serializer = infra.JSONSerializer{}
	}
	if opts.Transport == nil {
		opts.Transport = infra.NewHTTPTransport()
	}

	ctx, cancel := context.WithCancel(context.Background())
	infra.StartReplenisher(ctx, pool, opts.Window)

	return &Dispatcher{
		svc: application.DispatchService{
			Pool:           pool,
			Serializer:     opts.Serializer,
			Transport:      opts.Transport,
			AcquireTimeout: opts.AcquireTimeout,
		},
		pool:  pool,
		stats: opts.Stats,
		stop:  cancel,
	}, nil
}

// Call envia um documento para a API externa usando token no Authorization.
//
// Pode bloquear esperando permit. Qualquer falha volta como
// *domain.APICallError com a causa original; não há retry e o permit de uma
// chamada falhada só volta na próxima reposição.
func (d *Dispatcher) Call(ctx context.Context, doc domain.Document, token string) (domain.Response, error) {
	res, err := d.svc.Dispatch(ctx, doc, token)

	if d.stats != nil {
		_ = d.stats.Record(ctx, domain.CallEvent{
			DocID:    doc.DocID,
			DocType:  doc.DocType,
			Admitted: res.Admitted,
			OK:       err == nil,
			Waited:   res.Waited,
			At:       time.Now(),
		})
	}

	return res.Response, err
}

// Close para a reposição periódica do pool. Idempotente.
// Chamadas já admitidas seguem normalmente; quem estiver esperando permit
// continua esperando até o próprio ctx cancelar.
func (d *Dispatcher) Close() {
	d.stop()
}
