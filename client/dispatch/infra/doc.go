// Package infra contém implementações concretas (infraestrutura) para os
// contratos definidos no pacote domain.
//
// Exemplos:
//   - FIFOPool: pool de permits de janela fixa com fila FIFO
//   - StartReplenisher: goroutine de reposição periódica do pool
//   - HTTPTransport: POST síncrono para a API do CRPT
//   - RedisStatsStore: contadores de desfecho de chamadas em Redis
package infra
