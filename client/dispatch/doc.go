// Package dispatch fornece o cliente da API de documentos do CRPT com
// controle de admissão de janela fixa.
//
// Visão geral (camadas):
//
//   - domain: contratos e tipos do domínio (documento, permits, erros), sem net/http
//   - application: caso de uso (acquire → marshal → send) sem net/http
//   - infra: implementações concretas (pool FIFO, reposição, transporte HTTP, stats)
//   - dispatch (este pacote): wiring + singleton do processo
//
// Fluxo de uma chamada:
//
//  1. Call adquire um permit do pool (pode bloquear; fila FIFO)
//  2. Serializa o documento para JSON
//  3. POST síncrono na API externa com Bearer token
//  4. Qualquer falha volta como APICallError com a causa original
//
// Em paralelo, uma goroutine de reposição devolve o pool à capacidade total a
// cada janela — reset absoluto, não incremental: é limite de vazão por janela
// fixa, não um semáforo de concorrência.
//
// Use New para uma instância própria (injeção de dependência, testes) ou
// Default para a instância única compartilhada do processo.
package dispatch
