// Package domain define contratos e tipos de domínio para o cliente do CRPT
// com controle de admissão.
//
// Este pacote não depende de net/http nem de implementações concretas.
// A intenção é permitir testes de unidade puros e desacoplar regras de negócio
// de detalhes de infraestrutura (pool de permits, serialização, transporte).
package domain
