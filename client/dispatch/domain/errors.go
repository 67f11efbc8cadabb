package domain

import "fmt"

// ConfigError indica um parâmetro de configuração inválido na construção.
//
// A mensagem sempre nomeia o parâmetro ofensor e o valor recebido.
type ConfigError struct {
	Param string
	Value any
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("parameter %q must be positive, got [%v]", e.Param, e.Value)
}

// APICallError empacota qualquer falha ocorrida durante uma chamada:
// espera de permit interrompida, serialização ou transporte. Nenhuma
// categoria é distinguida e nenhum retry é feito; a causa original fica
// acessível via errors.Is/errors.As.
type APICallError struct {
	Err error
}

func (e *APICallError) Error() string {
	return fmt.Sprintf("api call failed: %v", e.Err)
}

func (e *APICallError) Unwrap() error { return e.Err }
