// Package application contém o caso de uso de despacho de documentos para a
// API externa com controle de admissão.
//
// Ele depende apenas do pacote domain e não conhece net/http.
// Ex.: DispatchService.Dispatch(ctx, doc, token) retorna um Result
// (resposta + admitido/espera) ou um APICallError.
package application
