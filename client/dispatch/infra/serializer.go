package infra

import (
	"encoding/json"

	"crpt-client/client/dispatch/domain"
)

// JSONSerializer serializa documentos com encoding/json.
// As datas saem no formato "yyyy-MM-dd" via domain.Date.
type JSONSerializer struct{}

// Marshal implementa domain.Serializer.
func (JSONSerializer) Marshal(doc domain.Document) ([]byte, error) {
	return json.Marshal(doc)
}
