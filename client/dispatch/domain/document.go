package domain

// Tipos do documento de introdução em circulação (endpoint documents/create).
//
// Os nomes dos campos JSON fazem parte do contrato com a API externa e não
// podem mudar. Repare que o schema mistura snake_case ("owner_inn") com
// camelCase ("importRequest", "participantInn") — é assim mesmo no serviço.

import (
	"fmt"
	"time"
)

// DateLayout é o formato de data aceito pela API ("yyyy-MM-dd").
const DateLayout = "2006-01-02"

// Date é uma data de calendário (sem hora) serializada como "yyyy-MM-dd".
type Date struct {
	time.Time
}

// NewDate cria uma Date a partir de ano/mês/dia.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today retorna a data corrente em UTC.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Date())
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == `""` {
		d.Time = time.Time{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s: expected quoted %q", s, DateLayout)
	}
	t, err := time.Parse(DateLayout, s[1:len(s)-1])
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Description é o bloco "description" do documento.
type Description struct {
	ParticipantInn string `json:"participantInn"`
}

// Product é um item da lista "products".
type Product struct {
	CertificateDocument       string `json:"certificate_document"`
	CertificateDocumentDate   Date   `json:"certificate_document_date"`
	CertificateDocumentNumber string `json:"certificate_document_number"`
	OwnerInn                  string `json:"owner_inn"`
	ProducerInn               string `json:"producer_inn"`
	ProductionDate            Date   `json:"production_date"`
	TnvedCode                 string `json:"tnved_code"`
	UitCode                   string `json:"uit_code"`
	UituCode                  string `json:"uitu_code"`
}

// Document é o payload enviado para documents/create.
type Document struct {
	DocID          string      `json:"doc_id"`
	Description    Description `json:"description"`
	DocStatus      string      `json:"doc_status"`
	DocType        string      `json:"doc_type"`
	ImportRequest  bool        `json:"importRequest"`
	OwnerInn       string      `json:"owner_inn"`
	ParticipantInn string      `json:"participant_inn"`
	ProducerInn    string      `json:"producer_inn"`
	ProductionDate Date        `json:"production_date"`
	ProductionType string      `json:"production_type"`
	Products       []Product   `json:"products"`
	RegDate        Date        `json:"reg_date"`
	RegNumber      string      `json:"reg_number"`
}
