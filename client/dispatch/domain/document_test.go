package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDocument_MarshalUsesWireFieldNames(t *testing.T) {
	doc := Document{
		DocID:          "doc-1",
		Description:    Description{ParticipantInn: "1234567890"},
		DocStatus:      "DRAFT",
		DocType:        "LP_INTRODUCE_GOODS",
		ImportRequest:  true,
		OwnerInn:       "111",
		ParticipantInn: "222",
		ProducerInn:    "333",
		ProductionDate: NewDate(2024, time.January, 5),
		ProductionType: "OWN_PRODUCTION",
		Products: []Product{{
			CertificateDocument:       "cert",
			CertificateDocumentDate:   NewDate(2023, time.December, 31),
			CertificateDocumentNumber: "42",
			OwnerInn:                  "111",
			ProducerInn:               "333",
			ProductionDate:            NewDate(2024, time.January, 5),
			TnvedCode:                 "tnved",
			UitCode:                   "uit",
			UituCode:                  "uitu",
		}},
		RegDate:   NewDate(2024, time.February, 1),
		RegNumber: "reg-9",
	}

	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// nomes de campo fazem parte do contrato com a API; qualquer renomeio quebra o serviço
	for _, field := range []string{
		"doc_id", "description", "doc_status", "doc_type", "importRequest",
		"owner_inn", "participant_inn", "producer_inn", "production_date",
		"production_type", "products", "reg_date", "reg_number",
	} {
		if _, ok := got[field]; !ok {
			t.Fatalf("expected field %q in payload: %s", field, b)
		}
	}

	desc, ok := got["description"].(map[string]any)
	if !ok {
		t.Fatalf("expected description object, got %T", got["description"])
	}
	if desc["participantInn"] != "1234567890" {
		t.Fatalf("unexpected description.participantInn: %v", desc["participantInn"])
	}

	if got["production_date"] != "2024-01-05" {
		t.Fatalf("expected production_date 2024-01-05, got %v", got["production_date"])
	}
	if got["importRequest"] != true {
		t.Fatalf("expected importRequest true, got %v", got["importRequest"])
	}

	products, ok := got["products"].([]any)
	if !ok || len(products) != 1 {
		t.Fatalf("expected 1 product, got %v", got["products"])
	}
	product := products[0].(map[string]any)
	for _, field := range []string{
		"certificate_document", "certificate_document_date", "certificate_document_number",
		"owner_inn", "producer_inn", "production_date", "tnved_code", "uit_code", "uitu_code",
	} {
		if _, ok := product[field]; !ok {
			t.Fatalf("expected product field %q in payload: %s", field, b)
		}
	}
	if product["certificate_document_date"] != "2023-12-31" {
		t.Fatalf("unexpected certificate_document_date: %v", product["certificate_document_date"])
	}
}

func TestDate_ZeroMarshalsAsNull(t *testing.T) {
	b, err := json.Marshal(Date{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != "null" {
		t.Fatalf("expected null for zero date, got %s", b)
	}
}

func TestDate_UnmarshalParsesWireFormat(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2024-01-05"`), &d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2024-01-05" {
		t.Fatalf("unexpected date: %s", d)
	}

	if err := json.Unmarshal([]byte(`"05/01/2024"`), &d); err == nil {
		t.Fatalf("expected error for wrong date format")
	}
}
