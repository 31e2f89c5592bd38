package broker

import (
	"fmt"
	"time"
	"unicode"
	"unicode/utf8"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Werneck0live/painel-contabil/internal/models"
)

// Ações publicadas na fila.
const (
	ActionCreate  = "cadastro"
	ActionUpdate  = "edição"
	ActionDelete  = "exclusão"
	ActionImport  = "importação"
	EventMimeType = "application/json"
)

// ImportSummary resume uma importação de CSV.
type ImportSummary struct {
	Imported int    `json:"imported"`
	Updated  int    `json:"updated"`
	Skipped  int    `json:"skipped"`
	Errors   int    `json:"errors"`
	Encoding string `json:"encoding,omitempty"`
}

// Event é o corpo JSON das mensagens consumidas pelo relay de websocket.
type Event struct {
	Action    string         `json:"action"`
	CompanyID string         `json:"companyId,omitempty"`
	TaxID     string         `json:"taxId,omitempty"`
	Name      string         `json:"name,omitempty"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	Import    *ImportSummary `json:"import,omitempty"`
}

// CompanyEvent monta o evento de cadastro/edição/exclusão de uma empresa.
func CompanyEvent(action string, c *models.Company) Event {
	return Event{
		Action:    action,
		CompanyID: c.ID,
		TaxID:     c.TaxID,
		Name:      c.Name,
		Message:   fmt.Sprintf("%s de EMPRESA %s", capitalize(action), c.DisplayName()),
		Timestamp: time.Now().UTC(),
	}
}

// ImportEvent monta o evento de resumo de importação.
func ImportEvent(s ImportSummary) Event {
	return Event{
		Action: ActionImport,
		Message: fmt.Sprintf("Importação de CSV: %d importadas, %d atualizadas, %d puladas, %d erros",
			s.Imported, s.Updated, s.Skipped, s.Errors),
		Timestamp: time.Now().UTC(),
		Import:    &s,
	}
}

// Headers replica os campos principais como headers AMQP.
func (e Event) Headers() amqp.Table {
	h := amqp.Table{
		"action":    e.Action,
		"timestamp": e.Timestamp.Format(time.RFC3339),
	}
	if e.CompanyID != "" {
		h["company_id"] = e.CompanyID
	}
	if e.TaxID != "" {
		h["tax_id"] = e.TaxID
	}
	if e.Name != "" {
		h["name"] = e.Name
	}
	return h
}

func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
