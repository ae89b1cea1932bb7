// Package mirror uploads classified admission records to a remote
// relational store exposing a PostgREST-style API. The upsert is keyed
// by inscricao, the remote table enforces uniqueness on it.
package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"calouros-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("lib/mirror")

type Config struct {
	Url        string `json:"url"`
	ServiceKey string `json:"service_key"`
	Table      string `json:"table"`
}

// Row is the remote schema of one record.
type Row struct {
	Inscricao  string `json:"inscricao"`
	Name       string `json:"name"`
	Course     string `json:"course"`
	University string `json:"university"`
	Cidade     string `json:"cidade"`
	Unidade    string `json:"unidade,omitempty"`
	Chamada    int    `json:"chamada"`
	Genero     string `json:"genero"`
	Cota       string `json:"cota,omitempty"`
	Remanejado bool   `json:"remanejado"`
}

type Client struct {
	http  *resty.Client
	table string
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.Url == "" || cfg.ServiceKey == "" {
		return nil, fmt.Errorf("mirror url and service key are required")
	}
	table := cfg.Table
	if table == "" {
		table = "master_calouros"
	}

	client := resty.New()
	client.SetBaseURL(cfg.Url)
	client.SetHeader("apikey", cfg.ServiceKey)
	client.SetAuthToken(cfg.ServiceKey)
	client.SetTimeout(time.Second * 20)

	telemetry.InstrumentResty(client, "lib/mirror/http")

	return &Client{http: client, table: table}, nil
}

// Upsert sends rows to the remote table, merging on inscricao conflicts.
// Returns the number of rows the remote store acknowledged.
func (c *Client) Upsert(ctx context.Context, rows []Row) (int, error) {
	ctx, span := tracer.Start(ctx, "Upsert")
	defer span.End()
	span.SetAttributes(attribute.Int("rows", len(rows)))

	if len(rows) == 0 {
		return 0, nil
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "resolution=merge-duplicates,return=representation").
		SetQueryParam("on_conflict", "inscricao").
		SetBody(rows).
		Post(fmt.Sprintf("/rest/v1/%s", c.table))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upsert request failed")
		return 0, err
	}
	if res.StatusCode() >= 400 {
		err := fmt.Errorf("remote store rejected upsert: status %d: %s", res.StatusCode(), res.String())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	var acknowledged []json.RawMessage
	if err := json.Unmarshal(res.Body(), &acknowledged); err != nil {
		// the remote may answer 201 with an empty body when the
		// representation preference is not honored
		return len(rows), nil
	}
	return len(acknowledged), nil
}
