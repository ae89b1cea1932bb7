package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"calouros-backend/lib/callstore"
	"calouros-backend/lib/lookup"
	"calouros-backend/lib/mirror"
	"calouros-backend/lib/scrapers/comvest"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/ingest")

var ErrNoRecords = errors.New("listing contained no parseable records")

// Fetcher downloads a raw listing blob from a url.
type Fetcher interface {
	FetchListing(ctx context.Context, url string) (string, error)
}

// Mirror pushes confirmed records to a remote replica.
type Mirror interface {
	Upsert(ctx context.Context, rows []mirror.Row) (int, error)
}

type Options struct {
	Store   callstore.Store
	Tables  lookup.Tables
	Fetcher Fetcher
	// nil disables remote mirroring
	Mirror     Mirror
	StagingTTL time.Duration
}

// Service runs the ingest pipeline: parse stages a batch, confirm
// merges it into the stores, cancel discards it.
type Service struct {
	store   callstore.Store
	staging *Staging
	tables  lookup.Tables
	fetcher Fetcher
	mirror  Mirror
}

func NewService(opts Options) *Service {
	return &Service{
		store:   opts.Store,
		staging: NewStaging(opts.StagingTTL),
		tables:  opts.Tables,
		fetcher: opts.Fetcher,
		mirror:  opts.Mirror,
	}
}

type ParseRequest struct {
	// exactly one of Url and RawText should be set; Url wins when both are
	Url     string `json:"url,omitempty"`
	RawText string `json:"raw_text,omitempty"`
	// zero means: infer from the url, or default to 1
	Call int `json:"call,omitempty"`
	// empty means: infer from the url, or default to "unknown"
	Institution string `json:"institution,omitempty"`
}

const previewSize = 10

type ParseResult struct {
	BatchID     string           `json:"batch_id"`
	Institution string           `json:"institution"`
	Call        int              `json:"call"`
	Summary     Summary          `json:"summary"`
	Report      ExtractReport    `json:"report"`
	Unresolved  UnresolvedReport `json:"unresolved"`
	Preview     []Record         `json:"preview"`
}

// Parse extracts and classifies a listing and stages the result as a
// pending batch. Nothing is persisted until the batch is confirmed.
func (s *Service) Parse(ctx context.Context, req ParseRequest) (ParseResult, error) {
	ctx, span := tracer.Start(ctx, "Parse")
	defer span.End()

	raw := req.RawText
	institution := req.Institution
	call := req.Call

	if req.Url != "" {
		span.SetAttributes(attribute.String("url", req.Url))
		detectedInstitution, detectedCall := comvest.DetectTarget(req.Url)
		if institution == "" {
			institution = detectedInstitution
		}
		if call == 0 {
			call = detectedCall
		}

		if s.fetcher == nil {
			err := fmt.Errorf("no fetcher configured for url parsing")
			span.SetStatus(codes.Error, err.Error())
			return ParseResult{}, err
		}
		fetched, err := s.fetcher.FetchListing(ctx, req.Url)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to fetch listing")
			return ParseResult{}, err
		}
		raw = fetched
	}
	if institution == "" {
		institution = "unknown"
	}
	if call == 0 {
		call = 1
	}
	span.SetAttributes(
		attribute.String("institution", institution),
		attribute.Int("call", call),
	)

	candidates, report := ExtractRecords(raw, call, institution)
	if len(candidates) == 0 {
		span.SetStatus(codes.Error, ErrNoRecords.Error())
		return ParseResult{}, ErrNoRecords
	}

	records := Classify(candidates, s.tables)
	summary := Summarize(records)
	unresolved := ReportUnresolved(records, s.tables)

	id, err := s.staging.Add(Batch{
		Institution: institution,
		Call:        call,
		Records:     records,
		Summary:     summary,
		Report:      report,
		Unresolved:  unresolved,
	})
	if err != nil {
		span.RecordError(err)
		return ParseResult{}, err
	}

	slog.Info(
		"staged listing batch",
		"batch", id,
		"institution", institution,
		"call", call,
		"parsed", report.Parsed,
		"failed", report.Failed(),
	)

	preview := records
	if len(preview) > previewSize {
		preview = preview[:previewSize]
	}
	return ParseResult{
		BatchID:     id,
		Institution: institution,
		Call:        call,
		Summary:     summary,
		Report:      report,
		Unresolved:  unresolved,
		Preview:     preview,
	}, nil
}

type ConfirmResult struct {
	BatchID  string                `json:"batch_id"`
	Status   BatchStatus           `json:"status"`
	Summary  Summary               `json:"summary"`
	Merge    callstore.MergeResult `json:"merge"`
	Mirrored int                   `json:"mirrored"`
	// records the mirror could not accept, plus all of them when the
	// upload itself failed
	MirrorSkipped int `json:"mirror_skipped"`
}

// Confirm merges a pending batch into the local stores and then
// mirrors it remotely. The local merge is authoritative: a mirror
// failure is logged and reported but never fails the confirmation.
func (s *Service) Confirm(ctx context.Context, id string) (ConfirmResult, error) {
	ctx, span := tracer.Start(ctx, "Confirm")
	defer span.End()
	span.SetAttributes(attribute.String("batch", id))

	batch, err := s.staging.BeginConfirm(id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return ConfirmResult{}, err
	}

	entries := make([]callstore.Entry, 0, len(batch.Records))
	for _, rec := range batch.Records {
		payload, err := json.Marshal(rec)
		if err != nil {
			s.staging.AbortConfirm(id)
			span.RecordError(err)
			return ConfirmResult{}, err
		}
		entries = append(entries, callstore.Entry{
			Enrollment: rec.Enrollment,
			City:       rec.City,
			Record:     payload,
		})
	}

	merge, err := s.store.Merge(ctx, callstore.MergeRequest{
		Institution: batch.Institution,
		Call:        batch.Call,
		Entries:     entries,
	})
	if err != nil {
		s.staging.AbortConfirm(id)
		span.RecordError(err)
		span.SetStatus(codes.Error, "merge failed")
		return ConfirmResult{}, err
	}
	s.staging.FinishConfirm(id)

	result := ConfirmResult{
		BatchID: id,
		Status:  StatusConfirmed,
		Summary: batch.Summary,
		Merge:   merge,
	}
	if s.mirror != nil {
		rows, skipped := RemoteRows(batch.Records)
		result.MirrorSkipped = skipped

		mirrored, err := s.mirror.Upsert(ctx, rows)
		if err != nil {
			span.RecordError(err)
			slog.Warn(
				"remote mirror upload failed, local merge kept",
				"batch", id,
				"err", err,
			)
			result.MirrorSkipped += len(rows)
		} else {
			result.Mirrored = mirrored
		}
	}

	slog.Info(
		"confirmed listing batch",
		"batch", id,
		"institution", batch.Institution,
		"call", batch.Call,
		"appended", merge.Appended,
		"skipped", merge.Skipped,
		"mirrored", result.Mirrored,
	)
	return result, nil
}

// Cancel discards a pending batch without touching the stores.
func (s *Service) Cancel(ctx context.Context, id string) error {
	_, span := tracer.Start(ctx, "Cancel")
	defer span.End()
	span.SetAttributes(attribute.String("batch", id))

	if err := s.staging.Cancel(id); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	slog.Info("cancelled listing batch", "batch", id)
	return nil
}

type StatusResult struct {
	BatchID     string           `json:"batch_id"`
	Status      BatchStatus      `json:"status"`
	Institution string           `json:"institution"`
	Call        int              `json:"call"`
	Summary     Summary          `json:"summary"`
	Report      ExtractReport    `json:"report"`
	Unresolved  UnresolvedReport `json:"unresolved"`
	CreatedAt   time.Time        `json:"created_at"`
}

// Status reports a staged batch without its record payload.
func (s *Service) Status(ctx context.Context, id string) (StatusResult, error) {
	_, span := tracer.Start(ctx, "Status")
	defer span.End()
	span.SetAttributes(attribute.String("batch", id))

	batch, err := s.staging.Get(id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return StatusResult{}, err
	}
	return StatusResult{
		BatchID:     batch.ID,
		Status:      batch.Status,
		Institution: batch.Institution,
		Call:        batch.Call,
		Summary:     batch.Summary,
		Report:      batch.Report,
		Unresolved:  batch.Unresolved,
		CreatedAt:   batch.CreatedAt,
	}, nil
}

// Store exposes the underlying call store for read endpoints.
func (s *Service) Store() callstore.Store {
	return s.store
}
