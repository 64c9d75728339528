// Package remote lee vacunas y evaluaciones desde un servicio de records externo.
package remote

import (
	"context"
	"fmt"
	"time"

	"kennel-scheduler/internal/domain/records"
	"kennel-scheduler/internal/platform/httpclient"
	"kennel-scheduler/internal/platform/logger"
)

// Client implementa eligibility.RecordsSource sobre HTTP.
// Un 404 del servicio remoto se toma como "sin registros".
type Client struct {
	http *httpclient.Client
	log  logger.Logger
}

func New(baseURL string, timeout time.Duration, log logger.Logger) (*Client, error) {
	if log == nil {
		log = logger.Nop()
	}
	hc, err := httpclient.New(httpclient.Options{
		BaseURL: baseURL,
		Timeout: timeout,
		Retries: httpclient.DefaultRetries,
	})
	if err != nil {
		return nil, err
	}
	return &Client{http: hc, log: log.With(map[string]any{"component": "records-remote"})}, nil
}

type vaccinationDTO struct {
	ID         string    `json:"id"`
	PetID      string    `json:"pet_id"`
	Type       string    `json:"type"`
	RecordedAt time.Time `json:"recorded_at"`
}

type evaluationDTO struct {
	ID          string    `json:"id"`
	PetID       string    `json:"pet_id"`
	EvaluatedAt string    `json:"evaluated_at"`
	Status      string    `json:"status"`
	IsExpired   bool      `json:"is_expired"`
	RecordedAt  time.Time `json:"recorded_at"`
}

func (c *Client) ListVaccinations(ctx context.Context, petID string) ([]records.Vaccination, error) {
	var items []vaccinationDTO
	if err := c.get(ctx, "/pets/{petID}/vaccinations", petID, &items); err != nil {
		return nil, err
	}

	out := make([]records.Vaccination, 0, len(items))
	for _, it := range items {
		out = append(out, records.Vaccination{
			ID:         it.ID,
			PetID:      petID,
			Type:       it.Type,
			RecordedAt: it.RecordedAt,
		})
	}
	return out, nil
}

func (c *Client) ListEvaluations(ctx context.Context, petID string) ([]records.Evaluation, error) {
	var items []evaluationDTO
	if err := c.get(ctx, "/pets/{petID}/evaluations", petID, &items); err != nil {
		return nil, err
	}

	out := make([]records.Evaluation, 0, len(items))
	for _, it := range items {
		out = append(out, records.Evaluation{
			ID:          it.ID,
			PetID:       petID,
			EvaluatedAt: it.EvaluatedAt,
			Status:      records.EvaluationStatus(it.Status),
			IsExpired:   it.IsExpired,
			RecordedAt:  it.RecordedAt,
		})
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path, petID string, out any) error {
	err := c.http.GetJSON(ctx, path, map[string]string{"petID": petID}, out)
	if err == nil {
		return nil
	}
	if httpclient.IsNotFound(err) {
		c.log.Debug("pet unknown to records service", map[string]any{"pet_id": petID})
		return nil
	}
	c.log.Error("records request failed", map[string]any{"pet_id": petID, "path": path, "err": err})
	return fmt.Errorf("records remote: %w", err)
}
