package services

import (
	"context"
	"time"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
)

// MarketingSvcFacade surfaces the retention lists shown on the dashboard.
type MarketingSvcFacade interface {
	// RescueList retrieves active clients who have not visited in over 15 days.
	RescueList(ctx context.Context, now time.Time) ([]domain.Client, error)

	// BirthdayList retrieves active clients with a birthday in the given month.
	BirthdayList(ctx context.Context, month time.Month) ([]domain.Client, error)
}

// AssistantSvcFacade produces the AI business summary for the dashboard.
type AssistantSvcFacade interface {
	// Summarize builds a snapshot of the business and asks the language model
	// for a short plain-language summary. An optional owner question is
	// answered against the same snapshot.
	Summarize(ctx context.Context, question string) (string, error)
}
