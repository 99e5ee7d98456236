package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	portssvc "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/services"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/utils"
)

// SummaryGenerator is the language-model collaborator behind the dashboard
// summary. The HTTP adapter in internal/adapters/assistant implements it.
type SummaryGenerator interface {
	GenerateSummary(ctx context.Context, prompt string) (string, error)
}

// assistantService assembles a business snapshot and asks the language model
// for a short plain-language summary of it.
type assistantService struct {
	BaseService
	billingSvc portssvc.BillingSvcFacade
	clientSvc  portssvc.ClientSvcFacade
	checkInSvc portssvc.CheckInSvcFacade
	generator  SummaryGenerator
}

// NewAssistantService creates a new AssistantService.
func NewAssistantService(billingSvc portssvc.BillingSvcFacade, clientSvc portssvc.ClientSvcFacade, checkInSvc portssvc.CheckInSvcFacade, generator SummaryGenerator) portssvc.AssistantSvcFacade {
	return &assistantService{
		billingSvc: billingSvc,
		clientSvc:  clientSvc,
		checkInSvc: checkInSvc,
		generator:  generator,
	}
}

var _ portssvc.AssistantSvcFacade = (*assistantService)(nil)

// Summarize builds a snapshot of the business and asks the language model for
// a short summary a gym owner can read at a glance. When a question is given
// the model answers it against the same snapshot instead.
func (s *assistantService) Summarize(ctx context.Context, question string) (string, error) {
	now := time.Now().UTC()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	debtors, err := s.billingSvc.ListDebtors(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to build business snapshot: %w", err)
	}
	totalOwed, err := s.billingSvc.TotalOwed(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to build business snapshot: %w", err)
	}
	cashFlow, err := s.billingSvc.CashFlowSummary(ctx, startOfMonth)
	if err != nil {
		return "", fmt.Errorf("failed to build business snapshot: %w", err)
	}
	occupancy, err := s.checkInSvc.CurrentOccupancy(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to build business snapshot: %w", err)
	}

	var b strings.Builder
	if question != "" {
		fmt.Fprintf(&b, "You are an assistant for a gym owner. Answer the owner's question using only the snapshot below, in plain language.\n")
		fmt.Fprintf(&b, "Question: %s\n\n", question)
	} else {
		fmt.Fprintf(&b, "You are an assistant for a gym owner. Summarize the state of the business in 3 or 4 sentences, in plain language, and suggest one concrete action.\n\n")
	}
	fmt.Fprintf(&b, "Snapshot for %s:\n", now.Format("2006-01-02"))
	fmt.Fprintf(&b, "- Income this month: %s\n", utils.FormatMoney(cashFlow.TotalIncome))
	fmt.Fprintf(&b, "- Expenses this month: %s\n", utils.FormatMoney(cashFlow.TotalExpense))
	fmt.Fprintf(&b, "- Net this month: %s\n", utils.FormatMoney(cashFlow.Net))
	fmt.Fprintf(&b, "- Clients with outstanding debt: %d, owing a total of %s\n", len(debtors), utils.FormatMoney(totalOwed))
	fmt.Fprintf(&b, "- People on the floor right now: %d\n", occupancy)

	summary, err := s.generator.GenerateSummary(ctx, b.String())
	if err != nil {
		s.LogError(ctx, err, "Summary generation failed")
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}
	return summary, nil
}
