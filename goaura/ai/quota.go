package ai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ellavondegurechaff/goaura/goaura/database/models"
	"github.com/ellavondegurechaff/goaura/goaura/database/repositories"
)

const (
	// Rough prompt estimate: one token per ~4 bytes of content plus a
	// fixed per-message envelope overhead.
	estBytesPerToken      = 4
	estPerMessageOverhead = 4

	defaultCompletionTokens = 1024
	maxErrorMessageLen      = 500
)

// Quota rejection codes surfaced to the client.
const (
	CodeMonthlyExceeded    = "monthly_quota_exceeded"
	CodeMonthlyWouldExceed = "monthly_quota_would_exceed"
)

// QuotaError rejects a request against the monthly window, carrying the
// current figures so the caller can render its limit state and back off.
type QuotaError struct {
	Code         string
	MonthlyUsed  int64
	MonthlyLimit int64
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("%s: %d/%d tokens", e.Code, e.MonthlyUsed, e.MonthlyLimit)
}

type ProxyRequest struct {
	Messages     []Message
	Model        string
	MaxTokens    int64
	FunctionType string
}

type QuotaStatus struct {
	DailyUsed    int64
	DailyLimit   int64
	MonthlyUsed  int64
	MonthlyLimit int64
	StatDate     string
	StatMonth    string
}

// Provider is the upstream completion call, abstracted for tests.
type Provider interface {
	CreateCompletion(ctx context.Context, request *CompletionRequest) (*CompletionResponse, []byte, error)
}

type QuotaServiceConfig struct {
	DailyLimit          int64
	MonthlyLimit        int64
	MaxCompletionTokens int64
	CheapModel          string
	StrongModel         string
}

// QuotaService gates upstream AI calls against daily and monthly token
// windows and audits every attempt.
type QuotaService struct {
	usage    repositories.UsageRepository
	provider Provider
	cfg      QuotaServiceConfig
	now      func() time.Time
}

func NewQuotaService(usage repositories.UsageRepository, provider Provider, cfg QuotaServiceConfig) *QuotaService {
	if cfg.MaxCompletionTokens <= 0 {
		cfg.MaxCompletionTokens = defaultCompletionTokens
	}
	return &QuotaService{
		usage:    usage,
		provider: provider,
		cfg:      cfg,
		now:      time.Now,
	}
}

// EstimateTokens approximates the prompt cost of a message list.
func EstimateTokens(messages []Message) int64 {
	var total int64
	for _, m := range messages {
		total += int64(len(m.Content))/estBytesPerToken + estPerMessageOverhead
	}
	return total
}

// Complete runs the full gated proxy flow: hard monthly gate, pre-flight
// estimate, upstream call, post-hoc usage check, merge-increment of both
// counters, and an audit row on every path. When the true usage pushes the
// month over the limit after the call already happened, the tokens are
// still recorded locally and the request fails; there is no upstream
// refund.
func (s *QuotaService) Complete(ctx context.Context, wallet string, req *ProxyRequest) ([]byte, error) {
	now := s.now().UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	month := now.Format("2006-01")

	monthlyUsed, err := s.usage.MonthlyUsed(ctx, wallet, month)
	if err != nil {
		return nil, fmt.Errorf("failed to read monthly usage: %w", err)
	}
	if monthlyUsed >= s.cfg.MonthlyLimit {
		return nil, &QuotaError{Code: CodeMonthlyExceeded, MonthlyUsed: monthlyUsed, MonthlyLimit: s.cfg.MonthlyLimit}
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 || maxTokens > s.cfg.MaxCompletionTokens {
		maxTokens = s.cfg.MaxCompletionTokens
	}

	estimate := EstimateTokens(req.Messages) + maxTokens
	if monthlyUsed+estimate > s.cfg.MonthlyLimit {
		return nil, &QuotaError{Code: CodeMonthlyWouldExceed, MonthlyUsed: monthlyUsed, MonthlyLimit: s.cfg.MonthlyLimit}
	}

	model := PickModel(req.Messages, req.Model, s.cfg.CheapModel, s.cfg.StrongModel)

	start := s.now()
	resp, raw, err := s.provider.CreateCompletion(ctx, &CompletionRequest{
		Model:     model,
		Messages:  req.Messages,
		MaxTokens: maxTokens,
	})
	latency := time.Since(start)

	if err != nil {
		s.audit(wallet, model, req.FunctionType, nil, latency, err)
		return nil, err
	}

	usage := Usage{}
	if resp.Usage != nil {
		usage = *resp.Usage
	} else {
		// Provider omitted usage; fall back to the pre-flight estimate so
		// the local books never read zero for a served call.
		usage = Usage{PromptTokens: EstimateTokens(req.Messages), CompletionTokens: maxTokens}
		usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens
	}

	// Tokens were consumed upstream either way; record them best-effort
	// before deciding whether the call still fits the window.
	if addErr := s.usage.AddUsage(ctx, wallet, day, month, usage.TotalTokens); addErr != nil {
		slog.Error("Failed to accumulate AI usage",
			slog.String("type", "ai"),
			slog.String("wallet", wallet),
			slog.Any("error", addErr))
	}
	s.audit(wallet, model, req.FunctionType, &usage, latency, nil)

	if monthlyUsed+usage.TotalTokens > s.cfg.MonthlyLimit {
		return nil, &QuotaError{
			Code:         CodeMonthlyExceeded,
			MonthlyUsed:  monthlyUsed + usage.TotalTokens,
			MonthlyLimit: s.cfg.MonthlyLimit,
		}
	}

	return raw, nil
}

// Status reports current usage. The displayed daily figure is capped at
// the daily limit; the monthly accumulation is never capped.
func (s *QuotaService) Status(ctx context.Context, wallet string) (*QuotaStatus, error) {
	now := s.now().UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	month := now.Format("2006-01")

	dailyUsed, err := s.usage.DailyUsed(ctx, wallet, day)
	if err != nil {
		return nil, fmt.Errorf("failed to read daily usage: %w", err)
	}
	if dailyUsed > s.cfg.DailyLimit {
		dailyUsed = s.cfg.DailyLimit
	}
	monthlyUsed, err := s.usage.MonthlyUsed(ctx, wallet, month)
	if err != nil {
		return nil, fmt.Errorf("failed to read monthly usage: %w", err)
	}

	return &QuotaStatus{
		DailyUsed:    dailyUsed,
		DailyLimit:   s.cfg.DailyLimit,
		MonthlyUsed:  monthlyUsed,
		MonthlyLimit: s.cfg.MonthlyLimit,
		StatDate:     day.Format("2006-01-02"),
		StatMonth:    month,
	}, nil
}

// audit writes the usage log row for one attempt, success or failure. The
// audit write is off the hot path: its own context, errors swallowed.
func (s *QuotaService) audit(wallet, model, functionType string, usage *Usage, latency time.Duration, callErr error) {
	row := &models.AIUsageLog{
		WalletAddress: wallet,
		Model:         model,
		FunctionType:  functionType,
		LatencyMs:     latency.Milliseconds(),
		Success:       callErr == nil,
	}
	if usage != nil {
		row.PromptTokens = usage.PromptTokens
		row.CompletionTokens = usage.CompletionTokens
		row.TotalTokens = usage.TotalTokens
	}
	if callErr != nil {
		msg := callErr.Error()
		if len(msg) > maxErrorMessageLen {
			msg = msg[:maxErrorMessageLen]
		}
		row.ErrorMessage = msg
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.usage.InsertLog(ctx, row)
}
