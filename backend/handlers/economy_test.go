package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ellavondegurechaff/goaura/backend/middleware"
	"github.com/ellavondegurechaff/goaura/goaura/database/models"
	"github.com/ellavondegurechaff/goaura/goaura/database/repositories"
	"github.com/ellavondegurechaff/goaura/goaura/economy"
	"github.com/gofiber/fiber/v2"
)

const testWallet = "0xabc123"

type stubAccounts struct{}

func (stubAccounts) GetOrCreate(_ context.Context, wallet string) (*models.Account, error) {
	return &models.Account{WalletAddress: wallet, Tier: 1}, nil
}
func (stubAccounts) GetByWallet(context.Context, string) (*models.Account, error) {
	return nil, nil
}
func (stubAccounts) TouchLastActive(context.Context, string) error            { return nil }
func (stubAccounts) UpdateSubscriptionType(context.Context, string, string) error { return nil }

type stubCheckIns struct {
	existing *models.CheckIn
	conflict bool
}

func (s *stubCheckIns) CreateWithEarning(_ context.Context, record *models.CheckIn, entry *models.LedgerEntry) (int64, error) {
	if s.conflict {
		return 0, repositories.ErrDuplicateCheckIn
	}
	return entry.Amount, nil
}

func (s *stubCheckIns) GetByDate(context.Context, string, time.Time) (*models.CheckIn, error) {
	return s.existing, nil
}

func (s *stubCheckIns) GetLatest(context.Context, string) (*models.CheckIn, error) {
	return s.existing, nil
}

func (s *stubCheckIns) CountByWallet(context.Context, string) (int, error) { return 0, nil }

type stubAdventures struct {
	conflict bool
	last     *models.AdventureCompletion
}

func (s *stubAdventures) CreateWithEarning(_ context.Context, record *models.AdventureCompletion, entry *models.LedgerEntry) (int64, error) {
	if s.conflict {
		return 0, repositories.ErrDuplicateCompletion
	}
	s.last = record
	return entry.Amount, nil
}

func testApp(t *testing.T, webApp *App) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	api := app.Group("/api/v1")
	api.Use(middleware.WalletRequired())
	api.Post("/checkin", CheckIn(webApp))
	api.Post("/adventure/complete", AdventureComplete(webApp))
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("X-Wallet-Address", testWallet)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, decoded
}

func TestCheckInHandler_Success(t *testing.T) {
	webApp := &App{
		CheckIns: economy.NewCheckInService(stubAccounts{}, &stubCheckIns{}),
	}
	app := testApp(t, webApp)

	resp, body := doRequest(t, app, http.MethodPost, "/api/v1/checkin", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %v)", resp.StatusCode, body)
	}
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
	if body["consecutiveDays"] != float64(1) {
		t.Errorf("consecutiveDays = %v, want 1", body["consecutiveDays"])
	}
	if body["reward"] != float64(20) {
		t.Errorf("reward = %v, want 20", body["reward"])
	}
}

func TestCheckInHandler_AlreadyCheckedIn(t *testing.T) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	webApp := &App{
		CheckIns: economy.NewCheckInService(stubAccounts{}, &stubCheckIns{
			existing: &models.CheckIn{WalletAddress: testWallet, CheckInDate: today},
		}),
	}
	app := testApp(t, webApp)

	resp, body := doRequest(t, app, http.MethodPost, "/api/v1/checkin", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if body["error"] != "already_checked_in" {
		t.Errorf("error = %v, want already_checked_in", body["error"])
	}
	if _, ok := body["secondsUntilReset"]; !ok {
		t.Error("secondsUntilReset missing from conflict response")
	}
}

func TestAdventureCompleteHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		conflict   bool
		wantStatus int
		wantError  string
	}{
		{name: "Success", body: `{"questId":"quest-1"}`, wantStatus: http.StatusOK},
		{name: "Duplicate", body: `{"questId":"quest-1"}`, conflict: true, wantStatus: http.StatusBadRequest, wantError: "already_completed"},
		{name: "MissingQuestID", body: `{}`, wantStatus: http.StatusBadRequest, wantError: "missing_quest_id"},
		{name: "InvalidBody", body: `not json`, wantStatus: http.StatusBadRequest, wantError: "invalid_body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			webApp := &App{
				Adventures: economy.NewAdventureService(stubAccounts{}, &stubAdventures{conflict: tt.conflict}),
			}
			app := testApp(t, webApp)

			resp, body := doRequest(t, app, http.MethodPost, "/api/v1/adventure/complete", tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %v)", resp.StatusCode, tt.wantStatus, body)
			}
			if tt.wantError != "" && body["error"] != tt.wantError {
				t.Errorf("error = %v, want %s", body["error"], tt.wantError)
			}
			if tt.wantStatus == http.StatusOK && body["reward"] != float64(150) {
				t.Errorf("reward = %v, want 150", body["reward"])
			}
		})
	}
}

func TestAdventureCompleteHandler_StoresQuestText(t *testing.T) {
	adventures := &stubAdventures{}
	webApp := &App{
		Adventures: economy.NewAdventureService(stubAccounts{}, adventures),
	}
	app := testApp(t, webApp)

	resp, body := doRequest(t, app, http.MethodPost, "/api/v1/adventure/complete",
		`{"questId":"quest-2","questText":"Cross the glass bridge"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %v)", resp.StatusCode, body)
	}
	if adventures.last == nil || adventures.last.QuestText != "Cross the glass bridge" {
		t.Errorf("stored completion = %+v, want quest text persisted", adventures.last)
	}
}
