package economy

import (
	"context"
	"testing"
	"time"

	"github.com/ellavondegurechaff/goaura/goaura/database/models"
)

func newDialogueService(accounts *fakeAccounts, dialogues *fakeDialogues, at time.Time) *DialogueService {
	dialogues.createdAt = at
	s := NewDialogueService(accounts, dialogues)
	s.now = func() time.Time { return at }
	return s
}

func seedDialogues(dialogues *fakeDialogues, wallet string, n int, at time.Time) {
	for i := 0; i < n; i++ {
		dialogues.rows = append(dialogues.rows, &models.DialogueReward{
			WalletAddress: wallet,
			DialogueIndex: i + 1,
			CreatedAt:     at,
		})
	}
}

func TestDialogueService_Reward(t *testing.T) {
	at := mustParseTime(t, "2026-03-10T15:00:00Z")

	tests := []struct {
		name          string
		tier          int
		priorToday    int
		firstChat     bool
		resonance     int
		wantIndex     int
		wantReward    int64
		wantOverLimit bool
	}{
		{
			name:       "PlainTurn",
			tier:       1,
			wantIndex:  1,
			wantReward: 10,
		},
		{
			name:       "FirstChatBonus",
			tier:       1,
			firstChat:  true,
			wantIndex:  1,
			wantReward: 40,
		},
		{
			name:       "HighResonance",
			tier:       1,
			resonance:  95,
			wantIndex:  1,
			wantReward: 110,
		},
		{
			name:       "MidResonance",
			tier:       1,
			resonance:  70,
			wantIndex:  1,
			wantReward: 40,
		},
		{
			name:       "LowResonance",
			tier:       1,
			resonance:  45,
			wantIndex:  1,
			wantReward: 20,
		},
		{
			name:       "BelowResonanceFloor",
			tier:       1,
			resonance:  39,
			wantIndex:  1,
			wantReward: 10,
		},
		{
			name:       "TierScalesEverything",
			tier:       2,
			firstChat:  true,
			resonance:  95,
			wantIndex:  1,
			wantReward: 210, // floor((10+30+100) * 1.5)
		},
		{
			name:          "FiftyFirstTurnOverCap",
			tier:          1,
			priorToday:    50,
			wantIndex:     51,
			wantReward:    1,
			wantOverLimit: true,
		},
		{
			name:          "OverCapStillScaledAndFloored",
			tier:          2,
			priorToday:    50,
			wantIndex:     51,
			wantReward:    1, // floor(1 * 1.5)
			wantOverLimit: true,
		},
		{
			name:       "LastTurnUnderCap",
			tier:       1,
			priorToday: 49,
			wantIndex:  50,
			wantReward: 10,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := newFakeAccounts()
			dialogues := &fakeDialogues{}
			seedDialogues(dialogues, testWallet, tt.priorToday, at)
			s := newDialogueService(accounts, dialogues, at)
			if tt.tier != 1 {
				if _, err := accounts.GetOrCreate(context.Background(), testWallet); err != nil {
					t.Fatalf("seed account: %v", err)
				}
				accounts.accounts[testWallet].Tier = tt.tier
			}

			got, err := s.Reward(context.Background(), testWallet, "sess-1", tt.firstChat, tt.resonance)
			if err != nil {
				t.Fatalf("Reward() error = %v", err)
			}
			if got.DialogueIndex != tt.wantIndex {
				t.Errorf("DialogueIndex = %d, want %d", got.DialogueIndex, tt.wantIndex)
			}
			if got.Reward != tt.wantReward {
				t.Errorf("Reward = %d, want %d", got.Reward, tt.wantReward)
			}
			if got.IsOverLimit != tt.wantOverLimit {
				t.Errorf("IsOverLimit = %v, want %v", got.IsOverLimit, tt.wantOverLimit)
			}
			if len(accounts.touched) != 1 || accounts.touched[0] != testWallet {
				t.Errorf("touched wallets = %v, want [%s]", accounts.touched, testWallet)
			}
		})
	}
}

func TestDialogueService_Reward_FirstChatClaimOnceADay(t *testing.T) {
	at := mustParseTime(t, "2026-03-10T15:00:00Z")
	accounts := newFakeAccounts()
	dialogues := &fakeDialogues{}
	s := newDialogueService(accounts, dialogues, at)

	first, err := s.Reward(context.Background(), testWallet, "sess-1", true, 0)
	if err != nil {
		t.Fatalf("Reward() first error = %v", err)
	}
	if first.FirstChatBonus != firstChatBonus {
		t.Errorf("FirstChatBonus = %d, want %d", first.FirstChatBonus, int64(firstChatBonus))
	}

	// The claim flag is verified server-side; a second claim today gets
	// nothing.
	second, err := s.Reward(context.Background(), testWallet, "sess-2", true, 0)
	if err != nil {
		t.Fatalf("Reward() second error = %v", err)
	}
	if second.FirstChatBonus != 0 {
		t.Errorf("second FirstChatBonus = %d, want 0", second.FirstChatBonus)
	}
	if second.Reward != 10 {
		t.Errorf("second Reward = %d, want 10", second.Reward)
	}

	// A new UTC day resets the claim.
	nextDay := newDialogueService(accounts, dialogues, at.Add(24*time.Hour))
	third, err := nextDay.Reward(context.Background(), testWallet, "sess-3", true, 0)
	if err != nil {
		t.Fatalf("Reward() next day error = %v", err)
	}
	if third.FirstChatBonus != firstChatBonus {
		t.Errorf("next day FirstChatBonus = %d, want %d", third.FirstChatBonus, int64(firstChatBonus))
	}
}

func TestDialogueService_Reward_CapCountsOnlyToday(t *testing.T) {
	at := mustParseTime(t, "2026-03-10T15:00:00Z")
	accounts := newFakeAccounts()
	dialogues := &fakeDialogues{}
	// Yesterday's 50 turns must not count against today.
	seedDialogues(dialogues, testWallet, 50, at.Add(-24*time.Hour))
	s := newDialogueService(accounts, dialogues, at)

	got, err := s.Reward(context.Background(), testWallet, "sess-1", false, 0)
	if err != nil {
		t.Fatalf("Reward() error = %v", err)
	}
	if got.IsOverLimit {
		t.Error("IsOverLimit = true, want false with only stale history")
	}
	if got.DialogueIndex != 1 {
		t.Errorf("DialogueIndex = %d, want 1", got.DialogueIndex)
	}
	if got.Reward != 10 {
		t.Errorf("Reward = %d, want 10", got.Reward)
	}
}
