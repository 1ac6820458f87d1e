package app

import (
	"errors"
	"testing"

	"buzzer-board-service/internal/domain"
)

func TestLedgerRejectsDuplicateNames(t *testing.T) {
	ledger := newScoreLedger()

	if err := ledger.addTeam(domain.Team{Name: "Alpha"}); err != nil {
		t.Fatalf("add team: %v", err)
	}
	if err := ledger.addTeam(domain.Team{Name: " alpha "}); !errors.Is(err, domain.ErrTeamExists) {
		t.Fatalf("expected duplicate rejection, got %v", err)
	}
}

func TestLedgerAwardAccumulates(t *testing.T) {
	ledger := newScoreLedger()
	_ = ledger.addTeam(domain.Team{Name: "Alpha"})

	ledger.award("Alpha", 10)
	ledger.award("ALPHA", 20)
	if total := ledger.total("alpha"); total != 30 {
		t.Fatalf("expected 30 points, got %d", total)
	}
}

func TestLeaderboardOrderAndTieBreak(t *testing.T) {
	ledger := newScoreLedger()
	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		_ = ledger.addTeam(domain.Team{Name: name})
	}

	ledger.award("Beta", 20)
	ledger.award("Gamma", 20)

	lb := ledger.leaderboard()
	if len(lb) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(lb))
	}
	// Beta and Gamma tie on 20; registration order breaks the tie.
	if lb[0].Team != "Beta" || lb[1].Team != "Gamma" || lb[2].Team != "Alpha" {
		t.Fatalf("unexpected order: %+v", lb)
	}
}

func TestLedgerLookupReturnsRegisteredTeam(t *testing.T) {
	ledger := newScoreLedger()
	_ = ledger.addTeam(domain.Team{Name: "Alpha", Players: []string{"Alice", "Amir"}})

	team, ok := ledger.lookup("  ALPHA ")
	if !ok || team.Name != "Alpha" || len(team.Players) != 2 {
		t.Fatalf("expected Alpha with players, got %+v ok=%v", team, ok)
	}
	if _, ok := ledger.lookup("Delta"); ok {
		t.Fatalf("expected unknown team miss")
	}
}
