package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/inverness4444/stresssense/pkg/domain/model"
	"github.com/inverness4444/stresssense/pkg/domain/types"
	"github.com/inverness4444/stresssense/pkg/repository/memory"
	"github.com/inverness4444/stresssense/pkg/usecase"
)

var testWindowEnd = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func testWindow() model.Window {
	return model.NewWindow(testWindowEnd.AddDate(0, 0, -7), testWindowEnd)
}

func ptr(v float64) *float64 {
	return &v
}

// seedScope stores count responses answering value on a 1-5 scale
// inside the window, plus invites eligible respondents.
func seedScope(t *testing.T, repo *memory.Memory, scope types.Scope, window model.Window, value float64, count, invites int) {
	t.Helper()
	ctx := context.Background()

	for i := 0; i < count; i++ {
		err := repo.Response().Put(ctx, &model.SurveyResponse{
			OrgID:  scope.OrgID,
			TeamID: scope.TeamID,
			Answers: []model.Answer{
				{QuestionID: "q1", Value: ptr(value), ScaleMin: 1, ScaleMax: 5},
			},
			SubmittedAt: window.Start.Add(time.Duration(i+1) * time.Hour),
		})
		if err != nil {
			t.Fatalf("failed to seed response: %v", err)
		}
	}
	for i := 0; i < invites; i++ {
		err := repo.Invite().Put(ctx, &model.Invite{
			OrgID:     scope.OrgID,
			TeamID:    scope.TeamID,
			InvitedAt: window.Start.Add(time.Duration(i+1) * time.Minute),
		})
		if err != nil {
			t.Fatalf("failed to seed invite: %v", err)
		}
	}
}

func seedOrg(t *testing.T, repo *memory.Memory, teams ...types.TeamID) *model.Organization {
	t.Helper()
	org := &model.Organization{
		ID:             "acme",
		Name:           "Acme",
		StressScaleMin: 1,
		StressScaleMax: 5,
		MinSampleSize:  3,
		Teams:          teams,
	}
	if err := repo.Organization().Put(context.Background(), org); err != nil {
		t.Fatalf("failed to seed organization: %v", err)
	}
	return org
}

func TestScoreUseCase_ComputeSnapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown organization fails, siblings unaffected", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		_, err := uc.Score.ComputeSnapshot(ctx, types.NewOrgScope("ghost"), testWindow())
		if !errors.Is(err, usecase.ErrOrganizationNotFound) {
			t.Errorf("expected ErrOrganizationNotFound, got %v", err)
		}
	})

	t.Run("invalid window fails", func(t *testing.T) {
		repo := memory.New()
		seedOrg(t, repo)
		uc := usecase.New(repo)

		_, err := uc.Score.ComputeSnapshot(ctx, types.NewOrgScope("acme"),
			model.NewWindow(testWindowEnd, testWindowEnd))
		if !errors.Is(err, usecase.ErrInvalidWindow) {
			t.Errorf("expected ErrInvalidWindow, got %v", err)
		}
	})

	t.Run("zero responses produce a valid zero snapshot", func(t *testing.T) {
		repo := memory.New()
		seedOrg(t, repo)
		uc := usecase.New(repo)

		snapshot, err := uc.Score.ComputeSnapshot(ctx, types.NewOrgScope("acme"), testWindow())
		if err != nil {
			t.Fatalf("failed to compute snapshot: %v", err)
		}

		if snapshot.RiskScore < 0 || snapshot.RiskScore > 100 {
			t.Errorf("risk score = %d out of [0, 100]", snapshot.RiskScore)
		}
		if snapshot.AvgStressIndex != 0 {
			t.Errorf("avg stress index = %v, want 0", snapshot.AvgStressIndex)
		}
		if snapshot.Participation != 0 {
			t.Errorf("participation = %v, want 0", snapshot.Participation)
		}
		if snapshot.Confidence != 0 {
			t.Errorf("confidence = %v, want 0", snapshot.Confidence)
		}
		if snapshot.StressLevel != types.StressLevelLow {
			t.Errorf("stress level = %s, want low", snapshot.StressLevel)
		}
	})

	t.Run("computed snapshot is persisted", func(t *testing.T) {
		repo := memory.New()
		seedOrg(t, repo)
		scope := types.NewOrgScope("acme")
		seedScope(t, repo, scope, testWindow(), 4, 10, 10)
		uc := usecase.New(repo)

		snapshot, err := uc.Score.ComputeSnapshot(ctx, scope, testWindow())
		if err != nil {
			t.Fatalf("failed to compute snapshot: %v", err)
		}
		if snapshot.ID == "" {
			t.Error("expected non-empty snapshot ID")
		}

		latest, err := repo.Snapshot().Latest(ctx, scope)
		if err != nil {
			t.Fatalf("failed to load latest snapshot: %v", err)
		}
		if latest.ID != snapshot.ID {
			t.Errorf("latest snapshot ID = %s, want %s", latest.ID, snapshot.ID)
		}
	})

	t.Run("score reflects stress, participation and confidence", func(t *testing.T) {
		repo := memory.New()
		seedOrg(t, repo)
		scope := types.NewOrgScope("acme")
		// Value 4 on a 1-5 scale -> 75 canonical; full participation
		seedScope(t, repo, scope, testWindow(), 4, 10, 10)
		uc := usecase.New(repo)

		snapshot, err := uc.Score.ComputeSnapshot(ctx, scope, testWindow())
		if err != nil {
			t.Fatalf("failed to compute snapshot: %v", err)
		}

		// No baseline data: trend contribution is zero
		if snapshot.RiskScore != 75 {
			t.Errorf("risk score = %d, want 75", snapshot.RiskScore)
		}
		if snapshot.StressLevel != types.StressLevelHigh {
			t.Errorf("stress level = %s, want high", snapshot.StressLevel)
		}
		if snapshot.Confidence != 0.5 {
			t.Errorf("confidence = %v, want 0.5", snapshot.Confidence)
		}
		if len(snapshot.Drivers) != 1 || snapshot.Drivers[0].Key != "workload" {
			t.Errorf("drivers = %+v, want only workload", snapshot.Drivers)
		}
	})

	t.Run("identical inputs yield identical scoring output", func(t *testing.T) {
		repo := memory.New()
		seedOrg(t, repo)
		scope := types.NewOrgScope("acme")
		seedScope(t, repo, scope, testWindow(), 3, 8, 12)
		uc := usecase.New(repo)

		first, err := uc.Score.ComputeSnapshot(ctx, scope, testWindow())
		if err != nil {
			t.Fatalf("failed to compute first snapshot: %v", err)
		}
		second, err := uc.Score.ComputeSnapshot(ctx, scope, testWindow())
		if err != nil {
			t.Fatalf("failed to compute second snapshot: %v", err)
		}

		if first.RiskScore != second.RiskScore ||
			first.StressLevel != second.StressLevel ||
			first.Confidence != second.Confidence ||
			first.Participation != second.Participation ||
			first.AvgStressIndex != second.AvgStressIndex {
			t.Errorf("snapshots differ: %+v vs %+v", first, second)
		}
		// Both computations are retained as separate append-only records
		if first.ID == second.ID {
			t.Error("expected distinct snapshot IDs")
		}
	})

	t.Run("team scope only sees its own responses", func(t *testing.T) {
		repo := memory.New()
		seedOrg(t, repo, "platform", "support")
		window := testWindow()
		seedScope(t, repo, types.NewTeamScope("acme", "platform"), window, 5, 5, 5)
		seedScope(t, repo, types.NewTeamScope("acme", "support"), window, 1, 5, 5)
		uc := usecase.New(repo)

		platform, err := uc.Score.ComputeSnapshot(ctx, types.NewTeamScope("acme", "platform"), window)
		if err != nil {
			t.Fatalf("failed to compute platform snapshot: %v", err)
		}
		support, err := uc.Score.ComputeSnapshot(ctx, types.NewTeamScope("acme", "support"), window)
		if err != nil {
			t.Fatalf("failed to compute support snapshot: %v", err)
		}

		if platform.AvgStressIndex != 100 {
			t.Errorf("platform stress = %v, want 100", platform.AvgStressIndex)
		}
		if support.AvgStressIndex != 0 {
			t.Errorf("support stress = %v, want 0", support.AvgStressIndex)
		}
	})
}

func TestScoreUseCase_ListSnapshots(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown organization fails", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		_, err := uc.Score.ListSnapshots(ctx, "ghost")
		if !errors.Is(err, usecase.ErrOrganizationNotFound) {
			t.Errorf("expected ErrOrganizationNotFound, got %v", err)
		}
	})

	t.Run("returns persisted snapshots", func(t *testing.T) {
		repo := memory.New()
		seedOrg(t, repo)
		uc := usecase.New(repo)

		if _, err := uc.Score.ComputeSnapshot(ctx, types.NewOrgScope("acme"), testWindow()); err != nil {
			t.Fatalf("failed to compute snapshot: %v", err)
		}

		snapshots, err := uc.Score.ListSnapshots(ctx, "acme")
		if err != nil {
			t.Fatalf("failed to list snapshots: %v", err)
		}
		if len(snapshots) != 1 {
			t.Errorf("snapshots = %d, want 1", len(snapshots))
		}
	})
}
