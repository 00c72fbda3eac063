package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/inverness4444/stresssense/pkg/domain/interfaces"
	"github.com/inverness4444/stresssense/pkg/domain/model"
	"github.com/inverness4444/stresssense/pkg/domain/types"
	"github.com/inverness4444/stresssense/pkg/repository/firestore"
	"github.com/inverness4444/stresssense/pkg/repository/memory"
)

func TestMemory(t *testing.T) {
	runRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestore(t *testing.T) {
	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID is not set")
	}
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

	runRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := firestore.New(context.Background(), projectID, databaseID,
			firestore.WithCollectionPrefix("test-"+uuid.NewString()[:8]))
		if err != nil {
			t.Fatalf("failed to create firestore repository: %v", err)
		}
		t.Cleanup(func() {
			if err := repo.Close(); err != nil {
				t.Errorf("failed to close firestore repository: %v", err)
			}
		})
		return repo
	})
}

func newOrgID() types.OrgID {
	return types.OrgID("org-" + uuid.NewString())
}

func ptr(v float64) *float64 {
	return &v
}

func runRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	ctx := context.Background()
	windowEnd := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	window := model.NewWindow(windowEnd.AddDate(0, 0, -7), windowEnd)

	t.Run("organization", func(t *testing.T) {
		repo := newRepo(t)
		orgID := newOrgID()

		_, err := repo.Organization().Get(ctx, orgID)
		if !errors.Is(err, interfaces.ErrNotFound) {
			t.Errorf("expected ErrNotFound for unknown org, got %v", err)
		}

		org := &model.Organization{
			ID:             orgID,
			Name:           "Acme",
			StressScaleMin: 1,
			StressScaleMax: 5,
			MinSampleSize:  3,
			Teams:          []types.TeamID{"platform", "support"},
		}
		if err := repo.Organization().Put(ctx, org); err != nil {
			t.Fatalf("failed to put organization: %v", err)
		}

		got, err := repo.Organization().Get(ctx, orgID)
		if err != nil {
			t.Fatalf("failed to get organization: %v", err)
		}
		if got.Name != "Acme" || got.StressScaleMax != 5 || len(got.Teams) != 2 {
			t.Errorf("unexpected organization: %+v", got)
		}
		if got.CreatedAt.IsZero() {
			t.Error("expected CreatedAt to be set")
		}

		// Update keeps the identity, changes the payload
		org.Name = "Acme Corp"
		org.Teams = append(org.Teams, "sales")
		if err := repo.Organization().Put(ctx, org); err != nil {
			t.Fatalf("failed to update organization: %v", err)
		}
		got, err = repo.Organization().Get(ctx, orgID)
		if err != nil {
			t.Fatalf("failed to get updated organization: %v", err)
		}
		if got.Name != "Acme Corp" || len(got.Teams) != 3 {
			t.Errorf("unexpected updated organization: %+v", got)
		}

		orgs, err := repo.Organization().List(ctx)
		if err != nil {
			t.Fatalf("failed to list organizations: %v", err)
		}
		var found bool
		for _, o := range orgs {
			if o.ID == orgID {
				found = true
			}
		}
		if !found {
			t.Error("organization missing from list")
		}
	})

	t.Run("response scope and window filtering", func(t *testing.T) {
		repo := newRepo(t)
		orgID := newOrgID()

		put := func(teamID types.TeamID, submittedAt time.Time) {
			t.Helper()
			err := repo.Response().Put(ctx, &model.SurveyResponse{
				OrgID:  orgID,
				TeamID: teamID,
				Answers: []model.Answer{
					{QuestionID: "q1", Value: ptr(3), ScaleMin: 1, ScaleMax: 5},
				},
				SubmittedAt: submittedAt,
			})
			if err != nil {
				t.Fatalf("failed to put response: %v", err)
			}
		}

		put("platform", window.Start.Add(2*time.Hour))
		put("platform", window.Start.Add(time.Hour))
		put("support", window.Start.Add(3*time.Hour))
		put("platform", window.Start.Add(-time.Hour))       // before the window
		put("platform", window.End)                         // half-open: end excluded
		put("platform", window.End.Add(-time.Nanosecond))   // still inside

		orgScoped, err := repo.Response().ListByScope(ctx, types.NewOrgScope(orgID), window)
		if err != nil {
			t.Fatalf("failed to list responses: %v", err)
		}
		if len(orgScoped) != 4 {
			t.Errorf("org-scoped responses = %d, want 4", len(orgScoped))
		}
		for i := 1; i < len(orgScoped); i++ {
			if orgScoped[i].SubmittedAt.Before(orgScoped[i-1].SubmittedAt) {
				t.Errorf("responses not ordered by submission time: %v after %v",
					orgScoped[i].SubmittedAt, orgScoped[i-1].SubmittedAt)
			}
		}

		teamScoped, err := repo.Response().ListByScope(ctx, types.NewTeamScope(orgID, "support"), window)
		if err != nil {
			t.Fatalf("failed to list team responses: %v", err)
		}
		if len(teamScoped) != 1 {
			t.Errorf("team-scoped responses = %d, want 1", len(teamScoped))
		}
	})

	t.Run("invite counting", func(t *testing.T) {
		repo := newRepo(t)
		orgID := newOrgID()

		put := func(teamID types.TeamID, invitedAt time.Time) {
			t.Helper()
			err := repo.Invite().Put(ctx, &model.Invite{
				OrgID:     orgID,
				TeamID:    teamID,
				InvitedAt: invitedAt,
			})
			if err != nil {
				t.Fatalf("failed to put invite: %v", err)
			}
		}

		put("platform", window.Start.Add(time.Hour))
		put("platform", window.Start.Add(2*time.Hour))
		put("support", window.Start.Add(time.Hour))
		put("support", window.End) // half-open: end excluded

		orgCount, err := repo.Invite().CountByScope(ctx, types.NewOrgScope(orgID), window)
		if err != nil {
			t.Fatalf("failed to count invites: %v", err)
		}
		if orgCount != 3 {
			t.Errorf("org invite count = %d, want 3", orgCount)
		}

		teamCount, err := repo.Invite().CountByScope(ctx, types.NewTeamScope(orgID, "support"), window)
		if err != nil {
			t.Fatalf("failed to count team invites: %v", err)
		}
		if teamCount != 1 {
			t.Errorf("team invite count = %d, want 1", teamCount)
		}
	})

	t.Run("snapshot append-only and latest", func(t *testing.T) {
		repo := newRepo(t)
		orgID := newOrgID()
		scope := types.NewTeamScope(orgID, "platform")

		_, err := repo.Snapshot().Latest(ctx, scope)
		if !errors.Is(err, interfaces.ErrNotFound) {
			t.Errorf("expected ErrNotFound before any snapshot, got %v", err)
		}

		newSnapshot := func(score int) *model.RiskSnapshot {
			return &model.RiskSnapshot{
				OrgID:       orgID,
				ScopeType:   scope.Type(),
				ScopeID:     scope.ID(),
				WindowStart: window.Start,
				WindowEnd:   window.End,
				RiskScore:   score,
				StressLevel: types.StressLevelMedium,
				Confidence:  0.5,
				Drivers: []model.Driver{
					{Key: "workload", Label: "Workload pressure", Contribution: 0.35},
				},
				Participation:  80,
				AvgStressIndex: float64(score),
			}
		}

		first, err := repo.Snapshot().Put(ctx, newSnapshot(40))
		if err != nil {
			t.Fatalf("failed to put snapshot: %v", err)
		}
		if first.ID == "" || first.CreatedAt.IsZero() {
			t.Errorf("expected assigned ID and creation time, got %+v", first)
		}

		time.Sleep(10 * time.Millisecond)
		second, err := repo.Snapshot().Put(ctx, newSnapshot(55))
		if err != nil {
			t.Fatalf("failed to put second snapshot: %v", err)
		}
		if second.ID == first.ID {
			t.Error("expected a new record per put")
		}

		latest, err := repo.Snapshot().Latest(ctx, scope)
		if err != nil {
			t.Fatalf("failed to get latest snapshot: %v", err)
		}
		if latest.ID != second.ID {
			t.Errorf("latest = %s (score %d), want %s", latest.ID, latest.RiskScore, second.ID)
		}
		if len(latest.Drivers) != 1 || latest.Drivers[0].Key != "workload" {
			t.Errorf("drivers not round-tripped: %+v", latest.Drivers)
		}

		// Other scopes never see it
		_, err = repo.Snapshot().Latest(ctx, types.NewOrgScope(orgID))
		if !errors.Is(err, interfaces.ErrNotFound) {
			t.Errorf("expected ErrNotFound for org scope, got %v", err)
		}

		snapshots, err := repo.Snapshot().ListByOrg(ctx, orgID)
		if err != nil {
			t.Fatalf("failed to list snapshots: %v", err)
		}
		if len(snapshots) != 2 {
			t.Fatalf("snapshots = %d, want 2", len(snapshots))
		}
		if snapshots[0].ID != second.ID {
			t.Errorf("expected newest-first ordering, got %s first", snapshots[0].ID)
		}
	})

	t.Run("event append-only listing", func(t *testing.T) {
		repo := newRepo(t)
		orgID := newOrgID()

		event := &model.AnomalyEvent{
			OrgID:               orgID,
			ScopeType:           types.ScopeTypeTeam,
			ScopeID:             "platform",
			Metric:              types.AnomalyMetricStressIndex,
			WindowStart:         window.Start,
			WindowEnd:           window.End,
			BaselineWindowStart: window.Prev().Start,
			BaselineWindowEnd:   window.Prev().End,
			ChangeDirection:     types.ChangeDirectionUp,
			ChangeMagnitude:     0.4,
			Severity:            types.AnomalySeverityHigh,
			Details: model.AnomalyDetails{
				CurrentValue:   70,
				BaselineValue:  50,
				AbsoluteChange: 20,
			},
		}

		created, err := repo.Event().Put(ctx, event)
		if err != nil {
			t.Fatalf("failed to put event: %v", err)
		}
		if created.ID == "" || created.CreatedAt.IsZero() {
			t.Errorf("expected assigned ID and creation time, got %+v", created)
		}

		events, err := repo.Event().ListByOrg(ctx, orgID)
		if err != nil {
			t.Fatalf("failed to list events: %v", err)
		}
		if len(events) != 1 {
			t.Fatalf("events = %d, want 1", len(events))
		}
		got := events[0]
		if got.Metric != types.AnomalyMetricStressIndex ||
			got.Severity != types.AnomalySeverityHigh ||
			got.ChangeDirection != types.ChangeDirectionUp ||
			got.ChangeMagnitude != 0.4 ||
			got.Details.AbsoluteChange != 20 {
			t.Errorf("event not round-tripped: %+v", got)
		}

		other, err := repo.Event().ListByOrg(ctx, newOrgID())
		if err != nil {
			t.Fatalf("failed to list events for other org: %v", err)
		}
		if len(other) != 0 {
			t.Errorf("other org events = %d, want 0", len(other))
		}
	})
}
