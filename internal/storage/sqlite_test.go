package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/common"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/model"
)

func setupTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func testLead(id, name string) model.Lead {
	return model.Lead{
		ID:          id,
		Name:        name,
		Company:     "Acme Corp",
		Email:       name + "@acme.test",
		Status:      model.StatusNew,
		Source:      model.SourceWebsite,
		Tags:        []string{"Enterprise"},
		Owner:       "Sarah Johnson",
		LastContact: time.Date(2023, 10, 25, 14, 30, 0, 0, time.UTC),
	}
}

func TestSaveAndGetLeads(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	lead := testLead("l1", "alice")
	lead.Activities = []model.Activity{
		{ID: "a1", Type: model.ActivityEmail, Content: "older", Timestamp: time.Date(2023, 10, 20, 0, 0, 0, 0, time.UTC), User: "Sarah"},
		{ID: "a2", Type: model.ActivityNote, Content: "newer", Timestamp: time.Date(2023, 10, 25, 0, 0, 0, 0, time.UTC), User: "Sarah"},
	}
	require.NoError(t, store.SaveLeads(ctx, []model.Lead{lead}))

	leads, err := store.GetLeads(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 1)

	got := leads[0]
	assert.Equal(t, "alice", got.Name)
	assert.Equal(t, []string{"Enterprise"}, got.Tags)
	require.Len(t, got.Activities, 2)
	assert.Equal(t, "newer", got.Activities[0].Content, "activities load newest first")
	require.NotNil(t, got.LatestActivity())
	assert.Equal(t, "a2", got.LatestActivity().ID)
}

func TestSaveLeadsAssignsIDs(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	lead := testLead("", "bob")
	require.NoError(t, store.SaveLeads(ctx, []model.Lead{lead}))

	leads, err := store.GetLeads(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.NotEmpty(t, leads[0].ID)
}

func TestGetLeadByIDNotFound(t *testing.T) {
	store := setupTestStorage(t)

	_, err := store.GetLeadByID(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetLeadsByIDsPreservesOrder(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveLeads(ctx, []model.Lead{
		testLead("l1", "alice"),
		testLead("l2", "bob"),
		testLead("l3", "carol"),
	}))

	leads, err := store.GetLeadsByIDs(ctx, []string{"l3", "missing", "l1"})
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "l3", leads[0].ID)
	assert.Equal(t, "l1", leads[1].ID)
}

func TestDeleteLeads(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveLeads(ctx, []model.Lead{
		testLead("l1", "alice"),
		testLead("l2", "bob"),
	}))

	deleted, err := store.DeleteLeads(ctx, []string{"l1", "missing"})
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	leads, err := store.GetLeads(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "l2", leads[0].ID)
}

func TestDeleteLeadsCascadesActivities(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	lead := testLead("l1", "alice")
	lead.Activities = []model.Activity{
		{ID: "a1", Type: model.ActivityNote, Content: "hi", Timestamp: time.Now(), User: "Sarah"},
	}
	require.NoError(t, store.SaveLeads(ctx, []model.Lead{lead}))

	_, err := store.DeleteLeads(ctx, []string{"l1"})
	require.NoError(t, err)

	var count int
	err = store.db.QueryRow(`SELECT COUNT(*) FROM activities`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestAddTagToLeadsIdempotent(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	tagged := testLead("l1", "alice") // already carries "Enterprise"
	untagged := testLead("l2", "bob")
	untagged.Tags = nil
	require.NoError(t, store.SaveLeads(ctx, []model.Lead{tagged, untagged}))

	affected, err := store.AddTagToLeads(ctx, []string{"l1", "l2"}, "Enterprise")
	require.NoError(t, err)
	assert.Equal(t, 1, affected, "only the lead missing the tag changes")

	lead, err := store.GetLeadByID(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Enterprise"}, lead.Tags, "no duplicate tag")

	lead, err = store.GetLeadByID(ctx, "l2")
	require.NoError(t, err)
	assert.Equal(t, []string{"Enterprise"}, lead.Tags)
}

func TestAddTagToLeadsValidation(t *testing.T) {
	store := setupTestStorage(t)

	_, err := store.AddTagToLeads(context.Background(), []string{"l1"}, "   ")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestUpdateLeadStatus(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveLeads(ctx, []model.Lead{testLead("l1", "alice")}))
	require.NoError(t, store.UpdateLeadStatus(ctx, "l1", model.StatusProposal, "Mike Chen"))

	lead, err := store.GetLeadByID(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusProposal, lead.Status)

	require.NotNil(t, lead.LatestActivity())
	assert.Equal(t, model.ActivityStatusChange, lead.LatestActivity().Type)
	assert.Equal(t, "Changed status to Proposal", lead.LatestActivity().Content)
	assert.Equal(t, "Mike Chen", lead.LatestActivity().User)
}

func TestUpdateLeadStatusRejectsUnknown(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveLeads(ctx, []model.Lead{testLead("l1", "alice")}))

	err := store.UpdateLeadStatus(ctx, "l1", model.Status("Bogus"), "Mike Chen")
	assert.ErrorIs(t, err, common.ErrValidation)

	err = store.UpdateLeadStatus(ctx, "missing", model.StatusWon, "Mike Chen")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetAllTagsSorted(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	l1 := testLead("l1", "alice")
	l1.Tags = []string{"SaaS", "Enterprise"}
	l2 := testLead("l2", "bob")
	l2.Tags = []string{"Enterprise", "AI"}
	require.NoError(t, store.SaveLeads(ctx, []model.Lead{l1, l2}))

	tags, err := store.GetAllTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"AI", "Enterprise", "SaaS"}, tags)
}

func TestTaskLifecycle(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	task := model.Task{
		Title:      "Call David Kim",
		DueDate:    time.Date(2023, 10, 29, 0, 0, 0, 0, time.UTC),
		AssignedTo: "Alex Roe",
		Priority:   model.PriorityHigh,
	}
	require.NoError(t, store.SaveTask(ctx, &task))
	require.NotEmpty(t, task.ID)

	require.NoError(t, store.CompleteTask(ctx, task.ID))

	tasks, err := store.GetTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Completed)
	assert.Equal(t, model.PriorityHigh, tasks[0].Priority)

	assert.ErrorIs(t, store.CompleteTask(ctx, "missing"), common.ErrNotFound)
}

func TestTemplateLifecycle(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	tmpl := model.EmailTemplate{Name: "Initial Outreach", Subject: "Hello", Body: "Hi {{Customer Name}}"}
	require.NoError(t, store.SaveTemplate(ctx, &tmpl))
	require.NotEmpty(t, tmpl.ID)

	tmpl.Subject = "Hello again"
	require.NoError(t, store.SaveTemplate(ctx, &tmpl))

	templates, err := store.GetTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, templates, 1, "save by id is an upsert")
	assert.Equal(t, "Hello again", templates[0].Subject)

	require.NoError(t, store.DeleteTemplate(ctx, tmpl.ID))
	assert.ErrorIs(t, store.DeleteTemplate(ctx, tmpl.ID), common.ErrNotFound)
}

func TestGetDashboardStats(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()
	now := time.Now()

	fresh := testLead("l1", "alice")
	fresh.Status = model.StatusNew
	fresh.LastContact = now.Add(-24 * time.Hour)
	won := testLead("l2", "bob")
	won.Status = model.StatusWon
	stale := testLead("l3", "carol")
	stale.Status = model.StatusNew
	stale.LastContact = now.Add(-30 * 24 * time.Hour)
	require.NoError(t, store.SaveLeads(ctx, []model.Lead{fresh, won, stale}))

	task := model.Task{Title: "Prepare Q4 Report", DueDate: now}
	require.NoError(t, store.SaveTask(ctx, &task))

	stats, err := store.GetDashboardStats(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalLeads)
	assert.Equal(t, 1, stats.NewLeadsThisWeek)
	assert.InDelta(t, 100.0/3.0, stats.ConversionRate, 0.01)
	assert.Equal(t, 1, stats.PendingTasks)
}

func TestSeedIsIdempotent(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Seed(ctx))
	require.NoError(t, store.Seed(ctx))

	leads, err := store.GetLeads(ctx)
	require.NoError(t, err)
	assert.Len(t, leads, 5)

	tasks, err := store.GetTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 3)

	templates, err := store.GetTemplates(ctx)
	require.NoError(t, err)
	assert.Len(t, templates, 2)
}

func TestValidation(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	t.Run("nil context", func(t *testing.T) {
		//nolint:staticcheck // testing nil context handling
		err := store.SaveLeads(nil, []model.Lead{testLead("l1", "alice")})
		assert.ErrorIs(t, err, ErrNilContext)
	})

	t.Run("empty slice", func(t *testing.T) {
		assert.ErrorIs(t, store.SaveLeads(ctx, []model.Lead{}), ErrEmptySlice)

		_, err := store.DeleteLeads(ctx, nil)
		assert.ErrorIs(t, err, ErrEmptySlice)
	})

	t.Run("lead missing name and email saves", func(t *testing.T) {
		lead := testLead("sparse1", "alice")
		lead.Name = ""
		lead.Email = ""
		require.NoError(t, store.SaveLeads(ctx, []model.Lead{lead}))

		got, err := store.GetLeadByID(ctx, "sparse1")
		require.NoError(t, err)
		assert.Empty(t, got.Name)
		assert.Empty(t, got.Email)
	})

	t.Run("activity with unknown type", func(t *testing.T) {
		lead := testLead("badact1", "bob")
		lead.Activities = []model.Activity{{ID: "a1", Type: "telegram", Content: "ping"}}
		assert.ErrorIs(t, store.SaveLeads(ctx, []model.Lead{lead}), ErrInvalidLead)
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := store.GetLeadByID(ctx, "")
		assert.ErrorIs(t, err, ErrEmptyString)
	})
}
