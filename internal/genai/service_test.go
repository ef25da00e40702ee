package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/model"
)

func testLead() *model.Lead {
	return &model.Lead{
		ID:          "l1",
		Name:        "Alice Freeman",
		Company:     "TechNova Solutions",
		Status:      model.StatusEngaged,
		Source:      model.SourceWebsite,
		LastContact: time.Date(2023, 10, 25, 14, 30, 0, 0, time.UTC),
		Activities: []model.Activity{
			{ID: "a1", Type: model.ActivityEmail, Content: "Sent introductory proposal", Timestamp: time.Now(), User: "Sarah"},
		},
	}
}

// fakeGemini returns a server speaking just enough of the generateContent
// protocol, recording the last prompt it saw.
func fakeGemini(t *testing.T, reply string) (*httptest.Server, *string) {
	t.Helper()

	var lastPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			lastPrompt = req.Contents[0].Parts[0].Text
		}

		resp := geminiResponse{}
		if reply != "" {
			resp.Candidates = []struct {
				Content geminiContent `json:"content"`
			}{
				{Content: geminiContent{Parts: []geminiPart{{Text: reply}}}},
			}
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(server.Close)
	return server, &lastPrompt
}

func serviceFor(t *testing.T, server *httptest.Server) *Service {
	t.Helper()

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)
	return NewService(client)
}

func TestSummarizeSimulationMode(t *testing.T) {
	svc := NewService(nil)
	assert.True(t, svc.Simulated())

	got := svc.Summarize(context.Background(), testLead())
	assert.Contains(t, got, "Alice Freeman")
	assert.Contains(t, got, "TechNova Solutions")
	assert.Contains(t, got, "Simulation")
}

func TestSummarize(t *testing.T) {
	server, prompt := fakeGemini(t, "Alice is engaged and waiting on the proposal.")
	svc := serviceFor(t, server)

	got := svc.Summarize(context.Background(), testLead())
	assert.Equal(t, "Alice is engaged and waiting on the proposal.", got)
	assert.Contains(t, *prompt, "Lead Name: Alice Freeman")
	assert.Contains(t, *prompt, "Status: Engaged")
}

func TestSummarizeEmptyResponse(t *testing.T) {
	server, _ := fakeGemini(t, "")
	svc := serviceFor(t, server)

	got := svc.Summarize(context.Background(), testLead())
	assert.Equal(t, "No summary generated.", got)
}

func TestSummarizeNeverErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)
	svc := serviceFor(t, server)

	got := svc.Summarize(context.Background(), testLead())
	assert.Equal(t, "Unable to generate summary at this time.", got)
}

func TestDraftEmail(t *testing.T) {
	server, prompt := fakeGemini(t, "Subject: Next steps\n\nHi Alice,")
	svc := serviceFor(t, server)

	got := svc.DraftEmail(context.Background(), testLead(), "friendly")
	assert.Equal(t, "Subject: Next steps\n\nHi Alice,", got)
	assert.Contains(t, *prompt, "Draft a friendly sales email")
	assert.Contains(t, *prompt, "Sent introductory proposal")
}

func TestDraftEmailNoActivities(t *testing.T) {
	server, prompt := fakeGemini(t, "draft")
	svc := serviceFor(t, server)

	lead := testLead()
	lead.Activities = nil
	svc.DraftEmail(context.Background(), lead, "direct")

	assert.Contains(t, *prompt, "New inquiry")
}

func TestDraftEmailSimulationMode(t *testing.T) {
	svc := NewService(nil)

	got := svc.DraftEmail(context.Background(), testLead(), "formal")
	assert.Contains(t, got, "Hi Alice Freeman")
	assert.Contains(t, got, "formal email")
}

func TestNewClientWithoutKey(t *testing.T) {
	client, err := NewClient(Config{})
	require.NoError(t, err)
	assert.Nil(t, client)
}
