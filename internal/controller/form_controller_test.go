package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/af-Athameem/gtruth/internal/pkg/serverutils"
	"github.com/af-Athameem/gtruth/pkg/form"
	"github.com/af-Athameem/gtruth/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type formEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    store.FormState `json:"data"`
}

func newFormApp(sess *store.Session) *fiber.App {
	app := fiber.New()
	authMW := func(ctx *fiber.Ctx) error {
		ctx.Locals(serverutils.SessionLocal, sess)
		return ctx.Next()
	}
	NewFormController(form.NewManager()).RegisterRoutes(app.Group("/api"), authMW)
	return app
}

func doForm(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, formEnvelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	var envelope formEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func TestFormGetInitializesMissingForm(t *testing.T) {
	sess := &store.Session{ID: "s1", Username: "alice"}
	app := newFormApp(sess)

	resp, env := doForm(t, app, http.MethodGet, "/api/form", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	require.Len(t, env.Data.PartialAnswers, 1)
	require.Len(t, env.Data.PartialAnswers[0].References, 1)
	require.NotNil(t, sess.Form)
}

func TestFormUpdateFields(t *testing.T) {
	forms := form.NewManager()
	sess := &store.Session{ID: "s1", Form: forms.Initialize()}
	app := newFormApp(sess)

	question := "What is the refund policy?"
	agent := "policy-agent"
	tag := " finance "
	_, env := doForm(t, app, http.MethodPatch, "/api/form", map[string]interface{}{
		"question":   question,
		"agent_name": agent,
		"new_tag":    tag,
	})

	assert.Equal(t, question, env.Data.Question)
	assert.Equal(t, agent, env.Data.AgentName)
	assert.Equal(t, []string{"finance"}, env.Data.Tags)
}

func TestFormPartialAnswerLifecycle(t *testing.T) {
	forms := form.NewManager()
	sess := &store.Session{ID: "s1", Form: forms.Initialize()}
	app := newFormApp(sess)

	_, env := doForm(t, app, http.MethodPost, "/api/form/partial-answers", nil)
	require.Len(t, env.Data.PartialAnswers, 2)
	secondID := env.Data.PartialAnswers[1].ID

	_, env = doForm(t, app, http.MethodPatch, "/api/form/partial-answers/1",
		map[string]string{"answer": "the second answer"})
	assert.Equal(t, "the second answer", env.Data.PartialAnswers[1].Answer)

	// Removing the first entry keeps the second's identity and text.
	_, env = doForm(t, app, http.MethodDelete, "/api/form/partial-answers/0", nil)
	require.Len(t, env.Data.PartialAnswers, 1)
	assert.Equal(t, secondID, env.Data.PartialAnswers[0].ID)
	assert.Equal(t, "the second answer", env.Data.PartialAnswers[0].Answer)
}

func TestFormReferenceLifecycle(t *testing.T) {
	forms := form.NewManager()
	sess := &store.Session{ID: "s1", Form: forms.Initialize()}
	app := newFormApp(sess)

	_, env := doForm(t, app, http.MethodPost, "/api/form/partial-answers/0/references", nil)
	require.Len(t, env.Data.PartialAnswers[0].References, 2)

	_, env = doForm(t, app, http.MethodPatch, "/api/form/partial-answers/0/references/1",
		map[string]string{"document": "policy.pdf", "pages": "3, 4"})
	ref := env.Data.PartialAnswers[0].References[1]
	assert.Equal(t, "policy.pdf", ref.Document)
	assert.Equal(t, "3, 4", ref.Pages)

	_, env = doForm(t, app, http.MethodDelete, "/api/form/partial-answers/0/references/0", nil)
	require.Len(t, env.Data.PartialAnswers[0].References, 1)
	assert.Equal(t, "policy.pdf", env.Data.PartialAnswers[0].References[0].Document)
}

func TestFormOutOfBoundsIsNoOp(t *testing.T) {
	forms := form.NewManager()
	sess := &store.Session{ID: "s1", Form: forms.Initialize()}
	app := newFormApp(sess)

	resp, env := doForm(t, app, http.MethodDelete, "/api/form/partial-answers/9", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, env.Data.PartialAnswers, 1)

	// Garbage indexes behave like any other out-of-bounds index.
	resp, env = doForm(t, app, http.MethodDelete, "/api/form/partial-answers/abc", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, env.Data.PartialAnswers, 1)
}
