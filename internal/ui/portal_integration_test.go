package ui_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentportal/internal/apiclient"
	"studentportal/internal/database"
	"studentportal/internal/handler"
	"studentportal/internal/service"
	"studentportal/internal/ui"
)

// startStack runs the student API on sqlite and the portal in front of it.
func startStack(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	db, err := database.OpenInMemory(t.Name())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	r := mux.NewRouter()
	handler.NewStudentHandler(service.NewStudentService(db)).Register(r)
	apiSrv := httptest.NewServer(r)
	t.Cleanup(apiSrv.Close)

	api, err := apiclient.New(apiSrv.URL)
	require.NoError(t, err)

	registry := ui.NewRegistry(time.Minute)
	t.Cleanup(registry.Stop)
	portal := httptest.NewServer(ui.NewRouter(ui.NewHandler(api, registry)))
	t.Cleanup(portal.Close)

	return portal, portal.Client()
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func TestPortalAgainstStudentAPI(t *testing.T) {
	portal, client := startStack(t)

	// Create two students through the form; each success lands on the list.
	for _, s := range []struct{ id, first, email string }{
		{"S-1", "Ada", "ada@example.com"},
		{"S-2", "Grace", "grace@example.com"},
	} {
		resp, err := client.PostForm(portal.URL+"/add", url.Values{
			"action": {"submit"}, "firstName": {s.first}, "lastName": {"Tester"}, "email": {s.email},
			"password": {"secret"}, "studentId": {s.id}, "address": {"Somewhere"},
		})
		require.NoError(t, err)
		body := readBody(t, resp)
		assert.Equal(t, portal.URL+"/", resp.Request.URL.String())
		assert.Contains(t, body, "<td>"+s.first+" Tester</td>")
	}

	// A duplicate email keeps the user on the form with the API's message.
	resp, err := client.PostForm(portal.URL+"/add", url.Values{
		"action": {"submit"}, "firstName": {"Eve"}, "lastName": {"Tester"}, "email": {"ada@example.com"},
		"password": {"secret"}, "studentId": {"S-3"}, "address": {"Somewhere"},
	})
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Equal(t, "/add", resp.Request.URL.Path)
	assert.Contains(t, body, "Email already exists")
	assert.Contains(t, body, `value="Eve"`)

	// Edit the first student; the read-only email travels along unchanged.
	resp, err = client.Get(portal.URL + "/edit/1")
	require.NoError(t, err)
	body = readBody(t, resp)
	assert.Contains(t, body, `name="email" value="ada@example.com" disabled>`)

	resp, err = client.PostForm(portal.URL+"/edit/1", url.Values{
		"_method": {"PUT"}, "action": {"submit"}, "firstName": {"Augusta"}, "lastName": {"Tester"},
		"email": {"ada@example.com"}, "studentId": {"S-1"}, "phoneNumber": {"555-0100"}, "address": {"London"},
	})
	require.NoError(t, err)
	body = readBody(t, resp)
	assert.Contains(t, body, "<td>Augusta Tester</td>")
	assert.Contains(t, body, "<td>555-0100</td>")

	// Delete the second student from the rendered list.
	token := regexp.MustCompile(`view=([0-9a-f-]{36})`).FindStringSubmatch(body)
	require.NotNil(t, token)
	resp, err = client.PostForm(portal.URL+"/students/2", url.Values{
		"_method": {"DELETE"}, "view": {token[1]}, "confirm": {"yes"},
	})
	require.NoError(t, err)
	body = readBody(t, resp)
	assert.Equal(t, 1, strings.Count(body, "<tr data-id="))
	assert.NotContains(t, body, "Grace")

	// Deleting it again fails at the API and raises the alert.
	resp, err = client.PostForm(portal.URL+"/students/2", url.Values{
		"_method": {"DELETE"}, "view": {token[1]}, "confirm": {"yes"},
	})
	require.NoError(t, err)
	body = readBody(t, resp)
	assert.Contains(t, body, "Failed to delete student")
}
