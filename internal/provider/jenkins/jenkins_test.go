package jenkins

import (
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ronappleton/autotests-backend/internal/config"
	"github.com/ronappleton/autotests-backend/internal/order"
	"github.com/ronappleton/autotests-backend/internal/provider/rest"
)

type parsedJob struct {
	Description string `xml:"description"`
	Parameters  []struct {
		Name  string `xml:"name"`
		Value string `xml:"defaultValue"`
	} `xml:"properties>hudson.model.ParametersDefinitionProperty>parameterDefinitions>hudson.model.StringParameterDefinition"`
	RepositoryURL string `xml:"scm>userRemoteConfigs>hudson.plugins.git.UserRemoteConfig>url"`
}

func TestRenderJob_EscapesValues(t *testing.T) {
	raw, err := renderJob(jobConfig{
		Title:           `Login <admin> & "guest"`,
		IssueKey:        "AUTO-7",
		RepositoryURL:   "https://github.com/autotests-cloud/AUTO-7",
		ThreadMessageID: "42",
	})
	require.NoError(t, err)

	var job parsedJob
	require.NoError(t, xml.Unmarshal(raw, &job))
	assert.Equal(t, `Login <admin> & "guest"`, job.Description)
	assert.Equal(t, "https://github.com/autotests-cloud/AUTO-7", job.RepositoryURL)
	require.Len(t, job.Parameters, 2)
	assert.Equal(t, "ISSUE_KEY", job.Parameters[0].Name)
	assert.Equal(t, "AUTO-7", job.Parameters[0].Value)
	assert.Equal(t, "THREAD_MESSAGE_ID", job.Parameters[1].Name)
	assert.Equal(t, "42", job.Parameters[1].Value)
}

func TestClient_CreateJob(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{name: "created", status: http.StatusOK},
		{name: "already exists", status: http.StatusBadRequest, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/createItem", r.URL.Path)
				assert.Equal(t, "AUTO-7", r.URL.Query().Get("name"))
				assert.Equal(t, "application/xml", r.Header.Get("Content-Type"))
				user, pass, ok := r.BasicAuth()
				assert.True(t, ok)
				assert.Equal(t, "ci", user)
				assert.Equal(t, "secret", pass)

				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				var job parsedJob
				require.NoError(t, xml.Unmarshal(body, &job))
				assert.Equal(t, "Login test", job.Description)
				assert.Equal(t, "https://github.com/autotests-cloud/AUTO-7", job.RepositoryURL)

				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := New(config.JenkinsConfig{BaseURL: srv.URL, Username: "ci", Token: "secret"}, zap.NewNop())
			err := c.CreateJob(context.Background(), order.Order{Title: "Login test"}, "AUTO-7", "https://github.com/autotests-cloud/AUTO-7", "42")
			if tt.wantErr {
				var statusErr *rest.StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, tt.status, statusErr.Status)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestClient_LaunchJob(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{name: "queued", status: http.StatusCreated},
		{name: "missing job", status: http.StatusNotFound, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				gotPath = r.URL.Path
				require.NoError(t, r.ParseForm())
				assert.Equal(t, "AUTO-7", r.PostForm.Get("ISSUE_KEY"))
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			err := New(config.JenkinsConfig{BaseURL: srv.URL}, zap.NewNop()).LaunchJob(context.Background(), "AUTO-7")
			assert.Equal(t, "/job/AUTO-7/buildWithParameters", gotPath)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
