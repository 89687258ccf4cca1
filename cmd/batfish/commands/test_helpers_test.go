package commands_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fivetwenty-io/batfish/cmd/batfish/commands"
	"github.com/spf13/cobra"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

func subcommandNames(cmd *cobra.Command) []string {
	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}

	return names
}

type apiCall struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]interface{}
}

// fakeAPI serves a small fixed account: droplet 1 "web-1", image 7
// "ubuntu-base", regions nyc1 and ams2, two sizes and one action.
type fakeAPI struct {
	*httptest.Server

	mu    sync.Mutex
	calls []apiCall
}

const (
	dropletJSON = `{"id":1,"name":"web-1","memory":512,"vcpus":1,"disk":20,"locked":false,"status":"active",
		"created_at":"2014-06-24T20:34:55Z","backup_ids":[],"snapshot_ids":[7],"features":["virtio"],
		"region":{"slug":"nyc1","name":"New York 1"},"image":{"id":7},
		"size":{"slug":"512mb","price_hourly":0.00744,"price_monthly":5},
		"networks":{"v4":[{"ip_address":"10.0.0.2","netmask":"255.255.255.0","gateway":"10.0.0.1","type":"private"},
		{"ip_address":"104.131.186.241","netmask":"255.255.240.0","gateway":"104.131.176.1","type":"public"}],"v6":[]}}`
	imageJSON = `{"id":7,"name":"ubuntu-base","distribution":"Ubuntu","slug":"ubuntu-14-04-x64","public":false,
		"regions":["nyc1"],"created_at":"2014-07-29T14:35:40Z"}`
	actionJSON = `{"id":36804636,"status":"in-progress","type":"%s","started_at":"2014-11-14T16:29:21Z",
		"completed_at":null,"resource_id":1,"resource_type":"droplet","region":{"slug":"nyc1"}}`
)

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()

	api := &fakeAPI{}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /droplets", func(w http.ResponseWriter, _ *http.Request) {
		writeBody(w, http.StatusOK, `{"droplets":[`+dropletJSON+`],"links":{}}`)
	})
	mux.HandleFunc("POST /droplets", func(w http.ResponseWriter, _ *http.Request) {
		writeBody(w, http.StatusAccepted, `{"droplet":`+strings.Replace(dropletJSON, `"status":"active"`, `"status":"new"`, 1)+`}`)
	})
	mux.HandleFunc("GET /droplets/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "1" {
			writeBody(w, http.StatusNotFound, `{"id":"not_found","message":"The resource you were accessing could not be found."}`)

			return
		}

		writeBody(w, http.StatusOK, `{"droplet":`+dropletJSON+`}`)
	})
	mux.HandleFunc("DELETE /droplets/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /droplets/{id}/actions", func(w http.ResponseWriter, r *http.Request) {
		writeAction(w, r)
	})
	mux.HandleFunc("GET /droplets/{id}/actions", func(w http.ResponseWriter, _ *http.Request) {
		writeBody(w, http.StatusOK, `{"actions":[`+strings.Replace(actionJSON, "%s", "reboot", 1)+`]}`)
	})
	mux.HandleFunc("GET /images", func(w http.ResponseWriter, _ *http.Request) {
		writeBody(w, http.StatusOK, `{"images":[`+imageJSON+`]}`)
	})
	mux.HandleFunc("GET /images/{id}", func(w http.ResponseWriter, r *http.Request) {
		if id := r.PathValue("id"); id != "7" && id != "ubuntu-14-04-x64" {
			writeBody(w, http.StatusNotFound, `{"id":"not_found","message":"not found"}`)

			return
		}

		writeBody(w, http.StatusOK, `{"image":`+imageJSON+`}`)
	})
	mux.HandleFunc("PUT /images/{id}", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Name string `json:"name"`
		}

		_ = json.NewDecoder(r.Body).Decode(&payload)
		writeBody(w, http.StatusOK, `{"image":`+strings.Replace(imageJSON, "ubuntu-base", payload.Name, 1)+`}`)
	})
	mux.HandleFunc("DELETE /images/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /images/{id}/actions", func(w http.ResponseWriter, r *http.Request) {
		writeAction(w, r)
	})
	mux.HandleFunc("GET /regions", func(w http.ResponseWriter, _ *http.Request) {
		writeBody(w, http.StatusOK, `{"regions":[
			{"slug":"nyc1","name":"New York 1","available":true,"sizes":["512mb","1gb"],"features":["backups"]},
			{"slug":"ams2","name":"Amsterdam 2","available":true,"sizes":["512mb"],"features":[]}]}`)
	})
	mux.HandleFunc("GET /sizes", func(w http.ResponseWriter, _ *http.Request) {
		writeBody(w, http.StatusOK, `{"sizes":[
			{"slug":"512mb","memory":512,"vcpus":1,"disk":20,"transfer":1,"price_monthly":5,"price_hourly":0.00744,"regions":["nyc1"]},
			{"slug":"1gb","memory":1024,"vcpus":1,"disk":30,"transfer":2,"price_monthly":10,"price_hourly":0.01488,"regions":["nyc1","ams2"]}]}`)
	})
	mux.HandleFunc("GET /actions", func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer unknown-token":
			writeBody(w, http.StatusNotFound, `{"id":"not_found","message":"not found"}`)
		case "Bearer bad-token":
			writeBody(w, http.StatusUnauthorized, `{"id":"unauthorized","message":"Unable to authenticate you."}`)
		default:
			writeBody(w, http.StatusOK, `{"actions":[`+strings.Replace(actionJSON, "%s", "reboot", 1)+`]}`)
		}
	})
	mux.HandleFunc("GET /actions/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "99" {
			completed := strings.Replace(actionJSON, `"status":"in-progress"`, `"status":"completed"`, 1)
			completed = strings.Replace(completed, `"completed_at":null`, `"completed_at":"2014-11-14T16:31:00Z"`, 1)
			writeBody(w, http.StatusOK, `{"action":`+strings.Replace(completed, "%s", "reboot", 1)+`}`)

			return
		}

		if r.PathValue("id") != "36804636" {
			writeBody(w, http.StatusNotFound, `{"id":"not_found","message":"not found"}`)

			return
		}

		writeBody(w, http.StatusOK, `{"action":`+strings.Replace(actionJSON, "%s", "reboot", 1)+`}`)
	})

	api.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := apiCall{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization")}

		body, _ := io.ReadAll(r.Body)
		if len(body) > 0 {
			_ = json.Unmarshal(body, &call.Body)
		}

		r.Body = io.NopCloser(bytes.NewReader(body))

		api.mu.Lock()
		api.calls = append(api.calls, call)
		api.mu.Unlock()

		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(api.Close)

	return api
}

func writeBody(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func writeAction(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Type string `json:"type"`
	}

	_ = json.NewDecoder(r.Body).Decode(&payload)
	writeBody(w, http.StatusCreated, `{"action":`+strings.Replace(actionJSON, "%s", payload.Type, 1)+`}`)
}

// callsTo returns the recorded calls with the given method.
func (a *fakeAPI) callsTo(method string) []apiCall {
	a.mu.Lock()
	defer a.mu.Unlock()

	var calls []apiCall

	for _, call := range a.calls {
		if call.Method == method {
			calls = append(calls, call)
		}
	}

	return calls
}

// cli runs the full command tree against the fake API with a token file in a
// temp directory.
type cli struct {
	api       *fakeAPI
	tokenFile string
	config    string
}

func newCLI(t *testing.T) *cli {
	t.Helper()

	dir := t.TempDir()

	return &cli{
		api:       newFakeAPI(t),
		tokenFile: filepath.Join(dir, ".batfish"),
		config:    filepath.Join(dir, ".batfish.yml"),
	}
}

func (c *cli) run(stdin string, args ...string) (string, error) {
	root := commands.NewRootCommand(commands.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2024-01-01"})

	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetIn(strings.NewReader(stdin))

	global := []string{
		"--api", c.api.URL,
		"--token-file", c.tokenFile,
		"--config", c.config,
		"--nats-url", "",
	}
	root.SetArgs(append(global, args...))

	err := root.Execute()

	return out.String(), err
}
