package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	phttp "tglang/internal/platform/net/http"
	svc "tglang/internal/services/api/stats/service"
	journal "tglang/internal/services/journal/domain"
)

type emptyQuery struct{}

func (emptyQuery) CountByLanguage(context.Context, journal.Window) ([]journal.LanguageCount, error) {
	return nil, nil
}

func TestLanguagesEndpoint(t *testing.T) {
	t.Parallel()

	serve := func(q journal.QueryPort) *httptest.Server {
		r := phttp.NewRouter()
		r.Route("/stats", func(sub phttp.Router) { Register(sub, svc.New(q)) })
		srv := httptest.NewServer(r.Mux())
		t.Cleanup(srv.Close)
		return srv
	}
	on, off := serve(emptyQuery{}), serve(nil)

	tests := []struct {
		name   string
		srv    *httptest.Server
		query  string
		status int
		field  string
		days   int
	}{
		{"default window", on, "", 200, "", DefaultDays},
		{"explicit", on, "?days=30", 200, "", 30},
		{"too wide", on, "?days=91", 400, "days", 0},
		{"zero", on, "?days=0", 400, "days", 0},
		{"not a number", on, "?days=week", 400, "days", 0},
		{"journal disabled", off, "", 503, "", 0},
	}
	for _, tt := range tests {
		res, err := tt.srv.Client().Get(tt.srv.URL + "/stats/languages" + tt.query)
		if err != nil {
			t.Fatal(err)
		}
		var env struct {
			Field string `json:"field"`
			Data  struct {
				Days int `json:"days"`
			} `json:"data"`
		}
		_ = json.NewDecoder(res.Body).Decode(&env)
		_ = res.Body.Close()
		if res.StatusCode != tt.status || env.Field != tt.field || env.Data.Days != tt.days {
			t.Fatalf("%s: status=%d field=%q days=%d", tt.name, res.StatusCode, env.Field, env.Data.Days)
		}
	}
}
