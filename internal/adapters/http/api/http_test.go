package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/okian/fightelo/internal/adapters/http/api"
	"github.com/okian/fightelo/internal/adapters/repository"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	ctx := context.Background()

	ratings := repository.NewStandings(ctx)
	if err := ratings.Load(ctx, []repository.Entry{
		{Key: "http://u/a", Name: "Alpha", Rating: 1610.5, Fights: 12, Wins: 10, Losses: 2},
		{Key: "bravo", Name: "Bravo", Rating: 1540, Fights: 8, Wins: 5, Losses: 2, Draws: 1},
		{Key: "charlie", Name: "Charlie", Rating: 1480, Fights: 4, Wins: 1, Losses: 3},
	}); err != nil {
		t.Fatal(err)
	}

	peaks := repository.NewStandings(ctx)
	if err := peaks.Load(ctx, []repository.Entry{
		{Key: "bravo", Name: "Bravo", Rating: 1580},
		{Key: "http://u/a", Name: "Alpha", Rating: 1625},
	}); err != nil {
		t.Fatal(err)
	}

	mux := http.NewServeMux()
	api.NewServer(ratings, peaks, 50).Register(ctx, mux)
	return mux
}

func doGet(mux *http.ServeMux, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux(t)

		Convey("When GET /healthz is requested", func() {
			rec := doGet(mux, "/healthz")

			Convey("Then it reports ok with the competitor count", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var body map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body["status"], ShouldEqual, "ok")
				So(body["competitors"], ShouldEqual, 3)
			})
		})
	})
}

func TestLeaderboardEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux(t)

		Convey("When GET /leaderboard?limit=2 is requested", func() {
			rec := doGet(mux, "/leaderboard?limit=2")

			Convey("Then the top entries come back rating-descending", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var entries []api.Entry
				So(json.Unmarshal(rec.Body.Bytes(), &entries), ShouldBeNil)
				So(entries, ShouldHaveLength, 2)
				So(entries[0].Name, ShouldEqual, "Alpha")
				So(entries[0].Rank, ShouldEqual, 1)
				So(entries[1].Name, ShouldEqual, "Bravo")
			})
		})

		Convey("When the limit parameter is omitted", func() {
			rec := doGet(mux, "/leaderboard")

			Convey("Then the default limit applies", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var entries []api.Entry
				So(json.Unmarshal(rec.Body.Bytes(), &entries), ShouldBeNil)
				So(entries, ShouldHaveLength, 3)
			})
		})

		Convey("When the limit parameter is invalid", func() {
			So(doGet(mux, "/leaderboard?limit=0").Code, ShouldEqual, http.StatusBadRequest)
			So(doGet(mux, "/leaderboard?limit=abc").Code, ShouldEqual, http.StatusBadRequest)
			So(doGet(mux, "/leaderboard?limit=999").Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestRankEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux(t)

		Convey("When a known competitor is requested", func() {
			rec := doGet(mux, "/rank/bravo")

			Convey("Then the entry includes rank and aggregates", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var e api.Entry
				So(json.Unmarshal(rec.Body.Bytes(), &e), ShouldBeNil)
				So(e.Rank, ShouldEqual, 2)
				So(e.Rating, ShouldEqual, 1540.0)
				So(e.Draws, ShouldEqual, 1)
			})
		})

		Convey("When the key is a profile URL passed via the query form", func() {
			rec := doGet(mux, "/rank/?key="+url.QueryEscape("http://u/a"))

			Convey("Then the lookup decodes the key", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var e api.Entry
				So(json.Unmarshal(rec.Body.Bytes(), &e), ShouldBeNil)
				So(e.Name, ShouldEqual, "Alpha")
				So(e.Rank, ShouldEqual, 1)
			})
		})

		Convey("When the competitor is unknown", func() {
			So(doGet(mux, "/rank/nobody").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When the key is empty", func() {
			So(doGet(mux, "/rank/").Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestPeaksEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux(t)

		Convey("When GET /peaks is requested", func() {
			rec := doGet(mux, "/peaks?limit=2")

			Convey("Then peak entries come from the peaks store", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var entries []api.Entry
				So(json.Unmarshal(rec.Body.Bytes(), &entries), ShouldBeNil)
				So(entries, ShouldHaveLength, 2)
				So(entries[0].Name, ShouldEqual, "Alpha")
				So(entries[0].Rating, ShouldEqual, 1625.0)
				So(entries[1].Name, ShouldEqual, "Bravo")
			})
		})
	})
}

func TestMetricsEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux(t)

		Convey("When GET /metrics is requested", func() {
			rec := doGet(mux, "/metrics")

			Convey("Then the Prometheus exposition is served", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
			})
		})
	})
}

func TestMethodNotAllowed(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux(t)

		Convey("When a write method hits a read endpoint", func() {
			req := httptest.NewRequest(http.MethodPost, "/leaderboard", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}
