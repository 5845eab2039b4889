package csvio_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/fightelo/internal/adapters/csvio"
	"github.com/okian/fightelo/internal/domain/classify"
	"github.com/okian/fightelo/internal/domain/engine"
	"github.com/okian/fightelo/internal/domain/model"
	"github.com/okian/fightelo/internal/domain/peak"
	"github.com/okian/fightelo/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuildBouts(t *testing.T) {
	Convey("Given raw events, results and fighter exports", t, func() {
		ctx := context.Background()
		dir := t.TempDir()

		events := writeFile(t, dir, "events.csv",
			"EVENT,URL,DATE,LOCATION\n"+
				"UFC 100,http://e/100,\"July 11, 2009\",Las Vegas\n"+
				"UFC 1,http://e/1,not-a-date,Denver\n")
		results := writeFile(t, dir, "results.csv",
			"EVENT,BOUT,OUTCOME,WEIGHTCLASS,METHOD,ROUND,TIME,TIME FORMAT,REFEREE,DETAILS,URL\n"+
				"UFC 100,Brock Lesnar vs. Frank Mir,W/L,Heavyweight,KO/TKO,2,1:48,5 Rnd (5-5-5-5-5),Herb Dean,Punches,http://f/1\n"+
				"UFC 100,Dan  Henderson  vs.  Michael Bisping,W/L,Middleweight,KO/TKO,2,3:20,3 Rnd (5-5-5),Mario Yamasaki,Punch,http://f/2\n")
		fighters := writeFile(t, dir, "fighters.csv",
			"FIGHTER,HEIGHT,URL\n"+
				"Brock Lesnar,75,http://u/lesnar\n"+
				"Frank Mir,75,http://u/mir\n")

		Convey("When building the unified bout list", func() {
			bouts, err := csvio.BuildBouts(ctx, events, results, fighters)
			So(err, ShouldBeNil)
			So(bouts, ShouldHaveLength, 2)

			Convey("Then event dates join by normalized event name", func() {
				So(bouts[0].Date.Equal(time.Date(2009, 7, 11, 0, 0, 0, 0, time.UTC)), ShouldBeTrue)
				So(bouts[0].Event, ShouldEqual, "UFC 100")
			})

			Convey("Then names split from the bout label with spacing collapsed", func() {
				So(bouts[1].NameA, ShouldEqual, "Dan Henderson")
				So(bouts[1].NameB, ShouldEqual, "Michael Bisping")
			})

			Convey("Then keys prefer the profile URL and fall back to the name", func() {
				So(bouts[0].KeyA, ShouldEqual, "http://u/lesnar")
				So(bouts[0].KeyB, ShouldEqual, "http://u/mir")
				So(bouts[1].KeyA, ShouldEqual, "dan henderson")
			})

			Convey("Then outcome and scheduled rounds parse from the row", func() {
				So(bouts[0].Outcome, ShouldEqual, model.OutcomeAWins)
				So(bouts[0].ScheduledRounds, ShouldEqual, 5)
				So(bouts[1].ScheduledRounds, ShouldEqual, 3)
			})
		})

		Convey("When the fighter roster is omitted", func() {
			bouts, err := csvio.BuildBouts(ctx, events, results, "")
			So(err, ShouldBeNil)

			Convey("Then all keys fall back to lowercase names", func() {
				So(bouts[0].KeyA, ShouldEqual, "brock lesnar")
			})
		})

		Convey("When a required column is missing", func() {
			bad := writeFile(t, dir, "bad.csv", "EVENT,BOUT\nUFC 100,A vs. B\n")
			_, err := csvio.BuildBouts(ctx, events, bad, "")
			So(errors.Is(err, csvio.ErrMissingColumns), ShouldBeTrue)
		})

		Convey("When an input file does not exist", func() {
			_, err := csvio.BuildBouts(ctx, filepath.Join(dir, "nope.csv"), results, "")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestBoutsRoundTrip(t *testing.T) {
	Convey("Given a bout list with dated and undated entries", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "out", "fights_unified.csv")

		bouts := []model.Bout{
			{
				Event: "Late Event", Label: "C vs. D",
				KeyA: "c", KeyB: "d", NameA: "C", NameB: "D",
				Outcome: model.OutcomeDraw, Method: "Decision - Majority",
				ScheduledRounds: 3,
			},
			{
				Date:  time.Date(2010, 3, 1, 0, 0, 0, 0, time.UTC),
				Event: "Early Event", Label: "A vs. B",
				KeyA: "http://u/a", KeyB: "b", NameA: "A", NameB: "B",
				Outcome: model.OutcomeAWins, Method: "KO/TKO",
				Details: "Punches", TimeFormat: "5 Rnd (5-5-5-5-5)",
				ScheduledRounds: 5, Weightclass: "Lightweight",
				Referee: "Herb Dean", URL: "http://f/9",
			},
		}

		Convey("When written and read back", func() {
			So(csvio.WriteBouts(ctx, path, bouts), ShouldBeNil)
			got, err := csvio.ReadBouts(ctx, path)
			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 2)

			Convey("Then dated bouts come first and fields survive intact", func() {
				So(got[0].Label, ShouldEqual, "A vs. B")
				So(got[0].Date.Equal(time.Date(2010, 3, 1, 0, 0, 0, 0, time.UTC)), ShouldBeTrue)
				So(got[0].KeyA, ShouldEqual, "http://u/a")
				So(got[0].Outcome, ShouldEqual, model.OutcomeAWins)
				So(got[0].ScheduledRounds, ShouldEqual, 5)
				So(got[0].Referee, ShouldEqual, "Herb Dean")
			})

			Convey("Then undated bouts keep a zero date", func() {
				So(got[1].Label, ShouldEqual, "C vs. D")
				So(got[1].Date.IsZero(), ShouldBeTrue)
				So(got[1].Outcome, ShouldEqual, model.OutcomeDraw)
			})
		})
	})
}

func TestWriteClassified(t *testing.T) {
	Convey("Given bouts spanning finish and dominant-decision methods", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "fights_classified.csv")

		bouts := []model.Bout{
			{
				Date:  time.Date(2012, 1, 1, 0, 0, 0, 0, time.UTC),
				Event: "E", Label: "A vs. B", KeyA: "a", KeyB: "b",
				NameA: "A", NameB: "B", Outcome: model.OutcomeAWins,
				Method: "Decision - Unanimous", Details: "50 - 45,50 - 45,50 - 45",
				ScheduledRounds: 5,
			},
		}

		Convey("When classified output is written", func() {
			So(csvio.WriteClassified(ctx, path, bouts, classify.New()), ShouldBeNil)

			Convey("Then the row carries class, multiplier, basis and margins", func() {
				raw, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(string(raw), ShouldContainSubstring, "method_class,method_multiplier,decision_basis,judge_margins")
				So(string(raw), ShouldContainSubstring, "decision_dominant,1.1,details_any_margin_ge_3,\"5,5,5\"")
			})
		})
	})
}

func TestLedgerAndSnapshotRoundTrip(t *testing.T) {
	Convey("Given a rating run over two bouts", t, func() {
		ctx := context.Background()
		dir := t.TempDir()

		bouts := []model.Bout{
			{
				Date:  time.Date(2015, 5, 1, 0, 0, 0, 0, time.UTC),
				Event: "E1", Label: "A vs. B", KeyA: "a", KeyB: "b",
				NameA: "A", NameB: "B", Outcome: model.OutcomeAWins, Method: "KO",
			},
			{
				Date:  time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC),
				Event: "E2", Label: "A vs. C", KeyA: "a", KeyB: "c",
				NameA: "A", NameB: "C", Outcome: model.OutcomeBWins, Method: "Decision - Split",
			},
		}
		ledger, snap, err := engine.New().Run(ctx, bouts)
		So(err, ShouldBeNil)

		Convey("When the ledger is written and read back", func() {
			path := filepath.Join(dir, "elo_history.csv")
			So(csvio.WriteLedger(ctx, path, ledger), ShouldBeNil)
			got, err := csvio.ReadLedger(ctx, path)
			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 2)

			Convey("Then peak extraction over the loaded ledger matches the live one", func() {
				So(peak.Peaks(got), ShouldResemble, peak.Peaks(ledger))
			})
		})

		Convey("When the snapshot is written and read back", func() {
			path := filepath.Join(dir, "elo_ratings_current.csv")
			So(csvio.WriteSnapshot(ctx, path, snap), ShouldBeNil)
			got, err := csvio.ReadSnapshot(ctx, path)
			So(err, ShouldBeNil)
			So(got, ShouldResemble, snap)
		})

		Convey("When the peak table is written and read back", func() {
			peaks := peak.Peaks(ledger)
			path := filepath.Join(dir, "elo_peak_ratings.csv")
			So(csvio.WritePeaks(ctx, path, peaks), ShouldBeNil)
			got, err := csvio.ReadPeaks(ctx, path)
			So(err, ShouldBeNil)
			So(got, ShouldResemble, peaks)
		})

		Convey("When the simple exports are written", func() {
			simple := filepath.Join(dir, "elo_ratings_simple.csv")
			So(csvio.WriteSnapshotSimple(ctx, simple, snap), ShouldBeNil)
			raw, err := os.ReadFile(simple)
			So(err, ShouldBeNil)
			So(string(raw), ShouldStartWith, "fighter_name,rating\n")
		})
	})
}
