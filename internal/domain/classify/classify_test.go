package classify_test

import (
	"testing"

	"github.com/okian/fightelo/internal/domain/classify"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassifyOutcomeLabels(t *testing.T) {
	Convey("Given a classifier with defaults", t, func() {
		c := classify.New()

		Convey("When the outcome label is a draw", func() {
			cls := c.Classify("draw", "KO/TKO Punches", "")

			Convey("Then it classifies as draw with the neutral multiplier regardless of method text", func() {
				So(cls.Category, ShouldEqual, classify.CategoryDraw)
				So(cls.Multiplier, ShouldEqual, 1.00)
				So(cls.Basis, ShouldEqual, classify.BasisOutcomeDraw)
			})
		})

		Convey("When the outcome label is a no contest", func() {
			cls := c.Classify("nc", "Submission Rear Naked Choke", "")

			Convey("Then it classifies as nc with the neutral multiplier", func() {
				So(cls.Category, ShouldEqual, classify.CategoryNoContest)
				So(cls.Multiplier, ShouldEqual, 1.00)
				So(cls.Basis, ShouldEqual, classify.BasisOutcomeNoContest)
			})
		})
	})
}

func TestClassifyFinishes(t *testing.T) {
	Convey("Given a classifier with defaults", t, func() {
		c := classify.New()

		Convey("When the method is a knockout", func() {
			cls := c.Classify("a", "KO/TKO Punch to Head At Distance", "")

			Convey("Then it classifies as a finish with the finish multiplier", func() {
				So(cls.Category, ShouldEqual, classify.CategoryFinish)
				So(cls.Multiplier, ShouldEqual, 1.20)
				So(cls.Basis, ShouldEqual, classify.BasisMethodFinish)
			})
		})

		Convey("When the method is a submission", func() {
			cls := c.Classify("b", "Submission Guillotine Choke", "")
			So(cls.Category, ShouldEqual, classify.CategoryFinish)
			So(cls.Basis, ShouldEqual, classify.BasisMethodFinish)
		})

		Convey("When the method is a disqualification", func() {
			cls := c.Classify("a", "DQ Illegal Knee", "")
			So(cls.Category, ShouldEqual, classify.CategoryFinish)
		})

		Convey("When the method mentions both a stoppage keyword and decision", func() {
			cls := c.Classify("a", "Decision after TKO stoppage review", "")

			Convey("Then the decision rule wins over the finish rule", func() {
				So(cls.Category, ShouldNotEqual, classify.CategoryFinish)
			})
		})
	})
}

func TestClassifyDecisions(t *testing.T) {
	Convey("Given a classifier with defaults", t, func() {
		c := classify.New()

		Convey("When the decision is split, even with lopsided cards", func() {
			cls := c.Classify("a", "Decision - Split", "30 - 25,25 - 30,30 - 25")

			Convey("Then it is always a normal decision", func() {
				So(cls.Category, ShouldEqual, classify.CategoryDecisionNormal)
				So(cls.Multiplier, ShouldEqual, 1.00)
				So(cls.Basis, ShouldEqual, classify.BasisMethodSplit)
			})
		})

		Convey("When the decision is majority", func() {
			cls := c.Classify("a", "Decision - Majority", "48 - 44,48 - 44,47 - 47")
			So(cls.Category, ShouldEqual, classify.CategoryDecisionNormal)
			So(cls.Basis, ShouldEqual, classify.BasisMethodMajority)
		})

		Convey("When a unanimous decision has one card at margin three", func() {
			cls := c.Classify("a", "Decision - Unanimous", "47 - 48,49 - 46,47 - 48")

			Convey("Then margins are [1,3,1] and the bout is dominant", func() {
				So(cls.Margins, ShouldResemble, []int{1, 3, 1})
				So(cls.Category, ShouldEqual, classify.CategoryDecisionDominant)
				So(cls.Multiplier, ShouldEqual, 1.10)
				So(cls.Basis, ShouldEqual, classify.BasisAnyLargeMargin)
			})
		})

		Convey("When a unanimous decision has two cards at margin two", func() {
			cls := c.Classify("a", "Decision - Unanimous", "49 - 47,49 - 47,48 - 47")

			Convey("Then the two-wide-cards rule marks it dominant", func() {
				So(cls.Margins, ShouldResemble, []int{2, 2, 1})
				So(cls.Category, ShouldEqual, classify.CategoryDecisionDominant)
				So(cls.Basis, ShouldEqual, classify.BasisTwoWideCards)
			})
		})

		Convey("When a unanimous decision has only narrow cards", func() {
			cls := c.Classify("a", "Decision - Unanimous", "48 - 47,48 - 47,48 - 47")

			Convey("Then it stays a normal decision", func() {
				So(cls.Margins, ShouldResemble, []int{1, 1, 1})
				So(cls.Category, ShouldEqual, classify.CategoryDecisionNormal)
				So(cls.Multiplier, ShouldEqual, 1.00)
				So(cls.Basis, ShouldEqual, classify.BasisSmallMargins)
			})
		})

		Convey("When a unanimous decision has no parsable cards", func() {
			cls := c.Classify("a", "Decision - Unanimous", "")

			Convey("Then the method keyword decides dominance", func() {
				So(cls.Category, ShouldEqual, classify.CategoryDecisionDominant)
				So(cls.Basis, ShouldEqual, classify.BasisUnanimousNoDetails)
			})
		})

		Convey("When a generic decision has no parsable cards", func() {
			cls := c.Classify("a", "Decision", "no scores recorded")
			So(cls.Category, ShouldEqual, classify.CategoryDecisionNormal)
			So(cls.Basis, ShouldEqual, classify.BasisGenericDecision)
		})
	})
}

func TestClassifyFallbacks(t *testing.T) {
	Convey("Given a classifier with defaults", t, func() {
		c := classify.New()

		Convey("When the method is unrecognized", func() {
			cls := c.Classify("a", "Overturned", "")

			Convey("Then it classifies as other with the neutral multiplier", func() {
				So(cls.Category, ShouldEqual, classify.CategoryOther)
				So(cls.Multiplier, ShouldEqual, 1.00)
				So(cls.Basis, ShouldEqual, classify.BasisUnknownMethod)
			})
		})

		Convey("When the method text is empty", func() {
			cls := c.Classify("b", "", "")
			So(cls.Category, ShouldEqual, classify.CategoryOther)
		})
	})
}

func TestClassifyOptions(t *testing.T) {
	Convey("Given a classifier with custom multipliers", t, func() {
		c := classify.New(
			classify.WithFinishMultiplier(1.5),
			classify.WithDominantMultiplier(1.25),
			classify.WithNormalMultiplier(0.9),
		)

		Convey("Then each category carries its configured multiplier", func() {
			So(c.Classify("a", "KO/TKO", "").Multiplier, ShouldEqual, 1.5)
			So(c.Classify("a", "Decision - Unanimous", "50 - 44").Multiplier, ShouldEqual, 1.25)
			So(c.Classify("draw", "Decision - Unanimous", "").Multiplier, ShouldEqual, 0.9)
		})
	})

	Convey("Given custom dominance thresholds", t, func() {
		c := classify.New(classify.WithDominanceThresholds(5, 4, 3))

		Convey("Then previously dominant cards read as normal", func() {
			cls := c.Classify("a", "Decision - Unanimous", "49 - 46,49 - 46,49 - 46")
			So(cls.Category, ShouldEqual, classify.CategoryDecisionNormal)
			So(cls.Basis, ShouldEqual, classify.BasisSmallMargins)
		})
	})

	Convey("Given non-positive option values", t, func() {
		c := classify.New(
			classify.WithFinishMultiplier(-1),
			classify.WithDominanceThresholds(0, 0, 0),
		)

		Convey("Then defaults are retained", func() {
			So(c.Classify("a", "KO/TKO", "").Multiplier, ShouldEqual, 1.20)
			cls := c.Classify("a", "Decision - Unanimous", "50 - 46")
			So(cls.Category, ShouldEqual, classify.CategoryDecisionDominant)
		})
	})
}
