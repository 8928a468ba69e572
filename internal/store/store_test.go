package store_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/poitune/internal/config"
	"github.com/san-kum/poitune/internal/store"
)

var _ = Describe("Store", func() {
	var s *store.Store

	BeforeEach(func() {
		s = store.New(nil)
	})

	It("starts from the defaults", func() {
		Expect(s.Params()).To(Equal(*config.DefaultParams()))
		Expect(s.Revision()).To(BeZero())
		Expect(s.Sync()).To(BeFalse())
	})

	It("hands out copies", func() {
		p := s.Params()
		p.Left.Rotation.RadiusHand = 1
		Expect(s.Params().Left.Rotation.RadiusHand).To(Equal(70.0))
	})

	Describe("sync", func() {
		BeforeEach(func() {
			s.UpdateLeft(func(l *config.Side) { l.Rotation.AngleHand = 0.3 })
			s.SetSync(true)
		})

		It("mirrors left edits onto right with a half turn", func() {
			angle := 0.3
			s.UpdateLeft(func(l *config.Side) { l.Rotation.RadiusHand = 50 })

			p := s.Params()
			Expect(p.Right.Rotation.RadiusHand).To(Equal(50.0))
			Expect(p.Right.Rotation.AngleHand).To(Equal(angle + math.Pi))
			Expect(p.Right.Rotation.AnglePoi).To(Equal(p.Left.Rotation.AnglePoi + math.Pi))
			Expect(p.Right.Style).To(Equal(p.Left.Style))
		})

		It("copies every other field verbatim", func() {
			left := s.Params().Left
			left.Rotation.OmegaPoi = -7
			left.ObjectColor.Poi = "#123456"
			s.SetLeft(left)

			right := s.Params().Right
			Expect(right.Rotation.OmegaPoi).To(Equal(-7.0))
			Expect(right.ObjectColor.Poi).To(Equal("#123456"))
		})

		It("never mirrors right edits back", func() {
			before := s.Params().Left
			s.UpdateRight(func(r *config.Side) { r.Rotation.RadiusPoi = 10 })

			Expect(s.Params().Left).To(Equal(before))
			Expect(s.Params().Right.Rotation.RadiusPoi).To(Equal(10.0))
		})

		It("does not reconcile existing sides when toggled", func() {
			s.SetSync(false)
			s.UpdateRight(func(r *config.Side) { r.Rotation.OmegaHand = 9 })
			s.SetSync(true)

			Expect(s.Params().Right.Rotation.OmegaHand).To(Equal(9.0))
		})
	})

	Describe("boundary coercion", func() {
		It("turns NaN into zero", func() {
			s.UpdateLeft(func(l *config.Side) { l.Rotation.OmegaHand = math.NaN() })
			Expect(s.Params().Left.Rotation.OmegaHand).To(BeZero())
		})

		It("clamps common settings inclusively", func() {
			s.UpdateCommon(func(c *config.Common) {
				c.Afterimage = 3
				c.SpeedRate = 0
				c.NumberOfLocus = 7
			})

			c := s.Params().Common
			Expect(c.Afterimage).To(Equal(1.0))
			Expect(c.SpeedRate).To(Equal(config.SpeedRateBounds.Min))
			Expect(c.NumberOfLocus).To(Equal(2))
		})
	})

	Describe("scenarios", func() {
		It("loads the same record every time", func() {
			Expect(s.ApplyScenario("Clover")).To(Succeed())
			first := s.Params()

			s.UpdateLeft(func(l *config.Side) { l.Rotation.RadiusHand = 3 })
			Expect(s.ApplyScenario("Clover")).To(Succeed())

			Expect(s.Params()).To(Equal(first))
			Expect(s.Scenario()).To(Equal("Clover"))
		})

		It("replaces both sides and turns sync off", func() {
			s.SetSync(true)
			Expect(s.ApplyScenario("Pentagram")).To(Succeed())

			sc, err := config.GetScenario("Pentagram")
			Expect(err).NotTo(HaveOccurred())

			p := s.Params()
			Expect(p.Left).To(Equal(sc.Left))
			Expect(p.Right).To(Equal(sc.Right))
			Expect(p.Sync).To(BeFalse())
		})

		It("keeps common settings the scenario does not override", func() {
			s.UpdateCommon(func(c *config.Common) { c.Afterimage = 0.5 })
			Expect(s.ApplyScenario("Cat Eye")).To(Succeed())

			Expect(s.Params().Common.Afterimage).To(Equal(0.5))
		})

		It("rejects unknown names and leaves the store alone", func() {
			before := s.Revision()
			err := s.ApplyScenario("Triquetra")

			Expect(err).To(MatchError(config.ErrUnknownScenario))
			Expect(s.Revision()).To(Equal(before))
		})
	})

	It("resets to the defaults", func() {
		Expect(s.ApplyScenario("Isolation")).To(Succeed())
		s.SetSync(true)
		s.Reset()

		Expect(s.Params()).To(Equal(*config.DefaultParams()))
		Expect(s.Scenario()).To(BeEmpty())
	})

	It("bumps the revision on every write", func() {
		s.SetSync(true)
		s.SetCommon(config.DefaultCommon())
		s.SetRight(config.DefaultParams().Right)
		Expect(s.Revision()).To(Equal(uint64(3)))
	})
	Describe("actions", func() {
		It("walks the catalog in order and wraps", func() {
			names := config.ListScenarios()

			Expect(s.Do(store.NextScenario)).To(Succeed())
			Expect(s.Scenario()).To(Equal(names[0]))

			Expect(s.Do(store.PrevScenario)).To(Succeed())
			Expect(s.Scenario()).To(Equal(names[len(names)-1]))

			Expect(s.Do(store.NextScenario)).To(Succeed())
			Expect(s.Scenario()).To(Equal(names[0]))
		})

		It("starts from the end when stepping back from custom parameters", func() {
			names := config.ListScenarios()
			Expect(s.Do(store.PrevScenario)).To(Succeed())
			Expect(s.Scenario()).To(Equal(names[len(names)-1]))
		})

		It("edits common settings within bounds", func() {
			for i := 0; i < 10; i++ {
				Expect(s.Do(store.LongerAfterimage)).To(Succeed())
			}
			Expect(s.Do(store.OneLocus)).To(Succeed())
			Expect(s.Do(store.ToggleGrid)).To(Succeed())
			Expect(s.Do(store.Faster)).To(Succeed())

			c := s.Params().Common
			Expect(c.Afterimage).To(Equal(1.0))
			Expect(c.NumberOfLocus).To(Equal(1))
			Expect(c.Grid.Show).To(BeFalse())
			Expect(c.SpeedRate).To(BeNumerically("~", store.SpeedFactor, 1e-12))
		})

		It("mirrors radius edits when sync is on", func() {
			Expect(s.Do(store.ToggleSync)).To(Succeed())
			Expect(s.Do(store.ShrinkRadius)).To(Succeed())

			p := s.Params()
			Expect(p.Left.Rotation.RadiusHand).To(Equal(70 - store.RadiusStep))
			Expect(p.Right.Rotation.RadiusHand).To(Equal(p.Left.Rotation.RadiusHand))
		})

		It("resets", func() {
			Expect(s.Do(store.GrowRadius)).To(Succeed())
			Expect(s.Do(store.Reset)).To(Succeed())
			Expect(s.Params()).To(Equal(*config.DefaultParams()))
		})
	})
})
