package quasar_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/quasar/internal/quasar"
)

func distance(p quasar.Particle, c quasar.Vec2) float64 {
	return float64(p.Position.Sub(c).Len())
}

var _ = Describe("Step", func() {
	var params quasar.StepParams

	BeforeEach(func() {
		params = quasar.DefaultStepParams()
	})

	Describe("softening floor", func() {
		It("never uses a squared distance below the floor", func() {
			a := params.Attractor
			for _, pos := range []quasar.Vec2{
				a.Center,
				{a.Center.X + 1, a.Center.Y},
				{a.Center.X + 10, a.Center.Y + 10},
				{a.Center.X - 14, a.Center.Y},
				{a.Center.X + 300, a.Center.Y - 200},
			} {
				_, r2 := a.Acceleration(pos, params.SofteningR2)
				Expect(r2).To(BeNumerically(">=", params.SofteningR2))
			}
		})

		It("leaves the true squared distance alone outside the floor", func() {
			a := params.Attractor
			_, r2 := a.Acceleration(quasar.Vec2{X: a.Center.X + 30, Y: a.Center.Y + 40}, params.SofteningR2)
			Expect(r2).To(BeNumerically("==", 2500))
		})

		It("stays finite for a particle sitting exactly on the centre", func() {
			buf, err := quasar.NewBuffer(1)
			Expect(err).NotTo(HaveOccurred())
			buf.Set(0, quasar.Particle{Position: params.Attractor.Center})

			for i := 0; i < 1000; i++ {
				quasar.Step(buf, params)
			}
			Expect(buf.IsValid()).To(BeTrue())
		})

		It("stays finite for a swarm repeatedly plunging through the centre", func() {
			rng := rand.New(rand.NewSource(7))
			init := quasar.DefaultInitParams(500)
			init.Spin = 0
			buf, err := quasar.Initialize(init, rng)
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 2000; i++ {
				quasar.Step(buf, params)
			}
			Expect(buf.IsValid()).To(BeTrue())
		})
	})

	Describe("integration order", func() {
		It("moves the position with the freshly updated velocity", func() {
			buf, _ := quasar.NewBuffer(1)
			start := quasar.Vec2{X: params.Attractor.Center.X + 100, Y: params.Attractor.Center.Y}
			buf.Set(0, quasar.Particle{Position: start})

			quasar.Step(buf, params)

			acc, _ := params.Attractor.Acceleration(start, params.SofteningR2)
			wantV := acc.Scale(params.Dt)
			wantP := start.Add(wantV.Scale(params.Dt))
			got := buf.At(0)
			Expect(got.Velocity.X).To(BeNumerically("~", wantV.X, 1e-5))
			Expect(got.Velocity.Y).To(BeNumerically("~", wantV.Y, 1e-5))
			Expect(got.Position.X).To(BeNumerically("~", wantP.X, 1e-4))
			Expect(got.Position.Y).To(BeNumerically("~", wantP.Y, 1e-4))
			// explicit Euler would leave the position untouched on the first frame
			Expect(got.Position.X).To(BeNumerically("<", start.X))
		})
	})

	Describe("colour threshold", func() {
		DescribeTable("classifies speed against 50",
			func(speed float32, want quasar.RGB8) {
				Expect(quasar.Classify(speed, 50)).To(Equal(want))
			},
			Entry("just below", float32(49.9), quasar.Cold),
			Entry("exactly on the boundary", float32(50.0), quasar.Cold),
			Entry("just above", float32(50.1), quasar.Hot),
			Entry("at rest", float32(0), quasar.Cold),
		)

		It("recolours particles from their post-step velocity", func() {
			buf, _ := quasar.NewBuffer(2)
			far := quasar.Vec2{X: params.Attractor.Center.X + 1000, Y: params.Attractor.Center.Y}
			buf.Set(0, quasar.Particle{Position: far, Velocity: quasar.Vec2{Y: 80}, Color: quasar.Cold})
			buf.Set(1, quasar.Particle{Position: far, Velocity: quasar.Vec2{Y: 10}, Color: quasar.Hot})

			quasar.Step(buf, params)

			Expect(buf.At(0).Color).To(Equal(quasar.Hot))
			Expect(buf.At(1).Color).To(Equal(quasar.Cold))
		})
	})

	Describe("determinism and independence", func() {
		run := func(seed int64, steps int) *quasar.Buffer {
			buf, err := quasar.Initialize(quasar.DefaultInitParams(256), rand.New(rand.NewSource(seed)))
			Expect(err).NotTo(HaveOccurred())
			for i := 0; i < steps; i++ {
				quasar.Step(buf, params)
			}
			return buf
		}

		It("reproduces bit-identical buffers for the same seed", func() {
			a, b := run(99, 120), run(99, 120)
			for i := 0; i < a.Len(); i++ {
				Expect(a.At(i)).To(Equal(b.At(i)))
			}
		})

		It("gives the same result regardless of update order", func() {
			buf, _ := quasar.Initialize(quasar.DefaultInitParams(128), rand.New(rand.NewSource(3)))
			forward := buf.Clone()
			backward := buf.Clone()

			quasar.Step(forward, params)
			for i := backward.Len() - 1; i >= 0; i-- {
				quasar.StepRange(backward, i, i+1, params)
			}

			for i := 0; i < buf.Len(); i++ {
				Expect(backward.At(i)).To(Equal(forward.At(i)))
			}
		})
	})

	Describe("orbit sanity", func() {
		It("keeps a circular orbit within a band over several revolutions", func() {
			const d0 = 100.0
			a := params.Attractor
			v := float32(math.Sqrt(float64(a.G*a.Mass) / d0))

			buf, _ := quasar.NewBuffer(1)
			buf.Set(0, quasar.Particle{
				Position: quasar.Vec2{X: a.Center.X + d0, Y: a.Center.Y},
				Velocity: quasar.Vec2{Y: v},
			})

			// one revolution is roughly 750 frames at dt=1/60
			for i := 0; i < 3000; i++ {
				quasar.Step(buf, params)
				r := distance(buf.At(0), a.Center)
				Expect(r).To(BeNumerically("~", d0, 10))
			}
		})
	})

	Describe("reference scenario", func() {
		It("places four particles in the jitter square and moves each of them", func() {
			init := quasar.InitParams{
				Count:  4,
				Center: quasar.Vec2{X: 400, Y: 300},
				Jitter: 100,
				Spin:   0.23,
			}
			buf, err := quasar.Initialize(init, rand.New(rand.NewSource(2024)))
			Expect(err).NotTo(HaveOccurred())
			Expect(buf.Len()).To(Equal(4))

			before := buf.Clone()
			for i := 0; i < buf.Len(); i++ {
				p := buf.At(i).Position
				Expect(p.X).To(BeNumerically(">=", 300))
				Expect(p.X).To(BeNumerically("<=", 500))
				Expect(p.Y).To(BeNumerically(">=", 200))
				Expect(p.Y).To(BeNumerically("<=", 400))
			}

			step := quasar.StepParams{
				Dt:          0.016,
				Attractor:   quasar.Attractor{Center: init.Center, Mass: 250, G: 1000},
				SofteningR2: 200,
				HotSpeed:    50,
			}
			quasar.Step(buf, step)

			for i := 0; i < buf.Len(); i++ {
				delta := buf.At(i).Position.Sub(before.At(i).Position)
				Expect(delta.IsFinite()).To(BeTrue())
				Expect(delta.Len2()).To(BeNumerically(">", 0))
			}
		})
	})

	Describe("copy independence", func() {
		It("does not change the original when the clone is stepped", func() {
			orig, _ := quasar.Initialize(quasar.DefaultInitParams(64), rand.New(rand.NewSource(1)))
			snapshot := make([]quasar.Particle, orig.Len())
			for i := range snapshot {
				snapshot[i] = orig.At(i)
			}

			clone := orig.Clone()
			for i := 0; i < 10; i++ {
				quasar.Step(clone, params)
			}

			for i := range snapshot {
				Expect(orig.At(i)).To(Equal(snapshot[i]))
			}
			Expect(clone.At(0)).NotTo(Equal(snapshot[0]))
		})
	})
})
