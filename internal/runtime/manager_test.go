package runtime_test

import (
	"bytes"
	"log"
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/particlelab/internal/clock"
	"github.com/san-kum/particlelab/internal/effect"
	"github.com/san-kum/particlelab/internal/input"
	"github.com/san-kum/particlelab/internal/runtime"
	"github.com/san-kum/particlelab/internal/surface"
)

const (
	width  = 800.0
	height = 600.0
)

var _ = Describe("Manager", func() {
	var (
		rec   *surface.Recorder
		frame *clock.Frame
		src   *input.Source
		logs  *bytes.Buffer
		m     *runtime.Manager
	)

	BeforeEach(func() {
		rec = surface.NewRecorder(width, height)
		frame = clock.NewFrame()
		src = input.NewSource(input.Identity())
		logs = &bytes.Buffer{}

		var err error
		m, err = runtime.New(rec, frame, runtime.Options{
			Input:  src,
			Rand:   rand.New(rand.NewSource(7)),
			Logger: log.New(logs, "", 0),
		})
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("construction", func() {
		It("rejects a missing surface", func() {
			_, err := runtime.New(nil, frame, runtime.Options{})
			Expect(err).To(MatchError(runtime.ErrNoSurface))
		})

		It("rejects a missing clock", func() {
			_, err := runtime.New(rec, nil, runtime.Options{})
			Expect(err).To(MatchError(runtime.ErrNoClock))
		})

		It("rejects typed nil collaborators", func() {
			_, err := runtime.New((*surface.Recorder)(nil), frame, runtime.Options{})
			Expect(err).To(MatchError(runtime.ErrNoSurface))

			_, err = runtime.New(rec, (*clock.Frame)(nil), runtime.Options{})
			Expect(err).To(MatchError(runtime.ErrNoClock))
		})

		It("starts idle with no subscription", func() {
			Expect(m.State()).To(Equal(runtime.Idle))
			Expect(m.Subscribed()).To(BeFalse())
			Expect(frame.Live()).To(BeZero())
			_, ok := m.Active()
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Switch", func() {
		for _, id := range effect.IDs() {
			id := id
			It("populates "+string(id)+" with its initial population", func() {
				Expect(m.Switch(id)).To(Succeed())
				Expect(m.Particles().Len()).To(Equal(effect.Population(id, width)))

				active, ok := m.Active()
				Expect(ok).To(BeTrue())
				Expect(active).To(Equal(id))
				Expect(m.State()).To(Equal(runtime.Active))
				Expect(frame.Live()).To(Equal(1))
			})
		}

		It("never holds more than one clock subscription", func() {
			r := rand.New(rand.NewSource(3))
			ids := effect.IDs()
			for i := 0; i < 200; i++ {
				switch r.Intn(4) {
				case 0:
					m.Stop()
				case 1:
					frame.Fire()
				default:
					Expect(m.Switch(ids[r.Intn(len(ids))])).To(Succeed())
				}
				Expect(frame.Live()).To(BeNumerically("<=", 1))
				Expect(frame.Live() == 1).To(Equal(m.State() == runtime.Active))
			}
		})

		It("does not double the frame rate across repeated switches", func() {
			for _, id := range effect.IDs() {
				Expect(m.Switch(id)).To(Succeed())
			}
			Expect(frame.Fire()).To(Equal(1))
			Expect(m.Ticks()).To(Equal(uint64(1)))
		})

		It("drops the previous effect's pointer handlers", func() {
			Expect(m.Switch(effect.Connecting)).To(Succeed())
			Expect(src.Live(input.Move)).To(Equal(1))

			Expect(m.Switch(effect.Floating)).To(Succeed())
			Expect(src.Live(input.Move)).To(BeZero())

			src.Emit(input.Raw{Kind: input.Move, X: 50, Y: 60})
			Expect(m.Pointer().X).To(BeZero())
			Expect(m.Pointer().Y).To(BeZero())
		})

		It("does not spawn trail particles after switching to burst", func() {
			Expect(m.Switch(effect.MouseTrail)).To(Succeed())
			Expect(m.Switch(effect.ExplosionBurst)).To(Succeed())

			src.Emit(input.Raw{Kind: input.Move, X: 10, Y: 10})
			Expect(m.Particles().Len()).To(BeZero())

			src.Emit(input.Raw{Kind: input.Click, X: 10, Y: 10})
			Expect(m.Particles().Len()).To(Equal(80))
			Expect(src.Live(input.Click)).To(Equal(1))
		})

		It("discards the previous container and pointer", func() {
			Expect(m.Switch(effect.NetworkRepulse)).To(Succeed())
			old := m.Particles()
			src.Emit(input.Raw{Kind: input.Move, X: 30, Y: 40})
			Expect(m.Pointer().X).To(Equal(30.0))

			Expect(m.Switch(effect.NetworkRepulse)).To(Succeed())
			Expect(m.Particles()).NotTo(BeIdenticalTo(old))
			Expect(m.Pointer().X).To(BeZero())
			Expect(m.Pointer().Y).To(BeZero())
		})

		It("clears the surface on switch", func() {
			Expect(m.Switch(effect.Floating)).To(Succeed())
			frame.Fire()
			clears := rec.Clears
			Expect(m.Switch(effect.SparkleStars)).To(Succeed())
			Expect(rec.Clears).To(Equal(clears + 1))
			Expect(rec.Ops).To(BeEmpty())
		})

		It("logs the switch", func() {
			Expect(m.Switch(effect.GravityOrbs)).To(Succeed())
			Expect(logs.String()).To(ContainSubstring("switch gravityOrbs"))
		})

		Context("with an unknown identifier", func() {
			It("fails fast from idle and stays idle", func() {
				Expect(m.Switch("plasma")).To(MatchError(runtime.ErrUnknownEffect))
				Expect(m.State()).To(Equal(runtime.Idle))
				Expect(frame.Live()).To(BeZero())
				Expect(rec.Clears).To(BeZero())
			})

			It("leaves a running effect untouched", func() {
				Expect(m.Switch(effect.Fireflies)).To(Succeed())
				before := m.Particles()

				Expect(m.Switch("plasma")).To(MatchError(runtime.ErrUnknownEffect))
				active, _ := m.Active()
				Expect(active).To(Equal(effect.Fireflies))
				Expect(m.Particles()).To(BeIdenticalTo(before))
				Expect(frame.Live()).To(Equal(1))
			})
		})
	})

	Describe("Stop", func() {
		It("is safe to call twice and leaves the container empty", func() {
			Expect(m.Switch(effect.SparkleStars)).To(Succeed())

			m.Stop()
			Expect(m.Particles().Len()).To(BeZero())
			Expect(m.State()).To(Equal(runtime.Idle))

			m.Stop()
			Expect(m.Particles().Len()).To(BeZero())
			Expect(m.State()).To(Equal(runtime.Idle))
			Expect(frame.Live()).To(BeZero())
		})

		It("removes the effect's handlers", func() {
			Expect(m.Switch(effect.ExplosionBurst)).To(Succeed())
			m.Stop()
			Expect(src.Live(input.Click)).To(BeZero())
		})

		It("prevents any further tick", func() {
			Expect(m.Switch(effect.Floating)).To(Succeed())
			frame.Fire()
			ticks := m.Ticks()

			m.Stop()
			Expect(frame.Fire()).To(BeZero())
			Expect(m.Ticks()).To(Equal(ticks))
			Expect(rec.Ops).To(BeEmpty())
		})
	})

	Describe("tick", func() {
		It("clears and redraws once per frame", func() {
			Expect(m.Switch(effect.Floating)).To(Succeed())
			for i := 0; i < 5; i++ {
				clears := rec.Clears
				Expect(frame.Fire()).To(Equal(1))
				Expect(rec.Clears).To(Equal(clears + 1))
				Expect(rec.Filter(surface.OpCircle)).To(HaveLen(80))
			}
			Expect(m.Ticks()).To(Equal(uint64(5)))
		})

		It("resets transient paint state before each update", func() {
			Expect(m.Switch(effect.Connecting)).To(Succeed())
			paint := rec.Paint()
			paint.Alpha = 0.1
			paint.LineWidth = 7
			paint.Blur = 20

			frame.Fire()
			lines := rec.Filter(surface.OpLine)
			Expect(lines).NotTo(BeEmpty())
			for _, op := range lines {
				Expect(op.Paint.LineWidth).To(Equal(1.0))
				Expect(op.Paint.Alpha).To(Equal(1.0))
			}
		})

		It("feeds a monotonic clock to time-driven effects", func() {
			now := time.Unix(100, 0)
			clocked, err := runtime.New(rec, frame, runtime.Options{
				Rand: rand.New(rand.NewSource(1)),
				Now:  func() time.Time { return now },
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(clocked.Switch(effect.WaveField)).To(Succeed())

			frame.Fire()
			first := clocked.Particles().At(0).X
			frame.Fire()
			Expect(clocked.Particles().At(0).X).To(Equal(first))

			now = now.Add(500 * time.Millisecond)
			frame.Fire()
			Expect(clocked.Particles().At(0).X).NotTo(Equal(first))
		})
	})

	Describe("pointer scenarios", func() {
		It("spawns six trail particles at the translated position", func() {
			src.SetTransform(input.Transform{OffsetX: 8, OffsetY: 16, ScaleX: 2, ScaleY: 4})
			Expect(m.Switch(effect.MouseTrail)).To(Succeed())

			src.Emit(input.Raw{Kind: input.Move, X: 58, Y: 41})
			Expect(m.Particles().Len()).To(Equal(6))
			for _, p := range m.Particles().Items() {
				Expect(p.X).To(Equal(100.0))
				Expect(p.Y).To(Equal(100.0))
				Expect(p.Life).To(Equal(1.0))
			}
		})

		It("clears every burst particle after 67 frames", func() {
			Expect(m.Switch(effect.ExplosionBurst)).To(Succeed())
			src.Emit(input.Raw{Kind: input.Click, X: 400, Y: 300})
			Expect(m.Particles().Len()).To(Equal(80))

			for i := 0; i < 67; i++ {
				frame.Fire()
			}
			Expect(m.Particles().Len()).To(BeZero())
			Expect(m.State()).To(Equal(runtime.Active))
		})
	})
})
