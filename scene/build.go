package scene

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/tether/component"
	"github.com/lixenwraith/tether/core"
	"github.com/lixenwraith/tether/engine"
	"github.com/lixenwraith/tether/event"
	"github.com/lixenwraith/tether/parameter"
)

var (
	ErrEmptyName     = errors.New("node name is empty")
	ErrDuplicateName = errors.New("duplicate node name")
	ErrUnknownNode   = errors.New("unknown node")
)

// Options fills values a scene leaves unspecified
type Options struct {
	Damping          float64
	CableRestitution float64
}

// DefaultOptions returns parameter defaults
func DefaultOptions() Options {
	return Options{
		Damping:          parameter.DefaultDamping,
		CableRestitution: parameter.CableRestitution,
	}
}

// builder stages every entity of a scene so nothing is committed on error
type builder struct {
	world   *engine.World
	opts    Options
	nodes   map[string]core.Entity
	pending []*engine.EntityBuilder
}

// Build adds the scene to w and returns node name to entity
// Construction is all-or-nothing: on error no entity becomes alive
// Caller holds the world lock when a scheduler is running
func Build(w *engine.World, s *Scene, opts Options) (map[string]core.Entity, error) {
	b := &builder{
		world: w,
		opts:  opts,
		nodes: make(map[string]core.Entity, s.NodeCount()),
	}

	if err := b.anchors(s.Anchors); err != nil {
		return nil, err
	}
	if err := b.particles(s.Particles); err != nil {
		return nil, err
	}
	if err := b.springs(s); err != nil {
		return nil, err
	}
	if err := b.links(s); err != nil {
		return nil, err
	}

	for _, eb := range b.pending {
		eb.Build()
	}

	w.PushEvent(event.EventSceneLoaded, &event.SceneLoadedPayload{
		Name:     s.Name,
		Entities: len(b.pending),
	})
	return b.nodes, nil
}

func (b *builder) declare(name string) (*engine.EntityBuilder, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if _, dup := b.nodes[name]; dup {
		return nil, errors.Wrapf(ErrDuplicateName, "%q", name)
	}
	eb := b.stage()
	b.nodes[name] = eb.Entity()
	return eb, nil
}

func (b *builder) stage() *engine.EntityBuilder {
	eb := b.world.NewEntity()
	b.pending = append(b.pending, eb)
	return eb
}

func (b *builder) node(name string) (core.Entity, error) {
	e, ok := b.nodes[name]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownNode, "%q", name)
	}
	return e, nil
}

func (b *builder) pair(a, c string) (core.Entity, core.Entity, error) {
	ea, err := b.node(a)
	if err != nil {
		return 0, 0, err
	}
	ec, err := b.node(c)
	if err != nil {
		return 0, 0, err
	}
	return ea, ec, nil
}

func (b *builder) anchors(anchors []Anchor) error {
	c := &b.world.Component
	for _, a := range anchors {
		eb, err := b.declare(a.Name)
		if err != nil {
			return errors.Wrap(err, "anchor")
		}
		engine.With(eb, c.Transform, component.NewTransform(vec(a.Position)))
		if a.Radius > 0 {
			sphere, err := component.NewSphere(a.Radius)
			if err != nil {
				return errors.Wrapf(err, "anchor %q", a.Name)
			}
			engine.With(eb, c.Particle, component.NewAnchorParticle())
			engine.With(eb, c.Sphere, sphere)
		}
	}
	return nil
}

func (b *builder) particles(particles []Particle) error {
	c := &b.world.Component
	for _, p := range particles {
		eb, err := b.declare(p.Name)
		if err != nil {
			return errors.Wrap(err, "particle")
		}
		particle, err := component.NewParticle(p.Mass, vec(p.Velocity))
		if err != nil {
			return errors.Wrapf(err, "particle %q", p.Name)
		}
		damping := b.opts.Damping
		if p.Damping != nil {
			damping = *p.Damping
		}
		if err := particle.SetDamping(damping); err != nil {
			return errors.Wrapf(err, "particle %q", p.Name)
		}
		if p.Ghost {
			particle.Category = component.CategoryNonColliding
		}

		engine.With(eb, c.Transform, component.NewTransform(vec(p.Position)))
		engine.With(eb, c.Particle, particle)

		if p.Radius > 0 {
			sphere, err := component.NewSphere(p.Radius)
			if err != nil {
				return errors.Wrapf(err, "particle %q", p.Name)
			}
			engine.With(eb, c.Sphere, sphere)
		}
	}
	return nil
}

func (b *builder) springs(s *Scene) error {
	c := &b.world.Component

	for i, fs := range s.FixedSprings {
		target, err := b.node(fs.Target)
		if err != nil {
			return errors.Wrapf(err, "fixed_spring %d", i)
		}
		spring, err := component.NewFixedSpring(target, fs.K, fs.Rest)
		if err != nil {
			return errors.Wrapf(err, "fixed_spring %d", i)
		}
		eb := b.stage()
		engine.With(eb, c.Transform, component.NewTransform(vec(fs.Position)))
		engine.With(eb, c.FixedSpring, spring)
	}

	for i, ps := range s.PairedSprings {
		a, other, mode, err := b.link(ps)
		if err != nil {
			return errors.Wrapf(err, "paired_spring %d", i)
		}
		spring, err := component.NewPairedSpring(a, other, ps.K, ps.Rest, mode)
		if err != nil {
			return errors.Wrapf(err, "paired_spring %d", i)
		}
		engine.With(b.stage(), c.PairedSpring, spring)
	}

	for i, bs := range s.Bungees {
		a, other, mode, err := b.link(bs)
		if err != nil {
			return errors.Wrapf(err, "bungee %d", i)
		}
		bungee, err := component.NewBungee(a, other, bs.K, bs.Rest, mode)
		if err != nil {
			return errors.Wrapf(err, "bungee %d", i)
		}
		engine.With(b.stage(), c.Bungee, bungee)
	}

	for i, bv := range s.Buoyancy {
		target, err := b.node(bv.Target)
		if err != nil {
			return errors.Wrapf(err, "buoyancy %d", i)
		}
		buoyancy, err := component.NewBuoyancy(target, bv.MaxDepth, bv.Volume, bv.WaterHeight, bv.Density)
		if err != nil {
			return errors.Wrapf(err, "buoyancy %d", i)
		}
		proxy := component.NewTransform(vec(bv.Position))
		proxy.Scale[1] = 2 * bv.MaxDepth
		eb := b.stage()
		engine.With(eb, c.Transform, proxy)
		engine.With(eb, c.Buoyancy, buoyancy)
	}
	return nil
}

func (b *builder) link(ps PairedSpring) (core.Entity, core.Entity, component.LinkMode, error) {
	a, other, err := b.pair(ps.A, ps.B)
	if err != nil {
		return 0, 0, 0, err
	}
	mode, err := component.ParseLinkMode(ps.Mode)
	if err != nil {
		return 0, 0, 0, err
	}
	return a, other, mode, nil
}

func (b *builder) links(s *Scene) error {
	c := &b.world.Component

	for i, r := range s.Rods {
		a, other, err := b.pair(r.A, r.B)
		if err != nil {
			return errors.Wrapf(err, "rod %d", i)
		}
		rod, err := component.NewRod(a, other, r.Length)
		if err != nil {
			return errors.Wrapf(err, "rod %d", i)
		}
		engine.With(b.stage(), c.Rod, rod)
	}

	for i, cb := range s.Cables {
		a, other, err := b.pair(cb.A, cb.B)
		if err != nil {
			return errors.Wrapf(err, "cable %d", i)
		}
		restitution := b.opts.CableRestitution
		if cb.Restitution != nil {
			restitution = *cb.Restitution
		}
		cable, err := component.NewCable(a, other, cb.MaxLength, restitution)
		if err != nil {
			return errors.Wrapf(err, "cable %d", i)
		}
		engine.With(b.stage(), c.Cable, cable)
	}
	return nil
}

// Replace clears w and builds s in its place
// Entity IDs keep increasing across replacements
func Replace(w *engine.World, s *Scene, opts Options) (map[string]core.Entity, error) {
	w.Clear()
	return Build(w, s, opts)
}
