package world

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/basic3d/internal/assets"
	"github.com/Faultbox/basic3d/internal/config"
	"github.com/Faultbox/basic3d/internal/engine/camera"
	"github.com/Faultbox/basic3d/internal/engine/fade"
	"github.com/Faultbox/basic3d/internal/engine/input"
	"github.com/Faultbox/basic3d/internal/engine/model"
	"github.com/Faultbox/basic3d/internal/engine/posture"
	"github.com/Faultbox/basic3d/internal/engine/primitive"
	"github.com/Faultbox/basic3d/internal/engine/timer"
	"github.com/Faultbox/basic3d/internal/game/missile"
	"github.com/Faultbox/basic3d/internal/game/player"
	"github.com/Faultbox/basic3d/internal/logger"
	"github.com/Faultbox/basic3d/pkg/math"
)

// Scene is a built arena with the controllers tuning can reach.
type Scene struct {
	*Arena

	Follow *camera.Follow
	Ground primitive.ID

	input *input.State
	cfg   *config.Config
}

// builder carries shared state through the setup steps.
type builder struct {
	cfg      *config.Config
	loader   assets.Loader
	textures map[string]uint32
}

// Build assembles the demo scene. Any failure aborts the whole scene.
func Build(cfg *config.Config, loader assets.Loader, clock timer.Clock, state *input.State, width, height int) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := &builder{cfg: cfg, loader: loader, textures: map[string]uint32{}}
	s := &Scene{Arena: NewArena(), input: state, cfg: cfg}

	pl := player.New(cfg.Player, s.Arena, state)
	if err := pl.Load(loader, cfg.World.Player); err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}
	s.SetPlayer(pl)

	ground, err := b.ground()
	if err != nil {
		return nil, fmt.Errorf("ground: %w", err)
	}
	s.Ground = s.AddPrimitive(ground)

	sphere, err := b.sphere()
	if err != nil {
		return nil, fmt.Errorf("sphere: %w", err)
	}
	sphereID := s.AddPrimitive(sphere)
	if cfg.World.Sphere.Collide {
		pl.AddCollision(sphereID)
	}

	steps, err := b.steps()
	if err != nil {
		return nil, fmt.Errorf("steps: %w", err)
	}
	for _, cube := range steps {
		pl.AddCollision(s.AddPrimitive(cube))
	}
	pl.AddCollision(s.Ground)
	pl.StandOn(s.Ground)

	cam, follow := b.camera(pl, state, width, height)
	s.AddCamera(cam)
	s.Follow = follow

	trees, err := b.trees(cam)
	if err != nil {
		return nil, fmt.Errorf("trees: %w", err)
	}
	for _, tree := range trees {
		s.AddPrimitive(tree)
	}

	if cfg.World.Gun.Enabled {
		gun, err := b.gun(pl)
		if err != nil {
			return nil, fmt.Errorf("gun: %w", err)
		}
		s.AddModel(gun)
	}

	m, explosion, err := b.missile(clock, pl, cam)
	if err != nil {
		return nil, fmt.Errorf("missile: %w", err)
	}
	s.AddPrimitive(explosion)
	s.AddMissile(m)

	s.SetFade(fade.New(clock))
	s.Update = s.controls

	logger.Info("world built",
		zap.Int("primitives", len(s.Primitives())),
		zap.Int("models", len(s.Models())),
		zap.Int("missiles", len(s.Missiles())))
	return s, nil
}

// Apply swaps in new tuning. Layout and assets are only read by Build.
func (s *Scene) Apply(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg
	s.Player().Settings = cfg.Player
	for _, m := range s.Missiles() {
		m.Settings = cfg.Missile
	}
	s.Follow.Movement = cfg.Camera.Movement
	s.Follow.Rotation = cfg.Camera.Rotation
	s.Follow.SphereRadius = cfg.Camera.SphereRadius
	logger.Debug("tuning applied")
	return nil
}

// controls handles scene-level actions before the frame is processed.
func (s *Scene) controls(a *Arena) {
	if s.input.Pressed(input.Fire) {
		s.fire()
	}
	if s.input.Pressed(input.FadeIn) {
		a.Fade().In(s.cfg.World.Fade.Millis)
	}
	if s.input.Pressed(input.FadeOut) {
		a.Fade().Out(s.cfg.World.Fade.Millis)
	}
}

// fire arms the first idle missile on the ground ahead of the player.
func (s *Scene) fire() {
	pl := s.Player()
	point := pl.Position.Add(pl.Direction.Scale(s.cfg.World.Missile.FireDistance)).XZ().Lift(0)

	for _, m := range s.Missiles() {
		if m.IsStandBy() {
			m.Fire(point)
			return
		}
	}
}

func vector(v config.Vec3) math.Vector4 {
	return math.NewVector4(v[0], v[1], v[2])
}

// texture loads path once and shares the handle between primitives.
func (b *builder) texture(path string) (uint32, error) {
	if path == "" {
		return 0, nil
	}
	if h, ok := b.textures[path]; ok {
		return h, nil
	}
	h, err := b.loader.LoadTexture(path)
	if err != nil {
		return 0, err
	}
	b.textures[path] = uint32(h)
	return uint32(h), nil
}

func (b *builder) create(p *primitive.Primitive, texture string) error {
	h, err := b.texture(texture)
	if err != nil {
		return err
	}
	p.Texture = h
	return p.Create()
}

func (b *builder) ground() (*primitive.Primitive, error) {
	c := b.cfg.World.Ground
	p := primitive.NewPlane(c.Size, c.Division)
	if err := b.create(p, c.Texture); err != nil {
		return nil, err
	}
	return p, nil
}

func (b *builder) sphere() (*primitive.Primitive, error) {
	c := b.cfg.World.Sphere
	p := primitive.NewSphere(c.Radius, c.Division)
	if err := b.create(p, c.Texture); err != nil {
		return nil, err
	}
	p.SetPosition(vector(c.Position))

	angle := 0.0
	p.Update = func(ps *posture.Posture) {
		ps.Rotation.Y = angle
		angle += c.Spin
	}
	return p, nil
}

func (b *builder) steps() ([]*primitive.Primitive, error) {
	c := b.cfg.World.Steps
	cubes := make([]*primitive.Primitive, 0, len(c.Steps))
	for i, step := range c.Steps {
		cube := primitive.NewCube(c.Size)
		if err := b.create(cube, c.Texture); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		cube.SetUniformScale(step.Scale)
		cube.SetPosition(vector(step.Position))
		cube.Process()
		cubes = append(cubes, cube)
	}
	return cubes, nil
}

func (b *builder) camera(target camera.Tracked, state *input.State, width, height int) (*camera.Camera, *camera.Follow) {
	c := b.cfg.Camera
	cam := camera.New(width, height)
	cam.Position = vector(c.Position)
	cam.Target = vector(c.Target)
	cam.FOV = math.DegreeToRadian(c.FOV)
	cam.Near = c.Near
	cam.Far = c.Far

	follow := camera.NewFollow(target, state, c.Movement, c.Rotation, c.SphereRadius)
	follow.Attach(cam)
	return cam, follow
}

func (b *builder) trees(cam *camera.Camera) ([]*primitive.Primitive, error) {
	c := b.cfg.World.Trees
	trees := make([]*primitive.Primitive, 0, len(c.Positions))
	for i, position := range c.Positions {
		tree := primitive.NewPlane(c.Size, c.Division)
		if err := b.create(tree, c.Texture); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		tree.SetRotation(vector(c.Rotation))
		tree.SetPosition(vector(position))
		tree.Lighting = false
		tree.Transparent = true

		if c.Billboard {
			tree.UpdateMatrix = false
			tree.UpdateAfter = billboard(cam)
		}
		trees = append(trees, tree)
	}
	return trees, nil
}

// billboard turns a plane toward the camera. The plane's own rotation is
// applied first because its vertices lie in XZ.
func billboard(cam *camera.Camera) posture.Hook {
	return func(p *posture.Posture) {
		p.Compose()
		p.Matrix = p.ScaleMatrix.
			Mul(p.RotateMatrix).
			Mul(cam.BillboardMatrix()).
			Mul(p.TransferMatrix)
	}
}

func (b *builder) gun(pl *player.Player) (*model.Model, error) {
	c := b.cfg.World.Gun
	gun := model.New()
	if err := gun.Load(b.loader, c.Model); err != nil {
		return nil, err
	}

	offset := math.NewScale(c.Scale, c.Scale, c.Scale).
		Mul(math.NewRotateY(c.Rotate[1])).
		Mul(math.NewRotateX(c.Rotate[0])).
		Mul(math.NewTranslate(c.Offset[0], c.Offset[1], c.Offset[2]))

	gun.UpdateMatrix = false
	gun.UpdateAfter = func(p *posture.Posture) {
		p.Matrix = offset.Mul(pl.Matrix)
	}
	return gun, nil
}

func (b *builder) missile(clock timer.Clock, target missile.Target, cam *camera.Camera) (*missile.Missile, *primitive.Primitive, error) {
	c := b.cfg.World.Missile
	explosion := primitive.NewSphere(c.ExplosionRadius, c.ExplosionDivision)
	if err := b.create(explosion, c.ExplosionTexture); err != nil {
		return nil, nil, fmt.Errorf("explosion: %w", err)
	}
	explosion.Transparent = true

	m, err := missile.New(b.cfg.Missile, clock, target, explosion, cam)
	if err != nil {
		return nil, nil, err
	}
	if err := m.Load(b.loader, c.Model); err != nil {
		return nil, nil, err
	}
	return m, explosion, nil
}
