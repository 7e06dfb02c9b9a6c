// Package world owns the scene objects and drives them one frame at a time.
package world

import (
	"github.com/Faultbox/basic3d/internal/engine/camera"
	"github.com/Faultbox/basic3d/internal/engine/fade"
	"github.com/Faultbox/basic3d/internal/engine/model"
	"github.com/Faultbox/basic3d/internal/engine/primitive"
	"github.com/Faultbox/basic3d/internal/game/missile"
	"github.com/Faultbox/basic3d/internal/game/player"
)

// Renderer draws settled scene state. Implementations must not mutate the
// objects they are given.
type Renderer interface {
	SetCamera(c *camera.Camera)
	DrawPrimitive(p *primitive.Primitive)
	DrawModel(m *model.Model)
	DrawLabel(l missile.Label)
	DrawFade(alpha float64)
}

// Arena holds every object in the scene. Primitives are addressed by
// their index; holders of an ID never own the primitive.
type Arena struct {
	primitives []*primitive.Primitive
	models     []*model.Model
	cameras    []*camera.Camera
	camera     int

	player   *player.Player
	missiles []*missile.Missile
	fade     *fade.Fade

	// Update runs at the start of Process, before the camera.
	Update func(a *Arena)
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{camera: -1}
}

// AddPrimitive stores p and returns its ID.
func (a *Arena) AddPrimitive(p *primitive.Primitive) primitive.ID {
	a.primitives = append(a.primitives, p)
	return primitive.ID(len(a.primitives) - 1)
}

// Primitive returns the primitive with the given ID, or nil.
func (a *Arena) Primitive(id primitive.ID) *primitive.Primitive {
	if id < 0 || int(id) >= len(a.primitives) {
		return nil
	}
	return a.primitives[id]
}

// Primitives returns every primitive in ID order.
func (a *Arena) Primitives() []*primitive.Primitive {
	return a.primitives
}

// AddModel stores a model that is processed after the player, so it may
// follow the player's matrix.
func (a *Arena) AddModel(m *model.Model) {
	a.models = append(a.models, m)
}

// Models returns the secondary models.
func (a *Arena) Models() []*model.Model {
	return a.models
}

// AddCamera stores c and returns its index. The first camera becomes
// active.
func (a *Arena) AddCamera(c *camera.Camera) int {
	a.cameras = append(a.cameras, c)
	if a.camera < 0 {
		a.camera = 0
	}
	return len(a.cameras) - 1
}

// SetActiveCamera selects the camera used for processing and rendering.
func (a *Arena) SetActiveCamera(index int) bool {
	if index < 0 || index >= len(a.cameras) {
		return false
	}
	a.camera = index
	return true
}

// Camera returns the active camera, or nil.
func (a *Arena) Camera() *camera.Camera {
	if a.camera < 0 {
		return nil
	}
	return a.cameras[a.camera]
}

// SetPlayer installs the player.
func (a *Arena) SetPlayer(p *player.Player) {
	a.player = p
}

// Player returns the player, or nil.
func (a *Arena) Player() *player.Player {
	return a.player
}

// AddMissile stores a missile.
func (a *Arena) AddMissile(m *missile.Missile) {
	a.missiles = append(a.missiles, m)
}

// Missiles returns every missile.
func (a *Arena) Missiles() []*missile.Missile {
	return a.missiles
}

// SetFade installs the screen transition.
func (a *Arena) SetFade(f *fade.Fade) {
	a.fade = f
}

// Fade returns the screen transition, or nil.
func (a *Arena) Fade() *fade.Fade {
	return a.fade
}

// Resize forwards a new screen size to every camera.
func (a *Arena) Resize(width, height int) {
	for _, c := range a.cameras {
		c.Resize(width, height)
	}
}

// Process advances one frame: camera, primitives, player, models, then
// missiles so homing sees this frame's player position.
func (a *Arena) Process() {
	if a.Update != nil {
		a.Update(a)
	}

	if c := a.Camera(); c != nil {
		c.Process()
	}
	for _, p := range a.primitives {
		p.Process()
	}
	if a.player != nil {
		a.player.Process()
	}
	for _, m := range a.models {
		m.Process()
	}
	for _, m := range a.missiles {
		m.Process()
	}
	if a.fade != nil {
		a.fade.Process()
	}
}

// Render draws the settled frame. Opaque primitives go first so
// transparent ones blend over them.
func (a *Arena) Render(r Renderer) {
	if c := a.Camera(); c != nil {
		r.SetCamera(c)
	}

	for _, transparent := range []bool{false, true} {
		for _, p := range a.primitives {
			if p.Visible && p.Transparent == transparent {
				r.DrawPrimitive(p)
			}
		}
	}

	if a.player != nil && a.player.Visible {
		r.DrawModel(a.player.Model)
	}
	for _, m := range a.models {
		if m.Visible {
			r.DrawModel(m)
		}
	}
	for _, m := range a.missiles {
		if m.Drawable() {
			r.DrawModel(m.Model)
		}
		for _, l := range m.Labels() {
			r.DrawLabel(l)
		}
	}

	if a.fade != nil && a.fade.Active() {
		r.DrawFade(a.fade.Alpha())
	}
}
