// Package viewer wires the window, asset pipeline, scene and input
// handling into the interactive model viewer.
package viewer

import (
	"fmt"
	gomath "math"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/AIEngineerX/wanshitong/internal/assets"
	"github.com/AIEngineerX/wanshitong/internal/config"
	"github.com/AIEngineerX/wanshitong/internal/engine/camera"
	"github.com/AIEngineerX/wanshitong/internal/engine/input"
	"github.com/AIEngineerX/wanshitong/internal/engine/scene"
	"github.com/AIEngineerX/wanshitong/internal/engine/texture"
	"github.com/AIEngineerX/wanshitong/internal/engine/window"
	"github.com/AIEngineerX/wanshitong/internal/logger"
	"github.com/AIEngineerX/wanshitong/pkg/formats"
	"github.com/AIEngineerX/wanshitong/pkg/math"
)

// Fixed directional light, roughly over the viewer's right shoulder.
var lightDir = math.Vec3{X: 0.5, Y: 0.8, Z: 0.6}

// StatusFunc receives human-readable load progress messages.
type StatusFunc func(msg string)

// Viewer is the interactive model viewer: one window, one model, an
// orbit camera and the pointer controller driving it.
type Viewer struct {
	cfg *config.Config
	win *window.Window

	model  *scene.Model
	cam    *camera.Orbit
	ctl    *input.Controller
	loader *assets.Loader

	status    StatusFunc
	modelName string

	width, height int
	running       bool
}

// New creates the window and OpenGL state for a viewer. The model is
// loaded separately with Load.
func New(cfg *config.Config, status StatusFunc) (*Viewer, error) {
	v := &Viewer{
		cfg:    cfg,
		loader: assets.NewLoader(cfg.Assets.FetchTimeout, cfg.Assets.Cache),
		status: status,
		width:  cfg.Graphics.Width,
		height: cfg.Graphics.Height,
	}

	win, err := window.New(window.Config{
		Title:      "wanshitong",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, err
	}
	v.win = win

	if err := gl.Init(); err != nil {
		win.Close()
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	bg := cfg.Viewer.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1.0)

	cam := camera.New()
	cam.MinDistance = cfg.Camera.MinDistance
	cam.MaxDistance = cfg.Camera.MaxDistance
	cam.RotateSpeed = cfg.Camera.RotateSpeed
	cam.PanSpeed = cfg.Camera.PanSpeed
	v.cam = cam

	ctl := input.New(cam)
	ctl.ZoomInStep = cfg.Camera.ZoomInStep
	ctl.ZoomOutStep = cfg.Camera.ZoomOutStep
	v.ctl = ctl

	logger.Info("viewer initialized",
		zap.String("gl_version", gl.GoStr(gl.GetString(gl.VERSION))),
	)

	return v, nil
}

// Load runs the sequential asset pipeline: mesh, then material, then
// texture. Mesh and material document failures abort the load; a
// texture failure degrades to untextured rendering.
func (v *Viewer) Load() error {
	modelRef := v.cfg.Viewer.Model
	v.modelName = assets.BaseName(modelRef)

	v.setStatus(fmt.Sprintf("Loading model %s...", v.modelName))
	data, err := v.loader.Fetch(modelRef)
	if err != nil {
		return fmt.Errorf("loading model: %w", err)
	}

	mesh, err := formats.ParseOBJ(data)
	if err != nil {
		return fmt.Errorf("parsing model %s: %w", v.modelName, err)
	}
	mesh.CenterAtOrigin()

	logger.Info("model parsed",
		zap.String("model", v.modelName),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
	)

	model, err := scene.New(mesh)
	if err != nil {
		return err
	}
	v.model = model

	if err := v.loadTexture(modelRef, mesh); err != nil {
		return err
	}

	v.cam.Frame(math.Vec3{}, mesh.Bounds.Radius()*v.cfg.Camera.Framing)

	v.setStatus(v.modelName)
	return nil
}

// loadTexture resolves and loads the material document and its diffuse
// map. Only failures of the material document itself are fatal; a
// missing or undecodable texture leaves the model untextured.
func (v *Viewer) loadTexture(modelRef string, mesh *formats.Mesh) error {
	fallback := texture.Fallback()
	v.model.SetFallbackTexture(fallback)

	materialRef := v.cfg.Viewer.Material
	if materialRef == "" {
		materialRef = assets.Resolve(modelRef, mesh.MaterialLib)
	}
	if materialRef == "" {
		logger.Info("no material reference, rendering untextured")
		return nil
	}

	v.setStatus(fmt.Sprintf("Loading material %s...", assets.BaseName(materialRef)))
	matData, err := v.loader.Fetch(materialRef)
	if err != nil {
		return fmt.Errorf("loading material: %w", err)
	}

	material := formats.ParseMTL(matData)
	if material.DiffuseMap == "" {
		logger.Info("material has no diffuse map", zap.String("material", materialRef))
		return nil
	}

	textureRef := assets.Resolve(materialRef, material.DiffuseMap)
	v.setStatus(fmt.Sprintf("Loading texture %s...", assets.BaseName(textureRef)))

	texData, err := v.loader.Fetch(textureRef)
	if err != nil {
		logger.Warn("texture fetch failed, rendering untextured",
			zap.String("texture", textureRef),
			zap.Error(err),
		)
		return nil
	}

	img, err := texture.Decode(texData)
	if err != nil {
		logger.Warn("texture decode failed, rendering untextured",
			zap.String("texture", textureRef),
			zap.Error(err),
		)
		return nil
	}

	v.model.SetDiffuseTexture(texture.Upload(img))
	return nil
}

// Run drives the event and render loop until the window closes or the
// user quits.
func (v *Viewer) Run() {
	v.running = true

	frames := 0
	lastFPS := time.Now()

	for v.running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			v.handleEvent(event)
		}

		v.renderFrame()
		v.win.SwapBuffers()

		frames++
		if now := time.Now(); now.Sub(lastFPS) >= time.Second {
			logger.Debug("frame rate", zap.Int("fps", frames))
			frames = 0
			lastFPS = now
		}
	}
}

func (v *Viewer) handleEvent(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		v.running = false

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			v.width, v.height = int(e.Data1), int(e.Data2)
			gl.Viewport(0, 0, e.Data1, e.Data2)
		case sdl.WINDOWEVENT_LEAVE, sdl.WINDOWEVENT_FOCUS_LOST:
			// The pointer is gone; never leave a drag dangling.
			v.ctl.Cancel()
		}

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN {
			return
		}
		switch e.Keysym.Sym {
		case sdl.K_ESCAPE:
			v.running = false
		case sdl.K_r:
			v.cam.Reset()
		}

	case *sdl.MouseButtonEvent:
		button := mapButton(e.Button)
		if button == input.ButtonNone {
			return
		}
		switch e.Type {
		case sdl.MOUSEBUTTONDOWN:
			panModifier := sdl.GetModState()&sdl.KMOD_CTRL != 0
			v.ctl.ButtonDown(button, panModifier, e.X, e.Y)
		case sdl.MOUSEBUTTONUP:
			v.ctl.ButtonUp(button)
		}

	case *sdl.MouseMotionEvent:
		v.ctl.Motion(e.X, e.Y)

	case *sdl.MouseWheelEvent:
		v.ctl.Wheel(float32(e.Y))
	}
}

// mapButton translates SDL button codes onto the controller's
// backend-neutral buttons. Middle and extra buttons are ignored.
func mapButton(b uint8) input.Button {
	switch b {
	case sdl.BUTTON_LEFT:
		return input.ButtonPrimary
	case sdl.BUTTON_RIGHT:
		return input.ButtonSecondary
	default:
		return input.ButtonNone
	}
}

func (v *Viewer) renderFrame() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if v.model == nil {
		return
	}

	aspect := float32(v.width) / float32(v.height)
	fov := v.cfg.Viewer.FOVDegrees * gomath.Pi / 180
	projection := math.Perspective(fov, aspect, 0.01, 1000)
	view := v.cam.ViewMatrix()

	v.model.Draw(projection, view, lightDir)
}

// setStatus reports load progress to the log, the status callback and
// the window title.
func (v *Viewer) setStatus(msg string) {
	logger.Info(msg)
	if v.status != nil {
		v.status(msg)
	}
	v.win.SetTitle("wanshitong - " + msg)
}

// Close releases the model and window.
func (v *Viewer) Close() {
	if v.model != nil {
		v.model.Destroy()
		v.model = nil
	}
	if v.win != nil {
		v.win.Close()
	}
}
