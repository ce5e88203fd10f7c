// Package app wires the window, renderer, camera and interaction session
// into the viewer's main loop.
package app

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/gnumc/skin3d/internal/config"
	"github.com/gnumc/skin3d/internal/editor"
	"github.com/gnumc/skin3d/internal/engine/camera"
	"github.com/gnumc/skin3d/internal/engine/input"
	"github.com/gnumc/skin3d/internal/engine/renderer"
	"github.com/gnumc/skin3d/internal/engine/window"
	"github.com/gnumc/skin3d/internal/interact"
	"github.com/gnumc/skin3d/internal/logger"
	"github.com/gnumc/skin3d/internal/model"
	"github.com/gnumc/skin3d/internal/skin"
	"github.com/veandco/go-sdl2/sdl"
)

const title = "Skin3D Viewer"

// App is the running viewer instance.
type App struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera

	canvas  *editor.Canvas
	session *interact.Session

	mesh    *model.Mesh
	variant model.Variant
	pose    model.Pose

	showOverlay bool
	showGrid    bool

	width  int
	height int

	orbiting bool
	mouseX   int
	mouseY   int

	lastTitle string
	started   time.Time
}

// New creates the viewer. The OpenGL context is created here, so this must
// run on the main thread.
func New(cfg *config.Config) (*App, error) {
	variant, err := model.ParseVariant(cfg.Viewer.Variant)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	pose, err := model.ParsePose(cfg.Viewer.Pose)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger.Info("initializing viewer",
		zap.String("variant", variant.String()),
		zap.String("pose", pose.String()),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	a := &App{
		cfg:         cfg,
		variant:     variant,
		pose:        pose,
		showOverlay: cfg.Viewer.ShowOverlay,
		showGrid:    cfg.Viewer.ShowGrid,
		width:       cfg.Graphics.Width,
		height:      cfg.Graphics.Height,
	}

	a.mesh, err = model.Build(variant, pose)
	if err != nil {
		return nil, fmt.Errorf("building mesh: %w", err)
	}

	a.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the OpenGL context the window just created.
	a.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	a.renderer.SetMesh(a.mesh)

	a.input = input.New()
	a.camera = camera.NewOrbitCamera()
	a.canvas = editor.NewCanvas()
	a.session = interact.NewSession(a.canvas)

	a.loadInitialSkin()

	logger.Info("viewer initialized")
	return a, nil
}

// loadInitialSkin fills the canvas from the configured PNG, falling back to
// the placeholder checkerboard. A broken skin file never stops startup.
func (a *App) loadInitialSkin() {
	path := a.cfg.Viewer.SkinPath
	if path == "" {
		a.setSkin(skin.Placeholder())
		return
	}

	f, err := os.Open(path)
	if err != nil {
		logger.Warn("cannot open skin file, using placeholder",
			zap.String("path", path),
			zap.Error(err),
		)
		a.setSkin(skin.Placeholder())
		return
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		logger.Warn("cannot decode skin file, using placeholder",
			zap.String("path", path),
			zap.Error(err),
		)
		a.setSkin(skin.Placeholder())
		return
	}

	a.setSkin(skin.FromImage(img, 0))
	logger.Info("skin loaded", zap.String("path", path))
}

// setSkin replaces the canvas contents with the texture's pixels.
func (a *App) setSkin(tex *skin.Texture) {
	if err := a.canvas.LoadPixels(tex.Pix()); err != nil {
		logger.Error("loading skin pixels", zap.Error(err))
	}
}

// Run starts the main loop.
func (a *App) Run() error {
	a.running = true
	a.started = time.Now()

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting viewer loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}

		frame := a.frame()
		for _, event := range a.input.Events() {
			a.handleEvent(frame, event)
		}

		// Pull fresh snapshots; generation checks make unchanged frames
		// a no-op upload.
		a.renderer.SyncTexture(a.canvas.Composite())
		a.renderer.SyncSelection(a.canvas.Selection())

		hover, hasHover := a.session.Hover()
		a.updateTitle(hover, hasHover)
		a.renderer.Draw(renderer.Frame{
			View:        a.camera.ViewMatrix(),
			Proj:        a.camera.ProjMatrix(float32(a.width), float32(a.height)),
			Hover:       hover,
			HasHover:    hasHover,
			ShowGrid:    a.showGrid,
			ShowOverlay: a.showOverlay,
			Time:        float32(time.Since(a.started).Seconds()),
		})

		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

// updateTitle shows the active tool and the hovered texel in the title bar.
func (a *App) updateTitle(hover skin.Texel, hasHover bool) {
	t := fmt.Sprintf("%s - %s", title, a.session.Tool())
	if hasHover {
		t = fmt.Sprintf("%s - (%d, %d)", t, hover.X, hover.Y)
	}
	if t != a.lastTitle {
		a.window.SetTitle(t)
		a.lastTitle = t
	}
}

// frame builds the picking context for this frame.
func (a *App) frame() interact.Frame {
	return interact.Frame{
		View:      a.camera.ViewMatrix(),
		Proj:      a.camera.ProjMatrix(float32(a.width), float32(a.height)),
		ViewportW: float32(a.width),
		ViewportH: float32(a.height),
		Mesh:      a.mesh,
		Overlay:   a.showOverlay,
	}
}

func (a *App) handleEvent(frame interact.Frame, event input.Event) {
	switch event.Type {
	case input.EventWindowResize:
		a.width = event.Width
		a.height = event.Height
		a.renderer.Resize(event.Width, event.Height)

	case input.EventKeyDown:
		a.handleKey(event)

	case input.EventMouseDown:
		a.mouseX, a.mouseY = event.MouseX, event.MouseY
		switch event.Button {
		case sdl.BUTTON_LEFT:
			a.session.PointerDown(frame,
				float32(event.MouseX), float32(event.MouseY), mods(event.Mods))
		case sdl.BUTTON_MIDDLE, sdl.BUTTON_RIGHT:
			a.orbiting = true
		}

	case input.EventMouseUp:
		switch event.Button {
		case sdl.BUTTON_LEFT:
			a.session.PointerUp(frame,
				float32(event.MouseX), float32(event.MouseY), mods(event.Mods))
		case sdl.BUTTON_MIDDLE, sdl.BUTTON_RIGHT:
			a.orbiting = false
		}

	case input.EventMouseMove:
		a.mouseX, a.mouseY = event.MouseX, event.MouseY
		if a.orbiting {
			a.camera.Rotate(float32(event.DeltaX), float32(event.DeltaY))
		}
		a.session.PointerMove(frame,
			float32(event.MouseX), float32(event.MouseY), mods(event.Mods))

	case input.EventMouseWheel:
		a.camera.Zoom(float32(event.Wheel))

	case input.EventMouseLeave:
		a.session.PointerLeave()
	}
}

func (a *App) handleKey(event input.Event) {
	switch event.Key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false

	case sdl.SCANCODE_G:
		a.showGrid = !a.showGrid
		logger.Debug("grid toggled", zap.Bool("show", a.showGrid))

	case sdl.SCANCODE_O:
		a.showOverlay = !a.showOverlay
		logger.Debug("overlay toggled", zap.Bool("show", a.showOverlay))

	case sdl.SCANCODE_P:
		a.setPose(nextPose(a.pose))

	case sdl.SCANCODE_M:
		if a.variant == model.VariantClassic {
			a.setVariant(model.VariantSlim)
		} else {
			a.setVariant(model.VariantClassic)
		}

	case sdl.SCANCODE_R:
		a.camera.Reset()

	case sdl.SCANCODE_Z:
		if event.Mods.Ctrl {
			a.canvas.Undo()
		}

	case sdl.SCANCODE_Y:
		if event.Mods.Ctrl {
			a.canvas.Redo()
		}

	case sdl.SCANCODE_1:
		a.session.SetTool(editor.ToolPencil)
	case sdl.SCANCODE_2:
		a.session.SetTool(editor.ToolPaintbrush)
	case sdl.SCANCODE_3:
		a.session.SetTool(editor.ToolEraser)
	case sdl.SCANCODE_4:
		a.session.SetTool(editor.ToolAirbrush)
	case sdl.SCANCODE_5:
		a.session.SetTool(editor.ToolBucketFill)
	case sdl.SCANCODE_6:
		a.session.SetTool(editor.ToolColorPicker)
	case sdl.SCANCODE_7:
		a.session.SetTool(editor.ToolFuzzySelect)
	}
}

// setPose rebuilds the mesh in the new pose.
func (a *App) setPose(pose model.Pose) {
	mesh, err := model.Build(a.variant, pose)
	if err != nil {
		logger.Error("building mesh", zap.Error(err))
		return
	}
	a.pose = pose
	a.mesh = mesh
	a.renderer.SetMesh(mesh)
	logger.Info("pose changed", zap.String("pose", pose.String()))
}

// setVariant rebuilds the mesh for the new variant.
func (a *App) setVariant(variant model.Variant) {
	mesh, err := model.Build(variant, a.pose)
	if err != nil {
		logger.Error("building mesh", zap.Error(err))
		return
	}
	a.variant = variant
	a.mesh = mesh
	a.renderer.SetMesh(mesh)
	logger.Info("variant changed", zap.String("variant", variant.String()))
}

func nextPose(p model.Pose) model.Pose {
	switch p {
	case model.PoseStanding:
		return model.PoseWalking
	case model.PoseWalking:
		return model.PoseTPose
	default:
		return model.PoseStanding
	}
}

// mods converts SDL modifier state to editor modifiers.
func mods(m input.Modifiers) editor.Modifiers {
	return editor.Modifiers{Shift: m.Shift, Ctrl: m.Ctrl, Alt: m.Alt}
}
