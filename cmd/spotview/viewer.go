package main

import (
	"fmt"
	gomath "math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/tanema/gween/ease"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/spotlight/cmd/spotview/shaders"
	"github.com/Faultbox/spotlight/internal/app"
	"github.com/Faultbox/spotlight/internal/config"
	"github.com/Faultbox/spotlight/internal/engine/input"
	"github.com/Faultbox/spotlight/internal/engine/rig"
	"github.com/Faultbox/spotlight/internal/engine/shader"
	"github.com/Faultbox/spotlight/internal/engine/shadow"
	"github.com/Faultbox/spotlight/internal/engine/texture"
	"github.com/Faultbox/spotlight/internal/engine/window"
	"github.com/Faultbox/spotlight/internal/logger"
)

const (
	lightIndex   = "0"
	ambient      = 0.05
	coneStep     = 0.02 // Radians per frame while Q or E is held
	minConeAngle = 0.05
	maxConeAngle = gomath.Pi - 0.05
)

type viewer struct {
	cfg   *config.Config
	win   *window.Window
	input *input.Input

	setup *app.Rig
	gen   *shadow.Generator
	sweep *rig.Sweep
	swing bool
	shot  bool

	program uint32
	sink    *shader.ProgramSink
	vao     uint32
	vbo     uint32
}

func newViewer(cfg *config.Config) (*viewer, error) {
	win, err := window.New(window.Config{
		Title:      "spotview",
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, err
	}
	v := &viewer{cfg: cfg, win: win, input: input.New()}

	if err := gl.Init(); err != nil {
		v.Close()
		return nil, fmt.Errorf("gl init: %w", err)
	}
	logger.Info("OpenGL initialized", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	if err := v.init(); err != nil {
		v.Close()
		return nil, err
	}
	return v, nil
}

func (v *viewer) init() error {
	setup, err := app.BuildRig(v.cfg)
	if err != nil {
		return err
	}
	v.setup = setup
	v.gen = shadow.NewGenerator(setup.Spot, shadow.DefaultMapSize)

	if tex, ok := setup.Spot.ProjectedTexture().(*texture.Texture); ok {
		if _, err := tex.Upload(); err != nil {
			return err
		}
	}

	period := float32(v.cfg.Preview.Duration.Seconds())
	if period <= 0 {
		period = 2
	}
	v.sweep, err = rig.NewSweep(setup.Node, setup.Spot, v.cfg.Preview.SweepDeg*gomath.Pi/180, period, 0, ease.InOutSine)
	if err != nil {
		return err
	}

	v.program, err = shader.CompileProgram(shaders.GroundVertexShader, shaders.GroundFragmentShader)
	if err != nil {
		return fmt.Errorf("ground shader: %w", err)
	}
	v.sink = shader.NewProgramSink(v.program)

	v.uploadGround(v.cfg.Preview.Extent * 4)
	return nil
}

// uploadGround creates a square on y=0 with the given half size.
func (v *viewer) uploadGround(half float32) {
	vertices := []float32{
		-half, 0, -half,
		half, 0, -half,
		-half, 0, half,
		half, 0, half,
	}

	gl.GenVertexArrays(1, &v.vao)
	gl.BindVertexArray(v.vao)

	gl.GenBuffers(1, &v.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, v.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 12, 0)

	gl.BindVertexArray(0)
}

// Run drives the frame loop until the window closes.
func (v *viewer) Run() error {
	last := window.Ticks()
	for {
		if v.input.Update() {
			return nil
		}
		now := window.Ticks()
		dt := float32(now-last) / 1000
		last = now

		if err := v.update(dt); err != nil {
			return err
		}
		if err := v.render(); err != nil {
			return err
		}
		if v.shot {
			v.shot = false
			path, err := v.capture()
			if err != nil {
				logger.Warn("screenshot failed", zap.Error(err))
			} else {
				logger.Info("screenshot saved", zap.String("path", path))
			}
		}
		v.win.SwapBuffers()
	}
}

func (v *viewer) update(dt float32) error {
	cam := v.setup.Camera
	for _, e := range v.input.Events() {
		switch e.Type {
		case input.EventDrag:
			cam.HandleDrag(e.DX, e.DY)
		case input.EventWheel:
			cam.HandleZoom(e.DY)
		case input.EventWindowResize:
			gl.Viewport(0, 0, int32(e.Width), int32(e.Height))
		}
	}

	if v.input.IsKeyPressed(sdl.SCANCODE_SPACE) {
		v.swing = !v.swing
		logger.Debug("sweep toggled", zap.Bool("running", v.swing))
	}
	if v.input.IsKeyPressed(sdl.SCANCODE_F12) {
		v.shot = true
	}

	var forward, right float32
	if input.IsKeyHeld(sdl.SCANCODE_W) {
		forward++
	}
	if input.IsKeyHeld(sdl.SCANCODE_S) {
		forward--
	}
	if input.IsKeyHeld(sdl.SCANCODE_D) {
		right++
	}
	if input.IsKeyHeld(sdl.SCANCODE_A) {
		right--
	}
	cam.HandleMovement(forward, right)

	spot := v.setup.Spot
	cone := spot.ConeAngle()
	if input.IsKeyHeld(sdl.SCANCODE_Q) {
		cone -= coneStep
	}
	if input.IsKeyHeld(sdl.SCANCODE_E) {
		cone += coneStep
	}
	cone = min(max(cone, minConeAngle), maxConeAngle)
	if cone != spot.ConeAngle() {
		if err := spot.SetConeAngle(cone); err != nil {
			return err
		}
		v.win.SetTitle(fmt.Sprintf("spotview - cone %.1f°", cone*180/gomath.Pi))
	}

	if v.swing {
		if v.sweep.Done {
			if err := v.sweep.Reset(); err != nil {
				return err
			}
		}
		if err := v.sweep.Update(dt); err != nil {
			return err
		}
	} else {
		spot.RefreshTransform()
	}

	if _, err := v.gen.Update(v.setup.Scene); err != nil {
		return err
	}
	return nil
}

func (v *viewer) render() error {
	gl.ClearColor(0.02, 0.02, 0.03, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)

	gl.UseProgram(v.program)

	cam := v.setup.Camera
	viewProj := cam.ProjectionMatrix(v.win.Aspect()).Mul(cam.ViewMatrix())
	v.sink.UpdateMatrix("uViewProj", viewProj)
	if loc := v.sink.Location("uAmbient"); loc >= 0 {
		gl.Uniform1f(loc, ambient)
	}

	if err := v.setup.Spot.TransferUniforms(v.sink, lightIndex); err != nil {
		return err
	}
	v.gen.TransferUniforms(v.sink, lightIndex)

	gl.BindVertexArray(v.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
	return nil
}

// Close releases GL objects and the window.
func (v *viewer) Close() {
	if v.vbo != 0 {
		gl.DeleteBuffers(1, &v.vbo)
	}
	if v.vao != 0 {
		gl.DeleteVertexArrays(1, &v.vao)
	}
	if v.program != 0 {
		gl.DeleteProgram(v.program)
	}
	if v.setup != nil {
		if tex, ok := v.setup.Spot.ProjectedTexture().(*texture.Texture); ok {
			tex.Delete()
		}
	}
	if v.win != nil {
		v.win.Close()
		v.win = nil
	}
}
