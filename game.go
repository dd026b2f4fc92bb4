package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/locomotion/common"
	"github.com/milk9111/locomotion/locomotion"
	"github.com/milk9111/locomotion/obj"
	"github.com/milk9111/locomotion/prefabs"
	"github.com/milk9111/locomotion/system"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = common.BaseWidth
	baseHeight = common.BaseHeight
	// pixelsPerUnit is the camera zoom; the character is about 1.8 units tall.
	pixelsPerUnit = 40
)

type GameOptions struct {
	Config string
	Arena  string
	Script string
	Debug  bool
	Watch  bool
}

type Game struct {
	frames int
	paused bool
	opts   GameOptions

	sim     *system.Sim
	input   *obj.Input
	script  *system.ScriptInput
	camera  *obj.Camera
	watcher *prefabs.Watcher

	pauseUI *ebitenui.UI
	readout *widget.Text

	clipboardOK bool
	status      string
}

func NewGame(opts GameOptions) (*Game, error) {
	cfg, err := loadConfig(opts.Config, opts.Debug)
	if err != nil {
		return nil, err
	}

	camera := obj.NewCamera(baseWidth, baseHeight, pixelsPerUnit)
	sim, err := system.NewSim(system.Options{Config: cfg, Arena: opts.Arena, Heading: camera})
	if err != nil {
		return nil, err
	}

	g := &Game{
		opts:   opts,
		sim:    sim,
		camera: camera,
		input:  obj.NewInput(sim.Machine),
	}
	sim.OnRespawn = g.retarget

	if opts.Script != "" {
		if err := g.loadScript(opts.Script); err != nil {
			return nil, err
		}
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		g.clipboardOK = true
	}

	if opts.Watch {
		g.startWatcher()
	}

	g.pauseUI, g.readout = NewPauseUI(g)

	p := sim.World.Character.Position()
	camera.SnapTo(p.X, p.Y)
	return g, nil
}

func loadConfig(name string, debug bool) (locomotion.Config, error) {
	spec, err := prefabs.LoadLocomotionSpec(name)
	if err != nil {
		return locomotion.Config{}, err
	}
	cfg, err := spec.ToConfig()
	if err != nil {
		return locomotion.Config{}, err
	}
	cfg.Debug = cfg.Debug || debug
	return cfg, nil
}

func (g *Game) loadScript(name string) error {
	s, err := system.LoadScriptInput(name, g.sim.Machine)
	if err != nil {
		return err
	}
	g.script = s
	// the keyboard must not fight the script
	g.input.SetTarget(nil)
	return nil
}

// retarget points whichever input source is active at a rebuilt machine.
func (g *Game) retarget(m *locomotion.StateMachine) {
	if g.script != nil && !g.script.Done() {
		g.script.SetTarget(m)
		return
	}
	g.input.SetTarget(m)
}

func (g *Game) startWatcher() {
	dirs := []string{prefabs.DiskRoot, filepath.Join(prefabs.DiskRoot, "scripts")}
	for _, d := range dirs {
		if _, err := os.Stat(d); err != nil {
			log.Printf("watch: %s not found, hot reload disabled", d)
			return
		}
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		log.Printf("watch: %v", err)
		return
	}
	g.watcher = w
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.sim.Close()
}

func (g *Game) Update() error {
	g.frames++

	if obj.KeyJustPressed(ebiten.KeyEscape) || obj.KeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if obj.KeyJustPressed(ebiten.KeyC) {
		g.copyTrace()
	}

	if g.paused {
		g.readout.Label = g.describe()
		g.pauseUI.Update()
		return nil
	}

	g.reloadChanged()

	if obj.KeyJustPressed(ebiten.KeyR) {
		if err := g.sim.Respawn(); err != nil {
			g.status = err.Error()
		}
	}

	dt := g.sim.StepSize()
	if g.script != nil && !g.script.Done() {
		if err := g.script.Update(g.sim.View()); err != nil {
			g.status = err.Error()
			g.script = nil
			g.input.SetTarget(g.sim.Machine)
		} else if g.script.Done() {
			g.status = "script " + g.script.Name() + " finished"
			g.input.SetTarget(g.sim.Machine)
		}
		frame := obj.Poll()
		g.camera.Orbit(frame.Orbit, dt)
	} else {
		frame := g.input.Update()
		g.camera.Orbit(frame.Orbit, dt)
	}

	g.sim.Step(dt)

	p := g.sim.World.Character.Position()
	_, h := g.sim.World.Character.Size()
	g.camera.Update(p.X, p.Y+h/2)
	return nil
}

func (g *Game) reloadChanged() {
	if g.watcher == nil {
		return
	}
	for _, c := range g.watcher.Poll() {
		name := c.Name()
		switch {
		case c.Kind == prefabs.ChangeScript:
			if g.script == nil || prefabs.ScriptName(name) != prefabs.ScriptName(g.script.Name()) {
				continue
			}
			if err := g.loadScript(g.script.Name()); err != nil {
				g.status = err.Error()
				continue
			}
			g.status = "reloaded " + name
		case name == g.opts.Config:
			cfg, err := loadConfig(name, g.opts.Debug)
			if err == nil {
				err = g.sim.Reconfigure(cfg)
			}
			if err != nil {
				g.status = err.Error()
				continue
			}
			g.status = "reloaded " + name
		case name == g.opts.Arena:
			if err := g.sim.LoadArena(name); err != nil {
				g.status = err.Error()
				continue
			}
			g.status = "reloaded " + name
		}
		log.Printf("watch: %s", g.status)
	}
}

func (g *Game) copyTrace() {
	if !g.clipboardOK {
		g.status = "clipboard unavailable"
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(g.sim.TraceText()))
	g.status = fmt.Sprintf("copied %d transitions", len(g.sim.Trace()))
}

func (g *Game) describe() string {
	v := g.sim.View()
	return fmt.Sprintf(
		"state: %s/%s\njump: %d  vy: %.2f\npos: %.2f %.2f %.2f\nyaw: %.0f  camera: %.0f\n%s",
		v.Root, v.Sub, v.JumpCount, v.VelocityY,
		v.Position.X, v.Position.Y, v.Position.Z,
		v.Yaw*180/math.Pi, g.camera.Yaw()*180/math.Pi,
		v.Params,
	)
}

func (g *Game) stateColor() color.Color {
	arena := g.sim.World.Arena
	switch g.sim.Machine.Current().Kind() {
	case locomotion.StateJump:
		return arena.Color("jump", colornames.Orange)
	case locomotion.StateFall:
		return arena.Color("fall", colornames.Mediumpurple)
	default:
		return arena.Color("grounded", colornames.Mediumseagreen)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.sim.World.Arena.Color("background", colornames.Midnightblue))

	g.camera.Render(screen, func(world *ebiten.Image) {
		g.sim.World.CollisionWorld.DebugDraw(world, g.camera, g.stateColor())
		g.drawFacing(world)
	})

	hud := fmt.Sprintf("FPS: %.2f\n%s", ebiten.ActualFPS(), g.describe())
	if g.status != "" {
		hud += "\n" + g.status
	}
	ebitenutil.DebugPrint(screen, hud)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

// drawFacing draws the side-view component of the character's facing.
func (g *Game) drawFacing(world *ebiten.Image) {
	p := g.sim.World.Character.Position()
	_, h := g.sim.World.Character.Size()
	x0, y0 := g.camera.WorldToScreen(p.X, p.Y+h*0.75)
	x1, y1 := g.camera.WorldToScreen(p.X+math.Sin(g.sim.Machine.Yaw()), p.Y+h*0.75)
	vector.StrokeLine(world, float32(x0), float32(y0), float32(x1), float32(y1), 2, colornames.White, false)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
