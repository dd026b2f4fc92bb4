// Command locosim runs scripted locomotion scenarios headless and prints the
// transition trace.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/milk9111/locomotion/locomotion"
	"github.com/milk9111/locomotion/prefabs"
	"github.com/milk9111/locomotion/system"
)

type runOptions struct {
	config  locomotion.Config
	frames  int
	dt      float64
	script  string
	arena   string
	verbose bool
}

func main() {
	scenario := flag.String("scenario", "all", "scenario name from scenarios.yaml, or all")
	scenarios := flag.String("scenarios", "scenarios.yaml", "scenario list prefab")
	configName := flag.String("config", "locomotion.yaml", "locomotion tuning prefab")
	frames := flag.Int("frames", 0, "override the scenario frame limit")
	dt := flag.Float64("dt", 0, "override the scenario step in seconds")
	script := flag.String("script", "", "override the scenario script")
	arena := flag.String("arena", "", "override the scenario arena prefab")
	verbose := flag.Bool("v", false, "print every transition and animator parameter change")
	list := flag.Bool("list", false, "list scenarios and scripts, then exit")
	flag.Parse()

	set, err := prefabs.LoadScenarios(*scenarios)
	if err != nil {
		log.Fatal(err)
	}

	if *list {
		for _, sc := range set.Scenarios {
			fmt.Printf("%-12s script=%s frames=%d\n", sc.Name, sc.Script, sc.Frames)
		}
		names, err := prefabs.Scripts()
		if err != nil {
			log.Fatal(err)
		}
		for _, n := range names {
			fmt.Printf("script %s\n", n)
		}
		return
	}

	spec, err := prefabs.LoadLocomotionSpec(*configName)
	if err != nil {
		log.Fatal(err)
	}
	cfg, err := spec.ToConfig()
	if err != nil {
		log.Fatal(err)
	}
	if t, ok := prefabs.ModTime(*configName); ok {
		log.Printf("locosim: %s from disk, modified %s", *configName, t.Format("2006-01-02 15:04:05"))
	}

	opts := runOptions{config: cfg, frames: *frames, dt: *dt, script: *script, arena: *arena, verbose: *verbose}

	var selected []prefabs.ScenarioSpec
	if *scenario == "all" {
		selected = set.Scenarios
	} else {
		sc, ok := set.Find(*scenario)
		if !ok {
			log.Fatalf("locosim: unknown scenario %q", *scenario)
		}
		selected = append(selected, sc)
	}

	failed := 0
	for _, sc := range selected {
		if err := runScenario(sc, opts); err != nil {
			log.Printf("locosim: %s: %v", sc.Name, err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func runScenario(sc prefabs.ScenarioSpec, opts runOptions) error {
	if opts.frames > 0 {
		sc.Frames = opts.frames
	}
	if opts.dt > 0 {
		sc.DT = opts.dt
	}
	if opts.script != "" {
		sc.Script = opts.script
	}
	if opts.arena != "" {
		sc.Arena = opts.arena
	}

	sim, err := system.NewSim(system.Options{Config: opts.config, Arena: sc.Arena, Step: sc.DT})
	if err != nil {
		return err
	}
	defer sim.Close()

	script, err := system.LoadScriptInput(sc.Script, sim.Machine)
	if err != nil {
		return err
	}
	sim.OnRespawn = func(m *locomotion.StateMachine) { script.SetTarget(m) }

	printed, printedParams := 0, 0
	run := 0
	for ; run < sc.Frames && !script.Done(); run++ {
		if err := script.Update(sim.View()); err != nil {
			return err
		}
		sim.Step(sc.DT)

		if opts.verbose {
			trace := sim.Trace()
			for _, e := range trace[min(printed, len(trace)):] {
				fmt.Printf("  %s\n", e)
			}
			printed = len(trace)
			params := sim.ParamTrace()
			for _, e := range params[min(printedParams, len(params)):] {
				fmt.Printf("  %s\n", e)
			}
			printedParams = len(params)
		}
	}

	v := sim.View()
	fmt.Printf("%s: frames=%d time=%.3fs transitions=%d respawns=%d final=%s/%s pos=(%.2f %.2f %.2f)\n",
		sc.Name, run, sim.Time(), len(sim.Trace()), sim.Respawns(), v.Root, v.Sub,
		v.Position.X, v.Position.Y, v.Position.Z)

	if !script.Done() {
		return fmt.Errorf("script %s did not finish in %d frames", sc.Script, sc.Frames)
	}
	return nil
}
