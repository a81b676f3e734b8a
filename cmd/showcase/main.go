// cmd/showcase/main.go
// Interactive skeleton viewer for clip files.
//
// Usage:
//   go run ./cmd/showcase --manifest=data/resources.yaml --config=data/playback.yaml
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/animkit/internal/clipfile"
	"github.com/gonewx/animkit/internal/pose"
	"github.com/gonewx/animkit/pkg/anim"
	"github.com/gonewx/animkit/pkg/components"
	"github.com/gonewx/animkit/pkg/config"
	"github.com/gonewx/animkit/pkg/ecs"
	"github.com/gonewx/animkit/pkg/game"
	"github.com/gonewx/animkit/pkg/systems"
)

var (
	manifestPath = flag.String("manifest", "data/resources.yaml", "resource manifest path")
	configPath   = flag.String("config", "", "optional playback config path")
	verbose      = flag.Bool("verbose", false, "verbose logging")
)

const (
	windowWidth  = 960
	windowHeight = 640

	defaultBlendSeconds = 0.2
	fixedDelta          = 1.0 / 60.0
)

// Game drives one animated entity and draws its pose graph as a stick
// figure: a circle per joint, a line per parent-child bone.
type Game struct {
	entityManager *ecs.EntityManager
	animSystem    *systems.AnimationSystem

	resources  *game.ResourceManager
	store      *anim.ClipStore
	controller *anim.Controller
	binding    *anim.BindingManager
	playback   *config.PlaybackConfigFile
	settings   *game.SettingsManager

	entity ecs.EntityID

	assetID   string
	animNames []string
	animIndex int

	showHelp bool
}

// NewGame loads the manifest, resolves the first asset, and assembles
// the entity the viewer animates.
func NewGame(manifestPath, playbackPath string) (*Game, error) {
	rc, err := game.LoadResourceConfig(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	ids := rc.ClipIDs()
	if len(ids) == 0 {
		return nil, fmt.Errorf("manifest '%s' declares no clips", manifestPath)
	}

	var playback *config.PlaybackConfigFile
	if playbackPath != "" {
		playback, err = config.LoadPlaybackConfig(playbackPath)
		if err != nil {
			log.Printf("Warning: failed to load playback config: %v (using defaults)", err)
		}
	}

	resources := game.NewResourceManager(rc)
	store := anim.NewClipStore()
	controller := anim.NewController(store)

	// Persisted playback preferences; nil gdata degrades to defaults.
	gdataManager, err := gdata.Open(gdata.Config{AppName: "animkit_showcase"})
	if err != nil {
		log.Printf("Warning: gdata unavailable: %v (settings will not persist)", err)
		gdataManager = nil
	}
	settings, _ := game.NewSettingsManager(gdataManager)
	settings.Apply(controller)

	g := &Game{
		entityManager: ecs.NewEntityManager(),
		resources:     resources,
		store:         store,
		controller:    controller,
		playback:      playback,
		settings:      settings,
		assetID:       ids[0],
		showHelp:      true,
	}
	g.animSystem = systems.NewAnimationSystem(g.entityManager)

	g.binding = anim.NewBindingManager(resources, store, controller)
	g.binding.SetAssets([]string{g.assetID})

	if !store.Has(firstOrEmpty(store.AssetNames(g.assetID))) {
		return nil, fmt.Errorf("asset '%s' did not load", g.assetID)
	}
	g.animNames = store.AssetNames(g.assetID)

	joints, err := resources.Topology(g.assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to read topology: %w", err)
	}

	graph, err := buildGraph(joints)
	if err != nil {
		return nil, fmt.Errorf("failed to build pose graph: %w", err)
	}

	g.entity = g.entityManager.CreateEntity()
	g.entityManager.AddComponent(g.entity, &components.AnimationComponent{Controller: controller})
	g.entityManager.AddComponent(g.entity, &components.ModelComponent{Graph: graph, Attached: true})

	log.Printf("✓ Loaded asset %s: %d joints, %d animations", g.assetID, len(joints), len(g.animNames))
	return g, nil
}

// buildGraph converts manifest joint definitions into a bindable pose
// graph instance.
func buildGraph(defs []clipfile.JointDef) (*pose.Graph, error) {
	joints := make([]pose.Joint, len(defs))
	byName := make(map[string]int, len(defs))
	for i, d := range defs {
		byName[d.Name] = i
		parent := -1
		if d.Parent != "" {
			p, ok := byName[d.Parent]
			if !ok {
				return nil, fmt.Errorf("joint '%s' references unknown parent '%s'", d.Name, d.Parent)
			}
			parent = p
		}
		joints[i] = pose.Joint{Name: d.Name, Parent: parent}
	}
	topology, err := pose.NewTopology(joints)
	if err != nil {
		return nil, err
	}
	return pose.NewGraph(topology), nil
}

// requestPlay queues a play request on the viewer entity; the animation
// system executes it on the next update.
func (g *Game) requestPlay(name string) {
	blend := defaultBlendSeconds
	if g.playback != nil {
		blend = g.playback.BlendSecondsFor(name, blend)
	}
	g.entityManager.AddComponent(g.entity, &components.PlayRequestComponent{
		Name:         name,
		BlendSeconds: blend,
	})
	if *verbose {
		log.Printf("→ play %s (blend %.2fs)", name, blend)
	}
}

func (g *Game) cycleAnimation(step int) {
	if len(g.animNames) == 0 {
		return
	}
	g.animIndex = (g.animIndex + step + len(g.animNames)) % len(g.animNames)
	g.requestPlay(g.animNames[g.animIndex])
}

// Update handles input and runs one animation tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHelp = !g.showHelp
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.cycleAnimation(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		g.cycleAnimation(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.settings.SetLoop(!g.settings.GetSettings().Loop)
		g.controller.SetLoop(g.settings.GetSettings().Loop)
		g.saveSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		g.settings.SetSpeed(g.settings.GetSettings().Speed + 0.25)
		g.controller.SetSpeed(g.settings.GetSettings().Speed)
		g.saveSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		g.settings.SetSpeed(g.settings.GetSettings().Speed - 0.25)
		g.controller.SetSpeed(g.settings.GetSettings().Speed)
		g.saveSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.resources.Reload(g.assetID); err != nil {
			log.Printf("Warning: reload failed: %v", err)
		} else {
			g.animNames = g.store.AssetNames(g.assetID)
			if g.animIndex >= len(g.animNames) {
				g.animIndex = 0
			}
			log.Printf("✓ Reloaded asset %s (%d animations)", g.assetID, len(g.animNames))
		}
	}

	g.animSystem.Update(fixedDelta)
	return nil
}

func (g *Game) saveSettings() {
	if err := g.settings.Save(); err != nil {
		log.Printf("Warning: failed to save settings: %v", err)
	}
}

// Draw renders the stick figure plus the status line.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{30, 30, 40, 255})

	model, _ := ecs.GetComponent[*components.ModelComponent](g.entityManager, g.entity)
	if model != nil && model.Graph != nil {
		g.drawGraph(screen, model.Graph)
	}

	g.drawStatus(screen)
	if g.showHelp {
		g.drawHelp(screen)
	}
}

// drawGraph maps model-space joint positions onto the screen. The world
// origin sits at the screen center, Y up, 100 pixels per unit.
func (g *Game) drawGraph(screen *ebiten.Image, graph *pose.Graph) {
	const scale = 100.0
	originX := float32(windowWidth) / 2
	originY := float32(windowHeight) / 2

	project := func(xf pose.Transform) (float32, float32) {
		x := originX + float32(xf.Translation[0]*scale)
		y := originY - float32(xf.Translation[1]*scale)
		return x, y
	}

	topo := graph.Topology()
	bone := color.RGBA{120, 200, 255, 255}
	joint := color.RGBA{255, 220, 100, 255}

	for i, j := range topo.Joints {
		x, y := project(graph.Model[i])
		if j.Parent >= 0 {
			px, py := project(graph.Model[j.Parent])
			vector.StrokeLine(screen, px, py, x, y, 2, bone, true)
		}
		vector.DrawFilledCircle(screen, x, y, 4, joint, true)
	}
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	state := "idle"
	if g.controller.IsBlending() {
		state = fmt.Sprintf("blending %s → %s (%.0f%%)",
			g.controller.PreviousAnimation(), g.controller.CurrentAnimation(),
			g.controller.BlendWeight()*100)
	} else if g.controller.IsPlaying() {
		state = fmt.Sprintf("playing %s", g.controller.CurrentAnimation())
	}

	t := g.controller.CurrentTime()
	d, _ := g.controller.Duration()
	info := fmt.Sprintf("FPS: %.1f | %s | backend: %s | t=%.2f/%.2f | speed %.2fx | loop %v",
		ebiten.ActualTPS(), state, g.controller.BackendType(),
		t, d, g.controller.Speed(), g.controller.Loop())
	ebitenutil.DebugPrintAt(screen, info, 10, 10)
}

func (g *Game) drawHelp(screen *ebiten.Image) {
	help := "Controls:\n" +
		"  Space/Right - next animation\n" +
		"  Left        - previous animation\n" +
		"  Up/Down     - playback speed\n" +
		"  L           - toggle looping\n" +
		"  R           - reload clip file\n" +
		"  H           - toggle this help"
	ebitenutil.DebugPrintAt(screen, help, 10, windowHeight-120)
}

// Layout reports the fixed logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowWidth, windowHeight
}

func firstOrEmpty(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

func main() {
	flag.Parse()

	if *verbose {
		log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	}

	g, err := NewGame(*manifestPath, *configPath)
	if err != nil {
		log.Fatalf("initialization failed: %v", err)
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("animkit showcase")
	ebiten.SetTPS(60)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
