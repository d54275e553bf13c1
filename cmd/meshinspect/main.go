// meshinspect is a graphical tool for inspecting OBJ meshes: geometry
// figures, materials, normal synthesis and an interactive lit preview.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/engine/debug"
	"github.com/Faultbox/meshview/internal/engine/mesh"
	"github.com/Faultbox/meshview/internal/engine/ui"
	"github.com/Faultbox/meshview/internal/geometry"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/pkg/formats"
)

// normalPolicies are the choices offered for per-slot normal handling.
var normalPolicies = []string{"auto", "file", "generate"}

func main() {
	runtime.LockOSThread()

	modelPath := flag.String("model", "", "OBJ file to open")
	shotDir := flag.String("screenshots", "screenshots", "Directory for F12 snapshots")
	logLevel := flag.String("log", "info", "Log level: debug, info, warn or error")
	flag.Parse()

	if err := logger.Init(*logLevel, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	app, err := NewApp(*shotDir)
	if err != nil {
		logger.Error("failed to start", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	defer app.Close()

	if *modelPath != "" {
		app.Open(*modelPath)
	}

	app.Run()
}

// App is the inspector state.
type App struct {
	backend *ui.Backend
	viewer  *MeshViewer
	stats   *ui.StatsOverlay
	shots   *debug.Screenshotter
	log     *zap.Logger

	// File dialog results; the dialog runs off the main thread.
	pending chan string

	// Loaded mesh
	path    string
	obj     *formats.OBJ
	mtl     *formats.MTL
	summary *Summary
	loadErr string

	// Build options
	normalize    bool
	indexed      bool
	normalPolicy string

	// UI state
	lastFrame           time.Time
	lastMousePos        imgui.Vec2
	screenshotRequested bool
	notice              string
	noticeTime          time.Time
}

// NewApp creates the window and the offscreen viewer.
func NewApp(shotDir string) (*App, error) {
	backend, err := ui.NewBackend("meshinspect", 1280, 800, [3]float32{0.1, 0.1, 0.12})
	if err != nil {
		return nil, err
	}

	viewer, err := NewMeshViewer(640, 480)
	if err != nil {
		return nil, fmt.Errorf("create viewer: %w", err)
	}

	return &App{
		backend:      backend,
		viewer:       viewer,
		stats:        ui.NewStatsOverlay(),
		shots:        debug.NewScreenshotter(shotDir, "meshinspect"),
		log:          logger.Named("inspect"),
		pending:      make(chan string, 1),
		normalize:    true,
		normalPolicy: "auto",
		lastFrame:    time.Now(),
	}, nil
}

// Run starts the main loop.
func (app *App) Run() {
	app.backend.Run(app.render)
}

// Close releases GPU resources.
func (app *App) Close() {
	if app.viewer != nil {
		app.viewer.Destroy()
		app.viewer = nil
	}
}

// Open parses an OBJ file and its materials, then builds the preview.
func (app *App) Open(path string) {
	o, err := formats.ParseOBJFile(path)
	if err != nil {
		app.fail(path, err)
		return
	}
	mtl, err := o.LoadMaterials()
	if err != nil {
		app.fail(path, err)
		return
	}

	app.path, app.obj, app.mtl = path, o, mtl
	app.rebuild()
	app.backend.SetWindowTitle(fmt.Sprintf("meshinspect - %s", filepath.Base(path)))
}

func (app *App) fail(path string, err error) {
	app.loadErr = err.Error()
	app.log.Error("open failed", zap.String("path", path), zap.Error(err))
}

// rebuild re-runs mesh building with the current options.
func (app *App) rebuild() {
	if app.obj == nil {
		return
	}
	defer logger.Timed("build mesh", zap.String("path", app.path))()

	opts, err := app.buildOptions()
	if err != nil {
		app.fail(app.path, err)
		return
	}
	d, err := mesh.Build(app.obj, opts)
	if err != nil {
		app.fail(app.path, err)
		return
	}
	if err := app.viewer.SetMesh(d); err != nil {
		app.fail(app.path, err)
		return
	}

	s := summarize(app.path, app.obj, app.mtl, d)
	app.summary = &s
	app.loadErr = ""
	app.stats.Triangles = d.TriangleCount()
	app.stats.Vertices = len(d.Vertices)
	app.stats.Materials = len(d.Groups)
	app.stats.DrawCalls = 1
}

func (app *App) buildOptions() (mesh.Options, error) {
	presence, err := config.ParseNormalPolicy(app.normalPolicy)
	if err != nil {
		return mesh.Options{}, err
	}
	mode := mesh.NormalsPerSlot
	if app.indexed {
		mode = mesh.NormalsIndexed
		presence = geometry.NormalsAbsent
	}
	return mesh.Options{Normalize: app.normalize, Presence: presence, Mode: mode}, nil
}

// openFileDialog shows a native file dialog. The result is delivered to the
// main thread through pending.
func (app *App) openFileDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("Wavefront OBJ", "obj").
			Filter("All Files", "*").
			Title("Open Mesh").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				app.log.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		select {
		case app.pending <- filename:
		default:
		}
	}()
}

func (app *App) showNotification(msg string) {
	app.notice = msg
	app.noticeTime = time.Now()
}

// render is called each frame to draw the UI.
func (app *App) render() {
	now := time.Now()
	app.stats.Update(now.Sub(app.lastFrame).Seconds())
	app.lastFrame = now

	select {
	case path := <-app.pending:
		app.Open(path)
	default:
	}

	if ui.IsKeyPressed(imgui.KeyF12) {
		app.screenshotRequested = true
	}
	ctrlO := imgui.KeyChord(imgui.ModCtrl) | imgui.KeyChord(imgui.KeyO)
	if imgui.IsKeyChordPressed(ctrlO) {
		app.openFileDialog()
	}

	app.renderMenuBar()

	workPos, workSize := ui.Viewport()
	leftPanelWidth := float32(340)
	statusBarHeight := float32(30)
	contentHeight := workSize.Y - statusBarHeight

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(imgui.NewVec2(leftPanelWidth, contentHeight))
	if imgui.BeginV("Mesh", nil, flags) {
		app.renderOptions()
		imgui.Separator()
		app.renderSummary()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+leftPanelWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X-leftPanelWidth, contentHeight))
	if imgui.BeginV("Preview", nil, flags) {
		app.renderPreview()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X, workPos.Y+contentHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X, statusBarHeight))
	statusFlags := flags | imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoScrollbar
	if imgui.BeginV("##StatusBar", nil, statusFlags) {
		app.renderStatusBar()
	}
	imgui.End()

	app.stats.Render(imgui.NewVec2(workPos.X+leftPanelWidth+10, workPos.Y+40))

	if app.notice != "" && time.Since(app.noticeTime) < 2*time.Second {
		notifyFlags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
			imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
			imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoFocusOnAppearing
		imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+leftPanelWidth+10, workPos.Y+contentHeight-40))
		imgui.SetNextWindowBgAlpha(0.85)
		if imgui.BeginV("##Notify", nil, notifyFlags) {
			imgui.Text(app.notice)
		}
		imgui.End()
	}
}

func (app *App) renderMenuBar() {
	if !imgui.BeginMainMenuBar() {
		return
	}
	if imgui.BeginMenu("File") {
		if imgui.MenuItemBool("Open OBJ...") {
			app.openFileDialog()
		}
		if imgui.MenuItemBool("Reload") && app.path != "" {
			app.Open(app.path)
		}
		imgui.Separator()
		if imgui.MenuItemBool("Exit") {
			logger.Sync()
			os.Exit(0)
		}
		imgui.EndMenu()
	}
	if imgui.BeginMenu("View") {
		if imgui.MenuItemBool("Reset Camera") {
			app.viewer.Reset()
		}
		if imgui.MenuItemBool("Toggle Bounds") {
			app.viewer.ShowBounds = !app.viewer.ShowBounds
		}
		if imgui.MenuItemBool("Snapshot (F12)") {
			app.screenshotRequested = true
		}
		imgui.EndMenu()
	}
	imgui.EndMainMenuBar()
}

func (app *App) renderOptions() {
	changed := false
	if imgui.Checkbox("Normalize to unit cube", &app.normalize) {
		changed = true
	}
	if imgui.Checkbox("Indexed normals", &app.indexed) {
		changed = true
	}
	if imgui.IsItemHovered() {
		imgui.SetTooltip("Regenerate normals shared by every face using a position")
	}

	imgui.BeginDisabledV(app.indexed)
	imgui.Text("File normals:")
	for _, p := range normalPolicies {
		imgui.SameLine()
		if imgui.RadioButtonBool(p, app.normalPolicy == p) && app.normalPolicy != p {
			app.normalPolicy = p
			changed = true
		}
	}
	imgui.EndDisabled()

	imgui.Checkbox("Show bounds", &app.viewer.ShowBounds)
	imgui.ColorEdit3("Base color", &app.viewer.BaseColor)

	if changed {
		app.rebuild()
	}

	app.stats.RenderSettings()
}

func (app *App) renderSummary() {
	if app.loadErr != "" {
		imgui.TextColored(imgui.NewVec4(1, 0.3, 0.3, 1), app.loadErr)
	}
	s := app.summary
	if s == nil {
		imgui.TextDisabled("No mesh loaded (File > Open)")
		return
	}

	imgui.Text(filepath.Base(s.Path))
	if imgui.BeginTable("counts", 2) {
		row := func(label, value string) {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(label)
			imgui.TableNextColumn()
			imgui.Text(value)
		}
		row("Positions", fmt.Sprint(s.Positions))
		row("Normals", fmt.Sprint(s.Normals))
		row("TexCoords", fmt.Sprint(s.TexCoords))
		row("Faces", fmt.Sprint(s.Faces))
		row("Triangles", fmt.Sprint(s.Triangles))
		row("Normal source", s.Presence)
		imgui.EndTable()
	}
	imgui.TextWrapped("Bounds: " + s.Bounds)
	imgui.TextWrapped("Fit: " + s.Fit)

	if len(s.Materials) > 0 {
		if imgui.TreeNodeExStrV(fmt.Sprintf("Materials (%d)", len(s.Materials)), imgui.TreeNodeFlagsDefaultOpen) {
			for _, m := range s.Materials {
				label := fmt.Sprintf("%s (%d tris)", m.Name, m.Triangles)
				if !m.Found {
					imgui.TextColored(imgui.NewVec4(1, 0.8, 0.3, 1), label+" - not in mtllib")
				} else {
					imgui.Text(label)
				}
				if m.Texture != "" && imgui.IsItemHovered() {
					imgui.SetTooltip(m.Texture)
				}
			}
			imgui.TreePop()
		}
	}

	if len(s.Warnings) > 0 {
		if imgui.TreeNodeExStrV(fmt.Sprintf("Warnings (%d)", len(s.Warnings)), imgui.TreeNodeFlagsNone) {
			for _, w := range s.Warnings {
				imgui.TextWrapped(w)
			}
			imgui.TreePop()
		}
	}
}

func (app *App) renderPreview() {
	avail := imgui.ContentRegionAvail()
	avail.Y -= 30
	if avail.X < 1 || avail.Y < 1 {
		return
	}

	// Keep the framebuffer at pixel resolution.
	scale := imgui.CurrentIO().DisplayFramebufferScale()
	app.viewer.Resize(int(avail.X*scale.X), int(avail.Y*scale.Y))

	tex := app.viewer.Render()
	if app.screenshotRequested {
		app.screenshotRequested = false
		app.captureScreenshot()
	}
	ui.Image(tex, avail, true)

	if imgui.IsItemHovered() {
		mousePos := imgui.MousePos()
		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			app.viewer.HandleMouseDrag(mousePos.X-app.lastMousePos.X, mousePos.Y-app.lastMousePos.Y)
		}
		app.lastMousePos = mousePos

		if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
			app.viewer.HandleMouseWheel(wheel)
		}
		if ui.IsKeyDown(imgui.KeyQ) {
			app.viewer.camera.ZoomBy(0.98)
		}
		if ui.IsKeyDown(imgui.KeyE) {
			app.viewer.camera.ZoomBy(1.02)
		}
	}

	if imgui.Button("Reset View") {
		app.viewer.Reset()
	}
	imgui.SameLine()
	imgui.TextDisabled("(Drag to rotate, scroll or Q/E to zoom, F12 to snapshot)")
}

func (app *App) captureScreenshot() {
	img, err := app.viewer.Snapshot()
	if err != nil {
		app.log.Error("snapshot failed", zap.Error(err))
		return
	}
	path, err := app.shots.Save(img)
	if err != nil {
		app.log.Error("snapshot failed", zap.Error(err))
		app.showNotification("Snapshot failed: " + err.Error())
		return
	}
	app.log.Info("snapshot saved", zap.String("path", path))
	app.showNotification("Saved " + path)
}

func (app *App) renderStatusBar() {
	w, h := ui.FramebufferSize()
	fw, fh := app.viewer.Size()
	if app.path == "" {
		imgui.Text(fmt.Sprintf("Display %dx%d", w, h))
		return
	}
	imgui.Text(fmt.Sprintf("%s | display %dx%d | preview %dx%d", app.path, w, h, fw, fh))
}
