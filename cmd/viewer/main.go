// Command viewer opens a window and draws a spinning textured cube under a
// perspective projection and a textured quad under an orthographic one.
package main

import (
	"embed"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/chewxy/math32"
	"github.com/xlab/closer"

	"mini-gfx/internal/config"
	"mini-gfx/internal/display"
	"mini-gfx/internal/display/glfwplatform"
	"mini-gfx/internal/gpu/glbackend"
	"mini-gfx/internal/graphics"
	"mini-gfx/internal/logging"
	"mini-gfx/internal/pacing"
	"mini-gfx/internal/profiling"
	"mini-gfx/internal/vecmath"
)

//go:embed shaders
var builtinAssets embed.FS

const (
	vertexShader   = "shaders/textured.vert"
	fragmentShader = "shaders/textured.frag"
	slowFrame      = 20 * time.Millisecond
	fieldOfView    = 60
)

func init() {
	runtime.LockOSThread()
}

func candidates(cs []config.Candidate) []display.Config {
	out := make([]display.Config, len(cs))
	for i, c := range cs {
		out[i] = display.Config{
			ID:      i + 1,
			Red:     c.Red,
			Green:   c.Green,
			Blue:    c.Blue,
			Alpha:   c.Alpha,
			Depth:   c.Depth,
			Stencil: c.Stencil,
			Major:   c.Major,
			Minor:   c.Minor,
		}
	}
	return out
}

func main() {
	configPath := flag.String("config", "", "settings file (.toml, .yaml or .yml)")
	assetDir := flag.String("assets", "", "load shaders and textures from this directory instead of the built-in set")
	texturePath := flag.String("texture", "", "texture to load from the asset directory")
	flag.Parse()

	settings := config.Default()
	if *configPath != "" {
		s, err := config.Load(*configPath)
		if err != nil {
			closer.Fatalln(err)
		}
		settings = s
	}

	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(settings.Log.Level),
	})))
	log := logging.Logger()

	var assets fs.FS = builtinAssets
	if *assetDir != "" {
		assets = os.DirFS(*assetDir)
	}

	platform := glfwplatform.New(candidates(settings.Context.Candidates))
	ctx := display.New(platform, display.Options{
		NewDevice:    glbackend.New,
		SwapInterval: settings.Context.SwapInterval,
	})
	err := ctx.Create(glfwplatform.Window{
		Width:     settings.Window.Width,
		Height:    settings.Window.Height,
		Title:     settings.Window.Title,
		Resizable: settings.Window.Resizable,
	})
	if err != nil {
		closer.Fatalln(err)
	}

	r, err := graphics.New(ctx, assets, settings.Renderer)
	if err != nil {
		ctx.Destroy()
		closer.Fatalln(err)
	}

	// GL teardown has to happen on this thread; the closer goroutine only
	// asks the frame loop to stop and waits for it.
	var quit atomic.Bool
	done := make(chan struct{})
	closer.Bind(func() {
		quit.Store(true)
		<-done
	})

	code := 0
	if err := run(r, platform, *texturePath, &quit, settings); err != nil {
		log.Error("viewer stopped", "err", err)
		code = 1
	}
	r.Destroy()
	close(done)
	if quit.Load() {
		// a signal is already running the cleanups and will exit
		closer.Hold()
	}
	closer.Exit(code)
}

func run(r *graphics.Renderer, platform *glfwplatform.Platform, texturePath string, quit *atomic.Bool, settings config.Settings) error {
	log := logging.Logger()
	bg := settings.Renderer.ClearColor
	limiter := pacing.NewLimiter(settings.Window.FPSLimit)

	shader, err := r.CreateShader(vertexShader, fragmentShader)
	if err != nil {
		return err
	}

	var tex graphics.Texture
	if texturePath != "" {
		tex, err = r.CreateTexture(texturePath)
	} else {
		tex, err = r.CreateTextureFromImage(checkerboard(256, 32))
	}
	if err != nil {
		return err
	}

	cubeVertices, cubeIndices := cube()
	cubeBuf, err := r.CreateIndexedBuffer(cubeVertices, cubeIndices)
	if err != nil {
		return err
	}
	quadBuf, err := r.CreateBuffer(quadVertices)
	if err != nil {
		return err
	}

	view := vecmath.LookAt(vecmath.Vec3{0, 1.5, 4}, vecmath.Vec3{}, vecmath.Vec3{0, 1, 0})
	var perspective, ortho vecmath.Mat4

	frames := 0
	last := time.Now()
	start := last
	fpsTicker := time.NewTicker(time.Second)
	defer fpsTicker.Stop()

	for !platform.ShouldClose() && !quit.Load() {
		frameStart := time.Now()
		profiling.ResetFrame()

		changed, err := r.UpdateRenderArea()
		if err != nil {
			return err
		}
		if changed {
			if perspective, err = r.PerspectiveProjection(fieldOfView, 0.1, 100); err != nil {
				return err
			}
			if ortho, err = r.OrthoProjection(-1, 1); err != nil {
				return err
			}
			log.Info("render area", "width", r.Width(), "height", r.Height())
		}

		r.Clear(bg.R, bg.G, bg.B, bg.A, graphics.ClearColor|graphics.ClearDepth)

		angle := float32(time.Since(start).Seconds())
		r.DepthTestEnable()
		r.FaceCulling(true, graphics.CullBack)
		if err := r.SetMat4(shader, "uProj", perspective); err != nil {
			return err
		}
		if err := r.SetMat4(shader, "uView", view); err != nil {
			return err
		}
		if err := r.SetMat4(shader, "uWorld", vecmath.RotateY(angle).Mul(vecmath.RotateX(angle*0.5))); err != nil {
			return err
		}
		if err := r.BindTexture(tex, shader, "uTexture", 0); err != nil {
			return err
		}
		if err := r.DrawBufferElements(cubeBuf); err != nil {
			return err
		}

		// quad pinned to the top-left corner, in pixels
		r.DepthTestDisable()
		r.FaceCulling(false, graphics.CullBack)
		size := float32(96)
		x := -float32(r.Width())/2 + size
		y := float32(r.Height())/2 - size
		world := vecmath.Translate(x, y, 0).
			Mul(vecmath.RotateZ(math32.Sin(angle) * 0.25)).
			Mul(vecmath.Scale(size, size, 1))
		if err := r.SetMat4(shader, "uProj", ortho); err != nil {
			return err
		}
		if err := r.SetMat4(shader, "uView", vecmath.Identity()); err != nil {
			return err
		}
		if err := r.SetMat4(shader, "uWorld", world); err != nil {
			return err
		}
		if err := r.DrawBufferArray(quadBuf); err != nil {
			return err
		}
		r.UnbindTexture()

		if err := r.Present(); err != nil {
			return err
		}
		platform.PollEvents()

		if took := time.Since(frameStart); took > slowFrame {
			log.Debug("slow frame", "took", took, "draws", profiling.Draws(), "top", profiling.TopN(3))
		}
		limiter.Wait()

		frames++
		select {
		case <-fpsTicker.C:
			now := time.Now()
			if elapsed := now.Sub(last).Seconds(); elapsed > 0 {
				log.Info("fps", "fps", int(float64(frames)/elapsed+0.5), "stats", r.Stats())
			}
			frames = 0
			last = now
		default:
		}
	}
	return nil
}
