package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/models"
	"github.com/taigrr/prism/pkg/render"
	"github.com/taigrr/prism/pkg/scene"
)

func viewCommand() *cobra.Command {
	var (
		fps  int
		mode string
		bg   string
	)
	cmd := &cobra.Command{
		Use:   "view [model.glb]",
		Short: "View a model interactively in the terminal",
		Long: `View a model interactively in the terminal, rendered with the
scan-line rasterizer onto half-block cells. Without a model argument a
colored demo cube is shown.

Controls:

  Mouse drag  - Rotate model (yaw/pitch)
  Scroll      - Zoom in/out
  W/S         - Pitch up/down
  A/D         - Yaw left/right
  Q/E         - Roll left/right
  Space       - Apply random impulse
  R           - Reset rotation and zoom
  M           - Cycle shading mode (wireframe, flat, phong)
  +/-         - Adjust zoom
  Esc         - Quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shading, err := parseMode(mode)
			if err != nil {
				return err
			}

			var bgR, bgG, bgB uint8 = 30, 30, 40
			fmt.Sscanf(bg, "%d,%d,%d", &bgR, &bgG, &bgB)

			var model *scene.Model
			if len(args) == 1 {
				model, err = models.Load(args[0])
				if err != nil {
					return fmt.Errorf("load model: %w", err)
				}
				model = recentered(model)
			} else {
				model = cubeModel()
			}

			return runViewer(cmd.Context(), model, shading, scene.RGB(bgR, bgG, bgB), fps)
		},
	}
	cmd.Flags().IntVar(&fps, "fps", 60, "Target FPS")
	cmd.Flags().StringVar(&mode, "mode", "phong", "Shading mode: wireframe, flat, phong")
	cmd.Flags().StringVar(&bg, "bg", "30,30,40", "Background color (R,G,B)")
	return cmd
}

// rotationAxis tracks position and velocity for one rotation axis with
// spring decay.
type rotationAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64
}

// newRotationAxis creates an axis with a harmonica spring for smooth
// velocity decay. Frequency 4.0, damping 1.0 = critically damped.
func newRotationAxis(fps int) rotationAxis {
	return rotationAxis{
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update applies velocity to position and animates velocity toward 0.
func (a *rotationAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// rotationState holds rotation with harmonica spring physics.
type rotationState struct {
	Pitch, Yaw, Roll rotationAxis
	fps              int
}

func newRotationState(fps int) *rotationState {
	return &rotationState{
		Pitch: newRotationAxis(fps),
		Yaw:   newRotationAxis(fps),
		Roll:  newRotationAxis(fps),
		fps:   fps,
	}
}

func (r *rotationState) Update() {
	r.Pitch.Update()
	r.Yaw.Update()
	r.Roll.Update()
}

func (r *rotationState) ApplyImpulse(pitch, yaw, roll float64) {
	r.Pitch.Velocity += pitch
	r.Yaw.Velocity += yaw
	r.Roll.Velocity += roll
}

func (r *rotationState) Reset() {
	r.Pitch = newRotationAxis(r.fps)
	r.Yaw = newRotationAxis(r.fps)
	r.Roll = newRotationAxis(r.fps)
}

func runViewer(parent context.Context, model *scene.Model, shading render.ShadingMode, bg scene.Color, fps int) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable any-event mouse tracking and SGR extended mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h")
	fmt.Fprint(os.Stdout, "\x1b[?1006h")

	// The canvas is twice the terminal height; each cell shows two
	// pixels through the upper half block.
	canvas := render.NewCanvas(width, height*2, bg)
	rast := render.NewRasterizer(canvas, shading)

	s := scene.NewScene(float64(width)/float64(height*2), 1, bg)
	s.AddModel("model", model)
	s.AddInstance(scene.NewInstance("model", fitScale(model), math3d.Identity(), math3d.V3(0, 0, 5)))
	addViewerLights(s)
	s.SetCamera(math3d.V3(0, 0, 0), math3d.Identity(), 1)

	rotation := newRotationState(fps)
	viewZ := 5.0

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	inputTorque := struct{ pitch, yaw, roll float64 }{}
	const torqueStrength = 3.0

	var mouseDown bool
	var lastMouseX, lastMouseY int

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				canvas = render.NewCanvas(width, height*2, bg)
				rast = render.NewRasterizer(canvas, shading)
				s.ViewportWidth = float64(width) / float64(height*2)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("r"):
					rotation.Reset()
					viewZ = 5.0
				case ev.MatchString("w", "up"):
					inputTorque.pitch = -torqueStrength
				case ev.MatchString("s", "down"):
					inputTorque.pitch = torqueStrength
				case ev.MatchString("a", "left"):
					inputTorque.yaw = -torqueStrength
				case ev.MatchString("d", "right"):
					inputTorque.yaw = torqueStrength
				case ev.MatchString("q"):
					inputTorque.roll = -torqueStrength
				case ev.MatchString("e"):
					inputTorque.roll = torqueStrength
				case ev.MatchString("space"):
					rotation.ApplyImpulse(
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
					)
				case ev.MatchString("+", "="):
					viewZ = math.Max(2, viewZ-0.5)
				case ev.MatchString("-", "_"):
					viewZ = math.Min(20, viewZ+0.5)
				case ev.MatchString("m"):
					shading = (shading + 1) % 3
					rast = render.NewRasterizer(canvas, shading)
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w"), ev.MatchString("up"), ev.MatchString("s"), ev.MatchString("down"):
					inputTorque.pitch = 0
				case ev.MatchString("a"), ev.MatchString("left"), ev.MatchString("d"), ev.MatchString("right"):
					inputTorque.yaw = 0
				case ev.MatchString("q"), ev.MatchString("e"):
					inputTorque.roll = 0
				}

			case uv.MouseClickEvent:
				mouseDown = true
				lastMouseX, lastMouseY = ev.X, ev.Y

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if mouseDown {
					dx := ev.X - lastMouseX
					dy := ev.Y - lastMouseY
					rotation.ApplyImpulse(float64(dy)*0.03, float64(dx)*0.03, 0)
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					viewZ = math.Max(2, viewZ-0.5)
				case uv.MouseWheelDown:
					viewZ = math.Min(20, viewZ+0.5)
				}
			}
		}
	}()

	targetDuration := time.Second / time.Duration(fps)
	lastFrame := time.Now()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	scale := fitScale(model)

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now

		if dt > 0.1 {
			dt = 0.1
		}

		// Apply input torque and decay it (key release events unreliable)
		rotation.ApplyImpulse(
			inputTorque.pitch*dt,
			inputTorque.yaw*dt,
			inputTorque.roll*dt,
		)
		inputTorque.pitch *= 0.9
		inputTorque.yaw *= 0.9
		inputTorque.roll *= 0.9

		rotation.Update()

		transform := math3d.RotateX(rotation.Pitch.Position).
			Mul(math3d.RotateY(rotation.Yaw.Position)).
			Mul(math3d.RotateZ(rotation.Roll.Position))
		s.Instances[0] = scene.NewInstance("model", scale, transform, math3d.V3(0, 0, viewZ))

		canvas.Clear(bg)
		rast.Render(s)

		canvas.Draw(term, uv.Rect(0, 0, width, height))
		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
