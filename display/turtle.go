package display

import (
	"context"
	"fmt"
	"io"
	"math"
	"runtime"
	"strings"
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/golang/glog"

	"makina/interp"
)

func init() {
	// glfw/gl bind to the OS thread that created the context; every
	// call into this package must happen from that same thread,
	// matching the teacher's ui package (which relies on main() never
	// handing off to another goroutine before calling ui.Start).
	runtime.LockOSThread()
}

const (
	turtleWidth  = 800
	turtleHeight = 800
)

// angleForDirection maps a Direction to the turtle heading angle
// spec.md §6 documents: UP=0, RIGHT=90, DOWN=180, LEFT=270, measured
// clockwise from the top of the window.
func angleForDirection(d interp.Direction) float64 {
	switch d {
	case interp.Up:
		return 0
	case interp.Right:
		return 90
	case interp.Down:
		return 180
	case interp.Left:
		return 270
	default:
		return 0
	}
}

const lineVertexShader = `
#version 330
layout (location = 0) in vec2 position;
uniform vec2 viewport;
void main(void) {
  vec2 ndc = vec2(
    (position.x / viewport.x) * 2.0 - 1.0,
    1.0 - (position.y / viewport.y) * 2.0
  );
  gl_Position = vec4(ndc, 0.0, 1.0);
}
` + "\x00"

const lineFragmentShader = `
#version 330
uniform vec3 color;
out vec4 fragColor;
void main(void) {
  fragColor = vec4(color, 1.0);
}
` + "\x00"

// compileShader compiles one shader stage, matching the teacher's
// ui.compileShader error-reporting shape.
func compileShader(code string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	ccode, free := gl.Strs(code)
	defer free()
	gl.ShaderSource(shader, 1, ccode, nil)
	gl.CompileShader(shader)
	var result int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &result)
	if result == gl.FALSE {
		var length int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &length)
		log := strings.Repeat("\x00", int(length+1))
		gl.GetShaderInfoLog(shader, length, nil, gl.Str(log))
		return 0, fmt.Errorf("compiling shader: %v", log)
	}
	return shader, nil
}

func newLineProgram() (uint32, error) {
	vs, err := compileShader(lineVertexShader, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(lineFragmentShader, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)
	var result int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &result)
	if result == gl.FALSE {
		var length int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &length)
		log := strings.Repeat("\x00", int(length+1))
		gl.GetProgramInfoLog(program, length, nil, gl.Str(log))
		return 0, fmt.Errorf("linking program: %v", log)
	}
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)
	return program, nil
}

// Turtle is a go-gl/glfw window that traces each automaton's path as
// a colored polyline, one cell of the grid mapping to one cell of
// screen space. It adapts the teacher's ui package's window/shader
// bootstrap (ui.Start, compileShader, newProgram) to line drawing
// instead of texture blitting, since there is no framebuffer to
// upload here.
type Turtle struct {
	interp.NullDisplay

	window  *glfw.Window
	program uint32
	cellW   float32
	cellH   float32

	paths map[*interp.Automaton][][2]float32

	ctx    context.Context
	cancel context.CancelFunc
}

// NewTurtle opens the window and compiles the line shader. w is
// unused; Turtle renders to its own OS window.
func NewTurtle(_ io.Writer) *Turtle {
	if err := glfw.Init(); err != nil {
		glog.Fatalln(err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	window, err := glfw.CreateWindow(turtleWidth, turtleHeight, "makina", nil, nil)
	if err != nil {
		glog.Fatalln(err)
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		glog.Fatalln(err)
	}
	program, err := newLineProgram()
	if err != nil {
		glog.Fatalln(err)
	}
	gl.UseProgram(program)
	gl.LineWidth(2)

	ctx, cancel := context.WithCancel(context.Background())
	window.SetCloseCallback(func(*glfw.Window) { cancel() })

	return &Turtle{
		window:  window,
		program: program,
		cellW:   1,
		cellH:   1,
		paths:   make(map[*interp.Automaton][][2]float32),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (t *Turtle) cellSize(w *interp.World) (float32, float32) {
	g := w.Grid()
	cw := float32(turtleWidth)
	ch := float32(turtleHeight)
	if g.Width() > 0 {
		cw = float32(turtleWidth) / float32(g.Width())
	}
	if g.Height() > 0 {
		ch = float32(turtleHeight) / float32(g.Height())
	}
	return cw, ch
}

func (t *Turtle) point(a *interp.Automaton) [2]float32 {
	return [2]float32{
		(float32(a.Position[1]) + 0.5) * t.cellW,
		(float32(a.Position[0]) + 0.5) * t.cellH,
	}
}

// colorFor picks a hue round-robin from a fixed palette of six. Blit
// passes each automaton's index in the current live list, so an
// automaton's color shifts when one spawned before it halts.
func colorFor(index int) [3]float32 {
	hues := [][3]float32{
		{0.9, 0.3, 0.3},
		{0.3, 0.8, 0.4},
		{0.3, 0.5, 0.9},
		{0.9, 0.8, 0.2},
		{0.7, 0.3, 0.9},
		{0.2, 0.8, 0.8},
	}
	return hues[index%len(hues)]
}

// Blit redraws every tracked path. Called once per interpreter tick.
func (t *Turtle) Blit(w *interp.World) {
	if t.window.ShouldClose() {
		return
	}
	t.cellW, t.cellH = t.cellSize(w)
	live := w.Live()
	alive := make(map[*interp.Automaton]bool, len(live))
	for _, a := range live {
		alive[a] = true
		t.paths[a] = append(t.paths[a], t.point(a))
	}
	for a := range t.paths {
		if !alive[a] {
			delete(t.paths, a)
		}
	}

	gl.Viewport(0, 0, turtleWidth, turtleHeight)
	gl.ClearColor(0.08, 0.08, 0.1, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	viewportLoc := gl.GetUniformLocation(t.program, gl.Str("viewport\x00"))
	gl.Uniform2f(viewportLoc, turtleWidth, turtleHeight)
	colorLoc := gl.GetUniformLocation(t.program, gl.Str("color\x00"))

	i := 0
	for _, a := range live {
		path := t.paths[a]
		c := colorFor(i)
		gl.Uniform3f(colorLoc, c[0], c[1], c[2])
		if len(path) >= 2 {
			drawPolyline(path)
		}
		drawPolyline(headingMarker(t.point(a), angleForDirection(a.Direction), t.cellW, t.cellH))
		i++
	}

	t.window.SwapBuffers()
	glfw.PollEvents()
}

// headingMarker draws a short stroke from pos in the direction of
// angle degrees (spec.md §6's UP=0/RIGHT=90/DOWN=180/LEFT=270,
// clockwise from the top of the window), the way a turtle-graphics
// heading indicator would, rather than reusing the grid-space
// row/column delta the interpreter itself steps by.
func headingMarker(pos [2]float32, angleDegrees float64, cellW, cellH float32) [][2]float32 {
	rad := angleDegrees * math.Pi / 180
	dx := float32(math.Sin(rad)) * cellW * 0.4
	dy := float32(-math.Cos(rad)) * cellH * 0.4
	return [][2]float32{pos, {pos[0] + dx, pos[1] + dy}}
}

func drawPolyline(points [][2]float32) {
	flat := make([]float32, 0, len(points)*2)
	for _, p := range points {
		flat = append(flat, p[0], p[1])
	}
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(flat)*4, gl.Ptr(flat), gl.STREAM_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(0)
	gl.DrawArrays(gl.LINE_STRIP, 0, int32(len(points)))
	gl.DeleteBuffers(1, &vbo)
	gl.DeleteVertexArrays(1, &vao)
}

// Error draws a red cross at pos and then blocks, pumping window
// events, until the window is closed. This is an explicit improvement
// over the Python original's uninterruptible `while True:
// turtle.update()` error loop (spec.md's supplemented features): the
// block is cancellable the moment the user closes the window instead
// of hanging the process forever.
func (t *Turtle) Error(err error, pos [2]int) {
	cx := (float32(pos[1]) + 0.5) * t.cellW
	cy := (float32(pos[0]) + 0.5) * t.cellH
	size := t.cellW / 2
	if t.cellH < t.cellW {
		size = t.cellH / 2
	}
	colorLoc := gl.GetUniformLocation(t.program, gl.Str("color\x00"))
	gl.Uniform3f(colorLoc, 1, 0, 0)
	drawPolyline([][2]float32{{cx - size, cy - size}, {cx + size, cy + size}})
	drawPolyline([][2]float32{{cx - size, cy + size}, {cx + size, cy - size}})
	t.window.SwapBuffers()

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-t.ctx.Done():
			return
		case <-ticker.C:
			glfw.PollEvents()
			if t.window.ShouldClose() {
				t.cancel()
				return
			}
		}
	}
}
