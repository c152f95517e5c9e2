// Package visualize renders a grid and its mark plane to a window via
// OpenGL, and reads the keyboard into the engine's piano input bitset.
package visualize

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/orcarun/orca/engine"
)

// Shaders for a single full-window 2D texture.
const (
	vertexShader = `
  #version 330

  attribute vec3 position;
  attribute vec2 uv;
  varying vec2 vuv;
  void main(void){
    gl_Position = vec4(position, 1.0);
    vuv = uv;
  }
  ` + "\x00"

	fragmentShader = `
  #version 330

  varying vec2 vuv;
  uniform sampler2D texture;
  void main(void){
    gl_FragColor = texture2D(texture, vuv);
  }
  ` + "\x00"
)

// compileShader compiles a single shader stage and reports its GL log on
// failure.
func compileShader(code string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	ccode := gl.Str(code)
	gl.ShaderSource(shader, 1, &ccode, nil)
	gl.CompileShader(shader)
	var result int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &result)
	if result == gl.FALSE {
		var length int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &length)
		log := strings.Repeat("\x00", int(length+1))
		gl.GetShaderInfoLog(shader, length, nil, gl.Str(log))
		return 0, fmt.Errorf("visualize: compile shader: %v\n%v", code, log)
	}
	return shader, nil
}

// newProgram links the vertex and fragment shaders into a usable program.
func newProgram() (uint32, error) {
	vs, err := compileShader(vertexShader, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragmentShader, gl.FRAGMENT_SHADER)
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
		return 0, fmt.Errorf("visualize: link program: %v", log)
	}
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)
	return program, nil
}

var vertexPosition = []float32{
	1, 1,
	-1, 1,
	-1, -1,
	1, -1,
}
var vertexUV = []float32{
	1, 0,
	0, 0,
	0, 1,
	1, 1,
}

func updateTexture(program uint32, img *image.RGBA) {
	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Rect.Size().X), int32(img.Rect.Size().Y),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	positionLocation := uint32(gl.GetAttribLocation(program, gl.Str("position\x00")))
	uvLocation := uint32(gl.GetAttribLocation(program, gl.Str("uv\x00")))
	textureLocation := gl.GetUniformLocation(program, gl.Str("texture\x00"))
	gl.EnableVertexAttribArray(positionLocation)
	gl.EnableVertexAttribArray(uvLocation)
	gl.Uniform1i(textureLocation, 0)
	gl.VertexAttribPointer(positionLocation, 2, gl.FLOAT, false, 0, gl.Ptr(vertexPosition))
	gl.VertexAttribPointer(uvLocation, 2, gl.FLOAT, false, 0, gl.Ptr(vertexUV))
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.DrawArrays(gl.TRIANGLE_FAN, 0, 4)
}

// glyphColor picks a display color for a glyph: distinct hues for
// uppercase (awake) operators, lowercase (dormant) operators, digits,
// bang, and the inert background, so a grid reads at a glance.
func glyphColor(g engine.Glyph, flags engine.MarkFlag) color.RGBA {
	switch {
	case flags&engine.FlagLock != 0:
		return color.RGBA{80, 40, 40, 255}
	case flags&engine.FlagSleep != 0:
		return color.RGBA{40, 40, 80, 255}
	case g == engine.Inert:
		return color.RGBA{20, 20, 20, 255}
	case g == engine.Bang:
		return color.RGBA{255, 220, 80, 255}
	case engine.IsUppercase(g):
		return color.RGBA{120, 220, 160, 255}
	case engine.IsAlpha(g):
		return color.RGBA{80, 140, 110, 255}
	default:
		return color.RGBA{200, 200, 200, 255}
	}
}

// gridImage rasterizes a grid at one pixel per cell.
func gridImage(grid *engine.Grid, marks *engine.MarkPlane) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, grid.Width, grid.Height))
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			g := grid.Peek(y, x)
			img.SetRGBA(x, y, glyphColor(g, marks.At(y, x)))
		}
	}
	return img
}

// keyGlyphs is the fixed keyboard layout visualize reads into piano
// bits, in the same order as engine's pianoLayout: digit row, then three
// letter rows (the last one cut short after C).
var keyGlyphs = []glfw.Key{
	glfw.Key1, glfw.Key2, glfw.Key3, glfw.Key4, glfw.Key5,
	glfw.Key6, glfw.Key7, glfw.Key8, glfw.Key9, glfw.Key0,
	glfw.KeyQ, glfw.KeyW, glfw.KeyE, glfw.KeyR, glfw.KeyT,
	glfw.KeyY, glfw.KeyU, glfw.KeyI, glfw.KeyO, glfw.KeyP,
	glfw.KeyA, glfw.KeyS, glfw.KeyD, glfw.KeyF, glfw.KeyG,
	glfw.KeyH, glfw.KeyJ, glfw.KeyK, glfw.KeyL,
	glfw.KeyZ, glfw.KeyX, glfw.KeyC,
}

// readPiano samples the keyboard into a PianoBits value, one bit per
// entry in keyGlyphs.
func readPiano(window *glfw.Window) engine.PianoBits {
	var bits engine.PianoBits
	for i, key := range keyGlyphs {
		if window.GetKey(key) == glfw.Press {
			bits |= engine.PianoBits(1) << uint(i)
		}
	}
	return bits
}

// TickFunc advances the simulation by one tick, given the piano bits
// held during that frame (ordinarily produced by readPiano).
type TickFunc func(piano engine.PianoBits)

// Run opens a window sized width x height and drives render/input: on
// every frame it samples the keyboard, invokes tick with that input,
// then rasterizes grid/marks to the window's texture. Run blocks until
// the window is closed.
func Run(grid *engine.Grid, marks *engine.MarkPlane, width, height int, tick TickFunc) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("visualize: glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	window, err := glfw.CreateWindow(width, height, "orca", nil, nil)
	if err != nil {
		return fmt.Errorf("visualize: create window: %w", err)
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return fmt.Errorf("visualize: gl init: %w", err)
	}
	program, err := newProgram()
	if err != nil {
		return err
	}
	gl.UseProgram(program)

	for !window.ShouldClose() {
		piano := readPiano(window)
		tick(piano)
		updateTexture(program, gridImage(grid, marks))
		window.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}
