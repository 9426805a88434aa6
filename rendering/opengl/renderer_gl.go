package opengl

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"solarsystem/core"
	"solarsystem/rendering/opengl/shaders"
	"solarsystem/simulation"
)

// Options configure the window
type Options struct {
	Width, Height int
	Title         string
	VSync         bool
}

type uniformLocations struct {
	modelView       int32
	projection      int32
	transform       int32
	ambientProduct  int32
	diffuseProduct  int32
	specularProduct int32
	lightPosition   int32
	shininess       int32
	shadingType     int32
}

// SolarRenderer owns the window, the GL program and one vertex array per mesh slot.
// It implements rendering.Surface and must only be used from the thread that created it.
type SolarRenderer struct {
	window *glfw.Window
	log    *slog.Logger
	title  string

	program  uint32
	uniforms uniformLocations

	vaos    []uint32
	buffers []uint32

	onCommand func(simulation.Command)
	onResize  func(width, height int)
	onPick    func(x, y float64)
}

// NewSolarRenderer opens a window with a 4.1 core context and compiles the lighting program
func NewSolarRenderer(opts Options, logger *slog.Logger) (*SolarRenderer, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	window.MakeContextCurrent()

	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("opengl ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	r := &SolarRenderer{window: window, log: logger, title: opts.Title}

	program, err := shaders.CreateLightingProgram()
	if err != nil {
		r.Terminate()
		return nil, fmt.Errorf("failed to build lighting program: %w", err)
	}
	r.program = program
	r.lookupUniforms()

	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
		if r.onResize != nil {
			r.onResize(width, height)
		}
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		r.onKey(key, action)
	})

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button == glfw.MouseButtonLeft && action == glfw.Press {
			r.onClick()
		}
	})

	return r, nil
}

func (r *SolarRenderer) uniform(name string) int32 {
	loc := gl.GetUniformLocation(r.program, gl.Str(name+"\x00"))
	if loc < 0 {
		r.log.Debug("uniform not active", "name", name)
	}
	return loc
}

func (r *SolarRenderer) lookupUniforms() {
	r.uniforms = uniformLocations{
		modelView:       r.uniform("ModelView"),
		projection:      r.uniform("Projection"),
		transform:       r.uniform("Transform"),
		ambientProduct:  r.uniform("AmbientProduct"),
		diffuseProduct:  r.uniform("DiffuseProduct"),
		specularProduct: r.uniform("SpecularProduct"),
		lightPosition:   r.uniform("LightPosition"),
		shininess:       r.uniform("Shininess"),
		shadingType:     r.uniform("shadingType"),
	}
}

// SetCommandHandler registers the receiver of keyboard navigation commands
func (r *SolarRenderer) SetCommandHandler(fn func(simulation.Command)) {
	r.onCommand = fn
}

// SetPickHandler registers the receiver of left clicks, in framebuffer pixels
func (r *SolarRenderer) SetPickHandler(fn func(x, y float64)) {
	r.onPick = fn
}

// onClick converts the cursor from window to framebuffer coordinates
func (r *SolarRenderer) onClick() {
	if r.onPick == nil {
		return
	}
	x, y := r.window.GetCursorPos()
	winW, winH := r.window.GetSize()
	fbW, fbH := r.window.GetFramebufferSize()
	if winW > 0 && winH > 0 {
		x *= float64(fbW) / float64(winW)
		y *= float64(fbH) / float64(winH)
	}
	r.onPick(x, y)
}

// SetStatus shows s in the window title after the base title
func (r *SolarRenderer) SetStatus(s string) {
	if s == "" {
		r.window.SetTitle(r.title)
		return
	}
	r.window.SetTitle(r.title + " | " + s)
}

// SetResizeHandler registers the receiver of framebuffer size changes
func (r *SolarRenderer) SetResizeHandler(fn func(width, height int)) {
	r.onResize = fn
}

// FramebufferSize returns the drawable size in pixels
func (r *SolarRenderer) FramebufferSize() (int, int) {
	return r.window.GetFramebufferSize()
}

// UploadMeshes creates one vertex array per slot. Positions come first in the buffer, normals after.
func (r *SolarRenderer) UploadMeshes(meshes []*core.Mesh) error {
	if len(meshes) == 0 {
		return errors.New("no meshes to upload")
	}
	r.vaos = make([]uint32, len(meshes))
	r.buffers = make([]uint32, len(meshes))
	gl.GenVertexArrays(int32(len(meshes)), &r.vaos[0])
	gl.GenBuffers(int32(len(meshes)), &r.buffers[0])

	gl.UseProgram(r.program)
	posLoc := gl.GetAttribLocation(r.program, gl.Str(shaders.PositionAttribute+"\x00"))
	nrmLoc := gl.GetAttribLocation(r.program, gl.Str(shaders.NormalAttribute+"\x00"))
	if posLoc < 0 || nrmLoc < 0 {
		return fmt.Errorf("lighting program is missing vertex attributes (position %d, normal %d)", posLoc, nrmLoc)
	}

	for slot, mesh := range meshes {
		positions := mesh.Positions()
		normals := mesh.Normals()
		posBytes := len(positions) * 4
		nrmBytes := len(normals) * 4

		gl.BindVertexArray(r.vaos[slot])
		gl.BindBuffer(gl.ARRAY_BUFFER, r.buffers[slot])
		gl.BufferData(gl.ARRAY_BUFFER, posBytes+nrmBytes, nil, gl.STATIC_DRAW)
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, posBytes, gl.Ptr(positions))
		gl.BufferSubData(gl.ARRAY_BUFFER, posBytes, nrmBytes, gl.Ptr(normals))

		gl.EnableVertexAttribArray(uint32(posLoc))
		gl.VertexAttribPointer(uint32(posLoc), 4, gl.FLOAT, false, 0, gl.PtrOffset(0))
		gl.EnableVertexAttribArray(uint32(nrmLoc))
		gl.VertexAttribPointer(uint32(nrmLoc), 3, gl.FLOAT, false, 0, gl.PtrOffset(posBytes))

		r.log.Debug("uploaded mesh", "slot", slot, "vertices", mesh.VertexCount(), "mode", mesh.Mode)
	}
	gl.BindVertexArray(0)
	return nil
}

// Begin clears the frame and uploads the camera matrices
func (r *SolarRenderer) Begin(view, projection mgl32.Mat4) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.uniforms.modelView, 1, false, &view[0])
	gl.UniformMatrix4fv(r.uniforms.projection, 1, false, &projection[0])
}

// Bind selects a slot's vertex array
func (r *SolarRenderer) Bind(slot int) {
	gl.BindVertexArray(r.vaos[slot])
}

// SetLighting uploads a body's material, light and shading model
func (r *SolarRenderer) SetLighting(l simulation.Lighting) {
	gl.Uniform4fv(r.uniforms.ambientProduct, 1, &l.AmbientProduct[0])
	gl.Uniform4fv(r.uniforms.diffuseProduct, 1, &l.DiffuseProduct[0])
	gl.Uniform4fv(r.uniforms.specularProduct, 1, &l.SpecularProduct[0])
	gl.Uniform4fv(r.uniforms.lightPosition, 1, &l.LightPosition[0])
	gl.Uniform1f(r.uniforms.shininess, l.Shininess)
	gl.Uniform1f(r.uniforms.shadingType, float32(l.Shading))
}

// SetTransform uploads a body's model matrix
func (r *SolarRenderer) SetTransform(m mgl32.Mat4) {
	gl.UniformMatrix4fv(r.uniforms.transform, 1, false, &m[0])
}

// Draw issues the draw call for the bound slot
func (r *SolarRenderer) Draw(vertexCount int32) {
	gl.DrawArrays(gl.TRIANGLES, 0, vertexCount)
}

// End presents the frame
func (r *SolarRenderer) End() {
	gl.BindVertexArray(0)
	if err := gl.GetError(); err != gl.NO_ERROR {
		r.log.Warn("opengl error after frame", "code", fmt.Sprintf("0x%x", err))
	}
	r.window.SwapBuffers()
}

// ShouldClose reports whether the window was asked to close
func (r *SolarRenderer) ShouldClose() bool {
	return r.window.ShouldClose()
}

// Close asks the window to close at the end of the current loop iteration
func (r *SolarRenderer) Close() {
	r.window.SetShouldClose(true)
}

// WaitEvents processes pending events, blocking at most timeout seconds
func (r *SolarRenderer) WaitEvents(timeout float64) {
	glfw.WaitEventsTimeout(timeout)
}

// Terminate releases GL objects and the window
func (r *SolarRenderer) Terminate() {
	if len(r.buffers) > 0 {
		gl.DeleteBuffers(int32(len(r.buffers)), &r.buffers[0])
	}
	if len(r.vaos) > 0 {
		gl.DeleteVertexArrays(int32(len(r.vaos)), &r.vaos[0])
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
	r.window.Destroy()
	glfw.Terminate()
}
