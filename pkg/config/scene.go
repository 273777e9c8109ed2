// Package config reads scene descriptions written in Lua.
//
// A scene file is an ordinary Lua chunk that assigns globals:
//
//	width, height = 800, 800
//	camera = {1, 1, 3}
//	center = {x = 0, y = 0, z = 0}
//	light  = {2, 2, 1}
//	model  = "obj/african_head.obj"
//	output = "head.png"
//
// Unset globals keep their defaults. Relative file paths are resolved
// against the directory holding the scene file.
package config

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/taigrr/softrast/pkg/math3d"
	"github.com/taigrr/softrast/pkg/render"
	lua "github.com/yuin/gopher-lua"
)

// evalTimeout bounds how long a scene script may run.
const evalTimeout = 5 * time.Second

// Scene is a render scene plus the files it draws from and writes to.
type Scene struct {
	Render    render.Scene
	Model     string
	Output    string
	Diffuse   string
	Normal    string
	Specular  string
	Wireframe bool
	Fit       bool
	Frames    int // Turntable frame count
}

// Default returns the scene used when no file overrides it.
func Default() Scene {
	return Scene{
		Render: render.DefaultScene(800, 800),
		Output: "output.png",
		Frames: 36,
	}
}

// LoadScene evaluates the Lua file at path on top of Default.
func LoadScene(ctx context.Context, path string) (Scene, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, fmt.Errorf("read scene: %w", err)
	}

	s, err := ParseScene(ctx, string(src), Default())
	if err != nil {
		return Scene{}, fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for _, p := range []*string{&s.Model, &s.Output, &s.Diffuse, &s.Normal, &s.Specular} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	render.Logger().Debug("loaded scene", "path", path, "model", s.Model, "width", s.Render.Width, "height", s.Render.Height)
	return s, nil
}

// ParseScene runs src in a sandboxed interpreter (base, math and string
// libraries only) and overlays the globals it sets onto defaults.
func ParseScene(ctx context.Context, src string, defaults Scene) (Scene, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.MathLibName, lua.OpenMath},
		{lua.StringLibName, lua.OpenString},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	ctx, cancel := context.WithTimeout(ctx, evalTimeout)
	defer cancel()
	L.SetContext(ctx)

	if err := L.DoString(src); err != nil {
		return Scene{}, fmt.Errorf("evaluate scene: %w", err)
	}

	s := defaults
	r := reader{L: L}
	r.intVar("width", &s.Render.Width)
	r.intVar("height", &s.Render.Height)
	r.vec3("camera", &s.Render.Camera.Position)
	r.vec3("center", &s.Render.Camera.Center)
	r.vec3("up", &s.Render.Camera.Up)
	r.vec3("light", &s.Render.Light)
	r.color("background", &s.Render.Background)
	r.stringVar("model", &s.Model)
	r.stringVar("output", &s.Output)
	r.stringVar("diffuse", &s.Diffuse)
	r.stringVar("normal", &s.Normal)
	r.stringVar("specular", &s.Specular)
	r.boolVar("wireframe", &s.Wireframe)
	r.boolVar("fit", &s.Fit)
	r.intVar("frames", &s.Frames)
	if r.err != nil {
		return Scene{}, r.err
	}

	if err := s.Validate(); err != nil {
		return Scene{}, err
	}
	return s, nil
}

// MaxFrameSize bounds each frame dimension.
const MaxFrameSize = 1 << 15

// Validate checks the frame size and frame count.
func (s Scene) Validate() error {
	w, h := s.Render.Width, s.Render.Height
	if w <= 0 || h <= 0 {
		return fmt.Errorf("frame size %dx%d must be positive", w, h)
	}
	if w > MaxFrameSize || h > MaxFrameSize {
		return fmt.Errorf("frame size %dx%d exceeds %d", w, h, MaxFrameSize)
	}
	if s.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", s.Frames)
	}
	return nil
}

// reader copies typed globals out of a Lua state, keeping the first error.
type reader struct {
	L   *lua.LState
	err error
}

func (r *reader) global(name string, want lua.LValueType) (lua.LValue, bool) {
	if r.err != nil {
		return nil, false
	}
	v := r.L.GetGlobal(name)
	if v == lua.LNil {
		return nil, false
	}
	if v.Type() != want {
		r.err = fmt.Errorf("%s: expected %s, got %s", name, want, v.Type())
		return nil, false
	}
	return v, true
}

func (r *reader) intVar(name string, dst *int) {
	if v, ok := r.global(name, lua.LTNumber); ok {
		f := float64(lua.LVAsNumber(v))
		if math.IsNaN(f) || math.Abs(f) > math.MaxInt32 {
			r.err = fmt.Errorf("%s: %v is out of range", name, f)
			return
		}
		*dst = int(f)
	}
}

func (r *reader) stringVar(name string, dst *string) {
	if v, ok := r.global(name, lua.LTString); ok {
		*dst = lua.LVAsString(v)
	}
}

func (r *reader) boolVar(name string, dst *bool) {
	if v, ok := r.global(name, lua.LTBool); ok {
		*dst = lua.LVAsBool(v)
	}
}

// components reads n numbers from a table given either positionally
// ({1, 2, 3}) or by key.
func (r *reader) components(name string, keys ...string) ([]float64, bool) {
	v, ok := r.global(name, lua.LTTable)
	if !ok {
		return nil, false
	}
	tbl := v.(*lua.LTable)
	out := make([]float64, len(keys))
	for i, key := range keys {
		c := tbl.RawGetInt(i + 1)
		if c == lua.LNil {
			c = tbl.RawGetString(key)
		}
		n, ok := c.(lua.LNumber)
		if !ok {
			r.err = fmt.Errorf("%s.%s: expected number, got %s", name, key, c.Type())
			return nil, false
		}
		out[i] = float64(n)
	}
	return out, true
}

func (r *reader) vec3(name string, dst *math3d.Vec3) {
	if c, ok := r.components(name, "x", "y", "z"); ok {
		*dst = math3d.V3(c[0], c[1], c[2])
	}
}

func (r *reader) color(name string, dst *render.Color) {
	if c, ok := r.components(name, "r", "g", "b"); ok {
		*dst = render.RGB(channel(c[0]), channel(c[1]), channel(c[2]))
	}
}

func channel(f float64) uint8 {
	if math.IsNaN(f) {
		return 0
	}
	return uint8(max(0, min(255, f)))
}
