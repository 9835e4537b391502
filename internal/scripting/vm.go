// Package scripting loads per-spell hooks written in Lua and exposes them
// to the engine as spell.Script values.
//
// A script file declares hooks with
//
//	spell_script(133, {
//	    check_cast = function(ctx) ... end,
//	    on_effect_hit = function(ctx) ... end,
//	    after_hit = function(ctx) ... end,
//	    check_proc = function(ctx) ... end,
//	})
//
// Every hook is optional.
package scripting

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/Shopify/go-lua"

	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/game/spell"
)

// hooksGlobal holds the declared hook tables keyed by spell id.
const hooksGlobal = "__spell_hooks"

const (
	hookCheckCast   = "check_cast"
	hookOnEffectHit = "on_effect_hit"
	hookAfterHit    = "after_hit"
	hookCheckProc   = "check_proc"
)

var ErrBadScript = errors.New("bad spell script")

type hookSet uint8

const (
	hasCheckCast hookSet = 1 << iota
	hasOnEffectHit
	hasAfterHit
	hasCheckProc
)

var hookBits = []struct {
	name string
	bit  hookSet
}{
	{hookCheckCast, hasCheckCast},
	{hookOnEffectHit, hasOnEffectHit},
	{hookAfterHit, hasAfterHit},
	{hookCheckProc, hasCheckProc},
}

// VM owns one Lua state. Hooks of every map run through it, one at a time.
type VM struct {
	mu    sync.Mutex
	l     *lua.State
	hooks map[data.SpellID]hookSet
}

func New() *VM {
	vm := &VM{
		l:     lua.NewState(),
		hooks: make(map[data.SpellID]hookSet),
	}
	lua.OpenLibraries(vm.l)
	vm.l.NewTable()
	vm.l.SetGlobal(hooksGlobal)
	vm.l.Register("spell_script", vm.declare)
	vm.l.Register("log", luaLog)
	return vm
}

// LoadDir runs every *.lua file of dir in name order. A missing directory
// loads nothing.
func (vm *VM) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		slog.Warn("scripts directory not found, no spell scripts loaded", "dir", dir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading scripts dir %s: %w", dir, err)
	}

	var errs []error
	files := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".lua") {
			continue
		}
		if err := vm.LoadFile(filepath.Join(dir, e.Name())); err != nil {
			errs = append(errs, err)
			continue
		}
		files++
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	slog.Info("spell scripts loaded", "dir", dir, "files", files, "spells", len(vm.hooks))
	return nil
}

func (vm *VM) LoadFile(path string) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if err := lua.LoadFile(vm.l, path, ""); err != nil {
		return fmt.Errorf("loading script %s: %w", path, err)
	}
	if err := vm.l.ProtectedCall(0, 0, 0); err != nil {
		return fmt.Errorf("running script %s: %w", path, err)
	}
	return nil
}

// LoadString runs a chunk of Lua source; name only labels errors.
func (vm *VM) LoadString(name, src string) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if err := lua.LoadString(vm.l, src); err != nil {
		return fmt.Errorf("loading script %s: %w", name, err)
	}
	if err := vm.l.ProtectedCall(0, 0, 0); err != nil {
		return fmt.Errorf("running script %s: %w", name, err)
	}
	return nil
}

// Spells returns the scripted spell ids in ascending order.
func (vm *VM) Spells() []data.SpellID {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	ids := make([]data.SpellID, 0, len(vm.hooks))
	for id := range vm.hooks {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Install attaches one script per declared spell to r and returns how many
// were added.
func (vm *VM) Install(r *spell.ScriptRegistry) int {
	ids := vm.Spells()
	for _, id := range ids {
		vm.mu.Lock()
		hooks := vm.hooks[id]
		vm.mu.Unlock()
		r.Add(id, &Script{vm: vm, spell: id, hooks: hooks})
	}
	return len(ids)
}

// declare implements spell_script(id, hooks). A later declaration for the
// same spell replaces the earlier one.
func (vm *VM) declare(l *lua.State) int {
	id := lua.CheckInteger(l, 1)
	lua.CheckType(l, 2, lua.TypeTable)
	if id <= 0 {
		lua.ArgumentError(l, 1, "spell id must be positive")
	}

	var hooks hookSet
	for _, h := range hookBits {
		l.Field(2, h.name)
		switch {
		case l.IsFunction(-1):
			hooks |= h.bit
		case !l.IsNil(-1):
			lua.Errorf(l, "spell %d: %s must be a function", id, h.name)
		}
		l.Pop(1)
	}

	l.Global(hooksGlobal)
	l.PushValue(2)
	l.RawSetInt(-2, id)
	l.Pop(1)

	sid := data.SpellID(id)
	if _, ok := vm.hooks[sid]; ok {
		slog.Warn("spell script redeclared, replacing", "spell", sid)
	}
	vm.hooks[sid] = hooks
	return 0
}

func luaLog(l *lua.State) int {
	msg := lua.CheckString(l, 1)
	slog.Debug("spell script", "msg", msg)
	return 0
}

// call runs one hook of spell id with the context table built by push and
// hands the results to read. A spell without that hook is a no-op.
func (vm *VM) call(id data.SpellID, hook string, results int, push func(*lua.State), read func(*lua.State)) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	l := vm.l
	top := l.Top()
	defer l.SetTop(top)

	l.Global(hooksGlobal)
	l.RawGetInt(-1, int(id))
	if !l.IsTable(-1) {
		return nil
	}
	l.Field(-1, hook)
	if !l.IsFunction(-1) {
		return nil
	}
	l.NewTable()
	push(l)
	if err := l.ProtectedCall(1, results, 0); err != nil {
		return fmt.Errorf("spell %d %s: %w", id, hook, err)
	}
	read(l)
	return nil
}

func setInt(l *lua.State, key string, v int) {
	l.PushInteger(v)
	l.SetField(-2, key)
}

func setString(l *lua.State, key, v string) {
	l.PushString(v)
	l.SetField(-2, key)
}

func setBool(l *lua.State, key string, v bool) {
	l.PushBoolean(v)
	l.SetField(-2, key)
}
