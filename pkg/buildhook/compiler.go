// SPDX-License-Identifier: MPL-2.0

package buildhook

import (
	"errors"
	"fmt"
)

// ErrUnsupportedCompiler is returned by Plugin.Apply when the host exposes
// neither a hook collection nor legacy callback registration.
var ErrUnsupportedCompiler = errors.New("unsupported build host")

type (
	// HookedCompiler is a host exposing a lifecycle hook collection.
	// A nil collection means the capability is absent.
	HookedCompiler interface {
		CompilerHooks() *Hooks
	}

	// LegacyCompiler is a host that registers callbacks directly by event
	// name.
	LegacyCompiler interface {
		Plugin(event string, fn AfterCompileFunc)
	}

	// registrar registers an after-compile callback on one host shape.
	registrar interface {
		registerAfterCompile(name string, fn AfterCompileFunc)
		kind() string
	}

	hookRegistrar struct {
		hooks *Hooks
	}

	legacyRegistrar struct {
		compiler LegacyCompiler
	}
)

// detectRegistrar picks the registration strategy for compiler. A non-nil
// hook collection takes precedence over legacy registration.
func detectRegistrar(compiler any) (registrar, error) {
	if hc, ok := compiler.(HookedCompiler); ok {
		if hooks := hc.CompilerHooks(); hooks != nil && hooks.AfterCompile != nil {
			return hookRegistrar{hooks: hooks}, nil
		}
	}
	if lc, ok := compiler.(LegacyCompiler); ok {
		return legacyRegistrar{compiler: lc}, nil
	}
	return nil, fmt.Errorf("%w: %T has neither hooks nor legacy plugin registration", ErrUnsupportedCompiler, compiler)
}

func (r hookRegistrar) registerAfterCompile(name string, fn AfterCompileFunc) {
	r.hooks.AfterCompile.TapAsync(name, fn)
}

func (hookRegistrar) kind() string { return "hooks" }

func (r legacyRegistrar) registerAfterCompile(_ string, fn AfterCompileFunc) {
	r.compiler.Plugin(AfterCompileEvent, fn)
}

func (legacyRegistrar) kind() string { return "legacy" }
