package configs

import (
	"sync"

	"github.com/codegangsta/inject"
)

var (
	injectorOnce sync.Once
	injector     inject.Injector
)

// GetInjector returns the process-wide injector with itself pre-mapped, so
// registration funcs taking inject.Injector can be Invoked directly.
func GetInjector() inject.Injector {
	injectorOnce.Do(func() {
		injector = inject.New()
		injector.MapTo(injector, (*inject.Injector)(nil))
	})
	return injector
}
