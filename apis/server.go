package apis

import (
	"fmt"

	"github.com/codegangsta/inject"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"

	"github.com/me-thanay/SIH-krishi-mithr-sub000/apis/field"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/apis/metrics"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/configs"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/httpx"
)

func newEngine(injector inject.Injector) (*gin.Engine, error) {
	engine := gin.Default()
	h := cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Authorization"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTION", "HEAD"},
		AllowWebSockets:  true,
		AllowCredentials: true,
	})
	engine.Use(h)
	injector.Map(engine)

	initFuncs := []interface{}{
		field.Register,
		metrics.Register,
	}

	for _, f := range initFuncs {
		if _, err := injector.Invoke(f); err != nil {
			return nil, err
		}
	}
	engine.Use(httpx.PromMiddleware(nil))
	return engine, nil
}

func Run(injector inject.Injector, cfg *configs.Config) error {
	engine, err := newEngine(injector)
	if err != nil {
		return err
	}
	if cfg.Server.EnablePprof {
		pprof.Register(engine)
	}
	return engine.Run(fmt.Sprintf(":%d", cfg.Server.Port))
}
