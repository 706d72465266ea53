package field

import (
	"net/http"

	"github.com/codegangsta/inject"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/me-thanay/SIH-krishi-mithr-sub000/httpx"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/log"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/notify"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/relay"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/telemetry"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/utils"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/voice"
)

// FieldAPI is the presentation boundary: snapshot and history reads, the
// live notification list with dismissal, relay control state and toggling,
// and the voice reader controls.
type FieldAPI struct {
	Poller     *telemetry.Poller `inject:"poller"`
	Queue      *notify.Queue     `inject:"queue"`
	Hub        *notify.Hub       `inject:"hub"`
	Dispatcher *relay.Dispatcher `inject:"dispatcher"`
	Reader     *voice.Reader     `inject:"voice"`

	logger   zerolog.Logger
	validate *validator.Validate
	upgrader websocket.Upgrader
}

func Register(injector inject.Injector, router *gin.Engine) {
	logger := log.Logger("field_api")
	api := &FieldAPI{
		logger:   logger,
		validate: validator.New(),
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
	}
	if err := injector.Apply(api); err != nil {
		logger.Fatal().Err(err).Msg("Failed to init field api.")
	}
	httpx.RegisterGinGroupHandler(&router.RouterGroup, api)
}

func (f *FieldAPI) BaseURL() string {
	return "api/v1"
}

func (f *FieldAPI) Middlewares() []gin.HandlerFunc {
	return []gin.HandlerFunc{}
}

func (f *FieldAPI) Register(group *gin.RouterGroup) {
	group.GET("/snapshot", f.GetSnapshot)
	group.GET("/history", f.GetHistory)
	group.GET("/notifications", f.ListNotifications)
	group.DELETE("/notifications/:id", f.DismissNotification)
	group.GET("/notifications/ws", f.NotificationSocket)
	group.GET("/relays", f.ListRelays)
	group.POST("/relays/:id/toggle", f.ToggleRelay)
	group.POST("/voice/speak", f.SpeakAlerts)
	group.POST("/voice/stop", f.StopSpeaking)
}

func (f *FieldAPI) GetSnapshot(ctx *gin.Context) {
	snap, connected := f.Poller.Current()
	ctx.JSON(http.StatusOK, utils.ResponseOK(map[string]interface{}{
		"snapshot":  snap,
		"connected": connected,
	}))
}

func (f *FieldAPI) GetHistory(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, utils.ResponseOK(map[string]interface{}{
		"entries": f.Poller.History(),
	}))
}

func (f *FieldAPI) ListNotifications(ctx *gin.Context) {
	records := f.Queue.Active()
	out := make([]gin.H, 0, len(records))
	for _, rec := range records {
		p := telemetry.PresentationFor(rec.Severity)
		out = append(out, gin.H{
			"record": rec,
			"icon":   p.Icon,
			"color":  p.Color,
		})
	}
	ctx.JSON(http.StatusOK, utils.ResponseOK(map[string]interface{}{"notifications": out}))
}

func (f *FieldAPI) DismissNotification(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := f.validate.Var(id, "required,uuid4"); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.ErrParameters)
		return
	}
	f.Queue.Dismiss(id)
	ctx.JSON(http.StatusOK, utils.ResponseOK(map[string]interface{}{"id": id}))
}

func (f *FieldAPI) NotificationSocket(ctx *gin.Context) {
	conn, err := f.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		f.logger.Error().Msgf("websocket upgrade error: %s", err)
		return
	}
	f.Hub.Serve(conn)
}

func (f *FieldAPI) ListRelays(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, utils.ResponseOK(map[string]interface{}{
		"relays": f.Dispatcher.States(),
	}))
}

func (f *FieldAPI) ToggleRelay(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := f.validate.Var(id, "required,oneof=motor hv hv_auto"); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.ErrParameters)
		return
	}
	state, err := f.Dispatcher.Toggle(id)
	switch {
	case err == relay.ErrRelaySending:
		ctx.JSON(http.StatusConflict, utils.ResponseErr(3001, "command already in flight", map[string]interface{}{"relay": id}))
	case err != nil:
		f.logger.Error().Msgf("toggle %s error: %s", id, err)
		ctx.JSON(http.StatusBadGateway, utils.ResponseErr(3002, err.Error(), map[string]interface{}{"relay": id}))
	default:
		ctx.JSON(http.StatusOK, utils.ResponseOK(state))
	}
}

type speakRequest struct {
	Locale string `json:"locale" validate:"omitempty,oneof=en hi"`
}

func (f *FieldAPI) SpeakAlerts(ctx *gin.Context) {
	var req speakRequest
	// The body is optional; an empty speak request keeps the current locale.
	_ = ctx.ShouldBindJSON(&req)
	if err := f.validate.Struct(req); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.ErrParameters)
		return
	}
	if req.Locale != "" {
		f.Reader.SetLocale(req.Locale)
	}
	if !f.Reader.Available() {
		ctx.JSON(http.StatusServiceUnavailable, utils.ResponseErr(3003, "speech capability unavailable", nil))
		return
	}
	f.Reader.Speak(f.Queue.Active())
	ctx.JSON(http.StatusOK, utils.ResponseOK(map[string]interface{}{"speaking": true}))
}

func (f *FieldAPI) StopSpeaking(ctx *gin.Context) {
	f.Reader.Stop()
	ctx.JSON(http.StatusOK, utils.ResponseOK(map[string]interface{}{"speaking": false}))
}
