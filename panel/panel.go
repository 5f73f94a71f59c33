// Package panel assembles the panel client: cookie jar, token store, session
// manager, request pipeline and the menu and gallery resource clients.
package panel

import (
	"fmt"
	"path/filepath"

	"golang.org/x/time/rate"

	"github.com/jrsteele09/restaurant-panel/gallery"
	"github.com/jrsteele09/restaurant-panel/internal/config"
	"github.com/jrsteele09/restaurant-panel/internal/metrics"
	"github.com/jrsteele09/restaurant-panel/menu"
	"github.com/jrsteele09/restaurant-panel/request"
	"github.com/jrsteele09/restaurant-panel/session"
	"github.com/jrsteele09/restaurant-panel/tokenstore"
)

type Config interface {
	config.EnvConfig
	config.APIConfig
	config.SessionConfig
	config.SecurityConfig
}

type Option func(*options)

type options struct {
	store    tokenstore.Store
	recorder metrics.Recorder
	session  []session.ManagerOption
}

// WithStore replaces the token store selected by the config.
func WithStore(store tokenstore.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

func WithRecorder(recorder metrics.Recorder) Option {
	return func(o *options) {
		o.recorder = recorder
	}
}

// WithSessionOptions passes extra options to the session manager.
func WithSessionOptions(opts ...session.ManagerOption) Option {
	return func(o *options) {
		o.session = append(o.session, opts...)
	}
}

// Panel is one operator's connection to the panel API.
type Panel struct {
	Session  *session.Manager
	Pipeline *request.Pipeline
	Menu     *menu.Client
	Gallery  *gallery.Client
	Jar      *tokenstore.CookieJar
}

func New(cfg Config, opts ...Option) (*Panel, error) {
	o := options{recorder: metrics.Nop{}}
	for _, opt := range opts {
		opt(&o)
	}

	mode, ok := session.ParseRefreshMode(cfg.GetRefreshMode())
	if !ok {
		return nil, fmt.Errorf("unknown refresh mode %q", cfg.GetRefreshMode())
	}

	store := o.store
	var jarOptions []tokenstore.CookieJarOption
	if store == nil {
		var err error
		if store, err = tokenstore.New(cfg); err != nil {
			return nil, err
		}
		if cfg.GetTokenStore() == config.TokenStoreFile {
			jarOptions = append(jarOptions, tokenstore.WithCookieFile(filepath.Join(cfg.GetDataFolder(), "cookies.json")))
		}
	}

	baseURL := cfg.GetAPIBaseURL()
	jar, err := tokenstore.NewCookieJar(baseURL, jarOptions...)
	if err != nil {
		return nil, err
	}
	client := request.NewHTTPClient(jar, cfg.GetRequestTimeout())

	sessionOptions := []session.ManagerOption{
		session.WithCookieJar(jar),
		session.WithRefreshMode(mode),
		session.WithExpiryMargin(cfg.GetExpiryMargin()),
		session.WithCookieNames(cfg.GetRefreshCookieName(), cfg.GetCSRFCookieName()),
		session.WithRecorder(o.recorder),
	}
	manager := session.NewManager(session.NewHTTPAuthAPI(baseURL, client), store, append(sessionOptions, o.session...)...)

	pipelineOptions := []request.PipelineOption{request.WithRecorder(o.recorder)}
	if cfg.GetCSRFEnabled() {
		pipelineOptions = append(pipelineOptions, request.WithCSRF(manager, cfg.GetCSRFHeaderName()))
	}
	if r := cfg.GetRequestRate(); r > 0 {
		pipelineOptions = append(pipelineOptions, request.WithRateLimiter(rate.NewLimiter(rate.Limit(r), cfg.GetRequestBurst())))
	}
	pipeline := request.New(baseURL, client, manager, pipelineOptions...)

	return &Panel{
		Session:  manager,
		Pipeline: pipeline,
		Menu:     menu.NewClient(pipeline),
		Gallery:  gallery.NewClient(pipeline),
		Jar:      jar,
	}, nil
}

// Close stops the session's refresh timer. Stored credentials are kept.
func (p *Panel) Close() {
	p.Session.Close()
}
