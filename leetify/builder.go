package leetify

import (
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

const (
	DefaultBaseURL = "https://api-public.cs-prod.leetify.com"
	DefaultTimeout = 30 * time.Second

	apiKeyHeader = "_leetify_key"
)

// Config is the resolved client configuration.
type Config struct {
	APIKey  string
	Timeout time.Duration
	BaseURL string
}

func (c Config) HasAPIKey() bool {
	return c.APIKey != ""
}

// Builder collects client settings. Validation happens in Build.
type Builder struct {
	cfg       Config
	doer      Doer
	logger    zerolog.Logger
	userAgent string
}

func NewBuilder() *Builder {
	return &Builder{
		cfg: Config{
			Timeout: DefaultTimeout,
			BaseURL: DefaultBaseURL,
		},
		logger:    zerolog.Nop(),
		userAgent: "leetify-go/" + Version,
	}
}

// APIKey sets the key sent with every request. Requests without a key are
// served from a lower rate-limit tier.
func (b *Builder) APIKey(key string) *Builder {
	b.cfg.APIKey = key
	return b
}

func (b *Builder) Timeout(d time.Duration) *Builder {
	b.cfg.Timeout = d
	return b
}

func (b *Builder) BaseURL(u string) *Builder {
	b.cfg.BaseURL = u
	return b
}

// HTTPClient replaces the default fasthttp client.
func (b *Builder) HTTPClient(d Doer) *Builder {
	b.doer = d
	return b
}

func (b *Builder) Logger(logger zerolog.Logger) *Builder {
	b.logger = logger
	return b
}

func (b *Builder) UserAgent(ua string) *Builder {
	b.userAgent = ua
	return b
}

// Build validates the settings and returns a ready Client. It fails with
// ErrInvalidConfig on the first invalid field.
func (b *Builder) Build() (*Client, error) {
	if b.cfg.Timeout <= 0 {
		return nil, invalidConfig("timeout", "must be positive, got "+b.cfg.Timeout.String())
	}
	if err := validateBaseURL(b.cfg.BaseURL); err != nil {
		return nil, err
	}

	doer := b.doer
	if doer == nil {
		doer = newFastHTTPClient(b.cfg.Timeout)
	}

	return &Client{
		cfg:       b.cfg,
		http:      doer,
		logger:    b.logger,
		userAgent: b.userAgent,
	}, nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return &Error{Kind: KindInvalidConfig, Param: "base_url", Message: "base_url: unparsable url", Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return invalidConfig("base_url", "scheme must be http or https: "+raw)
	}
	if u.Host == "" {
		return invalidConfig("base_url", "missing host: "+raw)
	}
	return nil
}

func newFastHTTPClient(timeout time.Duration) *fasthttp.Client {
	return &fasthttp.Client{
		Name:                "leetify-go",
		MaxConnsPerHost:     100,
		ReadTimeout:         timeout,
		WriteTimeout:        timeout,
		MaxIdleConnDuration: 1 * time.Minute,
	}
}

// New returns a client with default settings and no API key.
func New() *Client {
	return mustBuild(NewBuilder())
}

// NewWithAPIKey returns a client with default settings and the given key.
func NewWithAPIKey(key string) *Client {
	return mustBuild(NewBuilder().APIKey(key))
}

// mustBuild is only used with default timeout and base URL, which always
// validate.
func mustBuild(b *Builder) *Client {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}
