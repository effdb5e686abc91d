package countries

//go:generate go run go.uber.org/mock/mockgen -source=./countries.go -destination=./mocks/countries_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lodge/config"
	"lodge/infras/otel"
	"lodge/shared/cache"
	"lodge/shared/constant"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"
)

const otelAttrCountry = "country"

var ErrCountryNotFound = errors.New("country not found")

// Resolver maps a country name typed by staff to its ISO 3166-1 alpha-2 code.
type Resolver interface {
	CountryCode(ctx context.Context, name string) (code string, err error)
	FlagURL(code string) string
}

type resolverImpl struct {
	client *http.Client
	config *config.Config
	cache  cache.RedisCache
	otel   otel.Otel
	group  singleflight.Group
}

type country struct {
	CCA2 string `json:"cca2"`
}

func New(config *config.Config, redisCache cache.RedisCache, otel otel.Otel) Resolver {
	timeout := time.Duration(config.External.Countries.TimeoutSeconds) * time.Second

	return &resolverImpl{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		config: config,
		cache:  redisCache,
		otel:   otel,
	}
}

// CountryCode returns the lower-cased code of the first country matching name. Results are
// cached per name and concurrent lookups of the same name share one request.
func (r *resolverImpl) CountryCode(ctx context.Context, name string) (code string, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".CountryCode")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	name = strings.ToLower(strings.TrimSpace(name))
	if name == constant.Empty {
		return constant.Empty, ErrCountryNotFound
	}

	scope.SetAttribute(otelAttrCountry, name)

	key := cache.NewKey(constant.CacheResourceCountries, name)

	result, err, _ := r.group.Do(name, func() (any, error) {
		return cache.Fetch(ctx, r.cache, key, r.config.Cache.TTL, func(ctx context.Context) (string, error) {
			return r.lookup(ctx, name)
		})
	})
	if err != nil {
		return constant.Empty, err //nolint:wrapcheck
	}

	code, _ = result.(string)

	return code, nil
}

func (r *resolverImpl) FlagURL(code string) string {
	return fmt.Sprintf("%s/%s.svg", strings.TrimSuffix(r.config.External.Countries.FlagURL, "/"), strings.ToLower(code))
}

func (r *resolverImpl) lookup(ctx context.Context, name string) (string, error) {
	endpoint := fmt.Sprintf("%s/name/%s?fields=cca2", strings.TrimSuffix(r.config.External.Countries.BaseURL, "/"), url.PathEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to build country request: %w", err)
	}

	req.Header.Set("Accept", constant.ContentTypeJSON)

	resp, err := r.client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("country", name).Msg("failed to call countries API")

		return constant.Empty, fmt.Errorf("failed to call countries API: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return constant.Empty, ErrCountryNotFound
	case resp.StatusCode >= http.StatusBadRequest:
		return constant.Empty, fmt.Errorf("countries API responded with status %d", resp.StatusCode)
	}

	var found []country
	if err := json.NewDecoder(resp.Body).Decode(&found); err != nil {
		return constant.Empty, fmt.Errorf("failed to decode countries response: %w", err)
	}

	if len(found) == 0 || found[0].CCA2 == constant.Empty {
		return constant.Empty, ErrCountryNotFound
	}

	return strings.ToLower(found[0].CCA2), nil
}
