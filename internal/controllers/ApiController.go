package controllers

import (
	"errors"
	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
	"net/http"
	"sid/internal/apperror"
	"sid/internal/providers"
	"sid/internal/services"
	"strconv"
)

type ApiController struct {
	logger  providers.Logger
	service services.InsightServiceInterface
	cache   providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, service services.InsightServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func getLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return services.DefaultLimit, nil
	}
	limit := cast.ToInt(raw)
	if limit <= 0 {
		return 0, apperror.ValidationFailed("limit", "limit must be a positive integer")
	}
	return limit, nil
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		ac.writeError(w, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// writeError maps engine errors to transport statuses. Upstream
// detail never reaches the client, only a short generic message.
func (ac *ApiController) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, apperror.ErrValidation) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ac.logger.Errorf(providers.TypeGet, "request failed: %s", err)
	http.Error(w, "Upstream Unavailable", http.StatusBadGateway)
}

func (ac *ApiController) GetTopUsers(w http.ResponseWriter, r *http.Request) {
	limit, err := getLimit(r)
	if err != nil {
		ac.writeError(w, err)
		return
	}

	ac.serveFromCacheOrCompute(w, "top:"+strconv.Itoa(limit), func() (any, error) {
		return ac.service.TopUsers(r.Context(), limit)
	})
}

func (ac *ApiController) GetPosts(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	limit, err := getLimit(r)
	if err != nil {
		ac.writeError(w, err)
		return
	}

	ac.serveFromCacheOrCompute(w, "posts:"+kind+":"+strconv.Itoa(limit), func() (any, error) {
		return ac.service.Posts(r.Context(), kind, limit)
	})
}
