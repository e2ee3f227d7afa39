package controllers

import (
	json "github.com/goccy/go-json"
	"net/http"
	"regexp"
	"strings"
	"vcheck/internal/checkin/interfaces"
	"vcheck/internal/models"
	"vcheck/internal/providers"
	"vcheck/internal/services"
	"vcheck/internal/structures"
)

const maxRequestBodySize = 64 << 10 // 64 KB

var (
	versionPath  = regexp.MustCompile(`^[0-9.]+`)
	jsonpPattern = regexp.MustCompile(`^[A-Za-z_$][0-9A-Za-z_$.]*$`)
)

// Form keys sent by periodic checkins.
const (
	formVersion     = "Version"
	formServerCount = "Number-Of-Servers"
	formPlatform    = "Uname"
	formTableCount  = "Cooked-Number-Of-Tables"
	formShardSizes  = "Cooked-Size-Of-Shards"
)

type ApiController struct {
	logger    providers.Logger
	ingestion interfaces.IngestionInterface
	gate      services.GateServiceInterface
	cache     providers.CacheProviderInterface
	proxy     bool
}

func NewApiController(logger providers.Logger, ingestion interfaces.IngestionInterface, gate services.GateServiceInterface, cache providers.CacheProviderInterface, conf *structures.Config) *ApiController {
	return &ApiController{
		logger:    logger,
		ingestion: ingestion,
		gate:      gate,
		cache:     cache,
		proxy:     conf.Proxy,
	}
}

// UpdateFor records a minor checkin and tells the caller whether to update.
func (ac *ApiController) UpdateFor(w http.ResponseWriter, r *http.Request) {
	version := r.PathValue("version")
	if !versionPath.MatchString(version) {
		http.NotFound(w, r)
		return
	}

	ac.ingestion.EnqueueMinor(models.MinorCheckin{
		Version:        version,
		RemoteAddr:     providers.ClientAddr(r, ac.proxy),
		UserAgent:      r.UserAgent(),
		AcceptLanguage: r.Header.Get("Accept-Language"),
	})

	callback := r.URL.Query().Get("callback")
	if callback != "" && !jsonpPattern.MatchString(callback) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	ac.writeDecision(w, version, callback)
}

// Checkin records a periodic heartbeat and answers like UpdateFor.
func (ac *ApiController) Checkin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if _, ok := r.PostForm[formVersion]; !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	version := r.PostForm.Get(formVersion)
	ac.logger.Debugf(providers.TypePost, "Saw checkin %v", r.PostForm)

	ac.ingestion.EnqueuePeriodic(models.PeriodicCheckin{
		Version:     version,
		RemoteAddr:  providers.ClientAddr(r, ac.proxy),
		ServerCount: formValue(r, formServerCount),
		Platform:    formValue(r, formPlatform),
		TableCount:  formValue(r, formTableCount),
		ShardSizes:  formValue(r, formShardSizes),
	})

	ac.writeDecision(w, version, r.URL.Query().Get("callback"))
}

// formValue trims the field; a missing key becomes the record placeholder.
func formValue(r *http.Request, key string) string {
	vals, ok := r.PostForm[key]
	if !ok || len(vals) == 0 {
		return models.Placeholder
	}
	return strings.TrimSpace(vals[0])
}

func (ac *ApiController) writeDecision(w http.ResponseWriter, version, callback string) {
	body, ok := ac.cache.Get(version)
	if !ok {
		var err error
		body, err = json.Marshal(ac.gate.Decide(version))
		if err != nil {
			ac.logger.Errorf(providers.TypeApp, "Unable to encode decision: %s", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		ac.cache.Set(version, body)
	}

	if callback != "" && jsonpPattern.MatchString(callback) {
		w.Header().Set("Content-Type", "application/javascript")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(callback + "("))
		_, _ = w.Write(body)
		_, _ = w.Write([]byte(")"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
