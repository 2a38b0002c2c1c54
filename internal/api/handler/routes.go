package handler

import (
	"net/http"

	"github.com/vfg2006/dsp-analytics-api/infrastructure/repository"
	"github.com/vfg2006/dsp-analytics-api/internal/api/handler/router"
	"github.com/vfg2006/dsp-analytics-api/internal/usecases/importing"
	"github.com/vfg2006/dsp-analytics-api/internal/usecases/summarizing"
	"github.com/vfg2006/dsp-analytics-api/pkg/metrics"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metrics.Handler(),
		},
	}
}

func Imports(importer importing.Importer, audits repository.ImportAuditRepository, uploadDir string) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/imports/analytics",
			Method:  http.MethodPost,
			Handler: UploadAnalytics(importer, uploadDir),
		},
		{
			Path:    "/v1/imports",
			Method:  http.MethodGet,
			Handler: ListImports(audits),
		},
	}
}

func Analytics(service summarizing.Summarizer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/artists/:name/analytics/summary",
			Method:  http.MethodGet,
			Handler: GetAnalyticsSummary(service),
		},
		{
			Path:    "/v1/analytics/overview",
			Method:  http.MethodGet,
			Handler: GetAnalyticsOverview(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
