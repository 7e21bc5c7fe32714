package handler

import (
	"net/http"

	"github.com/vfg2006/store-analytics-api/internal/api/handler/router"
	"github.com/vfg2006/store-analytics-api/internal/scheduler"
	"github.com/vfg2006/store-analytics-api/internal/usecases/reporting"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Analytics(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/analytics",
			Method:  http.MethodGet,
			Handler: GetAnalyticsData(service),
		},
		{
			Path:    "/v1/reports/sales",
			Method:  http.MethodGet,
			Handler: GetSalesReport(service),
		},
	}
}

func Snapshots(service *scheduler.DailySnapshotService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/analytics/snapshot",
			Method:  http.MethodGet,
			Handler: GetAnalyticsSnapshot(service),
		},
	}
}
