package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
)

func counterValue(m *Manager, name string, labels map[string]string) float64 {
	families, err := m.Registry().Gather()
	if err != nil {
		return -1
	}
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			if labelsMatch(metric, labels) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func labelsMatch(metric *dto.Metric, want map[string]string) bool {
	matched := 0
	for _, pair := range metric.GetLabel() {
		if v, ok := want[pair.GetName()]; ok {
			if v != pair.GetValue() {
				return false
			}
			matched++
		}
	}
	return matched == len(want)
}

func TestManagerRecording(t *testing.T) {
	Convey("Given a metrics manager with its own registry", t, func() {
		m := NewManager(WithNamespace("test"))

		Convey("When HTTP requests are observed", func() {
			m.ObserveHTTPRequest("POST /v1/pivot-builder", "POST", 200, 15*time.Millisecond)
			m.ObserveHTTPRequest("POST /v1/pivot-builder", "POST", 200, 5*time.Millisecond)
			m.ObserveHTTPRequest("", "GET", 404, time.Millisecond)

			Convey("Then they are counted per route and status", func() {
				So(counterValue(m, "test_http_requests_total", map[string]string{
					"route": "POST /v1/pivot-builder", "status_code": "200",
				}), ShouldEqual, 2)
				So(counterValue(m, "test_http_requests_total", map[string]string{
					"route": "unmatched", "status_code": "404",
				}), ShouldEqual, 1)
			})
		})

		Convey("When a ranking reports omissions", func() {
			m.RankingComputed("ok", []string{"zero_value", "zero_value", "group_missing"})

			Convey("Then each reason is counted", func() {
				So(counterValue(m, "test_analytics_ranking_omissions_total", map[string]string{"reason": "zero_value"}), ShouldEqual, 2)
				So(counterValue(m, "test_analytics_ranking_requests_total", map[string]string{"outcome": "ok"}), ShouldEqual, 1)
			})
		})

		Convey("When sync and upstream results are recorded", func() {
			m.SyncTeamFinished("update_game_logs", true, 42)
			m.SyncTeamFinished("update_game_logs", false, 0)
			m.UpstreamCall("nba_stats", errors.New("timeout"))

			Convey("Then rows and failures are tracked", func() {
				So(counterValue(m, "test_sync_rows_total", map[string]string{"job": "update_game_logs"}), ShouldEqual, 42)
				So(counterValue(m, "test_sync_teams_total", map[string]string{"result": "failed"}), ShouldEqual, 1)
				So(counterValue(m, "test_upstream_requests_total", map[string]string{"result": "error"}), ShouldEqual, 1)
			})
		})

		Convey("When the handler is scraped", func() {
			m.WebhookEvent("checkout.session.completed", "processed")
			rec := httptest.NewRecorder()
			m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
			body, _ := io.ReadAll(rec.Body)

			Convey("Then it serves the text exposition", func() {
				So(rec.Code, ShouldEqual, 200)
				So(strings.Contains(string(body), "test_billing_webhook_events_total"), ShouldBeTrue)
			})
		})
	})
}

func TestNilManagerIsNoop(t *testing.T) {
	Convey("Given a nil manager", t, func() {
		var m *Manager

		Convey("Then recording never panics", func() {
			So(func() {
				m.ObserveHTTPRequest("r", "GET", 200, time.Second)
				m.RankingComputed("ok", []string{"x"})
				m.ImpactComputed("ok")
				m.SyncTeamFinished("j", true, 1)
				m.SyncRunFinished("j", time.Second)
				m.WebhookEvent("t", "o")
				m.UpstreamCall("u", nil)
				m.BreakerStateChanged("u", "closed", "open")
				m.CacheLookup("c", true)
			}, ShouldNotPanic)
		})
	})
}
