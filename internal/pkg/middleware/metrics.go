// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const unmatchedPath = "unmatched"

// MetricsBuilder 统计每个接口的响应时间和访问次数
type MetricsBuilder struct {
	Namespace string
	Subsystem string
	// 默认注册到 prometheus.DefaultRegisterer，也就是 egovernor 暴露的那个
	Registerer prometheus.Registerer
}

func NewMetricsBuilder(namespace, subsystem string) *MetricsBuilder {
	return &MetricsBuilder{
		Namespace:  namespace,
		Subsystem:  subsystem,
		Registerer: prometheus.DefaultRegisterer,
	}
}

func (b *MetricsBuilder) Build() gin.HandlerFunc {
	labels := []string{"method", "path", "status_code"}
	factory := promauto.With(b.Registerer)
	summaryVec := factory.NewSummaryVec(prometheus.SummaryOpts{
		Namespace: b.Namespace,
		Subsystem: b.Subsystem,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds",
		Objectives: map[float64]float64{
			0.5:  0.05,
			0.9:  0.01,
			0.99: 0.001,
		},
	}, labels)
	counterVec := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: b.Namespace,
		Subsystem: b.Subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, labels)

	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		// 没有匹配到路由的请求，例如 404、405，统一归到一个标签下，原始路径会让时间序列无限增长
		path := ctx.FullPath()
		if path == "" {
			path = unmatchedPath
		}
		lvs := []string{ctx.Request.Method, path, strconv.Itoa(ctx.Writer.Status())}
		summaryVec.WithLabelValues(lvs...).Observe(time.Since(start).Seconds())
		counterVec.WithLabelValues(lvs...).Inc()
	}
}
