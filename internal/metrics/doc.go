// 版权所有 2024 StudyBuddy Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 metrics 提供基于 Prometheus 的指标采集能力，覆盖
HTTP、索引、生成、解析与缓存五个维度。

# 概述

本包通过 Collector 统一注册和记录 Prometheus 指标，使用 promauto
自动注册机制，避免手动管理 Registry。所有指标按 namespace 隔离，
支持多维度 label 分组，便于 Grafana 等工具进行可视化与告警。

# 核心类型

  - Collector：指标收集器，持有 Counter 与 Histogram 指标，
    按业务域分组管理。

# 主要能力

  - HTTP 指标：请求总数、请求耗时、请求/响应体大小，
    按 method/path/status 分组，状态码归类为 2xx/3xx/4xx/5xx。
  - 索引指标：文档总数、每文档 chunk 数与 token 数、索引耗时。
  - 生成指标：调用总数与耗时，按 provider/flow 分组，
    status 区分 success 与 degraded（降级为错误文本）。
  - 解析指标：响应解析结局计数（parsed/malformed/no_payload）。
  - 缓存指标：命中与未命中计数，按 cache_type 分组。
*/
package metrics
