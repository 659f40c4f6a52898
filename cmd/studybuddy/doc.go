// 版权所有 2024 StudyBuddy Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
StudyBuddy 服务入口。

组装配置、日志、嵌入与生成提供者、答案缓存和学习辅助管线，
并在两个端口上提供服务：业务 API 与健康检查在 HTTP 端口，
Prometheus 指标在独立的 Metrics 端口。

	studybuddy serve --config config.yaml
*/
package main
