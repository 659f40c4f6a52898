// 版权所有 2024 StudyBuddy Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 handlers 提供 StudyBuddy HTTP API 的处理器实现。

# 核心类型

  - StudyHandler：文档上传/索引、讲解、测验、闪卡、主题五组端点。
  - HealthHandler：健康检查与就绪探针。
  - Response / ErrorInfo：统一响应信封。

# 错误处理

业务错误以 types.Error 表达，WriteError 负责错误码到 HTTP
状态码的映射与日志记录。生成后端的失败不走错误路径：
降级内容以 200 返回。
*/
package handlers
