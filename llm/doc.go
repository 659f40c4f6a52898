// 版权所有 2024 StudyBuddy Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 llm 提供统一的大语言模型接入层。

# 概述

本包屏蔽不同模型服务商在接口、鉴权和错误语义上的差异，
对上层业务暴露一致的生成接口。

# Provider 抽象

核心接口是 [Provider]，包含文本生成与健康检查。生成方法遵循
"从不报错" 契约：后端失败时返回以 [GenerateErrorMarker] 开头的
错误描述文本而不是 error，由上层决定如何降级展示。
[IsErrorText] 用于判断一段输出是否为降级产物。
*/
package llm
