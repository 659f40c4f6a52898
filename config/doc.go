// 版权所有 2024 StudyBuddy Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 config 提供统一的配置加载能力。

# 概述

配置来源按优先级合并：默认值 → YAML 文件 → 环境变量。
环境变量用 STUDYBUDDY_ 前缀加嵌套段名，例如
STUDYBUDDY_SERVER_HTTP_PORT、STUDYBUDDY_LLM_API_KEY。

# 核心类型

  - Config：完整配置树（Server / LLM / Embedding / Cache /
    Split / Study / Log）。
  - Loader：Builder 模式的配置加载器，支持自定义验证器。
  - FileWatcher：轮询式配置文件变更监听器，带防抖。

# 使用方式

	cfg, err := config.NewLoader().
	    WithConfigPath("config.yaml").
	    Load()
*/
package config
