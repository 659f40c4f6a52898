// 版权所有 2024 StudyBuddy Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 cache 提供基于 Redis 的答案缓存能力。

# 概述

本包封装 go-redis 客户端，为生成管线提供答案缓存。相同提示词
在 TTL 内复用上一次的生成结果，省去一次后端调用。Manager 负责
连接生命周期管理，包括初始化、健康检查与优雅关闭。

# 核心类型

  - Manager：缓存管理器，持有 Redis 客户端与连接池配置，
    提供 Get/Set/Delete 基础操作与 GetJSON/SetJSON 序列化方法。
  - Config：缓存配置，包含地址、密码、连接池大小、默认 TTL
    与健康检查间隔等参数。

# 错误语义

未命中返回哨兵错误 ErrCacheMiss，用 IsCacheMiss 判断。
调用方应把所有缓存错误当作未命中处理，缓存永远不能让请求失败。
*/
package cache
