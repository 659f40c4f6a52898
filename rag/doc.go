// Copyright 2025-2026 StudyBuddy Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
# 概述

Package rag 提供检索增强生成（Retrieval-Augmented Generation）的核心组件。

该包覆盖管线的检索侧：文档分块、内存向量索引与上下文检索，
并提供嵌入提供者到检索器的桥接适配。

# 核心接口/类型

  - DocumentSplitter — 段落贪心装箱分块器（按最大长度合并段落）
  - VectorStore — 向量索引接口（Reset / Add / Query / Count / Sample）
  - InMemoryVectorStore — 余弦相似度内存实现，查询结果确定性排序
  - Embedder — 嵌入接口（EmbedQuery / EmbedDocuments）
  - Retriever — 查询嵌入 → 相似度检索 → 上下文拼接
  - Tokenizer — token 计数接口（tiktoken 实现与字符估算实现）

# 主要能力

  - 分块：段落边界优先，超长段落整段保留为独立 chunk
  - 索引：全量替换式写入，向量维度与数量严格校验（SHAPE_MISMATCH）
  - 检索：并列相似度按 chunk ID 升序决出确定性结果
  - 并发：读写锁保护，查询期间快照一致，不会混合两代索引内容
*/
package rag
