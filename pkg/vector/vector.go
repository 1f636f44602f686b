// Package vector 提供标签画像的词表构建与余弦相似度计算。
//
// 两个约定贯穿所有调用方：
//   - 词表按请求即时构建（对本次参与比较的画像求并集），不做任何跨请求缓存，
//     避免候选池变化时出现陈旧词表。
//   - 所有边界情况（空词表、空画像、零范数）都定义为相似度 0，纯函数永不报错。
package vector

import (
	"math"
	"sort"
)

// BuildVocabulary 构建共享词表：所有输入画像 key 的并集，按字典序排列。
// 词表只作为两向量的共享索引空间，排序仅为保证确定性，
// 顺序本身不影响任何对外可见的排序结果。
// 空输入或全空画像得到空词表。
func BuildVocabulary(profiles ...map[string]float64) []string {
	seen := make(map[string]struct{})
	vocab := make([]string, 0)
	for _, p := range profiles {
		for tag := range p {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			vocab = append(vocab, tag)
		}
	}
	sort.Strings(vocab)
	return vocab
}

// Project 将画像投影到词表上：第 i 位取 profile[vocab[i]]，缺失记 0。
func Project(profile map[string]float64, vocab []string) []float64 {
	vec := make([]float64, len(vocab))
	if len(profile) == 0 {
		return vec
	}
	for i, tag := range vocab {
		vec[i] = profile[tag]
	}
	return vec
}

// Cosine 在共享词表上计算两个画像的余弦相似度：dot(A,B) / (‖A‖·‖B‖)。
//
// 边界情况（定义为 0，不是异常）：
//   - 词表为空
//   - 任一画像为空/nil
//   - 任一投影向量范数为 0（画像与词表无交集）
//
// 纯函数：相同输入恒得相同结果。
func Cosine(a, b map[string]float64, vocab []string) float64 {
	if len(vocab) == 0 || len(a) == 0 || len(b) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for _, tag := range vocab {
		va := a[tag]
		vb := b[tag]
		dot += va * vb
		normA += va * va
		normB += vb * vb
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
