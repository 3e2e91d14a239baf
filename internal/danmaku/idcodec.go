package danmaku

import (
	"hash/fnv"
)

// 内部剧集id = 内部媒体id * episodeIdBase + 集序号(1起)
// 媒体id限制在int32范围内 组合后远小于int64上限
const episodeIdBase = 1_000_000

// EncodeMediaID 平台媒体id到内部数字id的确定性映射
// 非加密校验和 不同id间允许碰撞 只要求同一id的映射稳定
func EncodeMediaID(nativeId string) int64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(nativeId))
	v := int64(h.Sum32() & 0x7fffffff)
	if v == 0 {
		v = 1
	}
	return v
}

func ComposeEpisodeID(animeId int64, index int) int64 {
	return animeId*episodeIdBase + int64(index)
}

func SplitEpisodeID(episodeId int64) (animeId int64, index int) {
	return episodeId / episodeIdBase, int(episodeId % episodeIdBase)
}
