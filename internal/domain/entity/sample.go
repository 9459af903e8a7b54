package entity

// SampleIndexRandom 表示"改用上游随机选诗"的哨兵索引
const SampleIndexRandom = -1

// samplePoems 内置离线样本集，运行期只读
// 顺序固定，按整数索引寻址
var samplePoems = []PoemRecord{
	{
		Title:       "静夜思",
		Content:     "床前明月光，\n疑是地上霜。\n举头望明月，\n低头思故乡。",
		Author:      "李白",
		Dynasty:     "唐",
		Translation: "Moonlight spills before my bed,\nlike frost upon the ground.\nI raise my head to the bright moon,\nthen bow, and think of home.",
		Source:      "本地样本",
		Link:        "https://zh.wikisource.org/wiki/靜夜思",
		Language:    LanguageChinese,
	},
	{
		Title:       "春晓",
		Content:     "春眠不觉晓，\n处处闻啼鸟。\n夜来风雨声，\n花落知多少。",
		Author:      "孟浩然",
		Dynasty:     "唐",
		Translation: "Spring sleep outlasts the dawn;\neverywhere birds are calling.\nLast night, the sound of wind and rain —\nwho knows how many blossoms fell.",
		Source:      "本地样本",
		Link:        "https://zh.wikisource.org/wiki/春曉",
		Language:    LanguageChinese,
	},
	{
		Title:       "登鹳雀楼",
		Content:     "白日依山尽，\n黄河入海流。\n欲穷千里目，\n更上一层楼。",
		Author:      "王之涣",
		Dynasty:     "唐",
		Translation: "The white sun sinks behind the hills,\nthe Yellow River flows into the sea.\nTo see a thousand miles further,\nclimb one more storey of the tower.",
		Source:      "本地样本",
		Link:        "https://zh.wikisource.org/wiki/登鸛雀樓",
		Language:    LanguageChinese,
	},
	{
		Title:       "相思",
		Content:     "红豆生南国，\n春来发几枝。\n愿君多采撷，\n此物最相思。",
		Author:      "王维",
		Dynasty:     "唐",
		Translation: "Red beans grow in the southern land;\nhow many branches sprout in spring?\nGather as many as you can —\nthey hold the deepest longing.",
		Source:      "本地样本",
		Link:        "https://zh.wikisource.org/wiki/相思",
		Language:    LanguageChinese,
	},
	{
		Title:       "江雪",
		Content:     "千山鸟飞绝，\n万径人踪灭。\n孤舟蓑笠翁，\n独钓寒江雪。",
		Author:      "柳宗元",
		Dynasty:     "唐",
		Translation: "A thousand hills, no birds in flight;\nten thousand paths, no human trace.\nA lone boat, an old man in straw cloak,\nfishing alone in the cold river snow.",
		Source:      "本地样本",
		Link:        "https://zh.wikisource.org/wiki/江雪",
		Language:    LanguageChinese,
	},
	{
		Title:       "悯农",
		Content:     "锄禾日当午，\n汗滴禾下土。\n谁知盘中餐，\n粒粒皆辛苦。",
		Author:      "李绅",
		Dynasty:     "唐",
		Translation: "Hoeing grain at high noon,\nsweat drips into the soil below.\nWho knows that every grain on the plate\nwas bought with toil and sweat.",
		Source:      "本地样本",
		Link:        "https://zh.wikisource.org/wiki/憫農",
		Language:    LanguageChinese,
	},
}

// SampleCount 样本集长度
func SampleCount() int {
	return len(samplePoems)
}

// SampleAt 按索引取样本，返回副本，越界时 ok 为 false
func SampleAt(index int) (PoemRecord, bool) {
	if index < 0 || index >= len(samplePoems) {
		return PoemRecord{}, false
	}
	return samplePoems[index], true
}
