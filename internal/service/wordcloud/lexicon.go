// internal/service/wordcloud/lexicon.go

package wordcloud

// Fixed vocabularies for normalization and for the local classifier used
// when the judgment provider is unavailable. The stop-word set is bilingual
// because post bodies in the wild mix English and Chinese.

var stopwords = map[string]bool{
	// English function words.
	"a": true, "an": true, "the": true, "this": true, "that": true,
	"these": true, "those": true, "it": true, "its": true, "is": true,
	"are": true, "was": true, "were": true, "be": true, "been": true,
	"being": true, "am": true, "do": true, "does": true, "did": true,
	"have": true, "has": true, "had": true, "will": true, "would": true,
	"can": true, "could": true, "shall": true, "should": true, "may": true,
	"might": true, "must": true, "i": true, "you": true, "he": true,
	"she": true, "we": true, "they": true, "me": true, "him": true,
	"her": true, "us": true, "them": true, "my": true, "your": true,
	"his": true, "our": true, "their": true, "and": true, "or": true,
	"but": true, "if": true, "of": true, "to": true, "in": true,
	"on": true, "at": true, "by": true, "for": true, "with": true,
	"about": true, "from": true, "as": true, "into": true, "through": true,
	"during": true, "before": true, "after": true, "above": true,
	"below": true, "up": true, "down": true, "out": true, "off": true,
	"over": true, "under": true, "again": true, "then": true, "once": true,
	"here": true, "there": true, "when": true, "where": true, "why": true,
	"how": true, "all": true, "any": true, "both": true, "each": true,
	"few": true, "more": true, "most": true, "other": true, "some": true,
	"such": true, "no": true, "nor": true, "not": true, "only": true,
	"own": true, "same": true, "so": true, "than": true, "too": true,
	"very": true, "just": true, "also": true, "please": true, "thanks": true,
	"thank": true, "really": true, "get": true, "got": true, "like": true,
	// Common Chinese particles and fillers.
	"的": true, "了": true, "是": true, "我": true, "你": true,
	"他": true, "她": true, "它": true, "们": true, "在": true,
	"有": true, "和": true, "就": true, "不": true, "也": true,
	"都": true, "很": true, "要": true, "会": true, "着": true,
	"这": true, "那": true, "一个": true, "什么": true, "可以": true,
}

// phrases are multi-word technical terms kept atomic during tokenization,
// longest first so overlapping phrases match greedily.
var phrases = []string{
	"open source alternative",
	"machine learning",
	"dark mode",
	"open source",
	"self hosted",
	"light mode",
	"free tier",
	"rate limit",
	"api key",
	"word cloud",
	"feature request",
	"user experience",
}

// emotionLexicon backs the degraded-mode classifier for feeling words.
var emotionLexicon = map[string]bool{
	"love": true, "hate": true, "amazing": true, "awesome": true,
	"great": true, "terrible": true, "awful": true, "horrible": true,
	"frustrating": true, "frustrated": true, "annoying": true,
	"annoyed": true, "disappointed": true, "disappointing": true,
	"excited": true, "exciting": true, "happy": true, "sad": true,
	"angry": true, "confusing": true, "confused": true, "painful": true,
	"broken": true, "buggy": true, "slow": true, "fast": true,
	"beautiful": true, "ugly": true, "impressive": true, "useless": true,
	"useful": true, "excellent": true, "fantastic": true, "worst": true,
	"best": true, "scary": true, "worried": true, "grateful": true,
}

// demandLexicon backs the degraded-mode classifier for want/request words.
var demandLexicon = map[string]bool{
	"add": true, "need": true, "needed": true, "want": true,
	"wanted": true, "wish": true, "request": true, "support": true,
	"fix": true, "improve": true, "integrate": true, "export": true,
	"import": true, "sync": true, "offline": true, "missing": true,
	"alternative": true, "cheaper": true, "pricing": true, "feature": true,
	"option": true, "setting": true, "customize": true, "customization": true,
	"dark mode": true, "light mode": true, "self hosted": true,
	"open source": true, "free tier": true, "api key": true,
	"feature request": true,
}
