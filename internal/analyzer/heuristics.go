package analyzer

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	defaultMaxKeywords = 5
	defaultSummaryLen  = 200
	maxTitleLen        = 50
	minSentenceLen     = 10

	defaultTitle = "Untitled"
)

// sentenceTerminators covers both CJK and ASCII sentence endings.
const sentenceTerminators = "。！？.!?"

// stopWords filtered out of keyword extraction.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"的", "了", "在", "是", "我", "有", "和", "就", "不", "人", "都", "一", "一个",
		"上", "也", "很", "到", "说", "要", "去", "你", "会", "着", "没有", "看", "好",
		"自己", "这", "那", "它", "他", "她", "们", "这个", "那个", "什么", "怎么",
		"为什么", "因为", "所以", "但是", "然后", "如果", "虽然", "可以", "应该",
		"能够", "可能", "或者", "而且", "不过", "只是", "还是", "已经", "正在", "将要",
	} {
		stopWords[w] = struct{}{}
	}
}

// keywordFilter strips everything outside CJK ideographs, ASCII letters,
// digits and whitespace.
var keywordFilter = regexp.MustCompile(`[^\x{4e00}-\x{9fa5}a-zA-Z0-9\s]`)

func isTerminator(r rune) bool {
	return strings.ContainsRune(sentenceTerminators, r)
}

// ExtractKeywords returns the top-N tokens by descending frequency, ties
// broken by first occurrence. The result is deterministic for a given input.
func ExtractKeywords(text string, maxKeywords int) []string {
	cleaned := keywordFilter.ReplaceAllString(text, " ")

	counts := make(map[string]int)
	var order []string
	for _, word := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(word) <= 1 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		word = strings.ToLower(word)
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}
	if order == nil {
		order = []string{}
	}
	return order
}

// deriveTitle uses the first sentence when it fits, falls back to the top
// keywords, then to a fixed default.
func deriveTitle(text string) string {
	first := text
	if i := strings.IndexFunc(text, isTerminator); i >= 0 {
		first = text[:i]
	}
	first = strings.TrimSpace(first)

	if n := utf8.RuneCountInString(first); n > 0 && n <= maxTitleLen {
		return first
	}

	keywords := ExtractKeywords(text, 3)
	if len(keywords) > 0 {
		if len(keywords) > 2 {
			keywords = keywords[:2]
		}
		return strings.Join(keywords, " ")
	}

	return defaultTitle
}

// deriveSummary accumulates whole sentences longer than minSentenceLen
// until the next one would exceed maxLen, joining them with a terminator.
// When nothing qualifies it truncates the raw text instead.
func deriveSummary(text string, maxLen int) string {
	sentences := strings.FieldsFunc(text, isTerminator)

	var b strings.Builder
	total := 0
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if utf8.RuneCountInString(sentence) <= minSentenceLen {
			continue
		}
		n := utf8.RuneCountInString(sentence)
		if total+n > maxLen {
			break
		}
		b.WriteString(sentence)
		b.WriteString("。")
		total += n + 1
	}

	if b.Len() > 0 {
		return b.String()
	}

	runes := []rune(text)
	if len(runes) > maxLen {
		runes = runes[:maxLen]
	}
	return string(runes) + "..."
}

// templateRules is the ordered suggestion rule list; the first rule whose
// markers match wins.
var templateRules = []struct {
	template string
	markers  []string
}{
	{"tutorial", []string{"步骤", "方法", "如何", "step", "method", "how to"}},
	{"quote", []string{"引用", "说过", "“", "\""}},
	{"data", []string{"数据", "统计", "%"}},
	{"news", []string{"新闻", "报道", "发布"}},
}

func suggestTemplate(text string) string {
	content := strings.ToLower(text)
	for _, rule := range templateRules {
		for _, marker := range rule.markers {
			if strings.Contains(content, marker) {
				return rule.template
			}
		}
	}
	return "default"
}
