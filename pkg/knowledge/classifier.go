package knowledge

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Category identifies one of the two knowledge bases a document can belong to.
type Category string

const (
	// Unclassified means the name matched neither or both keyword sets.
	Unclassified Category = ""
	CategoryKB1  Category = "KB1"
	CategoryKB2  Category = "KB2"
)

func (c Category) Valid() bool {
	return c == CategoryKB1 || c == CategoryKB2
}

// Title returns the human readable knowledge base name.
func (c Category) Title() string {
	switch c {
	case CategoryKB1:
		return "Tổ chức - Xây dựng Đảng"
	case CategoryKB2:
		return "Tuyên giáo - Dân vận"
	default:
		return ""
	}
}

// Keywords holds the two keyword tables. Matching is substring based.
type Keywords struct {
	KB1 []string
	KB2 []string
}

func DefaultKeywords() Keywords {
	return Keywords{
		KB1: []string{
			"tổ chức", "bộ máy", "cán bộ", "bầu cử", "điều lệ", "xếp loại",
			"đánh giá", "bổ nhiệm", "chức danh", "quy định 294", "quy định 368",
			"hướng dẫn 04", "kết luận 195", "xây dựng đảng", "228-kl/tw", "613-bc/btctw",
		},
		KB2: []string{
			"sinh hoạt chi bộ", "thẻ đảng viên", "dân vận", "tuyên truyền", "đại hội",
			"chỉ thị 50", "chỉ thị 51", "hồ sơ", "văn thư", "tuyên giáo",
		},
	}
}

// Classifier buckets file names into knowledge categories.
// It is immutable after construction and safe for concurrent use.
type Classifier struct {
	kb1 []string
	kb2 []string
}

func NewClassifier(keywords Keywords) *Classifier {
	return &Classifier{
		kb1: normalizeAll(keywords.KB1),
		kb2: normalizeAll(keywords.KB2),
	}
}

// Classify returns CategoryKB1 or CategoryKB2 when exactly one keyword set
// matches the name, Unclassified otherwise.
func (c *Classifier) Classify(displayName string) Category {
	name := normalize(displayName)
	matchKB1 := containsAny(name, c.kb1)
	matchKB2 := containsAny(name, c.kb2)

	switch {
	case matchKB1 && !matchKB2:
		return CategoryKB1
	case matchKB2 && !matchKB1:
		return CategoryKB2
	default:
		return Unclassified
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// File names from macOS arrive decomposed (NFD), keyword tables are composed.
func normalize(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

func normalizeAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, normalize(strings.TrimSpace(s)))
	}
	return out
}
