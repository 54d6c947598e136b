package generator

import "strings"

// Spec describes the article the user asked for. Audience and Length are
// the form codes, not the descriptive text.
type Spec struct {
	Topic    string
	Audience string
	Keywords string
	Length   string
}

// Draft is the generated article in Markdown form.
type Draft struct {
	Title    string
	Digest   string
	Markdown string
}

// Option is a selectable form value with its display label.
type Option struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

type audience struct {
	code   string
	prompt string
	label  string
}

var audiences = []audience{
	{"beginners", "ผู้เริ่มต้นที่ต้องการเรียนรู้พื้นฐาน", "ผู้เริ่มต้น"},
	{"intermediate", "ผู้ที่มีความรู้ระดับกลาง", "ระดับกลาง"},
	{"advanced", "ผู้เชี่ยวชาญที่ต้องการความรู้เชิงลึก", "ระดับสูง"},
	{"business-owners", "เจ้าของธุรกิจที่ต้องการเพิ่มยอดขาย", "เจ้าของธุรกิจ"},
	{"marketers", "นักการตลาดที่ต้องการเครื่องมือและกลยุทธ์", "นักการตลาด"},
	{"developers", "นักพัฒนาที่ต้องการความรู้ทางเทคนิค", "นักพัฒนา"},
	{"students", "นักเรียนและนักศึกษาที่ต้องการความรู้เพื่อการศึกษา", "นักเรียน/นักศึกษา"},
	{"general", "ผู้อ่านทั่วไปที่สนใจในหัวข้อนี้", "ทั่วไป"},
}

const DefaultLength = "medium"

var lengths = []Option{
	{"short", "300-500 คำ"},
	{"medium", "800-1200 คำ"},
	{"long", "1500-2000 คำ"},
}

// AudiencePrompt is the audience description used inside the prompt.
func AudiencePrompt(code string) string {
	for _, a := range audiences {
		if a.code == code {
			return a.prompt
		}
	}
	return "ผู้อ่านทั่วไป"
}

// AudienceLabel is the short audience name shown next to archived articles.
func AudienceLabel(code string) string {
	for _, a := range audiences {
		if a.code == code {
			return a.label
		}
	}
	return "ทั่วไป"
}

// LengthText maps a length band code to its word range, defaulting to medium.
func LengthText(code string) string {
	for _, l := range lengths {
		if l.Code == code {
			return l.Label
		}
	}
	return lengths[1].Label
}

func Audiences() []Option {
	out := make([]Option, 0, len(audiences))
	for _, a := range audiences {
		out = append(out, Option{Code: a.code, Label: a.label})
	}
	return out
}

func Lengths() []Option {
	return append([]Option(nil), lengths...)
}

func (s Spec) normalized() Spec {
	s.Topic = strings.TrimSpace(s.Topic)
	s.Keywords = strings.TrimSpace(s.Keywords)
	if s.Length == "" {
		s.Length = DefaultLength
	}
	return s
}
