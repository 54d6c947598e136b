package generator

import (
	"context"
	"strings"
)

// MockLLM is an offline placeholder for local runs; it never calls a model.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	topic := "บทความตัวอย่าง"
	if i := strings.Index(prompt.User, "หัวข้อ: \""); i >= 0 {
		rest := prompt.User[i+len("หัวข้อ: \""):]
		if j := strings.Index(rest, "\""); j > 0 {
			topic = rest[:j]
		}
	}

	var sb strings.Builder
	sb.WriteString("# " + topic + "\n\n")
	sb.WriteString("บทนำสั้น ๆ ที่สรุปว่าบทความนี้จะช่วยผู้อ่านได้อย่างไร\n\n")
	sb.WriteString("## ทำไม " + topic + " จึงสำคัญ\n\n")
	sb.WriteString("เนื้อหาส่วนนี้อธิบาย **ประเด็นหลัก** และ *ตัวอย่าง* ที่เกี่ยวข้อง\n\n")
	sb.WriteString("## ขั้นตอนเริ่มต้น\n\n")
	sb.WriteString("* กำหนดเป้าหมาย\n* เลือกคำสำคัญ\n* วัดผลอย่างสม่ำเสมอ\n\n")
	sb.WriteString("### เคล็ดลับเพิ่มเติม\n\n")
	sb.WriteString("- เขียนให้อ่านง่าย\n- อัปเดตเนื้อหาเป็นประจำ\n\n")
	sb.WriteString("## สรุป\n\n")
	sb.WriteString("เริ่มลงมือทำวันนี้ แล้วติดตามผลลัพธ์ของคุณ!\n")
	return sb.String(), nil
}
