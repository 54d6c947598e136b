package generator

import (
	"fmt"
	"strings"
)

// Prompt is what gets sent to the model. System may be empty.
type Prompt struct {
	System string
	User   string
}

// BuildPrompt renders the Thai SEO article instruction for spec.
func BuildPrompt(spec Spec) Prompt {
	spec = spec.normalized()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("สร้างบทความ SEO ภาษาไทยที่มีคุณภาพสูงเกี่ยวกับหัวข้อ: \"%s\"\n\n", spec.Topic))
	sb.WriteString(fmt.Sprintf("กลุ่มเป้าหมาย: %s\n", AudiencePrompt(spec.Audience)))
	sb.WriteString(fmt.Sprintf("ความยาวบทความ: %s", LengthText(spec.Length)))
	if spec.Keywords != "" {
		sb.WriteString(fmt.Sprintf("\nคำสำคัญที่ต้องใส่: %s", spec.Keywords))
	}

	sb.WriteString("\n\nกรุณาสร้างบทความที่มีโครงสร้างดังนี้:\n\n")
	for i, item := range structure {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, item))
	}
	sb.WriteString("\nข้อกำหนดเพิ่มเติม:\n")
	for _, item := range requirements {
		sb.WriteString(fmt.Sprintf("- %s\n", item))
	}
	sb.WriteString("\nเริ่มสร้างบทความ:")

	return Prompt{User: sb.String()}
}

var structure = []string{
	"หัวข้อหลักที่น่าสนใจและเหมาะกับ SEO",
	"บทนำที่ดึงดูดความสนใจ",
	"เนื้อหาหลักแบ่งเป็นหัวข้อย่อยที่ชัดเจน",
	"ใช้ H2, H3 สำหรับหัวข้อย่อย",
	"เนื้อหาที่มีประโยชน์และตอบโจทย์ผู้อ่าน",
	"สรุปที่กระชับและมีการเรียกร้องให้ดำเนินการ (Call-to-Action)",
}

var requirements = []string{
	"ใช้ภาษาไทยที่เข้าใจง่าย",
	"เหมาะสมกับกลุ่มเป้าหมาย",
	"มีการกระจายคำสำคัญอย่างเป็นธรรมชาติ",
	"เนื้อหาต้องมีคุณค่าและไม่ซ้ำใคร",
	"ใช้รูปแบบ Markdown สำหรับการจัดรูปแบบ",
}
