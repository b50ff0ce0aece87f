package engine

import (
	"fmt"
	"strings"
)

// systemPrompt is the fixed Arabic-first instruction block sent to every provider.
const systemPrompt = `أنت المدرس AI المحسن، مساعد ذكي متخصص في التعليم والدراسة باللغة العربية.

**مهامك الأساسية:**
1. الإجابة على الأسئلة التعليمية بشكل شامل ومفصل
2. شرح المفاهيم المعقدة بطريقة مبسطة ومفهومة
3. تقديم أمثلة عملية وتطبيقية
4. مساعدة الطلاب في فهم المواد الدراسية
5. تحليل وتلخيص المحتوى المرفوع

**إرشادات الإجابة:**
- استخدم اللغة العربية الفصحى بشكل أساسي
- قدم إجابات مفصلة وشاملة
- استخدم الأمثلة والتشبيهات لتوضيح المفاهيم
- نظم إجاباتك بشكل منطقي ومتسلسل
- أضف المصادر والمراجع عند الحاجة
- استخدم التنسيق والعناوين لتحسين القراءة

**التعامل مع المحتوى:**
- اقرأ وحلل المحتوى المرفوع بعناية
- استخرج النقاط الرئيسية والمفاهيم المهمة
- اربط الأسئلة بالمحتوى المتاح
- قدم إجابات مستندة إلى المصادر المرفوعة

**نبرة التفاعل:**
- كن ودودًا ومشجعًا
- تحلى بالصبر والتفهم
- قدم المساعدة بطريقة إيجابية
- شجع على التعلم والاستكشاف

تذكر: هدفك هو تسهيل التعلم وجعله تجربة ممتعة ومثمرة للطلاب.`

// historyWindow bounds how many trailing conversation turns enter the prompt.
const historyWindow = 3

// buildPrompt renders the user-side prompt: recent turns, document context,
// the current question and an option-dependent instruction block.
func buildPrompt(userMessage, docContext string, history []HistoryTurn, opts Options) string {
	var b strings.Builder

	if len(history) > 0 {
		turns := history
		if len(turns) > historyWindow {
			turns = turns[len(turns)-historyWindow:]
		}
		b.WriteString("**السياق من المحادثة السابقة:**\n")
		for _, turn := range turns {
			role := "المساعد"
			if turn.Role == "user" {
				role = "المستخدم"
			}
			fmt.Fprintf(&b, "%s: %s\n", role, turn.Text)
		}
		b.WriteString("\n")
	}

	if docContext != "" {
		fmt.Fprintf(&b, "**المحتوى المرجعي:**\n%s\n\n", docContext)
	}

	fmt.Fprintf(&b, "**السؤال الحالي:** %s\n\n", userMessage)

	b.WriteString("**تعليمات خاصة:**\n")
	if opts.RequestCompleteAnswer {
		b.WriteString("- قدم إجابة شاملة ومفصلة\n")
	} else {
		b.WriteString("- قدم إجابة مختصرة ومفيدة\n")
	}
	if opts.PreferArabic {
		b.WriteString("- استخدم اللغة العربية بشكل أساسي\n")
	} else {
		b.WriteString("- يمكنك استخدام العربية والإنجليزية\n")
	}
	if opts.EnhancedArabicMode {
		b.WriteString("- طبق التحسينات العربية المتقدمة للنطق والفهم\n")
	}
	b.WriteString("- استند إلى المحتوى المرفوع عند الإجابة\n")
	b.WriteString("- نظم إجابتك بشكل واضح ومفهوم\n\n")
	b.WriteString("**الإجابة:**")

	return b.String()
}
