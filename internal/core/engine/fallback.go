package engine

import (
	"fmt"
	"strings"
)

// Intent categories for template fallback, checked in priority order.
const (
	intentGreeting = "greeting"
	intentQuestion = "question"
	intentAnalysis = "analysis"
	intentDefault  = "default"
)

var greetingWords = []string{"مرحبا", "أهلا", "السلام", "صباح", "مساء", "hello", "hi"}

var questionWords = []string{"ما", "من", "كيف", "متى", "أين", "لماذا", "هل", "what", "how", "why", "when", "where"}

var analysisWords = []string{"حلل", "اشرح", "وضح", "لخص", "explain", "analyze", "summarize"}

var greetingTemplates = []string{
	"أهلاً وسهلاً بك في المدرس AI المحسن! 🌟\n\nأنا هنا لمساعدتك في دراستك وتعلمك. يمكنني:\n• الإجابة على أسئلتك التعليمية\n• شرح المفاهيم المعقدة\n• تحليل المحتوى المرفوع\n• مساعدتك في فهم دروسك\n\nكيف يمكنني مساعدتك اليوم؟",
	"مرحباً بك! 👋\n\nأنا المدرس AI المحسن، مساعدك الذكي للتعلم. أتطلع لمساعدتك في رحلتك التعليمية.",
	"السلام عليكم ومرحباً بك! 📚\n\nأنا هنا لأكون رفيقك في التعلم والدراسة. اسأل عن أي موضوع تريد فهمه أكثر.",
}

var defaultTemplates = []string{
	"أعتذر، أواجه صعوبة في الاتصال بخدمات الذكاء الاصطناعي حالياً. 😔\n\nولكن يمكنني مساعدتك بطرق أخرى:\n• ارفع ملفاتك الدراسية وسأحللها\n• استخدم البحث للعثور على معلومات محددة\n• اطرح أسئلة أكثر تحديداً\n\nأو حاول إعادة صياغة سؤالك بشكل مختلف.",
	"يبدو أن هناك مشكلة تقنية مؤقتة. 🔧\n\nفي هذه الأثناء:\n• تأكد من رفع المواد الدراسية\n• جرب البحث في الملفات المرفوعة\n• اطرح سؤالاً أكثر تفصيلاً\n\nسأعود للعمل قريباً بإذن الله!",
}

// classify picks the fallback category for a message. Greetings win over
// interrogatives, interrogatives over analysis requests.
func classify(userMessage string) string {
	lower := strings.ToLower(userMessage)
	for _, w := range greetingWords {
		if strings.Contains(lower, w) {
			return intentGreeting
		}
	}
	for _, w := range questionWords {
		if strings.Contains(lower, w) {
			return intentQuestion
		}
	}
	for _, w := range analysisWords {
		if strings.Contains(lower, w) {
			return intentAnalysis
		}
	}
	return intentDefault
}

// questionTemplates and analysisTemplates interpolate the head of the user
// message and of the document context, so they are built per call.
func questionTemplates(userMessage, docContext string) []string {
	topic := truncateRunes(userMessage, 50)
	ctx300 := truncateRunes(docContext, 300)
	needUpload := "للحصول على إجابة أكثر تفصيلاً، يرجى رفع المواد الدراسية ذات الصلة."
	if docContext == "" {
		return []string{
			fmt.Sprintf("سؤال ممتاز! 🤔\n\nبناءً على خبرتي، يمكنني القول أن موضوع \"%s...\" مهم جداً في التعلم.\n\n%s", topic, needUpload),
			fmt.Sprintf("هذا سؤال مفيد! 💡\n\nدعني أساعدك في فهم \"%s...\".\n\nأنصحك برفع الملفات الدراسية المتعلقة بهذا الموضوع للحصول على إجابة أدق.", topic),
			fmt.Sprintf("أقدر سؤالك حول \"%s...\" 📖\n\nللإجابة بشكل أفضل، أحتاج إلى مراجعة المحتوى الدراسي المتعلق بهذا الموضوع.", topic),
		}
	}
	return []string{
		fmt.Sprintf("سؤال ممتاز! 🤔\n\nبناءً على خبرتي، يمكنني القول أن موضوع \"%s...\" مهم جداً في التعلم.\n\n%s", topic, ctx300),
		fmt.Sprintf("هذا سؤال مفيد! 💡\n\nدعني أساعدك في فهم \"%s...\".\n\n%s", topic, ctx300),
		fmt.Sprintf("أقدر سؤالك حول \"%s...\" 📖\n\n%s", topic, ctx300),
	}
}

func analysisTemplates(docContext string) []string {
	ctx500 := truncateRunes(docContext, 500)
	if docContext == "" {
		return []string{
			"تحليل رائع للموضوع! 📊\n\nبناءً على المحتوى المتاح:\nالمحتوى غير متوفر حالياً\n\nهل تريد المزيد من التفاصيل حول نقطة معينة؟",
			"موضوع شيق للدراسة! 🔍\n\nلتحليل أفضل، يرجى رفع المواد الدراسية ذات الصلة.\n\nما الجانب الذي تريد التركيز عليه أكثر؟",
		}
	}
	return []string{
		fmt.Sprintf("تحليل رائع للموضوع! 📊\n\nبناءً على المحتوى المتاح:\n%s\n\nهل تريد المزيد من التفاصيل حول نقطة معينة؟", ctx500),
		fmt.Sprintf("موضوع شيق للدراسة! 🔍\n\n%s\n\nما الجانب الذي تريد التركيز عليه أكثر؟", ctx500),
	}
}

// fallbackResponse picks a template for the classified intent. The category
// is deterministic; randomness only chooses among same-category templates.
func (e *Engine) fallbackResponse(userMessage, docContext string) string {
	var pool []string
	switch classify(userMessage) {
	case intentGreeting:
		pool = greetingTemplates
	case intentQuestion:
		pool = questionTemplates(userMessage, docContext)
	case intentAnalysis:
		pool = analysisTemplates(docContext)
	default:
		pool = defaultTemplates
	}
	return pool[e.pick(len(pool))]
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
