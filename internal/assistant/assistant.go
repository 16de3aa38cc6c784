// Package assistant — скриптовый помощник сайта: чистая функция из текста
// посетителя в один из шести заготовленных ответов. Без состояния и без
// внешних вызовов; история диалога живёт на стороне клиента.
package assistant

import "strings"

type rule struct {
	keywords []string
	reply    string
}

// Порядок правил фиксирован: выигрывает первая группа с совпавшей подстрокой.
var rules = []rule{
	{
		keywords: []string{"skill", "tech", "stack"},
		reply:    "My core stack involves React, TypeScript, and Tailwind CSS. For backend and automation, I utilize Supabase and custom LLM integrations to build intelligent systems.",
	},
	{
		keywords: []string{"project", "portfolio"},
		reply:    "I engineer high-performance web solutions with a focus on AI automation. You can view my featured technical projects in the portfolio section above.",
	},
	{
		keywords: []string{"price", "cost", "budget"},
		reply:    "Project costs are determined by the technical scope and complexity of the integration. I focus on delivering high-value, scalable solutions tailored to your needs.",
	},
	{
		keywords: []string{"time", "delivery", "fast"},
		reply:    "I follow an iterative development process. For initial project scoping, I typically provide a functional staging preview within a few hours.",
	},
	{
		keywords: []string{"contact", "hire", "reach"},
		reply:    "You can initiate a professional inquiry through the contact section or by submitting a project scoping form. I look forward to discussing your architecture!",
	},
}

const defaultReply = "That's an interesting technical requirement. I'm happy to discuss my engineering process, stack preferences, or specific AI integration capabilities."

// Reply подбирает ответ по первому совпадению подстроки (без учёта регистра).
func Reply(input string) string {
	q := strings.ToLower(input)
	for _, r := range rules {
		for _, k := range r.keywords {
			if strings.Contains(q, k) {
				return r.reply
			}
		}
	}
	return defaultReply
}
