package intelligence

import (
	"fmt"
	"strings"
)

const parseSystemPrompt = `You convert a freelancer's work log into time entries for a CLI called tally.
The log may be Korean, English or mixed.

Output ONLY a JSON object:
{
  "entries": [
    {
      "project_name_raw": string,   // project as written by the user, "" if none
      "task_description": string,
      "date": string|null,          // copy the user's words ("어제", "yesterday", "2/9") or YYYY-MM-DD; null if not said
      "duration_minutes": integer|null,
      "duration_source": "explicit"|"ambiguous"|"missing",
      "category": "planning"|"design"|"development"|"revision"|"meeting"|"communication"|"research"|"admin"|"other",
      "intent": "done"|"planned",
      "start_time": string|null     // 24h "HH:MM" only when the user said when they started
    }
  ],
  "progress_hint": {
    "detected": boolean,
    "suggested_progress": integer|null,   // 0-100
    "reason": string,
    "project_name_raw": string|null
  } | null
}

Rules:
1. One entry per distinct piece of work.
2. duration_source is "explicit" only when the user stated a length ("2시간", "90 min").
   Use "ambiguous" for vague amounts ("잠깐", "a while") with your best guess in minutes.
   Use "missing" with duration_minutes null when no length was given.
3. intent is "planned" for future work ("내일 할 것", "will do"), otherwise "done".
4. Never resolve dates yourself beyond copying what the user wrote.
5. Never invent projects. Copy the user's wording into project_name_raw.
6. start_time is local wall-clock time as the user said it ("밤 11시부터" -> "23:00"); null otherwise.
7. Set progress_hint only when the user reports overall project progress ("80% 완료").`

// buildParseUserPrompt frames the raw text with the user's projects and date.
func buildParseUserPrompt(text string, pc ParseContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Today is %s (%s).\n", pc.Today, pc.Timezone)
	if len(pc.ProjectNames) > 0 {
		fmt.Fprintf(&b, "Known projects: %s\n", strings.Join(pc.ProjectNames, ", "))
	}
	b.WriteString("\nWork log:\n")
	b.WriteString(strings.TrimSpace(text))
	return b.String()
}
