package notify

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Alert 网关异常报警（chat id 未配置时静默跳过）
func Alert(title string, fields map[string]string) {
	chatID := os.Getenv("TELEGRAM_CHAT_ID")
	if chatID == "" {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s*\n", title))
	sb.WriteString(fmt.Sprintf("*时间:* %s\n", time.Now().Format("2006-01-02 15:04:05")))

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("%s: %s\n", k, fields[k]))
	}

	NotifySendMsgToTG(chatID, sb.String())
}
