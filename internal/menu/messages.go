package menu

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The English text doubles as the key.
const (
	msgTitle          = "Todo App"
	msgMainAdd        = "1. Add task"
	msgMainView       = "2. View tasks"
	msgMainComplete   = "3. Complete task"
	msgMainDelete     = "4. Delete task"
	msgMainExit       = "5. Exit"
	msgChoose         = "Choose an option (1-5): "
	msgAskDescription = "Enter task description: "
	msgAdded          = "Added new task (created at %s)."
	msgAddFailed      = "Failed to add task."
	msgNoTasks        = "No tasks yet."
	msgTaskLine       = "%s. [%s] %s (created at %s)"
	msgUnknownTime    = "unknown time"
	msgAskComplete    = "Enter the number of the task to complete: "
	msgCompleted      = "Task marked as completed."
	msgReopened       = "Task marked as pending."
	msgUpdateFailed   = "Failed to update task."
	msgInvalidIndex   = "Invalid task number."
	msgNotANumber     = "Please enter a valid number."
	msgDeleteTitle    = "Delete options:"
	msgDeleteOne      = "1. Delete one task"
	msgDeleteMany     = "2. Delete several tasks"
	msgDeleteAll      = "3. Delete all tasks"
	msgDeleteBack     = "4. Back to main menu"
	msgChooseDelete   = "Choose how to delete (1-4): "
	msgAskDeleteOne   = "Enter the number of the task to delete: "
	msgAskDeleteMany  = "Enter task numbers separated by commas (e.g. 1,2,3): "
	msgBadIndexList   = "Invalid task number format. Use comma-separated numbers, e.g. 1,2,3"
	msgDeleted        = "Deleted %d task(s)."
	msgConfirmAll     = "Are you sure you want to delete all tasks? (y/n): "
	msgDeletedAll     = "All tasks deleted."
	msgDeleteFailed   = "Delete failed."
	msgInvalidOption  = "Please choose a valid option."
	msgGoodbye        = "Goodbye!"
)

var traditionalChinese = map[string]string{
	msgTitle:          "待辦事項應用",
	msgMainAdd:        "1. 添加新任務",
	msgMainView:       "2. 查看所有任務",
	msgMainComplete:   "3. 標記任務為完成",
	msgMainDelete:     "4. 刪除任務",
	msgMainExit:       "5. 退出",
	msgChoose:         "請選擇功能 (1-5): ",
	msgAskDescription: "請輸入任務描述: ",
	msgAdded:          "已添加新任務（建立時間：%s）。",
	msgAddFailed:      "添加任務失敗。",
	msgNoTasks:        "目前沒有任務。",
	msgTaskLine:       "%s. [%s] %s（建立時間：%s）",
	msgUnknownTime:    "未知時間",
	msgAskComplete:    "請輸入要標記完成的任務編號: ",
	msgCompleted:      "任務已標記為完成。",
	msgReopened:       "任務已標記為未完成。",
	msgUpdateFailed:   "更新任務失敗。",
	msgInvalidIndex:   "無效的任務編號。",
	msgNotANumber:     "請輸入有效的數字。",
	msgDeleteTitle:    "刪除任務選項：",
	msgDeleteOne:      "1. 刪除單個任務",
	msgDeleteMany:     "2. 刪除多個任務",
	msgDeleteAll:      "3. 刪除所有任務",
	msgDeleteBack:     "4. 返回主選單",
	msgChooseDelete:   "請選擇刪除方式 (1-4): ",
	msgAskDeleteOne:   "請輸入要刪除的任務編號: ",
	msgAskDeleteMany:  "請輸入要刪除的任務編號（用逗號分隔，例如：1,2,3）: ",
	msgBadIndexList:   "無效的任務編號格式。請使用逗號分隔的數字，例如：1,2,3",
	msgDeleted:        "已刪除 %d 個任務。",
	msgConfirmAll:     "確定要刪除所有任務嗎？(y/n): ",
	msgDeletedAll:     "已刪除所有任務。",
	msgDeleteFailed:   "刪除失敗。",
	msgInvalidOption:  "請輸入有效選項。",
	msgGoodbye:        "再見！",
}

var (
	supported = []language.Tag{language.English, language.TraditionalChinese}
	messages  = newCatalog()
)

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, zh := range traditionalChinese {
		_ = b.SetString(language.English, key, key)
		_ = b.SetString(language.TraditionalChinese, key, zh)
	}
	return b
}

// Languages lists the menu languages as BCP 47 tags.
func Languages() []string {
	out := make([]string, len(supported))
	for i, tag := range supported {
		out[i] = tag.String()
	}
	return out
}

// matchLanguage maps a user supplied tag such as "zh-TW" onto a
// supported language. Anything unrecognised falls back to English.
func matchLanguage(lang string) language.Tag {
	if lang == "" {
		return language.English
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return language.English
	}
	_, idx, conf := language.NewMatcher(supported).Match(tag)
	if conf == language.No {
		return language.English
	}
	return supported[idx]
}

func newPrinter(lang string) *message.Printer {
	return message.NewPrinter(matchLanguage(lang), message.Catalog(messages))
}
