package compose

import (
	"fmt"

	"golang.org/x/text/message"

	"biography-site/biography/locale"
)

// labels is the fixed translation table. Both locales define the same keys.
var labels = map[locale.Locale]map[string]string{
	locale.ZH: {
		"section.summary":          "個人簡介",
		"section.experience":       "工作經歷",
		"section.key_experience":   "關鍵工作經歷",
		"section.projects":         "經手專案",
		"section.portfolio":        "專案作品集",
		"section.education":        "教育背景",
		"section.skills":           "技能專長",
		"section.core_skills":      "核心技能",
		"section.certifications":   "專業證照",
		"experience.duties":        "主要職責",
		"project.tech_stack":       "技術棧",
		"project.highlights":       "專案亮點",
		"project.pictures":         "專案圖片",
		"project.no_pictures":      "暫無圖片",
		"project.view_code":        "查看程式碼",
		"project.view_demo":        "查看展示",
		"project.period":           "開發期間：%s",
		"cert.view":                "查看證照",
		"cert.issuer":              "發證機構",
		"cert.issued":              "取得日期",
		"cert.expires_on":          "到期日期：%s",
		"cert.credential_id":       "證照編號",
		"cert.no_expiry":           "永久有效",
		"status.active":            "維護中",
		"status.deprecated":        "停止維護",
		"status.abandoned":         "已棄用",
		"gallery.picture":          "%s - 圖片 %d",
		"gallery.close":            "關閉",
		"contact.note":             "請優先使用 Email 聯繫",
		"nav.home":                 "首頁",
		"nav.back_home":            "返回首頁",
		"nav.print":                "列印/下載",
		"nav.portfolio":            "作品集",
		"nav.resume":               "履歷",
		"nav.language":             "切換語言",
		"footer":                   "© 2024 個人自傳網站。使用 Go 與 Gin 建立。",
		"gate.title":               "訪問驗證",
		"gate.description":         "此網站目前處於私人模式，請輸入密碼以繼續訪問",
		"gate.placeholder":         "請輸入密碼",
		"gate.submit":              "進入網站",
		"gate.submitting":          "驗證中...",
		"gate.incorrect":           "密碼錯誤，請重新輸入",
		"error.title":              "發生錯誤",
		"error.unsupported_locale": "不支援的語言",
	},
	locale.EN: {
		"section.summary":          "Personal Summary",
		"section.experience":       "Experience",
		"section.key_experience":   "Key Work Experience",
		"section.projects":         "Projects",
		"section.portfolio":        "Project Portfolio",
		"section.education":        "Education",
		"section.skills":           "Skills",
		"section.core_skills":      "Core Skills",
		"section.certifications":   "Certifications",
		"experience.duties":        "Key Responsibilities",
		"project.tech_stack":       "Tech Stack",
		"project.highlights":       "Highlights",
		"project.pictures":         "Project Images",
		"project.no_pictures":      "No Images Available",
		"project.view_code":        "View Code",
		"project.view_demo":        "View Demo",
		"project.period":           "Period: %s",
		"cert.view":                "View Certificate",
		"cert.issuer":              "Issuer",
		"cert.issued":              "Issued",
		"cert.expires_on":          "Expires: %s",
		"cert.credential_id":       "Credential ID",
		"cert.no_expiry":           "No Expiry",
		"status.active":            "Active",
		"status.deprecated":        "Deprecated",
		"status.abandoned":         "Abandoned",
		"gallery.picture":          "%s - Image %d",
		"gallery.close":            "Close",
		"contact.note":             "Please contact via Email preferably",
		"nav.home":                 "Home",
		"nav.back_home":            "Back to Home",
		"nav.print":                "Print/Download",
		"nav.portfolio":            "Portfolio",
		"nav.resume":               "Resume",
		"nav.language":             "Toggle language",
		"footer":                   "© 2024 Personal Biography Website. Built with Go and Gin.",
		"gate.title":               "Access Verification",
		"gate.description":         "This site is currently private. Enter the password to continue.",
		"gate.placeholder":         "Enter password",
		"gate.submit":              "Enter Site",
		"gate.submitting":          "Verifying...",
		"gate.incorrect":           "Incorrect password, please try again",
		"error.title":              "Something went wrong",
		"error.unsupported_locale": "Unsupported language",
	},
}

// languageNames are shown in the language toggle, always in their own script.
var languageNames = map[locale.Locale]string{
	locale.ZH: "中文",
	locale.EN: "English",
}

func init() {
	for l, table := range labels {
		for key, text := range table {
			if err := message.SetString(l.Tag(), key, text); err != nil {
				panic(fmt.Sprintf("compose: register %s/%s: %v", l, key, err))
			}
		}
	}
}

// Printer returns the message printer for l. It panics on unsupported locales.
func Printer(l locale.Locale) *message.Printer {
	return message.NewPrinter(l.Tag())
}

// Labels returns the static (argument-free) labels of l keyed by message key.
func Labels(l locale.Locale) map[string]string {
	table, ok := labels[l]
	if !ok {
		panic(fmt.Sprintf("compose: unsupported locale %q", string(l)))
	}
	out := make(map[string]string, len(table))
	for k, v := range table {
		out[k] = v
	}
	return out
}
