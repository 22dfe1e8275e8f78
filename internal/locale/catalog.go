// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

// UI string keys. The key is also the English text.
const (
	HelpTitle      = "Help"
	EscToClose     = "Esc to close"
	NoData         = "No data"
	StatusFrozen   = "Frozen, press '%s' to unfreeze"
	SortBy         = "Sort By"
	Yes            = "Yes"
	No             = "No"
	ErrorTitle     = "Error"
	ProcessesTitle = "Processes"
	FilterPrompt   = "Filter: "
	ShownOfTotal   = "%d of %d processes"
	KeyQuit        = "quit"
	KeyHelp        = "toggle help"
	KeyRegex       = "toggle regex"
	KeyIgnoreCase  = "toggle ignore case"
	KeyWholeWord   = "toggle whole word"
	KeyCommand     = "toggle search by command"
	KeyFreeze      = "freeze or resume updates"
	KeyMemory      = "toggle memory percent or bytes"
	KeyShowPercent = "show memory as percent"
	KeyShowValues  = "show memory as bytes"
	KeySort        = "cycle sort column"
	KeyReverse     = "reverse sort"
	KeyClear       = "clear filter"
	KeyFilter      = "edit filter"

	LexError             = "syntax error"
	UnknownPrefix        = "unknown prefix"
	UnsupportedAttribute = "unsupported attribute"
	InvalidRegex         = "invalid regex"
	InvalidNumberOrUnit  = "invalid number or unit"
)

var japanese = map[string]string{
	HelpTitle:      "ヘルプ",
	EscToClose:     "Escで閉じる",
	NoData:         "データなし",
	StatusFrozen:   "更新停止中。'%s' で再開",
	SortBy:         "並び替え",
	Yes:            "はい",
	No:             "いいえ",
	ErrorTitle:     "エラー",
	ProcessesTitle: "プロセス",
	FilterPrompt:   "フィルター: ",
	ShownOfTotal:   "%d / %d プロセス",
	KeyQuit:        "終了",
	KeyHelp:        "ヘルプの切り替え",
	KeyRegex:       "正規表現の切り替え",
	KeyIgnoreCase:  "大文字小文字の区別の切り替え",
	KeyWholeWord:   "完全一致の切り替え",
	KeyCommand:     "コマンドで検索の切り替え",
	KeyFreeze:      "更新の停止と再開",
	KeyMemory:      "メモリ表示の切り替え (割合/量)",
	KeyShowPercent: "メモリを割合で表示",
	KeyShowValues:  "メモリを量で表示",
	KeySort:        "並び替え列の変更",
	KeyReverse:     "並び順の反転",
	KeyClear:       "フィルターの消去",
	KeyFilter:      "フィルターの編集",

	LexError:             "構文エラー",
	UnknownPrefix:        "不明なプレフィックス",
	UnsupportedAttribute: "未対応の属性",
	InvalidRegex:         "無効な正規表現",
	InvalidNumberOrUnit:  "無効な数値または単位",
}

var uiCatalog = build()

func build() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key := range japanese {
		_ = b.SetString(language.English, key, key)
	}
	for key, msg := range japanese {
		_ = b.SetString(language.Japanese, key, msg)
	}
	return b
}
