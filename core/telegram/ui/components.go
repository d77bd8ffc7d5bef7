// Package ui holds reusable Telegram UI pieces.
package ui

import tele "gopkg.in/telebot.v4"

// NewArticleResult creates an inline-query article with given ID, title and
// message text, optionally carrying an inline keyboard on the sent message.
func NewArticleResult(id, title, text string, markup *tele.ReplyMarkup) *tele.ArticleResult {
	result := &tele.ArticleResult{
		Title:       title,
		Description: text,
	}
	result.SetResultID(id)
	result.Content = &tele.InputTextMessageContent{Text: text}
	if markup != nil {
		result.ReplyMarkup = markup
	}
	return result
}
