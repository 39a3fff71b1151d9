// Package telegram sends trip announcements through the Telegram Bot API.
//
// Messages use Telegram's HTML parse mode. Authentication requires a bot
// token (from @BotFather) and the ID of the chat or channel to post to.
package telegram
