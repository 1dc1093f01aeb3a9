package bot

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/Theo524/Simple-User-based-Restaurant-order-system/config"
	"github.com/Theo524/Simple-User-based-Restaurant-order-system/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const loginHint = "🔒 Send /login <username> <password> to continue."

// Bot is the Telegram front end. Each chat holds at most one session.
type Bot struct {
	api *tgbotapi.BotAPI
	app *services.App

	sessions   map[int64]*services.Session
	sessionsMu sync.RWMutex
}

func New(cfg *config.Config, app *services.App) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}
	return newBot(api, app), nil
}

func newBot(api *tgbotapi.BotAPI, app *services.App) *Bot {
	return &Bot{
		api:      api,
		app:      app,
		sessions: make(map[int64]*services.Session),
	}
}

func (b *Bot) session(chatID int64) *services.Session {
	b.sessionsMu.RLock()
	s := b.sessions[chatID]
	b.sessionsMu.RUnlock()
	return s
}

func (b *Bot) setSession(chatID int64, s *services.Session) {
	b.sessionsMu.Lock()
	defer b.sessionsMu.Unlock()
	if s == nil {
		delete(b.sessions, chatID)
		return
	}
	b.sessions[chatID] = s
}

// cardMarkup converts CardContent.Buttons to a Telegram inline keyboard.
func cardMarkup(c services.CardContent) *tgbotapi.InlineKeyboardMarkup {
	if len(c.Buttons) == 0 {
		return nil
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, row := range c.Buttons {
		var btns []tgbotapi.InlineKeyboardButton
		for _, btn := range row {
			btns = append(btns, tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.CallbackData))
		}
		rows = append(rows, btns)
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

func (b *Bot) setBotCommands() error {
	cfg := tgbotapi.SetMyCommandsConfig{
		Commands: []tgbotapi.BotCommand{
			{Command: "login", Description: "Log in: /login <username> <password>"},
			{Command: "menu", Description: "Show the menu"},
			{Command: "cart", Description: "Show the current order"},
			{Command: "order", Description: "Place the order"},
			{Command: "clear", Description: "Clear the order"},
			{Command: "balance", Description: "Show your balance"},
			{Command: "orders", Description: "Past orders"},
			{Command: "users", Description: "All users (admin)"},
			{Command: "logout", Description: "Log out"},
		},
	}
	_, err := b.api.Request(cfg)
	return err
}

// Start polls for updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) {
	_ = b.setBotCommands()
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if cq := update.CallbackQuery; cq != nil {
		if cq.Message == nil {
			return
		}
		content, toast := b.handleCallback(ctx, cq.Message.Chat.ID, cq.Data)
		if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, toast)); err != nil {
			log.Printf("answer callback: %v", err)
		}
		b.edit(cq.Message.Chat.ID, cq.Message.MessageID, content)
		return
	}
	msg := update.Message
	if msg == nil {
		return
	}
	text := strings.TrimSpace(msg.Text)
	if strings.HasPrefix(text, "/login") {
		// keep the password out of the chat history
		if _, err := b.api.Request(tgbotapi.NewDeleteMessage(msg.Chat.ID, msg.MessageID)); err != nil {
			log.Printf("delete login message: %v", err)
		}
	}
	b.sendCard(msg.Chat.ID, b.handleText(ctx, msg.Chat.ID, text))
}

// handleText answers one text command.
func (b *Bot) handleText(ctx context.Context, chatID int64, text string) services.CardContent {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return services.CardContent{Text: loginHint}
	}
	// "/menu@SomeBot" in group chats
	cmd := strings.SplitN(fields[0], "@", 2)[0]
	args := fields[1:]

	switch cmd {
	case "/start", "/help":
		if s := b.session(chatID); s != nil {
			return services.MenuCard(b.app.Catalog, s)
		}
		return services.CardContent{Text: "🍽 Restaurant Menu System\n\n" + loginHint}
	case "/login":
		if len(args) != 2 {
			return services.CardContent{Text: "Usage: /login <username> <password>"}
		}
		b.app.Logout(b.session(chatID))
		s, err := b.app.Login(args[0], args[1])
		if err != nil {
			b.setSession(chatID, nil)
			return services.CardContent{Text: "❌ " + services.ErrorText(err)}
		}
		b.setSession(chatID, s)
		return services.MenuCard(b.app.Catalog, s)
	}

	s := b.session(chatID)
	if s == nil {
		return services.CardContent{Text: loginHint}
	}

	switch cmd {
	case "/menu":
		return services.MenuCard(b.app.Catalog, s)
	case "/cart":
		return services.CardContent{Text: services.CartText(s)}
	case "/order":
		return b.placeOrder(ctx, s)
	case "/clear":
		s.Clear()
		return services.MenuCard(b.app.Catalog, s)
	case "/balance":
		return services.CardContent{Text: "Balance: " + services.FormatMoney(s.Balance())}
	case "/orders":
		list, err := b.app.RecentOrders(ctx, s, 10)
		if err != nil {
			log.Printf("recent orders for %s: %v", s.Username(), err)
			return services.CardContent{Text: services.ErrorText(err)}
		}
		return services.CardContent{Text: services.OrdersText(list)}
	case "/users":
		users, err := b.app.Roster(s)
		if err != nil {
			return services.CardContent{Text: services.ErrorText(err)}
		}
		return services.CardContent{Text: services.RosterText(users)}
	case "/logout":
		b.app.Logout(s)
		b.setSession(chatID, nil)
		return services.CardContent{Text: "👋 Logged out.\n\n" + loginHint}
	}
	return services.CardContent{Text: "Unknown command. Try /menu."}
}

// handleCallback applies a menu button press and returns the refreshed card and a toast.
func (b *Bot) handleCallback(ctx context.Context, chatID int64, data string) (services.CardContent, string) {
	s := b.session(chatID)
	if s == nil {
		return services.CardContent{Text: loginHint}, "Please log in"
	}
	switch {
	case strings.HasPrefix(data, services.CallbackAddPrefix):
		name := strings.TrimPrefix(data, services.CallbackAddPrefix)
		if err := s.AddItem(name); err != nil {
			return services.MenuCard(b.app.Catalog, s), services.ErrorText(err)
		}
		return services.MenuCard(b.app.Catalog, s), name + " added"
	case data == services.CallbackOrder:
		if len(s.Items()) == 0 {
			return services.MenuCard(b.app.Catalog, s), "Your order is empty"
		}
		content := b.placeOrder(ctx, s)
		return content, ""
	case data == services.CallbackClear:
		s.Clear()
		return services.MenuCard(b.app.Catalog, s), "Order cleared"
	}
	return services.MenuCard(b.app.Catalog, s), ""
}

// placeOrder returns the receipt followed by a fresh menu, or the error above the unchanged cart.
func (b *Bot) placeOrder(ctx context.Context, s *services.Session) services.CardContent {
	r, err := s.PlaceOrder(ctx)
	menu := services.MenuCard(b.app.Catalog, s)
	if err != nil {
		menu.Text = "❌ " + services.ErrorText(err) + "\n\n" + menu.Text
		return menu
	}
	menu.Text = "✅ " + services.ReceiptText(r) + "\n\n" + menu.Text
	return menu
}

func (b *Bot) sendCard(chatID int64, c services.CardContent) {
	msg := tgbotapi.NewMessage(chatID, c.Text)
	if kb := cardMarkup(c); kb != nil {
		msg.ReplyMarkup = *kb
	}
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("send error: %v", err)
	}
}

func (b *Bot) edit(chatID int64, messageID int, c services.CardContent) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, c.Text)
	if kb := cardMarkup(c); kb != nil {
		edit.ReplyMarkup = kb
	}
	if _, err := b.api.Send(edit); err != nil {
		if strings.Contains(err.Error(), "not modified") {
			return
		}
		log.Printf("edit error: %v", err)
		// fall back to a new message, e.g. when the old one was deleted
		b.sendCard(chatID, c)
	}
}

// SessionCount reports how many chats are logged in.
func (b *Bot) SessionCount() int {
	b.sessionsMu.RLock()
	defer b.sessionsMu.RUnlock()
	return len(b.sessions)
}
