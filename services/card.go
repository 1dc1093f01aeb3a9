package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Theo524/Simple-User-based-Restaurant-order-system/models"
)

const (
	CallbackAddPrefix = "add:"
	CallbackOrder     = "cart:order"
	CallbackClear     = "cart:clear"
)

// CardButton is one inline button.
type CardButton struct {
	Text         string
	CallbackData string
}

// CardContent is message text plus an optional button grid.
type CardContent struct {
	Text    string
	Buttons [][]CardButton
}

// MenuCard lists the catalog three buttons per row, followed by the cart actions.
func MenuCard(c *Catalog, s *Session) CardContent {
	var rows [][]CardButton
	var row []CardButton
	for _, it := range c.Items() {
		row = append(row, CardButton{
			Text:         fmt.Sprintf("%s (%s)", it.Name, FormatMoney(it.Price)),
			CallbackData: CallbackAddPrefix + it.Name,
		})
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []CardButton{
		{Text: "Place Order", CallbackData: CallbackOrder},
		{Text: "Clear Order", CallbackData: CallbackClear},
	})
	return CardContent{Text: WelcomeText(s) + "\n\n" + CartText(s), Buttons: rows}
}

func WelcomeText(s *Session) string {
	return fmt.Sprintf("Welcome, %s!\nBalance: %s", s.Username(), FormatMoney(s.Balance()))
}

// CartText renders the line items and running total.
func CartText(s *Session) string {
	var b strings.Builder
	items := s.Items()
	if len(items) == 0 {
		b.WriteString("Your order is empty.\n")
	}
	for _, it := range items {
		fmt.Fprintf(&b, "Added to order: %s (%s)\n", it.Name, FormatMoney(it.Price))
	}
	fmt.Fprintf(&b, "Total Cost: %s", FormatMoney(s.TotalCost()))
	return b.String()
}

func ReceiptText(r *models.Receipt) string {
	return fmt.Sprintf("Order placed. Total Order Price: %s\nBalance: %s", FormatMoney(r.Total), FormatMoney(r.Balance))
}

// RosterText is the admin's user table.
func RosterText(users []models.User) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %-12s %s\n", "Username", "Password", "Balance")
	for _, u := range users {
		fmt.Fprintf(&b, "%-12s %-12s %s\n", u.Username, u.Password, FormatMoney(u.Balance))
	}
	return strings.TrimRight(b.String(), "\n")
}

func OrdersText(list []models.Receipt) string {
	if len(list) == 0 {
		return "No past orders."
	}
	var b strings.Builder
	for _, r := range list {
		names := make([]string, len(r.Items))
		for i, it := range r.Items {
			names[i] = it.Name
		}
		fmt.Fprintf(&b, "%s  %s  %s\n", r.PlacedAt.Format("2006-01-02 15:04"), FormatMoney(r.Total), strings.Join(names, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

// ErrorText maps order and login failures to user-facing messages.
func ErrorText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAuthenticationFailed):
		return "Login Failed: Invalid username or password"
	case errors.Is(err, ErrInsufficientFunds):
		return "Insufficient Balance: You do not have sufficient balance to place this order."
	case errors.Is(err, ErrUnknownItem):
		return "That item is not on the menu."
	case errors.Is(err, ErrForbidden):
		return "Only the admin can view users."
	default:
		return "Something went wrong: " + err.Error()
	}
}
