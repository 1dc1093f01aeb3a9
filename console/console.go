// Package console is a line-oriented front end used when no bot token is set.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Theo524/Simple-User-based-Restaurant-order-system/services"
)

const helpText = `Commands:
  login <username> <password>
  menu
  add <item>
  cart
  order
  clear
  balance
  orders
  users        (admin only)
  logout
  help
  quit`

type Console struct {
	app     *services.App
	in      io.Reader
	out     io.Writer
	session *services.Session
}

func New(app *services.App, in io.Reader, out io.Writer) *Console {
	return &Console{app: app, in: in, out: out}
}

// Run reads commands until quit, EOF or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	c.println("Restaurant Menu System. Type 'help' for commands.")
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(c.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	for {
		c.prompt()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := ctx.Err(); err != nil {
					return err
				}
				return <-scanErr
			}
			if quit := c.Handle(ctx, line); quit {
				return nil
			}
		}
	}
}

// Handle executes one command line and reports whether the user asked to quit.
func (c *Console) Handle(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit":
		c.app.Logout(c.session)
		c.session = nil
		return true
	case "help":
		c.println(helpText)
		return false
	case "login":
		c.login(args)
		return false
	}

	if c.session == nil {
		c.println("Please log in first: login <username> <password>")
		return false
	}

	switch cmd {
	case "menu":
		c.menu()
	case "add":
		c.add(strings.Join(args, " "))
	case "cart":
		c.println(services.CartText(c.session))
	case "order":
		c.order(ctx)
	case "clear":
		c.session.Clear()
		c.println(services.CartText(c.session))
	case "balance":
		c.println("Balance: " + services.FormatMoney(c.session.Balance()))
	case "orders":
		list, err := c.app.RecentOrders(ctx, c.session, 10)
		if err != nil {
			c.println(services.ErrorText(err))
			return false
		}
		c.println(services.OrdersText(list))
	case "users":
		users, err := c.app.Roster(c.session)
		if err != nil {
			c.println(services.ErrorText(err))
			return false
		}
		c.println(services.RosterText(users))
	case "logout":
		c.app.Logout(c.session)
		c.session = nil
		c.println("Logged out.")
	default:
		c.println("Unknown command. Type 'help'.")
	}
	return false
}

func (c *Console) login(args []string) {
	if len(args) != 2 {
		c.println("Usage: login <username> <password>")
		return
	}
	if c.session != nil {
		c.app.Logout(c.session)
	}
	s, err := c.app.Login(args[0], args[1])
	if err != nil {
		c.session = nil
		c.println(services.ErrorText(err))
		return
	}
	c.session = s
	c.println(services.WelcomeText(s))
}

func (c *Console) menu() {
	c.println("Menu")
	for _, it := range c.app.Catalog.Items() {
		c.println(fmt.Sprintf("  %-10s %s", it.Name, services.FormatMoney(it.Price)))
	}
}

func (c *Console) add(name string) {
	if name == "" {
		c.println("Usage: add <item>")
		return
	}
	if canonical, ok := c.app.Catalog.Lookup(name); ok {
		name = canonical
	}
	if err := c.session.AddItem(name); err != nil {
		c.println(services.ErrorText(err))
		return
	}
	c.println(services.CartText(c.session))
}

func (c *Console) order(ctx context.Context) {
	r, err := c.session.PlaceOrder(ctx)
	if err != nil {
		c.println(services.ErrorText(err))
		return
	}
	c.println(services.ReceiptText(r))
}

func (c *Console) prompt() {
	if c.session != nil {
		fmt.Fprintf(c.out, "%s> ", c.session.Username())
		return
	}
	fmt.Fprint(c.out, "> ")
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}
