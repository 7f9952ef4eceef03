package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"resto/internal/agent"
	menuDto "resto/internal/domains/menuitem/model/dto"
)

const customerHelp = `Commands:
  menu                 list what can be ordered
  add <item> [qty]     put an item in the cart
  remove <item>        take an item out of the cart
  cart                 show the cart
  order <your name>    send the cart to the kitchen
  bell                 call a waiter
  bill                 ask for the bill
  quit                 leave the table`

// customer resolves the table label and builds a session ordering at it.
func customer(ctx context.Context, client *agent.APIClient, tableID string, opts []agent.Option) (*agent.CustomerSession, error) {
	tables, err := client.Tables(ctx, url.Values{})
	if err != nil {
		return nil, fmt.Errorf("failed to load tables: %w", err)
	}

	for _, t := range tables {
		if t.ID == tableID {
			session := agent.NewCustomerSession(client, client, t.ID, t.Label, opts...)
			session.OnChange(func(items []menuDto.MenuItemResponse) {
				fmt.Printf("== Menu updated (%d items)\n", len(items))
			})

			return session, nil
		}
	}

	return nil, fmt.Errorf("table %q does not exist", tableID)
}

// prompt reads commands until quit or end of input, then ends the session.
func prompt(ctx context.Context, stop context.CancelFunc, session *agent.CustomerSession, in io.Reader) {
	defer stop()

	fmt.Println(customerHelp)

	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "quit" {
			return
		}

		if err := command(ctx, session, fields[0], fields[1:]); err != nil {
			fmt.Println("  !", err)
		}
	}
}

func command(ctx context.Context, session *agent.CustomerSession, name string, args []string) error {
	switch name {
	case "menu":
		for _, item := range session.Snapshot() {
			fmt.Printf("  %-24s %-28s %8.2f\n", item.ID, item.Name, item.Price)
		}
	case "add":
		if len(args) == 0 {
			return errors.New("usage: add <item> [qty]")
		}

		quantity := 1

		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity must be a number: %w", err)
			}

			quantity = n
		}

		return session.Order(args[0], quantity)
	case "remove":
		if len(args) == 0 {
			return errors.New("usage: remove <item>")
		}

		session.Cart.Remove(args[0])
	case "cart":
		for _, line := range session.Cart.Lines() {
			fmt.Printf("  %2dx %-28s %8.2f\n", line.Quantity, line.Name, line.Subtotal())
		}

		fmt.Printf("  total %31.2f\n", session.Cart.Total())
	case "order":
		if len(args) == 0 {
			return errors.New("usage: order <your name>")
		}

		order, err := session.Checkout(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}

		fmt.Printf("  order %s placed, total %.2f\n", order.ID, order.Total)
	case "bell":
		return session.CallWaiter(ctx)
	case "bill":
		return session.RequestBill(ctx)
	default:
		return fmt.Errorf("unknown command %q", name)
	}

	return nil
}
