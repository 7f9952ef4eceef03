package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"resto/internal/agent"
	orderDto "resto/internal/domains/order/model/dto"
	tableDto "resto/internal/domains/table/model/dto"

	"github.com/docopt/docopt-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const usage = `Resto live board.

Follows the realtime feed of a running server and prints each refreshed view.

Usage:
    board kitchen [options]
    board cashier [options]
    board tables [options]
    board tracker --table=<table_id> [options]
    board customer --table=<table_id> [options]
    board floor [options]

Options:
    -h --help                  Show this screen.
    --api=<api_url>            Server base url [default: http://localhost:8080/v1].
    --ws=<ws_url>              Realtime url [default: ws://localhost:8080/v1/ws].
    --username=<username>      Staff username, required for the cashier view.
    --password=<password>      Staff password.
    --name=<name>              Display name for guests [default: board].
    --poll=<seconds>           Re-fetch period as a fallback for missed events [default: 30].
    --table=<table_id>         Table to follow.`

type runner interface {
	Run(ctx context.Context, stream agent.Stream) error
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid arguments")
	}

	apiURL, _ := opts.String("--api")
	wsURL, _ := opts.String("--ws")
	name, _ := opts.String("--name")
	poll, _ := opts.Int("--poll")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	client := agent.NewAPIClient(apiURL, "")

	if username, _ := opts.String("--username"); username != "" {
		password, _ := opts.String("--password")
		if _, err := client.Login(ctx, username, password); err != nil {
			log.Fatal().Err(err).Msg("login failed")
		}
	}

	agentOpts := []agent.Option{agent.WithPollInterval(time.Duration(poll) * time.Second)}

	var runners []runner

	switch {
	case flag(opts, "kitchen"):
		runners = append(runners, kitchen(client, agentOpts))
	case flag(opts, "cashier"):
		runners = append(runners, cashier(client, agentOpts))
	case flag(opts, "tables"):
		runners = append(runners, tables(client, agentOpts))
	case flag(opts, "tracker"):
		tableID, _ := opts.String("--table")
		runners = append(runners, tracker(client, tableID, agentOpts))
	case flag(opts, "floor"):
		runners = append(runners, kitchen(client, agentOpts), tables(client, agentOpts))
	case flag(opts, "customer"):
		tableID, _ := opts.String("--table")

		session, err := customer(ctx, client, tableID, agentOpts)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot start customer session")
		}

		go prompt(ctx, cancel, session, os.Stdin)

		runners = append(runners, session)
	}

	group, groupCtx := errgroup.WithContext(ctx)

	for _, r := range runners {
		stream, err := agent.Dial(groupCtx, wsURL, client.Token(), name)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect")
		}

		group.Go(func() error {
			defer stream.Close()

			return r.Run(groupCtx, stream)
		})
	}

	if err := group.Wait(); err != nil {
		log.Fatal().Err(err).Msg("board stopped")
	}
}

func flag(opts docopt.Opts, name string) bool {
	value, _ := opts.Bool(name)

	return value
}

func kitchen(client *agent.APIClient, opts []agent.Option) runner {
	board := agent.NewKitchenBoard(client, opts...)
	board.OnChange(func(orders []orderDto.OrderResponse) {
		printOrders("Kitchen", orders)
	})

	return board
}

func tracker(client *agent.APIClient, tableID string, opts []agent.Option) runner {
	board := agent.NewOrderTracker(client, tableID, opts...)
	board.OnChange(func(orders []orderDto.OrderResponse) {
		printOrders("Table "+tableID, orders)
	})

	return board
}

func cashier(client *agent.APIClient, opts []agent.Option) runner {
	dashboard := agent.NewCashierDashboard(client, opts...)
	dashboard.OnChange(func(orders []orderDto.OrderResponse) {
		printOrders("Unsettled", orders)
	})
	dashboard.Observe(func(agent.Event) {
		for _, n := range dashboard.Inbox() {
			fmt.Printf("  ! %s at %s (%s)\n", n.Kind, n.TableLabel, n.Timestamp)
		}
	})

	return dashboard
}

func tables(client *agent.APIClient, opts []agent.Option) runner {
	grid := agent.NewTableGrid(client, opts...)
	grid.OnChange(func(tables []tableDto.TableResponse) {
		fmt.Printf("== Tables (%d)\n", len(tables))

		for _, t := range tables {
			state := "free"

			switch {
			case grid.IsBlocked(t.ID):
				state = "ordering"
			case !t.Available:
				state = "occupied"
			}

			fmt.Printf("  %-10s seats %-2d %s\n", t.Label, t.Capacity, state)
		}
	})

	return grid
}

func printOrders(title string, orders []orderDto.OrderResponse) {
	fmt.Printf("== %s (%d)\n", title, len(orders))

	for _, o := range orders {
		items := make([]string, 0, len(o.Items))
		for _, item := range o.Items {
			items = append(items, fmt.Sprintf("%dx %s", item.Quantity, item.Name))
		}

		fmt.Printf("  %-8s %-10s %-12s %s\n", o.Status, o.ID[:min(8, len(o.ID))], o.CustomerName, strings.Join(items, ", "))
	}
}
