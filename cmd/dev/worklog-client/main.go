package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/garnizeh/worklog/pkg/client"
	"github.com/garnizeh/worklog/pkg/models"
)

const usage = `usage: worklog-client [flags] <command> [args]

commands:
  health
  employees
  add-employee <name> <email> <username> <password> [boss]
  login <username> <password>
  entries <employeeId>
  submit <employeeId> <hours> <date> [description]
  update <entryId> <hours> <date> [description]
  month <month> [employeeId]
  export <month> <file> [employeeId]
  summary
`

func main() {
	base := flag.String("url", "http://localhost:5000", "worklog server base URL")
	timeout := flag.Duration("timeout", 10*time.Second, "request timeout")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage); flag.PrintDefaults() }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := client.DefaultConfig()
	cfg.BaseURL = *base
	cfg.Timeout = *timeout
	c, err := client.NewClient(cfg, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, c, args[0], args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, c *client.Client, cmd string, args []string) error {
	switch cmd {
	case "health":
		if err := c.Health(ctx); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil

	case "employees":
		list, err := c.ListEmployees(ctx)
		if err != nil {
			return err
		}
		return printJSON(list)

	case "add-employee":
		if len(args) < 4 {
			return errors.New("add-employee needs name, email, username and password")
		}
		e := client.NewEmployee{Name: args[0], Email: args[1], Username: args[2], Password: args[3]}
		e.IsBoss = len(args) > 4 && args[4] == "boss"
		id, err := c.AddEmployee(ctx, e)
		if err != nil {
			return err
		}
		fmt.Printf("employee %d added\n", id)
		return nil

	case "login":
		if len(args) < 2 {
			return errors.New("login needs username and password")
		}
		user, err := c.Login(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		return printJSON(user)

	case "entries":
		if len(args) < 1 {
			return errors.New("entries needs an employee id")
		}
		id, err := parseInt(args[0])
		if err != nil {
			return err
		}
		list, err := c.ListEntries(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(list)

	case "submit":
		if len(args) < 3 {
			return errors.New("submit needs employee id, hours and date")
		}
		id, err := parseInt(args[0])
		if err != nil {
			return err
		}
		hours, err := parseFloat(args[1])
		if err != nil {
			return err
		}
		entryID, err := c.SubmitEntry(ctx, client.NewEntry{EmployeeID: id, HoursWorked: hours, Date: args[2], Description: optional(args, 3)})
		if err != nil {
			return err
		}
		fmt.Printf("entry %d submitted\n", entryID)
		return nil

	case "update":
		if len(args) < 3 {
			return errors.New("update needs entry id, hours and date")
		}
		id, err := parseInt(args[0])
		if err != nil {
			return err
		}
		hours, err := parseFloat(args[1])
		if err != nil {
			return err
		}
		if err := c.UpdateEntry(ctx, id, models.EntryUpdate{HoursWorked: hours, Date: args[2], Description: optional(args, 3)}); err != nil {
			return err
		}
		fmt.Println("updated")
		return nil

	case "month":
		if len(args) < 1 {
			return errors.New("month needs a month number")
		}
		month, employeeID, err := monthArgs(args[0], optional(args, 1))
		if err != nil {
			return err
		}
		rows, err := c.MonthlyTotals(ctx, month, employeeID)
		if errors.Is(err, client.ErrNoEntries) {
			fmt.Println("no data")
			return nil
		}
		if err != nil {
			return err
		}
		return printJSON(rows)

	case "export":
		if len(args) < 2 {
			return errors.New("export needs a month number and an output file")
		}
		month, employeeID, err := monthArgs(args[0], optional(args, 2))
		if err != nil {
			return err
		}
		data, err := c.ExportMonthly(ctx, month, employeeID)
		if err != nil {
			return err
		}
		if err := os.WriteFile(args[1], data, 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d bytes)\n", args[1], len(data))
		return nil

	case "summary":
		s, err := c.Summary(ctx)
		if err != nil {
			return err
		}
		return printJSON(s)
	}

	return fmt.Errorf("unknown command %q", cmd)
}

func monthArgs(m, emp string) (int, *int64, error) {
	month, err := parseInt(m)
	if err != nil {
		return 0, nil, err
	}
	if emp == "" {
		return int(month), nil, nil
	}
	id, err := parseInt(emp)
	if err != nil {
		return 0, nil, err
	}
	return int(month), &id, nil
}

func optional(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func parseInt(s string) (int64, error) {
	var v int64
	if _, err := fmt.Sscan(s, &v); err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

func parseFloat(s string) (float64, error) {
	var v float64
	if _, err := fmt.Sscan(s, &v); err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
